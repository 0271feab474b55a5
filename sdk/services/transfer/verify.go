// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package transfer

import (
	"context"
	"errors"

	"github.com/scc-digitalhub/blobmover/sdk/config"
)

// verify probes source and destination as configured. Probe failures only
// print a not-found line, the copy outcome is left alone.
func (s *TransferService) verify(ctx context.Context, res *CopyResult) {
	switch s.conf.Verify {
	case config.VerifyNone:
		return
	case config.VerifyDestination:
	default:
		res.SourceCheck = s.exists(ctx, res.Source)
		s.console.VerifySource(res.Source.Container, res.SourceCheck.Found)
	}
	res.DestinationCheck = s.exists(ctx, res.Destination)
	s.console.VerifyDestination(res.Destination.Path, res.DestinationCheck.Found)
}

func (s *TransferService) exists(ctx context.Context, ref config.BlobRef) Verification {
	_, err := s.store.Properties(ctx, ref)
	if err != nil && !errors.Is(err, config.ErrBlobNotFound) {
		s.log.Warn("verification probe failed", "blob", ref.String(), "error", err)
	}
	return Verification{Checked: true, Found: err == nil}
}
