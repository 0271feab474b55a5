// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package transfer

import (
	"context"
	"fmt"
)

// poll re-reads the destination copy status until it is terminal.
func (s *TransferService) poll(ctx context.Context, res *CopyResult) error {
	interval := s.conf.Interval()
	for !res.Status.Terminal() {
		if s.conf.MaxPollAttempts > 0 && res.Waits >= s.conf.MaxPollAttempts {
			return fmt.Errorf("%w (%d, last status %q)", ErrPollLimit, res.Waits, res.Status)
		}
		res.Waits++
		s.console.Waiting(res.Waits)
		if err := s.wait(ctx, interval); err != nil {
			return fmt.Errorf("waiting for copy: %w", err)
		}

		props, err := s.store.Properties(ctx, res.Destination)
		if err != nil {
			return fmt.Errorf("read copy status of %s: %w", res.Destination, err)
		}
		res.Status = props.CopyStatus
		s.log.Debug("copy status", "destination", res.Destination.String(), "status", res.Status, "attempt", res.Waits)
	}
	return nil
}
