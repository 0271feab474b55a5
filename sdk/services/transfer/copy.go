// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package transfer

import (
	"context"
	"errors"
	"fmt"

	"github.com/scc-digitalhub/blobmover/sdk/config"
)

// Copy runs one server-side copy to completion: start, poll, verify.
// The result is returned together with the error whenever the copy was
// started, so callers can still report the verification outcome.
func (s *TransferService) Copy(ctx context.Context, req CopyRequest) (*CopyResult, error) {
	src, dst, err := s.refs(req)
	if err != nil {
		return nil, err
	}

	res := &CopyResult{
		Source:      src,
		Destination: dst,
		SourceURL:   s.store.BlobURL(src.Container, src.Path),
	}
	s.console.Copying(res.SourceURL, src.Path, dst.Path)
	s.log.Debug("starting copy", "source", src.String(), "destination", dst.String(), "url", res.SourceURL)

	status, err := s.store.StartCopy(ctx, config.CopySource{URL: res.SourceURL, BlobRef: src}, dst)
	if err != nil {
		s.console.Errorf("Error copying '%s' to '%s': %v", src.Path, dst.Path, err)
		return nil, fmt.Errorf("start copy %s: %w", dst, err)
	}
	res.Status = status

	if err := s.poll(ctx, res); err != nil {
		s.console.Errorf("Error copying '%s' to '%s': %v", src.Path, dst.Path, err)
		return res, err
	}
	s.console.Status(string(res.Status))
	s.log.Debug("copy finished", "destination", dst.String(), "status", res.Status, "waits", res.Waits)

	s.verify(ctx, res)

	if !res.Succeeded() {
		return res, &CopyFailedError{Status: res.Status}
	}
	return res, nil
}

func (s *TransferService) refs(req CopyRequest) (config.BlobRef, config.BlobRef, error) {
	srcContainer := req.SourceContainer
	if srcContainer == "" {
		srcContainer = s.conf.SourceContainer
	}
	dstContainer := req.DestinationContainer
	if dstContainer == "" {
		dstContainer = s.conf.DestinationOrSource()
	}
	if dstContainer == "" {
		dstContainer = srcContainer
	}

	switch {
	case srcContainer == "":
		return config.BlobRef{}, config.BlobRef{}, errors.New("source container is mandatory")
	case req.SourcePath == "" || req.DestinationPath == "":
		return config.BlobRef{}, config.BlobRef{}, errors.New("source and destination paths are mandatory")
	}
	return config.BlobRef{Container: srcContainer, Path: req.SourcePath},
		config.BlobRef{Container: dstContainer, Path: req.DestinationPath}, nil
}
