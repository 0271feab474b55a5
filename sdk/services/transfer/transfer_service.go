// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package transfer

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/scc-digitalhub/blobmover/sdk/config"
	"github.com/scc-digitalhub/blobmover/sdk/utils"
)

// WaitFunc pauses between two status reads. It must return early with the
// context error when ctx is done.
type WaitFunc func(ctx context.Context, d time.Duration) error

type TransferService struct {
	store   config.ObjectStore
	conf    config.CopyConfig
	console *utils.Console
	log     *slog.Logger
	wait    WaitFunc
}

type Option func(*TransferService)

// WithStore skips the store construction from the config.
func WithStore(store config.ObjectStore) Option {
	return func(s *TransferService) { s.store = store }
}

func WithConsole(c *utils.Console) Option {
	return func(s *TransferService) { s.console = c }
}

func WithLogger(l *slog.Logger) Option {
	return func(s *TransferService) { s.log = l }
}

func WithWait(w WaitFunc) Option {
	return func(s *TransferService) { s.wait = w }
}

func NewTransferService(ctx context.Context, conf config.Config, opts ...Option) (*TransferService, error) {
	s := &TransferService{conf: conf.Copy, wait: sleep}
	for _, opt := range opts {
		opt(s)
	}

	if s.store == nil {
		store, err := config.NewObjectStore(ctx, conf.Store)
		if err != nil {
			return nil, fmt.Errorf("store init failed: %w", err)
		}
		s.store = store
	}
	if s.console == nil {
		s.console = utils.NewConsole(os.Stdout, false)
	}
	if s.log == nil {
		s.log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return s, nil
}

func (s *TransferService) Store() config.ObjectStore {
	return s.store
}

func (s *TransferService) Config() config.CopyConfig {
	return s.conf
}

func sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
