// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package relocate

import (
	"errors"
	"io"
	"log/slog"
	"os"

	"github.com/scc-digitalhub/blobmover/sdk/services/resolve"
	"github.com/scc-digitalhub/blobmover/sdk/services/transfer"
	"github.com/scc-digitalhub/blobmover/sdk/utils"
)

var (
	// ErrManifestNotFound is returned when the manifest file does not exist.
	ErrManifestNotFound = errors.New("manifest not found")
	// ErrManifestInvalid is returned when the manifest exists but cannot be
	// read or parsed as a whole.
	ErrManifestInvalid = errors.New("manifest unreadable")
)

// Summary counts what happened to the entries of one run.
type Summary struct {
	RunID   string `json:"runId"   yaml:"runId"`
	Entries int    `json:"entries" yaml:"entries"`
	Copied  int    `json:"copied"  yaml:"copied"`
	Failed  int    `json:"failed"  yaml:"failed"`
	Skipped int    `json:"skipped" yaml:"skipped"`
}

// RelocateService drives a TransferService over a whole manifest, one entry
// at a time.
type RelocateService struct {
	transfer  *transfer.TransferService
	console   *utils.Console
	log       *slog.Logger
	languages *resolve.LanguageMap
}

type Option func(*RelocateService)

func WithConsole(c *utils.Console) Option {
	return func(s *RelocateService) { s.console = c }
}

func WithLogger(l *slog.Logger) Option {
	return func(s *RelocateService) { s.log = l }
}

func WithLanguages(m *resolve.LanguageMap) Option {
	return func(s *RelocateService) { s.languages = m }
}

func NewRelocateService(tr *transfer.TransferService, opts ...Option) *RelocateService {
	s := &RelocateService{transfer: tr}
	for _, opt := range opts {
		opt(s)
	}
	if s.console == nil {
		s.console = utils.NewConsole(os.Stdout, false)
	}
	if s.log == nil {
		s.log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if s.languages == nil {
		s.languages = resolve.DefaultLanguages()
	}
	return s
}

// run is the state of one batch.
type run struct {
	*RelocateService
	log     *slog.Logger
	summary *Summary
	// dstContainer overrides the configured destination container.
	dstContainer string
}

func (s *RelocateService) newRun(kind string) *run {
	id := utils.NewRunID()
	r := &run{
		RelocateService: s,
		log:             s.log.With("run_id", id, "run", kind),
		summary:         &Summary{RunID: id},
	}
	r.log.Info("run started")
	return r
}

func (r *run) done() *Summary {
	r.log.Info("run finished",
		"entries", r.summary.Entries,
		"copied", r.summary.Copied,
		"failed", r.summary.Failed,
		"skipped", r.summary.Skipped)
	return r.summary
}
