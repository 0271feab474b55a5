// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package relocate

import (
	"context"

	"github.com/scc-digitalhub/blobmover/sdk/services/manifest"
	"github.com/scc-digitalhub/blobmover/sdk/services/resolve"
)

// RunRecords files every asset of every record under its language folder.
// An unknown language id skips that asset only.
func (s *RelocateService) RunRecords(ctx context.Context, records []manifest.Record) (*Summary, error) {
	r := s.newRun(string(resolve.PolicyLangMap))
	resolver := resolve.LanguageFolder{Languages: s.languages}

	for _, rec := range records {
		for _, p := range rec.Paths() {
			if err := ctx.Err(); err != nil {
				return r.done(), err
			}
			r.summary.Entries++
			r.process(ctx, resolver, resolve.Route{Source: p, LangID: rec.LangID})
		}
	}
	return r.done(), nil
}

// RunRecordFile processes a local JSON or YAML record manifest. Malformed
// records of an array are reported and skipped.
func (s *RelocateService) RunRecordFile(ctx context.Context, path string) (*Summary, error) {
	records, badRecs, err := manifest.LoadRecords(path)
	if err != nil {
		return nil, s.manifestError(path, err)
	}
	bad := make([]error, 0, len(badRecs))
	for _, e := range badRecs {
		bad = append(bad, e)
	}
	return s.runRecords(ctx, records, bad)
}

// RunDiscovered processes the record manifests stored under prefix in the
// source container. Unreadable manifests are reported and skipped.
func (s *RelocateService) RunDiscovered(ctx context.Context, prefix string) (*Summary, error) {
	container := s.transfer.Config().SourceContainer
	records, bad, err := manifest.Discover(ctx, s.transfer.Store(), container, prefix)
	if err != nil {
		s.console.Errorf("Error: %v", err)
		return nil, err
	}
	return s.runRecords(ctx, records, bad)
}

func (s *RelocateService) runRecords(ctx context.Context, records []manifest.Record, bad []error) (*Summary, error) {
	for _, e := range bad {
		s.console.Errorf("Skipping %v", e)
		s.log.Warn("unreadable record", "error", e)
	}

	summary, err := s.RunRecords(ctx, records)
	if summary != nil {
		summary.Skipped += len(bad)
	}
	return summary, err
}
