// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package relocate

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/scc-digitalhub/blobmover/sdk/services/manifest"
	"github.com/scc-digitalhub/blobmover/sdk/services/resolve"
	"github.com/scc-digitalhub/blobmover/sdk/services/transfer"
)

// RunText processes a "source : target" manifest with the given policy.
func (s *RelocateService) RunText(ctx context.Context, policy resolve.Policy, path string) (*Summary, error) {
	entries, bad, err := manifest.LoadText(path)
	if err != nil {
		return nil, s.manifestError(path, err)
	}

	r := s.newRun(string(policy))
	resolver, err := r.resolver(ctx, policy)
	if err != nil {
		return nil, err
	}

	r.summary.Entries = len(entries) + len(bad)
	// entries and bad are both in line order, walk them together
	for len(entries) > 0 || len(bad) > 0 {
		if len(bad) > 0 && (len(entries) == 0 || bad[0].Line < entries[0].Line) {
			r.skipLine(bad[0])
			bad = bad[1:]
			continue
		}
		if err := ctx.Err(); err != nil {
			return r.done(), err
		}
		e := entries[0]
		entries = entries[1:]
		r.process(ctx, resolver, resolve.Route{Source: e.Source, Target: e.Target})
	}
	return r.done(), nil
}

func (r *run) skipLine(le *manifest.LineError) {
	r.summary.Skipped++
	r.console.Errorf("Skipping %v", le)
	r.log.Warn("malformed manifest line", "line", le.Line, "error", le.Err)
}

// RunPaired copies each source path into the folder on the same line of the
// destinations manifest.
func (s *RelocateService) RunPaired(ctx context.Context, sourcesPath, destinationsPath string) (*Summary, error) {
	entries, err := manifest.LoadPaired(sourcesPath, destinationsPath)
	if err != nil {
		return nil, s.manifestError(sourcesPath+", "+destinationsPath, err)
	}

	r := s.newRun(string(resolve.PolicyFolder))
	resolver := resolve.TargetFolder{}
	r.summary.Entries = len(entries)
	for _, e := range entries {
		if err := ctx.Err(); err != nil {
			return r.done(), err
		}
		r.process(ctx, resolver, resolve.Route{Source: e.Source, Target: e.Target})
	}
	return r.done(), nil
}

func (s *RelocateService) manifestError(path string, err error) error {
	s.console.Errorf("Error: %v", err)
	if errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("%w: %s", ErrManifestNotFound, path)
	}
	return fmt.Errorf("%w: %w", ErrManifestInvalid, err)
}

// resolver builds the resolver for policy. The sibling one gets a single
// listing of the source container and copies stay inside that container,
// since the listing is what proves the target folder exists.
func (r *run) resolver(ctx context.Context, policy resolve.Policy) (resolve.Resolver, error) {
	opts := resolve.Options{Languages: r.languages}
	if policy == resolve.PolicySibling {
		container := r.transfer.Config().SourceContainer
		listing, err := r.transfer.Store().List(ctx, container, "")
		if err != nil {
			r.console.Errorf("Error listing '%s': %v", container, err)
			return nil, fmt.Errorf("list %s: %w", container, err)
		}
		r.log.Debug("source listing loaded", "container", container, "blobs", len(listing))
		opts.Listing = listing
		if dst := r.transfer.Config().DestinationContainer; dst != "" && dst != container {
			r.log.Warn("sibling moves stay in the source container", "source", container, "ignored_destination", dst)
		}
		r.dstContainer = container
	}
	return resolve.New(policy, opts)
}

// process resolves and copies one entry, recording the outcome.
func (r *run) process(ctx context.Context, resolver resolve.Resolver, route resolve.Route) {
	dst, err := resolver.Resolve(route)
	if err != nil {
		r.summary.Skipped++
		r.console.Errorf("Skipping '%s': %v", route.Source, err)
		r.log.Warn("cannot resolve destination", "source", route.Source, "target", route.Target, "lang_id", route.LangID, "error", err)
		return
	}

	_, err = r.transfer.Copy(ctx, transfer.CopyRequest{
		DestinationContainer: r.dstContainer,
		SourcePath:           route.Source,
		DestinationPath:      dst,
	})
	if err != nil {
		r.summary.Failed++
		r.log.Warn("copy failed", "source", route.Source, "destination", dst, "error", err)
		return
	}
	r.summary.Copied++
}
