// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package manifest

import (
	"context"
	"fmt"

	"github.com/scc-digitalhub/blobmover/sdk/config"
)

// Discover reads every record manifest stored under prefix. A blob that
// cannot be read or parsed, or a malformed record inside an array, is
// reported in the returned slice and skipped.
func Discover(ctx context.Context, store config.ObjectStore, container, prefix string) ([]Record, []error, error) {
	names, err := store.List(ctx, container, prefix)
	if err != nil {
		return nil, nil, fmt.Errorf("list %s/%s: %w", container, prefix, err)
	}

	var (
		records []Record
		bad     []error
	)
	for _, name := range names {
		if !IsRecordFile(name) {
			continue
		}
		data, err := store.Read(ctx, config.BlobRef{Container: container, Path: name})
		if err != nil {
			bad = append(bad, fmt.Errorf("read %s: %w", name, err))
			continue
		}
		recs, badRecs, err := ParseRecords(name, data)
		if err != nil {
			bad = append(bad, err)
			continue
		}
		for _, e := range badRecs {
			bad = append(bad, e)
		}
		records = append(records, recs...)
	}
	return records, bad, nil
}
