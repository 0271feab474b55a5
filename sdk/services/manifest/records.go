// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package manifest

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"

	"sigs.k8s.io/yaml"
)

// knownTypes come first, in this order; other list keys follow sorted.
var knownTypes = []string{"images", "videos", "documents"}

func (r *Record) UnmarshalJSON(data []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}

	raw, ok := fields["langId"]
	if !ok {
		return errors.New("missing langId")
	}
	if err := json.Unmarshal(raw, &r.LangID); err != nil {
		return fmt.Errorf("langId: %w", err)
	}
	delete(fields, "langId")

	var extra []string
	for k := range fields {
		if !slices.Contains(knownTypes, k) {
			extra = append(extra, k)
		}
	}
	slices.Sort(extra)

	r.Assets = nil
	for _, k := range append(slices.Clone(knownTypes), extra...) {
		raw, ok := fields[k]
		if !ok {
			continue
		}
		var paths []string
		if err := json.Unmarshal(raw, &paths); err != nil {
			// not an asset list
			continue
		}
		r.Assets = append(r.Assets, AssetGroup{Type: k, Paths: paths})
	}
	return nil
}

// ParseRecords decodes one record or an array of records, in JSON or YAML.
// In an array each element is decoded on its own: a malformed one is returned
// as a RecordError and the others are kept. The error is set only when the
// document as a whole cannot be read.
func ParseRecords(origin string, data []byte) ([]Record, []*RecordError, error) {
	js, err := yaml.YAMLToJSON(data)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", origin, err)
	}
	js = bytes.TrimSpace(js)

	switch {
	case len(js) == 0 || bytes.Equal(js, []byte("null")):
		return nil, nil, nil
	case js[0] == '[':
		var elems []json.RawMessage
		if err := json.Unmarshal(js, &elems); err != nil {
			return nil, nil, fmt.Errorf("%s: %w", origin, err)
		}
		var (
			records []Record
			bad     []*RecordError
		)
		for i, raw := range elems {
			var rec Record
			if err := json.Unmarshal(raw, &rec); err != nil {
				bad = append(bad, &RecordError{Origin: origin, Index: i, Err: err})
				continue
			}
			rec.Origin = origin
			records = append(records, rec)
		}
		return records, bad, nil
	default:
		var rec Record
		if err := json.Unmarshal(js, &rec); err != nil {
			return nil, nil, fmt.Errorf("%s: %w", origin, err)
		}
		rec.Origin = origin
		return []Record{rec}, nil, nil
	}
}

func LoadRecords(path string) ([]Record, []*RecordError, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, err
	}
	return ParseRecords(path, data)
}

// IsRecordFile reports whether name has a record manifest extension.
func IsRecordFile(name string) bool {
	lower := strings.ToLower(name)
	return strings.HasSuffix(lower, ".json") || strings.HasSuffix(lower, ".yaml") || strings.HasSuffix(lower, ".yml")
}
