// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package manifest

import (
	"errors"
	"fmt"
)

// Separator splits a text manifest line into source path and target.
const Separator = " : "

// Entry is one routing line. Line is 1-based.
type Entry struct {
	Line   int
	Source string
	Target string
}

var ErrNoSeparator = errors.New("expected 'source : target'")

type LineError struct {
	Line int
	Text string
	Err  error
}

func (e *LineError) Error() string {
	return fmt.Sprintf("line %d %q: %v", e.Line, e.Text, e.Err)
}

func (e *LineError) Unwrap() error {
	return e.Err
}

// RecordError reports one malformed element of a record array. Index is
// 0-based.
type RecordError struct {
	Origin string
	Index  int
	Err    error
}

func (e *RecordError) Error() string {
	return fmt.Sprintf("%s: record %d: %v", e.Origin, e.Index, e.Err)
}

func (e *RecordError) Unwrap() error {
	return e.Err
}

// AssetGroup is one categorized list of a record, in file order.
type AssetGroup struct {
	Type  string   `json:"type"  yaml:"type"`
	Paths []string `json:"paths" yaml:"paths"`
}

// Record is one language record. Origin names the file or blob it came from.
type Record struct {
	Origin string       `json:"-"`
	LangID string       `json:"langId"`
	Assets []AssetGroup `json:"-"`
}

// Paths flattens the asset groups in order.
func (r Record) Paths() []string {
	var out []string
	for _, g := range r.Assets {
		out = append(out, g.Paths...)
	}
	return out
}
