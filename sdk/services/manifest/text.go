// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package manifest

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// ParseText reads a "source : target" manifest. Malformed lines are returned
// as LineErrors and do not stop the parse; only read errors do.
func ParseText(r io.Reader) ([]Entry, []*LineError, error) {
	var (
		entries []Entry
		bad     []*LineError
	)
	sc := bufio.NewScanner(r)
	n := 0
	for sc.Scan() {
		n++
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		src, target, ok := strings.Cut(line, Separator)
		if !ok || strings.Contains(target, Separator) {
			bad = append(bad, &LineError{Line: n, Text: line, Err: ErrNoSeparator})
			continue
		}
		entries = append(entries, Entry{
			Line:   n,
			Source: strings.TrimSpace(src),
			Target: strings.TrimSpace(target),
		})
	}
	if err := sc.Err(); err != nil {
		return entries, bad, fmt.Errorf("read manifest: %w", err)
	}
	return entries, bad, nil
}

// ParsePaired zips a list of source paths with a list of destination
// folders, line by line. Extra lines in the longer list are ignored.
func ParsePaired(sources, destinations io.Reader) ([]Entry, error) {
	src := bufio.NewScanner(sources)
	dst := bufio.NewScanner(destinations)

	var entries []Entry
	n := 0
	for src.Scan() && dst.Scan() {
		n++
		source := strings.TrimSpace(src.Text())
		if source == "" {
			continue
		}
		entries = append(entries, Entry{
			Line:   n,
			Source: source,
			Target: strings.TrimSpace(dst.Text()),
		})
	}
	if err := src.Err(); err != nil {
		return entries, fmt.Errorf("read sources: %w", err)
	}
	if err := dst.Err(); err != nil {
		return entries, fmt.Errorf("read destinations: %w", err)
	}
	return entries, nil
}

// LoadText opens and parses a text manifest from disk.
func LoadText(path string) ([]Entry, []*LineError, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()
	return ParseText(f)
}

// LoadPaired opens and zips two manifests from disk.
func LoadPaired(sourcesPath, destinationsPath string) ([]Entry, error) {
	src, err := os.Open(sourcesPath)
	if err != nil {
		return nil, err
	}
	defer src.Close()

	dst, err := os.Open(destinationsPath)
	if err != nil {
		return nil, err
	}
	defer dst.Close()

	return ParsePaired(src, dst)
}
