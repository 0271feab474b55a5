// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package resolve

import (
	"slices"
	"strings"
)

// SiblingFolder moves a file into a sibling folder of the same base, provided
// the folder already exists in the listing.
type SiblingFolder struct {
	listing []string
}

// NewSiblingFolder copies and sorts listing, so the first match is the
// lexicographically smallest one.
func NewSiblingFolder(listing []string) SiblingFolder {
	sorted := slices.Clone(listing)
	slices.Sort(sorted)
	return SiblingFolder{listing: sorted}
}

func (s SiblingFolder) Resolve(r Route) (string, error) {
	parts, err := segments(r.Source)
	if err != nil {
		return "", err
	}
	base, file := parts[0], parts[len(parts)-1]
	target := strings.TrimSpace(r.Target)

	if _, ok := s.match(base + "/" + target + "/"); !ok {
		return "", &FolderNotFoundError{Base: base, Folder: target}
	}
	return base + "/" + target + "/" + file, nil
}

func (s SiblingFolder) match(prefix string) (string, bool) {
	i, _ := slices.BinarySearch(s.listing, prefix)
	if i < len(s.listing) && strings.HasPrefix(s.listing[i], prefix) {
		return s.listing[i], true
	}
	return "", false
}
