// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package resolve

import (
	"fmt"
	"path"
	"strings"
)

// SameOrCrossBase moves a file to a subfolder of its own base when the target
// starts with the base, otherwise it swaps the base and keeps the sub-path.
type SameOrCrossBase struct{}

func (SameOrCrossBase) Resolve(r Route) (string, error) {
	parts, err := segments(r.Source)
	if err != nil {
		return "", err
	}
	base, file := parts[0], parts[len(parts)-1]
	target := unquote(r.Target)

	if strings.HasPrefix(target, base) {
		return base + "/" + target + "/" + file, nil
	}
	return target + "/" + strings.Join(parts[1:], "/"), nil
}

// BaseReplacement replaces the first segment with the target.
type BaseReplacement struct{}

func (BaseReplacement) Resolve(r Route) (string, error) {
	parts, err := segments(r.Source)
	if err != nil {
		return "", err
	}
	parts[0] = unquote(r.Target)
	return strings.Join(parts, "/"), nil
}

// TargetFolder drops the source directories and puts the file under the
// target folder. It is the only policy accepting a bare file name.
type TargetFolder struct{}

func (TargetFolder) Resolve(r Route) (string, error) {
	src := strings.Trim(r.Source, "/")
	if src == "" {
		return "", fmt.Errorf("%w: %q", ErrTooFewSegments, r.Source)
	}
	file := path.Base(src)
	folder := strings.TrimRight(strings.TrimSpace(r.Target), "/")
	if folder == "" {
		return file, nil
	}
	return folder + "/" + file, nil
}
