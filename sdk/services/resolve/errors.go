// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package resolve

import (
	"errors"
	"fmt"
)

// ErrTooFewSegments is returned for source paths without at least a base and
// a file name.
var ErrTooFewSegments = errors.New("source path needs at least 2 segments")

type FolderNotFoundError struct {
	Base   string
	Folder string
}

func (e *FolderNotFoundError) Error() string {
	return fmt.Sprintf("target folder '%s' not found in '%s'", e.Folder, e.Base)
}

type UnknownLanguageError struct {
	LangID string
}

func (e *UnknownLanguageError) Error() string {
	return fmt.Sprintf("unknown language id %q", e.LangID)
}
