// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package resolve

import (
	"fmt"
	"maps"
	"os"
	"slices"
	"strings"

	"sigs.k8s.io/yaml"
)

var defaultLanguages = map[string]string{
	"fre-mczbv-78d": "french",
	"hin-pqwrk-23h": "hindi",
}

// LanguageMap maps language identifiers to destination folders. It cannot be
// changed after construction.
type LanguageMap struct {
	folders map[string]string
}

func DefaultLanguages() *LanguageMap {
	return &LanguageMap{folders: maps.Clone(defaultLanguages)}
}

// NewLanguageMap returns the defaults extended (and overridden) by extra.
func NewLanguageMap(extra map[string]string) *LanguageMap {
	folders := maps.Clone(defaultLanguages)
	for id, folder := range extra {
		id, folder = strings.TrimSpace(id), strings.Trim(strings.TrimSpace(folder), "/")
		if id == "" || folder == "" {
			continue
		}
		folders[id] = folder
	}
	return &LanguageMap{folders: folders}
}

// LoadLanguageMap reads a flat YAML or JSON object of id: folder pairs.
func LoadLanguageMap(path string) (*LanguageMap, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read language map: %w", err)
	}
	var extra map[string]string
	if err := yaml.Unmarshal(data, &extra); err != nil {
		return nil, fmt.Errorf("parse language map %s: %w", path, err)
	}
	return NewLanguageMap(extra), nil
}

func (m *LanguageMap) Folder(langID string) (string, error) {
	if folder, ok := m.folders[langID]; ok {
		return folder, nil
	}
	return "", &UnknownLanguageError{LangID: langID}
}

// IDs lists the known identifiers, sorted.
func (m *LanguageMap) IDs() []string {
	return slices.Sorted(maps.Keys(m.folders))
}
