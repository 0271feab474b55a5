// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package resolve

import (
	"fmt"
	"strings"
)

// Policy names one destination-path strategy.
type Policy string

const (
	PolicySibling Policy = "sibling"
	PolicyMove    Policy = "move"
	PolicyRebase  Policy = "rebase"
	PolicyLangMap Policy = "langmap"
	PolicyFolder  Policy = "folder"
)

var policies = []Policy{PolicySibling, PolicyMove, PolicyRebase, PolicyLangMap, PolicyFolder}

// Route is one routing instruction. Target is a folder or a base identifier,
// LangID is only read by the language policy.
type Route struct {
	Source string
	Target string
	LangID string
}

// Resolver derives a destination path from a route. Resolvers hold no
// mutable state and may be shared.
type Resolver interface {
	Resolve(r Route) (string, error)
}

type Options struct {
	// Listing is the known-path listing searched by the sibling policy.
	Listing []string
	// Languages backs the language policy; nil means DefaultLanguages.
	Languages *LanguageMap
}

func ParsePolicy(s string) (Policy, error) {
	p := Policy(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range policies {
		if p == known {
			return p, nil
		}
	}
	return "", fmt.Errorf("unknown policy %q", s)
}

// New returns the resolver for policy.
func New(policy Policy, opts Options) (Resolver, error) {
	switch policy {
	case PolicySibling:
		return NewSiblingFolder(opts.Listing), nil
	case PolicyMove:
		return SameOrCrossBase{}, nil
	case PolicyRebase:
		return BaseReplacement{}, nil
	case PolicyLangMap:
		langs := opts.Languages
		if langs == nil {
			langs = DefaultLanguages()
		}
		return LanguageFolder{Languages: langs}, nil
	case PolicyFolder:
		return TargetFolder{}, nil
	default:
		return nil, fmt.Errorf("unknown policy %q", policy)
	}
}

// segments splits a blob path, ignoring leading and trailing slashes.
func segments(path string) ([]string, error) {
	parts := strings.Split(strings.Trim(path, "/"), "/")
	if len(parts) < 2 {
		return nil, fmt.Errorf("%w: %q", ErrTooFewSegments, path)
	}
	return parts, nil
}

func unquote(s string) string {
	return strings.Trim(strings.TrimSpace(s), `"`)
}
