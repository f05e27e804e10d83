// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package util provides general-purpose utility functions including
// URL slug generation and uniqueness resolution.
package util

import (
	"context"
	"fmt"
	"regexp"
	"strings"
)

var (
	// whitespaceRuns matches runs of whitespace
	whitespaceRuns = regexp.MustCompile(`\s+`)
	// nonWordChars matches everything that is not a word character or hyphen
	nonWordChars = regexp.MustCompile(`[^\w-]+`)
	// multipleHyphens matches multiple consecutive hyphens
	multipleHyphens = regexp.MustCompile(`-{2,}`)
)

// Slugify converts a string to a URL-friendly slug.
// It converts to lowercase, replaces whitespace runs with single hyphens,
// strips everything that is not a word character or hyphen, collapses hyphen
// runs and trims leading/trailing hyphens.
//
// TODO: a title with no word characters slugifies to the empty string, and
// colliding empty slugs then resolve to "-1", "-2", ...; decide whether to
// reject such titles upstream or fall back to the post ID.
func Slugify(s string) string {
	result := strings.ToLower(s)
	result = whitespaceRuns.ReplaceAllString(result, "-")
	result = nonWordChars.ReplaceAllString(result, "")
	result = multipleHyphens.ReplaceAllString(result, "-")
	return strings.Trim(result, "-")
}

// IsValidSlug checks if a string is a valid slug format.
func IsValidSlug(s string) bool {
	if s == "" {
		return false
	}

	for _, r := range s {
		if !((r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '-' || r == '_') {
			return false
		}
	}

	if s[0] == '-' || s[len(s)-1] == '-' {
		return false
	}

	return !strings.Contains(s, "--")
}

// SlugTaken reports whether a slug is already held by a record other than
// excludeID. An empty excludeID excludes nothing.
type SlugTaken func(ctx context.Context, slug, excludeID string) (bool, error)

// UniqueSlug resolves a candidate base slug against existing records by
// suffixing integers until no collision remains: base, base-1, base-2, ...
//
// Each trial costs one store round-trip. Two concurrent creations with the
// same title can still race past this check, so the store keeps a UNIQUE
// constraint on the slug column as the real enforcement; this function only
// precomputes a readable candidate.
func UniqueSlug(ctx context.Context, base string, taken SlugTaken, excludeID string) (string, error) {
	candidate := base
	for counter := 1; ; counter++ {
		exists, err := taken(ctx, candidate, excludeID)
		if err != nil {
			return "", fmt.Errorf("checking slug %q: %w", candidate, err)
		}
		if !exists {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s-%d", base, counter)
	}
}
