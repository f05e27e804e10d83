// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package seo builds social preview documents for crawler user agents
// and decides which requests should receive them.
package seo

import "strings"

// Classifier decides whether a request comes from a known social or
// search crawler based on its User-Agent header.
type Classifier struct {
	patterns []string
}

// NewClassifier creates a classifier from lowercase User-Agent substrings.
// Patterns are normalized to lowercase so matching stays case-insensitive
// regardless of configuration.
func NewClassifier(patterns []string) *Classifier {
	normalized := make([]string, 0, len(patterns))
	for _, p := range patterns {
		p = strings.ToLower(strings.TrimSpace(p))
		if p != "" {
			normalized = append(normalized, p)
		}
	}
	return &Classifier{patterns: normalized}
}

// IsCrawler reports whether the User-Agent matches any known crawler
// pattern. An empty User-Agent is treated as human so ordinary clients
// with stripped headers still get redirected to the frontend.
func (c *Classifier) IsCrawler(userAgent string) bool {
	if userAgent == "" {
		return false
	}
	ua := strings.ToLower(userAgent)
	for _, p := range c.patterns {
		if strings.Contains(ua, p) {
			return true
		}
	}
	return false
}
