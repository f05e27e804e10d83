// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package model defines domain models and types used throughout the
// application: Post, Testimonial and Admin.
package model

import (
	"strings"
	"time"
)

// Post represents a published blog post.
//
// The slug is assigned exactly once when the post is created and is never
// recomputed on update, so existing URLs stay stable.
type Post struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Slug      string    `json:"slug"`
	Excerpt   string    `json:"excerpt"`
	Content   string    `json:"content"`
	Author    string    `json:"author"`
	Category  string    `json:"category"`
	Tags      []string  `json:"tags"`
	Image     string    `json:"image"`
	CreatedAt time.Time `json:"created_at"`
}

// ParseTags splits a comma-separated tag list into trimmed tags.
// Empty entries are dropped.
func ParseTags(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	tags := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}
