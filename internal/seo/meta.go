// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package seo

import (
	"bytes"
	"strings"
	"unicode/utf8"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"

	"github.com/resristi/cms-api/internal/model"
)

// descriptionLimit caps the meta description length. Crawlers cut off
// around this point anyway.
const descriptionLimit = 150

// Meta holds the Open Graph and Twitter card data for a post preview.
type Meta struct {
	Title       string
	Description string
	Image       string // absolute URL
	URL         string // canonical URL of the post
	SiteName    string
	OGType      string
	TwitterCard string
}

// SiteConfig carries the site-wide settings needed to build previews.
type SiteConfig struct {
	SiteName       string
	PublicURL      string // base URL of this backend, no trailing slash
	DefaultOGImage string
}

var (
	markdown   = goldmark.New()
	strictHTML = bluemonday.StrictPolicy()
)

// BuildMeta assembles preview metadata for a post with the same
// fallback order the public pages use: excerpt before derived body
// text, post image before the site default.
func BuildMeta(post *model.Post, site *SiteConfig) *Meta {
	meta := &Meta{
		SiteName:    site.SiteName,
		OGType:      "article",
		TwitterCard: "summary_large_image",
		Title:       post.Title,
	}

	if post.Excerpt != "" {
		meta.Description = truncateText(post.Excerpt, descriptionLimit)
	} else {
		meta.Description = truncateText(markdownToText(post.Content), descriptionLimit)
	}

	if post.Image != "" {
		meta.Image = makeAbsoluteURL(post.Image, site.PublicURL)
	} else if site.DefaultOGImage != "" {
		meta.Image = makeAbsoluteURL(site.DefaultOGImage, site.PublicURL)
	}

	token := post.Slug
	if token == "" {
		token = post.ID
	}
	meta.URL = site.PublicURL + "/blogs/" + token

	return meta
}

// markdownToText renders markdown to HTML and strips every tag,
// leaving plain text suitable for a meta description.
func markdownToText(source string) string {
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(source), &buf); err != nil {
		// Fall back to the raw source. StrictPolicy still removes any
		// inline HTML the author wrote.
		return strings.Join(strings.Fields(strictHTML.Sanitize(source)), " ")
	}
	return strings.Join(strings.Fields(strictHTML.Sanitize(buf.String())), " ")
}

// truncateText truncates text to at most maxLen bytes, preferring a
// word boundary and never splitting a multi-byte rune.
func truncateText(text string, maxLen int) string {
	text = strings.TrimSpace(text)
	if len(text) <= maxLen {
		return text
	}

	cut := maxLen
	for cut > 0 && !utf8.RuneStart(text[cut]) {
		cut--
	}
	truncated := text[:cut]
	lastSpace := strings.LastIndex(truncated, " ")
	if lastSpace > maxLen/2 {
		truncated = truncated[:lastSpace]
	}

	return strings.TrimSpace(truncated) + "..."
}

// makeAbsoluteURL ensures a URL is absolute by prepending the site URL
// if needed. Backslashes are normalized first since stored upload paths
// may use them.
func makeAbsoluteURL(url, siteURL string) string {
	if url == "" {
		return ""
	}
	url = strings.ReplaceAll(url, "\\", "/")
	if strings.HasPrefix(url, "http://") || strings.HasPrefix(url, "https://") {
		return url
	}
	siteURL = strings.TrimSuffix(siteURL, "/")
	if !strings.HasPrefix(url, "/") {
		url = "/" + url
	}
	return siteURL + url
}
