// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package seo

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/resristi/cms-api/internal/model"
)

func TestClassifierIsCrawler(t *testing.T) {
	c := NewClassifier([]string{
		"facebookexternalhit", "linkedinbot", "twitterbot", "whatsapp",
		"telegrambot", "googlebot", "bingbot", "discordbot",
	})

	tests := []struct {
		name      string
		userAgent string
		want      bool
	}{
		{"facebook", "facebookexternalhit/1.1 (+http://www.facebook.com/externalhit_uatext.php)", true},
		{"linkedin", "LinkedInBot/1.0 (compatible; Mozilla/5.0)", true},
		{"twitter", "Twitterbot/1.0", true},
		{"whatsapp", "WhatsApp/2.23.2.72 A", true},
		{"telegram", "TelegramBot (like TwitterBot)", true},
		{"google", "Mozilla/5.0 (compatible; Googlebot/2.1; +http://www.google.com/bot.html)", true},
		{"bing", "Mozilla/5.0 (compatible; bingbot/2.0)", true},
		{"discord", "Mozilla/5.0 (compatible; Discordbot/2.0; +https://discordapp.com)", true},
		{"mixed case", "FACEBOOKEXTERNALHIT/1.1", true},
		{"chrome", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 Chrome/120.0", false},
		{"curl", "curl/8.4.0", false},
		{"empty", "", false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := c.IsCrawler(tc.userAgent); got != tc.want {
				t.Errorf("IsCrawler(%q) = %v, want %v", tc.userAgent, got, tc.want)
			}
		})
	}
}

func TestClassifierCustomPatterns(t *testing.T) {
	c := NewClassifier([]string{" SlackBot ", ""})
	if !c.IsCrawler("Slackbot-LinkExpanding 1.0") {
		t.Error("custom pattern should match after normalization")
	}
	if c.IsCrawler("Mozilla/5.0") {
		t.Error("empty pattern must not match everything")
	}
}

func newTestSite() *SiteConfig {
	return &SiteConfig{
		SiteName:       "Example",
		PublicURL:      "https://api.example.com",
		DefaultOGImage: "/default-og.jpg",
	}
}

func TestBuildMetaExcerpt(t *testing.T) {
	post := &model.Post{
		ID:      "0f4d9a1c",
		Title:   "First Post",
		Slug:    "first-post",
		Excerpt: "A short summary.",
		Content: "# Heading\n\nLong body text.",
		Image:   "uploads/cover.jpg",
	}

	meta := BuildMeta(post, newTestSite())

	if meta.Title != "First Post" {
		t.Errorf("Title = %q", meta.Title)
	}
	if meta.Description != "A short summary." {
		t.Errorf("Description = %q, want excerpt verbatim", meta.Description)
	}
	if meta.Image != "https://api.example.com/uploads/cover.jpg" {
		t.Errorf("Image = %q", meta.Image)
	}
	if meta.URL != "https://api.example.com/blogs/first-post" {
		t.Errorf("URL = %q", meta.URL)
	}
	if meta.OGType != "article" || meta.TwitterCard != "summary_large_image" {
		t.Errorf("OGType = %q, TwitterCard = %q", meta.OGType, meta.TwitterCard)
	}
}

func TestBuildMetaDerivedDescription(t *testing.T) {
	post := &model.Post{
		ID:      "0f4d9a1c",
		Title:   "First Post",
		Slug:    "first-post",
		Content: "# Heading\n\nSome **bold** body text.",
	}

	meta := BuildMeta(post, newTestSite())

	if strings.ContainsAny(meta.Description, "<>#*") {
		t.Errorf("Description still carries markup: %q", meta.Description)
	}
	if !strings.Contains(meta.Description, "bold body text") {
		t.Errorf("Description = %q, want body text", meta.Description)
	}
	if meta.Image != "https://api.example.com/default-og.jpg" {
		t.Errorf("Image = %q, want site default", meta.Image)
	}
}

func TestBuildMetaTruncation(t *testing.T) {
	post := &model.Post{
		ID:      "0f4d9a1c",
		Title:   "Long",
		Slug:    "long",
		Excerpt: strings.Repeat("lorem ipsum ", 30),
	}

	meta := BuildMeta(post, newTestSite())

	if len(meta.Description) > descriptionLimit+3 {
		t.Errorf("Description length %d exceeds limit", len(meta.Description))
	}
	if !strings.HasSuffix(meta.Description, "...") {
		t.Errorf("truncated description should end with ellipsis: %q", meta.Description)
	}
}

func TestBuildMetaFallsBackToID(t *testing.T) {
	post := &model.Post{ID: "0f4d9a1c", Title: "No Slug"}

	meta := BuildMeta(post, newTestSite())

	if meta.URL != "https://api.example.com/blogs/0f4d9a1c" {
		t.Errorf("URL = %q, want ID token when slug is empty", meta.URL)
	}
}

func TestMakeAbsoluteURL(t *testing.T) {
	tests := []struct {
		name string
		url  string
		want string
	}{
		{"relative", "uploads/a.jpg", "https://api.example.com/uploads/a.jpg"},
		{"rooted", "/uploads/a.jpg", "https://api.example.com/uploads/a.jpg"},
		{"absolute", "https://cdn.example.com/a.jpg", "https://cdn.example.com/a.jpg"},
		{"backslashes", "uploads\\a.jpg", "https://api.example.com/uploads/a.jpg"},
		{"empty", "", ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := makeAbsoluteURL(tc.url, "https://api.example.com"); got != tc.want {
				t.Errorf("makeAbsoluteURL(%q) = %q, want %q", tc.url, got, tc.want)
			}
		})
	}
}

func TestRenderPreview(t *testing.T) {
	post := &model.Post{
		ID:      "0f4d9a1c",
		Title:   `Quotes & <Angles>`,
		Slug:    "quotes",
		Excerpt: "Summary.",
		Image:   "uploads/a.jpg",
	}

	html, err := RenderPreview(BuildMeta(post, newTestSite()))
	if err != nil {
		t.Fatalf("RenderPreview: %v", err)
	}

	doc := string(html)
	for _, want := range []string{
		`og:title`, `og:description`, `og:image`, `og:url`, `og:type`,
		`twitter:card`, `summary_large_image`,
		`https://api.example.com/blogs/quotes`,
		`https://api.example.com/uploads/a.jpg`,
	} {
		if !strings.Contains(doc, want) {
			t.Errorf("preview missing %q", want)
		}
	}
	if !strings.Contains(doc, `<img src="https://api.example.com/uploads/a.jpg"`) {
		t.Error("preview body must carry a visible img tag")
	}
	if strings.Contains(doc, "<Angles>") {
		t.Error("title must be HTML-escaped")
	}
}

func TestRenderPreviewNoImage(t *testing.T) {
	site := newTestSite()
	site.DefaultOGImage = ""
	post := &model.Post{ID: "x", Title: "Plain", Slug: "plain"}

	html, err := RenderPreview(BuildMeta(post, site))
	if err != nil {
		t.Fatalf("RenderPreview: %v", err)
	}
	if strings.Contains(string(html), "og:image") {
		t.Error("og:image must be omitted when no image resolves")
	}
	if strings.Contains(string(html), "<img") {
		t.Error("body img must be omitted when no image resolves")
	}
}

func TestTruncateTextMultibyte(t *testing.T) {
	text := strings.Repeat("日本語", 100)

	got := truncateText(text, descriptionLimit)

	if !utf8.ValidString(got) {
		t.Fatalf("truncateText produced invalid UTF-8: %q", got)
	}
	if len(got) > descriptionLimit+3 {
		t.Errorf("truncated length %d exceeds limit", len(got))
	}
	if !strings.HasSuffix(got, "...") {
		t.Errorf("truncated text should end with ellipsis: %q", got)
	}
}
