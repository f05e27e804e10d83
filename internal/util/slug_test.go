// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package util

import (
	"context"
	"errors"
	"regexp"
	"testing"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"simple", "Hello World!", "hello-world"},
		{"already slug", "hello-world", "hello-world"},
		{"uppercase", "GOLANG", "golang"},
		{"whitespace runs", "a \t  b\nc", "a-b-c"},
		{"punctuation stripped", "What's new? (2024 edition)", "whats-new-2024-edition"},
		{"hyphen runs collapsed", "a -- b", "a-b"},
		{"leading and trailing trimmed", "  --hello--  ", "hello"},
		{"digits kept", "Top 10 Tips", "top-10-tips"},
		{"accents stripped", "Café au lait", "caf-au-lait"},
		{"no word characters", "!!! ???", ""},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Slugify(tt.input); got != tt.want {
				t.Errorf("Slugify(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestSlugify_OutputShape(t *testing.T) {
	valid := regexp.MustCompile(`^[a-z0-9-]+$`)
	inputs := []string{
		"Hello World!", "Some Very Long Title With Many Words",
		"MiXeD CaSe 123", "trailing space ", " leading space",
	}
	for _, in := range inputs {
		got := Slugify(in)
		if got == "" {
			t.Errorf("Slugify(%q) = empty for input with word characters", in)
			continue
		}
		if !valid.MatchString(got) {
			t.Errorf("Slugify(%q) = %q, contains characters outside [a-z0-9-]", in, got)
		}
		if got[0] == '-' || got[len(got)-1] == '-' {
			t.Errorf("Slugify(%q) = %q, has leading/trailing hyphen", in, got)
		}
	}
}

// slugSet is a SlugTaken backed by a map from slug to record ID.
func slugSet(records map[string]string) SlugTaken {
	return func(_ context.Context, slug, excludeID string) (bool, error) {
		id, ok := records[slug]
		if !ok {
			return false, nil
		}
		if excludeID != "" && id == excludeID {
			return false, nil
		}
		return true, nil
	}
}

func TestUniqueSlug(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name      string
		base      string
		records   map[string]string
		excludeID string
		want      string
	}{
		{
			name:    "no collision",
			base:    "my-post",
			records: map[string]string{},
			want:    "my-post",
		},
		{
			name:    "one collision",
			base:    "my-post",
			records: map[string]string{"my-post": "a"},
			want:    "my-post-1",
		},
		{
			name:    "two collisions",
			base:    "my-post",
			records: map[string]string{"my-post": "a", "my-post-1": "b"},
			want:    "my-post-2",
		},
		{
			name:      "self collision ignored",
			base:      "my-post",
			records:   map[string]string{"my-post": "self"},
			excludeID: "self",
			want:      "my-post",
		},
		{
			name:      "self collision plus other record",
			base:      "my-post",
			records:   map[string]string{"my-post": "other", "my-post-1": "self"},
			excludeID: "self",
			want:      "my-post-1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := UniqueSlug(ctx, tt.base, slugSet(tt.records), tt.excludeID)
			if err != nil {
				t.Fatalf("UniqueSlug() error: %v", err)
			}
			if got != tt.want {
				t.Errorf("UniqueSlug(%q) = %q, want %q", tt.base, got, tt.want)
			}
		})
	}
}

func TestUniqueSlug_LookupError(t *testing.T) {
	boom := errors.New("store unavailable")
	taken := func(context.Context, string, string) (bool, error) { return false, boom }

	_, err := UniqueSlug(context.Background(), "my-post", taken, "")
	if !errors.Is(err, boom) {
		t.Fatalf("UniqueSlug() error = %v, want wrapped store error", err)
	}
}

func TestIsValidSlug(t *testing.T) {
	valid := []string{"hello", "hello-world", "a1-b2", "snake_case"}
	invalid := []string{"", "-lead", "trail-", "double--hyphen", "UPPER", "with space"}

	for _, s := range valid {
		if !IsValidSlug(s) {
			t.Errorf("IsValidSlug(%q) = false, want true", s)
		}
	}
	for _, s := range invalid {
		if IsValidSlug(s) {
			t.Errorf("IsValidSlug(%q) = true, want false", s)
		}
	}
}
