// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import (
	"fmt"
	"time"
)

// Status is the moderation state of a testimonial. It is a closed set:
// anything other than the three constants below is rejected at the boundary.
type Status string

// Testimonial moderation statuses.
const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// ParseStatus validates a raw status value against the closed set.
func ParseStatus(raw string) (Status, error) {
	switch s := Status(raw); s {
	case StatusPending, StatusApproved, StatusRejected:
		return s, nil
	default:
		return "", fmt.Errorf("invalid status %q", raw)
	}
}

// Rating bounds for testimonials.
const (
	MinRating = 1
	MaxRating = 5
)

// ValidRating reports whether a rating is within the allowed 1..5 range.
func ValidRating(rating int) bool {
	return rating >= MinRating && rating <= MaxRating
}

// Testimonial represents a customer testimonial submitted through the
// public form. New submissions always start out pending moderation.
type Testimonial struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Position  string    `json:"position"`
	Company   string    `json:"company"`
	Industry  string    `json:"industry,omitempty"`
	Body      string    `json:"testimonial"`
	Rating    int       `json:"rating"`
	Status    Status    `json:"status"`
	Image     string    `json:"image"`
	CreatedAt time.Time `json:"created_at"`
}

// IsApproved returns true if the testimonial passed moderation.
func (t *Testimonial) IsApproved() bool {
	return t.Status == StatusApproved
}
