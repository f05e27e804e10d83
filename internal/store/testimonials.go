// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/resristi/cms-api/internal/model"
)

const testimonialColumns = `id, name, position, company, industry, body, rating, status, image, created_at`

// CreateTestimonialParams holds the fields for a new testimonial
// submission. Status always starts out pending.
type CreateTestimonialParams struct {
	Name     string
	Position string
	Company  string
	Industry string
	Body     string
	Rating   int
	Image    string
}

// CreateTestimonial inserts a pending testimonial and returns it.
func (q *Queries) CreateTestimonial(ctx context.Context, arg CreateTestimonialParams) (model.Testimonial, error) {
	tm := model.Testimonial{
		ID:        uuid.NewString(),
		Name:      arg.Name,
		Position:  arg.Position,
		Company:   arg.Company,
		Industry:  arg.Industry,
		Body:      arg.Body,
		Rating:    arg.Rating,
		Status:    model.StatusPending,
		Image:     arg.Image,
		CreatedAt: time.Now().UTC(),
	}

	_, err := q.db.ExecContext(ctx, `
		INSERT INTO testimonials (id, name, position, company, industry, body, rating, status, image, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		tm.ID, tm.Name, tm.Position, tm.Company, tm.Industry,
		tm.Body, tm.Rating, string(tm.Status), tm.Image, tm.CreatedAt,
	)
	if err != nil {
		return model.Testimonial{}, fmt.Errorf("creating testimonial: %w", err)
	}

	return tm, nil
}

// GetTestimonialByID returns a testimonial by its identifier.
// Returns sql.ErrNoRows if no testimonial matches.
func (q *Queries) GetTestimonialByID(ctx context.Context, id string) (model.Testimonial, error) {
	row := q.db.QueryRowContext(ctx, `
		SELECT `+testimonialColumns+` FROM testimonials WHERE id = ?`, id)
	return scanTestimonial(row)
}

// ListTestimonials returns all testimonials regardless of status, newest first.
func (q *Queries) ListTestimonials(ctx context.Context) ([]model.Testimonial, error) {
	rows, err := q.db.QueryContext(ctx, `
		SELECT `+testimonialColumns+` FROM testimonials ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("listing testimonials: %w", err)
	}
	defer func() { _ = rows.Close() }()

	return collectTestimonials(rows)
}

// ListTestimonialsByStatus returns testimonials with the given status, newest first.
func (q *Queries) ListTestimonialsByStatus(ctx context.Context, status model.Status) ([]model.Testimonial, error) {
	rows, err := q.db.QueryContext(ctx, `
		SELECT `+testimonialColumns+` FROM testimonials WHERE status = ? ORDER BY created_at DESC`,
		string(status))
	if err != nil {
		return nil, fmt.Errorf("listing testimonials by status: %w", err)
	}
	defer func() { _ = rows.Close() }()

	return collectTestimonials(rows)
}

// UpdateTestimonialStatus transitions a testimonial's moderation status and
// returns the stored result. Returns sql.ErrNoRows if no testimonial matches.
func (q *Queries) UpdateTestimonialStatus(ctx context.Context, id string, status model.Status) (model.Testimonial, error) {
	res, err := q.db.ExecContext(ctx, `
		UPDATE testimonials SET status = ? WHERE id = ?`, string(status), id)
	if err != nil {
		return model.Testimonial{}, fmt.Errorf("updating testimonial status: %w", err)
	}
	if err := requireRow(res); err != nil {
		return model.Testimonial{}, err
	}

	return q.GetTestimonialByID(ctx, id)
}

// DeleteTestimonial removes a testimonial. Returns sql.ErrNoRows if no
// testimonial matches.
func (q *Queries) DeleteTestimonial(ctx context.Context, id string) error {
	res, err := q.db.ExecContext(ctx, `DELETE FROM testimonials WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting testimonial: %w", err)
	}
	return requireRow(res)
}

func scanTestimonial(row rowScanner) (model.Testimonial, error) {
	var tm model.Testimonial
	var status string
	err := row.Scan(&tm.ID, &tm.Name, &tm.Position, &tm.Company, &tm.Industry,
		&tm.Body, &tm.Rating, &status, &tm.Image, &tm.CreatedAt)
	if err != nil {
		return model.Testimonial{}, err
	}
	tm.Status = model.Status(status)
	return tm, nil
}

func collectTestimonials(rows *sql.Rows) ([]model.Testimonial, error) {
	var out []model.Testimonial
	for rows.Next() {
		tm, err := scanTestimonial(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning testimonial: %w", err)
		}
		out = append(out, tm)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading testimonials: %w", err)
	}
	return out, nil
}
