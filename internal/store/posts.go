// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/resristi/cms-api/internal/model"
)

const postColumns = `id, title, slug, excerpt, content, author, category, tags, image, created_at`

// CreatePostParams holds the fields for creating a post. The ID and
// creation timestamp are store-assigned.
type CreatePostParams struct {
	Title    string
	Slug     string
	Excerpt  string
	Content  string
	Author   string
	Category string
	Tags     []string
	Image    string
}

// CreatePost inserts a new post and returns it with its assigned ID.
func (q *Queries) CreatePost(ctx context.Context, arg CreatePostParams) (model.Post, error) {
	post := model.Post{
		ID:        uuid.NewString(),
		Title:     arg.Title,
		Slug:      arg.Slug,
		Excerpt:   arg.Excerpt,
		Content:   arg.Content,
		Author:    arg.Author,
		Category:  arg.Category,
		Tags:      arg.Tags,
		Image:     arg.Image,
		CreatedAt: time.Now().UTC(),
	}

	tags, err := encodeTags(post.Tags)
	if err != nil {
		return model.Post{}, err
	}

	_, err = q.db.ExecContext(ctx, `
		INSERT INTO posts (id, title, slug, excerpt, content, author, category, tags, image, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		post.ID, post.Title, post.Slug, post.Excerpt, post.Content,
		post.Author, post.Category, tags, post.Image, post.CreatedAt,
	)
	if err != nil {
		return model.Post{}, fmt.Errorf("creating post: %w", err)
	}

	return post, nil
}

// GetPostByID returns a post by its identifier.
// Returns sql.ErrNoRows if no post matches.
func (q *Queries) GetPostByID(ctx context.Context, id string) (model.Post, error) {
	row := q.db.QueryRowContext(ctx, `SELECT `+postColumns+` FROM posts WHERE id = ?`, id)
	return scanPost(row)
}

// GetPostBySlug returns a post by its slug.
// Returns sql.ErrNoRows if no post matches.
func (q *Queries) GetPostBySlug(ctx context.Context, slug string) (model.Post, error) {
	row := q.db.QueryRowContext(ctx, `SELECT `+postColumns+` FROM posts WHERE slug = ?`, slug)
	return scanPost(row)
}

// SlugTaken reports whether any post other than excludeID already holds the
// given slug. It satisfies util.SlugTaken.
func (q *Queries) SlugTaken(ctx context.Context, slug, excludeID string) (bool, error) {
	var exists bool
	err := q.db.QueryRowContext(ctx, `
		SELECT EXISTS (SELECT 1 FROM posts WHERE slug = ? AND (? = '' OR id <> ?))`,
		slug, excludeID, excludeID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("checking slug: %w", err)
	}
	return exists, nil
}

// ListPosts returns all posts, newest first.
func (q *Queries) ListPosts(ctx context.Context) ([]model.Post, error) {
	rows, err := q.db.QueryContext(ctx, `
		SELECT `+postColumns+` FROM posts ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("listing posts: %w", err)
	}
	defer func() { _ = rows.Close() }()

	return collectPosts(rows)
}

// ListPostsMissingSlug returns posts that have not been assigned a slug yet,
// oldest first so backfilled suffixes stay deterministic.
func (q *Queries) ListPostsMissingSlug(ctx context.Context) ([]model.Post, error) {
	rows, err := q.db.QueryContext(ctx, `
		SELECT `+postColumns+` FROM posts WHERE slug = '' ORDER BY created_at ASC`)
	if err != nil {
		return nil, fmt.Errorf("listing posts without slug: %w", err)
	}
	defer func() { _ = rows.Close() }()

	return collectPosts(rows)
}

// SetPostSlug assigns a slug to an existing post.
func (q *Queries) SetPostSlug(ctx context.Context, id, slug string) error {
	res, err := q.db.ExecContext(ctx, `UPDATE posts SET slug = ? WHERE id = ?`, slug, id)
	if err != nil {
		return fmt.Errorf("setting post slug: %w", err)
	}
	return requireRow(res)
}

// UpdatePostParams holds the updatable fields of a post. The slug is
// deliberately absent: it is assigned once at creation and never changes.
type UpdatePostParams struct {
	ID       string
	Title    string
	Excerpt  string
	Content  string
	Author   string
	Category string
	Tags     []string
	Image    *string // nil leaves the stored image untouched
}

// UpdatePost updates a post's fields and returns the stored result.
// Returns sql.ErrNoRows if no post matches.
func (q *Queries) UpdatePost(ctx context.Context, arg UpdatePostParams) (model.Post, error) {
	tags, err := encodeTags(arg.Tags)
	if err != nil {
		return model.Post{}, err
	}

	var res sql.Result
	if arg.Image != nil {
		res, err = q.db.ExecContext(ctx, `
			UPDATE posts SET title = ?, excerpt = ?, content = ?, author = ?, category = ?, tags = ?, image = ?
			WHERE id = ?`,
			arg.Title, arg.Excerpt, arg.Content, arg.Author, arg.Category, tags, *arg.Image, arg.ID)
	} else {
		res, err = q.db.ExecContext(ctx, `
			UPDATE posts SET title = ?, excerpt = ?, content = ?, author = ?, category = ?, tags = ?
			WHERE id = ?`,
			arg.Title, arg.Excerpt, arg.Content, arg.Author, arg.Category, tags, arg.ID)
	}
	if err != nil {
		return model.Post{}, fmt.Errorf("updating post: %w", err)
	}
	if err := requireRow(res); err != nil {
		return model.Post{}, err
	}

	return q.GetPostByID(ctx, arg.ID)
}

// DeletePost removes a post. Returns sql.ErrNoRows if no post matches.
func (q *Queries) DeletePost(ctx context.Context, id string) error {
	res, err := q.db.ExecContext(ctx, `DELETE FROM posts WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting post: %w", err)
	}
	return requireRow(res)
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanPost(row rowScanner) (model.Post, error) {
	var p model.Post
	var tags string
	err := row.Scan(&p.ID, &p.Title, &p.Slug, &p.Excerpt, &p.Content,
		&p.Author, &p.Category, &tags, &p.Image, &p.CreatedAt)
	if err != nil {
		return model.Post{}, err
	}
	if p.Tags, err = decodeTags(tags); err != nil {
		return model.Post{}, err
	}
	return p, nil
}

func collectPosts(rows *sql.Rows) ([]model.Post, error) {
	var posts []model.Post
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning post: %w", err)
		}
		posts = append(posts, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading posts: %w", err)
	}
	return posts, nil
}

func encodeTags(tags []string) (string, error) {
	if tags == nil {
		tags = []string{}
	}
	data, err := json.Marshal(tags)
	if err != nil {
		return "", fmt.Errorf("encoding tags: %w", err)
	}
	return string(data), nil
}

func decodeTags(raw string) ([]string, error) {
	if raw == "" {
		return nil, nil
	}
	var tags []string
	if err := json.Unmarshal([]byte(raw), &tags); err != nil {
		return nil, fmt.Errorf("decoding tags: %w", err)
	}
	if len(tags) == 0 {
		return nil, nil
	}
	return tags, nil
}

// requireRow converts a zero-row update/delete into sql.ErrNoRows.
func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
