// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/resristi/cms-api/internal/model"
	"github.com/resristi/cms-api/internal/store"
	"github.com/resristi/cms-api/internal/testutil"
)

func newQueries(t *testing.T) *store.Queries {
	t.Helper()
	return store.New(testutil.TestDB(t))
}

func TestCreateAndGetPost(t *testing.T) {
	ctx := context.Background()
	queries := newQueries(t)

	created, err := queries.CreatePost(ctx, store.CreatePostParams{
		Title:    "Hello World",
		Slug:     "hello-world",
		Excerpt:  "A greeting.",
		Content:  "Hello, **world**.",
		Author:   "Jo",
		Category: "general",
		Tags:     []string{"go", "web"},
	})
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)
	assert.False(t, created.CreatedAt.IsZero())

	byID, err := queries.GetPostByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Hello World", byID.Title)
	assert.Equal(t, []string{"go", "web"}, byID.Tags)

	bySlug, err := queries.GetPostBySlug(ctx, "hello-world")
	require.NoError(t, err)
	assert.Equal(t, created.ID, bySlug.ID)

	_, err = queries.GetPostByID(ctx, "missing")
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestSlugUniqueConstraint(t *testing.T) {
	ctx := context.Background()
	queries := newQueries(t)

	_, err := queries.CreatePost(ctx, store.CreatePostParams{Title: "One", Slug: "dup"})
	require.NoError(t, err)

	// Second insert with the same slug must be refused by the schema even
	// though the resolver normally prevents this.
	_, err = queries.CreatePost(ctx, store.CreatePostParams{Title: "Two", Slug: "dup"})
	require.Error(t, err)

	// Empty slugs are exempt so legacy rows can coexist until backfilled.
	_, err = queries.CreatePost(ctx, store.CreatePostParams{Title: "Three"})
	require.NoError(t, err)
	_, err = queries.CreatePost(ctx, store.CreatePostParams{Title: "Four"})
	require.NoError(t, err)
}

func TestSlugTaken(t *testing.T) {
	ctx := context.Background()
	queries := newQueries(t)

	created, err := queries.CreatePost(ctx, store.CreatePostParams{Title: "One", Slug: "my-post"})
	require.NoError(t, err)

	taken, err := queries.SlugTaken(ctx, "my-post", "")
	require.NoError(t, err)
	assert.True(t, taken)

	taken, err = queries.SlugTaken(ctx, "my-post", created.ID)
	require.NoError(t, err)
	assert.False(t, taken, "self-collision must be ignored when excluded")

	taken, err = queries.SlugTaken(ctx, "other", "")
	require.NoError(t, err)
	assert.False(t, taken)
}

func TestUpdatePost(t *testing.T) {
	ctx := context.Background()
	queries := newQueries(t)

	created, err := queries.CreatePost(ctx, store.CreatePostParams{
		Title: "Old", Slug: "old", Image: "uploads/old.jpg",
	})
	require.NoError(t, err)

	updated, err := queries.UpdatePost(ctx, store.UpdatePostParams{
		ID:       created.ID,
		Title:    "New",
		Excerpt:  "fresh",
		Content:  "body",
		Author:   "Jo",
		Category: "general",
		Tags:     []string{"a"},
	})
	require.NoError(t, err)
	assert.Equal(t, "New", updated.Title)
	assert.Equal(t, "old", updated.Slug, "slug must never change on update")
	assert.Equal(t, "uploads/old.jpg", updated.Image, "nil image leaves stored image untouched")

	newImage := "uploads/new.jpg"
	updated, err = queries.UpdatePost(ctx, store.UpdatePostParams{
		ID: created.ID, Title: "New", Image: &newImage,
	})
	require.NoError(t, err)
	assert.Equal(t, "uploads/new.jpg", updated.Image)

	_, err = queries.UpdatePost(ctx, store.UpdatePostParams{ID: "missing", Title: "x"})
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestDeletePost(t *testing.T) {
	ctx := context.Background()
	queries := newQueries(t)

	created, err := queries.CreatePost(ctx, store.CreatePostParams{Title: "One", Slug: "one"})
	require.NoError(t, err)

	require.NoError(t, queries.DeletePost(ctx, created.ID))
	assert.ErrorIs(t, queries.DeletePost(ctx, created.ID), sql.ErrNoRows)
}

func TestListPostsOrder(t *testing.T) {
	ctx := context.Background()
	queries := newQueries(t)

	for _, slug := range []string{"a", "b", "c"} {
		_, err := queries.CreatePost(ctx, store.CreatePostParams{Title: slug, Slug: slug})
		require.NoError(t, err)
	}

	posts, err := queries.ListPosts(ctx)
	require.NoError(t, err)
	require.Len(t, posts, 3)
	for i := 1; i < len(posts); i++ {
		assert.False(t, posts[i-1].CreatedAt.Before(posts[i].CreatedAt), "posts must be newest first")
	}
}

func TestSlugBackfillQueries(t *testing.T) {
	ctx := context.Background()
	queries := newQueries(t)

	withSlug, err := queries.CreatePost(ctx, store.CreatePostParams{Title: "Has", Slug: "has"})
	require.NoError(t, err)
	missing, err := queries.CreatePost(ctx, store.CreatePostParams{Title: "Missing"})
	require.NoError(t, err)

	posts, err := queries.ListPostsMissingSlug(ctx)
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, missing.ID, posts[0].ID)

	require.NoError(t, queries.SetPostSlug(ctx, missing.ID, "missing"))

	posts, err = queries.ListPostsMissingSlug(ctx)
	require.NoError(t, err)
	assert.Empty(t, posts)

	got, err := queries.GetPostBySlug(ctx, "has")
	require.NoError(t, err)
	assert.Equal(t, withSlug.ID, got.ID)
}

func TestTestimonialLifecycle(t *testing.T) {
	ctx := context.Background()
	queries := newQueries(t)

	created, err := queries.CreateTestimonial(ctx, store.CreateTestimonialParams{
		Name:     "Ada",
		Position: "CTO",
		Company:  "Initech",
		Body:     "Great work.",
		Rating:   5,
	})
	require.NoError(t, err)
	assert.Equal(t, model.StatusPending, created.Status)

	approved, err := queries.ListTestimonialsByStatus(ctx, model.StatusApproved)
	require.NoError(t, err)
	assert.Empty(t, approved)

	updated, err := queries.UpdateTestimonialStatus(ctx, created.ID, model.StatusApproved)
	require.NoError(t, err)
	assert.True(t, updated.IsApproved())

	approved, err = queries.ListTestimonialsByStatus(ctx, model.StatusApproved)
	require.NoError(t, err)
	require.Len(t, approved, 1)

	all, err := queries.ListTestimonials(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)

	require.NoError(t, queries.DeleteTestimonial(ctx, created.ID))
	assert.ErrorIs(t, queries.DeleteTestimonial(ctx, created.ID), sql.ErrNoRows)
}

func TestTestimonialRatingCheck(t *testing.T) {
	ctx := context.Background()
	queries := newQueries(t)

	// The CHECK constraint is the backstop behind boundary validation.
	_, err := queries.CreateTestimonial(ctx, store.CreateTestimonialParams{
		Name: "Ada", Position: "CTO", Company: "Initech", Body: "x", Rating: 6,
	})
	require.Error(t, err)
}

func TestAdmins(t *testing.T) {
	ctx := context.Background()
	queries := newQueries(t)

	created, err := queries.CreateAdmin(ctx, "admin@example.com", "$argon2id$hash")
	require.NoError(t, err)

	byEmail, err := queries.GetAdminByEmail(ctx, "admin@example.com")
	require.NoError(t, err)
	assert.Equal(t, created.ID, byEmail.ID)

	byID, err := queries.GetAdminByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "admin@example.com", byID.Email)

	// Email is unique.
	_, err = queries.CreateAdmin(ctx, "admin@example.com", "other")
	require.Error(t, err)

	_, err = queries.GetAdminByEmail(ctx, "nobody@example.com")
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestSeedIdempotent(t *testing.T) {
	ctx := context.Background()
	db := testutil.TestDB(t)

	require.NoError(t, store.Seed(ctx, db, "admin@example.com", "changeme"))
	require.NoError(t, store.Seed(ctx, db, "admin@example.com", "changeme"))

	admin, err := store.New(db).GetAdminByEmail(ctx, "admin@example.com")
	require.NoError(t, err)
	assert.NotEmpty(t, admin.PasswordHash)
}
