// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/resristi/cms-api/internal/media"
	"github.com/resristi/cms-api/internal/model"
	"github.com/resristi/cms-api/internal/store"
	"github.com/resristi/cms-api/internal/util"
)

// maxFormMemory bounds the in-memory part of multipart parsing. Larger
// parts spill to disk.
const maxFormMemory = media.MaxUploadSize + 512*1024

// ListBlogs handles GET /api/blogs.
func (h *Handler) ListBlogs(w http.ResponseWriter, r *http.Request) {
	posts, err := h.queries.ListPosts(r.Context())
	if err != nil {
		slog.Error("failed to list posts", "error", err)
		WriteInternalError(w, "Failed to fetch blogs")
		return
	}
	if posts == nil {
		posts = []model.Post{}
	}
	WriteJSON(w, http.StatusOK, posts)
}

// GetBlog handles GET /api/blogs/{idOrSlug}. The token is tried as a
// store identifier when it parses as one, then as a slug.
func (h *Handler) GetBlog(w http.ResponseWriter, r *http.Request) {
	post, err := h.lookupPost(r.Context(), chi.URLParam(r, "idOrSlug"))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			WriteNotFound(w, "Blog not found")
			return
		}
		slog.Error("failed to fetch post", "error", err)
		WriteInternalError(w, "Failed to fetch blog")
		return
	}
	WriteJSON(w, http.StatusOK, post)
}

// lookupPost resolves an idOrSlug token against the store. A token
// that parses as an identifier is tried by ID first, but an ID miss
// still falls through to the slug lookup so that slugs which happen to
// look like identifiers stay reachable.
func (h *Handler) lookupPost(ctx context.Context, token string) (model.Post, error) {
	if _, err := uuid.Parse(token); err == nil {
		post, err := h.queries.GetPostByID(ctx, token)
		if err == nil || !errors.Is(err, sql.ErrNoRows) {
			return post, err
		}
	}
	return h.queries.GetPostBySlug(ctx, token)
}

// CreateBlog handles POST /api/blogs (admin, multipart).
func (h *Handler) CreateBlog(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxFormMemory); err != nil {
		WriteBadRequest(w, "Invalid multipart form")
		return
	}

	params := store.CreatePostParams{
		Title:    strings.TrimSpace(r.FormValue("title")),
		Excerpt:  strings.TrimSpace(r.FormValue("excerpt")),
		Content:  r.FormValue("content"),
		Author:   strings.TrimSpace(r.FormValue("author")),
		Category: strings.TrimSpace(r.FormValue("category")),
		Tags:     model.ParseTags(r.FormValue("tags")),
	}

	if missing := missingFields(map[string]string{
		"title":    params.Title,
		"excerpt":  params.Excerpt,
		"content":  params.Content,
		"author":   params.Author,
		"category": params.Category,
	}); missing != "" {
		WriteBadRequest(w, "Missing required fields: "+missing)
		return
	}

	slug, err := util.UniqueSlug(r.Context(), util.Slugify(params.Title), h.queries.SlugTaken, "")
	if err != nil {
		slog.Error("failed to resolve slug", "error", err)
		WriteInternalError(w, "Failed to create blog")
		return
	}
	params.Slug = slug

	image, err := h.storeUpload(r)
	if err != nil {
		writeUploadError(w, err)
		return
	}
	params.Image = image

	post, err := h.queries.CreatePost(r.Context(), params)
	if err != nil {
		slog.Error("failed to create post", "error", err)
		WriteInternalError(w, "Failed to create blog")
		return
	}

	WriteJSON(w, http.StatusCreated, post)
}

// UpdateBlog handles PUT /api/blogs/{id} (admin, multipart). The slug
// is never recomputed, even when the title changes.
func (h *Handler) UpdateBlog(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxFormMemory); err != nil {
		WriteBadRequest(w, "Invalid multipart form")
		return
	}

	params := store.UpdatePostParams{
		ID:       chi.URLParam(r, "id"),
		Title:    strings.TrimSpace(r.FormValue("title")),
		Excerpt:  strings.TrimSpace(r.FormValue("excerpt")),
		Content:  r.FormValue("content"),
		Author:   strings.TrimSpace(r.FormValue("author")),
		Category: strings.TrimSpace(r.FormValue("category")),
		Tags:     model.ParseTags(r.FormValue("tags")),
	}

	if media.HasFile(r) {
		image, err := h.storeUpload(r)
		if err != nil {
			writeUploadError(w, err)
			return
		}
		if image != "" {
			params.Image = &image
		}
	}

	post, err := h.queries.UpdatePost(r.Context(), params)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			WriteNotFound(w, "Blog not found")
			return
		}
		slog.Error("failed to update post", "error", err)
		WriteInternalError(w, "Failed to update blog")
		return
	}

	h.invalidatePreview(r.Context(), post)
	WriteJSON(w, http.StatusOK, post)
}

// DeleteBlog handles DELETE /api/blogs/{id} (admin).
func (h *Handler) DeleteBlog(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	post, err := h.queries.GetPostByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			WriteNotFound(w, "Blog not found")
			return
		}
		slog.Error("failed to fetch post for deletion", "error", err)
		WriteInternalError(w, "Failed to delete blog")
		return
	}

	if err := h.queries.DeletePost(r.Context(), id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			WriteNotFound(w, "Blog not found")
			return
		}
		slog.Error("failed to delete post", "error", err)
		WriteInternalError(w, "Failed to delete blog")
		return
	}

	if err := h.media.Remove(post.Image); err != nil {
		slog.Warn("failed to remove post image", "path", post.Image, "error", err)
	}
	h.invalidatePreview(r.Context(), post)

	WriteJSON(w, http.StatusOK, map[string]string{"message": "Blog deleted successfully"})
}

// storeUpload reads an optional image from the form and stores it.
// Invalid uploads are reported back to the client; a failed write is
// logged and the record proceeds without an image.
func (h *Handler) storeUpload(r *http.Request) (string, error) {
	data, format, err := media.ReadUpload(r)
	if err != nil {
		if errors.Is(err, media.ErrNoFile) {
			return "", nil
		}
		return "", err
	}

	path, err := h.media.Store(data, format)
	if err != nil {
		slog.Warn("failed to store image, continuing without one", "error", err)
		return "", nil
	}
	return path, nil
}

// writeUploadError maps upload validation failures to 400 responses.
func writeUploadError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, media.ErrTooLarge):
		WriteBadRequest(w, "Image exceeds the 5 MB size limit")
	case errors.Is(err, media.ErrUnsupportedType):
		WriteBadRequest(w, "Unsupported image type. Use JPEG, PNG or WebP")
	default:
		WriteBadRequest(w, "Invalid image upload")
	}
}

// invalidatePreview drops cached crawler previews for both tokens a
// post is reachable under.
func (h *Handler) invalidatePreview(ctx context.Context, post model.Post) {
	for _, token := range []string{post.ID, post.Slug} {
		if token == "" {
			continue
		}
		if err := h.cache.Delete(ctx, previewCacheKey(token)); err != nil {
			slog.Warn("failed to invalidate preview cache", "token", token, "error", err)
		}
	}
}

// missingFields returns a comma-separated list of empty required fields.
func missingFields(fields map[string]string) string {
	var missing []string
	for _, name := range []string{"title", "excerpt", "content", "author", "category", "name", "position", "company", "testimonial", "rating"} {
		value, present := fields[name]
		if present && value == "" {
			missing = append(missing, name)
		}
	}
	return strings.Join(missing, ", ")
}
