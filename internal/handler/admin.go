// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"database/sql"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/resristi/cms-api/internal/auth"
	"github.com/resristi/cms-api/internal/model"
)

// credentialsRequest is the JSON body for login and seeding.
type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// sessionResponse is returned by login and seed on success.
type sessionResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Token string `json:"token"`
}

func decodeCredentials(r *http.Request) (credentialsRequest, bool) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return credentialsRequest{}, false
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Email == "" || req.Password == "" {
		return credentialsRequest{}, false
	}
	return req, true
}

// Login handles POST /api/admin/login. Invalid credentials get the same
// 400 as an unknown email so the response does not leak which accounts
// exist.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeCredentials(r)
	if !ok {
		WriteBadRequest(w, "Email and password are required")
		return
	}

	admin, err := h.queries.GetAdminByEmail(r.Context(), req.Email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			WriteBadRequest(w, "Invalid credentials")
			return
		}
		slog.Error("failed to look up admin", "error", err)
		WriteInternalError(w, "Failed to log in")
		return
	}

	match, err := auth.CheckPassword(req.Password, admin.PasswordHash)
	if err != nil || !match {
		WriteBadRequest(w, "Invalid credentials")
		return
	}

	h.writeSession(w, http.StatusOK, admin)
}

// SeedAdmin handles POST /api/admin/seed. It creates the first admin
// account for the given email and refuses to run once that account
// exists.
func (h *Handler) SeedAdmin(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeCredentials(r)
	if !ok {
		WriteBadRequest(w, "Email and password are required")
		return
	}

	if _, err := h.queries.GetAdminByEmail(r.Context(), req.Email); err == nil {
		WriteBadRequest(w, "Admin already exists")
		return
	} else if !errors.Is(err, sql.ErrNoRows) {
		slog.Error("failed to check existing admin", "error", err)
		WriteInternalError(w, "Failed to seed admin")
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		slog.Error("failed to hash password", "error", err)
		WriteInternalError(w, "Failed to seed admin")
		return
	}

	admin, err := h.queries.CreateAdmin(r.Context(), req.Email, hash)
	if err != nil {
		slog.Error("failed to create admin", "error", err)
		WriteInternalError(w, "Failed to seed admin")
		return
	}

	slog.Info("seeded admin account", "email", admin.Email)
	h.writeSession(w, http.StatusCreated, admin)
}

func (h *Handler) writeSession(w http.ResponseWriter, status int, admin model.Admin) {
	token, err := h.tokens.Issue(admin.ID)
	if err != nil {
		slog.Error("failed to issue token", "error", err)
		WriteInternalError(w, "Failed to issue token")
		return
	}
	WriteJSON(w, status, sessionResponse{ID: admin.ID, Email: admin.Email, Token: token})
}

// ListAllTestimonials handles GET /api/admin/testimonials. All statuses
// are visible to moderators.
func (h *Handler) ListAllTestimonials(w http.ResponseWriter, r *http.Request) {
	testimonials, err := h.queries.ListTestimonials(r.Context())
	if err != nil {
		slog.Error("failed to list testimonials", "error", err)
		WriteInternalError(w, "Failed to fetch testimonials")
		return
	}
	if testimonials == nil {
		testimonials = []model.Testimonial{}
	}
	WriteJSON(w, http.StatusOK, testimonials)
}

// UpdateTestimonialStatus handles PATCH /api/admin/testimonials/{id}.
func (h *Handler) UpdateTestimonialStatus(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteBadRequest(w, "Invalid request body")
		return
	}

	status, err := model.ParseStatus(req.Status)
	if err != nil {
		WriteBadRequest(w, "Status must be one of: pending, approved, rejected")
		return
	}

	testimonial, err := h.queries.UpdateTestimonialStatus(r.Context(), chi.URLParam(r, "id"), status)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			WriteNotFound(w, "Testimonial not found")
			return
		}
		slog.Error("failed to update testimonial status", "error", err)
		WriteInternalError(w, "Failed to update testimonial")
		return
	}

	WriteJSON(w, http.StatusOK, testimonial)
}

// DeleteTestimonial handles DELETE /api/admin/testimonials/{id}.
func (h *Handler) DeleteTestimonial(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	testimonial, err := h.queries.GetTestimonialByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			WriteNotFound(w, "Testimonial not found")
			return
		}
		slog.Error("failed to fetch testimonial for deletion", "error", err)
		WriteInternalError(w, "Failed to delete testimonial")
		return
	}

	if err := h.queries.DeleteTestimonial(r.Context(), id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			WriteNotFound(w, "Testimonial not found")
			return
		}
		slog.Error("failed to delete testimonial", "error", err)
		WriteInternalError(w, "Failed to delete testimonial")
		return
	}

	if err := h.media.Remove(testimonial.Image); err != nil {
		slog.Warn("failed to remove testimonial image", "path", testimonial.Image, "error", err)
	}

	WriteJSON(w, http.StatusOK, map[string]string{"message": "Testimonial deleted successfully"})
}
