// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/resristi/cms-api/internal/model"
	"github.com/resristi/cms-api/internal/store"
)

// ListApprovedTestimonials handles GET /api/testimonials. Only
// testimonials that passed moderation are public.
func (h *Handler) ListApprovedTestimonials(w http.ResponseWriter, r *http.Request) {
	testimonials, err := h.queries.ListTestimonialsByStatus(r.Context(), model.StatusApproved)
	if err != nil {
		slog.Error("failed to list approved testimonials", "error", err)
		WriteInternalError(w, "Failed to fetch testimonials")
		return
	}
	if testimonials == nil {
		testimonials = []model.Testimonial{}
	}
	WriteJSON(w, http.StatusOK, testimonials)
}

// CreateTestimonial handles POST /api/testimonials (public, multipart).
// Submissions always start out pending regardless of client input.
func (h *Handler) CreateTestimonial(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxFormMemory); err != nil {
		WriteBadRequest(w, "Invalid multipart form")
		return
	}

	params := store.CreateTestimonialParams{
		Name:     strings.TrimSpace(r.FormValue("name")),
		Position: strings.TrimSpace(r.FormValue("position")),
		Company:  strings.TrimSpace(r.FormValue("company")),
		Industry: strings.TrimSpace(r.FormValue("industry")),
		Body:     strings.TrimSpace(r.FormValue("testimonial")),
	}
	rawRating := strings.TrimSpace(r.FormValue("rating"))

	if missing := missingFields(map[string]string{
		"name":        params.Name,
		"position":    params.Position,
		"company":     params.Company,
		"testimonial": params.Body,
		"rating":      rawRating,
	}); missing != "" {
		WriteBadRequest(w, "Missing required fields: "+missing)
		return
	}

	rating, err := strconv.Atoi(rawRating)
	if err != nil || !model.ValidRating(rating) {
		WriteBadRequest(w, "Rating must be an integer between 1 and 5")
		return
	}
	params.Rating = rating

	image, err := h.storeUpload(r)
	if err != nil {
		writeUploadError(w, err)
		return
	}
	params.Image = image

	testimonial, err := h.queries.CreateTestimonial(r.Context(), params)
	if err != nil {
		slog.Error("failed to create testimonial", "error", err)
		WriteInternalError(w, "Failed to submit testimonial")
		return
	}

	WriteJSON(w, http.StatusCreated, testimonial)
}
