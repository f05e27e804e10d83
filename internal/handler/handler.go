// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package handler provides the REST API and social preview handlers.
package handler

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"time"

	"github.com/resristi/cms-api/internal/auth"
	"github.com/resristi/cms-api/internal/cache"
	"github.com/resristi/cms-api/internal/config"
	"github.com/resristi/cms-api/internal/media"
	"github.com/resristi/cms-api/internal/seo"
	"github.com/resristi/cms-api/internal/store"
)

// Handler holds shared dependencies for all API handlers.
type Handler struct {
	cfg        *config.Config
	queries    *store.Queries
	tokens     *auth.Tokens
	media      *media.Processor
	cache      cache.Cache
	classifier *seo.Classifier
	site       *seo.SiteConfig
	cacheTTL   time.Duration
}

// New creates a handler with all its collaborators.
func New(cfg *config.Config, db *sql.DB, tokens *auth.Tokens, processor *media.Processor, previewCache cache.Cache) *Handler {
	return &Handler{
		cfg:        cfg,
		queries:    store.New(db),
		tokens:     tokens,
		media:      processor,
		cache:      previewCache,
		classifier: seo.NewClassifier(cfg.Crawlers()),
		site: &seo.SiteConfig{
			SiteName:       "CMS API",
			PublicURL:      cfg.PublicURL,
			DefaultOGImage: cfg.DefaultOGImage,
		},
		cacheTTL: time.Duration(cfg.CacheTTL) * time.Second,
	}
}

// ErrorResponse is the standard API error response.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains error information.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// WriteJSON writes a JSON response with the given status code.
func WriteJSON(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(data)
}

// WriteError writes an error JSON response.
func WriteError(w http.ResponseWriter, statusCode int, code, message string) {
	WriteJSON(w, statusCode, ErrorResponse{Error: ErrorDetail{Code: code, Message: message}})
}

// WriteBadRequest writes a 400 Bad Request response.
func WriteBadRequest(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusBadRequest, "bad_request", message)
}

// WriteNotFound writes a 404 Not Found response.
func WriteNotFound(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusNotFound, "not_found", message)
}

// WriteUnauthorized writes a 401 Unauthorized response.
func WriteUnauthorized(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusUnauthorized, "unauthorized", message)
}

// WriteInternalError writes a 500 Internal Server Error response.
func WriteInternalError(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusInternalServerError, "internal_error", message)
}
