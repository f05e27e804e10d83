// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/mileusna/useragent"

	"github.com/resristi/cms-api/internal/cache"
	"github.com/resristi/cms-api/internal/seo"
)

func previewCacheKey(token string) string {
	return "preview:" + token
}

// Preview handles GET /blogs/{idOrSlug}. Crawlers get a minimal HTML
// document carrying Open Graph tags; everyone else is redirected to the
// front-end with the token passed through verbatim, existing or not.
func (h *Handler) Preview(w http.ResponseWriter, r *http.Request) {
	token := chi.URLParam(r, "idOrSlug")
	rawUA := r.Header.Get("User-Agent")

	if !h.classifier.IsCrawler(rawUA) {
		http.Redirect(w, r, h.cfg.FrontendURL+"/blogs/"+token, http.StatusFound)
		return
	}

	ua := useragent.Parse(rawUA)
	slog.Info("serving crawler preview",
		"token", token,
		"agent", ua.Name,
		"version", ua.Version,
		"bot", ua.Bot,
	)

	if doc, err := h.cache.Get(r.Context(), previewCacheKey(token)); err == nil {
		writePreview(w, doc)
		return
	} else if !errors.Is(err, cache.ErrCacheMiss) {
		slog.Warn("preview cache lookup failed", "error", err)
	}

	post, err := h.lookupPost(r.Context(), token)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			http.NotFound(w, r)
			return
		}
		slog.Error("failed to fetch post for preview", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	doc, err := seo.RenderPreview(seo.BuildMeta(&post, h.site))
	if err != nil {
		slog.Error("failed to render preview", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	if err := h.cache.Set(r.Context(), previewCacheKey(token), doc, h.cacheTTL); err != nil {
		slog.Warn("failed to cache preview", "error", err)
	}

	writePreview(w, doc)
}

func writePreview(w http.ResponseWriter, doc []byte) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(doc)
}
