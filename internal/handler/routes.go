// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/resristi/cms-api/internal/middleware"
)

// Rate limits for the endpoints the public can hammer: login allows a
// burst of 5 then one request per two seconds per IP, testimonial
// submission one per five seconds with a burst of 3.
const (
	loginRPS    = 0.5
	loginBurst  = 5
	submitRPS   = 0.2
	submitBurst = 3
)

// Routes builds the full HTTP router.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(middleware.SecurityHeaders(middleware.DefaultSecurityHeadersConfig(h.cfg.IsDevelopment())))
	r.Use(middleware.CORS(h.cfg.CORSOrigins))

	requireAdmin := middleware.RequireAdmin(h.tokens, h.queries)
	loginLimit := middleware.NewIPRateLimiter(loginRPS, loginBurst).Middleware()
	submitLimit := middleware.NewIPRateLimiter(submitRPS, submitBurst).Middleware()

	r.Route("/api", func(r chi.Router) {
		r.Route("/blogs", func(r chi.Router) {
			r.Get("/", h.ListBlogs)
			r.Get("/{idOrSlug}", h.GetBlog)
			r.With(requireAdmin).Post("/", h.CreateBlog)
			r.With(requireAdmin).Put("/{id}", h.UpdateBlog)
			r.With(requireAdmin).Delete("/{id}", h.DeleteBlog)
		})

		r.Route("/testimonials", func(r chi.Router) {
			r.Get("/", h.ListApprovedTestimonials)
			r.With(submitLimit).Post("/", h.CreateTestimonial)
		})

		r.Route("/admin", func(r chi.Router) {
			r.With(loginLimit).Post("/login", h.Login)
			r.Post("/seed", h.SeedAdmin)

			r.Group(func(r chi.Router) {
				r.Use(requireAdmin)
				r.Get("/testimonials", h.ListAllTestimonials)
				r.Patch("/testimonials/{id}", h.UpdateTestimonialStatus)
				r.Delete("/testimonials/{id}", h.DeleteTestimonial)
			})
		})
	})

	r.Get("/blogs/{idOrSlug}", h.Preview)
	r.Get("/", h.Health)

	// Uploaded images are served as-is.
	uploads := http.StripPrefix("/uploads/", http.FileServer(http.Dir(h.media.Dir())))
	r.Get("/uploads/*", func(w http.ResponseWriter, r *http.Request) {
		uploads.ServeHTTP(w, r)
	})

	return r
}
