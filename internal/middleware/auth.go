// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/resristi/cms-api/internal/auth"
	"github.com/resristi/cms-api/internal/model"
	"github.com/resristi/cms-api/internal/store"
)

// ContextKeyAdmin is the context key for the authenticated admin.
const ContextKeyAdmin ContextKey = "admin"

// RequireAdmin creates middleware that validates a Bearer token and
// loads the admin it belongs to. Requests without a valid token get a
// 401 before reaching the handler.
func RequireAdmin(tokens *auth.Tokens, queries *store.Queries) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				WriteAPIError(w, http.StatusUnauthorized, "unauthorized", "Missing Authorization header")
				return
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || parts[1] == "" {
				WriteAPIError(w, http.StatusUnauthorized, "unauthorized", "Invalid Authorization header format. Use: Bearer <token>")
				return
			}

			adminID, err := tokens.Verify(parts[1])
			if err != nil {
				WriteAPIError(w, http.StatusUnauthorized, "unauthorized", "Invalid or expired token")
				return
			}

			admin, err := queries.GetAdminByID(r.Context(), adminID)
			if err != nil {
				if errors.Is(err, sql.ErrNoRows) {
					// Token outlived the account.
					WriteAPIError(w, http.StatusUnauthorized, "unauthorized", "Invalid or expired token")
					return
				}
				slog.Error("failed to load admin for token", "error", err)
				WriteAPIError(w, http.StatusInternalServerError, "internal_error", "Failed to authenticate request")
				return
			}

			ctx := context.WithValue(r.Context(), ContextKeyAdmin, admin)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetAdmin retrieves the authenticated admin from the request context.
// Returns nil outside RequireAdmin-protected routes.
func GetAdmin(r *http.Request) *model.Admin {
	admin, ok := r.Context().Value(ContextKeyAdmin).(model.Admin)
	if !ok {
		return nil
	}
	return &admin
}
