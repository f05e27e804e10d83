// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/resristi/cms-api/internal/auth"
)

// Seed creates the initial admin account if it does not exist yet.
func Seed(ctx context.Context, db *sql.DB, email, password string) error {
	queries := New(db)

	_, err := queries.GetAdminByEmail(ctx, email)
	if err == nil {
		slog.Info("admin already exists, skipping seed", "email", email)
		return nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("checking for admin: %w", err)
	}

	passwordHash, err := auth.HashPassword(password)
	if err != nil {
		return fmt.Errorf("hashing password: %w", err)
	}

	admin, err := queries.CreateAdmin(ctx, email, passwordHash)
	if err != nil {
		return fmt.Errorf("creating admin: %w", err)
	}

	slog.Info("created admin account", "id", admin.ID, "email", admin.Email)
	return nil
}
