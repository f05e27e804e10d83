// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/resristi/cms-api/internal/model"
)

// CreateAdmin inserts an admin account with an already-hashed password.
func (q *Queries) CreateAdmin(ctx context.Context, email, passwordHash string) (model.Admin, error) {
	admin := model.Admin{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now().UTC(),
	}

	_, err := q.db.ExecContext(ctx, `
		INSERT INTO admins (id, email, password_hash, created_at)
		VALUES (?, ?, ?, ?)`,
		admin.ID, admin.Email, admin.PasswordHash, admin.CreatedAt,
	)
	if err != nil {
		return model.Admin{}, fmt.Errorf("creating admin: %w", err)
	}

	return admin, nil
}

// GetAdminByEmail returns an admin by email.
// Returns sql.ErrNoRows if no admin matches.
func (q *Queries) GetAdminByEmail(ctx context.Context, email string) (model.Admin, error) {
	var admin model.Admin
	err := q.db.QueryRowContext(ctx, `
		SELECT id, email, password_hash, created_at FROM admins WHERE email = ?`, email,
	).Scan(&admin.ID, &admin.Email, &admin.PasswordHash, &admin.CreatedAt)
	if err != nil {
		return model.Admin{}, err
	}
	return admin, nil
}

// GetAdminByID returns an admin by identifier.
// Returns sql.ErrNoRows if no admin matches.
func (q *Queries) GetAdminByID(ctx context.Context, id string) (model.Admin, error) {
	var admin model.Admin
	err := q.db.QueryRowContext(ctx, `
		SELECT id, email, password_hash, created_at FROM admins WHERE id = ?`, id,
	).Scan(&admin.ID, &admin.Email, &admin.PasswordHash, &admin.CreatedAt)
	if err != nil {
		return model.Admin{}, err
	}
	return admin, nil
}
