// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/folio-site/folio-go/internal/model"
)

// Seed creates the administrator user row ahead of the first login. The row
// would be created lazily on login anyway; seeding just makes the admin
// visible in the back office from the start. No-op unless doSeed is set.
func Seed(ctx context.Context, db *sql.DB, adminEmail, adminName string, doSeed bool) error {
	if !doSeed || adminEmail == "" {
		return nil
	}

	queries := New(db)

	_, err := queries.GetUserByEmail(ctx, adminEmail)
	if err == nil {
		slog.Info("admin user already exists, skipping seed")
		return nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("checking for admin user: %w", err)
	}

	if adminName == "" {
		adminName = "Administrator"
	}

	now := time.Now()
	user, err := queries.CreateUser(ctx, CreateUserParams{
		ExternalID: uuid.NewString(),
		Name:       adminName,
		Email:      adminEmail,
		Provider:   "password",
		Role:       model.RoleAdmin,
		CreatedAt:  now,
		UpdatedAt:  now,
	})
	if err != nil {
		return fmt.Errorf("creating admin user: %w", err)
	}

	slog.Info("created admin user", "id", user.ID, "email", user.Email)
	return nil
}
