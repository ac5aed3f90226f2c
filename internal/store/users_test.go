// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/folio-site/folio-go/internal/model"
)

func TestUserLifecycle(t *testing.T) {
	db, cleanup := testDB(t)
	defer cleanup()

	queries := New(db)
	ctx := context.Background()
	now := time.Now()

	user, err := queries.CreateUser(ctx, CreateUserParams{
		ExternalID: "ext-1",
		Name:       "Jo",
		Email:      "jo@example.com",
		Provider:   "password",
		Role:       model.RoleUser,
		CreatedAt:  now,
		UpdatedAt:  now,
	})
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}

	// Email lookup is case-insensitive.
	got, err := queries.GetUserByEmail(ctx, "JO@EXAMPLE.COM")
	if err != nil {
		t.Fatalf("GetUserByEmail: %v", err)
	}
	if got.ID != user.ID {
		t.Errorf("lookup id = %d, want %d", got.ID, user.ID)
	}

	// Role re-sync at login.
	updated, err := queries.UpdateUserLogin(ctx, UpdateUserLoginParams{
		ID:         user.ID,
		Name:       "Jo Admin",
		Role:       model.RoleAdmin,
		UpdatedAt:  time.Now(),
		LastSeenAt: sql.NullTime{Time: time.Now(), Valid: true},
	})
	if err != nil {
		t.Fatalf("UpdateUserLogin: %v", err)
	}
	if updated.Role != model.RoleAdmin || !updated.IsAdmin() {
		t.Errorf("role = %q, want admin", updated.Role)
	}
	if !updated.LastSeenAt.Valid {
		t.Error("LastSeenAt not set by login")
	}
}

func TestSeed(t *testing.T) {
	db, cleanup := testDB(t)
	defer cleanup()

	ctx := context.Background()

	if err := Seed(ctx, db, "admin@example.com", "Admin", true); err != nil {
		t.Fatalf("Seed: %v", err)
	}

	queries := New(db)
	user, err := queries.GetUserByEmail(ctx, "admin@example.com")
	if err != nil {
		t.Fatalf("GetUserByEmail: %v", err)
	}
	if user.Role != model.RoleAdmin {
		t.Errorf("seeded role = %q, want admin", user.Role)
	}

	// Seeding twice is a no-op.
	if err := Seed(ctx, db, "admin@example.com", "Admin", true); err != nil {
		t.Fatalf("second Seed: %v", err)
	}

	// Disabled seed does nothing.
	if err := Seed(ctx, db, "other@example.com", "", false); err != nil {
		t.Fatalf("disabled Seed: %v", err)
	}
	if _, err := queries.GetUserByEmail(ctx, "other@example.com"); err == nil {
		t.Error("disabled seed created a user")
	}
}
