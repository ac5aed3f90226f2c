// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"testing"
	"time"
)

func TestListBackgroundsActiveFilter(t *testing.T) {
	db, cleanup := testDB(t)
	defer cleanup()

	queries := New(db)
	ctx := context.Background()
	now := time.Now()

	mk := func(title string, active bool, sortOrder int64) {
		t.Helper()
		if _, err := queries.CreateBackground(ctx, CreateBackgroundParams{
			Title: title, ImageURL: "https://cdn.example.com/" + title + ".jpg",
			Active: active, SortOrder: sortOrder,
			CreatedAt: now, UpdatedAt: now,
		}); err != nil {
			t.Fatalf("CreateBackground(%s): %v", title, err)
		}
	}

	mk("aurora", true, 2)
	mk("fog", false, 3)
	mk("dunes", true, 1)

	active, err := queries.ListBackgrounds(ctx, true)
	if err != nil {
		t.Fatalf("ListBackgrounds(active): %v", err)
	}
	if len(active) != 2 {
		t.Fatalf("active = %d, want 2", len(active))
	}
	// Ordered by sort_order descending.
	if active[0].Title != "aurora" || active[1].Title != "dunes" {
		t.Errorf("order = %s,%s, want aurora,dunes", active[0].Title, active[1].Title)
	}

	all, err := queries.ListBackgrounds(ctx, false)
	if err != nil {
		t.Fatalf("ListBackgrounds(all): %v", err)
	}
	if len(all) != 3 {
		t.Errorf("all = %d, want 3", len(all))
	}
}

func TestBackgroundUpdateAndDelete(t *testing.T) {
	db, cleanup := testDB(t)
	defer cleanup()

	queries := New(db)
	ctx := context.Background()
	now := time.Now()

	bg, err := queries.CreateBackground(ctx, CreateBackgroundParams{
		Title: "aurora", ImageURL: "https://cdn.example.com/aurora.jpg",
		Active: true, CreatedAt: now, UpdatedAt: now,
	})
	if err != nil {
		t.Fatalf("CreateBackground: %v", err)
	}

	updated, err := queries.UpdateBackground(ctx, UpdateBackgroundParams{
		ID: bg.ID, Title: bg.Title, ImageURL: bg.ImageURL, ImageKey: bg.ImageKey,
		Active: false, SortOrder: 7, UpdatedAt: time.Now(),
	})
	if err != nil {
		t.Fatalf("UpdateBackground: %v", err)
	}
	if updated.Active || updated.SortOrder != 7 {
		t.Errorf("updated = %+v", updated)
	}

	if err := queries.DeleteBackground(ctx, bg.ID); err != nil {
		t.Fatalf("DeleteBackground: %v", err)
	}
	if err := queries.DeleteBackground(ctx, bg.ID); err != nil {
		t.Errorf("second DeleteBackground: %v", err)
	}
}
