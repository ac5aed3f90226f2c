// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/folio-site/folio-go/internal/store"
	"github.com/folio-site/folio-go/internal/testutil"
)

func seedSearchFixtures(t *testing.T, db *sql.DB) {
	t.Helper()
	ctx := context.Background()
	queries := store.New(db)
	now := time.Now()

	if _, err := queries.CreatePhoto(ctx, store.CreatePhotoParams{
		Title:     "Aurora over Tromso",
		Location:  "Norway",
		Tags:      []string{"night", "arctic"},
		CreatedAt: now,
		UpdatedAt: now,
	}); err != nil {
		t.Fatalf("CreatePhoto: %v", err)
	}

	if _, err := queries.CreateEssay(ctx, store.CreateEssayParams{
		Title:       "Chasing the Aurora",
		Excerpt:     "Notes from a winter in the north",
		Published:   true,
		PublishedAt: sql.NullTime{Time: now, Valid: true},
		CreatedAt:   now,
		UpdatedAt:   now,
	}); err != nil {
		t.Fatalf("CreateEssay: %v", err)
	}

	// Draft essay must never surface in search.
	if _, err := queries.CreateEssay(ctx, store.CreateEssayParams{
		Title:     "Aurora draft",
		Published: false,
		CreatedAt: now,
		UpdatedAt: now,
	}); err != nil {
		t.Fatalf("CreateEssay: %v", err)
	}

	if _, err := queries.CreatePaper(ctx, store.CreatePaperParams{
		Title:     "Auroral particle precipitation",
		Authors:   []string{"J. Smith"},
		Year:      2024,
		Published: true,
		CreatedAt: now,
		UpdatedAt: now,
	}); err != nil {
		t.Fatalf("CreatePaper: %v", err)
	}
}

func TestSearch(t *testing.T) {
	db, cleanup := testutil.TestDB(t)
	defer cleanup()
	seedSearchFixtures(t, db)

	svc := NewSearchService(db)
	ctx := context.Background()

	t.Run("matches across entities", func(t *testing.T) {
		results, err := svc.Search(ctx, "aurora", "")
		if err != nil {
			t.Fatalf("Search() error = %v", err)
		}
		if len(results.Photos) != 1 {
			t.Errorf("photos = %d, want 1", len(results.Photos))
		}
		if len(results.Essays) != 1 {
			t.Errorf("essays = %d, want 1 (draft must not match)", len(results.Essays))
		}
		if len(results.Papers) != 1 {
			t.Errorf("papers = %d, want 1", len(results.Papers))
		}
	})

	t.Run("case insensitive", func(t *testing.T) {
		results, err := svc.Search(ctx, "AURORA", "")
		if err != nil {
			t.Fatalf("Search() error = %v", err)
		}
		if len(results.Photos) != 1 {
			t.Errorf("photos = %d, want 1", len(results.Photos))
		}
	})

	t.Run("tag match", func(t *testing.T) {
		results, err := svc.Search(ctx, "arctic", "")
		if err != nil {
			t.Fatalf("Search() error = %v", err)
		}
		if len(results.Photos) != 1 {
			t.Errorf("photos = %d, want 1 via tag", len(results.Photos))
		}
	})

	t.Run("type filter", func(t *testing.T) {
		results, err := svc.Search(ctx, "aurora", "essays")
		if err != nil {
			t.Fatalf("Search() error = %v", err)
		}
		if len(results.Photos) != 0 || len(results.Papers) != 0 {
			t.Error("type filter should leave other buckets empty")
		}
		if len(results.Essays) != 1 {
			t.Errorf("essays = %d, want 1", len(results.Essays))
		}
	})

	t.Run("empty query returns empty buckets", func(t *testing.T) {
		results, err := svc.Search(ctx, "   ", "")
		if err != nil {
			t.Fatalf("Search() error = %v", err)
		}
		if results.Photos == nil || results.Essays == nil || results.Papers == nil {
			t.Error("buckets must be non-nil")
		}
		if len(results.Photos)+len(results.Essays)+len(results.Papers) != 0 {
			t.Error("empty query should match nothing")
		}
	})

	t.Run("no match", func(t *testing.T) {
		results, err := svc.Search(ctx, "zebra", "")
		if err != nil {
			t.Fatalf("Search() error = %v", err)
		}
		if len(results.Photos)+len(results.Essays)+len(results.Papers) != 0 {
			t.Error("unexpected matches")
		}
	})

	t.Run("like wildcards match literally", func(t *testing.T) {
		results, err := svc.Search(ctx, "%", "")
		if err != nil {
			t.Fatalf("Search() error = %v", err)
		}
		if len(results.Photos)+len(results.Essays)+len(results.Papers) != 0 {
			t.Error("bare %% should not match everything")
		}
	})
}

func TestEscapeLike(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"plain", "plain"},
		{"50%", `50\%`},
		{"a_b", `a\_b`},
		{`back\slash`, `back\\slash`},
	}
	for _, tt := range tests {
		if got := escapeLike(tt.in); got != tt.want {
			t.Errorf("escapeLike(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
