// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package scheduler

import (
	"context"
	"testing"
	"time"

	"github.com/folio-site/folio-go/internal/model"
	"github.com/folio-site/folio-go/internal/store"
	"github.com/folio-site/folio-go/internal/testutil"
)

func TestPruneEvents(t *testing.T) {
	db, cleanup := testutil.TestDB(t)
	defer cleanup()

	queries := store.New(db)
	ctx := context.Background()

	mk := func(age time.Duration) {
		t.Helper()
		if err := queries.CreateEvent(ctx, store.CreateEventParams{
			Level:     model.EventLevelInfo,
			Category:  model.EventCategorySystem,
			Message:   "event",
			CreatedAt: time.Now().Add(-age),
		}); err != nil {
			t.Fatalf("CreateEvent: %v", err)
		}
	}

	mk(100 * 24 * time.Hour)
	mk(50 * 24 * time.Hour)
	mk(time.Minute)

	s := New(db, testutil.TestLogger(), 90*24*time.Hour)
	if err := s.PruneEvents(ctx); err != nil {
		t.Fatalf("PruneEvents: %v", err)
	}

	events, err := queries.ListRecentEvents(ctx, 100)
	if err != nil {
		t.Fatalf("ListRecentEvents: %v", err)
	}
	if len(events) != 2 {
		t.Errorf("events = %d, want 2 after prune", len(events))
	}
}

func TestPruneEventsEmpty(t *testing.T) {
	db, cleanup := testutil.TestDB(t)
	defer cleanup()

	s := New(db, testutil.TestLogger(), 0)
	if s.eventRetention != DefaultEventRetention {
		t.Errorf("retention = %v, want default", s.eventRetention)
	}
	if err := s.PruneEvents(context.Background()); err != nil {
		t.Errorf("PruneEvents on empty table: %v", err)
	}
}

func TestOptimizeDatabase(t *testing.T) {
	db, cleanup := testutil.TestDB(t)
	defer cleanup()

	s := New(db, testutil.TestLogger(), 0)
	if err := s.OptimizeDatabase(context.Background()); err != nil {
		t.Errorf("OptimizeDatabase: %v", err)
	}
}

func TestStartStop(t *testing.T) {
	db, cleanup := testutil.TestDB(t)
	defer cleanup()

	s := New(db, testutil.TestLogger(), 0)
	if err := s.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	s.Stop()
}
