// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package logging

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/folio-site/folio-go/internal/model"
	"github.com/folio-site/folio-go/internal/store"
	"github.com/folio-site/folio-go/internal/testutil"
)

func newTestLogger(t *testing.T) (*slog.Logger, *store.Queries, func()) {
	t.Helper()
	db, cleanup := testutil.TestDB(t)

	inner := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelDebug})
	handler := NewEventLogHandler(inner, db)
	return slog.New(handler), store.New(db), cleanup
}

func TestEventLogHandler_ForwardsWarnAndAbove(t *testing.T) {
	logger, queries, cleanup := newTestLogger(t)
	defer cleanup()

	logger.Info("routine info, not persisted")
	logger.Warn("upload rejected", "category", model.EventCategoryUpload, "size", "123")
	logger.Error("login failed")

	events, err := queries.ListRecentEvents(context.Background(), 10)
	if err != nil {
		t.Fatalf("ListRecentEvents: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("events = %d, want 2 (info must not persist)", len(events))
	}

	// Newest first: the error, then the warning.
	if events[0].Level != model.EventLevelError {
		t.Errorf("first level = %q, want error", events[0].Level)
	}
	if events[0].Category != model.EventCategoryAuth {
		t.Errorf("inferred category = %q, want auth", events[0].Category)
	}
	if events[1].Level != model.EventLevelWarning {
		t.Errorf("second level = %q, want warning", events[1].Level)
	}
	if events[1].Category != model.EventCategoryUpload {
		t.Errorf("explicit category = %q, want upload", events[1].Category)
	}
	if events[1].Metadata != `{"size":"123"}` {
		t.Errorf("metadata = %q, want size attr without category", events[1].Metadata)
	}
}

func TestSlogLevelToEventLevel(t *testing.T) {
	tests := []struct {
		level slog.Level
		want  string
	}{
		{slog.LevelDebug, model.EventLevelInfo},
		{slog.LevelInfo, model.EventLevelInfo},
		{slog.LevelWarn, model.EventLevelWarning},
		{slog.LevelError, model.EventLevelError},
	}
	for _, tt := range tests {
		if got := slogLevelToEventLevel(tt.level); got != tt.want {
			t.Errorf("slogLevelToEventLevel(%v) = %q, want %q", tt.level, got, tt.want)
		}
	}
}
