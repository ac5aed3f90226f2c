// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"testing"

	"github.com/folio-site/folio-go/internal/model"
	"github.com/folio-site/folio-go/internal/testutil"
)

func TestEventService(t *testing.T) {
	db, cleanup := testutil.TestDB(t)
	defer cleanup()

	svc := NewEventService(db)
	ctx := context.Background()

	userID := int64(7)
	if err := svc.LogInfo(ctx, model.EventCategoryAuth, "admin login", &userID, map[string]any{"ip": "10.0.0.1"}); err != nil {
		t.Fatalf("LogInfo() error = %v", err)
	}
	if err := svc.LogWarning(ctx, model.EventCategoryUpload, "oversized upload rejected", nil, nil); err != nil {
		t.Fatalf("LogWarning() error = %v", err)
	}

	events, err := svc.RecentEvents(ctx, 10)
	if err != nil {
		t.Fatalf("RecentEvents() error = %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("events = %d, want 2", len(events))
	}

	// Newest first.
	if events[0].Category != model.EventCategoryUpload {
		t.Errorf("first event category = %q, want upload", events[0].Category)
	}
	if events[1].Level != model.EventLevelInfo {
		t.Errorf("second event level = %q, want info", events[1].Level)
	}
	if !events[1].UserID.Valid || events[1].UserID.Int64 != 7 {
		t.Errorf("second event user = %+v, want 7", events[1].UserID)
	}
	if events[0].Metadata != "{}" {
		t.Errorf("nil metadata stored as %q, want {}", events[0].Metadata)
	}
}
