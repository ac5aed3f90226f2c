// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/folio-site/folio-go/internal/middleware"
	"github.com/folio-site/folio-go/internal/model"
	"github.com/folio-site/folio-go/internal/testutil"
)

func TestHealthPublic(t *testing.T) {
	db, cleanup := testutil.TestDB(t)
	defer cleanup()

	h := NewHealthHandler(db)
	w := httptest.NewRecorder()
	h.Health(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	require.Equal(t, http.StatusOK, w.Code)

	var status HealthStatusPublic
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &status))
	assert.Equal(t, "healthy", status.Status)

	// The public view must not leak system detail.
	var full map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &full))
	assert.NotContains(t, full, "checks")
	assert.NotContains(t, full, "system")
}

func TestHealthAdmin(t *testing.T) {
	db, cleanup := testutil.TestDB(t)
	defer cleanup()

	h := NewHealthHandler(db)

	r := httptest.NewRequest(http.MethodGet, "/health", nil)
	admin := model.User{ID: 1, Role: model.RoleAdmin}
	r = r.WithContext(context.WithValue(r.Context(), middleware.ContextKeyUser, admin))

	w := httptest.NewRecorder()
	h.Health(w, r)

	require.Equal(t, http.StatusOK, w.Code)

	var status HealthStatus
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &status))
	assert.Equal(t, "healthy", status.Status)
	assert.Equal(t, "healthy", status.Checks["database"].Status)
	require.NotNil(t, status.System)
	assert.NotEmpty(t, status.System.GoVersion)
}

func TestHealthDegraded(t *testing.T) {
	db, cleanup := testutil.TestDB(t)
	cleanup() // close the database out from under the handler

	h := NewHealthHandler(db)
	w := httptest.NewRecorder()
	h.Health(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	require.Equal(t, http.StatusServiceUnavailable, w.Code)

	var status HealthStatusPublic
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &status))
	assert.Equal(t, "degraded", status.Status)
}
