// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
)

// UpdateSettingRequest represents the request body for PUT /settings/{key}.
type UpdateSettingRequest struct {
	Value string `json:"value"`
}

// ListSettings handles GET /settings. Returns all settings as a flat
// key/value map; the frontend reads things like the site title and bio from
// here, so a read failure degrades to an empty map.
func (h *Handler) ListSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := h.queries.ListSettings(r.Context())
	if err != nil {
		slog.Error("listing settings", "error", err)
	}

	out := map[string]string{}
	for _, s := range settings {
		out[s.Key] = s.Value
	}
	WriteSuccess(w, out)
}

// UpsertSetting handles PUT /settings/{key} (admin). Creates the key if it
// does not exist yet.
func (h *Handler) UpsertSetting(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")
	if key == "" {
		WriteBadRequest(w, "Missing setting key", nil)
		return
	}

	var req UpdateSettingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteBadRequest(w, "Invalid JSON body", nil)
		return
	}

	setting, err := h.queries.UpsertSetting(r.Context(), key, req.Value, time.Now())
	if err != nil {
		slog.Error("upserting setting", "error", err, "key", key)
		WriteInternalError(w, "Failed to save setting")
		return
	}

	h.logContentEvent(r, "setting updated", setting.ID, setting.Key)
	WriteSuccess(w, map[string]string{setting.Key: setting.Value})
}
