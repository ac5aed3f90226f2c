// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/folio-site/folio-go/internal/model"
	"github.com/folio-site/folio-go/internal/store"
)

// BackgroundResponse represents a carousel background in API responses.
type BackgroundResponse struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	ImageURL  string    `json:"image_url"`
	ImageKey  string    `json:"image_key,omitempty"`
	Active    bool      `json:"active"`
	SortOrder int64     `json:"sort_order"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CreateBackgroundRequest represents the request body for creating a background.
type CreateBackgroundRequest struct {
	Title     string `json:"title"`
	ImageURL  string `json:"image_url"`
	ImageKey  string `json:"image_key"`
	Active    *bool  `json:"active,omitempty"`
	SortOrder int64  `json:"sort_order"`
}

// UpdateBackgroundRequest represents the request body for updating a background.
type UpdateBackgroundRequest struct {
	Title     *string `json:"title,omitempty"`
	ImageURL  *string `json:"image_url,omitempty"`
	ImageKey  *string `json:"image_key,omitempty"`
	Active    *bool   `json:"active,omitempty"`
	SortOrder *int64  `json:"sort_order,omitempty"`
}

func backgroundToResponse(b model.Background) BackgroundResponse {
	return BackgroundResponse{
		ID:        b.ID,
		Title:     b.Title,
		ImageURL:  b.ImageURL,
		ImageKey:  b.ImageKey,
		Active:    b.Active,
		SortOrder: b.SortOrder,
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
	}
}

func backgroundsToResponse(backgrounds []model.Background) []BackgroundResponse {
	out := make([]BackgroundResponse, 0, len(backgrounds))
	for _, b := range backgrounds {
		out = append(out, backgroundToResponse(b))
	}
	return out
}

// ListBackgrounds handles GET /backgrounds. Public: active only.
func (h *Handler) ListBackgrounds(w http.ResponseWriter, r *http.Request) {
	backgrounds, err := h.queries.ListBackgrounds(r.Context(), true)
	if err != nil {
		slog.Error("listing backgrounds", "error", err)
		backgrounds = []model.Background{}
	}
	WriteSuccess(w, backgroundsToResponse(backgrounds))
}

// ListAllBackgrounds handles GET /backgrounds/all (admin): inactive included.
func (h *Handler) ListAllBackgrounds(w http.ResponseWriter, r *http.Request) {
	backgrounds, err := h.queries.ListBackgrounds(r.Context(), false)
	if err != nil {
		slog.Error("listing all backgrounds", "error", err)
		backgrounds = []model.Background{}
	}
	WriteSuccess(w, backgroundsToResponse(backgrounds))
}

// CreateBackground handles POST /backgrounds (admin). New backgrounds are
// active unless the request says otherwise.
func (h *Handler) CreateBackground(w http.ResponseWriter, r *http.Request) {
	var req CreateBackgroundRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteBadRequest(w, "Invalid JSON body", nil)
		return
	}

	if req.ImageURL == "" {
		WriteValidationError(w, map[string]string{"image_url": "Image URL is required"})
		return
	}

	active := true
	if req.Active != nil {
		active = *req.Active
	}

	now := time.Now()
	background, err := h.queries.CreateBackground(r.Context(), store.CreateBackgroundParams{
		Title:     req.Title,
		ImageURL:  req.ImageURL,
		ImageKey:  req.ImageKey,
		Active:    active,
		SortOrder: req.SortOrder,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		slog.Error("creating background", "error", err)
		WriteInternalError(w, "Failed to create background")
		return
	}

	h.logContentEvent(r, "background created", background.ID, background.Title)
	WriteCreated(w, backgroundToResponse(background))
}

// UpdateBackground handles PUT /backgrounds/{id} (admin).
func (h *Handler) UpdateBackground(w http.ResponseWriter, r *http.Request) {
	background, ok := requireEntityByID(w, r, "background", func(id int64) (model.Background, error) {
		return h.queries.GetBackgroundByID(r.Context(), id)
	})
	if !ok {
		return
	}

	var req UpdateBackgroundRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteBadRequest(w, "Invalid JSON body", nil)
		return
	}

	if req.Title != nil {
		background.Title = *req.Title
	}
	if req.ImageURL != nil {
		background.ImageURL = *req.ImageURL
	}
	if req.ImageKey != nil {
		background.ImageKey = *req.ImageKey
	}
	if req.Active != nil {
		background.Active = *req.Active
	}
	if req.SortOrder != nil {
		background.SortOrder = *req.SortOrder
	}

	updated, err := h.queries.UpdateBackground(r.Context(), store.UpdateBackgroundParams{
		ID:        background.ID,
		Title:     background.Title,
		ImageURL:  background.ImageURL,
		ImageKey:  background.ImageKey,
		Active:    background.Active,
		SortOrder: background.SortOrder,
		UpdatedAt: time.Now(),
	})
	if err != nil {
		slog.Error("updating background", "error", err, "id", background.ID)
		WriteInternalError(w, "Failed to update background")
		return
	}

	h.logContentEvent(r, "background updated", updated.ID, updated.Title)
	WriteSuccess(w, backgroundToResponse(updated))
}

// DeleteBackground handles DELETE /backgrounds/{id} (admin). Idempotent.
func (h *Handler) DeleteBackground(w http.ResponseWriter, r *http.Request) {
	id, err := ParseIDParam(r)
	if err != nil {
		WriteBadRequest(w, "Invalid background ID", nil)
		return
	}

	if err := h.queries.DeleteBackground(r.Context(), id); err != nil {
		slog.Error("deleting background", "error", err, "id", id)
		WriteInternalError(w, "Failed to delete background")
		return
	}

	h.logContentEvent(r, "background deleted", id, "")
	WriteSuccess(w, map[string]bool{"deleted": true})
}
