// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"database/sql"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/folio-site/folio-go/internal/model"
	"github.com/folio-site/folio-go/internal/store"
)

// PhotoResponse represents a photo in API responses.
type PhotoResponse struct {
	ID          int64      `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Location    string     `json:"location"`
	Camera      string     `json:"camera"`
	Lens        string     `json:"lens"`
	Settings    string     `json:"settings"`
	Category    string     `json:"category"`
	Tags        []string   `json:"tags"`
	ImageURL    string     `json:"image_url"`
	ImageKey    string     `json:"image_key,omitempty"`
	Featured    bool       `json:"featured"`
	SortOrder   int64      `json:"sort_order"`
	PublishedAt *time.Time `json:"published_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// CreatePhotoRequest represents the request body for creating a photo.
type CreatePhotoRequest struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Location    string   `json:"location"`
	Camera      string   `json:"camera"`
	Lens        string   `json:"lens"`
	Settings    string   `json:"settings"`
	Category    string   `json:"category"`
	Tags        []string `json:"tags"`
	ImageURL    string   `json:"image_url"`
	ImageKey    string   `json:"image_key"`
	Featured    bool     `json:"featured"`
	SortOrder   int64    `json:"sort_order"`
	PublishedAt *string  `json:"published_at,omitempty"`
}

// UpdatePhotoRequest represents the request body for updating a photo.
// Omitted fields keep their stored values.
type UpdatePhotoRequest struct {
	Title       *string   `json:"title,omitempty"`
	Description *string   `json:"description,omitempty"`
	Location    *string   `json:"location,omitempty"`
	Camera      *string   `json:"camera,omitempty"`
	Lens        *string   `json:"lens,omitempty"`
	Settings    *string   `json:"settings,omitempty"`
	Category    *string   `json:"category,omitempty"`
	Tags        *[]string `json:"tags,omitempty"`
	ImageURL    *string   `json:"image_url,omitempty"`
	ImageKey    *string   `json:"image_key,omitempty"`
	Featured    *bool     `json:"featured,omitempty"`
	SortOrder   *int64    `json:"sort_order,omitempty"`
	PublishedAt *string   `json:"published_at,omitempty"`
}

// photoToResponse converts a model.Photo to PhotoResponse.
func photoToResponse(p model.Photo) PhotoResponse {
	resp := PhotoResponse{
		ID:          p.ID,
		Title:       p.Title,
		Description: p.Description,
		Location:    p.Location,
		Camera:      p.Camera,
		Lens:        p.Lens,
		Settings:    p.Settings,
		Category:    p.Category,
		Tags:        p.Tags,
		ImageURL:    p.ImageURL,
		ImageKey:    p.ImageKey,
		Featured:    p.Featured,
		SortOrder:   p.SortOrder,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
	if p.PublishedAt.Valid {
		resp.PublishedAt = &p.PublishedAt.Time
	}
	return resp
}

func photosToResponse(photos []model.Photo) []PhotoResponse {
	out := make([]PhotoResponse, 0, len(photos))
	for _, p := range photos {
		out = append(out, photoToResponse(p))
	}
	return out
}

// parseTimestamp parses an RFC 3339 timestamp from a request field.
func parseTimestamp(v *string) (sql.NullTime, error) {
	if v == nil || *v == "" {
		return sql.NullTime{}, nil
	}
	t, err := time.Parse(time.RFC3339, *v)
	if err != nil {
		return sql.NullTime{}, err
	}
	return sql.NullTime{Time: t, Valid: true}, nil
}

// ListPhotos handles GET /photos. Every photo is public; there is no draft
// state for this entity. A storage error degrades to an empty list so the
// gallery renders instead of erroring.
func (h *Handler) ListPhotos(w http.ResponseWriter, r *http.Request) {
	photos, err := h.queries.ListPhotos(r.Context(), store.ListPhotosParams{
		Featured: parseBoolParam(r, "featured"),
		Category: r.URL.Query().Get("category"),
		Limit:    parseLimitParam(r, 500),
	})
	if err != nil {
		slog.Error("listing photos", "error", err)
		photos = []model.Photo{}
	}
	WriteSuccess(w, photosToResponse(photos))
}

// GetPhoto handles GET /photos/{id}. An unknown id and a read failure both
// present as 404: absence, not error.
func (h *Handler) GetPhoto(w http.ResponseWriter, r *http.Request) {
	id, err := ParseIDParam(r)
	if err != nil {
		WriteBadRequest(w, "Invalid photo ID", nil)
		return
	}

	photo, err := h.queries.GetPhotoByID(r.Context(), id)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			slog.Error("getting photo", "error", err, "id", id)
		}
		WriteNotFound(w, "photo not found")
		return
	}

	WriteSuccess(w, photoToResponse(photo))
}

// CreatePhoto handles POST /photos (admin).
func (h *Handler) CreatePhoto(w http.ResponseWriter, r *http.Request) {
	var req CreatePhotoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteBadRequest(w, "Invalid JSON body", nil)
		return
	}

	if req.Title == "" {
		WriteValidationError(w, map[string]string{"title": "Title is required"})
		return
	}
	if req.ImageURL == "" {
		WriteValidationError(w, map[string]string{"image_url": "Image URL is required"})
		return
	}

	publishedAt, err := parseTimestamp(req.PublishedAt)
	if err != nil {
		WriteValidationError(w, map[string]string{"published_at": "Must be RFC 3339"})
		return
	}

	now := time.Now()
	photo, err := h.queries.CreatePhoto(r.Context(), store.CreatePhotoParams{
		Title:       req.Title,
		Description: req.Description,
		Location:    req.Location,
		Camera:      req.Camera,
		Lens:        req.Lens,
		Settings:    req.Settings,
		Category:    req.Category,
		Tags:        req.Tags,
		ImageURL:    req.ImageURL,
		ImageKey:    req.ImageKey,
		Featured:    req.Featured,
		SortOrder:   req.SortOrder,
		PublishedAt: publishedAt,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		slog.Error("creating photo", "error", err)
		WriteInternalError(w, "Failed to create photo")
		return
	}

	h.logContentEvent(r, "photo created", photo.ID, photo.Title)
	WriteCreated(w, photoToResponse(photo))
}

// UpdatePhoto handles PUT /photos/{id} (admin). The request is a patch:
// fields left out keep their stored values.
func (h *Handler) UpdatePhoto(w http.ResponseWriter, r *http.Request) {
	photo, ok := requireEntityByID(w, r, "photo", func(id int64) (model.Photo, error) {
		return h.queries.GetPhotoByID(r.Context(), id)
	})
	if !ok {
		return
	}

	var req UpdatePhotoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteBadRequest(w, "Invalid JSON body", nil)
		return
	}

	if req.Title != nil {
		photo.Title = *req.Title
	}
	if req.Description != nil {
		photo.Description = *req.Description
	}
	if req.Location != nil {
		photo.Location = *req.Location
	}
	if req.Camera != nil {
		photo.Camera = *req.Camera
	}
	if req.Lens != nil {
		photo.Lens = *req.Lens
	}
	if req.Settings != nil {
		photo.Settings = *req.Settings
	}
	if req.Category != nil {
		photo.Category = *req.Category
	}
	if req.Tags != nil {
		photo.Tags = *req.Tags
	}
	if req.ImageURL != nil {
		photo.ImageURL = *req.ImageURL
	}
	if req.ImageKey != nil {
		photo.ImageKey = *req.ImageKey
	}
	if req.Featured != nil {
		photo.Featured = *req.Featured
	}
	if req.SortOrder != nil {
		photo.SortOrder = *req.SortOrder
	}
	if req.PublishedAt != nil {
		publishedAt, err := parseTimestamp(req.PublishedAt)
		if err != nil {
			WriteValidationError(w, map[string]string{"published_at": "Must be RFC 3339"})
			return
		}
		photo.PublishedAt = publishedAt
	}

	updated, err := h.queries.UpdatePhoto(r.Context(), store.UpdatePhotoParams{
		ID:          photo.ID,
		Title:       photo.Title,
		Description: photo.Description,
		Location:    photo.Location,
		Camera:      photo.Camera,
		Lens:        photo.Lens,
		Settings:    photo.Settings,
		Category:    photo.Category,
		Tags:        photo.Tags,
		ImageURL:    photo.ImageURL,
		ImageKey:    photo.ImageKey,
		Featured:    photo.Featured,
		SortOrder:   photo.SortOrder,
		PublishedAt: photo.PublishedAt,
		UpdatedAt:   time.Now(),
	})
	if err != nil {
		slog.Error("updating photo", "error", err, "id", photo.ID)
		WriteInternalError(w, "Failed to update photo")
		return
	}

	h.logContentEvent(r, "photo updated", updated.ID, updated.Title)
	WriteSuccess(w, photoToResponse(updated))
}

// DeletePhoto handles DELETE /photos/{id} (admin). Deleting a photo that is
// already gone succeeds.
func (h *Handler) DeletePhoto(w http.ResponseWriter, r *http.Request) {
	id, err := ParseIDParam(r)
	if err != nil {
		WriteBadRequest(w, "Invalid photo ID", nil)
		return
	}

	if err := h.queries.DeletePhoto(r.Context(), id); err != nil {
		slog.Error("deleting photo", "error", err, "id", id)
		WriteInternalError(w, "Failed to delete photo")
		return
	}

	h.logContentEvent(r, "photo deleted", id, "")
	WriteSuccess(w, map[string]bool{"deleted": true})
}
