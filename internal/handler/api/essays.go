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

// EssayResponse represents an essay in API responses.
type EssayResponse struct {
	ID          int64      `json:"id"`
	Title       string     `json:"title"`
	Subtitle    string     `json:"subtitle"`
	Excerpt     string     `json:"excerpt"`
	Content     string     `json:"content"`
	Category    string     `json:"category"`
	Tags        []string   `json:"tags"`
	CoverURL    string     `json:"cover_url,omitempty"`
	CoverKey    string     `json:"cover_key,omitempty"`
	ReadTime    int64      `json:"read_time"`
	Featured    bool       `json:"featured"`
	Published   bool       `json:"published"`
	PublishedAt *time.Time `json:"published_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// CreateEssayRequest represents the request body for creating an essay.
type CreateEssayRequest struct {
	Title     string   `json:"title"`
	Subtitle  string   `json:"subtitle"`
	Excerpt   string   `json:"excerpt"`
	Content   string   `json:"content"`
	Category  string   `json:"category"`
	Tags      []string `json:"tags"`
	CoverURL  string   `json:"cover_url"`
	CoverKey  string   `json:"cover_key"`
	ReadTime  int64    `json:"read_time"`
	Featured  bool     `json:"featured"`
	Published bool     `json:"published"`
}

// UpdateEssayRequest represents the request body for updating an essay.
// Omitted fields keep their stored values.
type UpdateEssayRequest struct {
	Title     *string   `json:"title,omitempty"`
	Subtitle  *string   `json:"subtitle,omitempty"`
	Excerpt   *string   `json:"excerpt,omitempty"`
	Content   *string   `json:"content,omitempty"`
	Category  *string   `json:"category,omitempty"`
	Tags      *[]string `json:"tags,omitempty"`
	CoverURL  *string   `json:"cover_url,omitempty"`
	CoverKey  *string   `json:"cover_key,omitempty"`
	ReadTime  *int64    `json:"read_time,omitempty"`
	Featured  *bool     `json:"featured,omitempty"`
	Published *bool     `json:"published,omitempty"`
}

// essayToResponse converts a model.Essay to EssayResponse.
func essayToResponse(e model.Essay) EssayResponse {
	resp := EssayResponse{
		ID:        e.ID,
		Title:     e.Title,
		Subtitle:  e.Subtitle,
		Excerpt:   e.Excerpt,
		Content:   e.Content,
		Category:  e.Category,
		Tags:      e.Tags,
		CoverURL:  e.CoverURL,
		CoverKey:  e.CoverKey,
		ReadTime:  e.ReadTime,
		Featured:  e.Featured,
		Published: e.Published,
		CreatedAt: e.CreatedAt,
		UpdatedAt: e.UpdatedAt,
	}
	if e.PublishedAt.Valid {
		resp.PublishedAt = &e.PublishedAt.Time
	}
	return resp
}

func essaysToResponse(essays []model.Essay) []EssayResponse {
	out := make([]EssayResponse, 0, len(essays))
	for _, e := range essays {
		out = append(out, essayToResponse(e))
	}
	return out
}

// ListEssays handles GET /essays. Public: drafts are never visible here,
// whatever the query string says.
func (h *Handler) ListEssays(w http.ResponseWriter, r *http.Request) {
	published := true
	essays, err := h.queries.ListEssays(r.Context(), store.ListEssaysParams{
		Published: &published,
		Featured:  parseBoolParam(r, "featured"),
		Category:  r.URL.Query().Get("category"),
		Limit:     parseLimitParam(r, 500),
	})
	if err != nil {
		slog.Error("listing essays", "error", err)
		essays = []model.Essay{}
	}
	WriteSuccess(w, essaysToResponse(essays))
}

// ListAllEssays handles GET /essays/all (admin): drafts included.
func (h *Handler) ListAllEssays(w http.ResponseWriter, r *http.Request) {
	essays, err := h.queries.ListEssays(r.Context(), store.ListEssaysParams{
		Published: parseBoolParam(r, "published"),
		Featured:  parseBoolParam(r, "featured"),
		Category:  r.URL.Query().Get("category"),
		Limit:     parseLimitParam(r, 500),
	})
	if err != nil {
		slog.Error("listing all essays", "error", err)
		essays = []model.Essay{}
	}
	WriteSuccess(w, essaysToResponse(essays))
}

// GetEssay handles GET /essays/{id}. Drafts are fetchable by id; the
// single-essay page is where an author previews their draft.
func (h *Handler) GetEssay(w http.ResponseWriter, r *http.Request) {
	id, err := ParseIDParam(r)
	if err != nil {
		WriteBadRequest(w, "Invalid essay ID", nil)
		return
	}

	essay, err := h.queries.GetEssayByID(r.Context(), id)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			slog.Error("getting essay", "error", err, "id", id)
		}
		WriteNotFound(w, "essay not found")
		return
	}

	WriteSuccess(w, essayToResponse(essay))
}

// CreateEssay handles POST /essays (admin). Creating directly as published
// stamps the publish time.
func (h *Handler) CreateEssay(w http.ResponseWriter, r *http.Request) {
	var req CreateEssayRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteBadRequest(w, "Invalid JSON body", nil)
		return
	}

	if req.Title == "" {
		WriteValidationError(w, map[string]string{"title": "Title is required"})
		return
	}

	now := time.Now()
	var publishedAt sql.NullTime
	if req.Published {
		publishedAt = sql.NullTime{Time: now, Valid: true}
	}

	essay, err := h.queries.CreateEssay(r.Context(), store.CreateEssayParams{
		Title:       req.Title,
		Subtitle:    req.Subtitle,
		Excerpt:     req.Excerpt,
		Content:     req.Content,
		Category:    req.Category,
		Tags:        req.Tags,
		CoverURL:    req.CoverURL,
		CoverKey:    req.CoverKey,
		ReadTime:    req.ReadTime,
		Featured:    req.Featured,
		Published:   req.Published,
		PublishedAt: publishedAt,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		slog.Error("creating essay", "error", err)
		WriteInternalError(w, "Failed to create essay")
		return
	}

	h.logContentEvent(r, "essay created", essay.ID, essay.Title)
	WriteCreated(w, essayToResponse(essay))
}

// UpdateEssay handles PUT /essays/{id} (admin). Publishing for the first
// time stamps the publish timestamp; unpublishing leaves it alone, so the
// original publication date survives a republish.
func (h *Handler) UpdateEssay(w http.ResponseWriter, r *http.Request) {
	essay, ok := requireEntityByID(w, r, "essay", func(id int64) (model.Essay, error) {
		return h.queries.GetEssayByID(r.Context(), id)
	})
	if !ok {
		return
	}

	var req UpdateEssayRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteBadRequest(w, "Invalid JSON body", nil)
		return
	}

	if req.Title != nil {
		essay.Title = *req.Title
	}
	if req.Subtitle != nil {
		essay.Subtitle = *req.Subtitle
	}
	if req.Excerpt != nil {
		essay.Excerpt = *req.Excerpt
	}
	if req.Content != nil {
		essay.Content = *req.Content
	}
	if req.Category != nil {
		essay.Category = *req.Category
	}
	if req.Tags != nil {
		essay.Tags = *req.Tags
	}
	if req.CoverURL != nil {
		essay.CoverURL = *req.CoverURL
	}
	if req.CoverKey != nil {
		essay.CoverKey = *req.CoverKey
	}
	if req.ReadTime != nil {
		essay.ReadTime = *req.ReadTime
	}
	if req.Featured != nil {
		essay.Featured = *req.Featured
	}
	if req.Published != nil {
		essay.Published = *req.Published
		if essay.Published && !essay.PublishedAt.Valid {
			essay.PublishedAt = sql.NullTime{Time: time.Now(), Valid: true}
		}
	}

	updated, err := h.queries.UpdateEssay(r.Context(), store.UpdateEssayParams{
		ID:          essay.ID,
		Title:       essay.Title,
		Subtitle:    essay.Subtitle,
		Excerpt:     essay.Excerpt,
		Content:     essay.Content,
		Category:    essay.Category,
		Tags:        essay.Tags,
		CoverURL:    essay.CoverURL,
		CoverKey:    essay.CoverKey,
		ReadTime:    essay.ReadTime,
		Featured:    essay.Featured,
		Published:   essay.Published,
		PublishedAt: essay.PublishedAt,
		UpdatedAt:   time.Now(),
	})
	if err != nil {
		slog.Error("updating essay", "error", err, "id", essay.ID)
		WriteInternalError(w, "Failed to update essay")
		return
	}

	h.logContentEvent(r, "essay updated", updated.ID, updated.Title)
	WriteSuccess(w, essayToResponse(updated))
}

// DeleteEssay handles DELETE /essays/{id} (admin). Idempotent.
func (h *Handler) DeleteEssay(w http.ResponseWriter, r *http.Request) {
	id, err := ParseIDParam(r)
	if err != nil {
		WriteBadRequest(w, "Invalid essay ID", nil)
		return
	}

	if err := h.queries.DeleteEssay(r.Context(), id); err != nil {
		slog.Error("deleting essay", "error", err, "id", id)
		WriteInternalError(w, "Failed to delete essay")
		return
	}

	h.logContentEvent(r, "essay deleted", id, "")
	WriteSuccess(w, map[string]bool{"deleted": true})
}
