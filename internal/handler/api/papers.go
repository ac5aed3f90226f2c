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

// PaperResponse represents a publication in API responses.
type PaperResponse struct {
	ID          int64      `json:"id"`
	Title       string     `json:"title"`
	Abstract    string     `json:"abstract"`
	Authors     []string   `json:"authors"`
	Journal     string     `json:"journal"`
	Year        int64      `json:"year"`
	Volume      string     `json:"volume,omitempty"`
	Issue       string     `json:"issue,omitempty"`
	Pages       string     `json:"pages,omitempty"`
	DOI         string     `json:"doi,omitempty"`
	Category    string     `json:"category"`
	Tags        []string   `json:"tags"`
	PDFURL      string     `json:"pdf_url,omitempty"`
	PDFKey      string     `json:"pdf_key,omitempty"`
	Citations   int64      `json:"citations"`
	Featured    bool       `json:"featured"`
	Published   bool       `json:"published"`
	PublishedAt *time.Time `json:"published_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// CreatePaperRequest represents the request body for creating a paper.
type CreatePaperRequest struct {
	Title     string   `json:"title"`
	Abstract  string   `json:"abstract"`
	Authors   []string `json:"authors"`
	Journal   string   `json:"journal"`
	Year      int64    `json:"year"`
	Volume    string   `json:"volume"`
	Issue     string   `json:"issue"`
	Pages     string   `json:"pages"`
	DOI       string   `json:"doi"`
	Category  string   `json:"category"`
	Tags      []string `json:"tags"`
	PDFURL    string   `json:"pdf_url"`
	PDFKey    string   `json:"pdf_key"`
	Citations int64    `json:"citations"`
	Featured  bool     `json:"featured"`
	Published bool     `json:"published"`
}

// UpdatePaperRequest represents the request body for updating a paper.
// Omitted fields keep their stored values.
type UpdatePaperRequest struct {
	Title     *string   `json:"title,omitempty"`
	Abstract  *string   `json:"abstract,omitempty"`
	Authors   *[]string `json:"authors,omitempty"`
	Journal   *string   `json:"journal,omitempty"`
	Year      *int64    `json:"year,omitempty"`
	Volume    *string   `json:"volume,omitempty"`
	Issue     *string   `json:"issue,omitempty"`
	Pages     *string   `json:"pages,omitempty"`
	DOI       *string   `json:"doi,omitempty"`
	Category  *string   `json:"category,omitempty"`
	Tags      *[]string `json:"tags,omitempty"`
	PDFURL    *string   `json:"pdf_url,omitempty"`
	PDFKey    *string   `json:"pdf_key,omitempty"`
	Citations *int64    `json:"citations,omitempty"`
	Featured  *bool     `json:"featured,omitempty"`
	Published *bool     `json:"published,omitempty"`
}

// paperToResponse converts a model.Paper to PaperResponse.
func paperToResponse(p model.Paper) PaperResponse {
	resp := PaperResponse{
		ID:        p.ID,
		Title:     p.Title,
		Abstract:  p.Abstract,
		Authors:   p.Authors,
		Journal:   p.Journal,
		Year:      p.Year,
		Volume:    p.Volume,
		Issue:     p.Issue,
		Pages:     p.Pages,
		DOI:       p.DOI,
		Category:  p.Category,
		Tags:      p.Tags,
		PDFURL:    p.PDFURL,
		PDFKey:    p.PDFKey,
		Citations: p.Citations,
		Featured:  p.Featured,
		Published: p.Published,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
	if p.PublishedAt.Valid {
		resp.PublishedAt = &p.PublishedAt.Time
	}
	return resp
}

func papersToResponse(papers []model.Paper) []PaperResponse {
	out := make([]PaperResponse, 0, len(papers))
	for _, p := range papers {
		out = append(out, paperToResponse(p))
	}
	return out
}

// ListPapers handles GET /papers. Public: unpublished papers never appear.
func (h *Handler) ListPapers(w http.ResponseWriter, r *http.Request) {
	published := true
	papers, err := h.queries.ListPapers(r.Context(), store.ListPapersParams{
		Published: &published,
		Featured:  parseBoolParam(r, "featured"),
		Category:  r.URL.Query().Get("category"),
		Limit:     parseLimitParam(r, 500),
	})
	if err != nil {
		slog.Error("listing papers", "error", err)
		papers = []model.Paper{}
	}
	WriteSuccess(w, papersToResponse(papers))
}

// ListAllPapers handles GET /papers/all (admin): drafts included.
func (h *Handler) ListAllPapers(w http.ResponseWriter, r *http.Request) {
	papers, err := h.queries.ListPapers(r.Context(), store.ListPapersParams{
		Published: parseBoolParam(r, "published"),
		Featured:  parseBoolParam(r, "featured"),
		Category:  r.URL.Query().Get("category"),
		Limit:     parseLimitParam(r, 500),
	})
	if err != nil {
		slog.Error("listing all papers", "error", err)
		papers = []model.Paper{}
	}
	WriteSuccess(w, papersToResponse(papers))
}

// GetPaper handles GET /papers/{id}.
func (h *Handler) GetPaper(w http.ResponseWriter, r *http.Request) {
	id, err := ParseIDParam(r)
	if err != nil {
		WriteBadRequest(w, "Invalid paper ID", nil)
		return
	}

	paper, err := h.queries.GetPaperByID(r.Context(), id)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			slog.Error("getting paper", "error", err, "id", id)
		}
		WriteNotFound(w, "paper not found")
		return
	}

	WriteSuccess(w, paperToResponse(paper))
}

// CreatePaper handles POST /papers (admin).
func (h *Handler) CreatePaper(w http.ResponseWriter, r *http.Request) {
	var req CreatePaperRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteBadRequest(w, "Invalid JSON body", nil)
		return
	}

	if req.Title == "" {
		WriteValidationError(w, map[string]string{"title": "Title is required"})
		return
	}
	if len(req.Authors) == 0 {
		WriteValidationError(w, map[string]string{"authors": "At least one author is required"})
		return
	}

	now := time.Now()
	var publishedAt sql.NullTime
	if req.Published {
		publishedAt = sql.NullTime{Time: now, Valid: true}
	}

	paper, err := h.queries.CreatePaper(r.Context(), store.CreatePaperParams{
		Title:       req.Title,
		Abstract:    req.Abstract,
		Authors:     req.Authors,
		Journal:     req.Journal,
		Year:        req.Year,
		Volume:      req.Volume,
		Issue:       req.Issue,
		Pages:       req.Pages,
		DOI:         req.DOI,
		Category:    req.Category,
		Tags:        req.Tags,
		PDFURL:      req.PDFURL,
		PDFKey:      req.PDFKey,
		Citations:   req.Citations,
		Featured:    req.Featured,
		Published:   req.Published,
		PublishedAt: publishedAt,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		slog.Error("creating paper", "error", err)
		WriteInternalError(w, "Failed to create paper")
		return
	}

	h.logContentEvent(r, "paper created", paper.ID, paper.Title)
	WriteCreated(w, paperToResponse(paper))
}

// UpdatePaper handles PUT /papers/{id} (admin). Same publish semantics as
// essays: the first publish stamps the timestamp, unpublish keeps it.
func (h *Handler) UpdatePaper(w http.ResponseWriter, r *http.Request) {
	paper, ok := requireEntityByID(w, r, "paper", func(id int64) (model.Paper, error) {
		return h.queries.GetPaperByID(r.Context(), id)
	})
	if !ok {
		return
	}

	var req UpdatePaperRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteBadRequest(w, "Invalid JSON body", nil)
		return
	}

	if req.Title != nil {
		paper.Title = *req.Title
	}
	if req.Abstract != nil {
		paper.Abstract = *req.Abstract
	}
	if req.Authors != nil {
		paper.Authors = *req.Authors
	}
	if req.Journal != nil {
		paper.Journal = *req.Journal
	}
	if req.Year != nil {
		paper.Year = *req.Year
	}
	if req.Volume != nil {
		paper.Volume = *req.Volume
	}
	if req.Issue != nil {
		paper.Issue = *req.Issue
	}
	if req.Pages != nil {
		paper.Pages = *req.Pages
	}
	if req.DOI != nil {
		paper.DOI = *req.DOI
	}
	if req.Category != nil {
		paper.Category = *req.Category
	}
	if req.Tags != nil {
		paper.Tags = *req.Tags
	}
	if req.PDFURL != nil {
		paper.PDFURL = *req.PDFURL
	}
	if req.PDFKey != nil {
		paper.PDFKey = *req.PDFKey
	}
	if req.Citations != nil {
		paper.Citations = *req.Citations
	}
	if req.Featured != nil {
		paper.Featured = *req.Featured
	}
	if req.Published != nil {
		paper.Published = *req.Published
		if paper.Published && !paper.PublishedAt.Valid {
			paper.PublishedAt = sql.NullTime{Time: time.Now(), Valid: true}
		}
	}

	updated, err := h.queries.UpdatePaper(r.Context(), store.UpdatePaperParams{
		ID:          paper.ID,
		Title:       paper.Title,
		Abstract:    paper.Abstract,
		Authors:     paper.Authors,
		Journal:     paper.Journal,
		Year:        paper.Year,
		Volume:      paper.Volume,
		Issue:       paper.Issue,
		Pages:       paper.Pages,
		DOI:         paper.DOI,
		Category:    paper.Category,
		Tags:        paper.Tags,
		PDFURL:      paper.PDFURL,
		PDFKey:      paper.PDFKey,
		Citations:   paper.Citations,
		Featured:    paper.Featured,
		Published:   paper.Published,
		PublishedAt: paper.PublishedAt,
		UpdatedAt:   time.Now(),
	})
	if err != nil {
		slog.Error("updating paper", "error", err, "id", paper.ID)
		WriteInternalError(w, "Failed to update paper")
		return
	}

	h.logContentEvent(r, "paper updated", updated.ID, updated.Title)
	WriteSuccess(w, paperToResponse(updated))
}

// DeletePaper handles DELETE /papers/{id} (admin). Idempotent.
func (h *Handler) DeletePaper(w http.ResponseWriter, r *http.Request) {
	id, err := ParseIDParam(r)
	if err != nil {
		WriteBadRequest(w, "Invalid paper ID", nil)
		return
	}

	if err := h.queries.DeletePaper(r.Context(), id); err != nil {
		slog.Error("deleting paper", "error", err, "id", id)
		WriteInternalError(w, "Failed to delete paper")
		return
	}

	h.logContentEvent(r, "paper deleted", id, "")
	WriteSuccess(w, map[string]bool{"deleted": true})
}
