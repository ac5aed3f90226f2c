// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"log/slog"
	"net/http"
)

// SearchResponse groups search matches by entity, converted to the API
// response shapes. All three buckets are always present.
type SearchResponse struct {
	Photos []PhotoResponse `json:"photos"`
	Essays []EssayResponse `json:"essays"`
	Papers []PaperResponse `json:"papers"`
}

// Search handles GET /search?q=&type=. Empty or missing q yields empty
// buckets; a failing lookup degrades the same way.
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	typeFilter := r.URL.Query().Get("type")

	results, err := h.search.Search(r.Context(), q, typeFilter)
	if err != nil {
		slog.Error("searching", "error", err, "q", q)
	}

	WriteSuccess(w, SearchResponse{
		Photos: photosToResponse(results.Photos),
		Essays: essaysToResponse(results.Essays),
		Papers: papersToResponse(results.Papers),
	})
}
