// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import (
	"database/sql"
	"time"
)

// Paper represents an academic paper listing. Like essays, papers carry an
// independent Published flag and PublishedAt timestamp.
type Paper struct {
	ID          int64        `json:"id"`
	Title       string       `json:"title"`
	Abstract    string       `json:"abstract"`
	Authors     []string     `json:"authors"`
	Journal     string       `json:"journal"`
	Year        int64        `json:"year"`
	Volume      string       `json:"volume"`
	Issue       string       `json:"issue"`
	Pages       string       `json:"pages"`
	DOI         string       `json:"doi"`
	Category    string       `json:"category"`
	Tags        []string     `json:"tags"`
	PDFURL      string       `json:"pdf_url,omitempty"`
	PDFKey      string       `json:"pdf_key,omitempty"`
	Citations   int64        `json:"citations"`
	Featured    bool         `json:"featured"`
	Published   bool         `json:"published"`
	PublishedAt sql.NullTime `json:"published_at,omitempty"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}
