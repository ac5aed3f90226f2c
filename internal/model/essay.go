// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import (
	"database/sql"
	"time"
)

// Essay represents a long-form post.
//
// Published and PublishedAt are deliberately independent: unpublishing an
// essay does not clear its publish timestamp, so the original publication
// date survives unpublish/republish cycles. Callers must not assume
// Published == PublishedAt.Valid.
type Essay struct {
	ID          int64        `json:"id"`
	Title       string       `json:"title"`
	Subtitle    string       `json:"subtitle"`
	Excerpt     string       `json:"excerpt"`
	Content     string       `json:"content"`
	Category    string       `json:"category"`
	Tags        []string     `json:"tags"`
	CoverURL    string       `json:"cover_url,omitempty"`
	CoverKey    string       `json:"cover_key,omitempty"`
	ReadTime    int64        `json:"read_time"`
	Featured    bool         `json:"featured"`
	Published   bool         `json:"published"`
	PublishedAt sql.NullTime `json:"published_at,omitempty"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}
