// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import (
	"database/sql"
	"time"
)

// Photo represents one image in the portfolio. Photos have no draft state:
// every photo is publicly listable as soon as it exists.
type Photo struct {
	ID          int64        `json:"id"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Location    string       `json:"location"`
	Camera      string       `json:"camera"`
	Lens        string       `json:"lens"`
	Settings    string       `json:"settings"`
	Category    string       `json:"category"`
	Tags        []string     `json:"tags"`
	ImageURL    string       `json:"image_url"`
	ImageKey    string       `json:"image_key,omitempty"`
	Featured    bool         `json:"featured"`
	SortOrder   int64        `json:"sort_order"`
	PublishedAt sql.NullTime `json:"published_at,omitempty"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}
