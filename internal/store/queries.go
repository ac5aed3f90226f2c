// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import "database/sql"

// Queries wraps a database handle with typed query methods. Construct one
// per handle with New; Queries is safe for concurrent use.
type Queries struct {
	db *sql.DB
}

// New creates a Queries instance for the given database handle.
func New(db *sql.DB) *Queries {
	return &Queries{db: db}
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows, letting each
// entity share one scan function between single- and multi-row queries.
type rowScanner interface {
	Scan(dest ...any) error
}
