// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"time"

	"github.com/folio-site/folio-go/internal/model"
)

const backgroundColumns = `id, title, image_url, image_key, active, sort_order, created_at, updated_at`

func scanBackground(row rowScanner) (model.Background, error) {
	var b model.Background
	err := row.Scan(&b.ID, &b.Title, &b.ImageURL, &b.ImageKey, &b.Active,
		&b.SortOrder, &b.CreatedAt, &b.UpdatedAt)
	return b, err
}

// ListBackgrounds returns carousel backgrounds ordered by sort_order. When
// activeOnly is true, inactive rows are excluded (the public view).
func (q *Queries) ListBackgrounds(ctx context.Context, activeOnly bool) ([]model.Background, error) {
	query := `SELECT ` + backgroundColumns + ` FROM backgrounds`
	if activeOnly {
		query += ` WHERE active = 1`
	}
	query += ` ORDER BY sort_order DESC, id DESC`

	rows, err := q.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	backgrounds := []model.Background{}
	for rows.Next() {
		b, err := scanBackground(rows)
		if err != nil {
			return nil, err
		}
		backgrounds = append(backgrounds, b)
	}
	return backgrounds, rows.Err()
}

// GetBackgroundByID returns the background with the given id, or sql.ErrNoRows.
func (q *Queries) GetBackgroundByID(ctx context.Context, id int64) (model.Background, error) {
	row := q.db.QueryRowContext(ctx,
		`SELECT `+backgroundColumns+` FROM backgrounds WHERE id = ?`, id)
	return scanBackground(row)
}

// CreateBackgroundParams holds the fields for CreateBackground.
type CreateBackgroundParams struct {
	Title     string
	ImageURL  string
	ImageKey  string
	Active    bool
	SortOrder int64
	CreatedAt time.Time
	UpdatedAt time.Time
}

// CreateBackground inserts a background row and returns it with the assigned id.
func (q *Queries) CreateBackground(ctx context.Context, arg CreateBackgroundParams) (model.Background, error) {
	res, err := q.db.ExecContext(ctx,
		`INSERT INTO backgrounds (title, image_url, image_key, active, sort_order, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		arg.Title, arg.ImageURL, arg.ImageKey, arg.Active, arg.SortOrder,
		arg.CreatedAt, arg.UpdatedAt)
	if err != nil {
		return model.Background{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.Background{}, err
	}
	return q.GetBackgroundByID(ctx, id)
}

// UpdateBackgroundParams holds the full row for UpdateBackground.
type UpdateBackgroundParams struct {
	ID        int64
	Title     string
	ImageURL  string
	ImageKey  string
	Active    bool
	SortOrder int64
	UpdatedAt time.Time
}

// UpdateBackground overwrites a background row and returns the updated record.
func (q *Queries) UpdateBackground(ctx context.Context, arg UpdateBackgroundParams) (model.Background, error) {
	_, err := q.db.ExecContext(ctx,
		`UPDATE backgrounds SET title = ?, image_url = ?, image_key = ?,
			active = ?, sort_order = ?, updated_at = ?
		 WHERE id = ?`,
		arg.Title, arg.ImageURL, arg.ImageKey, arg.Active, arg.SortOrder,
		arg.UpdatedAt, arg.ID)
	if err != nil {
		return model.Background{}, err
	}
	return q.GetBackgroundByID(ctx, arg.ID)
}

// DeleteBackground removes a background row. Deleting a nonexistent id is not
// an error.
func (q *Queries) DeleteBackground(ctx context.Context, id int64) error {
	_, err := q.db.ExecContext(ctx, `DELETE FROM backgrounds WHERE id = ?`, id)
	return err
}
