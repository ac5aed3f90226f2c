// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/folio-site/folio-go/internal/model"
)

const essayColumns = `id, title, subtitle, excerpt, content, category, tags,
	cover_url, cover_key, read_time, featured, published, published_at,
	created_at, updated_at`

func scanEssay(row rowScanner) (model.Essay, error) {
	var e model.Essay
	var tags string
	err := row.Scan(&e.ID, &e.Title, &e.Subtitle, &e.Excerpt, &e.Content,
		&e.Category, &tags, &e.CoverURL, &e.CoverKey, &e.ReadTime,
		&e.Featured, &e.Published, &e.PublishedAt, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return model.Essay{}, err
	}
	e.Tags = SplitList(tags)
	return e, nil
}

// ListEssaysParams holds the optional filters for ListEssays. Public list
// handlers force Published to true; the admin list leaves it nil.
type ListEssaysParams struct {
	Published *bool
	Featured  *bool
	Category  string
	Limit     int64
}

// ListEssays returns essays ordered by publish time, then recency.
func (q *Queries) ListEssays(ctx context.Context, arg ListEssaysParams) ([]model.Essay, error) {
	query := `SELECT ` + essayColumns + ` FROM essays WHERE 1=1`
	var args []any

	if arg.Published != nil {
		query += ` AND published = ?`
		args = append(args, *arg.Published)
	}
	if arg.Featured != nil {
		query += ` AND featured = ?`
		args = append(args, *arg.Featured)
	}
	if arg.Category != "" {
		query += ` AND category = ?`
		args = append(args, arg.Category)
	}

	query += ` ORDER BY published_at DESC, created_at DESC, id DESC`

	if arg.Limit > 0 {
		query += ` LIMIT ?`
		args = append(args, arg.Limit)
	}

	rows, err := q.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	essays := []model.Essay{}
	for rows.Next() {
		e, err := scanEssay(rows)
		if err != nil {
			return nil, err
		}
		essays = append(essays, e)
	}
	return essays, rows.Err()
}

// GetEssayByID returns the essay with the given id, or sql.ErrNoRows.
func (q *Queries) GetEssayByID(ctx context.Context, id int64) (model.Essay, error) {
	row := q.db.QueryRowContext(ctx,
		`SELECT `+essayColumns+` FROM essays WHERE id = ?`, id)
	return scanEssay(row)
}

// CreateEssayParams holds the fields for CreateEssay.
type CreateEssayParams struct {
	Title       string
	Subtitle    string
	Excerpt     string
	Content     string
	Category    string
	Tags        []string
	CoverURL    string
	CoverKey    string
	ReadTime    int64
	Featured    bool
	Published   bool
	PublishedAt sql.NullTime
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// CreateEssay inserts an essay row and returns it with the assigned id.
func (q *Queries) CreateEssay(ctx context.Context, arg CreateEssayParams) (model.Essay, error) {
	res, err := q.db.ExecContext(ctx,
		`INSERT INTO essays (title, subtitle, excerpt, content, category, tags,
			cover_url, cover_key, read_time, featured, published, published_at,
			created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		arg.Title, arg.Subtitle, arg.Excerpt, arg.Content, arg.Category,
		JoinList(arg.Tags), arg.CoverURL, arg.CoverKey, arg.ReadTime,
		arg.Featured, arg.Published, arg.PublishedAt, arg.CreatedAt,
		arg.UpdatedAt)
	if err != nil {
		return model.Essay{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.Essay{}, err
	}
	return q.GetEssayByID(ctx, id)
}

// UpdateEssayParams holds the full row for UpdateEssay.
type UpdateEssayParams struct {
	ID          int64
	Title       string
	Subtitle    string
	Excerpt     string
	Content     string
	Category    string
	Tags        []string
	CoverURL    string
	CoverKey    string
	ReadTime    int64
	Featured    bool
	Published   bool
	PublishedAt sql.NullTime
	UpdatedAt   time.Time
}

// UpdateEssay overwrites an essay row and returns the updated record.
// Published and PublishedAt are written independently; toggling Published
// off leaves any existing publish timestamp in place.
func (q *Queries) UpdateEssay(ctx context.Context, arg UpdateEssayParams) (model.Essay, error) {
	_, err := q.db.ExecContext(ctx,
		`UPDATE essays SET title = ?, subtitle = ?, excerpt = ?, content = ?,
			category = ?, tags = ?, cover_url = ?, cover_key = ?, read_time = ?,
			featured = ?, published = ?, published_at = ?, updated_at = ?
		 WHERE id = ?`,
		arg.Title, arg.Subtitle, arg.Excerpt, arg.Content, arg.Category,
		JoinList(arg.Tags), arg.CoverURL, arg.CoverKey, arg.ReadTime,
		arg.Featured, arg.Published, arg.PublishedAt, arg.UpdatedAt, arg.ID)
	if err != nil {
		return model.Essay{}, err
	}
	return q.GetEssayByID(ctx, arg.ID)
}

// DeleteEssay removes an essay row. Deleting a nonexistent id is not an error.
func (q *Queries) DeleteEssay(ctx context.Context, id int64) error {
	_, err := q.db.ExecContext(ctx, `DELETE FROM essays WHERE id = ?`, id)
	return err
}
