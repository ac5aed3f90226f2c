// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/folio-site/folio-go/internal/model"
)

const paperColumns = `id, title, abstract, authors, journal, year, volume,
	issue, pages, doi, category, tags, pdf_url, pdf_key, citations,
	featured, published, published_at, created_at, updated_at`

func scanPaper(row rowScanner) (model.Paper, error) {
	var p model.Paper
	var authors, tags string
	err := row.Scan(&p.ID, &p.Title, &p.Abstract, &authors, &p.Journal,
		&p.Year, &p.Volume, &p.Issue, &p.Pages, &p.DOI, &p.Category, &tags,
		&p.PDFURL, &p.PDFKey, &p.Citations, &p.Featured, &p.Published,
		&p.PublishedAt, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return model.Paper{}, err
	}
	p.Authors = SplitList(authors)
	p.Tags = SplitList(tags)
	return p, nil
}

// ListPapersParams holds the optional filters for ListPapers.
type ListPapersParams struct {
	Published *bool
	Featured  *bool
	Category  string
	Limit     int64
}

// ListPapers returns papers ordered by publication year, then recency.
func (q *Queries) ListPapers(ctx context.Context, arg ListPapersParams) ([]model.Paper, error) {
	query := `SELECT ` + paperColumns + ` FROM papers WHERE 1=1`
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

	query += ` ORDER BY year DESC, created_at DESC, id DESC`

	if arg.Limit > 0 {
		query += ` LIMIT ?`
		args = append(args, arg.Limit)
	}

	rows, err := q.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	papers := []model.Paper{}
	for rows.Next() {
		p, err := scanPaper(rows)
		if err != nil {
			return nil, err
		}
		papers = append(papers, p)
	}
	return papers, rows.Err()
}

// GetPaperByID returns the paper with the given id, or sql.ErrNoRows.
func (q *Queries) GetPaperByID(ctx context.Context, id int64) (model.Paper, error) {
	row := q.db.QueryRowContext(ctx,
		`SELECT `+paperColumns+` FROM papers WHERE id = ?`, id)
	return scanPaper(row)
}

// CreatePaperParams holds the fields for CreatePaper.
type CreatePaperParams struct {
	Title       string
	Abstract    string
	Authors     []string
	Journal     string
	Year        int64
	Volume      string
	Issue       string
	Pages       string
	DOI         string
	Category    string
	Tags        []string
	PDFURL      string
	PDFKey      string
	Citations   int64
	Featured    bool
	Published   bool
	PublishedAt sql.NullTime
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// CreatePaper inserts a paper row and returns it with the assigned id.
func (q *Queries) CreatePaper(ctx context.Context, arg CreatePaperParams) (model.Paper, error) {
	res, err := q.db.ExecContext(ctx,
		`INSERT INTO papers (title, abstract, authors, journal, year, volume,
			issue, pages, doi, category, tags, pdf_url, pdf_key, citations,
			featured, published, published_at, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		arg.Title, arg.Abstract, JoinList(arg.Authors), arg.Journal, arg.Year,
		arg.Volume, arg.Issue, arg.Pages, arg.DOI, arg.Category,
		JoinList(arg.Tags), arg.PDFURL, arg.PDFKey, arg.Citations,
		arg.Featured, arg.Published, arg.PublishedAt, arg.CreatedAt,
		arg.UpdatedAt)
	if err != nil {
		return model.Paper{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.Paper{}, err
	}
	return q.GetPaperByID(ctx, id)
}

// UpdatePaperParams holds the full row for UpdatePaper.
type UpdatePaperParams struct {
	ID          int64
	Title       string
	Abstract    string
	Authors     []string
	Journal     string
	Year        int64
	Volume      string
	Issue       string
	Pages       string
	DOI         string
	Category    string
	Tags        []string
	PDFURL      string
	PDFKey      string
	Citations   int64
	Featured    bool
	Published   bool
	PublishedAt sql.NullTime
	UpdatedAt   time.Time
}

// UpdatePaper overwrites a paper row and returns the updated record.
func (q *Queries) UpdatePaper(ctx context.Context, arg UpdatePaperParams) (model.Paper, error) {
	_, err := q.db.ExecContext(ctx,
		`UPDATE papers SET title = ?, abstract = ?, authors = ?, journal = ?,
			year = ?, volume = ?, issue = ?, pages = ?, doi = ?, category = ?,
			tags = ?, pdf_url = ?, pdf_key = ?, citations = ?, featured = ?,
			published = ?, published_at = ?, updated_at = ?
		 WHERE id = ?`,
		arg.Title, arg.Abstract, JoinList(arg.Authors), arg.Journal, arg.Year,
		arg.Volume, arg.Issue, arg.Pages, arg.DOI, arg.Category,
		JoinList(arg.Tags), arg.PDFURL, arg.PDFKey, arg.Citations,
		arg.Featured, arg.Published, arg.PublishedAt, arg.UpdatedAt, arg.ID)
	if err != nil {
		return model.Paper{}, err
	}
	return q.GetPaperByID(ctx, arg.ID)
}

// DeletePaper removes a paper row. Deleting a nonexistent id is not an error.
func (q *Queries) DeletePaper(ctx context.Context, id int64) error {
	_, err := q.db.ExecContext(ctx, `DELETE FROM papers WHERE id = ?`, id)
	return err
}
