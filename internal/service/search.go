// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"database/sql"
	"strings"

	"github.com/folio-site/folio-go/internal/model"
	"github.com/folio-site/folio-go/internal/store"
)

// searchLimit caps results per entity bucket.
const searchLimit = 20

// SearchService provides substring search across photos, essays and papers.
// Plain LIKE matching is enough at this catalog size; the result buckets are
// small and the queries hit indexed tables.
type SearchService struct {
	db      *sql.DB
	queries *store.Queries
}

// SearchResults groups matches by entity. All three slices are always
// non-nil so the JSON shape stays stable.
type SearchResults struct {
	Photos []model.Photo `json:"photos"`
	Essays []model.Essay `json:"essays"`
	Papers []model.Paper `json:"papers"`
}

// NewSearchService creates a new search service.
func NewSearchService(db *sql.DB) *SearchService {
	return &SearchService{db: db, queries: store.New(db)}
}

// Search runs a case-insensitive substring match. typeFilter restricts the
// search to one entity ("photos", "essays" or "papers"); empty means all.
// Unpublished essays and papers never match; photos have no draft state and
// are always searchable.
func (s *SearchService) Search(ctx context.Context, query, typeFilter string) (SearchResults, error) {
	results := SearchResults{
		Photos: []model.Photo{},
		Essays: []model.Essay{},
		Papers: []model.Paper{},
	}

	query = strings.TrimSpace(query)
	if query == "" {
		return results, nil
	}

	pattern := "%" + escapeLike(query) + "%"

	if typeFilter == "" || typeFilter == "photos" {
		photos, err := s.searchPhotos(ctx, pattern)
		if err != nil {
			return results, err
		}
		results.Photos = photos
	}

	if typeFilter == "" || typeFilter == "essays" {
		essays, err := s.searchEssays(ctx, pattern)
		if err != nil {
			return results, err
		}
		results.Essays = essays
	}

	if typeFilter == "" || typeFilter == "papers" {
		papers, err := s.searchPapers(ctx, pattern)
		if err != nil {
			return results, err
		}
		results.Papers = papers
	}

	return results, nil
}

func (s *SearchService) searchPhotos(ctx context.Context, pattern string) ([]model.Photo, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id FROM photos
		 WHERE title LIKE ? ESCAPE '\'
		    OR description LIKE ? ESCAPE '\'
		    OR location LIKE ? ESCAPE '\'
		    OR tags LIKE ? ESCAPE '\'
		 ORDER BY created_at DESC, id DESC LIMIT ?`,
		pattern, pattern, pattern, pattern, searchLimit)
	if err != nil {
		return nil, err
	}
	ids, err := collectIDs(rows)
	if err != nil {
		return nil, err
	}

	photos := []model.Photo{}
	for _, id := range ids {
		p, err := s.queries.GetPhotoByID(ctx, id)
		if err != nil {
			return nil, err
		}
		photos = append(photos, p)
	}
	return photos, nil
}

func (s *SearchService) searchEssays(ctx context.Context, pattern string) ([]model.Essay, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id FROM essays
		 WHERE published = 1
		   AND (title LIKE ? ESCAPE '\'
		     OR subtitle LIKE ? ESCAPE '\'
		     OR excerpt LIKE ? ESCAPE '\'
		     OR tags LIKE ? ESCAPE '\')
		 ORDER BY published_at DESC, id DESC LIMIT ?`,
		pattern, pattern, pattern, pattern, searchLimit)
	if err != nil {
		return nil, err
	}
	ids, err := collectIDs(rows)
	if err != nil {
		return nil, err
	}

	essays := []model.Essay{}
	for _, id := range ids {
		e, err := s.queries.GetEssayByID(ctx, id)
		if err != nil {
			return nil, err
		}
		essays = append(essays, e)
	}
	return essays, nil
}

func (s *SearchService) searchPapers(ctx context.Context, pattern string) ([]model.Paper, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id FROM papers
		 WHERE published = 1
		   AND (title LIKE ? ESCAPE '\'
		     OR abstract LIKE ? ESCAPE '\'
		     OR authors LIKE ? ESCAPE '\'
		     OR tags LIKE ? ESCAPE '\')
		 ORDER BY year DESC, id DESC LIMIT ?`,
		pattern, pattern, pattern, pattern, searchLimit)
	if err != nil {
		return nil, err
	}
	ids, err := collectIDs(rows)
	if err != nil {
		return nil, err
	}

	papers := []model.Paper{}
	for _, id := range ids {
		p, err := s.queries.GetPaperByID(ctx, id)
		if err != nil {
			return nil, err
		}
		papers = append(papers, p)
	}
	return papers, nil
}

func collectIDs(rows *sql.Rows) ([]int64, error) {
	defer func() { _ = rows.Close() }()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// escapeLike escapes LIKE wildcards so user input matches literally.
func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `%`, `\%`)
	s = strings.ReplaceAll(s, `_`, `\_`)
	return s
}
