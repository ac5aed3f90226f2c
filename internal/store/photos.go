// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/folio-site/folio-go/internal/model"
)

const photoColumns = `id, title, description, location, camera, lens, settings,
	category, tags, image_url, image_key, featured, sort_order,
	published_at, created_at, updated_at`

func scanPhoto(row rowScanner) (model.Photo, error) {
	var p model.Photo
	var tags string
	err := row.Scan(&p.ID, &p.Title, &p.Description, &p.Location, &p.Camera,
		&p.Lens, &p.Settings, &p.Category, &tags, &p.ImageURL, &p.ImageKey,
		&p.Featured, &p.SortOrder, &p.PublishedAt, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return model.Photo{}, err
	}
	p.Tags = SplitList(tags)
	return p, nil
}

// ListPhotosParams holds the optional filters for ListPhotos. Nil or zero
// values mean "no filter".
type ListPhotosParams struct {
	Featured *bool
	Category string
	Limit    int64
}

// ListPhotos returns photos ordered by sort_order, then recency. There is no
// draft state for photos: every row is listable.
func (q *Queries) ListPhotos(ctx context.Context, arg ListPhotosParams) ([]model.Photo, error) {
	query := `SELECT ` + photoColumns + ` FROM photos WHERE 1=1`
	var args []any

	if arg.Featured != nil {
		query += ` AND featured = ?`
		args = append(args, *arg.Featured)
	}
	if arg.Category != "" {
		query += ` AND category = ?`
		args = append(args, arg.Category)
	}

	query += ` ORDER BY sort_order DESC, created_at DESC, id DESC`

	if arg.Limit > 0 {
		query += ` LIMIT ?`
		args = append(args, arg.Limit)
	}

	rows, err := q.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	photos := []model.Photo{}
	for rows.Next() {
		p, err := scanPhoto(rows)
		if err != nil {
			return nil, err
		}
		photos = append(photos, p)
	}
	return photos, rows.Err()
}

// GetPhotoByID returns the photo with the given id, or sql.ErrNoRows.
func (q *Queries) GetPhotoByID(ctx context.Context, id int64) (model.Photo, error) {
	row := q.db.QueryRowContext(ctx,
		`SELECT `+photoColumns+` FROM photos WHERE id = ?`, id)
	return scanPhoto(row)
}

// CreatePhotoParams holds the fields for CreatePhoto.
type CreatePhotoParams struct {
	Title       string
	Description string
	Location    string
	Camera      string
	Lens        string
	Settings    string
	Category    string
	Tags        []string
	ImageURL    string
	ImageKey    string
	Featured    bool
	SortOrder   int64
	PublishedAt sql.NullTime
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// CreatePhoto inserts a photo row and returns it with the assigned id.
func (q *Queries) CreatePhoto(ctx context.Context, arg CreatePhotoParams) (model.Photo, error) {
	res, err := q.db.ExecContext(ctx,
		`INSERT INTO photos (title, description, location, camera, lens, settings,
			category, tags, image_url, image_key, featured, sort_order,
			published_at, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		arg.Title, arg.Description, arg.Location, arg.Camera, arg.Lens,
		arg.Settings, arg.Category, JoinList(arg.Tags), arg.ImageURL,
		arg.ImageKey, arg.Featured, arg.SortOrder, arg.PublishedAt,
		arg.CreatedAt, arg.UpdatedAt)
	if err != nil {
		return model.Photo{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.Photo{}, err
	}
	return q.GetPhotoByID(ctx, id)
}

// UpdatePhotoParams holds the full row for UpdatePhoto. Handlers merge the
// caller's partial patch over the existing row before calling this.
type UpdatePhotoParams struct {
	ID          int64
	Title       string
	Description string
	Location    string
	Camera      string
	Lens        string
	Settings    string
	Category    string
	Tags        []string
	ImageURL    string
	ImageKey    string
	Featured    bool
	SortOrder   int64
	PublishedAt sql.NullTime
	UpdatedAt   time.Time
}

// UpdatePhoto overwrites a photo row and returns the updated record.
func (q *Queries) UpdatePhoto(ctx context.Context, arg UpdatePhotoParams) (model.Photo, error) {
	_, err := q.db.ExecContext(ctx,
		`UPDATE photos SET title = ?, description = ?, location = ?, camera = ?,
			lens = ?, settings = ?, category = ?, tags = ?, image_url = ?,
			image_key = ?, featured = ?, sort_order = ?, published_at = ?,
			updated_at = ?
		 WHERE id = ?`,
		arg.Title, arg.Description, arg.Location, arg.Camera, arg.Lens,
		arg.Settings, arg.Category, JoinList(arg.Tags), arg.ImageURL,
		arg.ImageKey, arg.Featured, arg.SortOrder, arg.PublishedAt,
		arg.UpdatedAt, arg.ID)
	if err != nil {
		return model.Photo{}, err
	}
	return q.GetPhotoByID(ctx, arg.ID)
}

// DeletePhoto removes a photo row. Deleting a nonexistent id is not an error.
func (q *Queries) DeletePhoto(ctx context.Context, id int64) error {
	_, err := q.db.ExecContext(ctx, `DELETE FROM photos WHERE id = ?`, id)
	return err
}
