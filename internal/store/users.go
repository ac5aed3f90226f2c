// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/folio-site/folio-go/internal/model"
)

const userColumns = `id, external_id, name, email, provider, role, created_at, updated_at, last_seen_at`

func scanUser(row *sql.Row) (model.User, error) {
	var u model.User
	err := row.Scan(&u.ID, &u.ExternalID, &u.Name, &u.Email, &u.Provider,
		&u.Role, &u.CreatedAt, &u.UpdatedAt, &u.LastSeenAt)
	return u, err
}

// GetUserByID returns the user with the given id, or sql.ErrNoRows.
func (q *Queries) GetUserByID(ctx context.Context, id int64) (model.User, error) {
	row := q.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = ?`, id)
	return scanUser(row)
}

// GetUserByEmail returns the user with the given email, or sql.ErrNoRows.
// Email lookups are case-insensitive.
func (q *Queries) GetUserByEmail(ctx context.Context, email string) (model.User, error) {
	row := q.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = ? COLLATE NOCASE`, email)
	return scanUser(row)
}

// CreateUserParams holds the fields for CreateUser.
type CreateUserParams struct {
	ExternalID string
	Name       string
	Email      string
	Provider   string
	Role       string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// CreateUser inserts a user row and returns it with the assigned id.
func (q *Queries) CreateUser(ctx context.Context, arg CreateUserParams) (model.User, error) {
	res, err := q.db.ExecContext(ctx,
		`INSERT INTO users (external_id, name, email, provider, role, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		arg.ExternalID, arg.Name, arg.Email, arg.Provider, arg.Role,
		arg.CreatedAt, arg.UpdatedAt)
	if err != nil {
		return model.User{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.User{}, err
	}
	return q.GetUserByID(ctx, id)
}

// UpdateUserLoginParams holds the fields refreshed on every login.
type UpdateUserLoginParams struct {
	ID         int64
	Name       string
	Role       string
	UpdatedAt  time.Time
	LastSeenAt sql.NullTime
}

// UpdateUserLogin refreshes a user row after a successful login. The role is
// re-synced here because it is derived from the configured admin email, not
// persisted policy.
func (q *Queries) UpdateUserLogin(ctx context.Context, arg UpdateUserLoginParams) (model.User, error) {
	_, err := q.db.ExecContext(ctx,
		`UPDATE users SET name = ?, role = ?, updated_at = ?, last_seen_at = ? WHERE id = ?`,
		arg.Name, arg.Role, arg.UpdatedAt, arg.LastSeenAt, arg.ID)
	if err != nil {
		return model.User{}, err
	}
	return q.GetUserByID(ctx, arg.ID)
}

// UpdateUserLastSeen stamps the user's last sign-in time. Called on every
// authenticated request; a cheap single-column write.
func (q *Queries) UpdateUserLastSeen(ctx context.Context, id int64, seenAt time.Time) error {
	_, err := q.db.ExecContext(ctx,
		`UPDATE users SET last_seen_at = ? WHERE id = ?`, seenAt, id)
	return err
}
