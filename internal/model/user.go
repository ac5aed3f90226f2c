// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package model defines domain models and types used throughout the
// application including User, the content item variants, and settings.
package model

import (
	"database/sql"
	"strings"
	"time"
)

// User roles.
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// User represents a login identity. In practice there is a single
// administrative user, but the table holds any identity that ever logged in.
type User struct {
	ID         int64        `json:"id"`
	ExternalID string       `json:"external_id"`
	Name       string       `json:"name"`
	Email      string       `json:"email"`
	Provider   string       `json:"provider"`
	Role       string       `json:"role"`
	CreatedAt  time.Time    `json:"created_at"`
	UpdatedAt  time.Time    `json:"updated_at"`
	LastSeenAt sql.NullTime `json:"last_seen_at,omitempty"`
}

// IsAdmin returns true if the user has admin role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// RoleForEmail resolves a user's role from the configured administrator
// email. The comparison is case-insensitive and re-evaluated on every login,
// so changing the configured email demotes the old admin at their next
// login rather than retroactively.
func RoleForEmail(email, adminEmail string) string {
	if adminEmail != "" && strings.EqualFold(email, adminEmail) {
		return RoleAdmin
	}
	return RoleUser
}
