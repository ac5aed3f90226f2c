// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package storage bridges uploads to S3-compatible object storage.
package storage

import (
	"context"
	"errors"
)

// ErrNotConfigured is returned by the disabled store when no object storage
// credentials are present. Uploads fail loudly instead of writing nowhere.
var ErrNotConfigured = errors.New("storage: object storage not configured")

// PutResult describes a stored object.
type PutResult struct {
	Key string
	URL string
}

// Store writes binary objects to their public home.
type Store interface {
	Put(ctx context.Context, key string, data []byte, contentType string) (PutResult, error)
}

// Disabled is a Store that rejects every write. Used when the deployment has
// no object storage configured.
type Disabled struct{}

// Put always returns ErrNotConfigured.
func (Disabled) Put(context.Context, string, []byte, string) (PutResult, error) {
	return PutResult{}, ErrNotConfigured
}
