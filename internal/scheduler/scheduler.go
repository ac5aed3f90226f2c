// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package scheduler runs background housekeeping on a cron schedule.
package scheduler

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/folio-site/folio-go/internal/store"
)

// DefaultEventRetention is how long audit log entries are kept before the
// nightly prune removes them.
const DefaultEventRetention = 90 * 24 * time.Hour

// Scheduler handles recurring maintenance tasks: pruning the audit log and
// keeping the SQLite query planner statistics fresh.
type Scheduler struct {
	db             *sql.DB
	queries        *store.Queries
	cron           *cron.Cron
	logger         *slog.Logger
	eventRetention time.Duration
}

// New creates a scheduler. A non-positive retention falls back to
// DefaultEventRetention.
func New(db *sql.DB, logger *slog.Logger, eventRetention time.Duration) *Scheduler {
	if eventRetention <= 0 {
		eventRetention = DefaultEventRetention
	}
	return &Scheduler{
		db:             db,
		queries:        store.New(db),
		cron:           cron.New(),
		logger:         logger,
		eventRetention: eventRetention,
	}
}

// Start registers the maintenance jobs and begins the cron loop.
func (s *Scheduler) Start() error {
	// Nightly, during the quiet hours.
	if _, err := s.cron.AddFunc("0 3 * * *", func() {
		if err := s.PruneEvents(context.Background()); err != nil {
			s.logger.Error("pruning events", "error", err)
		}
	}); err != nil {
		return err
	}

	if _, err := s.cron.AddFunc("30 3 * * *", func() {
		if err := s.OptimizeDatabase(context.Background()); err != nil {
			s.logger.Error("optimizing database", "error", err)
		}
	}); err != nil {
		return err
	}

	s.cron.Start()
	s.logger.Info("scheduler started", "jobs", len(s.cron.Entries()))
	return nil
}

// Stop gracefully stops the scheduler, waiting for a running job to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info("scheduler stopped")
}

// PruneEvents deletes audit log entries older than the retention window.
func (s *Scheduler) PruneEvents(ctx context.Context) error {
	cutoff := time.Now().Add(-s.eventRetention)
	deleted, err := s.queries.DeleteEventsBefore(ctx, cutoff)
	if err != nil {
		return err
	}
	if deleted > 0 {
		s.logger.Info("pruned audit log", "deleted", deleted, "cutoff", cutoff)
	}
	return nil
}

// OptimizeDatabase asks SQLite to refresh its planner statistics. Cheap on a
// database this size; the pragma decides for itself what needs work.
func (s *Scheduler) OptimizeDatabase(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `PRAGMA optimize`)
	return err
}
