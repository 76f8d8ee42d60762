// Copyright (c) 2025-2026 InstaTrainMe
// SPDX-License-Identifier: GPL-3.0-or-later

package scheduler

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/robfig/cron/v3"

	"github.com/instatrainme/site-api/internal/store"
)

// Scheduler runs periodic maintenance tasks, currently the nightly blog
// slug backfill for posts created before slugs existed.
type Scheduler struct {
	db     *sql.DB
	cron   *cron.Cron
	logger *slog.Logger
}

// New creates a new scheduler instance.
func New(db *sql.DB, logger *slog.Logger) *Scheduler {
	return &Scheduler{
		db:     db,
		cron:   cron.New(),
		logger: logger,
	}
}

// Start begins the scheduler with a daily slug backfill job.
func (s *Scheduler) Start() error {
	_, err := s.cron.AddFunc("@daily", func() {
		if err := s.backfillSlugs(); err != nil {
			s.logger.Error("failed to backfill blog slugs", "error", err)
		}
	})
	if err != nil {
		return err
	}

	s.cron.Start()
	s.logger.Info("scheduler started", "jobs", len(s.cron.Entries()))
	return nil
}

// Stop gracefully stops the scheduler.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info("scheduler stopped")
}

// backfillSlugs generates slugs for posts that still lack one. The backfill
// is idempotent: posts that already have a slug are never touched.
func (s *Scheduler) backfillSlugs() error {
	ctx := context.Background()
	queries := store.New(s.db)

	updated, err := queries.BackfillBlogSlugs(ctx)
	if err != nil {
		return err
	}

	if updated > 0 {
		s.logger.Info("backfilled blog slugs", "count", updated)
	}
	return nil
}
