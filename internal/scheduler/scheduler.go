// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package scheduler runs the site's periodic maintenance jobs.
package scheduler

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
)

// Cron schedules for the built-in jobs.
const (
	PruneSchedule  = "0 3 * * *"    // daily at 03:00
	ReloadSchedule = "0 4 * * 0"    // Sundays at 04:00
	SweepSchedule  = "*/10 * * * *" // every 10 minutes
)

// jobTimeout bounds a single job run.
const jobTimeout = 5 * time.Minute

// AnalyticsPruner deletes analytics rows older than a retention window.
type AnalyticsPruner interface {
	Prune(ctx context.Context, olderThan time.Duration) (int64, error)
}

// Reloader refreshes a data file from disk.
type Reloader interface {
	Reload() error
}

// Sweeper drops expired in-memory state.
type Sweeper interface {
	Cleanup()
}

// Jobs wires the scheduler to its collaborators. Nil fields disable the
// corresponding job.
type Jobs struct {
	Analytics AnalyticsPruner
	Retention time.Duration
	GeoIP     Reloader
	Logins    Sweeper
}

// Scheduler handles periodic jobs like analytics retention.
type Scheduler struct {
	cron   *cron.Cron
	jobs   Jobs
	logger *slog.Logger
}

// New creates a new scheduler instance.
func New(jobs Jobs, logger *slog.Logger) *Scheduler {
	return &Scheduler{
		cron:   cron.New(),
		jobs:   jobs,
		logger: logger,
	}
}

// Start registers the configured jobs and starts the cron loop.
func (s *Scheduler) Start() error {
	if s.jobs.Analytics != nil && s.jobs.Retention > 0 {
		if _, err := s.cron.AddFunc(PruneSchedule, s.pruneAnalytics); err != nil {
			return err
		}
	}
	if s.jobs.GeoIP != nil {
		if _, err := s.cron.AddFunc(ReloadSchedule, s.reloadGeoIP); err != nil {
			return err
		}
	}

	if s.jobs.Logins != nil {
		if _, err := s.cron.AddFunc(SweepSchedule, s.jobs.Logins.Cleanup); err != nil {
			return err
		}
	}

	s.cron.Start()
	s.logger.Info("scheduler started", "jobs", len(s.cron.Entries()))
	return nil
}

// Stop gracefully stops the scheduler, waiting for running jobs.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info("scheduler stopped")
}

// Entries returns the number of registered jobs.
func (s *Scheduler) Entries() int {
	return len(s.cron.Entries())
}

func (s *Scheduler) pruneAnalytics() {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	n, err := s.jobs.Analytics.Prune(ctx, s.jobs.Retention)
	if err != nil {
		s.logger.Error("failed to prune analytics", "error", err)
		return
	}
	if n > 0 {
		s.logger.Info("pruned analytics", "rows", n, "retention", s.jobs.Retention)
	}
}

func (s *Scheduler) reloadGeoIP() {
	if err := s.jobs.GeoIP.Reload(); err != nil {
		s.logger.Warn("failed to reload GeoIP database", "error", err)
		return
	}
	s.logger.Debug("GeoIP database checked")
}
