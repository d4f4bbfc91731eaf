// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package dashboard keeps each admin's working copy of the back-office data
// and applies moderation and content edits to it once the database accepts
// them.
package dashboard

import (
	"context"
	"database/sql"
	"log/slog"
	"strconv"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/olegiv/bharat-abroad/internal/cache"
	"github.com/olegiv/bharat-abroad/internal/service"
	"github.com/olegiv/bharat-abroad/internal/store"
)

// Collection names, as reported in Snapshot.Failed.
const (
	CollectionSubmissions = "submissions"
	CollectionEvents      = "events"
	CollectionPortfolio   = "portfolio"
	CollectionContent     = "content"
	CollectionAnalytics   = "analytics"
	CollectionUsers       = "users"
)

// Snapshot is one admin's view of the six collections plus unsaved content drafts.
type Snapshot struct {
	Submissions []store.ContactSubmission `json:"submissions"`
	Events      []store.Event             `json:"events"`
	Portfolio   []store.PortfolioItem     `json:"portfolio"`
	Content     map[string]string         `json:"content"`
	Analytics   []store.AnalyticsEvent    `json:"analytics"`
	Users       []store.AdminUser         `json:"users"`
	Drafts      map[string]string         `json:"drafts"`
	Failed      []string                  `json:"failed,omitempty"`
	FetchedAt   time.Time                 `json:"fetched_at"`
}

// Options tune the dashboard.
type Options struct {
	AnalyticsLimit int64
	FetchTimeout   time.Duration
	SnapshotTTL    time.Duration
	// OnFetchFailure is called once per collection that failed to load.
	OnFetchFailure func(collection string)
}

// Service applies dashboard operations for an authenticated admin.
type Service struct {
	queries   *store.Queries
	backend   cache.Cache
	snapshots *cache.JSONCache[Snapshot]
	accounts  *service.AccountService
	content   *service.ContentService
	catalog   *service.EventCatalog
	opts      Options
}

// New creates a dashboard service.
func New(db *sql.DB, c cache.Cache, accounts *service.AccountService, content *service.ContentService,
	catalog *service.EventCatalog, opts Options) *Service {
	if opts.AnalyticsLimit <= 0 {
		opts.AnalyticsLimit = 500
	}
	if opts.FetchTimeout <= 0 {
		opts.FetchTimeout = 10 * time.Second
	}
	if opts.SnapshotTTL <= 0 {
		opts.SnapshotTTL = 12 * time.Hour
	}

	return &Service{
		queries:   store.New(db),
		backend:   c,
		snapshots: cache.NewJSONCache[Snapshot](c, opts.SnapshotTTL),
		accounts:  accounts,
		content:   content,
		catalog:   catalog,
		opts:      opts,
	}
}

const snapshotPrefix = "dashboard:"

func snapshotKey(admin store.AdminUser) string {
	return snapshotPrefix + strconv.FormatInt(admin.ID, 10)
}

// PurgeSnapshots drops every cached admin snapshot.
func (s *Service) PurgeSnapshots(ctx context.Context) error {
	return s.backend.DeleteByPrefix(ctx, snapshotPrefix)
}

// Load returns the admin's snapshot, fetching it on first use.
func (s *Service) Load(ctx context.Context, admin store.AdminUser) *Snapshot {
	if snap, ok := s.snapshots.Get(ctx, snapshotKey(admin)); ok {
		snap.normalize()
		return snap
	}
	return s.Refresh(ctx, admin)
}

// Refresh fetches all six collections concurrently. A collection whose query
// fails keeps its previous value and is listed in Failed.
func (s *Service) Refresh(ctx context.Context, admin store.AdminUser) *Snapshot {
	snap, ok := s.snapshots.Get(ctx, snapshotKey(admin))
	if !ok {
		snap = &Snapshot{}
	}
	snap.normalize()
	snap.Failed = nil

	ctx, cancel := context.WithTimeout(ctx, s.opts.FetchTimeout)
	defer cancel()

	var (
		mu     sync.Mutex
		failed []string
	)
	fetch := func(g *errgroup.Group, name string, fn func() error) {
		g.Go(func() error {
			if err := fn(); err != nil {
				slog.Error("dashboard fetch failed", "collection", name, "admin_id", admin.ID, "error", err)
				mu.Lock()
				failed = append(failed, name)
				mu.Unlock()
				if s.opts.OnFetchFailure != nil {
					s.opts.OnFetchFailure(name)
				}
			}
			// Failures never cancel the sibling fetches.
			return nil
		})
	}

	var (
		subs      []store.ContactSubmission
		events    []store.Event
		portfolio []store.PortfolioItem
		content   []store.SiteContent
		analytics []store.AnalyticsEvent
		users     []store.AdminUser
	)

	var g errgroup.Group
	fetch(&g, CollectionSubmissions, func() (err error) {
		subs, err = s.queries.ListContactSubmissions(ctx)
		return err
	})
	fetch(&g, CollectionEvents, func() (err error) {
		events, err = s.queries.ListEvents(ctx)
		return err
	})
	fetch(&g, CollectionAnalytics, func() (err error) {
		analytics, err = s.queries.ListRecentAnalytics(ctx, s.opts.AnalyticsLimit)
		return err
	})
	fetch(&g, CollectionPortfolio, func() (err error) {
		portfolio, err = s.queries.ListPortfolioItems(ctx)
		return err
	})
	fetch(&g, CollectionContent, func() (err error) {
		content, err = s.queries.ListSiteContent(ctx)
		return err
	})
	fetch(&g, CollectionUsers, func() (err error) {
		users, err = s.queries.ListAdminUsers(ctx)
		return err
	})
	_ = g.Wait()

	isFailed := func(name string) bool {
		for _, f := range failed {
			if f == name {
				return true
			}
		}
		return false
	}

	if !isFailed(CollectionSubmissions) {
		snap.Submissions = subs
	}
	if !isFailed(CollectionEvents) {
		snap.Events = events
	}
	if !isFailed(CollectionAnalytics) {
		snap.Analytics = analytics
	}
	if !isFailed(CollectionPortfolio) {
		snap.Portfolio = portfolio
	}
	if !isFailed(CollectionContent) {
		m := make(map[string]string, len(content))
		for _, row := range content {
			m[row.Key] = row.Value
		}
		snap.Content = m
		snap.Drafts = make(map[string]string, len(m))
		for k, v := range m {
			snap.Drafts[k] = v
		}
	}
	if !isFailed(CollectionUsers) {
		for i := range users {
			users[i].PasswordHash = ""
		}
		snap.Users = users
	}

	// Keep a stable order for display.
	for _, name := range []string{
		CollectionSubmissions, CollectionEvents, CollectionPortfolio,
		CollectionContent, CollectionAnalytics, CollectionUsers,
	} {
		if isFailed(name) {
			snap.Failed = append(snap.Failed, name)
		}
	}
	snap.FetchedAt = time.Now().UTC()

	s.save(context.WithoutCancel(ctx), admin, snap)
	return snap
}

// Forget drops the admin's snapshot, used on logout.
func (s *Service) Forget(ctx context.Context, admin store.AdminUser) {
	if err := s.snapshots.Delete(ctx, snapshotKey(admin)); err != nil {
		slog.Warn("failed to drop dashboard snapshot", "admin_id", admin.ID, "error", err)
	}
}

func (s *Service) save(ctx context.Context, admin store.AdminUser, snap *Snapshot) {
	if err := s.snapshots.Set(ctx, snapshotKey(admin), snap); err != nil {
		slog.Warn("failed to store dashboard snapshot", "admin_id", admin.ID, "error", err)
	}
}

// update loads the snapshot, lets fn change it and stores the result.
// fn only touches the snapshot after its remote write succeeded.
func (s *Service) update(ctx context.Context, admin store.AdminUser, fn func(*Snapshot) error) (*Snapshot, error) {
	snap := s.Load(ctx, admin)
	err := fn(snap)
	s.save(ctx, admin, snap)
	return snap, err
}

func (snap *Snapshot) normalize() {
	if snap.Content == nil {
		snap.Content = map[string]string{}
	}
	if snap.Drafts == nil {
		snap.Drafts = map[string]string{}
	}
}
