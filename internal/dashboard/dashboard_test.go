// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package dashboard

import (
	"context"
	"database/sql"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olegiv/bharat-abroad/internal/cache"
	"github.com/olegiv/bharat-abroad/internal/service"
	"github.com/olegiv/bharat-abroad/internal/store"
	"github.com/olegiv/bharat-abroad/internal/testutil"
)

type fixture struct {
	db      *sql.DB
	cache   *cache.MemoryCache
	svc     *Service
	admin   store.AdminUser
	catalog *service.EventCatalog

	mu       sync.Mutex
	failures []string
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := testutil.TestDB(t)
	mc := cache.NewMemoryCache(time.Hour, 0)
	t.Cleanup(func() { _ = mc.Close() })

	f := &fixture{db: db, cache: mc}
	f.admin = testutil.CreateAdmin(t, db, "root", "root-pass", store.RoleSuperadmin)
	f.catalog = service.NewEventCatalog(db, mc, time.Hour)
	f.svc = New(db, mc,
		service.NewAccountService(db),
		service.NewContentService(db, mc, time.Hour),
		f.catalog,
		Options{OnFetchFailure: func(c string) {
			f.mu.Lock()
			f.failures = append(f.failures, c)
			f.mu.Unlock()
		}},
	)
	return f
}

func TestRefresh_LoadsAllCollections(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	testutil.CreateEvent(t, f.db, "Old", "Music", "Austin, TX", store.EventStatusPending, base)
	testutil.CreateEvent(t, f.db, "New", "Arts", "Dallas, TX", store.EventStatusApproved, base.Add(time.Hour))
	testutil.CreateSubmission(t, f.db, "Asha", "asha@example.com", "Wedding", store.SubmissionStatusNew)
	_, err := store.New(f.db).UpsertSiteContent(ctx, store.UpsertSiteContentParams{Key: "hero_title", Value: "Hi", UpdatedAt: base})
	require.NoError(t, err)

	snap := f.svc.Refresh(ctx, f.admin)

	assert.Empty(t, snap.Failed)
	require.Len(t, snap.Events, 2)
	assert.Equal(t, "New", snap.Events[0].Title, "newest first")
	assert.Len(t, snap.Submissions, 1)
	assert.Equal(t, map[string]string{"hero_title": "Hi"}, snap.Content)
	assert.Equal(t, snap.Content, snap.Drafts, "drafts start from saved content")
	require.Len(t, snap.Users, 1)
	assert.Empty(t, snap.Users[0].PasswordHash)
}

func TestRefresh_PartialFailureKeepsPrevious(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.SavePortfolio(ctx, f.admin, PortfolioInput{Title: "Sangeet"})
	require.NoError(t, err)
	before := f.svc.Refresh(ctx, f.admin)
	require.Len(t, before.Portfolio, 1)

	_, err = f.db.Exec(`DROP TABLE portfolio`)
	require.NoError(t, err)
	testutil.CreateSubmission(t, f.db, "Ravi", "ravi@example.com", "", store.SubmissionStatusNew)

	snap := f.svc.Refresh(ctx, f.admin)

	assert.Equal(t, []string{CollectionPortfolio}, snap.Failed)
	assert.Len(t, snap.Portfolio, 1, "failed collection keeps its previous value")
	assert.Len(t, snap.Submissions, 1, "other collections still refresh")
	assert.Equal(t, []string{CollectionPortfolio}, f.failures)
}

func TestSetEventStatus(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	e := testutil.CreateEvent(t, f.db, "Holi", "Festival", "Chicago, IL", store.EventStatusPending, time.Now().UTC())

	f.svc.Refresh(ctx, f.admin)
	approved, err := f.catalog.ListApproved(ctx)
	require.NoError(t, err)
	require.Empty(t, approved)

	updated, err := f.svc.SetEventStatus(ctx, f.admin, e.ID, store.EventStatusApproved)
	require.NoError(t, err)
	assert.Equal(t, store.EventStatusApproved, updated.Status)
	assert.Equal(t, e.Title, updated.Title, "other fields untouched")

	snap := f.svc.Load(ctx, f.admin)
	assert.Equal(t, store.EventStatusApproved, snap.Events[0].Status)

	approved, err = f.catalog.ListApproved(ctx)
	require.NoError(t, err)
	assert.Len(t, approved, 1, "public cache invalidated")

	_, err = f.svc.SetEventStatus(ctx, f.admin, e.ID, store.EventStatusPending)
	require.NoError(t, err, "any state reaches any other")
}

func TestSetStatus_FailureLeavesSnapshot(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	sub := testutil.CreateSubmission(t, f.db, "Asha", "asha@example.com", "", store.SubmissionStatusNew)
	f.svc.Refresh(ctx, f.admin)

	_, err := f.svc.SetSubmissionStatus(ctx, f.admin, sub.ID, "archived")
	assert.ErrorIs(t, err, ErrInvalidStatus)

	_, err = f.db.Exec(`DELETE FROM contact_submissions WHERE id = ?`, sub.ID)
	require.NoError(t, err)

	_, err = f.svc.SetSubmissionStatus(ctx, f.admin, sub.ID, store.SubmissionStatusClosed)
	assert.ErrorIs(t, err, ErrNotFound)

	snap := f.svc.Load(ctx, f.admin)
	require.Len(t, snap.Submissions, 1)
	assert.Equal(t, store.SubmissionStatusNew, snap.Submissions[0].Status, "local state unchanged")
}

func TestDeletes(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	e := testutil.CreateEvent(t, f.db, "Holi", "Festival", "Chicago, IL", store.EventStatusApproved, time.Now().UTC())
	sub := testutil.CreateSubmission(t, f.db, "Asha", "asha@example.com", "", store.SubmissionStatusNew)
	f.svc.Refresh(ctx, f.admin)

	require.NoError(t, f.svc.DeleteEvent(ctx, f.admin, e.ID))
	require.NoError(t, f.svc.DeleteSubmission(ctx, f.admin, sub.ID))
	assert.ErrorIs(t, f.svc.DeleteEvent(ctx, f.admin, e.ID), ErrNotFound)
	assert.ErrorIs(t, f.svc.DeletePortfolio(ctx, f.admin, 42), ErrNotFound)

	snap := f.svc.Load(ctx, f.admin)
	assert.Empty(t, snap.Events)
	assert.Empty(t, snap.Submissions)

	_, err := f.svc.Submission(ctx, f.admin, sub.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSavePortfolio(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.SavePortfolio(ctx, f.admin, PortfolioInput{Title: "  "})
	assert.ErrorIs(t, err, ErrTitleRequired)

	first, err := f.svc.SavePortfolio(ctx, f.admin, PortfolioInput{Title: "Mehendi"})
	require.NoError(t, err)
	second, err := f.svc.SavePortfolio(ctx, f.admin, PortfolioInput{Title: "Sangeet", Guests: "200"})
	require.NoError(t, err)

	snap := f.svc.Load(ctx, f.admin)
	require.Len(t, snap.Portfolio, 2)
	assert.Equal(t, second.ID, snap.Portfolio[0].ID, "new items are prepended")

	_, err = f.svc.SavePortfolio(ctx, f.admin, PortfolioInput{ID: first.ID, Title: "Mehendi Brunch", Location: "Austin, TX"})
	require.NoError(t, err)

	item, err := f.svc.Portfolio(ctx, f.admin, first.ID)
	require.NoError(t, err)
	assert.Equal(t, "Mehendi Brunch", item.Title)
	assert.Equal(t, "Austin, TX", item.Location)
	assert.Equal(t, first.ID, f.svc.Load(ctx, f.admin).Portfolio[1].ID, "updated in place")
}

func TestContentDraftsAndSave(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.svc.Refresh(ctx, f.admin)

	assert.ErrorIs(t, f.svc.SetDraft(ctx, f.admin, "not_a_key", "x"), ErrUnknownKey)
	assert.ErrorIs(t, f.svc.SaveContent(ctx, f.admin, "hero_title"), ErrNothingToSave)

	require.NoError(t, f.svc.SetDraft(ctx, f.admin, "hero_title", "Namaste"))
	require.NoError(t, f.svc.SaveContent(ctx, f.admin, "hero_title"))

	rows, err := store.New(f.db).ListSiteContent(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Namaste", rows[0].Value)

	require.NoError(t, f.svc.SaveImageContent(ctx, f.admin, "hero_image", "/uploads/site-images/a.jpg"))
	assert.ErrorIs(t, f.svc.SaveImageContent(ctx, f.admin, "hero_title", "/x.jpg"), ErrNotImageKey)
	assert.Equal(t, "/uploads/site-images/a.jpg", f.svc.Load(ctx, f.admin).Content["hero_image"])
}

func TestSaveAllContent_SortedStopsAtFirstFailure(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := store.New(f.db).UpsertSiteContent(ctx, store.UpsertSiteContentParams{Key: "about_title", Value: "Same", UpdatedAt: time.Now().UTC()})
	require.NoError(t, err)
	f.svc.Refresh(ctx, f.admin)

	_, err = f.db.Exec(`CREATE TRIGGER fail_contact_email BEFORE INSERT ON site_content
		WHEN NEW.key = 'contact_email' BEGIN SELECT RAISE(ABORT, 'boom'); END`)
	require.NoError(t, err)

	for k, v := range map[string]string{
		"hero_title":    "Hero",
		"about_text":    "About",
		"contact_email": "x@example.com",
		"about_title":   "Same",
	} {
		require.NoError(t, f.svc.SetDraft(ctx, f.admin, k, v))
	}

	saved, err := f.svc.SaveAllContent(ctx, f.admin)
	require.Error(t, err)
	assert.Equal(t, []string{"about_text"}, saved, "unchanged about_title skipped, hero_title never reached")

	snap := f.svc.Load(ctx, f.admin)
	assert.Equal(t, "About", snap.Content["about_text"])
	_, ok := snap.Content["hero_title"]
	assert.False(t, ok)

	_, err = f.db.Exec(`DROP TRIGGER fail_contact_email`)
	require.NoError(t, err)

	saved, err = f.svc.SaveAllContent(ctx, f.admin)
	require.NoError(t, err)
	assert.Equal(t, []string{"contact_email", "hero_title"}, saved)
}

func TestUserManagement(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.svc.Refresh(ctx, f.admin)

	u, err := f.svc.AddUser(ctx, f.admin, service.NewUser{Username: "neha", Password: "secret1"})
	require.NoError(t, err)
	assert.Len(t, f.svc.Load(ctx, f.admin).Users, 2)

	_, err = f.svc.AddUser(ctx, f.admin, service.NewUser{Username: "neha", Password: "secret1"})
	assert.ErrorIs(t, err, service.ErrDuplicateUsername)
	assert.Len(t, f.svc.Load(ctx, f.admin).Users, 2)

	assert.ErrorIs(t, f.svc.DeleteUser(ctx, f.admin, f.admin.ID), service.ErrSelfDelete)
	require.NoError(t, f.svc.ResetPassword(ctx, f.admin, u.ID, "another1"))
	require.NoError(t, f.svc.DeleteUser(ctx, f.admin, u.ID))
	assert.Len(t, f.svc.Load(ctx, f.admin).Users, 1)
}

func TestSnapshotsArePerAdmin(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	other := testutil.CreateAdmin(t, f.db, "other", "other-pass", store.RoleAdmin)

	f.svc.Refresh(ctx, f.admin)
	require.NoError(t, f.svc.SetDraft(ctx, f.admin, "hero_title", "Mine"))

	assert.Empty(t, f.svc.Load(ctx, other).Drafts)

	f.svc.Forget(ctx, f.admin)
	assert.Empty(t, f.svc.Load(ctx, f.admin).Drafts, "forgotten snapshot is refetched")
}

func TestPurgeSnapshots(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	key := snapshotKey(f.admin)

	f.svc.Refresh(ctx, f.admin)
	_, err := f.cache.Get(ctx, key)
	require.NoError(t, err)

	require.NoError(t, f.svc.PurgeSnapshots(ctx))
	_, err = f.cache.Get(ctx, key)
	assert.ErrorIs(t, err, cache.ErrCacheMiss)
}
