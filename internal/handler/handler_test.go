// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"context"
	"database/sql"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/alexedwards/scs/v2"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"github.com/olegiv/bharat-abroad/internal/cache"
	"github.com/olegiv/bharat-abroad/internal/dashboard"
	"github.com/olegiv/bharat-abroad/internal/metrics"
	"github.com/olegiv/bharat-abroad/internal/middleware"
	"github.com/olegiv/bharat-abroad/internal/render"
	"github.com/olegiv/bharat-abroad/internal/service"
	"github.com/olegiv/bharat-abroad/internal/store"
	"github.com/olegiv/bharat-abroad/internal/testutil"
)

type fixture struct {
	db       *sql.DB
	sm       *scs.SessionManager
	renderer *render.Renderer
	svc      Services
	dash     *dashboard.Service
	metrics  *metrics.Metrics
	root     store.AdminUser
	uploads  *fakeUploader
}

type fakeUploader struct {
	url string
	err error
	n   int
}

func (u *fakeUploader) Upload(r io.Reader) (string, error) {
	u.n++
	_, _ = io.Copy(io.Discard, r)
	return u.url, u.err
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := testutil.TestDB(t)
	mc := cache.NewMemoryCache(time.Hour, 0)
	t.Cleanup(func() { _ = mc.Close() })

	sm := scs.New()
	svc := Services{
		Content:   service.NewContentService(db, mc, time.Hour),
		Catalog:   service.NewEventCatalog(db, mc, time.Hour),
		Contact:   service.NewContactService(db),
		Analytics: service.NewAnalyticsService(db),
		Accounts:  service.NewAccountService(db),
	}

	return &fixture{
		db:       db,
		sm:       sm,
		renderer: render.New(sm),
		svc:      svc,
		dash:     dashboard.New(db, mc, svc.Accounts, svc.Content, svc.Catalog, dashboard.Options{}),
		metrics:  metrics.New(),
		root:     testutil.CreateAdmin(t, db, "root", "root-pass", store.RoleSuperadmin),
		uploads:  &fakeUploader{url: "/uploads/site-images/abc.jpg"},
	}
}

func (f *fixture) public() *PublicHandler {
	return NewPublicHandler(f.db, f.renderer, f.sm, f.svc, f.metrics, true)
}

func (f *fixture) admin() *AdminHandler {
	return NewAdminHandler(f.dash, f.renderer, f.uploads)
}

// request builds a request whose context already carries a loaded session.
func (f *fixture) request(t *testing.T, method, target string, form url.Values) *http.Request {
	t.Helper()
	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}
	req := httptest.NewRequest(method, target, body)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	ctx, err := f.sm.Load(req.Context(), "")
	require.NoError(t, err)
	return req.WithContext(ctx)
}

// asAdmin puts admin into the request context the way LoadAdmin does.
func asAdmin(req *http.Request, admin store.AdminUser) *http.Request {
	return req.WithContext(middleware.WithAdmin(req.Context(), admin))
}

// withURLParams sets chi route parameters on req.
func withURLParams(req *http.Request, kv ...string) *http.Request {
	rctx := chi.NewRouteContext()
	for i := 0; i+1 < len(kv); i += 2 {
		rctx.URLParams.Add(kv[i], kv[i+1])
	}
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

func (f *fixture) flash(req *http.Request) render.Flash {
	return f.renderer.PopFlash(req)
}

// withForm returns a POST request carrying form and base's context, so
// several requests can share one session.
func withForm(base *http.Request, form url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, base.URL.String(), strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req.WithContext(base.Context())
}

func formatID(id int64) string {
	return strconv.FormatInt(id, 10)
}

func testNow() time.Time {
	return time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)
}
