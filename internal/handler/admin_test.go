// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olegiv/bharat-abroad/internal/middleware"
	"github.com/olegiv/bharat-abroad/internal/render"
	"github.com/olegiv/bharat-abroad/internal/store"
	"github.com/olegiv/bharat-abroad/internal/testutil"
)

func TestDashboard_Renders(t *testing.T) {
	f := newFixture(t)
	testutil.CreateSubmission(t, f.db, "Asha", "asha@example.com", "Wedding", store.SubmissionStatusNew)

	rr := httptest.NewRecorder()
	f.admin().Dashboard(rr, asAdmin(f.request(t, http.MethodGet, "/admin", nil), f.root))

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "Total Page Views")
	assert.Contains(t, rr.Body.String(), "Asha")
}

func TestSubmissionStatus_UpdatesRow(t *testing.T) {
	f := newFixture(t)
	sub := testutil.CreateSubmission(t, f.db, "Asha", "asha@example.com", "Wedding", store.SubmissionStatusNew)

	req := f.request(t, http.MethodPost, "/", nil)
	req = withForm(req, url.Values{"status": {store.SubmissionStatusClosed}})
	req = withURLParams(asAdmin(req, f.root), "id", formatID(sub.ID))
	rr := httptest.NewRecorder()
	f.admin().SubmissionStatus(rr, req)

	assert.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, "/admin/submissions?selected="+formatID(sub.ID), rr.Header().Get("Location"))
	assert.Equal(t, render.FlashSuccess, f.flash(req).Type)

	got, err := store.New(f.db).GetContactSubmission(context.Background(), sub.ID)
	require.NoError(t, err)
	assert.Equal(t, store.SubmissionStatusClosed, got.Status)
}

func TestSubmissionStatus_InvalidLeavesRow(t *testing.T) {
	f := newFixture(t)
	sub := testutil.CreateSubmission(t, f.db, "Asha", "asha@example.com", "Wedding", store.SubmissionStatusNew)

	req := withForm(f.request(t, http.MethodPost, "/", nil), url.Values{"status": {"archived"}})
	req = withURLParams(asAdmin(req, f.root), "id", formatID(sub.ID))
	rr := httptest.NewRecorder()
	f.admin().SubmissionStatus(rr, req)

	flash := f.flash(req)
	assert.Equal(t, render.FlashError, flash.Type)
	assert.Equal(t, "Invalid status", flash.Message)

	got, err := store.New(f.db).GetContactSubmission(context.Background(), sub.ID)
	require.NoError(t, err)
	assert.Equal(t, store.SubmissionStatusNew, got.Status)
}

func TestSubmissionReply_MarksContactedThenOpensMail(t *testing.T) {
	f := newFixture(t)
	sub := testutil.CreateSubmission(t, f.db, "Asha", "asha@example.com", "Wedding", store.SubmissionStatusNew)

	req := withForm(f.request(t, http.MethodPost, "/", nil), url.Values{"reply": {"We are available."}})
	req = withURLParams(asAdmin(req, f.root), "id", formatID(sub.ID))
	rr := httptest.NewRecorder()
	f.admin().SubmissionReply(rr, req)

	require.Equal(t, http.StatusSeeOther, rr.Code)
	loc := rr.Header().Get("Location")
	assert.True(t, strings.HasPrefix(loc, "mailto:asha@example.com?subject="), loc)
	assert.Contains(t, loc, "Dear%20Asha")

	got, err := store.New(f.db).GetContactSubmission(context.Background(), sub.ID)
	require.NoError(t, err)
	assert.Equal(t, store.SubmissionStatusContacted, got.Status)
}

func TestSubmissionReply_EmptyReply(t *testing.T) {
	f := newFixture(t)
	sub := testutil.CreateSubmission(t, f.db, "Asha", "asha@example.com", "Wedding", store.SubmissionStatusNew)

	req := withForm(f.request(t, http.MethodPost, "/", nil), url.Values{"reply": {"  "}})
	req = withURLParams(asAdmin(req, f.root), "id", formatID(sub.ID))
	rr := httptest.NewRecorder()
	f.admin().SubmissionReply(rr, req)

	assert.Equal(t, "Reply cannot be empty", f.flash(req).Message)
	got, err := store.New(f.db).GetContactSubmission(context.Background(), sub.ID)
	require.NoError(t, err)
	assert.Equal(t, store.SubmissionStatusNew, got.Status)
}

func TestSubmissionsExport_QuotesEveryField(t *testing.T) {
	f := newFixture(t)
	testutil.CreateSubmission(t, f.db, `Ravi "RK" Kumar`, "ravi@example.com", "Corporate", store.SubmissionStatusNew)

	rr := httptest.NewRecorder()
	f.admin().SubmissionsExport(rr, asAdmin(f.request(t, http.MethodGet, "/admin/submissions/export", nil), f.root))

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "text/csv; charset=utf-8", rr.Header().Get("Content-Type"))
	assert.Contains(t, rr.Header().Get("Content-Disposition"), "submissions.csv")
	body := rr.Body.String()
	assert.True(t, strings.HasPrefix(body, `"Name","Email","Phone","Event Type","Message","Status","Date"`))
	assert.Contains(t, body, `"Ravi ""RK"" Kumar","ravi@example.com"`)
}

func TestEventDelete(t *testing.T) {
	f := newFixture(t)
	e := testutil.CreateEvent(t, f.db, "Holi", "Festival", "Austin, TX", store.EventStatusPending, testNow())

	req := withURLParams(asAdmin(f.request(t, http.MethodPost, "/", nil), f.root), "id", formatID(e.ID))
	rr := httptest.NewRecorder()
	f.admin().EventDelete(rr, req)

	assert.Equal(t, http.StatusSeeOther, rr.Code)
	_, err := store.New(f.db).GetEvent(context.Background(), e.ID)
	assert.Error(t, err)
}

func TestEventStatus_MissingEvent(t *testing.T) {
	f := newFixture(t)

	req := withForm(f.request(t, http.MethodPost, "/", nil), url.Values{"status": {store.EventStatusApproved}})
	req = withURLParams(asAdmin(req, f.root), "id", "999")
	rr := httptest.NewRecorder()
	f.admin().EventStatus(rr, req)

	assert.Equal(t, render.FlashError, f.flash(req).Type)
}

func TestContentSaveAll(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	require.NoError(t, f.dash.SetDraft(ctx, f.root, "hero_title", "Namaste America"))
	require.NoError(t, f.dash.SetDraft(ctx, f.root, "about_title", "Who We Are"))

	req := asAdmin(f.request(t, http.MethodPost, "/admin/content/save-all", nil), f.root)
	rr := httptest.NewRecorder()
	f.admin().ContentSaveAll(rr, req)

	assert.Equal(t, "Saved 2 item(s)", f.flash(req).Message)
	stored, err := f.svc.Content.Stored(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Namaste America", stored["hero_title"])
	assert.Equal(t, "Who We Are", stored["about_title"])

	rr = httptest.NewRecorder()
	f.admin().ContentSaveAll(rr, req)
	assert.Equal(t, "No changes to save", f.flash(req).Message)
}

func TestContentSave_PostedValue(t *testing.T) {
	f := newFixture(t)

	req := withForm(f.request(t, http.MethodPost, "/", nil), url.Values{"value": {"Hello Houston"}})
	req = withURLParams(asAdmin(req, f.root), "key", "hero_subtitle")
	rr := httptest.NewRecorder()
	f.admin().ContentSave(rr, req)

	assert.Equal(t, render.FlashSuccess, f.flash(req).Type)
	stored, err := f.svc.Content.Stored(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Hello Houston", stored["hero_subtitle"])
}

func TestContentImage_UploadsAndSaves(t *testing.T) {
	f := newFixture(t)

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("image_file", "hero.jpg")
	require.NoError(t, err)
	_, _ = part.Write([]byte("not really a jpeg"))
	require.NoError(t, mw.Close())

	base := f.request(t, http.MethodPost, "/", nil)
	req := httptest.NewRequest(http.MethodPost, "/admin/content/hero_image/image", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req = withURLParams(asAdmin(req.WithContext(base.Context()), f.root), "key", "hero_image")
	rr := httptest.NewRecorder()
	f.admin().ContentImage(rr, req)

	assert.Equal(t, render.FlashSuccess, f.flash(req).Type)
	assert.Equal(t, 1, f.uploads.n)
	stored, err := f.svc.Content.Stored(context.Background())
	require.NoError(t, err)
	assert.Equal(t, f.uploads.url, stored["hero_image"])
}

func TestUsers_RequireSuperadmin(t *testing.T) {
	f := newFixture(t)
	plain := testutil.CreateAdmin(t, f.db, "editor", "editor-pass", store.RoleAdmin)

	r := chi.NewRouter()
	r.With(middleware.RequireSuperadmin).Get("/admin/users", f.admin().Users)

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, asAdmin(f.request(t, http.MethodGet, "/admin/users", nil), plain))
	assert.Equal(t, http.StatusForbidden, rr.Code)

	rr = httptest.NewRecorder()
	r.ServeHTTP(rr, asAdmin(f.request(t, http.MethodGet, "/admin/users", nil), f.root))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "editor")
}

func TestUserCreate_Duplicate(t *testing.T) {
	f := newFixture(t)

	form := url.Values{"username": {"root"}, "password": {"another-pass"}, "role": {store.RoleAdmin}}
	req := asAdmin(withForm(f.request(t, http.MethodPost, "/", nil), form), f.root)
	rr := httptest.NewRecorder()
	f.admin().UserCreate(rr, req)

	assert.Equal(t, "Username already exists", f.flash(req).Message)
}

func TestUserDelete_Self(t *testing.T) {
	f := newFixture(t)

	req := withURLParams(asAdmin(f.request(t, http.MethodPost, "/", nil), f.root), "id", formatID(f.root.ID))
	rr := httptest.NewRecorder()
	f.admin().UserDelete(rr, req)

	assert.Equal(t, "You cannot delete your own account", f.flash(req).Message)
}

func TestSettingsPassword(t *testing.T) {
	f := newFixture(t)

	form := url.Values{
		"current_password": {"root-pass"},
		"new_password":     {"fresh-pass"},
		"confirm_password": {"other-pass"},
	}
	req := asAdmin(withForm(f.request(t, http.MethodPost, "/", nil), form), f.root)
	rr := httptest.NewRecorder()
	f.admin().SettingsPassword(rr, req)
	assert.Equal(t, "New passwords do not match", f.flash(req).Message)

	form.Set("confirm_password", "fresh-pass")
	req = asAdmin(withForm(f.request(t, http.MethodPost, "/", nil), form), f.root)
	rr = httptest.NewRecorder()
	f.admin().SettingsPassword(rr, req)
	assert.Equal(t, "Password updated", f.flash(req).Message)

	_, err := f.svc.Accounts.Authenticate(context.Background(), "root", "fresh-pass")
	assert.NoError(t, err)
}

func TestRefresh_RejectsForeignReturn(t *testing.T) {
	f := newFixture(t)

	req := asAdmin(withForm(f.request(t, http.MethodPost, "/", nil), url.Values{"return": {"https://evil.example"}}), f.root)
	rr := httptest.NewRecorder()
	f.admin().Refresh(rr, req)

	assert.Equal(t, "/admin", rr.Header().Get("Location"))
}
