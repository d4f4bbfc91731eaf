package handler

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olegiv/bharat-abroad/internal/middleware"
	"github.com/olegiv/bharat-abroad/internal/session"
)

func (f *fixture) auth(lp *middleware.LoginProtection) *AuthHandler {
	return NewAuthHandler(f.svc.Accounts, f.dash, f.renderer, f.sm, lp)
}

func loginForm(username, password string) url.Values {
	return url.Values{"username": {username}, "password": {password}}
}

func TestLogin_Success(t *testing.T) {
	f := newFixture(t)
	base := f.request(t, http.MethodPost, "/admin/login", nil)

	rr := httptest.NewRecorder()
	req := withForm(base, loginForm("root", "root-pass"))
	f.auth(nil).Login(rr, req)

	assert.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, "/admin", rr.Header().Get("Location"))
	assert.Equal(t, f.root.ID, f.sm.GetInt64(req.Context(), session.KeyAdminID))
}

func TestLogin_WrongPassword(t *testing.T) {
	f := newFixture(t)
	base := f.request(t, http.MethodPost, "/admin/login", nil)

	rr := httptest.NewRecorder()
	req := withForm(base, loginForm("root", "nope"))
	f.auth(nil).Login(rr, req)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.Contains(t, rr.Body.String(), "Invalid username or password")
	assert.Zero(t, f.sm.GetInt64(req.Context(), session.KeyAdminID))
}

func TestLogin_LocksAfterRepeatedFailures(t *testing.T) {
	f := newFixture(t)
	lp := middleware.NewLoginProtection(middleware.LoginProtectionConfig{MaxFailedAttempts: 2})
	h := f.auth(lp)
	base := f.request(t, http.MethodPost, "/admin/login", nil)

	rr := httptest.NewRecorder()
	h.Login(rr, withForm(base, loginForm("root", "bad")))
	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	rr = httptest.NewRecorder()
	h.Login(rr, withForm(base, loginForm("root", "bad")))
	assert.Equal(t, http.StatusTooManyRequests, rr.Code)

	// Correct password is still refused while locked.
	rr = httptest.NewRecorder()
	h.Login(rr, withForm(base, loginForm("root", "root-pass")))
	require.Equal(t, http.StatusTooManyRequests, rr.Code)
	assert.Contains(t, rr.Body.String(), "Too many failed attempts")
}

func TestLogout_ClearsSession(t *testing.T) {
	f := newFixture(t)
	req := f.request(t, http.MethodPost, "/admin/logout", nil)
	f.sm.Put(req.Context(), session.KeyAdminID, f.root.ID)

	rr := httptest.NewRecorder()
	f.auth(nil).Logout(rr, req)

	assert.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, middleware.LoginPath, rr.Header().Get("Location"))
	assert.Zero(t, f.sm.GetInt64(req.Context(), session.KeyAdminID))
}

func TestLoginForm_RedirectsSignedIn(t *testing.T) {
	f := newFixture(t)
	req := f.request(t, http.MethodGet, "/admin/login", nil)
	f.sm.Put(req.Context(), session.KeyAdminID, f.root.ID)

	rr := httptest.NewRecorder()
	f.auth(nil).LoginForm(rr, req)

	assert.Equal(t, http.StatusSeeOther, rr.Code)
}

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "less than a minute", formatDuration(30*time.Second))
	assert.Equal(t, "1 minute", formatDuration(time.Minute))
	assert.Equal(t, "15 minutes", formatDuration(15*time.Minute))
	assert.Equal(t, "2 hours", formatDuration(2*time.Hour))
}
