package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func newTestProtection(now *time.Time) *LoginProtection {
	lp := NewLoginProtection(LoginProtectionConfig{
		IPRateLimit:       1,
		IPBurst:           2,
		MaxFailedAttempts: 3,
		LockoutDuration:   time.Minute,
		AttemptWindow:     10 * time.Minute,
	})
	lp.now = func() time.Time { return *now }
	return lp
}

func TestLoginProtection_Lockout(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	lp := newTestProtection(&now)

	for i := 0; i < 2; i++ {
		locked, _ := lp.RecordFailure("Admin")
		assert.False(t, locked)
	}
	locked, d := lp.RecordFailure(" admin ")
	assert.True(t, locked, "usernames are matched case-insensitively")
	assert.Equal(t, time.Minute, d)

	isLocked, remaining := lp.IsLocked("admin")
	assert.True(t, isLocked)
	assert.Equal(t, time.Minute, remaining)

	now = now.Add(2 * time.Minute)
	isLocked, _ = lp.IsLocked("admin")
	assert.False(t, isLocked)

	// The second lockout doubles.
	for i := 0; i < 2; i++ {
		lp.RecordFailure("admin")
	}
	_, d = lp.RecordFailure("admin")
	assert.Equal(t, 2*time.Minute, d)
}

func TestLoginProtection_WindowResets(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	lp := newTestProtection(&now)

	lp.RecordFailure("admin")
	lp.RecordFailure("admin")
	now = now.Add(11 * time.Minute)

	locked, _ := lp.RecordFailure("admin")
	assert.False(t, locked, "failures outside the window are forgotten")
}

func TestLoginProtection_SuccessClears(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	lp := newTestProtection(&now)

	lp.RecordFailure("admin")
	lp.RecordFailure("admin")
	lp.RecordSuccess("admin")

	locked, _ := lp.RecordFailure("admin")
	assert.False(t, locked)
}

func TestLoginProtection_Cleanup(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	lp := newTestProtection(&now)

	lp.RecordFailure("admin")
	now = now.Add(time.Hour)
	lp.Cleanup()

	assert.Empty(t, lp.failedAttempts)
}

func TestLoginProtection_Middleware(t *testing.T) {
	now := time.Now()
	lp := newTestProtection(&now)
	h := lp.Middleware(http.HandlerFunc(okHandler))

	post := func() int {
		req := httptest.NewRequest(http.MethodPost, "/admin/login", nil)
		req.RemoteAddr = "203.0.113.5:4000"
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, req)
		return rr.Code
	}

	assert.Equal(t, http.StatusOK, post())
	assert.Equal(t, http.StatusOK, post())
	assert.Equal(t, http.StatusTooManyRequests, post())

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/admin/login", nil))
	assert.Equal(t, http.StatusOK, rr.Code, "GET is never limited")
}
