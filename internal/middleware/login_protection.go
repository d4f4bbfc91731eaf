package middleware

import (
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/olegiv/bharat-abroad/internal/util"
)

// maxLockout caps the exponential lockout backoff.
const maxLockout = 24 * time.Hour

// LoginProtection provides combined IP rate limiting and account lockout protection.
type LoginProtection struct {
	// IP-based rate limiting
	limiters   map[string]*rate.Limiter
	limitersMu sync.Mutex
	rate       rate.Limit
	burst      int

	// Account-based lockout tracking
	failedAttempts map[string]*loginAttempt
	attemptsMu     sync.Mutex

	maxFailedAttempts int
	lockoutDuration   time.Duration
	attemptWindow     time.Duration

	now func() time.Time
}

// loginAttempt tracks failed login attempts for one username.
type loginAttempt struct {
	count       int
	firstFailed time.Time
	lockedUntil time.Time
	lockouts    int // for exponential backoff
}

// LoginProtectionConfig holds configuration for login protection.
type LoginProtectionConfig struct {
	IPRateLimit       float64       // requests per second per IP
	IPBurst           int           // maximum burst per IP
	MaxFailedAttempts int           // failures before lockout
	LockoutDuration   time.Duration // base lockout, doubles with each lockout
	AttemptWindow     time.Duration // window for counting failures
}

// DefaultLoginProtectionConfig returns the defaults: 5 failures in 15
// minutes locks a username for 15 minutes.
func DefaultLoginProtectionConfig() LoginProtectionConfig {
	return LoginProtectionConfig{
		IPRateLimit:       0.5, // 1 request per 2 seconds
		IPBurst:           5,
		MaxFailedAttempts: 5,
		LockoutDuration:   15 * time.Minute,
		AttemptWindow:     15 * time.Minute,
	}
}

// NewLoginProtection creates a new login protection instance. Zero config
// fields take their default values.
func NewLoginProtection(cfg LoginProtectionConfig) *LoginProtection {
	def := DefaultLoginProtectionConfig()
	if cfg.IPRateLimit <= 0 {
		cfg.IPRateLimit = def.IPRateLimit
	}
	if cfg.IPBurst <= 0 {
		cfg.IPBurst = def.IPBurst
	}
	if cfg.MaxFailedAttempts <= 0 {
		cfg.MaxFailedAttempts = def.MaxFailedAttempts
	}
	if cfg.LockoutDuration <= 0 {
		cfg.LockoutDuration = def.LockoutDuration
	}
	if cfg.AttemptWindow <= 0 {
		cfg.AttemptWindow = def.AttemptWindow
	}

	return &LoginProtection{
		limiters:          make(map[string]*rate.Limiter),
		rate:              rate.Limit(cfg.IPRateLimit),
		burst:             cfg.IPBurst,
		failedAttempts:    make(map[string]*loginAttempt),
		maxFailedAttempts: cfg.MaxFailedAttempts,
		lockoutDuration:   cfg.LockoutDuration,
		attemptWindow:     cfg.AttemptWindow,
		now:               time.Now,
	}
}

func accountKey(username string) string {
	return strings.ToLower(strings.TrimSpace(username))
}

// AllowIP reports whether the IP may attempt another login.
func (lp *LoginProtection) AllowIP(ip string) bool {
	lp.limitersMu.Lock()
	limiter, ok := lp.limiters[ip]
	if !ok {
		limiter = rate.NewLimiter(lp.rate, lp.burst)
		lp.limiters[ip] = limiter
	}
	lp.limitersMu.Unlock()
	return limiter.Allow()
}

// IsLocked reports whether username is locked and for how much longer.
func (lp *LoginProtection) IsLocked(username string) (bool, time.Duration) {
	lp.attemptsMu.Lock()
	defer lp.attemptsMu.Unlock()

	attempt, ok := lp.failedAttempts[accountKey(username)]
	if !ok {
		return false, 0
	}
	if now := lp.now(); now.Before(attempt.lockedUntil) {
		return true, attempt.lockedUntil.Sub(now)
	}
	return false, 0
}

// RecordFailure records a failed login. It reports whether the username is
// now locked and for how long.
func (lp *LoginProtection) RecordFailure(username string) (bool, time.Duration) {
	lp.attemptsMu.Lock()
	defer lp.attemptsMu.Unlock()

	key := accountKey(username)
	now := lp.now()
	attempt, ok := lp.failedAttempts[key]
	if !ok || now.Sub(attempt.firstFailed) > lp.attemptWindow {
		if !ok {
			attempt = &loginAttempt{}
			lp.failedAttempts[key] = attempt
		}
		attempt.count = 0
		attempt.firstFailed = now
	}

	attempt.count++
	if attempt.count < lp.maxFailedAttempts {
		return false, 0
	}

	lockFor := lp.lockoutDuration
	for i := 0; i < attempt.lockouts && lockFor < maxLockout; i++ {
		lockFor *= 2
	}
	lockFor = min(lockFor, maxLockout)

	attempt.lockedUntil = now.Add(lockFor)
	attempt.lockouts++
	attempt.count = 0

	slog.Warn("admin account locked due to failed attempts",
		"username", key,
		"lockouts", attempt.lockouts,
		"duration", lockFor,
	)
	return true, lockFor
}

// RecordSuccess clears failure tracking for username.
func (lp *LoginProtection) RecordSuccess(username string) {
	lp.attemptsMu.Lock()
	defer lp.attemptsMu.Unlock()
	delete(lp.failedAttempts, accountKey(username))
}

// Cleanup removes expired entries. The scheduler calls it periodically.
func (lp *LoginProtection) Cleanup() {
	now := lp.now()

	lp.limitersMu.Lock()
	if len(lp.limiters) > 10000 {
		lp.limiters = make(map[string]*rate.Limiter)
		slog.Info("cleared login rate limiters due to size")
	}
	lp.limitersMu.Unlock()

	lp.attemptsMu.Lock()
	for key, attempt := range lp.failedAttempts {
		if now.After(attempt.lockedUntil) && now.Sub(attempt.firstFailed) > lp.attemptWindow {
			delete(lp.failedAttempts, key)
		}
	}
	lp.attemptsMu.Unlock()
}

// Middleware rate limits login POSTs per client IP.
func (lp *LoginProtection) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			next.ServeHTTP(w, r)
			return
		}

		ip := util.ClientIP(r)
		if !lp.AllowIP(ip) {
			slog.Warn("login rate limit exceeded", "ip", ip)
			http.Error(w, "Too many login attempts. Please wait and try again.", http.StatusTooManyRequests)
			return
		}
		next.ServeHTTP(w, r)
	})
}
