// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// knownWeakSecrets contains example secrets that must never reach production.
var knownWeakSecrets = []string{
	"change-me-to-32-byte-secret-key!",
	"REPLACE_WITH_YOUR_OWN_SECRET_KEY!",
}

// Config holds the application configuration loaded from environment variables.
type Config struct {
	DBPath        string `env:"BHARAT_DB_PATH" envDefault:"./data/bharat.db"`
	SessionSecret string `env:"BHARAT_SESSION_SECRET,required"`
	ServerHost    string `env:"BHARAT_SERVER_HOST" envDefault:"localhost"`
	ServerPort    int    `env:"BHARAT_SERVER_PORT" envDefault:"8080"`
	Env           string `env:"BHARAT_ENV" envDefault:"development"`
	LogLevel      string `env:"BHARAT_LOG_LEVEL" envDefault:"info"`
	UploadsDir    string `env:"BHARAT_UPLOADS_DIR" envDefault:"./uploads"`
	SiteURL       string `env:"BHARAT_SITE_URL"` // public base URL for sitemap links

	// Sessions
	SessionLifetime    time.Duration `env:"BHARAT_SESSION_LIFETIME" envDefault:"12h"`
	SessionIdleTimeout time.Duration `env:"BHARAT_SESSION_IDLE_TIMEOUT" envDefault:"2h"`

	// First superadmin, created only when admin_users is empty
	AdminUsername string `env:"BHARAT_ADMIN_USERNAME" envDefault:"admin"`
	AdminPassword string `env:"BHARAT_ADMIN_PASSWORD"`

	// Cache
	RedisURL    string `env:"BHARAT_REDIS_URL"`
	CachePrefix string `env:"BHARAT_CACHE_PREFIX" envDefault:"bharat:"`
	CacheTTL    int    `env:"BHARAT_CACHE_TTL" envDefault:"300"` // seconds

	// Chat completion endpoint (OpenAI compatible)
	ChatAPIKey      string  `env:"BHARAT_GROQ_API_KEY"`
	ChatBaseURL     string  `env:"BHARAT_CHAT_BASE_URL" envDefault:"https://api.groq.com/openai/v1"`
	ChatModel       string  `env:"BHARAT_CHAT_MODEL" envDefault:"llama-3.3-70b-versatile"`
	ChatMaxTokens   int64   `env:"BHARAT_CHAT_MAX_TOKENS" envDefault:"500"`
	ChatTemperature float64 `env:"BHARAT_CHAT_TEMPERATURE" envDefault:"0.7"`

	// Dashboard and analytics
	AnalyticsFetchLimit    int64         `env:"BHARAT_ANALYTICS_FETCH_LIMIT" envDefault:"500"`
	AnalyticsRetentionDays int           `env:"BHARAT_ANALYTICS_RETENTION_DAYS" envDefault:"365"`
	DashboardFetchTimeout  time.Duration `env:"BHARAT_DASHBOARD_FETCH_TIMEOUT" envDefault:"10s"`

	GeoIPDBPath string   `env:"BHARAT_GEOIP_DB_PATH"` // GeoLite2-Country.mmdb
	CORSOrigins []string `env:"BHARAT_CORS_ORIGINS" envSeparator:","`
}

// IsDevelopment returns true if the application is running in development mode.
func (c Config) IsDevelopment() bool {
	return c.Env == "development"
}

// ServerAddr returns the full server address in host:port format.
func (c Config) ServerAddr() string {
	return fmt.Sprintf("%s:%d", c.ServerHost, c.ServerPort)
}

// UseRedisCache returns true if Redis caching is configured.
func (c Config) UseRedisCache() bool {
	return c.RedisURL != ""
}

// GeoIPEnabled returns true if a GeoIP database is configured.
func (c Config) GeoIPEnabled() bool {
	return c.GeoIPDBPath != ""
}

// ChatEnabled returns true if the completion API key is set.
func (c Config) ChatEnabled() bool {
	return c.ChatAPIKey != ""
}

// AnalyticsRetention returns the retention window as a duration.
func (c Config) AnalyticsRetention() time.Duration {
	return time.Duration(c.AnalyticsRetentionDays) * 24 * time.Hour
}

// MinSessionSecretLength is the minimum required length for the session secret.
const MinSessionSecretLength = 32

// Load parses environment variables and returns a Config struct.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if len(cfg.SessionSecret) < MinSessionSecretLength {
		return nil, fmt.Errorf("BHARAT_SESSION_SECRET must be at least %d bytes long, got %d bytes; "+
			"generate a secure secret with: openssl rand -base64 32",
			MinSessionSecretLength, len(cfg.SessionSecret))
	}

	for _, weak := range knownWeakSecrets {
		if cfg.SessionSecret == weak {
			return nil, fmt.Errorf("BHARAT_SESSION_SECRET is a known default value and must not be used")
		}
	}

	if !hasMinimumEntropy(cfg.SessionSecret) {
		slog.Warn("BHARAT_SESSION_SECRET has low character diversity; " +
			"consider generating a random secret with: openssl rand -base64 32")
	}

	if cfg.AnalyticsFetchLimit <= 0 {
		return nil, fmt.Errorf("BHARAT_ANALYTICS_FETCH_LIMIT must be positive, got %d", cfg.AnalyticsFetchLimit)
	}
	if cfg.SessionIdleTimeout > cfg.SessionLifetime {
		return nil, fmt.Errorf("BHARAT_SESSION_IDLE_TIMEOUT (%s) exceeds BHARAT_SESSION_LIFETIME (%s)",
			cfg.SessionIdleTimeout, cfg.SessionLifetime)
	}

	return cfg, nil
}

// hasMinimumEntropy checks that a secret mixes at least three character classes.
func hasMinimumEntropy(s string) bool {
	classes := 0
	for _, set := range []string{
		"abcdefghijklmnopqrstuvwxyz",
		"ABCDEFGHIJKLMNOPQRSTUVWXYZ",
		"0123456789",
		"!@#$%^&*()-_=+[]{}|;:,.<>?/~`'\"\\",
	} {
		if strings.ContainsAny(s, set) {
			classes++
		}
	}
	return classes >= 3
}
