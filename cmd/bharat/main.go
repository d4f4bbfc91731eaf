// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"

	"github.com/olegiv/bharat-abroad/internal/blob"
	"github.com/olegiv/bharat-abroad/internal/cache"
	"github.com/olegiv/bharat-abroad/internal/chat"
	"github.com/olegiv/bharat-abroad/internal/config"
	"github.com/olegiv/bharat-abroad/internal/dashboard"
	"github.com/olegiv/bharat-abroad/internal/geoip"
	"github.com/olegiv/bharat-abroad/internal/handler"
	"github.com/olegiv/bharat-abroad/internal/logging"
	"github.com/olegiv/bharat-abroad/internal/metrics"
	"github.com/olegiv/bharat-abroad/internal/middleware"
	"github.com/olegiv/bharat-abroad/internal/render"
	"github.com/olegiv/bharat-abroad/internal/scheduler"
	"github.com/olegiv/bharat-abroad/internal/service"
	"github.com/olegiv/bharat-abroad/internal/session"
	"github.com/olegiv/bharat-abroad/internal/store"
	"github.com/olegiv/bharat-abroad/internal/version"
	"github.com/olegiv/bharat-abroad/web"
)

// Version information - injected at build time via ldflags
var (
	appVersion   = "dev"
	appGitCommit = ""
	appBuildTime = ""
)

// Request limits for the public surface.
const (
	formRequests = 5
	formWindow   = time.Minute
	chatRequests = 20
	chatWindow   = time.Minute
)

func main() {
	showVersion := flag.Bool("version", false, "Show version information")
	flag.BoolVar(showVersion, "v", false, "Show version information (shorthand)")
	showHelp := flag.Bool("help", false, "Show help information")
	flag.BoolVar(showHelp, "h", false, "Show help information (shorthand)")

	flag.Usage = func() {
		_, _ = fmt.Fprintf(os.Stderr, "Bharat Abroad - Indian diaspora events site\n\n")
		_, _ = fmt.Fprintf(os.Stderr, "Usage: %s [options]\n\n", os.Args[0])
		_, _ = fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		_, _ = fmt.Fprintf(os.Stderr, "\nEnvironment Variables:\n")
		_, _ = fmt.Fprintf(os.Stderr, "  BHARAT_SESSION_SECRET    Session key (required, min 32 bytes)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  BHARAT_DB_PATH           SQLite database path (default: ./data/bharat.db)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  BHARAT_SERVER_PORT       Server port (default: 8080)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  BHARAT_ENV               Environment: development|production (default: development)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  BHARAT_ADMIN_PASSWORD    First superadmin password (random if unset)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  BHARAT_GROQ_API_KEY      Chat completion API key (chat disabled if unset)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  BHARAT_REDIS_URL         Redis URL for shared caching (optional)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  BHARAT_GEOIP_DB_PATH     GeoLite2 country database (optional)\n")
	}

	flag.Parse()

	if *showHelp {
		flag.Usage()
		os.Exit(0)
	}

	info := version.Info{Version: appVersion, GitCommit: appGitCommit, BuildTime: appBuildTime}
	if *showVersion {
		_, _ = fmt.Printf("bharat %s\n", info)
		os.Exit(0)
	}

	if err := run(info); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

func run(info version.Info) error {
	// Load .env files if present (development)
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	m := metrics.New()
	slog.SetDefault(logging.New(os.Stdout, logging.ParseLevel(cfg.LogLevel), cfg.IsDevelopment(), m))

	if err := os.MkdirAll(filepath.Dir(cfg.DBPath), 0o755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}

	slog.Info("initializing database", "path", cfg.DBPath)
	db, err := store.NewDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("initializing database: %w", err)
	}
	defer func(db *sql.DB) {
		if err := db.Close(); err != nil {
			slog.Error("error closing database connection", "error", err)
		}
	}(db)

	if err := store.Migrate(db); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}
	if err := store.Seed(context.Background(), db, store.Bootstrap{
		Username: cfg.AdminUsername,
		Password: cfg.AdminPassword,
	}); err != nil {
		return fmt.Errorf("seeding database: %w", err)
	}
	slog.Info("database ready")

	sm := session.New(db, session.Options{
		Lifetime:    cfg.SessionLifetime,
		IdleTimeout: cfg.SessionIdleTimeout,
		IsDev:       cfg.IsDevelopment(),
	})
	renderer := render.New(sm)

	ttl := time.Duration(cfg.CacheTTL) * time.Second
	c := cache.New(cache.Config{RedisURL: cfg.RedisURL, Prefix: cfg.CachePrefix, DefaultTTL: ttl})
	defer func() { _ = c.Close() }()

	svc := handler.Services{
		Content:   service.NewContentService(db, c, ttl),
		Catalog:   service.NewEventCatalog(db, c, ttl),
		Contact:   service.NewContactService(db),
		Analytics: service.NewAnalyticsService(db),
		Accounts:  service.NewAccountService(db),
	}

	dash := dashboard.New(db, c, svc.Accounts, svc.Content, svc.Catalog, dashboard.Options{
		AnalyticsLimit: cfg.AnalyticsFetchLimit,
		FetchTimeout:   cfg.DashboardFetchTimeout,
		SnapshotTTL:    cfg.SessionLifetime,
		OnFetchFailure: m.FetchFailed,
	})
	if err := dash.PurgeSnapshots(context.Background()); err != nil {
		slog.Warn("failed to purge dashboard snapshots", "error", err)
	}

	chatClient := chat.NewClient(chat.Config{
		APIKey:      cfg.ChatAPIKey,
		BaseURL:     cfg.ChatBaseURL,
		Model:       cfg.ChatModel,
		MaxTokens:   cfg.ChatMaxTokens,
		Temperature: cfg.ChatTemperature,
	})
	if !cfg.ChatEnabled() {
		slog.Warn("chat API key not set, chat replies will apologise")
	}

	uploads, err := blob.NewBucket(cfg.UploadsDir, blob.SiteImages, "/uploads")
	if err != nil {
		return fmt.Errorf("creating upload bucket: %w", err)
	}

	geo, err := geoip.Open(cfg.GeoIPDBPath)
	if err != nil {
		slog.Warn("GeoIP disabled", "error", err)
	}
	defer func() { _ = geo.Close() }()

	lp := middleware.NewLoginProtection(middleware.DefaultLoginProtectionConfig())

	jobs := scheduler.Jobs{
		Analytics: svc.Analytics,
		Retention: cfg.AnalyticsRetention(),
		Logins:    lp,
	}
	if cfg.GeoIPEnabled() {
		jobs.GeoIP = geo
	}
	sched := scheduler.New(jobs, slog.Default())
	if err := sched.Start(); err != nil {
		return fmt.Errorf("starting scheduler: %w", err)
	}
	defer sched.Stop()

	publicHandler := handler.NewPublicHandler(db, renderer, sm, svc, m, cfg.ChatEnabled())
	chatHandler := handler.NewChatHandler(chatClient, svc.Analytics, m)
	authHandler := handler.NewAuthHandler(svc.Accounts, dash, renderer, sm, lp)
	adminHandler := handler.NewAdminHandler(dash, renderer, uploads)
	healthHandler := handler.NewHealthHandler(db, cfg.UploadsDir, info)
	seoHandler := handler.NewSEOHandler(svc.Catalog, cfg.SiteURL, cfg.IsDevelopment())

	var trusted []string
	if cfg.IsDevelopment() {
		trusted = middleware.DevTrustedOrigins(cfg.ServerAddr())
	}

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(chimw.CleanPath)
	r.Use(chimw.Compress(5))
	r.Use(chimw.GetHead)
	r.Use(chimw.Timeout(60 * time.Second))
	r.Use(m.Middleware)
	r.Use(middleware.SecurityHeaders(middleware.DefaultSecurityHeadersConfig(cfg.IsDevelopment())))

	// Probes and assets sit outside sessions and CSRF.
	r.Get("/health", healthHandler.Health)
	r.Handle("/metrics", m.Handler())
	r.Get("/robots.txt", seoHandler.Robots)
	r.Get("/sitemap.xml", seoHandler.Sitemap)

	staticFS, err := fs.Sub(web.Static, "static")
	if err != nil {
		return fmt.Errorf("getting static fs: %w", err)
	}
	r.With(middleware.StaticCache(24*time.Hour)).
		Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(staticFS))))
	r.With(middleware.StaticCache(7*24*time.Hour)).
		Handle("/uploads/*", http.StripPrefix("/uploads/", http.FileServer(http.Dir(cfg.UploadsDir))))

	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.CORS(cfg.CORSOrigins))
		r.Use(middleware.ChatLimit(chatRequests, chatWindow))
		r.Post("/chat", chatHandler.Chat)
	})

	r.Group(func(r chi.Router) {
		r.Use(middleware.CSRF([]byte(cfg.SessionSecret), trusted...))
		r.Use(sm.LoadAndSave)

		// Public site
		r.Group(func(r chi.Router) {
			r.Use(middleware.Track(svc.Analytics, geo))

			r.Get("/", publicHandler.Home)
			r.Get("/events", publicHandler.Events)
			r.Get("/events/{id}", publicHandler.Event)
			r.Get("/events/{id}/{slug}", publicHandler.Event)
			r.Get("/about", publicHandler.About)

			r.Group(func(r chi.Router) {
				r.Use(middleware.PublicFormLimit(formRequests, formWindow))
				r.Get("/submit", publicHandler.SubmitForm)
				r.Post("/submit", publicHandler.Submit)
				r.Get("/contact", publicHandler.ContactForm)
				r.Post("/contact", publicHandler.Contact)
			})
		})

		r.Route("/admin", func(r chi.Router) {
			// Sign-in is open; everything else needs an admin.
			r.With(lp.Middleware).Get("/login", authHandler.LoginForm)
			r.With(lp.Middleware).Post("/login", authHandler.Login)
			r.Post("/logout", authHandler.Logout)

			r.Group(func(r chi.Router) {
				r.Use(middleware.LoadAdmin(sm, db))

				r.Get("/", adminHandler.Dashboard)
				r.Post("/refresh", adminHandler.Refresh)
				r.Get("/analytics", adminHandler.Analytics)

				r.Get("/submissions", adminHandler.Submissions)
				r.Get("/submissions/export", adminHandler.SubmissionsExport)
				r.Post("/submissions/{id}/status", adminHandler.SubmissionStatus)
				r.Post("/submissions/{id}/delete", adminHandler.SubmissionDelete)
				r.Post("/submissions/{id}/reply", adminHandler.SubmissionReply)

				r.Get("/events", adminHandler.Events)
				r.Post("/events/{id}/status", adminHandler.EventStatus)
				r.Post("/events/{id}/delete", adminHandler.EventDelete)

				r.Get("/portfolio", adminHandler.Portfolio)
				r.Get("/portfolio/new", adminHandler.PortfolioNew)
				r.Post("/portfolio", adminHandler.PortfolioCreate)
				r.Get("/portfolio/{id}", adminHandler.PortfolioEdit)
				r.Post("/portfolio/{id}", adminHandler.PortfolioUpdate)
				r.Post("/portfolio/{id}/delete", adminHandler.PortfolioDelete)

				r.Get("/content", adminHandler.Content)
				r.Post("/content/draft", adminHandler.ContentDraft)
				r.Post("/content/save-all", adminHandler.ContentSaveAll)
				r.Post("/content/{key}/save", adminHandler.ContentSave)
				r.Post("/content/{key}/image", adminHandler.ContentImage)

				r.Get("/settings", adminHandler.Settings)
				r.Post("/settings/password", adminHandler.SettingsPassword)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireSuperadmin)
					r.Get("/users", adminHandler.Users)
					r.Post("/users", adminHandler.UserCreate)
					r.Post("/users/{id}/delete", adminHandler.UserDelete)
					r.Post("/users/{id}/password", adminHandler.UserPassword)
				})
			})
		})

		r.NotFound(publicHandler.NotFound)
	})

	srv := &http.Server{
		Addr:              cfg.ServerAddr(),
		Handler:           r,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go recordPoolStats(ctx, db, m)

	errCh := make(chan error, 1)
	go func() {
		slog.Info("starting server", "addr", cfg.ServerAddr(), "env", cfg.Env, "version", info.String())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
	}

	slog.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	slog.Info("server stopped")
	return nil
}

// recordPoolStats samples the database pool until ctx is done.
func recordPoolStats(ctx context.Context, db *sql.DB, m *metrics.Metrics) {
	ticker := time.NewTicker(15 * time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.RecordDBPoolStats(db.Stats())
		}
	}
}
