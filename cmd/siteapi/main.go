// Copyright (c) 2025-2026 InstaTrainMe
// SPDX-License-Identifier: GPL-3.0-or-later

// Command siteapi runs the InstaTrainMe marketing site API.
package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/instatrainme/site-api/internal/cache"
	"github.com/instatrainme/site-api/internal/config"
	"github.com/instatrainme/site-api/internal/handler"
	"github.com/instatrainme/site-api/internal/logging"
	"github.com/instatrainme/site-api/internal/mail"
	"github.com/instatrainme/site-api/internal/notify"
	"github.com/instatrainme/site-api/internal/scheduler"
	"github.com/instatrainme/site-api/internal/session"
	"github.com/instatrainme/site-api/internal/store"
	"github.com/instatrainme/site-api/internal/version"
)

// Version information - injected at build time via ldflags
var (
	appVersion   = "dev"
	appGitCommit = "unknown"
	appBuildTime = "unknown"
)

func main() {
	// Parse CLI flags
	showVersion := flag.Bool("version", false, "Show version information")
	flag.BoolVar(showVersion, "v", false, "Show version information (shorthand)")
	showHelp := flag.Bool("help", false, "Show help information")
	flag.BoolVar(showHelp, "h", false, "Show help information (shorthand)")

	flag.Usage = func() {
		_, _ = fmt.Fprintf(os.Stderr, "siteapi - InstaTrainMe marketing site API\n\n")
		_, _ = fmt.Fprintf(os.Stderr, "Usage: %s [options]\n\n", os.Args[0])
		_, _ = fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		_, _ = fmt.Fprintf(os.Stderr, "\nEnvironment Variables:\n")
		_, _ = fmt.Fprintf(os.Stderr, "  ITM_DB_PATH            SQLite database path (default: ./data/site.db)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  ITM_SERVER_PORT        Server port (default: 8080)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  ITM_ENV                Environment: development|production (default: development)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  ITM_MAILGUN_API_KEY    Mailgun API key (optional, notifications disabled without it)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  ITM_MAILGUN_DOMAIN     Mailgun sending domain (optional)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  ITM_NOTIFY_EMAIL       Lead notification inbox (default: Sales@instatrainme.com)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  ITM_REDIS_URL          Redis URL for distributed caching (optional)\n")
	}

	flag.Parse()

	if *showHelp {
		flag.Usage()
		os.Exit(0)
	}

	if *showVersion {
		info := version.Info{Version: appVersion, GitCommit: appGitCommit, BuildTime: appBuildTime}
		_, _ = fmt.Printf("siteapi %s\n", info)
		os.Exit(0)
	}

	if err := run(); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// Load .env file if present (development)
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	// Setup logger
	logLevel := slog.LevelInfo
	switch cfg.LogLevel {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	// Ensure data directory exists
	dbDir := filepath.Dir(cfg.DBPath)
	if err := os.MkdirAll(dbDir, 0755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}

	// Initialize database
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

	// Run migrations
	slog.Info("running database migrations")
	if err := store.Migrate(db); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}
	slog.Info("database ready")

	// Upgrade logger to also write WARN and ERROR logs to the event log table
	textHandler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel})
	logger = slog.New(logging.NewEventLogHandler(textHandler, db))
	slog.SetDefault(logger)

	// Ensure a usable admin account exists
	ctx := context.Background()
	if err := store.SeedAdmin(ctx, db); err != nil {
		return fmt.Errorf("seeding admin account: %w", err)
	}

	// Session manager backed by the sessions table
	sessionManager := session.New(db, cfg.IsDevelopment())
	slog.Info("session manager initialized")

	// Blog read cache (Redis when configured, in-memory otherwise)
	cacheTTL := time.Duration(cfg.CacheTTL) * time.Second
	var cacher cache.Cacher
	if cfg.UseRedisCache() {
		cacher = cache.New(cfg.RedisURL, cfg.CachePrefix, cacheTTL)
	} else {
		cacher = cache.NewMemoryCache(cacheTTL)
	}
	defer func() {
		if err := cacher.Close(); err != nil {
			slog.Error("error closing cache", "error", err)
		}
	}()

	// Lead notification mailer and background dispatcher
	var mailer mail.Mailer
	if cfg.MailgunEnabled() {
		mailer = mail.NewMailgunMailer(cfg.MailgunDomain, cfg.MailgunAPIKey, cfg.NotifyEmail)
		slog.Info("mailgun notifications enabled", "domain", cfg.MailgunDomain, "to", cfg.NotifyEmail)
	} else {
		mailer = mail.NewDisabledMailer()
	}

	dispatcher := notify.NewDispatcher(mailer, logger, notify.DefaultConfig())
	dispatcher.Start()
	defer dispatcher.Stop()

	// Nightly slug backfill
	sched := scheduler.New(db, logger)
	if err := sched.Start(); err != nil {
		return fmt.Errorf("starting scheduler: %w", err)
	}
	defer sched.Stop()

	h := handler.New(db, sessionManager, cacher, cacheTTL, dispatcher, logger)

	srv := &http.Server{
		Addr:              cfg.ServerAddr(),
		Handler:           h.Routes(),
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	// Start server in goroutine
	go func() {
		slog.Info("starting server", "addr", cfg.ServerAddr(), "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	slog.Info("server stopped")
	return nil
}
