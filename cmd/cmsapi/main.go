// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Command cmsapi runs the content-management backend: the JSON REST API,
// the social preview endpoint and static serving of uploaded images.
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

	"github.com/resristi/cms-api/internal/auth"
	"github.com/resristi/cms-api/internal/cache"
	"github.com/resristi/cms-api/internal/config"
	"github.com/resristi/cms-api/internal/handler"
	"github.com/resristi/cms-api/internal/media"
	"github.com/resristi/cms-api/internal/store"
)

// Version information - injected at build time via ldflags
var (
	appVersion   = "dev"
	appGitCommit = "unknown"
	appBuildTime = "unknown"
)

func main() {
	showVersion := flag.Bool("version", false, "Show version information")
	flag.BoolVar(showVersion, "v", false, "Show version information (shorthand)")

	flag.Usage = func() {
		_, _ = fmt.Fprintf(os.Stderr, "cmsapi - content-management backend\n\n")
		_, _ = fmt.Fprintf(os.Stderr, "Usage: %s [options]\n\n", os.Args[0])
		_, _ = fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		_, _ = fmt.Fprintf(os.Stderr, "\nEnvironment Variables:\n")
		_, _ = fmt.Fprintf(os.Stderr, "  CMS_JWT_SECRET          Token signing key (required, min 32 bytes)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  CMS_DB_PATH             SQLite database path (default: ./data/cms.db)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  CMS_SERVER_PORT         Server port (default: 4000)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  CMS_PUBLIC_URL          Public base URL of this backend\n")
		_, _ = fmt.Fprintf(os.Stderr, "  CMS_FRONTEND_URL        Front-end origin for preview redirects\n")
		_, _ = fmt.Fprintf(os.Stderr, "  CMS_REDIS_URL           Redis URL for distributed preview caching (optional)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  CMS_DO_SEED             Seed the admin account on startup (default: false)\n")
	}

	flag.Parse()

	if *showVersion {
		_, _ = fmt.Printf("cmsapi %s (commit: %s, built: %s)\n", appVersion, appGitCommit, appBuildTime)
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
	if err := os.MkdirAll(filepath.Dir(cfg.DBPath), 0755); err != nil {
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

	slog.Info("running database migrations")
	if err := store.Migrate(db); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}
	slog.Info("database ready")

	if cfg.DoSeed {
		if err := store.Seed(context.Background(), db, cfg.SeedAdminEmail, cfg.SeedAdminPassword); err != nil {
			return fmt.Errorf("seeding admin: %w", err)
		}
	}

	previewCache, err := cache.New(cache.Config{
		RedisURL:   cfg.RedisURL,
		Prefix:     cfg.CachePrefix,
		DefaultTTL: time.Duration(cfg.CacheTTL) * time.Second,
		MaxSize:    cfg.CacheMaxSize,
	})
	if err != nil {
		return fmt.Errorf("initializing cache: %w", err)
	}
	defer func() { _ = previewCache.Close() }()
	if cfg.UseRedisCache() {
		slog.Info("preview cache backed by redis", "prefix", cfg.CachePrefix)
	}

	processor, err := media.NewProcessor(cfg.UploadsDir)
	if err != nil {
		return fmt.Errorf("initializing upload storage: %w", err)
	}

	h := handler.New(cfg, db, auth.NewTokens(cfg.JWTSecret), processor, previewCache)

	srv := &http.Server{
		Addr:              cfg.ServerAddr(),
		Handler:           h.Routes(),
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      60 * time.Second, // Longer to allow for large uploads and slow connections
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20, // 1MB max header size
	}

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

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	slog.Info("server stopped")
	return nil
}
