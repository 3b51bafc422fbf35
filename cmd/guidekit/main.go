// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"context"
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

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"

	"guidekit/internal/config"
	"guidekit/internal/handler"
	"guidekit/internal/middleware"
	"guidekit/internal/service"
	"guidekit/internal/session"
	"guidekit/internal/store"
	"guidekit/internal/version"
)

// Version information - injected at build time via ldflags
var (
	appVersion   = "dev"
	appGitCommit = "unknown"
	appBuildTime = "unknown"
)

func versionInfo() version.Info {
	return version.Info{
		Version:   appVersion,
		GitCommit: appGitCommit,
		BuildTime: appBuildTime,
	}
}

func main() {
	showVersion := flag.Bool("version", false, "Show version information")
	flag.BoolVar(showVersion, "v", false, "Show version information (shorthand)")
	showHelp := flag.Bool("help", false, "Show help information")
	flag.BoolVar(showHelp, "h", false, "Show help information (shorthand)")

	flag.Usage = func() {
		_, _ = fmt.Fprintf(os.Stderr, "Guidekit - guides and FAQ backend\n\n")
		_, _ = fmt.Fprintf(os.Stderr, "Usage: %s [options]\n\n", os.Args[0])
		_, _ = fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		_, _ = fmt.Fprintf(os.Stderr, "\nEnvironment Variables:\n")
		_, _ = fmt.Fprintf(os.Stderr, "  GUIDEKIT_DATABASE_URL  PostgreSQL URL; SQLite is used when unset\n")
		_, _ = fmt.Fprintf(os.Stderr, "  GUIDEKIT_DB_PATH       SQLite database path (default: ./data/guidekit.db)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  GUIDEKIT_SERVER_HOST   Server host (default: localhost)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  GUIDEKIT_SERVER_PORT   Server port (default: 8080)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  GUIDEKIT_ENV           Environment: development|production (default: development)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  GUIDEKIT_LOG_LEVEL     Log level: debug|info|warn|error (default: info)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  GUIDEKIT_UPLOADS_DIR   Uploads directory (default: ./uploads)\n")
	}

	flag.Parse()

	if *showHelp {
		flag.Usage()
		os.Exit(0)
	}
	if *showVersion {
		_, _ = fmt.Println(versionInfo().String())
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

	if !cfg.UsePostgres() {
		if err := os.MkdirAll(filepath.Dir(cfg.DBPath), 0o755); err != nil {
			return fmt.Errorf("creating data directory: %w", err)
		}
	}

	// The backend is fixed at startup; an unreachable database aborts here.
	db, err := store.Open(store.Config{DatabaseURL: cfg.DatabaseURL, Path: cfg.DBPath})
	if err != nil {
		return fmt.Errorf("initializing database: %w", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			slog.Error("error closing database connection", "error", err)
		}
	}()
	slog.Info("database ready", "backend", db.Backend())

	ctx := context.Background()
	if err := db.CreateSchema(ctx); err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}
	if err := store.Seed(ctx, db); err != nil {
		return fmt.Errorf("seeding database: %w", err)
	}

	sessionManager := session.New(db, cfg.IsDevelopment())
	slog.Info("session manager initialized")

	uploads, err := service.NewUploadService(cfg.UploadsDir)
	if err != nil {
		return fmt.Errorf("initializing uploads: %w", err)
	}

	posts := store.NewPostStore(db)
	categories := store.NewCategoryStore(db)
	faqs := store.NewFAQStore(db)
	training := store.NewTrainingStore(db)
	settings := store.NewSettingsStore(db)

	loginProtection := middleware.NewLoginProtection(middleware.DefaultLoginProtectionConfig())

	api := &handler.API{
		Sessions:   sessionManager,
		Protection: loginProtection,
		UploadsDir: cfg.UploadsDir,

		Posts:      handler.NewPostsHandler(posts),
		Categories: handler.NewCategoriesHandler(categories),
		FAQs:       handler.NewFAQsHandler(faqs),
		Training:   handler.NewTrainingHandler(training),
		Settings:   handler.NewSettingsHandler(settings),
		Auth:       handler.NewAuthHandler(sessionManager, settings, loginProtection),
		Upload:     handler.NewUploadHandler(uploads),
		Health:     handler.NewHealthHandler(db, versionInfo()),
	}

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Compress(5))
	r.Use(chimw.GetHead)
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(sessionManager.LoadAndSave)

	api.Routes(r)

	srv := &http.Server{
		Addr:              cfg.ServerAddr(),
		Handler:           r,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      60 * time.Second, // Longer to allow for large uploads and slow connections
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	go func() {
		slog.Info("starting server", "addr", cfg.ServerAddr(), "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
		}
	}()

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
