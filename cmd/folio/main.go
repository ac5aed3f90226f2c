// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

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

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"

	"github.com/folio-site/folio-go/internal/config"
	"github.com/folio-site/folio-go/internal/handler"
	"github.com/folio-site/folio-go/internal/handler/api"
	"github.com/folio-site/folio-go/internal/logging"
	"github.com/folio-site/folio-go/internal/middleware"
	"github.com/folio-site/folio-go/internal/scheduler"
	"github.com/folio-site/folio-go/internal/service"
	"github.com/folio-site/folio-go/internal/session"
	"github.com/folio-site/folio-go/internal/storage"
	"github.com/folio-site/folio-go/internal/store"
	"github.com/folio-site/folio-go/internal/version"
)

func main() {
	showVersion := flag.Bool("version", false, "Show version information")
	flag.BoolVar(showVersion, "v", false, "Show version information (shorthand)")
	showHelp := flag.Bool("help", false, "Show help information")
	flag.BoolVar(showHelp, "h", false, "Show help information (shorthand)")

	flag.Usage = func() {
		_, _ = fmt.Fprintf(os.Stderr, "folio - personal publishing site backend\n\n")
		_, _ = fmt.Fprintf(os.Stderr, "Usage: %s [options]\n\n", os.Args[0])
		_, _ = fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		_, _ = fmt.Fprintf(os.Stderr, "\nEnvironment Variables:\n")
		_, _ = fmt.Fprintf(os.Stderr, "  FOLIO_SESSION_SECRET   Token signing key (required, min 32 bytes)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  FOLIO_DB_PATH          SQLite database path (default: ./data/folio.db)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  FOLIO_SERVER_PORT      Server port (default: 8080)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  FOLIO_ENV              Environment: development|production (default: development)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  FOLIO_ADMIN_EMAIL      Email granted the admin role at login\n")
		_, _ = fmt.Fprintf(os.Stderr, "  FOLIO_S3_BUCKET        Object storage bucket for uploads (optional)\n")
	}

	flag.Parse()

	if *showHelp {
		flag.Usage()
		os.Exit(0)
	}

	if *showVersion {
		_, _ = fmt.Printf("folio %s (commit: %s, built: %s)\n",
			version.Version, version.GitCommit, version.BuildTime)
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

	// Ensure data directory exists
	dbDir := filepath.Dir(cfg.DBPath)
	if err := os.MkdirAll(dbDir, 0755); err != nil {
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

	// Upgrade logger to also write WARN and ERROR logs to the events table
	textHandler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel})
	logger = slog.New(logging.NewEventLogHandler(textHandler, db))
	slog.SetDefault(logger)

	ctx := context.Background()
	if err := store.Seed(ctx, db, cfg.AdminEmail, cfg.AdminName, cfg.DoSeed); err != nil {
		return fmt.Errorf("seeding database: %w", err)
	}

	// Object storage bridge. Without a configured bucket, uploads fail with
	// an explicit error instead of landing nowhere.
	var objectStore storage.Store = storage.Disabled{}
	if cfg.StorageConfigured() {
		s3Store, err := storage.NewS3Store(storage.S3Config{
			Endpoint:       cfg.S3Endpoint,
			Region:         cfg.S3Region,
			Bucket:         cfg.S3Bucket,
			AccessKey:      cfg.S3AccessKey,
			SecretKey:      cfg.S3SecretKey,
			PublicBaseURL:  cfg.S3PublicBaseURL,
			ForcePathStyle: cfg.S3ForcePathStyle,
		})
		if err != nil {
			return fmt.Errorf("configuring object storage: %w", err)
		}
		objectStore = s3Store
		slog.Info("object storage configured", "bucket", cfg.S3Bucket)
	} else {
		slog.Warn("object storage not configured, uploads disabled")
	}

	queries := store.New(db)
	sessions := session.NewService(queries, session.Options{
		Secret:        []byte(cfg.SessionSecret),
		TTL:           time.Duration(cfg.SessionTTLDays) * 24 * time.Hour,
		CookieName:    cfg.CookieName,
		SecureCookies: !cfg.IsDevelopment(),
		AdminEmail:    cfg.AdminEmail,
		Credentials: session.Credentials{
			Email:        cfg.AdminEmail,
			Name:         cfg.AdminName,
			Password:     cfg.AdminPassword,
			PasswordHash: cfg.AdminPasswordHash,
		},
	})

	maintenance := scheduler.New(db, logger, time.Duration(cfg.EventRetentionDays)*24*time.Hour)
	if err := maintenance.Start(); err != nil {
		return fmt.Errorf("starting scheduler: %w", err)
	}
	defer maintenance.Stop()

	events := service.NewEventService(db)
	apiHandler := api.NewHandler(db, objectStore)
	authHandler := api.NewAuthHandler(sessions, events)
	healthHandler := handler.NewHealthHandler(db)

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Compress(5))
	r.Use(chimw.Timeout(60 * time.Second))

	corsOptions := cors.Options{
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}
	if len(cfg.AllowedOrigins) > 0 {
		corsOptions.AllowedOrigins = cfg.AllowedOrigins
	} else {
		// Credentials forbid a bare wildcard; echo the origin instead.
		corsOptions.AllowOriginFunc = func(r *http.Request, origin string) bool { return true }
	}
	r.Use(cors.Handler(corsOptions))

	r.Use(middleware.WithUser(sessions))

	apiLimiter := middleware.NewRateLimiter(20, 40)
	loginLimiter := middleware.NewRateLimiter(0.2, 5)

	r.Get("/health", healthHandler.Health)

	r.Route("/api", func(r chi.Router) {
		r.Use(apiLimiter.Middleware())

		r.Route("/auth", func(r chi.Router) {
			r.With(loginLimiter.Middleware()).Post("/login", authHandler.Login)
			r.Post("/logout", authHandler.Logout)
			r.Get("/me", authHandler.Me)
		})

		r.Route("/v1", func(r chi.Router) {
			r.Get("/status", apiHandler.Status)

			// Public reads
			r.Get("/photos", apiHandler.ListPhotos)
			r.Get("/photos/{id}", apiHandler.GetPhoto)
			r.Get("/essays", apiHandler.ListEssays)
			r.Get("/essays/{id}", apiHandler.GetEssay)
			r.Get("/papers", apiHandler.ListPapers)
			r.Get("/papers/{id}", apiHandler.GetPaper)
			r.Get("/backgrounds", apiHandler.ListBackgrounds)
			r.Get("/settings", apiHandler.ListSettings)
			r.Get("/search", apiHandler.Search)

			// Admin surface
			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireAdmin)

				r.Get("/essays/all", apiHandler.ListAllEssays)
				r.Get("/papers/all", apiHandler.ListAllPapers)
				r.Get("/backgrounds/all", apiHandler.ListAllBackgrounds)

				r.Post("/photos", apiHandler.CreatePhoto)
				r.Put("/photos/{id}", apiHandler.UpdatePhoto)
				r.Delete("/photos/{id}", apiHandler.DeletePhoto)

				r.Post("/essays", apiHandler.CreateEssay)
				r.Put("/essays/{id}", apiHandler.UpdateEssay)
				r.Delete("/essays/{id}", apiHandler.DeleteEssay)

				r.Post("/papers", apiHandler.CreatePaper)
				r.Put("/papers/{id}", apiHandler.UpdatePaper)
				r.Delete("/papers/{id}", apiHandler.DeletePaper)

				r.Post("/backgrounds", apiHandler.CreateBackground)
				r.Put("/backgrounds/{id}", apiHandler.UpdateBackground)
				r.Delete("/backgrounds/{id}", apiHandler.DeleteBackground)

				r.Put("/settings/{key}", apiHandler.UpsertSetting)

				r.Post("/upload/image", apiHandler.UploadImage)
				r.Post("/upload/pdf", apiHandler.UploadPDF)

				r.Get("/events", apiHandler.ListEvents)
			})
		})
	})

	srv := &http.Server{
		Addr:              cfg.ServerAddr(),
		Handler:           r,
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
