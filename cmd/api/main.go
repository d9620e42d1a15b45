// Copyright (c) 2026 Shelfmark. All rights reserved.
// Author: dev@shelfmark.app

// Command api is the entry point for the Shelfmark HTTP API server.
//
// # Startup Sequence
//
//  1. Initialize structured logger.
//  2. Load configuration from environment variables.
//  3. Connect to PostgreSQL (pgxpool).
//  4. Connect to Redis.
//  5. Run database migrations (idempotent).
//  6. Wire HTTP handlers.
//  7. Start HTTP server with graceful shutdown.
//
// No business logic lives here. All wiring is explicit constructor injection.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/shelfmark/shelfmark/internal/activity"
	"github.com/shelfmark/shelfmark/internal/api"
	"github.com/shelfmark/shelfmark/internal/catalog"
	"github.com/shelfmark/shelfmark/internal/goal"
	"github.com/shelfmark/shelfmark/internal/library"
	"github.com/shelfmark/shelfmark/internal/metadata"
	"github.com/shelfmark/shelfmark/internal/platform/config"
	"github.com/shelfmark/shelfmark/internal/platform/constants"
	"github.com/shelfmark/shelfmark/internal/platform/migration"
	pgstore "github.com/shelfmark/shelfmark/internal/platform/postgres"
	redisstore "github.com/shelfmark/shelfmark/internal/platform/redis"
	"github.com/shelfmark/shelfmark/internal/platform/sec"
	"github.com/shelfmark/shelfmark/internal/review"
	"github.com/shelfmark/shelfmark/internal/shelf"
	"github.com/shelfmark/shelfmark/internal/users/auth"
	"github.com/shelfmark/shelfmark/internal/users/profile"
)

func main() {
	// ── 1. Logger ──────────────────────────────────────────────────────────
	// Initialize first so that subsequent startup errors are structured JSON.
	rawLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	// Add global context to all log entries.
	log := rawLog.With(slog.String("app", "shelfmark"))
	slog.SetDefault(log)

	log.Info("[Shelfmark] service_initializing")

	// ── 2. Configuration ──────────────────────────────────────────────────
	cfg, err := config.Load()
	must(log, err, "load configuration")

	if cfg.Debug {
		debugLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
		log = debugLog.With(slog.String("app", "shelfmark"))
		slog.SetDefault(log)
		log.Debug("debug_logging_enabled")
	}

	log.Info("configuration_loaded",
		slog.String("environment", cfg.Environment),
		slog.String("port", cfg.ServerPort),
	)

	// Root context for startup. Use a 30s deadline so misconfiguration is
	// caught quickly rather than hanging indefinitely.
	startupCtx, startupCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer startupCancel()

	// ── 3. PostgreSQL ─────────────────────────────────────────────────────
	pool, err := pgstore.NewPool(startupCtx, cfg.DatabaseURL, log)
	must(log, err, "connect to postgres")
	defer func() {
		log.Info("closing postgres pool")
		pool.Close()
	}()

	// ── 4. Redis ──────────────────────────────────────────────────────────
	rdb, err := redisstore.NewClient(startupCtx, cfg.RedisURL, log)
	must(log, err, "connect to redis")
	defer func() {
		log.Info("closing redis client")
		if cerr := rdb.Close(); cerr != nil {
			log.Error("redis close error", slog.Any("error", cerr))
		}
	}()

	// ── 5. Migrations ─────────────────────────────────────────────────────
	must(log, migration.RunUp(cfg.DatabaseURL, cfg.MigrationPath, log), "run migrations")

	// ── 6. Auth Service ───────────────────────────────────────────────────
	jwtSvc, err := sec.NewTokenService(cfg.JWTPrivKeyPath, cfg.JWTPubKeyPath, constants.AuthIssuer)
	must(log, err, "initialize jwt service")
	// ── 7. Health handlers (wired with real dependency checkers) ──────────
	liveness, readiness := api.NewHealthHandlers(api.HealthDependencies{
		CheckDatabase: func() error {
			return pgstore.Ping(context.Background(), pool)
		},
		CheckCache: func() error {
			return redisstore.Ping(context.Background(), rdb)
		},
	}, log)

	// ── 8. Domain Wiring ──────────────────────────────────────────────────
	// Identity.
	userRepository := auth.NewUserRepository(pool)
	sessionRepository := auth.NewSessionRepository(pool)
	revocationCache := auth.NewRevocationCache(rdb)
	authService := auth.NewService(userRepository, sessionRepository, revocationCache, jwtSvc)
	profileService := profile.NewService(userRepository, sessionRepository)

	// Canonical catalog and its resolver.
	catalogRepository := catalog.NewPostgresRepository(pool)
	catalogService := catalog.NewService(catalogRepository, log)

	// Activity log, fed by library and review mutations.
	activityRepository := activity.NewPostgresRepository(pool)
	activityService := activity.NewService(activityRepository)

	// Per-user library (the reading tracker core).
	libraryRepository := library.NewPostgresRepository(pool)
	libraryService := library.NewService(libraryRepository, catalogService, activityService, log)

	// Social reviews with rating aggregation.
	reviewRepository := review.NewPostgresRepository(pool)
	reviewService := review.NewService(reviewRepository, catalogRepository, activityService, log)

	// External metadata provider behind a Redis read-through cache.
	metadataClient := metadata.NewClient(cfg.MetadataBaseURL, cfg.MetadataAPIKey)
	metadataProvider := metadata.NewCachedClient(metadataClient, rdb, log)

	// Shelves and reading goals.
	shelfService := shelf.NewService(shelf.NewPostgresRepository(pool))
	goalService := goal.NewService(goal.NewPostgresRepository(pool), libraryRepository)

	// ── 9. HTTP Server ────────────────────────────────────────────────────
	handlers := api.Handlers{
		Liveness:  liveness,
		Readiness: readiness,
		Auth:      auth.NewHandler(authService),
		Catalog:   catalog.NewHandler(catalogService),
		Library:   library.NewHandler(libraryService),
		Activity:  activity.NewHandler(activityService),
		Review:    review.NewHandler(reviewService),
		Metadata:  metadata.NewHandler(metadataProvider),
		Shelf:     shelf.NewHandler(shelfService),
		Goal:      goal.NewHandler(goalService),
		Profile:   profile.NewHandler(profileService),
	}

	// Long-lived context for in-process workers (rate limiter janitor);
	// cancelled once the server has shut down.
	appCtx, appCancel := context.WithCancel(context.Background())
	defer appCancel()

	server := api.NewServer(appCtx, cfg, log, jwtSvc, handlers)

	// ── 10. Graceful Shutdown ─────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)

	serverErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Block until OS signal or server error.
	select {
	case sig := <-quit:
		log.Info("shutdown signal received", slog.String("signal", sig.String()))
	case err := <-serverErr:
		log.Error("server startup error", slog.Any("error", err))
	}

	// Give in-flight requests enough time to complete.
	shutdownTimeout := constants.ShutdownTimeout
	log.Info("shutting down server", slog.Duration("timeout", shutdownTimeout))

	if err := server.Shutdown(shutdownTimeout); err != nil {
		log.Error("shutdown error", slog.Any("error", err))
		os.Exit(1)
	}

	log.Info("server stopped cleanly")
}

// must logs a structured fatal error and terminates the process if err is non-nil.
//
// It is intentionally limited to startup wiring. After startup, all errors
// must be returned and handled explicitly (never panic).
func must(log *slog.Logger, err error, context string) {
	if err != nil {
		log.Error("startup failure",
			slog.String("context", context),
			slog.Any("error", err),
		)
		os.Exit(1)
	}
}
