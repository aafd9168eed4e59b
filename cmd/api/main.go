// Copyright (c) 2026 Patriarchia. All rights reserved.

// Command api is the entry point for the Patriarchia HTTP API server.
//
// # Startup Sequence
//
//  1. Initialize structured logger.
//  2. Load configuration from environment variables.
//  3. Connect to PostgreSQL (pgxpool).
//  4. Connect to Redis.
//  5. Run database migrations (idempotent).
//  6. Seed the bootstrap admin account (idempotent).
//  7. Wire HTTP handlers.
//  8. Start HTTP server with graceful shutdown.
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

	"github.com/copticarchive/patriarchia/internal/api"
	"github.com/copticarchive/patriarchia/internal/export"
	"github.com/copticarchive/patriarchia/internal/insight"
	"github.com/copticarchive/patriarchia/internal/patriarch"
	"github.com/copticarchive/patriarchia/internal/platform/config"
	"github.com/copticarchive/patriarchia/internal/platform/constants"
	"github.com/copticarchive/patriarchia/internal/platform/migration"
	pgstore "github.com/copticarchive/patriarchia/internal/platform/postgres"
	redisstore "github.com/copticarchive/patriarchia/internal/platform/redis"
	"github.com/copticarchive/patriarchia/internal/platform/sec"
	"github.com/copticarchive/patriarchia/internal/recommend"
	"github.com/copticarchive/patriarchia/internal/users/auth"
)

func main() {
	// ── 1. Logger ──────────────────────────────────────────────────────────
	// Initialize first so that subsequent startup errors are structured JSON.
	rawLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	// Add global context to all log entries.
	log := rawLog.With(slog.String("app", constants.AppName))
	slog.SetDefault(log)

	log.Info("service_initializing")

	// ── 2. Configuration ──────────────────────────────────────────────────
	cfg, err := config.Load()
	must(log, err, "load configuration")

	if cfg.Debug {
		debugLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
		log = debugLog.With(slog.String("app", constants.AppName))
		slog.SetDefault(log)
		log.Debug("debug_logging_enabled")
	}

	log.Info("configuration_loaded",
		slog.String("environment", cfg.Environment),
		slog.String("port", cfg.ServerPort),
		slog.Bool("insight_enabled", cfg.InsightEnabled()),
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

	// ── 6. Security Services ──────────────────────────────────────────────
	jwtSvc, err := sec.NewTokenService(cfg.JWTPrivKeyPath, cfg.JWTPubKeyPath, constants.AuthIssuer)
	must(log, err, "initialize jwt service")

	credentialStore := auth.NewPostgresCredentialStore(pool)
	must(log, auth.EnsureSeedAdmin(startupCtx, credentialStore, cfg.AdminUsername, cfg.AdminPassword, log), "seed admin account")

	// ── 7. Health Handlers ────────────────────────────────────────────────
	liveness, readiness := api.NewHealthHandlers(api.HealthDependencies{
		CheckDatabase: func() error {
			return pgstore.Ping(context.Background(), pool)
		},
		CheckCache: func() error {
			return redisstore.Ping(context.Background(), rdb)
		},
	}, log)

	// ── 8. Domain Wiring ──────────────────────────────────────────────────
	sessionStore := auth.NewRedisSessionStore(rdb)
	authService := auth.NewService(credentialStore, sessionStore, jwtSvc, log)
	authHandler := auth.NewHandler(authService)

	patriarchRepo := patriarch.NewPostgresRepository(pool)
	patriarchService := patriarch.NewService(patriarchRepo, log)
	patriarchHandler := patriarch.NewHandler(patriarchService)

	// The generative layer is optional: without an API key its routes are
	// not mounted and recommendations skip advice enrichment.
	var insightHandler *insight.Handler
	var advisor recommend.Advisor
	if cfg.InsightEnabled() {
		generator, err := insight.NewGenAIClient(startupCtx, cfg.GenAIKey, cfg.GenAIModel)
		must(log, err, "initialize genai client")

		insightService := insight.NewService(generator, patriarchRepo, rdb, log)
		insightHandler = insight.NewHandler(insightService)
		advisor = insightService
	}

	recommendService := recommend.NewService(patriarchRepo, advisor, log)
	recommendHandler := recommend.NewHandler(recommendService)

	exportService := export.NewService(patriarchRepo, log)
	exportHandler := export.NewHandler(exportService)

	// ── 9. HTTP Server ────────────────────────────────────────────────────
	handlers := api.Handlers{
		Liveness:  liveness,
		Readiness: readiness,
		Auth:      authHandler,
		Patriarch: patriarchHandler,
		Recommend: recommendHandler,
		Insight:   insightHandler,
		Export:    exportHandler,
	}

	serverCtx, serverCancel := context.WithCancel(context.Background())
	defer serverCancel()

	server := api.NewServer(serverCtx, cfg, log, jwtSvc, handlers)

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
