// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Command api is the entry point for the catalog admin HTTP API server.
//
// # Startup Sequence
//
//  1. Initialize structured logger.
//  2. Load configuration from environment variables.
//  3. Open the storage driver (PostgreSQL with migrations, or in-memory).
//  4. Connect to Redis when configured.
//  5. Wire HTTP handlers.
//  6. Start HTTP server with graceful shutdown.
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

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/taibuivan/catalog/data"
	"github.com/taibuivan/catalog/internal/api"
	"github.com/taibuivan/catalog/internal/core/contact"
	"github.com/taibuivan/catalog/internal/core/content"
	"github.com/taibuivan/catalog/internal/core/tag"
	"github.com/taibuivan/catalog/internal/core/upload"
	"github.com/taibuivan/catalog/internal/platform/config"
	"github.com/taibuivan/catalog/internal/platform/constants"
	"github.com/taibuivan/catalog/internal/platform/metrics"
	"github.com/taibuivan/catalog/internal/platform/migration"
	pgstore "github.com/taibuivan/catalog/internal/platform/postgres"
	redisstore "github.com/taibuivan/catalog/internal/platform/redis"
	"github.com/taibuivan/catalog/internal/platform/sec"
)

// repositories bundles the persistence layer chosen by STORAGE_DRIVER.
type repositories struct {
	tags     tag.Repository
	content  content.Repository
	contacts contact.Repository
}

func main() {
	// ── 1. Logger ──────────────────────────────────────────────────────────
	// Initialize first so that subsequent startup errors are structured JSON.
	rawLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	// Add global context to all log entries.
	log := rawLog.With(slog.String("app", constants.AppName))
	slog.SetDefault(log)

	log.Info("service_initializing", slog.String("version", constants.AppVersion))

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
		slog.String("storage_driver", cfg.StorageDriver),
	)

	// Root context for startup. Use a 30s deadline so misconfiguration is
	// caught quickly rather than hanging indefinitely.
	startupCtx, startupCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer startupCancel()

	var healthDeps api.HealthDependencies

	// ── 3. Storage ────────────────────────────────────────────────────────
	var repos repositories
	switch cfg.StorageDriver {
	case config.DriverPostgres:
		pool, err := pgstore.NewPool(startupCtx, cfg.DatabaseURL, log)
		must(log, err, "connect to postgres")
		defer func() {
			log.Info("closing postgres pool")
			pool.Close()
		}()

		must(log, migration.RunUp(cfg.DatabaseURL, data.Migrations, log), "run migrations")

		repos = postgresRepositories(pool)
		healthDeps.CheckDatabase = func(ctx context.Context) error {
			return pgstore.Ping(ctx, pool)
		}

	case config.DriverMemory:
		log.Warn("memory_storage_enabled", slog.String("detail", "data is lost on restart"))
		repos = repositories{
			tags:     tag.NewMemoryRepository(),
			content:  content.NewMemoryRepository(),
			contacts: contact.NewMemoryRepository(),
		}
	}

	// ── 4. Redis ──────────────────────────────────────────────────────────
	if cfg.RedisURL != "" {
		rdb, err := redisstore.NewClient(startupCtx, cfg.RedisURL, log)
		must(log, err, "connect to redis")
		defer closeRedis(log, rdb)

		repos.tags = tag.NewCachedRepository(repos.tags, rdb, cfg.TagCacheTTL, log)
		healthDeps.CheckCache = func(ctx context.Context) error {
			return redisstore.Ping(ctx, rdb)
		}
	}

	// ── 5. Auth ───────────────────────────────────────────────────────────
	// The server only verifies; signing lives in cmd/admintoken.
	tokens, err := sec.NewTokenService("", cfg.JWTPubKeyPath, constants.AuthIssuer)
	must(log, err, "initialize jwt service")

	// ── 6. Domain Wiring ──────────────────────────────────────────────────
	registry := metrics.New()

	resolver := tag.NewResolver(repos.tags, log)
	slugs := content.NewAssigner(repos.content, registry.SlugCollisions)

	contentHandlers := make([]*content.Handler, 0, len(content.Kinds()))
	for _, kind := range content.Kinds() {
		manager := content.NewManager(kind, repos.content, resolver, slugs, log)
		contentHandlers = append(contentHandlers, content.NewHandler(manager))
	}

	storage, err := upload.NewDiskStorage(cfg.UploadDir)
	must(log, err, "prepare upload directory")
	pipeline := upload.NewPipeline(storage, upload.Config{
		Dir:          cfg.UploadDir,
		PublicPrefix: cfg.UploadPublicPrefix,
		Quality:      cfg.ImageQuality,
	}, registry.Uploads, log)

	liveness, readiness := api.NewHealthHandlers(healthDeps, log)

	// ── 7. HTTP Server ────────────────────────────────────────────────────
	handlers := api.Handlers{
		Liveness:  liveness,
		Readiness: readiness,
		Content:   contentHandlers,
		Tag:       tag.NewHandler(tag.NewService(repos.tags, log)),
		Upload:    upload.NewHandler(pipeline, cfg.UploadMaxBytes),
		Contact:   contact.NewHandler(contact.NewService(repos.contacts, log)),
		Metrics:   registry.Handler(),
	}

	serverCtx, serverCancel := context.WithCancel(context.Background())
	defer serverCancel()

	server := api.NewServer(serverCtx, cfg, log, tokens, handlers)

	// ── 8. Graceful Shutdown ──────────────────────────────────────────────
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

func postgresRepositories(pool *pgxpool.Pool) repositories {
	return repositories{
		tags:     tag.NewPostgresRepository(pool),
		content:  content.NewPostgresRepository(pool),
		contacts: contact.NewPostgresRepository(pool),
	}
}

func closeRedis(log *slog.Logger, client *redis.Client) {
	log.Info("closing redis client")
	if err := client.Close(); err != nil {
		log.Error("redis close error", slog.Any("error", err))
	}
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
