// Copyright (c) 2026 Ripple. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Command api is the entry point for the Ripple HTTP API server.
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

	"github.com/taibuivan/ripple/internal/api"
	"github.com/taibuivan/ripple/internal/audit"
	"github.com/taibuivan/ripple/internal/platform/config"
	"github.com/taibuivan/ripple/internal/platform/constants"
	"github.com/taibuivan/ripple/internal/platform/dropbox"
	"github.com/taibuivan/ripple/internal/platform/googleauth"
	"github.com/taibuivan/ripple/internal/platform/imgur"
	"github.com/taibuivan/ripple/internal/platform/mail"
	"github.com/taibuivan/ripple/internal/platform/migration"
	pgstore "github.com/taibuivan/ripple/internal/platform/postgres"
	redisstore "github.com/taibuivan/ripple/internal/platform/redis"
	"github.com/taibuivan/ripple/internal/platform/sec"
	"github.com/taibuivan/ripple/internal/social/authz"
	"github.com/taibuivan/ripple/internal/social/category"
	"github.com/taibuivan/ripple/internal/social/comment"
	"github.com/taibuivan/ripple/internal/social/follow"
	"github.com/taibuivan/ripple/internal/social/like"
	"github.com/taibuivan/ripple/internal/social/post"
	"github.com/taibuivan/ripple/internal/stats"
	"github.com/taibuivan/ripple/internal/users/account"
	"github.com/taibuivan/ripple/internal/users/auth"
)

func main() {
	// ── 1. Logger ──────────────────────────────────────────────────────────
	// Initialize first so that subsequent startup errors are structured JSON.
	rawLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	// Add global context to all log entries.
	log := rawLog.With(slog.String("app", "ripple"))
	slog.SetDefault(log)

	log.Info("[Ripple] service_initializing")

	// ── 2. Configuration ──────────────────────────────────────────────────
	cfg, err := config.Load()
	must(log, err, "load configuration")

	if cfg.Debug {
		debugLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
		log = debugLog.With(slog.String("app", "ripple"))
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

	// ── 6. Platform Collaborators ─────────────────────────────────────────
	jwtService := sec.NewTokenService(cfg.JWTSecret, constants.AuthIssuer)
	mailer := mail.New(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass,
		cfg.SMTPSender, cfg.PublicBaseURL, cfg.FrontendURL, log)
	identity := googleauth.New(cfg.GoogleClientID, cfg.GoogleClientSecret, cfg.GoogleRedirectURL)
	images := imgur.New(cfg.ImgurClientURL, cfg.ImgurClientID)
	documents := dropbox.New(cfg.DropboxAPIURL, cfg.DropboxContentURL, cfg.DropboxToken)

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
	// Cross-cutting: the user-action trail and the ownership guard.
	auditRepository := audit.NewRepository(pool)
	trail := audit.NewLogger(auditRepository, log)
	guard := authz.NewGuard(authz.NewOwnerStore(pool))

	userRepository := auth.NewUserRepository(pool)
	roleRepository := auth.NewRoleRepository(pool)
	authService := auth.NewService(userRepository, roleRepository, jwtService, mailer, identity)

	postRepository := post.NewRepository(pool)
	postService := post.NewService(postRepository, images, guard, trail)

	accountRepository := account.NewRepository(pool)
	accountService := account.NewService(accountRepository, postRepository, roleRepository, images, trail)

	commentService := comment.NewService(comment.NewRepository(pool), guard, trail)
	likeService := like.NewService(like.NewRepository(pool), guard, trail)
	followService := follow.NewService(follow.NewRepository(pool), trail)
	categoryService := category.NewService(category.NewRepository(pool), guard, trail)
	statsService := stats.NewService(auditRepository, stats.NewRedisCache(rdb), documents)

	// ── 9. HTTP Server ────────────────────────────────────────────────────
	handlers := api.Handlers{
		Liveness:  liveness,
		Readiness: readiness,
		Auth:      auth.NewHandler(authService),
		Account:   account.NewHandler(accountService),
		Post:      post.NewHandler(postService),
		Comment:   comment.NewHandler(commentService),
		Like:      like.NewHandler(likeService),
		Follow:    follow.NewHandler(followService),
		Category:  category.NewHandler(categoryService),
		Stats:     stats.NewHandler(statsService),
		Audit:     audit.NewHandler(auditRepository),
	}

	serverCtx, serverCancel := context.WithCancel(context.Background())
	defer serverCancel()

	server := api.NewServer(serverCtx, cfg, log, jwtService, handlers)

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
