// Package main is the entry point for the DevInsights blog API server.
// It loads configuration, connects to services, sets up routing, and starts
// the HTTP server with graceful shutdown support.
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"devinsights/internal/auth"
	"devinsights/internal/benchmark"
	"devinsights/internal/cache"
	"devinsights/internal/config"
	"devinsights/internal/database"
	"devinsights/internal/handlers"
	"devinsights/internal/router"
	"devinsights/internal/store"
)

func main() {
	// Structured logger — text output, debug level so token verification
	// failures are visible during development.
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
	slog.SetDefault(logger)

	// Load a .env file if one exists; real environments set variables
	// directly.
	if err := godotenv.Load(); err == nil {
		slog.Debug("loaded environment from .env")
	}

	// Load configuration from environment variables.
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	slog.Info("configuration loaded",
		"env", cfg.Env,
		"addr", cfg.Addr(),
		"keycloak_url", cfg.KeycloakURL,
		"keycloak_realm", cfg.KeycloakRealm,
		"frontend_url", cfg.FrontendURL,
	)

	// Connect to PostgreSQL.
	db, err := database.Connect(cfg.DSN())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	// Run pending migrations.
	if err := database.Migrate(db); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	// Seed sample content (upsert by slug — safe to re-run).
	if cfg.IsDev() {
		if err := database.Seed(db); err != nil {
			slog.Error("failed to seed database", "error", err)
			os.Exit(1)
		}
	}

	// Connect to Valkey. Optional — the API serves every request straight
	// from PostgreSQL when the cache is unavailable.
	var respCache *cache.ResponseCache
	valkeyClient, err := cache.ConnectValkey(cfg.ValkeyHost, cfg.ValkeyPort, cfg.ValkeyPassword)
	if err != nil {
		slog.Warn("valkey unavailable, response caching disabled", "error", err)
	} else {
		defer valkeyClient.Close()
		respCache = cache.NewResponseCache(valkeyClient, cache.DefaultResponseTTL)
	}

	// Token verification against the Keycloak realm's JWKS endpoint.
	keys := auth.NewKeySet(cfg.JWKSURI())
	verifier := auth.NewVerifier(keys, cfg.Issuers())

	// Initialize data stores.
	categoryStore := store.NewCategoryStore(db)
	postStore := store.NewPostStore(db)
	commentStore := store.NewCommentStore(db)

	// Create handler groups with their dependencies.
	h := router.Handlers{
		System:     handlers.NewSystem(db, cfg),
		Blog:       handlers.NewBlog(categoryStore, postStore, respCache),
		Comments:   handlers.NewComments(commentStore),
		Admin:      handlers.NewAdmin(commentStore, respCache),
		Benchmarks: handlers.NewBenchmarks(benchmark.NewInstance(), postStore),
	}

	// Set up the Chi router with all middleware and routes.
	r := router.New(cfg, verifier, h)

	// Create the HTTP server with sensible timeouts. WriteTimeout must
	// accommodate the benchmark endpoints, which run for many seconds on
	// heavy parameters.
	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Start the server in a goroutine so we can listen for shutdown signals.
	go func() {
		slog.Info("server starting", "addr", cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown: wait for SIGINT or SIGTERM, then drain connections.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	slog.Info("shutdown signal received", "signal", sig)

	// Give active requests up to 30 seconds to complete.
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped gracefully")
}
