package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/opsgrade/obs-scorecard/internal/api"
	"github.com/opsgrade/obs-scorecard/internal/cache"
	"github.com/opsgrade/obs-scorecard/internal/catalog"
	"github.com/opsgrade/obs-scorecard/internal/config"
	"github.com/opsgrade/obs-scorecard/internal/refresh"
	"github.com/opsgrade/obs-scorecard/internal/scorecard"
	"github.com/opsgrade/obs-scorecard/internal/storage"
)

func main() {
	// Setup structured logging
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	slog.Info("starting obs-scorecard",
		"host", cfg.Server.Host,
		"port", cfg.Server.Port,
		"snapshot", cfg.Snapshot.Name,
	)

	// Create context for initialization
	initCtx, initCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer initCancel()

	// Run database migrations
	slog.Info("running database migrations", "dir", cfg.Database.MigrationsDir)
	if err := storage.MigrateFromDSN(initCtx, cfg.Database.DSN, cfg.Database.MigrationsDir); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	// Initialize database repository
	repo, err := storage.NewPostgresRepository(initCtx, storage.PostgresConfig{
		DSN:          cfg.Database.DSN,
		MaxOpenConns: int32(cfg.Database.MaxOpenConns),
		MaxIdleConns: int32(cfg.Database.MaxIdleConns),
	})
	if err != nil {
		slog.Error("failed to create database repository", "error", err)
		os.Exit(1)
	}
	slog.Info("database connected successfully")

	// Initialize score cache
	scores, err := cache.NewScoreCache(cfg.Redis.Address, cfg.Redis.Password, cfg.Redis.DB, cfg.Redis.TTL)
	if err != nil {
		slog.Error("failed to create score cache", "error", err)
		os.Exit(1)
	}

	// Load seed tool catalog
	seedCatalog := catalog.NewLoader()
	if err := seedCatalog.LoadFromDir(cfg.Catalog.Dir); err != nil {
		slog.Warn("failed to load seed catalog", "dir", cfg.Catalog.Dir, "error", err)
	}

	// Initialize scorecard service
	service := scorecard.NewService(cfg.Snapshot.Name, repo, scores, seedCatalog)

	// Initialize refresh worker
	refresher := refresh.NewRefresher(service, cfg.Refresh.Interval)

	// Create context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Start refresh worker
	refresher.Start(ctx)

	// Setup HTTP server
	server := api.NewServer(cfg.Server, service, repo)
	httpServer := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      server.Router(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		slog.Info("HTTP server starting", "addr", httpServer.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("HTTP server error", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down gracefully...")

	// Cancel context to stop background workers
	cancel()

	// Shutdown HTTP server with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("HTTP server shutdown error", "error", err)
	}

	// Close collaborators
	if err := scores.Close(); err != nil {
		slog.Error("score cache close error", "error", err)
	}
	if err := repo.Close(); err != nil {
		slog.Error("repository close error", "error", err)
	}

	slog.Info("obs-scorecard stopped")
}
