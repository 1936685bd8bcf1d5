package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/fr0stylo/chaindex/internal/adapters/redis"
	"github.com/fr0stylo/chaindex/internal/adapters/sqlite"
	"github.com/fr0stylo/chaindex/internal/app/ports"
	"github.com/fr0stylo/chaindex/internal/app/services"
	"github.com/fr0stylo/chaindex/internal/config"
	"github.com/fr0stylo/chaindex/internal/observability"
	"github.com/fr0stylo/chaindex/internal/server"
	"github.com/fr0stylo/chaindex/internal/server/routes"
)

func main() {
	log := slog.New(observability.WrapSlogHandler(
		slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})))
	slog.SetDefault(log)

	if err := godotenv.Load(); err != nil {
		slog.Debug("No .env file loaded", "error", err)
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	storage, closeStorage, err := openStorage(ctx, cfg, cfg.Storage.ServerPoolSize)
	if err != nil {
		slog.Error("Failed to open storage", "backend", cfg.Storage.Backend, "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := closeStorage(); err != nil {
			slog.Error("Failed to close storage", "error", err)
		}
	}()

	srv := server.New(log)
	srv.RegisterRouter(routes.NewEventRoutes(services.NewQuery(storage), log))

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	slog.Info("Starting server", "port", cfg.Server.Port, "storage", cfg.Storage.Backend)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start(addr)
	}()

	select {
	case err := <-errCh:
		slog.Error("Closing server", "error", err)
		os.Exit(1)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("Shutdown failed", "error", err)
			os.Exit(1)
		}
		slog.Info("Server stopped")
	}
}

func openStorage(ctx context.Context, cfg config.Config, poolSize int) (ports.Storage, func() error, error) {
	switch cfg.Storage.Backend {
	case config.StorageSQLite:
		store, err := sqlite.Open(cfg.Storage.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		return store, store.Close, nil
	default:
		store, err := redis.Open(ctx, cfg.Storage.RedisURL, poolSize)
		if err != nil {
			return nil, nil, err
		}
		return store, store.Close, nil
	}
}
