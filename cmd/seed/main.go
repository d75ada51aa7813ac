// Package main is the seed command: it applies migrations and inserts the
// sample dinos. Running it twice inserts them twice.
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/pkordes/dinos/internal/config"
	"github.com/pkordes/dinos/internal/database"
	"github.com/pkordes/dinos/internal/repo"
	"github.com/pkordes/dinos/internal/seed"
	"github.com/pkordes/dinos/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("configuration error", "error", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	if cfg.StoreDriver == config.StoreMemory {
		slog.Error("seeding the in-memory store has no lasting effect; set STORE_DRIVER=postgres")
		os.Exit(1)
	}

	ctx := context.Background()

	pool, err := database.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	if _, err := database.Migrate(ctx, pool); err != nil {
		slog.Error("failed to run migrations", "error", err)
		pool.Close()
		os.Exit(1)
	}

	svc := service.NewDinoService(repo.NewDinoRepo(pool))

	created, err := seed.Load(ctx, svc)
	if err != nil {
		slog.Error("seed failed", "error", err, "created", len(created))
		pool.Close()
		os.Exit(1)
	}

	total, err := svc.Count(ctx)
	if err != nil {
		slog.Error("failed to count dinos", "error", err)
		pool.Close()
		os.Exit(1)
	}
	slog.Info("seed complete", "created", len(created), "total", total)
}
