package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/CameronXie/storefront/internal/catalog/filestore"
	"github.com/CameronXie/storefront/internal/config"
	"github.com/CameronXie/storefront/internal/repository/sqlstore"
	"github.com/CameronXie/storefront/internal/version"
)

func main() {
	down := flag.Bool("down", false, "revert the latest schema migration instead of seeding")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("config_load_failed", "error", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel})).With(
		slog.String("version", version.Version),
	)
	logger.Info("seed_starting", "catalog_path", cfg.CatalogPath, "db_driver", cfg.Database.Driver, "down", *down)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, *down, logger); err != nil {
		logger.Error("seed_failed", "error", err)
		os.Exit(1)
	}

	logger.Info("seed_completed")
}

func run(ctx context.Context, cfg *config.Config, down bool, logger *slog.Logger) error {
	store, err := sqlstore.OpenFromConfig(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("db_init: %w", err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			logger.Error("db_close_failed", "error", err)
		}
	}()

	if down {
		if err := store.Rollback(ctx); err != nil {
			return fmt.Errorf("db_rollback: %w", err)
		}
		logger.Info("db_rolled_back")
		return nil
	}

	c, err := filestore.New(cfg.CatalogPath).Load(ctx)
	if err != nil {
		return fmt.Errorf("load_catalog: %w", err)
	}

	if err := c.Validate(); err != nil {
		return fmt.Errorf("validate_catalog: %w", err)
	}

	if err := store.Migrate(ctx); err != nil {
		return fmt.Errorf("db_migrate: %w", err)
	}

	return sqlstore.NewSeeder(store, logger).Seed(ctx, c)
}
