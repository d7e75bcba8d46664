package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/CameronXie/storefront/internal/api/graphql"
	"github.com/CameronXie/storefront/internal/api/rest"
	"github.com/CameronXie/storefront/internal/api/rest/middlewares"
	"github.com/CameronXie/storefront/internal/config"
	"github.com/CameronXie/storefront/internal/messaging"
	"github.com/CameronXie/storefront/internal/messaging/kafka"
	"github.com/CameronXie/storefront/internal/repository/sqlstore"
	"github.com/CameronXie/storefront/internal/service"
	"github.com/CameronXie/storefront/internal/version"
)

const (
	ReadHeaderTimeout = 5 * time.Second
	ReadTimeout       = 10 * time.Second
	WriteTimeout      = 20 * time.Second
	IdleTimeout       = 60 * time.Second
	RequestTimeout    = 15 * time.Second
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("config_load_failed", "error", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel})).With(
		slog.String("version", version.Version),
	)
	logger.Info("api_starting", "db_driver", cfg.Database.Driver, "sqlite_build", sqlstore.BuildMode)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("api_failed", "error", err)
		os.Exit(1)
	}

	logger.Info("api_stopped")
}

func run(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	store, err := sqlstore.OpenFromConfig(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("db_init: %w", err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			logger.Error("db_close_failed", "error", err)
		}
	}()

	if cfg.Database.Migrate {
		if err := store.Migrate(ctx); err != nil {
			return fmt.Errorf("db_migrate: %w", err)
		}
		logger.Info("db_migrated")
	}

	publisher, closePublisher := newPublisher(cfg.Kafka, logger)
	defer closePublisher()

	priceService := service.NewPriceService(sqlstore.NewPriceRepository(store), logger)
	resolver := graphql.NewResolver(graphql.Services{
		Products:   service.NewProductService(sqlstore.NewProductRepository(store), logger),
		Attributes: service.NewAttributeService(sqlstore.NewAttributeRepository(store), logger),
		Prices:     priceService,
		Categories: service.NewCategoryService(sqlstore.NewCategoryRepository(store), logger),
		Orders: service.NewOrderService(
			sqlstore.NewOrderRepository(store),
			priceService,
			logger,
			service.WithPublisher(publisher, cfg.Kafka.Topic),
			service.WithPricingConcurrency(cfg.PricingConcurrency),
		),
	}, logger)

	schema, err := graphql.NewSchema(resolver)
	if err != nil {
		return err
	}

	router := rest.NewRouterWithHandlers(&rest.RouterConfig{
		GraphQLHandler: graphql.NewHandler(schema, logger),
		Middlewares: []middlewares.Middleware{
			middlewares.NewRequestLoggerMiddleware(logger),
			middlewares.NewCORSMiddleware(cfg.AllowedDomains, logger),
		},
		RequestTimeout: RequestTimeout,
	})

	server := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: ReadHeaderTimeout,
		ReadTimeout:       ReadTimeout,
		WriteTimeout:      WriteTimeout,
		IdleTimeout:       IdleTimeout,
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("api_listening", "addr", server.Addr)
		serveErr <- server.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("api_serve: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("api_shutting_down", "timeout", cfg.ShutdownTimeout.String())
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("api_shutdown: %w", err)
	}

	return nil
}

// newPublisher returns a Kafka publisher when brokers are configured and a no-op publisher otherwise.
func newPublisher(cfg config.Kafka, logger *slog.Logger) (messaging.Publisher, func()) {
	if len(cfg.Brokers) == 0 {
		logger.Info("order_events_disabled")
		return messaging.NewNoopPublisher(), func() {}
	}

	publisher := kafka.NewPublisher(cfg.Brokers)
	logger.Info("order_events_enabled", "brokers", cfg.Brokers, "topic", cfg.Topic)

	return publisher, func() {
		if err := publisher.Close(); err != nil {
			logger.Error("kafka_close_failed", "error", err)
		}
	}
}
