package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"
	kafkago "github.com/segmentio/kafka-go"

	"github.com/stylehub/storefront/pkg/health"
	"github.com/stylehub/storefront/pkg/httpclient"
	pkgkafka "github.com/stylehub/storefront/pkg/kafka"
	"github.com/stylehub/storefront/pkg/tracing"

	"github.com/stylehub/storefront/internal/catalog"
	"github.com/stylehub/storefront/internal/config"
	"github.com/stylehub/storefront/internal/event"
	handler "github.com/stylehub/storefront/internal/handler/http"
	redisrepo "github.com/stylehub/storefront/internal/repository/redis"
	"github.com/stylehub/storefront/internal/service"
)

// App wires together all dependencies and runs the storefront service.
type App struct {
	cfg            *config.Config
	logger         *slog.Logger
	rdb            *redis.Client
	producer       *pkgkafka.Producer
	httpServer     *http.Server
	refresher      *catalog.Refresher
	tracerShutdown func(context.Context) error
}

// NewApp creates a new application instance, initializing all dependencies.
func NewApp(cfg *config.Config, logger *slog.Logger) (*App, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Initialize OpenTelemetry tracing.
	tracerShutdown, err := tracing.InitTracer(ctx, tracing.Config{
		ServiceName:    "storefront",
		ServiceVersion: "0.1.0",
		Environment:    cfg.Environment,
		OTLPEndpoint:   cfg.OTLPEndpoint,
		SampleRate:     cfg.TraceRatio,
		Enabled:        cfg.OTELEnabled,
	})
	if err != nil {
		return nil, fmt.Errorf("init tracer: %w", err)
	}

	// Initialize Redis client.
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPass,
		DB:       cfg.RedisDB,
	})

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("connect to redis: %w", err)
	}
	logger.Info("connected to Redis",
		slog.String("addr", cfg.RedisAddr),
		slog.Int("db", cfg.RedisDB),
	)

	// Initialize Kafka producer.
	kafkaCfg := pkgkafka.DefaultProducerConfig(cfg.KafkaBrokers)
	producer := pkgkafka.NewProducer(kafkaCfg, logger)
	logger.Info("kafka producer initialized", slog.Any("brokers", cfg.KafkaBrokers))

	// Load the product catalog.
	source, refresher, err := loadCatalog(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	// Build the dependency graph.
	cartRepo := redisrepo.NewCartRepository(rdb, cfg.CartTTLDuration())
	wishlistRepo := redisrepo.NewWishlistRepository(rdb, cfg.WishlistTTLDuration())
	eventProducer := event.NewProducer(producer, logger)

	cartService := service.NewCartService(cartRepo, eventProducer, logger)
	wishlistService := service.NewWishlistService(wishlistRepo, eventProducer, logger)
	catalogService := service.NewCatalogService(source, logger)

	// Health checks. Kafka is non-critical: cart and wishlist operations
	// still work when the broker is down, only events are lost.
	healthHandler := health.NewHandler()
	healthHandler.RegisterCritical("redis", func(ctx context.Context) error {
		return rdb.Ping(ctx).Err()
	})
	healthHandler.RegisterCritical("catalog", func(ctx context.Context) error {
		if source.Len() == 0 {
			return fmt.Errorf("catalog is empty")
		}
		return nil
	})
	healthHandler.RegisterNonCritical("kafka", func(ctx context.Context) error {
		conn, err := kafkago.DialContext(ctx, "tcp", cfg.KafkaBrokers[0])
		if err != nil {
			return err
		}
		return conn.Close()
	})
	if refresher != nil {
		healthHandler.RegisterNonCritical("catalog-refresh", func(ctx context.Context) error {
			return refresher.Err()
		})
	}

	// HTTP router.
	router := handler.NewRouter(cartService, wishlistService, catalogService, healthHandler, logger, handler.RouterConfig{
		PprofCIDRs:     cfg.PprofCIDRs,
		RateLimitRPS:   cfg.RateLimitRPS,
		RateLimitBurst: cfg.RateLimitBurst,
		CatalogMaxAge:  cfg.CatalogMaxAge,
	})

	httpServer := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return &App{
		cfg:            cfg,
		logger:         logger,
		rdb:            rdb,
		producer:       producer,
		httpServer:     httpServer,
		refresher:      refresher,
		tracerShutdown: tracerShutdown,
	}, nil
}

// loadCatalog builds the product source, preferring the remote fixture URL
// when configured and falling back to the embedded fixture otherwise. When a
// refresh interval is configured, it also returns a Refresher that keeps the
// catalog in sync with the remote fixture through a breaker-wrapped client.
func loadCatalog(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*catalog.Source, *catalog.Refresher, error) {
	if cfg.CatalogURL == "" {
		products, err := catalog.LoadEmbedded()
		if err != nil {
			return nil, nil, fmt.Errorf("load embedded catalog: %w", err)
		}
		logger.Info("catalog loaded from embedded fixture", slog.Int("products", len(products)))
		return catalog.NewSource(products), nil, nil
	}

	client := httpclient.NewBreakerClient(
		httpclient.New(httpclient.DefaultConfig()),
		httpclient.DefaultBreakerConfig("catalog-fixture"),
		logger,
	)

	products, err := catalog.LoadRemote(ctx, client, cfg.CatalogURL)
	if err != nil {
		return nil, nil, fmt.Errorf("load catalog from %s: %w", cfg.CatalogURL, err)
	}
	logger.Info("catalog loaded from remote fixture",
		slog.String("url", cfg.CatalogURL),
		slog.Int("products", len(products)),
	)

	source := catalog.NewSource(products)
	if cfg.CatalogRefresh == 0 {
		return source, nil, nil
	}
	refresher := catalog.NewRefresher(source, client, cfg.CatalogURL, cfg.CatalogRefreshDuration(), logger)
	return source, refresher, nil
}

// Run starts the HTTP server and blocks until the context is canceled.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	if a.refresher != nil {
		go a.refresher.Run(ctx)
	}

	go func() {
		a.logger.Info("starting HTTP server",
			slog.String("addr", a.httpServer.Addr),
		)
		if err := a.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- fmt.Errorf("http server: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("shutdown signal received")
	case err := <-errCh:
		return err
	}

	return a.Shutdown()
}

// Shutdown gracefully stops all components.
func (a *App) Shutdown() error {
	a.logger.Info("shutting down application...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := a.httpServer.Shutdown(shutdownCtx); err != nil {
		a.logger.Error("http server shutdown error", slog.String("error", err.Error()))
	}

	if err := a.producer.Close(); err != nil {
		a.logger.Error("kafka producer close error", slog.String("error", err.Error()))
	}

	if err := a.rdb.Close(); err != nil {
		a.logger.Error("redis close error", slog.String("error", err.Error()))
	}

	if err := a.tracerShutdown(shutdownCtx); err != nil {
		a.logger.Error("tracer shutdown error", slog.String("error", err.Error()))
	}

	a.logger.Info("application shutdown complete")
	return nil
}
