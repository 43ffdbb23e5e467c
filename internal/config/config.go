package config

import (
	"fmt"
	"time"

	pkgconfig "github.com/stylehub/storefront/pkg/config"
)

// Config holds all configuration for the storefront service.
type Config struct {
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`

	// HTTP server
	HTTPPort int `env:"STOREFRONT_HTTP_PORT" envDefault:"8010"`

	// Redis
	RedisAddr string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPass string `env:"REDIS_PASSWORD" envDefault:""`
	RedisDB   int    `env:"REDIS_DB" envDefault:"0"`

	// Persistence TTLs in hours. Carts expire after a week of inactivity;
	// wishlists are long-lived.
	CartTTL     int `env:"CART_TTL_HOURS" envDefault:"168"`
	WishlistTTL int `env:"WISHLIST_TTL_HOURS" envDefault:"2160"`

	// Kafka
	KafkaBrokers []string `env:"KAFKA_BROKERS" envDefault:"localhost:9092" envSeparator:","`

	// Catalog source. When CATALOG_URL is set the product fixture is
	// fetched from it at startup; otherwise the embedded fixture is used.
	CatalogURL string `env:"CATALOG_URL" envDefault:""`

	// Catalog refresh interval in minutes. Zero disables periodic refresh;
	// only meaningful when CATALOG_URL is set.
	CatalogRefresh int `env:"CATALOG_REFRESH_MINUTES" envDefault:"0"`

	// Cache-Control max-age in seconds for product listing responses.
	CatalogMaxAge int `env:"CATALOG_CACHE_MAX_AGE" envDefault:"300"`

	// Rate limiting (per client IP). Zero disables it.
	RateLimitRPS   int `env:"RATE_LIMIT_RPS" envDefault:"50"`
	RateLimitBurst int `env:"RATE_LIMIT_BURST" envDefault:"100"`

	// Pprof debug endpoints are restricted to these CIDRs.
	PprofCIDRs []string `env:"PPROF_ALLOWED_CIDRS" envDefault:"127.0.0.1/32" envSeparator:","`

	// Tracing
	OTELEnabled  bool    `env:"OTEL_ENABLED" envDefault:"false"`
	OTLPEndpoint string  `env:"OTEL_EXPORTER_OTLP_ENDPOINT" envDefault:"localhost:4318"`
	TraceRatio   float64 `env:"OTEL_TRACE_SAMPLER_RATIO" envDefault:"1.0"`
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := pkgconfig.Load(cfg); err != nil {
		return nil, fmt.Errorf("load storefront config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// validate checks configuration invariants.
func (c *Config) validate() error {
	if c.HTTPPort < 1 || c.HTTPPort > 65535 {
		return fmt.Errorf("invalid HTTP port: %d", c.HTTPPort)
	}
	if c.CartTTL < 1 {
		return fmt.Errorf("cart TTL must be at least 1 hour, got %d", c.CartTTL)
	}
	if c.WishlistTTL < 1 {
		return fmt.Errorf("wishlist TTL must be at least 1 hour, got %d", c.WishlistTTL)
	}
	if c.CatalogRefresh < 0 {
		return fmt.Errorf("catalog refresh interval must not be negative, got %d", c.CatalogRefresh)
	}
	if c.CatalogRefresh > 0 && c.CatalogURL == "" {
		return fmt.Errorf("catalog refresh requires CATALOG_URL to be set")
	}
	if c.TraceRatio < 0 || c.TraceRatio > 1 {
		return fmt.Errorf("trace sampler ratio must be in [0,1], got %f", c.TraceRatio)
	}
	return nil
}

// CartTTLDuration returns the cart TTL as a time.Duration.
func (c *Config) CartTTLDuration() time.Duration {
	return time.Duration(c.CartTTL) * time.Hour
}

// WishlistTTLDuration returns the wishlist TTL as a time.Duration.
func (c *Config) WishlistTTLDuration() time.Duration {
	return time.Duration(c.WishlistTTL) * time.Hour
}

// CatalogRefreshDuration returns the catalog refresh interval as a
// time.Duration. Zero means periodic refresh is disabled.
func (c *Config) CatalogRefreshDuration() time.Duration {
	return time.Duration(c.CatalogRefresh) * time.Minute
}
