package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/stylehub/storefront/pkg/health"
	"github.com/stylehub/storefront/pkg/middleware"

	"github.com/stylehub/storefront/internal/service"
)

// RouterConfig holds the knobs the router needs beyond its handlers.
type RouterConfig struct {
	PprofCIDRs     []string
	RateLimitRPS   int
	RateLimitBurst int
	// CatalogMaxAge is the Cache-Control max-age in seconds for product
	// listing responses.
	CatalogMaxAge int
}

// NewRouter creates a chi router with all storefront routes registered.
func NewRouter(
	cartService *service.CartService,
	wishlistService *service.WishlistService,
	catalogService *service.CatalogService,
	healthHandler *health.Handler,
	logger *slog.Logger,
	cfg RouterConfig,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Recovery(logger))
	r.Use(chimw.Compress(5))
	r.Use(chimw.Timeout(30 * time.Second))
	r.Use(middleware.RequestLogging(logger))
	r.Use(middleware.PrometheusMetrics("storefront"))
	r.Use(middleware.Tracing("storefront"))
	r.Use(middleware.RequestLogger(logger))
	r.Use(middleware.CORS(middleware.DefaultCORSConfig()))
	if cfg.RateLimitRPS > 0 {
		r.Use(middleware.RateLimit(cfg.RateLimitRPS, cfg.RateLimitBurst, logger))
	}

	// Health check endpoints
	r.Get("/health/live", healthHandler.LivenessHandler())
	r.Get("/health/ready", healthHandler.ReadinessHandler())
	r.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
		promhttp.Handler().ServeHTTP(w, r)
	})

	// Pprof debug endpoints with IP allowlist.
	middleware.RegisterPprof(r, cfg.PprofCIDRs, logger)

	cartHandler := NewCartHandler(cartService, logger)
	wishlistHandler := NewWishlistHandler(wishlistService, logger)
	productHandler := NewProductHandler(catalogService, logger)

	r.Route("/api/v1/cart", func(r chi.Router) {
		r.Use(ContentTypeJSON)
		r.Use(UserIDFromHeader)

		r.Get("/", cartHandler.GetCart)
		r.Delete("/", cartHandler.ClearCart)
		r.Post("/checkout", cartHandler.Checkout)

		r.Post("/items", cartHandler.AddItem)
		r.Put("/items/{productId}", cartHandler.UpdateQuantity)
		r.Delete("/items/{productId}", cartHandler.RemoveProduct)
	})

	r.Route("/api/v1/wishlist", func(r chi.Router) {
		r.Use(ContentTypeJSON)
		r.Use(UserIDFromHeader)

		r.Get("/", wishlistHandler.GetWishlist)
		r.Delete("/", wishlistHandler.ClearWishlist)
		r.Post("/toggle", wishlistHandler.Toggle)

		r.Post("/items", wishlistHandler.AddItem)
		r.Get("/items/{productId}", wishlistHandler.Contains)
		r.Delete("/items/{productId}", wishlistHandler.RemoveItem)
	})

	// Catalog endpoints are public and cacheable.
	r.Route("/api/v1/products", func(r chi.Router) {
		if cfg.CatalogMaxAge > 0 {
			r.Use(middleware.CacheControl(cfg.CatalogMaxAge))
		}

		r.Get("/", productHandler.ListProducts)
		r.Get("/featured", productHandler.GetFeatured)
		r.Get("/sale", productHandler.GetSaleItems)
		r.Get("/search", productHandler.SearchProducts)
		r.Get("/filters", productHandler.GetFilterOptions)
		r.Get("/{id}", productHandler.GetProduct)
	})

	return r
}
