package catalog

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// Refresher periodically reloads the product fixture from a remote URL and
// swaps it into the source. The catalog keeps serving the last good product
// set when a refresh fails, so a flaky fixture host degrades freshness, not
// availability.
type Refresher struct {
	source   *Source
	client   Fetcher
	url      string
	interval time.Duration
	logger   *slog.Logger

	mu      sync.Mutex
	lastErr error
}

// NewRefresher builds a refresher over source. The client is expected to be
// breaker-wrapped so a dead fixture host is not hammered every interval.
func NewRefresher(source *Source, client Fetcher, url string, interval time.Duration, logger *slog.Logger) *Refresher {
	return &Refresher{
		source:   source,
		client:   client,
		url:      url,
		interval: interval,
		logger:   logger,
	}
}

// Run refreshes the catalog every interval until ctx is canceled.
func (r *Refresher) Run(ctx context.Context) {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.refresh(ctx)
		}
	}
}

func (r *Refresher) refresh(ctx context.Context) {
	products, err := LoadRemote(ctx, r.client, r.url)

	r.mu.Lock()
	r.lastErr = err
	r.mu.Unlock()

	if err != nil {
		r.logger.WarnContext(ctx, "catalog refresh failed, keeping current product set",
			slog.String("url", r.url),
			slog.String("error", err.Error()),
		)
		return
	}

	r.source.Replace(products)
	r.logger.InfoContext(ctx, "catalog refreshed",
		slog.String("url", r.url),
		slog.Int("products", len(products)),
	)
}

// Err returns the error from the most recent refresh attempt, or nil if it
// succeeded. Used as a health check.
func (r *Refresher) Err() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.lastErr
}
