package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	_ "embed"

	"github.com/stylehub/storefront/internal/domain"
)

// Fetcher is the slice of the HTTP client surface the fixture loader needs.
// Both httpclient.Client and httpclient.BreakerClient satisfy it.
type Fetcher interface {
	Get(ctx context.Context, url string) (*http.Response, error)
}

//go:embed products.json
var fixtureData []byte

// LoadEmbedded decodes the product fixture compiled into the binary.
func LoadEmbedded() ([]domain.Product, error) {
	var products []domain.Product
	if err := json.Unmarshal(fixtureData, &products); err != nil {
		return nil, fmt.Errorf("decode embedded product fixture: %w", err)
	}
	return products, nil
}

// LoadRemote fetches a product fixture from the given URL. The client retries
// transient failures; a non-200 response or undecodable body is an error the
// caller surfaces directly (there is no silent fallback once a remote fixture
// is configured).
func LoadRemote(ctx context.Context, client Fetcher, url string) ([]domain.Product, error) {
	resp, err := client.Get(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("fetch product fixture: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch product fixture: unexpected status %d from %s", resp.StatusCode, url)
	}

	var products []domain.Product
	if err := json.NewDecoder(resp.Body).Decode(&products); err != nil {
		return nil, fmt.Errorf("decode product fixture: %w", err)
	}
	return products, nil
}
