package catalog

import (
	"context"
	"sort"
	"strconv"
	"strings"
	"sync"

	apperrors "github.com/stylehub/storefront/pkg/errors"
	"github.com/stylehub/storefront/pkg/slug"

	"github.com/stylehub/storefront/internal/domain"
)

// featuredMinRating is the minimum rating for a product to count as featured.
const featuredMinRating = 4.5

// featuredLimit caps the number of products returned by GetFeatured.
const featuredLimit = 8

// Source is an in-memory product catalog backed by a JSON fixture. Products
// keep their fixture order, which is the "popularity" order for listings.
// Thread-safe via sync.RWMutex; Replace swaps the product set atomically.
type Source struct {
	mu       sync.RWMutex
	products []domain.Product
}

// NewSource creates a catalog source over the given products. Products
// without a slug get one derived from their title.
func NewSource(products []domain.Product) *Source {
	s := &Source{}
	s.Replace(products)
	return s
}

// Replace swaps the full product set.
func (s *Source) Replace(products []domain.Product) {
	normalized := make([]domain.Product, len(products))
	copy(normalized, products)
	for i := range normalized {
		if normalized[i].Slug == "" {
			normalized[i].Slug = slug.Generate(normalized[i].Title)
		}
	}

	s.mu.Lock()
	s.products = normalized
	s.mu.Unlock()
}

// Len returns the number of products in the catalog.
func (s *Source) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.products)
}

// GetAll returns a copy of the full product list in catalog order.
func (s *Source) GetAll(_ context.Context) ([]domain.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Product, len(s.products))
	copy(out, s.products)
	return out, nil
}

// GetByID returns the product with the given numeric ID.
func (s *Source) GetByID(_ context.Context, id int) (*domain.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for i := range s.products {
		if s.products[i].ID == id {
			p := s.products[i]
			return &p, nil
		}
	}
	return nil, apperrors.NotFound("product", strconv.Itoa(id))
}

// GetByCategory returns all products in the given category,
// case-insensitively.
func (s *Source) GetByCategory(_ context.Context, category string) ([]domain.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Product, 0)
	for _, p := range s.products {
		if strings.EqualFold(p.Category, category) {
			out = append(out, p)
		}
	}
	return out, nil
}

// GetFeatured returns high-rated products (rating >= 4.5), capped at 8,
// in catalog order.
func (s *Source) GetFeatured(_ context.Context) ([]domain.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Product, 0, featuredLimit)
	for _, p := range s.products {
		if p.Rating >= featuredMinRating {
			out = append(out, p)
			if len(out) == featuredLimit {
				break
			}
		}
	}
	return out, nil
}

// GetSaleItems returns all discounted products.
func (s *Source) GetSaleItems(_ context.Context) ([]domain.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Product, 0)
	for _, p := range s.products {
		if p.Discount > 0 {
			out = append(out, p)
		}
	}
	return out, nil
}

// Search returns products whose title, brand, category, subcategory,
// description, or tags contain the query as a case-insensitive substring.
func (s *Source) Search(_ context.Context, query string) ([]domain.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	term := strings.ToLower(strings.TrimSpace(query))
	out := make([]domain.Product, 0)
	if term == "" {
		return out, nil
	}

	for _, p := range s.products {
		if searchMatch(p, term) {
			out = append(out, p)
		}
	}
	return out, nil
}

// FilterOptions returns the distinct facet values across the catalog, each
// sorted alphabetically.
func (s *Source) FilterOptions(_ context.Context) (domain.FilterOptions, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	categories := make(map[string]struct{})
	brands := make(map[string]struct{})
	sizes := make(map[string]struct{})
	colors := make(map[string]struct{})

	for _, p := range s.products {
		if p.Category != "" {
			categories[p.Category] = struct{}{}
		}
		if p.Brand != "" {
			brands[p.Brand] = struct{}{}
		}
		for _, v := range p.Sizes {
			sizes[v] = struct{}{}
		}
		for _, v := range p.Colors {
			colors[v] = struct{}{}
		}
	}

	return domain.FilterOptions{
		Categories: sortedKeys(categories),
		Brands:     sortedKeys(brands),
		Sizes:      sortedKeys(sizes),
		Colors:     sortedKeys(colors),
	}, nil
}

func searchMatch(p domain.Product, term string) bool {
	if strings.Contains(strings.ToLower(p.Title), term) ||
		strings.Contains(strings.ToLower(p.Brand), term) ||
		strings.Contains(strings.ToLower(p.Category), term) ||
		strings.Contains(strings.ToLower(p.Subcategory), term) ||
		strings.Contains(strings.ToLower(p.Description), term) {
		return true
	}
	for _, tag := range p.Tags {
		if strings.Contains(strings.ToLower(tag), term) {
			return true
		}
	}
	return false
}

func sortedKeys(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
