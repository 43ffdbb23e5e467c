package service

import (
	"context"
	"fmt"
	"log/slog"

	apperrors "github.com/stylehub/storefront/pkg/errors"
	"github.com/stylehub/storefront/pkg/pagination"

	"github.com/stylehub/storefront/internal/catalog"
	"github.com/stylehub/storefront/internal/domain"
)

// Catalog is the product source the storefront reads from.
type Catalog interface {
	GetAll(ctx context.Context) ([]domain.Product, error)
	GetByID(ctx context.Context, id int) (*domain.Product, error)
	GetFeatured(ctx context.Context) ([]domain.Product, error)
	GetSaleItems(ctx context.Context) ([]domain.Product, error)
	Search(ctx context.Context, query string) ([]domain.Product, error)
	FilterOptions(ctx context.Context) (domain.FilterOptions, error)
}

// ListQuery combines filtering, sorting, and pagination for a product
// listing.
type ListQuery struct {
	Filter domain.FilterSpec
	Sort   string
	Page   pagination.Params
}

// CatalogService exposes read-only product operations over a catalog
// source. Filtering and sorting run in memory over the source's snapshot.
type CatalogService struct {
	source Catalog
	logger *slog.Logger
}

// NewCatalogService creates a new catalog service.
func NewCatalogService(source Catalog, logger *slog.Logger) *CatalogService {
	return &CatalogService{
		source: source,
		logger: logger,
	}
}

// ListProducts returns one page of products matching the query's filter,
// ordered by its sort key.
func (s *CatalogService) ListProducts(ctx context.Context, query ListQuery) (*pagination.Result[domain.Product], error) {
	if !domain.IsValidSortKey(query.Sort) {
		return nil, apperrors.InvalidInput(fmt.Sprintf("invalid sort key: %s", query.Sort))
	}

	products, err := s.source.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("load products: %w", err)
	}

	matched := catalog.Apply(products, query.Filter, query.Sort)

	page := paginate(matched, query.Page)
	result := pagination.NewResult(page, len(matched), query.Page)
	return &result, nil
}

// GetProduct returns a single product by its numeric id.
func (s *CatalogService) GetProduct(ctx context.Context, id int) (*domain.Product, error) {
	return s.source.GetByID(ctx, id)
}

// GetFeatured returns the catalog's featured products.
func (s *CatalogService) GetFeatured(ctx context.Context) ([]domain.Product, error) {
	return s.source.GetFeatured(ctx)
}

// GetSaleItems returns all discounted products.
func (s *CatalogService) GetSaleItems(ctx context.Context) ([]domain.Product, error) {
	return s.source.GetSaleItems(ctx)
}

// SearchProducts returns products matching the query string. An empty or
// whitespace-only query matches nothing.
func (s *CatalogService) SearchProducts(ctx context.Context, query string) ([]domain.Product, error) {
	return s.source.Search(ctx, query)
}

// GetFilterOptions returns the facet values available for filtering.
func (s *CatalogService) GetFilterOptions(ctx context.Context) (domain.FilterOptions, error) {
	return s.source.FilterOptions(ctx)
}

func paginate(products []domain.Product, p pagination.Params) []domain.Product {
	if p.Offset >= len(products) {
		return []domain.Product{}
	}
	end := p.Offset + p.PerPage
	if end > len(products) {
		end = len(products)
	}
	return products[p.Offset:end]
}
