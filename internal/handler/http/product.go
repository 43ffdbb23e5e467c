package http

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/stylehub/storefront/pkg/httputil"
	"github.com/stylehub/storefront/pkg/pagination"

	"github.com/stylehub/storefront/internal/domain"
	"github.com/stylehub/storefront/internal/service"
)

// ProductHandler handles HTTP requests for catalog endpoints.
type ProductHandler struct {
	service *service.CatalogService
	logger  *slog.Logger
}

// NewProductHandler creates a new product HTTP handler.
func NewProductHandler(svc *service.CatalogService, logger *slog.Logger) *ProductHandler {
	return &ProductHandler{
		service: svc,
		logger:  logger,
	}
}

// ListProducts handles GET /api/v1/products
//
// Filter params accept comma-separated lists (e.g. ?sizes=M,L&colors=Black)
// and may be repeated. Price bounds come from min_price and max_price;
// sort is one of popularity, price-low, price-high, newest, rating.
func (h *ProductHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	query := service.ListQuery{
		Filter: filterFromQuery(r),
		Sort:   r.URL.Query().Get("sort"),
		Page:   pagination.FromRequest(r),
	}

	result, err := h.service.ListProducts(r.Context(), query)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.NewPaginatedResponse(
		result.Data, result.TotalCount, result.Page, result.PerPage,
	))
}

// GetProduct handles GET /api/v1/products/{id}
func (h *ProductHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := httputil.ParseIntID(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}

	product, err := h.service.GetProduct(r.Context(), id)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: product})
}

// GetFeatured handles GET /api/v1/products/featured
func (h *ProductHandler) GetFeatured(w http.ResponseWriter, r *http.Request) {
	products, err := h.service.GetFeatured(r.Context())
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: products})
}

// GetSaleItems handles GET /api/v1/products/sale
func (h *ProductHandler) GetSaleItems(w http.ResponseWriter, r *http.Request) {
	products, err := h.service.GetSaleItems(r.Context())
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: products})
}

// SearchProducts handles GET /api/v1/products/search?q=term
func (h *ProductHandler) SearchProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.service.SearchProducts(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: products})
}

// GetFilterOptions handles GET /api/v1/products/filters
func (h *ProductHandler) GetFilterOptions(w http.ResponseWriter, r *http.Request) {
	opts, err := h.service.GetFilterOptions(r.Context())
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: opts})
}

func filterFromQuery(r *http.Request) domain.FilterSpec {
	q := r.URL.Query()

	spec := domain.FilterSpec{
		Categories:    splitParam(q["category"]),
		Subcategories: splitParam(q["subcategory"]),
		Sizes:         splitParam(q["sizes"]),
		Colors:        splitParam(q["colors"]),
		Brands:        splitParam(q["brands"]),
	}

	minPrice, hasMin := parsePrice(q.Get("min_price"))
	maxPrice, hasMax := parsePrice(q.Get("max_price"))
	if hasMin || hasMax {
		spec.PriceRange = &domain.PriceRange{Min: minPrice, Max: maxPrice}
	}

	return spec
}

// splitParam flattens repeated query params and comma-separated lists into
// a single slice, dropping empty entries.
func splitParam(values []string) []string {
	var out []string
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

func parsePrice(raw string) (float64, bool) {
	if raw == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || v < 0 {
		return 0, false
	}
	return v, true
}
