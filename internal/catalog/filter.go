package catalog

import (
	"sort"
	"strings"

	"github.com/stylehub/storefront/internal/domain"
)

// Apply narrows and orders a product list according to the given filter spec
// and sort key. It is pure: the input slice is never mutated and a fresh
// slice is always returned. Stages with an empty constraint are skipped;
// dimensions combine with AND, values within a dimension with OR.
func Apply(products []domain.Product, spec domain.FilterSpec, sortKey string) []domain.Product {
	filtered := make([]domain.Product, 0, len(products))

	for _, p := range products {
		if !matches(p, spec) {
			continue
		}
		filtered = append(filtered, p)
	}

	sortProducts(filtered, sortKey)
	return filtered
}

// matches checks a single product against every constrained dimension.
func matches(p domain.Product, spec domain.FilterSpec) bool {
	if len(spec.Categories) > 0 && !containsFold(spec.Categories, p.Category) {
		return false
	}
	if len(spec.Subcategories) > 0 && !containsFold(spec.Subcategories, p.Subcategory) {
		return false
	}
	if len(spec.Sizes) > 0 && !overlaps(p.Sizes, spec.Sizes) {
		return false
	}
	if len(spec.Colors) > 0 && !overlaps(p.Colors, spec.Colors) {
		return false
	}
	if len(spec.Brands) > 0 && !contains(spec.Brands, p.Brand) {
		return false
	}
	if r := spec.PriceRange; r != nil {
		if p.Price < r.Min {
			return false
		}
		if r.Max > 0 && p.Price > r.Max {
			return false
		}
	}
	return true
}

// sortProducts orders the slice in place. Ties keep their input order, and
// the popularity key (or an unknown key) preserves input order entirely.
func sortProducts(products []domain.Product, sortKey string) {
	switch sortKey {
	case domain.SortPriceLow:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].Price < products[j].Price
		})
	case domain.SortPriceHigh:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].Price > products[j].Price
		})
	case domain.SortNewest:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].ID > products[j].ID
		})
	case domain.SortRating:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].Rating > products[j].Rating
		})
	default:
		// popularity: no reordering.
	}
}

func contains(values []string, v string) bool {
	for _, s := range values {
		if s == v {
			return true
		}
	}
	return false
}

func containsFold(values []string, v string) bool {
	for _, s := range values {
		if strings.EqualFold(s, v) {
			return true
		}
	}
	return false
}

// overlaps reports whether any product value appears in the filter values.
func overlaps(productValues, filterValues []string) bool {
	for _, pv := range productValues {
		if contains(filterValues, pv) {
			return true
		}
	}
	return false
}
