package domain

// Sort key constants for catalog listings.
const (
	SortPopularity = "popularity"
	SortPriceLow   = "price-low"
	SortPriceHigh  = "price-high"
	SortNewest     = "newest"
	SortRating     = "rating"
)

// Product represents a product in the storefront catalog.
type Product struct {
	ID            int      `json:"Id"`
	Title         string   `json:"title"`
	Slug          string   `json:"slug,omitempty"`
	Description   string   `json:"description,omitempty"`
	Category      string   `json:"category"`
	Subcategory   string   `json:"subcategory,omitempty"`
	Brand         string   `json:"brand"`
	Price         float64  `json:"price"`
	OriginalPrice float64  `json:"originalPrice,omitempty"`
	Discount      int      `json:"discount,omitempty"`
	Images        []string `json:"images"`
	Sizes         []string `json:"sizes,omitempty"`
	Colors        []string `json:"colors,omitempty"`
	Rating        float64  `json:"rating"`
	ReviewCount   int      `json:"reviewCount"`
	InStock       bool     `json:"inStock"`
	Tags          []string `json:"tags,omitempty"`
}

// PriceRange bounds a price filter. A zero Min means no lower bound and a
// zero Max means no upper bound.
type PriceRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// FilterSpec describes the facets narrowing a product list. An empty slice
// (or nil PriceRange) means no constraint on that dimension. Dimensions
// combine with AND; values within a dimension combine with OR.
type FilterSpec struct {
	Categories    []string    `json:"categories,omitempty"`
	Subcategories []string    `json:"subcategories,omitempty"`
	Sizes         []string    `json:"sizes,omitempty"`
	Colors        []string    `json:"colors,omitempty"`
	Brands        []string    `json:"brands,omitempty"`
	PriceRange    *PriceRange `json:"priceRange,omitempty"`
}

// IsZero reports whether the filter constrains nothing.
func (f FilterSpec) IsZero() bool {
	return len(f.Categories) == 0 &&
		len(f.Subcategories) == 0 &&
		len(f.Sizes) == 0 &&
		len(f.Colors) == 0 &&
		len(f.Brands) == 0 &&
		f.PriceRange == nil
}

// FilterOptions holds the distinct facet values available across a catalog,
// used to populate the storefront filter sidebar.
type FilterOptions struct {
	Categories []string `json:"categories"`
	Brands     []string `json:"brands"`
	Sizes      []string `json:"sizes"`
	Colors     []string `json:"colors"`
}

// ValidSortKeys returns the set of valid catalog sort keys.
func ValidSortKeys() []string {
	return []string{SortPopularity, SortPriceLow, SortPriceHigh, SortNewest, SortRating}
}

// IsValidSortKey checks whether the given key is a valid sort key.
// The empty string is valid and means popularity (input order).
func IsValidSortKey(key string) bool {
	if key == "" {
		return true
	}
	for _, k := range ValidSortKeys() {
		if k == key {
			return true
		}
	}
	return false
}
