package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stylehub/storefront/internal/domain"
)

func testProducts() []domain.Product {
	return []domain.Product{
		{ID: 1, Title: "Denim Jacket", Category: "Women", Subcategory: "Jackets", Brand: "Urban Threads", Price: 300, Sizes: []string{"S", "M"}, Colors: []string{"Blue"}, Rating: 4.6},
		{ID: 2, Title: "Wool Sweater", Category: "Men", Subcategory: "Knitwear", Brand: "North Loom", Price: 900, Sizes: []string{"M", "L"}, Colors: []string{"Charcoal"}, Rating: 4.9},
		{ID: 3, Title: "Beanie", Category: "Accessories", Subcategory: "Hats", Brand: "North Loom", Price: 150, Colors: []string{"Black"}},
	}
}

// ============================================================================
// Filtering stages
// ============================================================================

func TestApply_NoConstraints_ReturnsAllInOrder(t *testing.T) {
	products := testProducts()
	got := Apply(products, domain.FilterSpec{}, domain.SortPopularity)

	require.Len(t, got, 3)
	assert.Equal(t, []int{1, 2, 3}, ids(got))
}

func TestApply_CategoryMembership(t *testing.T) {
	got := Apply(testProducts(), domain.FilterSpec{Categories: []string{"Women"}}, "")
	assert.Equal(t, []int{1}, ids(got))
}

func TestApply_CategoryIsCaseInsensitive(t *testing.T) {
	got := Apply(testProducts(), domain.FilterSpec{Categories: []string{"women"}}, "")
	assert.Equal(t, []int{1}, ids(got))
}

func TestApply_SizeOverlap(t *testing.T) {
	// Any product size intersecting the filter sizes passes.
	got := Apply(testProducts(), domain.FilterSpec{Sizes: []string{"L"}}, "")
	assert.Equal(t, []int{2}, ids(got))

	got = Apply(testProducts(), domain.FilterSpec{Sizes: []string{"M"}}, "")
	assert.Equal(t, []int{1, 2}, ids(got))
}

func TestApply_SizeFilter_ExcludesProductsWithoutSizes(t *testing.T) {
	// The beanie has no sizes, so any size constraint excludes it.
	got := Apply(testProducts(), domain.FilterSpec{Sizes: []string{"S", "M", "L"}}, "")
	assert.NotContains(t, ids(got), 3)
}

func TestApply_ColorOverlap(t *testing.T) {
	got := Apply(testProducts(), domain.FilterSpec{Colors: []string{"Black", "Blue"}}, "")
	assert.Equal(t, []int{1, 3}, ids(got))
}

func TestApply_BrandMembership(t *testing.T) {
	got := Apply(testProducts(), domain.FilterSpec{Brands: []string{"North Loom"}}, "")
	assert.Equal(t, []int{2, 3}, ids(got))
}

func TestApply_PriceRange(t *testing.T) {
	// Products at 300, 900, 150; range [200, 1000] keeps 300 and 900.
	got := Apply(testProducts(), domain.FilterSpec{
		PriceRange: &domain.PriceRange{Min: 200, Max: 1000},
	}, domain.SortPriceLow)

	require.Len(t, got, 2)
	assert.Equal(t, 300.0, got[0].Price)
	assert.Equal(t, 900.0, got[1].Price)
}

func TestApply_PriceRange_ZeroMaxMeansUnbounded(t *testing.T) {
	got := Apply(testProducts(), domain.FilterSpec{
		PriceRange: &domain.PriceRange{Min: 200},
	}, "")
	assert.Equal(t, []int{1, 2}, ids(got))
}

func TestApply_DimensionsCombineWithAND(t *testing.T) {
	got := Apply(testProducts(), domain.FilterSpec{
		Brands: []string{"North Loom"},
		Sizes:  []string{"M"},
	}, "")
	assert.Equal(t, []int{2}, ids(got))
}

func TestApply_NoMatches_ReturnsEmptyNotNil(t *testing.T) {
	got := Apply(testProducts(), domain.FilterSpec{Brands: []string{"Nonexistent"}}, "")
	require.NotNil(t, got)
	assert.Empty(t, got)
}

// ============================================================================
// Sorting
// ============================================================================

func TestApply_SortPriceLow(t *testing.T) {
	got := Apply(testProducts(), domain.FilterSpec{}, domain.SortPriceLow)
	assert.Equal(t, []int{3, 1, 2}, ids(got))
	// First and last elements carry the min and max price.
	assert.Equal(t, 150.0, got[0].Price)
	assert.Equal(t, 900.0, got[len(got)-1].Price)
}

func TestApply_SortPriceHigh(t *testing.T) {
	got := Apply(testProducts(), domain.FilterSpec{}, domain.SortPriceHigh)
	assert.Equal(t, []int{2, 1, 3}, ids(got))
}

func TestApply_SortNewest_DescendingByID(t *testing.T) {
	got := Apply(testProducts(), domain.FilterSpec{}, domain.SortNewest)
	assert.Equal(t, []int{3, 2, 1}, ids(got))
}

func TestApply_SortRating_MissingRatingTreatedAsZero(t *testing.T) {
	got := Apply(testProducts(), domain.FilterSpec{}, domain.SortRating)
	assert.Equal(t, []int{2, 1, 3}, ids(got))
}

func TestApply_SortPopularity_PreservesInputOrder(t *testing.T) {
	got := Apply(testProducts(), domain.FilterSpec{}, domain.SortPopularity)
	assert.Equal(t, []int{1, 2, 3}, ids(got))
}

func TestApply_StableForTies(t *testing.T) {
	products := []domain.Product{
		{ID: 10, Price: 50},
		{ID: 11, Price: 50},
		{ID: 12, Price: 50},
	}
	got := Apply(products, domain.FilterSpec{}, domain.SortPriceLow)
	assert.Equal(t, []int{10, 11, 12}, ids(got))
}

// ============================================================================
// Purity
// ============================================================================

func TestApply_DoesNotMutateInput(t *testing.T) {
	products := testProducts()
	original := testProducts()

	Apply(products, domain.FilterSpec{Brands: []string{"North Loom"}}, domain.SortPriceHigh)

	assert.Equal(t, original, products)
}

func TestApply_IsDeterministic(t *testing.T) {
	products := testProducts()
	spec := domain.FilterSpec{Sizes: []string{"M"}, PriceRange: &domain.PriceRange{Max: 1000}}

	first := Apply(products, spec, domain.SortPriceLow)
	second := Apply(products, spec, domain.SortPriceLow)

	assert.Equal(t, first, second)
}

func ids(products []domain.Product) []int {
	out := make([]int, len(products))
	for i, p := range products {
		out[i] = p.ID
	}
	return out
}
