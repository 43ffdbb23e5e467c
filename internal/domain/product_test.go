package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidSortKeys_ContainsAll(t *testing.T) {
	keys := ValidSortKeys()
	expected := []string{SortPopularity, SortPriceLow, SortPriceHigh, SortNewest, SortRating}
	assert.ElementsMatch(t, expected, keys)
}

func TestIsValidSortKey_ValidKeys(t *testing.T) {
	for _, k := range ValidSortKeys() {
		assert.True(t, IsValidSortKey(k), "expected %q to be valid", k)
	}
}

func TestIsValidSortKey_EmptyStringIsValid(t *testing.T) {
	assert.True(t, IsValidSortKey(""))
}

func TestIsValidSortKey_Invalid(t *testing.T) {
	assert.False(t, IsValidSortKey("unknown"))
	assert.False(t, IsValidSortKey("PRICE-LOW"))
}

func TestFilterSpec_IsZero(t *testing.T) {
	assert.True(t, FilterSpec{}.IsZero())
	assert.False(t, FilterSpec{Brands: []string{"Urban Threads"}}.IsZero())
	assert.False(t, FilterSpec{PriceRange: &PriceRange{Max: 100}}.IsZero())
}
