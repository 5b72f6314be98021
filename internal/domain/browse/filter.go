// internal/domain/browse/filter.go
package browse

import (
	"net/url"
	"sort"
	"strconv"

	"github.com/your-org/storefront-backend/internal/domain/catalog"
)

// SortKey enumerates the supported orderings
type SortKey string

const (
	SortDefault   SortKey = "default"
	SortPriceAsc  SortKey = "price_asc"
	SortPriceDesc SortKey = "price_desc"
	SortRating    SortKey = "rating"
)

// CategoryAll is the sentinel for "no category filter"
const CategoryAll = "all"

// FilterState is the projection of the URL query parameters that drive
// the product list. The URL is the source of truth; FilterState is always
// recomputed from it, never stored.
type FilterState struct {
	Query    string
	Category string
	MinPrice *float64
	MaxPrice *float64
	Sort     SortKey
}

// ParseFilterState derives a FilterState from URL query values. Parsing
// is total: malformed numbers are treated as absent and unknown sort
// keys fall back to default. An inverted price range is swapped so the
// projection stays usable.
func ParseFilterState(values url.Values) FilterState {
	state := FilterState{
		Query:    values.Get("q"),
		Category: values.Get("category"),
		Sort:     SortDefault,
	}

	if state.Category == "" {
		state.Category = CategoryAll
	}

	if v, err := strconv.ParseFloat(values.Get("minPrice"), 64); err == nil {
		state.MinPrice = &v
	}
	if v, err := strconv.ParseFloat(values.Get("maxPrice"), 64); err == nil {
		state.MaxPrice = &v
	}

	if state.MinPrice != nil && state.MaxPrice != nil && *state.MinPrice > *state.MaxPrice {
		state.MinPrice, state.MaxPrice = state.MaxPrice, state.MinPrice
	}

	switch SortKey(values.Get("sort")) {
	case SortPriceAsc:
		state.Sort = SortPriceAsc
	case SortPriceDesc:
		state.Sort = SortPriceDesc
	case SortRating:
		state.Sort = SortRating
	}

	return state
}

// HasQuery reports whether a free-text search is active. Search and
// category/price filtering are mutually exclusive paths: a query replaces
// the whole list with the search result.
func (s FilterState) HasQuery() bool {
	return s.Query != ""
}

// Apply projects a loaded product list through the filter state, in
// fixed order: category restriction, price range, then a stable sort.
// The category is ignored unless it appears in knownCategories, which
// protects against stale URLs naming a category that no longer exists.
// An empty result is a valid outcome, not an error.
func Apply(products []catalog.Product, state FilterState, knownCategories []string) []catalog.Product {
	result := make([]catalog.Product, 0, len(products))
	result = append(result, products...)

	if !state.HasQuery() {
		if state.Category != CategoryAll && containsCategory(knownCategories, state.Category) {
			result = filterCategory(result, state.Category)
		}

		minPrice, maxPrice := resolveBounds(result, state)
		result = filterPriceRange(result, minPrice, maxPrice)
	}

	sortProducts(result, state.Sort)
	return result
}

// PriceBounds returns the lowest and highest price in the loaded list,
// used to auto-fit the price slider when the URL carries no explicit
// bounds. Returns (0, 0) for an empty list.
func PriceBounds(products []catalog.Product) (float64, float64) {
	if len(products) == 0 {
		return 0, 0
	}

	min, max := products[0].Price, products[0].Price
	for _, p := range products[1:] {
		if p.Price < min {
			min = p.Price
		}
		if p.Price > max {
			max = p.Price
		}
	}
	return min, max
}

// resolveBounds picks explicit URL bounds where present, falling back to
// the bounds of the currently loaded list.
func resolveBounds(products []catalog.Product, state FilterState) (float64, float64) {
	loadedMin, loadedMax := PriceBounds(products)

	minPrice, maxPrice := loadedMin, loadedMax
	if state.MinPrice != nil {
		minPrice = *state.MinPrice
	}
	if state.MaxPrice != nil {
		maxPrice = *state.MaxPrice
	}
	return minPrice, maxPrice
}

func filterCategory(products []catalog.Product, category string) []catalog.Product {
	filtered := products[:0]
	for _, p := range products {
		// Exact match: categories come pre-normalized from the catalog
		if p.Category == category {
			filtered = append(filtered, p)
		}
	}
	return filtered
}

func filterPriceRange(products []catalog.Product, minPrice, maxPrice float64) []catalog.Product {
	filtered := products[:0]
	for _, p := range products {
		if p.Price >= minPrice && p.Price <= maxPrice {
			filtered = append(filtered, p)
		}
	}
	return filtered
}

// sortProducts orders in place; stable so equal keys keep incoming order
func sortProducts(products []catalog.Product, key SortKey) {
	switch key {
	case SortPriceAsc:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].Price < products[j].Price
		})
	case SortPriceDesc:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].Price > products[j].Price
		})
	case SortRating:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].Rating > products[j].Rating
		})
	}
}

func containsCategory(categories []string, category string) bool {
	for _, c := range categories {
		if c == category {
			return true
		}
	}
	return false
}
