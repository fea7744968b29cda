package catalog

import (
	"cmp"
	"slices"
	"strings"
)

// DefaultRelatedLimit is how many related products a product page shows
const DefaultRelatedLimit = 4

// LowStockThreshold is the stock level below which a product raises a warning
const LowStockThreshold = 5

// SortMode selects the ordering applied by Sort
type SortMode string

const (
	SortDefault   SortMode = "default"
	SortRating    SortMode = "rating"
	SortPriceAsc  SortMode = "price-asc"
	SortPriceDesc SortMode = "price-desc"
)

// ParseSortMode maps a query value to a SortMode, falling back to SortDefault
func ParseSortMode(s string) SortMode {
	switch m := SortMode(strings.ToLower(strings.TrimSpace(s))); m {
	case SortRating, SortPriceAsc, SortPriceDesc:
		return m
	}
	return SortDefault
}

// Criteria holds the shop filter inputs. Empty fields match everything.
type Criteria struct {
	Text       string
	Categories []Category
	Styles     []Style
}

// Matches reports whether p passes every predicate of c
func (c Criteria) Matches(p Product) bool {
	if c.Text != "" && !strings.Contains(strings.ToLower(p.Name), strings.ToLower(c.Text)) {
		return false
	}
	if len(c.Categories) > 0 && !slices.Contains(c.Categories, p.Category) {
		return false
	}
	if len(c.Styles) > 0 && !slices.Contains(c.Styles, p.Style) {
		return false
	}
	return true
}

// Filter returns the products matching c in catalog order
func Filter(products []Product, c Criteria) []Product {
	out := make([]Product, 0, len(products))
	for _, p := range products {
		if c.Matches(p) {
			out = append(out, p)
		}
	}
	return out
}

// Sort returns a stably ordered copy of products. The input is left untouched.
func Sort(products []Product, mode SortMode) []Product {
	out := slices.Clone(products)
	switch mode {
	case SortRating:
		slices.SortStableFunc(out, func(a, b Product) int { return cmp.Compare(b.AverageRating, a.AverageRating) })
	case SortPriceAsc:
		slices.SortStableFunc(out, func(a, b Product) int { return cmp.Compare(a.Price, b.Price) })
	case SortPriceDesc:
		slices.SortStableFunc(out, func(a, b Product) int { return cmp.Compare(b.Price, a.Price) })
	}
	return out
}

// Related returns up to limit other products sharing p's category or style, in catalog order
func Related(p Product, products []Product, limit int) []Product {
	if limit <= 0 {
		limit = DefaultRelatedLimit
	}
	out := []Product{}
	for _, other := range products {
		if len(out) == limit {
			break
		}
		if other.ID == p.ID {
			continue
		}
		if other.Category == p.Category || other.Style == p.Style {
			out = append(out, other)
		}
	}
	return out
}

// Featured returns the products flagged for the home page
func Featured(products []Product) []Product {
	out := []Product{}
	for _, p := range products {
		if p.Featured {
			out = append(out, p)
		}
	}
	return out
}

// LowStock returns the products whose stock is below threshold
func LowStock(products []Product, threshold int) []Product {
	out := []Product{}
	for _, p := range products {
		if p.Stock < threshold {
			out = append(out, p)
		}
	}
	return out
}

// Find returns the index of the product with the given id, or -1
func Find(products []Product, id string) int {
	return slices.IndexFunc(products, func(p Product) bool { return p.ID == id })
}
