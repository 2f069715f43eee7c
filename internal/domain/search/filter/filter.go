// Package filter defines the backend-agnostic structural filter a catalog
// store applies directly: everything about a query except text relevance.
package filter

import "github.com/vinamart/searchd/internal/domain"

// Filter is the structural portion of a search query. Price bounds are
// inclusive. Term and NormTerm are pass-through hints: a store may use them
// for a coarse pre-filter but is never required to — the scorer is
// authoritative for text matching.
type Filter struct {
	CategoryID  string
	PriceMin    *int64
	PriceMax    *int64
	InStockOnly bool
	MinRating   *int
	Term        string
	NormTerm    string
}

// Matches reports whether an item satisfies every structural condition.
// Text hints are deliberately ignored here.
func (f *Filter) Matches(item *domain.CatalogItem) bool {
	if f.CategoryID != "" && item.CategoryID != f.CategoryID {
		return false
	}
	if f.PriceMin != nil && item.Price < *f.PriceMin {
		return false
	}
	if f.PriceMax != nil && item.Price > *f.PriceMax {
		return false
	}
	if f.InStockOnly && !item.InStock() {
		return false
	}
	if f.MinRating != nil && item.AvgRating < float64(*f.MinRating) {
		return false
	}
	return true
}
