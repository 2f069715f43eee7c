// Package query defines the validated, immutable search query value.
package query

import (
	"fmt"

	"github.com/vinamart/searchd/internal/domain"
	"github.com/vinamart/searchd/internal/domain/search/sortmode"
)

// Query parameter limits.
const (
	MaxTermLength   = 512
	DefaultPage     = 1
	DefaultPageSize = 12
	MaxPageSize     = 100
)

// Params carries raw, unvalidated query parameters into New. Nil pointer
// fields mean "not supplied".
type Params struct {
	Term        string
	CategoryID  string
	PriceMin    *int64
	PriceMax    *int64
	InStockOnly bool
	MinRating   *int
	Sort        sortmode.Mode
	Page        int
	PageSize    int
	BypassCache bool
}

// Query is a validated search query. Created once per request; never mutated.
type Query struct {
	term        string
	categoryID  string
	priceMin    *int64
	priceMax    *int64
	inStockOnly bool
	minRating   *int
	sort        sortmode.Mode
	page        int
	pageSize    int
	bypassCache bool
}

// New validates and normalizes query parameters.
// Defaults: sort=relevance, page=1, pageSize=12 (capped at 100).
// All validation failures wrap domain.ErrInvalidQuery.
func New(p Params) (Query, error) {
	if len(p.Term) > MaxTermLength {
		return Query{}, fmt.Errorf("%w: term too long (max %d chars)", domain.ErrInvalidQuery, MaxTermLength)
	}
	if p.Sort == "" {
		p.Sort = sortmode.Relevance
	}
	if !p.Sort.IsValid() {
		return Query{}, fmt.Errorf("%w: unsupported sort mode %q", domain.ErrInvalidQuery, p.Sort)
	}
	if p.Page == 0 {
		p.Page = DefaultPage
	}
	if p.Page < 1 {
		return Query{}, fmt.Errorf("%w: page must be >= 1, got %d", domain.ErrInvalidQuery, p.Page)
	}
	if p.PageSize == 0 {
		p.PageSize = DefaultPageSize
	}
	if p.PageSize < 1 {
		return Query{}, fmt.Errorf("%w: page size must be >= 1, got %d", domain.ErrInvalidQuery, p.PageSize)
	}
	if p.PageSize > MaxPageSize {
		p.PageSize = MaxPageSize
	}
	if p.PriceMin != nil && *p.PriceMin < 0 {
		return Query{}, fmt.Errorf("%w: min price must be non-negative", domain.ErrInvalidQuery)
	}
	if p.PriceMax != nil && *p.PriceMax < 0 {
		return Query{}, fmt.Errorf("%w: max price must be non-negative", domain.ErrInvalidQuery)
	}
	if p.MinRating != nil && (*p.MinRating < 1 || *p.MinRating > 5) {
		return Query{}, fmt.Errorf("%w: min rating must be between 1 and 5, got %d", domain.ErrInvalidQuery, *p.MinRating)
	}

	return Query{
		term:        p.Term,
		categoryID:  p.CategoryID,
		priceMin:    p.PriceMin,
		priceMax:    p.PriceMax,
		inStockOnly: p.InStockOnly,
		minRating:   p.MinRating,
		sort:        p.Sort,
		page:        p.Page,
		pageSize:    p.PageSize,
		bypassCache: p.BypassCache,
	}, nil
}

// Term returns the free-text search term (possibly empty).
func (q *Query) Term() string { return q.term }

// CategoryID returns the category filter ("" when absent).
func (q *Query) CategoryID() string { return q.categoryID }

// PriceMin returns the inclusive lower price bound (nil when absent).
func (q *Query) PriceMin() *int64 { return q.priceMin }

// PriceMax returns the inclusive upper price bound (nil when absent).
func (q *Query) PriceMax() *int64 { return q.priceMax }

// InStockOnly reports whether only in-stock items are requested.
func (q *Query) InStockOnly() bool { return q.inStockOnly }

// MinRating returns the minimum average rating (nil when absent).
func (q *Query) MinRating() *int { return q.minRating }

// Sort returns the result ordering strategy.
func (q *Query) Sort() sortmode.Mode { return q.sort }

// Page returns the 1-based page number.
func (q *Query) Page() int { return q.page }

// PageSize returns the page size.
func (q *Query) PageSize() int { return q.pageSize }

// BypassCache reports whether the caller asked to skip the result cache.
func (q *Query) BypassCache() bool { return q.bypassCache }
