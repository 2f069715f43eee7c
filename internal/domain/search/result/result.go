// Package result defines the scored item and the paginated search result,
// the engine's only externally visible output type.
package result

import "github.com/vinamart/searchd/internal/domain"

// ScoredItem is a catalog item with its computed relevance score. Created
// per request; never persisted.
type ScoredItem struct {
	Item  domain.CatalogItem
	Score float64
}

// Page is one page of ranked results plus the pre-pagination total.
type Page struct {
	Items    []domain.CatalogItem
	Total    int
	Page     int
	PageSize int
}

// TotalPages returns ceil(Total / PageSize).
func (p *Page) TotalPages() int {
	if p.PageSize <= 0 {
		return 0
	}
	return (p.Total + p.PageSize - 1) / p.PageSize
}
