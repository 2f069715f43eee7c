package search

import (
	"context"

	"github.com/vinamart/searchd/internal/domain"
	"github.com/vinamart/searchd/internal/domain/search/filter"
	"github.com/vinamart/searchd/internal/domain/search/result"
)

// CatalogSource lists candidate items matching a structural filter. The
// primary store and the fallback provider both implement it.
type CatalogSource interface {
	FetchCandidates(ctx context.Context, f *filter.Filter) ([]domain.CatalogItem, error)
}

// ResultCache stores built result pages under canonical query keys.
type ResultCache interface {
	Get(key string) (result.Page, bool)
	Set(key string, page result.Page)
}
