// Package catalog reads product candidates from the primary store. Items are
// Redis hashes under <prefix><id>; the repository scans the prefix, bulk
// reads the hashes, and applies the structural filter in Go. It applies no
// text pre-filter: the scorer is authoritative for text matching.
package catalog

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/vinamart/searchd/internal/db"
	"github.com/vinamart/searchd/internal/domain"
	"github.com/vinamart/searchd/internal/domain/search/filter"
)

// store is the consumer interface for catalog reads (ISP).
type store interface {
	HGetAllMulti(ctx context.Context, keys []string) ([]map[string]string, error)
	Scan(ctx context.Context, pattern string) ([]string, error)
}

// Repo implements usecase/search.CatalogSource over the primary store.
type Repo struct {
	store  store
	prefix string
	logger *zap.Logger
}

// New creates a catalog repository. prefix is the hash key prefix, e.g.
// "catalog:product:".
func New(s store, prefix string, logger *zap.Logger) *Repo {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Repo{store: s, prefix: prefix, logger: logger}
}

// FetchCandidates returns every item satisfying the structural filter, in a
// stable key order so identical requests see identical candidate order.
func (r *Repo) FetchCandidates(ctx context.Context, f *filter.Filter) ([]domain.CatalogItem, error) {
	keys, err := r.store.Scan(ctx, r.prefix+"*")
	if err != nil {
		return nil, fmt.Errorf("scan catalog keys: %w", err)
	}
	if len(keys) == 0 {
		return nil, nil
	}

	// SCAN order is unspecified; sort for deterministic candidate order.
	sort.Strings(keys)

	hashes, err := r.store.HGetAllMulti(ctx, keys)
	if err != nil {
		return nil, fmt.Errorf("read catalog hashes: %w", err)
	}

	items := make([]domain.CatalogItem, 0, len(hashes))
	for i, fields := range hashes {
		item, err := parseItem(fields)
		if err != nil {
			r.logger.Warn("skipping unparseable catalog hash",
				zap.String("key", keys[i]), zap.Error(err))
			continue
		}
		if f.Matches(&item) {
			items = append(items, item)
		}
	}
	return items, nil
}

// parseItem converts a product hash into the read view. id, name and price
// are required; everything else degrades to its zero value.
func parseItem(fields map[string]string) (domain.CatalogItem, error) {
	id := fields["id"]
	name := fields["name"]
	if id == "" || name == "" {
		return domain.CatalogItem{}, fmt.Errorf("missing id or name")
	}

	price, err := strconv.ParseInt(fields["price"], 10, 64)
	if err != nil || price < 0 {
		return domain.CatalogItem{}, fmt.Errorf("invalid price %q", fields["price"])
	}

	item := domain.CatalogItem{
		ID:           id,
		Name:         name,
		Description:  fields["description"],
		Price:        price,
		CategoryID:   fields["category_id"],
		CategoryName: fields["category_name"],
		Brand:        fields["brand"],
	}

	if v := fields["stock"]; v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			item.StockCount = n
		}
	}
	if v := fields["rating"]; v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			item.AvgRating = f
		}
	}
	if v := fields["units_sold"]; v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			item.UnitsSold = n
		}
	}
	if v := fields["created_at"]; v != "" {
		if ts, err := time.Parse(time.RFC3339, v); err == nil {
			item.CreatedAt = ts
		}
	}

	return item, nil
}

// Ping delegates connectivity checks to the underlying store when it
// supports them.
func (r *Repo) Ping(ctx context.Context) error {
	if p, ok := r.store.(db.Pinger); ok {
		return p.Ping(ctx)
	}
	return nil
}
