// Package search is the engine facade: it plans the query, consults the
// result cache, fetches candidates from the primary store (or the fallback
// provider when the primary is down and degradation is allowed), scores,
// sorts, paginates, and fills the cache.
package search

import (
	"context"
	"fmt"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/vinamart/searchd/internal/cache"
	"github.com/vinamart/searchd/internal/domain"
	"github.com/vinamart/searchd/internal/domain/search/query"
	"github.com/vinamart/searchd/internal/domain/search/result"
	"github.com/vinamart/searchd/internal/domain/search/sortmode"
	"github.com/vinamart/searchd/internal/metrics"
)

// Config tunes the orchestrator. Resolved once at construction; tests toggle
// behavior here, never through the environment.
type Config struct {
	// FallbackEnabled permits answering from the fallback provider when the
	// primary store fails. When false, a primary failure surfaces as
	// domain.ErrBackendUnavailable.
	FallbackEnabled bool
	// FetchTimeout bounds a single candidate fetch. Zero means no extra
	// bound beyond the caller's context.
	FetchTimeout time.Duration
	// CacheBypassPageSize is the page size above which the cache is skipped
	// entirely. Zero disables the rule.
	CacheBypassPageSize int
}

// Service handles product search requests.
type Service struct {
	primary  CatalogSource
	fallback CatalogSource
	cache    ResultCache
	planner  *Planner
	cfg      Config
	logger   *zap.Logger
}

// New creates the search orchestrator. fallback and resultCache may be nil;
// the corresponding steps are then skipped.
func New(
	primary CatalogSource,
	fallback CatalogSource,
	resultCache ResultCache,
	planner *Planner,
	cfg Config,
	logger *zap.Logger,
) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		primary:  primary,
		fallback: fallback,
		cache:    resultCache,
		planner:  planner,
		cfg:      cfg,
		logger:   logger,
	}
}

// Search executes one query end to end. Zero matching items is a valid
// empty page, not an error.
func (s *Service) Search(ctx context.Context, q *query.Query) (result.Page, error) {
	start := time.Now()
	defer func() { metrics.SearchDuration.Observe(time.Since(start).Seconds()) }()

	key := cache.Key(q)
	bypass := s.bypassCache(q)

	if !bypass && s.cache != nil {
		if page, ok := s.cache.Get(key); ok {
			metrics.CacheHits.Inc()
			metrics.SearchTotal.WithLabelValues(metrics.SourceCache).Inc()
			return page, nil
		}
		metrics.CacheMisses.Inc()
	}

	plan := s.planner.Build(q)

	items, source, err := s.fetchCandidates(ctx, &plan)
	if err != nil {
		return result.Page{}, err
	}
	if err := ctx.Err(); err != nil {
		return result.Page{}, fmt.Errorf("search canceled: %w", err)
	}

	if plan.NeedsScoring {
		items = rankByRelevance(items, plan.Filter.Term, plan.Filter.NormTerm)
	} else {
		sortCandidates(items, q.Sort())
	}

	page := paginate(items, q.Page(), q.PageSize())

	if !bypass && s.cache != nil {
		s.cache.Set(key, page)
	}
	metrics.SearchTotal.WithLabelValues(source).Inc()
	return page, nil
}

func (s *Service) bypassCache(q *query.Query) bool {
	if q.BypassCache() {
		return true
	}
	return s.cfg.CacheBypassPageSize > 0 && q.PageSize() > s.cfg.CacheBypassPageSize
}

// fetchCandidates asks the primary store, degrading to the fallback provider
// on a transport error when permitted. A zero-result answer is not a
// failure and never triggers fallback.
func (s *Service) fetchCandidates(ctx context.Context, plan *Plan) ([]domain.CatalogItem, string, error) {
	fetchCtx := ctx
	if s.cfg.FetchTimeout > 0 {
		var cancel context.CancelFunc
		fetchCtx, cancel = context.WithTimeout(ctx, s.cfg.FetchTimeout)
		defer cancel()
	}

	items, err := s.primary.FetchCandidates(fetchCtx, &plan.Filter)
	if err == nil {
		return items, metrics.SourcePrimary, nil
	}

	if !s.cfg.FallbackEnabled || s.fallback == nil {
		return nil, "", fmt.Errorf("%w: %w", domain.ErrBackendUnavailable, err)
	}

	s.logger.Warn("primary catalog store failed, answering from fallback", zap.Error(err))

	items, fbErr := s.fallback.FetchCandidates(ctx, &plan.Filter)
	if fbErr != nil {
		return nil, "", fmt.Errorf("%w: fallback: %w", domain.ErrBackendUnavailable, fbErr)
	}
	return items, metrics.SourceFallback, nil
}

// rankByRelevance scores every candidate, drops non-matches, and sorts
// descending by score. Ties keep candidate order so pagination is
// deterministic across repeated identical requests.
func rankByRelevance(items []domain.CatalogItem, term, normTerm string) []domain.CatalogItem {
	scored := make([]result.ScoredItem, 0, len(items))
	for i := range items {
		sc := Score(&items[i], term, normTerm)
		if sc > 0 {
			scored = append(scored, result.ScoredItem{Item: items[i], Score: sc})
		}
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	out := make([]domain.CatalogItem, len(scored))
	for i := range scored {
		out[i] = scored[i].Item
	}
	return out
}

// sortCandidates orders items by the requested field, keeping candidate
// order on ties.
func sortCandidates(items []domain.CatalogItem, mode sortmode.Mode) {
	switch mode {
	case sortmode.PriceAsc:
		sort.SliceStable(items, func(i, j int) bool { return items[i].Price < items[j].Price })
	case sortmode.PriceDesc:
		sort.SliceStable(items, func(i, j int) bool { return items[i].Price > items[j].Price })
	case sortmode.Newest:
		sort.SliceStable(items, func(i, j int) bool { return items[i].CreatedAt.After(items[j].CreatedAt) })
	case sortmode.Popular:
		sort.SliceStable(items, func(i, j int) bool { return items[i].UnitsSold > items[j].UnitsSold })
	case sortmode.Relevance:
		// Relevance with an empty term: keep candidate order.
	}
}

func paginate(items []domain.CatalogItem, page, pageSize int) result.Page {
	total := len(items)
	offset := (page - 1) * pageSize
	if offset > total {
		offset = total
	}
	end := offset + pageSize
	if end > total {
		end = total
	}
	return result.Page{
		Items:    items[offset:end],
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	}
}
