package search

import (
	"strings"

	"github.com/vinamart/searchd/internal/domain/search/filter"
	"github.com/vinamart/searchd/internal/domain/search/query"
	"github.com/vinamart/searchd/internal/domain/search/sortmode"
	"github.com/vinamart/searchd/internal/textnorm"
)

// Plan is the backend-agnostic execution plan for one query: the structural
// filter plus whether text scoring is needed at all.
type Plan struct {
	Filter       filter.Filter
	NeedsScoring bool
}

// PlannerConfig tunes optional planner behavior.
type PlannerConfig struct {
	// PriceHintEnabled turns on the "giá rẻ" price-keyword heuristic: when
	// the normalized term contains the phrase, an upper price bound is
	// applied unless the query already set one. Off by default.
	PriceHintEnabled bool
	// PriceHintCeiling is the price cap the heuristic applies, in VND.
	PriceHintCeiling int64
}

// cheapPhrase is the normalized price-keyword phrase the hint looks for.
const cheapPhrase = "gia re"

// Planner translates queries into structural filters.
type Planner struct {
	cfg PlannerConfig
}

// NewPlanner creates a query planner.
func NewPlanner(cfg PlannerConfig) *Planner {
	return &Planner{cfg: cfg}
}

// Build produces the structural filter and the scoring decision for a query.
// When both price bounds are present and min > max they are swapped rather
// than rejected.
func (p *Planner) Build(q *query.Query) Plan {
	term := strings.TrimSpace(q.Term())
	normTerm := textnorm.Normalize(term)

	f := filter.Filter{
		CategoryID:  q.CategoryID(),
		PriceMin:    q.PriceMin(),
		PriceMax:    q.PriceMax(),
		InStockOnly: q.InStockOnly(),
		MinRating:   q.MinRating(),
		Term:        term,
		NormTerm:    normTerm,
	}

	if f.PriceMin != nil && f.PriceMax != nil && *f.PriceMin > *f.PriceMax {
		f.PriceMin, f.PriceMax = f.PriceMax, f.PriceMin
	}

	if p.cfg.PriceHintEnabled && f.PriceMax == nil && containsPhrase(normTerm, cheapPhrase) {
		ceiling := p.cfg.PriceHintCeiling
		f.PriceMax = &ceiling
	}

	return Plan{
		Filter:       f,
		NeedsScoring: q.Sort() == sortmode.Relevance && term != "",
	}
}

// containsPhrase reports a whole-word occurrence of phrase in s.
func containsPhrase(s, phrase string) bool {
	return strings.Contains(" "+s+" ", " "+phrase+" ")
}
