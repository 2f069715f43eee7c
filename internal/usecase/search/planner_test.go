package search

import (
	"testing"

	"github.com/vinamart/searchd/internal/domain/search/query"
	"github.com/vinamart/searchd/internal/domain/search/sortmode"
)

func i64(v int64) *int64 { return &v }

func mustQuery(t *testing.T, p query.Params) *query.Query {
	t.Helper()
	q, err := query.New(p)
	if err != nil {
		t.Fatalf("query.New: %v", err)
	}
	return &q
}

func TestBuild_NeedsScoring(t *testing.T) {
	planner := NewPlanner(PlannerConfig{})

	tests := []struct {
		name string
		term string
		sort sortmode.Mode
		want bool
	}{
		{"relevance with term", "iphone", sortmode.Relevance, true},
		{"relevance without term", "", sortmode.Relevance, false},
		{"relevance with blank term", "   ", sortmode.Relevance, false},
		{"price sort skips scoring", "iphone", sortmode.PriceAsc, false},
		{"newest skips scoring", "iphone", sortmode.Newest, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plan := planner.Build(mustQuery(t, query.Params{Term: tt.term, Sort: tt.sort}))
			if plan.NeedsScoring != tt.want {
				t.Errorf("NeedsScoring = %v, want %v", plan.NeedsScoring, tt.want)
			}
		})
	}
}

func TestBuild_NormalizedHint(t *testing.T) {
	planner := NewPlanner(PlannerConfig{})
	plan := planner.Build(mustQuery(t, query.Params{Term: "Điện Thoại"}))
	if plan.Filter.Term != "Điện Thoại" {
		t.Errorf("raw term hint = %q", plan.Filter.Term)
	}
	if plan.Filter.NormTerm != "dien thoai" {
		t.Errorf("normalized term hint = %q, want %q", plan.Filter.NormTerm, "dien thoai")
	}
}

func TestBuild_SwapsInvertedPriceBounds(t *testing.T) {
	planner := NewPlanner(PlannerConfig{})
	plan := planner.Build(mustQuery(t, query.Params{PriceMin: i64(500), PriceMax: i64(100)}))
	if *plan.Filter.PriceMin != 100 || *plan.Filter.PriceMax != 500 {
		t.Errorf("bounds not swapped: min=%d max=%d", *plan.Filter.PriceMin, *plan.Filter.PriceMax)
	}
}

func TestBuild_PriceHint(t *testing.T) {
	on := NewPlanner(PlannerConfig{PriceHintEnabled: true, PriceHintCeiling: 5000000})

	plan := on.Build(mustQuery(t, query.Params{Term: "điện thoại giá rẻ"}))
	if plan.Filter.PriceMax == nil || *plan.Filter.PriceMax != 5000000 {
		t.Errorf("expected price hint ceiling, got %v", plan.Filter.PriceMax)
	}

	// Explicit bound wins over the hint.
	plan = on.Build(mustQuery(t, query.Params{Term: "điện thoại giá rẻ", PriceMax: i64(9000000)}))
	if *plan.Filter.PriceMax != 9000000 {
		t.Errorf("explicit max overridden: %d", *plan.Filter.PriceMax)
	}

	// Gated off by default.
	off := NewPlanner(PlannerConfig{})
	plan = off.Build(mustQuery(t, query.Params{Term: "điện thoại giá rẻ"}))
	if plan.Filter.PriceMax != nil {
		t.Errorf("price hint applied while disabled: %d", *plan.Filter.PriceMax)
	}
}
