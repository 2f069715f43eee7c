package search

import (
	"testing"

	"github.com/vinamart/searchd/internal/domain"
	"github.com/vinamart/searchd/internal/textnorm"
)

func scoreFor(t *testing.T, item *domain.CatalogItem, term string) float64 {
	t.Helper()
	return Score(item, term, textnorm.Normalize(term))
}

func phoneItem() *domain.CatalogItem {
	return &domain.CatalogItem{
		ID:           "1",
		Name:         "iPhone 15 Pro Max",
		Description:  "Điện thoại cao cấp của Apple",
		Price:        34990000,
		StockCount:   50,
		CategoryID:   "phones",
		CategoryName: "Điện thoại",
		AvgRating:    4.8,
		UnitsSold:    1200,
	}
}

func TestScore_EmptyQuery(t *testing.T) {
	if s := scoreFor(t, phoneItem(), ""); s != 0 {
		t.Errorf("empty query score = %v, want 0", s)
	}
	if s := scoreFor(t, phoneItem(), "   "); s != 0 {
		t.Errorf("blank query score = %v, want 0", s)
	}
}

func TestScore_NoMatchIsZero(t *testing.T) {
	// Boost signals alone must not produce a nonzero score.
	if s := scoreFor(t, phoneItem(), "xyzzy"); s != 0 {
		t.Errorf("non-matching query score = %v, want 0", s)
	}
}

func TestScore_Monotonicity(t *testing.T) {
	item := phoneItem()
	exact := scoreFor(t, item, "iPhone 15 Pro Max")
	prefix := scoreFor(t, item, "iPhone 15")
	substr := scoreFor(t, item, "Pro Max")
	none := scoreFor(t, item, "galaxy tab")

	if !(exact >= prefix) {
		t.Errorf("exact (%v) < prefix (%v)", exact, prefix)
	}
	if !(prefix >= substr) {
		t.Errorf("prefix (%v) < substring (%v)", prefix, substr)
	}
	if !(substr > none) {
		t.Errorf("substring (%v) <= no match (%v)", substr, none)
	}
	if none != 0 {
		t.Errorf("no-match score = %v, want 0", none)
	}
}

func TestScore_Deterministic(t *testing.T) {
	item := phoneItem()
	first := scoreFor(t, item, "iphone pro")
	for i := 0; i < 10; i++ {
		if got := scoreFor(t, item, "iphone pro"); got != first {
			t.Fatalf("score changed between calls: %v then %v", first, got)
		}
	}
}

func TestScore_DiacriticInsensitive(t *testing.T) {
	item := &domain.CatalogItem{Name: "Điện thoại thông minh", StockCount: 5}
	if s := scoreFor(t, item, "dien thoai"); s <= 0 {
		t.Errorf("query without diacritics should match accented name, score = %v", s)
	}
}

func TestRuleTokenMatches_FirstQualifyingWins(t *testing.T) {
	// "pro" appears as an exact name token; only the exact weight applies.
	in := newScoreInput(&domain.CatalogItem{Name: "pro promax"}, "pro", "pro")
	if got := ruleTokenMatches(in); got != weightTokenExact {
		t.Errorf("token score = %v, want exact weight %v (no double counting)", got, weightTokenExact)
	}
}

func TestRuleTokenMatches_KindWeights(t *testing.T) {
	tests := []struct {
		name     string
		itemName string
		term     string
		want     float64
	}{
		{"exact token", "samsung galaxy", "galaxy", weightTokenExact},
		{"prefix token", "samsung galaxy", "gala", weightTokenPrefix},
		{"substring token", "samsung galaxy", "laxy", weightTokenSubstring},
		{"no token match", "samsung galaxy", "pixel", 0},
		{"short tokens skipped", "samsung galaxy", "s", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := newScoreInput(&domain.CatalogItem{Name: tt.itemName}, tt.term, textnorm.Normalize(tt.term))
			if got := ruleTokenMatches(in); got != tt.want {
				t.Errorf("ruleTokenMatches = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRuleTokenCompleteness(t *testing.T) {
	allExact := newScoreInput(&domain.CatalogItem{Name: "iphone 15 pro"}, "iphone pro", "iphone pro")
	if got := ruleTokenCompleteness(allExact); got != weightAllTokensExact {
		t.Errorf("all-exact bonus = %v, want %v", got, weightAllTokensExact)
	}

	// "pr" matches by prefix only: completeness bonus, not the exact one.
	partial := newScoreInput(&domain.CatalogItem{Name: "iphone 15 pro"}, "iphone pr", "iphone pr")
	if got := ruleTokenCompleteness(partial); got != weightAllTokensMatched {
		t.Errorf("all-matched bonus = %v, want %v", got, weightAllTokensMatched)
	}

	missing := newScoreInput(&domain.CatalogItem{Name: "iphone 15 pro"}, "iphone pixel", "iphone pixel")
	if got := ruleTokenCompleteness(missing); got != 0 {
		t.Errorf("bonus with unmatched token = %v, want 0", got)
	}
}

func TestRuleTokenRatio(t *testing.T) {
	half := newScoreInput(&domain.CatalogItem{Name: "iphone 15 pro"}, "iphone pixel", "iphone pixel")
	want := weightTokenRatioCap / 2
	if got := ruleTokenRatio(half); got != want {
		t.Errorf("ratio bonus = %v, want %v", got, want)
	}
}

func TestRuleDescription_TokenBonusCapped(t *testing.T) {
	item := &domain.CatalogItem{
		Name:        "Chuột không dây",
		Description: "chuot ban phim man hinh loa sac cap",
	}
	in := newScoreInput(item, "chuot ban phim man hinh loa", textnorm.Normalize("chuot ban phim man hinh loa"))
	got := ruleDescription(in)
	max := weightDescRaw + weightDescNorm + weightDescTokenCap
	if got > max {
		t.Errorf("description score = %v, exceeds cap %v", got, max)
	}
}

func TestBoostRules(t *testing.T) {
	in := newScoreInput(phoneItem(), "iphone", "iphone")
	if got := ruleAvailability(in); got != weightAvailability {
		t.Errorf("availability = %v, want %v", got, weightAvailability)
	}
	if got := ruleRating(in); got > weightRatingCap {
		t.Errorf("rating bonus %v exceeds cap %v", got, weightRatingCap)
	}
	if got := rulePopularity(in); got != 12.0 {
		t.Errorf("popularity = %v, want 12.0 for 1200 units", got)
	}

	heavy := &domain.CatalogItem{Name: "x", UnitsSold: 1000000}
	if got := rulePopularity(newScoreInput(heavy, "x", "x")); got != weightPopularityCap {
		t.Errorf("popularity = %v, want capped at %v", got, weightPopularityCap)
	}
}

func TestScore_OutOfStockRanksBelowInStock(t *testing.T) {
	inStock := &domain.CatalogItem{Name: "Tai nghe Sony", StockCount: 3}
	outStock := &domain.CatalogItem{Name: "Tai nghe Sony", StockCount: 0}
	if scoreFor(t, inStock, "tai nghe") <= scoreFor(t, outStock, "tai nghe") {
		t.Error("in-stock item should outrank identical out-of-stock item")
	}
}
