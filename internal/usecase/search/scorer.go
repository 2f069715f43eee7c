package search

import (
	"strings"

	"github.com/vinamart/searchd/internal/domain"
	"github.com/vinamart/searchd/internal/textnorm"
)

// Scoring weights. Relative ordering matters more than exact values:
// exact name > name prefix > name containment > token exact > token prefix >
// token substring, with bonuses on top.
const (
	weightExactName    = 200.0
	weightPrefixRaw    = 100.0
	weightPrefixNorm   = 90.0
	weightContainsRaw  = 80.0
	weightContainsNorm = 70.0

	weightTokenExact     = 50.0
	weightTokenPrefix    = 40.0
	weightTokenSubstring = 30.0

	weightAllTokensExact   = 120.0
	weightAllTokensMatched = 100.0
	weightTokenRatioCap    = 50.0

	weightDescRaw      = 25.0
	weightDescNorm     = 20.0
	weightDescPerToken = 8.0
	weightDescTokenCap = 25.0

	weightCategory = 15.0

	weightAvailability  = 10.0
	weightRatingFactor  = 4.0
	weightRatingCap     = 20.0
	weightPopularityDiv = 100.0
	weightPopularityCap = 25.0
)

// scoreInput holds the per-call precomputed views shared by all rules:
// lowercased and normalized forms plus the token match statistics.
type scoreInput struct {
	item *domain.CatalogItem

	rawQuery  string // lowercased raw query
	normQuery string

	nameLower string
	nameNorm  string
	descLower string
	descNorm  string
	catNorm   string

	queryTokens   []string // normalized, length > 1
	tokensMatched int
	allExact      bool
}

// scoreRule is a single named relevance signal returning a partial score.
// Boost rules rank matching items against each other; they contribute
// nothing when no text signal fired, so a non-matching item scores 0.
type scoreRule struct {
	name  string
	boost bool
	fn    func(*scoreInput) float64
}

// scoreRules is the fixed, ordered signal list. The final score is the sum
// of every rule's contribution.
var scoreRules = []scoreRule{
	{name: "exact_name", fn: ruleExactName},
	{name: "name_prefix", fn: ruleNamePrefix},
	{name: "name_contains", fn: ruleNameContains},
	{name: "token_matches", fn: ruleTokenMatches},
	{name: "token_completeness", fn: ruleTokenCompleteness},
	{name: "token_ratio", fn: ruleTokenRatio},
	{name: "description", fn: ruleDescription},
	{name: "category", fn: ruleCategory},
	{name: "availability", boost: true, fn: ruleAvailability},
	{name: "rating", boost: true, fn: ruleRating},
	{name: "popularity", boost: true, fn: rulePopularity},
}

// Score computes the relevance of an item against a free-text query as the
// sum of independent weighted signals. Returns 0 for an empty raw query and
// for items with no text match at all.
// Pure and deterministic: no time, no randomness.
func Score(item *domain.CatalogItem, rawQuery, normQuery string) float64 {
	rawQuery = strings.TrimSpace(rawQuery)
	if rawQuery == "" {
		return 0
	}
	in := newScoreInput(item, rawQuery, normQuery)

	var text, boost float64
	for _, r := range scoreRules {
		if r.boost {
			boost += r.fn(in)
		} else {
			text += r.fn(in)
		}
	}
	if text == 0 {
		return 0
	}
	return text + boost
}

func newScoreInput(item *domain.CatalogItem, rawQuery, normQuery string) *scoreInput {
	in := &scoreInput{
		item:      item,
		rawQuery:  strings.ToLower(rawQuery),
		normQuery: normQuery,
		nameLower: strings.ToLower(item.Name),
		nameNorm:  textnorm.Normalize(item.Name),
		descLower: strings.ToLower(item.Description),
		descNorm:  textnorm.Normalize(item.Description),
		catNorm:   textnorm.Normalize(item.CategoryName),
	}
	for _, tok := range strings.Fields(normQuery) {
		if len(tok) > 1 {
			in.queryTokens = append(in.queryTokens, tok)
		}
	}
	in.tokensMatched, in.allExact = matchTokens(in.queryTokens, strings.Fields(in.nameNorm))
	return in
}

// matchTokens counts query tokens that match some name token, preferring
// exact over prefix over substring. Each query token counts at most once.
func matchTokens(queryTokens, nameTokens []string) (matched int, allExact bool) {
	allExact = true
	for _, qt := range queryTokens {
		kind := tokenMatchKind(qt, nameTokens)
		if kind == matchNone {
			allExact = false
			continue
		}
		matched++
		if kind != matchExact {
			allExact = false
		}
	}
	return matched, allExact
}

type matchKind int

const (
	matchNone matchKind = iota
	matchSubstring
	matchPrefix
	matchExact
)

// tokenMatchKind returns the strongest match between a query token and any
// name token; the first qualifying kind wins, no double counting.
func tokenMatchKind(queryToken string, nameTokens []string) matchKind {
	best := matchNone
	for _, nt := range nameTokens {
		switch {
		case nt == queryToken:
			return matchExact
		case strings.HasPrefix(nt, queryToken):
			if best < matchPrefix {
				best = matchPrefix
			}
		case strings.Contains(nt, queryToken):
			if best < matchSubstring {
				best = matchSubstring
			}
		}
	}
	return best
}

func ruleExactName(in *scoreInput) float64 {
	if in.nameLower == in.rawQuery || in.nameNorm == in.normQuery {
		return weightExactName
	}
	return 0
}

func ruleNamePrefix(in *scoreInput) float64 {
	var s float64
	if strings.HasPrefix(in.nameLower, in.rawQuery) {
		s += weightPrefixRaw
	}
	if in.normQuery != "" && strings.HasPrefix(in.nameNorm, in.normQuery) {
		s += weightPrefixNorm
	}
	return s
}

func ruleNameContains(in *scoreInput) float64 {
	var s float64
	if strings.Contains(in.nameLower, in.rawQuery) {
		s += weightContainsRaw
	}
	if in.normQuery != "" && strings.Contains(in.nameNorm, in.normQuery) {
		s += weightContainsNorm
	}
	return s
}

func ruleTokenMatches(in *scoreInput) float64 {
	nameTokens := strings.Fields(in.nameNorm)
	var s float64
	for _, qt := range in.queryTokens {
		switch tokenMatchKind(qt, nameTokens) {
		case matchExact:
			s += weightTokenExact
		case matchPrefix:
			s += weightTokenPrefix
		case matchSubstring:
			s += weightTokenSubstring
		case matchNone:
		}
	}
	return s
}

func ruleTokenCompleteness(in *scoreInput) float64 {
	if len(in.queryTokens) == 0 || in.tokensMatched < len(in.queryTokens) {
		return 0
	}
	if in.allExact {
		return weightAllTokensExact
	}
	return weightAllTokensMatched
}

func ruleTokenRatio(in *scoreInput) float64 {
	if len(in.queryTokens) == 0 {
		return 0
	}
	return weightTokenRatioCap * float64(in.tokensMatched) / float64(len(in.queryTokens))
}

func ruleDescription(in *scoreInput) float64 {
	if in.descLower == "" {
		return 0
	}
	var s float64
	if strings.Contains(in.descLower, in.rawQuery) {
		s += weightDescRaw
	}
	if in.normQuery != "" && strings.Contains(in.descNorm, in.normQuery) {
		s += weightDescNorm
	}
	var tokenBonus float64
	for _, qt := range in.queryTokens {
		if strings.Contains(in.descNorm, qt) {
			tokenBonus += weightDescPerToken
		}
	}
	if tokenBonus > weightDescTokenCap {
		tokenBonus = weightDescTokenCap
	}
	return s + tokenBonus
}

func ruleCategory(in *scoreInput) float64 {
	if in.catNorm == "" || in.normQuery == "" {
		return 0
	}
	if strings.Contains(in.catNorm, in.normQuery) || strings.Contains(in.normQuery, in.catNorm) {
		return weightCategory
	}
	return 0
}

func ruleAvailability(in *scoreInput) float64 {
	if in.item.InStock() {
		return weightAvailability
	}
	return 0
}

func ruleRating(in *scoreInput) float64 {
	s := in.item.AvgRating * weightRatingFactor
	if s > weightRatingCap {
		s = weightRatingCap
	}
	return s
}

func rulePopularity(in *scoreInput) float64 {
	s := float64(in.item.UnitsSold) / weightPopularityDiv
	if s > weightPopularityCap {
		s = weightPopularityCap
	}
	return s
}
