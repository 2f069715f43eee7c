package cache

import (
	"strconv"
	"strings"

	"github.com/vinamart/searchd/internal/domain/search/query"
	"github.com/vinamart/searchd/internal/textnorm"
)

// Key builds the canonical cache key for a query: every non-default field in
// a fixed order, with the term normalized so diacritic and spelling variants
// of the same search collide to one entry.
func Key(q *query.Query) string {
	var b strings.Builder
	b.WriteString("search:")

	if term := textnorm.Normalize(q.Term()); term != "" {
		b.WriteString("q=")
		b.WriteString(term)
		b.WriteByte('|')
	}
	if q.CategoryID() != "" {
		b.WriteString("cat=")
		b.WriteString(q.CategoryID())
		b.WriteByte('|')
	}
	if q.PriceMin() != nil {
		b.WriteString("pmin=")
		b.WriteString(strconv.FormatInt(*q.PriceMin(), 10))
		b.WriteByte('|')
	}
	if q.PriceMax() != nil {
		b.WriteString("pmax=")
		b.WriteString(strconv.FormatInt(*q.PriceMax(), 10))
		b.WriteByte('|')
	}
	if q.InStockOnly() {
		b.WriteString("stock=1|")
	}
	if q.MinRating() != nil {
		b.WriteString("rmin=")
		b.WriteString(strconv.Itoa(*q.MinRating()))
		b.WriteByte('|')
	}

	b.WriteString("sort=")
	b.WriteString(string(q.Sort()))
	b.WriteString("|page=")
	b.WriteString(strconv.Itoa(q.Page()))
	b.WriteString("|size=")
	b.WriteString(strconv.Itoa(q.PageSize()))

	return b.String()
}
