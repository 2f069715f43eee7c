package sortmode

// Mode is the result ordering strategy.
type Mode string

// Sort mode constants.
const (
	// Relevance orders by the text relevance score; with an empty query term
	// the candidate order from the store is kept.
	Relevance Mode = "relevance"
	PriceAsc  Mode = "price_asc"
	PriceDesc Mode = "price_desc"
	Newest    Mode = "newest"
	// Popular orders by units sold.
	Popular Mode = "popular"
)

// IsValid checks if the mode is one of the supported values.
func (m Mode) IsValid() bool {
	return m == Relevance || m == PriceAsc || m == PriceDesc || m == Newest || m == Popular
}
