package domain

import "time"

// CatalogItem is the backend-agnostic read view of a product. The engine
// never mutates catalog data; items are owned by the backing store.
type CatalogItem struct {
	ID           string
	Name         string
	Description  string
	Price        int64 // VND
	StockCount   int
	CategoryID   string
	CategoryName string
	Brand        string
	AvgRating    float64 // 0 means unrated
	UnitsSold    int
	CreatedAt    time.Time
}

// InStock reports whether the item has units available.
func (i *CatalogItem) InStock() bool { return i.StockCount > 0 }
