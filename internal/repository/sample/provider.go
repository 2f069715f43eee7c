// Package sample is the in-memory fallback catalog: a fixed set of
// representative products served only when the primary store is unreachable
// and graceful degradation is enabled.
package sample

import (
	"context"
	"time"

	"github.com/vinamart/searchd/internal/domain"
	"github.com/vinamart/searchd/internal/domain/search/filter"
)

// Provider answers the same candidate query shape as the primary store,
// backed by the fixed dataset below. Read-only and safe for concurrent use.
type Provider struct {
	items []domain.CatalogItem
}

// New creates the fallback provider with the built-in sample catalog.
func New() *Provider {
	return &Provider{items: sampleCatalog()}
}

// FetchCandidates returns every sample item satisfying the structural
// filter, in dataset order.
func (p *Provider) FetchCandidates(_ context.Context, f *filter.Filter) ([]domain.CatalogItem, error) {
	out := make([]domain.CatalogItem, 0, len(p.items))
	for i := range p.items {
		if f.Matches(&p.items[i]) {
			out = append(out, p.items[i])
		}
	}
	return out, nil
}

func day(s string) time.Time {
	t, _ := time.Parse("2006-01-02", s)
	return t
}

// sampleCatalog covers four categories with a spread of prices, stock
// levels, ratings, and sales volumes.
func sampleCatalog() []domain.CatalogItem {
	return []domain.CatalogItem{
		{
			ID: "s1", Name: "iPhone 15 Pro Max 256GB",
			Description:  "Điện thoại cao cấp của Apple, chip A17 Pro, camera 48MP",
			Price:        34990000, StockCount: 25,
			CategoryID: "phones", CategoryName: "Điện thoại", Brand: "Apple",
			AvgRating: 4.8, UnitsSold: 1520, CreatedAt: day("2026-03-10"),
		},
		{
			ID: "s2", Name: "Samsung Galaxy S24 Ultra",
			Description:  "Điện thoại Android flagship, bút S Pen, màn hình 6.8 inch",
			Price:        31990000, StockCount: 40,
			CategoryID: "phones", CategoryName: "Điện thoại", Brand: "Samsung",
			AvgRating: 4.7, UnitsSold: 1180, CreatedAt: day("2026-02-20"),
		},
		{
			ID: "s3", Name: "Xiaomi Redmi Note 13",
			Description:  "Điện thoại giá rẻ pin 5000mAh, sạc nhanh 33W",
			Price:        4990000, StockCount: 120,
			CategoryID: "phones", CategoryName: "Điện thoại", Brand: "Xiaomi",
			AvgRating: 4.3, UnitsSold: 3400, CreatedAt: day("2026-01-05"),
		},
		{
			ID: "s4", Name: "MacBook Air M3 13 inch",
			Description:  "Laptop mỏng nhẹ chip Apple M3, pin 18 giờ",
			Price:        27990000, StockCount: 15,
			CategoryID: "laptops", CategoryName: "Laptop", Brand: "Apple",
			AvgRating: 4.9, UnitsSold: 640, CreatedAt: day("2026-04-02"),
		},
		{
			ID: "s5", Name: "Dell XPS 13 Plus",
			Description:  "Laptop doanh nhân màn hình OLED, Intel Core Ultra 7",
			Price:        39990000, StockCount: 8,
			CategoryID: "laptops", CategoryName: "Laptop", Brand: "Dell",
			AvgRating: 4.5, UnitsSold: 210, CreatedAt: day("2025-11-18"),
		},
		{
			ID: "s6", Name: "Laptop gaming Acer Nitro V",
			Description:  "RTX 4050, màn hình 144Hz, tản nhiệt kép",
			Price:        22490000, StockCount: 0,
			CategoryID: "laptops", CategoryName: "Laptop", Brand: "Acer",
			AvgRating: 4.2, UnitsSold: 890, CreatedAt: day("2025-12-01"),
		},
		{
			ID: "s7", Name: "Tai nghe Sony WH-1000XM5",
			Description:  "Tai nghe bluetooth chống ồn chủ động, pin 30 giờ",
			Price:        6990000, StockCount: 55,
			CategoryID: "accessories", CategoryName: "Phụ kiện", Brand: "Sony",
			AvgRating: 4.8, UnitsSold: 2100, CreatedAt: day("2025-09-14"),
		},
		{
			ID: "s8", Name: "Pin dự phòng Anker 20000mAh",
			Description:  "Sạc nhanh PD 30W, hai cổng USB-C",
			Price:        890000, StockCount: 300,
			CategoryID: "accessories", CategoryName: "Phụ kiện", Brand: "Anker",
			AvgRating: 4.6, UnitsSold: 5600, CreatedAt: day("2025-08-30"),
		},
		{
			ID: "s9", Name: "Smart Tivi Samsung 55 inch 4K",
			Description:  "Tivi QLED 4K, hệ điều hành Tizen, điều khiển giọng nói",
			Price:        14990000, StockCount: 18,
			CategoryID: "tvs", CategoryName: "Tivi", Brand: "Samsung",
			AvgRating: 4.4, UnitsSold: 430, CreatedAt: day("2026-01-22"),
		},
		{
			ID: "s10", Name: "Tivi LG OLED 48 inch",
			Description:  "Màn hình OLED evo, Dolby Vision, webOS",
			Price:        19490000, StockCount: 0,
			CategoryID: "tvs", CategoryName: "Tivi", Brand: "LG",
			AvgRating: 4.7, UnitsSold: 260, CreatedAt: day("2025-10-09"),
		},
	}
}
