package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/vinamart/searchd/internal/domain/search/filter"
)

// --- Mocks ---

type mockStore struct {
	keys    []string
	hashes  map[string]map[string]string
	scanErr error
	readErr error
}

func (m *mockStore) Scan(_ context.Context, _ string) ([]string, error) {
	return m.keys, m.scanErr
}

func (m *mockStore) HGetAllMulti(_ context.Context, keys []string) ([]map[string]string, error) {
	if m.readErr != nil {
		return nil, m.readErr
	}
	out := make([]map[string]string, len(keys))
	for i, k := range keys {
		out[i] = m.hashes[k]
	}
	return out, nil
}

func productHash(id, name, price string) map[string]string {
	return map[string]string{
		"id":            id,
		"name":          name,
		"price":         price,
		"stock":         "10",
		"category_id":   "phones",
		"category_name": "Điện thoại",
		"rating":        "4.5",
		"units_sold":    "300",
		"created_at":    "2026-05-01T00:00:00Z",
	}
}

// --- Tests ---

func TestFetchCandidates(t *testing.T) {
	store := &mockStore{
		keys: []string{"catalog:product:2", "catalog:product:1"},
		hashes: map[string]map[string]string{
			"catalog:product:1": productHash("1", "iPhone 15 Pro Max", "34990000"),
			"catalog:product:2": productHash("2", "Samsung Galaxy S24", "31990000"),
		},
	}
	repo := New(store, "catalog:product:", nil)

	items, err := repo.FetchCandidates(context.Background(), &filter.Filter{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}
	// Keys are sorted, so item 1 comes first regardless of scan order.
	if items[0].ID != "1" || items[1].ID != "2" {
		t.Errorf("candidate order not deterministic: %s, %s", items[0].ID, items[1].ID)
	}
	if items[0].Price != 34990000 || items[0].StockCount != 10 || items[0].AvgRating != 4.5 {
		t.Errorf("parsed item mismatch: %+v", items[0])
	}
	if items[0].CreatedAt.IsZero() {
		t.Error("created_at not parsed")
	}
}

func TestFetchCandidates_AppliesFilter(t *testing.T) {
	maxPrice := int64(32000000)
	store := &mockStore{
		keys: []string{"catalog:product:1", "catalog:product:2"},
		hashes: map[string]map[string]string{
			"catalog:product:1": productHash("1", "iPhone 15 Pro Max", "34990000"),
			"catalog:product:2": productHash("2", "Samsung Galaxy S24", "31990000"),
		},
	}
	repo := New(store, "catalog:product:", nil)

	items, err := repo.FetchCandidates(context.Background(), &filter.Filter{PriceMax: &maxPrice})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 1 || items[0].ID != "2" {
		t.Fatalf("expected only item 2, got %+v", items)
	}
}

func TestFetchCandidates_SkipsBrokenHashes(t *testing.T) {
	store := &mockStore{
		keys: []string{"catalog:product:1", "catalog:product:bad"},
		hashes: map[string]map[string]string{
			"catalog:product:1":   productHash("1", "iPhone 15 Pro Max", "34990000"),
			"catalog:product:bad": {"id": "bad", "name": "x", "price": "not-a-number"},
		},
	}
	repo := New(store, "catalog:product:", nil)

	items, err := repo.FetchCandidates(context.Background(), &filter.Filter{})
	if err != nil {
		t.Fatalf("broken hash must not fail the fetch: %v", err)
	}
	if len(items) != 1 || items[0].ID != "1" {
		t.Errorf("expected only the valid item, got %+v", items)
	}
}

func TestFetchCandidates_Empty(t *testing.T) {
	repo := New(&mockStore{}, "catalog:product:", nil)
	items, err := repo.FetchCandidates(context.Background(), &filter.Filter{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 0 {
		t.Errorf("expected no items, got %d", len(items))
	}
}

func TestFetchCandidates_StoreErrors(t *testing.T) {
	scanFail := New(&mockStore{scanErr: errors.New("conn refused")}, "p:", nil)
	if _, err := scanFail.FetchCandidates(context.Background(), &filter.Filter{}); err == nil {
		t.Error("expected scan error to propagate")
	}

	readFail := New(&mockStore{keys: []string{"p:1"}, readErr: errors.New("conn reset")}, "p:", nil)
	if _, err := readFail.FetchCandidates(context.Background(), &filter.Filter{}); err == nil {
		t.Error("expected read error to propagate")
	}
}
