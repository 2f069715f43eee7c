package query

import (
	"errors"
	"testing"

	"github.com/vinamart/searchd/internal/domain"
	"github.com/vinamart/searchd/internal/domain/search/sortmode"
)

func i64(v int64) *int64 { return &v }
func intp(v int) *int    { return &v }

func TestNew_Defaults(t *testing.T) {
	q, err := New(Params{Term: "iphone"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if q.Sort() != sortmode.Relevance {
		t.Errorf("default sort = %q, want relevance", q.Sort())
	}
	if q.Page() != 1 {
		t.Errorf("default page = %d, want 1", q.Page())
	}
	if q.PageSize() != DefaultPageSize {
		t.Errorf("default page size = %d, want %d", q.PageSize(), DefaultPageSize)
	}
}

func TestNew_PageSizeCapped(t *testing.T) {
	q, err := New(Params{PageSize: 500})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if q.PageSize() != MaxPageSize {
		t.Errorf("page size = %d, want capped at %d", q.PageSize(), MaxPageSize)
	}
}

func TestNew_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		params Params
	}{
		{"negative page", Params{Page: -1}},
		{"negative page size", Params{PageSize: -5}},
		{"unsupported sort", Params{Sort: "cheapest"}},
		{"negative min price", Params{PriceMin: i64(-1)}},
		{"negative max price", Params{PriceMax: i64(-100)}},
		{"rating zero", Params{MinRating: intp(0)}},
		{"rating above five", Params{MinRating: intp(6)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.params)
			if err == nil {
				t.Fatal("expected error")
			}
			if !errors.Is(err, domain.ErrInvalidQuery) {
				t.Errorf("error %v does not wrap ErrInvalidQuery", err)
			}
		})
	}
}

func TestNew_ValidRatingBounds(t *testing.T) {
	for _, r := range []int{1, 5} {
		if _, err := New(Params{MinRating: intp(r)}); err != nil {
			t.Errorf("rating %d should be valid: %v", r, err)
		}
	}
}
