// Package chi exposes the search engine over HTTP.
package chi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/vinamart/searchd/internal/domain"
	"github.com/vinamart/searchd/internal/domain/search/query"
	"github.com/vinamart/searchd/internal/domain/search/result"
	"github.com/vinamart/searchd/internal/domain/search/sortmode"
)

// Searcher executes validated search queries.
type Searcher interface {
	Search(ctx context.Context, q *query.Query) (result.Page, error)
}

// Pinger checks primary store connectivity for health reporting.
type Pinger interface {
	Ping(ctx context.Context) error
}

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error) bool

// Server is the HTTP API server.
type Server struct {
	search          Searcher
	health          Pinger
	defaultPageSize int
	logger          *zap.Logger
	errorHandlers   []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(search Searcher, health Pinger, defaultPageSize int, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	if defaultPageSize <= 0 {
		defaultPageSize = query.DefaultPageSize
	}
	s := &Server{
		search:          search,
		health:          health,
		defaultPageSize: defaultPageSize,
		logger:          logger,
	}
	s.errorHandlers = []errorHandler{
		sentinelHandler(domain.ErrInvalidQuery, http.StatusBadRequest, "invalid_query"),
		sentinelHandler(domain.ErrBackendUnavailable, http.StatusServiceUnavailable, "backend_unavailable"),
	}
	return s
}

// Register mounts the API routes on the router.
func (s *Server) Register(r chi.Router) {
	r.Get("/api/v1/products/search", s.SearchProducts)
	r.Get("/healthz", s.Healthz)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())
}

// SearchProducts handles GET /api/v1/products/search.
func (s *Server) SearchProducts(w http.ResponseWriter, r *http.Request) {
	q, err := queryFromRequest(r, s.defaultPageSize)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	page, err := s.search.Search(r.Context(), q)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, searchResponseFromPage(&page))
}

// Healthz handles GET /healthz.
func (s *Server) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if s.health != nil {
		if err := s.health.Ping(ctx); err != nil {
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "degraded"})
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// queryFromRequest parses and validates search query parameters.
func queryFromRequest(r *http.Request, defaultPageSize int) (*query.Query, error) {
	vals := r.URL.Query()
	p := query.Params{
		Term:        vals.Get("q"),
		CategoryID:  vals.Get("category"),
		Sort:        sortmode.Mode(vals.Get("sort")),
		InStockOnly: isTruthy(vals.Get("in_stock")),
		BypassCache: isTruthy(vals.Get("nocache")),
		PageSize:    defaultPageSize,
	}

	var err error
	if p.PriceMin, err = parseInt64Param(vals.Get("min_price"), "min_price"); err != nil {
		return nil, err
	}
	if p.PriceMax, err = parseInt64Param(vals.Get("max_price"), "max_price"); err != nil {
		return nil, err
	}
	if p.MinRating, err = parseIntParam(vals.Get("min_rating"), "min_rating"); err != nil {
		return nil, err
	}
	if page, err := parseIntParam(vals.Get("page"), "page"); err != nil {
		return nil, err
	} else if page != nil {
		p.Page = *page
	}
	if limit, err := parseIntParam(vals.Get("limit"), "limit"); err != nil {
		return nil, err
	} else if limit != nil {
		p.PageSize = *limit
	}

	q, err := query.New(p)
	if err != nil {
		return nil, err
	}
	return &q, nil
}

func isTruthy(raw string) bool {
	return raw == "1" || raw == "true"
}

func parseInt64Param(raw, name string) (*int64, error) {
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, invalidParam(name, raw)
	}
	return &v, nil
}

func parseIntParam(raw, name string) (*int, error) {
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return nil, invalidParam(name, raw)
	}
	return &v, nil
}

func invalidParam(name, raw string) error {
	return fmt.Errorf("%w: parameter %s has invalid value %q", domain.ErrInvalidQuery, name, raw)
}

// --- Response shapes ---

type productJSON struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Description  string  `json:"description,omitempty"`
	Price        int64   `json:"price"`
	Stock        int     `json:"stock"`
	CategoryID   string  `json:"category_id,omitempty"`
	CategoryName string  `json:"category_name,omitempty"`
	Brand        string  `json:"brand,omitempty"`
	Rating       float64 `json:"rating,omitempty"`
	UnitsSold    int     `json:"units_sold,omitempty"`
	CreatedAt    string  `json:"created_at,omitempty"`
}

type searchResponse struct {
	Products   []productJSON `json:"products"`
	Total      int           `json:"total"`
	Page       int           `json:"page"`
	Limit      int           `json:"limit"`
	TotalPages int           `json:"totalPages"`
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func searchResponseFromPage(page *result.Page) searchResponse {
	products := make([]productJSON, len(page.Items))
	for i, item := range page.Items {
		p := productJSON{
			ID:           item.ID,
			Name:         item.Name,
			Description:  item.Description,
			Price:        item.Price,
			Stock:        item.StockCount,
			CategoryID:   item.CategoryID,
			CategoryName: item.CategoryName,
			Brand:        item.Brand,
			Rating:       item.AvgRating,
			UnitsSold:    item.UnitsSold,
		}
		if !item.CreatedAt.IsZero() {
			p.CreatedAt = item.CreatedAt.Format(time.RFC3339)
		}
		products[i] = p
	}
	return searchResponse{
		Products:   products,
		Total:      page.Total,
		Page:       page.Page,
		Limit:      page.PageSize,
		TotalPages: page.TotalPages(),
	}
}

// --- Error handling ---

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponse{Code: code, Message: message})
}

func sentinelHandler(sentinel error, status int, code string) errorHandler {
	return func(w http.ResponseWriter, err error) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		msg := sentinel.Error()
		if errors.Is(sentinel, domain.ErrInvalidQuery) {
			// Validation messages are built by us and safe to show.
			msg = err.Error()
		}
		writeError(w, status, code, msg)
		return true
	}
}

func (s *Server) handleDomainError(w http.ResponseWriter, err error) {
	for _, handle := range s.errorHandlers {
		if handle(w, err) {
			return
		}
	}
	s.logger.Error("unhandled search error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
}
