package metrics

import "github.com/prometheus/client_golang/prometheus"

// Result source label values for SearchTotal.
const (
	SourceCache    = "cache"
	SourcePrimary  = "primary"
	SourceFallback = "fallback"
)

var (
	// SearchTotal counts answered searches by the source that produced the
	// result.
	SearchTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "searchd",
			Name:      "search_requests_total",
			Help:      "Answered searches by result source",
		},
		[]string{"source"},
	)

	// CacheHits counts result cache hits.
	CacheHits = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "searchd",
		Name:      "result_cache_hits_total",
		Help:      "Result cache hits",
	})

	// CacheMisses counts result cache misses.
	CacheMisses = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "searchd",
		Name:      "result_cache_misses_total",
		Help:      "Result cache misses",
	})

	// SearchDuration observes end-to-end search latency.
	SearchDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "searchd",
		Name:      "search_duration_seconds",
		Help:      "End-to-end search duration in seconds",
		Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
	})
)

// RegisterSearchMetrics registers the engine metrics explicitly (no init()).
func RegisterSearchMetrics() {
	prometheus.MustRegister(SearchTotal, CacheHits, CacheMisses, SearchDuration)
}
