package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Query resolution metrics.
var (
	// ExtractionOutcomesTotal counts resolutions by the source of the returned filters
	// and the reason ("ok", "disabled", "unavailable", "malformed", "timeout", "canceled").
	ExtractionOutcomesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "extraction_outcomes_total",
			Help:      "Filter resolutions by source and reason",
		},
		[]string{"source", "reason"},
	)

	ExtractionDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "extraction_duration_seconds",
			Help:      "Structured extraction call duration in seconds",
			Buckets:   []float64{0.1, 0.25, 0.5, 1, 2, 4, 8},
		},
		[]string{"model"},
	)

	ExtractionTokensTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "extraction_tokens_total",
			Help:      "Tokens consumed by structured extraction",
		},
		[]string{"model"},
	)

	// RetrievalTotal counts semantic retrieval attempts by status
	// ("ok", "empty", "embed_error", "query_error", "disabled").
	RetrievalTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "retrieval_total",
			Help:      "Semantic retrieval attempts by status",
		},
		[]string{"status"},
	)

	SearchResults = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "search_results",
			Help:      "Number of scholarships returned per search",
			Buckets:   []float64{0, 1, 5, 10, 25, 50, 100},
		},
		[]string{"mode"}, // "browse" / "query"
	)

	SearchDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "search_duration_seconds",
			Help:      "End-to-end search duration in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"mode"},
	)

	IndexedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "indexed_scholarships_total",
			Help:      "Scholarships written to the vector index",
		},
		[]string{"status"}, // "ok" / "error"
	)
)

var registerSearchOnce sync.Once

// RegisterSearchMetrics registers resolution, retrieval and indexing metrics.
// Safe to call more than once.
func RegisterSearchMetrics() {
	registerSearchOnce.Do(func() {
		prometheus.MustRegister(
			ExtractionOutcomesTotal,
			ExtractionDuration,
			ExtractionTokensTotal,
			RetrievalTotal,
			SearchResults,
			SearchDuration,
			IndexedTotal,
		)
	})
}
