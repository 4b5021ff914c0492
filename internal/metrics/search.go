package metrics

import "github.com/prometheus/client_golang/prometheus"

// Search pipeline Prometheus metrics.
var (
	SearchesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "carsearch",
			Name:      "searches_total",
			Help:      "Total number of searches executed",
		},
		[]string{"type"}, // "hybrid" / "filter_only"
	)

	SearchDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "carsearch",
			Name:      "search_duration_seconds",
			Help:      "End-to-end search pipeline duration in seconds",
			Buckets:   []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		},
	)

	SearchResults = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "carsearch",
			Name:      "search_results",
			Help:      "Number of candidates surviving hard filters per search",
			Buckets:   []float64{0, 1, 5, 10, 20, 50, 100, 250, 500},
		},
	)

	// FilterBoundSwapsTotal counts inverted min/max ranges repaired during
	// normalization. A growing counter points at an upstream parsing defect.
	FilterBoundSwapsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "carsearch",
			Name:      "filter_bound_swaps_total",
			Help:      "Total inverted filter ranges repaired by swapping",
		},
	)

	ParseFallbacksTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "carsearch",
			Name:      "parse_fallbacks_total",
			Help:      "Total prompt parses degraded to the keyword-scan fallback",
		},
	)

	EmbedFallbacksTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "carsearch",
			Name:      "embed_fallbacks_total",
			Help:      "Total query embeddings degraded to the zero vector",
		},
	)
)

var searchMetricsRegistered bool

// RegisterSearchMetrics registers search Prometheus metrics. Must be called once from main.
func RegisterSearchMetrics() {
	if searchMetricsRegistered {
		return
	}
	prometheus.MustRegister(SearchesTotal)
	prometheus.MustRegister(SearchDuration)
	prometheus.MustRegister(SearchResults)
	prometheus.MustRegister(FilterBoundSwapsTotal)
	prometheus.MustRegister(ParseFallbacksTotal)
	prometheus.MustRegister(EmbedFallbacksTotal)
	searchMetricsRegistered = true
}
