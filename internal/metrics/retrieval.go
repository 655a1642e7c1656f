package metrics

import "github.com/prometheus/client_golang/prometheus"

// Retrieval Prometheus metrics.
var (
	SearchesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "hyra",
			Name:      "searches_total",
			Help:      "Total number of search queries by mode and fusion strategy",
		},
		[]string{"mode", "strategy"},
	)

	SearchDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "hyra",
			Name:      "search_duration_seconds",
			Help:      "End-to-end search duration in seconds",
			Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		},
		[]string{"mode"},
	)

	IndexedDocuments = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "hyra",
			Name:      "indexed_documents",
			Help:      "Number of documents in the current BM25 corpus snapshot",
		},
	)

	IndexDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "hyra",
			Name:      "index_duration_seconds",
			Help:      "Index rebuild duration in seconds",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.5, 1, 5, 15, 60},
		},
	)
)

var retrievalMetricsRegistered bool

// RegisterRetrievalMetrics registers search and index metrics. Must be called
// once from main.
func RegisterRetrievalMetrics() {
	if retrievalMetricsRegistered {
		return
	}
	prometheus.MustRegister(SearchesTotal)
	prometheus.MustRegister(SearchDuration)
	prometheus.MustRegister(IndexedDocuments)
	prometheus.MustRegister(IndexDuration)
	retrievalMetricsRegistered = true
}
