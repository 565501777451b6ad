package metrics

import "github.com/prometheus/client_golang/prometheus"

// Search pipeline Prometheus metrics.
var (
	SearchesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "placedex",
			Name:      "searches_total",
			Help:      "Total number of searches executed",
		},
		[]string{"sort"},
	)

	SearchCandidatesDiscarded = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "placedex",
			Name:      "search_candidates_discarded_total",
			Help:      "Candidates discarded by in-memory post-filters",
		},
		[]string{"reason"}, // "geo" / "hours"
	)

	CategoryCacheTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "placedex",
			Name:      "category_cache_total",
			Help:      "Category slug cache hits and misses",
		},
		[]string{"result"}, // "hit" / "miss"
	)
)

// RegisterSearchMetrics registers search metrics with the default registry.
// Called explicitly from main (no init) so tests can use fresh registries.
func RegisterSearchMetrics() {
	prometheus.MustRegister(SearchesTotal)
	prometheus.MustRegister(SearchCandidatesDiscarded)
	prometheus.MustRegister(CategoryCacheTotal)
}
