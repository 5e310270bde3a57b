package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	searchRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ongc_search_requests_total",
			Help: "Total number of catalog operations by outcome.",
		},
		[]string{"op", "outcome"},
	)

	searchDurationSeconds = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "ongc_search_duration_seconds",
			Help:    "Duration of catalog operations in seconds.",
			Buckets: prometheus.ExponentialBuckets(0.0005, 2, 14), // 0.5ms to ~4s
		},
		[]string{"op"},
	)

	searchCandidatesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ongc_search_candidates_total",
			Help: "Objects returned by the region prefilter and objects kept after the exact distance check.",
		},
		[]string{"op", "stage"},
	)

	storeOpDurationSeconds = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "ongc_store_operation_duration_seconds",
			Help:    "Duration of catalog store queries in seconds.",
			Buckets: prometheus.ExponentialBuckets(0.0001, 2, 14),
		},
		[]string{"op", "outcome"},
	)

	recordCacheResults = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ongc_record_cache_results_total",
			Help: "Record cache lookups by tier and outcome.",
		},
		[]string{"tier", "outcome"},
	)

	redisOpDurationSeconds = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "redis_operation_duration_seconds",
			Help:    "Duration of redis operations in seconds.",
			Buckets: prometheus.ExponentialBuckets(0.0001, 2, 14),
		},
		[]string{"op", "outcome"},
	)
)

// Collectors returns every collector of this package for registration.
func Collectors() []prometheus.Collector {
	return []prometheus.Collector{
		searchRequestsTotal,
		searchDurationSeconds,
		searchCandidatesTotal,
		storeOpDurationSeconds,
		recordCacheResults,
		redisOpDurationSeconds,
	}
}

func outcome(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}

// ObserveSearch records one catalog operation. kind is the error class, or
// "ok".
func ObserveSearch(op, kind string, durationSeconds float64) {
	searchRequestsTotal.WithLabelValues(op, kind).Inc()
	searchDurationSeconds.WithLabelValues(op).Observe(durationSeconds)
}

func AddCandidates(op string, prefiltered, kept int) {
	searchCandidatesTotal.WithLabelValues(op, "prefilter").Add(float64(prefiltered))
	searchCandidatesTotal.WithLabelValues(op, "kept").Add(float64(kept))
}

func ObserveStoreOp(op string, err error, durationSeconds float64) {
	storeOpDurationSeconds.WithLabelValues(op, outcome(err)).Observe(durationSeconds)
}

func IncRecordCache(tier string, hit bool) {
	o := "miss"
	if hit {
		o = "hit"
	}
	recordCacheResults.WithLabelValues(tier, o).Inc()
}

func ObserveCacheOp(op string, err error, durationSeconds float64) {
	redisOpDurationSeconds.WithLabelValues(op, outcome(err)).Observe(durationSeconds)
}
