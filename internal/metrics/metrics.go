package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	OutcomeSuccess     = "success"
	OutcomeClientError = "client_error"
	OutcomeServerError = "server_error"

	CacheHit  = "hit"
	CacheMiss = "miss"
)

var (
	IntentsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mechai_intents_total",
			Help: "Classified intents handled by the router, by outcome",
		},
		[]string{"intent", "outcome"},
	)

	ExternalCallDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "mechai_external_call_duration_seconds",
			Help:    "Duration of calls to the language model and object storage",
			Buckets: []float64{0.1, 0.25, 0.5, 1, 2, 5, 10, 30},
		},
		[]string{"operation"},
	)

	ServiceRecordsCreated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "mechai_service_records_created_total",
			Help: "Service records inserted",
		},
	)

	ClassifyCache = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mechai_classify_cache_total",
			Help: "Classification cache lookups, by result",
		},
		[]string{"result"},
	)
)

// ObserveSince records the elapsed time of an external call.
func ObserveSince(operation string, start time.Time) {
	ExternalCallDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
}
