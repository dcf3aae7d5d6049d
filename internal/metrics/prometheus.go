package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Profile lifecycle metrics
	ProfilesCreated = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "midas_profiles_created_total",
			Help: "Total number of user profiles created",
		},
	)

	ProfilesUpdated = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "midas_profiles_updated_total",
			Help: "Total number of user profile updates",
		},
	)

	AssessmentsScored = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "midas_assessments_scored_total",
			Help: "Total number of risk assessments scored, by resulting level",
		},
		[]string{"level"}, // conservative|moderate|aggressive|speculative
	)

	ValidationFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "midas_assessment_validation_failures_total",
			Help: "Total number of rejected risk assessments, by field",
		},
		[]string{"field"},
	)

	// Document store metrics
	StoreOperations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "midas_store_operations_total",
			Help: "Total number of document store operations",
		},
		[]string{"op", "status"}, // status: success|error
	)

	StoreLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "midas_store_latency_seconds",
			Help:    "Document store round-trip latency in seconds",
			Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2, 5},
		},
		[]string{"op"},
	)
)

func init() {
	prometheus.MustRegister(
		ProfilesCreated,
		ProfilesUpdated,
		AssessmentsScored,
		ValidationFailures,
		StoreOperations,
		StoreLatency,
	)
}

// ObserveStoreOp records one document store round trip
func ObserveStoreOp(op string, duration time.Duration, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	StoreOperations.WithLabelValues(op, status).Inc()
	StoreLatency.WithLabelValues(op).Observe(duration.Seconds())
}

// Serve exposes the /metrics endpoint on the given address
func Serve(addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	return http.ListenAndServe(addr, mux)
}
