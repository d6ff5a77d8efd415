// Package metrics provides Prometheus metrics for partypulse.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// HTTPRequestsTotal counts dashboard requests by route and status.
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "partypulse",
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"route", "status"},
	)

	// HTTPRequestDuration measures request handling time.
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "partypulse",
			Name:      "http_request_duration_seconds",
			Help:      "Duration of HTTP requests in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"route"},
	)

	// DatasetRecords reports the size of the loaded dataset.
	DatasetRecords = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "partypulse",
			Name:      "dataset_records",
			Help:      "Number of records in the loaded dataset",
		},
		[]string{"dataset"},
	)

	// AnnotationsTotal counts LLM annotation attempts by outcome.
	AnnotationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "partypulse",
			Name:      "annotations_total",
			Help:      "Total number of account annotation attempts",
		},
		[]string{"status"},
	)
)

// RecordRequest records one handled HTTP request.
func RecordRequest(route string, status int, duration time.Duration) {
	HTTPRequestsTotal.WithLabelValues(route, strconv.Itoa(status)).Inc()
	HTTPRequestDuration.WithLabelValues(route).Observe(duration.Seconds())
}

// SetDatasetSize records the number of tweets and annotation records.
func SetDatasetSize(tweets, topics int) {
	DatasetRecords.WithLabelValues("tweets").Set(float64(tweets))
	DatasetRecords.WithLabelValues("topics").Set(float64(topics))
}

// RecordAnnotation records an annotation attempt; status is "ok",
// "skipped" or "error".
func RecordAnnotation(status string) {
	AnnotationsTotal.WithLabelValues(status).Inc()
}

// Handler exposes the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}
