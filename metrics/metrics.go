// Package metrics holds the Prometheus collectors of the API.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "riotstats_http_requests_total",
			Help: "Total number of HTTP requests by route, method and status",
		},
		[]string{"route", "method", "status"},
	)

	HTTPDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "riotstats_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"route", "method"},
	)

	MongoDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "riotstats_mongo_operation_duration_seconds",
			Help:    "Duration of MongoDB operations in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"collection", "operation"},
	)

	MongoErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "riotstats_mongo_operation_errors_total",
			Help: "Total number of failed MongoDB operations",
		},
		[]string{"collection", "operation"},
	)

	// CollectionDocuments is refreshed by the store monitor job.
	CollectionDocuments = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "riotstats_collection_documents",
			Help: "Estimated number of documents per collection",
		},
		[]string{"collection"},
	)

	StoreUp = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "riotstats_store_up",
			Help: "1 when the last MongoDB ping succeeded, 0 otherwise",
		},
	)
)

// RecordHTTP records one served request.
func RecordHTTP(route, method string, status int, elapsed time.Duration) {
	HTTPRequests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	HTTPDuration.WithLabelValues(route, method).Observe(elapsed.Seconds())
}

// RecordMongo records one MongoDB round-trip.
func RecordMongo(collection, operation string, elapsed time.Duration, err error) {
	MongoDuration.WithLabelValues(collection, operation).Observe(elapsed.Seconds())
	if err != nil {
		MongoErrors.WithLabelValues(collection, operation).Inc()
	}
}
