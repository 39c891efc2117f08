package prometheus

import (
	"sync"
	"time"

	"account-service/pkg/config"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP request metrics
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	// Database operation metrics
	DBOperationDuration *prometheus.HistogramVec

	// Resource operation metrics
	AccountOperationsCounter *prometheus.CounterVec
	TaskOperationsCounter    *prometheus.CounterVec

	initOnce sync.Once
)

// InitMetrics initializes all Prometheus metrics. Safe to call more than
// once; metrics register on the default registry exactly one time.
func InitMetrics(cfg *config.Config) {
	initOnce.Do(func() {
		namespace := cfg.Metrics.Prefix

		HTTPRequestsTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		)

		HTTPRequestDuration = promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "Duration of HTTP requests in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "path", "status"},
		)

		DBOperationDuration = promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "db_operation_duration_seconds",
				Help:      "Duration of database operations in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"operation"},
		)

		AccountOperationsCounter = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "account_operations_total",
				Help:      "Total number of account operations",
			},
			[]string{"operation"},
		)

		TaskOperationsCounter = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "task_operations_total",
				Help:      "Total number of task operations",
			},
			[]string{"operation"},
		)
	})
}

// TrackDBOperation returns a function that records the duration of a
// database operation:
//
//	defer prometheus.TrackDBOperation("insert")(time.Now())
func TrackDBOperation(operation string) func(time.Time) {
	return func(startTime time.Time) {
		duration := time.Since(startTime).Seconds()
		DBOperationDuration.WithLabelValues(operation).Observe(duration)
	}
}

// RecordAccountOperation increments the counter for account operations
func RecordAccountOperation(operation string) {
	AccountOperationsCounter.WithLabelValues(operation).Inc()
}

// RecordTaskOperation increments the counter for task operations
func RecordTaskOperation(operation string) {
	TaskOperationsCounter.WithLabelValues(operation).Inc()
}
