// Tyremark - TPMS Marker Store and Analytics Visualization
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tyremark/tyremark

// Package metrics provides Prometheus instrumentation for the marker store
// and the API: database query latency, endpoint throughput, and the size
// of the marker table.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Database metrics
	DBQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "duckdb_query_duration_seconds",
			Help:    "Duration of DuckDB queries in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation", "table"},
	)

	DBQueryErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "duckdb_query_errors_total",
			Help: "Total number of DuckDB query errors",
		},
		[]string{"operation", "table"},
	)

	// API endpoint metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Current number of active API requests",
		},
	)

	// Domain metrics
	MarkersTotal = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "markers_total",
			Help: "Current number of stored markers",
		},
	)

	MarkersCreated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "markers_created_total",
			Help: "Total number of markers created since startup",
		},
	)

	MarkersDeleted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "markers_deleted_total",
			Help: "Total number of markers deleted since startup",
		},
	)

	ViewBuildDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "view_build_duration_seconds",
			Help:    "Time spent assembling analytics views",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"view"},
	)

	ViewInsufficientData = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "view_insufficient_data_total",
			Help: "View requests rejected for lack of qualifying readings",
		},
		[]string{"view"},
	)
)

// RecordDBQuery records a database query metric.
func RecordDBQuery(operation, table string, duration time.Duration, err error) {
	DBQueryDuration.WithLabelValues(operation, table).Observe(duration.Seconds())
	if err != nil {
		DBQueryErrors.WithLabelValues(operation, table).Inc()
	}
}

// RecordAPIRequest records an API request metric.
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// RecordViewBuild records a view assembly metric.
func RecordViewBuild(view string, duration time.Duration) {
	ViewBuildDuration.WithLabelValues(view).Observe(duration.Seconds())
}

// TrackActiveRequest tracks active API requests.
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}
