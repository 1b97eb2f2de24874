// Marquee - Streaming Catalog Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

// Package metrics registers Marquee's Prometheus collectors with the default
// registry and offers small recording helpers so callers never touch label
// ordering directly.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Catalog Metrics
	CatalogLoads = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "marquee_catalog_loads_total",
			Help: "Catalog file load attempts by outcome",
		},
		[]string{"outcome"}, // "success", "error"
	)

	CatalogLoadDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "marquee_catalog_load_duration_seconds",
			Help:    "Time spent reading and parsing the catalog file",
			Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
	)

	CatalogRows = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "marquee_catalog_rows",
			Help: "Rows in the most recently loaded catalog",
		},
	)

	// Engine Metrics
	EngineQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "marquee_engine_query_duration_seconds",
			Help:    "Duration of aggregate queries by engine",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"engine", "query"},
	)

	EngineQueryErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "marquee_engine_query_errors_total",
			Help: "Aggregate queries that returned an error",
		},
		[]string{"engine", "query"},
	)

	// Chart Metrics
	ChartRenderDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "marquee_chart_render_duration_seconds",
			Help:    "Chart rendering time by chart and output format",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		},
		[]string{"chart", "format"},
	)

	// Result Cache Metrics
	CacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "marquee_result_cache_hits_total",
			Help: "Aggregate results served from cache",
		},
	)

	CacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "marquee_result_cache_misses_total",
			Help: "Aggregate results computed because the cache had no entry",
		},
	)

	// API Endpoint Metrics
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
)

// RecordCatalogLoad records one catalog load attempt.
func RecordCatalogLoad(outcome string, duration time.Duration, rows int) {
	CatalogLoads.WithLabelValues(outcome).Inc()
	CatalogLoadDuration.Observe(duration.Seconds())
	if outcome == "success" {
		CatalogRows.Set(float64(rows))
	}
}

// RecordEngineQuery records one aggregate query.
func RecordEngineQuery(engine, query string, duration time.Duration, err error) {
	EngineQueryDuration.WithLabelValues(engine, query).Observe(duration.Seconds())
	if err != nil {
		EngineQueryErrors.WithLabelValues(engine, query).Inc()
	}
}

// RecordChartRender records one chart render.
func RecordChartRender(chart, format string, duration time.Duration) {
	ChartRenderDuration.WithLabelValues(chart, format).Observe(duration.Seconds())
}

// RecordCacheLookup counts a result cache hit or miss.
func RecordCacheLookup(hit bool) {
	if hit {
		CacheHits.Inc()
	} else {
		CacheMisses.Inc()
	}
}

// RecordAPIRequest records an API request metric
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest tracks active API requests
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}
