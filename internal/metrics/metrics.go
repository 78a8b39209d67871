// Catalogus - Media Catalog Enrichment and Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/catalogus

// Package metrics provides Prometheus instrumentation for Catalogus:
// enrichment pipeline runs, DuckDB query performance, and API endpoint
// latency and throughput.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Pipeline metrics
	EnrichRunsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "enrich_runs_total",
			Help: "Total number of enrichment pipeline runs",
		},
		[]string{"status"}, // "success" or "failure"
	)

	EnrichRunDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "enrich_run_duration_seconds",
			Help:    "Duration of full enrichment pipeline runs in seconds",
			Buckets: []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60, 120},
		},
	)

	RecordsIngestedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "records_ingested_total",
			Help: "Total number of raw catalog records read from the source",
		},
	)

	RecordsEnrichedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "records_enriched_total",
			Help: "Total number of records enriched across all runs",
		},
	)

	LastRunTimestamp = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "enrich_last_run_timestamp_seconds",
			Help: "Unix timestamp of the last successful pipeline run",
		},
	)

	LastRunRecords = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "enrich_last_run_records",
			Help: "Number of records written by the last successful pipeline run",
		},
	)

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
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		},
		[]string{"method", "endpoint"},
	)
)

// ObserveDBQuery records the duration (and error, if any) of one database
// operation.
func ObserveDBQuery(operation, table string, start time.Time, err error) {
	DBQueryDuration.WithLabelValues(operation, table).Observe(time.Since(start).Seconds())
	if err != nil {
		DBQueryErrors.WithLabelValues(operation, table).Inc()
	}
}

// ObserveAPIRequest records one completed API request.
func ObserveAPIRequest(method, endpoint string, statusCode int, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, strconv.Itoa(statusCode)).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// ObserveRun records one completed pipeline run.
func ObserveRun(status string, duration time.Duration, written int64) {
	EnrichRunsTotal.WithLabelValues(status).Inc()
	EnrichRunDuration.Observe(duration.Seconds())
	if status == "success" {
		LastRunTimestamp.SetToCurrentTime()
		LastRunRecords.Set(float64(written))
	}
}
