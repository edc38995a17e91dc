// Filmgraph - Preference Graph Film Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/filmgraph

package metrics

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Database Metrics
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
		[]string{"operation", "table", "error_type"},
	)

	DataVersion = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "filmgraph_data_version",
			Help: "Current data version of the record store (bumps on every write)",
		},
	)

	// Recommendation Metrics
	RecommendRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "filmgraph_recommend_requests_total",
			Help: "Total number of recommendation computations",
		},
		[]string{"operation", "outcome"}, // outcome: "success", "error"
	)

	RecommendDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "filmgraph_recommend_duration_seconds",
			Help:    "End-to-end duration of recommendation computations",
			Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"operation"},
	)

	GraphNodes = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "filmgraph_graph_nodes",
			Help: "Node count of the most recently built preference graph",
		},
	)

	GraphEdges = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "filmgraph_graph_edges",
			Help: "Edge count of the most recently built preference graph",
		},
	)

	GraphBuildDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "filmgraph_graph_build_duration_seconds",
			Help:    "Time to fetch records and build the preference graph",
			Buckets: prometheus.DefBuckets,
		},
	)

	PageRankIterations = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "filmgraph_pagerank_iterations",
			Help:    "Power iterations used per PageRank run",
			Buckets: []float64{5, 10, 20, 30, 50, 75, 100},
		},
	)

	PageRankNonConverged = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "filmgraph_pagerank_nonconverged_total",
			Help: "PageRank runs that hit the iteration limit before converging",
		},
	)

	UnresolvedNodes = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "filmgraph_unresolved_nodes_total",
			Help: "Graph nodes whose title or name could not be resolved",
		},
		[]string{"kind"},
	)

	RecommendCacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "filmgraph_recommend_cache_hits_total",
			Help: "Total number of recommendation result cache hits",
		},
	)

	RecommendCacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "filmgraph_recommend_cache_misses_total",
			Help: "Total number of recommendation result cache misses",
		},
	)

	// API Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_requests_active",
			Help: "Number of HTTP requests currently being served",
		},
	)

	// Circuit Breaker Metrics
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_requests_total",
			Help: "Total number of requests through circuit breaker",
		},
		[]string{"name", "result"}, // result: "success", "failure", "rejected"
	)

	CircuitBreakerConsecutiveFailures = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_consecutive_failures",
			Help: "Current number of consecutive failures",
		},
		[]string{"name"},
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_state_transitions_total",
			Help: "Total number of circuit breaker state transitions",
		},
		[]string{"name", "from_state", "to_state"},
	)
)

// RecordDBQuery records a database query metric
func RecordDBQuery(operation, table string, duration time.Duration, err error) {
	DBQueryDuration.WithLabelValues(operation, table).Observe(duration.Seconds())
	if err != nil {
		DBQueryErrors.WithLabelValues(operation, table, classifyError(err)).Inc()
	}
}

// RecordRecommendation records one engine computation.
func RecordRecommendation(operation string, duration time.Duration, err error) {
	outcome := "success"
	if err != nil {
		outcome = "error"
	}
	RecommendRequests.WithLabelValues(operation, outcome).Inc()
	RecommendDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

// RecordGraphBuild records the size of a freshly built graph and how long it took.
func RecordGraphBuild(nodes, edges int, duration time.Duration) {
	GraphNodes.Set(float64(nodes))
	GraphEdges.Set(float64(edges))
	GraphBuildDuration.Observe(duration.Seconds())
}

// RecordPageRank records the outcome of one PageRank run.
func RecordPageRank(iterations int, converged bool) {
	PageRankIterations.Observe(float64(iterations))
	if !converged {
		PageRankNonConverged.Inc()
	}
}

// RecordUnresolved counts graph nodes that had no matching catalog entry.
func RecordUnresolved(kind string, count int) {
	if count > 0 {
		UnresolvedNodes.WithLabelValues(kind).Add(float64(count))
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

// classifyError maps an error onto a small fixed label set.
func classifyError(err error) string {
	msg := strings.ToLower(err.Error())
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return "timeout"
	case errors.Is(err, context.Canceled):
		return "canceled"
	case strings.Contains(msg, "constraint"):
		return "constraint"
	case strings.Contains(msg, "connection"):
		return "connection"
	default:
		return "other"
	}
}
