// Filmgraph - Preference Graph Film Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/filmgraph

/*
Package metrics defines the Prometheus instrumentation for Filmgraph.

All collectors are registered on the default registry through promauto and are
exposed by the API at /metrics.

# Metric Families

Database (DuckDB):
  - duckdb_query_duration_seconds{operation, table}
  - duckdb_query_errors_total{operation, table, error_type}
  - filmgraph_data_version

Recommendations:
  - filmgraph_recommend_requests_total{operation, outcome}
  - filmgraph_recommend_duration_seconds{operation}
  - filmgraph_graph_nodes, filmgraph_graph_edges
  - filmgraph_graph_build_duration_seconds
  - filmgraph_pagerank_iterations, filmgraph_pagerank_nonconverged_total
  - filmgraph_unresolved_nodes_total{kind}
  - filmgraph_recommend_cache_hits_total, filmgraph_recommend_cache_misses_total

API:
  - http_requests_total{method, endpoint, status}
  - http_request_duration_seconds{method, endpoint}
  - http_requests_active

Circuit breaker:
  - circuit_breaker_state{name}
  - circuit_breaker_requests_total{name, result}
  - circuit_breaker_consecutive_failures{name}
  - circuit_breaker_state_transitions_total{name, from_state, to_state}

# Usage

	start := time.Now()
	rows, err := db.QueryContext(ctx, query)
	metrics.RecordDBQuery("select", "films", time.Since(start), err)
*/
package metrics
