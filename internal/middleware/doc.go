// Filmgraph - Preference Graph Film Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/filmgraph

/*
Package middleware provides HTTP middleware for the filmgraph API.

Key Components:

  - RequestID: propagates or generates X-Request-ID and seeds the logging context
  - PrometheusMetrics: request counts, latency and in-flight gauge per route pattern
  - AccessLog: structured request logging with slow request warnings

All middleware use the chi signature func(http.Handler) http.Handler:

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.AccessLog(time.Second))
	r.Use(middleware.PrometheusMetrics)

Metrics are labelled with the chi route pattern (for example
/api/v1/recommendations/user/{userID}) rather than the raw path, which keeps
label cardinality bounded.
*/
package middleware
