// Filmgraph - Preference Graph Film Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/filmgraph

/*
Package api provides the HTTP interface of filmgraph using the Chi router.

# Endpoints

	GET /api/v1/health                                         liveness, database ping, engine counters
	GET /api/v1/recommendations/user/{userID}                  composite recommendation
	GET /api/v1/recommendations/user/{userID}/analysis         raw PageRank and similarity scores
	GET /api/v1/recommendations/user/{userID}/statistics       served recommendation history
	GET /metrics                                               Prometheus exposition

Query parameters:

  - k: neighbour count (default from configuration, values above max_k are clamped)
  - top_films, top_genres: size of the PageRank lists (0 selects the defaults)
  - limit: statistics rows to return (default 20, max 1000)

# Responses

Every endpoint except /metrics answers with the models.APIResponse envelope:

	{
	  "status": "success",
	  "data": {...},
	  "metadata": {"timestamp": "...", "request_id": "...", "query_time_ms": 12}
	}

Engine errors map to status codes: invalid arguments 400, graph too large 503,
data store failures (including an open circuit breaker) 502, anything else 500.

# Middleware

Every route passes through request id propagation, panic recovery, access
logging and CORS. API routes add IP rate limiting (go-chi/httprate), security
headers and Prometheus instrumentation.
*/
package api
