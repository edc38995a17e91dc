// Filmgraph - Preference Graph Film Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/filmgraph

/*
Package config provides application configuration for filmgraph.

Configuration is layered with Koanf v2. Later layers override earlier ones:

 1. Defaults built from defaultConfig()
 2. An optional YAML file (CONFIG_PATH, ./config.yaml or /etc/filmgraph/config.yaml)
 3. Environment variables

Only environment variables listed in the env mapping are read, so unrelated
variables never leak into configuration.

# Environment Variables

Server:
  - HTTP_HOST, HTTP_PORT: listen address (default 0.0.0.0:3858)
  - HTTP_READ_TIMEOUT, HTTP_WRITE_TIMEOUT, HTTP_IDLE_TIMEOUT, HTTP_SHUTDOWN_TIMEOUT

Database:
  - DUCKDB_PATH: database file, ":memory:" for an in-process store
  - DUCKDB_MAX_MEMORY, DUCKDB_THREADS
  - SEED_DEMO_DATA: load the demo catalog into an empty store

Logging:
  - LOG_LEVEL: trace, debug, info, warn, error
  - LOG_FORMAT: json or console
  - LOG_CALLER: include file:line

Recommendations:
  - PAGERANK_DAMPING, PAGERANK_TOLERANCE, PAGERANK_MAX_ITERATIONS
  - RECOMMEND_DEFAULT_K, RECOMMEND_MAX_K, RECOMMEND_TOP_FILMS, RECOMMEND_TOP_GENRES
  - RECOMMEND_MAX_GRAPH_NODES, RECOMMEND_FETCH_TIMEOUT
  - RECOMMEND_CACHE_ENABLED, RECOMMEND_CACHE_TTL, RECOMMEND_CACHE_SIZE

Security:
  - RATE_LIMIT_REQUESTS, RATE_LIMIT_WINDOW, DISABLE_RATE_LIMIT
  - CORS_ORIGINS: comma-separated list

Circuit breaker:
  - BREAKER_MAX_REQUESTS, BREAKER_INTERVAL, BREAKER_TIMEOUT
  - BREAKER_MIN_REQUESTS, BREAKER_FAILURE_RATIO

# Usage

	cfg, err := config.LoadWithKoanf()
	if err != nil {
	    log.Fatal().Err(err).Msg("Failed to load configuration")
	}
	engine, err := recommend.NewEngine(cfg.Recommend.EngineConfig(), provider, logger)

Config is immutable after loading and safe for concurrent reads.
*/
package config
