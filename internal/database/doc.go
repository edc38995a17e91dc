// Filmgraph - Preference Graph Film Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/filmgraph

/*
Package database provides the DuckDB store behind filmgraph.

The store holds the film catalog (users, films, genres), the three
interaction tables the preference graph is built from (user_films,
user_genres, ratings) and the recommendation_statistics audit table.

# Data Provider

DB implements recommend.DataProvider directly. Every list query returns rows
ordered by primary key so graph construction is deterministic, and catalog
lookups for unknown ids return errors wrapping recommend.ErrNotFound.

BreakerProvider wraps any DataProvider with a sony/gobreaker circuit breaker
so a failing store is shed quickly instead of stalling every request:

	db, err := database.New(&cfg.Database)
	provider := database.NewBreakerProvider(db, &cfg.Breaker)
	engine, err := recommend.NewEngine(cfg.Recommend.EngineConfig(), provider, logger)

# Data Version

Every successful write bumps an in-process version counter. The engine
includes the version in its cache keys, so cached recommendations are never
served across a catalog change.

# Connection

Connections are opened with database/sql and the duckdb-go driver. Use
":memory:" as the path for tests and throwaway runs.

# Thread Safety

DB is safe for concurrent use. database/sql pools connections and DuckDB
serialises conflicting writes.
*/
package database
