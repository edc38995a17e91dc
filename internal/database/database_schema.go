// Filmgraph - Preference Graph Film Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/filmgraph

/*
database_schema.go - Database Schema Management

Tables:
  - users, genres, films: the catalog
  - user_films: films a user has viewed, one row per (user, film)
  - user_genres: genres a user prefers, one row per (user, genre)
  - ratings: one score per (user, film), updated in place on re-rating
  - recommendation_statistics: one row per served recommendation

Upserted columns stay out of indexes and unique constraints; DuckDB
rejects ON CONFLICT DO UPDATE assignments to indexed columns.

Interaction tables carry no foreign keys so records can be loaded in any
order; dangling ids surface as unresolved nodes at recommendation time.
*/

//nolint:staticcheck // File documentation, not package doc
package database

import (
	"context"
	"fmt"
)

// createTables creates the core database tables
func (db *DB) createTables(ctx context.Context) error {
	for _, query := range tableCreationQueries {
		if _, err := db.conn.ExecContext(ctx, query); err != nil {
			return fmt.Errorf("failed to create table: %w", err)
		}
	}
	return nil
}

// createIndexes creates the secondary indexes
func (db *DB) createIndexes(ctx context.Context) error {
	for _, query := range indexCreationQueries {
		if _, err := db.conn.ExecContext(ctx, query); err != nil {
			return fmt.Errorf("failed to create index: %w", err)
		}
	}
	return nil
}

var tableCreationQueries = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id INTEGER PRIMARY KEY,
		username VARCHAR NOT NULL,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS genres (
		id INTEGER PRIMARY KEY,
		name VARCHAR NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS films (
		id INTEGER PRIMARY KEY,
		title VARCHAR NOT NULL,
		description VARCHAR NOT NULL DEFAULT '',
		release_date DATE,
		genre_id INTEGER,
		director VARCHAR NOT NULL DEFAULT '',
		rating DOUBLE,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS user_films (
		user_id INTEGER NOT NULL,
		film_id INTEGER NOT NULL,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		PRIMARY KEY (user_id, film_id)
	)`,
	`CREATE TABLE IF NOT EXISTS user_genres (
		user_id INTEGER NOT NULL,
		genre_id INTEGER NOT NULL,
		PRIMARY KEY (user_id, genre_id)
	)`,
	`CREATE TABLE IF NOT EXISTS ratings (
		user_id INTEGER NOT NULL,
		film_id INTEGER NOT NULL,
		score DOUBLE NOT NULL,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		PRIMARY KEY (user_id, film_id)
	)`,
	`CREATE SEQUENCE IF NOT EXISTS recommendation_statistics_id_seq START 1`,
	`CREATE TABLE IF NOT EXISTS recommendation_statistics (
		id BIGINT PRIMARY KEY DEFAULT nextval('recommendation_statistics_id_seq'),
		user_id INTEGER NOT NULL,
		film_count INTEGER NOT NULL,
		genre_count INTEGER NOT NULL,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
}

var indexCreationQueries = []string{
	`CREATE INDEX IF NOT EXISTS idx_recommendation_statistics_user ON recommendation_statistics(user_id, created_at)`,
}
