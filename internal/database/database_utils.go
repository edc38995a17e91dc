// Filmgraph - Preference Graph Film Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/filmgraph

package database

import (
	"context"
	"fmt"
	"time"

	"github.com/tomtom215/filmgraph/internal/logging"
	"github.com/tomtom215/filmgraph/internal/metrics"
)

// defaultQueryTimeout bounds queries issued without a deadline.
const defaultQueryTimeout = 30 * time.Second

// ensureContext adds the default timeout when ctx has no deadline.
func (db *DB) ensureContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if ctx == nil {
		return context.WithTimeout(context.Background(), defaultQueryTimeout)
	}
	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		return context.WithTimeout(ctx, defaultQueryTimeout)
	}
	return ctx, func() {}
}

// observe records query duration and errors for one table operation.
func observe(operation, table string, start time.Time, err error) {
	metrics.RecordDBQuery(operation, table, time.Since(start), err)
	if isConnectionError(err) {
		logging.Error().Err(err).Str("table", table).Msg("Database connection lost")
	}
}

// Checkpoint forces a WAL checkpoint
func (db *DB) Checkpoint(ctx context.Context) error {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	if _, err := db.conn.ExecContext(ctx, "CHECKPOINT"); err != nil {
		return fmt.Errorf("checkpoint failed: %w", err)
	}
	return nil
}

// RecordCounts holds the row count of each catalog table.
type RecordCounts struct {
	Users      int64 `json:"users"`
	Films      int64 `json:"films"`
	Genres     int64 `json:"genres"`
	UserFilms  int64 `json:"user_films"`
	UserGenres int64 `json:"user_genres"`
	Ratings    int64 `json:"ratings"`
}

// GetRecordCounts returns the count of records in the catalog tables
func (db *DB) GetRecordCounts(ctx context.Context) (RecordCounts, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	var c RecordCounts
	err := db.conn.QueryRowContext(ctx, `
		SELECT
			(SELECT COUNT(*) FROM users),
			(SELECT COUNT(*) FROM films),
			(SELECT COUNT(*) FROM genres),
			(SELECT COUNT(*) FROM user_films),
			(SELECT COUNT(*) FROM user_genres),
			(SELECT COUNT(*) FROM ratings)
	`).Scan(&c.Users, &c.Films, &c.Genres, &c.UserFilms, &c.UserGenres, &c.Ratings)
	if err != nil {
		return RecordCounts{}, fmt.Errorf("count records: %w", err)
	}
	return c, nil
}
