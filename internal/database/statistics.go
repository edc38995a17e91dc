// Filmgraph - Preference Graph Film Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/filmgraph

package database

import (
	"context"
	"fmt"
	"time"

	"github.com/tomtom215/filmgraph/internal/models"
)

// RecordRecommendationStatistic stores the size of a served recommendation.
// Statistics do not feed the graph, so the data version is left unchanged.
func (db *DB) RecordRecommendationStatistic(ctx context.Context, userID, filmCount, genreCount int) (stat *models.RecommendationStatistic, err error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	start := time.Now()
	defer func() { observe("insert", "recommendation_statistics", start, err) }()

	s := models.RecommendationStatistic{UserID: userID, FilmCount: filmCount, GenreCount: genreCount}
	err = db.conn.QueryRowContext(ctx, `
		INSERT INTO recommendation_statistics (user_id, film_count, genre_count)
		VALUES (?, ?, ?)
		RETURNING id, created_at
	`, userID, filmCount, genreCount).Scan(&s.ID, &s.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("insert recommendation statistic: %w", err)
	}
	return &s, nil
}

// ListRecommendationStatistics returns up to limit rows for userID, newest first.
func (db *DB) ListRecommendationStatistics(ctx context.Context, userID, limit int) (stats []models.RecommendationStatistic, err error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	start := time.Now()
	defer func() { observe("select", "recommendation_statistics", start, err) }()

	rows, err := db.conn.QueryContext(ctx, `
		SELECT id, user_id, film_count, genre_count, created_at
		FROM recommendation_statistics
		WHERE user_id = ?
		ORDER BY created_at DESC, id DESC
		LIMIT ?
	`, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("query recommendation statistics: %w", err)
	}
	defer closeWithLog(rows, "rows")

	stats = []models.RecommendationStatistic{}
	for rows.Next() {
		var s models.RecommendationStatistic
		if err := rows.Scan(&s.ID, &s.UserID, &s.FilmCount, &s.GenreCount, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan recommendation statistic: %w", err)
		}
		stats = append(stats, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate recommendation statistics: %w", err)
	}
	return stats, nil
}
