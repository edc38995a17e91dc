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

// exec runs a write statement and bumps the data version when rows changed.
func (db *DB) exec(ctx context.Context, operation, table, query string, args ...any) (err error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	start := time.Now()
	defer func() { observe(operation, table, start, err) }()

	res, err := db.conn.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%s %s: %w", operation, table, err)
	}
	if n, rerr := res.RowsAffected(); rerr != nil || n > 0 {
		db.IncrementDataVersion()
	}
	return nil
}

// nullable dereferences p, mapping nil to SQL NULL.
func nullable[T any](p *T) any {
	if p == nil {
		return nil
	}
	return *p
}

// DO UPDATE SET binds CURRENT_TIMESTAMP as a column name; use now() there.
const (
	upsertUserSQL = `
		INSERT INTO users (id, username) VALUES (?, ?)
		ON CONFLICT (id) DO UPDATE SET username = excluded.username`

	upsertGenreSQL = `
		INSERT INTO genres (id, name) VALUES (?, ?)
		ON CONFLICT (id) DO UPDATE SET name = excluded.name`

	upsertFilmSQL = `
		INSERT INTO films (id, title, description, release_date, genre_id, director, rating)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			title = excluded.title,
			description = excluded.description,
			release_date = excluded.release_date,
			genre_id = excluded.genre_id,
			director = excluded.director,
			rating = excluded.rating,
			updated_at = now()`

	insertUserFilmSQL = `
		INSERT INTO user_films (user_id, film_id) VALUES (?, ?)
		ON CONFLICT DO NOTHING`

	insertUserGenreSQL = `
		INSERT INTO user_genres (user_id, genre_id) VALUES (?, ?)
		ON CONFLICT DO NOTHING`

	upsertRatingSQL = `
		INSERT INTO ratings (user_id, film_id, score) VALUES (?, ?, ?)
		ON CONFLICT (user_id, film_id) DO UPDATE SET score = excluded.score, created_at = now()`
)

func filmArgs(f models.Film) []any {
	return []any{f.ID, f.Title, f.Description, nullable(f.ReleaseDate), nullable(f.GenreID), f.Director, nullable(f.Rating)}
}

// UpsertUser inserts a user or renames an existing one.
func (db *DB) UpsertUser(ctx context.Context, u models.User) error {
	return db.exec(ctx, "upsert", "users", upsertUserSQL, u.ID, u.Username)
}

// UpsertGenre inserts a genre or renames an existing one.
func (db *DB) UpsertGenre(ctx context.Context, g models.Genre) error {
	return db.exec(ctx, "upsert", "genres", upsertGenreSQL, g.ID, g.Name)
}

// UpsertFilm inserts a film or replaces the stored fields of an existing one.
func (db *DB) UpsertFilm(ctx context.Context, f models.Film) error {
	return db.exec(ctx, "upsert", "films", upsertFilmSQL, filmArgs(f)...)
}

// AddUserFilm records that a user viewed a film. Repeat views are ignored.
func (db *DB) AddUserFilm(ctx context.Context, uf models.UserFilm) error {
	return db.exec(ctx, "insert", "user_films", insertUserFilmSQL, uf.UserID, uf.FilmID)
}

// AddUserGenre records that a user prefers a genre. Duplicates are ignored.
func (db *DB) AddUserGenre(ctx context.Context, ug models.UserGenre) error {
	return db.exec(ctx, "insert", "user_genres", insertUserGenreSQL, ug.UserID, ug.GenreID)
}

// UpsertRating stores a user's score for a film, replacing any earlier score.
func (db *DB) UpsertRating(ctx context.Context, r models.Rating) error {
	return db.exec(ctx, "upsert", "ratings", upsertRatingSQL, r.UserID, r.FilmID, r.Score)
}

// ImportRecords upserts every record in rec in a single transaction, using
// the same statements as the single-record helpers.
func (db *DB) ImportRecords(ctx context.Context, rec *models.Records) (err error) {
	if rec == nil {
		return nil
	}
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	start := time.Now()
	defer func() { observe("import", "catalog", start, err) }()

	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin import: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	for _, u := range rec.Users {
		if _, err = tx.ExecContext(ctx, upsertUserSQL, u.ID, u.Username); err != nil {
			return fmt.Errorf("import user %d: %w", u.ID, err)
		}
	}
	for _, g := range rec.Genres {
		if _, err = tx.ExecContext(ctx, upsertGenreSQL, g.ID, g.Name); err != nil {
			return fmt.Errorf("import genre %d: %w", g.ID, err)
		}
	}
	for _, f := range rec.Films {
		if _, err = tx.ExecContext(ctx, upsertFilmSQL, filmArgs(f)...); err != nil {
			return fmt.Errorf("import film %d: %w", f.ID, err)
		}
	}
	for _, uf := range rec.UserFilms {
		if _, err = tx.ExecContext(ctx, insertUserFilmSQL, uf.UserID, uf.FilmID); err != nil {
			return fmt.Errorf("import user film (%d, %d): %w", uf.UserID, uf.FilmID, err)
		}
	}
	for _, ug := range rec.UserGenres {
		if _, err = tx.ExecContext(ctx, insertUserGenreSQL, ug.UserID, ug.GenreID); err != nil {
			return fmt.Errorf("import user genre (%d, %d): %w", ug.UserID, ug.GenreID, err)
		}
	}
	for _, r := range rec.Ratings {
		if _, err = tx.ExecContext(ctx, upsertRatingSQL, r.UserID, r.FilmID, r.Score); err != nil {
			return fmt.Errorf("import rating (%d, %d): %w", r.UserID, r.FilmID, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit import: %w", err)
	}
	db.IncrementDataVersion()
	return nil
}
