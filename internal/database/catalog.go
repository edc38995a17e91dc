// Filmgraph - Preference Graph Film Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/filmgraph

package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/tomtom215/filmgraph/internal/models"
	"github.com/tomtom215/filmgraph/internal/recommend"
)

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// queryList runs query and scans every row with scan.
func queryList[T any](ctx context.Context, db *DB, table, query string, scan func(rowScanner) (T, error)) (result []T, err error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	start := time.Now()
	defer func() { observe("select", table, start, err) }()

	rows, err := db.conn.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", table, err)
	}
	defer closeWithLog(rows, "rows")

	result = []T{}
	for rows.Next() {
		item, err := scan(rows)
		if err != nil {
			return nil, fmt.Errorf("scan %s: %w", table, err)
		}
		result = append(result, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate %s: %w", table, err)
	}
	return result, nil
}

// ListUsers returns every user ordered by id.
func (db *DB) ListUsers(ctx context.Context) ([]models.User, error) {
	return queryList(ctx, db, "users", `SELECT id, username FROM users ORDER BY id`,
		func(r rowScanner) (models.User, error) {
			var u models.User
			err := r.Scan(&u.ID, &u.Username)
			return u, err
		})
}

// ListGenres returns every genre ordered by id.
func (db *DB) ListGenres(ctx context.Context) ([]models.Genre, error) {
	return queryList(ctx, db, "genres", `SELECT id, name FROM genres ORDER BY id`,
		func(r rowScanner) (models.Genre, error) {
			var g models.Genre
			err := r.Scan(&g.ID, &g.Name)
			return g, err
		})
}

const filmColumns = `id, title, description, release_date, genre_id, director, rating`

// scanFilm scans one row selected with filmColumns.
func scanFilm(r rowScanner) (models.Film, error) {
	var (
		f           models.Film
		releaseDate sql.NullTime
		genreID     sql.NullInt64
		rating      sql.NullFloat64
	)
	if err := r.Scan(&f.ID, &f.Title, &f.Description, &releaseDate, &genreID, &f.Director, &rating); err != nil {
		return models.Film{}, err
	}
	if releaseDate.Valid {
		t := releaseDate.Time
		f.ReleaseDate = &t
	}
	if genreID.Valid {
		id := int(genreID.Int64)
		f.GenreID = &id
	}
	if rating.Valid {
		v := rating.Float64
		f.Rating = &v
	}
	return f, nil
}

// ListFilms returns every film ordered by id.
func (db *DB) ListFilms(ctx context.Context) ([]models.Film, error) {
	return queryList(ctx, db, "films", `SELECT `+filmColumns+` FROM films ORDER BY id`, scanFilm)
}

// ListUserFilms returns every user-film interaction.
func (db *DB) ListUserFilms(ctx context.Context) ([]models.UserFilm, error) {
	return queryList(ctx, db, "user_films", `SELECT user_id, film_id FROM user_films ORDER BY user_id, film_id`,
		func(r rowScanner) (models.UserFilm, error) {
			var uf models.UserFilm
			err := r.Scan(&uf.UserID, &uf.FilmID)
			return uf, err
		})
}

// ListUserGenres returns every user-genre preference.
func (db *DB) ListUserGenres(ctx context.Context) ([]models.UserGenre, error) {
	return queryList(ctx, db, "user_genres", `SELECT user_id, genre_id FROM user_genres ORDER BY user_id, genre_id`,
		func(r rowScanner) (models.UserGenre, error) {
			var ug models.UserGenre
			err := r.Scan(&ug.UserID, &ug.GenreID)
			return ug, err
		})
}

// ListRatings returns every rating.
func (db *DB) ListRatings(ctx context.Context) ([]models.Rating, error) {
	return queryList(ctx, db, "ratings", `SELECT user_id, film_id, score FROM ratings ORDER BY user_id, film_id`,
		func(r rowScanner) (models.Rating, error) {
			var rt models.Rating
			err := r.Scan(&rt.UserID, &rt.FilmID, &rt.Score)
			return rt, err
		})
}

// GetFilmByID returns one film, or an error wrapping recommend.ErrNotFound.
func (db *DB) GetFilmByID(ctx context.Context, id int) (film *models.Film, err error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	start := time.Now()
	defer func() { observe("get", "films", start, ignoreNotFound(err)) }()

	row := db.conn.QueryRowContext(ctx, `SELECT `+filmColumns+` FROM films WHERE id = ?`, id)
	f, err := scanFilm(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("film %d: %w", id, recommend.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get film %d: %w", id, err)
	}
	return &f, nil
}

// GetGenreByID returns one genre, or an error wrapping recommend.ErrNotFound.
func (db *DB) GetGenreByID(ctx context.Context, id int) (genre *models.Genre, err error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	start := time.Now()
	defer func() { observe("get", "genres", start, ignoreNotFound(err)) }()

	var g models.Genre
	err = db.conn.QueryRowContext(ctx, `SELECT id, name FROM genres WHERE id = ?`, id).Scan(&g.ID, &g.Name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("genre %d: %w", id, recommend.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get genre %d: %w", id, err)
	}
	return &g, nil
}

// ignoreNotFound drops lookup misses so they are not counted as query errors.
func ignoreNotFound(err error) error {
	if errors.Is(err, recommend.ErrNotFound) {
		return nil
	}
	return err
}

var _ recommend.DataProvider = (*DB)(nil)
