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
	"github.com/tomtom215/filmgraph/internal/models"
)

// DemoRecords returns a small catalog with overlapping tastes, enough for
// every recommendation path to produce output.
func DemoRecords() *models.Records {
	date := func(y int, m time.Month, d int) *time.Time {
		t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
		return &t
	}
	intp := func(v int) *int { return &v }
	floatp := func(v float64) *float64 { return &v }

	return &models.Records{
		Users: []models.User{
			{ID: 1, Username: "alice"},
			{ID: 2, Username: "bob"},
			{ID: 3, Username: "carol"},
			{ID: 4, Username: "dave"},
			{ID: 5, Username: "erin"},
		},
		Genres: []models.Genre{
			{ID: 1, Name: "Anime"},
			{ID: 2, Name: "Biography"},
			{ID: 3, Name: "Action"},
			{ID: 4, Name: "Detective"},
			{ID: 5, Name: "Comedy"},
			{ID: 6, Name: "Horror"},
			{ID: 7, Name: "Science Fiction"},
			{ID: 8, Name: "Adventure"},
			{ID: 9, Name: "Animation"},
		},
		Films: []models.Film{
			{ID: 1, Title: "Spirited Away", ReleaseDate: date(2001, time.July, 20), GenreID: intp(1), Director: "Hayao Miyazaki", Rating: floatp(8.6)},
			{ID: 2, Title: "Oppenheimer", ReleaseDate: date(2023, time.July, 21), GenreID: intp(2), Director: "Christopher Nolan", Rating: floatp(8.3)},
			{ID: 3, Title: "Mad Max: Fury Road", ReleaseDate: date(2015, time.May, 15), GenreID: intp(3), Director: "George Miller", Rating: floatp(8.1)},
			{ID: 4, Title: "Knives Out", ReleaseDate: date(2019, time.November, 27), GenreID: intp(4), Director: "Rian Johnson", Rating: floatp(7.9)},
			{ID: 5, Title: "The Grand Budapest Hotel", ReleaseDate: date(2014, time.March, 28), GenreID: intp(5), Director: "Wes Anderson", Rating: floatp(8.1)},
			{ID: 6, Title: "The Thing", ReleaseDate: date(1982, time.June, 25), GenreID: intp(6), Director: "John Carpenter", Rating: floatp(8.2)},
			{ID: 7, Title: "Arrival", ReleaseDate: date(2016, time.November, 11), GenreID: intp(7), Director: "Denis Villeneuve", Rating: floatp(7.9)},
			{ID: 8, Title: "Interstellar", ReleaseDate: date(2014, time.November, 7), GenreID: intp(7), Director: "Christopher Nolan", Rating: floatp(8.7)},
			{ID: 9, Title: "Raiders of the Lost Ark", ReleaseDate: date(1981, time.June, 12), GenreID: intp(8), Director: "Steven Spielberg", Rating: floatp(8.4)},
			{ID: 10, Title: "Spider-Man: Into the Spider-Verse", ReleaseDate: date(2018, time.December, 14), GenreID: intp(9), Director: "Peter Ramsey", Rating: floatp(8.4)},
		},
		UserFilms: []models.UserFilm{
			{UserID: 1, FilmID: 7}, {UserID: 1, FilmID: 8}, {UserID: 1, FilmID: 2},
			{UserID: 2, FilmID: 8}, {UserID: 2, FilmID: 3}, {UserID: 2, FilmID: 9},
			{UserID: 3, FilmID: 1}, {UserID: 3, FilmID: 10}, {UserID: 3, FilmID: 7},
			{UserID: 4, FilmID: 4}, {UserID: 4, FilmID: 5}, {UserID: 4, FilmID: 2},
			{UserID: 5, FilmID: 6}, {UserID: 5, FilmID: 3},
		},
		UserGenres: []models.UserGenre{
			{UserID: 1, GenreID: 7}, {UserID: 2, GenreID: 3}, {UserID: 2, GenreID: 7},
			{UserID: 3, GenreID: 1}, {UserID: 3, GenreID: 9}, {UserID: 4, GenreID: 4},
			{UserID: 4, GenreID: 5}, {UserID: 5, GenreID: 6},
		},
		Ratings: []models.Rating{
			{UserID: 1, FilmID: 8, Score: 9}, {UserID: 2, FilmID: 8, Score: 8},
			{UserID: 2, FilmID: 9, Score: 7}, {UserID: 3, FilmID: 1, Score: 10},
			{UserID: 4, FilmID: 5, Score: 8}, {UserID: 5, FilmID: 6, Score: 9},
		},
	}
}

// SeedDemoData imports DemoRecords into an empty store. It reports whether
// anything was written; a store that already has users is left untouched.
func (db *DB) SeedDemoData(ctx context.Context) (bool, error) {
	counts, err := db.GetRecordCounts(ctx)
	if err != nil {
		return false, fmt.Errorf("check existing data: %w", err)
	}
	if counts.Users > 0 {
		logging.Debug().Int64("users", counts.Users).Msg("Store not empty, skipping demo data")
		return false, nil
	}

	rec := DemoRecords()
	if err := db.ImportRecords(ctx, rec); err != nil {
		return false, fmt.Errorf("seed demo data: %w", err)
	}

	logging.Info().
		Int("users", len(rec.Users)).
		Int("films", len(rec.Films)).
		Int("genres", len(rec.Genres)).
		Msg("Seeded demo data")
	return true, nil
}
