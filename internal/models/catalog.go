// Filmgraph - Preference Graph Film Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/filmgraph

package models

import "time"

// User is an application user. Only the identifier takes part in the graph.
type User struct {
	ID       int    `json:"id"`
	Username string `json:"username,omitempty"`
}

// Film is a catalog film. Title is unique across the catalog.
type Film struct {
	ID          int        `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	ReleaseDate *time.Time `json:"release_date,omitempty"`
	GenreID     *int       `json:"genre_id,omitempty"`
	Director    string     `json:"director,omitempty"`
	Rating      *float64   `json:"rating,omitempty"`
}

// Genre is a catalog genre. Name is unique across the catalog.
type Genre struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// UserFilm records that a user interacted with a film.
type UserFilm struct {
	UserID int `json:"user_id"`
	FilmID int `json:"film_id"`
}

// UserGenre records that a user interacted with a genre.
type UserGenre struct {
	UserID  int `json:"user_id"`
	GenreID int `json:"genre_id"`
}

// Rating is a scored user/film interaction. A user rates a film at most once.
type Rating struct {
	UserID int     `json:"user_id"`
	FilmID int     `json:"film_id"`
	Score  float64 `json:"score"`
}

// Records is a full snapshot of the catalog and its interactions.
type Records struct {
	Users      []User      `json:"users"`
	Films      []Film      `json:"films"`
	Genres     []Genre     `json:"genres"`
	UserFilms  []UserFilm  `json:"user_films"`
	UserGenres []UserGenre `json:"user_genres"`
	Ratings    []Rating    `json:"ratings"`
}

// RecommendationStatistic is persisted every time recommendations are served.
type RecommendationStatistic struct {
	ID         int64     `json:"id"`
	UserID     int       `json:"user_id"`
	FilmCount  int       `json:"film_count"`
	GenreCount int       `json:"genre_count"`
	CreatedAt  time.Time `json:"created_at"`
}
