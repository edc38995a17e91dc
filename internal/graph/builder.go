// Filmgraph - Preference Graph Film Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/filmgraph

package graph

import "github.com/tomtom215/filmgraph/internal/models"

// Build constructs the preference graph from a record snapshot.
//
// Nodes are inserted users first, then films, then genres. Edges follow in
// the order user/film interactions, user/genre interactions, ratings, so a
// rating always overwrites the plain interaction edge for the same pair.
// A nil snapshot yields an empty graph.
func Build(rec *models.Records) *Graph {
	g := New()
	if rec == nil {
		return g
	}

	for i := range rec.Users {
		g.AddNode(User(rec.Users[i].ID))
	}
	for i := range rec.Films {
		g.AddNode(Film(rec.Films[i].ID))
	}
	for i := range rec.Genres {
		g.AddNode(Genre(rec.Genres[i].ID))
	}

	for _, uf := range rec.UserFilms {
		g.AddEdge(User(uf.UserID), Film(uf.FilmID), EdgeAttrs{Interaction: InteractionRated})
	}
	for _, ug := range rec.UserGenres {
		g.AddEdge(User(ug.UserID), Genre(ug.GenreID), EdgeAttrs{Interaction: InteractionRated})
	}
	for _, r := range rec.Ratings {
		score := r.Score
		g.AddEdge(User(r.UserID), Film(r.FilmID), EdgeAttrs{Interaction: InteractionRated, Score: &score})
	}

	return g
}

// CountNodes returns the number of nodes Build would create from rec,
// including endpoints that interactions reference but the entity lists omit.
func CountNodes(rec *models.Records) int {
	if rec == nil {
		return 0
	}
	seen := make(map[NodeID]struct{}, len(rec.Users)+len(rec.Films)+len(rec.Genres))
	add := func(id NodeID) { seen[id] = struct{}{} }

	for i := range rec.Users {
		add(User(rec.Users[i].ID))
	}
	for i := range rec.Films {
		add(Film(rec.Films[i].ID))
	}
	for i := range rec.Genres {
		add(Genre(rec.Genres[i].ID))
	}
	for _, uf := range rec.UserFilms {
		add(User(uf.UserID))
		add(Film(uf.FilmID))
	}
	for _, ug := range rec.UserGenres {
		add(User(ug.UserID))
		add(Genre(ug.GenreID))
	}
	for _, r := range rec.Ratings {
		add(User(r.UserID))
		add(Film(r.FilmID))
	}
	return len(seen)
}
