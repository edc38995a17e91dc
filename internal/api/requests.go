// Filmgraph - Preference Graph Film Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/filmgraph

package api

// RecommendationRequest holds the parameters of the composite endpoint.
// Request structs are validated with go-playground/validator; field names in
// validation messages come from the query tag.
type RecommendationRequest struct {
	UserID    int `query:"user_id" validate:"gt=0"`
	K         int `query:"k" validate:"gte=0"`
	TopFilms  int `query:"top_films" validate:"gte=0,lte=100"`
	TopGenres int `query:"top_genres" validate:"gte=0,lte=100"`
}

// AnalysisRequest holds the parameters of the analysis endpoint.
type AnalysisRequest struct {
	UserID int `query:"user_id" validate:"gt=0"`
	K      int `query:"k" validate:"gte=0"`
}

// StatisticsRequest holds the parameters of the statistics endpoint.
type StatisticsRequest struct {
	UserID int `query:"user_id" validate:"gt=0"`
	Limit  int `query:"limit" validate:"gte=1,lte=1000"`
}

// defaultStatisticsLimit is used when limit is absent.
const defaultStatisticsLimit = 20
