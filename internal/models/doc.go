// Filmgraph - Preference Graph Film Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/filmgraph

/*
Package models defines the data structures shared across Filmgraph.

Catalog Records:

  - User, Film, Genre: the entities that become graph nodes
  - UserFilm, UserGenre: unweighted "rated" interactions
  - Rating: a scored user/film interaction
  - Records: the full snapshot consumed by the graph builder

Persistence:

  - RecommendationStatistic: one row per served recommendation, recording how many
    film titles and genre names were returned

API:

  - APIResponse, Metadata, APIError: the standard response envelope used by every
    HTTP handler

Models carry no behaviour beyond small helpers. Database scanning lives in
internal/database and graph construction in internal/graph.
*/
package models
