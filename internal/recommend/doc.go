// Filmgraph - Preference Graph Film Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/filmgraph

// Package recommend turns the records of a DataProvider into film and genre
// recommendations.
//
// # Pipeline
//
// Each computation runs the same steps:
//
//  1. Fetch users, films, genres, interactions and ratings concurrently.
//     The first failure aborts the computation (ErrFetch); no partial graph
//     is ever built.
//  2. Build a fresh preference graph (package graph).
//  3. Run PageRank, collaborative filtering and k-nearest-neighbours over
//     that one graph (package algorithms).
//  4. Resolve film and genre ids to titles and names through the Catalog,
//     skipping ids that are not found.
//
// # Results
//
// Engine.Compute returns a Result holding the PageRank top films and genres,
// the recommendation set gathered from similar users, the collaborative
// filtering matches and the nearest neighbours. Engine.Analyze returns the
// raw PageRank scores instead of titles.
//
// # Caching
//
// When enabled, results are cached by user, k, top counts and the provider's
// data version. Any write to the store bumps the version, so a cached result
// is never served for data that has changed since it was computed.
//
// # Errors
//
//   - ErrInvalidArgument: negative k or top counts
//   - ErrGraphTooLarge: the catalog exceeds Limits.MaxGraphNodes
//   - ErrFetch: a record fetch failed
//   - ErrNotFound: returned by Catalog implementations; never surfaced by the engine
//
// An empty store is not an error: every list in the Result is empty.
package recommend
