// Filmgraph - Preference Graph Film Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/filmgraph

// Package algorithms implements the graph analytics behind Filmgraph
// recommendations.
//
// Every function is a pure computation over an already built *graph.Graph.
// Nothing here performs I/O; resolving ids to titles is the caller's job.
//
// # Algorithms
//
//   - PageRank: global node importance by power iteration (damping 0.85,
//     tolerance 1e-6, at most 100 iterations by default)
//   - RankItems: PageRank scores restricted to films and genres, best first
//   - SimilarUsers: collaborative filtering by common-neighbour count over
//     users reachable within two hops
//   - KNearestUsers: users ordered by breadth-first hop distance
//
// # Ordering
//
// All ranked outputs are deterministic. Ties are broken by node kind and then
// by id ascending.
//
// # Thread Safety
//
// The functions never mutate the graph, so any number of them may run
// concurrently over the same graph.
package algorithms
