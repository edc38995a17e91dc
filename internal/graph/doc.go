// Filmgraph - Preference Graph Film Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/filmgraph

/*
Package graph provides the undirected preference graph that every Filmgraph
recommendation is computed over.

Nodes are typed identifiers (user, film or genre plus the catalog id). The node
identity is a comparable struct, so two kinds sharing a numeric id never collide
and the kind is never recovered by parsing a string key.

Edges are undirected and carry an interaction label and an optional rating
score. The graph is simple: at most one edge joins any unordered pair, and a
later AddEdge for an existing pair replaces the attributes (last write wins).

# Building

	g := graph.Build(&models.Records{
	    Users:     users,
	    Films:     films,
	    UserFilms: interactions,
	    Ratings:   ratings,
	})

Build never fails. Interactions referring to entities missing from the node
lists implicitly add a typed node for the missing endpoint.

# Thread Safety

A Graph is not safe for concurrent mutation. Graphs are built once per request
and only read afterwards, so concurrent readers need no locking.
*/
package graph
