// Filmgraph - Preference Graph Film Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/filmgraph

package graph

import (
	"sort"
	"strconv"
)

// Kind identifies the entity type behind a node.
type Kind uint8

const (
	// KindUser is an application user.
	KindUser Kind = iota + 1
	// KindFilm is a catalog film.
	KindFilm
	// KindGenre is a catalog genre.
	KindGenre
)

// String returns the string representation of the node kind.
func (k Kind) String() string {
	switch k {
	case KindUser:
		return "user"
	case KindFilm:
		return "film"
	case KindGenre:
		return "genre"
	default:
		return "unknown"
	}
}

// InteractionRated is the interaction label carried by every edge the builder creates.
const InteractionRated = "rated"

// NodeID is the identity of a graph node.
type NodeID struct {
	Kind Kind
	ID   int
}

// User returns the node identity of a user.
func User(id int) NodeID { return NodeID{Kind: KindUser, ID: id} }

// Film returns the node identity of a film.
func Film(id int) NodeID { return NodeID{Kind: KindFilm, ID: id} }

// Genre returns the node identity of a genre.
func Genre(id int) NodeID { return NodeID{Kind: KindGenre, ID: id} }

// String renders the node as "{kind}_{id}", e.g. "film_3".
// The rendering is for output only.
func (n NodeID) String() string {
	return n.Kind.String() + "_" + strconv.Itoa(n.ID)
}

// MarshalText renders the node as its String form, so NodeID values and map
// keys encode as "film_3" in JSON.
func (n NodeID) MarshalText() ([]byte, error) {
	return []byte(n.String()), nil
}

// Less orders nodes by kind, then by id ascending.
func (n NodeID) Less(other NodeID) bool {
	if n.Kind != other.Kind {
		return n.Kind < other.Kind
	}
	return n.ID < other.ID
}

// EdgeAttrs are the attributes stored on an edge.
type EdgeAttrs struct {
	Interaction string
	// Score is set only for edges that came from a rating.
	Score *float64
}

// edgeKey is an unordered pair of node indices with a <= b.
type edgeKey struct {
	a, b int
}

func newEdgeKey(a, b int) edgeKey {
	if a > b {
		a, b = b, a
	}
	return edgeKey{a: a, b: b}
}

// Graph is an undirected simple graph of typed nodes.
//
// Nodes are assigned dense indices in insertion order. The index accessors
// (Len, NodeAt, AdjacentIndices) let numeric algorithms work on slices
// instead of maps.
type Graph struct {
	index map[NodeID]int
	nodes []NodeID
	adj   []map[int]struct{}
	edges map[edgeKey]EdgeAttrs
}

// New creates an empty graph.
func New() *Graph {
	return &Graph{
		index: make(map[NodeID]int),
		edges: make(map[edgeKey]EdgeAttrs),
	}
}

// AddNode inserts a node. Adding an existing node is a no-op.
// It returns the node's dense index.
func (g *Graph) AddNode(id NodeID) int {
	if idx, ok := g.index[id]; ok {
		return idx
	}
	idx := len(g.nodes)
	g.index[id] = idx
	g.nodes = append(g.nodes, id)
	g.adj = append(g.adj, make(map[int]struct{}))
	return idx
}

// AddEdge joins u and v, adding either endpoint if missing. When the pair is
// already joined the attributes are replaced. Self-loops are ignored.
func (g *Graph) AddEdge(u, v NodeID, attrs EdgeAttrs) {
	if u == v {
		return
	}
	ui := g.AddNode(u)
	vi := g.AddNode(v)
	g.adj[ui][vi] = struct{}{}
	g.adj[vi][ui] = struct{}{}
	g.edges[newEdgeKey(ui, vi)] = attrs
}

// HasNode reports whether the node exists.
func (g *Graph) HasNode(id NodeID) bool {
	_, ok := g.index[id]
	return ok
}

// Kind returns the kind of a node held by the graph.
func (g *Graph) Kind(id NodeID) (Kind, bool) {
	if !g.HasNode(id) {
		return 0, false
	}
	return id.Kind, true
}

// HasEdge reports whether u and v are joined.
func (g *Graph) HasEdge(u, v NodeID) bool {
	_, ok := g.Edge(u, v)
	return ok
}

// Edge returns the attributes of the edge joining u and v.
func (g *Graph) Edge(u, v NodeID) (EdgeAttrs, bool) {
	ui, ok := g.index[u]
	if !ok {
		return EdgeAttrs{}, false
	}
	vi, ok := g.index[v]
	if !ok {
		return EdgeAttrs{}, false
	}
	attrs, ok := g.edges[newEdgeKey(ui, vi)]
	return attrs, ok
}

// NodeCount returns the number of nodes.
func (g *Graph) NodeCount() int { return len(g.nodes) }

// EdgeCount returns the number of edges.
func (g *Graph) EdgeCount() int { return len(g.edges) }

// Len is an alias of NodeCount for index-based iteration.
func (g *Graph) Len() int { return len(g.nodes) }

// NodeAt returns the node stored at a dense index.
func (g *Graph) NodeAt(i int) NodeID { return g.nodes[i] }

// Nodes returns all nodes in insertion order.
func (g *Graph) Nodes() []NodeID {
	out := make([]NodeID, len(g.nodes))
	copy(out, g.nodes)
	return out
}

// NodesOfKind returns the nodes of one kind in insertion order.
func (g *Graph) NodesOfKind(kind Kind) []NodeID {
	var out []NodeID
	for _, n := range g.nodes {
		if n.Kind == kind {
			out = append(out, n)
		}
	}
	return out
}

// Degree returns the number of neighbors of a node, or 0 if it is absent.
func (g *Graph) Degree(id NodeID) int {
	idx, ok := g.index[id]
	if !ok {
		return 0
	}
	return len(g.adj[idx])
}

// AdjacentIndices returns the neighbor indices of the node at index i in
// ascending order.
func (g *Graph) AdjacentIndices(i int) []int {
	out := make([]int, 0, len(g.adj[i]))
	for j := range g.adj[i] {
		out = append(out, j)
	}
	sort.Ints(out)
	return out
}

// Neighbors returns the neighbors of a node ordered by kind, then id.
// An absent node has no neighbors.
func (g *Graph) Neighbors(id NodeID) []NodeID {
	idx, ok := g.index[id]
	if !ok {
		return nil
	}
	out := make([]NodeID, 0, len(g.adj[idx]))
	for j := range g.adj[idx] {
		out = append(out, g.nodes[j])
	}
	sortNodes(out)
	return out
}

func sortNodes(nodes []NodeID) {
	sort.Slice(nodes, func(i, j int) bool { return nodes[i].Less(nodes[j]) })
}

// CommonNeighbors returns how many nodes are adjacent to both u and v.
func (g *Graph) CommonNeighbors(u, v NodeID) int {
	ui, ok := g.index[u]
	if !ok {
		return 0
	}
	vi, ok := g.index[v]
	if !ok {
		return 0
	}
	small, large := g.adj[ui], g.adj[vi]
	if len(small) > len(large) {
		small, large = large, small
	}
	count := 0
	for n := range small {
		if _, ok := large[n]; ok {
			count++
		}
	}
	return count
}
