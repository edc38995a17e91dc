// Filmgraph - Preference Graph Film Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/filmgraph

package graph

// ShortestPathLengths runs a breadth-first search from source and returns the
// hop distance to every reachable node, including source at distance 0.
// An absent source yields an empty map.
func (g *Graph) ShortestPathLengths(source NodeID) map[NodeID]int {
	dist := make(map[NodeID]int)
	start, ok := g.index[source]
	if !ok {
		return dist
	}

	depth := make([]int, len(g.nodes))
	for i := range depth {
		depth[i] = -1
	}
	depth[start] = 0
	queue := []int{start}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		dist[g.nodes[current]] = depth[current]

		for next := range g.adj[current] {
			if depth[next] >= 0 {
				continue
			}
			depth[next] = depth[current] + 1
			queue = append(queue, next)
		}
	}

	return dist
}

// TwoHopNeighborhood returns the nodes within two hops of source, excluding
// source itself, ordered by kind then id.
func (g *Graph) TwoHopNeighborhood(source NodeID) []NodeID {
	start, ok := g.index[source]
	if !ok {
		return nil
	}

	seen := map[int]struct{}{start: {}}
	var out []NodeID
	for first := range g.adj[start] {
		if _, dup := seen[first]; !dup {
			seen[first] = struct{}{}
			out = append(out, g.nodes[first])
		}
		for second := range g.adj[first] {
			if _, dup := seen[second]; dup {
				continue
			}
			seen[second] = struct{}{}
			out = append(out, g.nodes[second])
		}
	}

	sortNodes(out)
	return out
}
