// Filmgraph - Preference Graph Film Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/filmgraph

package algorithms

import (
	"context"
	"fmt"
	"sort"

	"gonum.org/v1/gonum/floats"

	"github.com/tomtom215/filmgraph/internal/graph"
)

// PageRankConfig contains configuration for PageRank.
type PageRankConfig struct {
	// Damping is the probability of following an edge instead of teleporting.
	// Default: 0.85.
	Damping float64

	// Tolerance is the per-node convergence threshold. Iteration stops once the
	// L1 change between iterates drops below NodeCount * Tolerance.
	// Default: 1e-6.
	Tolerance float64

	// MaxIterations bounds the power iteration.
	// Default: 100.
	MaxIterations int
}

// DefaultPageRankConfig returns the default PageRank configuration.
func DefaultPageRankConfig() PageRankConfig {
	return PageRankConfig{
		Damping:       0.85,
		Tolerance:     1e-6,
		MaxIterations: 100,
	}
}

// Validate checks the configuration.
func (c PageRankConfig) Validate() error {
	if c.Damping <= 0 || c.Damping >= 1 {
		return fmt.Errorf("%w: damping must be in (0, 1), got %v", ErrInvalidArgument, c.Damping)
	}
	if c.Tolerance <= 0 {
		return fmt.Errorf("%w: tolerance must be positive, got %v", ErrInvalidArgument, c.Tolerance)
	}
	if c.MaxIterations <= 0 {
		return fmt.Errorf("%w: max iterations must be positive, got %d", ErrInvalidArgument, c.MaxIterations)
	}
	return nil
}

// PageRankResult holds the stationary scores of every node.
type PageRankResult struct {
	Scores     map[graph.NodeID]float64
	Iterations int
	// Converged is false when MaxIterations ran out first; Scores then holds
	// the last iterate.
	Converged bool
}

// PageRank computes importance scores for every node, users included.
//
// Every undirected edge is walked in both directions with unit weight.
// Teleportation is uniform, and the mass of isolated nodes is spread
// uniformly over all nodes, so every node receives a positive score and the
// scores sum to 1. An empty graph yields an empty, converged result.
func PageRank(ctx context.Context, g *graph.Graph, cfg PageRankConfig) (PageRankResult, error) {
	if err := cfg.Validate(); err != nil {
		return PageRankResult{}, err
	}

	n := g.Len()
	if n == 0 {
		return PageRankResult{Scores: map[graph.NodeID]float64{}, Converged: true}, nil
	}

	adjacency := make([][]int, n)
	var dangling []int
	for i := 0; i < n; i++ {
		adjacency[i] = g.AdjacentIndices(i)
		if len(adjacency[i]) == 0 {
			dangling = append(dangling, i)
		}
	}

	uniform := 1.0 / float64(n)
	x := make([]float64, n)
	for i := range x {
		x[i] = uniform
	}
	next := make([]float64, n)
	threshold := float64(n) * cfg.Tolerance

	result := PageRankResult{}
	for iter := 1; iter <= cfg.MaxIterations; iter++ {
		if err := ctx.Err(); err != nil {
			return PageRankResult{}, err
		}

		danglingMass := 0.0
		for _, i := range dangling {
			danglingMass += x[i]
		}
		base := cfg.Damping*danglingMass*uniform + (1-cfg.Damping)*uniform

		for i := range next {
			next[i] = base
		}
		for i, nbrs := range adjacency {
			if len(nbrs) == 0 {
				continue
			}
			share := cfg.Damping * x[i] / float64(len(nbrs))
			for _, j := range nbrs {
				next[j] += share
			}
		}

		delta := floats.Distance(next, x, 1)
		x, next = next, x
		result.Iterations = iter

		if delta < threshold {
			result.Converged = true
			break
		}
	}

	result.Scores = make(map[graph.NodeID]float64, n)
	for i, score := range x {
		result.Scores[g.NodeAt(i)] = score
	}
	return result, nil
}

// RankedNode is a node with its PageRank score.
type RankedNode struct {
	Node  graph.NodeID `json:"node"`
	Score float64      `json:"score"`
}

// RankItems returns the film and genre entries of scores, best first.
// User nodes are dropped. Equal scores fall back to kind, then id ascending.
func RankItems(scores map[graph.NodeID]float64) []RankedNode {
	ranked := make([]RankedNode, 0, len(scores))
	for node, score := range scores {
		if node.Kind == graph.KindUser {
			continue
		}
		ranked = append(ranked, RankedNode{Node: node, Score: score})
	}

	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Score != ranked[j].Score {
			return ranked[i].Score > ranked[j].Score
		}
		return ranked[i].Node.Less(ranked[j].Node)
	})
	return ranked
}

// FilterKind returns the entries of ranked with the given kind, preserving order.
func FilterKind(ranked []RankedNode, kind graph.Kind) []RankedNode {
	out := make([]RankedNode, 0, len(ranked))
	for _, r := range ranked {
		if r.Node.Kind == kind {
			out = append(out, r)
		}
	}
	return out
}
