// Filmgraph - Preference Graph Film Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/filmgraph

package algorithms

import (
	"fmt"
	"sort"

	"github.com/tomtom215/filmgraph/internal/graph"
)

// UserScore is a collaborative filtering match. Higher scores are better.
type UserScore struct {
	UserID int `json:"user_id"`
	Score  int `json:"score"`
}

// UserDistance is a nearest-neighbour match. Lower distances are better.
type UserDistance struct {
	UserID   int `json:"user_id"`
	Distance int `json:"distance"`
}

// SimilarUsers finds users sharing neighbours with userID.
//
// Candidates are the user nodes among the direct neighbours and the
// neighbours of neighbours of the target, excluding the target itself. Each
// is scored by the number of neighbours it shares with the target. Results
// are ordered by score descending, then user id ascending. The count is
// symmetric, so the score for (a, b) equals the score for (b, a).
//
// A target that is absent or has no neighbours yields an empty slice.
func SimilarUsers(g *graph.Graph, userID int) []UserScore {
	target := graph.User(userID)
	out := []UserScore{}

	for _, node := range g.TwoHopNeighborhood(target) {
		if node.Kind != graph.KindUser {
			continue
		}
		out = append(out, UserScore{
			UserID: node.ID,
			Score:  g.CommonNeighbors(target, node),
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		return out[i].UserID < out[j].UserID
	})
	return out
}

// KNearestUsers returns up to k users closest to userID by hop distance.
//
// A single breadth-first search measures the distance to every reachable
// node. Unreachable users are excluded and so is the target. Results are
// ordered by distance ascending, then user id ascending, and truncated to k.
// A negative k returns ErrInvalidArgument; k == 0 returns an empty slice.
func KNearestUsers(g *graph.Graph, userID, k int) ([]UserDistance, error) {
	if k < 0 {
		return nil, fmt.Errorf("%w: k must be non-negative, got %d", ErrInvalidArgument, k)
	}
	out := []UserDistance{}
	if k == 0 {
		return out, nil
	}

	target := graph.User(userID)
	for node, dist := range g.ShortestPathLengths(target) {
		if node.Kind != graph.KindUser || node == target {
			continue
		}
		out = append(out, UserDistance{UserID: node.ID, Distance: dist})
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Distance != out[j].Distance {
			return out[i].Distance < out[j].Distance
		}
		return out[i].UserID < out[j].UserID
	})

	if len(out) > k {
		out = out[:k]
	}
	return out, nil
}
