// Filmgraph - Preference Graph Film Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/filmgraph

package recommend

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/tomtom215/filmgraph/internal/graph"
	"github.com/tomtom215/filmgraph/internal/recommend/algorithms"
)

// GetRecommendations gathers film titles and genre names from the
// neighbourhoods of users similar to userID.
//
// Candidates are every collaborative filtering match plus the k nearest
// users. Each film neighbour of a candidate contributes its title and each
// genre neighbour its name. Ids without a catalog entry are skipped and
// counted in Unresolved; any other catalog error aborts the aggregation
// and is returned wrapped in ErrFetch.
func GetRecommendations(ctx context.Context, g *graph.Graph, userID, k int, catalog Catalog) (RecommendationSet, error) {
	nearest, err := algorithms.KNearestUsers(g, userID, k)
	if err != nil {
		return RecommendationSet{}, err
	}
	return aggregate(ctx, g, algorithms.SimilarUsers(g, userID), nearest, catalog)
}

// aggregate resolves the item neighbourhoods of the union of both candidate lists.
func aggregate(ctx context.Context, g *graph.Graph, similar []algorithms.UserScore, nearest []algorithms.UserDistance, catalog Catalog) (RecommendationSet, error) {
	candidates := candidateUsers(similar, nearest)

	films := make(map[string]struct{})
	genres := make(map[string]struct{})
	resolved := make(map[graph.NodeID]struct{})
	set := RecommendationSet{}

	for _, userID := range candidates {
		for _, node := range g.Neighbors(graph.User(userID)) {
			if node.Kind == graph.KindUser {
				continue
			}
			if _, done := resolved[node]; done {
				continue
			}
			resolved[node] = struct{}{}

			name, err := resolveName(ctx, catalog, node)
			if errors.Is(err, ErrNotFound) {
				set.Unresolved++
				continue
			}
			if err != nil {
				return RecommendationSet{}, wrapFetch(node.String(), err)
			}

			if node.Kind == graph.KindFilm {
				films[name] = struct{}{}
			} else {
				genres[name] = struct{}{}
			}
		}
	}

	set.Films = sortedKeys(films)
	set.Genres = sortedKeys(genres)
	return set, nil
}

// candidateUsers returns the deduplicated union of both lists in ascending id order.
func candidateUsers(similar []algorithms.UserScore, nearest []algorithms.UserDistance) []int {
	seen := make(map[int]struct{}, len(similar)+len(nearest))
	for _, s := range similar {
		seen[s.UserID] = struct{}{}
	}
	for _, n := range nearest {
		seen[n.UserID] = struct{}{}
	}

	ids := make([]int, 0, len(seen))
	for id := range seen {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

// resolveTop walks ranked nodes of one kind and resolves names until limit
// entries are collected. It returns the names and the count of skipped ids.
func resolveTop(ctx context.Context, catalog Catalog, ranked []algorithms.RankedNode, limit int) ([]string, int, error) {
	names := make([]string, 0, limit)
	unresolved := 0

	for _, r := range ranked {
		if len(names) >= limit {
			break
		}
		name, err := resolveName(ctx, catalog, r.Node)
		if errors.Is(err, ErrNotFound) {
			unresolved++
			continue
		}
		if err != nil {
			return nil, unresolved, wrapFetch(r.Node.String(), err)
		}
		names = append(names, name)
	}

	return names, unresolved, nil
}

// resolveName returns the title of a film node or the name of a genre node.
func resolveName(ctx context.Context, catalog Catalog, node graph.NodeID) (string, error) {
	switch node.Kind {
	case graph.KindFilm:
		film, err := catalog.GetFilmByID(ctx, node.ID)
		if err != nil {
			return "", err
		}
		return film.Title, nil
	case graph.KindGenre:
		genre, err := catalog.GetGenreByID(ctx, node.ID)
		if err != nil {
			return "", err
		}
		return genre.Name, nil
	default:
		return "", fmt.Errorf("%w: %s has no catalog entry", ErrInvalidArgument, node)
	}
}

func sortedKeys(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
