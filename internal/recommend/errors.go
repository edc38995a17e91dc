// Filmgraph - Preference Graph Film Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/filmgraph

package recommend

import (
	"errors"

	"github.com/tomtom215/filmgraph/internal/recommend/algorithms"
)

var (
	// ErrNotFound is returned by a DataProvider when a film or genre id has no
	// catalog entry. The engine skips such ids.
	ErrNotFound = errors.New("not found")

	// ErrInvalidArgument is returned for out-of-domain arguments such as a negative k.
	ErrInvalidArgument = algorithms.ErrInvalidArgument

	// ErrGraphTooLarge is returned when the catalog exceeds Limits.MaxGraphNodes.
	ErrGraphTooLarge = errors.New("graph too large")

	// ErrFetch wraps any DataProvider read failure other than ErrNotFound.
	// No partial graph is built when it occurs.
	ErrFetch = errors.New("fetch records")
)
