// Filmgraph - Preference Graph Film Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/filmgraph

package algorithms

import "errors"

// ErrInvalidArgument is returned for arguments outside their domain, such as a negative k.
var ErrInvalidArgument = errors.New("invalid argument")
