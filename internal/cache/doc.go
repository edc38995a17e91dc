// Filmgraph - Preference Graph Film Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/filmgraph

/*
Package cache provides a thread-safe, size-bounded in-memory cache with TTL
expiry for computed recommendation results.

# Overview

The cache is a thin typed wrapper over hashicorp/golang-lru's expirable LRU:
  - Bounded size with least-recently-used eviction
  - Per-cache TTL; expired entries are never returned
  - Hit, miss and eviction counters for monitoring
  - Deterministic key generation from structured parameters

# Invalidation

Recommendation results depend on every record in the store, so keys include
the store's data version. A write bumps the version and all older keys become
unreachable; they age out through TTL or LRU pressure.

	key := cache.GenerateKey("compute", struct {
	    UserID  int   `json:"user_id"`
	    Version int64 `json:"version"`
	}{userID, db.DataVersion()})

# Thread Safety

All methods are safe for concurrent use.
*/
package cache
