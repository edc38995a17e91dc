// Filmgraph - Preference Graph Film Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/filmgraph

package cache

import (
	"crypto/sha256"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/goccy/go-json"
	"github.com/hashicorp/golang-lru/v2/expirable"
)

// Cache is a size-bounded LRU cache whose entries expire after a fixed TTL.
type Cache[K comparable, V any] struct {
	lru *expirable.LRU[K, V]

	hits      atomic.Int64
	misses    atomic.Int64
	evictions atomic.Int64
}

// Stats is a snapshot of cache performance counters.
type Stats struct {
	Hits      int64 `json:"hits"`
	Misses    int64 `json:"misses"`
	Evictions int64 `json:"evictions"`
	Size      int   `json:"size"`
}

// HitRate returns hits / (hits + misses), or 0 before any lookup.
func (s Stats) HitRate() float64 {
	total := s.Hits + s.Misses
	if total == 0 {
		return 0
	}
	return float64(s.Hits) / float64(total)
}

// New creates a cache holding at most size entries, each expiring ttl after
// it was stored. A size of 0 means unbounded; a ttl of 0 disables expiry.
func New[K comparable, V any](size int, ttl time.Duration) *Cache[K, V] {
	c := &Cache[K, V]{}
	c.lru = expirable.NewLRU[K, V](size, func(K, V) {
		c.evictions.Add(1)
	}, ttl)
	return c
}

// Get returns the cached value for key if present and unexpired.
func (c *Cache[K, V]) Get(key K) (V, bool) {
	v, ok := c.lru.Get(key)
	if ok {
		c.hits.Add(1)
	} else {
		c.misses.Add(1)
	}
	return v, ok
}

// Set stores value under key, replacing any existing entry and resetting its TTL.
func (c *Cache[K, V]) Set(key K, value V) {
	c.lru.Add(key, value)
}

// Clear removes every entry.
func (c *Cache[K, V]) Clear() {
	c.lru.Purge()
}

// Len returns the number of entries, which may include entries that have
// expired but not yet been reaped.
func (c *Cache[K, V]) Len() int {
	return c.lru.Len()
}

// Stats returns a snapshot of the performance counters.
func (c *Cache[K, V]) Stats() Stats {
	return Stats{
		Hits:      c.hits.Load(),
		Misses:    c.misses.Load(),
		Evictions: c.evictions.Load(),
		Size:      c.lru.Len(),
	}
}

// GenerateKey builds a compact deterministic key from a method name and its
// parameters. Parameters are JSON encoded and hashed; struct field order
// therefore fixes the key.
func GenerateKey(method string, params interface{}) string {
	data, err := json.Marshal(params)
	if err != nil {
		return fmt.Sprintf("%s:%v", method, params)
	}

	hash := sha256.Sum256(data)
	return fmt.Sprintf("%s:%x", method, hash[:16])
}
