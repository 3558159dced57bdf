// Marquee - Content-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

/*
Package cache provides a generic, thread-safe LRU cache with TTL expiration.

The recommendation gateway uses it to memoize ranked results per (title, k).
Entries never need invalidation because the engine state they are derived from
is immutable for the process lifetime; the TTL only bounds memory held by rare
queries.

Usage:

	c := cache.NewLRU[*Recommendation](10000, time.Hour)
	if rec, ok := c.Get(key); ok {
		return rec
	}
	c.Add(key, rec)
*/
package cache
