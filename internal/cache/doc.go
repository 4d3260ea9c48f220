// CineMatch - Taste-Seeded Movie and Series Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

// Package cache provides a bounded, TTL-aware LRU cache.
//
// The catalog gateway keeps recently fetched result pages here so that a
// refine pass, which reissues the same discover queries, does not hit the
// upstream API again:
//
//	pages := cache.NewLRU[[]catalog.Item](2000, 30*time.Minute)
//	pages.Set(key, items)
//	if items, ok := pages.Get(key); ok {
//	    // served from memory
//	}
//
// Expired entries are removed lazily on access or in bulk by CleanupExpired.
package cache
