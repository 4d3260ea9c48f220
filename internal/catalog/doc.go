// CineMatch - Taste-Seeded Movie and Series Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

// Package catalog is the gateway to the external TMDB-compatible media catalog.
//
// It owns everything that touches the upstream API: request construction,
// authentication, throttling, circuit breaking, page caching and the
// normalization of raw records into models.Item. Code outside this package
// only ever sees normalized items.
//
// # Layers
//
// A production gateway is assembled from three layers, outermost first:
//
//	gw := catalog.NewCachedGateway(
//	    catalog.NewCircuitBreakerGateway(
//	        catalog.NewClient(&cfg.Catalog, logger),
//	        breakerSettings,
//	    ),
//	    cfg.Catalog.PageCacheSize, cfg.Catalog.PageCacheTTL,
//	)
//
// Client issues throttled HTTP requests and never retries. The circuit
// breaker fails fast while the upstream is unhealthy. The cache serves
// repeated pages, which is the common case when a session refines.
//
// # Fan-out
//
// FanOut runs a batch of independent page queries concurrently and returns
// only when every query has finished. A failed query contributes zero items
// and is counted; it never aborts the batch. Results are assembled in query
// order regardless of completion order, which keeps downstream ranking
// deterministic.
//
// # Industry classification
//
// An item is local-origin when its original language is Hindi or when any
// production or origin country is India. Popular and discover queries use
// the with_original_language filter (hi for bollywood, en for hollywood);
// search results are filtered after normalization.
package catalog
