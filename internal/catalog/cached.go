// CineMatch - Taste-Seeded Movie and Series Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package catalog

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/tomtom215/cinematch/internal/cache"
	"github.com/tomtom215/cinematch/internal/metrics"
	"github.com/tomtom215/cinematch/internal/models"
)

// CachedGateway memoizes catalog pages. Only successful pages are cached,
// and callers always receive their own copy of the slice.
type CachedGateway struct {
	next  Gateway
	pages *cache.LRU[[]models.Item]
}

// NewCachedGateway wraps next with an LRU page cache.
func NewCachedGateway(next Gateway, capacity int, ttl time.Duration) *CachedGateway {
	return &CachedGateway{next: next, pages: cache.NewLRU[[]models.Item](capacity, ttl)}
}

// Stats exposes the page cache statistics.
func (g *CachedGateway) Stats() cache.Stats {
	return g.pages.Stats()
}

// Purge drops every cached page.
func (g *CachedGateway) Purge() {
	g.pages.Purge()
}

// CleanupExpired removes stale pages and returns how many were dropped.
func (g *CachedGateway) CleanupExpired() int {
	return g.pages.CleanupExpired()
}

func (g *CachedGateway) lookup(key string, fetch func() ([]models.Item, error)) ([]models.Item, error) {
	if items, ok := g.pages.Get(key); ok {
		metrics.RecordCatalogCache(true)
		return slices.Clone(items), nil
	}
	metrics.RecordCatalogCache(false)

	items, err := fetch()
	if err != nil {
		return nil, err
	}
	g.pages.Set(key, slices.Clone(items))
	return items, nil
}

// Popular implements Gateway.
func (g *CachedGateway) Popular(ctx context.Context, kind models.Kind, industry models.Industry, page int) ([]models.Item, error) {
	key := fmt.Sprintf("popular|%s|%s|%d", kind, industry, page)
	return g.lookup(key, func() ([]models.Item, error) {
		return g.next.Popular(ctx, kind, industry, page)
	})
}

// Search implements Gateway.
func (g *CachedGateway) Search(ctx context.Context, kind models.Kind, query string, industry models.Industry) ([]models.Item, error) {
	key := fmt.Sprintf("search|%s|%s|%s", kind, industry, query)
	return g.lookup(key, func() ([]models.Item, error) {
		return g.next.Search(ctx, kind, query, industry)
	})
}

// DiscoverByGenre implements Gateway.
func (g *CachedGateway) DiscoverByGenre(ctx context.Context, q DiscoverQuery) ([]models.Item, error) {
	return g.lookup(q.cacheKey(), func() ([]models.Item, error) {
		return g.next.DiscoverByGenre(ctx, q)
	})
}
