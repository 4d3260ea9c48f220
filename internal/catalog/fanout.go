// CineMatch - Taste-Seeded Movie and Series Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package catalog

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"sync/atomic"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/tomtom215/cinematch/internal/models"
)

// Query is one independent catalog fetch in a fan-out.
type Query struct {
	Name  string
	Fetch func(ctx context.Context) ([]models.Item, error)
}

// PoolResult is the flattened output of a fan-out. Items keep query-plan
// order regardless of which fetch finished first.
type PoolResult struct {
	Items   []models.Item
	Queries int
	Failed  int
}

// Partial reports whether some, but not all, queries failed.
func (r PoolResult) Partial() bool {
	return r.Failed > 0 && r.Failed < r.Queries
}

// Unavailable reports whether every query failed.
func (r PoolResult) Unavailable() bool {
	return r.Queries > 0 && r.Failed == r.Queries
}

// FanOut runs every query with at most limit in flight and waits for all of
// them before returning. A failed query contributes nothing and is counted in
// Failed; it never cancels its siblings. The only error returned is the
// context's, when the caller abandoned the request.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func FanOut(ctx context.Context, logger zerolog.Logger, limit int, queries []Query) (PoolResult, error) {
	slots := make([][]models.Item, len(queries))
	var failed atomic.Int64

	var g errgroup.Group
	if limit > 0 {
		g.SetLimit(limit)
	}
	for i, q := range queries {
		g.Go(func() error {
			if ctx.Err() != nil {
				return nil
			}
			items, err := q.Fetch(ctx)
			if err != nil {
				failed.Add(1)
				logger.Debug().Err(err).Str("query", q.Name).Msg("Catalog query failed")
				return nil
			}
			slots[i] = items
			return nil
		})
	}
	_ = g.Wait() //nolint:errcheck // goroutines never return errors

	if err := ctx.Err(); err != nil {
		return PoolResult{}, err
	}

	total := 0
	for _, s := range slots {
		total += len(s)
	}
	result := PoolResult{
		Items:   make([]models.Item, 0, total),
		Queries: len(queries),
		Failed:  int(failed.Load()),
	}
	for _, s := range slots {
		result.Items = append(result.Items, s...)
	}

	if result.Unavailable() {
		logger.Warn().Int("queries", result.Queries).Msg("Every catalog query failed")
	}
	return result, nil
}

// PopularPoolOptions controls PopularPool.
type PopularPoolOptions struct {
	Scope       models.ContentScope
	Industry    models.Industry
	Pages       int
	Limit       int
	Concurrency int
}

// PopularPool gathers the popular pages for every kind in scope, drops
// duplicate keys, orders the rest by popularity and keeps the first Limit.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func PopularPool(ctx context.Context, gw Gateway, logger zerolog.Logger, opts PopularPoolOptions) (PoolResult, error) {
	var queries []Query
	for _, kind := range opts.Scope.Kinds() {
		for page := 1; page <= opts.Pages; page++ {
			queries = append(queries, Query{
				Name: fmt.Sprintf("popular:%s:%d", kind, page),
				Fetch: func(ctx context.Context) ([]models.Item, error) {
					return gw.Popular(ctx, kind, opts.Industry, page)
				},
			})
		}
	}

	result, err := FanOut(ctx, logger, opts.Concurrency, queries)
	if err != nil {
		return PoolResult{}, err
	}

	seen := make(map[models.Key]struct{}, len(result.Items))
	unique := result.Items[:0]
	for i := range result.Items {
		k := result.Items[i].Key()
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		unique = append(unique, result.Items[i])
	}

	slices.SortStableFunc(unique, func(a, b models.Item) int {
		return cmp.Compare(b.Popularity, a.Popularity)
	})
	if opts.Limit > 0 && len(unique) > opts.Limit {
		unique = unique[:opts.Limit]
	}
	result.Items = unique
	return result, nil
}
