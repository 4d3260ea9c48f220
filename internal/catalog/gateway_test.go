// CineMatch - Taste-Seeded Movie and Series Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package catalog

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/tomtom215/cinematch/internal/models"
)

// stubGateway answers every call through fn and counts calls.
type stubGateway struct {
	calls atomic.Int64
	fn    func(ctx context.Context, method string, kind models.Kind, page int) ([]models.Item, error)

	mu      sync.Mutex
	queries []DiscoverQuery
}

func (s *stubGateway) Popular(ctx context.Context, kind models.Kind, _ models.Industry, page int) ([]models.Item, error) {
	s.calls.Add(1)
	return s.fn(ctx, "popular", kind, page)
}

func (s *stubGateway) Search(ctx context.Context, kind models.Kind, _ string, _ models.Industry) ([]models.Item, error) {
	s.calls.Add(1)
	return s.fn(ctx, "search", kind, 1)
}

func (s *stubGateway) DiscoverByGenre(ctx context.Context, q DiscoverQuery) ([]models.Item, error) {
	s.calls.Add(1)
	s.mu.Lock()
	s.queries = append(s.queries, q)
	s.mu.Unlock()
	return s.fn(ctx, "discover", q.Kind, q.Page)
}

func item(id int64, kind models.Kind, pop float64) models.Item {
	return models.Item{ID: id, Kind: kind, Title: "t", Popularity: pop}
}
