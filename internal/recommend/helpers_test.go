// CineMatch - Taste-Seeded Movie and Series Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package recommend

import (
	"context"
	"sync"
	"testing"

	"github.com/tomtom215/cinematch/internal/catalog"
	"github.com/tomtom215/cinematch/internal/models"
)

func movie(id int64, pop float64, genres ...models.Genre) models.Item {
	return models.Item{ID: id, Kind: models.KindMovie, Title: "movie", Genres: genres, Popularity: pop, OriginLanguage: "en"}
}

func series(id int64, pop float64, genres ...models.Genre) models.Item {
	return models.Item{ID: id, Kind: models.KindSeries, Title: "series", Genres: genres, Popularity: pop, OriginLanguage: "en"}
}

func mustProfile(t testing.TB, seed []models.Item, scope models.ContentScope) *TasteProfile {
	t.Helper()
	p, err := BuildProfile(seed, models.IndustryBoth, scope)
	if err != nil {
		t.Fatalf("BuildProfile: %v", err)
	}
	return p
}

// fakeGateway serves discover pages through fn and records the queries.
type fakeGateway struct {
	mu      sync.Mutex
	queries []catalog.DiscoverQuery
	fn      func(ctx context.Context, q catalog.DiscoverQuery) ([]models.Item, error)
}

func (f *fakeGateway) Popular(context.Context, models.Kind, models.Industry, int) ([]models.Item, error) {
	return nil, nil
}

func (f *fakeGateway) Search(context.Context, models.Kind, string, models.Industry) ([]models.Item, error) {
	return nil, nil
}

func (f *fakeGateway) DiscoverByGenre(ctx context.Context, q catalog.DiscoverQuery) ([]models.Item, error) {
	f.mu.Lock()
	f.queries = append(f.queries, q)
	f.mu.Unlock()
	return f.fn(ctx, q)
}

func (f *fakeGateway) seen() []catalog.DiscoverQuery {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]catalog.DiscoverQuery(nil), f.queries...)
}
