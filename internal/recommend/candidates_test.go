// CineMatch - Taste-Seeded Movie and Series Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package recommend

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/tomtom215/cinematch/internal/catalog"
	"github.com/tomtom215/cinematch/internal/models"
)

func TestPlanShape(t *testing.T) {
	t.Parallel()

	seed := []models.Item{
		movie(1, 0, "Drama", "Crime"),
		series(2, 0, "Drama"),
		movie(3, 0, "Comedy", "Crime", "Horror"),
	}
	p, err := BuildProfile(seed, models.IndustryBollywood, models.ScopeBoth)
	if err != nil {
		t.Fatal(err)
	}
	cfg := DefaultConfig()

	plan := Plan(p, cfg)
	if want := 2 * (3*10 + 3); len(plan) != want {
		t.Fatalf("len(plan) = %d, want %d", len(plan), want)
	}

	first := plan[0]
	if first.Kind != models.KindMovie || first.Genre != "Drama" || first.Page != 1 ||
		first.Sort != catalog.SortVoteAverage || first.MinVoteCount != 100 || first.Industry != models.IndustryBollywood {
		t.Errorf("plan[0] = %+v", first)
	}
	if plan[10].Genre != "Crime" || plan[20].Genre != "Comedy" {
		t.Errorf("genre order = %q, %q", plan[10].Genre, plan[20].Genre)
	}
	pop := plan[30]
	if pop.Genre != "" || pop.Sort != catalog.SortPopularity || pop.Page != 1 {
		t.Errorf("plan[30] = %+v", pop)
	}
	seriesFirst := plan[33]
	if seriesFirst.Kind != models.KindSeries || seriesFirst.MinVoteCount != 50 || seriesFirst.Genre != "Drama" {
		t.Errorf("plan[33] = %+v", seriesFirst)
	}
}

func TestPlanScopeAndGenreless(t *testing.T) {
	t.Parallel()

	p := mustProfile(t, []models.Item{series(1, 0), series(2, 0), series(3, 0)}, models.ScopeSeries)
	plan := Plan(p, DefaultConfig())
	if len(plan) != 3 {
		t.Fatalf("len(plan) = %d, want popularity pages only", len(plan))
	}
	for _, q := range plan {
		if q.Kind != models.KindSeries || q.Sort != catalog.SortPopularity {
			t.Errorf("q = %+v", q)
		}
	}
}

func TestCollectArrivalFollowsPlan(t *testing.T) {
	t.Parallel()

	p := mustProfile(t, []models.Item{movie(1, 0, "Drama"), movie(2, 0), movie(3, 0)}, models.ScopeMovie)
	cfg := DefaultConfig()
	cfg.GenrePages = 2
	cfg.PopularPages = 1

	gw := &fakeGateway{fn: func(_ context.Context, q catalog.DiscoverQuery) ([]models.Item, error) {
		id := int64(q.Page)
		if q.Genre == "" {
			id += 100
		}
		return []models.Item{movie(id, 0)}, nil
	}}

	res, err := NewCandidateCollector(gw, cfg, zerolog.Nop()).Collect(context.Background(), p)
	if err != nil {
		t.Fatal(err)
	}
	var ids []int64
	for _, it := range res.Items {
		ids = append(ids, it.ID)
	}
	if len(ids) != 3 || ids[0] != 1 || ids[1] != 2 || ids[2] != 101 {
		t.Errorf("ids = %v", ids)
	}
	if len(gw.seen()) != 3 {
		t.Errorf("queries = %d", len(gw.seen()))
	}
}

func TestCollectDegradesOnFailures(t *testing.T) {
	t.Parallel()

	p := mustProfile(t, []models.Item{movie(1, 0, "Drama"), movie(2, 0), movie(3, 0)}, models.ScopeMovie)
	gw := &fakeGateway{fn: func(_ context.Context, q catalog.DiscoverQuery) ([]models.Item, error) {
		if q.Page%2 == 0 {
			return nil, errors.New("boom")
		}
		return []models.Item{movie(int64(q.Page)*1000, 0)}, nil
	}}

	res, err := NewCandidateCollector(gw, DefaultConfig(), zerolog.Nop()).Collect(context.Background(), p)
	if err != nil {
		t.Fatal(err)
	}
	// 10 genre pages + 3 popular pages; pages 2,4,6,8,10 and 2 fail.
	if res.Queries != 13 || res.Failed != 6 || !res.Partial() {
		t.Errorf("res = %+v", res)
	}
}
