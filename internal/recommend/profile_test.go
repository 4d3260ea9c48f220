// CineMatch - Taste-Seeded Movie and Series Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package recommend

import (
	"errors"
	"math"
	"slices"
	"testing"

	"github.com/tomtom215/cinematch/internal/models"
)

func TestBuildProfileAllAction(t *testing.T) {
	t.Parallel()

	seed := []models.Item{
		movie(1, 10, "Action"),
		movie(2, 20, "Action"),
		movie(3, 30, "Action"),
		movie(4, 40, "Action"),
		movie(5, 50, "Action"),
	}
	p := mustProfile(t, seed, models.ScopeMovie)

	if p.AvgPopularity != 30 {
		t.Errorf("AvgPopularity = %v, want 30", p.AvgPopularity)
	}
	if len(p.GenreAffinity) != 1 || p.GenreAffinity["Action"] != 5 {
		t.Errorf("GenreAffinity = %v", p.GenreAffinity)
	}
	if p.DistinctGenres() != 1 {
		t.Errorf("DistinctGenres = %d", p.DistinctGenres())
	}
	if p.LanguageMix["en"] != 5 {
		t.Errorf("LanguageMix = %v", p.LanguageMix)
	}
	if got := DetectAmbiguity(p, models.ScopeMovie); got != ClarificationNone {
		t.Errorf("DetectAmbiguity = %q, want none", got)
	}
}

func TestBuildProfileMeanAndCounts(t *testing.T) {
	t.Parallel()

	for size := MinSeedSize; size <= MaxSeedSize; size++ {
		seed := make([]models.Item, 0, size)
		var sum float64
		for i := 0; i < size; i++ {
			pop := float64(i*i) + 0.5
			sum += pop
			if i%3 == 0 {
				seed = append(seed, series(int64(i), pop, "Drama"))
			} else {
				seed = append(seed, movie(int64(i), pop, "Comedy"))
			}
		}
		p := mustProfile(t, seed, models.ScopeBoth)

		if math.Abs(p.AvgPopularity-sum/float64(size)) > 1e-9 {
			t.Errorf("size %d: AvgPopularity = %v, want %v", size, p.AvgPopularity, sum/float64(size))
		}
		if p.MovieCount+p.SeriesCount != size {
			t.Errorf("size %d: counts %d+%d", size, p.MovieCount, p.SeriesCount)
		}
	}
}

func TestBuildProfileSameIDDifferentKind(t *testing.T) {
	t.Parallel()

	seed := []models.Item{movie(1, 1), series(1, 1), movie(2, 1)}
	p := mustProfile(t, seed, models.ScopeBoth)
	if p.MovieCount != 2 || p.SeriesCount != 1 {
		t.Errorf("counts = %d/%d", p.MovieCount, p.SeriesCount)
	}
	if !p.IsSeed(models.Key{ID: 1, Kind: models.KindSeries}) || p.IsSeed(models.Key{ID: 2, Kind: models.KindSeries}) {
		t.Error("IsSeed does not use the composite key")
	}
}

func TestBuildProfileGenreless(t *testing.T) {
	t.Parallel()

	seed := []models.Item{movie(1, 9), movie(2, 3, "Horror"), movie(3, 0)}
	p := mustProfile(t, seed, models.ScopeMovie)
	if p.AvgPopularity != 4 {
		t.Errorf("AvgPopularity = %v", p.AvgPopularity)
	}
	if p.DistinctGenres() != 1 {
		t.Errorf("DistinctGenres = %d", p.DistinctGenres())
	}
}

func TestValidateSeed(t *testing.T) {
	t.Parallel()

	many := make([]models.Item, 11)
	for i := range many {
		many[i] = movie(int64(i), 1)
	}

	tests := []struct {
		name string
		seed []models.Item
		want error
	}{
		{"empty", nil, ErrInsufficientSeed},
		{"two", []models.Item{movie(1, 1), movie(2, 1)}, ErrInsufficientSeed},
		{"eleven", many, ErrSeedTooLarge},
		{"duplicate", []models.Item{movie(1, 1), movie(2, 1), movie(1, 5)}, ErrDuplicateSeed},
		{"three", []models.Item{movie(1, 1), movie(2, 1), movie(3, 1)}, nil},
		{"ten", many[:10], nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := ValidateSeed(tt.seed)
			if !errors.Is(err, tt.want) {
				t.Errorf("err = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestTopGenresTieBreak(t *testing.T) {
	t.Parallel()

	seed := []models.Item{
		movie(1, 1, "Drama", "Romance"),
		movie(2, 1, "Comedy", "Romance"),
		movie(3, 1, "Thriller", "Comedy"),
		movie(4, 1, "Horror"),
	}
	p := mustProfile(t, seed, models.ScopeMovie)

	// Romance and Comedy have 2; Drama, Thriller and Horror have 1.
	want := []models.Genre{"Romance", "Comedy", "Drama"}
	if got := p.TopGenres(3); !slices.Equal(got, want) {
		t.Errorf("TopGenres = %v, want %v", got, want)
	}
	if got := p.TopGenres(10); len(got) != 5 {
		t.Errorf("TopGenres(10) = %v", got)
	}
}

func TestProfileClone(t *testing.T) {
	t.Parallel()

	p := mustProfile(t, []models.Item{movie(1, 1, "Drama"), movie(2, 1), movie(3, 1)}, models.ScopeMovie)
	c := p.Clone()
	c.addGenre("Drama", 3)
	c.addGenre("War", 1)
	c.LanguageMix["hi"] = 1

	if p.GenreAffinity["Drama"] != 1 || len(p.GenreOrder) != 1 || p.LanguageMix["hi"] != 0 {
		t.Errorf("clone shares state with original: %+v", p)
	}
}
