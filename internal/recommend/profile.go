// CineMatch - Taste-Seeded Movie and Series Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package recommend

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/tomtom215/cinematch/internal/models"
)

const (
	MinSeedSize = 3
	MaxSeedSize = 10
)

// TasteProfile aggregates a seed selection. It is created once per seed and
// afterwards only changed by feedback.
type TasteProfile struct {
	GenreAffinity map[models.Genre]int `json:"genre_affinity"`

	// GenreOrder lists every genre in GenreAffinity by first appearance,
	// seed first and then feedback.
	GenreOrder []models.Genre `json:"genre_order"`

	LanguageMix   map[string]int      `json:"language_mix"`
	AvgPopularity float64             `json:"avg_popularity"`
	MovieCount    int                 `json:"movie_count"`
	SeriesCount   int                 `json:"series_count"`
	Seed          []models.Item       `json:"seed"`
	Industry      models.Industry     `json:"industry"`
	Scope         models.ContentScope `json:"scope"`
}

// ValidateSeed enforces the seed size bounds and key uniqueness.
func ValidateSeed(seed []models.Item) error {
	if len(seed) < MinSeedSize {
		return fmt.Errorf("%w: got %d", ErrInsufficientSeed, len(seed))
	}
	if len(seed) > MaxSeedSize {
		return fmt.Errorf("%w: got %d", ErrSeedTooLarge, len(seed))
	}
	seen := make(map[models.Key]struct{}, len(seed))
	for i := range seed {
		k := seed[i].Key()
		if _, dup := seen[k]; dup {
			return fmt.Errorf("%w: %s", ErrDuplicateSeed, k)
		}
		seen[k] = struct{}{}
	}
	return nil
}

// BuildProfile validates the seed and aggregates it into a TasteProfile.
func BuildProfile(seed []models.Item, industry models.Industry, scope models.ContentScope) (*TasteProfile, error) {
	if err := ValidateSeed(seed); err != nil {
		return nil, err
	}

	p := &TasteProfile{
		GenreAffinity: make(map[models.Genre]int),
		LanguageMix:   make(map[string]int),
		Seed:          slices.Clone(seed),
		Industry:      industry,
		Scope:         scope,
	}

	var total float64
	for i := range seed {
		it := &seed[i]
		for _, g := range it.Genres {
			p.addGenre(g, 1)
		}
		p.LanguageMix[it.OriginLanguage]++
		total += it.Popularity
		if it.Kind == models.KindSeries {
			p.SeriesCount++
		} else {
			p.MovieCount++
		}
	}
	p.AvgPopularity = total / float64(len(seed))

	return p, nil
}

// DistinctGenres returns how many genres carry positive affinity.
func (p *TasteProfile) DistinctGenres() int {
	return len(p.GenreAffinity)
}

// IsSeed reports whether k is one of the seed items.
func (p *TasteProfile) IsSeed(k models.Key) bool {
	for i := range p.Seed {
		if p.Seed[i].Key() == k {
			return true
		}
	}
	return false
}

// TopGenres returns up to n genres by descending affinity. Equal counts keep
// first-appearance order.
func (p *TasteProfile) TopGenres(n int) []models.Genre {
	ordered := slices.Clone(p.GenreOrder)
	slices.SortStableFunc(ordered, func(a, b models.Genre) int {
		return cmp.Compare(p.GenreAffinity[b], p.GenreAffinity[a])
	})
	if len(ordered) > n {
		ordered = ordered[:n]
	}
	return ordered
}

// Clone returns a deep copy.
func (p *TasteProfile) Clone() *TasteProfile {
	c := *p
	c.GenreAffinity = make(map[models.Genre]int, len(p.GenreAffinity))
	for g, n := range p.GenreAffinity {
		c.GenreAffinity[g] = n
	}
	c.LanguageMix = make(map[string]int, len(p.LanguageMix))
	for l, n := range p.LanguageMix {
		c.LanguageMix[l] = n
	}
	c.GenreOrder = slices.Clone(p.GenreOrder)
	c.Seed = slices.Clone(p.Seed)
	return &c
}

// addGenre adjusts a genre count. A count that drops to zero removes the genre.
func (p *TasteProfile) addGenre(g models.Genre, delta int) {
	n := p.GenreAffinity[g] + delta
	if n <= 0 {
		if _, ok := p.GenreAffinity[g]; ok {
			delete(p.GenreAffinity, g)
			p.GenreOrder = slices.DeleteFunc(p.GenreOrder, func(have models.Genre) bool { return have == g })
		}
		return
	}
	if _, ok := p.GenreAffinity[g]; !ok {
		p.GenreOrder = append(p.GenreOrder, g)
	}
	p.GenreAffinity[g] = n
}
