// CineMatch - Taste-Seeded Movie and Series Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package recommend

import (
	"cmp"
	"math"
	"slices"

	"github.com/tomtom215/cinematch/internal/models"
)

// Scoring weights.
const (
	affinityWeight       = 15.0
	preferredGenreBonus  = 20.0
	popularityCeiling    = 50.0
	popularityDivisor    = 10.0
	voteWeight           = 5.0
	eraBonus             = 10.0
	episodeLengthCenter  = 50.0
	episodeLengthDivisor = 10.0

	// Viewing context nudges toward movies for both alone and group.
	contextMovieBonus = 15.0
	typePreference    = 20.0
)

// Excluded is the score given to seed and already-shown candidates.
var Excluded = math.Inf(-1)

// Score computes a candidate's affinity. It never looks at the shown set or
// the seed; Rank applies those exclusions.
func Score(it *models.Item, p *TasteProfile, prefs *Preferences, answer ClarificationAnswer) float64 {
	var score float64

	for _, g := range it.Genres {
		score += float64(p.GenreAffinity[g]) * affinityWeight
		if prefs.prefers(g) {
			score += preferredGenreBonus
		}
	}

	score += math.Max(0, popularityCeiling-math.Abs(it.Popularity-p.AvgPopularity)/popularityDivisor)
	score += it.VoteAverage * voteWeight

	if prefs.inEra(it.Decade()) {
		score += eraBonus
	}

	if it.Kind == models.KindSeries {
		score += (episodeLengthCenter - math.Abs(float64(prefs.EpisodeLength)-episodeLengthCenter)) / episodeLengthDivisor
	}

	return score + clarificationBonus(it.Kind, answer)
}

func clarificationBonus(kind models.Kind, answer ClarificationAnswer) float64 {
	switch answer {
	case AnswerAlone, AnswerGroup:
		if kind == models.KindMovie {
			return contextMovieBonus
		}
	case AnswerPreferMovies:
		if kind == models.KindMovie {
			return typePreference
		}
	case AnswerPreferSeries:
		if kind == models.KindSeries {
			return typePreference
		}
	}
	return 0
}

// ShownLookup is the read side of a ShownSet.
type ShownLookup interface {
	Contains(k models.Key) bool
}

type scored struct {
	item    models.Item
	score   float64
	arrival int
}

// Rank scores the pool and returns at most n recommendations, best first.
//
// Duplicate keys collapse into one candidate that keeps the arrival position
// of its first occurrence and the fields of its last. Seed and shown items
// score Excluded and never appear in the output. Ties fall back to vote
// average, then arrival order. Fewer than n qualifying candidates yields a
// shorter list, possibly empty.
func Rank(pool []models.Item, p *TasteProfile, prefs *Preferences, answer ClarificationAnswer, shown ShownLookup, n int) []Recommendation {
	if n <= 0 {
		return []Recommendation{}
	}

	index := make(map[models.Key]int, len(pool))
	candidates := make([]scored, 0, len(pool))
	for i := range pool {
		k := pool[i].Key()
		if at, dup := index[k]; dup {
			candidates[at].item = pool[i]
			continue
		}
		index[k] = len(candidates)
		candidates = append(candidates, scored{item: pool[i], arrival: len(candidates)})
	}

	for i := range candidates {
		c := &candidates[i]
		k := c.item.Key()
		if p.IsSeed(k) || (shown != nil && shown.Contains(k)) {
			c.score = Excluded
			continue
		}
		c.score = Score(&c.item, p, prefs, answer)
	}

	slices.SortStableFunc(candidates, func(a, b scored) int {
		if c := cmp.Compare(b.score, a.score); c != 0 {
			return c
		}
		if c := cmp.Compare(b.item.VoteAverage, a.item.VoteAverage); c != 0 {
			return c
		}
		return cmp.Compare(a.arrival, b.arrival)
	})

	out := make([]Recommendation, 0, min(n, len(candidates)))
	for i := range candidates {
		if len(out) >= n {
			break
		}
		c := &candidates[i]
		if math.IsInf(c.score, -1) {
			break
		}
		out = append(out, Recommendation{
			Item:   c.item,
			Score:  c.score,
			Reason: Reason(&c.item, p),
		})
	}
	return out
}
