// CineMatch - Taste-Seeded Movie and Series Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package recommend

import "github.com/tomtom215/cinematch/internal/models"

// ScatteredGenreThreshold is the distinct-genre count at which a seed is
// considered too scattered to rank without asking about viewing context.
const ScatteredGenreThreshold = 6

// DetectAmbiguity classifies a profile. A scattered seed asks for context
// first; a mixed movie and series seed under the "both" scope asks for a
// type preference. It reads nothing but its arguments.
func DetectAmbiguity(p *TasteProfile, scope models.ContentScope) ClarificationKind {
	if p == nil {
		return ClarificationNone
	}
	if p.DistinctGenres() >= ScatteredGenreThreshold {
		return ClarificationContext
	}
	if p.MovieCount > 0 && p.SeriesCount > 0 && scope == models.ScopeBoth {
		return ClarificationTypePreference
	}
	return ClarificationNone
}
