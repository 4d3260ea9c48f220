// CineMatch - Taste-Seeded Movie and Series Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package recommend

import (
	"testing"

	"github.com/tomtom215/cinematch/internal/models"
)

func TestReason(t *testing.T) {
	t.Parallel()

	seed := []models.Item{
		{ID: 1, Kind: models.KindMovie, Title: "Heat", Genres: []models.Genre{"Crime", "Thriller"}},
		{ID: 2, Kind: models.KindMovie, Title: "Up", Genres: []models.Genre{"Animation", "Comedy"}},
		{ID: 3, Kind: models.KindSeries, Title: "Fleabag", Genres: []models.Genre{"Comedy", "Drama"}},
	}
	p := mustProfile(t, seed, models.ScopeBoth)

	tests := []struct {
		name   string
		genres []models.Genre
		vote   float64
		want   string
	}{
		{"shared genre", []models.Genre{"Drama", "Comedy"}, 6, "shares Comedy with Up"},
		{"first seed wins", []models.Genre{"Comedy", "Thriller"}, 6, "shares Thriller with Heat"},
		{"highly rated only", []models.Genre{"Western"}, 7.5, "highly rated (7.5/10)"},
		{"both", []models.Genre{"Crime"}, 8.26, "shares Crime with Heat and highly rated (8.3/10)"},
		{"fallback", nil, 7.4, "matches your taste profile"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			it := models.Item{ID: 9, Kind: models.KindMovie, Genres: tt.genres, VoteAverage: tt.vote}
			if got := Reason(&it, p); got != tt.want {
				t.Errorf("Reason = %q, want %q", got, tt.want)
			}
		})
	}
}
