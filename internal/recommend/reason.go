// CineMatch - Taste-Seeded Movie and Series Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package recommend

import (
	"fmt"
	"strings"

	"github.com/tomtom215/cinematch/internal/models"
)

const (
	highlyRatedThreshold = 7.5
	fallbackReason       = "matches your taste profile"
)

// Reason explains a recommendation in one short phrase.
func Reason(it *models.Item, p *TasteProfile) string {
	parts := make([]string, 0, 2)

	if g, title, ok := sharedGenre(it, p); ok {
		parts = append(parts, fmt.Sprintf("shares %s with %s", g, title))
	}
	if it.VoteAverage >= highlyRatedThreshold {
		parts = append(parts, fmt.Sprintf("highly rated (%.1f/10)", it.VoteAverage))
	}

	if len(parts) == 0 {
		return fallbackReason
	}
	return strings.Join(parts, " and ")
}

// sharedGenre finds the first seed item that shares a genre with it, and the
// first of its genres that seed has.
func sharedGenre(it *models.Item, p *TasteProfile) (models.Genre, string, bool) {
	for i := range p.Seed {
		seed := &p.Seed[i]
		for _, g := range it.Genres {
			if seed.HasGenre(g) {
				return g, seed.Title, true
			}
		}
	}
	return "", "", false
}
