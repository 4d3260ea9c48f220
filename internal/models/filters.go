// CineMatch - Taste-Seeded Movie and Series Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package models

// Industry narrows the catalog to local-origin (Hindi-language or Indian)
// productions, to everything else, or to both.
type Industry string

const (
	IndustryBollywood Industry = "bollywood"
	IndustryHollywood Industry = "hollywood"
	IndustryBoth      Industry = "both"
)

// Valid reports whether i is a known industry filter.
func (i Industry) Valid() bool {
	switch i {
	case IndustryBollywood, IndustryHollywood, IndustryBoth:
		return true
	}
	return false
}

// Admits reports whether an item with the given origin passes the filter.
func (i Industry) Admits(isLocalOrigin bool) bool {
	switch i {
	case IndustryBollywood:
		return isLocalOrigin
	case IndustryHollywood:
		return !isLocalOrigin
	default:
		return true
	}
}

// ContentScope restricts which media kinds are offered and recommended.
type ContentScope string

const (
	ScopeMovie  ContentScope = "movie"
	ScopeSeries ContentScope = "series"
	ScopeBoth   ContentScope = "both"
)

// Valid reports whether s is a known scope.
func (s ContentScope) Valid() bool {
	switch s {
	case ScopeMovie, ScopeSeries, ScopeBoth:
		return true
	}
	return false
}

// Kinds returns the media kinds covered by the scope, movies first.
func (s ContentScope) Kinds() []Kind {
	switch s {
	case ScopeMovie:
		return []Kind{KindMovie}
	case ScopeSeries:
		return []Kind{KindSeries}
	case ScopeBoth:
		return []Kind{KindMovie, KindSeries}
	}
	return nil
}
