// CineMatch - Taste-Seeded Movie and Series Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package catalog

import (
	"sort"

	"github.com/tomtom215/cinematch/internal/models"
)

// genreNames is the catalog's genre code table. Movie and TV codes share one
// namespace upstream, so a single table covers both kinds.
var genreNames = map[int]models.Genre{
	28:    "Action",
	12:    "Adventure",
	16:    "Animation",
	35:    "Comedy",
	80:    "Crime",
	99:    "Documentary",
	18:    "Drama",
	10751: "Family",
	14:    "Fantasy",
	36:    "History",
	27:    "Horror",
	10402: "Music",
	9648:  "Mystery",
	10749: "Romance",
	878:   "Sci-Fi",
	10770: "TV Movie",
	53:    "Thriller",
	10752: "War",
	37:    "Western",
	10759: "Action & Adventure",
	10762: "Kids",
	10763: "News",
	10764: "Reality",
	10765: "Sci-Fi & Fantasy",
	10766: "Soap",
	10767: "Talk",
	10768: "War & Politics",
}

var genreCodes = func() map[models.Genre]int {
	m := make(map[models.Genre]int, len(genreNames))
	for code, name := range genreNames {
		m[name] = code
	}
	return m
}()

// GenreName returns the label for a catalog genre code.
func GenreName(code int) (models.Genre, bool) {
	g, ok := genreNames[code]
	return g, ok
}

// GenreCode returns the catalog code for a genre label.
func GenreCode(g models.Genre) (int, bool) {
	code, ok := genreCodes[g]
	return code, ok
}

// KnownGenre reports whether g appears in the code table.
func KnownGenre(g models.Genre) bool {
	_, ok := genreCodes[g]
	return ok
}

// Genres returns every known genre label in alphabetical order.
func Genres() []models.Genre {
	out := make([]models.Genre, 0, len(genreCodes))
	for g := range genreCodes {
		out = append(out, g)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
