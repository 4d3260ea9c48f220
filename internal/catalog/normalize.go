// CineMatch - Taste-Seeded Movie and Series Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package catalog

import (
	"strconv"
	"strings"

	"github.com/tomtom215/cinematch/internal/models"
)

const (
	localLanguage = "hi"
	localCountry  = "IN"

	defaultLanguage = "en"
)

// RawRecord is one entry of a catalog result page as the upstream sends it.
// Movies carry title/release_date, series carry name/first_air_date.
type RawRecord struct {
	ID                  int64               `json:"id"`
	Title               string              `json:"title"`
	Name                string              `json:"name"`
	Overview            string              `json:"overview"`
	ReleaseDate         string              `json:"release_date"`
	FirstAirDate        string              `json:"first_air_date"`
	GenreIDs            []int               `json:"genre_ids"`
	Popularity          float64             `json:"popularity"`
	VoteAverage         float64             `json:"vote_average"`
	VoteCount           int                 `json:"vote_count"`
	PosterPath          string              `json:"poster_path"`
	OriginalLanguage    string              `json:"original_language"`
	OriginCountry       []string            `json:"origin_country"`
	ProductionCountries []ProductionCountry `json:"production_countries"`
}

// ProductionCountry appears on detail-shaped records.
type ProductionCountry struct {
	ISO3166 string `json:"iso_3166_1"`
	Name    string `json:"name"`
}

// resultPage is the envelope of popular, discover and search responses.
type resultPage struct {
	Page         int         `json:"page"`
	Results      []RawRecord `json:"results"`
	TotalPages   int         `json:"total_pages"`
	TotalResults int         `json:"total_results"`
}

// Normalizer converts raw records into models.Item.
type Normalizer struct {
	imageBaseURL string
}

// NewNormalizer returns a Normalizer that builds poster URLs under imageBaseURL.
// An empty base leaves PosterURL unset.
func NewNormalizer(imageBaseURL string) *Normalizer {
	return &Normalizer{imageBaseURL: strings.TrimSuffix(imageBaseURL, "/")}
}

// Normalize maps one raw record of the given kind into an Item.
// Unknown genre codes are dropped and duplicate codes collapse.
func (n *Normalizer) Normalize(rec *RawRecord, kind models.Kind) models.Item {
	title := rec.Title
	if title == "" {
		title = rec.Name
	}
	date := rec.ReleaseDate
	if date == "" {
		date = rec.FirstAirDate
	}
	lang := rec.OriginalLanguage
	if lang == "" {
		lang = defaultLanguage
	}

	item := models.Item{
		ID:             rec.ID,
		Kind:           kind,
		Title:          title,
		Year:           parseYear(date),
		Genres:         mapGenres(rec.GenreIDs),
		OriginLanguage: lang,
		IsLocalOrigin:  IsLocalOrigin(rec),
		Popularity:     clamp(rec.Popularity, 0, -1),
		VoteAverage:    clamp(rec.VoteAverage, 0, 10),
		VoteCount:      rec.VoteCount,
		Overview:       rec.Overview,
	}
	if rec.PosterPath != "" && n.imageBaseURL != "" {
		item.PosterURL = n.imageBaseURL + "/" + strings.TrimPrefix(rec.PosterPath, "/")
	}
	return item
}

// NormalizeAll normalizes a page of records, preserving order.
func (n *Normalizer) NormalizeAll(recs []RawRecord, kind models.Kind) []models.Item {
	out := make([]models.Item, 0, len(recs))
	for i := range recs {
		out = append(out, n.Normalize(&recs[i], kind))
	}
	return out
}

// IsLocalOrigin reports whether a record is a Hindi-language or Indian production.
func IsLocalOrigin(rec *RawRecord) bool {
	if rec.OriginalLanguage == localLanguage {
		return true
	}
	for _, pc := range rec.ProductionCountries {
		if pc.ISO3166 == localCountry {
			return true
		}
	}
	for _, c := range rec.OriginCountry {
		if c == localCountry {
			return true
		}
	}
	return false
}

func mapGenres(codes []int) []models.Genre {
	out := make([]models.Genre, 0, len(codes))
	seen := make(map[models.Genre]struct{}, len(codes))
	for _, code := range codes {
		g, ok := genreNames[code]
		if !ok {
			continue
		}
		if _, dup := seen[g]; dup {
			continue
		}
		seen[g] = struct{}{}
		out = append(out, g)
	}
	return out
}

// parseYear reads the leading four digits of an ISO date. Anything else is 0.
func parseYear(date string) int {
	if len(date) < 4 {
		return 0
	}
	y, err := strconv.Atoi(date[:4])
	if err != nil || y <= 0 {
		return 0
	}
	return y
}

// clamp bounds v to [lo, hi]; a negative hi means no upper bound.
func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if hi >= 0 && v > hi {
		return hi
	}
	return v
}
