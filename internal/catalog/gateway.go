// CineMatch - Taste-Seeded Movie and Series Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/tomtom215/cinematch/internal/models"
)

var (
	// ErrNotConfigured is returned by every call when no API key is set.
	ErrNotConfigured = errors.New("catalog: api key not configured")

	// ErrUpstreamStatus wraps non-2xx responses from the catalog API.
	ErrUpstreamStatus = errors.New("catalog: unexpected upstream status")

	// ErrCircuitOpen is returned while the circuit breaker rejects calls.
	ErrCircuitOpen = errors.New("catalog: circuit open")

	// ErrUnknownGenre is returned when a discover query names a genre outside the code table.
	ErrUnknownGenre = errors.New("catalog: unknown genre")

	// ErrThrottled is returned when the client's own rate limiter gave up
	// before the request was sent. The upstream was never contacted.
	ErrThrottled = errors.New("catalog: throttled locally")
)

// SortKey selects the ordering of discover results.
type SortKey string

const (
	SortVoteAverage SortKey = "vote_average.desc"
	SortPopularity  SortKey = "popularity.desc"
)

// DiscoverQuery describes one page of a discover request. An empty Genre
// discovers across all genres.
type DiscoverQuery struct {
	Kind         models.Kind
	Genre        models.Genre
	Industry     models.Industry
	Sort         SortKey
	MinVoteCount int
	Page         int
}

// cacheKey identifies the page for the page cache.
func (q DiscoverQuery) cacheKey() string {
	return fmt.Sprintf("discover|%s|%s|%s|%s|%d|%d", q.Kind, q.Genre, q.Industry, q.Sort, q.MinVoteCount, q.Page)
}

// Gateway is the read-only contract the rest of the application uses to
// reach the catalog. Implementations return normalized items only.
type Gateway interface {
	// Popular returns one page of popular items of the given kind for the industry.
	// For IndustryBoth the page combines the hollywood and bollywood sources.
	Popular(ctx context.Context, kind models.Kind, industry models.Industry, page int) ([]models.Item, error)

	// Search returns items of the given kind matching query, filtered by industry.
	Search(ctx context.Context, kind models.Kind, query string, industry models.Industry) ([]models.Item, error)

	// DiscoverByGenre returns one page of discover results.
	DiscoverByGenre(ctx context.Context, q DiscoverQuery) ([]models.Item, error)
}

// pathSegment maps a media kind to the upstream URL segment.
func pathSegment(kind models.Kind) string {
	if kind == models.KindSeries {
		return "tv"
	}
	return "movie"
}

// languageFilter maps an industry to with_original_language, "" for both.
func languageFilter(industry models.Industry) string {
	switch industry {
	case models.IndustryBollywood:
		return "hi"
	case models.IndustryHollywood:
		return "en"
	default:
		return ""
	}
}
