// CineMatch - Taste-Seeded Movie and Series Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package recommend

import (
	"fmt"

	"github.com/tomtom215/cinematch/internal/config"
	"github.com/tomtom215/cinematch/internal/models"
)

// Config controls the candidate plan and result size.
type Config struct {
	// TopN is how many recommendations a pass returns.
	TopN int `json:"top_n"`

	// TopGenres is how many of the profile's strongest genres get their own
	// discovery queries.
	TopGenres int `json:"top_genres"`

	// GenrePages and PopularPages are the page counts per genre query and
	// per popularity query.
	GenrePages   int `json:"genre_pages"`
	PopularPages int `json:"popular_pages"`

	// MovieMinVotes and SeriesMinVotes filter out thinly rated titles.
	MovieMinVotes  int `json:"movie_min_votes"`
	SeriesMinVotes int `json:"series_min_votes"`

	// MaxConcurrentFetches bounds in-flight catalog requests per pass.
	MaxConcurrentFetches int `json:"max_concurrent_fetches"`

	// DefaultEras seeds new preferences.
	DefaultEras []string `json:"default_eras"`
}

// DefaultConfig returns the stock candidate plan.
func DefaultConfig() *Config {
	return &Config{
		TopN:                 5,
		TopGenres:            3,
		GenrePages:           10,
		PopularPages:         3,
		MovieMinVotes:        100,
		SeriesMinVotes:       50,
		MaxConcurrentFetches: 8,
		DefaultEras:          []string{"2010s", "2020s"},
	}
}

// ConfigFromSettings maps the application config section.
func ConfigFromSettings(s *config.RecommendConfig) *Config {
	return &Config{
		TopN:                 s.TopN,
		TopGenres:            s.TopGenres,
		GenrePages:           s.GenrePages,
		PopularPages:         s.PopularPages,
		MovieMinVotes:        s.MovieMinVotes,
		SeriesMinVotes:       s.SeriesMinVotes,
		MaxConcurrentFetches: s.MaxConcurrentFetches,
		DefaultEras:          s.DefaultEras,
	}
}

// Validate checks that every count is usable.
func (c *Config) Validate() error {
	if c.TopN < 1 {
		return fmt.Errorf("top_n must be positive, got %d", c.TopN)
	}
	if c.TopGenres < 1 {
		return fmt.Errorf("top_genres must be positive, got %d", c.TopGenres)
	}
	if c.GenrePages < 0 || c.PopularPages < 0 {
		return fmt.Errorf("page counts must be non-negative, got genre=%d popular=%d", c.GenrePages, c.PopularPages)
	}
	if c.GenrePages+c.PopularPages == 0 {
		return fmt.Errorf("at least one page must be fetched")
	}
	if c.MovieMinVotes < 0 || c.SeriesMinVotes < 0 {
		return fmt.Errorf("minimum vote counts must be non-negative")
	}
	if c.MaxConcurrentFetches < 1 {
		return fmt.Errorf("max_concurrent_fetches must be positive, got %d", c.MaxConcurrentFetches)
	}
	return nil
}

func (c *Config) minVotes(kind models.Kind) int {
	if kind == models.KindSeries {
		return c.SeriesMinVotes
	}
	return c.MovieMinVotes
}
