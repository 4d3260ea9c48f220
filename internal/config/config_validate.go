// CineMatch - Taste-Seeded Movie and Series Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package config

import (
	"fmt"
	"net/url"
	"regexp"

	"github.com/tomtom215/cinematch/internal/logging"
)

// minSecretLength matches the HS256 key size.
const minSecretLength = 32

var eraPattern = regexp.MustCompile(`^(19|20)[0-9]0s$`)

// Validate checks the configuration for impossible or unsafe values.
func (c *Config) Validate() error {
	if err := c.validateServer(); err != nil {
		return err
	}
	if err := c.validateCatalog(); err != nil {
		return err
	}
	if err := c.validateRecommend(); err != nil {
		return err
	}
	if err := c.validateSession(); err != nil {
		return err
	}
	if err := c.validateSecurity(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("HTTP_PORT must be between 1 and 65535, got %d", c.Server.Port)
	}
	if c.Server.RequestTimeout <= 0 {
		return fmt.Errorf("HTTP_REQUEST_TIMEOUT must be positive")
	}
	return nil
}

func (c *Config) validateCatalog() error {
	if err := validateHTTPURL(c.Catalog.BaseURL, "TMDB_BASE_URL"); err != nil {
		return err
	}
	if c.Catalog.Timeout <= 0 {
		return fmt.Errorf("TMDB_TIMEOUT must be positive")
	}
	if c.Catalog.RequestsPerSecond <= 0 {
		return fmt.Errorf("TMDB_REQUESTS_PER_SECOND must be positive, got %v", c.Catalog.RequestsPerSecond)
	}
	if c.Catalog.Burst < 1 {
		return fmt.Errorf("TMDB_BURST must be at least 1, got %d", c.Catalog.Burst)
	}
	if c.Catalog.PageCacheSize < 0 {
		return fmt.Errorf("CATALOG_CACHE_SIZE must not be negative")
	}
	if c.Catalog.BreakerFailureRatio <= 0 || c.Catalog.BreakerFailureRatio > 1 {
		return fmt.Errorf("CATALOG_BREAKER_FAIL_RATIO must be in (0,1], got %v", c.Catalog.BreakerFailureRatio)
	}
	return nil
}

func (c *Config) validateRecommend() error {
	r := c.Recommend
	checks := []struct {
		name string
		val  int
		min  int
	}{
		{"RECOMMEND_TOP_N", r.TopN, 1},
		{"RECOMMEND_TOP_GENRES", r.TopGenres, 1},
		{"RECOMMEND_GENRE_PAGES", r.GenrePages, 1},
		{"RECOMMEND_POPULAR_PAGES", r.PopularPages, 0},
		{"RECOMMEND_MOVIE_MIN_VOTES", r.MovieMinVotes, 0},
		{"RECOMMEND_SERIES_MIN_VOTES", r.SeriesMinVotes, 0},
		{"RECOMMEND_SEED_POOL_PAGES", r.SeedPoolPages, 1},
		{"RECOMMEND_SEED_POOL_LIMIT", r.SeedPoolLimit, 1},
		{"RECOMMEND_MAX_CONCURRENT", r.MaxConcurrentFetches, 1},
	}
	for _, ch := range checks {
		if ch.val < ch.min {
			return fmt.Errorf("%s must be at least %d, got %d", ch.name, ch.min, ch.val)
		}
	}
	for _, era := range r.DefaultEras {
		if !eraPattern.MatchString(era) {
			return fmt.Errorf("RECOMMEND_DEFAULT_ERAS contains invalid decade %q", era)
		}
	}
	return nil
}

func (c *Config) validateSession() error {
	switch c.Session.Backend {
	case SessionBackendMemory:
	case SessionBackendBadger:
		if c.Session.BadgerPath == "" {
			return fmt.Errorf("SESSION_BADGER_PATH is required when SESSION_BACKEND=badger")
		}
	default:
		return fmt.Errorf("SESSION_BACKEND must be %q or %q, got %q",
			SessionBackendMemory, SessionBackendBadger, c.Session.Backend)
	}
	if c.Session.TTL <= 0 {
		return fmt.Errorf("SESSION_TTL must be positive")
	}
	if c.Session.SweepInterval <= 0 {
		return fmt.Errorf("SESSION_SWEEP_INTERVAL must be positive")
	}
	if c.Session.Secret != "" && len(c.Session.Secret) < minSecretLength {
		return fmt.Errorf("SESSION_SECRET must be at least %d characters", minSecretLength)
	}
	return nil
}

func (c *Config) validateSecurity() error {
	if c.Security.RateLimitDisabled {
		return nil
	}
	if c.Security.RateLimitReqs < 1 {
		return fmt.Errorf("RATE_LIMIT_REQUESTS must be at least 1")
	}
	if c.Security.RateLimitWindow <= 0 {
		return fmt.Errorf("RATE_LIMIT_WINDOW must be positive")
	}
	return nil
}

func (c *Config) validateLogging() error {
	if !logging.ValidLevel(c.Logging.Level) {
		return fmt.Errorf("LOG_LEVEL %q is not a recognized level", c.Logging.Level)
	}
	if c.Logging.Format != "json" && c.Logging.Format != "console" {
		return fmt.Errorf("LOG_FORMAT must be json or console, got %q", c.Logging.Format)
	}
	return nil
}

// validateHTTPURL accepts an http(s) base URL. A path prefix is allowed
// because TMDB versions its API in the path.
func validateHTTPURL(raw, field string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("%s failed to parse URL: %w", field, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%s scheme must be http or https, got: %q", field, u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("%s host is required", field)
	}
	if u.RawQuery != "" {
		return fmt.Errorf("%s should not contain query parameters", field)
	}
	return nil
}
