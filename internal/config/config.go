// CineMatch - Taste-Seeded Movie and Series Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package config

import "time"

// Config is the complete application configuration.
type Config struct {
	Server    ServerConfig    `koanf:"server"`
	Catalog   CatalogConfig   `koanf:"catalog"`
	Recommend RecommendConfig `koanf:"recommend"`
	Session   SessionConfig   `koanf:"session"`
	Security  SecurityConfig  `koanf:"security"`
	Logging   LoggingConfig   `koanf:"logging"`
}

// ServerConfig controls the HTTP listener.
type ServerConfig struct {
	Host            string        `koanf:"host"`
	Port            int           `koanf:"port"`
	ReadTimeout     time.Duration `koanf:"read_timeout"`
	WriteTimeout    time.Duration `koanf:"write_timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`

	// RequestTimeout bounds a single scoring request, including every
	// catalog fetch it fans out.
	RequestTimeout time.Duration `koanf:"request_timeout"`
}

// CatalogConfig points at the TMDB-compatible catalog API.
type CatalogConfig struct {
	BaseURL      string        `koanf:"base_url"`
	ImageBaseURL string        `koanf:"image_base_url"`
	APIKey       string        `koanf:"api_key"`
	Timeout      time.Duration `koanf:"timeout"`

	// Client-side token bucket. TMDB allows roughly 40 requests per second.
	RequestsPerSecond float64 `koanf:"requests_per_second"`
	Burst             int     `koanf:"burst"`

	PageCacheSize int           `koanf:"page_cache_size"`
	PageCacheTTL  time.Duration `koanf:"page_cache_ttl"`

	BreakerMaxRequests  uint32        `koanf:"breaker_max_requests"`
	BreakerInterval     time.Duration `koanf:"breaker_interval"`
	BreakerTimeout      time.Duration `koanf:"breaker_timeout"`
	BreakerMinRequests  uint32        `koanf:"breaker_min_requests"`
	BreakerFailureRatio float64       `koanf:"breaker_failure_ratio"`
}

// RecommendConfig sizes the candidate pool and the result list.
type RecommendConfig struct {
	TopN                 int      `koanf:"top_n"`
	TopGenres            int      `koanf:"top_genres"`
	GenrePages           int      `koanf:"genre_pages"`
	PopularPages         int      `koanf:"popular_pages"`
	MovieMinVotes        int      `koanf:"movie_min_votes"`
	SeriesMinVotes       int      `koanf:"series_min_votes"`
	SeedPoolPages        int      `koanf:"seed_pool_pages"`
	SeedPoolLimit        int      `koanf:"seed_pool_limit"`
	MaxConcurrentFetches int      `koanf:"max_concurrent_fetches"`
	DefaultEras          []string `koanf:"default_eras"`
}

// SessionConfig selects where wizard sessions are kept.
type SessionConfig struct {
	// Backend is "memory" or "badger".
	Backend       string        `koanf:"backend"`
	BadgerPath    string        `koanf:"badger_path"`
	TTL           time.Duration `koanf:"ttl"`
	SweepInterval time.Duration `koanf:"sweep_interval"`

	// Secret signs session tokens. When empty a random secret is generated
	// at startup and tokens do not survive a restart.
	Secret string `koanf:"secret"`
}

// SecurityConfig holds HTTP-facing protections.
type SecurityConfig struct {
	CORSOrigins       []string      `koanf:"cors_origins"`
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
}

// LoggingConfig mirrors logging.Config.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

const (
	SessionBackendMemory = "memory"
	SessionBackendBadger = "badger"
)
