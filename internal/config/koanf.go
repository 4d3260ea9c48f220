// CineMatch - Taste-Seeded Movie and Series Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths are searched in order when CONFIG_PATH is unset.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/cinematch/config.yaml",
	"/etc/cinematch/config.yml",
}

// ConfigPathEnvVar overrides the config file location.
const ConfigPathEnvVar = "CONFIG_PATH"

func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:            "0.0.0.0",
			Port:            8080,
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    60 * time.Second,
			ShutdownTimeout: 10 * time.Second,
			RequestTimeout:  45 * time.Second,
		},
		Catalog: CatalogConfig{
			BaseURL:             "https://api.themoviedb.org/3",
			ImageBaseURL:        "https://image.tmdb.org/t/p/w500",
			APIKey:              "",
			Timeout:             10 * time.Second,
			RequestsPerSecond:   35,
			Burst:               10,
			PageCacheSize:       2000,
			PageCacheTTL:        30 * time.Minute,
			BreakerMaxRequests:  3,
			BreakerInterval:     time.Minute,
			BreakerTimeout:      30 * time.Second,
			BreakerMinRequests:  10,
			BreakerFailureRatio: 0.6,
		},
		Recommend: RecommendConfig{
			TopN:                 5,
			TopGenres:            3,
			GenrePages:           10,
			PopularPages:         3,
			MovieMinVotes:        100,
			SeriesMinVotes:       50,
			SeedPoolPages:        5,
			SeedPoolLimit:        200,
			MaxConcurrentFetches: 8,
			DefaultEras:          []string{"2010s", "2020s"},
		},
		Session: SessionConfig{
			Backend:       SessionBackendMemory,
			BadgerPath:    "/data/sessions",
			TTL:           24 * time.Hour,
			SweepInterval: 10 * time.Minute,
		},
		Security: SecurityConfig{
			CORSOrigins:     []string{"*"},
			RateLimitReqs:   120,
			RateLimitWindow: time.Minute,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// Load builds the configuration from defaults, an optional YAML file and
// the environment, then validates it.
func Load() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if path := findConfigFile(); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

func findConfigFile() string {
	if p := os.Getenv(ConfigPathEnvVar); p != "" {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	for _, p := range DefaultConfigPaths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

// sliceConfigPaths accept comma-separated strings from the environment.
var sliceConfigPaths = []string{
	"security.cors_origins",
	"recommend.default_eras",
}

func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		raw, ok := k.Get(path).(string)
		if !ok || raw == "" {
			continue
		}
		var parts []string
		for _, p := range strings.Split(raw, ",") {
			if p = strings.TrimSpace(p); p != "" {
				parts = append(parts, p)
			}
		}
		if len(parts) == 0 {
			continue
		}
		if err := k.Set(path, parts); err != nil {
			return fmt.Errorf("failed to set %s: %w", path, err)
		}
	}
	return nil
}

// envMappings maps lower-cased environment variable names to config paths.
// Variables not listed here are ignored.
var envMappings = map[string]string{
	"http_host":             "server.host",
	"http_port":             "server.port",
	"http_read_timeout":     "server.read_timeout",
	"http_write_timeout":    "server.write_timeout",
	"http_shutdown_timeout": "server.shutdown_timeout",
	"http_request_timeout":  "server.request_timeout",

	"tmdb_base_url":              "catalog.base_url",
	"tmdb_image_base_url":        "catalog.image_base_url",
	"tmdb_api_key":               "catalog.api_key",
	"tmdb_timeout":               "catalog.timeout",
	"tmdb_requests_per_second":   "catalog.requests_per_second",
	"tmdb_burst":                 "catalog.burst",
	"catalog_cache_size":         "catalog.page_cache_size",
	"catalog_cache_ttl":          "catalog.page_cache_ttl",
	"catalog_breaker_timeout":    "catalog.breaker_timeout",
	"catalog_breaker_min_reqs":   "catalog.breaker_min_requests",
	"catalog_breaker_fail_ratio": "catalog.breaker_failure_ratio",

	"recommend_top_n":            "recommend.top_n",
	"recommend_top_genres":       "recommend.top_genres",
	"recommend_genre_pages":      "recommend.genre_pages",
	"recommend_popular_pages":    "recommend.popular_pages",
	"recommend_movie_min_votes":  "recommend.movie_min_votes",
	"recommend_series_min_votes": "recommend.series_min_votes",
	"recommend_seed_pool_pages":  "recommend.seed_pool_pages",
	"recommend_seed_pool_limit":  "recommend.seed_pool_limit",
	"recommend_max_concurrent":   "recommend.max_concurrent_fetches",
	"recommend_default_eras":     "recommend.default_eras",

	"session_backend":        "session.backend",
	"session_badger_path":    "session.badger_path",
	"session_ttl":            "session.ttl",
	"session_sweep_interval": "session.sweep_interval",
	"session_secret":         "session.secret",

	"cors_origins":        "security.cors_origins",
	"rate_limit_requests": "security.rate_limit_reqs",
	"rate_limit_window":   "security.rate_limit_window",
	"disable_rate_limit":  "security.rate_limit_disabled",

	"log_level":  "logging.level",
	"log_format": "logging.format",
	"log_caller": "logging.caller",
}

// envTransformFunc returns "" for unmapped keys so unrelated environment
// variables never leak into the config tree.
func envTransformFunc(key string) string {
	return envMappings[strings.ToLower(key)]
}
