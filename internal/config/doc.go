// CineMatch - Taste-Seeded Movie and Series Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

// Package config loads CineMatch configuration with Koanf v2.
//
// Sources are layered, later ones overriding earlier ones:
//
//  1. Built-in defaults (structs provider)
//  2. Optional YAML file from CONFIG_PATH or DefaultConfigPaths
//  3. Environment variables, mapped through envMappings
//
// Example config.yaml:
//
//	server:
//	  port: 8080
//	catalog:
//	  api_key: "your-tmdb-key"
//	  requests_per_second: 20
//	recommend:
//	  genre_pages: 10
//	session:
//	  backend: badger
//	  badger_path: /data/sessions
//
// The same settings as environment variables:
//
//	HTTP_PORT=8080 TMDB_API_KEY=... SESSION_BACKEND=badger
//
// Load validates the result before returning it.
package config
