// CineMatch - Taste-Seeded Movie and Series Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

/*
Command server runs the CineMatch recommendation API.

A visitor walks a short wizard: pick an industry and a content type, choose
3 to 10 titles they already love, answer at most one clarifying question,
set optional preferences, and receive five recommendations at a time drawn
from a TMDB-compatible catalog.

# Components

	RootSupervisor ("cinematch")
	├── APISupervisor ("api-layer")
	│   └── HTTP server (chi router, /api/v1)
	└── MaintenanceSupervisor ("maintenance-layer")
	    ├── Session sweeper
	    └── Catalog cache janitor

Startup order:

 1. Configuration: koanf v2 (defaults, optional config.yaml, environment)
 2. Logging: zerolog, bridged to slog for the supervisor
 3. Catalog: HTTP client, circuit breaker, LRU page cache
 4. Recommendation engine
 5. Session store (memory or BadgerDB) and wizard service
 6. Token manager for per-session bearer tokens
 7. HTTP router and supervisor tree

# Configuration

Common environment variables:

	TMDB_API_KEY      catalog API key (required for real results)
	HTTP_PORT         listen port (default 8080)
	SESSION_BACKEND   memory or badger (default memory)
	SESSION_SECRET    32+ byte token signing secret
	LOG_LEVEL         trace, debug, info, warn, error
	LOG_FORMAT        json or console

# Example

	export TMDB_API_KEY=your-key
	export SESSION_SECRET=$(openssl rand -base64 32)
	./cinematch

SIGINT and SIGTERM stop the tree; the HTTP server drains in-flight requests
for up to HTTP_SHUTDOWN_TIMEOUT.
*/
package main
