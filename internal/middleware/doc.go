// CineMatch - Taste-Seeded Movie and Series Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

/*
Package middleware provides the HTTP infrastructure middleware shared by every
route.

Key Components:

  - RequestID: accepts or generates X-Request-ID and threads it into the
    logging context
  - RequestLogger: one structured zerolog line per request
  - Metrics: Prometheus request count, duration and in-flight gauge, labelled
    by chi route pattern so session IDs never become label values

Middleware Stack:

	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestLogger)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.Metrics)
*/
package middleware
