// CineMatch - Taste-Seeded Movie and Series Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

// Package metrics defines the Prometheus collectors exported on /metrics.
//
// Collectors are registered on the default registry through promauto and
// are updated with the Record* helpers so call sites stay one line long.
package metrics
