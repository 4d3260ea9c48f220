// CineMatch - Taste-Seeded Movie and Series Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

// Package models defines the canonical catalog item shape shared by the
// catalog gateway, the recommendation engine, sessions and the API.
//
// Items are identified by the composite Key (ID, Kind). The same numeric ID
// can refer to both a movie and an unrelated series, so maps and sets in
// every package are keyed by Key, never by ID alone.
package models
