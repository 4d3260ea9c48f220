// CineMatch - Taste-Seeded Movie and Series Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

// Package session owns per-user recommendation sessions.
//
// A Snapshot is everything one user's flow has accumulated: wizard state,
// seed, taste profile, preferences, shown set and feedback. Snapshots are
// persisted through a Store (in memory or BadgerDB) after every mutating
// call, so the HTTP layer stays stateless.
//
// Service drives the flow. Calls for the same session are serialized by a
// per-session lock; different sessions never share state and run in
// parallel.
package session
