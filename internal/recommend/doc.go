// CineMatch - Taste-Seeded Movie and Series Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

// Package recommend turns a seed selection into ranked movie and series
// recommendations.
//
// # Pipeline
//
//   - BuildProfile aggregates the seed into a TasteProfile.
//   - DetectAmbiguity decides whether a clarifying question is needed.
//   - CandidateCollector fans out catalog queries for the profile's top
//     genres plus popularity pages and waits for all of them.
//   - Rank scores every candidate, excludes seed and already-shown items,
//     and returns the top N with a short reason each.
//   - FeedbackLedger folds likes back into the live profile.
//
// # Determinism
//
// Scoring is purely additive and uses no randomness. Ties are broken by
// vote average and then by arrival order, and arrival order follows the
// query plan rather than network completion. The same profile, preferences
// and pool always produce the same ranking.
//
// # State
//
// Nothing in this package is process-global. A ShownSet, a TasteProfile and
// a FeedbackLedger belong to one session and are passed explicitly to every
// call. Callers serialize access per session.
//
// # Failure
//
// A failed catalog query contributes no candidates. When every query fails
// the result is an empty, degraded Result rather than an error. Only
// cancellation aborts a pass, and a cancelled pass never records anything
// into the ShownSet.
package recommend
