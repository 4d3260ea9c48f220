// CineMatch - Taste-Seeded Movie and Series Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

// Package wizard models the recommendation flow as a finite state machine.
//
// The flow runs welcome, industry, contentType, selection, an optional
// clarification, preferences and finally recommendations. Each step only
// accepts the events listed in its transition table. Anything else fails
// with ErrInvalidTransition and leaves the machine where it was.
//
// The machine knows nothing about scoring. Callers validate the seed and
// supply the facts a guard needs, such as whether clarification is
// required, in an Input.
package wizard
