// CineMatch - Taste-Seeded Movie and Series Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package recommend

import "errors"

var (
	// ErrInsufficientSeed is returned when fewer than MinSeedSize items are selected.
	ErrInsufficientSeed = errors.New("recommend: seed selection needs at least 3 items")

	// ErrSeedTooLarge is returned when more than MaxSeedSize items are selected.
	ErrSeedTooLarge = errors.New("recommend: seed selection allows at most 10 items")

	// ErrDuplicateSeed is returned when the same (id, kind) appears twice in a seed.
	ErrDuplicateSeed = errors.New("recommend: duplicate item in seed selection")

	// ErrDataSourceUnavailable marks a pass where no catalog query succeeded.
	// It is reported on Result, never returned from Recommend.
	ErrDataSourceUnavailable = errors.New("recommend: catalog unavailable")

	// ErrNoProfile is returned when scoring is requested before a profile exists.
	ErrNoProfile = errors.New("recommend: no taste profile")

	// ErrUnknownItem is returned when feedback names an item that was never recommended.
	ErrUnknownItem = errors.New("recommend: unknown item")

	// ErrInvalidPreferences wraps preference validation failures.
	ErrInvalidPreferences = errors.New("recommend: invalid preferences")
)
