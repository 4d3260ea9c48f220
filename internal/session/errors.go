// CineMatch - Taste-Seeded Movie and Series Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package session

import "errors"

var (
	// ErrSessionNotFound is returned when no session exists for an ID.
	ErrSessionNotFound = errors.New("session not found")

	// ErrSessionExpired is returned when a session exists but its TTL has passed.
	ErrSessionExpired = errors.New("session expired")

	// ErrWrongState is returned by catalog lookups outside the selection step.
	ErrWrongState = errors.New("session: operation not available in the current step")

	// ErrInvalidAnswer is returned when a clarification answer does not fit the question.
	ErrInvalidAnswer = errors.New("session: answer does not match the clarification question")

	// ErrInvalidChoice is returned for an unknown industry or content type.
	ErrInvalidChoice = errors.New("session: invalid choice")

	// ErrEmptyQuery is returned by Search for a blank query.
	ErrEmptyQuery = errors.New("session: search query is empty")
)
