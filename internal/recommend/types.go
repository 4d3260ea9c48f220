// CineMatch - Taste-Seeded Movie and Series Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package recommend

import (
	"github.com/tomtom215/cinematch/internal/models"
)

// ClarificationKind is the question, if any, asked before scoring.
type ClarificationKind string

const (
	ClarificationNone           ClarificationKind = "none"
	ClarificationContext        ClarificationKind = "context"
	ClarificationTypePreference ClarificationKind = "type_preference"
)

// ClarificationAnswer is the user's reply to a clarification question.
type ClarificationAnswer string

const (
	AnswerNone         ClarificationAnswer = "none"
	AnswerAlone        ClarificationAnswer = "alone"
	AnswerGroup        ClarificationAnswer = "group"
	AnswerPreferMovies ClarificationAnswer = "prefer_movies"
	AnswerPreferSeries ClarificationAnswer = "prefer_series"
)

// Valid reports whether a is a known answer. The empty answer is treated as none.
func (a ClarificationAnswer) Valid() bool {
	switch a {
	case "", AnswerNone, AnswerAlone, AnswerGroup, AnswerPreferMovies, AnswerPreferSeries:
		return true
	}
	return false
}

// AnswersFor lists the answers offered for a clarification question.
func AnswersFor(kind ClarificationKind) []ClarificationAnswer {
	switch kind {
	case ClarificationContext:
		return []ClarificationAnswer{AnswerAlone, AnswerGroup}
	case ClarificationTypePreference:
		return []ClarificationAnswer{AnswerPreferMovies, AnswerPreferSeries}
	default:
		return nil
	}
}

// DiscoveryStyle says how far from the mainstream the user wants to go.
type DiscoveryStyle string

const (
	DiscoveryPopular DiscoveryStyle = "popular"
	DiscoveryMixed   DiscoveryStyle = "mixed"
	DiscoveryHidden  DiscoveryStyle = "hidden"
)

// Signal is a thumbs-up or thumbs-down on a recommendation.
type Signal string

const (
	SignalLike    Signal = "like"
	SignalDislike Signal = "dislike"
)

// Valid reports whether s is like or dislike.
func (s Signal) Valid() bool {
	return s == SignalLike || s == SignalDislike
}

// Recommendation is one ranked result. Reason is derived at ranking time.
type Recommendation struct {
	Item   models.Item `json:"item"`
	Score  float64     `json:"score"`
	Reason string      `json:"reason"`
}
