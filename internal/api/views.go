// CineMatch - Taste-Seeded Movie and Series Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package api

import (
	"time"

	"github.com/tomtom215/cinematch/internal/models"
	"github.com/tomtom215/cinematch/internal/recommend"
	"github.com/tomtom215/cinematch/internal/session"
	"github.com/tomtom215/cinematch/internal/wizard"
)

// CreatedSession is returned by POST /sessions.
type CreatedSession struct {
	SessionID string       `json:"session_id"`
	Token     string       `json:"token"`
	State     wizard.State `json:"state"`
	ExpiresAt time.Time    `json:"expires_at"`
}

// ProfileView summarizes the taste profile.
type ProfileView struct {
	TopGenres     []models.Genre       `json:"top_genres"`
	GenreAffinity map[models.Genre]int `json:"genre_affinity"`
	LanguageMix   map[string]int       `json:"language_mix"`
	AvgPopularity float64              `json:"avg_popularity"`
	MovieCount    int                  `json:"movie_count"`
	SeriesCount   int                  `json:"series_count"`
}

// RecommendationView is one recommendation with its feedback label.
type RecommendationView struct {
	recommend.Recommendation
	Feedback recommend.Signal `json:"feedback,omitempty"`
}

// SessionView is the client-facing state of a session.
type SessionView struct {
	SessionID       string                          `json:"session_id"`
	State           wizard.State                    `json:"state"`
	CanGoBack       bool                            `json:"can_go_back"`
	Industry        models.Industry                 `json:"industry,omitempty"`
	ContentType     models.ContentScope             `json:"content_type,omitempty"`
	Seed            []models.Item                   `json:"seed"`
	Profile         *ProfileView                    `json:"profile,omitempty"`
	Clarification   recommend.ClarificationKind     `json:"clarification,omitempty"`
	Answers         []recommend.ClarificationAnswer `json:"answers,omitempty"`
	Answer          recommend.ClarificationAnswer   `json:"answer,omitempty"`
	Preferences     recommend.Preferences           `json:"preferences"`
	Recommendations []RecommendationView            `json:"recommendations"`
	ShownCount      int                             `json:"shown_count"`
	OfferReset      bool                            `json:"offer_reset"`
	ExpiresAt       time.Time                       `json:"expires_at"`
}

// SelectionResult is returned by POST /sessions/{id}/selection.
type SelectionResult struct {
	Clarification recommend.ClarificationKind     `json:"clarification"`
	Answers       []recommend.ClarificationAnswer `json:"answers,omitempty"`
	State         wizard.State                    `json:"state"`
}

func newSessionView(snap *session.Snapshot) *SessionView {
	v := &SessionView{
		SessionID:       snap.ID,
		State:           snap.State,
		CanGoBack:       canGoBack(snap),
		Industry:        snap.Industry,
		ContentType:     snap.Scope,
		Seed:            nonNil(snap.Seed),
		Clarification:   snap.Clarification,
		Answers:         recommend.AnswersFor(snap.Clarification),
		Answer:          snap.Answer,
		Preferences:     snap.Preferences,
		Recommendations: recommendationViews(snap),
		ShownCount:      snap.ShownCount(),
		OfferReset:      snap.OfferReset(),
		ExpiresAt:       snap.ExpiresAt,
	}
	if p := snap.Profile; p != nil {
		v.Profile = &ProfileView{
			TopGenres:     p.TopGenres(3),
			GenreAffinity: p.GenreAffinity,
			LanguageMix:   p.LanguageMix,
			AvgPopularity: p.AvgPopularity,
			MovieCount:    p.MovieCount,
			SeriesCount:   p.SeriesCount,
		}
	}
	return v
}

func recommendationViews(snap *session.Snapshot) []RecommendationView {
	views := make([]RecommendationView, len(snap.Recommendations))
	for i, rec := range snap.Recommendations {
		views[i] = RecommendationView{Recommendation: rec}
		if sig, ok := snap.Feedback.Label(rec.Item.Key()); ok {
			views[i].Feedback = sig
		}
	}
	return views
}

func canGoBack(snap *session.Snapshot) bool {
	m, err := wizard.Restore(snap.State, snap.History)
	if err != nil {
		return false
	}
	return m.Can(wizard.EventBack)
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
