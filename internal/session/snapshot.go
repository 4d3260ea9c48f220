// CineMatch - Taste-Seeded Movie and Series Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package session

import (
	"time"

	"github.com/tomtom215/cinematch/internal/models"
	"github.com/tomtom215/cinematch/internal/recommend"
	"github.com/tomtom215/cinematch/internal/wizard"
)

// maxSeenItems bounds how many catalog items a session remembers for
// resolving its seed selection.
const maxSeenItems = 1000

// Snapshot is the persisted state of one session.
type Snapshot struct {
	ID      string         `json:"id"`
	State   wizard.State   `json:"state"`
	History []wizard.State `json:"history,omitempty"`

	Industry models.Industry     `json:"industry,omitempty"`
	Scope    models.ContentScope `json:"scope,omitempty"`

	// Seen holds catalog items this session was shown while picking its seed.
	Seen []models.Item `json:"seen,omitempty"`

	Seed          []models.Item                 `json:"seed,omitempty"`
	Profile       *recommend.TasteProfile       `json:"profile,omitempty"`
	Clarification recommend.ClarificationKind   `json:"clarification,omitempty"`
	Answer        recommend.ClarificationAnswer `json:"answer,omitempty"`
	Preferences   recommend.Preferences         `json:"preferences"`

	Shown           []models.Key               `json:"shown,omitempty"`
	Feedback        recommend.FeedbackLedger   `json:"feedback"`
	Recommendations []recommend.Recommendation `json:"recommendations,omitempty"`
	Degraded        bool                       `json:"degraded,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// IsExpiredAt reports whether the snapshot's TTL has passed at now.
func (s *Snapshot) IsExpiredAt(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && now.After(s.ExpiresAt)
}

// IsExpired reports whether the snapshot's TTL has passed.
func (s *Snapshot) IsExpired() bool {
	return s.IsExpiredAt(time.Now())
}

// ShownCount returns how many items this session has been shown.
func (s *Snapshot) ShownCount() int {
	return len(s.Shown)
}

// OfferReset reports whether the UI should offer a pool reset.
func (s *Snapshot) OfferReset() bool {
	return s.ShownCount() > recommend.ResetOfferThreshold
}

// remember adds items to Seen. A repeated key is refreshed in place and the
// oldest entries fall off past maxSeenItems.
func (s *Snapshot) remember(items []models.Item) {
	index := make(map[models.Key]int, len(s.Seen))
	for i := range s.Seen {
		index[s.Seen[i].Key()] = i
	}
	for i := range items {
		k := items[i].Key()
		if at, ok := index[k]; ok {
			s.Seen[at] = items[i]
			continue
		}
		index[k] = len(s.Seen)
		s.Seen = append(s.Seen, items[i])
	}
	if over := len(s.Seen) - maxSeenItems; over > 0 {
		s.Seen = append(s.Seen[:0:0], s.Seen[over:]...)
	}
}

// lookup finds a remembered item by key.
func (s *Snapshot) lookup(k models.Key) (models.Item, bool) {
	for i := range s.Seen {
		if s.Seen[i].Key() == k {
			return s.Seen[i], true
		}
	}
	return models.Item{}, false
}

// recommended finds an item in the latest recommendations.
func (s *Snapshot) recommended(k models.Key) (models.Item, bool) {
	for i := range s.Recommendations {
		if s.Recommendations[i].Item.Key() == k {
			return s.Recommendations[i].Item, true
		}
	}
	return models.Item{}, false
}

// resetFlow clears everything the wizard accumulated.
func (s *Snapshot) resetFlow(prefs recommend.Preferences) {
	s.Industry = ""
	s.Scope = ""
	s.Seen = nil
	s.Seed = nil
	s.Profile = nil
	s.Clarification = ""
	s.Answer = ""
	s.Preferences = prefs
	s.Shown = nil
	s.Feedback.Reset()
	s.Recommendations = nil
	s.Degraded = false
}
