// CineMatch - Taste-Seeded Movie and Series Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package recommend

import (
	"fmt"
	"slices"

	"github.com/tomtom215/cinematch/internal/models"
)

// FeedbackEntry is the label currently shown on one item.
type FeedbackEntry struct {
	Key    models.Key `json:"key"`
	Signal Signal     `json:"signal"`
}

// Reinforcement records the genres a like folded into the profile.
type Reinforcement struct {
	Key    models.Key     `json:"key"`
	Genres []models.Genre `json:"genres"`
}

// FeedbackLedger holds the feedback labels of a session and the likes
// already folded into its profile.
//
// A like adds one to each of the item's genres in the live profile, at most
// once per item for the lifetime of the profile. A dislike only labels the
// item, except that it takes back the reinforcement of an earlier like on the
// same item. Repeating a signal changes nothing.
type FeedbackLedger struct {
	Entries    []FeedbackEntry `json:"entries"`
	Reinforced []Reinforcement `json:"reinforced,omitempty"`
}

// Apply records signal for it and updates p. It reports whether the label changed.
func (l *FeedbackLedger) Apply(p *TasteProfile, it *models.Item, signal Signal) (bool, error) {
	if p == nil {
		return false, ErrNoProfile
	}
	if !signal.Valid() {
		return false, fmt.Errorf("recommend: unknown feedback signal %q", signal)
	}

	k := it.Key()
	idx := l.find(k)
	if idx >= 0 && l.Entries[idx].Signal == signal {
		return false, nil
	}

	r := l.reinforced(k)
	switch signal {
	case SignalLike:
		if r < 0 {
			for _, g := range it.Genres {
				p.addGenre(g, 1)
			}
			l.Reinforced = append(l.Reinforced, Reinforcement{Key: k, Genres: slices.Clone(it.Genres)})
		}
	case SignalDislike:
		if r >= 0 {
			for _, g := range l.Reinforced[r].Genres {
				p.addGenre(g, -1)
			}
			l.Reinforced = slices.Delete(l.Reinforced, r, r+1)
		}
	}

	if idx < 0 {
		l.Entries = append(l.Entries, FeedbackEntry{Key: k, Signal: signal})
	} else {
		l.Entries[idx].Signal = signal
	}
	return true, nil
}

// Label returns the signal recorded for k, if any.
func (l *FeedbackLedger) Label(k models.Key) (Signal, bool) {
	if i := l.find(k); i >= 0 {
		return l.Entries[i].Signal, true
	}
	return "", false
}

// Labels returns every label keyed by item.
func (l *FeedbackLedger) Labels() map[models.Key]Signal {
	out := make(map[models.Key]Signal, len(l.Entries))
	for _, e := range l.Entries {
		out[e.Key] = e.Signal
	}
	return out
}

// Clear drops every label. Reinforcement already applied to the profile
// stays, and so does the record of it: liking the same item again later
// does not count twice.
func (l *FeedbackLedger) Clear() {
	l.Entries = nil
}

// Reset forgets labels and reinforcement. Use it only when the profile the
// reinforcement was applied to is discarded.
func (l *FeedbackLedger) Reset() {
	l.Entries = nil
	l.Reinforced = nil
}

func (l *FeedbackLedger) find(k models.Key) int {
	return slices.IndexFunc(l.Entries, func(e FeedbackEntry) bool { return e.Key == k })
}

func (l *FeedbackLedger) reinforced(k models.Key) int {
	return slices.IndexFunc(l.Reinforced, func(r Reinforcement) bool { return r.Key == k })
}
