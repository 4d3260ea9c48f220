// CineMatch - Taste-Seeded Movie and Series Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package recommend

import (
	"errors"
	"maps"
	"testing"

	"github.com/tomtom215/cinematch/internal/models"
)

func feedbackProfile(t *testing.T) *TasteProfile {
	t.Helper()
	return mustProfile(t, []models.Item{
		movie(1, 0, "Drama"), movie(2, 0, "Drama", "Comedy"), movie(3, 0),
	}, models.ScopeMovie)
}

func TestFeedbackLikeReinforces(t *testing.T) {
	t.Parallel()

	p := feedbackProfile(t)
	var l FeedbackLedger
	liked := movie(10, 0, "Comedy", "War")

	changed, err := l.Apply(p, &liked, SignalLike)
	if err != nil || !changed {
		t.Fatalf("Apply = %v, %v", changed, err)
	}
	if p.GenreAffinity["Comedy"] != 2 || p.GenreAffinity["War"] != 1 || p.GenreAffinity["Drama"] != 2 {
		t.Errorf("GenreAffinity = %v", p.GenreAffinity)
	}
	if p.GenreOrder[len(p.GenreOrder)-1] != "War" {
		t.Errorf("GenreOrder = %v", p.GenreOrder)
	}

	changed, err = l.Apply(p, &liked, SignalLike)
	if err != nil || changed {
		t.Fatalf("repeat Apply = %v, %v", changed, err)
	}
	if p.GenreAffinity["Comedy"] != 2 {
		t.Errorf("repeat like double counted: %v", p.GenreAffinity)
	}
	if sig, ok := l.Label(liked.Key()); !ok || sig != SignalLike {
		t.Errorf("Label = %q, %v", sig, ok)
	}
}

func TestFeedbackDislikeIsLabelOnly(t *testing.T) {
	t.Parallel()

	p := feedbackProfile(t)
	before := maps.Clone(p.GenreAffinity)
	var l FeedbackLedger
	it := movie(10, 0, "Drama")

	if _, err := l.Apply(p, &it, SignalDislike); err != nil {
		t.Fatal(err)
	}
	if !maps.Equal(before, p.GenreAffinity) {
		t.Errorf("dislike changed the profile: %v", p.GenreAffinity)
	}
	if sig, _ := l.Label(it.Key()); sig != SignalDislike {
		t.Errorf("Label = %q", sig)
	}
}

func TestFeedbackSwitchReplaces(t *testing.T) {
	t.Parallel()

	p := feedbackProfile(t)
	before := maps.Clone(p.GenreAffinity)
	var l FeedbackLedger
	it := movie(10, 0, "Drama", "Horror")

	if _, err := l.Apply(p, &it, SignalLike); err != nil {
		t.Fatal(err)
	}
	if _, err := l.Apply(p, &it, SignalDislike); err != nil {
		t.Fatal(err)
	}
	if !maps.Equal(before, p.GenreAffinity) {
		t.Errorf("switch to dislike kept reinforcement: %v, want %v", p.GenreAffinity, before)
	}
	for _, g := range p.GenreOrder {
		if g == "Horror" {
			t.Error("reverted genre still in GenreOrder")
		}
	}

	if _, err := l.Apply(p, &it, SignalLike); err != nil {
		t.Fatal(err)
	}
	if p.GenreAffinity["Drama"] != before["Drama"]+1 {
		t.Errorf("like after dislike: %v", p.GenreAffinity)
	}
	if len(l.Entries) != 1 {
		t.Errorf("Entries = %d, want 1 label per key", len(l.Entries))
	}
}

func TestFeedbackClearKeepsReinforcement(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		afterWipe Signal
		wantWar   int
	}{
		{"like again does not count twice", SignalLike, 1},
		{"dislike still takes back the like", SignalDislike, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := feedbackProfile(t)
			var l FeedbackLedger
			it := movie(10, 0, "War")
			if _, err := l.Apply(p, &it, SignalLike); err != nil {
				t.Fatal(err)
			}

			l.Clear()
			if len(l.Labels()) != 0 {
				t.Errorf("Labels after Clear = %v", l.Labels())
			}
			if p.GenreAffinity["War"] != 1 {
				t.Errorf("Clear reverted reinforcement: %v", p.GenreAffinity)
			}

			changed, err := l.Apply(p, &it, tt.afterWipe)
			if err != nil || !changed {
				t.Fatalf("Apply after Clear = %v, %v", changed, err)
			}
			if p.GenreAffinity["War"] != tt.wantWar {
				t.Errorf("War affinity = %d, want %d", p.GenreAffinity["War"], tt.wantWar)
			}
			if sig, _ := l.Label(it.Key()); sig != tt.afterWipe {
				t.Errorf("Label = %q, want %q", sig, tt.afterWipe)
			}
		})
	}
}

func TestFeedbackResetForgetsReinforcement(t *testing.T) {
	t.Parallel()

	var l FeedbackLedger
	it := movie(10, 0, "War")
	if _, err := l.Apply(feedbackProfile(t), &it, SignalLike); err != nil {
		t.Fatal(err)
	}
	l.Reset()
	if len(l.Entries) != 0 || len(l.Reinforced) != 0 {
		t.Fatalf("Reset left %+v", l)
	}

	fresh := feedbackProfile(t)
	if _, err := l.Apply(fresh, &it, SignalLike); err != nil {
		t.Fatal(err)
	}
	if fresh.GenreAffinity["War"] != 1 {
		t.Errorf("like on a new profile: War = %d, want 1", fresh.GenreAffinity["War"])
	}
}

func TestFeedbackErrors(t *testing.T) {
	t.Parallel()

	var l FeedbackLedger
	it := movie(10, 0)
	if _, err := l.Apply(nil, &it, SignalLike); !errors.Is(err, ErrNoProfile) {
		t.Errorf("nil profile err = %v", err)
	}
	if _, err := l.Apply(feedbackProfile(t), &it, "meh"); err == nil {
		t.Error("unknown signal accepted")
	}
}

func TestFeedbackAffectsNextRanking(t *testing.T) {
	t.Parallel()

	p := feedbackProfile(t)
	prefs := DefaultPreferences(nil)
	war := movie(20, 0, "War")
	western := movie(21, 0, "Western")
	pool := []models.Item{western, war}

	before := Rank(pool, p, &prefs, AnswerNone, nil, 2)
	if before[0].Item.ID != 21 {
		t.Fatalf("expected arrival order before feedback, got %d first", before[0].Item.ID)
	}

	var l FeedbackLedger
	liked := movie(30, 0, "War")
	if _, err := l.Apply(p, &liked, SignalLike); err != nil {
		t.Fatal(err)
	}
	after := Rank(pool, p, &prefs, AnswerNone, nil, 2)
	if after[0].Item.ID != 20 {
		t.Errorf("liked genre did not lift the ranking: %+v", after)
	}
}
