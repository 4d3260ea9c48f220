// CineMatch - Taste-Seeded Movie and Series Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package wizard

import (
	"errors"
	"slices"
	"testing"
)

func walk(t *testing.T, m *Machine, in Input, events ...Event) {
	t.Helper()
	for _, ev := range events {
		if _, err := m.Fire(ev, in); err != nil {
			t.Fatalf("Fire(%s) from %s: %v", ev, m.State(), err)
		}
	}
}

func TestHappyPathWithoutClarification(t *testing.T) {
	t.Parallel()

	m := New()
	in := Input{}
	want := []State{StateIndustry, StateContentType, StateSelection, StatePreferences, StateRecommendations, StateRecommendations, StateRecommendations}
	events := []Event{EventBegin, EventChooseIndustry, EventChooseContentType, EventSubmitSelection, EventFinishPreferences, EventRefine, EventResetPool}

	for i, ev := range events {
		got, err := m.Fire(ev, in)
		if err != nil {
			t.Fatalf("Fire(%s): %v", ev, err)
		}
		if got != want[i] {
			t.Fatalf("after %s: %s, want %s", ev, got, want[i])
		}
	}
}

func TestClarificationBranch(t *testing.T) {
	t.Parallel()

	m := New()
	walk(t, m, Input{}, EventBegin, EventChooseIndustry, EventChooseContentType)

	got, err := m.Fire(EventSubmitSelection, Input{NeedsClarification: true})
	if err != nil || got != StateClarification {
		t.Fatalf("submitSelection = %s, %v", got, err)
	}
	if _, err := m.Fire(EventFinishPreferences, Input{}); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("finishPreferences from clarification: %v", err)
	}
	walk(t, m, Input{}, EventAnswerClarification)
	if m.State() != StatePreferences {
		t.Fatalf("state = %s", m.State())
	}

	// back from preferences returns to the clarification it came through.
	walk(t, m, Input{}, EventBack)
	if m.State() != StateClarification {
		t.Errorf("back = %s, want clarification", m.State())
	}
}

func TestInvalidEventsLeaveStateUnchanged(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		setup []Event
		ev    Event
	}{
		{"welcome refine", nil, EventRefine},
		{"welcome back", nil, EventBack},
		{"industry begin", []Event{EventBegin}, EventBegin},
		{"content type skip", []Event{EventBegin}, EventChooseContentType},
		{"recommendations back", []Event{EventBegin, EventChooseIndustry, EventChooseContentType, EventSubmitSelection, EventFinishPreferences}, EventBack},
		{"recommendations submit", []Event{EventBegin, EventChooseIndustry, EventChooseContentType, EventSubmitSelection, EventFinishPreferences}, EventSubmitSelection},
		{"unknown event", nil, Event("dance")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			m := New()
			walk(t, m, Input{}, tt.setup...)
			before := m.State()
			history := m.History()

			if m.Can(tt.ev) {
				t.Errorf("Can(%s) = true from %s", tt.ev, before)
			}
			got, err := m.Fire(tt.ev, Input{})
			if !errors.Is(err, ErrInvalidTransition) {
				t.Fatalf("err = %v", err)
			}
			if got != before || m.State() != before || !slices.Equal(history, m.History()) {
				t.Errorf("state changed: %s -> %s", before, m.State())
			}
		})
	}
}

func TestBackWalksToWelcome(t *testing.T) {
	t.Parallel()

	m := New()
	walk(t, m, Input{}, EventBegin, EventChooseIndustry, EventChooseContentType, EventSubmitSelection)

	want := []State{StateSelection, StateContentType, StateIndustry, StateWelcome}
	for _, w := range want {
		got, err := m.Fire(EventBack, Input{})
		if err != nil {
			t.Fatalf("back: %v", err)
		}
		if got != w {
			t.Fatalf("back = %s, want %s", got, w)
		}
	}
	if m.Can(EventBack) {
		t.Error("back allowed from welcome")
	}
}

func TestStartOverFromAnywhere(t *testing.T) {
	t.Parallel()

	for _, steps := range [][]Event{
		nil,
		{EventBegin},
		{EventBegin, EventChooseIndustry, EventChooseContentType, EventSubmitSelection, EventFinishPreferences},
	} {
		m := New()
		walk(t, m, Input{}, steps...)
		got, err := m.Fire(EventStartOver, Input{})
		if err != nil || got != StateWelcome || len(m.History()) != 0 {
			t.Errorf("startOver after %v: %s, %v, history %v", steps, got, err, m.History())
		}
	}
}

func TestRestore(t *testing.T) {
	t.Parallel()

	m := New()
	walk(t, m, Input{}, EventBegin, EventChooseIndustry)

	r, err := Restore(m.State(), m.History())
	if err != nil {
		t.Fatal(err)
	}
	if r.State() != StateContentType || !slices.Equal(r.History(), []State{StateWelcome, StateIndustry}) {
		t.Errorf("restored = %s %v", r.State(), r.History())
	}

	if _, err := Restore("nowhere", nil); err == nil {
		t.Error("unknown state accepted")
	}
	if _, err := Restore(StateWelcome, []State{"nowhere"}); err == nil {
		t.Error("unknown history state accepted")
	}
}
