// CineMatch - Taste-Seeded Movie and Series Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package wizard

import (
	"errors"
	"fmt"
	"slices"
)

// State is a wizard step.
type State string

const (
	StateWelcome         State = "welcome"
	StateIndustry        State = "industry"
	StateContentType     State = "contentType"
	StateSelection       State = "selection"
	StateClarification   State = "clarification"
	StatePreferences     State = "preferences"
	StateRecommendations State = "recommendations"
)

// Valid reports whether s is a known state.
func (s State) Valid() bool {
	_, ok := transitions[s]
	return ok
}

// Event drives a transition.
type Event string

const (
	EventBegin               Event = "begin"
	EventChooseIndustry      Event = "chooseIndustry"
	EventChooseContentType   Event = "chooseContentType"
	EventSubmitSelection     Event = "submitSelection"
	EventAnswerClarification Event = "answerClarification"
	EventFinishPreferences   Event = "finishPreferences"
	EventRefine              Event = "refine"
	EventResetPool           Event = "resetPool"
	EventBack                Event = "back"
	EventStartOver           Event = "startOver"
)

// ErrInvalidTransition is the sentinel behind every TransitionError.
var ErrInvalidTransition = errors.New("wizard: invalid transition")

// TransitionError describes a rejected event.
type TransitionError struct {
	From  State
	Event Event
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("wizard: cannot %s from %s", e.Event, e.From)
}

// Unwrap lets errors.Is match ErrInvalidTransition.
func (e *TransitionError) Unwrap() error {
	return ErrInvalidTransition
}

// Input carries what the guards need to know about the session. The seed
// itself is validated before submitSelection fires.
type Input struct {
	NeedsClarification bool
}

// target computes the destination of an accepted event.
type target func(in Input) State

func to(s State) target {
	return func(Input) State { return s }
}

// transitions lists the forward events each state accepts. back and
// startOver are handled separately.
var transitions = map[State]map[Event]target{
	StateWelcome: {
		EventBegin: to(StateIndustry),
	},
	StateIndustry: {
		EventChooseIndustry: to(StateContentType),
	},
	StateContentType: {
		EventChooseContentType: to(StateSelection),
	},
	StateSelection: {
		EventSubmitSelection: func(in Input) State {
			if in.NeedsClarification {
				return StateClarification
			}
			return StatePreferences
		},
	},
	StateClarification: {
		EventAnswerClarification: to(StatePreferences),
	},
	StatePreferences: {
		EventFinishPreferences: to(StateRecommendations),
	},
	StateRecommendations: {
		EventRefine:    to(StateRecommendations),
		EventResetPool: to(StateRecommendations),
	},
}

// Machine is one session's wizard. The zero value is not usable; call New.
// Not safe for concurrent use.
type Machine struct {
	state   State
	history []State
}

// New returns a machine at welcome.
func New() *Machine {
	return &Machine{state: StateWelcome}
}

// Restore rebuilds a machine from a snapshot.
func Restore(state State, history []State) (*Machine, error) {
	if !state.Valid() {
		return nil, fmt.Errorf("wizard: unknown state %q", state)
	}
	for _, h := range history {
		if !h.Valid() {
			return nil, fmt.Errorf("wizard: unknown state %q in history", h)
		}
	}
	return &Machine{state: state, history: slices.Clone(history)}, nil
}

// State returns the current step.
func (m *Machine) State() State {
	return m.state
}

// History returns the steps back would return through, oldest first.
func (m *Machine) History() []State {
	return slices.Clone(m.history)
}

// Can reports whether ev is accepted from the current state.
func (m *Machine) Can(ev Event) bool {
	switch ev {
	case EventStartOver:
		return true
	case EventBack:
		return m.canGoBack()
	}
	_, ok := transitions[m.state][ev]
	return ok
}

// Fire applies ev and returns the new state. A rejected event returns a
// *TransitionError and does not move the machine.
func (m *Machine) Fire(ev Event, in Input) (State, error) {
	switch ev {
	case EventStartOver:
		m.state = StateWelcome
		m.history = m.history[:0]
		return m.state, nil
	case EventBack:
		if !m.canGoBack() {
			return m.state, &TransitionError{From: m.state, Event: ev}
		}
		m.state = m.history[len(m.history)-1]
		m.history = m.history[:len(m.history)-1]
		return m.state, nil
	}

	next, ok := transitions[m.state][ev]
	if !ok {
		return m.state, &TransitionError{From: m.state, Event: ev}
	}
	dest := next(in)
	if dest != m.state {
		m.history = append(m.history, m.state)
	}
	m.state = dest
	return m.state, nil
}

func (m *Machine) canGoBack() bool {
	if m.state == StateWelcome || m.state == StateRecommendations {
		return false
	}
	return len(m.history) > 0
}
