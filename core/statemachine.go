package core

import (
	"fmt"
	"slices"
)

// A TransitionEvent drives the match lifecycle.
type TransitionEvent string

const (
	EventAssignTable TransitionEvent = "assign_table"
	EventStart       TransitionEvent = "start"
	EventPause       TransitionEvent = "pause"
	EventResume      TransitionEvent = "resume"
	EventComplete    TransitionEvent = "complete"
	EventCancel      TransitionEvent = "cancel"
	EventAbandon     TransitionEvent = "abandon"
	EventForfeit     TransitionEvent = "forfeit"
)

type transitionRule struct {
	from []MatchState
	to   MatchState
}

// The canonical lifecycle. States not listed as a from-state of
// any event are terminal.
var transitions = map[TransitionEvent]transitionRule{
	EventAssignTable: {
		from: []MatchState{StatePending},
		to:   StateReady,
	},
	// start accepts pending so that a premature start reports
	// its unmet preconditions instead of a blanket illegal
	// transition
	EventStart: {
		from: []MatchState{StatePending, StateReady, StateAssigned},
		to:   StateActive,
	},
	EventPause: {
		from: []MatchState{StateActive},
		to:   StatePaused,
	},
	EventResume: {
		from: []MatchState{StatePaused},
		to:   StateActive,
	},
	EventComplete: {
		from: []MatchState{StateActive},
		to:   StateCompleted,
	},
	EventCancel: {
		from: []MatchState{StatePending, StateReady, StateAssigned},
		to:   StateCancelled,
	},
	EventAbandon: {
		from: []MatchState{StateActive, StatePaused},
		to:   StateAbandoned,
	},
	EventForfeit: {
		from: []MatchState{StateActive, StatePaused},
		to:   StateForfeited,
	},
}

// transition runs one guarded lifecycle step on a match. The
// engine lock must be held.
//
// The from-state is checked before the guard so that an invalid
// source state is always ErrIllegalTransition and a valid one
// with unmet preconditions is always a GuardError. Nothing is
// mutated on either failure; on success the node mutates and
// exactly one progression event is appended before returning.
func (e *Engine) transition(
	m *Match,
	event TransitionEvent,
	actor Actor,
	guard func() []string,
	apply func(),
	payload map[string]string,
) error {
	rule, ok := transitions[event]
	if !ok {
		return fmt.Errorf("%w: unknown transition event %q", ErrInvalidInput, event)
	}

	if !slices.Contains(rule.from, m.State) {
		return fmt.Errorf(
			"%w: %s is not valid from state %s (match %s)",
			ErrIllegalTransition, event, m.State, m.ID,
		)
	}

	if guard != nil {
		if unmet := guard(); len(unmet) > 0 {
			return &GuardError{Event: event, MatchID: m.ID, Unmet: unmet}
		}
	}

	from := m.State
	if apply != nil {
		apply()
	}
	m.State = rule.to

	e.emit(EventTransition, m.ID, from, rule.to, actor, payload)
	return nil
}
