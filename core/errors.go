package core

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// Malformed or out-of-range construction arguments
	ErrInvalidInput = errors.New("invalid input")

	// The competitor count exceeds the supported maximum
	ErrBracketTooLarge = errors.New("bracket exceeds maximum supported size")

	// The event is not valid from the match's current state
	ErrIllegalTransition = errors.New("illegal transition")

	// A valid from-state but a named precondition is unmet
	ErrGuardViolation = errors.New("guard violation")

	// A referenced match id is absent from the bracket
	ErrNotFound = errors.New("match not found")
)

// A GuardError reports the specific unmet preconditions of a
// transition so that callers can give actionable feedback.
// It unwraps to ErrGuardViolation.
type GuardError struct {
	Event   TransitionEvent
	MatchID string
	Unmet   []string
}

func (e *GuardError) Error() string {
	return fmt.Sprintf(
		"guard violation on %s for match %s: %s",
		e.Event, e.MatchID, strings.Join(e.Unmet, "; "),
	)
}

func (e *GuardError) Unwrap() error {
	return ErrGuardViolation
}
