package core

import "time"

// The kind of a progression event.
type EventKind string

const (
	// A state machine transition on one match
	EventTransition EventKind = "transition"
	// A routing operation that filled a slot downstream
	EventAdvancement EventKind = "advancement"
)

// An Actor identifies who triggered a transition and through
// which device or channel. The zero value is the engine itself.
type Actor struct {
	ID      string
	Channel string
}

var systemActor = Actor{ID: "system", Channel: "engine"}

// A ProgressionEvent is an immutable append-only record of one
// state transition or routing operation. It is an audit trail
// for the event collaborator and carries enough payload for
// downstream consumers to react without re-querying the
// bracket.
type ProgressionEvent struct {
	Seq       int               `json:"seq"`
	Kind      EventKind         `json:"kind"`
	MatchID   string            `json:"match_id"`
	From      MatchState        `json:"from"`
	To        MatchState        `json:"to"`
	Actor     string            `json:"actor"`
	Channel   string            `json:"channel"`
	Payload   map[string]string `json:"payload,omitempty"`
	Timestamp time.Time         `json:"timestamp"`
}

// A Notifier receives every progression event as it is
// appended to the journal. Implementations must not call back
// into the engine; they are invoked inside the bracket's
// critical section so that the journal and the live state
// cannot diverge.
type Notifier interface {
	Notify(event ProgressionEvent)
}

type noopNotifier struct{}

func (noopNotifier) Notify(ProgressionEvent) {}
