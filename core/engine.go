package core

import (
	"fmt"
	"sync"
	"time"
)

// An Engine is the single writer for one bracket.
//
// All mutation (transitions, slot fills, routing) is serialized
// behind one mutex per bracket; the state machine and the
// progression router read and write the same node graph, so the
// guard check and the mutation it protects are atomic with
// respect to other callers. Matches of one bracket may be read
// concurrently between mutations.
//
// No engine operation blocks on network or disk; the bracket is
// handed in by the persistence collaborator and handed back
// after mutation.
type Engine struct {
	mu       sync.Mutex
	bracket  *Bracket
	notifier Notifier

	// table id -> occupying match id
	tables map[string]string

	now func() time.Time
}

// NewEngine wraps a built (or storage-loaded) bracket. A nil
// notifier discards events; the journal is kept either way.
func NewEngine(b *Bracket, notifier Notifier) *Engine {
	if notifier == nil {
		notifier = noopNotifier{}
	}

	e := &Engine{
		bracket:  b,
		notifier: notifier,
		tables:   make(map[string]string),
		now:      time.Now,
	}

	// Rebuild table occupancy for storage-loaded brackets
	for _, m := range b.Nodes {
		if m.TableID != "" && !isTerminal(m.State) {
			e.tables[m.TableID] = m.ID
		}
	}

	return e
}

func isTerminal(s MatchState) bool {
	switch s {
	case StateCompleted, StateCancelled, StateAbandoned, StateForfeited:
		return true
	}
	return false
}

// Bracket returns the engine's bracket for handing back to the
// persistence collaborator.
func (e *Engine) Bracket() *Bracket {
	return e.bracket
}

// Match returns the named match.
func (e *Engine) Match(id string) (*Match, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.bracket.Node(id)
}

// ReadyMatches lists the matches whose slots are both filled
// and that have not moved past the ready stage: the queue the
// scheduler projects ETAs for.
func (e *Engine) ReadyMatches() []*Match {
	e.mu.Lock()
	defer e.mu.Unlock()

	ready := make([]*Match, 0, len(e.bracket.Nodes))
	for _, m := range e.bracket.Nodes {
		if m.Filled() && (m.State == StatePending || m.State == StateReady) {
			ready = append(ready, m)
		}
	}
	return ready
}

// AssignTable places a ready-eligible match on a table.
func (e *Engine) AssignTable(matchID, tableID string, actor Actor) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	m, err := e.bracket.Node(matchID)
	if err != nil {
		return err
	}

	guard := func() []string {
		var unmet []string
		if !m.Filled() {
			unmet = append(unmet, "both slots must be filled")
		}
		if tableID == "" {
			unmet = append(unmet, "a table id is required")
		} else if holder, busy := e.tables[tableID]; busy && holder != matchID {
			unmet = append(unmet, fmt.Sprintf("table %s is occupied by match %s", tableID, holder))
		}
		return unmet
	}
	apply := func() {
		m.TableID = tableID
		e.tables[tableID] = matchID
	}

	return e.transition(m, EventAssignTable, actor, guard, apply, map[string]string{
		"table_id": tableID,
	})
}

// Start begins play on an assigned match.
func (e *Engine) Start(matchID string, actor Actor) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	m, err := e.bracket.Node(matchID)
	if err != nil {
		return err
	}

	guard := func() []string {
		var unmet []string
		if !m.Filled() {
			unmet = append(unmet, "both slots must be filled")
		}
		if m.TableID == "" {
			unmet = append(unmet, "a table must be assigned")
		}
		return unmet
	}

	return e.transition(m, EventStart, actor, guard, nil, nil)
}

// Pause suspends an active match.
func (e *Engine) Pause(matchID string, actor Actor) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	m, err := e.bracket.Node(matchID)
	if err != nil {
		return err
	}
	return e.transition(m, EventPause, actor, nil, nil, nil)
}

// Resume continues a paused match.
func (e *Engine) Resume(matchID string, actor Actor) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	m, err := e.bracket.Node(matchID)
	if err != nil {
		return err
	}
	return e.transition(m, EventResume, actor, nil, nil, nil)
}

// Complete records the winner of an active match and routes
// both competitors along the bracket edges.
func (e *Engine) Complete(matchID, winnerID string, actor Actor) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	m, err := e.bracket.Node(matchID)
	if err != nil {
		return err
	}

	guard := func() []string {
		var unmet []string
		if !m.ContainsCompetitor(winnerID) {
			unmet = append(unmet, "the winner must be one of the match competitors")
		}
		return unmet
	}
	apply := func() {
		m.WinnerID = winnerID
		e.releaseTable(m)
	}

	err = e.transition(m, EventComplete, actor, guard, apply, map[string]string{
		"winner_id": winnerID,
	})
	if err != nil {
		return err
	}

	e.advance(m)
	return nil
}

// Cancel voids a match that has not started.
func (e *Engine) Cancel(matchID string, actor Actor) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	m, err := e.bracket.Node(matchID)
	if err != nil {
		return err
	}
	apply := func() { e.releaseTable(m) }
	return e.transition(m, EventCancel, actor, nil, apply, nil)
}

// Abandon terminates a running match without a result.
func (e *Engine) Abandon(matchID string, actor Actor) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	m, err := e.bracket.Node(matchID)
	if err != nil {
		return err
	}
	apply := func() { e.releaseTable(m) }
	return e.transition(m, EventAbandon, actor, nil, apply, nil)
}

// Forfeit ends a running match by one competitor giving up; the
// opponent becomes the winner and both are routed like a
// completed result.
func (e *Engine) Forfeit(matchID, forfeiterID string, actor Actor) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	m, err := e.bracket.Node(matchID)
	if err != nil {
		return err
	}

	opponent := m.Opponent(forfeiterID)
	guard := func() []string {
		var unmet []string
		if !m.ContainsCompetitor(forfeiterID) {
			unmet = append(unmet, "the forfeiting competitor must be one of the match competitors")
		} else if opponent == "" {
			unmet = append(unmet, "the match has no opponent to award the win to")
		}
		return unmet
	}
	apply := func() {
		m.WinnerID = opponent
		e.releaseTable(m)
	}

	err = e.transition(m, EventForfeit, actor, guard, apply, map[string]string{
		"forfeited_by": forfeiterID,
		"winner_id":    opponent,
	})
	if err != nil {
		return err
	}

	e.advance(m)
	return nil
}

func (e *Engine) releaseTable(m *Match) {
	if m.TableID != "" {
		delete(e.tables, m.TableID)
	}
}

func (e *Engine) emit(kind EventKind, matchID string, from, to MatchState, actor Actor, payload map[string]string) {
	if actor == (Actor{}) {
		actor = systemActor
	}

	event := ProgressionEvent{
		Kind:      kind,
		MatchID:   matchID,
		From:      from,
		To:        to,
		Actor:     actor.ID,
		Channel:   actor.Channel,
		Payload:   payload,
		Timestamp: e.now(),
	}

	event = e.bracket.appendEvent(event)
	e.notifier.Notify(event)
}
