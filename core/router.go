package core

import "fmt"

// Advance routes an already decided match. Complete and Forfeit
// call the router themselves; this entry point exists for
// storage-loaded brackets whose results were recorded but not
// yet routed.
func (e *Engine) Advance(matchID string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	m, err := e.bracket.Node(matchID)
	if err != nil {
		return err
	}
	if m.State != StateCompleted && m.State != StateForfeited {
		return fmt.Errorf(
			"%w: advance requires a completed match, %s is %s",
			ErrIllegalTransition, m.ID, m.State,
		)
	}

	e.advance(m)
	return nil
}

// advance pushes a decided match's winner (and loser, where the
// format routes losers) along the bracket edges. The engine
// lock must be held.
//
// Missing edges and missing targets are no-ops: terminal
// matches legitimately route nowhere.
func (e *Engine) advance(m *Match) {
	winner := m.WinnerID

	// The bracket reset is only played when the losers-side
	// competitor takes the first grand finals; a winners-side
	// win ends the tournament there.
	if e.bracket.ResetNodeID != "" && m.ID == grandFinalsNodeID {
		if winner != "" && winner == m.SlotA.CompetitorID {
			e.voidResetNode()
			return
		}
	}

	e.fillSlot(m.WinnerTo, winner)
	e.fillSlot(m.LoserTo, m.LoserID())
}

// fillSlot writes a competitor into the slot designated by an
// advancement edge, emits one routing event, and resolves the
// match on the spot when the opposite slot is a permanent bye.
func (e *Engine) fillSlot(edge Edge, competitorID string) {
	if edge.None() || competitorID == "" {
		return
	}
	target, err := e.bracket.Node(edge.To)
	if err != nil {
		return
	}

	target.setSlot(edge.Slot, competitorID)

	payload := map[string]string{
		"competitor_id": competitorID,
		"slot":          edge.Slot.String(),
	}
	if target.Filled() && target.State == StatePending {
		// Both slots known: assign_table may now be attempted
		payload["ready"] = "true"
	}
	e.emit(EventAdvancement, target.ID, target.State, target.State, Actor{}, payload)

	other := otherSlot(edge.Slot)
	if target.Slot(other).Bye && target.State == StatePending {
		e.resolveRoutedBye(target, competitorID)
	}
}

// resolveRoutedBye completes a match whose second entrant can
// never arrive and cascades the walkover winner further down.
func (e *Engine) resolveRoutedBye(m *Match, winnerID string) {
	from := m.State
	m.State = StateCompleted
	m.IsBye = true
	m.WinnerID = winnerID

	e.emit(EventTransition, m.ID, from, StateCompleted, Actor{}, map[string]string{
		"winner_id": winnerID,
		"bye":       "true",
	})

	e.advance(m)
}

// voidResetNode cancels the bracket reset match after a
// winners-side grand finals win.
func (e *Engine) voidResetNode() {
	reset, err := e.bracket.Node(e.bracket.ResetNodeID)
	if err != nil || reset.State != StatePending {
		return
	}

	from := reset.State
	reset.State = StateCancelled
	e.emit(EventTransition, reset.ID, from, StateCancelled, Actor{}, map[string]string{
		"reason": "winners side won the grand finals",
	})
}

func otherSlot(i SlotIndex) SlotIndex {
	if i == SlotA {
		return SlotB
	}
	return SlotA
}
