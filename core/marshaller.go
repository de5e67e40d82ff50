package core

import "encoding/json"

type edgeSnapshot struct {
	To   string `json:"to"`
	Slot string `json:"slot"`
}

type slotSnapshot struct {
	CompetitorID string `json:"competitor_id,omitempty"`
	Bye          bool   `json:"bye,omitempty"`
}

type nodeSnapshot struct {
	ID       string        `json:"id"`
	Round    int           `json:"round"`
	Position int           `json:"position"`
	Section  Section       `json:"section,omitempty"`
	SlotA    slotSnapshot  `json:"slot_a"`
	SlotB    slotSnapshot  `json:"slot_b"`
	State    MatchState    `json:"state"`
	WinnerID string        `json:"winner_id,omitempty"`
	IsBye    bool          `json:"is_bye,omitempty"`
	TableID  string        `json:"table_id,omitempty"`
	WinnerTo *edgeSnapshot `json:"advances_winner_to,omitempty"`
	LoserTo  *edgeSnapshot `json:"advances_loser_to,omitempty"`
}

type bracketSnapshot struct {
	Format          Format             `json:"format"`
	TotalRounds     int                `json:"total_rounds"`
	CompetitorCount int                `json:"competitor_count"`
	ByeCount        int                `json:"bye_count"`
	ResetNodeID     string             `json:"reset_node_id,omitempty"`
	Nodes           []nodeSnapshot     `json:"nodes"`
	Events          []ProgressionEvent `json:"events"`
}

// MarshalJSON emits the complete bracket state for the
// persistence and presentation collaborators: every node with
// its slots, state and edges, plus the progression journal.
func (b *Bracket) MarshalJSON() ([]byte, error) {
	snapshot := bracketSnapshot{
		Format:          b.Format,
		TotalRounds:     b.TotalRounds,
		CompetitorCount: b.CompetitorCount,
		ByeCount:        b.ByeCount,
		ResetNodeID:     b.ResetNodeID,
		Nodes:           make([]nodeSnapshot, 0, len(b.Nodes)),
		Events:          b.journal,
	}

	for _, m := range b.Nodes {
		snapshot.Nodes = append(snapshot.Nodes, nodeSnapshot{
			ID:       m.ID,
			Round:    m.Round,
			Position: m.Position,
			Section:  m.Section,
			SlotA:    slotSnapshot{CompetitorID: m.SlotA.CompetitorID, Bye: m.SlotA.Bye},
			SlotB:    slotSnapshot{CompetitorID: m.SlotB.CompetitorID, Bye: m.SlotB.Bye},
			State:    m.State,
			WinnerID: m.WinnerID,
			IsBye:    m.IsBye,
			TableID:  m.TableID,
			WinnerTo: marshalEdge(m.WinnerTo),
			LoserTo:  marshalEdge(m.LoserTo),
		})
	}

	return json.Marshal(snapshot)
}

func marshalEdge(e Edge) *edgeSnapshot {
	if e.None() {
		return nil
	}
	return &edgeSnapshot{To: e.To, Slot: e.Slot.String()}
}
