package core

// The lifecycle state of a match.
type MatchState string

const (
	StatePending   MatchState = "pending"
	StateReady     MatchState = "ready"
	StateAssigned  MatchState = "assigned"
	StateActive    MatchState = "active"
	StatePaused    MatchState = "paused"
	StateCompleted MatchState = "completed"
	StateCancelled MatchState = "cancelled"
	StateAbandoned MatchState = "abandoned"
	StateForfeited MatchState = "forfeited"
)

// The bracket partition a match belongs to. Non-partitioned
// formats (round robin) use SectionNone.
type Section string

const (
	SectionNone        Section = ""
	SectionWinners     Section = "winners"
	SectionLosers      Section = "losers"
	SectionGrandFinals Section = "grand_finals"
)

// One of the two opponent slots of a match.
type SlotIndex int

const (
	SlotA SlotIndex = iota
	SlotB
)

func (i SlotIndex) String() string {
	if i == SlotA {
		return "A"
	}
	return "B"
}

// A Slot is one of the two places in a match.
//
// An empty CompetitorID means the opponent is not yet
// determined, unless Bye is set, in which case the slot will
// never be occupied and the other slot's occupant advances
// for free.
type Slot struct {
	CompetitorID string
	Bye          bool
}

func (s Slot) Filled() bool {
	return s.CompetitorID != ""
}

// An Edge is a forward advancement target: a match and the
// slot the advancing competitor lands in. The zero value is
// the explicit "no edge" sentinel.
type Edge struct {
	To   string
	Slot SlotIndex
}

func (e Edge) None() bool {
	return e.To == ""
}

// A Match is one node of the bracket graph.
//
// Matches are created once by the bracket builders and never
// added or removed afterwards; only the slots, state, table
// and winner fields mutate, driven by the state machine and
// the progression router.
type Match struct {
	ID       string
	Round    int
	Position int
	Section  Section

	SlotA Slot
	SlotB Slot

	State    MatchState
	WinnerID string
	IsBye    bool
	TableID  string

	// WinnerTo is absent only on terminal matches.
	WinnerTo Edge
	// LoserTo is present only where the format routes losers
	// (double elimination, consolation).
	LoserTo Edge
}

// GraphID implements internal.GraphNode.
func (m *Match) GraphID() string {
	return m.ID
}

func (m *Match) Slot(i SlotIndex) Slot {
	if i == SlotA {
		return m.SlotA
	}
	return m.SlotB
}

func (m *Match) setSlot(i SlotIndex, competitorID string) {
	if i == SlotA {
		m.SlotA.CompetitorID = competitorID
	} else {
		m.SlotB.CompetitorID = competitorID
	}
}

func (m *Match) setSlotBye(i SlotIndex) {
	if i == SlotA {
		m.SlotA.Bye = true
	} else {
		m.SlotB.Bye = true
	}
}

// Filled reports whether both slots hold a competitor.
func (m *Match) Filled() bool {
	return m.SlotA.Filled() && m.SlotB.Filled()
}

func (m *Match) ContainsCompetitor(id string) bool {
	return id != "" && (m.SlotA.CompetitorID == id || m.SlotB.CompetitorID == id)
}

// Opponent returns the occupant of the other slot, or "" when
// there is none.
func (m *Match) Opponent(id string) string {
	switch id {
	case m.SlotA.CompetitorID:
		return m.SlotB.CompetitorID
	case m.SlotB.CompetitorID:
		return m.SlotA.CompetitorID
	}
	return ""
}

// LoserID returns the non-winner occupant of a decided match,
// or "" for byes and undecided matches.
func (m *Match) LoserID() string {
	if m.WinnerID == "" || m.IsBye {
		return ""
	}
	return m.Opponent(m.WinnerID)
}

func newMatch(id string, round, position int, section Section) *Match {
	return &Match{
		ID:       id,
		Round:    round,
		Position: position,
		Section:  section,
		State:    StatePending,
	}
}
