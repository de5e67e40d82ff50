package core

import "fmt"

func losersNodeID(round, position int) string {
	return fmt.Sprintf("L%d-%d", round, position)
}

const (
	grandFinalsNodeID  = "GF"
	bracketResetNodeID = "GF-R"
)

// buildDoubleElimination builds a winners bracket identical to
// single elimination plus a losers bracket of alternating minor
// and major rounds.
//
// Minor round k pairs the survivors of the previous losers
// round (round-1 winners losers for k = 1). Major round k
// receives the losers of winners round k+1 as drop-downs into
// slot A, against the minor round winners in slot B. The
// drop-down mapping is half-swapped on every other major round
// so rematches of winners-bracket pairings happen as late as
// possible.
//
// Both bracket champions feed a grand finals node; with the
// reset option a second grand finals match is appended that is
// only played when the losers-side champion takes the first.
func buildDoubleElimination(ordered []*Competitor, reset bool) (*Bracket, error) {
	if len(ordered) < 1 {
		return nil, fmt.Errorf("%w: double elimination needs at least 1 competitor", ErrInvalidInput)
	}

	b := newBracket(FormatDoubleElimination, ordered)
	numWinnerRounds := buildWinnersBracket(b, ordered)
	size := bracketSize(len(ordered))

	var lastMajor []*Match
	for k := 1; k <= numWinnerRounds-1; k++ {
		count := size >> (k + 1)

		minorRound := 2*k - 1
		minor := make([]*Match, count)
		for p := 0; p < count; p++ {
			m := newMatch(losersNodeID(minorRound, p), minorRound, p, SectionLosers)
			b.addNode(m)
			minor[p] = m
		}

		if k == 1 {
			// Round-1 winners losers feed directly into losers round 1
			for p := 0; p < size>>1; p++ {
				w := b.byID[winnersNodeID(1, p)]
				w.LoserTo = Edge{To: losersNodeID(1, p/2), Slot: pairSlot(p)}
			}
		} else {
			for q, m := range lastMajor {
				m.WinnerTo = Edge{To: losersNodeID(minorRound, q/2), Slot: pairSlot(q)}
			}
		}

		majorRound := 2 * k
		major := make([]*Match, count)
		for p := 0; p < count; p++ {
			m := newMatch(losersNodeID(majorRound, p), majorRound, p, SectionLosers)
			b.addNode(m)
			major[p] = m
		}

		for p := 0; p < count; p++ {
			w := b.byID[winnersNodeID(k+1, p)]
			w.LoserTo = Edge{
				To:   losersNodeID(majorRound, dropDownPosition(p, count, k)),
				Slot: SlotA,
			}
		}
		for p, m := range minor {
			m.WinnerTo = Edge{To: losersNodeID(majorRound, p), Slot: SlotB}
		}

		lastMajor = major
	}

	gfRound := numWinnerRounds + 1
	gf := newMatch(grandFinalsNodeID, gfRound, 0, SectionGrandFinals)
	b.addNode(gf)

	winnersFinal := b.byID[winnersNodeID(numWinnerRounds, 0)]
	winnersFinal.WinnerTo = Edge{To: grandFinalsNodeID, Slot: SlotA}
	if numWinnerRounds == 1 {
		// Two-entrant bracket: the only losers "bracket" is the
		// second life in the grand finals
		winnersFinal.LoserTo = Edge{To: grandFinalsNodeID, Slot: SlotB}
	} else {
		lastMajor[0].WinnerTo = Edge{To: grandFinalsNodeID, Slot: SlotB}
	}

	if reset {
		gfr := newMatch(bracketResetNodeID, gfRound+1, 0, SectionGrandFinals)
		b.addNode(gfr)
		gf.WinnerTo = Edge{To: bracketResetNodeID, Slot: SlotA}
		gf.LoserTo = Edge{To: bracketResetNodeID, Slot: SlotB}
		b.ResetNodeID = bracketResetNodeID
	}

	b.TotalRounds = gf.Round
	if reset {
		b.TotalRounds += 1
	}

	// Round-1 byes produce no loser: their drop-down slots are
	// permanent byes, which may cascade through the losers
	// bracket.
	for p := 0; p < size>>1; p++ {
		w := b.byID[winnersNodeID(1, p)]
		if w.IsBye {
			routeBuildTime(b, w)
		}
	}

	return b, nil
}

// pairSlot alternates sources between the two slots of a
// shared target.
func pairSlot(p int) SlotIndex {
	if p%2 == 0 {
		return SlotA
	}
	return SlotB
}

// dropDownPosition maps a winners-round loser position onto a
// major-round match. Every other major round swaps the upper
// and lower bracket halves to delay rematches.
func dropDownPosition(p, count, k int) int {
	if k%2 != 0 {
		return (p + count/2) % count
	}
	return p
}

// routeBuildTime pushes the outcome of a match that was decided
// during construction along its edges, resolving any byes it
// creates downstream. No events are emitted for build-time
// resolution.
func routeBuildTime(b *Bracket, m *Match) {
	if !m.WinnerTo.None() && m.WinnerID != "" {
		if target, ok := b.byID[m.WinnerTo.To]; ok {
			target.setSlot(m.WinnerTo.Slot, m.WinnerID)
			resolveBuildTimeBye(b, target)
		}
	}

	if m.IsBye && !m.LoserTo.None() {
		if target, ok := b.byID[m.LoserTo.To]; ok {
			target.setSlotBye(m.LoserTo.Slot)
			resolveBuildTimeBye(b, target)
		}
	}
}
