package core

import "fmt"

func winnersNodeID(round, position int) string {
	return fmt.Sprintf("W%d-%d", round, position)
}

// bracketSize returns the power-of-two slot count for an
// elimination bracket. A single entrant still gets a one-match
// bracket against a bye.
func bracketSize(n int) int {
	return nextPowerOfTwo(max(2, n))
}

func buildSingleElimination(ordered []*Competitor) (*Bracket, error) {
	if len(ordered) < 1 {
		return nil, fmt.Errorf("%w: single elimination needs at least 1 competitor", ErrInvalidInput)
	}

	b := newBracket(FormatSingleElimination, ordered)
	b.TotalRounds = buildWinnersBracket(b, ordered)

	return b, nil
}

// buildWinnersBracket creates the full winners-section node
// set: round r holds size/2^r matches, each advancing its
// winner to position/2 of the next round, slot A when the
// position is even and slot B otherwise. Round-1 byes are
// resolved immediately and their winners propagated forward.
//
// Returns the number of rounds.
func buildWinnersBracket(b *Bracket, ordered []*Competitor) int {
	n := len(ordered)
	size := bracketSize(n)
	numRounds := numRoundsFor(size)

	for r := 1; r <= numRounds; r++ {
		numMatches := size >> r
		for p := 0; p < numMatches; p++ {
			m := newMatch(winnersNodeID(r, p), r, p, SectionWinners)
			if r < numRounds {
				slot := SlotA
				if p%2 != 0 {
					slot = SlotB
				}
				m.WinnerTo = Edge{To: winnersNodeID(r+1, p/2), Slot: slot}
			}
			b.addNode(m)
		}
	}

	// Arrange the first round so that the top seeds can only
	// meet in the late rounds. Seed indices beyond the entry
	// count are the byes.
	for p, matchup := range arrangeSeeds(numRounds) {
		m := b.byID[winnersNodeID(1, p)]
		fillSeedSlot(m, SlotA, matchup.seed1, ordered)
		fillSeedSlot(m, SlotB, matchup.seed2, ordered)
	}

	for p := 0; p < size>>1; p++ {
		m := b.byID[winnersNodeID(1, p)]
		resolveBuildTimeBye(b, m)
	}

	return numRounds
}

func fillSeedSlot(m *Match, slot SlotIndex, seed int, ordered []*Competitor) {
	if seed < len(ordered) {
		m.setSlot(slot, ordered[seed].ID)
	} else {
		m.setSlotBye(slot)
	}
}

// resolveBuildTimeBye completes a freshly built match that has
// exactly one bye slot and pushes the walkover winner along its
// edges. Construction emits no events; a new bracket is initial
// state, not history.
func resolveBuildTimeBye(b *Bracket, m *Match) {
	if m.State != StatePending {
		return
	}

	switch {
	case m.SlotA.Bye && m.SlotB.Bye:
		// Nobody to play. The match is void and its winner slot
		// downstream becomes a bye as well.
		m.State = StateCancelled
		m.IsBye = true
		if target, ok := b.byID[m.WinnerTo.To]; !m.WinnerTo.None() && ok {
			target.setSlotBye(m.WinnerTo.Slot)
			resolveBuildTimeBye(b, target)
		}
		return
	case m.SlotA.Bye && m.SlotB.Filled():
		m.WinnerID = m.SlotB.CompetitorID
	case m.SlotB.Bye && m.SlotA.Filled():
		m.WinnerID = m.SlotA.CompetitorID
	default:
		return
	}

	m.State = StateCompleted
	m.IsBye = true
	routeBuildTime(b, m)
}

type seedMatchup struct {
	seed1 int
	seed2 int
}

// Arranges the seeds for the first elimination round of
// a total of numRounds.
//
// The arrangement ensures that the top 2 seeds can only
// meet in the final, the top 4 seeds can only meet
// in the semi-final, etc...
//
// More info: https://en.wikipedia.org/wiki/Single-elimination_tournament#Seeding
func arrangeSeeds(numRounds int) []seedMatchup {
	// Start with the final between the first two seeds
	matchups := []seedMatchup{{0, 1}}
	totalSeeds := 2

	// Work down the tournament tree by round (semis, quarters, ...)
	for i := 1; i < numRounds; i += 1 {
		nextMatchups := make([]seedMatchup, 0, totalSeeds)
		totalSeeds *= 2
		for _, parent := range matchups {
			s1 := parent.seed1
			s2 := parent.seed2

			nextMatchups = append(
				nextMatchups,
				seedMatchup{s1, totalSeeds - 1 - s1},
				seedMatchup{s2, totalSeeds - 1 - s2},
			)
		}

		matchups = nextMatchups
	}

	return matchups
}
