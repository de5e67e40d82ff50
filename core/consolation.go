package core

import "fmt"

const consolationNodeID = "CONS"

// buildModifiedSingleElimination is single elimination plus an
// optional consolation match between the two semifinal losers.
func buildModifiedSingleElimination(ordered []*Competitor, consolation bool) (*Bracket, error) {
	if len(ordered) < 1 {
		return nil, fmt.Errorf("%w: modified single elimination needs at least 1 competitor", ErrInvalidInput)
	}

	b := newBracket(FormatModifiedSingleElimination, ordered)
	numRounds := buildWinnersBracket(b, ordered)
	b.TotalRounds = numRounds

	if !consolation || numRounds < 2 {
		// No semifinals to feed a consolation match from
		return b, nil
	}

	cons := newMatch(consolationNodeID, numRounds, 1, SectionLosers)
	b.addNode(cons)

	for p := 0; p < 2; p++ {
		semi := b.byID[winnersNodeID(numRounds-1, p)]
		semi.LoserTo = Edge{To: consolationNodeID, Slot: pairSlot(p)}
		if semi.IsBye {
			// A bye semifinal has no loser to send down
			routeBuildTime(b, semi)
		}
	}

	return b, nil
}
