package core

import "fmt"

func roundRobinNodeID(round, position int) string {
	return fmt.Sprintf("R%d-%d", round, position)
}

// buildRoundRobin schedules every unordered competitor pair
// exactly once using the circle method: one competitor stays
// fixed while the others rotate each round. Odd rosters are
// padded with a ghost opponent whose pairings are skipped, so
// every competitor sits out exactly one round.
//
// Round robin matches have no advancement edges; standings are
// computed externally from the completed results.
func buildRoundRobin(ordered []*Competitor) (*Bracket, error) {
	n := len(ordered)
	if n < 2 {
		return nil, fmt.Errorf("%w: round robin needs at least 2 competitors", ErrInvalidInput)
	}

	b := newBracket(FormatRoundRobin, ordered)

	length := n
	if n%2 != 0 {
		length = n + 1
	}
	numRounds := length - 1

	for roundI := 0; roundI < numRounds; roundI++ {
		position := 0
		for matchI := 0; matchI < length/2; matchI++ {
			i1 := roundRobinCircleIndex(matchI, length, roundI)
			i2 := roundRobinCircleIndex(length-1-matchI, length, roundI)
			if i1 >= n || i2 >= n {
				// ghost pairing, this competitor sits out
				continue
			}

			c1, c2 := ordered[i1], ordered[i2]
			if matchI == 0 && roundI%2 != 0 {
				// balance the share of first-named matches
				c1, c2 = c2, c1
			}

			m := newMatch(roundRobinNodeID(roundI+1, position), roundI+1, position, SectionNone)
			m.SlotA = Slot{CompetitorID: c1.ID}
			m.SlotB = Slot{CompetitorID: c2.ID}
			b.addNode(m)
			position++
		}
	}

	b.TotalRounds = numRounds
	return b, nil
}

// Rotates the given index according to https://en.wikipedia.org/wiki/Round-robin_tournament#Circle_method
func roundRobinCircleIndex(index, length, round int) int {
	if index == 0 {
		return 0
	}
	index -= 1
	index -= round
	index += length - 1
	index %= length - 1
	index += 1
	return index
}
