package core

import (
	"errors"
	"testing"
)

func TestRoundRobinSchedule(t *testing.T) {
	for _, n := range []int{2, 4, 5, 7, 8} {
		bracket, err := Build(competitorSlice(n), FormatRoundRobin, BuildOptions{})
		if err != nil {
			t.Fatalf("n=%d: %v", n, err)
		}

		wantMatches := n * (n - 1) / 2
		if len(bracket.Nodes) != wantMatches {
			t.Fatalf("n=%d: %d matches, want %d", n, len(bracket.Nodes), wantMatches)
		}

		// Odd rosters pad with a ghost opponent, so everyone
		// sits out one round
		wantRounds := n - 1
		if n%2 != 0 {
			wantRounds = n
		}
		if bracket.TotalRounds != wantRounds {
			t.Fatalf("n=%d: %d rounds, want %d", n, bracket.TotalRounds, wantRounds)
		}

		appearances := make(map[string]int)
		for _, m := range bracket.Nodes {
			if !m.WinnerTo.None() || !m.LoserTo.None() {
				t.Fatalf("n=%d: round robin match %s has advancement edges", n, m.ID)
			}
			appearances[m.SlotA.CompetitorID] += 1
			appearances[m.SlotB.CompetitorID] += 1
		}
		for _, c := range bracket.Competitors {
			if appearances[c.ID] != n-1 {
				t.Fatalf("n=%d: %s plays %d matches, want %d", n, c.ID, appearances[c.ID], n-1)
			}
		}
	}
}

// The circle method rotation alternates the first-named
// competitor of the fixed pairing between rounds
func TestRoundRobinFixedSeatAlternates(t *testing.T) {
	bracket, err := Build(competitorSlice(4), FormatRoundRobin, BuildOptions{})
	if err != nil {
		t.Fatal(err)
	}

	round1, _ := bracket.Node("R1-0")
	round2, _ := bracket.Node("R2-0")
	if round1.SlotA.CompetitorID != "p0" {
		t.Fatalf("round 1 fixed pairing starts with %s", round1.SlotA.CompetitorID)
	}
	if round2.SlotB.CompetitorID != "p0" {
		t.Fatalf("round 2 fixed pairing should swap, slot B is %s", round2.SlotB.CompetitorID)
	}
}

func TestRoundRobinNeedsTwoCompetitors(t *testing.T) {
	if _, err := Build(competitorSlice(1), FormatRoundRobin, BuildOptions{}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("got %v, want ErrInvalidInput", err)
	}
}
