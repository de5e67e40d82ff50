package core

import (
	"errors"
	"fmt"

	"github.com/dominikbraun/graph"

	"github.com/ChrisStephens1971/tournament-engine/internal"
)

// A tournament format.
type Format string

const (
	FormatSingleElimination         Format = "single_elimination"
	FormatDoubleElimination         Format = "double_elimination"
	FormatRoundRobin                Format = "round_robin"
	FormatModifiedSingleElimination Format = "modified_single_elimination"
)

// MaxCompetitors bounds bracket memory and round count.
const MaxCompetitors = 128

// BuildOptions carries the enumerated construction toggles.
type BuildOptions struct {
	// BracketReset appends a second grand finals match to a
	// double elimination bracket. It is only played when the
	// losers-side competitor wins the first grand finals.
	BracketReset bool

	// Consolation adds a match between the two semifinal
	// losers of a modified single elimination bracket.
	Consolation bool
}

// A Bracket is the complete match dependency graph for one
// tournament. It is immutable after construction except for
// the slot, state, table and winner fields of its matches.
type Bracket struct {
	Format          Format
	Nodes           []*Match
	Competitors     []*Competitor
	TotalRounds     int
	CompetitorCount int
	ByeCount        int

	// ResetNodeID names the bracket reset match when the
	// BracketReset option was enabled, otherwise "".
	ResetNodeID string

	byID    map[string]*Match
	graph   *internal.DependencyGraph[*Match]
	journal []ProgressionEvent
}

// Build constructs the full match graph for the given format
// from an already seeded competitor order.
//
// No partial bracket is ever returned: any error is fatal to
// the call.
func Build(ordered []*Competitor, format Format, opts BuildOptions) (*Bracket, error) {
	n := len(ordered)
	if n > MaxCompetitors {
		return nil, fmt.Errorf("%w: %d competitors, maximum is %d", ErrBracketTooLarge, n, MaxCompetitors)
	}

	var (
		b   *Bracket
		err error
	)
	switch format {
	case FormatSingleElimination:
		b, err = buildSingleElimination(ordered)
	case FormatDoubleElimination:
		b, err = buildDoubleElimination(ordered, opts.BracketReset)
	case FormatRoundRobin:
		b, err = buildRoundRobin(ordered)
	case FormatModifiedSingleElimination:
		b, err = buildModifiedSingleElimination(ordered, opts.Consolation)
	default:
		return nil, fmt.Errorf("%w: unknown format %q", ErrInvalidInput, format)
	}
	if err != nil {
		return nil, err
	}

	if err := b.finalize(); err != nil {
		return nil, err
	}
	return b, nil
}

func newBracket(format Format, competitors []*Competitor) *Bracket {
	return &Bracket{
		Format:          format,
		Competitors:     competitors,
		CompetitorCount: len(competitors),
		byID:            make(map[string]*Match),
	}
}

func (b *Bracket) addNode(m *Match) {
	b.Nodes = append(b.Nodes, m)
	b.byID[m.ID] = m
}

// Node returns the match with the given id.
func (b *Bracket) Node(id string) (*Match, error) {
	m, ok := b.byID[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return m, nil
}

// Downstream returns the matches that directly depend on the
// given match, i.e. the targets of its advancement edges.
func (b *Bracket) Downstream(id string) ([]*Match, error) {
	m, err := b.Node(id)
	if err != nil {
		return nil, err
	}
	return b.graph.Dependants(m), nil
}

// Events returns the append-only progression journal.
func (b *Bracket) Events() []ProgressionEvent {
	return b.journal
}

func (b *Bracket) appendEvent(e ProgressionEvent) ProgressionEvent {
	e.Seq = len(b.journal) + 1
	b.journal = append(b.journal, e)
	return e
}

// finalize mirrors the node edges into the dependency graph
// and runs the structural validator. A failure here is a
// builder bug, never caller input.
func (b *Bracket) finalize() error {
	b.graph = internal.NewDependencyGraph[*Match]()
	for _, m := range b.Nodes {
		if err := b.graph.AddVertex(m); err != nil {
			return fmt.Errorf("bracket validation: duplicate node %s", m.ID)
		}
	}

	inbound := make(map[Edge]int)
	for _, m := range b.Nodes {
		for _, e := range []Edge{m.WinnerTo, m.LoserTo} {
			if e.None() {
				continue
			}
			target, ok := b.byID[e.To]
			if !ok {
				return fmt.Errorf("bracket validation: %s points at missing node %s", m.ID, e.To)
			}
			inbound[e]++
			if inbound[e] > 1 {
				return fmt.Errorf("bracket validation: slot %d of %s has multiple sources", e.Slot, e.To)
			}
			// A match may route winner and loser to the same target
			// (grand finals into the bracket reset)
			if err := b.graph.AddEdge(m, target); err != nil && !errors.Is(err, graph.ErrEdgeAlreadyExists) {
				return fmt.Errorf("bracket validation: edge %s -> %s: %v", m.ID, e.To, err)
			}
		}
	}

	switch b.Format {
	case FormatSingleElimination, FormatModifiedSingleElimination, FormatDoubleElimination:
		return b.validateElimination()
	case FormatRoundRobin:
		return b.validateRoundRobin()
	}
	return nil
}

func (b *Bracket) validateElimination() error {
	terminals := 0
	for _, m := range b.Nodes {
		if m.WinnerTo.None() {
			terminals++
		}
	}

	wantTerminals := 1
	if _, ok := b.byID[consolationNodeID]; ok {
		wantTerminals = 2
	}
	if terminals != wantTerminals {
		return fmt.Errorf("bracket validation: %d terminal nodes, want %d", terminals, wantTerminals)
	}

	// Only winners-section byes count toward the quota; a bye
	// cascade may also complete losers or grand finals nodes
	wantByes := bracketSize(b.CompetitorCount) - b.CompetitorCount
	byes := 0
	for _, m := range b.Nodes {
		if !m.IsBye || m.Section != SectionWinners {
			continue
		}
		byes++
		if m.Round != 1 {
			return fmt.Errorf("bracket validation: bye match %s outside round 1", m.ID)
		}
		if m.State != StateCompleted {
			return fmt.Errorf("bracket validation: bye match %s not completed", m.ID)
		}
		if m.WinnerID == "" {
			return fmt.Errorf("bracket validation: bye match %s has no winner", m.ID)
		}
	}
	if byes != wantByes {
		return fmt.Errorf("bracket validation: %d byes, want %d", byes, wantByes)
	}
	b.ByeCount = wantByes

	return nil
}

func (b *Bracket) validateRoundRobin() error {
	n := b.CompetitorCount
	want := n * (n - 1) / 2
	if len(b.Nodes) != want {
		return fmt.Errorf("bracket validation: %d round robin matches, want %d", len(b.Nodes), want)
	}

	type pair struct{ a, b string }
	pairs := make(map[pair]bool, want)
	perRound := make(map[int]map[string]bool)

	for _, m := range b.Nodes {
		if !m.WinnerTo.None() || !m.LoserTo.None() {
			return fmt.Errorf("bracket validation: round robin match %s has advancement edges", m.ID)
		}

		a, c := m.SlotA.CompetitorID, m.SlotB.CompetitorID
		if a > c {
			a, c = c, a
		}
		p := pair{a, c}
		if pairs[p] {
			return fmt.Errorf("bracket validation: pair %s/%s plays twice", a, c)
		}
		pairs[p] = true

		seen := perRound[m.Round]
		if seen == nil {
			seen = make(map[string]bool)
			perRound[m.Round] = seen
		}
		for _, id := range []string{a, c} {
			if seen[id] {
				return fmt.Errorf("bracket validation: %s appears twice in round %d", id, m.Round)
			}
			seen[id] = true
		}
	}

	return nil
}

func nextPowerOfTwo(n int) int {
	size := 1
	for size < n {
		size <<= 1
	}
	return size
}

func numRoundsFor(size int) int {
	rounds := 0
	for size > 1 {
		size >>= 1
		rounds += 1
	}
	return rounds
}
