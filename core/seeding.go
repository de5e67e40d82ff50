package core

import (
	"math/rand"
	"slices"
	"sort"
)

// A SeedingPolicy orders a roster of competitors before
// bracket construction.
type SeedingPolicy interface {
	apply(competitors []*Competitor) []*Competitor
}

// RandomPolicy shuffles the roster uniformly.
//
// When Seed is non-nil the shuffle is fully deterministic for
// the same seed and input order, which makes "redo the draw
// with the same seed" reproducible. With a nil Seed a
// non-deterministic source is used.
type RandomPolicy struct {
	Seed *int64
}

func (p RandomPolicy) apply(competitors []*Competitor) []*Competitor {
	shuffled := slices.Clone(competitors)

	var rng *rand.Rand
	if p.Seed != nil {
		rng = rand.New(rand.NewSource(*p.Seed))
	} else {
		rng = rand.New(rand.NewSource(rand.Int63()))
	}

	rng.Shuffle(
		len(shuffled),
		func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] },
	)

	return shuffled
}

// SkillPolicy sorts the roster by descending numeric rating.
//
// The sort is stable: competitors without a parseable rating
// count as rating 0 and keep their original relative order
// after all rated competitors.
type SkillPolicy struct{}

func (p SkillPolicy) apply(competitors []*Competitor) []*Competitor {
	sorted := slices.Clone(competitors)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Rating.Numeric() > sorted[j].Rating.Numeric()
	})
	return sorted
}

// ManualPolicy places the competitors named in Order first, in
// exactly that order. Competitors not named are appended in
// their original relative order. Ids in Order that are not in
// the roster are ignored.
type ManualPolicy struct {
	Order []string
}

func (p ManualPolicy) apply(competitors []*Competitor) []*Competitor {
	byID := make(map[string]*Competitor, len(competitors))
	for _, c := range competitors {
		byID[c.ID] = c
	}

	ordered := make([]*Competitor, 0, len(competitors))
	placed := make(map[string]bool, len(p.Order))
	for _, id := range p.Order {
		c, ok := byID[id]
		if !ok || placed[id] {
			continue
		}
		ordered = append(ordered, c)
		placed[id] = true
	}

	for _, c := range competitors {
		if !placed[c.ID] {
			ordered = append(ordered, c)
		}
	}

	return ordered
}

// Seed orders the roster according to the policy.
//
// The input slice is never mutated; a new slice referencing the
// same competitors is returned.
func Seed(competitors []*Competitor, policy SeedingPolicy) ([]*Competitor, error) {
	if policy == nil {
		return nil, ErrInvalidInput
	}
	return policy.apply(competitors), nil
}
