package core

import "fmt"

// competitorSlice creates n competitors with ids p0..p(n-1) in
// seed order.
func competitorSlice(n int) []*Competitor {
	competitors := make([]*Competitor, 0, n)
	for i := 0; i < n; i++ {
		competitors = append(competitors, &Competitor{
			ID:   fmt.Sprintf("p%d", i),
			Name: fmt.Sprintf("Player %d", i),
		})
	}
	return competitors
}

func competitorIDs(competitors []*Competitor) []string {
	ids := make([]string, len(competitors))
	for i, c := range competitors {
		ids[i] = c.ID
	}
	return ids
}

// recordingNotifier collects every event the engine emits.
type recordingNotifier struct {
	events []ProgressionEvent
}

func (n *recordingNotifier) Notify(e ProgressionEvent) {
	n.events = append(n.events, e)
}

// playMatch drives a ready match through assign, start and
// complete on the given table.
func playMatch(e *Engine, matchID, tableID, winnerID string) error {
	actor := Actor{ID: "td1", Channel: "test"}
	if err := e.AssignTable(matchID, tableID, actor); err != nil {
		return err
	}
	if err := e.Start(matchID, actor); err != nil {
		return err
	}
	return e.Complete(matchID, winnerID, actor)
}
