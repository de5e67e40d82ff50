package core

import "time"

// A Table is a playing surface with a projected free-at time.
// A zero FreeAt means the table is free now.
type Table struct {
	ID     string
	FreeAt time.Time
}

// A QueuedMatch pairs a ready match with its duration estimate.
type QueuedMatch struct {
	MatchID  string
	Estimate DurationEstimate
}

// A QueueSlot is the projected assignment of one queued match:
// where it will play, when it is expected to start, and how
// long the players wait from now.
type QueueSlot struct {
	MatchID    string
	TableID    string
	StartAt    time.Time
	Wait       time.Duration
	Confidence float64
}

// ProjectQueue assigns the queued matches, in order, to
// whichever table frees earliest and projects their start
// times. The table's new free-at is the projected start plus
// the adjusted duration.
//
// The projection is advisory display data; it never mutates the
// bracket and the inputs are not modified.
func ProjectQueue(tables []Table, queue []QueuedMatch, now time.Time) []QueueSlot {
	if len(tables) == 0 || len(queue) == 0 {
		return nil
	}

	freeAt := make([]time.Time, len(tables))
	for i, t := range tables {
		freeAt[i] = t.FreeAt
	}

	slots := make([]QueueSlot, 0, len(queue))
	for _, q := range queue {
		next := 0
		for i := 1; i < len(tables); i++ {
			if freeAt[i].Before(freeAt[next]) {
				next = i
			}
		}

		start := freeAt[next]
		if start.Before(now) {
			start = now
		}
		freeAt[next] = start.Add(time.Duration(q.Estimate.AdjustedMinutes) * time.Minute)

		wait := start.Sub(now)
		if wait < 0 {
			wait = 0
		}

		slots = append(slots, QueueSlot{
			MatchID:    q.MatchID,
			TableID:    tables[next].ID,
			StartAt:    start,
			Wait:       wait,
			Confidence: q.Estimate.Confidence,
		})
	}

	return slots
}
