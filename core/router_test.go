package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdvanceRequiresDecidedMatch(t *testing.T) {
	bracket, err := Build(competitorSlice(4), FormatSingleElimination, BuildOptions{})
	require.NoError(t, err)
	engine := NewEngine(bracket, nil)

	assert.ErrorIs(t, engine.Advance("W1-0"), ErrIllegalTransition)
	assert.ErrorIs(t, engine.Advance("no-such-match"), ErrNotFound)
}

// Advance re-routes a storage-loaded result whose slots were
// never pushed downstream
func TestAdvanceRoutesRecordedResult(t *testing.T) {
	bracket, err := Build(competitorSlice(4), FormatSingleElimination, BuildOptions{})
	require.NoError(t, err)

	// Simulate a loaded bracket with a decided but unrouted match
	m, _ := bracket.Node("W1-0")
	m.State = StateCompleted
	m.WinnerID = "p0"

	engine := NewEngine(bracket, nil)
	require.NoError(t, engine.Advance("W1-0"))

	final, _ := bracket.Node("W2-0")
	assert.Equal(t, "p0", final.SlotA.CompetitorID)
}

func TestAdvancementEventMarksReadiness(t *testing.T) {
	bracket, err := Build(competitorSlice(4), FormatSingleElimination, BuildOptions{})
	require.NoError(t, err)

	notifier := &recordingNotifier{}
	engine := NewEngine(bracket, notifier)

	require.NoError(t, playMatch(engine, "W1-0", "t1", "p0"))

	first := lastAdvancement(notifier.events)
	require.NotNil(t, first)
	assert.Equal(t, "W2-0", first.MatchID)
	assert.Equal(t, "p0", first.Payload["competitor_id"])
	assert.Equal(t, "A", first.Payload["slot"])
	assert.NotContains(t, first.Payload, "ready")

	require.NoError(t, playMatch(engine, "W1-1", "t1", "p1"))

	second := lastAdvancement(notifier.events)
	require.NotNil(t, second)
	assert.Equal(t, "true", second.Payload["ready"])
}

// The final routes nowhere; completing it must not fail
func TestTerminalMatchAdvancesNowhere(t *testing.T) {
	bracket, err := Build(competitorSlice(2), FormatSingleElimination, BuildOptions{})
	require.NoError(t, err)
	engine := NewEngine(bracket, nil)

	require.NoError(t, playMatch(engine, "W1-0", "t1", "p0"))

	m, _ := bracket.Node("W1-0")
	assert.Equal(t, StateCompleted, m.State)
	assert.Equal(t, "p0", m.WinnerID)
}

func lastAdvancement(events []ProgressionEvent) *ProgressionEvent {
	for i := len(events) - 1; i >= 0; i-- {
		if events[i].Kind == EventAdvancement {
			return &events[i]
		}
	}
	return nil
}
