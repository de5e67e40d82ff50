package core

import (
	"encoding/json"
	"testing"
)

// Drive a 7-competitor tournament from build to champion and
// check the journal and snapshot along the way
func TestEngineEndToEnd(t *testing.T) {
	bracket, err := Build(competitorSlice(7), FormatSingleElimination, BuildOptions{})
	if err != nil {
		t.Fatal(err)
	}

	notifier := &recordingNotifier{}
	engine := NewEngine(bracket, notifier)

	// The bye match is already decided, its opponents in round 1
	// are the only playable matches
	ready := engine.ReadyMatches()
	if len(ready) != 3 {
		t.Fatalf("%d ready matches at the start, want 3", len(ready))
	}

	for _, result := range [][2]string{
		{"W1-1", "p3"}, {"W1-2", "p1"}, {"W1-3", "p2"},
		{"W2-0", "p0"}, {"W2-1", "p1"},
		{"W3-0", "p0"},
	} {
		if err := playMatch(engine, result[0], "t1", result[1]); err != nil {
			t.Fatalf("%s: %v", result[0], err)
		}
	}

	final, _ := bracket.Node("W3-0")
	if final.State != StateCompleted || final.WinnerID != "p0" {
		t.Fatalf("the final ended %s with winner %q", final.State, final.WinnerID)
	}

	if len(engine.ReadyMatches()) != 0 {
		t.Fatal("matches are still ready after the final")
	}

	journal := bracket.Events()
	if len(journal) == 0 {
		t.Fatal("the journal is empty after a full tournament")
	}
	for i, event := range journal {
		if event.Seq != i+1 {
			t.Fatalf("journal entry %d has seq %d", i, event.Seq)
		}
		if event.Timestamp.IsZero() {
			t.Fatalf("journal entry %d has no timestamp", i)
		}
	}

	// Every journal entry also reached the notifier, in order
	if len(notifier.events) != len(journal) {
		t.Fatalf("notifier saw %d events, journal has %d", len(notifier.events), len(journal))
	}
	for i := range journal {
		if notifier.events[i].Seq != journal[i].Seq {
			t.Fatalf("notifier event %d is out of order", i)
		}
	}
}

func TestEngineAttributesActors(t *testing.T) {
	bracket, err := Build(competitorSlice(4), FormatSingleElimination, BuildOptions{})
	if err != nil {
		t.Fatal(err)
	}

	notifier := &recordingNotifier{}
	engine := NewEngine(bracket, notifier)

	if err := engine.AssignTable("W1-0", "t1", Actor{ID: "td1", Channel: "admin_ui"}); err != nil {
		t.Fatal(err)
	}
	if err := engine.Start("W1-0", Actor{}); err != nil {
		t.Fatal(err)
	}

	if notifier.events[0].Actor != "td1" || notifier.events[0].Channel != "admin_ui" {
		t.Fatalf("the assign event credits %s via %s", notifier.events[0].Actor, notifier.events[0].Channel)
	}
	// A zero actor is attributed to the engine itself
	if notifier.events[1].Actor != "system" {
		t.Fatalf("the start event credits %s", notifier.events[1].Actor)
	}
}

// A storage-loaded bracket with an occupied table must keep the
// occupancy guard intact
func TestEngineRebuildsTableOccupancy(t *testing.T) {
	bracket, err := Build(competitorSlice(4), FormatSingleElimination, BuildOptions{})
	if err != nil {
		t.Fatal(err)
	}
	m, _ := bracket.Node("W1-0")
	m.State = StateReady
	m.TableID = "t1"

	engine := NewEngine(bracket, nil)
	err = engine.AssignTable("W1-1", "t1", Actor{ID: "td1"})
	if err == nil {
		t.Fatal("the loaded table occupancy was not enforced")
	}
}

func TestBracketSnapshot(t *testing.T) {
	bracket, err := Build(competitorSlice(7), FormatSingleElimination, BuildOptions{})
	if err != nil {
		t.Fatal(err)
	}
	engine := NewEngine(bracket, nil)
	if err := playMatch(engine, "W1-1", "t1", "p3"); err != nil {
		t.Fatal(err)
	}

	raw, err := json.Marshal(bracket)
	if err != nil {
		t.Fatal(err)
	}

	var snapshot struct {
		Format string `json:"format"`
		Nodes  []struct {
			ID       string `json:"id"`
			State    string `json:"state"`
			WinnerID string `json:"winner_id"`
		} `json:"nodes"`
		Events []ProgressionEvent `json:"events"`
	}
	if err := json.Unmarshal(raw, &snapshot); err != nil {
		t.Fatal(err)
	}

	if snapshot.Format != string(FormatSingleElimination) {
		t.Fatalf("snapshot format is %q", snapshot.Format)
	}
	if len(snapshot.Nodes) != 7 {
		t.Fatalf("snapshot has %d nodes, want 7", len(snapshot.Nodes))
	}
	if len(snapshot.Events) != len(bracket.Events()) {
		t.Fatal("the snapshot journal is incomplete")
	}

	found := false
	for _, n := range snapshot.Nodes {
		if n.ID == "W1-1" {
			found = n.State == string(StateCompleted) && n.WinnerID == "p3"
		}
	}
	if !found {
		t.Fatal("the played match is not reflected in the snapshot")
	}
}
