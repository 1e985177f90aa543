package score

import (
	"encoding/json"
	"reflect"
	"testing"
)

func commitRound(t *testing.T, h *History, settings Settings, values map[string]int, keys []string) {
	t.Helper()
	buf := NewBuffer(settings)
	for key, v := range values {
		buf.SetValue(key, 0, v)
	}
	entries, err := ShapeRound(buf, keys, settings)
	if err != nil {
		t.Fatalf("shape round: %v", err)
	}
	if err := h.AppendRound(entries); err != nil {
		t.Fatalf("append round: %v", err)
	}
}

func TestAppendKeepsTracksParallel(t *testing.T) {
	settings := individualSettings(CalcPoints, PerRoundSingle)
	h := NewHistory(settings, 3)
	keys := []string{"a", "b", "c"}

	commitRound(t, h, settings, map[string]int{"a": 5, "c": 8}, keys)
	commitRound(t, h, settings, map[string]int{"b": 2}, keys)

	for i, track := range h.Laps {
		if len(track) != 2 {
			t.Fatalf("expected track %d to hold 2 rounds, got %d", i, len(track))
		}
	}
	if h.RoundCount() != 2 {
		t.Fatalf("expected 2 rounds, got %d", h.RoundCount())
	}
}

func TestUndoDropsOnlyLastRound(t *testing.T) {
	settings := individualSettings(CalcPoints, PerRoundSingle)
	h := NewHistory(settings, 2)
	keys := []string{"a", "b"}
	commitRound(t, h, settings, map[string]int{"a": 5, "b": 3}, keys)
	commitRound(t, h, settings, map[string]int{"a": 2, "b": 1}, keys)

	before, err := json.Marshal(h.Laps[0][:1])
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	h.UndoLastRound()
	if h.RoundCount() != 1 {
		t.Fatalf("expected 1 round after undo, got %d", h.RoundCount())
	}
	after, err := json.Marshal(h.Laps[0])
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(before) != string(after) {
		t.Fatalf("expected round 1 untouched, got %s vs %s", before, after)
	}

	// Undo keeps walking back, and is a no-op once empty.
	h.UndoLastRound()
	h.UndoLastRound()
	if h.RoundCount() != 0 {
		t.Fatalf("expected empty history, got %d rounds", h.RoundCount())
	}
}

func TestResetEmptiesHistory(t *testing.T) {
	settings := individualSettings(CalcPoints, PerRoundSingle)
	h := NewHistory(settings, 2)
	commitRound(t, h, settings, map[string]int{"a": 5}, []string{"a", "b"})

	h.Reset()
	if cols := h.RoundColumns(); len(cols) != 0 {
		t.Fatalf("expected no columns after reset, got %v", cols)
	}
	if h.NextRoundNumber() != 1 {
		t.Fatalf("expected next round 1, got %d", h.NextRoundNumber())
	}
}

func TestRoundColumnsMostRecentFirst(t *testing.T) {
	settings := individualSettings(CalcPoints, PerRoundSingle)
	h := NewHistory(settings, 1)
	for i := 0; i < 3; i++ {
		commitRound(t, h, settings, map[string]int{"a": i + 1}, []string{"a"})
	}
	if got := h.RoundColumns(); !reflect.DeepEqual(got, []int{3, 2, 1}) {
		t.Fatalf("expected [3 2 1], got %v", got)
	}
}

func TestTeamHistory(t *testing.T) {
	settings := teamSettings(CalcPoints, PerRoundSingle)
	h := NewHistory(settings, 0)
	buf := NewBuffer(settings)
	buf.SetValue(KeyRedTeam, 0, 10)
	buf.SetValue(KeyBlueTeam, 0, 4)
	entries, err := ShapeRound(buf, TeamKeys(), settings)
	if err != nil {
		t.Fatalf("shape round: %v", err)
	}
	if err := h.AppendRound(entries); err != nil {
		t.Fatalf("append round: %v", err)
	}

	red, err := h.EntryAt(0, 1)
	if err != nil || red.Sum() != 10 {
		t.Fatalf("expected red 10, got %d %v", red.Sum(), err)
	}
	blue, err := h.EntryAt(1, 1)
	if err != nil || blue.Sum() != 4 {
		t.Fatalf("expected blue 4, got %d %v", blue.Sum(), err)
	}

	h.UndoLastRound()
	if h.RoundCount() != 0 {
		t.Fatalf("expected empty team history, got %d", h.RoundCount())
	}
}

func TestAddSlotPadsCommittedRounds(t *testing.T) {
	settings := individualSettings(CalcPoints, PerRoundSingle)
	h := NewHistory(settings, 2)
	keys := []string{"a", "b"}
	commitRound(t, h, settings, map[string]int{"a": 5, "b": 3}, keys)

	if err := h.AddSlot(); err != nil {
		t.Fatalf("add slot: %v", err)
	}
	if len(h.Laps[2]) != 1 {
		t.Fatalf("expected new track padded to 1 round, got %d", len(h.Laps[2]))
	}
	if h.PlayerTotal(2) != 0 {
		t.Fatalf("expected padded track total 0, got %d", h.PlayerTotal(2))
	}

	commitRound(t, h, settings, map[string]int{"c": 2}, []string{"a", "b", "c"})
	for i, track := range h.Laps {
		if len(track) != 2 {
			t.Fatalf("expected track %d length 2, got %d", i, len(track))
		}
	}
}

func TestHistoryJSONShape(t *testing.T) {
	settings := individualSettings(CalcPoints, PerRoundMultiple)
	h := NewHistory(settings, 1)
	if err := h.AppendRound([]Entry{Multi(3, 5)}); err != nil {
		t.Fatalf("append round: %v", err)
	}
	if err := h.AppendRound([]Entry{Multi(2)}); err != nil {
		t.Fatalf("append round: %v", err)
	}

	data, err := json.Marshal(h.Laps)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(data) != "[[[3,5],[2]]]" {
		t.Fatalf("unexpected laps JSON %s", data)
	}

	var decoded []Track
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !decoded[0][0].IsMulti() || decoded[0][0].Sum() != 8 {
		t.Fatalf("expected multi entry summing 8 back, got %v", decoded[0][0])
	}
}
