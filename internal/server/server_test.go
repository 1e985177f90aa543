package server

import (
	"net/http"
	"reflect"
	"testing"

	"tablescore/internal/score"
)

func TestHomePage(t *testing.T) {
	_, ts := newTestServer(t)
	resp := doRequest(t, ts, http.MethodGet, "/", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, resp.StatusCode)
	}
}

func TestPlayerCRUD(t *testing.T) {
	_, ts := newTestServer(t)

	createPlayer(t, ts, "Ada")

	resp := doRequest(t, ts, http.MethodPost, "/api/players", map[string]string{"name": "Ada"})
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("expected duplicate name rejected, got %d", resp.StatusCode)
	}

	resp = doRequest(t, ts, http.MethodPost, "/api/players", map[string]string{"name": "   "})
	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("expected blank name rejected, got %d", resp.StatusCode)
	}

	resp = doRequest(t, ts, http.MethodPut, "/api/players/1", map[string]string{"name": "Ada L"})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected rename ok, got %d", resp.StatusCode)
	}

	resp = doRequest(t, ts, http.MethodGet, "/api/players/1", nil)
	body := decodeBody(t, resp)
	if body["name"] != "Ada L" {
		t.Fatalf("expected renamed player, got %v", body["name"])
	}

	resp = doRequest(t, ts, http.MethodDelete, "/api/players/1", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected delete ok, got %d", resp.StatusCode)
	}
	resp = doRequest(t, ts, http.MethodGet, "/api/players/1", nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected deleted player gone, got %d", resp.StatusCode)
	}
}

func TestSessionScoringFlow(t *testing.T) {
	_, ts := newTestServer(t)

	a := createPlayer(t, ts, "Ada")
	b := createPlayer(t, ts, "Bo")
	c := createPlayer(t, ts, "Cleo")
	id := createSession(t, ts, []uint{a, b, c}, score.Settings{})

	// Round 1.
	resp := doRequest(t, ts, http.MethodPost, "/api/sessions/"+id+"/rounds", map[string]any{
		"entries": map[string]any{
			"1": map[string]any{"value": 5},
			"2": map[string]any{"value": 3},
			"3": map[string]any{"value": 8},
		},
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected commit ok, got %d", resp.StatusCode)
	}
	body := decodeBody(t, resp)
	if got := rowTotals(t, body); !reflect.DeepEqual(got, []int{5, 3, 8}) {
		t.Fatalf("expected totals [5 3 8], got %v", got)
	}

	// An all-zero round is rejected and nothing changes.
	resp = doRequest(t, ts, http.MethodPost, "/api/sessions/"+id+"/rounds", map[string]any{
		"entries": map[string]any{"1": map[string]any{"value": 0}},
	})
	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("expected all-zero round rejected, got %d", resp.StatusCode)
	}
	resp = doRequest(t, ts, http.MethodGet, "/api/sessions/"+id, nil)
	body = decodeBody(t, resp)
	if got := rowTotals(t, body); !reflect.DeepEqual(got, []int{5, 3, 8}) {
		t.Fatalf("expected totals unchanged after rejection, got %v", got)
	}

	// Round 2, then the columns list most recent first.
	resp = doRequest(t, ts, http.MethodPost, "/api/sessions/"+id+"/rounds", map[string]any{
		"entries": map[string]any{
			"1": map[string]any{"value": 2},
			"3": map[string]any{"value": 1},
		},
	})
	body = decodeBody(t, resp)
	if got := rowTotals(t, body); !reflect.DeepEqual(got, []int{7, 3, 9}) {
		t.Fatalf("expected totals [7 3 9], got %v", got)
	}
	if got := body["round_columns"].([]any); len(got) != 2 || got[0].(float64) != 2 {
		t.Fatalf("expected columns [2 1], got %v", got)
	}
	if got := body["next_round_number"].(float64); got != 3 {
		t.Fatalf("expected next round 3, got %v", got)
	}

	// Undo restores round-1 state.
	resp = doRequest(t, ts, http.MethodDelete, "/api/sessions/"+id+"/rounds/last", nil)
	body = decodeBody(t, resp)
	if got := rowTotals(t, body); !reflect.DeepEqual(got, []int{5, 3, 8}) {
		t.Fatalf("expected totals [5 3 8] after undo, got %v", got)
	}

	// Reset clears everything.
	resp = doRequest(t, ts, http.MethodDelete, "/api/sessions/"+id+"/rounds", nil)
	body = decodeBody(t, resp)
	if got := body["round_columns"].([]any); len(got) != 0 {
		t.Fatalf("expected no columns after reset, got %v", got)
	}
	if got := body["next_round_number"].(float64); got != 1 {
		t.Fatalf("expected next round 1 after reset, got %v", got)
	}
}

func TestTeamSession(t *testing.T) {
	_, ts := newTestServer(t)

	a := createPlayer(t, ts, "Ada")
	b := createPlayer(t, ts, "Bo")
	resp := doRequest(t, ts, http.MethodPost, "/api/sessions", map[string]any{
		"game":      "Charades",
		"red_team":  []uint{a},
		"blue_team": []uint{b},
		"settings":  map[string]any{"gameplay": "team"},
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected team session created, got %d", resp.StatusCode)
	}
	id := decodeBody(t, resp)["session_id"].(string)

	resp = doRequest(t, ts, http.MethodPost, "/api/sessions/"+id+"/rounds", map[string]any{
		"entries": map[string]any{
			"redTeam":  map[string]any{"value": 10},
			"blueTeam": map[string]any{"value": 4},
		},
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected team commit ok, got %d", resp.StatusCode)
	}
	body := decodeBody(t, resp)
	if got := rowTotals(t, body); !reflect.DeepEqual(got, []int{10, 4}) {
		t.Fatalf("expected team totals [10 4], got %v", got)
	}
}

func TestCrownSession(t *testing.T) {
	_, ts := newTestServer(t)

	a := createPlayer(t, ts, "Ada")
	b := createPlayer(t, ts, "Bo")
	id := createSession(t, ts, []uint{a, b}, score.Settings{CalculationMode: score.CalcNoPoints})

	resp := doRequest(t, ts, http.MethodPost, "/api/sessions/"+id+"/rounds", map[string]any{
		"entries": map[string]any{"2": map[string]any{"crown": true}},
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected crown commit ok, got %d", resp.StatusCode)
	}
	body := decodeBody(t, resp)
	if got := rowTotals(t, body); !reflect.DeepEqual(got, []int{0, 1}) {
		t.Fatalf("expected totals [0 1], got %v", got)
	}
	rows := sessionRows(t, body)
	cells := rows[1]["rounds"].([]any)
	if cells[0] != "\U0001F3C6" {
		t.Fatalf("expected trophy cell, got %v", cells[0])
	}
}

func TestSessionSettingsPatch(t *testing.T) {
	_, ts := newTestServer(t)

	a := createPlayer(t, ts, "Ada")
	id := createSession(t, ts, []uint{a}, score.Settings{})

	resp := doRequest(t, ts, http.MethodPatch, "/api/sessions/"+id+"/settings",
		map[string]any{"hide_total_column": true})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected settings patch ok, got %d", resp.StatusCode)
	}
	body := decodeBody(t, resp)
	settings := body["settings"].(map[string]any)
	if settings["hide_total_column"] != true {
		t.Fatalf("expected hidden total column, got %v", settings)
	}

	resp = doRequest(t, ts, http.MethodPatch, "/api/sessions/"+id+"/settings",
		map[string]any{"calculation_mode": "bogus"})
	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("expected invalid settings rejected, got %d", resp.StatusCode)
	}
}

func TestSessionDelete(t *testing.T) {
	_, ts := newTestServer(t)

	a := createPlayer(t, ts, "Ada")
	id := createSession(t, ts, []uint{a}, score.Settings{})

	resp := doRequest(t, ts, http.MethodDelete, "/api/sessions/"+id, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected delete ok, got %d", resp.StatusCode)
	}
	resp = doRequest(t, ts, http.MethodGet, "/api/sessions/"+id, nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected deleted session gone, got %d", resp.StatusCode)
	}
}

func TestCreateSessionValidation(t *testing.T) {
	_, ts := newTestServer(t)

	// Unknown player.
	resp := doRequest(t, ts, http.MethodPost, "/api/sessions", map[string]any{
		"game":    "Uno",
		"players": []uint{99},
	})
	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("expected unknown player rejected, got %d", resp.StatusCode)
	}

	// No players at all.
	resp = doRequest(t, ts, http.MethodPost, "/api/sessions", map[string]any{"game": "Uno"})
	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("expected empty roster rejected, got %d", resp.StatusCode)
	}

	// Team mode with an empty side.
	a := createPlayer(t, ts, "Ada")
	resp = doRequest(t, ts, http.MethodPost, "/api/sessions", map[string]any{
		"game":     "Charades",
		"red_team": []uint{a},
		"settings": map[string]any{"gameplay": "team"},
	})
	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("expected one-sided teams rejected, got %d", resp.StatusCode)
	}
}

func TestHistoryView(t *testing.T) {
	_, ts := newTestServer(t)
	a := createPlayer(t, ts, "Ada")
	createSession(t, ts, []uint{a}, score.Settings{})

	resp := doRequest(t, ts, http.MethodGet, "/history", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected history page, got %d", resp.StatusCode)
	}
}
