package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"tablescore/internal/config"
	"tablescore/internal/score"
)

func itoaU(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}

func newTestServer(t *testing.T) (*Server, *httptest.Server) {
	t.Helper()
	srv := New(nil, config.Default())
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return srv, ts
}

func doRequest(t *testing.T, ts *httptest.Server, method, path string, payload any) *http.Response {
	t.Helper()
	var body *bytes.Buffer
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("marshal request: %v", err)
		}
		body = bytes.NewBuffer(data)
	} else {
		body = bytes.NewBuffer(nil)
	}
	req, err := http.NewRequest(method, ts.URL+path, body)
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := ts.Client().Do(req)
	if err != nil {
		t.Fatalf("request %s %s: %v", method, path, err)
	}
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func decodeBody(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	var body map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return body
}

func createPlayer(t *testing.T, ts *httptest.Server, name string) uint {
	t.Helper()
	resp := doRequest(t, ts, http.MethodPost, "/api/players", map[string]string{"name": name})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected player created, got status %d", resp.StatusCode)
	}
	body := decodeBody(t, resp)
	return uint(body["id"].(float64))
}

func createSession(t *testing.T, ts *httptest.Server, players []uint, settings score.Settings) string {
	t.Helper()
	resp := doRequest(t, ts, http.MethodPost, "/api/sessions", map[string]any{
		"game":     "Skull King",
		"players":  players,
		"settings": settings,
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected session created, got status %d", resp.StatusCode)
	}
	body := decodeBody(t, resp)
	id, ok := body["session_id"].(string)
	if !ok || id == "" {
		t.Fatalf("expected session_id in response, got %#v", body)
	}
	return id
}

func sessionRows(t *testing.T, body map[string]any) []map[string]any {
	t.Helper()
	raw, ok := body["rows"].([]any)
	if !ok {
		t.Fatalf("expected rows in snapshot, got %#v", body["rows"])
	}
	rows := make([]map[string]any, len(raw))
	for i, entry := range raw {
		rows[i] = entry.(map[string]any)
	}
	return rows
}

func rowTotals(t *testing.T, body map[string]any) []int {
	t.Helper()
	rows := sessionRows(t, body)
	totals := make([]int, len(rows))
	for i, row := range rows {
		totals[i] = int(row["total"].(float64))
	}
	return totals
}
