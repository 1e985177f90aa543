package server

import (
	"errors"
	"testing"

	"tablescore/internal/score"
)

func memorySession(t *testing.T, store *Store, players ...string) *Session {
	t.Helper()
	refs := make([]PlayerRef, len(players))
	for i, name := range players {
		rec := PlayerRecord{Name: name}
		if err := store.CreatePlayer(&rec); err != nil {
			t.Fatalf("create player: %v", err)
		}
		refs[i] = PlayerRef{ID: rec.ID, Name: rec.Name}
	}
	settings := score.Settings{}
	settings.Normalize()
	sess := &Session{
		ID:       "sess-1",
		GameName: "Uno",
		Settings: settings,
		Players:  refs,
		History:  score.NewHistory(settings, len(refs)),
	}
	if err := store.CreateSession(sess); err != nil {
		t.Fatalf("create session: %v", err)
	}
	return sess
}

func TestUpdateSessionApplyErrorLeavesHistory(t *testing.T) {
	store := NewStore(nil)
	memorySession(t, store, "Ada", "Bo")

	boom := errors.New("boom")
	_, err := store.UpdateSession("sess-1", func(sess *Session) error {
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected apply error surfaced, got %v", err)
	}

	sess, err := store.GetSession("sess-1")
	if err != nil {
		t.Fatalf("get session: %v", err)
	}
	if sess.History.RoundCount() != 0 {
		t.Fatalf("expected history untouched, got %d rounds", sess.History.RoundCount())
	}
}

func TestUpdateSessionNotFound(t *testing.T) {
	store := NewStore(nil)
	_, err := store.UpdateSession("missing", func(sess *Session) error { return nil })
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestListSessionsNewestFirst(t *testing.T) {
	store := NewStore(nil)
	settings := score.Settings{}
	settings.Normalize()
	for _, id := range []string{"s1", "s2", "s3"} {
		sess := &Session{
			ID:       id,
			GameName: "Uno",
			Settings: settings,
			Players:  []PlayerRef{{ID: 1, Name: "Ada"}},
			History:  score.NewHistory(settings, 1),
		}
		if err := store.CreateSession(sess); err != nil {
			t.Fatalf("create session: %v", err)
		}
	}

	summaries, total, err := store.ListSessions(0, 2)
	if err != nil {
		t.Fatalf("list sessions: %v", err)
	}
	if total != 3 {
		t.Fatalf("expected total 3, got %d", total)
	}
	if len(summaries) != 2 || summaries[0].ID != "s3" || summaries[1].ID != "s2" {
		t.Fatalf("expected newest first [s3 s2], got %+v", summaries)
	}

	summaries, _, err = store.ListSessions(2, 2)
	if err != nil {
		t.Fatalf("list sessions: %v", err)
	}
	if len(summaries) != 1 || summaries[0].ID != "s1" {
		t.Fatalf("expected last page [s1], got %+v", summaries)
	}
}

func TestStoreGroupRoundTrip(t *testing.T) {
	store := NewStore(nil)
	rec := GroupRecord{Name: "Game night", Members: []uint{1, 2, 3}}
	if err := store.CreateGroup(&rec); err != nil {
		t.Fatalf("create group: %v", err)
	}
	loaded, err := store.GetGroup(rec.ID)
	if err != nil {
		t.Fatalf("get group: %v", err)
	}
	if len(loaded.Members) != 3 {
		t.Fatalf("expected 3 members, got %v", loaded.Members)
	}

	if err := store.DeleteGroup(rec.ID); err != nil {
		t.Fatalf("delete group: %v", err)
	}
	if _, err := store.GetGroup(rec.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected group gone, got %v", err)
	}
}
