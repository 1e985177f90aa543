package score

import (
	"errors"
	"fmt"
)

// History is the persisted, append-only record of committed rounds for one
// session. Individual play fills Laps: one track per player slot, parallel
// to the session's player order, each track holding that player's value for
// every round. Team play fills TeamLaps: one row per round, holding the red
// and blue entries in that order. Exactly one of the two tracks is active,
// selected by the session's gameplay setting.
type History struct {
	Gameplay string  `json:"gameplay"`
	Laps     []Track `json:"laps,omitempty"`
	TeamLaps []Track `json:"team_laps,omitempty"`
}

// Track is an ordered list of committed entries.
type Track []Entry

// NewHistory builds an empty history for a session with the given number
// of player slots (ignored in team play).
func NewHistory(settings Settings, slots int) *History {
	h := &History{Gameplay: settings.Gameplay}
	if !h.team() {
		h.Laps = make([]Track, slots)
	}
	return h
}

func (h *History) team() bool {
	return h.Gameplay == GameplayTeam
}

// AppendRound commits one shaped round: one entry per player slot in
// individual play, or a red/blue pair in team play. Every slot receives
// exactly one entry, so the parallel tracks stay the same length.
func (h *History) AppendRound(entries []Entry) error {
	if h.team() {
		if len(entries) != 2 {
			return fmt.Errorf("team round needs 2 entries, got %d", len(entries))
		}
		row := make(Track, 2)
		copy(row, entries)
		h.TeamLaps = append(h.TeamLaps, row)
		return nil
	}
	if len(entries) != len(h.Laps) {
		return fmt.Errorf("round has %d entries for %d players", len(entries), len(h.Laps))
	}
	for i, e := range entries {
		h.Laps[i] = append(h.Laps[i], e)
	}
	return nil
}

// UndoLastRound drops the most recent round from every track. It is a
// no-op when no rounds have been committed. Earlier rounds are untouched;
// repeated calls keep removing the new last round, and there is no redo.
func (h *History) UndoLastRound() {
	if h.team() {
		if len(h.TeamLaps) > 0 {
			h.TeamLaps = h.TeamLaps[:len(h.TeamLaps)-1]
		}
		return
	}
	for i, track := range h.Laps {
		if len(track) > 0 {
			h.Laps[i] = track[:len(track)-1]
		}
	}
}

// Reset discards all committed rounds. Irreversible.
func (h *History) Reset() {
	if h.team() {
		h.TeamLaps = nil
		return
	}
	for i := range h.Laps {
		h.Laps[i] = nil
	}
}

// RoundCount is the number of committed rounds.
func (h *History) RoundCount() int {
	if h.team() {
		return len(h.TeamLaps)
	}
	count := 0
	for _, track := range h.Laps {
		if len(track) > count {
			count = len(track)
		}
	}
	return count
}

// NextRoundNumber is the 1-based number of the round currently being
// entered.
func (h *History) NextRoundNumber() int {
	return h.RoundCount() + 1
}

// RoundColumns lists the committed round numbers for display, most recent
// first. Empty when nothing has been committed.
func (h *History) RoundColumns() []int {
	count := h.RoundCount()
	columns := make([]int, 0, count)
	for n := count; n >= 1; n-- {
		columns = append(columns, n)
	}
	return columns
}

// EntryAt returns the committed entry for a slot and 1-based round number.
// Slots index the player order in individual play, or 0=red 1=blue in team
// play.
func (h *History) EntryAt(slot, roundNumber int) (Entry, error) {
	idx := roundNumber - 1
	if h.team() {
		if idx < 0 || idx >= len(h.TeamLaps) {
			return Entry{}, fmt.Errorf("no round %d", roundNumber)
		}
		row := h.TeamLaps[idx]
		if slot < 0 || slot >= len(row) {
			return Entry{}, fmt.Errorf("no team slot %d", slot)
		}
		return row[slot], nil
	}
	if slot < 0 || slot >= len(h.Laps) {
		return Entry{}, fmt.Errorf("no player slot %d", slot)
	}
	track := h.Laps[slot]
	if idx < 0 || idx >= len(track) {
		return Entry{}, fmt.Errorf("no round %d", roundNumber)
	}
	return track[idx], nil
}

// AddSlot appends an empty player track, padded with zero entries for any
// rounds already committed, so a player added mid-session keeps all tracks
// the same length.
func (h *History) AddSlot() error {
	if h.team() {
		return errors.New("team history has fixed slots")
	}
	track := make(Track, h.RoundCount())
	h.Laps = append(h.Laps, track)
	return nil
}
