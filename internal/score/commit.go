package score

import (
	"errors"
	"fmt"
)

// ErrAllZero rejects a round where no player or team scored anything.
var ErrAllZero = errors.New("enter a score for at least one player or team")

// ShapeRound turns the buffer into one committed entry per key, in key
// order, shaped for the session's calculation mode. Keys with no input
// get a zero entry so every slot receives exactly one value per round.
// A round in which every entry is zero is rejected and nothing should be
// appended.
func ShapeRound(b *Buffer, keys []string, settings Settings) ([]Entry, error) {
	if len(keys) == 0 {
		return nil, errors.New("no players or teams to score")
	}
	entries := make([]Entry, len(keys))
	for i, key := range keys {
		entries[i] = shapeEntry(b, key, settings)
	}
	for _, e := range entries {
		if !e.Zero() {
			return entries, nil
		}
	}
	return nil, ErrAllZero
}

func shapeEntry(b *Buffer, key string, settings Settings) Entry {
	switch {
	case settings.Crown():
		return Flag(b.Flagged(key))
	case settings.MultiScores():
		return Multi(b.Values(key)...)
	default:
		values := b.Values(key)
		if len(values) == 0 {
			return Scalar(0)
		}
		return Scalar(values[0])
	}
}

// TeamKeys is the fixed key order for team-mode rounds: red first, blue
// second, matching the tuple layout of the team history track.
func TeamKeys() []string {
	return []string{KeyRedTeam, KeyBlueTeam}
}

// TeamSlot maps a team key to its tuple index in the team track.
func TeamSlot(key string) (int, error) {
	switch key {
	case KeyRedTeam:
		return 0, nil
	case KeyBlueTeam:
		return 1, nil
	}
	return 0, fmt.Errorf("unknown team key %q", key)
}
