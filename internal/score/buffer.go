package score

// Buffer holds the scores being typed for the round that has not been
// committed yet, keyed by player id in individual play or by the redTeam
// and blueTeam keys in team play. It is transient state: nothing in it is
// persisted until the round is ended, and a failed commit leaves it
// untouched so the typed input survives.
type Buffer struct {
	settings Settings
	entries  map[string]*bufferEntry
}

type bufferEntry struct {
	values []int
	flag   bool
}

func NewBuffer(settings Settings) *Buffer {
	return &Buffer{
		settings: settings,
		entries:  make(map[string]*bufferEntry),
	}
}

func (b *Buffer) entry(key string) *bufferEntry {
	e := b.entries[key]
	if e == nil {
		e = &bufferEntry{values: []int{0}}
		b.entries[key] = e
	}
	return e
}

// SetValue overwrites one sub-score for key. Index is 0 in single-score
// mode. Negative values are clamped to zero; negative scores are not
// representable in the buffer.
func (b *Buffer) SetValue(key string, index, value int) {
	if index < 0 {
		index = 0
	}
	if value < 0 {
		value = 0
	}
	e := b.entry(key)
	for len(e.values) <= index {
		e.values = append(e.values, 0)
	}
	e.values[index] = value
}

// AddSubScore appends a zero sub-score slot to key's list.
func (b *Buffer) AddSubScore(key string) {
	e := b.entry(key)
	e.values = append(e.values, 0)
}

// RemoveSubScore drops the last sub-score slot for key, never shrinking
// below one slot.
func (b *Buffer) RemoveSubScore(key string) {
	e := b.entry(key)
	if len(e.values) > 1 {
		e.values = e.values[:len(e.values)-1]
	}
}

// ToggleFlag flips the crown flag for key. In individual play at most one
// player holds the crown, so setting it clears every other flag first. In
// team play the two team flags are independent.
func (b *Buffer) ToggleFlag(key string) {
	e := b.entry(key)
	if e.flag {
		e.flag = false
		return
	}
	if !b.settings.Team() {
		for _, other := range b.entries {
			other.flag = false
		}
	}
	e.flag = true
}

func (b *Buffer) Flagged(key string) bool {
	e := b.entries[key]
	return e != nil && e.flag
}

// Values returns key's current sub-scores, or nil if nothing was entered.
func (b *Buffer) Values(key string) []int {
	e := b.entries[key]
	if e == nil {
		return nil
	}
	copied := make([]int, len(e.values))
	copy(copied, e.values)
	return copied
}

// FlaggedKeys returns every key whose crown flag is set.
func (b *Buffer) FlaggedKeys() []string {
	var keys []string
	for key, e := range b.entries {
		if e.flag {
			keys = append(keys, key)
		}
	}
	return keys
}

// Clear empties the buffer after a successful commit.
func (b *Buffer) Clear() {
	b.entries = make(map[string]*bufferEntry)
}
