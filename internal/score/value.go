package score

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Entry is one committed round value for one player or team slot. It is
// either a single number (including crown flags stored as 0/1) or an
// ordered list of sub-scores. The JSON form mirrors that directly: a bare
// number, or an array of numbers.
type Entry struct {
	multi  bool
	values []int
}

func Scalar(v int) Entry {
	return Entry{values: []int{v}}
}

func Multi(values ...int) Entry {
	if len(values) == 0 {
		values = []int{0}
	}
	copied := make([]int, len(values))
	copy(copied, values)
	return Entry{multi: true, values: copied}
}

// Flag encodes a crown flag as 1 (winner) or 0.
func Flag(set bool) Entry {
	if set {
		return Scalar(1)
	}
	return Scalar(0)
}

func (e Entry) IsMulti() bool {
	return e.multi
}

// Sum flattens the entry into its contribution to a running total.
func (e Entry) Sum() int {
	total := 0
	for _, v := range e.values {
		total += v
	}
	return total
}

// Display renders the entry for a single round cell. Multi-value entries
// are shown as their literal sub-scores ("3, 5"), not their sum; running
// totals use Sum instead.
func (e Entry) Display() string {
	if !e.multi {
		return strconv.Itoa(e.Sum())
	}
	parts := make([]string, len(e.values))
	for i, v := range e.values {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, ", ")
}

// Zero reports whether every component of the entry is zero.
func (e Entry) Zero() bool {
	for _, v := range e.values {
		if v != 0 {
			return false
		}
	}
	return true
}

func (e Entry) MarshalJSON() ([]byte, error) {
	if e.multi {
		return json.Marshal(e.values)
	}
	return json.Marshal(e.Sum())
}

func (e *Entry) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if strings.HasPrefix(trimmed, "[") {
		var values []int
		if err := json.Unmarshal(data, &values); err != nil {
			return fmt.Errorf("round entry: %w", err)
		}
		*e = Multi(values...)
		return nil
	}
	var value int
	if err := json.Unmarshal(data, &value); err != nil {
		return fmt.Errorf("round entry: %w", err)
	}
	*e = Scalar(value)
	return nil
}
