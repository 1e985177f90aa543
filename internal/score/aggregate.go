package score

// Aggregation is pure derivation over the committed history: the same
// history and settings always produce the same outputs, so display code
// can recompute freely on every pushed snapshot.

// PlayerTotal sums every committed entry in the player's track, flattening
// multi-value rounds. In team play the player tracks only exist as a
// legacy fallback; use TeamTotal.
func (h *History) PlayerTotal(slot int) int {
	if slot < 0 || slot >= len(h.Laps) {
		return 0
	}
	total := 0
	for _, e := range h.Laps[slot] {
		total += e.Sum()
	}
	return total
}

// TeamTotal sums a team's entries across all committed rounds. Sessions
// recorded before team tracks existed have scores only in the member
// players' individual tracks; for those the total falls back to summing
// the members' totals.
func (h *History) TeamTotal(teamSlot int, memberSlots []int) int {
	if len(h.TeamLaps) == 0 {
		return h.teamTotalFallback(memberSlots)
	}
	total := 0
	for _, row := range h.TeamLaps {
		if teamSlot >= 0 && teamSlot < len(row) {
			total += row[teamSlot].Sum()
		}
	}
	return total
}

// teamTotalFallback is the legacy path for sessions predating team tracks.
func (h *History) teamTotalFallback(memberSlots []int) int {
	total := 0
	for _, slot := range memberSlots {
		total += h.PlayerTotal(slot)
	}
	return total
}

// RoundDisplay renders one round cell for a slot: multi-value rounds show
// their literal sub-scores comma-joined rather than summed, and crown
// rounds show a trophy glyph. Missing entries render as a dash.
func (h *History) RoundDisplay(settings Settings, slot, roundNumber int) string {
	e, err := h.EntryAt(slot, roundNumber)
	if err != nil {
		return "-"
	}
	return CrownDisplay(e, settings)
}

// CrownDisplay renders an entry under the session's calculation mode: in
// crown scoring a 1 is the trophy and anything else a dash; otherwise the
// entry's literal display value.
func CrownDisplay(e Entry, settings Settings) string {
	if settings.Crown() {
		if e.Sum() == 1 {
			return "\U0001F3C6"
		}
		return "-"
	}
	return e.Display()
}

// RoundWinners returns the slots that won the given round under the
// session's round-winner rule (highest or lowest flattened value). Ties
// return every tied slot.
func (h *History) RoundWinners(settings Settings, roundNumber int) []int {
	slots := len(h.Laps)
	if h.team() {
		slots = 2
	}
	if slots == 0 || roundNumber < 1 || roundNumber > h.RoundCount() {
		return nil
	}
	best := 0
	var winners []int
	for slot := 0; slot < slots; slot++ {
		e, err := h.EntryAt(slot, roundNumber)
		if err != nil {
			continue
		}
		value := e.Sum()
		if len(winners) == 0 {
			best = value
			winners = []int{slot}
			continue
		}
		switch {
		case value == best:
			winners = append(winners, slot)
		case settings.RoundWinner == WinnerLowest && value < best:
			best = value
			winners = []int{slot}
		case settings.RoundWinner != WinnerLowest && value > best:
			best = value
			winners = []int{slot}
		}
	}
	return winners
}

// Totals returns the running total for every player slot in track order.
func (h *History) Totals() []int {
	totals := make([]int, len(h.Laps))
	for i := range h.Laps {
		totals[i] = h.PlayerTotal(i)
	}
	return totals
}
