package server

import (
	"tablescore/internal/score"
)

// snapshot is the full display state for one session. The same document is
// returned from the REST reads and pushed to every websocket subscriber
// after a mutation, so all open scoreboards recompute from identical
// input.
func (s *Server) snapshot(sess *Session) map[string]any {
	h := sess.History
	columns := h.RoundColumns()

	var rows []map[string]any
	if sess.Settings.Team() {
		memberSlots := func(team []PlayerRef) []int {
			slots := make([]int, 0, len(team))
			for _, member := range team {
				for i, p := range sess.Players {
					if p.ID == member.ID {
						slots = append(slots, i)
						break
					}
				}
			}
			return slots
		}
		teams := []struct {
			key     string
			name    string
			members []PlayerRef
		}{
			{score.KeyRedTeam, "Red", sess.RedTeam},
			{score.KeyBlueTeam, "Blue", sess.BlueTeam},
		}
		for slot, team := range teams {
			rows = append(rows, map[string]any{
				"key":     team.key,
				"name":    team.name,
				"members": team.members,
				"total":   h.TeamTotal(slot, memberSlots(team.members)),
				"rounds":  roundCells(h, sess.Settings, slot, columns),
			})
		}
	} else {
		for slot, player := range sess.Players {
			rows = append(rows, map[string]any{
				"key":    playerKey(player.ID),
				"name":   player.Name,
				"total":  h.PlayerTotal(slot),
				"rounds": roundCells(h, sess.Settings, slot, columns),
			})
		}
	}

	return map[string]any{
		"session_id":        sess.ID,
		"game":              sess.GameName,
		"settings":          sess.Settings,
		"players":           sess.Players,
		"red_team":          sess.RedTeam,
		"blue_team":         sess.BlueTeam,
		"round_columns":     columns,
		"next_round_number": h.NextRoundNumber(),
		"rows":              rows,
		"created_at":        sess.CreatedAt,
		"updated_at":        sess.UpdatedAt,
	}
}

// roundCells renders one row's cells aligned with the round columns
// (most recent first).
func roundCells(h *score.History, settings score.Settings, slot int, columns []int) []string {
	cells := make([]string, len(columns))
	for i, roundNumber := range columns {
		cells[i] = h.RoundDisplay(settings, slot, roundNumber)
	}
	return cells
}
