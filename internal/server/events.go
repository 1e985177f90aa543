package server

import (
	"encoding/json"
	"time"

	"tablescore/internal/db"

	"gorm.io/datatypes"
)

type EventPayload struct {
	Game            string `json:"game,omitempty"`
	Gameplay        string `json:"gameplay,omitempty"`
	Players         int    `json:"players,omitempty"`
	RoundNumber     int    `json:"round_number,omitempty"`
	Rounds          int    `json:"rounds,omitempty"`
	CalculationMode string `json:"calculation_mode,omitempty"`
	RoundWinner     string `json:"round_winner,omitempty"`
	PointsPerRound  string `json:"points_per_round,omitempty"`
}

// persistEvent appends one audit row for a session mutation. Events are
// best effort: a failure here never unwinds the mutation that produced it.
func (s *Server) persistEvent(sessionID, eventType string, payload EventPayload) error {
	if s.db == nil {
		return nil
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	record := db.Event{
		SessionID: sessionID,
		Type:      eventType,
		Payload:   datatypes.JSON(data),
		CreatedAt: time.Now().UTC(),
	}
	return s.db.Create(&record).Error
}
