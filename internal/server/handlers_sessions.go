package server

import (
	"errors"
	"fmt"
	"log"
	"net/http"

	"tablescore/internal/score"

	"github.com/google/uuid"
)

type createSessionRequest struct {
	GameID   *uint          `json:"game_id"`
	GameName string         `json:"game"`
	Players  []uint         `json:"players"`
	RedTeam  []uint         `json:"red_team"`
	BlueTeam []uint         `json:"blue_team"`
	Settings score.Settings `json:"settings"`
}

type settingsPatchRequest struct {
	CalculationMode *string `json:"calculation_mode"`
	RoundWinner     *string `json:"round_winner"`
	PointsPerRound  *string `json:"points_per_round"`
	HideTotalColumn *bool   `json:"hide_total_column"`
}

type commitRoundRequest struct {
	Entries map[string]roundEntryRequest `json:"entries"`
}

// roundEntryRequest carries the typed buffer state for one key: a single
// value, a sub-score list, or a crown flag, depending on the session mode.
type roundEntryRequest struct {
	Value  *int  `json:"value,omitempty"`
	Values []int `json:"values,omitempty"`
	Crown  bool  `json:"crown,omitempty"`
}

func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	var req createSessionRequest
	if err := readJSON(r.Body, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	settings := req.Settings
	settings.Normalize()
	if err := settings.Validate(); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	sess := &Session{
		ID:       uuid.NewString(),
		GameName: normalizeText(req.GameName),
		GameID:   req.GameID,
		Settings: settings,
	}
	if req.GameID != nil {
		game, err := s.store.GetGame(*req.GameID)
		if err != nil {
			writeError(w, http.StatusUnprocessableEntity, "unknown game")
			return
		}
		if sess.GameName == "" {
			sess.GameName = game.Name
		}
	}
	if sess.GameName == "" {
		writeError(w, http.StatusUnprocessableEntity, "game name is required")
		return
	}

	var err error
	if settings.Team() {
		sess.RedTeam, err = s.resolvePlayers(req.RedTeam)
		if err == nil {
			sess.BlueTeam, err = s.resolvePlayers(req.BlueTeam)
		}
		if err == nil && (len(sess.RedTeam) == 0 || len(sess.BlueTeam) == 0) {
			err = errors.New("both teams need at least one player")
		}
		sess.Players = append(append([]PlayerRef{}, sess.RedTeam...), sess.BlueTeam...)
	} else {
		sess.Players, err = s.resolvePlayers(req.Players)
		if err == nil && len(sess.Players) == 0 {
			err = errors.New("at least one player is required")
		}
	}
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	if len(sess.Players) > maxRosterSize {
		writeError(w, http.StatusUnprocessableEntity,
			fmt.Sprintf("at most %d players per session", maxRosterSize))
		return
	}

	sess.History = score.NewHistory(settings, len(sess.Players))
	if err := s.store.CreateSession(sess); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to create session")
		return
	}
	log.Printf("session created session_id=%s game=%q gameplay=%s", sess.ID, sess.GameName, settings.Gameplay)
	_ = s.persistEvent(sess.ID, "session_created", EventPayload{
		Game:     sess.GameName,
		Gameplay: settings.Gameplay,
		Players:  len(sess.Players),
	})
	writeJSON(w, http.StatusCreated, s.snapshot(sess))
}

func (s *Server) resolvePlayers(ids []uint) ([]PlayerRef, error) {
	refs := make([]PlayerRef, 0, len(ids))
	for _, id := range ids {
		rec, err := s.store.GetPlayer(id)
		if errors.Is(err, ErrNotFound) {
			return nil, fmt.Errorf("unknown player %d", id)
		}
		if err != nil {
			return nil, err
		}
		refs = append(refs, PlayerRef{ID: rec.ID, Name: rec.Name})
	}
	return refs, nil
}

func (s *Server) handleListSessions(w http.ResponseWriter, r *http.Request) {
	page, perPage := parsePagination(r, s.cfg.HistoryPerPage, s.cfg.HistoryMaxPerPage)
	sessions, total, err := s.store.ListSessions((page-1)*perPage, perPage)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list sessions")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"sessions":   sessions,
		"pagination": buildPaginationData("/api/sessions", page, perPage, total),
	})
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	sess, err := s.store.GetSession(r.PathValue("id"))
	if errors.Is(err, ErrNotFound) {
		http.NotFound(w, r)
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load session")
		return
	}
	writeJSON(w, http.StatusOK, s.snapshot(sess))
}

func (s *Server) handleUpdateSettings(w http.ResponseWriter, r *http.Request) {
	var req settingsPatchRequest
	if err := readJSON(r.Body, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	id := r.PathValue("id")
	sess, err := s.store.UpdateSession(id, func(sess *Session) error {
		updated := sess.Settings
		if req.CalculationMode != nil {
			updated.CalculationMode = *req.CalculationMode
		}
		if req.RoundWinner != nil {
			updated.RoundWinner = *req.RoundWinner
		}
		if req.PointsPerRound != nil {
			updated.PointsPerRound = *req.PointsPerRound
		}
		if req.HideTotalColumn != nil {
			updated.HideTotalColumn = *req.HideTotalColumn
		}
		if err := updated.Validate(); err != nil {
			return badInput(err)
		}
		sess.Settings = updated
		return nil
	})
	if err != nil {
		s.writeSessionError(w, r, err)
		return
	}
	_ = s.persistEvent(id, "settings_updated", EventPayload{
		CalculationMode: sess.Settings.CalculationMode,
		RoundWinner:     sess.Settings.RoundWinner,
		PointsPerRound:  sess.Settings.PointsPerRound,
	})
	s.broadcastSession(sess)
	writeJSON(w, http.StatusOK, s.snapshot(sess))
}

func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := s.store.DeleteSession(id); err != nil {
		if errors.Is(err, ErrNotFound) {
			http.NotFound(w, r)
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to delete session")
		return
	}
	s.forgetCommits(id)
	s.ws.CloseSession(id)
	log.Printf("session deleted session_id=%s", id)
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// handleCommitRound ends the current round: the typed entries are shaped
// for the session mode, an all-zero round is rejected before anything is
// written, and a valid round appends one value to every track in a single
// document write. The typed input is the client's to keep on failure;
// nothing here is cleared or retried.
func (s *Server) handleCommitRound(w http.ResponseWriter, r *http.Request) {
	var req commitRoundRequest
	if err := readJSON(r.Body, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	id := r.PathValue("id")
	var roundNumber int
	sess, err := s.store.UpdateSession(id, func(sess *Session) error {
		buf, err := buildBuffer(sess.Settings, req.Entries)
		if err != nil {
			return err
		}
		entries, err := score.ShapeRound(buf, sess.Keys(), sess.Settings)
		if err != nil {
			return err
		}
		roundNumber = sess.History.NextRoundNumber()
		return sess.History.AppendRound(entries)
	})
	if err != nil {
		s.writeSessionError(w, r, err)
		return
	}
	_ = s.persistEvent(id, "round_committed", EventPayload{
		RoundNumber: roundNumber,
		Rounds:      sess.History.RoundCount(),
	})
	s.broadcastSession(sess)

	// The interstitial hint is cosmetic and is computed only after the
	// commit has resolved; it can never block or fail the round.
	payload := s.snapshot(sess)
	payload["round_number"] = roundNumber
	payload["show_interstitial"] = s.interstitialDue(id)
	writeJSON(w, http.StatusOK, payload)
}

// buildBuffer replays the submitted entries through the entry buffer so
// commits follow the same clamping and crown rules as local input.
func buildBuffer(settings score.Settings, entries map[string]roundEntryRequest) (*score.Buffer, error) {
	buf := score.NewBuffer(settings)
	for key, entry := range entries {
		switch {
		case settings.Crown():
			if entry.Crown {
				buf.ToggleFlag(key)
			}
		case settings.MultiScores():
			if len(entry.Values) > maxSubScores {
				return nil, badInput(fmt.Errorf("at most %d scores per round", maxSubScores))
			}
			for i, v := range entry.Values {
				if v > maxSessionScores {
					return nil, badInput(fmt.Errorf("scores are capped at %d", maxSessionScores))
				}
				if i > 0 {
					buf.AddSubScore(key)
				}
				buf.SetValue(key, i, v)
			}
		default:
			if entry.Value != nil {
				if *entry.Value > maxSessionScores {
					return nil, badInput(fmt.Errorf("scores are capped at %d", maxSessionScores))
				}
				buf.SetValue(key, 0, *entry.Value)
			}
		}
	}
	return buf, nil
}

func (s *Server) handleUndoRound(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	var undone bool
	sess, err := s.store.UpdateSession(id, func(sess *Session) error {
		undone = sess.History.RoundCount() > 0
		sess.History.UndoLastRound()
		return nil
	})
	if err != nil {
		s.writeSessionError(w, r, err)
		return
	}
	if undone {
		_ = s.persistEvent(id, "round_undone", EventPayload{
			Rounds: sess.History.RoundCount(),
		})
	}
	s.broadcastSession(sess)
	writeJSON(w, http.StatusOK, s.snapshot(sess))
}

func (s *Server) handleResetRounds(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	var dropped int
	sess, err := s.store.UpdateSession(id, func(sess *Session) error {
		dropped = sess.History.RoundCount()
		sess.History.Reset()
		return nil
	})
	if err != nil {
		s.writeSessionError(w, r, err)
		return
	}
	_ = s.persistEvent(id, "rounds_reset", EventPayload{Rounds: dropped})
	s.broadcastSession(sess)
	writeJSON(w, http.StatusOK, s.snapshot(sess))
}

// badInputError marks a user-correctable input problem so the handler can
// answer 422 instead of 500.
type badInputError struct{ err error }

func badInput(err error) error { return badInputError{err: err} }

func (e badInputError) Error() string { return e.err.Error() }
func (e badInputError) Unwrap() error { return e.err }

func (s *Server) writeSessionError(w http.ResponseWriter, r *http.Request, err error) {
	var bad badInputError
	switch {
	case errors.Is(err, ErrNotFound):
		http.NotFound(w, r)
	case errors.Is(err, score.ErrAllZero), errors.As(err, &bad):
		writeError(w, http.StatusUnprocessableEntity, err.Error())
	default:
		log.Printf("session mutation failed path=%s err=%v", r.URL.Path, err)
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}
