package server

import (
	"errors"
	"net/http"

	"tablescore/internal/score"
)

type gameRequest struct {
	Name            string `json:"name"`
	Emoji           string `json:"emoji"`
	Gameplay        string `json:"gameplay"`
	CalculationMode string `json:"calculation_mode"`
	RoundWinner     string `json:"round_winner"`
	PointsPerRound  string `json:"points_per_round"`
}

type listRequest struct {
	Name    string `json:"name"`
	GameIDs []uint `json:"game_ids"`
}

// gameSettings normalizes and validates the default settings carried by a
// catalog entry.
func (req gameRequest) gameSettings() (score.Settings, error) {
	settings := score.Settings{
		Gameplay:        req.Gameplay,
		CalculationMode: req.CalculationMode,
		RoundWinner:     req.RoundWinner,
		PointsPerRound:  req.PointsPerRound,
	}
	settings.Normalize()
	if err := settings.Validate(); err != nil {
		return settings, err
	}
	return settings, nil
}

func (s *Server) handleCreateGame(w http.ResponseWriter, r *http.Request) {
	var req gameRequest
	if err := readJSON(r.Body, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	name, err := validateName("game name", req.Name)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	settings, err := req.gameSettings()
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	rec := GameRecord{
		Name:            name,
		Emoji:           req.Emoji,
		Gameplay:        settings.Gameplay,
		CalculationMode: settings.CalculationMode,
		RoundWinner:     settings.RoundWinner,
		PointsPerRound:  settings.PointsPerRound,
	}
	if err := s.store.CreateGame(&rec); err != nil {
		writeError(w, http.StatusConflict, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, rec)
}

func (s *Server) handleListGames(w http.ResponseWriter, r *http.Request) {
	games, err := s.store.ListGames()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list games")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"games": games})
}

func (s *Server) handleGetGame(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		http.NotFound(w, r)
		return
	}
	rec, err := s.store.GetGame(id)
	if errors.Is(err, ErrNotFound) {
		http.NotFound(w, r)
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load game")
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (s *Server) handleUpdateGame(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		http.NotFound(w, r)
		return
	}
	var req gameRequest
	if err := readJSON(r.Body, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	name, err := validateName("game name", req.Name)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	settings, err := req.gameSettings()
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	rec := GameRecord{
		ID:              id,
		Name:            name,
		Emoji:           req.Emoji,
		Gameplay:        settings.Gameplay,
		CalculationMode: settings.CalculationMode,
		RoundWinner:     settings.RoundWinner,
		PointsPerRound:  settings.PointsPerRound,
	}
	if err := s.store.UpdateGame(&rec); err != nil {
		if errors.Is(err, ErrNotFound) {
			http.NotFound(w, r)
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to update game")
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (s *Server) handleDeleteGame(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		http.NotFound(w, r)
		return
	}
	if err := s.store.DeleteGame(id); err != nil {
		if errors.Is(err, ErrNotFound) {
			http.NotFound(w, r)
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to delete game")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (s *Server) handleCreateList(w http.ResponseWriter, r *http.Request) {
	var req listRequest
	if err := readJSON(r.Body, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	name, err := validateName("list name", req.Name)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	rec := GameListRecord{Name: name, GameIDs: req.GameIDs}
	if err := s.store.CreateList(&rec); err != nil {
		writeError(w, http.StatusConflict, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, rec)
}

func (s *Server) handleListLists(w http.ResponseWriter, r *http.Request) {
	lists, err := s.store.ListLists()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list game lists")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"lists": lists})
}

func (s *Server) handleGetList(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		http.NotFound(w, r)
		return
	}
	rec, err := s.store.GetList(id)
	if errors.Is(err, ErrNotFound) {
		http.NotFound(w, r)
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load game list")
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (s *Server) handleUpdateList(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		http.NotFound(w, r)
		return
	}
	var req listRequest
	if err := readJSON(r.Body, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	name, err := validateName("list name", req.Name)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	rec := GameListRecord{ID: id, Name: name, GameIDs: req.GameIDs}
	if err := s.store.UpdateList(&rec); err != nil {
		if errors.Is(err, ErrNotFound) {
			http.NotFound(w, r)
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to update game list")
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (s *Server) handleDeleteList(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		http.NotFound(w, r)
		return
	}
	if err := s.store.DeleteList(id); err != nil {
		if errors.Is(err, ErrNotFound) {
			http.NotFound(w, r)
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to delete game list")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
