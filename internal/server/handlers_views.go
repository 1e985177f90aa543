package server

import (
	"errors"
	"log"
	"net/http"

	"tablescore/internal/web"
)

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := web.Home().Render(r.Context(), w); err != nil {
		log.Printf("render home failed: %v", err)
	}
}

func (s *Server) handleSessionView(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if _, err := s.store.GetSession(id); err != nil {
		if errors.Is(err, ErrNotFound) {
			http.NotFound(w, r)
			return
		}
		http.Error(w, "failed to load session", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := web.Scoreboard(id).Render(r.Context(), w); err != nil {
		log.Printf("render scoreboard failed: %v", err)
	}
}

func (s *Server) handleHistoryView(w http.ResponseWriter, r *http.Request) {
	page, perPage := parsePagination(r, s.cfg.HistoryPerPage, s.cfg.HistoryMaxPerPage)
	sessions, total, err := s.store.ListSessions((page-1)*perPage, perPage)
	if err != nil {
		http.Error(w, "failed to list sessions", http.StatusInternalServerError)
		return
	}
	items := make([]web.SessionItem, len(sessions))
	for i, sess := range sessions {
		items[i] = web.SessionItem{
			ID:       sess.ID,
			Game:     sess.GameName,
			Gameplay: sess.Gameplay,
			Rounds:   sess.Rounds,
			Players:  sess.Players,
			PlayedAt: sess.CreatedAt.Format("2006-01-02 15:04"),
		}
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := web.History(items, buildPaginationData("/history", page, perPage, total)).Render(r.Context(), w); err != nil {
		log.Printf("render history failed: %v", err)
	}
}

func (s *Server) handleCatalogView(w http.ResponseWriter, r *http.Request) {
	games, err := s.store.ListGames()
	if err != nil {
		http.Error(w, "failed to list games", http.StatusInternalServerError)
		return
	}
	items := make([]web.GameItem, len(games))
	for i, game := range games {
		items[i] = web.GameItem{
			Name:            game.Name,
			Emoji:           game.Emoji,
			Gameplay:        game.Gameplay,
			CalculationMode: game.CalculationMode,
			PointsPerRound:  game.PointsPerRound,
			BuiltIn:         game.BuiltIn,
		}
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := web.Catalog(items).Render(r.Context(), w); err != nil {
		log.Printf("render catalog failed: %v", err)
	}
}
