package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"sync"

	"tablescore/internal/db"
	"tablescore/internal/score"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var ErrNotFound = errors.New("not found")

// Store is the data service behind the handlers. With a database
// connection it reads and writes gorm records; with a nil connection it
// keeps everything in memory, which is what the handler tests run on.
// Session mutations are read-modify-write: the whole laps column is
// rewritten on every commit, undo and reset, so a slower concurrent writer
// simply wins the row.
type Store struct {
	db *gorm.DB

	mu           sync.Mutex
	nextPlayerID uint
	nextGroupID  uint
	nextGameID   uint
	nextListID   uint
	players      map[uint]*PlayerRecord
	groups       map[uint]*GroupRecord
	games        map[uint]*GameRecord
	lists        map[uint]*GameListRecord
	sessions     map[string]*Session
	sessionOrder []string
}

func NewStore(conn *gorm.DB) *Store {
	return &Store{
		db:           conn,
		nextPlayerID: 1,
		nextGroupID:  1,
		nextGameID:   1,
		nextListID:   1,
		players:      make(map[uint]*PlayerRecord),
		groups:       make(map[uint]*GroupRecord),
		games:        make(map[uint]*GameRecord),
		lists:        make(map[uint]*GameListRecord),
		sessions:     make(map[string]*Session),
	}
}

// --- players ---

func (s *Store) CreatePlayer(rec *PlayerRecord) error {
	if s.db == nil {
		s.mu.Lock()
		defer s.mu.Unlock()
		for _, existing := range s.players {
			if existing.Name == rec.Name {
				return fmt.Errorf("player %q already exists", rec.Name)
			}
		}
		rec.ID = s.nextPlayerID
		s.nextPlayerID++
		rec.CreatedAt = timeNowUTC()
		rec.UpdatedAt = rec.CreatedAt
		copied := *rec
		s.players[rec.ID] = &copied
		return nil
	}
	row := db.Player{Name: rec.Name, Emoji: rec.Emoji, Color: rec.Color}
	if err := s.db.Create(&row).Error; err != nil {
		return err
	}
	rec.ID = row.ID
	rec.CreatedAt = row.CreatedAt
	rec.UpdatedAt = row.UpdatedAt
	return nil
}

func (s *Store) ListPlayers() ([]PlayerRecord, error) {
	if s.db == nil {
		s.mu.Lock()
		defer s.mu.Unlock()
		list := make([]PlayerRecord, 0, len(s.players))
		for _, rec := range s.players {
			list = append(list, *rec)
		}
		sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
		return list, nil
	}
	var rows []db.Player
	if err := s.db.Order("id").Find(&rows).Error; err != nil {
		return nil, err
	}
	list := make([]PlayerRecord, len(rows))
	for i, row := range rows {
		list[i] = playerFromRow(row)
	}
	return list, nil
}

func (s *Store) GetPlayer(id uint) (*PlayerRecord, error) {
	if s.db == nil {
		s.mu.Lock()
		defer s.mu.Unlock()
		rec, ok := s.players[id]
		if !ok {
			return nil, ErrNotFound
		}
		copied := *rec
		return &copied, nil
	}
	var row db.Player
	if err := s.db.First(&row, id).Error; err != nil {
		return nil, mapNotFound(err)
	}
	rec := playerFromRow(row)
	return &rec, nil
}

func (s *Store) UpdatePlayer(rec *PlayerRecord) error {
	if s.db == nil {
		s.mu.Lock()
		defer s.mu.Unlock()
		existing, ok := s.players[rec.ID]
		if !ok {
			return ErrNotFound
		}
		existing.Name = rec.Name
		existing.Emoji = rec.Emoji
		existing.Color = rec.Color
		existing.UpdatedAt = timeNowUTC()
		*rec = *existing
		return nil
	}
	result := s.db.Model(&db.Player{}).Where("id = ?", rec.ID).Updates(map[string]any{
		"name":  rec.Name,
		"emoji": rec.Emoji,
		"color": rec.Color,
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) DeletePlayer(id uint) error {
	if s.db == nil {
		s.mu.Lock()
		defer s.mu.Unlock()
		if _, ok := s.players[id]; !ok {
			return ErrNotFound
		}
		delete(s.players, id)
		return nil
	}
	result := s.db.Delete(&db.Player{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func playerFromRow(row db.Player) PlayerRecord {
	return PlayerRecord{
		ID:        row.ID,
		Name:      row.Name,
		Emoji:     row.Emoji,
		Color:     row.Color,
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}
}

// --- groups ---

func (s *Store) CreateGroup(rec *GroupRecord) error {
	if s.db == nil {
		s.mu.Lock()
		defer s.mu.Unlock()
		rec.ID = s.nextGroupID
		s.nextGroupID++
		copied := *rec
		s.groups[rec.ID] = &copied
		return nil
	}
	members, err := json.Marshal(idsOrEmpty(rec.Members))
	if err != nil {
		return err
	}
	row := db.Group{Name: rec.Name, Emoji: rec.Emoji, Members: datatypes.JSON(members)}
	if err := s.db.Create(&row).Error; err != nil {
		return err
	}
	rec.ID = row.ID
	return nil
}

func (s *Store) ListGroups() ([]GroupRecord, error) {
	if s.db == nil {
		s.mu.Lock()
		defer s.mu.Unlock()
		list := make([]GroupRecord, 0, len(s.groups))
		for _, rec := range s.groups {
			list = append(list, *rec)
		}
		sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
		return list, nil
	}
	var rows []db.Group
	if err := s.db.Order("id").Find(&rows).Error; err != nil {
		return nil, err
	}
	list := make([]GroupRecord, len(rows))
	for i, row := range rows {
		rec, err := groupFromRow(row)
		if err != nil {
			return nil, err
		}
		list[i] = rec
	}
	return list, nil
}

func (s *Store) GetGroup(id uint) (*GroupRecord, error) {
	if s.db == nil {
		s.mu.Lock()
		defer s.mu.Unlock()
		rec, ok := s.groups[id]
		if !ok {
			return nil, ErrNotFound
		}
		copied := *rec
		return &copied, nil
	}
	var row db.Group
	if err := s.db.First(&row, id).Error; err != nil {
		return nil, mapNotFound(err)
	}
	rec, err := groupFromRow(row)
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func (s *Store) UpdateGroup(rec *GroupRecord) error {
	if s.db == nil {
		s.mu.Lock()
		defer s.mu.Unlock()
		if _, ok := s.groups[rec.ID]; !ok {
			return ErrNotFound
		}
		copied := *rec
		s.groups[rec.ID] = &copied
		return nil
	}
	members, err := json.Marshal(idsOrEmpty(rec.Members))
	if err != nil {
		return err
	}
	result := s.db.Model(&db.Group{}).Where("id = ?", rec.ID).Updates(map[string]any{
		"name":    rec.Name,
		"emoji":   rec.Emoji,
		"members": datatypes.JSON(members),
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) DeleteGroup(id uint) error {
	if s.db == nil {
		s.mu.Lock()
		defer s.mu.Unlock()
		if _, ok := s.groups[id]; !ok {
			return ErrNotFound
		}
		delete(s.groups, id)
		return nil
	}
	result := s.db.Delete(&db.Group{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func groupFromRow(row db.Group) (GroupRecord, error) {
	rec := GroupRecord{ID: row.ID, Name: row.Name, Emoji: row.Emoji}
	if len(row.Members) > 0 {
		if err := json.Unmarshal(row.Members, &rec.Members); err != nil {
			return rec, fmt.Errorf("group %d members: %w", row.ID, err)
		}
	}
	return rec, nil
}

// --- games ---

func (s *Store) CreateGame(rec *GameRecord) error {
	if s.db == nil {
		s.mu.Lock()
		defer s.mu.Unlock()
		for _, existing := range s.games {
			if existing.Name == rec.Name {
				return fmt.Errorf("game %q already exists", rec.Name)
			}
		}
		rec.ID = s.nextGameID
		s.nextGameID++
		copied := *rec
		s.games[rec.ID] = &copied
		return nil
	}
	row := gameToRow(rec)
	if err := s.db.Create(&row).Error; err != nil {
		return err
	}
	rec.ID = row.ID
	return nil
}

func (s *Store) ListGames() ([]GameRecord, error) {
	if s.db == nil {
		s.mu.Lock()
		defer s.mu.Unlock()
		list := make([]GameRecord, 0, len(s.games))
		for _, rec := range s.games {
			list = append(list, *rec)
		}
		sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
		return list, nil
	}
	var rows []db.Game
	if err := s.db.Order("name").Find(&rows).Error; err != nil {
		return nil, err
	}
	list := make([]GameRecord, len(rows))
	for i, row := range rows {
		list[i] = gameFromRow(row)
	}
	return list, nil
}

func (s *Store) GetGame(id uint) (*GameRecord, error) {
	if s.db == nil {
		s.mu.Lock()
		defer s.mu.Unlock()
		rec, ok := s.games[id]
		if !ok {
			return nil, ErrNotFound
		}
		copied := *rec
		return &copied, nil
	}
	var row db.Game
	if err := s.db.First(&row, id).Error; err != nil {
		return nil, mapNotFound(err)
	}
	rec := gameFromRow(row)
	return &rec, nil
}

func (s *Store) UpdateGame(rec *GameRecord) error {
	if s.db == nil {
		s.mu.Lock()
		defer s.mu.Unlock()
		existing, ok := s.games[rec.ID]
		if !ok {
			return ErrNotFound
		}
		rec.BuiltIn = existing.BuiltIn
		copied := *rec
		s.games[rec.ID] = &copied
		return nil
	}
	result := s.db.Model(&db.Game{}).Where("id = ?", rec.ID).Updates(map[string]any{
		"name":             rec.Name,
		"emoji":            rec.Emoji,
		"gameplay":         rec.Gameplay,
		"calculation_mode": rec.CalculationMode,
		"round_winner":     rec.RoundWinner,
		"points_per_round": rec.PointsPerRound,
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) DeleteGame(id uint) error {
	if s.db == nil {
		s.mu.Lock()
		defer s.mu.Unlock()
		if _, ok := s.games[id]; !ok {
			return ErrNotFound
		}
		delete(s.games, id)
		return nil
	}
	result := s.db.Delete(&db.Game{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func gameToRow(rec *GameRecord) db.Game {
	return db.Game{
		Name:            rec.Name,
		Emoji:           rec.Emoji,
		Gameplay:        rec.Gameplay,
		CalculationMode: rec.CalculationMode,
		RoundWinner:     rec.RoundWinner,
		PointsPerRound:  rec.PointsPerRound,
		BuiltIn:         rec.BuiltIn,
	}
}

func gameFromRow(row db.Game) GameRecord {
	return GameRecord{
		ID:              row.ID,
		Name:            row.Name,
		Emoji:           row.Emoji,
		Gameplay:        row.Gameplay,
		CalculationMode: row.CalculationMode,
		RoundWinner:     row.RoundWinner,
		PointsPerRound:  row.PointsPerRound,
		BuiltIn:         row.BuiltIn,
	}
}

// --- game lists ---

func (s *Store) CreateList(rec *GameListRecord) error {
	if s.db == nil {
		s.mu.Lock()
		defer s.mu.Unlock()
		rec.ID = s.nextListID
		s.nextListID++
		copied := *rec
		s.lists[rec.ID] = &copied
		return nil
	}
	ids, err := json.Marshal(idsOrEmpty(rec.GameIDs))
	if err != nil {
		return err
	}
	row := db.GameList{Name: rec.Name, GameIDs: datatypes.JSON(ids)}
	if err := s.db.Create(&row).Error; err != nil {
		return err
	}
	rec.ID = row.ID
	return nil
}

func (s *Store) ListLists() ([]GameListRecord, error) {
	if s.db == nil {
		s.mu.Lock()
		defer s.mu.Unlock()
		list := make([]GameListRecord, 0, len(s.lists))
		for _, rec := range s.lists {
			list = append(list, *rec)
		}
		sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
		return list, nil
	}
	var rows []db.GameList
	if err := s.db.Order("id").Find(&rows).Error; err != nil {
		return nil, err
	}
	list := make([]GameListRecord, len(rows))
	for i, row := range rows {
		rec := GameListRecord{ID: row.ID, Name: row.Name}
		if len(row.GameIDs) > 0 {
			if err := json.Unmarshal(row.GameIDs, &rec.GameIDs); err != nil {
				return nil, fmt.Errorf("game list %d: %w", row.ID, err)
			}
		}
		list[i] = rec
	}
	return list, nil
}

func (s *Store) GetList(id uint) (GameListRecord, error) {
	if s.db == nil {
		s.mu.Lock()
		defer s.mu.Unlock()
		rec, ok := s.lists[id]
		if !ok {
			return GameListRecord{}, ErrNotFound
		}
		return *rec, nil
	}
	var row db.GameList
	if err := s.db.First(&row, id).Error; err != nil {
		return GameListRecord{}, mapNotFound(err)
	}
	rec := GameListRecord{ID: row.ID, Name: row.Name}
	if len(row.GameIDs) > 0 {
		if err := json.Unmarshal(row.GameIDs, &rec.GameIDs); err != nil {
			return GameListRecord{}, fmt.Errorf("game list %d: %w", row.ID, err)
		}
	}
	return rec, nil
}

func (s *Store) UpdateList(rec *GameListRecord) error {
	if s.db == nil {
		s.mu.Lock()
		defer s.mu.Unlock()
		if _, ok := s.lists[rec.ID]; !ok {
			return ErrNotFound
		}
		copied := *rec
		s.lists[rec.ID] = &copied
		return nil
	}
	ids, err := json.Marshal(idsOrEmpty(rec.GameIDs))
	if err != nil {
		return err
	}
	result := s.db.Model(&db.GameList{}).Where("id = ?", rec.ID).Updates(map[string]any{
		"name":     rec.Name,
		"game_ids": datatypes.JSON(ids),
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) DeleteList(id uint) error {
	if s.db == nil {
		s.mu.Lock()
		defer s.mu.Unlock()
		if _, ok := s.lists[id]; !ok {
			return ErrNotFound
		}
		delete(s.lists, id)
		return nil
	}
	result := s.db.Delete(&db.GameList{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// --- sessions ---

func (s *Store) CreateSession(sess *Session) error {
	sess.CreatedAt = timeNowUTC()
	sess.UpdatedAt = sess.CreatedAt
	if s.db == nil {
		s.mu.Lock()
		defer s.mu.Unlock()
		if _, ok := s.sessions[sess.ID]; ok {
			return fmt.Errorf("session %s already exists", sess.ID)
		}
		s.sessions[sess.ID] = sess
		s.sessionOrder = append(s.sessionOrder, sess.ID)
		return nil
	}
	row, err := sessionToRow(sess)
	if err != nil {
		return err
	}
	return s.db.Create(&row).Error
}

func (s *Store) GetSession(id string) (*Session, error) {
	if s.db == nil {
		s.mu.Lock()
		defer s.mu.Unlock()
		sess, ok := s.sessions[id]
		if !ok {
			return nil, ErrNotFound
		}
		return sess, nil
	}
	var row db.Session
	if err := s.db.First(&row, "id = ?", id).Error; err != nil {
		return nil, mapNotFound(err)
	}
	return sessionFromRow(row)
}

// UpdateSession reads the session document, applies the mutation and
// writes the whole document back. An error from apply leaves the stored
// document untouched.
func (s *Store) UpdateSession(id string, apply func(*Session) error) (*Session, error) {
	if s.db == nil {
		s.mu.Lock()
		defer s.mu.Unlock()
		sess, ok := s.sessions[id]
		if !ok {
			return nil, ErrNotFound
		}
		if err := apply(sess); err != nil {
			return nil, err
		}
		sess.UpdatedAt = timeNowUTC()
		return sess, nil
	}
	var row db.Session
	if err := s.db.First(&row, "id = ?", id).Error; err != nil {
		return nil, mapNotFound(err)
	}
	sess, err := sessionFromRow(row)
	if err != nil {
		return nil, err
	}
	if err := apply(sess); err != nil {
		return nil, err
	}
	sess.UpdatedAt = timeNowUTC()
	updated, err := sessionToRow(sess)
	if err != nil {
		return nil, err
	}
	updated.CreatedAt = row.CreatedAt
	if err := s.db.Save(&updated).Error; err != nil {
		return nil, err
	}
	return sess, nil
}

func (s *Store) ListSessions(offset, limit int) ([]SessionSummary, int64, error) {
	if s.db == nil {
		s.mu.Lock()
		defer s.mu.Unlock()
		total := int64(len(s.sessionOrder))
		summaries := make([]SessionSummary, 0, limit)
		// Newest first.
		for i := len(s.sessionOrder) - 1 - offset; i >= 0 && len(summaries) < limit; i-- {
			sess := s.sessions[s.sessionOrder[i]]
			summaries = append(summaries, summarize(sess))
		}
		return summaries, total, nil
	}
	var total int64
	if err := s.db.Model(&db.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var rows []db.Session
	if err := s.db.Order("created_at desc").Offset(offset).Limit(limit).Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	summaries := make([]SessionSummary, 0, len(rows))
	for _, row := range rows {
		sess, err := sessionFromRow(row)
		if err != nil {
			return nil, 0, err
		}
		summaries = append(summaries, summarize(sess))
	}
	return summaries, total, nil
}

func (s *Store) DeleteSession(id string) error {
	if s.db == nil {
		s.mu.Lock()
		defer s.mu.Unlock()
		if _, ok := s.sessions[id]; !ok {
			return ErrNotFound
		}
		delete(s.sessions, id)
		for i, existing := range s.sessionOrder {
			if existing == id {
				s.sessionOrder = append(s.sessionOrder[:i], s.sessionOrder[i+1:]...)
				break
			}
		}
		return nil
	}
	if err := s.db.Where("session_id = ?", id).Delete(&db.Event{}).Error; err != nil {
		return err
	}
	result := s.db.Delete(&db.Session{ID: id})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func summarize(sess *Session) SessionSummary {
	players := len(sess.Players)
	if sess.Settings.Team() {
		players = len(sess.RedTeam) + len(sess.BlueTeam)
	}
	return SessionSummary{
		ID:        sess.ID,
		GameName:  sess.GameName,
		Gameplay:  sess.Settings.Gameplay,
		Rounds:    sess.History.RoundCount(),
		Players:   players,
		CreatedAt: sess.CreatedAt,
	}
}

func sessionToRow(sess *Session) (db.Session, error) {
	row := db.Session{
		ID:              sess.ID,
		GameName:        sess.GameName,
		GameID:          sess.GameID,
		Gameplay:        sess.Settings.Gameplay,
		CalculationMode: sess.Settings.CalculationMode,
		RoundWinner:     sess.Settings.RoundWinner,
		PointsPerRound:  sess.Settings.PointsPerRound,
		HideTotalColumn: sess.Settings.HideTotalColumn,
		CreatedAt:       sess.CreatedAt,
		UpdatedAt:       sess.UpdatedAt,
	}
	for _, field := range []struct {
		dest  *datatypes.JSON
		value any
	}{
		{&row.Players, sess.Players},
		{&row.RedTeam, sess.RedTeam},
		{&row.BlueTeam, sess.BlueTeam},
		{&row.Laps, sess.History.Laps},
		{&row.TeamLaps, sess.History.TeamLaps},
	} {
		data, err := json.Marshal(field.value)
		if err != nil {
			return row, err
		}
		*field.dest = datatypes.JSON(data)
	}
	return row, nil
}

func sessionFromRow(row db.Session) (*Session, error) {
	sess := &Session{
		ID:       row.ID,
		GameName: row.GameName,
		GameID:   row.GameID,
		Settings: score.Settings{
			Gameplay:        row.Gameplay,
			CalculationMode: row.CalculationMode,
			RoundWinner:     row.RoundWinner,
			PointsPerRound:  row.PointsPerRound,
			HideTotalColumn: row.HideTotalColumn,
		},
		History:   &score.History{Gameplay: row.Gameplay},
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}
	for _, field := range []struct {
		src  datatypes.JSON
		dest any
	}{
		{row.Players, &sess.Players},
		{row.RedTeam, &sess.RedTeam},
		{row.BlueTeam, &sess.BlueTeam},
		{row.Laps, &sess.History.Laps},
		{row.TeamLaps, &sess.History.TeamLaps},
	} {
		if len(field.src) == 0 {
			continue
		}
		if err := json.Unmarshal(field.src, field.dest); err != nil {
			return nil, fmt.Errorf("session %s: %w", row.ID, err)
		}
	}
	if !sess.Settings.Team() && sess.History.Laps == nil {
		sess.History.Laps = make([]score.Track, len(sess.Players))
	}
	return sess, nil
}

func idsOrEmpty(ids []uint) []uint {
	if ids == nil {
		return []uint{}
	}
	return ids
}

func mapNotFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
