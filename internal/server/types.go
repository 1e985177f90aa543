package server

import (
	"strconv"
	"time"

	"tablescore/internal/score"
)

type PlayerRef struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

// Session is the live score session document. Players is the ordered
// scoring roster in individual play; its order indexes the history tracks.
// RedTeam/BlueTeam carry the rosters in team play, where the history is
// keyed per team instead.
type Session struct {
	ID        string
	GameName  string
	GameID    *uint
	Settings  score.Settings
	Players   []PlayerRef
	RedTeam   []PlayerRef
	BlueTeam  []PlayerRef
	History   *score.History
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Keys returns the buffer keys for this session in slot order: player ids
// in individual play, the fixed team keys in team play.
func (s *Session) Keys() []string {
	if s.Settings.Team() {
		return score.TeamKeys()
	}
	keys := make([]string, len(s.Players))
	for i, p := range s.Players {
		keys[i] = playerKey(p.ID)
	}
	return keys
}

func playerKey(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}

type PlayerRecord struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	Emoji     string    `json:"emoji,omitempty"`
	Color     string    `json:"color,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type GroupRecord struct {
	ID      uint   `json:"id"`
	Name    string `json:"name"`
	Emoji   string `json:"emoji,omitempty"`
	Members []uint `json:"members"`
}

// GameRecord is one catalog entry with the default settings a session of
// that game starts from.
type GameRecord struct {
	ID              uint   `json:"id"`
	Name            string `json:"name"`
	Emoji           string `json:"emoji,omitempty"`
	Gameplay        string `json:"gameplay"`
	CalculationMode string `json:"calculation_mode"`
	RoundWinner     string `json:"round_winner"`
	PointsPerRound  string `json:"points_per_round"`
	BuiltIn         bool   `json:"built_in"`
}

type GameListRecord struct {
	ID      uint   `json:"id"`
	Name    string `json:"name"`
	GameIDs []uint `json:"game_ids"`
}

type SessionSummary struct {
	ID        string    `json:"id"`
	GameName  string    `json:"game"`
	Gameplay  string    `json:"gameplay"`
	Rounds    int       `json:"rounds"`
	Players   int       `json:"players"`
	CreatedAt time.Time `json:"created_at"`
}

func timeNowUTC() time.Time {
	return time.Now().UTC()
}
