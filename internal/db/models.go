package db

import (
	"time"

	"gorm.io/datatypes"
)

type Player struct {
	ID        uint      `gorm:"primaryKey"`
	Name      string    `gorm:"size:64;not null;uniqueIndex"`
	Emoji     string    `gorm:"size:16"`
	Color     string    `gorm:"size:16"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

type Group struct {
	ID        uint           `gorm:"primaryKey"`
	Name      string         `gorm:"size:64;not null;uniqueIndex"`
	Emoji     string         `gorm:"size:16"`
	Members   datatypes.JSON `gorm:"type:jsonb;not null"`
	CreatedAt time.Time      `gorm:"not null"`
	UpdatedAt time.Time      `gorm:"not null"`
}

// Game is a catalog entry: a game template carrying the default session
// settings for that game. BuiltIn rows come from the seeder and survive
// catalog edits.
type Game struct {
	ID              uint      `gorm:"primaryKey"`
	Name            string    `gorm:"size:64;not null;uniqueIndex"`
	Emoji           string    `gorm:"size:16"`
	Gameplay        string    `gorm:"size:16;not null"`
	CalculationMode string    `gorm:"size:16;not null"`
	RoundWinner     string    `gorm:"size:16;not null"`
	PointsPerRound  string    `gorm:"size:16;not null"`
	BuiltIn         bool      `gorm:"not null;default:false"`
	CreatedAt       time.Time `gorm:"not null"`
	UpdatedAt       time.Time `gorm:"not null"`
}

type GameList struct {
	ID        uint           `gorm:"primaryKey"`
	Name      string         `gorm:"size:64;not null;uniqueIndex"`
	GameIDs   datatypes.JSON `gorm:"type:jsonb;not null"`
	CreatedAt time.Time      `gorm:"not null"`
	UpdatedAt time.Time      `gorm:"not null"`
}

// Session is the score session document. The round history lives in the
// Laps/TeamLaps JSONB columns and every scoring mutation overwrites the
// whole column, so the row is the unit of mutation and concurrent writers
// are last-write-wins.
type Session struct {
	ID              string         `gorm:"primaryKey;size:64"`
	GameName        string         `gorm:"size:64;not null"`
	GameID          *uint          `gorm:"index"`
	Gameplay        string         `gorm:"size:16;not null"`
	CalculationMode string         `gorm:"size:16;not null"`
	RoundWinner     string         `gorm:"size:16;not null"`
	PointsPerRound  string         `gorm:"size:16;not null"`
	HideTotalColumn bool           `gorm:"not null;default:false"`
	Players         datatypes.JSON `gorm:"type:jsonb"`
	RedTeam         datatypes.JSON `gorm:"type:jsonb"`
	BlueTeam        datatypes.JSON `gorm:"type:jsonb"`
	Laps            datatypes.JSON `gorm:"type:jsonb"`
	TeamLaps        datatypes.JSON `gorm:"type:jsonb"`
	CreatedAt       time.Time      `gorm:"not null"`
	UpdatedAt       time.Time      `gorm:"not null"`
	Events          []Event        `gorm:"constraint:OnDelete:CASCADE"`
}

// Event is the audit trail for a session: one row per commit, undo, reset,
// settings change and lifecycle action, with a JSONB payload.
type Event struct {
	ID        uint           `gorm:"primaryKey"`
	SessionID string         `gorm:"index;size:64;not null"`
	Type      string         `gorm:"size:64;not null"`
	Payload   datatypes.JSON `gorm:"type:jsonb;not null"`
	CreatedAt time.Time      `gorm:"not null"`
}
