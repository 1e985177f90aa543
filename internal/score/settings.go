package score

import (
	"errors"
	"fmt"
)

const (
	GameplayIndividual = "individual"
	GameplayTeam       = "team"

	CalcNoPoints  = "no-points"
	CalcPoints    = "points"
	CalcPenalized = "penalized"

	WinnerHighest = "highest"
	WinnerLowest  = "lowest"

	PerRoundSingle   = "single"
	PerRoundMultiple = "multiple"
)

// Team history tracks are keyed by these literal buffer keys rather than
// player ids.
const (
	KeyRedTeam  = "redTeam"
	KeyBlueTeam = "blueTeam"
)

// Settings select how rounds are entered and aggregated for one session.
// They are fixed at session creation and change only through an explicit
// settings update, never as a side effect of scoring.
type Settings struct {
	Gameplay        string `json:"gameplay"`
	CalculationMode string `json:"calculation_mode"`
	RoundWinner     string `json:"round_winner"`
	PointsPerRound  string `json:"points_per_round"`
	HideTotalColumn bool   `json:"hide_total_column"`
}

// Normalize fills empty fields with their defaults. The round-winner
// default depends on the calculation mode: penalty games are won by the
// lowest score.
func (s *Settings) Normalize() {
	if s.Gameplay == "" {
		s.Gameplay = GameplayIndividual
	}
	if s.CalculationMode == "" {
		s.CalculationMode = CalcPoints
	}
	if s.PointsPerRound == "" {
		s.PointsPerRound = PerRoundSingle
	}
	if s.CalculationMode == CalcNoPoints {
		s.PointsPerRound = PerRoundSingle
	}
	if s.RoundWinner == "" {
		if s.CalculationMode == CalcPenalized {
			s.RoundWinner = WinnerLowest
		} else {
			s.RoundWinner = WinnerHighest
		}
	}
}

func (s Settings) Validate() error {
	switch s.Gameplay {
	case GameplayIndividual, GameplayTeam:
	default:
		return fmt.Errorf("unknown gameplay %q", s.Gameplay)
	}
	switch s.CalculationMode {
	case CalcNoPoints, CalcPoints, CalcPenalized:
	default:
		return fmt.Errorf("unknown calculation mode %q", s.CalculationMode)
	}
	switch s.RoundWinner {
	case WinnerHighest, WinnerLowest:
	default:
		return fmt.Errorf("unknown round winner rule %q", s.RoundWinner)
	}
	switch s.PointsPerRound {
	case PerRoundSingle, PerRoundMultiple:
	default:
		return fmt.Errorf("unknown points per round %q", s.PointsPerRound)
	}
	if s.CalculationMode == CalcNoPoints && s.PointsPerRound == PerRoundMultiple {
		return errors.New("crown scoring does not support multiple scores per round")
	}
	return nil
}

func (s Settings) Team() bool {
	return s.Gameplay == GameplayTeam
}

func (s Settings) Crown() bool {
	return s.CalculationMode == CalcNoPoints
}

func (s Settings) MultiScores() bool {
	return s.PointsPerRound == PerRoundMultiple
}
