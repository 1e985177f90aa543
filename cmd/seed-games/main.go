package main

import (
	"log"

	"tablescore/internal/config"
	"tablescore/internal/db"
	"tablescore/internal/score"

	"gorm.io/gorm/clause"
)

// The starter catalog. Existing rows are left alone so edits made through
// the API survive a reseed.
var builtinGames = []db.Game{
	{Name: "Skull King", Emoji: "\U0001F3F4‍☠️", Gameplay: score.GameplayIndividual, CalculationMode: score.CalcPoints, RoundWinner: score.WinnerHighest, PointsPerRound: score.PerRoundSingle, BuiltIn: true},
	{Name: "Uno", Emoji: "\U0001F0CF", Gameplay: score.GameplayIndividual, CalculationMode: score.CalcPenalized, RoundWinner: score.WinnerLowest, PointsPerRound: score.PerRoundSingle, BuiltIn: true},
	{Name: "Yahtzee", Emoji: "\U0001F3B2", Gameplay: score.GameplayIndividual, CalculationMode: score.CalcPoints, RoundWinner: score.WinnerHighest, PointsPerRound: score.PerRoundMultiple, BuiltIn: true},
	{Name: "Hearts", Emoji: "❤️", Gameplay: score.GameplayIndividual, CalculationMode: score.CalcPenalized, RoundWinner: score.WinnerLowest, PointsPerRound: score.PerRoundSingle, BuiltIn: true},
	{Name: "Charades", Emoji: "\U0001F3AD", Gameplay: score.GameplayTeam, CalculationMode: score.CalcPoints, RoundWinner: score.WinnerHighest, PointsPerRound: score.PerRoundSingle, BuiltIn: true},
	{Name: "Crown Round", Emoji: "\U0001F451", Gameplay: score.GameplayIndividual, CalculationMode: score.CalcNoPoints, RoundWinner: score.WinnerHighest, PointsPerRound: score.PerRoundSingle, BuiltIn: true},
}

func main() {
	if err := config.LoadDotEnv(".env"); err != nil {
		log.Printf("failed to load .env: %v", err)
	}

	conn, err := db.Open()
	if err != nil {
		log.Fatalf("database connection failed: %v", err)
	}
	if err := db.Migrate(conn); err != nil {
		log.Fatalf("database migration failed: %v", err)
	}

	seeded := 0
	for _, game := range builtinGames {
		result := conn.Clauses(clause.OnConflict{DoNothing: true}).Create(&game)
		if result.Error != nil {
			log.Fatalf("failed to seed %q: %v", game.Name, result.Error)
		}
		seeded += int(result.RowsAffected)
	}
	log.Printf("seeded %d games (%d already present)", seeded, len(builtinGames)-seeded)
}
