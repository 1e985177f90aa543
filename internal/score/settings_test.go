package score

import "testing"

func TestSettingsNormalizeDefaults(t *testing.T) {
	var s Settings
	s.Normalize()
	if s.Gameplay != GameplayIndividual || s.CalculationMode != CalcPoints {
		t.Fatalf("unexpected defaults %+v", s)
	}
	if s.RoundWinner != WinnerHighest || s.PointsPerRound != PerRoundSingle {
		t.Fatalf("unexpected defaults %+v", s)
	}
}

func TestSettingsNormalizePenalized(t *testing.T) {
	s := Settings{CalculationMode: CalcPenalized}
	s.Normalize()
	if s.RoundWinner != WinnerLowest {
		t.Fatalf("expected lowest winner for penalty games, got %q", s.RoundWinner)
	}
}

func TestSettingsNormalizeCrownForcesSingle(t *testing.T) {
	s := Settings{CalculationMode: CalcNoPoints, PointsPerRound: PerRoundMultiple}
	s.Normalize()
	if s.PointsPerRound != PerRoundSingle {
		t.Fatalf("expected crown mode forced to single, got %q", s.PointsPerRound)
	}
}

func TestSettingsValidate(t *testing.T) {
	cases := []struct {
		name    string
		in      Settings
		wantErr bool
	}{
		{"valid individual", Settings{GameplayIndividual, CalcPoints, WinnerHighest, PerRoundSingle, false}, false},
		{"valid team", Settings{GameplayTeam, CalcPenalized, WinnerLowest, PerRoundMultiple, true}, false},
		{"bad gameplay", Settings{"solo", CalcPoints, WinnerHighest, PerRoundSingle, false}, true},
		{"bad mode", Settings{GameplayIndividual, "bonus", WinnerHighest, PerRoundSingle, false}, true},
		{"bad winner", Settings{GameplayIndividual, CalcPoints, "median", PerRoundSingle, false}, true},
		{"bad per round", Settings{GameplayIndividual, CalcPoints, WinnerHighest, "triple", false}, true},
		{"crown with multiple", Settings{GameplayIndividual, CalcNoPoints, WinnerHighest, PerRoundMultiple, false}, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.in.Validate()
			if tc.wantErr && err == nil {
				t.Fatal("expected validation error")
			}
			if !tc.wantErr && err != nil {
				t.Fatalf("expected valid settings, got %v", err)
			}
		})
	}
}
