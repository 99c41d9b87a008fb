package models

import "github.com/google/uuid"

// StandingRow is one team's aggregated record in a season table
type StandingRow struct {
	TeamID         uuid.UUID `json:"teamId"`
	Played         int       `json:"played"`
	Won            int       `json:"won"`
	Drawn          int       `json:"drawn"`
	Lost           int       `json:"lost"`
	GoalsFor       int       `json:"goalsFor"`
	GoalsAgainst   int       `json:"goalsAgainst"`
	GoalDifference int       `json:"goalDifference"`
	Points         int       `json:"points"`
}
