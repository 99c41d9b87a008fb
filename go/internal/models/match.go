package models

import (
	"time"

	"github.com/google/uuid"
)

// Match is a scheduled fixture between two teams of a season
type Match struct {
	ID        uuid.UUID `json:"id"`
	SeasonID  uuid.UUID `json:"seasonId"`
	Team1ID   uuid.UUID `json:"team1Id"`
	Team2ID   uuid.UUID `json:"team2Id"`
	MatchTime time.Time `json:"matchTime"`
	Stadium   string    `json:"stadium"`
}

// Involves reports whether teamID is one of the two sides
func (m Match) Involves(teamID uuid.UUID) bool {
	return m.Team1ID == teamID || m.Team2ID == teamID
}

// GoalType classifies a goal (open play, penalty, ...)
type GoalType struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// Goal is an append-only record of a goal scored in a match
type Goal struct {
	ID         uuid.UUID `json:"id"`
	MatchID    uuid.UUID `json:"matchId"`
	TeamID     uuid.UUID `json:"teamId"`
	PlayerID   uuid.UUID `json:"playerId"`
	GoalTypeID uuid.UUID `json:"goalTypeId"`
	Minute     int       `json:"minute"`
}

// Winner is the decisive side of a played match
type Winner string

const (
	WinnerTeam1 Winner = "team1"
	WinnerTeam2 Winner = "team2"
	WinnerDraw  Winner = "draw"
)

// Valid reports whether w is a known winner value
func (w Winner) Valid() bool {
	return w == WinnerTeam1 || w == WinnerTeam2 || w == WinnerDraw
}

// MatchOutcome is derived from the goals of a played match and never stored.
// SeasonID and the team ids are carried along so the standings reducer does not
// need the match set.
type MatchOutcome struct {
	MatchID    uuid.UUID `json:"matchId"`
	SeasonID   uuid.UUID `json:"seasonId"`
	Team1ID    uuid.UUID `json:"team1Id"`
	Team2ID    uuid.UUID `json:"team2Id"`
	Team1Goals int       `json:"team1Goals"`
	Team2Goals int       `json:"team2Goals"`
	Winner     Winner    `json:"winner"`
}
