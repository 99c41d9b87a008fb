package matches

import (
	"time"

	"github.com/google/uuid"
)

// ScheduleMatchRequest creates a fixture. An empty Stadium defaults to the
// home stadium of Team1.
type ScheduleMatchRequest struct {
	SeasonID  uuid.UUID `json:"seasonId"`
	Team1ID   uuid.UUID `json:"team1Id"`
	Team2ID   uuid.UUID `json:"team2Id"`
	MatchTime time.Time `json:"matchTime"`
	Stadium   string    `json:"stadium"`
}

// RescheduleMatchRequest moves a fixture that has no goals yet
type RescheduleMatchRequest struct {
	MatchTime time.Time `json:"matchTime"`
	Stadium   string    `json:"stadium"`
}

// RecordGoalRequest appends a goal to a match
type RecordGoalRequest struct {
	MatchID    uuid.UUID `json:"matchId"`
	TeamID     uuid.UUID `json:"teamId"`
	PlayerID   uuid.UUID `json:"playerId"`
	GoalTypeID uuid.UUID `json:"goalTypeId"`
	Minute     int       `json:"minute"`
}
