package events

import (
	"encoding/json"
	"time"
)

// Event types written to the outbox and published on "<prefix>.<type>"
const (
	TypeApplicationSubmitted = "ApplicationSubmitted"
	TypeApplicationDecided   = "ApplicationDecided"
	TypeApplicationWithdrawn = "ApplicationWithdrawn"
	TypeMatchScheduled       = "MatchScheduled"
	TypeMatchRescheduled     = "MatchRescheduled"
	TypeMatchPlayed          = "MatchPlayed"
	TypeGoalRecorded         = "GoalRecorded"
	TypeTeamIneligible       = "TeamIneligible"
)

// AffectsStandings reports whether an event of eventType can change a season table
func AffectsStandings(eventType string) bool {
	switch eventType {
	case TypeApplicationDecided, TypeApplicationWithdrawn, TypeGoalRecorded, TypeMatchRescheduled, TypeMatchPlayed:
		return true
	default:
		return false
	}
}

// Envelope is the message published to JetStream
type Envelope struct {
	EventID   string          `json:"eventId"`
	EventType string          `json:"eventType"`
	SeasonID  string          `json:"seasonId"`
	Timestamp time.Time       `json:"timestamp"`
	Payload   json.RawMessage `json:"payload"`
}

// ApplicationPayload is the payload for ApplicationSubmitted, ApplicationDecided and ApplicationWithdrawn
type ApplicationPayload struct {
	ApplicationID string    `json:"application_id"`
	TeamID        string    `json:"team_id"`
	SeasonID      string    `json:"season_id"`
	Status        string    `json:"status"`
	PreviousState string    `json:"previous_status,omitempty"`
	OccurredAt    time.Time `json:"occurred_at"`
}

// MatchScheduledPayload is the payload for MatchScheduled and MatchRescheduled
type MatchScheduledPayload struct {
	MatchID   string    `json:"match_id"`
	SeasonID  string    `json:"season_id"`
	Team1ID   string    `json:"team1_id"`
	Team2ID   string    `json:"team2_id"`
	MatchTime time.Time `json:"match_time"`
	Stadium   string    `json:"stadium"`
}

// MatchPlayedPayload is written once a match's kick-off time has passed and its
// result starts counting in the table
type MatchPlayedPayload struct {
	MatchID    string    `json:"match_id"`
	SeasonID   string    `json:"season_id"`
	Team1ID    string    `json:"team1_id"`
	Team2ID    string    `json:"team2_id"`
	Team1Goals int       `json:"team1_goals"`
	Team2Goals int       `json:"team2_goals"`
	Winner     string    `json:"winner"`
	MatchTime  time.Time `json:"match_time"`
	ReportedAt time.Time `json:"reported_at"`
}

// GoalRecordedPayload is the payload for a GoalRecorded event
type GoalRecordedPayload struct {
	GoalID     string    `json:"goal_id"`
	MatchID    string    `json:"match_id"`
	SeasonID   string    `json:"season_id"`
	TeamID     string    `json:"team_id"`
	PlayerID   string    `json:"player_id"`
	GoalTypeID string    `json:"goal_type_id"`
	Minute     int       `json:"minute"`
	RecordedAt time.Time `json:"recorded_at"`
}

// TeamIneligiblePayload is the payload for a TeamIneligible event
type TeamIneligiblePayload struct {
	TeamID     string    `json:"team_id"`
	SeasonID   string    `json:"season_id"`
	RosterSize int       `json:"roster_size"`
	MinPlayers int       `json:"min_players"`
	Reason     string    `json:"reason"`
	CheckedAt  time.Time `json:"checked_at"`
}
