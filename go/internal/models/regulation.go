package models

// TieBreakCriterion names one ordering rule of the league table
type TieBreakCriterion string

const (
	TieBreakPoints         TieBreakCriterion = "points"
	TieBreakGoalDifference TieBreakCriterion = "goalDifference"
	TieBreakGoalsFor       TieBreakCriterion = "goalsFor"
	TieBreakAwayGoals      TieBreakCriterion = "awayGoals"
	TieBreakHeadToHead     TieBreakCriterion = "headToHead"
)

// Valid reports whether c is one of the known criteria
func (c TieBreakCriterion) Valid() bool {
	switch c {
	case TieBreakPoints, TieBreakGoalDifference, TieBreakGoalsFor, TieBreakAwayGoals, TieBreakHeadToHead:
		return true
	default:
		return false
	}
}

// Regulation is the rule set of a single season. It is treated as immutable
// once goals have been recorded against the season.
type Regulation struct {
	MinAge            int                 `json:"minAge" yaml:"min_age"`
	MaxAge            int                 `json:"maxAge" yaml:"max_age"`
	MinPlayers        int                 `json:"minPlayers" yaml:"min_players"`
	MaxPlayers        int                 `json:"maxPlayers" yaml:"max_players"`
	MaxForeignPlayers int                 `json:"maxForeignPlayers" yaml:"max_foreign_players"`
	MinGoalMinute     int                 `json:"minGoalMinute" yaml:"min_goal_minute"`
	MaxGoalMinute     int                 `json:"maxGoalMinute" yaml:"max_goal_minute"`
	WinPoints         int                 `json:"winPoints" yaml:"win_points"`
	DrawPoints        int                 `json:"drawPoints" yaml:"draw_points"`
	LossPoints        int                 `json:"lossPoints" yaml:"loss_points"`
	TieBreakPriority  []TieBreakCriterion `json:"tieBreakPriority" yaml:"tie_break_priority"`
}

// DefaultRegulation returns the rule set used when a season is created without one
func DefaultRegulation() Regulation {
	return Regulation{
		MinAge:            16,
		MaxAge:            40,
		MinPlayers:        15,
		MaxPlayers:        22,
		MaxForeignPlayers: 3,
		MinGoalMinute:     0,
		MaxGoalMinute:     90,
		WinPoints:         3,
		DrawPoints:        1,
		LossPoints:        0,
		TieBreakPriority: []TieBreakCriterion{
			TieBreakPoints,
			TieBreakGoalDifference,
			TieBreakGoalsFor,
			TieBreakHeadToHead,
		},
	}
}
