package matches

import (
	"time"

	"github.com/google/uuid"

	"github.com/mcdev12/footyleague/go/internal/errs"
	"github.com/mcdev12/footyleague/go/internal/models"
)

// ValidateGoal checks a goal before it is appended to a match. scorer is the
// team the goal is credited to with its current roster; it is only consulted
// once the team is known to play in the match. Checks run in order: minute,
// team, player.
func ValidateGoal(match models.Match, scorer models.Team, goal models.Goal, reg models.Regulation) error {
	if goal.Minute < reg.MinGoalMinute || goal.Minute > reg.MaxGoalMinute {
		return errs.New(errs.KindInvalidMinute, "minute %d is outside %d-%d",
			goal.Minute, reg.MinGoalMinute, reg.MaxGoalMinute)
	}

	if !match.Involves(goal.TeamID) {
		return errs.New(errs.KindTeamNotInMatch, "team %s does not play in match %s", goal.TeamID, match.ID)
	}

	if scorer.ID != goal.TeamID || !scorer.HasPlayer(goal.PlayerID) {
		return errs.New(errs.KindPlayerNotOnTeam, "player %s is not on the roster of team %s", goal.PlayerID, goal.TeamID)
	}
	return nil
}

// WinnerOf applies the winner rule to a final score
func WinnerOf(team1Goals, team2Goals int) models.Winner {
	switch {
	case team1Goals > team2Goals:
		return models.WinnerTeam1
	case team2Goals > team1Goals:
		return models.WinnerTeam2
	default:
		return models.WinnerDraw
	}
}

// IsPlayed reports whether the match time has passed
func IsPlayed(match models.Match, now time.Time) bool {
	return match.MatchTime.Before(now)
}

// DeriveOutcome computes the result of a match from its goals. The second
// return value is false while the match has not been played, in which case no
// outcome exists, not even 0-0. Goals of other matches are ignored.
func DeriveOutcome(match models.Match, goals []models.Goal, now time.Time) (models.MatchOutcome, bool) {
	if !IsPlayed(match, now) {
		return models.MatchOutcome{}, false
	}

	out := models.MatchOutcome{
		MatchID:  match.ID,
		SeasonID: match.SeasonID,
		Team1ID:  match.Team1ID,
		Team2ID:  match.Team2ID,
	}
	for _, g := range goals {
		if g.MatchID != match.ID {
			continue
		}
		switch g.TeamID {
		case match.Team1ID:
			out.Team1Goals++
		case match.Team2ID:
			out.Team2Goals++
		}
	}
	out.Winner = WinnerOf(out.Team1Goals, out.Team2Goals)
	return out, true
}

// DeriveOutcomes derives the outcome of every played match in input order.
func DeriveOutcomes(matches []models.Match, goals []models.Goal, now time.Time) []models.MatchOutcome {
	byMatch := make(map[uuid.UUID][]models.Goal, len(matches))
	for _, g := range goals {
		byMatch[g.MatchID] = append(byMatch[g.MatchID], g)
	}

	out := make([]models.MatchOutcome, 0, len(matches))
	for _, m := range matches {
		if o, ok := DeriveOutcome(m, byMatch[m.ID], now); ok {
			out = append(out, o)
		}
	}
	return out
}
