package matches

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"

	"github.com/mcdev12/footyleague/go/internal/errs"
	"github.com/mcdev12/footyleague/go/internal/events"
	"github.com/mcdev12/footyleague/go/internal/models"
)

// Tx is the transactional surface used by scheduling and goal recording
type Tx interface {
	LockMatch(ctx context.Context, id uuid.UUID) (*models.Match, error)
	ShareMatch(ctx context.Context, id uuid.UUID) (*models.Match, error)
	InsertMatch(ctx context.Context, m models.Match) error
	Reschedule(ctx context.Context, id uuid.UUID, at time.Time, stadium string) error
	CountGoals(ctx context.Context, matchID uuid.UUID) (int, error)
	InsertGoal(ctx context.Context, g models.Goal, at time.Time) error
	LockUnreportedPlayed(ctx context.Context, now time.Time, limit int) ([]models.Match, error)
	MarkPlayedReported(ctx context.Context, id uuid.UUID, at time.Time) error
	MatchGoals(ctx context.Context, matchID uuid.UUID) ([]models.Goal, error)
	AppendEvent(ctx context.Context, seasonID uuid.UUID, eventType string, payload any, at time.Time) error
}

// MatchesRepository defines what the app layer needs from the repository
type MatchesRepository interface {
	Transact(ctx context.Context, fn func(tx Tx) error) error
	GetMatch(ctx context.Context, id uuid.UUID) (*models.Match, error)
	ListMatches(ctx context.Context, seasonID uuid.UUID) ([]models.Match, error)
	ListGoals(ctx context.Context, matchID uuid.UUID) ([]models.Goal, error)
	ListSeasonGoals(ctx context.Context, seasonID uuid.UUID) ([]models.Goal, error)
}

type RegulationReader interface {
	GetRegulation(ctx context.Context, seasonID uuid.UUID) (models.Regulation, error)
}

type TeamsReader interface {
	GetTeam(ctx context.Context, id uuid.UUID) (*models.Team, error)
}

type GoalTypeReader interface {
	GetGoalType(ctx context.Context, id uuid.UUID) (*models.GoalType, error)
}

// AdmissionChecker tells whether a team may play in a season
type AdmissionChecker interface {
	RequireAccepted(ctx context.Context, teamID, seasonID uuid.UUID) error
}

// App schedules matches, records goals and derives results
type App struct {
	repo        MatchesRepository
	regulations RegulationReader
	teams       TeamsReader
	goalTypes   GoalTypeReader
	admissions  AdmissionChecker
	clock       clockwork.Clock
}

// NewApp creates a new matches App
func NewApp(
	repo MatchesRepository,
	regulations RegulationReader,
	teams TeamsReader,
	goalTypes GoalTypeReader,
	admissions AdmissionChecker,
	clock clockwork.Clock,
) *App {
	return &App{
		repo:        repo,
		regulations: regulations,
		teams:       teams,
		goalTypes:   goalTypes,
		admissions:  admissions,
		clock:       clock,
	}
}

// ScheduleMatch creates a fixture between two accepted teams of a season
func (a *App) ScheduleMatch(ctx context.Context, req ScheduleMatchRequest) (*models.Match, error) {
	if req.Team1ID == req.Team2ID {
		return nil, errs.New(errs.KindInvalidArgument, "a team cannot play itself")
	}
	if req.MatchTime.IsZero() {
		return nil, errs.New(errs.KindInvalidArgument, "match time is required")
	}
	for _, teamID := range []uuid.UUID{req.Team1ID, req.Team2ID} {
		if err := a.admissions.RequireAccepted(ctx, teamID, req.SeasonID); err != nil {
			return nil, fmt.Errorf("failed to schedule match: %w", err)
		}
	}

	stadium := strings.TrimSpace(req.Stadium)
	if stadium == "" {
		home, err := a.teams.GetTeam(ctx, req.Team1ID)
		if err != nil {
			return nil, fmt.Errorf("failed to get team: %w", err)
		}
		stadium = home.HomeStadium
	}

	match := models.Match{
		ID:        uuid.New(),
		SeasonID:  req.SeasonID,
		Team1ID:   req.Team1ID,
		Team2ID:   req.Team2ID,
		MatchTime: req.MatchTime.UTC(),
		Stadium:   stadium,
	}
	now := a.clock.Now()

	err := a.repo.Transact(ctx, func(tx Tx) error {
		if err := tx.InsertMatch(ctx, match); err != nil {
			return err
		}
		return tx.AppendEvent(ctx, match.SeasonID, events.TypeMatchScheduled, matchPayload(match), now)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to schedule match: %w", err)
	}

	log.Info().
		Str("match_id", match.ID.String()).
		Str("season_id", match.SeasonID.String()).
		Time("match_time", match.MatchTime).
		Msg("match scheduled")
	return &match, nil
}

// RescheduleMatch moves a fixture. Once a goal is recorded the schedule is fixed.
func (a *App) RescheduleMatch(ctx context.Context, id uuid.UUID, req RescheduleMatchRequest) (*models.Match, error) {
	if req.MatchTime.IsZero() {
		return nil, errs.New(errs.KindInvalidArgument, "match time is required")
	}
	now := a.clock.Now()

	var match models.Match
	err := a.repo.Transact(ctx, func(tx Tx) error {
		cur, err := tx.LockMatch(ctx, id)
		if err != nil {
			return err
		}
		n, err := tx.CountGoals(ctx, id)
		if err != nil {
			return err
		}
		if n > 0 {
			return errs.New(errs.KindMatchLocked, "match %s already has %d goals", id, n)
		}

		match = *cur
		match.MatchTime = req.MatchTime.UTC()
		if s := strings.TrimSpace(req.Stadium); s != "" {
			match.Stadium = s
		}
		if err := tx.Reschedule(ctx, id, match.MatchTime, match.Stadium); err != nil {
			return err
		}
		return tx.AppendEvent(ctx, match.SeasonID, events.TypeMatchRescheduled, matchPayload(match), now)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to reschedule match %s: %w", id, err)
	}

	log.Info().
		Str("match_id", id.String()).
		Time("match_time", match.MatchTime).
		Msg("match rescheduled")
	return &match, nil
}

// RecordGoal validates and appends a goal. A rejected goal leaves no trace.
func (a *App) RecordGoal(ctx context.Context, req RecordGoalRequest) (*models.Goal, error) {
	goal := models.Goal{
		ID:         uuid.New(),
		MatchID:    req.MatchID,
		TeamID:     req.TeamID,
		PlayerID:   req.PlayerID,
		GoalTypeID: req.GoalTypeID,
		Minute:     req.Minute,
	}
	now := a.clock.Now()

	err := a.repo.Transact(ctx, func(tx Tx) error {
		match, err := tx.ShareMatch(ctx, req.MatchID)
		if err != nil {
			return err
		}
		reg, err := a.regulations.GetRegulation(ctx, match.SeasonID)
		if err != nil {
			return err
		}

		var scorer models.Team
		if match.Involves(req.TeamID) {
			team, err := a.teams.GetTeam(ctx, req.TeamID)
			if err != nil {
				return err
			}
			scorer = *team
		}
		if err := ValidateGoal(*match, scorer, goal, reg); err != nil {
			return err
		}
		if _, err := a.goalTypes.GetGoalType(ctx, req.GoalTypeID); err != nil {
			return err
		}

		if err := tx.InsertGoal(ctx, goal, now); err != nil {
			return err
		}
		return tx.AppendEvent(ctx, match.SeasonID, events.TypeGoalRecorded, events.GoalRecordedPayload{
			GoalID:     goal.ID.String(),
			MatchID:    match.ID.String(),
			SeasonID:   match.SeasonID.String(),
			TeamID:     goal.TeamID.String(),
			PlayerID:   goal.PlayerID.String(),
			GoalTypeID: goal.GoalTypeID.String(),
			Minute:     goal.Minute,
			RecordedAt: now,
		}, now)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to record goal: %w", err)
	}

	log.Info().
		Str("goal_id", goal.ID.String()).
		Str("match_id", goal.MatchID.String()).
		Int("minute", goal.Minute).
		Msg("goal recorded")
	return &goal, nil
}

// ReportPlayed writes a MatchPlayed event for up to limit matches whose
// kick-off passed before now and that were not reported yet. A match moved by
// RescheduleMatch is reported again after its new kick-off.
func (a *App) ReportPlayed(ctx context.Context, now time.Time, limit int) ([]models.MatchOutcome, error) {
	var outcomes []models.MatchOutcome
	err := a.repo.Transact(ctx, func(tx Tx) error {
		outcomes = nil
		due, err := tx.LockUnreportedPlayed(ctx, now, limit)
		if err != nil {
			return err
		}
		for _, match := range due {
			goals, err := tx.MatchGoals(ctx, match.ID)
			if err != nil {
				return err
			}
			outcome, played := DeriveOutcome(match, goals, now)
			if !played {
				continue
			}
			if err := tx.MarkPlayedReported(ctx, match.ID, now); err != nil {
				return err
			}
			err = tx.AppendEvent(ctx, match.SeasonID, events.TypeMatchPlayed, events.MatchPlayedPayload{
				MatchID:    match.ID.String(),
				SeasonID:   match.SeasonID.String(),
				Team1ID:    match.Team1ID.String(),
				Team2ID:    match.Team2ID.String(),
				Team1Goals: outcome.Team1Goals,
				Team2Goals: outcome.Team2Goals,
				Winner:     string(outcome.Winner),
				MatchTime:  match.MatchTime,
				ReportedAt: now,
			}, now)
			if err != nil {
				return err
			}
			outcomes = append(outcomes, outcome)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to report played matches: %w", err)
	}
	return outcomes, nil
}

// GetMatch retrieves a match by ID
func (a *App) GetMatch(ctx context.Context, id uuid.UUID) (*models.Match, error) {
	m, err := a.repo.GetMatch(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get match: %w", err)
	}
	return m, nil
}

// ListMatches retrieves a season's fixtures
func (a *App) ListMatches(ctx context.Context, seasonID uuid.UUID) ([]models.Match, error) {
	ms, err := a.repo.ListMatches(ctx, seasonID)
	if err != nil {
		return nil, fmt.Errorf("failed to list matches: %w", err)
	}
	return ms, nil
}

// ListGoals retrieves the goals of a match
func (a *App) ListGoals(ctx context.Context, matchID uuid.UUID) ([]models.Goal, error) {
	goals, err := a.repo.ListGoals(ctx, matchID)
	if err != nil {
		return nil, fmt.Errorf("failed to list goals: %w", err)
	}
	return goals, nil
}

// GetOutcome derives the result of a match. played is false before kick-off.
func (a *App) GetOutcome(ctx context.Context, matchID uuid.UUID) (outcome models.MatchOutcome, played bool, err error) {
	match, err := a.GetMatch(ctx, matchID)
	if err != nil {
		return models.MatchOutcome{}, false, err
	}
	goals, err := a.ListGoals(ctx, matchID)
	if err != nil {
		return models.MatchOutcome{}, false, err
	}
	outcome, played = DeriveOutcome(*match, goals, a.clock.Now())
	return outcome, played, nil
}

// SeasonOutcomes derives the outcome of every played match of a season
func (a *App) SeasonOutcomes(ctx context.Context, seasonID uuid.UUID) ([]models.MatchOutcome, error) {
	ms, err := a.ListMatches(ctx, seasonID)
	if err != nil {
		return nil, err
	}
	goals, err := a.repo.ListSeasonGoals(ctx, seasonID)
	if err != nil {
		return nil, fmt.Errorf("failed to list season goals: %w", err)
	}
	return DeriveOutcomes(ms, goals, a.clock.Now()), nil
}

func matchPayload(m models.Match) events.MatchScheduledPayload {
	return events.MatchScheduledPayload{
		MatchID:   m.ID.String(),
		SeasonID:  m.SeasonID.String(),
		Team1ID:   m.Team1ID.String(),
		Team2ID:   m.Team2ID.String(),
		MatchTime: m.MatchTime,
		Stadium:   m.Stadium,
	}
}
