package applications

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"

	"github.com/mcdev12/footyleague/go/internal/errs"
	"github.com/mcdev12/footyleague/go/internal/events"
	"github.com/mcdev12/footyleague/go/internal/models"
)

// Tx is the transactional surface the workflow needs
type Tx interface {
	ListActive(ctx context.Context, teamID, seasonID uuid.UUID) ([]models.Application, error)
	Insert(ctx context.Context, a models.Application) error
	GetForUpdate(ctx context.Context, id uuid.UUID) (*models.Application, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, from, to models.ApplicationStatus, at time.Time) error
	AppendEvent(ctx context.Context, seasonID uuid.UUID, eventType string, payload any, at time.Time) error
}

// ApplicationsRepository defines what the app layer needs from the repository
type ApplicationsRepository interface {
	Transact(ctx context.Context, fn func(tx Tx) error) error
	GetApplication(ctx context.Context, id uuid.UUID) (*models.Application, error)
	ListBySeason(ctx context.Context, seasonID uuid.UUID) ([]models.Application, error)
	ListAcceptedTeamIDs(ctx context.Context, seasonID uuid.UUID) ([]uuid.UUID, error)
}

// SeasonsReader is used to confirm the season exists before applying
type SeasonsReader interface {
	GetSeason(ctx context.Context, id uuid.UUID) (*models.Season, error)
}

// TeamsReader is used to confirm the team exists before applying
type TeamsReader interface {
	GetTeam(ctx context.Context, id uuid.UUID) (*models.Team, error)
}

// App runs the application workflow against the store
type App struct {
	repo    ApplicationsRepository
	seasons SeasonsReader
	teams   TeamsReader
	clock   clockwork.Clock
}

// NewApp creates a new applications App
func NewApp(repo ApplicationsRepository, seasons SeasonsReader, teams TeamsReader, clock clockwork.Clock) *App {
	return &App{
		repo:    repo,
		seasons: seasons,
		teams:   teams,
		clock:   clock,
	}
}

// Apply registers a team for a season in pending status
func (a *App) Apply(ctx context.Context, teamID, seasonID uuid.UUID) (*models.Application, error) {
	if _, err := a.seasons.GetSeason(ctx, seasonID); err != nil {
		return nil, fmt.Errorf("failed to get season: %w", err)
	}
	if _, err := a.teams.GetTeam(ctx, teamID); err != nil {
		return nil, fmt.Errorf("failed to get team: %w", err)
	}

	now := a.clock.Now()
	app := NewApplication(teamID, seasonID, now)

	err := a.repo.Transact(ctx, func(tx Tx) error {
		existing, err := tx.ListActive(ctx, teamID, seasonID)
		if err != nil {
			return err
		}
		if err := CheckApply(existing, teamID, seasonID); err != nil {
			return err
		}
		if err := tx.Insert(ctx, app); err != nil {
			return err
		}
		return tx.AppendEvent(ctx, seasonID, events.TypeApplicationSubmitted, applicationPayload(app, "", now), now)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to apply: %w", err)
	}

	log.Info().
		Str("application_id", app.ID.String()).
		Str("team_id", teamID.String()).
		Str("season_id", seasonID.String()).
		Msg("application submitted")
	return &app, nil
}

// Decide accepts or rejects a pending application
func (a *App) Decide(ctx context.Context, id uuid.UUID, decision models.ApplicationStatus) (*models.Application, error) {
	return a.move(ctx, id, events.TypeApplicationDecided, func(cur models.Application) (models.Application, error) {
		return Decide(cur, decision)
	})
}

// Withdraw cancels a pending or accepted application
func (a *App) Withdraw(ctx context.Context, id uuid.UUID) (*models.Application, error) {
	return a.move(ctx, id, events.TypeApplicationWithdrawn, Withdraw)
}

func (a *App) move(ctx context.Context, id uuid.UUID, eventType string, step func(models.Application) (models.Application, error)) (*models.Application, error) {
	now := a.clock.Now()

	var next models.Application
	err := a.repo.Transact(ctx, func(tx Tx) error {
		cur, err := tx.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		next, err = step(*cur)
		if err != nil {
			return err
		}
		if err := tx.UpdateStatus(ctx, id, cur.Status, next.Status, now); err != nil {
			return err
		}
		return tx.AppendEvent(ctx, next.SeasonID, eventType, applicationPayload(next, cur.Status, now), now)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update application %s: %w", id, err)
	}

	log.Info().
		Str("application_id", id.String()).
		Str("status", string(next.Status)).
		Msg("application status changed")
	return &next, nil
}

// GetApplication retrieves an application by ID
func (a *App) GetApplication(ctx context.Context, id uuid.UUID) (*models.Application, error) {
	app, err := a.repo.GetApplication(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get application: %w", err)
	}
	return app, nil
}

// ListBySeason retrieves all applications of a season
func (a *App) ListBySeason(ctx context.Context, seasonID uuid.UUID) ([]models.Application, error) {
	apps, err := a.repo.ListBySeason(ctx, seasonID)
	if err != nil {
		return nil, fmt.Errorf("failed to list applications: %w", err)
	}
	return apps, nil
}

// AcceptedTeams returns the teams authorized to play in a season
func (a *App) AcceptedTeams(ctx context.Context, seasonID uuid.UUID) ([]uuid.UUID, error) {
	ids, err := a.repo.ListAcceptedTeamIDs(ctx, seasonID)
	if err != nil {
		return nil, fmt.Errorf("failed to list accepted teams: %w", err)
	}
	return ids, nil
}

// IsAccepted reports whether teamID holds an accepted application for seasonID
func (a *App) IsAccepted(ctx context.Context, teamID, seasonID uuid.UUID) (bool, error) {
	ids, err := a.AcceptedTeams(ctx, seasonID)
	if err != nil {
		return false, err
	}
	for _, id := range ids {
		if id == teamID {
			return true, nil
		}
	}
	return false, nil
}

// RequireAccepted fails with InvalidArgument unless teamID is admitted to seasonID
func (a *App) RequireAccepted(ctx context.Context, teamID, seasonID uuid.UUID) error {
	ok, err := a.IsAccepted(ctx, teamID, seasonID)
	if err != nil {
		return err
	}
	if !ok {
		return errs.New(errs.KindInvalidArgument, "team %s has no accepted application for season %s", teamID, seasonID)
	}
	return nil
}

func applicationPayload(app models.Application, previous models.ApplicationStatus, at time.Time) events.ApplicationPayload {
	return events.ApplicationPayload{
		ApplicationID: app.ID.String(),
		TeamID:        app.TeamID.String(),
		SeasonID:      app.SeasonID.String(),
		Status:        string(app.Status),
		PreviousState: string(previous),
		OccurredAt:    at,
	}
}
