package seasons

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"

	"github.com/mcdev12/footyleague/go/internal/errs"
	"github.com/mcdev12/footyleague/go/internal/models"
)

// SeasonsRepository defines what the app layer needs from the repository
type SeasonsRepository interface {
	CreateSeason(ctx context.Context, season models.Season) (*models.Season, error)
	GetSeason(ctx context.Context, id uuid.UUID) (*models.Season, error)
	ListSeasons(ctx context.Context) ([]models.Season, error)
	ListRunningSeasons(ctx context.Context, day time.Time) ([]models.Season, error)
	UpdateRegulation(ctx context.Context, id uuid.UUID, reg models.Regulation) (*models.Season, error)
	CountGoals(ctx context.Context, seasonID uuid.UUID) (int, error)
	CreateGoalType(ctx context.Context, name string) (*models.GoalType, error)
	GetGoalType(ctx context.Context, id uuid.UUID) (*models.GoalType, error)
	ListGoalTypes(ctx context.Context) ([]models.GoalType, error)
}

// App handles season business logic
type App struct {
	repo       SeasonsRepository
	defaultReg models.Regulation
	clock      clockwork.Clock
}

// NewApp creates a new seasons App. defaultReg is applied to seasons created
// without an explicit regulation.
func NewApp(repo SeasonsRepository, defaultReg models.Regulation, clock clockwork.Clock) *App {
	return &App{
		repo:       repo,
		defaultReg: defaultReg,
		clock:      clock,
	}
}

// CreateSeason opens a season with its regulation
func (a *App) CreateSeason(ctx context.Context, req CreateSeasonRequest) (*models.Season, error) {
	season := models.Season{
		ID:         uuid.New(),
		Name:       strings.TrimSpace(req.Name),
		StartDate:  req.StartDate,
		EndDate:    req.EndDate,
		Regulation: a.defaultReg,
	}
	if req.Regulation != nil {
		season.Regulation = *req.Regulation
	}

	if err := a.validateSeason(season); err != nil {
		return nil, err
	}

	created, err := a.repo.CreateSeason(ctx, season)
	if err != nil {
		return nil, fmt.Errorf("failed to create season: %w", err)
	}

	log.Info().
		Str("season_id", created.ID.String()).
		Str("name", created.Name).
		Msg("created season")
	return created, nil
}

// GetSeason retrieves a season by ID
func (a *App) GetSeason(ctx context.Context, id uuid.UUID) (*models.Season, error) {
	season, err := a.repo.GetSeason(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get season: %w", err)
	}
	return season, nil
}

// GetRegulation returns the regulation active for a season
func (a *App) GetRegulation(ctx context.Context, seasonID uuid.UUID) (models.Regulation, error) {
	season, err := a.GetSeason(ctx, seasonID)
	if err != nil {
		return models.Regulation{}, err
	}
	return season.Regulation, nil
}

// ListSeasons retrieves all seasons
func (a *App) ListSeasons(ctx context.Context) ([]models.Season, error) {
	seasons, err := a.repo.ListSeasons(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list seasons: %w", err)
	}
	return seasons, nil
}

// ListRunningSeasons retrieves the seasons in progress today
func (a *App) ListRunningSeasons(ctx context.Context) ([]models.Season, error) {
	seasons, err := a.repo.ListRunningSeasons(ctx, a.clock.Now())
	if err != nil {
		return nil, fmt.Errorf("failed to list running seasons: %w", err)
	}
	return seasons, nil
}

// UpdateRegulation replaces the rule set of a season. Once a goal has been
// recorded the regulation is frozen.
func (a *App) UpdateRegulation(ctx context.Context, seasonID uuid.UUID, reg models.Regulation) (*models.Season, error) {
	if err := ValidateRegulation(reg); err != nil {
		return nil, err
	}

	goals, err := a.repo.CountGoals(ctx, seasonID)
	if err != nil {
		return nil, fmt.Errorf("failed to check recorded goals: %w", err)
	}
	if goals > 0 {
		return nil, errs.New(errs.KindRegulationLocked, "season %s already has %d recorded goals", seasonID, goals)
	}

	season, err := a.repo.UpdateRegulation(ctx, seasonID, reg)
	if err != nil {
		return nil, fmt.Errorf("failed to update regulation: %w", err)
	}

	log.Info().Str("season_id", seasonID.String()).Msg("updated season regulation")
	return season, nil
}

// CreateGoalType adds a goal type to the catalogue
func (a *App) CreateGoalType(ctx context.Context, req CreateGoalTypeRequest) (*models.GoalType, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, errs.New(errs.KindInvalidArgument, "goal type name is required")
	}

	gt, err := a.repo.CreateGoalType(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("failed to create goal type: %w", err)
	}
	return gt, nil
}

// GetGoalType retrieves a goal type by ID
func (a *App) GetGoalType(ctx context.Context, id uuid.UUID) (*models.GoalType, error) {
	gt, err := a.repo.GetGoalType(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get goal type: %w", err)
	}
	return gt, nil
}

// ListGoalTypes retrieves the goal type catalogue
func (a *App) ListGoalTypes(ctx context.Context) ([]models.GoalType, error) {
	out, err := a.repo.ListGoalTypes(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list goal types: %w", err)
	}
	return out, nil
}

// validateSeason validates a season before it is stored
func (a *App) validateSeason(s models.Season) error {
	if s.Name == "" {
		return errs.New(errs.KindInvalidArgument, "name is required")
	}
	if s.StartDate.IsZero() || s.EndDate.IsZero() {
		return errs.New(errs.KindInvalidArgument, "start and end dates are required")
	}
	if s.EndDate.Before(s.StartDate) {
		return errs.New(errs.KindInvalidArgument, "season ends before it starts")
	}
	return ValidateRegulation(s.Regulation)
}
