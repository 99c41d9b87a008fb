package teams

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/mcdev12/footyleague/go/internal/errs"
	"github.com/mcdev12/footyleague/go/internal/models"
)

// TeamsRepository defines what the app layer needs from the repository
type TeamsRepository interface {
	CreateTeam(ctx context.Context, req CreateTeamRequest) (*models.Team, error)
	GetTeam(ctx context.Context, id uuid.UUID) (*models.Team, error)
	ListTeams(ctx context.Context, limit, offset int) ([]models.Team, error)
	UpdateTeam(ctx context.Context, id uuid.UUID, req UpdateTeamRequest) (*models.Team, error)
	DeleteTeam(ctx context.Context, id uuid.UUID) error
}

// App handles teams business logic
type App struct {
	repo TeamsRepository
}

// NewApp creates a new teams App
func NewApp(repo TeamsRepository) *App {
	return &App{repo: repo}
}

// CreateTeam creates a new team with validation
func (a *App) CreateTeam(ctx context.Context, req CreateTeamRequest) (*models.Team, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.HomeStadium = strings.TrimSpace(req.HomeStadium)
	if err := a.validateCreateTeamRequest(req); err != nil {
		return nil, err
	}

	team, err := a.repo.CreateTeam(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("failed to create team: %w", err)
	}

	log.Info().Str("team_id", team.ID.String()).Str("name", team.Name).Msg("created team")
	return team, nil
}

// GetTeam retrieves a team and its roster
func (a *App) GetTeam(ctx context.Context, id uuid.UUID) (*models.Team, error) {
	team, err := a.repo.GetTeam(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get team: %w", err)
	}
	return team, nil
}

// ListTeams retrieves a page of teams
func (a *App) ListTeams(ctx context.Context, pagination PaginationParams) ([]models.Team, error) {
	limit, offset := normalizePage(pagination)
	teams, err := a.repo.ListTeams(ctx, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list teams: %w", err)
	}
	return teams, nil
}

// UpdateTeam updates an existing team with validation
func (a *App) UpdateTeam(ctx context.Context, id uuid.UUID, req UpdateTeamRequest) (*models.Team, error) {
	if err := a.validateUpdateTeamRequest(req); err != nil {
		return nil, err
	}

	team, err := a.repo.UpdateTeam(ctx, id, req)
	if err != nil {
		return nil, fmt.Errorf("failed to update team: %w", err)
	}

	log.Info().Str("team_id", team.ID.String()).Msg("updated team")
	return team, nil
}

// DeleteTeam deletes a team by ID
func (a *App) DeleteTeam(ctx context.Context, id uuid.UUID) error {
	if err := a.repo.DeleteTeam(ctx, id); err != nil {
		return fmt.Errorf("failed to delete team: %w", err)
	}

	log.Info().Str("team_id", id.String()).Msg("deleted team")
	return nil
}

func normalizePage(p PaginationParams) (limit, offset int) {
	limit = p.Limit
	if limit <= 0 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	offset = max(p.Offset, 0)
	return limit, offset
}

// validateCreateTeamRequest validates create team request
func (a *App) validateCreateTeamRequest(req CreateTeamRequest) error {
	if req.Name == "" {
		return errs.New(errs.KindInvalidArgument, "name is required")
	}
	if req.HomeStadium == "" {
		return errs.New(errs.KindInvalidArgument, "home stadium is required")
	}
	return nil
}

// validateUpdateTeamRequest validates update team request
func (a *App) validateUpdateTeamRequest(req UpdateTeamRequest) error {
	if req.Name != nil && strings.TrimSpace(*req.Name) == "" {
		return errs.New(errs.KindInvalidArgument, "name cannot be empty")
	}
	if req.HomeStadium != nil && strings.TrimSpace(*req.HomeStadium) == "" {
		return errs.New(errs.KindInvalidArgument, "home stadium cannot be empty")
	}
	return nil
}
