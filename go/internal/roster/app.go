package roster

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"

	"github.com/mcdev12/footyleague/go/internal/errs"
	"github.com/mcdev12/footyleague/go/internal/models"
)

// RosterRepository defines what the app layer needs from the repository
type RosterRepository interface {
	WithTeamLocked(ctx context.Context, teamID uuid.UUID, fn func(team models.Team, w PlayerWriter) error) error
	GetPlayer(ctx context.Context, id uuid.UUID) (*models.Player, error)
	ListPlayers(ctx context.Context, teamID uuid.UUID) ([]models.Player, error)
	DeletePlayer(ctx context.Context, id uuid.UUID) error
}

// TeamsReader loads a team with its current roster
type TeamsReader interface {
	GetTeam(ctx context.Context, id uuid.UUID) (*models.Team, error)
}

// RegulationReader resolves the regulation of a season
type RegulationReader interface {
	GetRegulation(ctx context.Context, seasonID uuid.UUID) (models.Regulation, error)
}

// App handles roster business logic
type App struct {
	repo        RosterRepository
	teams       TeamsReader
	regulations RegulationReader
	clock       clockwork.Clock
}

// NewApp creates a new roster App
func NewApp(repo RosterRepository, teams TeamsReader, regulations RegulationReader, clock clockwork.Clock) *App {
	return &App{
		repo:        repo,
		teams:       teams,
		regulations: regulations,
		clock:       clock,
	}
}

// AddPlayer validates a new player against the season regulation and stores it
func (a *App) AddPlayer(ctx context.Context, req AddPlayerRequest) (*models.Player, error) {
	candidate := models.Player{
		ID:        uuid.New(),
		Name:      strings.TrimSpace(req.Name),
		BirthDate: req.BirthDate,
		Type:      req.Type,
		TeamID:    req.TeamID,
	}
	if err := a.validatePlayer(candidate); err != nil {
		return nil, err
	}

	reg, err := a.regulations.GetRegulation(ctx, req.SeasonID)
	if err != nil {
		return nil, fmt.Errorf("failed to load regulation: %w", err)
	}

	err = a.repo.WithTeamLocked(ctx, req.TeamID, func(team models.Team, w PlayerWriter) error {
		if err := ValidateRosterAddition(team, candidate, reg, a.clock.Now()); err != nil {
			return err
		}
		return w.InsertPlayer(ctx, candidate)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to add player: %w", err)
	}

	log.Info().
		Str("player_id", candidate.ID.String()).
		Str("team_id", candidate.TeamID.String()).
		Str("type", string(candidate.Type)).
		Msg("added player to roster")
	return &candidate, nil
}

// UpdatePlayer edits a player. The edited player is checked as if re-added to
// the roster it already belongs to.
func (a *App) UpdatePlayer(ctx context.Context, playerID uuid.UUID, req UpdatePlayerRequest) (*models.Player, error) {
	current, err := a.repo.GetPlayer(ctx, playerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get player: %w", err)
	}

	updated := *current
	if req.Name != nil {
		updated.Name = strings.TrimSpace(*req.Name)
	}
	if req.BirthDate != nil {
		updated.BirthDate = *req.BirthDate
	}
	if req.Type != nil {
		updated.Type = *req.Type
	}
	if err := a.validatePlayer(updated); err != nil {
		return nil, err
	}

	reg, err := a.regulations.GetRegulation(ctx, req.SeasonID)
	if err != nil {
		return nil, fmt.Errorf("failed to load regulation: %w", err)
	}

	err = a.repo.WithTeamLocked(ctx, updated.TeamID, func(team models.Team, w PlayerWriter) error {
		if err := ValidateRosterChange(team, updated, reg, a.clock.Now()); err != nil {
			return err
		}
		return w.UpdatePlayer(ctx, updated)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update player: %w", err)
	}

	log.Info().Str("player_id", playerID.String()).Msg("updated player")
	return &updated, nil
}

// RemovePlayer deletes a player from its team
func (a *App) RemovePlayer(ctx context.Context, playerID uuid.UUID) error {
	if err := a.repo.DeletePlayer(ctx, playerID); err != nil {
		return fmt.Errorf("failed to remove player: %w", err)
	}

	log.Info().Str("player_id", playerID.String()).Msg("removed player from roster")
	return nil
}

// ListRoster retrieves a team's players
func (a *App) ListRoster(ctx context.Context, teamID uuid.UUID) ([]models.Player, error) {
	players, err := a.repo.ListPlayers(ctx, teamID)
	if err != nil {
		return nil, fmt.Errorf("failed to list roster: %w", err)
	}
	return players, nil
}

// CheckAddition runs the addition rules without storing anything
func (a *App) CheckAddition(ctx context.Context, req AddPlayerRequest) error {
	candidate := models.Player{
		Name:      strings.TrimSpace(req.Name),
		BirthDate: req.BirthDate,
		Type:      req.Type,
		TeamID:    req.TeamID,
	}
	if err := a.validatePlayer(candidate); err != nil {
		return err
	}

	team, reg, err := a.load(ctx, req.TeamID, req.SeasonID)
	if err != nil {
		return err
	}
	return ValidateRosterAddition(*team, candidate, reg, a.clock.Now())
}

// CheckEligibility reports whether a team's squad is large enough to compete
// in a season
func (a *App) CheckEligibility(ctx context.Context, teamID, seasonID uuid.UUID) error {
	team, reg, err := a.load(ctx, teamID, seasonID)
	if err != nil {
		return err
	}
	return ValidateRosterMinimum(*team, reg)
}

func (a *App) load(ctx context.Context, teamID, seasonID uuid.UUID) (*models.Team, models.Regulation, error) {
	team, err := a.teams.GetTeam(ctx, teamID)
	if err != nil {
		return nil, models.Regulation{}, fmt.Errorf("failed to get team: %w", err)
	}
	reg, err := a.regulations.GetRegulation(ctx, seasonID)
	if err != nil {
		return nil, models.Regulation{}, fmt.Errorf("failed to load regulation: %w", err)
	}
	return team, reg, nil
}

// validatePlayer checks the fields every stored player must carry
func (a *App) validatePlayer(p models.Player) error {
	if p.Name == "" {
		return errs.New(errs.KindInvalidArgument, "player name is required")
	}
	if p.BirthDate.IsZero() {
		return errs.New(errs.KindInvalidArgument, "birth date is required")
	}
	if !p.Type.Valid() {
		return errs.New(errs.KindInvalidArgument, "player type %q is invalid", p.Type)
	}
	if p.TeamID == uuid.Nil {
		return errs.New(errs.KindInvalidArgument, "team id is required")
	}
	return nil
}
