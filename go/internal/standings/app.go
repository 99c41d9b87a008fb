package standings

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/mcdev12/footyleague/go/internal/models"
)

// AdmissionsReader lists the teams admitted to a season
type AdmissionsReader interface {
	AcceptedTeams(ctx context.Context, seasonID uuid.UUID) ([]uuid.UUID, error)
}

// OutcomesReader derives the results of a season's played matches
type OutcomesReader interface {
	SeasonOutcomes(ctx context.Context, seasonID uuid.UUID) ([]models.MatchOutcome, error)
}

type RegulationReader interface {
	GetRegulation(ctx context.Context, seasonID uuid.UUID) (models.Regulation, error)
}

// App computes standings from a fresh snapshot on every call
type App struct {
	admissions  AdmissionsReader
	outcomes    OutcomesReader
	regulations RegulationReader
}

// NewApp creates a new standings App
func NewApp(admissions AdmissionsReader, outcomes OutcomesReader, regulations RegulationReader) *App {
	return &App{
		admissions:  admissions,
		outcomes:    outcomes,
		regulations: regulations,
	}
}

// ComputeStandings returns the ordered table of a season
func (a *App) ComputeStandings(ctx context.Context, seasonID uuid.UUID) ([]models.StandingRow, error) {
	reg, err := a.regulations.GetRegulation(ctx, seasonID)
	if err != nil {
		return nil, fmt.Errorf("failed to get regulation: %w", err)
	}
	teams, err := a.admissions.AcceptedTeams(ctx, seasonID)
	if err != nil {
		return nil, fmt.Errorf("failed to list accepted teams: %w", err)
	}
	outcomes, err := a.outcomes.SeasonOutcomes(ctx, seasonID)
	if err != nil {
		return nil, fmt.Errorf("failed to derive outcomes: %w", err)
	}
	return Compute(seasonID, teams, outcomes, reg), nil
}
