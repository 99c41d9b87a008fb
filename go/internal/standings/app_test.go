package standings

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcdev12/footyleague/go/internal/models"
)

type snapshot struct {
	reg      models.Regulation
	teams    []uuid.UUID
	outcomes []models.MatchOutcome
	err      error
}

func (s *snapshot) AcceptedTeams(ctx context.Context, seasonID uuid.UUID) ([]uuid.UUID, error) {
	return s.teams, s.err
}

func (s *snapshot) SeasonOutcomes(ctx context.Context, seasonID uuid.UUID) ([]models.MatchOutcome, error) {
	return s.outcomes, nil
}

func (s *snapshot) GetRegulation(ctx context.Context, seasonID uuid.UUID) (models.Regulation, error) {
	return s.reg, nil
}

func TestComputeStandingsReadsSnapshot(t *testing.T) {
	season := uuid.New()
	a, b := uuid.New(), uuid.New()
	s := &snapshot{
		reg:      models.DefaultRegulation(),
		teams:    []uuid.UUID{a, b},
		outcomes: []models.MatchOutcome{result(season, a, b, 0, 1)},
	}

	rows, err := NewApp(s, s, s).ComputeStandings(context.Background(), season)
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{b, a}, teamOrder(rows))
}

func TestComputeStandingsPropagatesErrors(t *testing.T) {
	boom := errors.New("boom")
	s := &snapshot{err: boom}

	_, err := NewApp(s, s, s).ComputeStandings(context.Background(), uuid.New())
	assert.ErrorIs(t, err, boom)
}
