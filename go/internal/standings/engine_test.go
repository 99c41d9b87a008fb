package standings

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcdev12/footyleague/go/internal/models"
)

func result(season, team1, team2 uuid.UUID, g1, g2 int) models.MatchOutcome {
	w := models.WinnerDraw
	switch {
	case g1 > g2:
		w = models.WinnerTeam1
	case g2 > g1:
		w = models.WinnerTeam2
	}
	return models.MatchOutcome{
		MatchID:    uuid.New(),
		SeasonID:   season,
		Team1ID:    team1,
		Team2ID:    team2,
		Team1Goals: g1,
		Team2Goals: g2,
		Winner:     w,
	}
}

func regulation(priority ...models.TieBreakCriterion) models.Regulation {
	reg := models.DefaultRegulation()
	reg.TieBreakPriority = priority
	return reg
}

func teamOrder(rows []models.StandingRow) []uuid.UUID {
	ids := make([]uuid.UUID, len(rows))
	for i, r := range rows {
		ids[i] = r.TeamID
	}
	return ids
}

func TestComputeThreeTeamScenario(t *testing.T) {
	season := uuid.New()
	a, b, c := uuid.New(), uuid.New(), uuid.New()
	outcomes := []models.MatchOutcome{
		result(season, a, b, 2, 1),
		result(season, b, c, 0, 0),
		result(season, c, a, 1, 3),
	}
	reg := regulation(models.TieBreakPoints, models.TieBreakGoalDifference, models.TieBreakGoalsFor)

	rows := Compute(season, []uuid.UUID{a, b, c}, outcomes, reg)

	require.Len(t, rows, 3)
	assert.Equal(t, []uuid.UUID{a, b, c}, teamOrder(rows))
	assert.Equal(t, models.StandingRow{TeamID: a, Played: 2, Won: 2, GoalsFor: 5, GoalsAgainst: 2, GoalDifference: 3, Points: 6}, rows[0])
	assert.Equal(t, models.StandingRow{TeamID: b, Played: 2, Drawn: 1, Lost: 1, GoalsFor: 1, GoalsAgainst: 2, GoalDifference: -1, Points: 1}, rows[1])
	assert.Equal(t, models.StandingRow{TeamID: c, Played: 2, Drawn: 1, Lost: 1, GoalsFor: 1, GoalsAgainst: 3, GoalDifference: -2, Points: 1}, rows[2])
}

func TestComputeIsIdempotent(t *testing.T) {
	season := uuid.New()
	teams := []uuid.UUID{uuid.New(), uuid.New(), uuid.New(), uuid.New()}
	outcomes := []models.MatchOutcome{
		result(season, teams[0], teams[1], 1, 1),
		result(season, teams[2], teams[3], 1, 1),
		result(season, teams[1], teams[2], 0, 2),
	}
	reg := models.DefaultRegulation()

	first := Compute(season, teams, outcomes, reg)
	second := Compute(season, teams, outcomes, reg)
	assert.Equal(t, first, second)
}

func TestComputeConservesPoints(t *testing.T) {
	season := uuid.New()
	teams := []uuid.UUID{uuid.New(), uuid.New(), uuid.New()}
	outcomes := []models.MatchOutcome{
		result(season, teams[0], teams[1], 3, 0),
		result(season, teams[1], teams[2], 2, 2),
		result(season, teams[2], teams[0], 1, 0),
		result(season, teams[0], teams[2], 0, 0),
	}
	reg := models.DefaultRegulation()
	reg.LossPoints = 1

	total := 0
	for _, r := range Compute(season, teams, outcomes, reg) {
		total += r.Points
	}
	draws, decisive := 2, 2
	assert.Equal(t, draws*2*reg.DrawPoints+decisive*(reg.WinPoints+reg.LossPoints), total)
}

func TestComputeIgnoresForeignOutcomes(t *testing.T) {
	season := uuid.New()
	a, b, outsider := uuid.New(), uuid.New(), uuid.New()
	counted := result(season, a, b, 1, 0)
	outcomes := []models.MatchOutcome{
		counted,
		counted,
		result(season, a, outsider, 5, 0),
		result(uuid.New(), b, a, 4, 0),
	}

	rows := Compute(season, []uuid.UUID{a, b}, outcomes, models.DefaultRegulation())

	require.Len(t, rows, 2)
	assert.Equal(t, 1, rows[0].Played)
	assert.Equal(t, 3, rows[0].Points)
	assert.Equal(t, 1, rows[1].Played)
	assert.Equal(t, 0, rows[1].Points)
}

func TestComputeWithoutTeams(t *testing.T) {
	season := uuid.New()
	rows := Compute(season, nil, []models.MatchOutcome{result(season, uuid.New(), uuid.New(), 1, 0)}, models.DefaultRegulation())
	assert.Empty(t, rows)
}

func TestComputeUnplayedTeamsKeepZeroRows(t *testing.T) {
	season := uuid.New()
	a, b := uuid.New(), uuid.New()
	rows := Compute(season, []uuid.UUID{a, b, a}, nil, models.DefaultRegulation())
	assert.Equal(t, []models.StandingRow{{TeamID: a}, {TeamID: b}}, rows)
}

func TestTieBreakPriority(t *testing.T) {
	season := uuid.New()

	t.Run("head to head between two level teams", func(t *testing.T) {
		x, y, z := uuid.New(), uuid.New(), uuid.New()
		outcomes := []models.MatchOutcome{
			result(season, x, y, 1, 0),
			result(season, y, z, 1, 0),
		}
		input := []uuid.UUID{y, x, z}

		rows := Compute(season, input, outcomes, regulation(models.TieBreakPoints))
		assert.Equal(t, []uuid.UUID{y, x, z}, teamOrder(rows))

		rows = Compute(season, input, outcomes, regulation(models.TieBreakPoints, models.TieBreakHeadToHead))
		assert.Equal(t, []uuid.UUID{x, y, z}, teamOrder(rows))
	})

	t.Run("head to head skips a three way tie", func(t *testing.T) {
		a, b, c := uuid.New(), uuid.New(), uuid.New()
		outcomes := []models.MatchOutcome{
			result(season, a, b, 1, 0),
			result(season, b, c, 1, 0),
			result(season, c, a, 1, 0),
		}
		input := []uuid.UUID{c, b, a}

		rows := Compute(season, input, outcomes, regulation(models.TieBreakPoints, models.TieBreakHeadToHead, models.TieBreakGoalsFor))
		assert.Equal(t, input, teamOrder(rows))
	})

	t.Run("head to head without a meeting stays level", func(t *testing.T) {
		p, q, r := uuid.New(), uuid.New(), uuid.New()
		outcomes := []models.MatchOutcome{
			result(season, p, r, 1, 0),
			result(season, r, q, 0, 1),
		}
		input := []uuid.UUID{q, p, r}

		rows := Compute(season, input, outcomes, regulation(models.TieBreakPoints, models.TieBreakHeadToHead))
		assert.Equal(t, input, teamOrder(rows))
	})

	t.Run("away goals count only team2 goals", func(t *testing.T) {
		p, q := uuid.New(), uuid.New()
		outcomes := []models.MatchOutcome{result(season, p, q, 2, 2)}
		input := []uuid.UUID{p, q}

		rows := Compute(season, input, outcomes, regulation(models.TieBreakPoints, models.TieBreakGoalsFor))
		assert.Equal(t, input, teamOrder(rows))

		rows = Compute(season, input, outcomes, regulation(models.TieBreakPoints, models.TieBreakGoalsFor, models.TieBreakAwayGoals))
		assert.Equal(t, []uuid.UUID{q, p}, teamOrder(rows))
	})

	t.Run("criteria outside the priority are skipped", func(t *testing.T) {
		a, b := uuid.New(), uuid.New()
		outcomes := []models.MatchOutcome{
			result(season, a, uuid.New(), 0, 0),
			result(season, b, a, 3, 3),
		}
		input := []uuid.UUID{a, b}

		rows := Compute(season, input, outcomes, regulation())
		assert.Equal(t, input, teamOrder(rows))
	})
}
