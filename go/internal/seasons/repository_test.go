package seasons

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcdev12/footyleague/go/internal/models"
)

func TestGetSeasonDecodesRegulation(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	id := uuid.New()
	start := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2027, 5, 31, 0, 0, 0, 0, time.UTC)
	reg := `{"minAge":16,"maxAge":40,"minPlayers":15,"maxPlayers":25,"maxForeignPlayers":3,` +
		`"minGoalMinute":0,"maxGoalMinute":90,"winPoints":3,"drawPoints":1,"lossPoints":0,` +
		`"tieBreakPriority":["points","goalDifference","goalsFor"]}`

	mock.ExpectQuery(regexp.QuoteMeta("FROM seasons WHERE id = $1")).
		WithArgs(id).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "start_date", "end_date", "regulation"}).
			AddRow(id.String(), "2026/27", start, end, []byte(reg)))

	season, err := NewRepository(db).GetSeason(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, 25, season.Regulation.MaxPlayers)
	assert.Equal(t, []models.TieBreakCriterion{
		models.TieBreakPoints, models.TieBreakGoalDifference, models.TieBreakGoalsFor,
	}, season.Regulation.TieBreakPriority)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCountGoals(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	id := uuid.New()
	mock.ExpectQuery(regexp.QuoteMeta("JOIN matches m ON m.id = g.match_id")).
		WithArgs(id).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(7))

	n, err := NewRepository(db).CountGoals(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, 7, n)
}
