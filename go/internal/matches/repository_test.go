package matches

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcdev12/footyleague/go/internal/errs"
	"github.com/mcdev12/footyleague/go/internal/models"
)

var matchCols = []string{"id", "season_id", "team1_id", "team2_id", "match_time", "stadium"}

func TestShareMatchTakesSharedLock(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	m := newMatch(newSide("Home"), newSide("Away"))
	mock.ExpectQuery(regexp.QuoteMeta("FROM matches WHERE id = $1 FOR SHARE")).
		WithArgs(m.ID).
		WillReturnRows(sqlmock.NewRows(matchCols).
			AddRow(m.ID.String(), m.SeasonID.String(), m.Team1ID.String(), m.Team2ID.String(), m.MatchTime, m.Stadium))

	got, err := NewQueries(db).ShareMatch(context.Background(), m.ID)
	require.NoError(t, err)
	assert.Equal(t, m, *got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLockMatchNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta("FOR UPDATE")).WillReturnRows(sqlmock.NewRows(matchCols))

	_, err = NewQueries(db).LockMatch(context.Background(), uuid.New())
	assert.ErrorIs(t, err, errs.ErrNotFound)
}

func TestTransactRollsBackRejectedGoal(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	m := newMatch(newSide("Home"), newSide("Away"))
	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("FOR SHARE")).
		WillReturnRows(sqlmock.NewRows(matchCols).
			AddRow(m.ID.String(), m.SeasonID.String(), m.Team1ID.String(), m.Team2ID.String(), m.MatchTime, m.Stadium))
	mock.ExpectRollback()

	rejected := errors.New("rejected")
	err = NewRepository(db).Transact(context.Background(), func(tx Tx) error {
		if _, err := tx.ShareMatch(context.Background(), m.ID); err != nil {
			return err
		}
		return rejected
	})
	assert.ErrorIs(t, err, rejected)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInsertGoalWithEvent(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	m := newMatch(newSide("Home"), newSide("Away"))
	g := models.Goal{ID: uuid.New(), MatchID: m.ID, TeamID: m.Team1ID, PlayerID: uuid.New(), GoalTypeID: uuid.New(), Minute: 44}

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO goals")).
		WithArgs(g.ID, g.MatchID, g.TeamID, g.PlayerID, g.GoalTypeID, 44, kickoff).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO outbox")).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err = NewRepository(db).Transact(context.Background(), func(tx Tx) error {
		if err := tx.InsertGoal(context.Background(), g, kickoff); err != nil {
			return err
		}
		return tx.AppendEvent(context.Background(), m.SeasonID, "GoalRecorded", map[string]int{"minute": 44}, kickoff)
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListSeasonGoals(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	season := uuid.New()
	g := models.Goal{ID: uuid.New(), MatchID: uuid.New(), TeamID: uuid.New(), PlayerID: uuid.New(), GoalTypeID: uuid.New(), Minute: 9}
	mock.ExpectQuery(regexp.QuoteMeta("JOIN matches m ON m.id = g.match_id")).
		WithArgs(season).
		WillReturnRows(sqlmock.NewRows([]string{"id", "match_id", "team_id", "player_id", "goal_type_id", "minute"}).
			AddRow(g.ID.String(), g.MatchID.String(), g.TeamID.String(), g.PlayerID.String(), g.GoalTypeID.String(), 9))

	goals, err := NewRepository(db).ListSeasonGoals(context.Background(), season)
	require.NoError(t, err)
	assert.Equal(t, []models.Goal{g}, goals)
}

func TestReportPlayedClaimsUnreportedMatches(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	m := newMatch(newSide("Home"), newSide("Away"))
	now := kickoff.Add(time.Hour)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("played_reported_at IS NULL AND match_time < $1")).
		WithArgs(now, 50).
		WillReturnRows(sqlmock.NewRows(matchCols).
			AddRow(m.ID.String(), m.SeasonID.String(), m.Team1ID.String(), m.Team2ID.String(), m.MatchTime, m.Stadium))
	mock.ExpectQuery(regexp.QuoteMeta("FROM goals")).
		WithArgs(m.ID).
		WillReturnRows(sqlmock.NewRows([]string{"id", "match_id", "team_id", "player_id", "goal_type_id", "minute"}))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE matches SET played_reported_at = $2")).
		WithArgs(m.ID, now).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO outbox")).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	app := NewApp(NewRepository(db), nil, nil, nil, nil, nil)
	outcomes, err := app.ReportPlayed(context.Background(), now, 50)
	require.NoError(t, err)
	require.Len(t, outcomes, 1)
	assert.Equal(t, models.WinnerDraw, outcomes[0].Winner)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRescheduleClearsPlayedReport(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	id := uuid.New()
	mock.ExpectExec(regexp.QuoteMeta("played_reported_at = NULL")).
		WithArgs(id, kickoff, "Central").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, NewQueries(db).Reschedule(context.Background(), id, kickoff, "Central"))
	assert.NoError(t, mock.ExpectationsWereMet())
}
