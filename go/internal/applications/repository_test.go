package applications

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcdev12/footyleague/go/internal/errs"
	"github.com/mcdev12/footyleague/go/internal/models"
)

func TestInsertMapsUniqueViolationToDuplicate(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	app := NewApplication(uuid.New(), uuid.New(), submittedAt)
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO applications")).
		WillReturnError(&pq.Error{Code: "23505", Constraint: activePairIndex})

	err = NewQueries(db).Insert(context.Background(), app)
	assert.ErrorIs(t, err, errs.ErrDuplicateApplication)
}

func TestUpdateStatusDetectsStaleRow(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	id := uuid.New()
	mock.ExpectExec(regexp.QuoteMeta("UPDATE applications")).
		WithArgs(id, "pending", "accepted", submittedAt).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err = NewQueries(db).UpdateStatus(context.Background(), id,
		models.ApplicationStatusPending, models.ApplicationStatusAccepted, submittedAt)
	assert.ErrorIs(t, err, errs.ErrInvalidTransition)
}

func TestTransactWritesEventInSameTransaction(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	app := NewApplication(uuid.New(), uuid.New(), submittedAt)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO applications")).
		WithArgs(app.ID, app.TeamID, app.SeasonID, "pending", submittedAt).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO outbox")).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err = NewRepository(db).Transact(context.Background(), func(tx Tx) error {
		if err := tx.Insert(context.Background(), app); err != nil {
			return err
		}
		return tx.AppendEvent(context.Background(), app.SeasonID, "ApplicationSubmitted", map[string]string{}, submittedAt)
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListAcceptedTeamIDs(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	season, a, b := uuid.New(), uuid.New(), uuid.New()
	mock.ExpectQuery(regexp.QuoteMeta("status = 'accepted'")).
		WithArgs(season).
		WillReturnRows(sqlmock.NewRows([]string{"team_id"}).AddRow(a.String()).AddRow(b.String()))

	ids, err := NewRepository(db).ListAcceptedTeamIDs(context.Background(), season)
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{a, b}, ids)
}
