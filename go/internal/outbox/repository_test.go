package outbox

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInsertTxWritesJSONPayload(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	seasonID := uuid.New()
	at := time.Date(2026, 4, 1, 12, 0, 0, 0, time.UTC)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO outbox")).
		WithArgs(sqlmock.AnyArg(), seasonID, "GoalRecorded", []byte(`{"minute":12}`), at).
		WillReturnResult(sqlmock.NewResult(0, 1))

	id, err := InsertTx(context.Background(), db, seasonID, "GoalRecorded", map[string]int{"minute": 12}, at)
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, id)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFetchUnsentScansRows(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	id, seasonID := uuid.New(), uuid.New()
	created := time.Date(2026, 4, 1, 12, 0, 0, 0, time.UTC)

	rows := sqlmock.NewRows([]string{"id", "season_id", "event_type", "payload", "created_at"}).
		AddRow(id.String(), seasonID.String(), "ApplicationDecided", []byte(`{"status":"accepted"}`), created)
	mock.ExpectQuery(regexp.QuoteMeta("FROM outbox")).WithArgs(50).WillReturnRows(rows)

	got, err := NewRepository(db).FetchUnsent(context.Background(), 50)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, id, got[0].ID)
	assert.Equal(t, seasonID, got[0].SeasonID)
	assert.JSONEq(t, `{"status":"accepted"}`, string(got[0].Payload))
	assert.Equal(t, created, got[0].CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFetchByIDNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	id := uuid.New()
	mock.ExpectQuery(regexp.QuoteMeta("WHERE id = $1 AND sent_at IS NULL")).
		WithArgs(id).
		WillReturnError(sql.ErrNoRows)

	_, err = NewRepository(db).FetchByID(context.Background(), id)
	assert.ErrorContains(t, err, "not found or already sent")
}

func TestMarkSentAndCount(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	id := uuid.New()
	at := time.Date(2026, 4, 1, 12, 0, 0, 0, time.UTC)
	mock.ExpectExec(regexp.QuoteMeta("UPDATE outbox SET sent_at")).
		WithArgs(id, at).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT count(*) FROM outbox")).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

	repo := NewRepository(db)
	require.NoError(t, repo.MarkSent(context.Background(), id, at))
	n, err := repo.CountUnsent(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.NoError(t, mock.ExpectationsWereMet())
}
