package outbox

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sqlc-dev/pqtype"

	"github.com/mcdev12/footyleague/go/internal/sqlutil"
)

const insertOutboxEvent = `INSERT INTO outbox (id, season_id, event_type, payload, created_at)
VALUES ($1, $2, $3, $4, $5)`

const fetchUnsentOutbox = `SELECT id, season_id, event_type, payload, created_at
FROM outbox
WHERE sent_at IS NULL
ORDER BY created_at, id
LIMIT $1`

const fetchOutboxByID = `SELECT id, season_id, event_type, payload, created_at
FROM outbox
WHERE id = $1 AND sent_at IS NULL`

const markOutboxSent = `UPDATE outbox SET sent_at = $2 WHERE id = $1`

const countUnsentOutbox = `SELECT count(*) FROM outbox WHERE sent_at IS NULL`

// InsertTx writes an event in the caller's transaction so it commits or rolls
// back together with the state change it describes.
func InsertTx(ctx context.Context, db sqlutil.DBTX, seasonID uuid.UUID, eventType string, payload any, at time.Time) (uuid.UUID, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to marshal %s payload: %w", eventType, err)
	}

	id := uuid.New()
	_, err = db.ExecContext(ctx, insertOutboxEvent,
		id,
		seasonID,
		eventType,
		pqtype.NullRawMessage{RawMessage: data, Valid: true},
		at,
	)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to insert %s outbox event: %w", eventType, err)
	}
	return id, nil
}

// Repository reads and acknowledges outbox rows for the listener
type Repository struct {
	db sqlutil.DBTX
}

// NewRepository creates a new outbox repository
func NewRepository(db sqlutil.DBTX) *Repository {
	return &Repository{db: db}
}

// FetchUnsent returns up to limit unsent events, oldest first
func (r *Repository) FetchUnsent(ctx context.Context, limit int) ([]OutboxEvent, error) {
	rows, err := r.db.QueryContext(ctx, fetchUnsentOutbox, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch unsent outbox events: %w", err)
	}
	defer rows.Close()

	var events []OutboxEvent
	for rows.Next() {
		event, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan outbox event: %w", err)
		}
		events = append(events, event)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate outbox events: %w", err)
	}
	return events, nil
}

// FetchByID returns an unsent event by id
func (r *Repository) FetchByID(ctx context.Context, id uuid.UUID) (*OutboxEvent, error) {
	event, err := scanEvent(r.db.QueryRowContext(ctx, fetchOutboxByID, id))
	if err != nil {
		if sqlutil.IsNoRows(err) {
			return nil, fmt.Errorf("outbox event %s not found or already sent", id)
		}
		return nil, fmt.Errorf("failed to fetch outbox event by ID: %w", err)
	}
	return &event, nil
}

// MarkSent stamps an event as delivered
func (r *Repository) MarkSent(ctx context.Context, id uuid.UUID, at time.Time) error {
	if _, err := r.db.ExecContext(ctx, markOutboxSent, id, at); err != nil {
		return fmt.Errorf("failed to mark outbox event as sent: %w", err)
	}
	return nil
}

// CountUnsent returns the current outbox backlog
func (r *Repository) CountUnsent(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, countUnsentOutbox).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count unsent outbox events: %w", err)
	}
	return n, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanEvent(row scanner) (OutboxEvent, error) {
	var (
		event   OutboxEvent
		payload pqtype.NullRawMessage
	)
	if err := row.Scan(&event.ID, &event.SeasonID, &event.EventType, &payload, &event.CreatedAt); err != nil {
		return OutboxEvent{}, err
	}
	if payload.Valid {
		event.Payload = payload.RawMessage
	}
	return event, nil
}
