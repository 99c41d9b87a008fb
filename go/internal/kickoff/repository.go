package kickoff

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mcdev12/footyleague/go/internal/events"
	"github.com/mcdev12/footyleague/go/internal/outbox"
	"github.com/mcdev12/footyleague/go/internal/sqlutil"
)

const insertIneligibility = `INSERT INTO team_ineligibility (team_id, season_id, reported_at)
VALUES ($1, $2, $3)
ON CONFLICT (team_id, season_id) DO NOTHING`

const deleteIneligibility = `DELETE FROM team_ineligibility WHERE team_id = $1 AND season_id = $2`

// Repository keeps the reported ineligible teams so a restart does not repeat
// the TeamIneligible events
type Repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// ReportIneligible records the pair and writes the event in one transaction.
// It reports false when the pair was already recorded.
func (r *Repository) ReportIneligible(ctx context.Context, teamID, seasonID uuid.UUID, payload events.TeamIneligiblePayload, at time.Time) (bool, error) {
	reported := false
	err := sqlutil.Run(ctx, r.db, func(tx *sql.Tx) *sql.Tx { return tx }, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, insertIneligibility, teamID, seasonID, at)
		if err != nil {
			return fmt.Errorf("failed to record ineligible team: %w", err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to record ineligible team: %w", err)
		}
		if n == 0 {
			return nil
		}
		if _, err := outbox.InsertTx(ctx, tx, seasonID, events.TypeTeamIneligible, payload, at); err != nil {
			return err
		}
		reported = true
		return nil
	})
	if err != nil {
		return false, err
	}
	return reported, nil
}

// ClearIneligible forgets the pair once the team is eligible again
func (r *Repository) ClearIneligible(ctx context.Context, teamID, seasonID uuid.UUID) error {
	if _, err := r.db.ExecContext(ctx, deleteIneligibility, teamID, seasonID); err != nil {
		return fmt.Errorf("failed to clear ineligible team: %w", err)
	}
	return nil
}
