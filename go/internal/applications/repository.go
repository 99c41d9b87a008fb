package applications

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mcdev12/footyleague/go/internal/errs"
	"github.com/mcdev12/footyleague/go/internal/models"
	"github.com/mcdev12/footyleague/go/internal/outbox"
	"github.com/mcdev12/footyleague/go/internal/sqlutil"
)

// activePairIndex is the partial unique index over (team_id, season_id) for
// pending and accepted rows.
const activePairIndex = "applications_active_pair_idx"

const insertApplication = `INSERT INTO applications (id, team_id, season_id, status, submitted_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $5)`

const applicationColumns = `id, team_id, season_id, status, submitted_at`

const getApplication = `SELECT ` + applicationColumns + ` FROM applications WHERE id = $1`

const getApplicationForUpdate = getApplication + ` FOR UPDATE`

const listActiveForPair = `SELECT ` + applicationColumns + `
FROM applications
WHERE team_id = $1 AND season_id = $2 AND status IN ('pending', 'accepted')`

const listBySeason = `SELECT ` + applicationColumns + `
FROM applications
WHERE season_id = $1
ORDER BY submitted_at, id`

const listAcceptedTeams = `SELECT team_id
FROM applications
WHERE season_id = $1 AND status = 'accepted'
ORDER BY submitted_at, id`

const updateApplicationStatus = `UPDATE applications
SET status = $3, updated_at = $4
WHERE id = $1 AND status = $2`

// Queries runs application statements against a connection or transaction
type Queries struct {
	db sqlutil.DBTX
}

func NewQueries(db sqlutil.DBTX) *Queries {
	return &Queries{db: db}
}

// ListActive returns the pending or accepted applications for a pair
func (q *Queries) ListActive(ctx context.Context, teamID, seasonID uuid.UUID) ([]models.Application, error) {
	return q.list(ctx, listActiveForPair, teamID, seasonID)
}

// Insert stores a new application. A concurrent insert for the same pair
// surfaces as DuplicateApplication through the partial unique index.
func (q *Queries) Insert(ctx context.Context, a models.Application) error {
	_, err := q.db.ExecContext(ctx, insertApplication, a.ID, a.TeamID, a.SeasonID, string(a.Status), a.SubmittedAt)
	if err != nil {
		if sqlutil.IsUniqueViolation(err, activePairIndex) {
			return errs.New(errs.KindDuplicateApplication,
				"team %s already has an active application for season %s", a.TeamID, a.SeasonID)
		}
		return fmt.Errorf("failed to insert application: %w", err)
	}
	return nil
}

// GetForUpdate loads an application and locks its row
func (q *Queries) GetForUpdate(ctx context.Context, id uuid.UUID) (*models.Application, error) {
	return q.get(ctx, getApplicationForUpdate, id)
}

// UpdateStatus moves an application from one status to another. It fails with
// InvalidTransition when the stored status is no longer from.
func (q *Queries) UpdateStatus(ctx context.Context, id uuid.UUID, from, to models.ApplicationStatus, at time.Time) error {
	res, err := q.db.ExecContext(ctx, updateApplicationStatus, id, string(from), string(to), at)
	if err != nil {
		if sqlutil.IsUniqueViolation(err, activePairIndex) {
			return errs.New(errs.KindDuplicateApplication, "another active application exists for this pair")
		}
		return fmt.Errorf("failed to update application status: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if n == 0 {
		return errs.New(errs.KindInvalidTransition, "application %s is no longer %s", id, from)
	}
	return nil
}

// AppendEvent writes a domain event to the outbox in the current transaction
func (q *Queries) AppendEvent(ctx context.Context, seasonID uuid.UUID, eventType string, payload any, at time.Time) error {
	_, err := outbox.InsertTx(ctx, q.db, seasonID, eventType, payload, at)
	return err
}

func (q *Queries) get(ctx context.Context, query string, id uuid.UUID) (*models.Application, error) {
	a, err := scanApplication(q.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if sqlutil.IsNoRows(err) {
			return nil, errs.New(errs.KindNotFound, "application %s not found", id)
		}
		return nil, fmt.Errorf("failed to get application: %w", err)
	}
	return &a, nil
}

func (q *Queries) list(ctx context.Context, query string, args ...any) ([]models.Application, error) {
	rows, err := q.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list applications: %w", err)
	}
	defer rows.Close()

	out := []models.Application{}
	for rows.Next() {
		a, err := scanApplication(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan application: %w", err)
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate applications: %w", err)
	}
	return out, nil
}

// Repository implements application data access operations
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new applications repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Transact runs fn in a single transaction
func (r *Repository) Transact(ctx context.Context, fn func(tx Tx) error) error {
	return sqlutil.Run(ctx, r.db, txQueries, func(q *Queries) error {
		return fn(q)
	})
}

func txQueries(tx *sql.Tx) *Queries {
	return NewQueries(tx)
}

// GetApplication retrieves an application by ID
func (r *Repository) GetApplication(ctx context.Context, id uuid.UUID) (*models.Application, error) {
	return NewQueries(r.db).get(ctx, getApplication, id)
}

// ListBySeason retrieves every application of a season in submission order
func (r *Repository) ListBySeason(ctx context.Context, seasonID uuid.UUID) ([]models.Application, error) {
	return NewQueries(r.db).list(ctx, listBySeason, seasonID)
}

// ListAcceptedTeamIDs retrieves the teams admitted to a season in submission order
func (r *Repository) ListAcceptedTeamIDs(ctx context.Context, seasonID uuid.UUID) ([]uuid.UUID, error) {
	rows, err := r.db.QueryContext(ctx, listAcceptedTeams, seasonID)
	if err != nil {
		return nil, fmt.Errorf("failed to list accepted teams: %w", err)
	}
	defer rows.Close()

	ids := []uuid.UUID{}
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan team id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate accepted teams: %w", err)
	}
	return ids, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanApplication(row scanner) (models.Application, error) {
	var a models.Application
	err := row.Scan(&a.ID, &a.TeamID, &a.SeasonID, &a.Status, &a.SubmittedAt)
	return a, err
}
