package matches

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

const matchColumns = `id, season_id, team1_id, team2_id, match_time, stadium`

const insertMatch = `INSERT INTO matches (` + matchColumns + `) VALUES ($1, $2, $3, $4, $5, $6)`

const getMatch = `SELECT ` + matchColumns + ` FROM matches WHERE id = $1`

const lockMatch = getMatch + ` FOR UPDATE`

const shareMatch = getMatch + ` FOR SHARE`

const listSeasonMatches = `SELECT ` + matchColumns + `
FROM matches
WHERE season_id = $1
ORDER BY match_time, id`

// A moved match is reported again once its new kick-off passes.
const rescheduleMatch = `UPDATE matches SET match_time = $2, stadium = $3, played_reported_at = NULL WHERE id = $1`

const lockUnreportedPlayed = `SELECT ` + matchColumns + `
FROM matches
WHERE played_reported_at IS NULL AND match_time < $1
ORDER BY match_time, id
LIMIT $2
FOR UPDATE SKIP LOCKED`

const markPlayedReported = `UPDATE matches SET played_reported_at = $2 WHERE id = $1`

const goalColumns = `id, match_id, team_id, player_id, goal_type_id, minute`

const insertGoal = `INSERT INTO goals (` + goalColumns + `, created_at) VALUES ($1, $2, $3, $4, $5, $6, $7)`

const listMatchGoals = `SELECT ` + goalColumns + `
FROM goals
WHERE match_id = $1
ORDER BY minute, created_at, id`

const listSeasonGoals = `SELECT g.id, g.match_id, g.team_id, g.player_id, g.goal_type_id, g.minute
FROM goals g
JOIN matches m ON m.id = g.match_id
WHERE m.season_id = $1
ORDER BY g.match_id, g.minute, g.created_at, g.id`

const countMatchGoals = `SELECT count(*) FROM goals WHERE match_id = $1`

// Queries runs match statements against a connection or transaction
type Queries struct {
	db sqlutil.DBTX
}

func NewQueries(db sqlutil.DBTX) *Queries {
	return &Queries{db: db}
}

// LockMatch loads a match for an exclusive change of its schedule
func (q *Queries) LockMatch(ctx context.Context, id uuid.UUID) (*models.Match, error) {
	return q.getMatch(ctx, lockMatch, id)
}

// ShareMatch loads a match and blocks rescheduling until the transaction ends
func (q *Queries) ShareMatch(ctx context.Context, id uuid.UUID) (*models.Match, error) {
	return q.getMatch(ctx, shareMatch, id)
}

// InsertMatch stores a new fixture
func (q *Queries) InsertMatch(ctx context.Context, m models.Match) error {
	_, err := q.db.ExecContext(ctx, insertMatch, m.ID, m.SeasonID, m.Team1ID, m.Team2ID, m.MatchTime, m.Stadium)
	if err != nil {
		return fmt.Errorf("failed to insert match: %w", err)
	}
	return nil
}

// Reschedule changes time and stadium of a match
func (q *Queries) Reschedule(ctx context.Context, id uuid.UUID, at time.Time, stadium string) error {
	if _, err := q.db.ExecContext(ctx, rescheduleMatch, id, at, stadium); err != nil {
		return fmt.Errorf("failed to reschedule match: %w", err)
	}
	return nil
}

// CountGoals returns the number of goals recorded in a match
func (q *Queries) CountGoals(ctx context.Context, matchID uuid.UUID) (int, error) {
	var n int
	if err := q.db.QueryRowContext(ctx, countMatchGoals, matchID).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count goals: %w", err)
	}
	return n, nil
}

// LockUnreportedPlayed claims up to limit matches that kicked off before now
// and have not been reported yet. Rows claimed by another worker are skipped.
func (q *Queries) LockUnreportedPlayed(ctx context.Context, now time.Time, limit int) ([]models.Match, error) {
	rows, err := q.db.QueryContext(ctx, lockUnreportedPlayed, now, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list unreported matches: %w", err)
	}
	defer rows.Close()

	out := []models.Match{}
	for rows.Next() {
		m, err := scanMatch(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan match: %w", err)
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate matches: %w", err)
	}
	return out, nil
}

// MarkPlayedReported stamps a match as reported
func (q *Queries) MarkPlayedReported(ctx context.Context, id uuid.UUID, at time.Time) error {
	if _, err := q.db.ExecContext(ctx, markPlayedReported, id, at); err != nil {
		return fmt.Errorf("failed to mark match reported: %w", err)
	}
	return nil
}

// MatchGoals lists the goals of a match inside the current transaction
func (q *Queries) MatchGoals(ctx context.Context, matchID uuid.UUID) ([]models.Goal, error) {
	return q.listGoals(ctx, listMatchGoals, matchID)
}

// InsertGoal appends a goal
func (q *Queries) InsertGoal(ctx context.Context, g models.Goal, at time.Time) error {
	_, err := q.db.ExecContext(ctx, insertGoal, g.ID, g.MatchID, g.TeamID, g.PlayerID, g.GoalTypeID, g.Minute, at)
	if err != nil {
		return fmt.Errorf("failed to insert goal: %w", err)
	}
	return nil
}

// AppendEvent writes a domain event to the outbox in the current transaction
func (q *Queries) AppendEvent(ctx context.Context, seasonID uuid.UUID, eventType string, payload any, at time.Time) error {
	_, err := outbox.InsertTx(ctx, q.db, seasonID, eventType, payload, at)
	return err
}

func (q *Queries) getMatch(ctx context.Context, query string, id uuid.UUID) (*models.Match, error) {
	m, err := scanMatch(q.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if sqlutil.IsNoRows(err) {
			return nil, errs.New(errs.KindNotFound, "match %s not found", id)
		}
		return nil, fmt.Errorf("failed to get match: %w", err)
	}
	return &m, nil
}

func (q *Queries) listGoals(ctx context.Context, query string, arg uuid.UUID) ([]models.Goal, error) {
	rows, err := q.db.QueryContext(ctx, query, arg)
	if err != nil {
		return nil, fmt.Errorf("failed to list goals: %w", err)
	}
	defer rows.Close()

	goals := []models.Goal{}
	for rows.Next() {
		var g models.Goal
		if err := rows.Scan(&g.ID, &g.MatchID, &g.TeamID, &g.PlayerID, &g.GoalTypeID, &g.Minute); err != nil {
			return nil, fmt.Errorf("failed to scan goal: %w", err)
		}
		goals = append(goals, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate goals: %w", err)
	}
	return goals, nil
}

// Repository implements match and goal data access operations
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new matches repository
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

// GetMatch retrieves a match by ID
func (r *Repository) GetMatch(ctx context.Context, id uuid.UUID) (*models.Match, error) {
	return NewQueries(r.db).getMatch(ctx, getMatch, id)
}

// ListMatches retrieves a season's fixtures in kick-off order
func (r *Repository) ListMatches(ctx context.Context, seasonID uuid.UUID) ([]models.Match, error) {
	rows, err := r.db.QueryContext(ctx, listSeasonMatches, seasonID)
	if err != nil {
		return nil, fmt.Errorf("failed to list matches: %w", err)
	}
	defer rows.Close()

	out := []models.Match{}
	for rows.Next() {
		m, err := scanMatch(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan match: %w", err)
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate matches: %w", err)
	}
	return out, nil
}

// ListGoals retrieves the goals of one match
func (r *Repository) ListGoals(ctx context.Context, matchID uuid.UUID) ([]models.Goal, error) {
	return NewQueries(r.db).listGoals(ctx, listMatchGoals, matchID)
}

// ListSeasonGoals retrieves every goal scored in a season
func (r *Repository) ListSeasonGoals(ctx context.Context, seasonID uuid.UUID) ([]models.Goal, error) {
	return NewQueries(r.db).listGoals(ctx, listSeasonGoals, seasonID)
}

type scanner interface {
	Scan(dest ...any) error
}

func scanMatch(row scanner) (models.Match, error) {
	var m models.Match
	err := row.Scan(&m.ID, &m.SeasonID, &m.Team1ID, &m.Team2ID, &m.MatchTime, &m.Stadium)
	return m, err
}
