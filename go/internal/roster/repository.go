package roster

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/mcdev12/footyleague/go/internal/errs"
	"github.com/mcdev12/footyleague/go/internal/models"
	"github.com/mcdev12/footyleague/go/internal/sqlutil"
)

const lockTeam = `SELECT id, name, home_stadium FROM teams WHERE id = $1 FOR UPDATE`

const listPlayers = `SELECT id, team_id, name, birth_date, player_type
FROM players
WHERE team_id = $1
ORDER BY name, id`

const getPlayer = `SELECT id, team_id, name, birth_date, player_type FROM players WHERE id = $1`

const insertPlayer = `INSERT INTO players (id, team_id, name, birth_date, player_type)
VALUES ($1, $2, $3, $4, $5)`

const updatePlayer = `UPDATE players SET name = $2, birth_date = $3, player_type = $4 WHERE id = $1`

const deletePlayer = `DELETE FROM players WHERE id = $1`

// PlayerWriter is the write side available while a team is locked
type PlayerWriter interface {
	InsertPlayer(ctx context.Context, p models.Player) error
	UpdatePlayer(ctx context.Context, p models.Player) error
}

// Queries runs roster statements against a connection or transaction
type Queries struct {
	db sqlutil.DBTX
}

func NewQueries(db sqlutil.DBTX) *Queries {
	return &Queries{db: db}
}

func (q *Queries) lockTeam(ctx context.Context, teamID uuid.UUID) (models.Team, error) {
	var team models.Team
	err := q.db.QueryRowContext(ctx, lockTeam, teamID).Scan(&team.ID, &team.Name, &team.HomeStadium)
	if err != nil {
		if sqlutil.IsNoRows(err) {
			return models.Team{}, errs.New(errs.KindNotFound, "team %s not found", teamID)
		}
		return models.Team{}, fmt.Errorf("failed to lock team: %w", err)
	}

	team.Roster, err = q.listPlayers(ctx, teamID)
	if err != nil {
		return models.Team{}, err
	}
	return team, nil
}

func (q *Queries) listPlayers(ctx context.Context, teamID uuid.UUID) ([]models.Player, error) {
	rows, err := q.db.QueryContext(ctx, listPlayers, teamID)
	if err != nil {
		return nil, fmt.Errorf("failed to list players: %w", err)
	}
	defer rows.Close()

	players := []models.Player{}
	for rows.Next() {
		p, err := scanPlayer(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan player: %w", err)
		}
		players = append(players, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate players: %w", err)
	}
	return players, nil
}

// InsertPlayer adds a player row
func (q *Queries) InsertPlayer(ctx context.Context, p models.Player) error {
	_, err := q.db.ExecContext(ctx, insertPlayer, p.ID, p.TeamID, p.Name, sqlutil.DateOnly(p.BirthDate), string(p.Type))
	if err != nil {
		return fmt.Errorf("failed to insert player: %w", err)
	}
	return nil
}

// UpdatePlayer rewrites a player's mutable fields
func (q *Queries) UpdatePlayer(ctx context.Context, p models.Player) error {
	_, err := q.db.ExecContext(ctx, updatePlayer, p.ID, p.Name, sqlutil.DateOnly(p.BirthDate), string(p.Type))
	if err != nil {
		return fmt.Errorf("failed to update player: %w", err)
	}
	return nil
}

// Repository implements roster data access. Roster changes run with the team
// row locked so concurrent additions cannot both pass the size checks.
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new roster repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// WithTeamLocked loads the team and its roster under a row lock and runs fn in
// the same transaction.
func (r *Repository) WithTeamLocked(ctx context.Context, teamID uuid.UUID, fn func(team models.Team, w PlayerWriter) error) error {
	return sqlutil.Run(ctx, r.db, txQueries, func(q *Queries) error {
		team, err := q.lockTeam(ctx, teamID)
		if err != nil {
			return err
		}
		return fn(team, q)
	})
}

func txQueries(tx *sql.Tx) *Queries {
	return NewQueries(tx)
}

// GetPlayer retrieves a player by ID
func (r *Repository) GetPlayer(ctx context.Context, id uuid.UUID) (*models.Player, error) {
	p, err := scanPlayer(r.db.QueryRowContext(ctx, getPlayer, id))
	if err != nil {
		if sqlutil.IsNoRows(err) {
			return nil, errs.New(errs.KindNotFound, "player %s not found", id)
		}
		return nil, fmt.Errorf("failed to get player: %w", err)
	}
	return &p, nil
}

// ListPlayers retrieves a team's roster
func (r *Repository) ListPlayers(ctx context.Context, teamID uuid.UUID) ([]models.Player, error) {
	return NewQueries(r.db).listPlayers(ctx, teamID)
}

// DeletePlayer removes a player
func (r *Repository) DeletePlayer(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, deletePlayer, id)
	if err != nil {
		return fmt.Errorf("failed to delete player: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return errs.New(errs.KindNotFound, "player %s not found", id)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanPlayer(row scanner) (models.Player, error) {
	var p models.Player
	err := row.Scan(&p.ID, &p.TeamID, &p.Name, &p.BirthDate, &p.Type)
	return p, err
}
