package teams

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mcdev12/footyleague/go/internal/errs"
	"github.com/mcdev12/footyleague/go/internal/models"
	"github.com/mcdev12/footyleague/go/internal/sqlutil"
)

const createTeam = `INSERT INTO teams (id, name, home_stadium, created_at)
VALUES ($1, $2, $3, $4)
RETURNING id, name, home_stadium`

const getTeam = `SELECT id, name, home_stadium FROM teams WHERE id = $1`

const listTeams = `SELECT id, name, home_stadium FROM teams ORDER BY name, id LIMIT $1 OFFSET $2`

const updateTeam = `UPDATE teams
SET name = COALESCE($2, name), home_stadium = COALESCE($3, home_stadium)
WHERE id = $1
RETURNING id, name, home_stadium`

const lockTeam = `SELECT id FROM teams WHERE id = $1 FOR UPDATE`

// Players and withdrawn or rejected applications go with the team; these do not.
const countTeamCommitments = `SELECT
    (SELECT count(*) FROM applications WHERE team_id = $1 AND status IN ('pending', 'accepted')),
    (SELECT count(*) FROM matches WHERE team1_id = $1 OR team2_id = $1)`

const deleteTeam = `DELETE FROM teams WHERE id = $1`

const listTeamPlayers = `SELECT id, team_id, name, birth_date, player_type
FROM players
WHERE team_id = $1
ORDER BY name, id`

// Repository implements team data access operations
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new teams repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// CreateTeam creates a new team with an empty roster
func (r *Repository) CreateTeam(ctx context.Context, req CreateTeamRequest) (*models.Team, error) {
	team, err := scanTeam(r.db.QueryRowContext(ctx, createTeam, uuid.New(), req.Name, req.HomeStadium, time.Now().UTC()))
	if err != nil {
		return nil, fmt.Errorf("failed to create team: %w", err)
	}
	team.Roster = []models.Player{}
	return &team, nil
}

// GetTeam retrieves a team together with its roster
func (r *Repository) GetTeam(ctx context.Context, id uuid.UUID) (*models.Team, error) {
	team, err := scanTeam(r.db.QueryRowContext(ctx, getTeam, id))
	if err != nil {
		if sqlutil.IsNoRows(err) {
			return nil, errs.New(errs.KindNotFound, "team %s not found", id)
		}
		return nil, fmt.Errorf("failed to get team: %w", err)
	}

	roster, err := r.listPlayers(ctx, id)
	if err != nil {
		return nil, err
	}
	team.Roster = roster
	return &team, nil
}

// ListTeams retrieves one page of teams without rosters
func (r *Repository) ListTeams(ctx context.Context, limit, offset int) ([]models.Team, error) {
	rows, err := r.db.QueryContext(ctx, listTeams, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list teams: %w", err)
	}
	defer rows.Close()

	teams := []models.Team{}
	for rows.Next() {
		team, err := scanTeam(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan team: %w", err)
		}
		teams = append(teams, team)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate teams: %w", err)
	}
	return teams, nil
}

// UpdateTeam applies the non-nil fields of req
func (r *Repository) UpdateTeam(ctx context.Context, id uuid.UUID, req UpdateTeamRequest) (*models.Team, error) {
	team, err := scanTeam(r.db.QueryRowContext(ctx, updateTeam, id, req.Name, req.HomeStadium))
	if err != nil {
		if sqlutil.IsNoRows(err) {
			return nil, errs.New(errs.KindNotFound, "team %s not found", id)
		}
		return nil, fmt.Errorf("failed to update team: %w", err)
	}
	return &team, nil
}

// DeleteTeam deletes a team that has no active application and no fixture.
// The team row is locked first so a concurrent apply or schedule either
// commits before the check or waits for the delete.
func (r *Repository) DeleteTeam(ctx context.Context, id uuid.UUID) error {
	return sqlutil.Run(ctx, r.db, func(tx *sql.Tx) *sql.Tx { return tx }, func(tx *sql.Tx) error {
		var locked uuid.UUID
		if err := tx.QueryRowContext(ctx, lockTeam, id).Scan(&locked); err != nil {
			if sqlutil.IsNoRows(err) {
				return errs.New(errs.KindNotFound, "team %s not found", id)
			}
			return fmt.Errorf("failed to lock team: %w", err)
		}

		var applications, matches int
		if err := tx.QueryRowContext(ctx, countTeamCommitments, id).Scan(&applications, &matches); err != nil {
			return fmt.Errorf("failed to count team commitments: %w", err)
		}
		if applications > 0 || matches > 0 {
			return errs.New(errs.KindTeamInUse, "team %s has %d active applications and %d matches", id, applications, matches)
		}

		if _, err := tx.ExecContext(ctx, deleteTeam, id); err != nil {
			return fmt.Errorf("failed to delete team: %w", err)
		}
		return nil
	})
}

func (r *Repository) listPlayers(ctx context.Context, teamID uuid.UUID) ([]models.Player, error) {
	rows, err := r.db.QueryContext(ctx, listTeamPlayers, teamID)
	if err != nil {
		return nil, fmt.Errorf("failed to list roster: %w", err)
	}
	defer rows.Close()

	players := []models.Player{}
	for rows.Next() {
		var p models.Player
		if err := rows.Scan(&p.ID, &p.TeamID, &p.Name, &p.BirthDate, &p.Type); err != nil {
			return nil, fmt.Errorf("failed to scan player: %w", err)
		}
		players = append(players, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate roster: %w", err)
	}
	return players, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanTeam(row scanner) (models.Team, error) {
	var t models.Team
	err := row.Scan(&t.ID, &t.Name, &t.HomeStadium)
	return t, err
}
