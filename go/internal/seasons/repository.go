package seasons

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sqlc-dev/pqtype"

	"github.com/mcdev12/footyleague/go/internal/errs"
	"github.com/mcdev12/footyleague/go/internal/models"
	"github.com/mcdev12/footyleague/go/internal/sqlutil"
)

const createSeason = `INSERT INTO seasons (id, name, start_date, end_date, regulation)
VALUES ($1, $2, $3, $4, $5)
RETURNING id, name, start_date, end_date, regulation`

const getSeason = `SELECT id, name, start_date, end_date, regulation FROM seasons WHERE id = $1`

const listSeasons = `SELECT id, name, start_date, end_date, regulation FROM seasons ORDER BY start_date DESC, id`

const listRunningSeasons = `SELECT id, name, start_date, end_date, regulation
FROM seasons
WHERE start_date <= $1 AND end_date >= $1
ORDER BY start_date, id`

const updateSeasonRegulation = `UPDATE seasons SET regulation = $2 WHERE id = $1
RETURNING id, name, start_date, end_date, regulation`

const countSeasonGoals = `SELECT count(*)
FROM goals g
JOIN matches m ON m.id = g.match_id
WHERE m.season_id = $1`

const createGoalType = `INSERT INTO goal_types (id, name) VALUES ($1, $2) RETURNING id, name`

const getGoalType = `SELECT id, name FROM goal_types WHERE id = $1`

const listGoalTypes = `SELECT id, name FROM goal_types ORDER BY name`

// Repository implements season data access operations
type Repository struct {
	db sqlutil.DBTX
}

// NewRepository creates a new seasons repository
func NewRepository(db sqlutil.DBTX) *Repository {
	return &Repository{db: db}
}

// CreateSeason stores a season with its regulation as JSONB
func (r *Repository) CreateSeason(ctx context.Context, season models.Season) (*models.Season, error) {
	reg, err := encodeRegulation(season.Regulation)
	if err != nil {
		return nil, err
	}

	out, err := scanSeason(r.db.QueryRowContext(ctx, createSeason,
		season.ID,
		season.Name,
		sqlutil.DateOnly(season.StartDate),
		sqlutil.DateOnly(season.EndDate),
		reg,
	))
	if err != nil {
		return nil, fmt.Errorf("failed to create season: %w", err)
	}
	return &out, nil
}

// GetSeason retrieves a season by ID
func (r *Repository) GetSeason(ctx context.Context, id uuid.UUID) (*models.Season, error) {
	season, err := scanSeason(r.db.QueryRowContext(ctx, getSeason, id))
	if err != nil {
		if sqlutil.IsNoRows(err) {
			return nil, errs.New(errs.KindNotFound, "season %s not found", id)
		}
		return nil, fmt.Errorf("failed to get season: %w", err)
	}
	return &season, nil
}

// ListSeasons retrieves all seasons, newest first
func (r *Repository) ListSeasons(ctx context.Context) ([]models.Season, error) {
	return r.list(ctx, listSeasons)
}

// ListRunningSeasons retrieves seasons whose date range contains day
func (r *Repository) ListRunningSeasons(ctx context.Context, day time.Time) ([]models.Season, error) {
	return r.list(ctx, listRunningSeasons, sqlutil.DateOnly(day))
}

// UpdateRegulation replaces a season's regulation
func (r *Repository) UpdateRegulation(ctx context.Context, id uuid.UUID, reg models.Regulation) (*models.Season, error) {
	raw, err := encodeRegulation(reg)
	if err != nil {
		return nil, err
	}

	season, err := scanSeason(r.db.QueryRowContext(ctx, updateSeasonRegulation, id, raw))
	if err != nil {
		if sqlutil.IsNoRows(err) {
			return nil, errs.New(errs.KindNotFound, "season %s not found", id)
		}
		return nil, fmt.Errorf("failed to update regulation: %w", err)
	}
	return &season, nil
}

// CountGoals returns how many goals were recorded in the season's matches
func (r *Repository) CountGoals(ctx context.Context, seasonID uuid.UUID) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, countSeasonGoals, seasonID).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count season goals: %w", err)
	}
	return n, nil
}

// CreateGoalType adds a goal type
func (r *Repository) CreateGoalType(ctx context.Context, name string) (*models.GoalType, error) {
	var gt models.GoalType
	if err := r.db.QueryRowContext(ctx, createGoalType, uuid.New(), name).Scan(&gt.ID, &gt.Name); err != nil {
		if sqlutil.IsUniqueViolation(err, "") {
			return nil, errs.New(errs.KindInvalidArgument, "goal type %q already exists", name)
		}
		return nil, fmt.Errorf("failed to create goal type: %w", err)
	}
	return &gt, nil
}

// GetGoalType retrieves a goal type by ID
func (r *Repository) GetGoalType(ctx context.Context, id uuid.UUID) (*models.GoalType, error) {
	var gt models.GoalType
	if err := r.db.QueryRowContext(ctx, getGoalType, id).Scan(&gt.ID, &gt.Name); err != nil {
		if sqlutil.IsNoRows(err) {
			return nil, errs.New(errs.KindNotFound, "goal type %s not found", id)
		}
		return nil, fmt.Errorf("failed to get goal type: %w", err)
	}
	return &gt, nil
}

// ListGoalTypes retrieves the goal type catalogue
func (r *Repository) ListGoalTypes(ctx context.Context) ([]models.GoalType, error) {
	rows, err := r.db.QueryContext(ctx, listGoalTypes)
	if err != nil {
		return nil, fmt.Errorf("failed to list goal types: %w", err)
	}
	defer rows.Close()

	out := []models.GoalType{}
	for rows.Next() {
		var gt models.GoalType
		if err := rows.Scan(&gt.ID, &gt.Name); err != nil {
			return nil, fmt.Errorf("failed to scan goal type: %w", err)
		}
		out = append(out, gt)
	}
	return out, rows.Err()
}

func (r *Repository) list(ctx context.Context, query string, args ...any) ([]models.Season, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list seasons: %w", err)
	}
	defer rows.Close()

	seasons := []models.Season{}
	for rows.Next() {
		s, err := scanSeason(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan season: %w", err)
		}
		seasons = append(seasons, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate seasons: %w", err)
	}
	return seasons, nil
}

func encodeRegulation(reg models.Regulation) (pqtype.NullRawMessage, error) {
	data, err := json.Marshal(reg)
	if err != nil {
		return pqtype.NullRawMessage{}, fmt.Errorf("failed to marshal regulation: %w", err)
	}
	return pqtype.NullRawMessage{RawMessage: data, Valid: true}, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanSeason(row scanner) (models.Season, error) {
	var (
		s   models.Season
		reg pqtype.NullRawMessage
	)
	if err := row.Scan(&s.ID, &s.Name, &s.StartDate, &s.EndDate, &reg); err != nil {
		return models.Season{}, err
	}
	if reg.Valid {
		if err := json.Unmarshal(reg.RawMessage, &s.Regulation); err != nil {
			return models.Season{}, fmt.Errorf("failed to decode regulation of season %s: %w", s.ID, err)
		}
	}
	return s, nil
}
