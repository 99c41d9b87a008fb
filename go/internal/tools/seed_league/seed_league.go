package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mcdev12/footyleague/go/internal/dbconfig"
	"github.com/mcdev12/footyleague/go/internal/models"
	"github.com/mcdev12/footyleague/go/internal/seasons"
)

// Snapshot mirrors the seed JSON file
type Snapshot struct {
	Seasons []struct {
		ID         uuid.UUID          `json:"id"`
		Name       string             `json:"name"`
		StartDate  string             `json:"start_date"`
		EndDate    string             `json:"end_date"`
		Regulation *models.Regulation `json:"regulation"`
	} `json:"seasons"`
	Teams []struct {
		ID          uuid.UUID `json:"id"`
		Name        string    `json:"name"`
		HomeStadium string    `json:"home_stadium"`
		Players     []struct {
			ID        uuid.UUID         `json:"id"`
			Name      string            `json:"name"`
			BirthDate string            `json:"birth_date"`
			Type      models.PlayerType `json:"type"`
		} `json:"players"`
	} `json:"teams"`
	GoalTypes []struct {
		ID   uuid.UUID `json:"id"`
		Name string    `json:"name"`
	} `json:"goal_types"`
}

type counts struct {
	inserted int
	skipped  int
}

func (c *counts) add(rows int64) {
	if rows == 1 {
		c.inserted++
	} else {
		c.skipped++
	}
}

func main() {
	path := flag.String("file", "go/internal/assets/league.json", "seed snapshot")
	flag.Parse()

	// 1) Load the JSON snapshot
	data, err := os.ReadFile(*path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "read JSON: %v\n", err)
		os.Exit(1)
	}
	snap, err := parseSnapshot(data)
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid snapshot: %v\n", err)
		os.Exit(1)
	}

	// 2) Connect using shared dbconfig
	cfg, err := dbconfig.NewConfigFromEnv()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
	ctx := context.Background()
	pool, err := pgxpool.New(ctx, cfg.DSN())
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to connect: %v\n", err)
		os.Exit(1)
	}
	defer pool.Close()

	// 3) Insert everything in one transaction
	var total counts
	err = pgx.BeginFunc(ctx, pool, func(tx pgx.Tx) error {
		total, err = seed(ctx, tx, snap)
		return err
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "seed failed: %v\n", err)
		os.Exit(1)
	}

	// 4) Print summary
	fmt.Printf("League seed complete: %d inserted, %d skipped\n", total.inserted, total.skipped)
}

// parseSnapshot decodes and checks a snapshot before anything is written
func parseSnapshot(data []byte) (*Snapshot, error) {
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("unmarshal JSON: %w", err)
	}

	for i := range snap.Seasons {
		s := &snap.Seasons[i]
		if s.Regulation == nil {
			reg := models.DefaultRegulation()
			s.Regulation = &reg
		}
		if err := seasons.ValidateRegulation(*s.Regulation); err != nil {
			return nil, fmt.Errorf("season %s: %w", s.Name, err)
		}
		start, errStart := time.Parse(time.DateOnly, s.StartDate)
		end, errEnd := time.Parse(time.DateOnly, s.EndDate)
		if errStart != nil || errEnd != nil || end.Before(start) {
			return nil, fmt.Errorf("season %s: invalid dates %q-%q", s.Name, s.StartDate, s.EndDate)
		}
	}
	for _, t := range snap.Teams {
		for _, p := range t.Players {
			if !p.Type.Valid() {
				return nil, fmt.Errorf("player %s: invalid type %q", p.Name, p.Type)
			}
			if _, err := time.Parse(time.DateOnly, p.BirthDate); err != nil {
				return nil, fmt.Errorf("player %s: invalid birth date %q", p.Name, p.BirthDate)
			}
		}
	}
	return &snap, nil
}

func seed(ctx context.Context, tx pgx.Tx, snap *Snapshot) (counts, error) {
	var c counts

	for _, s := range snap.Seasons {
		reg, err := json.Marshal(s.Regulation)
		if err != nil {
			return c, err
		}
		tag, err := tx.Exec(ctx, `
            INSERT INTO seasons (id, name, start_date, end_date, regulation)
            VALUES ($1, $2, $3, $4, $5)
            ON CONFLICT (id) DO NOTHING
        `, s.ID, s.Name, s.StartDate, s.EndDate, reg)
		if err != nil {
			return c, fmt.Errorf("insert season %s: %w", s.Name, err)
		}
		c.add(tag.RowsAffected())
	}

	for _, t := range snap.Teams {
		tag, err := tx.Exec(ctx, `
            INSERT INTO teams (id, name, home_stadium, created_at)
            VALUES ($1, $2, $3, now())
            ON CONFLICT (id) DO NOTHING
        `, t.ID, t.Name, t.HomeStadium)
		if err != nil {
			return c, fmt.Errorf("insert team %s: %w", t.Name, err)
		}
		c.add(tag.RowsAffected())

		for _, p := range t.Players {
			tag, err := tx.Exec(ctx, `
                INSERT INTO players (id, team_id, name, birth_date, player_type)
                VALUES ($1, $2, $3, $4, $5)
                ON CONFLICT (id) DO NOTHING
            `, p.ID, t.ID, p.Name, p.BirthDate, string(p.Type))
			if err != nil {
				return c, fmt.Errorf("insert player %s: %w", p.Name, err)
			}
			c.add(tag.RowsAffected())
		}
	}

	for _, g := range snap.GoalTypes {
		tag, err := tx.Exec(ctx, `
            INSERT INTO goal_types (id, name) VALUES ($1, $2)
            ON CONFLICT DO NOTHING
        `, g.ID, g.Name)
		if err != nil {
			return c, fmt.Errorf("insert goal type %s: %w", g.Name, err)
		}
		c.add(tag.RowsAffected())
	}
	return c, nil
}
