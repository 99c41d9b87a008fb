// Package kickoff runs the time-driven league jobs: it checks that every
// admitted team of a running season still fields a large enough squad, and it
// reports matches whose kick-off has passed.
package kickoff

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"

	"github.com/mcdev12/footyleague/go/internal/errs"
	"github.com/mcdev12/footyleague/go/internal/events"
	"github.com/mcdev12/footyleague/go/internal/models"
)

type SeasonsReader interface {
	ListRunningSeasons(ctx context.Context) ([]models.Season, error)
}

type AdmissionsReader interface {
	AcceptedTeams(ctx context.Context, seasonID uuid.UUID) ([]uuid.UUID, error)
}

type RosterChecker interface {
	CheckEligibility(ctx context.Context, teamID, seasonID uuid.UUID) error
	ListRoster(ctx context.Context, teamID uuid.UUID) ([]models.Player, error)
}

// IneligibilityLedger persists which teams were reported so the event is not
// repeated across sweeps or restarts
type IneligibilityLedger interface {
	ReportIneligible(ctx context.Context, teamID, seasonID uuid.UUID, payload events.TeamIneligiblePayload, at time.Time) (bool, error)
	ClearIneligible(ctx context.Context, teamID, seasonID uuid.UUID) error
}

// Sweeper emits TeamIneligible once per team and season until the team is
// eligible again
type Sweeper struct {
	seasons    SeasonsReader
	admissions AdmissionsReader
	roster     RosterChecker
	ledger     IneligibilityLedger
	clock      clockwork.Clock

	mu sync.Mutex
}

// NewSweeper creates a new Sweeper
func NewSweeper(seasons SeasonsReader, admissions AdmissionsReader, roster RosterChecker, ledger IneligibilityLedger, clock clockwork.Clock) *Sweeper {
	return &Sweeper{
		seasons:    seasons,
		admissions: admissions,
		roster:     roster,
		ledger:     ledger,
		clock:      clock,
	}
}

// Sweep checks every accepted team of every running season and returns how
// many new TeamIneligible events were written
func (s *Sweeper) Sweep(ctx context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	seasons, err := s.seasons.ListRunningSeasons(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to list running seasons: %w", err)
	}

	emitted := 0
	for _, season := range seasons {
		teams, err := s.admissions.AcceptedTeams(ctx, season.ID)
		if err != nil {
			return emitted, fmt.Errorf("failed to list accepted teams of %s: %w", season.ID, err)
		}
		for _, teamID := range teams {
			ok, err := s.check(ctx, teamID, season)
			if err != nil {
				log.Error().Err(err).
					Str("team_id", teamID.String()).
					Str("season_id", season.ID.String()).
					Msg("eligibility check failed")
				continue
			}
			if ok {
				emitted++
			}
		}
	}

	log.Info().Int("seasons", len(seasons)).Int("ineligible", emitted).Msg("kickoff sweep finished")
	return emitted, nil
}

// check reports whether an event was written for the team
func (s *Sweeper) check(ctx context.Context, teamID uuid.UUID, season models.Season) (bool, error) {
	err := s.roster.CheckEligibility(ctx, teamID, season.ID)
	if err == nil {
		return false, s.ledger.ClearIneligible(ctx, teamID, season.ID)
	}
	if !errors.Is(err, errs.ErrRosterTooSmall) {
		return false, err
	}

	players, err := s.roster.ListRoster(ctx, teamID)
	if err != nil {
		return false, err
	}
	now := s.clock.Now()
	payload := events.TeamIneligiblePayload{
		TeamID:     teamID.String(),
		SeasonID:   season.ID.String(),
		RosterSize: len(players),
		MinPlayers: season.Regulation.MinPlayers,
		Reason:     string(errs.KindRosterTooSmall),
		CheckedAt:  now,
	}
	reported, err := s.ledger.ReportIneligible(ctx, teamID, season.ID, payload, now)
	if err != nil || !reported {
		return false, err
	}

	log.Warn().
		Str("team_id", teamID.String()).
		Str("season_id", season.ID.String()).
		Int("roster_size", len(players)).
		Msg("team ineligible")
	return true, nil
}
