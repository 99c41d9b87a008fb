package kickoff

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcdev12/footyleague/go/internal/errs"
	"github.com/mcdev12/footyleague/go/internal/events"
	"github.com/mcdev12/footyleague/go/internal/models"
)

var checkedAt = time.Date(2026, 8, 1, 6, 0, 0, 0, time.UTC)

type league struct {
	season   models.Season
	accepted []uuid.UUID
	rosters  map[uuid.UUID]int
	failing  map[uuid.UUID]error
	appended []events.TeamIneligiblePayload
	reported map[uuid.UUID]bool
}

func (l *league) ListRunningSeasons(ctx context.Context) ([]models.Season, error) {
	return []models.Season{l.season}, nil
}

func (l *league) AcceptedTeams(ctx context.Context, seasonID uuid.UUID) ([]uuid.UUID, error) {
	return l.accepted, nil
}

func (l *league) CheckEligibility(ctx context.Context, teamID, seasonID uuid.UUID) error {
	if err := l.failing[teamID]; err != nil {
		return err
	}
	if l.rosters[teamID] < l.season.Regulation.MinPlayers {
		return errs.New(errs.KindRosterTooSmall, "too few players")
	}
	return nil
}

func (l *league) ListRoster(ctx context.Context, teamID uuid.UUID) ([]models.Player, error) {
	return make([]models.Player, l.rosters[teamID]), nil
}

func (l *league) ReportIneligible(ctx context.Context, teamID, seasonID uuid.UUID, payload events.TeamIneligiblePayload, at time.Time) (bool, error) {
	if l.reported[teamID] {
		return false, nil
	}
	l.reported[teamID] = true
	l.appended = append(l.appended, payload)
	return true, nil
}

func (l *league) ClearIneligible(ctx context.Context, teamID, seasonID uuid.UUID) error {
	delete(l.reported, teamID)
	return nil
}

func newLeague() (*league, uuid.UUID, uuid.UUID) {
	full, short := uuid.New(), uuid.New()
	reg := models.DefaultRegulation()
	return &league{
		season:   models.Season{ID: uuid.New(), Name: "2026", Regulation: reg},
		accepted: []uuid.UUID{full, short},
		rosters:  map[uuid.UUID]int{full: reg.MinPlayers, short: reg.MinPlayers - 4},
		failing:  map[uuid.UUID]error{},
		reported: map[uuid.UUID]bool{},
	}, full, short
}

func TestSweepReportsShortSquadsOnce(t *testing.T) {
	l, _, short := newLeague()
	s := NewSweeper(l, l, l, l, clockwork.NewFakeClockAt(checkedAt))

	n, err := s.Sweep(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	require.Len(t, l.appended, 1)
	assert.Equal(t, events.TeamIneligiblePayload{
		TeamID:     short.String(),
		SeasonID:   l.season.ID.String(),
		RosterSize: l.season.Regulation.MinPlayers - 4,
		MinPlayers: l.season.Regulation.MinPlayers,
		Reason:     string(errs.KindRosterTooSmall),
		CheckedAt:  checkedAt,
	}, l.appended[0])

	n, err = s.Sweep(context.Background())
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.Len(t, l.appended, 1)
}

func TestSweepReportsAgainAfterRecovery(t *testing.T) {
	l, _, short := newLeague()
	s := NewSweeper(l, l, l, l, clockwork.NewFakeClockAt(checkedAt))
	ctx := context.Background()

	_, err := s.Sweep(ctx)
	require.NoError(t, err)

	l.rosters[short] = l.season.Regulation.MinPlayers
	n, err := s.Sweep(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)

	l.rosters[short] = 1
	n, err = s.Sweep(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Len(t, l.appended, 2)
}

func TestSweepSkipsTeamsThatFailToLoad(t *testing.T) {
	l, full, short := newLeague()
	l.failing[full] = errs.New(errs.KindNotFound, "team gone")
	l.failing[short] = errors.New("connection reset")
	s := NewSweeper(l, l, l, l, clockwork.NewFakeClockAt(checkedAt))

	n, err := s.Sweep(context.Background())
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.Empty(t, l.appended)
}

func TestSweepDoesNotRepeatAfterRestart(t *testing.T) {
	l, _, _ := newLeague()
	fake := clockwork.NewFakeClockAt(checkedAt)

	n, err := NewSweeper(l, l, l, l, fake).Sweep(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	fake.Advance(time.Hour)
	n, err = NewSweeper(l, l, l, l, fake).Sweep(context.Background())
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.Len(t, l.appended, 1)
}

// kickoffBoard reports matches the way the matches app does: once each, after kick-off
type kickoffBoard struct {
	matches  []models.Match
	reported map[uuid.UUID]bool
	calls    []time.Time
}

func (b *kickoffBoard) ReportPlayed(ctx context.Context, now time.Time, limit int) ([]models.MatchOutcome, error) {
	b.calls = append(b.calls, now)
	var out []models.MatchOutcome
	for _, m := range b.matches {
		if len(out) == limit {
			break
		}
		if b.reported[m.ID] || !m.MatchTime.Before(now) {
			continue
		}
		b.reported[m.ID] = true
		out = append(out, models.MatchOutcome{MatchID: m.ID, SeasonID: m.SeasonID, Winner: models.WinnerDraw})
	}
	return out, nil
}

func newBoard(kickoffs ...time.Time) *kickoffBoard {
	b := &kickoffBoard{reported: map[uuid.UUID]bool{}}
	for _, at := range kickoffs {
		b.matches = append(b.matches, models.Match{ID: uuid.New(), SeasonID: uuid.New(), MatchTime: at})
	}
	return b
}

func TestAnnounceReportsMatchesOncePastKickoff(t *testing.T) {
	kickoff := checkedAt.Add(2 * time.Hour)
	board := newBoard(kickoff)
	fake := clockwork.NewFakeClockAt(checkedAt)
	a := NewAnnouncer(board, fake)
	ctx := context.Background()

	n, err := a.Announce(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)

	// the kick-off instant itself is not yet played
	fake.Advance(2 * time.Hour)
	n, err = a.Announce(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)

	fake.Advance(time.Minute)
	n, err = a.Announce(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, kickoff.Add(time.Minute), board.calls[len(board.calls)-1])

	n, err = a.Announce(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestAnnounceDrainsInBatches(t *testing.T) {
	times := make([]time.Time, 5)
	for i := range times {
		times[i] = checkedAt.Add(-time.Duration(i+1) * time.Hour)
	}
	board := newBoard(times...)
	a := NewAnnouncer(board, clockwork.NewFakeClockAt(checkedAt))
	a.batch = 2

	n, err := a.Announce(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 5, n)
	assert.Len(t, board.calls, 3)
}

type failingReporter struct{}

func (failingReporter) ReportPlayed(ctx context.Context, now time.Time, limit int) ([]models.MatchOutcome, error) {
	return nil, errors.New("connection reset")
}

func TestAnnounceReturnsReporterError(t *testing.T) {
	_, err := NewAnnouncer(failingReporter{}, clockwork.NewFakeClockAt(checkedAt)).Announce(context.Background())
	assert.Error(t, err)
}
