package applications

import (
	"context"
	"sync"
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

type recordedEvent struct {
	seasonID  uuid.UUID
	eventType string
	payload   any
}

// memoryStore serializes transactions with a mutex and enforces the same
// one-active-application-per-pair rule as the database index.
type memoryStore struct {
	mu     sync.Mutex
	apps   map[uuid.UUID]models.Application
	events []recordedEvent
}

func newMemoryStore() *memoryStore {
	return &memoryStore{apps: map[uuid.UUID]models.Application{}}
}

type memoryTx struct {
	apps   map[uuid.UUID]models.Application
	events []recordedEvent
}

func (m *memoryStore) Transact(ctx context.Context, fn func(tx Tx) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	tx := &memoryTx{apps: make(map[uuid.UUID]models.Application, len(m.apps))}
	for k, v := range m.apps {
		tx.apps[k] = v
	}
	if err := fn(tx); err != nil {
		return err
	}
	m.apps = tx.apps
	m.events = append(m.events, tx.events...)
	return nil
}

func (t *memoryTx) ListActive(ctx context.Context, teamID, seasonID uuid.UUID) ([]models.Application, error) {
	var out []models.Application
	for _, a := range t.apps {
		if a.TeamID == teamID && a.SeasonID == seasonID && IsActive(a.Status) {
			out = append(out, a)
		}
	}
	return out, nil
}

func (t *memoryTx) Insert(ctx context.Context, a models.Application) error {
	active, _ := t.ListActive(ctx, a.TeamID, a.SeasonID)
	if len(active) > 0 {
		return errs.New(errs.KindDuplicateApplication, "index violation")
	}
	t.apps[a.ID] = a
	return nil
}

func (t *memoryTx) GetForUpdate(ctx context.Context, id uuid.UUID) (*models.Application, error) {
	a, ok := t.apps[id]
	if !ok {
		return nil, errs.New(errs.KindNotFound, "application %s not found", id)
	}
	return &a, nil
}

func (t *memoryTx) UpdateStatus(ctx context.Context, id uuid.UUID, from, to models.ApplicationStatus, at time.Time) error {
	a, ok := t.apps[id]
	if !ok || a.Status != from {
		return errs.New(errs.KindInvalidTransition, "stale")
	}
	a.Status = to
	t.apps[id] = a
	return nil
}

func (t *memoryTx) AppendEvent(ctx context.Context, seasonID uuid.UUID, eventType string, payload any, at time.Time) error {
	t.events = append(t.events, recordedEvent{seasonID: seasonID, eventType: eventType, payload: payload})
	return nil
}

func (m *memoryStore) GetApplication(ctx context.Context, id uuid.UUID) (*models.Application, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.apps[id]
	if !ok {
		return nil, errs.New(errs.KindNotFound, "application %s not found", id)
	}
	return &a, nil
}

func (m *memoryStore) ListBySeason(ctx context.Context, seasonID uuid.UUID) ([]models.Application, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Application
	for _, a := range m.apps {
		if a.SeasonID == seasonID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (m *memoryStore) ListAcceptedTeamIDs(ctx context.Context, seasonID uuid.UUID) ([]uuid.UUID, error) {
	apps, _ := m.ListBySeason(ctx, seasonID)
	var out []uuid.UUID
	for _, a := range apps {
		if a.Status == models.ApplicationStatusAccepted {
			out = append(out, a.TeamID)
		}
	}
	return out, nil
}

type knownIDs map[uuid.UUID]bool

func (k knownIDs) GetSeason(ctx context.Context, id uuid.UUID) (*models.Season, error) {
	if !k[id] {
		return nil, errs.New(errs.KindNotFound, "season %s not found", id)
	}
	return &models.Season{ID: id}, nil
}

func (k knownIDs) GetTeam(ctx context.Context, id uuid.UUID) (*models.Team, error) {
	if !k[id] {
		return nil, errs.New(errs.KindNotFound, "team %s not found", id)
	}
	return &models.Team{ID: id}, nil
}

type fixture struct {
	app    *App
	store  *memoryStore
	team   uuid.UUID
	season uuid.UUID
}

func newFixture() fixture {
	team, season := uuid.New(), uuid.New()
	known := knownIDs{team: true, season: true}
	store := newMemoryStore()
	clock := clockwork.NewFakeClockAt(submittedAt)
	return fixture{
		app:    NewApp(store, known, known, clock),
		store:  store,
		team:   team,
		season: season,
	}
}

func TestApplyTwiceFailsWithDuplicate(t *testing.T) {
	f := newFixture()

	first, err := f.app.Apply(context.Background(), f.team, f.season)
	require.NoError(t, err)
	assert.Equal(t, models.ApplicationStatusPending, first.Status)
	assert.Equal(t, submittedAt, first.SubmittedAt)

	_, err = f.app.Apply(context.Background(), f.team, f.season)
	assert.ErrorIs(t, err, errs.ErrDuplicateApplication)
	assert.Len(t, f.store.apps, 1)
	require.Len(t, f.store.events, 1)
	assert.Equal(t, events.TypeApplicationSubmitted, f.store.events[0].eventType)
}

func TestConcurrentApplyYieldsOneApplication(t *testing.T) {
	f := newFixture()

	const callers = 8
	var (
		wg         sync.WaitGroup
		mu         sync.Mutex
		successes  int
		duplicates int
	)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.app.Apply(context.Background(), f.team, f.season)
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				successes++
			case errs.KindOf(err) == errs.KindDuplicateApplication:
				duplicates++
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, successes)
	assert.Equal(t, callers-1, duplicates)
	assert.Len(t, f.store.apps, 1)
}

func TestApplyAgainAfterRejection(t *testing.T) {
	f := newFixture()
	first, err := f.app.Apply(context.Background(), f.team, f.season)
	require.NoError(t, err)

	_, err = f.app.Decide(context.Background(), first.ID, models.ApplicationStatusRejected)
	require.NoError(t, err)

	second, err := f.app.Apply(context.Background(), f.team, f.season)
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)
}

func TestDecideRejectedThenAcceptedFails(t *testing.T) {
	f := newFixture()
	app, err := f.app.Apply(context.Background(), f.team, f.season)
	require.NoError(t, err)

	rejected, err := f.app.Decide(context.Background(), app.ID, models.ApplicationStatusRejected)
	require.NoError(t, err)
	assert.Equal(t, models.ApplicationStatusRejected, rejected.Status)

	_, err = f.app.Decide(context.Background(), app.ID, models.ApplicationStatusAccepted)
	assert.ErrorIs(t, err, errs.ErrInvalidTransition)

	stored, err := f.app.GetApplication(context.Background(), app.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ApplicationStatusRejected, stored.Status)
}

func TestDecideAndWithdrawNotFound(t *testing.T) {
	f := newFixture()

	_, err := f.app.Decide(context.Background(), uuid.New(), models.ApplicationStatusAccepted)
	assert.ErrorIs(t, err, errs.ErrNotFound)

	_, err = f.app.Withdraw(context.Background(), uuid.New())
	assert.ErrorIs(t, err, errs.ErrNotFound)
}

func TestAcceptedTeamsFollowWorkflow(t *testing.T) {
	f := newFixture()
	app, err := f.app.Apply(context.Background(), f.team, f.season)
	require.NoError(t, err)

	ok, err := f.app.IsAccepted(context.Background(), f.team, f.season)
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = f.app.Decide(context.Background(), app.ID, models.ApplicationStatusAccepted)
	require.NoError(t, err)
	assert.NoError(t, f.app.RequireAccepted(context.Background(), f.team, f.season))

	withdrawn, err := f.app.Withdraw(context.Background(), app.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ApplicationStatusWithdrawn, withdrawn.Status)
	assert.ErrorIs(t, f.app.RequireAccepted(context.Background(), f.team, f.season), errs.ErrInvalidArgument)

	types := make([]string, 0, len(f.store.events))
	for _, e := range f.store.events {
		types = append(types, e.eventType)
	}
	assert.Equal(t, []string{
		events.TypeApplicationSubmitted,
		events.TypeApplicationDecided,
		events.TypeApplicationWithdrawn,
	}, types)

	payload, ok := f.store.events[2].payload.(events.ApplicationPayload)
	require.True(t, ok)
	assert.Equal(t, "accepted", payload.PreviousState)
	assert.Equal(t, "withdrawn", payload.Status)
}

func TestApplyUnknownSeason(t *testing.T) {
	f := newFixture()
	_, err := f.app.Apply(context.Background(), f.team, uuid.New())
	assert.ErrorIs(t, err, errs.ErrNotFound)
	assert.Empty(t, f.store.apps)
}
