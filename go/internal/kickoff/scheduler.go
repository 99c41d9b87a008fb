package kickoff

import (
	"context"
	"fmt"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"
)

// Intervals of the two scheduled jobs
type Intervals struct {
	Eligibility time.Duration
	Played      time.Duration
}

// Scheduler runs the eligibility sweep and the played-match announcer on fixed intervals
type Scheduler struct {
	s         gocron.Scheduler
	sweeper   *Sweeper
	announcer *Announcer
	every     Intervals
}

// NewScheduler creates a scheduler driven by clock
func NewScheduler(sweeper *Sweeper, announcer *Announcer, clock clockwork.Clock, every Intervals) (*Scheduler, error) {
	s, err := gocron.NewScheduler(
		gocron.WithClock(clock),
		gocron.WithLocation(time.UTC),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create scheduler: %w", err)
	}
	return &Scheduler{s: s, sweeper: sweeper, announcer: announcer, every: every}, nil
}

// Start registers both jobs, runs them once immediately and starts the scheduler
func (s *Scheduler) Start() error {
	jobs := []struct {
		name  string
		every time.Duration
		run   func()
	}{
		{"kickoff-eligibility", s.every.Eligibility, s.sweep},
		{"match-played", s.every.Played, s.announce},
	}
	for _, j := range jobs {
		_, err := s.s.NewJob(
			gocron.DurationJob(j.every),
			gocron.NewTask(j.run),
			gocron.WithName(j.name),
			gocron.WithSingletonMode(gocron.LimitModeReschedule),
			gocron.WithStartAt(gocron.WithStartImmediately()),
		)
		if err != nil {
			return fmt.Errorf("failed to create %s job: %w", j.name, err)
		}
	}

	s.s.Start()
	return nil
}

func (s *Scheduler) Stop() error {
	return s.s.Shutdown()
}

func (s *Scheduler) sweep() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	if _, err := s.sweeper.Sweep(ctx); err != nil {
		log.Error().Err(err).Msg("kickoff sweep failed")
	}
}

func (s *Scheduler) announce() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	if _, err := s.announcer.Announce(ctx); err != nil {
		log.Error().Err(err).Msg("played match announcement failed")
	}
}
