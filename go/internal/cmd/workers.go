package main

import (
	"context"
	"database/sql"
	"sync/atomic"

	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog/log"
	"go.uber.org/fx"

	"github.com/mcdev12/footyleague/go/internal/database"
	"github.com/mcdev12/footyleague/go/internal/kickoff"
	"github.com/mcdev12/footyleague/go/internal/live"
	"github.com/mcdev12/footyleague/go/internal/outbox"
)

func newDatabase(lc fx.Lifecycle, settings *Settings) (*sql.DB, error) {
	db, err := database.Open(context.Background(), settings.DB)
	if err != nil {
		return nil, err
	}
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return db.Close()
		},
	})
	return db, nil
}

func newRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return reg
}

func newHub(lc fx.Lifecycle) *live.Hub {
	hub := live.NewHub(live.DefaultHubConfig())
	ctx, cancel := context.WithCancel(context.Background())
	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			go hub.Start(ctx)
			return nil
		},
		OnStop: func(context.Context) error {
			cancel()
			return nil
		},
	})
	return hub
}

func newLiveHandler(hub *live.Hub, services *Services, clock clockwork.Clock) *live.Handler {
	return live.NewHandler(hub, services.StandingsApp, clock)
}

// natsStatus exposes the relay's connection once runOutbox has started it
type natsStatus struct {
	publisher atomic.Pointer[outbox.JetStreamPublisher]
}

func newNatsStatus() *natsStatus {
	return &natsStatus{}
}

func (s *natsStatus) IsConnected() bool {
	p := s.publisher.Load()
	return p != nil && p.IsConnected()
}

func newOutboxHealth(settings *Settings, db *sql.DB, status *natsStatus) *outbox.HealthChecker {
	return outbox.NewHealthChecker(db, outbox.NewRepository(db), status, settings.Config.Outbox.MaxPending)
}

// runOutbox relays committed outbox rows to JetStream
func runOutbox(lc fx.Lifecycle, settings *Settings, db *sql.DB, registry *prometheus.Registry, status *natsStatus) {
	ctx, cancel := context.WithCancel(context.Background())
	var (
		publisher *outbox.JetStreamPublisher
		listener  *outbox.Listener
	)

	lc.Append(fx.Hook{
		OnStart: func(startCtx context.Context) error {
			jsCfg := outbox.DefaultJetStreamConfig()
			jsCfg.URL = settings.Env.NatsURL

			var err error
			publisher, err = outbox.NewJetStreamPublisher(startCtx, jsCfg)
			if err != nil {
				return err
			}
			status.publisher.Store(publisher)

			cfg := outbox.DefaultListenerConfig()
			cfg.DatabaseURL = settings.DB.DSN()
			cfg.FallbackInterval = settings.Config.Outbox.FallbackInterval
			cfg.MaxRetries = settings.Config.Outbox.MaxRetries
			cfg.BatchSize = settings.Config.Outbox.BatchSize

			metrics := outbox.NewPrometheusMetrics(registry)
			listener, err = outbox.NewListener(outbox.NewRepository(db), outbox.NewMetricPublisher(publisher, metrics), metrics, cfg)
			if err != nil {
				publisher.Close()
				return err
			}

			go func() {
				if err := listener.Start(ctx); err != nil {
					log.Error().Err(err).Msg("outbox listener stopped")
				}
			}()
			return nil
		},
		OnStop: func(context.Context) error {
			cancel()
			if publisher != nil {
				return publisher.Close()
			}
			return nil
		},
	})
}

// runLiveConsumer recomputes standings on relevant events
func runLiveConsumer(lc fx.Lifecycle, settings *Settings, hub *live.Hub, services *Services, clock clockwork.Clock) {
	cfg := live.DefaultConsumerConfig()
	cfg.URL = settings.Env.NatsURL
	consumer := live.NewConsumer(services.StandingsApp, hub, clock, cfg)
	ctx, cancel := context.WithCancel(context.Background())

	lc.Append(fx.Hook{
		OnStart: func(startCtx context.Context) error {
			if err := consumer.Connect(startCtx); err != nil {
				return err
			}
			go func() {
				if err := consumer.Start(ctx); err != nil {
					log.Error().Err(err).Msg("standings consumer stopped")
				}
			}()
			return nil
		},
		OnStop: func(context.Context) error {
			cancel()
			consumer.Stop()
			return nil
		},
	})
}

func runKickoff(lc fx.Lifecycle, settings *Settings, db *sql.DB, services *Services, clock clockwork.Clock) error {
	sweeper := kickoff.NewSweeper(services.SeasonsApp, services.ApplicationsApp, services.RosterApp, kickoff.NewRepository(db), clock)
	announcer := kickoff.NewAnnouncer(services.MatchesApp, clock)
	scheduler, err := kickoff.NewScheduler(sweeper, announcer, clock, kickoff.Intervals{
		Eligibility: settings.Config.Kickoff.Interval,
		Played:      settings.Config.Kickoff.PlayedInterval,
	})
	if err != nil {
		return err
	}

	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			return scheduler.Start()
		},
		OnStop: func(context.Context) error {
			return scheduler.Stop()
		},
	})
	return nil
}
