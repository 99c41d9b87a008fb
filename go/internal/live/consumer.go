package live

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
	"github.com/rs/zerolog/log"

	"github.com/mcdev12/footyleague/go/internal/events"
	"github.com/mcdev12/footyleague/go/internal/models"
	"github.com/mcdev12/footyleague/go/internal/outbox"
)

// StandingsComputer produces the current table of a season
type StandingsComputer interface {
	ComputeStandings(ctx context.Context, seasonID uuid.UUID) ([]models.StandingRow, error)
}

// Broadcaster delivers an update to the subscribers of its season
type Broadcaster interface {
	Broadcast(u *Update)
}

// ConsumerConfig holds configuration for the JetStream consumer
type ConsumerConfig struct {
	URL           string
	StreamName    string
	ConsumerName  string
	SubjectFilter string
	MaxDeliver    int
	AckWait       time.Duration
	MaxAckPending int
	MaxReconnects int
	ReconnectWait time.Duration
}

// DefaultConsumerConfig returns default JetStream consumer configuration
func DefaultConsumerConfig() ConsumerConfig {
	return ConsumerConfig{
		URL:           nats.DefaultURL,
		StreamName:    "LEAGUE_EVENTS",
		ConsumerName:  "standings-live",
		SubjectFilter: "league.events.>",
		MaxDeliver:    5,
		AckWait:       30 * time.Second,
		MaxAckPending: 100,
		MaxReconnects: -1,
		ReconnectWait: 2 * time.Second,
	}
}

// Consumer recomputes standings for every event that can move the table
type Consumer struct {
	standings StandingsComputer
	hub       Broadcaster
	clock     clockwork.Clock
	config    ConsumerConfig

	nc       *nats.Conn
	consumer jetstream.Consumer
}

// NewConsumer creates a Consumer. Connect must be called before Start.
func NewConsumer(standings StandingsComputer, hub Broadcaster, clock clockwork.Clock, config ConsumerConfig) *Consumer {
	return &Consumer{
		standings: standings,
		hub:       hub,
		clock:     clock,
		config:    config,
	}
}

// Connect dials NATS and creates or reuses the durable consumer
func (c *Consumer) Connect(ctx context.Context) error {
	nc, err := outbox.Connect(c.config.URL, c.config.MaxReconnects, c.config.ReconnectWait)
	if err != nil {
		return err
	}
	js, err := jetstream.New(nc)
	if err != nil {
		nc.Close()
		return fmt.Errorf("create JetStream context: %w", err)
	}

	stream, err := js.Stream(ctx, c.config.StreamName)
	if err != nil {
		nc.Close()
		return fmt.Errorf("get stream: %w", err)
	}
	consumer, err := stream.CreateOrUpdateConsumer(ctx, jetstream.ConsumerConfig{
		Name:          c.config.ConsumerName,
		Durable:       c.config.ConsumerName,
		Description:   "Live standings websocket consumer",
		FilterSubject: c.config.SubjectFilter,
		DeliverPolicy: jetstream.DeliverNewPolicy,
		AckPolicy:     jetstream.AckExplicitPolicy,
		MaxDeliver:    c.config.MaxDeliver,
		AckWait:       c.config.AckWait,
		MaxAckPending: c.config.MaxAckPending,
	})
	if err != nil {
		nc.Close()
		return fmt.Errorf("create consumer: %w", err)
	}

	c.nc = nc
	c.consumer = consumer
	log.Info().
		Str("consumer", c.config.ConsumerName).
		Str("stream", c.config.StreamName).
		Msg("JetStream consumer ready")
	return nil
}

// Start processes messages until ctx is cancelled
func (c *Consumer) Start(ctx context.Context) error {
	messageCh := make(chan jetstream.Msg, 100)
	consumeCtx, err := c.consumer.Consume(func(msg jetstream.Msg) {
		select {
		case messageCh <- msg:
		case <-ctx.Done():
			msg.Nak()
		}
	})
	if err != nil {
		return fmt.Errorf("start consumer: %w", err)
	}
	defer consumeCtx.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("standings consumer shutting down")
			return nil
		case msg := <-messageCh:
			if err := c.handle(ctx, msg.Data()); err != nil {
				log.Error().Err(err).Str("subject", msg.Subject()).Msg("failed to process message")
				if nakErr := msg.Nak(); nakErr != nil {
					log.Error().Err(nakErr).Msg("failed to NAK message")
				}
				continue
			}
			if ackErr := msg.Ack(); ackErr != nil {
				log.Error().Err(ackErr).Msg("failed to ACK message")
			}
		}
	}
}

// Stop closes the NATS connection
func (c *Consumer) Stop() {
	if c.nc != nil {
		c.nc.Close()
	}
}

func (c *Consumer) handle(ctx context.Context, data []byte) error {
	var env events.Envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return fmt.Errorf("unmarshal event envelope: %w", err)
	}
	if !events.AffectsStandings(env.EventType) {
		return nil
	}

	seasonID, err := uuid.Parse(env.SeasonID)
	if err != nil {
		return fmt.Errorf("parse season ID: %w", err)
	}
	rows, err := c.standings.ComputeStandings(ctx, seasonID)
	if err != nil {
		return fmt.Errorf("compute standings: %w", err)
	}

	c.hub.Broadcast(&Update{
		SeasonID:   seasonID,
		Reason:     env.EventType,
		EventID:    env.EventID,
		ComputedAt: c.clock.Now(),
		Rows:       rows,
	})
	log.Debug().
		Str("event_id", env.EventID).
		Str("event_type", env.EventType).
		Str("season_id", env.SeasonID).
		Msg("standings recomputed")
	return nil
}
