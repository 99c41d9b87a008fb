package outbox

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// OutboxEvent is a domain event waiting to be published. SeasonID is the
// aggregate the event belongs to and becomes the message key downstream.
type OutboxEvent struct {
	ID        uuid.UUID       `json:"id"`
	SeasonID  uuid.UUID       `json:"season_id"`
	EventType string          `json:"event_type"`
	Payload   json.RawMessage `json:"payload"`
	CreatedAt time.Time       `json:"created_at"`
	SentAt    *time.Time      `json:"sent_at,omitempty"`
}

// Publisher delivers an outbox event to the message broker.
type Publisher interface {
	Publish(ctx context.Context, event OutboxEvent) error
}
