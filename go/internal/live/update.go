// Package live pushes recomputed league tables to websocket subscribers
// whenever a standings-relevant event is published.
package live

import (
	"time"

	"github.com/google/uuid"

	"github.com/mcdev12/footyleague/go/internal/models"
)

// ReasonSnapshot marks the table sent right after subscribing
const ReasonSnapshot = "Snapshot"

// Update is the message written to subscribers
type Update struct {
	SeasonID   uuid.UUID            `json:"seasonId"`
	Reason     string               `json:"reason"`
	EventID    string               `json:"eventId,omitempty"`
	ComputedAt time.Time            `json:"computedAt"`
	Rows       []models.StandingRow `json:"rows"`
}
