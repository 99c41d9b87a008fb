package outbox

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// HealthStatus summarizes whether events are flowing out of the outbox
type HealthStatus struct {
	Healthy           bool     `json:"healthy"`
	PendingEvents     int      `json:"pending_events"`
	DatabaseConnected bool     `json:"database_connected"`
	NATSConnected     bool     `json:"nats_connected"`
	Errors            []string `json:"errors"`
}

type Pinger interface {
	PingContext(ctx context.Context) error
}

type Backlog interface {
	CountUnsent(ctx context.Context) (int, error)
}

// Connection reports the broker connection state
type Connection interface {
	IsConnected() bool
}

// HealthChecker reports unhealthy when the database or NATS is unreachable or
// the backlog grows past maxPending
type HealthChecker struct {
	db         Pinger
	backlog    Backlog
	nats       Connection
	maxPending int
}

func NewHealthChecker(db Pinger, backlog Backlog, nats Connection, maxPending int) *HealthChecker {
	return &HealthChecker{db: db, backlog: backlog, nats: nats, maxPending: maxPending}
}

func (h *HealthChecker) Check(ctx context.Context) HealthStatus {
	status := HealthStatus{Healthy: true, Errors: []string{}}

	if err := h.db.PingContext(ctx); err != nil {
		status.Healthy = false
		status.Errors = append(status.Errors, fmt.Sprintf("database ping failed: %v", err))
	} else {
		status.DatabaseConnected = true
	}

	if h.nats != nil {
		status.NATSConnected = h.nats.IsConnected()
		if !status.NATSConnected {
			status.Healthy = false
			status.Errors = append(status.Errors, "NATS disconnected")
		}
	}

	if status.DatabaseConnected {
		pending, err := h.backlog.CountUnsent(ctx)
		if err != nil {
			status.Errors = append(status.Errors, fmt.Sprintf("failed to count pending events: %v", err))
		} else {
			status.PendingEvents = pending
			if pending > h.maxPending {
				status.Healthy = false
				status.Errors = append(status.Errors, fmt.Sprintf("high pending event count: %d", pending))
			}
		}
	}
	return status
}

func (h *HealthChecker) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	status := h.Check(ctx)

	w.Header().Set("Content-Type", "application/json")
	if !status.Healthy {
		w.WriteHeader(http.StatusServiceUnavailable)
	}
	json.NewEncoder(w).Encode(status)
}
