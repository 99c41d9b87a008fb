package outbox

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubDeps struct {
	pingErr   error
	pending   int
	connected bool
}

func (s stubDeps) PingContext(ctx context.Context) error { return s.pingErr }

func (s stubDeps) CountUnsent(ctx context.Context) (int, error) { return s.pending, nil }

func (s stubDeps) IsConnected() bool { return s.connected }

func TestHealthChecker(t *testing.T) {
	tests := []struct {
		name    string
		deps    stubDeps
		healthy bool
		pending int
	}{
		{name: "all good", deps: stubDeps{pending: 3, connected: true}, healthy: true, pending: 3},
		{name: "backlog", deps: stubDeps{pending: 11, connected: true}, healthy: false, pending: 11},
		{name: "nats down", deps: stubDeps{connected: false}, healthy: false},
		{name: "db down", deps: stubDeps{pingErr: errors.New("refused"), pending: 50, connected: true}, healthy: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status := NewHealthChecker(tt.deps, tt.deps, tt.deps, 10).Check(context.Background())
			assert.Equal(t, tt.healthy, status.Healthy)
			assert.Equal(t, tt.pending, status.PendingEvents)
		})
	}
}

func TestHealthCheckerServeHTTP(t *testing.T) {
	deps := stubDeps{pending: 11, connected: true}
	rec := httptest.NewRecorder()
	NewHealthChecker(deps, deps, deps, 10).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health/outbox", nil))

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	var body HealthStatus
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.False(t, body.Healthy)
	assert.Equal(t, 11, body.PendingEvents)
	assert.Len(t, body.Errors, 1)
}
