package live

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"
)

// Handler serves the standings websocket and connection stats
type Handler struct {
	hub       *Hub
	standings StandingsComputer
	clock     clockwork.Clock
}

// NewHandler creates a new Handler
func NewHandler(hub *Hub, standings StandingsComputer, clock clockwork.Clock) *Handler {
	return &Handler{hub: hub, standings: standings, clock: clock}
}

// RegisterRoutes registers websocket routes with an HTTP mux
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/ws/standings", h.HandleStandings)
	mux.HandleFunc("/ws/stats", h.HandleStats)
}

func (h *Handler) mux() *http.ServeMux {
	mux := http.NewServeMux()
	h.RegisterRoutes(mux)
	return mux
}

// HandleStandings subscribes to ?season_id= and sends the current table first
func (h *Handler) HandleStandings(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("season_id")
	if raw == "" {
		http.Error(w, "season_id is required", http.StatusBadRequest)
		return
	}
	seasonID, err := uuid.Parse(raw)
	if err != nil {
		http.Error(w, "invalid season_id format", http.StatusBadRequest)
		return
	}

	rows, err := h.standings.ComputeStandings(r.Context(), seasonID)
	if err != nil {
		log.Error().Err(err).Str("season_id", raw).Msg("failed to compute standings")
		http.Error(w, "failed to compute standings", http.StatusInternalServerError)
		return
	}

	initial := &Update{SeasonID: seasonID, Reason: ReasonSnapshot, ComputedAt: h.clock.Now(), Rows: rows}
	if err := h.hub.Subscribe(w, r, seasonID, initial); err != nil {
		// the upgrader has already replied
		log.Error().Err(err).Str("season_id", raw).Msg("failed to subscribe")
	}
}

// HandleStats reports open subscribers per season
func (h *Handler) HandleStats(w http.ResponseWriter, r *http.Request) {
	counts := h.hub.Subscribers()
	total := 0
	perSeason := make(map[string]int, len(counts))
	for id, n := range counts {
		perSeason[id.String()] = n
		total += n
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"total_subscribers": total,
		"seasons":           perSeason,
	})
}
