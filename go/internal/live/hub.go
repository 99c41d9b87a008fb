package live

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

// HubConfig holds configuration for websocket connections
type HubConfig struct {
	WriteTimeout    time.Duration
	ReadTimeout     time.Duration
	PingInterval    time.Duration
	MaxMessageSize  int64
	ReadBufferSize  int
	WriteBufferSize int
	SendBuffer      int
	CheckOrigin     func(r *http.Request) bool
}

// DefaultHubConfig returns default websocket configuration
func DefaultHubConfig() HubConfig {
	return HubConfig{
		WriteTimeout:    10 * time.Second,
		ReadTimeout:     60 * time.Second,
		PingInterval:    30 * time.Second,
		MaxMessageSize:  1024,
		ReadBufferSize:  1024,
		WriteBufferSize: 4096,
		SendBuffer:      16,
		CheckOrigin: func(r *http.Request) bool {
			return true
		},
	}
}

// Hub fans standings updates out to the websocket subscribers of each season
type Hub struct {
	seasons map[uuid.UUID]map[*subscriber]bool
	mu      sync.RWMutex

	upgrader websocket.Upgrader
	config   HubConfig

	broadcastCh chan *Update
}

type subscriber struct {
	id       string
	seasonID uuid.UUID
	conn     *websocket.Conn
	send     chan []byte
	hub      *Hub
}

// NewHub creates a new Hub
func NewHub(config HubConfig) *Hub {
	return &Hub{
		seasons: make(map[uuid.UUID]map[*subscriber]bool),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  config.ReadBufferSize,
			WriteBufferSize: config.WriteBufferSize,
			CheckOrigin:     config.CheckOrigin,
		},
		config:      config,
		broadcastCh: make(chan *Update, 256),
	}
}

// Start delivers queued updates until ctx is cancelled
func (h *Hub) Start(ctx context.Context) {
	log.Info().Msg("standings hub started")
	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("standings hub shutting down")
			return
		case u := <-h.broadcastCh:
			h.deliver(u)
		}
	}
}

// Broadcast queues an update for the subscribers of its season
func (h *Hub) Broadcast(u *Update) {
	select {
	case h.broadcastCh <- u:
	default:
		log.Warn().Str("season_id", u.SeasonID.String()).Msg("broadcast channel full, dropping update")
	}
}

// Subscribe upgrades the request and sends initial as the first message
func (h *Hub) Subscribe(w http.ResponseWriter, r *http.Request, seasonID uuid.UUID, initial *Update) error {
	first, err := json.Marshal(initial)
	if err != nil {
		return fmt.Errorf("failed to marshal initial standings: %w", err)
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return fmt.Errorf("failed to upgrade connection: %w", err)
	}

	s := &subscriber{
		id:       uuid.NewString(),
		seasonID: seasonID,
		conn:     conn,
		send:     make(chan []byte, h.config.SendBuffer),
		hub:      h,
	}
	s.send <- first
	h.register(s)

	go s.writePump()
	go s.readPump()

	log.Info().
		Str("subscriber_id", s.id).
		Str("season_id", seasonID.String()).
		Msg("standings subscriber connected")
	return nil
}

// Subscribers returns the number of open connections per season
func (h *Hub) Subscribers() map[uuid.UUID]int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	out := make(map[uuid.UUID]int, len(h.seasons))
	for id, subs := range h.seasons {
		out[id] = len(subs)
	}
	return out
}

func (h *Hub) register(s *subscriber) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.seasons[s.seasonID] == nil {
		h.seasons[s.seasonID] = make(map[*subscriber]bool)
	}
	h.seasons[s.seasonID][s] = true
}

func (h *Hub) unregister(s *subscriber) {
	h.mu.Lock()
	defer h.mu.Unlock()

	subs, ok := h.seasons[s.seasonID]
	if !ok || !subs[s] {
		return
	}
	delete(subs, s)
	close(s.send)
	if len(subs) == 0 {
		delete(h.seasons, s.seasonID)
	}
	log.Info().
		Str("subscriber_id", s.id).
		Str("season_id", s.seasonID.String()).
		Msg("standings subscriber disconnected")
}

// deliver sends under the read lock so unregister cannot close a channel
// mid-send
func (h *Hub) deliver(u *Update) {
	data, err := json.Marshal(u)
	if err != nil {
		log.Error().Err(err).Msg("failed to marshal standings update")
		return
	}

	var slow []*subscriber
	h.mu.RLock()
	subs := h.seasons[u.SeasonID]
	for s := range subs {
		select {
		case s.send <- data:
		default:
			slow = append(slow, s)
		}
	}
	delivered := len(subs) - len(slow)
	h.mu.RUnlock()

	for _, s := range slow {
		log.Warn().Str("subscriber_id", s.id).Msg("send buffer full, closing subscriber")
		h.unregister(s)
		s.conn.Close()
	}

	log.Debug().
		Str("season_id", u.SeasonID.String()).
		Str("reason", u.Reason).
		Int("subscribers", delivered).
		Msg("standings broadcasted")
}

func (s *subscriber) writePump() {
	ticker := time.NewTicker(s.hub.config.PingInterval)
	defer func() {
		ticker.Stop()
		s.conn.Close()
		s.hub.unregister(s)
	}()

	for {
		select {
		case msg, ok := <-s.send:
			s.conn.SetWriteDeadline(time.Now().Add(s.hub.config.WriteTimeout))
			if !ok {
				s.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := s.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				log.Error().Err(err).Str("subscriber_id", s.id).Msg("failed to write standings")
				return
			}
		case <-ticker.C:
			s.conn.SetWriteDeadline(time.Now().Add(s.hub.config.WriteTimeout))
			if err := s.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// readPump only drains control frames; subscribers never send commands
func (s *subscriber) readPump() {
	defer func() {
		s.hub.unregister(s)
		s.conn.Close()
	}()

	s.conn.SetReadLimit(s.hub.config.MaxMessageSize)
	s.conn.SetReadDeadline(time.Now().Add(s.hub.config.ReadTimeout))
	s.conn.SetPongHandler(func(string) error {
		s.conn.SetReadDeadline(time.Now().Add(s.hub.config.ReadTimeout))
		return nil
	})

	for {
		if _, _, err := s.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Error().Err(err).Str("subscriber_id", s.id).Msg("unexpected websocket close")
			}
			return
		}
	}
}
