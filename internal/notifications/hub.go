// Package notifications delivers real-time follow-activity events to
// websocket subscribers.
package notifications

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"sync"
	"time"

	"skillshare/internal/observability"

	"github.com/gofiber/websocket/v2"
)

const (
	// Max connections per user
	maxConnsPerUser = 8
	// Max total connections
	maxTotalConns = 10000
)

// FollowEvent is the payload pushed to feed subscribers whenever a plan
// is followed or unfollowed.
type FollowEvent struct {
	Type       string    `json:"type"`
	PlanID     string    `json:"plan_id"`
	UserID     string    `json:"user_id"`
	Followers  int       `json:"followers"`
	OccurredAt time.Time `json:"occurred_at"`
}

const (
	EventFollowed   = "plan_followed"
	EventUnfollowed = "plan_unfollowed"
)

// Hub fans follow events out to connected clients.
type Hub struct {
	mu         sync.RWMutex
	conns      map[string]map[*Client]struct{}
	totalConns int
	shutdown   chan struct{}
}

// NewHub creates a new Hub instance.
func NewHub() *Hub {
	return &Hub{
		conns:    make(map[string]map[*Client]struct{}),
		shutdown: make(chan struct{}),
	}
}

// Register adds a connection for a given userID, watching the given
// plan ids (none means the whole feed). Returns an error if limits are
// exceeded.
func (h *Hub) Register(userID string, conn *websocket.Conn, planIDs []string) (*Client, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.totalConns >= maxTotalConns {
		return nil, errors.New("server connection limit reached")
	}

	m, ok := h.conns[userID]
	if !ok {
		m = make(map[*Client]struct{})
		h.conns[userID] = m
	}
	if len(m) >= maxConnsPerUser {
		return nil, errors.New("user connection limit reached")
	}

	client := NewClient(h, conn, userID, planIDs)
	m[client] = struct{}{}
	h.totalConns++
	observability.WebSocketConnectionsTotal.Inc()

	return client, nil
}

// Unregister removes a connection.
func (h *Hub) Unregister(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	m, ok := h.conns[client.UserID]
	if !ok {
		return
	}
	if _, exists := m[client]; !exists {
		return
	}
	delete(m, client)
	h.totalConns--
	observability.WebSocketConnectionsTotal.Dec()
	if len(m) == 0 {
		delete(h.conns, client.UserID)
	}
}

// PublishFollow sends the event to every client watching its plan.
func (h *Hub) PublishFollow(event FollowEvent) {
	data, err := json.Marshal(event)
	if err != nil {
		log.Printf("drop follow event for plan %s: %v", event.PlanID, err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, clients := range h.conns {
		for c := range clients {
			if c.Watches(event.PlanID) {
				c.TrySend(data)
			}
		}
	}
}

// ConnectionCount returns the number of active connections.
func (h *Hub) ConnectionCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.totalConns
}

// Shutdown gracefully closes all websocket connections.
func (h *Hub) Shutdown(_ context.Context) error {
	close(h.shutdown)

	h.mu.Lock()
	defer h.mu.Unlock()
	for userID, clients := range h.conns {
		for client := range clients {
			if client.Conn == nil {
				continue
			}
			if err := client.Conn.WriteMessage(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseGoingAway, "Server shutting down")); err != nil {
				log.Printf("failed to write close message for user %s: %v", userID, err)
			}
			if err := client.Conn.Close(); err != nil {
				log.Printf("failed to close websocket for user %s: %v", userID, err)
			}
		}
	}
	h.conns = make(map[string]map[*Client]struct{})
	h.totalConns = 0

	return nil
}
