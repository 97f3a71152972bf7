// Package live implements the supplemental read-only websocket feed
// (spec §6.7) that pushes board/pouch/scorecard updates as they happen,
// grounded on the teacher's Lobby.broadcastState/addClient pattern
// (services/lobby.go, services/client.go) adapted from "push lobby state"
// to "push tombola draw state."
package live

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/bellapacxx/tombola-server/game"
	"github.com/bellapacxx/tombola-server/utils/logger"
)

// upgrader is permissive about origin, matching the teacher's ws.go — the
// live feed is read-only and carries no secrets.
var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// client is one subscriber's outbound queue, adapted from the teacher's
// Client.send/writePump pattern.
type client struct {
	conn *websocket.Conn
	send chan []byte
	once sync.Once
}

func (c *client) close() {
	c.once.Do(func() {
		close(c.send)
		c.conn.Close()
	})
}

func (c *client) writePump() {
	defer c.conn.Close()
	for msg := range c.send {
		if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			return
		}
	}
}

// readPump only drains the socket so its close frame is observed; the
// live feed accepts no inbound commands.
func (c *client) readPump(onClose func()) {
	defer onClose()
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

// Hub fans out per-game state updates to every subscribed websocket.
type Hub struct {
	mu      sync.Mutex
	clients map[string]map[*client]struct{}
}

// NewHub returns an empty hub.
func NewHub() *Hub {
	return &Hub{clients: make(map[string]map[*client]struct{})}
}

// message is the payload pushed on every board/pouch/scorecard change.
type message struct {
	GameID         string `json:"game_id"`
	ExtractedCount int    `json:"extracted_count"`
	RemainingCount int    `json:"remaining_count"`
	PublishedScore int    `json:"published_score"`
	Status         string `json:"status"`
	LastNumber     *int   `json:"last_number,omitempty"`
}

// Subscribe upgrades the HTTP request to a websocket and registers it for
// gameID's updates until the socket closes.
func (h *Hub) Subscribe(c *gin.Context, gameID string) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.Errorf("live: upgrade failed for game %s: %v", gameID, err)
		return
	}

	cl := &client{conn: conn, send: make(chan []byte, 32)}

	h.mu.Lock()
	if h.clients[gameID] == nil {
		h.clients[gameID] = make(map[*client]struct{})
	}
	h.clients[gameID][cl] = struct{}{}
	h.mu.Unlock()

	go cl.writePump()
	cl.readPump(func() {
		h.mu.Lock()
		delete(h.clients[gameID], cl)
		h.mu.Unlock()
		cl.close()
	})
}

// Broadcast pushes g's current snapshot to every subscriber of g.ID.
// lastNumber, if non-nil, is the number just drawn that triggered this
// push. Safe to call with no subscribers (a no-op).
func (h *Hub) Broadcast(g *game.Game, lastNumber *int) {
	h.mu.Lock()
	subs := h.clients[g.ID]
	if len(subs) == 0 {
		h.mu.Unlock()
		return
	}
	targets := make([]*client, 0, len(subs))
	for c := range subs {
		targets = append(targets, c)
	}
	h.mu.Unlock()

	snap := g.Snapshot()
	msg := message{
		GameID:         snap.ID,
		ExtractedCount: snap.Board.Len(),
		RemainingCount: snap.Pouch.Len(),
		PublishedScore: snap.ScoreCard.PublishedScore,
		Status:         string(snap.Status),
		LastNumber:     lastNumber,
	}
	payload, err := json.Marshal(msg)
	if err != nil {
		logger.Errorf("live: failed to encode update for game %s: %v", g.ID, err)
		return
	}

	for _, c := range targets {
		select {
		case c.send <- payload:
		default:
			// slow subscriber; drop the update rather than block the draw.
		}
	}
}
