package notify

import (
	"log"
	"sync"

	"github.com/gorilla/websocket"
)

// Event is a coarse change notification: a row in `table` was touched.
// Subscribers are expected to re-fetch, not to patch incrementally.
type Event struct {
	Table  string `json:"table"`
	Action string `json:"action"` // "insert" | "update" | "delete"
}

const (
	ActionInsert = "insert"
	ActionUpdate = "update"
	ActionDelete = "delete"
)

type client struct {
	conn   *websocket.Conn
	send   chan Event
	tables map[string]bool // empty set = all tables
}

// Hub fans change notifications out to connected websocket clients.
type Hub struct {
	mu      sync.RWMutex
	clients map[*client]struct{}
}

func NewHub() *Hub {
	return &Hub{clients: make(map[*client]struct{})}
}

// Broadcast pushes an event to every subscriber watching the table.
// Clients with a full send buffer are dropped rather than blocking the
// mutation path.
func (h *Hub) Broadcast(table, action string) {
	ev := Event{Table: table, Action: action}

	h.mu.RLock()
	var stale []*client
	for c := range h.clients {
		if len(c.tables) > 0 && !c.tables[table] {
			continue
		}
		select {
		case c.send <- ev:
		default:
			stale = append(stale, c)
		}
	}
	h.mu.RUnlock()

	for _, c := range stale {
		h.remove(c)
	}
}

// Subscribe registers a websocket connection for the given tables and
// starts its pumps. Blocks until the connection closes.
func (h *Hub) Subscribe(conn *websocket.Conn, tables []string) {
	watched := make(map[string]bool, len(tables))
	for _, t := range tables {
		watched[t] = true
	}

	c := &client{
		conn:   conn,
		send:   make(chan Event, 16),
		tables: watched,
	}

	h.mu.Lock()
	h.clients[c] = struct{}{}
	h.mu.Unlock()

	go c.writePump()
	c.readPump(h)
}

// ClientCount is exposed for the admin dashboard.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

func (h *Hub) remove(c *client) {
	h.mu.Lock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.send)
	}
	h.mu.Unlock()
	c.conn.Close()
}

func (c *client) writePump() {
	for ev := range c.send {
		if err := c.conn.WriteJSON(ev); err != nil {
			return
		}
	}
}

func (c *client) readPump(h *Hub) {
	defer h.remove(c)
	for {
		// Incoming frames are ignored; reading only detects disconnects.
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Println("websocket read error:", err)
			}
			return
		}
	}
}
