package ws

import (
	"encoding/json"
	"sync"

	"rentdesk/internal/domain"
)

// Client is one websocket connection of an authenticated user.
type Client struct {
	UserID string
	Role   string
	Send   chan []byte

	mu     sync.Mutex
	closed bool
}

func NewClient(userID, role string) *Client {
	return &Client{UserID: userID, Role: role, Send: make(chan []byte, 256)}
}

// Close closes Send once; later calls are no-ops.
func (c *Client) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	close(c.Send)
}

func (c *Client) deliver(data []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	select {
	case c.Send <- data:
	default:
	}
}

// Hub tracks the clients listening on each maintenance request's chat.
type Hub struct {
	mu    sync.RWMutex
	rooms map[string]map[*Client]struct{}
}

func NewHub() *Hub {
	return &Hub{rooms: make(map[string]map[*Client]struct{})}
}

func (h *Hub) Join(room string, c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.rooms[room] == nil {
		h.rooms[room] = make(map[*Client]struct{})
	}
	h.rooms[room][c] = struct{}{}
}

// Leave removes c from room and drops the room once empty.
func (h *Hub) Leave(room string, c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if m := h.rooms[room]; m != nil {
		delete(m, c)
		if len(m) == 0 {
			delete(h.rooms, room)
		}
	}
}

// Broadcast sends payload as JSON to every client in room. Slow clients
// whose buffer is full miss the message.
func (h *Hub) Broadcast(room string, payload interface{}) {
	h.send(room, payload, func(*Client) bool { return true })
}

// BroadcastTo sends payload only to the listed users in room, plus admins.
func (h *Hub) BroadcastTo(room string, payload interface{}, userIDs ...string) {
	allowed := make(map[string]struct{}, len(userIDs))
	for _, id := range userIDs {
		allowed[id] = struct{}{}
	}
	h.send(room, payload, func(c *Client) bool {
		_, ok := allowed[c.UserID]
		return ok || c.Role == domain.RoleAdmin
	})
}

func (h *Hub) send(room string, payload interface{}, keep func(*Client) bool) {
	data, err := json.Marshal(payload)
	if err != nil {
		return
	}
	h.mu.RLock()
	m := h.rooms[room]
	clients := make([]*Client, 0, len(m))
	for c := range m {
		if keep(c) {
			clients = append(clients, c)
		}
	}
	h.mu.RUnlock()
	for _, c := range clients {
		c.deliver(data)
	}
}

func (h *Hub) ClientCount(room string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[room])
}
