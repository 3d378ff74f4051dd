package ws

import (
	"encoding/json"
	"log/slog"
	"sync"
)

// Message is the WebSocket envelope format
type Message struct {
	Event   string          `json:"event"`
	Payload json.RawMessage `json:"payload"`
}

// Connection represents one watcher connection
type Connection struct {
	ContestID string
	Send      chan []byte
	Hub       *Hub
}

// BroadcastMessage is a message to fan out to a contest's watchers
type BroadcastMessage struct {
	ContestID string
	Message   *Message
}

// Hub fans solve-feed events out to contest watchers. Delivery is
// best-effort: slow consumers get dropped messages, never backpressure into
// the judge.
type Hub struct {
	watchers map[string]map[*Connection]struct{} // contestID -> connections

	mu sync.RWMutex

	register   chan *Connection
	unregister chan *Connection
	broadcast  chan *BroadcastMessage

	logger *slog.Logger
}

// NewHub creates a hub and starts its fan-out loop
func NewHub(logger *slog.Logger) *Hub {
	h := &Hub{
		watchers:   make(map[string]map[*Connection]struct{}),
		register:   make(chan *Connection),
		unregister: make(chan *Connection),
		broadcast:  make(chan *BroadcastMessage, 256),
		logger:     logger,
	}
	go h.run()
	return h
}

func (h *Hub) run() {
	for {
		select {
		case conn := <-h.register:
			h.mu.Lock()
			if h.watchers[conn.ContestID] == nil {
				h.watchers[conn.ContestID] = make(map[*Connection]struct{})
			}
			h.watchers[conn.ContestID][conn] = struct{}{}
			h.mu.Unlock()
			h.logger.Debug("watcher connected", "contestId", conn.ContestID)

		case conn := <-h.unregister:
			h.mu.Lock()
			if conns, ok := h.watchers[conn.ContestID]; ok {
				if _, ok := conns[conn]; ok {
					delete(conns, conn)
					close(conn.Send)
				}
				if len(conns) == 0 {
					delete(h.watchers, conn.ContestID)
				}
			}
			h.mu.Unlock()
			h.logger.Debug("watcher disconnected", "contestId", conn.ContestID)

		case msg := <-h.broadcast:
			data, _ := json.Marshal(msg.Message)
			h.mu.RLock()
			for conn := range h.watchers[msg.ContestID] {
				select {
				case conn.Send <- data:
				default:
					// Drop message if buffer full
				}
			}
			h.mu.RUnlock()
		}
	}
}

// Register adds a connection
func (h *Hub) Register(conn *Connection) {
	h.register <- conn
}

// Unregister removes a connection
func (h *Hub) Unregister(conn *Connection) {
	h.unregister <- conn
}

// BroadcastToContest sends an event to every watcher of the contest
// (implements service.Broadcaster).
func (h *Hub) BroadcastToContest(contestID string, event string, payload interface{}) {
	data, err := json.Marshal(payload)
	if err != nil {
		h.logger.Warn("broadcast payload marshal failed", "event", event, "error", err)
		return
	}
	h.broadcast <- &BroadcastMessage{
		ContestID: contestID,
		Message: &Message{
			Event:   event,
			Payload: data,
		},
	}
}
