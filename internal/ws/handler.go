package ws

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/playmatatu/minigolf/internal/logging"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // origin is checked by middleware.WebSocketCORSCheck
	},
}

// Client is one websocket connection watching one session.
type Client struct {
	conn      *websocket.Conn
	id        string
	sessionID string
	send      chan []byte
	hub       *Hub
}

// Hub maintains the connected clients grouped by session.
type Hub struct {
	clients    map[string]*Client            // clientID -> Client
	rooms      map[string]map[string]*Client // sessionID -> clientID -> Client
	register   chan *Client
	unregister chan *Client
	done       chan struct{}
	mu         sync.RWMutex
}

// NewHub creates a new Hub. Run must be started before clients connect.
func NewHub() *Hub {
	return &Hub{
		clients:    make(map[string]*Client),
		rooms:      make(map[string]map[string]*Client),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
	}
}

// Run serves register/unregister until ctx is done, then drops every client.
func (h *Hub) Run(ctx context.Context) error {
	logging.S().Info("[WS] hub started")
	for {
		select {
		case <-ctx.Done():
			close(h.done)
			h.mu.Lock()
			for id, c := range h.clients {
				c.conn.Close()
				delete(h.clients, id)
			}
			h.rooms = make(map[string]map[string]*Client)
			h.mu.Unlock()
			logging.S().Info("[WS] hub stopped")
			return nil

		case c := <-h.register:
			h.mu.Lock()
			h.clients[c.id] = c
			if _, ok := h.rooms[c.sessionID]; !ok {
				h.rooms[c.sessionID] = make(map[string]*Client)
			}
			h.rooms[c.sessionID][c.id] = c
			size := len(h.rooms[c.sessionID])
			h.mu.Unlock()
			logging.S().Infof("[WS] client %s joined session %s (room_size=%d)", c.id, c.sessionID, size)

		case c := <-h.unregister:
			h.mu.Lock()
			if cur, ok := h.clients[c.id]; ok && cur == c {
				delete(h.clients, c.id)
				if room, ok := h.rooms[c.sessionID]; ok {
					delete(room, c.id)
					if len(room) == 0 {
						delete(h.rooms, c.sessionID)
					}
				}
				close(c.send)
				logging.S().Infof("[WS] client %s left session %s", c.id, c.sessionID)
			}
			h.mu.Unlock()
		}
	}
}

func (h *Hub) join(c *Client) bool {
	select {
	case h.register <- c:
		return true
	case <-h.done:
		return false
	}
}

func (h *Hub) leave(c *Client) {
	select {
	case h.unregister <- c:
	case <-h.done:
	}
}

// BroadcastToSession sends a message to every client of a session.
func (h *Hub) BroadcastToSession(sessionID string, message interface{}) {
	data, err := json.Marshal(message)
	if err != nil {
		logging.S().Errorf("[WS] error marshaling message: %v", err)
		return
	}
	h.broadcastRaw(sessionID, data)
}

func (h *Hub) broadcastRaw(sessionID string, data []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, c := range h.rooms[sessionID] {
		select {
		case c.send <- data:
		default:
			logging.S().Warnf("[WS] send buffer full for client %s in session %s, dropping message", c.id, sessionID)
		}
	}
}

// RoomSize is the number of clients watching a session.
func (h *Hub) RoomSize(sessionID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[sessionID])
}

// WSMessage is the client-to-server envelope.
type WSMessage struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

// writePump writes messages to the WebSocket connection
func (c *Client) writePump() {
	ticker := time.NewTicker(30 * time.Second)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case <-c.hub.done:
			return
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				logging.S().Debugf("[WS] write error for client %s: %v", c.id, err)
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				logging.S().Debugf("[WS] ping error for client %s: %v", c.id, err)
				return
			}
		}
	}
}

// reply queues a message for this client only.
func (c *Client) reply(message interface{}) {
	data, err := json.Marshal(message)
	if err != nil {
		logging.S().Errorf("[WS] error marshaling reply: %v", err)
		return
	}
	select {
	case c.send <- data:
	default:
		logging.S().Warnf("[WS] reply dropped for client %s (buffer full)", c.id)
	}
}

func (c *Client) sendError(message string) {
	c.reply(map[string]interface{}{
		"type":    "error",
		"message": message,
	})
}
