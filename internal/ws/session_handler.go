package ws

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/playmatatu/minigolf/internal/game"
	"github.com/playmatatu/minigolf/internal/logging"
)

// Client message payloads.
type AimData struct {
	Action string  `json:"action"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
}

type ClubData struct {
	Club string `json:"club"`
}

type ResizeData struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

type SelectHoleData struct {
	Hole int `json:"hole"`
}

// HandleWebSocket upgrades an authenticated request for session :id and
// streams its frames. The session must already be resolved by SessionAuth.
func HandleWebSocket(mgr *game.SessionManager, hub *Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID := c.Param("id")
		s, err := mgr.Get(c.Request.Context(), sessionID)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
			return
		}

		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			logging.S().Warnf("[WS] Upgrade error: %v", err)
			return
		}

		client := &Client{
			conn:      conn,
			id:        uuid.NewString(),
			sessionID: sessionID,
			send:      make(chan []byte, 256),
			hub:       hub,
		}
		if !hub.join(client) {
			conn.Close()
			return
		}

		client.reply(stateMessage(s))

		go client.writePump()
		go client.readPump(mgr)
	}
}

// readPump reads control messages until the connection drops.
func (c *Client) readPump(mgr *game.SessionManager) {
	defer func() {
		c.hub.leave(c)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(65536)
	c.conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		return nil
	})

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				logging.S().Warnf("[WS] unexpected close for client %s: %v", c.id, err)
			}
			return
		}
		c.conn.SetReadDeadline(time.Now().Add(60 * time.Second))

		var msg WSMessage
		if err := json.Unmarshal(message, &msg); err != nil {
			c.sendError("Invalid message")
			continue
		}

		s, err := mgr.Get(context.Background(), c.sessionID)
		if err != nil {
			c.sendError("Session not found")
			return
		}
		c.handleMessage(s, msg)
	}
}

// handleMessage applies one control message to the session. Ball motion
// itself reaches the client through the tick worker's frames.
func (c *Client) handleMessage(s *game.GameSession, msg WSMessage) {
	switch msg.Type {
	case "aim":
		var data AimData
		if err := json.Unmarshal(msg.Data, &data); err != nil {
			c.sendError("Invalid aim data")
			return
		}
		action, err := game.ParseAimAction(data.Action)
		if err != nil {
			c.sendError(err.Error())
			return
		}
		res, err := s.Aim(action, game.NewVec2(data.X, data.Y))
		if err != nil {
			c.sendError(err.Error())
			return
		}
		c.reply(map[string]interface{}{"type": "aim", "result": res})

	case "club":
		var data ClubData
		if err := json.Unmarshal(msg.Data, &data); err != nil {
			c.sendError("Invalid club data")
			return
		}
		club, err := game.ParseClub(data.Club)
		if err != nil {
			c.sendError(err.Error())
			return
		}
		if err := s.SelectClub(club); err != nil {
			c.sendError(err.Error())
			return
		}
		c.reply(stateMessage(s))

	case "resize":
		var data ResizeData
		if err := json.Unmarshal(msg.Data, &data); err != nil {
			c.sendError("Invalid resize data")
			return
		}
		if err := s.Resize(game.Size{Width: data.Width, Height: data.Height}); err != nil {
			c.sendError(err.Error())
			return
		}
		c.reply(stateMessage(s))

	case "select_hole":
		var data SelectHoleData
		if err := json.Unmarshal(msg.Data, &data); err != nil {
			c.sendError("Invalid hole data")
			return
		}
		if err := s.SelectHole(data.Hole); err != nil {
			c.sendError(err.Error())
			return
		}
		c.reply(stateMessage(s))

	case "restart":
		if err := s.Restart(); err != nil {
			c.sendError(err.Error())
			return
		}
		c.reply(stateMessage(s))

	case "get_state":
		c.reply(stateMessage(s))

	default:
		c.sendError("Unknown message type")
	}
}

func stateMessage(s *game.GameSession) map[string]interface{} {
	return map[string]interface{}{
		"type":  "state",
		"state": s.Snapshot(),
	}
}
