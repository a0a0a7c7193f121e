package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/playmatatu/minigolf/internal/game"
	"github.com/playmatatu/minigolf/internal/ws"
)

// HandleSessionWebSocket streams frames for one session.
func HandleSessionWebSocket(mgr *game.SessionManager, hub *ws.Hub) gin.HandlerFunc {
	return ws.HandleWebSocket(mgr, hub)
}
