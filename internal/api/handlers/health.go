package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/playmatatu/minigolf/internal/game"
)

var startTime = time.Now()

const version = "1.0.0"

// HealthCheck reports uptime and how many sessions this instance holds.
func HealthCheck(mgr *game.SessionManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":   "ok",
			"service":  "minigolf-api",
			"version":  version,
			"uptime":   time.Since(startTime).String(),
			"sessions": mgr.Count(),
			"holes":    mgr.Courses().Len(),
		})
	}
}
