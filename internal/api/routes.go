package api

import (
	"github.com/gin-gonic/gin"
	"github.com/playmatatu/minigolf/internal/api/handlers"
	"github.com/playmatatu/minigolf/internal/config"
	"github.com/playmatatu/minigolf/internal/game"
	"github.com/playmatatu/minigolf/internal/logging"
	"github.com/playmatatu/minigolf/internal/middleware"
	"github.com/playmatatu/minigolf/internal/ws"
)

// SetupRoutes configures all API routes. scores may be nil when Postgres is
// not configured.
func SetupRoutes(router *gin.Engine, mgr *game.SessionManager, hub *ws.Hub, scores handlers.ScoreReader, cfg *config.Config) {
	router.Use(middleware.CORSMiddleware(cfg))

	if cfg.Environment != "production" {
		router.Use(func(c *gin.Context) {
			c.Header("Cache-Control", "no-store, no-cache, must-revalidate, max-age=0")
			c.Header("Pragma", "no-cache")
			c.Header("Expires", "0")
			c.Next()
		})
		logging.S().Info("[DEV MODE] no-cache headers enabled for all routes")
	}

	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", handlers.HealthCheck(mgr))
		v1.GET("/courses", handlers.ListCourses(mgr))
		v1.GET("/scores", handlers.GetScores(scores))
		v1.POST("/sessions", handlers.CreateSession(mgr, cfg))

		session := v1.Group("/sessions/:id", middleware.SessionAuth(cfg))
		{
			session.GET("", handlers.GetSession(mgr))
			session.POST("/aim", handlers.Aim(mgr))
			session.POST("/club", handlers.SelectClub(mgr))
			session.POST("/resize", handlers.Resize(mgr))
			session.POST("/hole", handlers.SelectHole(mgr))
			session.POST("/restart", handlers.Restart(mgr))
			session.GET("/ws", middleware.WebSocketCORSCheck(cfg), handlers.HandleSessionWebSocket(mgr, hub))
		}
	}
}
