package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/playmatatu/minigolf/internal/auth"
	"github.com/playmatatu/minigolf/internal/config"
	"github.com/playmatatu/minigolf/internal/game"
	"github.com/playmatatu/minigolf/internal/logging"
)

// CreateSession starts a campaign or free-play session and issues its token.
func CreateSession(mgr *game.SessionManager, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			Mode   string  `json:"mode"`
			Hole   *int    `json:"hole,omitempty"`
			Width  float64 `json:"width,omitempty"`
			Height float64 `json:"height,omitempty"`
		}
		// An empty body means a default campaign.
		if c.Request.ContentLength != 0 {
			if err := c.ShouldBindJSON(&req); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
				return
			}
		}

		mode, err := game.ParseMode(req.Mode)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if req.Hole != nil && mode != game.ModeFreePlay {
			c.JSON(http.StatusBadRequest, gin.H{"error": "hole can only be chosen in free-play"})
			return
		}

		s, err := mgr.Create(c.Request.Context(), mode, req.Hole, game.Size{Width: req.Width, Height: req.Height})
		if err != nil {
			respondError(c, err)
			return
		}

		ttl := time.Duration(cfg.SessionTimeoutMin) * time.Minute
		if ttl <= 0 {
			ttl = 2 * time.Hour
		}
		token, err := auth.IssueSessionToken(cfg.JWTSecret, s.ID, ttl)
		if err != nil {
			logging.S().Errorf("[API] failed to sign token for session %s: %v", s.ID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}

		c.Header("X-Session-ID", s.ID)
		c.JSON(http.StatusCreated, gin.H{
			"session_id": s.ID,
			"token":      token,
			"state":      s.Snapshot(),
		})
	}
}

// GetSession returns the session snapshot.
func GetSession(mgr *game.SessionManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		s, ok := loadSession(c, mgr)
		if !ok {
			return
		}
		c.JSON(http.StatusOK, s.Snapshot())
	}
}

// Aim applies one drag step: press, move, release or cancel.
func Aim(mgr *game.SessionManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			Action string  `json:"action" binding:"required"`
			X      float64 `json:"x"`
			Y      float64 `json:"y"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "action required"})
			return
		}
		action, err := game.ParseAimAction(req.Action)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		s, ok := loadSession(c, mgr)
		if !ok {
			return
		}
		res, err := s.Aim(action, game.NewVec2(req.X, req.Y))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"result": res, "state": s.Snapshot()})
	}
}

// SelectClub switches between putter and wedge.
func SelectClub(mgr *game.SessionManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			Club string `json:"club" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "club required"})
			return
		}
		club, err := game.ParseClub(req.Club)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		s, ok := loadSession(c, mgr)
		if !ok {
			return
		}
		if err := s.SelectClub(club); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, s.Snapshot())
	}
}

// Resize rescales the current hole to a new playfield.
func Resize(mgr *game.SessionManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			Width  float64 `json:"width" binding:"required"`
			Height float64 `json:"height" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "width and height required"})
			return
		}

		s, ok := loadSession(c, mgr)
		if !ok {
			return
		}
		if err := s.Resize(game.Size{Width: req.Width, Height: req.Height}); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, s.Snapshot())
	}
}

// SelectHole starts a hole in free play.
func SelectHole(mgr *game.SessionManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			Hole *int `json:"hole" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "hole required"})
			return
		}

		s, ok := loadSession(c, mgr)
		if !ok {
			return
		}
		if err := s.SelectHole(*req.Hole); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, s.Snapshot())
	}
}

// Restart begins the round again.
func Restart(mgr *game.SessionManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		s, ok := loadSession(c, mgr)
		if !ok {
			return
		}
		if err := s.Restart(); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, s.Snapshot())
	}
}
