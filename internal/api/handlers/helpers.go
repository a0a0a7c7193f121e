package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/playmatatu/minigolf/internal/course"
	"github.com/playmatatu/minigolf/internal/game"
	"github.com/playmatatu/minigolf/internal/logging"
)

// statusFor maps game errors onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, game.ErrSessionNotFound):
		return http.StatusNotFound
	case errors.Is(err, game.ErrHoleOutOfRange),
		errors.Is(err, game.ErrMalformedCourse):
		return http.StatusBadRequest
	case errors.Is(err, game.ErrBallMoving),
		errors.Is(err, game.ErrNotAiming),
		errors.Is(err, game.ErrGameOver),
		errors.Is(err, game.ErrNoActiveHole),
		errors.Is(err, game.ErrWrongMode):
		return http.StatusConflict
	case errors.Is(err, course.ErrNoCourses):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func respondError(c *gin.Context, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		logging.S().Errorf("[API] %s %s: %v", c.Request.Method, c.FullPath(), err)
		c.JSON(status, gin.H{"error": "internal error"})
		return
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

// loadSession resolves :id, writing the error response when it fails.
func loadSession(c *gin.Context, mgr *game.SessionManager) (*game.GameSession, bool) {
	s, err := mgr.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return nil, false
	}
	return s, true
}
