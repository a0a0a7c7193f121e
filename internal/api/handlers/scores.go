package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/playmatatu/minigolf/internal/logging"
	"github.com/playmatatu/minigolf/internal/models"
)

// ScoreReader reads stored score cards.
type ScoreReader interface {
	Best(ctx context.Context, mode, fingerprint string, limit int) ([]models.Scorecard, error)
}

// GetScores lists the best rounds, filtered by ?mode= and ?course=.
func GetScores(scores ScoreReader) gin.HandlerFunc {
	return func(c *gin.Context) {
		if scores == nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "score storage not configured"})
			return
		}
		limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

		cards, err := scores.Best(c.Request.Context(), c.Query("mode"), c.Query("course"), limit)
		if err != nil {
			logging.S().Errorf("[API] failed to load scores: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load scores"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"scores": cards})
	}
}
