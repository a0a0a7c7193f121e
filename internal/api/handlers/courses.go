package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/playmatatu/minigolf/internal/game"
)

type holeInfo struct {
	Index int    `json:"index"`
	Name  string `json:"name"`
	Par   int    `json:"par"`
}

// ListCourses returns the holes available for hole selection.
func ListCourses(mgr *game.SessionManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		set := mgr.Courses()
		holes := make([]holeInfo, 0, set.Len())
		for i, h := range set.Holes {
			holes = append(holes, holeInfo{Index: i, Name: h.DisplayName(i), Par: h.Par})
		}
		c.JSON(http.StatusOK, gin.H{
			"name":        set.Name,
			"fingerprint": set.Fingerprint(),
			"total_par":   set.TotalPar(),
			"holes":       holes,
		})
	}
}
