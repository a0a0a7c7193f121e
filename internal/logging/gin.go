package logging

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// GinLogger logs one line per request through zap in place of gin.Logger.
// The websocket route is logged on upgrade only.
func GinLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		c.Next()

		fields := []zap.Field{
			zap.Int("status", c.Writer.Status()),
			zap.String("method", c.Request.Method),
			zap.String("path", path),
			zap.String("ip", c.ClientIP()),
			zap.Duration("latency", time.Since(start)),
		}
		if len(c.Errors) > 0 {
			L().Error("[API] "+c.Errors.String(), fields...)
			return
		}
		if c.Writer.Status() >= 500 {
			L().Warn("[API] request failed", fields...)
			return
		}
		L().Debug("[API] request", fields...)
	}
}
