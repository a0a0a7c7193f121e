package game

import (
	"context"
	"time"

	"github.com/playmatatu/minigolf/internal/config"
	"github.com/playmatatu/minigolf/internal/logging"
)

// RunIdleWorker evicts sessions nobody has touched for SESSION_IDLE_MINUTES.
// Evicted sessions keep their Redis snapshot and come back on next access.
func RunIdleWorker(ctx context.Context, m *SessionManager, cfg *config.Config) error {
	maxIdle := 30 * time.Minute
	if cfg != nil && cfg.SessionIdleMinutes > 0 {
		maxIdle = time.Duration(cfg.SessionIdleMinutes) * time.Minute
	}
	poll := maxIdle / 10
	if poll < time.Second {
		poll = time.Second
	}

	logging.S().Infof("[IDLE] Idle worker started (max idle %s, poll %s)", maxIdle, poll)
	ticker := time.NewTicker(poll)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logging.S().Info("[IDLE] Idle worker stopping")
			return nil
		case now := <-ticker.C:
			if n := m.EvictIdle(ctx, now, maxIdle); n > 0 {
				logging.S().Infof("[IDLE] evicted %d idle sessions, %d live", n, m.Count())
			}
		}
	}
}
