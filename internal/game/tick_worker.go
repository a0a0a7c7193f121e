package game

import (
	"context"
	"time"

	"github.com/playmatatu/minigolf/internal/config"
	"github.com/playmatatu/minigolf/internal/logging"
)

// FramePublisher delivers frames to whoever is watching a session.
type FramePublisher interface {
	PublishFrame(ctx context.Context, f *Frame)
}

// RunTickWorker drives every live session at the configured frame rate until
// ctx is cancelled. Each frame ticks the ball, advances the session clock by
// one frame and publishes whatever changed.
func RunTickWorker(ctx context.Context, m *SessionManager, pub FramePublisher, cfg *config.Config) error {
	hz := 60
	if cfg != nil && cfg.TickRateHz > 0 {
		hz = cfg.TickRateHz
	}
	interval := time.Second / time.Duration(hz)
	dt := 1.0 / float64(hz)

	logging.S().Infof("[TICK] Tick worker started at %d Hz", hz)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logging.S().Info("[TICK] Tick worker stopping")
			return nil
		case <-ticker.C:
			for _, s := range m.Sessions() {
				stepSession(ctx, m, s, pub, dt)
			}
		}
	}
}

// stepSession runs one frame for one session.
func stepSession(ctx context.Context, m *SessionManager, s *GameSession, pub FramePublisher, dt float64) {
	s.Tick()
	s.Advance(dt)

	frame, finished := s.Flush()
	if frame != nil && pub != nil {
		pub.PublishFrame(ctx, frame)
	}
	if len(finished) > 0 {
		go m.RecordRounds(context.WithoutCancel(ctx), finished)
	}
	// Snapshot on discrete transitions only; a rolling ball changes every frame.
	if frame != nil && len(frame.Events) > 0 {
		go func() {
			if err := m.SaveSession(context.WithoutCancel(ctx), s); err != nil {
				logging.S().Warnf("[REDIS] snapshot for %s failed: %v", s.ID, err)
			}
		}()
	}
}
