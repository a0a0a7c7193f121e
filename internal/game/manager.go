package game

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/playmatatu/minigolf/internal/config"
	"github.com/playmatatu/minigolf/internal/course"
	"github.com/playmatatu/minigolf/internal/logging"
	"github.com/redis/go-redis/v9"
)

var ErrSessionNotFound = errors.New("session not found")

// RoundRecorder stores finished score cards.
type RoundRecorder interface {
	SaveRound(ctx context.Context, r RoundSummary) (int, error)
}

// SessionManager owns every live session on this instance. Sessions evicted
// from memory stay in Redis as a snapshot and are restored on next access.
type SessionManager struct {
	sessions map[string]*GameSession
	courses  *course.Set
	field    Size
	rdb      *redis.Client
	recorder RoundRecorder
	config   *config.Config
	mu       sync.RWMutex
}

// NewSessionManager creates a manager for one course set. rdb and recorder
// may be nil.
func NewSessionManager(courses *course.Set, rdb *redis.Client, recorder RoundRecorder, cfg *config.Config) *SessionManager {
	field := Size{Width: DefaultFieldWidth, Height: DefaultFieldHeight}
	if cfg != nil {
		if f := (Size{Width: cfg.FieldWidth, Height: cfg.FieldHeight}); f.valid() {
			field = f
		}
	}
	return &SessionManager{
		sessions: make(map[string]*GameSession),
		courses:  courses,
		field:    field,
		rdb:      rdb,
		recorder: recorder,
		config:   cfg,
	}
}

// Courses is the course set every session plays.
func (m *SessionManager) Courses() *course.Set {
	return m.courses
}

// DefaultField is the playfield used when a client does not send its size.
func (m *SessionManager) DefaultField() Size {
	return m.field
}

// Create starts a new session. A zero field uses the default playfield.
func (m *SessionManager) Create(ctx context.Context, mode Mode, startHole *int, field Size) (*GameSession, error) {
	if !field.valid() {
		field = m.field
	}
	s, err := NewSession(uuid.NewString(), m.courses, mode, field, startHole)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	m.sessions[s.ID] = s
	m.mu.Unlock()

	if err := m.SaveSession(ctx, s); err != nil {
		logging.S().Warnf("[REDIS] snapshot for new session %s failed: %v", s.ID, err)
	}
	return s, nil
}

// Get returns a live session, restoring it from Redis if it was evicted.
func (m *SessionManager) Get(ctx context.Context, id string) (*GameSession, error) {
	m.mu.RLock()
	s, ok := m.sessions[id]
	m.mu.RUnlock()
	if ok {
		return s, nil
	}

	s, err := m.loadSession(ctx, id)
	if err != nil {
		logging.S().Debugf("[SESSION] %s not in memory or Redis: %v", id, err)
		return nil, ErrSessionNotFound
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	// Another request may have restored it meanwhile.
	if cur, ok := m.sessions[id]; ok {
		return cur, nil
	}
	m.sessions[id] = s
	logging.S().Infof("[SESSION] %s restored from Redis", id)
	return s, nil
}

// Sessions returns the live sessions in no particular order.
func (m *SessionManager) Sessions() []*GameSession {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*GameSession, 0, len(m.sessions))
	for _, s := range m.sessions {
		out = append(out, s)
	}
	return out
}

// Count is the number of live sessions.
func (m *SessionManager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// Evict snapshots a session and drops it from memory.
func (m *SessionManager) Evict(ctx context.Context, id string) bool {
	m.mu.Lock()
	s, ok := m.sessions[id]
	if ok {
		delete(m.sessions, id)
	}
	m.mu.Unlock()
	if !ok {
		return false
	}
	if err := m.SaveSession(ctx, s); err != nil {
		logging.S().Warnf("[REDIS] snapshot on evict for %s failed: %v", id, err)
	}
	logging.S().Infof("[SESSION] %s evicted", id)
	return true
}

// EvictIdle evicts every session idle for at least maxIdle.
func (m *SessionManager) EvictIdle(ctx context.Context, now time.Time, maxIdle time.Duration) int {
	n := 0
	for _, s := range m.Sessions() {
		if s.Idle(now) >= maxIdle && m.Evict(ctx, s.ID) {
			n++
		}
	}
	return n
}

// SaveSession writes the session snapshot to Redis.
func (m *SessionManager) SaveSession(ctx context.Context, s *GameSession) error {
	if m.rdb == nil {
		return nil
	}
	data, err := json.Marshal(s.Save())
	if err != nil {
		return err
	}
	return m.rdb.SetEx(ctx, sessionKey(s.ID), data, m.snapshotTTL()).Err()
}

func (m *SessionManager) loadSession(ctx context.Context, id string) (*GameSession, error) {
	if m.rdb == nil {
		return nil, errors.New("no redis client")
	}
	data, err := m.rdb.Get(ctx, sessionKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, errors.New("session not found in redis")
	}
	if err != nil {
		return nil, err
	}
	var saved SavedSession
	if err := json.Unmarshal(data, &saved); err != nil {
		return nil, err
	}
	return RestoreSession(saved, m.courses)
}

// RecordRounds persists finished score cards. Failures are logged, not
// returned: the round is already over for the player.
func (m *SessionManager) RecordRounds(ctx context.Context, rounds []RoundSummary) {
	if m.recorder == nil {
		return
	}
	for _, r := range rounds {
		if _, err := m.recorder.SaveRound(ctx, r); err != nil {
			logging.S().Errorf("[DB] failed to save scorecard for session %s: %v", r.SessionID, err)
		}
	}
}

func (m *SessionManager) snapshotTTL() time.Duration {
	if m.config != nil && m.config.SessionSnapshotTTLMinutes > 0 {
		return time.Duration(m.config.SessionSnapshotTTLMinutes) * time.Minute
	}
	return time.Hour
}

func sessionKey(id string) string {
	return "session:" + id + ":state"
}
