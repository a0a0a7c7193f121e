package game

import (
	"errors"
	"time"

	"github.com/playmatatu/minigolf/internal/course"
)

// ErrCourseChanged means a saved session was played on a different course set.
var ErrCourseChanged = errors.New("course set changed since session was saved")

// SavedSession is the serialized form kept in Redis between evictions and
// restarts. Pending timers are not saved; restore re-arms the one a HOLED or
// GAME_OVER round is waiting on.
type SavedSession struct {
	ID           string       `json:"id"`
	Mode         Mode         `json:"mode"`
	Fingerprint  string       `json:"course_fingerprint"`
	Field        Size         `json:"field"`
	Ball         BallState    `json:"ball"`
	Club         Club         `json:"club"`
	Round        RoundState   `json:"round"`
	Par          int          `json:"par"`
	Results      []HoleResult `json:"results"`
	Clock        float64      `json:"clock"`
	CreatedAt    time.Time    `json:"created_at"`
	LastActivity time.Time    `json:"last_activity"`
}

// Save captures the session for persistence.
func (s *GameSession) Save() SavedSession {
	s.mu.Lock()
	defer s.mu.Unlock()
	return SavedSession{
		ID:           s.ID,
		Mode:         s.Mode,
		Fingerprint:  s.fingerprint,
		Field:        s.field,
		Ball:         s.ball,
		Club:         s.shot.Club,
		Round:        s.round.State,
		Par:          s.round.par,
		Results:      append([]HoleResult(nil), s.round.Results...),
		Clock:        s.scheduler.Now(),
		CreatedAt:    s.CreatedAt,
		LastActivity: s.LastActivity,
	}
}

// RestoreSession rebuilds a session from its saved form against the current
// course set.
func RestoreSession(saved SavedSession, set *course.Set) (*GameSession, error) {
	if set.Len() == 0 {
		return nil, course.ErrNoCourses
	}
	if saved.Fingerprint != set.Fingerprint() {
		return nil, ErrCourseChanged
	}

	// Free play without a start hole leaves the course unset, which is what
	// every non-playing status wants before the state is overlaid.
	s, err := NewSession(saved.ID, set, saved.Mode, saved.Field, nil)
	if err != nil {
		return nil, err
	}
	s.outbox = nil
	s.scheduler.now = saved.Clock

	st := saved.Round.Status
	if st == StatusPlaying || st == StatusHoled {
		if err := s.setupHole(saved.Round.CurrentHoleIndex); err != nil {
			return nil, err
		}
	} else {
		s.course = nil
		s.engine = nil
	}

	s.round.State = saved.Round
	s.round.par = saved.Par
	s.round.Results = append([]HoleResult(nil), saved.Results...)
	if s.course != nil {
		s.ball = saved.Ball
	}
	if saved.Club != "" {
		s.shot.Club = saved.Club
	}
	s.CreatedAt = saved.CreatedAt
	s.LastActivity = saved.LastActivity
	s.outbox = nil
	s.message = ""

	switch st {
	case StatusHoled:
		if s.Mode == ModeFreePlay {
			s.scheduler.Schedule(HoleSelectDelay, "hole-select", s.toHoleSelect)
		} else {
			s.scheduler.Schedule(NextHoleDelay, "next-hole", s.advanceHole)
		}
	case StatusGameOver:
		s.scheduler.Schedule(HoleSelectDelay, "hole-select", s.toHoleSelect)
	}
	s.dirty = true
	return s, nil
}
