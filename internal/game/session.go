package game

import (
	"fmt"
	"sync"
	"time"

	"github.com/playmatatu/minigolf/internal/course"
	"github.com/playmatatu/minigolf/internal/logging"
)

// Frame is one update for the presentation layer.
type Frame struct {
	SessionID string      `json:"session_id"`
	Ball      BallState   `json:"ball"`
	Status    RoundStatus `json:"status"`
	Score     ScoreFeed   `json:"score"`
	Events    []Event     `json:"events,omitempty"`
	Time      float64     `json:"time"`
}

// RoundSummary is a finished score card, ready to persist.
type RoundSummary struct {
	SessionID    string       `json:"session_id"`
	Mode         Mode         `json:"mode"`
	Fingerprint  string       `json:"course_fingerprint"`
	Holes        []HoleResult `json:"holes"`
	TotalStrokes int          `json:"total_strokes"`
	TotalPar     int          `json:"total_par"`
	Final        string       `json:"final"`
}

// Snapshot is the full visible state of a session.
type Snapshot struct {
	ID         string       `json:"id"`
	Mode       Mode         `json:"mode"`
	Status     RoundStatus  `json:"status"`
	Field      Size         `json:"field"`
	Hole       *HoleView    `json:"hole,omitempty"`
	Ball       BallState    `json:"ball"`
	Club       Club         `json:"club"`
	Aim        AimGesture   `json:"aim"`
	PowerRatio float64      `json:"power_ratio"`
	Score      ScoreFeed    `json:"score"`
	Results    []HoleResult `json:"results"`
	Message    string       `json:"message,omitempty"`
	Final      string       `json:"final,omitempty"`
}

// HoleView is the renderer's view of the current hole.
type HoleView struct {
	Index int    `json:"index"`
	Name  string `json:"name"`
	Par   int    `json:"par"`
	Start Vec2   `json:"start"`
	Cup   Vec2   `json:"cup"`
}

// GameSession owns everything one player's game needs. Methods are safe for
// concurrent use; the simulation inside stays single-threaded.
type GameSession struct {
	ID           string
	Mode         Mode
	CreatedAt    time.Time
	LastActivity time.Time

	holes       []course.Hole
	fingerprint string
	field       Size
	course      *Course
	ball        BallState
	shot        *ShotController
	engine      *Engine
	round       *Round
	scheduler   *Scheduler

	message  string
	outbox   []Event
	dirty    bool
	finished []RoundSummary

	mu sync.Mutex
}

// NewSession validates every hole against the playfield and starts the
// round. Campaign starts on hole 1; free play starts at hole select unless
// startHole is given.
func NewSession(id string, set *course.Set, mode Mode, field Size, startHole *int) (*GameSession, error) {
	if set.Len() == 0 {
		return nil, course.ErrNoCourses
	}
	if !field.valid() {
		field = Size{Width: DefaultFieldWidth, Height: DefaultFieldHeight}
	}
	// Fail fast on a broken hole before anyone strikes a ball.
	pars := make([]int, len(set.Holes))
	for i, h := range set.Holes {
		if _, err := NewCourse(i, h, field); err != nil {
			return nil, err
		}
		pars[i] = h.Par
	}

	now := time.Now()
	s := &GameSession{
		ID:           id,
		Mode:         mode,
		CreatedAt:    now,
		LastActivity: now,
		holes:        set.Holes,
		fingerprint:  set.Fingerprint(),
		field:        field,
		shot:         NewShotController(),
		round:        NewRound(mode, pars),
		scheduler:    NewScheduler(),
	}

	switch {
	case mode == ModeCampaign:
		if err := s.setupHole(0); err != nil {
			return nil, err
		}
	case startHole != nil:
		if err := s.setupHole(*startHole); err != nil {
			return nil, err
		}
	default:
		s.round.ToHoleSelect()
		s.push(Event{Type: EventHoleSelect})
	}

	logging.S().Infof("[SESSION] %s created mode=%s holes=%d field=%.0fx%.0f", id, mode, len(set.Holes), field.Width, field.Height)
	return s, nil
}

// setupHole builds hole i and puts the ball on the tee. Any pending timed
// transition belongs to the previous hole and is invalidated.
func (s *GameSession) setupHole(i int) error {
	if i < 0 || i >= len(s.holes) {
		return ErrHoleOutOfRange
	}
	c, err := NewCourse(i, s.holes[i], s.field)
	if err != nil {
		return err
	}
	s.scheduler.Invalidate()
	s.course = c
	s.ball.PlaceAt(c.Start)
	s.engine = NewEngine(&s.ball, c)
	s.shot.Cancel()
	if err := s.round.StartHole(i); err != nil {
		return err
	}
	s.message = fmt.Sprintf("Hole %d, par %d", i+1, c.Par)
	s.push(Event{Type: EventHoleStart, Message: s.message})
	return nil
}

// PressAim starts a drag at the pointer.
func (s *GameSession) PressAim(pointer Vec2) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.playable(); err != nil {
		return err
	}
	s.touch()
	return s.shot.Press(&s.ball, pointer)
}

// MoveAim updates the drag and returns the meter ratio.
func (s *GameSession) MoveAim(pointer Vec2) (float64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()
	return s.shot.Move(pointer)
}

// ReleaseAim resolves the drag. An accepted strike counts one stroke and
// starts the ball moving.
func (s *GameSession) ReleaseAim(pointer Vec2) (Strike, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.playable(); err != nil {
		s.shot.Cancel()
		return Strike{}, false, err
	}
	s.touch()

	strike, ok, err := s.shot.Release(&s.ball, pointer)
	if err != nil {
		return Strike{}, false, err
	}
	if !ok {
		s.message = msgTooSoft
		s.dirty = true
		return strike, false, nil
	}

	s.round.AddStroke()
	s.engine.Strike(strike)
	s.message = ""
	s.push(Event{Type: EventStroke, Strokes: s.round.State.StrokesThisHole, Speed: strike.Power})
	logging.S().Debugf("[SESSION] %s stroke %d power=%.2f angle=%.3f club=%s",
		s.ID, s.round.State.StrokesThisHole, strike.Power, strike.Angle, strike.Club)
	return strike, true, nil
}

// CancelAim drops the drag.
func (s *GameSession) CancelAim() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.shot.Cancel()
}

// SelectClub switches clubs; only while the ball is not moving.
func (s *GameSession) SelectClub(c Club) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ball.Moving() {
		return ErrBallMoving
	}
	s.shot.Club = c
	s.touch()
	s.dirty = true
	return nil
}

// Tick advances the ball one step and applies the outcome to the round.
func (s *GameSession) Tick() TickResult {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.engine == nil || !s.ball.Moving() {
		return TickResult{Phase: s.ball.Phase}
	}

	res := s.engine.Tick()
	s.dirty = true
	if res.Penalty > 0 {
		s.round.AddPenalty(res.Penalty)
	}

	for i, ev := range res.Events {
		switch ev.Type {
		case EventHoled:
			hr := s.round.CompleteHole()
			ev.Strokes = hr.Strokes
			ev.Commentary = hr.Commentary
			ev.Message = fmt.Sprintf("%s (%d strokes)", hr.Commentary, hr.Strokes)
			res.Events[i] = ev
			s.message = ev.Message
			logging.S().Infof("[ROUND] %s hole %d holed strokes=%d par=%d %s",
				s.ID, hr.Index+1, hr.Strokes, hr.Par, hr.Commentary)
			s.scheduleAfterHole()
		case EventSplash, EventOutOfBounds, EventResting, EventReset:
			s.message = ev.Message
		}
	}
	s.outbox = append(s.outbox, res.Events...)
	return res
}

// scheduleAfterHole queues the timed transition for the finished hole.
func (s *GameSession) scheduleAfterHole() {
	if s.Mode == ModeFreePlay {
		s.finished = append(s.finished, s.summaryLocked())
		s.scheduler.Schedule(HoleSelectDelay, "hole-select", s.toHoleSelect)
		return
	}
	s.scheduler.Schedule(NextHoleDelay, "next-hole", s.advanceHole)
}

// advanceHole runs from the scheduler with the lock held.
func (s *GameSession) advanceHole() {
	next := s.round.State.CurrentHoleIndex + 1
	if next >= len(s.holes) {
		s.round.Finish()
		final := FinalScore(s.round.State.TotalStrokes, s.round.State.TotalPar)
		s.message = fmt.Sprintf("Game over! %d strokes, par %d (%s)", s.round.State.TotalStrokes, s.round.State.TotalPar, final)
		s.finished = append(s.finished, s.summaryLocked())
		s.push(Event{Type: EventGameOver, Message: s.message, Strokes: s.round.State.TotalStrokes, Commentary: final})
		logging.S().Infof("[ROUND] %s game over strokes=%d par=%d %s", s.ID, s.round.State.TotalStrokes, s.round.State.TotalPar, final)
		s.scheduler.Schedule(HoleSelectDelay, "hole-select", s.toHoleSelect)
		return
	}
	if err := s.setupHole(next); err != nil {
		logging.S().Errorf("[ROUND] %s failed to set up hole %d: %v", s.ID, next+1, err)
		s.round.ToHoleSelect()
		s.message = err.Error()
	}
}

func (s *GameSession) toHoleSelect() {
	s.round.ToHoleSelect()
	s.shot.Cancel()
	s.push(Event{Type: EventHoleSelect})
}

// Advance moves simulated time forward and fires due transitions.
func (s *GameSession) Advance(dt float64) []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.scheduler.Advance(dt)
}

// SelectHole starts a hole from hole select. Campaign rounds cannot jump.
func (s *GameSession) SelectHole(i int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Mode != ModeFreePlay {
		return ErrWrongMode
	}
	if i < 0 || i >= len(s.holes) {
		return ErrHoleOutOfRange
	}
	s.touch()
	s.round.Reset()
	return s.setupHole(i)
}

// Restart begins the round again.
func (s *GameSession) Restart() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()
	s.round.Reset()
	if s.Mode == ModeCampaign {
		return s.setupHole(0)
	}
	s.scheduler.Invalidate()
	s.course = nil
	s.engine = nil
	s.ball = BallState{Phase: PhaseResting}
	s.toHoleSelect()
	return nil
}

// Resize rebuilds the current hole for a new playfield. The ball keeps its
// relative position; an aim in progress is dropped.
func (s *GameSession) Resize(field Size) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !field.valid() {
		return fmt.Errorf("%w: invalid playfield %.0fx%.0f", ErrMalformedCourse, field.Width, field.Height)
	}
	old := s.field
	s.field = field
	s.shot.Cancel()
	s.dirty = true
	if s.course == nil {
		return nil
	}
	c, err := s.course.Rescale(field)
	if err != nil {
		s.field = old
		return err
	}
	sx, sy := field.Width/old.Width, field.Height/old.Height
	s.ball.Position.X *= sx
	s.ball.Position.Y *= sy
	s.ball.Velocity.X *= sx
	s.ball.Velocity.Y *= sy
	s.course = c
	s.engine = NewEngine(&s.ball, c)
	return nil
}

// Moving reports whether the ball is in motion.
func (s *GameSession) Moving() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ball.Moving()
}

// Busy reports whether the session needs ticking or has timers pending.
func (s *GameSession) Busy() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ball.Moving() || s.scheduler.Pending() > 0
}

// Idle reports how long the player has been inactive.
func (s *GameSession) Idle(now time.Time) time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ball.Moving() {
		return 0
	}
	return now.Sub(s.LastActivity)
}

// Flush returns the pending frame, if anything changed since the last call,
// plus any round summaries finished meanwhile.
func (s *GameSession) Flush() (*Frame, []RoundSummary) {
	s.mu.Lock()
	defer s.mu.Unlock()

	finished := s.finished
	s.finished = nil
	if !s.dirty && len(s.outbox) == 0 {
		return nil, finished
	}
	f := &Frame{
		SessionID: s.ID,
		Ball:      s.ball,
		Status:    s.round.State.Status,
		Score:     s.round.Feed(),
		Events:    s.outbox,
		Time:      s.scheduler.Now(),
	}
	s.outbox = nil
	s.dirty = false
	return f, finished
}

// Snapshot copies the visible state.
func (s *GameSession) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := Snapshot{
		ID:         s.ID,
		Mode:       s.Mode,
		Status:     s.round.State.Status,
		Field:      s.field,
		Ball:       s.ball,
		Club:       s.shot.Club,
		Aim:        s.shot.Gesture,
		PowerRatio: s.shot.PowerRatio(),
		Score:      s.round.Feed(),
		Results:    append([]HoleResult(nil), s.round.Results...),
		Message:    s.message,
	}
	if s.course != nil {
		snap.Hole = &HoleView{
			Index: s.course.Index,
			Name:  s.course.Name,
			Par:   s.course.Par,
			Start: s.course.Start,
			Cup:   s.course.Hole,
		}
	}
	if s.round.State.Status == StatusGameOver {
		snap.Final = FinalScore(s.round.State.TotalStrokes, s.round.State.TotalPar)
	}
	return snap
}

// ScoreFeed returns the score display data.
func (s *GameSession) ScoreFeed() ScoreFeed {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.round.Feed()
}

// RoundState returns a copy of the round state.
func (s *GameSession) RoundState() RoundState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.round.State
}

func (s *GameSession) playable() error {
	switch s.round.State.Status {
	case StatusGameOver:
		return ErrGameOver
	case StatusPlaying:
		if s.engine == nil {
			return ErrNoActiveHole
		}
		return nil
	default:
		return ErrNoActiveHole
	}
}

func (s *GameSession) summaryLocked() RoundSummary {
	return RoundSummary{
		SessionID:    s.ID,
		Mode:         s.Mode,
		Fingerprint:  s.fingerprint,
		Holes:        append([]HoleResult(nil), s.round.Results...),
		TotalStrokes: s.round.State.TotalStrokes,
		TotalPar:     s.round.State.TotalPar,
		Final:        FinalScore(s.round.State.TotalStrokes, s.round.State.TotalPar),
	}
}

func (s *GameSession) push(ev Event) {
	s.outbox = append(s.outbox, ev)
	s.dirty = true
}

func (s *GameSession) touch() {
	s.LastActivity = time.Now()
}
