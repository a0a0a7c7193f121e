package game

import (
	"errors"
	"testing"

	"github.com/playmatatu/minigolf/internal/course"
)

// shortHole puts the cup 100px right of the tee on the test field; a 66px
// drag holes it in one on rough.
func shortHole(name string, par int) course.Hole {
	return course.Hole{Name: name, Par: par, Start: pt(10, 50), Hole: pt(20, 50)}
}

func pondHole() course.Hole {
	return course.Hole{
		Name:      "pond",
		Par:       3,
		Start:     pt(10, 50),
		Hole:      pt(90, 50),
		Obstacles: []course.ObstacleSpec{obstacle("water", rectSpec(30, 0, 10, 100))},
	}
}

func testSet(holes ...course.Hole) *course.Set {
	return &course.Set{Name: "test", Holes: holes}
}

func newTestSession(t *testing.T, mode Mode, startHole *int, holes ...course.Hole) *GameSession {
	t.Helper()
	s, err := NewSession("s1", testSet(holes...), mode, testField, startHole)
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}
	return s
}

// putt drags dx pixels left of the ball and releases.
func putt(t *testing.T, s *GameSession, dx float64) {
	t.Helper()
	ball := s.Snapshot().Ball.Position.Ground()
	pointer := ball.Minus(Vec2{X: dx})
	if err := s.PressAim(ball); err != nil {
		t.Fatalf("PressAim: %v", err)
	}
	if _, ok, err := s.ReleaseAim(pointer); err != nil || !ok {
		t.Fatalf("ReleaseAim: ok=%v err=%v", ok, err)
	}
}

func settle(t *testing.T, s *GameSession) {
	t.Helper()
	for i := 0; i < 5000 && s.Moving(); i++ {
		s.Tick()
	}
	if s.Moving() {
		t.Fatal("ball never settled")
	}
}

func TestCampaignFlow(t *testing.T) {
	s := newTestSession(t, ModeCampaign, nil, shortHole("one", 2), shortHole("two", 2))

	if st := s.RoundState(); st.Status != StatusPlaying || st.CurrentHoleIndex != 0 {
		t.Fatalf("campaign should start on hole 1: %+v", st)
	}

	putt(t, s, 66)
	settle(t, s)

	st := s.RoundState()
	if st.Status != StatusHoled || st.TotalStrokes != 1 || st.TotalPar != 2 {
		t.Fatalf("after hole in one: %+v", st)
	}
	snap := s.Snapshot()
	if len(snap.Results) != 1 || snap.Results[0].Commentary != "Hole in one!" {
		t.Errorf("results = %+v", snap.Results)
	}

	if fired := s.Advance(1.0); len(fired) != 0 {
		t.Errorf("next hole fired early: %v", fired)
	}
	s.Advance(1.0)
	if st := s.RoundState(); st.Status != StatusPlaying || st.CurrentHoleIndex != 1 || st.StrokesThisHole != 0 {
		t.Fatalf("should be on hole 2: %+v", st)
	}

	putt(t, s, 66)
	settle(t, s)
	s.Advance(NextHoleDelay)

	st = s.RoundState()
	if st.Status != StatusGameOver {
		t.Fatalf("expected game over, got %+v", st)
	}
	if snap := s.Snapshot(); snap.Final != "-2" {
		t.Errorf("final = %q, want -2", snap.Final)
	}
	if err := s.PressAim(Vec2{}); !errors.Is(err, ErrGameOver) {
		t.Errorf("aim after game over: %v", err)
	}

	frame, finished := s.Flush()
	if frame == nil || !hasEvent(frame.Events, EventGameOver) {
		t.Errorf("frame should carry gameOver: %+v", frame)
	}
	if len(finished) != 1 || finished[0].TotalStrokes != 2 || len(finished[0].Holes) != 2 {
		t.Errorf("finished = %+v", finished)
	}

	s.Advance(HoleSelectDelay)
	if st := s.RoundState(); st.Status != StatusHoleSelect {
		t.Errorf("expected hole select after game over, got %s", st.Status)
	}
}

func TestStrokeAndPenaltyCounting(t *testing.T) {
	s := newTestSession(t, ModeCampaign, nil, pondHole())

	putt(t, s, 180)
	settle(t, s)

	st := s.RoundState()
	if st.StrokesThisHole != 2 || st.PenaltiesThisHole != 1 || st.TotalStrokes != 2 {
		t.Errorf("stroke + water penalty should be 2: %+v", st)
	}
	snap := s.Snapshot()
	if snap.Ball.Position.Ground() != snap.Hole.Start {
		t.Errorf("ball should be back on the tee: %+v", snap.Ball.Position)
	}
	if snap.Message != msgSplash {
		t.Errorf("message = %q", snap.Message)
	}
}

func TestTooSoftDoesNotCount(t *testing.T) {
	s := newTestSession(t, ModeCampaign, nil, shortHole("one", 2))
	ball := s.Snapshot().Ball.Position.Ground()

	if _, err := s.Aim(AimPress, ball); err != nil {
		t.Fatalf("press: %v", err)
	}
	res, err := s.Aim(AimRelease, ball.Plus(Vec2{X: 3}))
	if err != nil {
		t.Fatalf("release: %v", err)
	}
	if res.Accepted || res.Message != msgTooSoft {
		t.Errorf("soft release = %+v", res)
	}
	if st := s.RoundState(); st.StrokesThisHole != 0 {
		t.Errorf("soft release counted a stroke: %+v", st)
	}
	if s.Moving() {
		t.Error("ball moved on a discarded strike")
	}
}

func TestSelectClubWhileMoving(t *testing.T) {
	s := newTestSession(t, ModeCampaign, nil, pondHole())
	if err := s.SelectClub(ClubWedge); err != nil {
		t.Fatalf("select at rest: %v", err)
	}
	putt(t, s, 60)
	if err := s.SelectClub(ClubPutter); !errors.Is(err, ErrBallMoving) {
		t.Errorf("select while moving: %v", err)
	}
	if err := s.PressAim(Vec2{}); !errors.Is(err, ErrBallMoving) {
		t.Errorf("aim while moving: %v", err)
	}
}

func TestFreePlayFlow(t *testing.T) {
	s := newTestSession(t, ModeFreePlay, nil, shortHole("one", 2), shortHole("two", 3))

	if st := s.RoundState(); st.Status != StatusHoleSelect {
		t.Fatalf("free play starts at hole select: %+v", st)
	}
	if err := s.PressAim(Vec2{}); !errors.Is(err, ErrNoActiveHole) {
		t.Errorf("aim at hole select: %v", err)
	}
	if err := s.SelectHole(5); !errors.Is(err, ErrHoleOutOfRange) {
		t.Errorf("SelectHole(5) = %v", err)
	}
	if err := s.SelectHole(1); err != nil {
		t.Fatalf("SelectHole: %v", err)
	}

	putt(t, s, 66)
	settle(t, s)

	_, finished := s.Flush()
	if len(finished) != 1 || finished[0].TotalPar != 3 || finished[0].Final != "-2" {
		t.Errorf("free play summary = %+v", finished)
	}

	s.Advance(HoleSelectDelay)
	if st := s.RoundState(); st.Status != StatusHoleSelect {
		t.Errorf("expected hole select, got %s", st.Status)
	}

	if err := s.SelectHole(0); err != nil {
		t.Fatalf("SelectHole: %v", err)
	}
	if st := s.RoundState(); st.TotalStrokes != 0 || st.CurrentHoleIndex != 0 {
		t.Errorf("selecting a hole starts a fresh round: %+v", st)
	}
}

func TestCampaignCannotSelectHole(t *testing.T) {
	s := newTestSession(t, ModeCampaign, nil, shortHole("one", 2))
	if err := s.SelectHole(0); !errors.Is(err, ErrWrongMode) {
		t.Errorf("SelectHole in campaign = %v", err)
	}
}

func TestRestartCancelsPendingTransition(t *testing.T) {
	s := newTestSession(t, ModeCampaign, nil, shortHole("one", 2), shortHole("two", 2))
	putt(t, s, 66)
	settle(t, s)

	if err := s.Restart(); err != nil {
		t.Fatalf("Restart: %v", err)
	}
	s.Advance(10)

	st := s.RoundState()
	if st.CurrentHoleIndex != 0 || st.Status != StatusPlaying || st.TotalStrokes != 0 {
		t.Errorf("restart should leave hole 1 fresh: %+v", st)
	}
}

func TestResizeKeepsRelativePosition(t *testing.T) {
	s := newTestSession(t, ModeCampaign, nil, pondHole())

	if err := s.Resize(Size{Width: 500, Height: 250}); err != nil {
		t.Fatalf("Resize: %v", err)
	}
	snap := s.Snapshot()
	if snap.Ball.Position.Ground() != (Vec2{X: 50, Y: 125}) {
		t.Errorf("ball = %+v", snap.Ball.Position)
	}
	if snap.Hole.Start != (Vec2{X: 50, Y: 125}) || snap.Hole.Cup != (Vec2{X: 450, Y: 125}) {
		t.Errorf("hole = %+v", snap.Hole)
	}
	if err := s.Resize(Size{}); err == nil {
		t.Error("expected error for empty playfield")
	}
}

func TestNewSessionRejectsBadCourse(t *testing.T) {
	bad := course.Hole{Par: 3, Start: pt(10, 10), Hole: pt(50, 50),
		Obstacles: []course.ObstacleSpec{obstacle("lava", rectSpec(0, 0, 1, 1))}}
	_, err := NewSession("x", testSet(shortHole("ok", 2), bad), ModeCampaign, testField, nil)
	if !errors.Is(err, ErrMalformedCourse) {
		t.Errorf("expected ErrMalformedCourse, got %v", err)
	}
	if _, err := NewSession("x", testSet(), ModeCampaign, testField, nil); !errors.Is(err, course.ErrNoCourses) {
		t.Errorf("expected ErrNoCourses, got %v", err)
	}
}

func TestFlushOnlyWhenChanged(t *testing.T) {
	s := newTestSession(t, ModeCampaign, nil, shortHole("one", 2))

	frame, _ := s.Flush()
	if frame == nil || !hasEvent(frame.Events, EventHoleStart) {
		t.Fatalf("first flush should carry holeStart: %+v", frame)
	}
	if frame, _ := s.Flush(); frame != nil {
		t.Errorf("nothing changed, got %+v", frame)
	}
}
