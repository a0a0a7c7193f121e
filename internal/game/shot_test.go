package game

import (
	"errors"
	"math"
	"testing"
)

func TestComputeStrikePointsAwayFromPointer(t *testing.T) {
	ball := Vec2{X: 100, Y: 100}
	s, ok := ComputeStrike(ball, Vec2{X: 40, Y: 100}, ClubPutter)
	if !ok {
		t.Fatal("strike rejected")
	}
	if s.Power != 5 {
		t.Errorf("power = %v, want 5", s.Power)
	}
	if math.Abs(s.Velocity.X-5) > 1e-9 || math.Abs(s.Velocity.Y) > 1e-9 || s.Velocity.Z != 0 {
		t.Errorf("velocity = %+v, want (5,0,0)", s.Velocity)
	}
}

func TestComputeStrikeCapsPower(t *testing.T) {
	s, ok := ComputeStrike(Vec2{}, Vec2{X: 0, Y: -10000}, ClubPutter)
	if !ok {
		t.Fatal("strike rejected")
	}
	if s.Power != MaxPower {
		t.Errorf("power = %v, want %v", s.Power, MaxPower)
	}
	if math.Abs(s.Velocity.Y-MaxPower) > 1e-9 {
		t.Errorf("velocity = %+v", s.Velocity)
	}
}

func TestComputeStrikeTooSoft(t *testing.T) {
	// 6px of drag is exactly MinStrikePower and is discarded.
	if _, ok := ComputeStrike(Vec2{X: 10, Y: 10}, Vec2{X: 16, Y: 10}, ClubPutter); ok {
		t.Error("strike at the minimum power should be discarded")
	}
	if _, ok := ComputeStrike(Vec2{X: 10, Y: 10}, Vec2{X: 10, Y: 10}, ClubPutter); ok {
		t.Error("zero drag should be discarded")
	}
}

func TestWedgeAddsLoft(t *testing.T) {
	s, ok := ComputeStrike(Vec2{X: 100, Y: 0}, Vec2{X: 0, Y: 0}, ClubWedge)
	if !ok {
		t.Fatal("strike rejected")
	}
	if want := s.Power * WedgeLoft; s.Velocity.Z != want {
		t.Errorf("vz = %v, want %v", s.Velocity.Z, want)
	}
}

func TestShotControllerGesture(t *testing.T) {
	sc := NewShotController()
	ball := &BallState{}
	ball.PlaceAt(Vec2{X: 200, Y: 200})

	if _, err := sc.Move(Vec2{}); !errors.Is(err, ErrNotAiming) {
		t.Errorf("move without press: %v", err)
	}
	if err := sc.Press(ball, Vec2{X: 200, Y: 200}); err != nil {
		t.Fatalf("press: %v", err)
	}
	ratio, err := sc.Move(Vec2{X: 200, Y: 200 + MaxPower*PowerSensitivity})
	if err != nil || ratio != 1 {
		t.Errorf("ratio = %v, %v; want capped at 1", ratio, err)
	}
	ratio, _ = sc.Move(Vec2{X: 200 + MaxPower*PowerSensitivity*0.25, Y: 200})
	if math.Abs(ratio-0.5) > 1e-9 {
		t.Errorf("ratio = %v, want 0.5", ratio)
	}

	s, ok, err := sc.Release(ball, Vec2{X: 140, Y: 200})
	if err != nil || !ok {
		t.Fatalf("release: ok=%v err=%v", ok, err)
	}
	if s.Velocity.X <= 0 {
		t.Errorf("strike should go right, got %+v", s.Velocity)
	}
	if sc.Aiming() {
		t.Error("gesture should end on release")
	}
}

func TestShotControllerRejectsMovingBall(t *testing.T) {
	sc := NewShotController()
	ball := &BallState{Phase: PhaseMoving}
	if err := sc.Press(ball, Vec2{}); !errors.Is(err, ErrBallMoving) {
		t.Errorf("press on moving ball: %v", err)
	}
	if sc.Aiming() {
		t.Error("press on moving ball must not start a gesture")
	}
}

func TestParseClub(t *testing.T) {
	if c, err := ParseClub("wedge"); err != nil || c != ClubWedge {
		t.Errorf("ParseClub(wedge) = %q, %v", c, err)
	}
	if _, err := ParseClub("driver"); err == nil {
		t.Error("expected error for unknown club")
	}
}
