package game

import (
	"errors"
	"fmt"
	"math"
)

var (
	ErrBallMoving = errors.New("ball is still moving")
	ErrNotAiming  = errors.New("no aim in progress")
)

// Club selects how a strike leaves the ground.
type Club string

const (
	ClubPutter Club = "putter"
	ClubWedge  Club = "wedge"
)

// ParseClub validates a club name.
func ParseClub(s string) (Club, error) {
	switch Club(s) {
	case ClubPutter, ClubWedge:
		return Club(s), nil
	}
	return "", fmt.Errorf("unknown club %q", s)
}

// AimGesture is the live drag. Origin is the ball's ground position; Current
// follows the pointer.
type AimGesture struct {
	Origin  Vec2 `json:"origin"`
	Current Vec2 `json:"current"`
	Active  bool `json:"active"`
}

// Strike is the launch handed to the engine.
type Strike struct {
	Velocity Vec3    `json:"velocity"`
	Power    float64 `json:"power"`
	Angle    float64 `json:"angle"`
	Club     Club    `json:"club"`
}

// ShotController turns press/move/release into strikes. It is independent of
// the pointer device: callers only pass positions.
type ShotController struct {
	Club    Club       `json:"club"`
	Gesture AimGesture `json:"gesture"`
}

// NewShotController starts idle with the putter.
func NewShotController() *ShotController {
	return &ShotController{Club: ClubPutter}
}

// Aiming reports whether a drag is in progress.
func (sc *ShotController) Aiming() bool {
	return sc.Gesture.Active
}

// Press starts aiming from the ball. A moving ball cannot be aimed.
func (sc *ShotController) Press(ball *BallState, pointer Vec2) error {
	if ball.Phase != PhaseResting {
		return ErrBallMoving
	}
	sc.Gesture = AimGesture{
		Origin:  ball.Position.Ground(),
		Current: pointer,
		Active:  true,
	}
	return nil
}

// Move updates the live end and returns the power ratio for the UI meter.
// The ratio has no effect on the physics.
func (sc *ShotController) Move(pointer Vec2) (float64, error) {
	if !sc.Gesture.Active {
		return 0, ErrNotAiming
	}
	sc.Gesture.Current = pointer
	return sc.PowerRatio(), nil
}

// PowerRatio is min(1, dragDistance / (MaxPower * PowerSensitivity * 0.5)).
func (sc *ShotController) PowerRatio() float64 {
	if !sc.Gesture.Active {
		return 0
	}
	drag := sc.Gesture.Origin.DistanceTo(sc.Gesture.Current)
	return math.Min(1, drag/(MaxPower*PowerSensitivity*0.5))
}

// Release ends the gesture. The strike points from the pointer back through
// the ball; too soft a drag is discarded and accepted is false.
func (sc *ShotController) Release(ball *BallState, pointer Vec2) (Strike, bool, error) {
	if !sc.Gesture.Active {
		return Strike{}, false, ErrNotAiming
	}
	sc.Gesture = AimGesture{}

	if ball.Phase != PhaseResting {
		return Strike{}, false, ErrBallMoving
	}

	s, ok := ComputeStrike(ball.Position.Ground(), pointer, sc.Club)
	return s, ok, nil
}

// Cancel drops the gesture without striking.
func (sc *ShotController) Cancel() {
	sc.Gesture = AimGesture{}
}

// ComputeStrike converts a ball and pointer position into a launch.
func ComputeStrike(ball, pointer Vec2, club Club) (Strike, bool) {
	dx := ball.X - pointer.X
	dy := ball.Y - pointer.Y
	power := math.Hypot(dx, dy)
	angle := math.Atan2(dy, dx)
	actual := math.Min(power/PowerSensitivity, MaxPower)
	if actual <= MinStrikePower {
		return Strike{Power: actual, Angle: angle, Club: club}, false
	}

	s := Strike{
		Velocity: Vec3{X: math.Cos(angle) * actual, Y: math.Sin(angle) * actual},
		Power:    actual,
		Angle:    angle,
		Club:     club,
	}
	if club == ClubWedge {
		s.Velocity.Z = actual * WedgeLoft
	}
	return s, true
}
