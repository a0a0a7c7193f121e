package game

import "fmt"

// AimAction is one step of the drag gesture as sent by a client.
type AimAction string

const (
	AimPress   AimAction = "press"
	AimMove    AimAction = "move"
	AimRelease AimAction = "release"
	AimCancel  AimAction = "cancel"
)

// ParseAimAction validates an action name.
func ParseAimAction(s string) (AimAction, error) {
	switch a := AimAction(s); a {
	case AimPress, AimMove, AimRelease, AimCancel:
		return a, nil
	}
	return "", fmt.Errorf("unknown aim action %q", s)
}

// AimResult is the reply to one aim step.
type AimResult struct {
	Action     AimAction `json:"action"`
	PowerRatio float64   `json:"power_ratio"`
	Accepted   bool      `json:"accepted"`
	Strike     *Strike   `json:"strike,omitempty"`
	Message    string    `json:"message,omitempty"`
}

// Aim routes one gesture step to the shot controller.
func (s *GameSession) Aim(action AimAction, pointer Vec2) (AimResult, error) {
	res := AimResult{Action: action}
	switch action {
	case AimPress:
		if err := s.PressAim(pointer); err != nil {
			return res, err
		}
	case AimMove:
		ratio, err := s.MoveAim(pointer)
		if err != nil {
			return res, err
		}
		res.PowerRatio = ratio
	case AimRelease:
		strike, ok, err := s.ReleaseAim(pointer)
		if err != nil {
			return res, err
		}
		res.Accepted = ok
		if ok {
			res.Strike = &strike
		} else {
			res.Message = msgTooSoft
		}
	case AimCancel:
		s.CancelAim()
	default:
		return res, fmt.Errorf("unknown aim action %q", action)
	}
	return res, nil
}
