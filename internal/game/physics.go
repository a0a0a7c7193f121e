package game

import "math"

// BallPhase is the per-hole ball state machine:
// Resting -> Moving -> (Resting | Holed). A hazard reset lands in Resting.
type BallPhase string

const (
	PhaseResting BallPhase = "RESTING"
	PhaseMoving  BallPhase = "MOVING"
	PhaseHoled   BallPhase = "HOLED"
)

// BallState is the ball's kinematics. Only the Engine mutates it during play.
type BallState struct {
	Position Vec3      `json:"position"`
	Velocity Vec3      `json:"velocity"`
	Phase    BallPhase `json:"phase"`
}

// Resting reports whether the ball is waiting for the next stroke.
func (b *BallState) Resting() bool {
	return b.Phase == PhaseResting
}

// Moving reports whether the ball is in flight or rolling.
func (b *BallState) Moving() bool {
	return b.Phase == PhaseMoving
}

// Airborne reports whether a lofted shot is still above the ground.
func (b *BallState) Airborne() bool {
	return b.Position.Z > 0
}

// PlaceAt puts the ball at rest on the ground at p.
func (b *BallState) PlaceAt(p Vec2) {
	b.Position = Vec3{X: p.X, Y: p.Y}
	b.Velocity = Vec3{}
	b.Phase = PhaseResting
}

// TickResult is what one simulation step produced.
type TickResult struct {
	Phase   BallPhase `json:"phase"`
	Events  []Event   `json:"events,omitempty"`
	Penalty int       `json:"penalty,omitempty"`
}

// Engine advances one ball across one course, one fixed step per Tick.
type Engine struct {
	Ball   *BallState
	Course *Course
	Events []Event
}

// NewEngine creates an engine for a ball on a built course.
func NewEngine(ball *BallState, course *Course) *Engine {
	return &Engine{
		Ball:   ball,
		Course: course,
		Events: make([]Event, 0),
	}
}

// Strike launches a resting ball. It returns false if the ball is not at rest.
func (e *Engine) Strike(s Strike) bool {
	if e.Ball.Phase != PhaseResting {
		return false
	}
	e.Ball.Velocity = s.Velocity
	e.Ball.Phase = PhaseMoving
	return true
}

// Simulate ticks until the ball stops moving or maxTicks is reached, and
// returns every event produced along the way.
func (e *Engine) Simulate(maxTicks int) []Event {
	var all []Event
	for i := 0; i < maxTicks && e.Ball.Moving(); i++ {
		res := e.Tick()
		all = append(all, res.Events...)
	}
	return all
}

// Tick advances the ball by one step. It returns immediately when the ball is
// not moving.
func (e *Engine) Tick() TickResult {
	e.Events = e.Events[:0]
	if e.Ball == nil || e.Course == nil || e.Ball.Phase != PhaseMoving {
		phase := PhaseResting
		if e.Ball != nil {
			phase = e.Ball.Phase
		}
		return TickResult{Phase: phase}
	}

	penalty := e.step()

	// A ball with a non-finite state would hang the hole; send it home.
	if !e.Ball.Position.finite() || !e.Ball.Velocity.finite() {
		e.Ball.PlaceAt(e.Course.Start)
		e.emit(Event{Type: EventReset, Message: msgReset})
		penalty = 0
	}

	events := make([]Event, len(e.Events))
	copy(events, e.Events)
	return TickResult{Phase: e.Ball.Phase, Events: events, Penalty: penalty}
}

// step runs the tick phases and returns the stroke penalty incurred.
func (e *Engine) step() int {
	b := e.Ball

	// Vertical phase: parabolic loft independent of ground motion.
	if b.Position.Z > 0 || b.Velocity.Z > 0 {
		b.Velocity.Z -= Gravity
		b.Position.Z += b.Velocity.Z
		if b.Position.Z <= 0 {
			b.Position.Z = 0
			b.Velocity.Z = 0
		}
	}
	grounded := b.Position.Z == 0

	// Friction phase.
	if grounded {
		f := FrictionFor(Dominant(b.Position.Ground(), e.Course))
		b.Velocity.X *= f
		b.Velocity.Y *= f
	}

	// Obstacle collision against the tentative position.
	for _, obs := range e.Course.Obstacles {
		next := e.tentative()
		switch obs.Kind {
		case TerrainWater:
			if grounded && obs.Contains(next) {
				return e.hazard(WaterPenalty, EventSplash, msgSplash)
			}
		case TerrainOutOfBounds:
			if grounded && obs.Contains(next) {
				return e.hazard(OutOfBoundsPenalty, EventOutOfBounds, msgOutOfBounds)
			}
		case TerrainWall:
			for _, s := range obs.Physics {
				if e.bounceWall(s.Bounds(), next) {
					e.emit(Event{Type: EventWallHit, Terrain: TerrainWall, Speed: b.Velocity.GroundSpeed()})
					break
				}
			}
		case TerrainTreePatch:
			for _, s := range obs.Physics {
				if e.deflect(s, next) {
					e.emit(Event{Type: EventWallHit, Terrain: TerrainTreePatch, Speed: b.Velocity.GroundSpeed()})
					break
				}
			}
		}
	}

	// Integrate.
	b.Position.X += b.Velocity.X
	b.Position.Y += b.Velocity.Y

	// Non-finite state is Tick's to handle, not a boundary crossing.
	if !b.Position.finite() || !b.Velocity.finite() {
		return 0
	}

	// Leaving the playfield is a hazard.
	if !e.Course.InBounds(b.Position.Ground()) {
		return e.hazard(OutOfBoundsPenalty, EventOutOfBounds, msgOutOfBounds)
	}

	if !grounded {
		return 0
	}

	speed := b.Velocity.GroundSpeed()
	if b.Position.Ground().DistanceTo(e.Course.Hole) <= HoleRadius && speed < CaptureSpeed {
		b.Position.X, b.Position.Y = e.Course.Hole.X, e.Course.Hole.Y
		b.Velocity = Vec3{}
		b.Phase = PhaseHoled
		e.emit(Event{Type: EventHoled, Speed: speed})
		return 0
	}

	if speed < MinVelocity {
		b.Velocity = Vec3{}
		b.Phase = PhaseResting
		e.emit(Event{Type: EventResting, Message: msgResting})
	}
	return 0
}

func (e *Engine) tentative() Vec2 {
	b := e.Ball
	return Vec2{X: b.Position.X + b.Velocity.X, Y: b.Position.Y + b.Velocity.Y}
}

// hazard resets the ball to the tee and ends the tick.
func (e *Engine) hazard(penalty int, t EventType, msg string) int {
	e.Ball.PlaceAt(e.Course.Start)
	e.emit(Event{Type: t, Message: msg})
	return penalty
}

// bounceWall applies the AABB directional bounce. X crossings take
// precedence; Y is only tested when X did not register.
func (e *Engine) bounceWall(box Rect, next Vec2) bool {
	if box.Width <= 0 || box.Height <= 0 {
		return false
	}
	b := e.Ball
	r := BallRadius
	pos := b.Position

	if next.Y+r > box.Y && next.Y-r < box.Bottom() {
		if pos.X+r <= box.X && next.X+r > box.X {
			b.Velocity.X = -b.Velocity.X
			b.Position.X = box.X - r - wallEpsilon
			return true
		}
		if pos.X-r >= box.Right() && next.X-r < box.Right() {
			b.Velocity.X = -b.Velocity.X
			b.Position.X = box.Right() + r + wallEpsilon
			return true
		}
	}

	if next.X+r > box.X && next.X-r < box.Right() {
		if pos.Y+r <= box.Y && next.Y+r > box.Y {
			b.Velocity.Y = -b.Velocity.Y
			b.Position.Y = box.Y - r - wallEpsilon
			return true
		}
		if pos.Y-r >= box.Bottom() && next.Y-r < box.Bottom() {
			b.Velocity.Y = -b.Velocity.Y
			b.Position.Y = box.Bottom() + r + wallEpsilon
			return true
		}
	}
	return false
}

// deflect bounces the ball off a tree patch. Circles reflect about the
// radial normal; other shapes invert the axis facing the ball.
func (e *Engine) deflect(s Shape, next Vec2) bool {
	b := e.Ball
	v := Vec2{X: b.Velocity.X, Y: b.Velocity.Y}

	if c, ok := s.(Circle); ok {
		if c.Radius <= 0 {
			return false
		}
		center := c.Center()
		reach := c.Radius + BallRadius
		d := next.Minus(center)
		if d.Magnitude() >= reach {
			return false
		}
		n := d.Normalize()
		if n.IsZero() {
			n = v.Times(-1).Normalize()
		}
		if v.Dot(n) >= 0 {
			return false
		}
		v = v.Reflect(n)
		rest := center.Plus(n.Times(reach + wallEpsilon))
		b.Position.X, b.Position.Y = rest.X, rest.Y
		b.Velocity.X, b.Velocity.Y = v.X, v.Y
		return true
	}

	if !touches(s, next) {
		return false
	}
	box := s.Bounds()
	center := box.Center()
	hw := box.Width/2 + BallRadius
	hh := box.Height/2 + BallRadius
	if hw <= 0 || hh <= 0 {
		return false
	}
	dx := (next.X - center.X) / hw
	dy := (next.Y - center.Y) / hh
	if math.Abs(dx) >= math.Abs(dy) {
		if v.X*dx < 0 {
			b.Velocity.X = -b.Velocity.X
			return true
		}
		return false
	}
	if v.Y*dy < 0 {
		b.Velocity.Y = -b.Velocity.Y
		return true
	}
	return false
}

// touches is the ball-vs-shape overlap used for solid obstacles.
func touches(s Shape, p Vec2) bool {
	r := BallRadius
	switch sh := s.(type) {
	case Rect:
		if sh.Width <= 0 || sh.Height <= 0 {
			return false
		}
		return p.X+r > sh.X && p.X-r < sh.Right() && p.Y+r > sh.Y && p.Y-r < sh.Bottom()
	case Oval:
		if sh.RX <= 0 || sh.RY <= 0 {
			return false
		}
		return Oval{CX: sh.CX, CY: sh.CY, RX: sh.RX + r, RY: sh.RY + r}.Contains(p)
	case Circle:
		if sh.Radius <= 0 {
			return false
		}
		return p.DistanceTo(sh.Center()) < sh.Radius+r
	default:
		return PointInShape(p, s)
	}
}

func (e *Engine) emit(ev Event) {
	e.Events = append(e.Events, ev)
}
