package game

import (
	"testing"

	"github.com/playmatatu/minigolf/internal/course"
)

// testField makes percentage coordinates read as tenths of a pixel: 10% is
// 100px on both axes and circle radii scale by 10.
var testField = Size{Width: 1000, Height: 1000}

func pt(x, y float64) *course.Point {
	return &course.Point{X: x, Y: y}
}

func rectSpec(x, y, w, h float64) course.ShapeSpec {
	return course.ShapeSpec{Type: "rect", X: x, Y: y, Width: w, Height: h}
}

func circleSpec(cx, cy, r float64) course.ShapeSpec {
	return course.ShapeSpec{Type: "circle", CX: cx, CY: cy, Radius: r}
}

func obstacle(kind string, shapes ...course.ShapeSpec) course.ObstacleSpec {
	return course.ObstacleSpec{Type: kind, Shape: shapes}
}

// fullFairway covers the whole playfield so friction is NormalFriction.
func fullFairway() *course.FairwaySpec {
	return &course.FairwaySpec{PhysicsShapes: course.ShapeList{rectSpec(0, 0, 100, 100)}}
}

func openHole(obstacles ...course.ObstacleSpec) course.Hole {
	return course.Hole{
		Name:      "test",
		Par:       3,
		Start:     pt(10, 50),
		Hole:      pt(90, 10),
		Obstacles: obstacles,
	}
}

func buildCourse(t *testing.T, h course.Hole) *Course {
	t.Helper()
	c, err := NewCourse(0, h, testField)
	if err != nil {
		t.Fatalf("NewCourse: %v", err)
	}
	return c
}

// launch puts a ball at p on c, strikes it with v and returns the engine.
func launch(c *Course, p Vec2, v Vec3) (*Engine, *BallState) {
	ball := &BallState{}
	ball.PlaceAt(p)
	e := NewEngine(ball, c)
	e.Strike(Strike{Velocity: v})
	return e, ball
}

// runToRest ticks until the ball stops moving and totals the penalties.
func runToRest(t *testing.T, e *Engine, maxTicks int) ([]Event, int) {
	t.Helper()
	var events []Event
	penalty := 0
	for i := 0; i < maxTicks && e.Ball.Moving(); i++ {
		res := e.Tick()
		events = append(events, res.Events...)
		penalty += res.Penalty
	}
	if e.Ball.Moving() {
		t.Fatalf("ball still moving after %d ticks at %+v", maxTicks, e.Ball.Position)
	}
	return events, penalty
}

func hasEvent(events []Event, typ EventType) bool {
	for _, ev := range events {
		if ev.Type == typ {
			return true
		}
	}
	return false
}
