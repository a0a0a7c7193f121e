package game

import (
	"errors"
	"fmt"
	"math"

	"github.com/playmatatu/minigolf/internal/course"
)

// ErrMalformedCourse wraps every hole-setup validation failure.
var ErrMalformedCourse = errors.New("malformed course")

// Size is the playfield size in pixels.
type Size struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

func (s Size) valid() bool {
	return s.Width > 0 && s.Height > 0 && isFinite(s.Width) && isFinite(s.Height)
}

// Obstacle is one terrain region with its visual and collision geometry.
type Obstacle struct {
	Kind    TerrainKind `json:"kind"`
	Visual  []Shape     `json:"-"`
	Physics []Shape     `json:"-"`
}

// Contains reports whether p is inside any physics shape.
func (o Obstacle) Contains(p Vec2) bool {
	for _, s := range o.Physics {
		if s.Contains(p) {
			return true
		}
	}
	return false
}

// Course is one hole in pixel space. It is built once at hole setup and never
// mutated during play.
type Course struct {
	Index     int        `json:"index"`
	Name      string     `json:"name"`
	Par       int        `json:"par"`
	Start     Vec2       `json:"start"`
	Hole      Vec2       `json:"hole"`
	Field     Size       `json:"field"`
	Fairway   []Shape    `json:"-"`
	Obstacles []Obstacle `json:"obstacles"`

	def course.Hole
}

// NewCourse validates a hole definition and scales it to the playfield.
func NewCourse(index int, def course.Hole, field Size) (*Course, error) {
	if err := def.Validate(index); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedCourse, err)
	}
	if !field.valid() {
		return nil, fmt.Errorf("%w: invalid playfield %.0fx%.0f", ErrMalformedCourse, field.Width, field.Height)
	}

	sx := field.Width / 100
	sy := field.Height / 100
	sr := math.Min(field.Width, field.Height) / 100

	c := &Course{
		Index: index,
		Name:  def.DisplayName(index),
		Par:   def.Par,
		Start: Vec2{X: def.Start.X * sx, Y: def.Start.Y * sy},
		Hole:  Vec2{X: def.Hole.X * sx, Y: def.Hole.Y * sy},
		Field: field,
		def:   def,
	}

	if def.Fairway != nil {
		shapes, err := buildShapes(def.Fairway.PhysicsShapes, sx, sy, sr)
		if err != nil {
			return nil, fmt.Errorf("%w: hole %d fairway: %w", ErrMalformedCourse, index+1, err)
		}
		c.Fairway = append(c.Fairway, shapes...)
	}

	for i, spec := range def.Obstacles {
		kind, err := ParseTerrainKind(spec.Type)
		if err != nil {
			return nil, fmt.Errorf("%w: hole %d obstacles[%d]: %w", ErrMalformedCourse, index+1, i, err)
		}
		visual, err := buildShapes(spec.Shape, sx, sy, sr)
		if err != nil {
			return nil, fmt.Errorf("%w: hole %d obstacles[%d]: %w", ErrMalformedCourse, index+1, i, err)
		}
		physics := visual
		if len(spec.PhysicsShapes) > 0 {
			physics, err = buildShapes(spec.PhysicsShapes, sx, sy, sr)
			if err != nil {
				return nil, fmt.Errorf("%w: hole %d obstacles[%d].physicsShapes: %w", ErrMalformedCourse, index+1, i, err)
			}
		}
		if len(visual) == 0 {
			visual = physics
		}

		// Fairway regions authored as obstacles join the fairway list.
		if kind == TerrainFairway {
			c.Fairway = append(c.Fairway, physics...)
			continue
		}
		c.Obstacles = append(c.Obstacles, Obstacle{Kind: kind, Visual: visual, Physics: physics})
	}

	return c, nil
}

// Rescale rebuilds the course for a new playfield size.
func (c *Course) Rescale(field Size) (*Course, error) {
	return NewCourse(c.Index, c.def, field)
}

// InBounds reports whether p lies on the playfield (edges included).
func (c *Course) InBounds(p Vec2) bool {
	return p.X >= 0 && p.X <= c.Field.Width && p.Y >= 0 && p.Y <= c.Field.Height
}

func buildShapes(specs course.ShapeList, sx, sy, sr float64) ([]Shape, error) {
	shapes := make([]Shape, 0, len(specs))
	for _, spec := range specs {
		s, err := buildShape(spec)
		if err != nil {
			return nil, err
		}
		shapes = append(shapes, s.Scale(sx, sy, sr))
	}
	return shapes, nil
}

func buildShape(spec course.ShapeSpec) (Shape, error) {
	switch spec.Type {
	case "rect":
		return Rect{X: spec.X, Y: spec.Y, Width: spec.Width, Height: spec.Height}, nil
	case "circle":
		return Circle{CX: spec.CX, CY: spec.CY, Radius: spec.Radius}, nil
	case "oval", "ellipse":
		return Oval{CX: spec.CX, CY: spec.CY, RX: spec.RX, RY: spec.RY}, nil
	case "polygon":
		if len(spec.Points) < 3 {
			return nil, fmt.Errorf("polygon needs at least 3 points, got %d", len(spec.Points))
		}
		pts := make([]Vec2, len(spec.Points))
		for i, p := range spec.Points {
			pts[i] = Vec2{X: p.X, Y: p.Y}
		}
		return Polygon{Points: pts}, nil
	}
	return nil, fmt.Errorf("unknown shape type %q", spec.Type)
}
