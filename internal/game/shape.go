package game

import "math"

// Shape is a closed set of collision/terrain geometries: Rect, Circle, Oval
// and Polygon. All coordinates are in pixel space once a course is built.
type Shape interface {
	// Contains reports whether p lies strictly inside the shape.
	Contains(p Vec2) bool
	// Bounds returns the axis-aligned bounding box.
	Bounds() Rect
	// Center returns the reference point used for radial collision normals.
	Center() Vec2
	// Scale maps the shape from percentage space into pixel space: sx and sy
	// scale the axes, sr scales radii of circles.
	Scale(sx, sy, sr float64) Shape

	isShape()
}

// Rect is an axis-aligned rectangle given by its top-left corner and extents.
type Rect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Circle is a disc with center (CX, CY).
type Circle struct {
	CX     float64 `json:"cx"`
	CY     float64 `json:"cy"`
	Radius float64 `json:"radius"`
}

// Oval is an axis-aligned ellipse.
type Oval struct {
	CX float64 `json:"cx"`
	CY float64 `json:"cy"`
	RX float64 `json:"rx"`
	RY float64 `json:"ry"`
}

// Polygon is an implicitly closed ring of vertices.
type Polygon struct {
	Points []Vec2 `json:"points"`
}

func (Rect) isShape()    {}
func (Circle) isShape()  {}
func (Oval) isShape()    {}
func (Polygon) isShape() {}

// PointInShape is the package-level form of Shape.Contains.
func PointInShape(p Vec2, s Shape) bool {
	if s == nil {
		return false
	}
	return s.Contains(p)
}

// Contains uses the strict interior: a point on an edge is outside.
func (r Rect) Contains(p Vec2) bool {
	if r.Width <= 0 || r.Height <= 0 {
		return false
	}
	return r.X < p.X && p.X < r.Right() && r.Y < p.Y && p.Y < r.Bottom()
}

func (r Rect) Right() float64  { return r.X + r.Width }
func (r Rect) Bottom() float64 { return r.Y + r.Height }

func (r Rect) Bounds() Rect { return r }

func (r Rect) Center() Vec2 {
	return Vec2{X: r.X + r.Width/2, Y: r.Y + r.Height/2}
}

func (r Rect) Scale(sx, sy, _ float64) Shape {
	return Rect{X: r.X * sx, Y: r.Y * sy, Width: r.Width * sx, Height: r.Height * sy}
}

func (c Circle) Contains(p Vec2) bool {
	if c.Radius <= 0 {
		return false
	}
	return math.Hypot(p.X-c.CX, p.Y-c.CY) < c.Radius
}

func (c Circle) Bounds() Rect {
	return Rect{X: c.CX - c.Radius, Y: c.CY - c.Radius, Width: 2 * c.Radius, Height: 2 * c.Radius}
}

func (c Circle) Center() Vec2 { return Vec2{X: c.CX, Y: c.CY} }

func (c Circle) Scale(sx, sy, sr float64) Shape {
	return Circle{CX: c.CX * sx, CY: c.CY * sy, Radius: c.Radius * sr}
}

// Contains evaluates the normalized ellipse equation (dx/rx)² + (dy/ry)² < 1.
func (o Oval) Contains(p Vec2) bool {
	if o.RX <= 0 || o.RY <= 0 {
		return false
	}
	dx := (p.X - o.CX) / o.RX
	dy := (p.Y - o.CY) / o.RY
	return dx*dx+dy*dy < 1
}

func (o Oval) Bounds() Rect {
	return Rect{X: o.CX - o.RX, Y: o.CY - o.RY, Width: 2 * o.RX, Height: 2 * o.RY}
}

func (o Oval) Center() Vec2 { return Vec2{X: o.CX, Y: o.CY} }

func (o Oval) Scale(sx, sy, _ float64) Shape {
	return Oval{CX: o.CX * sx, CY: o.CY * sy, RX: o.RX * sx, RY: o.RY * sy}
}

// Contains runs an even-odd ray cast to the right of p. Points exactly on an
// edge may land on either side.
func (pg Polygon) Contains(p Vec2) bool {
	n := len(pg.Points)
	if n < 3 {
		return false
	}
	inside := false
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		pi, pj := pg.Points[i], pg.Points[j]
		if (pi.Y > p.Y) != (pj.Y > p.Y) &&
			p.X < (pj.X-pi.X)*(p.Y-pi.Y)/(pj.Y-pi.Y)+pi.X {
			inside = !inside
		}
	}
	return inside
}

func (pg Polygon) Bounds() Rect {
	if len(pg.Points) == 0 {
		return Rect{}
	}
	minX, minY := pg.Points[0].X, pg.Points[0].Y
	maxX, maxY := minX, minY
	for _, pt := range pg.Points[1:] {
		minX = math.Min(minX, pt.X)
		minY = math.Min(minY, pt.Y)
		maxX = math.Max(maxX, pt.X)
		maxY = math.Max(maxY, pt.Y)
	}
	return Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}

// Center is the vertex centroid, good enough for a collision normal.
func (pg Polygon) Center() Vec2 {
	if len(pg.Points) == 0 {
		return Vec2{}
	}
	var sum Vec2
	for _, pt := range pg.Points {
		sum = sum.Plus(pt)
	}
	return sum.Times(1 / float64(len(pg.Points)))
}

func (pg Polygon) Scale(sx, sy, _ float64) Shape {
	pts := make([]Vec2, len(pg.Points))
	for i, pt := range pg.Points {
		pts[i] = Vec2{X: pt.X * sx, Y: pt.Y * sy}
	}
	return Polygon{Points: pts}
}

// shapeKind names a shape for logs and snapshots.
func shapeKind(s Shape) string {
	switch s.(type) {
	case Rect:
		return "rect"
	case Circle:
		return "circle"
	case Oval:
		return "oval"
	case Polygon:
		return "polygon"
	default:
		return "unknown"
	}
}
