// pkg/spline/spline.go
package spline

import (
	"errors"
	"math"
)

// ErrTooFewPoints is returned when a curve is built from fewer than two control points.
var ErrTooFewPoints = errors.New("spline: at least two control points are required")

// Point is a 2D point in playfield pixels.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Distance returns the Euclidean distance between p and q.
func (p Point) Distance(q Point) float64 {
	return math.Hypot(q.X-p.X, q.Y-p.Y)
}

// Curve is a uniform Catmull-Rom spline passing through every control point.
// The parameter t runs from 0 at the first point to 1 at the last.
type Curve struct {
	points []Point
}

// NewCatmullRom builds a curve through the given control points.
func NewCatmullRom(points []Point) (*Curve, error) {
	if len(points) < 2 {
		return nil, ErrTooFewPoints
	}
	cp := make([]Point, len(points))
	copy(cp, points)
	return &Curve{points: cp}, nil
}

// Points returns the control points of the curve.
func (c *Curve) Points() []Point {
	return c.points
}

// At evaluates the curve at parameter t, clamped to [0, 1].
func (c *Curve) At(t float64) Point {
	if t <= 0 {
		return c.points[0]
	}
	last := len(c.points) - 1
	if t >= 1 {
		return c.points[last]
	}

	segments := float64(last)
	scaled := t * segments
	i := int(scaled)
	if i >= last {
		i = last - 1
	}
	u := scaled - float64(i)

	p0 := c.point(i - 1)
	p1 := c.point(i)
	p2 := c.point(i + 1)
	p3 := c.point(i + 2)

	return Point{
		X: catmullRom(p0.X, p1.X, p2.X, p3.X, u),
		Y: catmullRom(p0.Y, p1.Y, p2.Y, p3.Y, u),
	}
}

// point clamps the index so end segments reuse the end points as phantom neighbours.
func (c *Curve) point(i int) Point {
	if i < 0 {
		return c.points[0]
	}
	if i >= len(c.points) {
		return c.points[len(c.points)-1]
	}
	return c.points[i]
}

func catmullRom(p0, p1, p2, p3, u float64) float64 {
	u2 := u * u
	u3 := u2 * u
	return 0.5 * (2*p1 +
		(-p0+p2)*u +
		(2*p0-5*p1+4*p2-p3)*u2 +
		(-p0+3*p1-3*p2+p3)*u3)
}
