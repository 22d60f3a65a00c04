// pkg/geom/geom.go
package geom

import "tutti-frutti-td/pkg/spline"

// Rect is an axis-aligned rectangle, Min inclusive and Max inclusive.
type Rect struct {
	MinX, MinY float64
	MaxX, MaxY float64
}

// Contains reports whether p lies inside the rectangle.
func (r Rect) Contains(p spline.Point) bool {
	return p.X >= r.MinX && p.X <= r.MaxX && p.Y >= r.MinY && p.Y <= r.MaxY
}

// Inset returns the rectangle grown (negative margin) or shrunk by margin on each side.
func (r Rect) Inset(margin float64) Rect {
	return Rect{MinX: r.MinX + margin, MinY: r.MinY + margin, MaxX: r.MaxX - margin, MaxY: r.MaxY - margin}
}

// Polygon is a simple closed polygon; the last vertex connects back to the first.
type Polygon []spline.Point

// Contains uses the even-odd ray casting rule.
func (poly Polygon) Contains(p spline.Point) bool {
	if len(poly) < 3 {
		return false
	}
	inside := false
	j := len(poly) - 1
	for i := 0; i < len(poly); i++ {
		a, b := poly[i], poly[j]
		if (a.Y > p.Y) != (b.Y > p.Y) {
			x := (b.X-a.X)*(p.Y-a.Y)/(b.Y-a.Y) + a.X
			if p.X < x {
				inside = !inside
			}
		}
		j = i
	}
	return inside
}
