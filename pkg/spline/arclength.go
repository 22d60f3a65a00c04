// pkg/spline/arclength.go
package spline

import (
	"math"
	"sort"
)

// DefaultSamples is the number of segments sampled when building a lookup table.
const DefaultSamples = 200

type sample struct {
	t      float64
	length float64
	point  Point
}

// ArcLengthTable maps travelled distance along a curve to the curve parameter.
type ArcLengthTable struct {
	curve   *Curve
	samples []sample
}

// NewArcLengthTable samples the curve n times. n < 1 falls back to DefaultSamples.
func NewArcLengthTable(c *Curve, n int) *ArcLengthTable {
	if n < 1 {
		n = DefaultSamples
	}
	samples := make([]sample, 0, n+1)
	prev := c.At(0)
	total := 0.0
	samples = append(samples, sample{t: 0, length: 0, point: prev})
	for i := 1; i <= n; i++ {
		t := float64(i) / float64(n)
		p := c.At(t)
		total += prev.Distance(p)
		samples = append(samples, sample{t: t, length: total, point: p})
		prev = p
	}
	return &ArcLengthTable{curve: c, samples: samples}
}

// Curve returns the sampled curve.
func (a *ArcLengthTable) Curve() *Curve {
	return a.curve
}

// Length returns the total sampled arc length.
func (a *ArcLengthTable) Length() float64 {
	return a.samples[len(a.samples)-1].length
}

// ParamAtDistance converts a travelled distance into the curve parameter t.
// Distances outside [0, Length] are clamped.
func (a *ArcLengthTable) ParamAtDistance(d float64) float64 {
	total := a.Length()
	if d <= 0 || total == 0 {
		return 0
	}
	if d >= total {
		return 1
	}
	i := sort.Search(len(a.samples), func(i int) bool {
		return a.samples[i].length >= d
	})
	lo, hi := a.samples[i-1], a.samples[i]
	span := hi.length - lo.length
	if span == 0 {
		return hi.t
	}
	f := (d - lo.length) / span
	return lo.t + (hi.t-lo.t)*f
}

// DistanceAtParam is the inverse of ParamAtDistance.
func (a *ArcLengthTable) DistanceAtParam(t float64) float64 {
	if t <= 0 {
		return 0
	}
	if t >= 1 {
		return a.Length()
	}
	i := sort.Search(len(a.samples), func(i int) bool {
		return a.samples[i].t >= t
	})
	lo, hi := a.samples[i-1], a.samples[i]
	f := (t - lo.t) / (hi.t - lo.t)
	return lo.length + (hi.length-lo.length)*f
}

// PointAtDistance evaluates the curve at the given travelled distance.
func (a *ArcLengthTable) PointAtDistance(d float64) Point {
	return a.curve.At(a.ParamAtDistance(d))
}

// NearestDistance returns the smallest distance from p to the sampled polyline.
func (a *ArcLengthTable) NearestDistance(p Point) float64 {
	best := math.MaxFloat64
	for i := 1; i < len(a.samples); i++ {
		d := distanceToSegment(p, a.samples[i-1].point, a.samples[i].point)
		if d < best {
			best = d
		}
	}
	return best
}

func distanceToSegment(p, a, b Point) float64 {
	dx, dy := b.X-a.X, b.Y-a.Y
	lenSq := dx*dx + dy*dy
	if lenSq == 0 {
		return p.Distance(a)
	}
	t := ((p.X-a.X)*dx + (p.Y-a.Y)*dy) / lenSq
	t = math.Max(0, math.Min(1, t))
	return p.Distance(Point{X: a.X + t*dx, Y: a.Y + t*dy})
}
