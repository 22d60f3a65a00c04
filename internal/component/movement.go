// internal/component/movement.go
package component

import (
	"math"

	"tutti-frutti-td/internal/utils"
	"tutti-frutti-td/pkg/spline"
)

// Position - компонент позиции
type Position struct {
	X, Y float64
}

// Point переводит позицию в точку сплайна.
func (p Position) Point() spline.Point {
	return spline.Point{X: p.X, Y: p.Y}
}

// DistanceTo - евклидово расстояние между позициями.
func (p Position) DistanceTo(q Position) float64 {
	return math.Hypot(q.X-p.X, q.Y-p.Y)
}

// PositionAt строит позицию из точки сплайна.
func PositionAt(pt spline.Point) Position {
	return Position{X: pt.X, Y: pt.Y}
}

// PathFollower - движение вдоль пути с постоянной линейной скоростью.
// Progress - параметр сплайна в [0, 1], DistanceTraveled - пройденная длина дуги.
type PathFollower struct {
	Path             *spline.ArcLengthTable
	Speed            float64 // пикселей в секунду
	DistanceTraveled float64
	Progress         float64
}

// Sync пересчитывает Progress по DistanceTraveled, ограничивая пройденное
// длиной пути.
func (f *PathFollower) Sync() {
	f.DistanceTraveled = utils.Clamp(f.DistanceTraveled, 0, f.Path.Length())
	f.Progress = f.Path.ParamAtDistance(f.DistanceTraveled)
}

// Point - текущая точка на пути.
func (f *PathFollower) Point() spline.Point {
	return f.Path.Curve().At(f.Progress)
}
