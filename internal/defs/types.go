// internal/defs/types.go
package defs

import "image/color"

// DeathFrameRate - скорость анимации уничтожения, кадров в секунду.
const DeathFrameRate = 20.0

// Visuals - что нужно отрисовке для вида сущности.
type Visuals struct {
	Color  color.RGBA `json:"color"`
	Radius float64    `json:"radius"`
}
