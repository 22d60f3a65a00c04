// internal/component/render.go
package component

import "image/color"

// Shape - форма, которой рисуется сущность.
type Shape int

const (
	ShapeCircle Shape = iota
	ShapeSquare       // ловушки лежат на пути плоскими квадратами
)

// Слои отрисовки: меньший рисуется раньше.
const (
	LayerGround = iota // ловушки и взрывы
	LayerBloon
	LayerTower
	LayerProjectile
)

// Renderable - компонент для отрисовки
type Renderable struct {
	Color     color.RGBA
	Radius    float32
	HasStroke bool
	Shape     Shape
	Layer     int
}
