// internal/defs/bloons.go
package defs

// BloonDefinition - статические данные типа фрукта.
type BloonDefinition struct {
	Kind   BloonKind `json:"type"`
	Name   string    `json:"name"`
	Health int       `json:"health"`
	Speed  float64   `json:"speed"` // пикселей в секунду
	// Damage - сколько жизней стоит прорыв. По нему же выбирает цель
	// приоритет Strong.
	Damage      int         `json:"damage"`
	Reward      int         `json:"reward"`
	NextTypes   []BloonKind `json:"nextTypes"`
	Boss        bool        `json:"boss"`
	DeathFrames int         `json:"deathFrames"`
	Visuals     Visuals     `json:"visuals"`
}

// DeathDuration - длительность анимации уничтожения в секундах.
func (d BloonDefinition) DeathDuration() float64 {
	if d.DeathFrames <= 0 {
		return 0
	}
	return float64(d.DeathFrames) / DeathFrameRate
}
