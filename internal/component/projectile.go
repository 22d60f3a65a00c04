// internal/component/projectile.go
package component

import "tutti-frutti-td/internal/types"

// Projectile представляет летящий снаряд.
type Projectile struct {
	Source    types.EntityID
	TargetID  types.EntityID
	Direction float64 // радианы
	Speed     float64
	Damage    int
	HitRadius float64
	MaxHits   int
	Hits      int
	HitIDs    map[types.EntityID]bool
	Homing    bool
	IsActive  bool
	Lifetime  float64

	SlowFactor   float64
	SlowDuration float64
	BlastRadius  float64
	Fuse         float64
}

// Explosion - визуальный след взрыва для отрисовки.
type Explosion struct {
	Radius   float64
	Timer    float64
	Duration float64
}
