// internal/system/projectile.go
package system

import (
	"math"

	"tutti-frutti-td/internal/component"
	"tutti-frutti-td/internal/config"
	"tutti-frutti-td/internal/entity"
	"tutti-frutti-td/internal/timer"
	"tutti-frutti-td/internal/types"
	"tutti-frutti-td/pkg/geom"
)

// ProjectileSystem двигает снаряды и разрешает их столкновения с фруктами.
type ProjectileSystem struct {
	ecs    *entity.ECS
	clock  *timer.Clock
	damage *DamageResolver
	bounds geom.Rect
}

func NewProjectileSystem(ecs *entity.ECS, clock *timer.Clock, damage *DamageResolver, playfield geom.Rect) *ProjectileSystem {
	return &ProjectileSystem{
		ecs:    ecs,
		clock:  clock,
		damage: damage,
		bounds: playfield.Inset(-config.BoundsMargin),
	}
}

// Update двигает снаряды. Самонаводящиеся поворачивают к живой цели.
func (s *ProjectileSystem) Update(deltaTime float64) {
	for _, id := range s.ecs.ProjectileIDs() {
		proj := s.ecs.Projectiles[id]
		if !proj.IsActive {
			continue
		}
		pos, ok := s.ecs.Positions[id]
		if !ok {
			proj.IsActive = false
			continue
		}

		proj.Lifetime -= deltaTime
		if proj.Lifetime <= 0 {
			proj.IsActive = false
			continue
		}

		if proj.Homing {
			if target, ok := s.ecs.Bloons[proj.TargetID]; ok && target.Vulnerable() {
				proj.Direction = calculateDirection(pos, s.ecs.Positions[proj.TargetID])
			}
		}

		pos.X += math.Cos(proj.Direction) * proj.Speed * deltaTime
		pos.Y += math.Sin(proj.Direction) * proj.Speed * deltaTime

		if !s.bounds.Contains(pos.Point()) {
			proj.IsActive = false
		}
	}
}

// ResolveCollisions проверяет попадания. Снаряд задевает каждого фрукта
// не больше одного раза и гаснет после MaxHits разных целей.
func (s *ProjectileSystem) ResolveCollisions() {
	bloonIDs := s.ecs.BloonIDs()
	for _, id := range s.ecs.ProjectileIDs() {
		proj := s.ecs.Projectiles[id]
		if !proj.IsActive {
			continue
		}
		pos := s.ecs.Positions[id]
		for _, bloonID := range bloonIDs {
			bloon, ok := s.ecs.Bloons[bloonID]
			if !ok || !bloon.Vulnerable() || proj.HitIDs[bloonID] {
				continue
			}
			bloonPos, ok := s.ecs.Positions[bloonID]
			if !ok || pos.DistanceTo(*bloonPos) > proj.HitRadius {
				continue
			}
			s.hitTarget(proj, pos, bloonID)
			if !proj.IsActive {
				break
			}
		}
	}
}

func (s *ProjectileSystem) hitTarget(proj *component.Projectile, pos *component.Position, bloonID types.EntityID) {
	proj.HitIDs[bloonID] = true
	proj.Hits++

	if proj.BlastRadius > 0 {
		// семя взрывается после запала, а не в момент попадания
		proj.IsActive = false
		impact := *pos
		radius, damage := proj.BlastRadius, proj.Damage
		s.clock.After(proj.Fuse, func() {
			s.Explode(impact, radius, damage)
		})
		return
	}

	s.damage.ApplyDamage(bloonID, component.Hit{Damage: proj.Damage})
	if proj.SlowDuration > 0 {
		if bloon := s.ecs.Bloons[bloonID]; bloon.IsActive {
			ApplySlow(s.ecs, bloonID, proj.SlowFactor, proj.SlowDuration)
		}
	}
	if proj.Hits >= proj.MaxHits {
		proj.IsActive = false
	}
}

// Explode наносит урон всем уязвимым фруктам в радиусе и оставляет
// след взрыва для отрисовки.
func (s *ProjectileSystem) Explode(at component.Position, radius float64, damage int) int {
	fxID := s.ecs.NewEntity()
	s.ecs.Positions[fxID] = &component.Position{X: at.X, Y: at.Y}
	s.ecs.Explosions[fxID] = &component.Explosion{Radius: radius, Duration: config.ExplosionDuration}
	s.ecs.Renderables[fxID] = &component.Renderable{Color: config.ExplosionColor, Radius: 0}

	hit := 0
	for _, id := range s.ecs.BloonIDs() {
		bloon := s.ecs.Bloons[id]
		if !bloon.Vulnerable() {
			continue
		}
		if pos, ok := s.ecs.Positions[id]; ok && at.DistanceTo(*pos) <= radius {
			s.damage.ApplyDamage(id, component.Hit{Damage: damage})
			hit++
		}
	}
	return hit
}
