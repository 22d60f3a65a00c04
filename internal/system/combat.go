// internal/system/combat.go
package system

import (
	"tutti-frutti-td/internal/component"
	"tutti-frutti-td/internal/config"
	"tutti-frutti-td/internal/defs"
	"tutti-frutti-td/internal/entity"
	"tutti-frutti-td/internal/types"
)

// CombatSystem управляет башнями, которые стреляют снарядами
// (зубочистки, сироп, семена).
type CombatSystem struct {
	ecs       *entity.ECS
	targeting *TargetingSystem
}

func NewCombatSystem(ecs *entity.ECS, targeting *TargetingSystem) *CombatSystem {
	return &CombatSystem{ecs: ecs, targeting: targeting}
}

func (s *CombatSystem) Update(deltaTime float64) {
	for _, id := range s.ecs.TowerIDs() {
		tower := s.ecs.Towers[id]
		if tower.Kind.AttackModel() != defs.AttackProjectile {
			continue
		}
		if !cooldownReady(tower, deltaTime) {
			continue
		}
		targets := s.targeting.Acquire(id, 1, nil)
		if len(targets) == 0 {
			tower.Cooldown = 0
			continue
		}
		s.createProjectile(id, tower, targets[0])
		resetCooldown(tower)
	}
}

// createProjectile выпускает снаряд в текущую позицию цели. Самонаводящиеся
// снаряды дальше поворачивают за целью сами.
func (s *CombatSystem) createProjectile(towerID types.EntityID, tower *component.Tower, targetID types.EntityID) types.EntityID {
	towerPos := s.ecs.Positions[towerID]
	targetPos := s.ecs.Positions[targetID]
	direction := calculateDirection(towerPos, targetPos)
	tower.Angle = direction

	maxHits := tower.MaxHits
	if maxHits < 1 {
		maxHits = 1
	}

	projID := s.ecs.NewEntity()
	s.ecs.Positions[projID] = &component.Position{X: towerPos.X, Y: towerPos.Y}
	s.ecs.Projectiles[projID] = &component.Projectile{
		Source:       towerID,
		TargetID:     targetID,
		Direction:    direction,
		Speed:        tower.ProjectileSpeed,
		Damage:       tower.Damage,
		HitRadius:    tower.HitRadius,
		MaxHits:      maxHits,
		HitIDs:       make(map[types.EntityID]bool),
		Homing:       tower.Homing,
		IsActive:     true,
		Lifetime:     config.ProjectileLifetime,
		SlowFactor:   tower.Effect.SlowFactor,
		SlowDuration: tower.Effect.SlowDuration,
		BlastRadius:  tower.Effect.BlastRadius,
		Fuse:         tower.Effect.Fuse,
	}
	s.ecs.Renderables[projID] = &component.Renderable{
		Color:  config.ProjectileColor,
		Radius: config.ProjectileRadius,
		Layer:  component.LayerProjectile,
	}
	return projID
}
