// internal/system/abduction.go
package system

import (
	"log"
	"math"

	"tutti-frutti-td/internal/component"
	"tutti-frutti-td/internal/config"
	"tutti-frutti-td/internal/defs"
	"tutti-frutti-td/internal/entity"
	"tutti-frutti-td/internal/types"
)

// AbductionSystem управляет НЛО: захват одного не-босса, притягивание к
// башне и уничтожение с начислением награды. Захваченный фрукт не
// движется по пути и не получает урона.
type AbductionSystem struct {
	ecs       *entity.ECS
	targeting *TargetingSystem
	damage    *DamageResolver
}

func NewAbductionSystem(ecs *entity.ECS, targeting *TargetingSystem, damage *DamageResolver) *AbductionSystem {
	return &AbductionSystem{ecs: ecs, targeting: targeting, damage: damage}
}

func (s *AbductionSystem) Update(deltaTime float64) {
	for _, id := range s.ecs.TowerIDs() {
		tower := s.ecs.Towers[id]
		if tower.Kind.AttackModel() != defs.AttackAbduct {
			continue
		}
		if tower.AbductTarget != 0 {
			s.pull(id, tower, deltaTime)
			continue
		}
		if !cooldownReady(tower, deltaTime) {
			continue
		}
		targets := s.targeting.Acquire(id, 1, func(b *component.Bloon) bool { return !b.Boss })
		if len(targets) == 0 {
			tower.Cooldown = 0
			continue
		}
		s.capture(id, tower, targets[0])
	}
}

func (s *AbductionSystem) capture(towerID types.EntityID, tower *component.Tower, target types.EntityID) {
	bloon := s.ecs.Bloons[target]
	bloon.Abducted = true
	bloon.AbductedBy = towerID
	tower.AbductTarget = target
	delete(s.ecs.SlowEffects, target)
	delete(s.ecs.FreezeEffects, target)
	delete(s.ecs.KnockbackEffects, target)
	log.Printf("[Abduction] Tower %d captured bloon %d (%s)", towerID, target, bloon.Kind)
}

// pull тянет захваченный фрукт к башне и уничтожает его у цели.
func (s *AbductionSystem) pull(towerID types.EntityID, tower *component.Tower, deltaTime float64) {
	target := tower.AbductTarget
	bloon, ok := s.ecs.Bloons[target]
	if !ok || !bloon.IsActive || !bloon.Abducted {
		tower.AbductTarget = 0
		return
	}
	towerPos, ok := s.ecs.Positions[towerID]
	if !ok {
		return
	}
	pos := s.ecs.Positions[target]

	dist := pos.DistanceTo(*towerPos)
	step := tower.Effect.PullSpeed * deltaTime
	if dist <= config.AbductionCaptureRadius || dist <= step {
		pos.X, pos.Y = towerPos.X, towerPos.Y
		tower.AbductTarget = 0
		s.damage.Kill(target)
		resetCooldown(tower)
		return
	}
	angle := calculateDirection(pos, towerPos)
	pos.X += math.Cos(angle) * step
	pos.Y += math.Sin(angle) * step
	tower.Angle = angle + math.Pi
}

// Release отпускает фрукт, захваченный башней (например, при продаже НЛО).
func (s *AbductionSystem) Release(towerID types.EntityID) {
	tower, ok := s.ecs.Towers[towerID]
	if !ok || tower.AbductTarget == 0 {
		return
	}
	if bloon, ok := s.ecs.Bloons[tower.AbductTarget]; ok {
		bloon.Abducted = false
		bloon.AbductedBy = 0
	}
	tower.AbductTarget = 0
}
