// internal/system/area_attack_system.go
package system

import (
	"math"

	"tutti-frutti-td/internal/component"
	"tutti-frutti-td/internal/config"
	"tutti-frutti-td/internal/defs"
	"tutti-frutti-td/internal/entity"
	"tutti-frutti-td/internal/interfaces"
	"tutti-frutti-td/internal/types"
)

// AreaAttackSystem управляет башнями, которые бьют сразу по нескольким
// целям в радиусе: соковыжималка, морозилка, вентилятор.
type AreaAttackSystem struct {
	ecs       *entity.ECS
	game      interfaces.GameContext
	targeting *TargetingSystem
	damage    *DamageResolver
}

func NewAreaAttackSystem(ecs *entity.ECS, game interfaces.GameContext, targeting *TargetingSystem, damage *DamageResolver) *AreaAttackSystem {
	return &AreaAttackSystem{ecs: ecs, game: game, targeting: targeting, damage: damage}
}

func (s *AreaAttackSystem) Update(deltaTime float64) {
	for _, id := range s.ecs.TowerIDs() {
		tower := s.ecs.Towers[id]
		model := tower.Kind.AttackModel()
		if model != defs.AttackAOE && model != defs.AttackFreeze && model != defs.AttackKnockback {
			continue
		}
		if !cooldownReady(tower, deltaTime) {
			continue
		}

		// сначала выбираем все цели, потом бьём одновременно
		targets := s.targeting.Acquire(id, tower.MaxTargets, nil)
		if len(targets) == 0 {
			tower.Cooldown = 0
			continue
		}
		if towerPos, ok := s.ecs.Positions[id]; ok {
			tower.Angle = calculateDirection(towerPos, s.ecs.Positions[targets[0]])
		}

		switch model {
		case defs.AttackAOE:
			s.juice(id, tower, targets)
		case defs.AttackFreeze:
			s.freeze(tower, targets)
		case defs.AttackKnockback:
			s.knockback(tower, targets)
		}
		resetCooldown(tower)
	}
}

func (s *AreaAttackSystem) juice(towerID types.EntityID, tower *component.Tower, targets []types.EntityID) {
	hit := component.Hit{Damage: tower.Damage, Devastation: tower.Devastation}
	for _, target := range targets {
		boss := s.ecs.Bloons[target].Boss
		if s.damage.ApplyDamage(target, hit) && tower.Devastation && !boss {
			tower.DevastationHits++
		}
	}
	s.spawnPulse(towerID, tower.Range*s.game.DisplayScale())
}

// freeze останавливает цели. Боссы замерзают вдвое короче.
func (s *AreaAttackSystem) freeze(tower *component.Tower, targets []types.EntityID) {
	for _, target := range targets {
		duration := tower.Effect.FreezeDuration
		if s.ecs.Bloons[target].Boss {
			duration *= config.BossFreezeFactor
		}
		if fr, ok := s.ecs.FreezeEffects[target]; ok {
			fr.Timer = math.Max(fr.Timer, duration)
		} else if duration > 0 {
			s.ecs.FreezeEffects[target] = &component.FreezeEffect{Timer: duration}
		}
		if tower.Damage > 0 {
			s.damage.ApplyDamage(target, component.Hit{Damage: tower.Damage})
		}
	}
}

// knockback отбрасывает цели назад по пути.
func (s *AreaAttackSystem) knockback(tower *component.Tower, targets []types.EntityID) {
	for _, target := range targets {
		if tower.Effect.KnockbackDuration > 0 {
			s.ecs.KnockbackEffects[target] = &component.KnockbackEffect{Timer: tower.Effect.KnockbackDuration}
		}
		if tower.Damage > 0 {
			s.damage.ApplyDamage(target, component.Hit{Damage: tower.Damage})
		}
	}
}

// spawnPulse оставляет расходящийся круг вокруг башни.
func (s *AreaAttackSystem) spawnPulse(towerID types.EntityID, radius float64) {
	towerPos, ok := s.ecs.Positions[towerID]
	if !ok {
		return
	}
	fxID := s.ecs.NewEntity()
	s.ecs.Positions[fxID] = &component.Position{X: towerPos.X, Y: towerPos.Y}
	s.ecs.Explosions[fxID] = &component.Explosion{Radius: radius, Duration: config.ExplosionDuration}
	s.ecs.Renderables[fxID] = &component.Renderable{Color: config.ExplosionColor, Radius: 0}
}
