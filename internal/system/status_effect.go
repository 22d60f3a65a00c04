// internal/system/status_effect.go
package system

import "tutti-frutti-td/internal/entity"

// StatusEffectSystem управляет жизненным циклом эффектов: замедление,
// заморозка, отбрасывание.
type StatusEffectSystem struct {
	ecs *entity.ECS
}

func NewStatusEffectSystem(ecs *entity.ECS) *StatusEffectSystem {
	return &StatusEffectSystem{ecs: ecs}
}

// Update обрабатывает все активные эффекты.
func (s *StatusEffectSystem) Update(deltaTime float64) {
	for id, effect := range s.ecs.SlowEffects {
		effect.Timer -= deltaTime
		if effect.Timer <= 0 {
			delete(s.ecs.SlowEffects, id)
		}
	}

	for id, effect := range s.ecs.FreezeEffects {
		effect.Timer -= deltaTime
		if effect.Timer <= 0 {
			delete(s.ecs.FreezeEffects, id)
		}
	}

	for id, effect := range s.ecs.KnockbackEffects {
		effect.Timer -= deltaTime
		if effect.Timer <= 0 {
			delete(s.ecs.KnockbackEffects, id)
		}
	}
}
