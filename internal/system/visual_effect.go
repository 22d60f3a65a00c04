// internal/system/visual_effect.go
package system

import (
	"tutti-frutti-td/internal/entity"
	"tutti-frutti-td/internal/utils"
)

// VisualEffectSystem управляет визуальными эффектами: вспышки урона и
// расходящиеся круги взрывов.
type VisualEffectSystem struct {
	ecs *entity.ECS
}

// NewVisualEffectSystem создает новую систему визуальных эффектов.
func NewVisualEffectSystem(ecs *entity.ECS) *VisualEffectSystem {
	return &VisualEffectSystem{ecs: ecs}
}

// Update обновляет все активные визуальные эффекты.
func (s *VisualEffectSystem) Update(deltaTime float64) {
	for id, flash := range s.ecs.DamageFlashes {
		flash.Timer -= deltaTime
		if flash.Timer <= 0 {
			delete(s.ecs.DamageFlashes, id)
		}
	}

	for id, explosion := range s.ecs.Explosions {
		explosion.Timer += deltaTime
		if explosion.Timer >= explosion.Duration {
			s.ecs.RemoveEntity(id)
			continue
		}
		// Обновляем радиус для анимации
		if renderable, ok := s.ecs.Renderables[id]; ok {
			progress := explosion.Timer / explosion.Duration
			renderable.Radius = float32(utils.Lerp(0, explosion.Radius, progress))
		}
	}
}
