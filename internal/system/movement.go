// internal/system/movement.go
package system

import (
	"log"

	"tutti-frutti-td/internal/config"
	"tutti-frutti-td/internal/entity"
	"tutti-frutti-td/internal/event"
	"tutti-frutti-td/internal/interfaces"
	"tutti-frutti-td/pkg/geom"
)

// MovementSystem двигает фрукты вдоль пути с постоянной скоростью.
type MovementSystem struct {
	ecs             *entity.ECS
	game            interfaces.GameContext
	bounds          geom.Rect // поле с допуском BoundsMargin
	eventDispatcher *event.Dispatcher
}

func NewMovementSystem(ecs *entity.ECS, game interfaces.GameContext, playfield geom.Rect, eventDispatcher *event.Dispatcher) *MovementSystem {
	return &MovementSystem{
		ecs:             ecs,
		game:            game,
		bounds:          playfield.Inset(-config.BoundsMargin),
		eventDispatcher: eventDispatcher,
	}
}

// Update продвигает каждый фрукт. Особые режимы взаимоисключающие и
// проверяются по порядку: отбрасывание, заморозка, дрейф во время
// анимации гибели, захват, обычное движение.
func (s *MovementSystem) Update(deltaTime float64) {
	for _, id := range s.ecs.BloonIDs() {
		bloon := s.ecs.Bloons[id]
		follower, hasPath := s.ecs.PathFollowers[id]
		pos, hasPos := s.ecs.Positions[id]
		if !hasPath || !hasPos {
			continue
		}
		if !bloon.IsActive && !bloon.Dying {
			continue
		}

		if kb, ok := s.ecs.KnockbackEffects[id]; ok && kb.Timer > 0 {
			follower.DistanceTraveled -= follower.Speed * config.KnockbackSpeedMultiplier * deltaTime
		} else if fr, ok := s.ecs.FreezeEffects[id]; ok && fr.Timer > 0 {
			continue
		} else if bloon.Dying {
			follower.DistanceTraveled += follower.Speed * deltaTime
		} else if bloon.Abducted {
			// позицией управляет AbductionSystem
			continue
		} else {
			follower.DistanceTraveled += follower.Speed * SpeedMultiplier(s.ecs, id) * deltaTime
		}

		follower.Sync()
		pt := follower.Point()
		pos.X, pos.Y = pt.X, pt.Y

		if !bloon.IsActive {
			continue
		}
		if follower.Progress >= config.EscapeProgress {
			bloon.IsActive = false
			bloon.Escaped = true
			s.game.LoseLives(bloon.Damage)
			s.eventDispatcher.Dispatch(event.Event{
				Type: event.BloonEscaped,
				Data: event.BloonData{ID: id, Kind: bloon.Kind, Reward: bloon.Reward, Damage: bloon.Damage},
			})
			continue
		}
		if !s.bounds.Contains(pt) {
			bloon.IsActive = false
			log.Printf("[Movement] Bloon %d (%s) left the playfield at (%.0f, %.0f)", id, bloon.Kind, pt.X, pt.Y)
		}
	}
}
