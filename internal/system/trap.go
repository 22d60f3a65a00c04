// internal/system/trap.go
package system

import (
	"log"

	"tutti-frutti-td/internal/component"
	"tutti-frutti-td/internal/defs"
	"tutti-frutti-td/internal/entity"
	"tutti-frutti-td/internal/event"
	"tutti-frutti-td/internal/interfaces"
	"tutti-frutti-td/internal/types"
)

// TrapSystem - шипы на тропе. Каждый фрукт задевает ловушку один раз,
// после MaxHits попаданий ловушка исчезает.
type TrapSystem struct {
	ecs             *entity.ECS
	game            interfaces.GameContext
	damage          *DamageResolver
	eventDispatcher *event.Dispatcher
}

func NewTrapSystem(ecs *entity.ECS, game interfaces.GameContext, damage *DamageResolver, eventDispatcher *event.Dispatcher) *TrapSystem {
	return &TrapSystem{ecs: ecs, game: game, damage: damage, eventDispatcher: eventDispatcher}
}

func (s *TrapSystem) Update(deltaTime float64) {
	bloonIDs := s.ecs.BloonIDs()
	for _, id := range s.ecs.TowerIDs() {
		trap := s.ecs.Towers[id]
		if trap.Kind.AttackModel() != defs.AttackTrap {
			continue
		}
		trapPos, ok := s.ecs.Positions[id]
		if !ok {
			continue
		}
		if trap.TrapTouched == nil {
			trap.TrapTouched = make(map[types.EntityID]bool)
		}
		radius := trap.Range * s.game.DisplayScale()

		for _, bloonID := range bloonIDs {
			if trap.TrapHitsLeft <= 0 {
				break
			}
			bloon := s.ecs.Bloons[bloonID]
			if !bloon.Vulnerable() || trap.TrapTouched[bloonID] {
				continue
			}
			if pos, ok := s.ecs.Positions[bloonID]; !ok || trapPos.DistanceTo(*pos) > radius {
				continue
			}
			trap.TrapTouched[bloonID] = true
			trap.TrapHitsLeft--
			s.damage.ApplyDamage(bloonID, component.Hit{Damage: trap.Damage})
		}

		if trap.TrapHitsLeft <= 0 {
			log.Printf("[Trap] Trap %d used up", id)
			s.ecs.RemoveEntity(id)
			s.eventDispatcher.Dispatch(event.Event{Type: event.TrapSpent, Data: event.TowerData{ID: id, Kind: trap.Kind}})
		}
	}
}
