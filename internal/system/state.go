// internal/system/state.go
package system

import (
	"log"

	"tutti-frutti-td/internal/component"
	"tutti-frutti-td/internal/entity"
	"tutti-frutti-td/internal/event"
)

// StateSystem переключает фазы BUYING и SPAWNING по таблице переходов.
type StateSystem struct {
	ecs             *entity.ECS
	eventDispatcher *event.Dispatcher
}

func NewStateSystem(ecs *entity.ECS, eventDispatcher *event.Dispatcher) *StateSystem {
	ss := &StateSystem{
		ecs:             ecs,
		eventDispatcher: eventDispatcher,
	}
	eventDispatcher.Subscribe(event.WaveEnded, ss)
	return ss
}

func (s *StateSystem) OnEvent(e event.Event) {
	if e.Type == event.WaveEnded {
		if err := s.SwitchTo(component.BuyingPhase); err != nil {
			log.Printf("[State] %v", err)
		}
	}
}

// SwitchTo меняет фазу. Переход в текущую фазу ничего не делает и не
// отправляет событие.
func (s *StateSystem) SwitchTo(phase component.GamePhase) error {
	from := s.ecs.GameState.Phase
	if err := s.ecs.GameState.Transition(phase); err != nil {
		return err
	}
	if from != phase {
		s.eventDispatcher.Dispatch(event.Event{Type: event.PhaseChanged, Data: event.PhaseData{From: from, To: phase}})
	}
	return nil
}

func (s *StateSystem) Current() component.GamePhase {
	return s.ecs.GameState.Phase
}
