// internal/component/game_state.go
package component

import (
	"errors"
	"fmt"
)

// ErrInvalidTransition - переход между фазами не разрешён.
var ErrInvalidTransition = errors.New("invalid phase transition")

// GamePhase - фаза игрового цикла.
type GamePhase int

const (
	BuyingPhase GamePhase = iota
	SpawningPhase
)

func (p GamePhase) String() string {
	switch p {
	case BuyingPhase:
		return "BUYING"
	case SpawningPhase:
		return "SPAWNING"
	default:
		return "UNKNOWN"
	}
}

var phaseTransitions = map[GamePhase][]GamePhase{
	BuyingPhase:   {SpawningPhase},
	SpawningPhase: {BuyingPhase},
}

// CanTransition проверяет переход по таблице смежности.
func CanTransition(from, to GamePhase) bool {
	for _, next := range phaseTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// GameState - компонент для хранения состояния игры
type GameState struct {
	Phase    GamePhase
	GameOver bool
}

// Transition переводит игру в фазу to. Переход в текущую фазу ничего не делает.
func (s *GameState) Transition(to GamePhase) error {
	if s.Phase == to {
		return nil
	}
	if !CanTransition(s.Phase, to) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, s.Phase, to)
	}
	s.Phase = to
	return nil
}
