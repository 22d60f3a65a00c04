package component

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGameState_Transitions(t *testing.T) {
	s := &GameState{}
	assert.Equal(t, BuyingPhase, s.Phase)

	assert.NoError(t, s.Transition(BuyingPhase), "same-phase transition is a no-op")
	assert.Equal(t, BuyingPhase, s.Phase)

	assert.NoError(t, s.Transition(SpawningPhase))
	assert.Equal(t, SpawningPhase, s.Phase)
	assert.NoError(t, s.Transition(SpawningPhase))

	assert.NoError(t, s.Transition(BuyingPhase))
	assert.Equal(t, BuyingPhase, s.Phase)
}

func TestGameState_RejectsUnknownPhase(t *testing.T) {
	s := &GameState{}
	err := s.Transition(GamePhase(42))
	assert.ErrorIs(t, err, ErrInvalidTransition)
	assert.Equal(t, BuyingPhase, s.Phase)
}

func TestCanTransition(t *testing.T) {
	assert.True(t, CanTransition(BuyingPhase, SpawningPhase))
	assert.True(t, CanTransition(SpawningPhase, BuyingPhase))
	assert.False(t, CanTransition(BuyingPhase, BuyingPhase))
	assert.Equal(t, "SPAWNING", SpawningPhase.String())
}
