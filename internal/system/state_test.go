package system

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tutti-frutti-td/internal/component"
	"tutti-frutti-td/internal/config"
	"tutti-frutti-td/internal/event"
)

func TestStateSystem_Transitions(t *testing.T) {
	f := newFixture(t)
	assert.Equal(t, component.BuyingPhase, f.state.Current())

	require.NoError(t, f.state.SwitchTo(component.BuyingPhase))
	assert.Zero(t, f.countEvents(event.PhaseChanged), "same-state transition is silent")

	require.NoError(t, f.state.SwitchTo(component.SpawningPhase))
	assert.Equal(t, component.SpawningPhase, f.state.Current())
	assert.Equal(t, 1, f.countEvents(event.PhaseChanged))

	f.dispatcher.Dispatch(event.Event{Type: event.WaveEnded, Data: event.WaveData{Number: 1}})
	assert.Equal(t, component.BuyingPhase, f.state.Current())
	assert.Equal(t, 2, f.countEvents(event.PhaseChanged))
}

func TestStatusEffects_Expire(t *testing.T) {
	f := newFixture(t)
	id := f.spawn("cherry", 100)
	ApplySlow(f.ecs, id, 0.5, 1)
	f.ecs.FreezeEffects[id] = &component.FreezeEffect{Timer: 0.5}
	f.ecs.KnockbackEffects[id] = &component.KnockbackEffect{Timer: 0.2}

	f.effects.Update(0.3)
	assert.NotContains(t, f.ecs.KnockbackEffects, id)
	assert.Contains(t, f.ecs.FreezeEffects, id)

	f.effects.Update(0.3)
	assert.NotContains(t, f.ecs.FreezeEffects, id)
	assert.Contains(t, f.ecs.SlowEffects, id)

	f.effects.Update(0.5)
	assert.Empty(t, f.ecs.SlowEffects)
	assert.Equal(t, 1.0, SpeedMultiplier(f.ecs, id))
}

func TestApplySlow_StrongestWins(t *testing.T) {
	f := newFixture(t)
	id := f.spawn("cherry", 100)

	ApplySlow(f.ecs, id, 0.5, 1)
	ApplySlow(f.ecs, id, 0.8, 3)
	ApplySlow(f.ecs, id, 0.3, 0.5)

	slow := f.ecs.SlowEffects[id]
	assert.Equal(t, 0.3, slow.SlowFactor)
	assert.Equal(t, 3.0, slow.Timer)

	other := f.spawn("cherry", 100)
	ApplySlow(f.ecs, other, 1, 5)
	assert.NotContains(t, f.ecs.SlowEffects, other, "factor 1 is no slow")
}

func TestVisualEffects_ExplosionGrowsAndExpires(t *testing.T) {
	f := newFixture(t)
	f.projectiles.Explode(component.Position{X: 100, Y: 100}, 40, 0)
	require.Len(t, f.ecs.Explosions, 1)

	f.visuals.Update(0.1)
	for id := range f.ecs.Explosions {
		assert.InDelta(t, 40*0.1/config.ExplosionDuration, f.ecs.Renderables[id].Radius, 1e-3)
	}
	f.visuals.Update(1)
	assert.Empty(t, f.ecs.Explosions)
	assert.Empty(t, f.ecs.Renderables)
}
