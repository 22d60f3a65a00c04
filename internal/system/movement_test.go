package system

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"tutti-frutti-td/internal/component"
	"tutti-frutti-td/internal/config"
	"tutti-frutti-td/internal/event"
	"tutti-frutti-td/internal/types"
	"tutti-frutti-td/pkg/geom"
)

func TestMovement_ConstantSpeedAlongPath(t *testing.T) {
	f := newFixture(t)
	id := f.spawn("cherry", 200)

	for i := 0; i < 10; i++ {
		f.movement.Update(0.1)
	}

	follower := f.ecs.PathFollowers[id]
	assert.InDelta(t, 300.0, follower.DistanceTraveled, 1e-6)
	pos := f.ecs.Positions[id]
	want := f.pointAt(300)
	assert.InDelta(t, want.X, pos.X, 1e-6)
	assert.InDelta(t, want.Y, pos.Y, 1e-6)
	// прямой путь: 300 пикселей от начала в x=100
	assert.InDelta(t, 400.0, pos.X, 2.0)
}

func TestMovement_ProgressIsMonotonic(t *testing.T) {
	f := newFixture(t)
	id := f.spawn("cherry", 0)
	follower := f.ecs.PathFollowers[id]

	last := follower.Progress
	for i := 0; i < 50; i++ {
		f.movement.Update(1.0 / 60)
		assert.GreaterOrEqual(t, follower.Progress, last)
		assert.LessOrEqual(t, follower.Progress, 1.0)
		last = follower.Progress
	}
}

func TestMovement_SlowHalvesSpeed(t *testing.T) {
	f := newFixture(t)
	id := f.spawn("cherry", 100)
	ApplySlow(f.ecs, id, 0.5, 5)

	f.movement.Update(1)
	assert.InDelta(t, 150.0, f.ecs.PathFollowers[id].DistanceTraveled, 1e-6)
}

func TestMovement_OverridePriority(t *testing.T) {
	tests := []struct {
		name  string
		setup func(f *fixture, id types.EntityID)
		want  float64
	}{
		{"normal", func(*fixture, types.EntityID) {}, 600},
		{"freeze holds position", func(f *fixture, id types.EntityID) {
			f.ecs.FreezeEffects[id] = &component.FreezeEffect{Timer: 1}
		}, 500},
		{"knockback beats freeze", func(f *fixture, id types.EntityID) {
			f.ecs.FreezeEffects[id] = &component.FreezeEffect{Timer: 1}
			f.ecs.KnockbackEffects[id] = &component.KnockbackEffect{Timer: 1}
		}, 500 - 100*config.KnockbackSpeedMultiplier},
		{"dying drifts forward ignoring slow", func(f *fixture, id types.EntityID) {
			f.ecs.Bloons[id].IsActive = false
			f.ecs.Bloons[id].Dying = true
			ApplySlow(f.ecs, id, 0.5, 5)
		}, 600},
		{"abducted leaves the path", func(f *fixture, id types.EntityID) {
			f.ecs.Bloons[id].Abducted = true
		}, 500},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			id := f.spawn("cherry", 500)
			tt.setup(f, id)

			f.movement.Update(1)
			assert.InDelta(t, tt.want, f.ecs.PathFollowers[id].DistanceTraveled, 1e-6)
		})
	}
}

func TestMovement_KnockbackClampsAtStart(t *testing.T) {
	f := newFixture(t)
	id := f.spawn("cherry", 50)
	f.ecs.KnockbackEffects[id] = &component.KnockbackEffect{Timer: 1}

	f.movement.Update(1)
	assert.Zero(t, f.ecs.PathFollowers[id].DistanceTraveled)
	assert.Zero(t, f.ecs.PathFollowers[id].Progress)
}

func TestMovement_EscapeCostsLives(t *testing.T) {
	f := newFixture(t)
	escapeAt := f.path.DistanceAtParam(config.EscapeProgress)
	id := f.spawn("banana", escapeAt-5)

	f.movement.Update(0.01)
	assert.True(t, f.ecs.Bloons[id].IsActive)

	f.movement.Update(0.1)
	b := f.ecs.Bloons[id]
	assert.False(t, b.IsActive)
	assert.True(t, b.Escaped)
	assert.Equal(t, 2, f.game.livesLost)
	assert.Equal(t, 1, f.countEvents(event.BloonEscaped))

	f.movement.Update(0.1)
	assert.Equal(t, 2, f.game.livesLost, "escape is counted once")
}

func TestMovement_LeavingPlayfieldIsFree(t *testing.T) {
	f := newFixture(t)
	// поле короче пути: фрукт выходит за правый край раньше, чем прорвётся
	narrow := NewMovementSystem(f.ecs, f.game, geom.Rect{MaxX: 300, MaxY: 900}, f.dispatcher)
	id := f.spawn("cherry", 100)

	narrow.Update(0.5)
	assert.True(t, f.ecs.Bloons[id].IsActive)
	narrow.Update(1)

	b := f.ecs.Bloons[id]
	assert.False(t, b.IsActive)
	assert.False(t, b.Escaped)
	assert.Zero(t, f.game.livesLost)
}
