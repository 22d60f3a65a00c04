package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"tutti-frutti-td/internal/component"
	"tutti-frutti-td/internal/types"
)

func TestECS_NewEntityIsMonotonic(t *testing.T) {
	ecs := NewECS()
	a, b := ecs.NewEntity(), ecs.NewEntity()
	assert.Equal(t, types.EntityID(1), a)
	assert.Equal(t, types.EntityID(2), b)
	assert.Equal(t, component.BuyingPhase, ecs.GameState.Phase)
}

func TestECS_RemoveEntity(t *testing.T) {
	ecs := NewECS()
	id := ecs.NewEntity()
	ecs.Positions[id] = &component.Position{}
	ecs.Bloons[id] = &component.Bloon{IsActive: true}
	ecs.SlowEffects[id] = &component.SlowEffect{Timer: 1}

	ecs.RemoveEntity(id)
	assert.Empty(t, ecs.Positions)
	assert.Empty(t, ecs.Bloons)
	assert.Empty(t, ecs.SlowEffects)
}

func TestECS_RemainingBloons(t *testing.T) {
	ecs := NewECS()
	ecs.Bloons[ecs.NewEntity()] = &component.Bloon{IsActive: true}
	ecs.Bloons[ecs.NewEntity()] = &component.Bloon{Dying: true}
	ecs.Bloons[ecs.NewEntity()] = &component.Bloon{Dying: true, ChildrenSpawned: true}
	ecs.Bloons[ecs.NewEntity()] = &component.Bloon{Escaped: true}

	assert.Equal(t, 2, ecs.RemainingBloons())
}

func TestECS_IDsAreSorted(t *testing.T) {
	ecs := NewECS()
	for i := 0; i < 20; i++ {
		ecs.Bloons[ecs.NewEntity()] = &component.Bloon{}
	}
	ids := ecs.BloonIDs()
	for i := 1; i < len(ids); i++ {
		assert.Less(t, ids[i-1], ids[i])
	}
}
