package system

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"tutti-frutti-td/internal/component"
	"tutti-frutti-td/internal/defs"
	"tutti-frutti-td/internal/types"
)

func TestSortCandidates(t *testing.T) {
	base := []Candidate{
		{ID: 1, Progress: 0.5, Entered: 1, Damage: 1},
		{ID: 2, Progress: 0.7, Entered: 2, Damage: 1},
		{ID: 3, Progress: 0.3, Entered: 2, Damage: 5},
		{ID: 4, Progress: 0.3, Entered: 0.5, Damage: 5},
	}
	tests := []struct {
		priority component.TargetingPriority
		want     []types.EntityID
	}{
		{component.TargetFirst, []types.EntityID{2, 1, 3, 4}},
		{component.TargetLast, []types.EntityID{3, 2, 1, 4}},
		{component.TargetStrong, []types.EntityID{3, 4, 2, 1}},
	}
	for _, tt := range tests {
		t.Run(tt.priority.String(), func(t *testing.T) {
			cands := append([]Candidate(nil), base...)
			SortCandidates(cands, tt.priority)
			got := make([]types.EntityID, len(cands))
			for i, c := range cands {
				got[i] = c.ID
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTargeting_LastUsesRangeEntryTime(t *testing.T) {
	f := newFixture(t)
	tower := f.placeTower(defs.TowerDart, 500, 480)

	early := f.spawn("cherry", 350)
	f.ecs.GameTime = 1
	f.targeting.Update(0)

	late := f.spawn("cherry", 300)
	f.ecs.GameTime = 2
	f.targeting.Update(0)

	assert.Equal(t, 1.0, f.ecs.Towers[tower].RangeEntries[early])
	assert.Equal(t, 2.0, f.ecs.Towers[tower].RangeEntries[late])

	assert.Equal(t, []types.EntityID{early, late}, f.targeting.Acquire(tower, 0, nil))
	f.ecs.Towers[tower].Priority = component.TargetLast
	assert.Equal(t, []types.EntityID{late, early}, f.targeting.Acquire(tower, 0, nil))
	assert.Equal(t, []types.EntityID{late}, f.targeting.Acquire(tower, 1, nil))
}

func TestTargeting_StrongPrefersDamage(t *testing.T) {
	f := newFixture(t)
	tower := f.placeTower(defs.TowerDart, 500, 480)
	f.ecs.Towers[tower].Priority = component.TargetStrong

	cherry := f.spawn("cherry", 420)
	banana := f.spawn("banana", 380)
	f.targeting.Update(0)

	assert.Equal(t, []types.EntityID{banana, cherry}, f.targeting.Acquire(tower, 0, nil))
}

func TestTargeting_ForgetsBloonsLeavingRange(t *testing.T) {
	f := newFixture(t)
	tower := f.placeTower(defs.TowerDart, 500, 480)
	id := f.spawn("cherry", 400)
	f.targeting.Update(0)
	assert.Contains(t, f.ecs.Towers[tower].RangeEntries, id)

	f.ecs.PathFollowers[id].DistanceTraveled = 900
	f.movement.Update(0)
	f.targeting.Update(0)
	assert.NotContains(t, f.ecs.Towers[tower].RangeEntries, id)
}

func TestTargeting_RangeUsesDisplayScale(t *testing.T) {
	f := newFixture(t)
	tower := f.placeTower(defs.TowerJuicer, 510, 450)
	id := f.spawn("cherry", 500) // x = 600, в 90 пикселях

	assert.Equal(t, []types.EntityID{id}, f.targeting.Acquire(tower, 0, nil))
	f.game.scale = 0.5
	assert.Empty(t, f.targeting.Acquire(tower, 0, nil))
}

func TestTargeting_SkipsAbductedAndInactive(t *testing.T) {
	f := newFixture(t)
	tower := f.placeTower(defs.TowerDart, 500, 480)
	abducted := f.spawn("cherry", 400)
	dead := f.spawn("cherry", 410)
	alive := f.spawn("cherry", 390)
	f.ecs.Bloons[abducted].Abducted = true
	f.ecs.Bloons[dead].IsActive = false

	assert.Equal(t, []types.EntityID{alive}, f.targeting.Acquire(tower, 0, nil))
	assert.Empty(t, f.targeting.Acquire(tower, 0, func(b *component.Bloon) bool { return b.Boss }))
}
