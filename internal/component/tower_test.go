package component

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"tutti-frutti-td/internal/defs"
)

func TestParseTargetingPriority(t *testing.T) {
	tests := []struct {
		in   string
		want TargetingPriority
		err  bool
	}{
		{"", TargetFirst, false},
		{"First", TargetFirst, false},
		{" last ", TargetLast, false},
		{"STRONG", TargetStrong, false},
		{"weakest", TargetFirst, true},
	}
	for _, tt := range tests {
		got, err := ParseTargetingPriority(tt.in)
		if tt.err {
			assert.Error(t, err, tt.in)
			continue
		}
		assert.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestTargetingPriority_NextCycles(t *testing.T) {
	assert.Equal(t, TargetLast, TargetFirst.Next())
	assert.Equal(t, TargetStrong, TargetLast.Next())
	assert.Equal(t, TargetFirst, TargetStrong.Next())
}

func TestTower_HasUpgrade(t *testing.T) {
	tw := &Tower{Upgrades: []string{"sharp"}}
	assert.True(t, tw.HasUpgrade("sharp"))
	assert.False(t, tw.HasUpgrade("rapid"))
}

func TestWave_Finished(t *testing.T) {
	w := &Wave{TotalScheduled: 3}
	assert.False(t, w.Finished(0), "spawning not complete")
	w.SpawningComplete = true
	assert.False(t, w.Finished(1), "enemies remain")
	assert.True(t, w.Finished(0))
	assert.False(t, (&Wave{SpawningComplete: true}).Finished(0), "empty wave never ends")
}

func TestTower_ApplyUpgrade(t *testing.T) {
	juicer := NewTower(defs.TowerDefinition{Kind: defs.TowerJuicer, Cost: 500, Range: 90, FireRate: 1, Damage: 1, MaxTargets: 6})
	juicer.ApplyUpgrade(defs.UpgradeDefinition{Key: "wide", Cost: 300, Range: 30, MaxTargets: 4})
	juicer.ApplyUpgrade(defs.UpgradeDefinition{Key: "devastation", Cost: 1500, Devastation: true})

	assert.Equal(t, 120.0, juicer.Range)
	assert.Equal(t, 10, juicer.MaxTargets)
	assert.True(t, juicer.Devastation)
	assert.Equal(t, 2300, juicer.Spent)
	assert.Equal(t, []string{"wide", "devastation"}, juicer.Upgrades)

	glue := NewTower(defs.TowerDefinition{Kind: defs.TowerGlue, FireRate: 0.8, Effect: defs.EffectParams{SlowFactor: 0.5, SlowDuration: 2}})
	glue.ApplyUpgrade(defs.UpgradeDefinition{Key: "sticky", Duration: 1.5, FireRate: 2})
	assert.Equal(t, 3.5, glue.Effect.SlowDuration)
	assert.Equal(t, 1.6, glue.FireRate)

	spikes := NewTower(defs.TowerDefinition{Kind: defs.TowerSpikes, MaxHits: 10})
	spikes.ApplyUpgrade(defs.UpgradeDefinition{Key: "more", MaxHits: 10})
	assert.Equal(t, 20, spikes.TrapHitsLeft)
}
