package system

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tutti-frutti-td/internal/component"
	"tutti-frutti-td/internal/defs"
	"tutti-frutti-td/internal/event"
)

func parse(t *testing.T, src string) []defs.WaveInstruction {
	t.Helper()
	ins, err := defs.ParseWave(src)
	require.NoError(t, err)
	return ins
}

func (f *fixture) kindCount(kind defs.BloonKind) int {
	n := 0
	for _, b := range f.ecs.Bloons {
		if b.Kind == kind {
			n++
		}
	}
	return n
}

func TestWaveSystem_SequentialSpawns(t *testing.T) {
	f := newFixture(t)
	wave := f.waves.SpawnWave(1, parse(t, "3xcherry | delay=1"), 1)
	assert.Equal(t, 3, wave.TotalScheduled)

	f.clock.Advance(0)
	assert.Equal(t, 1, wave.Spawned)
	f.clock.Advance(0.5)
	assert.Equal(t, 1, wave.Spawned)
	f.clock.Advance(0.6)
	assert.Equal(t, 2, wave.Spawned)
	f.clock.Advance(1.0)
	assert.Equal(t, 3, wave.Spawned)
	assert.False(t, wave.SpawningComplete, "complete only after the last delay")
	f.clock.Advance(1.0)
	assert.True(t, wave.SpawningComplete)
	assert.Equal(t, 1, f.countEvents(event.WaveStarted))
}

func TestWaveSystem_PauseAdvancesCursor(t *testing.T) {
	f := newFixture(t)
	wave := f.waves.SpawnWave(1, parse(t, "1xcherry | delay=0.5, pause=2, 1xcherry"), 1)

	f.clock.Advance(2.4)
	assert.Equal(t, 1, wave.Spawned)
	f.clock.Advance(0.2)
	assert.Equal(t, 2, wave.Spawned)
	assert.False(t, wave.SpawningComplete)
	f.clock.Advance(0.5)
	assert.True(t, wave.SpawningComplete)
}

func TestWaveSystem_ParallelGroups(t *testing.T) {
	f := newFixture(t)
	// вишни в 0 и 1, бананы в 0, 0.5 и 1; курсор = max(1, 1) + min(1, 0.5) = 1.5
	wave := f.waves.SpawnWave(1, parse(t, "2xcherry | delay=1 + 3xbanana | delay=0.5, 1xapple"), 1)
	assert.Equal(t, 6, wave.TotalScheduled)

	f.clock.Advance(0)
	assert.Equal(t, 1, f.kindCount(defs.BloonCherry))
	assert.Equal(t, 1, f.kindCount(defs.BloonBanana))

	f.clock.Advance(0.6)
	assert.Equal(t, 2, f.kindCount(defs.BloonBanana))

	f.clock.Advance(0.5)
	assert.Equal(t, 2, f.kindCount(defs.BloonCherry))
	assert.Equal(t, 3, f.kindCount(defs.BloonBanana))

	f.clock.Advance(0.3)
	assert.Equal(t, 0, f.kindCount(defs.BloonApple), "apple waits for the parallel block")
	f.clock.Advance(0.2)
	assert.Equal(t, 1, f.kindCount(defs.BloonApple))
}

func TestWaveSystem_StartingWaveCancelsPendingSpawns(t *testing.T) {
	f := newFixture(t)
	first := f.waves.SpawnWave(1, parse(t, "3xcherry | delay=1"), 1)
	f.clock.Advance(0.5)

	second := f.waves.SpawnWave(2, parse(t, "1xbanana"), 1)
	f.clock.Advance(5)

	assert.Equal(t, 1, first.Spawned)
	assert.False(t, first.SpawningComplete)
	assert.Equal(t, 1, second.Spawned)
	assert.True(t, second.SpawningComplete)
	assert.Equal(t, 1, f.kindCount(defs.BloonCherry))
	assert.Zero(t, f.clock.Pending())
	assert.Same(t, second, f.ecs.Wave)
}

func TestWaveSystem_CancelStopsEverything(t *testing.T) {
	f := newFixture(t)
	wave := f.waves.SpawnWave(1, parse(t, "5xcherry"), 1)
	f.waves.Cancel()
	f.clock.Advance(10)

	assert.Zero(t, wave.Spawned)
	assert.False(t, wave.SpawningComplete)
}

func TestWaveSystem_UnknownTypeIsSkipped(t *testing.T) {
	f := newFixture(t)
	wave := f.waves.SpawnWave(1, []defs.WaveInstruction{
		{Kind: defs.InstructionSpawn, Type: "kiwi", Delay: 0.5},
		{Kind: defs.InstructionSpawn, Type: "cherry", Delay: 0.5},
	}, 1)

	assert.NotPanics(t, func() { f.clock.Advance(2) })
	assert.Equal(t, 1, wave.Failed)
	assert.Equal(t, 1, wave.Spawned)
	assert.True(t, wave.SpawningComplete)
	assert.Equal(t, 1, f.countEvents(event.SpawnFailed))
}

func TestWaveSystem_HealthMultiplier(t *testing.T) {
	f := newFixture(t)
	f.waves.SpawnWave(1, parse(t, "1xapple"), 1.5)
	f.clock.Advance(0)

	for _, b := range f.ecs.Bloons {
		assert.Equal(t, 5, b.Health, "ceil(3 * 1.5)")
		assert.Equal(t, 5, b.MaxHealth)
	}
}

func TestWaveSystem_EndDetectedOnce(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.state.SwitchTo(component.SpawningPhase))
	_, err := f.waves.StartWave(1)
	require.NoError(t, err)

	f.run(3.5, 0.1)
	assert.True(t, f.ecs.Wave.SpawningComplete)
	assert.Zero(t, f.countEvents(event.WaveEnded), "bloons are still on the path")

	for _, id := range f.ecs.BloonIDs() {
		f.damage.ApplyDamage(id, component.Hit{Damage: 10})
	}
	f.run(1, 0.1)

	assert.Equal(t, 1, f.countEvents(event.WaveEnded))
	assert.Equal(t, component.BuyingPhase, f.ecs.GameState.Phase)
	assert.Equal(t, 3, f.game.money)

	f.run(1, 0.1)
	assert.Equal(t, 1, f.countEvents(event.WaveEnded))
}

func TestWaveSystem_EmptyWaveNeverEnds(t *testing.T) {
	f := newFixture(t)
	f.waves.SpawnWave(1, nil, 1)
	f.run(1, 0.1)

	assert.True(t, f.ecs.Wave.SpawningComplete)
	assert.Zero(t, f.countEvents(event.WaveEnded))
}

func TestSelectWave_Endless(t *testing.T) {
	waves := make([]defs.WaveDefinition, 7)
	for i := range waves {
		waves[i] = defs.WaveDefinition{Source: string(rune('a' + i))}
	}

	tests := []struct {
		number     int
		source     string
		multiplier float64
	}{
		{1, "a", 1},
		{7, "g", 1},
		{8, "c", 1.25},
		{12, "g", 1.25},
		{13, "c", 1.5},
	}
	for _, tt := range tests {
		def, mult, err := SelectWave(waves, tt.number)
		require.NoError(t, err, tt.number)
		assert.Equal(t, tt.source, def.Source, tt.number)
		assert.InDelta(t, tt.multiplier, mult, 1e-9, tt.number)
	}

	_, _, err := SelectWave(waves, 0)
	assert.Error(t, err)
	_, _, err = SelectWave(nil, 1)
	assert.Error(t, err)
}

func TestSelectWave_FewerWavesThanWindow(t *testing.T) {
	waves := []defs.WaveDefinition{{Source: "a"}, {Source: "b"}}
	def, mult, err := SelectWave(waves, 3)
	require.NoError(t, err)
	assert.Equal(t, "a", def.Source)
	assert.InDelta(t, 1.25, mult, 1e-9)
}
