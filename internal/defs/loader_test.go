package defs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tutti-frutti-td/pkg/spline"
)

func testBloons() []BloonDefinition {
	return []BloonDefinition{
		{Kind: BloonCherry, Health: 1, Speed: 60, Damage: 1, Reward: 1},
		{Kind: BloonBanana, Health: 2, Speed: 70, Damage: 2, Reward: 2, NextTypes: []BloonKind{BloonCherry}},
	}
}

func testTowers() []TowerDefinition {
	return []TowerDefinition{
		{Kind: TowerDart, Cost: 200, Range: 100, FireRate: 1, Damage: 1, ProjectileSpeed: 300},
	}
}

func testMaps() []MapDefinition {
	return []MapDefinition{{Name: "line", ControlPoints: []spline.Point{{X: 0, Y: 0}, {X: 100, Y: 0}}}}
}

func TestLoadLibrary_ShippedData(t *testing.T) {
	lib, err := LoadLibrary(filepath.Join("..", "..", "assets", "data"))
	require.NoError(t, err)

	assert.Len(t, lib.Towers, len(TowerKinds()), "every tower kind has a definition")
	assert.NotEmpty(t, lib.Waves)
	assert.NotEmpty(t, lib.Maps)

	coconut, err := lib.Bloon("coconut")
	require.NoError(t, err)
	assert.True(t, coconut.Boss)
	assert.Greater(t, coconut.DeathDuration(), 0.0)

	for _, m := range lib.Maps {
		_, err := m.Path()
		assert.NoError(t, err, m.Name)
	}
}

func TestNewLibrary_AppliesMapDefaults(t *testing.T) {
	lib, err := NewLibrary(testBloons(), testTowers(), testMaps(), []string{"2xbanana"})
	require.NoError(t, err)

	m, err := lib.Map("")
	require.NoError(t, err)
	assert.Equal(t, float64(DefaultMapWidth), m.Width)
	assert.Equal(t, float64(DefaultMapHeight), m.Height)
	assert.Equal(t, 2, lib.Waves[0].SpawnCount())
}

func TestNewLibrary_Validation(t *testing.T) {
	tests := []struct {
		name   string
		bloons []BloonDefinition
		towers []TowerDefinition
		maps   []MapDefinition
		waves  []string
	}{
		{
			name:   "unknown bloon kind",
			bloons: []BloonDefinition{{Kind: "kiwi", Health: 1, Speed: 1, Damage: 1}},
		},
		{
			name:   "undefined child",
			bloons: []BloonDefinition{{Kind: BloonBanana, Health: 1, Speed: 1, Damage: 1, NextTypes: []BloonKind{BloonApple}}},
		},
		{
			name:   "zero health",
			bloons: []BloonDefinition{{Kind: BloonCherry, Speed: 1, Damage: 1}},
		},
		{
			name:   "projectile tower without speed",
			bloons: testBloons(),
			towers: []TowerDefinition{{Kind: TowerDart, Range: 10, FireRate: 1}},
		},
		{
			name:   "upgrade requires unknown key",
			bloons: testBloons(),
			towers: []TowerDefinition{{Kind: TowerJuicer, Range: 10, FireRate: 1,
				Upgrades: []UpgradeDefinition{{Key: "a", Requires: "b"}}}},
		},
		{
			name:   "map with one point",
			bloons: testBloons(),
			maps:   []MapDefinition{{Name: "dot", ControlPoints: []spline.Point{{}}}},
		},
		{
			name:   "malformed wave",
			bloons: testBloons(),
			waves:  []string{"3xcherry, oops"},
		},
		{
			name:   "wave without spawns",
			bloons: testBloons(),
			waves:  []string{"pause=3"},
		},
		{
			name:   "wave with undefined bloon",
			bloons: testBloons(),
			waves:  []string{"3xapple"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewLibrary(tt.bloons, tt.towers, tt.maps, tt.waves)
			assert.ErrorIs(t, err, ErrInvalidDefinition)
		})
	}
}

func TestLibrary_Lookups(t *testing.T) {
	lib, err := NewLibrary(testBloons(), testTowers(), testMaps(), nil)
	require.NoError(t, err)

	_, err = lib.Bloon("kiwi")
	assert.ErrorIs(t, err, ErrUnknownBloon)
	_, err = lib.Bloon("apple")
	assert.ErrorIs(t, err, ErrUnknownBloon, "known kind without a definition")
	_, err = lib.Tower(TowerUFO)
	assert.ErrorIs(t, err, ErrUnknownTower)
	_, err = lib.Map("nowhere")
	assert.Error(t, err)
}

func TestLoadLibrary_MissingFile(t *testing.T) {
	_, err := LoadLibrary(t.TempDir())
	assert.Error(t, err)
}

func TestLoadLibrary_BadJSON(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, BloonsFile), []byte("{not json"), 0o644))
	_, err := LoadLibrary(dir)
	assert.Error(t, err)
}

func TestTowerKind_AttackModels(t *testing.T) {
	for _, k := range TowerKinds() {
		assert.NotEmpty(t, k.AttackModel(), k)
	}
	assert.True(t, TowerSpikes.IsTrap())
	assert.False(t, TowerDart.IsTrap())

	k, err := ParseTowerKind(" UFO ")
	require.NoError(t, err)
	assert.Equal(t, TowerUFO, k)
}
