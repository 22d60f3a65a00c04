package scenario

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tutti-frutti-td/internal/config"
	"tutti-frutti-td/internal/defs"
)

func TestParse_Defaults(t *testing.T) {
	sc, err := Parse([]byte("map: orchard\n"))
	require.NoError(t, err)

	assert.Equal(t, "unnamed", sc.Name)
	assert.Equal(t, "orchard", sc.Map)
	assert.Equal(t, 10, sc.Waves)
	assert.Equal(t, 3600.0, sc.MaxTime)
	assert.Equal(t, config.DefaultTickRate, sc.TickRate)
}

func TestParse_Validation(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"unknown tower", "towers:\n  - type: laser\n"},
		{"unknown priority", "towers:\n  - type: dart\n    priority: weakest\n"},
		{"negative waves", "waves: -1\n"},
		{"unknown autoplay kind", "autoplay:\n  enabled: true\n  weights:\n    laser: 2\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			assert.ErrorIs(t, err, ErrInvalidScenario)
		})
	}

	_, err := Parse([]byte("towers: [\n"))
	assert.Error(t, err)
}

func TestLoad_ShippedDemo(t *testing.T) {
	sc, err := Load("../../scenarios/demo.yaml")
	require.NoError(t, err)
	assert.NotEmpty(t, sc.Towers)
}

func TestRun_ShippedData(t *testing.T) {
	lib, err := defs.LoadLibrary("../../assets/data")
	require.NoError(t, err)
	sc, err := Parse([]byte(`
name: two-darts
map: orchard
waves: 2
towers:
  - type: dart
    x: 200
    y: 450
  - type: dart
    x: 120
    y: 380
    priority: strong
  - type: dart
    x: 380
    y: 280
    upgrades: [sharp]
`))
	require.NoError(t, err)

	res, err := Run(lib, *config.DefaultSettings(), sc, 0)
	require.NoError(t, err)

	assert.Equal(t, "orchard", res.Map)
	assert.Equal(t, 2, res.Towers)
	require.Len(t, res.Errors, 1)
	assert.Contains(t, res.Errors[0], "invalid placement")
	assert.True(t, res.GameOver || res.WavesCleared == 2)
	assert.Equal(t, res.Lives, config.DefaultStartLives-res.LivesLost)
	assert.Greater(t, res.Popped+res.Escaped, 0)
	assert.Equal(t, "Strong", res.Final.Towers[0].Priority)
}

func TestRun_AutoplayIsDeterministic(t *testing.T) {
	lib, err := defs.LoadLibrary("../../assets/data")
	require.NoError(t, err)
	sc, err := Parse([]byte("map: vineyard\nwaves: 2\nautoplay:\n  enabled: true\n"))
	require.NoError(t, err)

	a, err := Run(lib, *config.DefaultSettings(), sc, 99)
	require.NoError(t, err)
	b, err := Run(lib, *config.DefaultSettings(), sc, 99)
	require.NoError(t, err)

	assert.Equal(t, a.Popped, b.Popped)
	assert.Equal(t, a.Money, b.Money)
	assert.Equal(t, a.Towers, b.Towers)
	assert.Equal(t, int64(99), a.Seed)
}
