package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToRoman(t *testing.T) {
	tests := []struct {
		in   int
		want string
	}{
		{0, ""},
		{-3, ""},
		{1, "I"},
		{4, "IV"},
		{9, "IX"},
		{14, "XIV"},
		{40, "XL"},
		{1994, "MCMXCIV"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, toRoman(tt.in), "toRoman(%d)", tt.in)
	}
}

func TestFilledCells(t *testing.T) {
	assert.Equal(t, 20, filledCells(100, 100, 20))
	assert.Equal(t, 10, filledCells(50, 100, 20))
	assert.Equal(t, 1, filledCells(1, 100, 20))
	assert.Equal(t, 0, filledCells(0, 100, 20))
	assert.Equal(t, 20, filledCells(150, 100, 20))
	assert.Equal(t, 0, filledCells(5, 0, 20))
}

func TestButtonsHitTest(t *testing.T) {
	indicator := NewStateIndicator(100, 100, 10)
	assert.True(t, indicator.IsClicked(105, 105))
	assert.False(t, indicator.IsClicked(115, 100))

	speed := NewSpeedButton(200, 50, 10, []float64{1, 2, 4}, nil)
	assert.True(t, speed.IsClicked(212, 50))
	assert.Equal(t, 1.0, speed.Multiplier())
	speed.ToggleState()
	speed.ToggleState()
	assert.Equal(t, 4.0, speed.Multiplier())
	speed.ToggleState()
	assert.Equal(t, 1.0, speed.Multiplier())

	pause := &PauseButton{X: 0, Y: 0, Size: 10}
	pause.SetPaused(true)
	assert.True(t, pause.IsPaused)
}

func TestSellValueAndStats(t *testing.T) {
	assert.Equal(t, 224, SellValue(320))
	assert.Equal(t, 0, SellValue(0))

	lines := TowerStats(2, 150, 1.5, "Strong", 140)
	assert.Len(t, lines, 4)
	assert.Contains(t, lines[2], "Strong")
	assert.Contains(t, lines[3], "140")
}

func TestInfoPanel_SetTargetAndHide(t *testing.T) {
	p := NewInfoPanel(nil)
	assert.False(t, p.IsVisible)

	p.SetTarget(7)
	assert.True(t, p.IsVisible)
	assert.Equal(t, uint64(7), uint64(p.TargetEntity))
}
