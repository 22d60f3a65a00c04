// internal/ui/speed_button.go
package ui

import (
	"image/color"
	"math"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// SpeedButton переключает ускорение симуляции по кругу.
type SpeedButton struct {
	X, Y          float32
	Size          float32
	LastClickTime time.Time
	Multipliers   []float64
	StateColors   []color.RGBA
	CurrentState  int
}

// NewSpeedButton создаёт кнопку; у каждого множителя свой цвет.
func NewSpeedButton(x, y, size float32, multipliers []float64, stateColors []color.RGBA) *SpeedButton {
	return &SpeedButton{X: x, Y: y, Size: size, Multipliers: multipliers, StateColors: stateColors}
}

// Multiplier - текущее ускорение.
func (b *SpeedButton) Multiplier() float64 {
	if len(b.Multipliers) == 0 {
		return 1
	}
	return b.Multipliers[b.CurrentState]
}

func (b *SpeedButton) Draw(screen *ebiten.Image) {
	elapsed := time.Since(b.LastClickTime).Seconds()
	size := b.Size * float32(1.0+0.3*math.Exp(-elapsed*8))

	c := color.RGBA{255, 255, 255, 255}
	if b.CurrentState < len(b.StateColors) {
		c = b.StateColors[b.CurrentState]
	}
	height := size * 1.2
	offset := size * 0.8
	// два шеврона ">>"
	for _, dx := range []float32{0, offset} {
		left := b.X - size + dx
		vector.StrokeLine(screen, left, b.Y-height/2, b.X+dx, b.Y, 3, c, true)
		vector.StrokeLine(screen, b.X+dx, b.Y, left, b.Y+height/2, 3, c, true)
	}
}

func (b *SpeedButton) IsClicked(x, y int) bool {
	return insideCircle(x, y, b.X, b.Y, b.Size*1.5)
}

func (b *SpeedButton) ToggleState() {
	if len(b.Multipliers) == 0 {
		return
	}
	b.CurrentState = (b.CurrentState + 1) % len(b.Multipliers)
	b.LastClickTime = time.Now()
}
