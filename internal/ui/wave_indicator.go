// internal/ui/wave_indicator.go
package ui

import (
	"image/color"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font"
)

// bossWaveEvery - каждая такая волна подсвечивается красным.
const bossWaveEvery = 10

// WaveIndicator отображает номер текущей волны римскими цифрами.
type WaveIndicator struct {
	X, Y      int
	Color     color.RGBA
	BossColor color.RGBA
	face      font.Face
}

// NewWaveIndicator создает новый индикатор волны.
func NewWaveIndicator(x, y int, face font.Face, c, boss color.RGBA) *WaveIndicator {
	return &WaveIndicator{X: x, Y: y, Color: c, BossColor: boss, face: face}
}

// toRoman конвертирует целое число в римское.
func toRoman(num int) string {
	if num <= 0 {
		return ""
	}
	val := []int{1000, 900, 500, 400, 100, 90, 50, 40, 10, 9, 5, 4, 1}
	syb := []string{"M", "CM", "D", "CD", "C", "XC", "L", "XL", "X", "IX", "V", "IV", "I"}

	var roman strings.Builder
	for i := 0; i < len(val); i++ {
		for num >= val[i] {
			roman.WriteString(syb[i])
			num -= val[i]
		}
	}
	return roman.String()
}

// Draw рисует номер волны по центру X.
func (i *WaveIndicator) Draw(screen *ebiten.Image, waveNumber int) {
	if waveNumber <= 0 {
		return
	}
	label := toRoman(waveNumber)
	c := i.Color
	if waveNumber%bossWaveEvery == 0 {
		c = i.BossColor
	}
	bounds := text.BoundString(i.face, label)
	text.Draw(screen, label, i.face, i.X-bounds.Dx()/2, i.Y, c)
}
