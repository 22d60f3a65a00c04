// internal/ui/lives_indicator.go
package ui

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font"
)

const (
	livesCols          = 10
	livesCircleRadius  = 5.0
	livesCircleSpacing = 3.0
)

// LivesIndicator показывает жизни сеткой кружков (один кружок на долю
// стартовых жизней) и числом над ней.
type LivesIndicator struct {
	X, Y  float32
	Cells int
	face  font.Face
	Full  color.RGBA
	Low   color.RGBA
	Empty color.RGBA
}

func NewLivesIndicator(x, y float32, cells int, face font.Face) *LivesIndicator {
	return &LivesIndicator{
		X:     x,
		Y:     y,
		Cells: cells,
		face:  face,
		Full:  color.RGBA{70, 130, 220, 255},
		Low:   color.RGBA{220, 60, 60, 255},
		Empty: color.RGBA{0, 0, 0, 255},
	}
}

// filledCells - сколько кружков закрашено при lives из maxLives.
func filledCells(lives, maxLives, cells int) int {
	if maxLives <= 0 || lives <= 0 {
		return 0
	}
	n := (lives*cells + maxLives - 1) / maxLives
	if n > cells {
		n = cells
	}
	return n
}

func (i *LivesIndicator) Draw(screen *ebiten.Image, lives, maxLives int) {
	filled := filledCells(lives, maxLives, i.Cells)
	c := i.Full
	if lives*2 <= maxLives {
		c = i.Low
	}
	step := float32(livesCircleRadius*2 + livesCircleSpacing)
	for j := 0; j < i.Cells; j++ {
		x := i.X + float32(j%livesCols)*step + livesCircleRadius
		y := i.Y + float32(j/livesCols)*step + livesCircleRadius
		fill := i.Empty
		if j < filled {
			fill = c
		}
		vector.DrawFilledCircle(screen, x, y, livesCircleRadius, fill, true)
		vector.StrokeCircle(screen, x, y, livesCircleRadius, 1, color.White, true)
	}
	text.Draw(screen, fmt.Sprintf("%d/%d", lives, maxLives), i.face, int(i.X), int(i.Y)-6, color.White)
}
