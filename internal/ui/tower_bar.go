// internal/ui/tower_bar.go
package ui

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font"

	"tutti-frutti-td/internal/defs"
)

// TowerBar - строка выбора вида башни: клавиша, название, цена.
type TowerBar struct {
	X, Y     int
	face     font.Face
	Selected color.RGBA
	Normal   color.RGBA
	TooDear  color.RGBA
}

func NewTowerBar(x, y int, face font.Face) *TowerBar {
	return &TowerBar{
		X:        x,
		Y:        y,
		face:     face,
		Selected: color.RGBA{255, 220, 90, 255},
		Normal:   color.RGBA{240, 240, 240, 255},
		TooDear:  color.RGBA{150, 150, 150, 255},
	}
}

// Draw рисует по ячейке на каждый вид из kinds; номер ячейки - клавиша выбора.
func (b *TowerBar) Draw(screen *ebiten.Image, library *defs.Library, kinds []defs.TowerKind, selected defs.TowerKind, money int) {
	x := b.X
	for i, kind := range kinds {
		def, err := library.Tower(kind)
		if err != nil {
			continue
		}
		c := b.Normal
		switch {
		case kind == selected:
			c = b.Selected
		case money < def.Cost:
			c = b.TooDear
		}
		label := fmt.Sprintf("%d:%s %d", i+1, kind, def.Cost)
		text.Draw(screen, label, b.face, x, b.Y, c)
		x += text.BoundString(b.face, label).Dx() + 18
	}
}
