// internal/ui/info_panel.go
package ui

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font"

	"tutti-frutti-td/internal/config"
	"tutti-frutti-td/internal/defs"
	"tutti-frutti-td/internal/entity"
	"tutti-frutti-td/internal/types"
)

const (
	panelHeight    = 130
	panelMargin    = 5
	animationSpeed = 10.0
	lineHeight     = 18
	columnSpacing  = 260
)

// UpgradeKeys - подписи клавиш покупки улучшений по порядку.
var UpgradeKeys = []string{"Q", "W", "E"}

// InfoPanel - выезжающая снизу панель выбранной башни.
type InfoPanel struct {
	IsVisible    bool
	TargetEntity types.EntityID
	fontFace     font.Face
	currentY     float64
	targetY      float64
}

func NewInfoPanel(face font.Face) *InfoPanel {
	return &InfoPanel{
		fontFace: face,
		currentY: config.ScreenHeight,
		targetY:  config.ScreenHeight,
	}
}

func (p *InfoPanel) SetTarget(entityID types.EntityID) {
	p.TargetEntity = entityID
	p.IsVisible = true
	p.targetY = config.ScreenHeight - panelHeight
}

func (p *InfoPanel) Hide() {
	p.targetY = config.ScreenHeight
}

// Contains - попадает ли точка в видимую часть панели.
func (p *InfoPanel) Contains(x, y int) bool {
	return p.IsVisible && float64(y) >= p.currentY
}

// Update анимирует выезд панели и прячет её, если башня исчезла.
func (p *InfoPanel) Update(ecs *entity.ECS) {
	if p.TargetEntity != 0 {
		if _, ok := ecs.Towers[p.TargetEntity]; !ok {
			p.Hide()
		}
	}
	if p.currentY == p.targetY {
		return
	}
	diff := p.targetY - p.currentY
	if math.Abs(diff) < animationSpeed {
		p.currentY = p.targetY
	} else if diff > 0 {
		p.currentY += animationSpeed
	} else {
		p.currentY -= animationSpeed
	}
	if p.currentY >= config.ScreenHeight {
		p.IsVisible = false
		p.TargetEntity = 0
	}
}

func (p *InfoPanel) Draw(screen *ebiten.Image, ecs *entity.ECS, library *defs.Library, money int) {
	if !p.IsVisible && p.currentY >= config.ScreenHeight {
		return
	}

	panelRect := image.Rect(
		panelMargin,
		int(p.currentY)+panelMargin,
		config.ScreenWidth-panelMargin,
		int(p.currentY)+panelHeight-panelMargin,
	)
	bgColor := color.RGBA{R: 25, G: 35, B: 45, A: 230}
	vector.DrawFilledRect(screen, float32(panelRect.Min.X), float32(panelRect.Min.Y), float32(panelRect.Dx()), float32(panelRect.Dy()), bgColor, true)
	borderColor := color.RGBA{R: 70, G: 130, B: 180, A: 255}
	vector.StrokeRect(screen, float32(panelRect.Min.X), float32(panelRect.Min.Y), float32(panelRect.Dx()), float32(panelRect.Dy()), 2, borderColor, true)

	tower, ok := ecs.Towers[p.TargetEntity]
	if !ok {
		return
	}
	def, err := library.Tower(tower.Kind)
	if err != nil {
		return
	}

	x := panelRect.Min.X + 15
	y := panelRect.Min.Y + 20
	text.Draw(screen, fmt.Sprintf("%s (%s)", def.Name, tower.Kind), p.fontFace, x, y, config.TextLightColor)
	y += lineHeight
	for _, line := range TowerStats(tower.Damage, tower.Range, tower.FireRate, tower.Priority.String(), SellValue(tower.Spent)) {
		text.Draw(screen, line, p.fontFace, x, y, config.TextLightColor)
		y += lineHeight
	}

	ux := x + columnSpacing
	uy := panelRect.Min.Y + 20
	text.Draw(screen, "Upgrades:", p.fontFace, ux, uy, config.TextLightColor)
	uy += lineHeight
	for i, u := range def.Upgrades {
		if i >= len(UpgradeKeys) {
			break
		}
		c := config.TextLightColor
		status := fmt.Sprintf("%d", u.Cost)
		switch {
		case tower.HasUpgrade(u.Key):
			status = "bought"
			c = color.RGBA{120, 200, 120, 255}
		case u.Requires != "" && !tower.HasUpgrade(u.Requires):
			status = "needs " + u.Requires
			c = color.RGBA{150, 150, 150, 255}
		case money < u.Cost:
			c = color.RGBA{220, 90, 90, 255}
		}
		text.Draw(screen, fmt.Sprintf("[%s] %s  %s", UpgradeKeys[i], u.Name, status), p.fontFace, ux, uy, c)
		uy += lineHeight
	}
	text.Draw(screen, "[T] targeting  [X] sell", p.fontFace, ux, uy+lineHeight/2, config.TextLightColor)
}

// SellValue - сколько вернётся при продаже башни.
func SellValue(spent int) int {
	return int(math.Floor(float64(spent) * config.SellRefundRatio))
}

// TowerStats - строки с параметрами башни для панели.
func TowerStats(damage int, rng, fireRate float64, priority string, sell int) []string {
	return []string{
		fmt.Sprintf("Damage: %d   Range: %.0f", damage, rng),
		fmt.Sprintf("Fire rate: %.2f/s", fireRate),
		fmt.Sprintf("Targeting: %s", priority),
		fmt.Sprintf("Sell for: %d", sell),
	}
}
