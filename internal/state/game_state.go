// internal/state/game_state.go
package state

import (
	"errors"
	"fmt"
	"image/color"
	"log"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"

	game "tutti-frutti-td/internal/app"
	"tutti-frutti-td/internal/component"
	"tutti-frutti-td/internal/config"
	"tutti-frutti-td/internal/defs"
	"tutti-frutti-td/internal/progress"
	"tutti-frutti-td/internal/system"
	"tutti-frutti-td/internal/types"
	"tutti-frutti-td/internal/ui"
	"tutti-frutti-td/pkg/render"
)

const (
	indicatorRadius = 16
	buttonSize      = 10
	statusDuration  = 2 * time.Second
	livesCells      = 20
)

var (
	kindKeys    = []ebiten.Key{ebiten.Key1, ebiten.Key2, ebiten.Key3, ebiten.Key4, ebiten.Key5, ebiten.Key6, ebiten.Key7, ebiten.Key8}
	upgradeKeys = []ebiten.Key{ebiten.KeyQ, ebiten.KeyW, ebiten.KeyE}
)

// GameState - игровой экран: поле, HUD и управление мышью и клавиатурой.
type GameState struct {
	sm       *StateMachine
	game     *game.Game
	records  *progress.Store
	renderer *system.RenderSystem
	face     font.Face

	indicator   *ui.StateIndicator
	speedButton *ui.SpeedButton
	pauseButton *ui.PauseButton
	waveLabel   *ui.WaveIndicator
	lives       *ui.LivesIndicator
	towerBar    *ui.TowerBar
	infoPanel   *ui.InfoPanel

	kinds    []defs.TowerKind // виды башен, доступные на клавишах 1..8
	building defs.TowerKind
	selected types.EntityID

	status     string
	statusTime time.Time
}

func NewGameState(sm *StateMachine, g *game.Game, records *progress.Store) *GameState {
	palette := render.Palette{
		Background:  config.BackgroundColor,
		Path:        config.PathColor,
		NoBuild:     config.NoBuildColor,
		Text:        config.TextLightColor,
		Range:       config.RangeColor,
		Frozen:      config.FrozenTint,
		Slowed:      config.SlowTint,
		Stroke:      config.StrokeColor,
		StrokeWidth: float32(config.StrokeWidth),
		PathWidth:   float32(config.PathWidth),
	}
	face := basicfont.Face7x13

	var kinds []defs.TowerKind
	for _, kind := range defs.TowerKinds() {
		if _, err := g.Library.Tower(kind); err == nil {
			kinds = append(kinds, kind)
		}
	}

	gs := &GameState{
		sm:          sm,
		game:        g,
		records:     records,
		renderer:    system.NewRenderSystem(g.ECS, g.Path, g.Map.NoBuildPolygons(), palette, g.DisplayScale()),
		face:        face,
		indicator:   ui.NewStateIndicator(config.ScreenWidth-40, 40, indicatorRadius),
		speedButton: ui.NewSpeedButton(config.ScreenWidth-90, 40, buttonSize, []float64{1, 2, 4}, []color.RGBA{{240, 240, 240, 255}, {255, 200, 80, 255}, {255, 110, 60, 255}}),
		pauseButton: ui.NewPauseButton(config.ScreenWidth-135, 40, buttonSize, config.TextLightColor, config.TextLightColor),
		waveLabel:   ui.NewWaveIndicator(config.ScreenWidth/2, 30, face, config.TextLightColor, config.SpawningColor),
		lives:       ui.NewLivesIndicator(config.HUDOffsetX, 60, livesCells, face),
		towerBar:    ui.NewTowerBar(config.HUDOffsetX, config.ScreenHeight-config.HUDOffsetY, face),
		infoPanel:   ui.NewInfoPanel(face),
		kinds:       kinds,
	}
	if len(kinds) > 0 {
		gs.building = kinds[0]
	}
	if records != nil {
		g.EventDispatcher.SubscribeAll(records.Tracker(g.Map.Name))
	}
	return gs
}

func (g *GameState) Enter() {}

func (g *GameState) Update(deltaTime float64) {
	g.infoPanel.Update(g.game.ECS)
	if _, ok := g.game.ECS.Towers[g.selected]; !ok {
		g.selected = 0
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyP) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		g.sm.SetState(NewPauseState(g.sm, g))
		return
	}
	g.handleKeys()

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		if g.isClickOnUI(x, y) {
			g.handleUIClick(x, y)
			return
		}
		g.handleGameClick(x, y, ebiten.MouseButtonLeft)
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonRight) {
		x, y := ebiten.CursorPosition()
		g.handleGameClick(x, y, ebiten.MouseButtonRight)
	}

	g.game.UpdateAt(deltaTime, g.speedButton.Multiplier())
}

func (g *GameState) handleKeys() {
	for i, key := range kindKeys {
		if i < len(g.kinds) && inpututil.IsKeyJustPressed(key) {
			g.building = g.kinds[i]
			g.setStatus(fmt.Sprintf("building %s", g.building))
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.startWave()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) && g.game.IsGameOver() {
		g.game.Reset()
		g.selected = 0
		g.infoPanel.Hide()
		g.setStatus("new game")
	}

	if g.selected == 0 {
		return
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyT) {
		if tower, ok := g.game.ECS.Towers[g.selected]; ok {
			g.report(g.game.SetTargeting(g.selected, tower.Priority.Next()))
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyX) {
		g.sellSelected()
	}
	for i, key := range upgradeKeys {
		if inpututil.IsKeyJustPressed(key) {
			g.upgradeSelected(i)
		}
	}
}

// isClickOnUI проверяет, был ли клик по какому-либо элементу UI
func (g *GameState) isClickOnUI(x, y int) bool {
	return g.indicator.IsClicked(x, y) ||
		g.speedButton.IsClicked(x, y) ||
		g.pauseButton.IsClicked(x, y) ||
		g.infoPanel.Contains(x, y)
}

// handleUIClick обрабатывает клики, которые точно попали в UI
func (g *GameState) handleUIClick(x, y int) {
	switch {
	case g.indicator.IsClicked(x, y):
		g.indicator.HandleClick()
		g.startWave()
	case g.speedButton.IsClicked(x, y):
		g.speedButton.ToggleState()
		g.setStatus(fmt.Sprintf("speed x%.0f", g.speedButton.Multiplier()))
	case g.pauseButton.IsClicked(x, y):
		g.sm.SetState(NewPauseState(g.sm, g))
	}
}

func (g *GameState) handleGameClick(x, y int, button ebiten.MouseButton) {
	fx, fy := float64(x), float64(y)
	if id, ok := g.game.TowerAt(fx, fy); ok {
		if button == ebiten.MouseButtonRight {
			g.selected = id
			g.sellSelected()
			return
		}
		g.selected = id
		g.infoPanel.SetTarget(id)
		return
	}

	if button != ebiten.MouseButtonLeft {
		return
	}
	if g.selected != 0 {
		// клик по пустому месту снимает выделение
		g.selected = 0
		g.infoPanel.Hide()
		return
	}
	if _, err := g.game.PlaceTower(g.building, fx, fy); err != nil {
		g.report(err)
	}
}

func (g *GameState) startWave() {
	if err := g.game.StartWave(); err != nil {
		g.report(err)
		return
	}
	g.setStatus(fmt.Sprintf("wave %d", g.game.WaveNumber))
}

func (g *GameState) sellSelected() {
	refund, err := g.game.SellTower(g.selected)
	if err != nil {
		g.report(err)
		return
	}
	g.selected = 0
	g.infoPanel.Hide()
	g.setStatus(fmt.Sprintf("sold for %d", refund))
}

func (g *GameState) upgradeSelected(index int) {
	tower, ok := g.game.ECS.Towers[g.selected]
	if !ok {
		return
	}
	def, err := g.game.Library.Tower(tower.Kind)
	if err != nil || index >= len(def.Upgrades) {
		return
	}
	key := def.Upgrades[index].Key
	if err := g.game.UpgradeTower(g.selected, key); err != nil {
		g.report(err)
		return
	}
	g.setStatus(fmt.Sprintf("%s upgraded: %s", tower.Kind, key))
}

// report показывает ошибку игроку; ожидаемые отказы не пишутся в лог.
func (g *GameState) report(err error) {
	if err == nil {
		return
	}
	switch {
	case errors.Is(err, game.ErrNotEnoughMoney),
		errors.Is(err, game.ErrInvalidPlacement),
		errors.Is(err, game.ErrWrongPhase),
		errors.Is(err, game.ErrGameOver),
		errors.Is(err, game.ErrUpgradeApplied),
		errors.Is(err, game.ErrUpgradeLocked):
	default:
		log.Printf("[GameState] Error: %v", err)
	}
	g.setStatus(err.Error())
}

func (g *GameState) setStatus(msg string) {
	g.status = msg
	g.statusTime = time.Now()
}

func (g *GameState) Draw(screen *ebiten.Image) {
	g.renderer.Draw(screen, g.selected)

	var stateColor color.RGBA
	switch g.game.Phase() {
	case component.BuyingPhase:
		stateColor = config.BuyingColor
	case component.SpawningPhase:
		stateColor = config.SpawningColor
	}
	g.indicator.Draw(screen, stateColor)
	g.speedButton.Draw(screen)
	g.pauseButton.Draw(screen)
	g.waveLabel.Draw(screen, g.game.WaveNumber)
	g.lives.Draw(screen, g.game.Lives, g.game.Settings.StartLives)
	g.drawHUD(screen)
	g.infoPanel.Draw(screen, g.game.ECS, g.game.Library, g.game.Money)
	if !g.infoPanel.IsVisible {
		g.towerBar.Draw(screen, g.game.Library, g.kinds, g.building, g.game.Money)
	}
}

func (g *GameState) drawHUD(screen *ebiten.Image) {
	x, y := config.HUDOffsetX, config.HUDOffsetY
	lines := []string{
		fmt.Sprintf("%s  money %d  %s", g.game.Map.Name, g.game.Money, g.game.Phase()),
	}
	if g.records != nil {
		if best := g.records.Record(g.game.Map.Name).BestWave; best > 0 {
			lines = append(lines, fmt.Sprintf("best wave %d", best))
		}
	}
	if g.game.IsGameOver() {
		lines = append(lines, fmt.Sprintf("GAME OVER on wave %d, press R", g.game.WaveNumber))
	}
	for _, line := range lines {
		text.Draw(screen, line, g.face, x, y, config.TextLightColor)
		y += config.HUDLineHeight
	}
	if g.status != "" && time.Since(g.statusTime) < statusDuration {
		text.Draw(screen, g.status, g.face, config.HUDOffsetX, config.ScreenHeight-config.HUDOffsetY-config.HUDLineHeight, config.TextLightColor)
	}
}

func (g *GameState) Exit() {}
