// internal/state/menu_state.go
package state

import (
	"fmt"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"

	"tutti-frutti-td/internal/app"
	"tutti-frutti-td/internal/config"
	"tutti-frutti-td/internal/defs"
	"tutti-frutti-td/internal/progress"
)

var mapKeys = []ebiten.Key{ebiten.Key1, ebiten.Key2, ebiten.Key3, ebiten.Key4, ebiten.Key5, ebiten.Key6, ebiten.Key7, ebiten.Key8, ebiten.Key9}

// MenuState - выбор карты. Цифра выбирает карту, пробел - первую.
type MenuState struct {
	sm       *StateMachine
	library  *defs.Library
	settings config.Settings
	records  *progress.Store
	message  string
}

func NewMenuState(sm *StateMachine, library *defs.Library, settings config.Settings, records *progress.Store) *MenuState {
	return &MenuState{sm: sm, library: library, settings: settings, records: records}
}

func (m *MenuState) Enter() {}

func (m *MenuState) Update(deltaTime float64) {
	choice := -1
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) || inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
		choice = 0
	}
	for i, key := range mapKeys {
		if i < len(m.library.Maps) && inpututil.IsKeyJustPressed(key) {
			choice = i
		}
	}
	if choice < 0 {
		return
	}

	settings := m.settings
	settings.Map = m.library.Maps[choice].Name
	g, err := app.NewGame(m.library, settings)
	if err != nil {
		log.Printf("[Menu] Error starting map %s: %v", settings.Map, err)
		m.message = err.Error()
		return
	}
	m.sm.SetState(NewGameState(m.sm, g, m.records))
}

func (m *MenuState) Draw(screen *ebiten.Image) {
	screen.Fill(config.BackgroundColor)
	face := basicfont.Face7x13
	x, y := config.ScreenWidth/2-120, config.ScreenHeight/3
	text.Draw(screen, "TUTTI FRUTTI TOWER DEFENSE", face, x, y, config.TextLightColor)
	y += 2 * config.HUDLineHeight
	for i, mp := range m.library.Maps {
		if i >= len(mapKeys) {
			break
		}
		line := fmt.Sprintf("%d  %s", i+1, mp.Name)
		if m.records != nil {
			if best := m.records.Record(mp.Name).BestWave; best > 0 {
				line += fmt.Sprintf("   best wave %d", best)
			}
		}
		text.Draw(screen, line, face, x, y, config.TextLightColor)
		y += config.HUDLineHeight
	}
	y += config.HUDLineHeight
	text.Draw(screen, "press a number to play, space for the first map", face, x, y, config.TextLightColor)
	if m.message != "" {
		text.Draw(screen, m.message, face, x, y+config.HUDLineHeight, config.SpawningColor)
	}
}

func (m *MenuState) Exit() {}
