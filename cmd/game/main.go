// cmd/game/main.go
package main

import (
	"flag"
	"log"
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	game "tutti-frutti-td/internal/app"
	"tutti-frutti-td/internal/config"
	"tutti-frutti-td/internal/defs"
	"tutti-frutti-td/internal/progress"
	"tutti-frutti-td/internal/state"
)

const startFromGame = false // true - начинать сразу с карты из настроек, false - с меню

type AppGame struct {
	stateMachine   *state.StateMachine
	lastUpdateTime time.Time
}

func (a *AppGame) Update() error {
	now := time.Now()
	deltaTime := now.Sub(a.lastUpdateTime).Seconds()
	if deltaTime > config.MaxDeltaTime {
		deltaTime = config.MaxDeltaTime
	}
	a.lastUpdateTime = now
	a.stateMachine.Update(deltaTime)
	return nil
}

func (a *AppGame) Draw(screen *ebiten.Image) {
	a.stateMachine.Draw(screen)
}

func (a *AppGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	return config.ScreenWidth, config.ScreenHeight
}

func main() {
	configPath := flag.String("config", "config/game.yaml", "settings file")
	flag.Parse()

	settings, err := config.LoadSettings(*configPath)
	if err != nil {
		log.Printf("[Main] Warning: %v (using defaults)", err)
		settings = config.DefaultSettings()
	}
	library, err := defs.LoadLibrary(settings.DataDir)
	if err != nil {
		log.Fatalf("[Main] Failed to load definitions: %v", err)
	}

	var records *progress.Store
	if settings.Progress.Enabled {
		records = progress.Open(settings.Progress.AppName)
	}

	sm := state.NewStateMachine()
	if startFromGame {
		g, err := game.NewGame(library, *settings)
		if err != nil {
			log.Fatalf("[Main] Failed to start game: %v", err)
		}
		sm.SetState(state.NewGameState(sm, g, records))
	} else {
		sm.SetState(state.NewMenuState(sm, library, *settings, records))
	}

	app := &AppGame{
		stateMachine:   sm,
		lastUpdateTime: time.Now(),
	}
	ebiten.SetWindowSize(config.ScreenWidth, config.ScreenHeight)
	ebiten.SetWindowTitle("Tutti Frutti Tower Defense")
	if err := ebiten.RunGame(app); err != nil {
		log.Fatal(err)
	}
}
