// internal/server/simulation.go
package server

import (
	"context"
	"log"
	"sync"
	"time"

	"tutti-frutti-td/internal/app"
	"tutti-frutti-td/internal/metrics"
)

// restartDelay - сколько секунд демо-игра стоит после проигрыша.
const restartDelay = 5.0

// Simulation крутит демо-игру в отдельной горутине. Игра не потокобезопасна,
// поэтому все обращения к ней идут под мьютексом.
type Simulation struct {
	mu       sync.Mutex
	game     *app.Game
	bot      *app.AutoPlayer
	metrics  *metrics.Collector
	tickRate int
	overFor  float64
}

// NewSimulation собирает демо. bot и collector могут быть nil.
func NewSimulation(game *app.Game, bot *app.AutoPlayer, collector *metrics.Collector, tickRate int) *Simulation {
	if tickRate <= 0 {
		tickRate = 60
	}
	if collector != nil {
		game.EventDispatcher.SubscribeAll(collector)
	}
	return &Simulation{game: game, bot: bot, metrics: collector, tickRate: tickRate}
}

// Step продвигает игру на dt секунд. После проигрыша и паузы игра
// начинается заново.
func (s *Simulation) Step(dt float64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.game.IsGameOver() {
		s.overFor += dt
		if s.overFor >= restartDelay {
			log.Printf("[Simulation] Restarting demo after game over on wave %d", s.game.WaveNumber)
			s.game.Reset()
			s.overFor = 0
		}
	} else {
		if s.bot != nil {
			s.bot.Step()
		}
		s.game.Update(dt)
	}

	if s.metrics != nil {
		s.metrics.SetState(s.game.Money, s.game.Lives, s.game.WaveNumber, s.game.ECS.RemainingBloons())
	}
}

// Run шагает симуляцию с частотой tickRate до отмены ctx.
func (s *Simulation) Run(ctx context.Context) {
	dt := 1.0 / float64(s.tickRate)
	ticker := time.NewTicker(time.Duration(dt * float64(time.Second)))
	defer ticker.Stop()

	log.Printf("[Simulation] Demo running at %d ticks per second", s.tickRate)
	for {
		select {
		case <-ticker.C:
			s.Step(dt)
		case <-ctx.Done():
			log.Printf("[Simulation] Stopped")
			return
		}
	}
}

// Snapshot возвращает текущее состояние демо-игры.
func (s *Simulation) Snapshot() app.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.game.Snapshot()
}
