// internal/app/game.go
package app

import (
	"errors"
	"fmt"
	"log"
	"math"

	"github.com/google/uuid"

	"tutti-frutti-td/internal/component"
	"tutti-frutti-td/internal/config"
	"tutti-frutti-td/internal/defs"
	"tutti-frutti-td/internal/entity"
	"tutti-frutti-td/internal/event"
	"tutti-frutti-td/internal/system"
	"tutti-frutti-td/internal/timer"
	"tutti-frutti-td/pkg/geom"
	"tutti-frutti-td/pkg/spline"
)

var (
	ErrNotEnoughMoney   = errors.New("not enough money")
	ErrInvalidPlacement = errors.New("invalid placement")
	ErrWrongPhase       = errors.New("not allowed in the current phase")
	ErrGameOver         = errors.New("game is over")
	ErrNoTower          = errors.New("no such tower")
	ErrUnknownUpgrade   = errors.New("unknown upgrade")
	ErrUpgradeApplied   = errors.New("upgrade already applied")
	ErrUpgradeLocked    = errors.New("upgrade requires another upgrade first")
)

// Game хранит состояние партии и связывает системы.
type Game struct {
	SessionID string
	Settings  config.Settings
	Library   *defs.Library
	Map       *defs.MapDefinition
	Path      *spline.ArcLengthTable

	ECS             *entity.ECS
	Clock           *timer.Clock
	EventDispatcher *event.Dispatcher

	WaveSystem         *system.WaveSystem
	MovementSystem     *system.MovementSystem
	StatusEffectSystem *system.StatusEffectSystem
	TargetingSystem    *system.TargetingSystem
	CombatSystem       *system.CombatSystem
	AreaAttackSystem   *system.AreaAttackSystem
	AbductionSystem    *system.AbductionSystem
	TrapSystem         *system.TrapSystem
	ProjectileSystem   *system.ProjectileSystem
	CleanupSystem      *system.CleanupSystem
	VisualEffectSystem *system.VisualEffectSystem
	StateSystem        *system.StateSystem
	Damage             *system.DamageResolver

	Money      int
	Lives      int
	WaveNumber int // последняя запущенная волна

	noBuild []geom.Polygon
}

// NewGame собирает игру на карте settings.Map.
func NewGame(library *defs.Library, settings config.Settings) (*Game, error) {
	m, err := library.Map(settings.Map)
	if err != nil {
		return nil, err
	}
	path, err := m.Path()
	if err != nil {
		return nil, err
	}

	ecs := entity.NewECS()
	clock := timer.NewClock()
	eventDispatcher := event.NewDispatcher()
	g := &Game{
		SessionID:       uuid.NewString(),
		Settings:        settings,
		Library:         library,
		Map:             m,
		Path:            path,
		ECS:             ecs,
		Clock:           clock,
		EventDispatcher: eventDispatcher,
		Money:           settings.StartMoney,
		Lives:           settings.StartLives,
		noBuild:         m.NoBuildPolygons(),
	}

	bounds := m.Bounds()
	g.StateSystem = system.NewStateSystem(ecs, eventDispatcher)
	g.Damage = system.NewDamageResolver(ecs, g, eventDispatcher)
	g.WaveSystem = system.NewWaveSystem(ecs, clock, library, path, eventDispatcher)
	g.MovementSystem = system.NewMovementSystem(ecs, g, bounds, eventDispatcher)
	g.StatusEffectSystem = system.NewStatusEffectSystem(ecs)
	g.TargetingSystem = system.NewTargetingSystem(ecs, g)
	g.CombatSystem = system.NewCombatSystem(ecs, g.TargetingSystem)
	g.AreaAttackSystem = system.NewAreaAttackSystem(ecs, g, g.TargetingSystem, g.Damage)
	g.AbductionSystem = system.NewAbductionSystem(ecs, g.TargetingSystem, g.Damage)
	g.TrapSystem = system.NewTrapSystem(ecs, g, g.Damage, eventDispatcher)
	g.ProjectileSystem = system.NewProjectileSystem(ecs, clock, g.Damage, bounds)
	g.CleanupSystem = system.NewCleanupSystem(ecs, g.WaveSystem)
	g.VisualEffectSystem = system.NewVisualEffectSystem(ecs)

	eventDispatcher.Subscribe(event.WaveEnded, g)

	log.Printf("[Game] Session %s on map %q: %d money, %d lives", g.SessionID, m.Name, g.Money, g.Lives)
	return g, nil
}

// Update прогоняет один кадр. Порядок проходов фиксирован: часы (спауны,
// запалы), фрукты (эффекты, движение), башни, снаряды, столкновения,
// уборка и проверка конца волны.
func (g *Game) Update(deltaTime float64) {
	if g.ECS.GameState.GameOver || deltaTime <= 0 {
		return
	}
	if deltaTime > config.MaxDeltaTime {
		deltaTime = config.MaxDeltaTime
	}

	g.Clock.Advance(deltaTime)
	g.ECS.GameTime = g.Clock.Now()

	g.StatusEffectSystem.Update(deltaTime)
	g.MovementSystem.Update(deltaTime)

	g.TargetingSystem.Update(deltaTime)
	g.CombatSystem.Update(deltaTime)
	g.AreaAttackSystem.Update(deltaTime)
	g.AbductionSystem.Update(deltaTime)
	g.TrapSystem.Update(deltaTime)

	g.ProjectileSystem.Update(deltaTime)
	g.ProjectileSystem.ResolveCollisions()

	g.CleanupSystem.Update(deltaTime)
	g.VisualEffectSystem.Update(deltaTime)
	g.WaveSystem.CheckWaveEnd()
}

// UpdateAt прогоняет кадр на ускорении multiplier: целыми шагами по
// deltaTime и остатком. Каждый шаг ограничивается в Update отдельно.
func (g *Game) UpdateAt(deltaTime, multiplier float64) {
	if multiplier <= 0 {
		return
	}
	whole := math.Floor(multiplier)
	for i := 0; i < int(whole); i++ {
		g.Update(deltaTime)
	}
	if rest := multiplier - whole; rest > 0 {
		g.Update(deltaTime * rest)
	}
}

// StartWave запускает следующую волну. Только в фазе покупок.
func (g *Game) StartWave() error {
	if g.ECS.GameState.GameOver {
		return ErrGameOver
	}
	if g.ECS.GameState.Phase != component.BuyingPhase {
		return fmt.Errorf("%w: wave %d is still running", ErrWrongPhase, g.WaveNumber)
	}
	next := g.WaveNumber + 1
	if _, err := g.WaveSystem.StartWave(next); err != nil {
		return err
	}
	g.WaveNumber = next
	return g.StateSystem.SwitchTo(component.SpawningPhase)
}

// OnEvent начисляет бонус за пройденную волну.
func (g *Game) OnEvent(e event.Event) {
	if e.Type != event.WaveEnded {
		return
	}
	data, _ := e.Data.(event.WaveData)
	bonus := config.WaveBonusBase + data.Number
	g.Money += bonus
	log.Printf("[Game] Wave %d cleared, bonus %d", data.Number, bonus)
}

// Reset начинает игру заново на той же карте.
func (g *Game) Reset() {
	g.WaveSystem.Cancel()
	g.Clock.Clear()
	g.ECS.ClearBloons()
	g.ECS.ClearProjectiles()
	g.ECS.ClearTowers()
	g.ECS.Wave = nil
	g.ECS.GameState = &component.GameState{Phase: component.BuyingPhase}
	g.Money = g.Settings.StartMoney
	g.Lives = g.Settings.StartLives
	g.WaveNumber = 0
	g.SessionID = uuid.NewString()
	log.Printf("[Game] Reset, new session %s", g.SessionID)
}

// CreditReward начисляет награду за уничтоженный фрукт.
func (g *Game) CreditReward(amount int) {
	g.Money += amount
}

// LoseLives снимает жизни за прорвавшийся фрукт и заканчивает игру, когда
// жизней не осталось.
func (g *Game) LoseLives(n int) {
	if g.ECS.GameState.GameOver {
		return
	}
	g.Lives -= n
	if g.Lives > 0 {
		return
	}
	g.Lives = 0
	g.ECS.GameState.GameOver = true
	g.WaveSystem.Cancel()
	log.Printf("[Game] Game over on wave %d", g.WaveNumber)
	g.EventDispatcher.Dispatch(event.Event{Type: event.GameOver, Data: event.GameOverData{Wave: g.WaveNumber}})
}

func (g *Game) DisplayScale() float64 {
	return g.Settings.DisplayScale
}

func (g *Game) IsGameOver() bool {
	return g.ECS.GameState.GameOver
}

func (g *Game) Phase() component.GamePhase {
	return g.ECS.GameState.Phase
}
