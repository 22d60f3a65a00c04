// internal/scenario/scenario.go
package scenario

import (
	"errors"
	"fmt"
	"log"
	"os"

	"gopkg.in/yaml.v3"

	"tutti-frutti-td/internal/app"
	"tutti-frutti-td/internal/component"
	"tutti-frutti-td/internal/config"
	"tutti-frutti-td/internal/defs"
	"tutti-frutti-td/internal/event"
	"tutti-frutti-td/internal/utils"
)

// ErrInvalidScenario - сценарий не прошёл проверку.
var ErrInvalidScenario = errors.New("invalid scenario")

// Scenario - сценарий пакетного прогона: карта, расстановка башен и
// сколько волн играть.
type Scenario struct {
	Name       string      `yaml:"name"`
	Map        string      `yaml:"map"`
	Seed       int64       `yaml:"seed"`
	Waves      int         `yaml:"waves"`      // сколько волн сыграть
	MaxTime    float64     `yaml:"maxTime"`    // предел виртуального времени, секунд
	TickRate   int         `yaml:"tickRate"`   // шагов симуляции в секунду
	StartMoney int         `yaml:"startMoney"` // 0 - из настроек
	StartLives int         `yaml:"startLives"`
	Towers     []Placement `yaml:"towers"`
	Autoplay   Autoplay    `yaml:"autoplay"`
}

// Placement - башня, которую ставят перед волной BeforeWave.
type Placement struct {
	Type       string   `yaml:"type"`
	X          float64  `yaml:"x"`
	Y          float64  `yaml:"y"`
	Priority   string   `yaml:"priority"`
	Upgrades   []string `yaml:"upgrades"`
	BeforeWave int      `yaml:"beforeWave"` // 0 и 1 - до первой волны
}

// Autoplay включает бота, который докупает башни между волнами.
type Autoplay struct {
	Enabled bool           `yaml:"enabled"`
	Weights map[string]int `yaml:"weights"`
}

// Load читает сценарий из YAML-файла.
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file %s: %w", path, err)
	}
	return Parse(data)
}

// Parse разбирает сценарий, подставляет значения по умолчанию и проверяет его.
func Parse(data []byte) (*Scenario, error) {
	var sc Scenario
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, fmt.Errorf("failed to parse scenario YAML: %w", err)
	}
	sc.applyDefaults()
	if err := sc.validate(); err != nil {
		return nil, err
	}
	return &sc, nil
}

func (sc *Scenario) applyDefaults() {
	if sc.Name == "" {
		sc.Name = "unnamed"
	}
	if sc.Waves == 0 {
		sc.Waves = 10
	}
	if sc.MaxTime == 0 {
		sc.MaxTime = 3600
	}
	if sc.TickRate == 0 {
		sc.TickRate = config.DefaultTickRate
	}
}

func (sc *Scenario) validate() error {
	if sc.Waves < 0 {
		return fmt.Errorf("%w: waves must be positive", ErrInvalidScenario)
	}
	if sc.MaxTime < 0 || sc.TickRate < 0 {
		return fmt.Errorf("%w: maxTime and tickRate must be positive", ErrInvalidScenario)
	}
	for i, p := range sc.Towers {
		if _, err := defs.ParseTowerKind(p.Type); err != nil {
			return fmt.Errorf("%w: tower %d: %v", ErrInvalidScenario, i, err)
		}
		if _, err := component.ParseTargetingPriority(p.Priority); err != nil {
			return fmt.Errorf("%w: tower %d: %v", ErrInvalidScenario, i, err)
		}
	}
	for kind := range sc.Autoplay.Weights {
		if _, err := defs.ParseTowerKind(kind); err != nil {
			return fmt.Errorf("%w: autoplay weights: %v", ErrInvalidScenario, err)
		}
	}
	return nil
}

// Result - итог прогона, пишется в JSON.
type Result struct {
	Scenario     string       `json:"scenario"`
	Session      string       `json:"session"`
	Map          string       `json:"map"`
	Seed         int64        `json:"seed"`
	WavesCleared int          `json:"wavesCleared"`
	GameOver     bool         `json:"gameOver"`
	Lives        int          `json:"lives"`
	Money        int          `json:"money"`
	Duration     float64      `json:"duration"`
	Popped       int          `json:"popped"`
	Escaped      int          `json:"escaped"`
	LivesLost    int          `json:"livesLost"`
	Towers       int          `json:"towers"`
	Errors       []string     `json:"errors,omitempty"`
	Final        app.Snapshot `json:"final"`
}

// Run играет сценарий до конца заданных волн, проигрыша или предела времени.
// seed переопределяет сид сценария, если не равен нулю.
func Run(library *defs.Library, settings config.Settings, sc *Scenario, seed int64) (*Result, error) {
	if sc.Map != "" {
		settings.Map = sc.Map
	}
	if sc.StartMoney > 0 {
		settings.StartMoney = sc.StartMoney
	}
	if sc.StartLives > 0 {
		settings.StartLives = sc.StartLives
	}
	if seed == 0 {
		seed = sc.Seed
	}

	g, err := app.NewGame(library, settings)
	if err != nil {
		return nil, err
	}
	res := &Result{Scenario: sc.Name, Session: g.SessionID, Map: g.Map.Name, Seed: seed}
	g.EventDispatcher.SubscribeAll(event.ListenerFunc(func(e event.Event) {
		switch e.Type {
		case event.BloonPopped:
			res.Popped++
		case event.BloonEscaped:
			res.Escaped++
			if data, ok := e.Data.(event.BloonData); ok {
				res.LivesLost += data.Damage
			}
		case event.WaveEnded:
			res.WavesCleared++
		}
	}))

	var bot *app.AutoPlayer
	if sc.Autoplay.Enabled {
		weights := make(map[defs.TowerKind]int, len(sc.Autoplay.Weights))
		for k, w := range sc.Autoplay.Weights {
			kind, _ := defs.ParseTowerKind(k)
			weights[kind] = w
		}
		bot = app.NewAutoPlayer(g, utils.NewPRNGService(seed), weights)
	}

	dt := 1.0 / float64(sc.TickRate)
	for g.Clock.Now() < sc.MaxTime && !g.IsGameOver() {
		if g.Phase() == component.BuyingPhase {
			if res.WavesCleared >= sc.Waves {
				break
			}
			res.Errors = append(res.Errors, placeTowers(g, sc.Towers, g.WaveNumber+1)...)
			if bot != nil {
				bot.Step()
			} else if err := g.StartWave(); err != nil {
				res.Errors = append(res.Errors, err.Error())
				break
			}
		}
		g.Update(dt)
	}

	res.GameOver = g.IsGameOver()
	res.Lives = g.Lives
	res.Money = g.Money
	res.Duration = g.Clock.Now()
	res.Towers = len(g.ECS.Towers)
	res.Final = g.Snapshot()
	log.Printf("[Scenario] %s (seed %d): %d waves, %d popped, %d escaped, game over %v",
		sc.Name, seed, res.WavesCleared, res.Popped, res.Escaped, res.GameOver)
	return res, nil
}

// placeTowers ставит башни сценария, назначенные на волну wave.
// Ошибки размещения не прерывают прогон, а попадают в результат.
func placeTowers(g *app.Game, towers []Placement, wave int) []string {
	var errs []string
	for _, p := range towers {
		before := p.BeforeWave
		if before == 0 {
			before = 1
		}
		if before != wave {
			continue
		}
		kind, _ := defs.ParseTowerKind(p.Type)
		id, err := g.PlaceTower(kind, p.X, p.Y)
		if err != nil {
			errs = append(errs, fmt.Sprintf("place %s at (%.0f, %.0f): %v", kind, p.X, p.Y, err))
			continue
		}
		priority, _ := component.ParseTargetingPriority(p.Priority)
		if err := g.SetTargeting(id, priority); err != nil {
			errs = append(errs, err.Error())
		}
		for _, key := range p.Upgrades {
			if err := g.UpgradeTower(id, key); err != nil {
				errs = append(errs, fmt.Sprintf("upgrade %s #%d with %q: %v", kind, id, key, err))
			}
		}
	}
	return errs
}
