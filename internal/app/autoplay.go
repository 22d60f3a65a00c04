// internal/app/autoplay.go
package app

import (
	"log"
	"math"

	"tutti-frutti-td/internal/component"
	"tutti-frutti-td/internal/config"
	"tutti-frutti-td/internal/defs"
	"tutti-frutti-td/internal/utils"
)

const autoPlaceAttempts = 12

// AutoPlayer играет сам: между волнами покупает башни и улучшения в
// случайных местах у тропы и запускает следующую волну. Нужен для
// демо-сервера и пакетных прогонов. Результат определяется сидом PRNG.
type AutoPlayer struct {
	game    *Game
	rng     *utils.PRNGService
	weights []utils.WeightedEntry
}

// NewAutoPlayer создаёт бота. weights задаёт частоту выбора видов башен;
// пустой набор означает все виды из библиотеки с равным весом.
func NewAutoPlayer(g *Game, rng *utils.PRNGService, weights map[defs.TowerKind]int) *AutoPlayer {
	a := &AutoPlayer{game: g, rng: rng}
	for _, kind := range defs.TowerKinds() {
		if _, err := g.Library.Tower(kind); err != nil {
			continue
		}
		w := 1
		if len(weights) > 0 {
			w = weights[kind]
		}
		if w > 0 {
			a.weights = append(a.weights, utils.WeightedEntry{Key: string(kind), Weight: w})
		}
	}
	return a
}

// Step делает ход бота. Вызывается каждый кадр, действует только в фазе покупок.
func (a *AutoPlayer) Step() {
	if a.game.IsGameOver() || a.game.Phase() != component.BuyingPhase {
		return
	}
	placed := a.buyTowers()
	upgraded := a.buyUpgrade()
	if err := a.game.StartWave(); err != nil {
		log.Printf("[AutoPlay] Error starting wave: %v", err)
		return
	}
	log.Printf("[AutoPlay] Wave %d: placed %d towers, %d upgrades", a.game.WaveNumber, placed, upgraded)
}

func (a *AutoPlayer) buyTowers() int {
	placed := 0
	for attempt := 0; attempt < autoPlaceAttempts && len(a.weights) > 0; attempt++ {
		kind := defs.TowerKind(a.rng.ChooseWeighted(a.weights))
		def, err := a.game.Library.Tower(kind)
		if err != nil || a.game.Money < def.Cost {
			continue
		}
		x, y := a.spot(kind)
		if _, err := a.game.PlaceTower(kind, x, y); err == nil {
			placed++
		}
	}
	return placed
}

// buyUpgrade пробует купить одно улучшение случайной башне.
func (a *AutoPlayer) buyUpgrade() int {
	ids := a.game.ECS.TowerIDs()
	if len(ids) == 0 {
		return 0
	}
	id := ids[a.rng.Intn(len(ids))]
	def, err := a.game.Library.Tower(a.game.ECS.Towers[id].Kind)
	if err != nil {
		return 0
	}
	for _, u := range def.Upgrades {
		if a.game.UpgradeTower(id, u.Key) == nil {
			return 1
		}
	}
	return 0
}

// spot выбирает точку у тропы: ловушки ставятся на неё, башни сбоку.
func (a *AutoPlayer) spot(kind defs.TowerKind) (float64, float64) {
	path := a.game.Path
	p := path.PointAtDistance(a.rng.Range(0, path.Length()))
	if kind.IsTrap() {
		return p.X, p.Y
	}
	angle := a.rng.Range(0, 2*math.Pi)
	r := a.rng.Range(config.PathClearance+10, config.PathClearance+70)
	return p.X + math.Cos(angle)*r, p.Y + math.Sin(angle)*r
}
