// internal/app/tower_management.go
package app

import (
	"fmt"
	"log"
	"math"

	"tutti-frutti-td/internal/component"
	"tutti-frutti-td/internal/config"
	"tutti-frutti-td/internal/defs"
	"tutti-frutti-td/internal/event"
	"tutti-frutti-td/internal/types"
	"tutti-frutti-td/pkg/spline"
)

// PlaceTower ставит башню или ловушку kind в точку (x, y) и списывает стоимость.
func (g *Game) PlaceTower(kind defs.TowerKind, x, y float64) (types.EntityID, error) {
	def, err := g.Library.Tower(kind)
	if err != nil {
		return 0, err
	}
	if err := g.canPlaceTower(def, x, y); err != nil {
		return 0, err
	}

	id := g.createTowerEntity(def, x, y)
	g.Money -= def.Cost
	log.Printf("[Game] Placed %s #%d at (%.0f, %.0f), money left %d", kind, id, x, y, g.Money)
	g.EventDispatcher.Dispatch(event.Event{Type: event.TowerPlaced, Data: event.TowerData{ID: id, Kind: kind, Money: def.Cost}})
	return id, nil
}

// CanPlace проверяет, можно ли поставить kind в (x, y), ничего не меняя.
func (g *Game) CanPlace(kind defs.TowerKind, x, y float64) error {
	def, err := g.Library.Tower(kind)
	if err != nil {
		return err
	}
	return g.canPlaceTower(def, x, y)
}

func (g *Game) canPlaceTower(def defs.TowerDefinition, x, y float64) error {
	if g.ECS.GameState.GameOver {
		return ErrGameOver
	}
	if def.Kind.IsTrap() && g.ECS.GameState.Phase != component.BuyingPhase {
		return fmt.Errorf("%w: traps are placed between waves", ErrWrongPhase)
	}
	if g.Money < def.Cost {
		return fmt.Errorf("%w: %s costs %d, have %d", ErrNotEnoughMoney, def.Kind, def.Cost, g.Money)
	}

	p := spline.Point{X: x, Y: y}
	if !g.Map.Bounds().Contains(p) {
		return fmt.Errorf("%w: outside the playfield", ErrInvalidPlacement)
	}
	for _, poly := range g.noBuild {
		if poly.Contains(p) {
			return fmt.Errorf("%w: inside a no-build area", ErrInvalidPlacement)
		}
	}
	here := component.Position{X: x, Y: y}
	for id := range g.ECS.Towers {
		if pos, ok := g.ECS.Positions[id]; ok && pos.DistanceTo(here) < config.TowerFootprint {
			return fmt.Errorf("%w: overlaps tower #%d", ErrInvalidPlacement, id)
		}
	}

	toPath := g.Path.NearestDistance(p)
	if def.Kind.IsTrap() {
		if toPath > config.TrapPathTolerance {
			return fmt.Errorf("%w: traps go on the path", ErrInvalidPlacement)
		}
	} else if toPath < config.PathClearance {
		return fmt.Errorf("%w: too close to the path", ErrInvalidPlacement)
	}
	return nil
}

func (g *Game) createTowerEntity(def defs.TowerDefinition, x, y float64) types.EntityID {
	id := g.ECS.NewEntity()
	g.ECS.Positions[id] = &component.Position{X: x, Y: y}
	g.ECS.Towers[id] = component.NewTower(def)
	rend := &component.Renderable{
		Color:     def.Visuals.Color,
		Radius:    float32(def.Visuals.Radius),
		HasStroke: true,
		Layer:     component.LayerTower,
	}
	if def.Kind.IsTrap() {
		rend.HasStroke = false
		rend.Shape = component.ShapeSquare
		rend.Layer = component.LayerGround
	}
	g.ECS.Renderables[id] = rend
	return id
}

// SellTower убирает башню и возвращает часть потраченного на неё и её улучшения.
func (g *Game) SellTower(id types.EntityID) (int, error) {
	tower, ok := g.ECS.Towers[id]
	if !ok {
		return 0, fmt.Errorf("%w: #%d", ErrNoTower, id)
	}
	if g.ECS.GameState.GameOver {
		return 0, ErrGameOver
	}
	g.AbductionSystem.Release(id)

	refund := int(math.Floor(float64(tower.Spent) * config.SellRefundRatio))
	g.Money += refund
	g.ECS.RemoveEntity(id)
	log.Printf("[Game] Sold %s #%d for %d", tower.Kind, id, refund)
	g.EventDispatcher.Dispatch(event.Event{Type: event.TowerSold, Data: event.TowerData{ID: id, Kind: tower.Kind, Money: refund}})
	return refund, nil
}

// UpgradeTower покупает улучшение key. Каждое улучшение применяется один раз
// и может требовать другое улучшение.
func (g *Game) UpgradeTower(id types.EntityID, key string) error {
	tower, ok := g.ECS.Towers[id]
	if !ok {
		return fmt.Errorf("%w: #%d", ErrNoTower, id)
	}
	if g.ECS.GameState.GameOver {
		return ErrGameOver
	}
	def, err := g.Library.Tower(tower.Kind)
	if err != nil {
		return err
	}
	upgrade, ok := def.Upgrade(key)
	if !ok {
		return fmt.Errorf("%w: %s has no %q", ErrUnknownUpgrade, tower.Kind, key)
	}
	if tower.HasUpgrade(key) {
		return fmt.Errorf("%w: %q", ErrUpgradeApplied, key)
	}
	if upgrade.Requires != "" && !tower.HasUpgrade(upgrade.Requires) {
		return fmt.Errorf("%w: %q needs %q", ErrUpgradeLocked, key, upgrade.Requires)
	}
	if g.Money < upgrade.Cost {
		return fmt.Errorf("%w: %q costs %d, have %d", ErrNotEnoughMoney, key, upgrade.Cost, g.Money)
	}

	g.Money -= upgrade.Cost
	tower.ApplyUpgrade(upgrade)
	g.EventDispatcher.Dispatch(event.Event{Type: event.TowerUpgraded, Data: event.TowerData{ID: id, Kind: tower.Kind, Upgrade: key, Money: upgrade.Cost}})
	return nil
}

// SetTargeting меняет приоритет выбора целей башни.
func (g *Game) SetTargeting(id types.EntityID, priority component.TargetingPriority) error {
	tower, ok := g.ECS.Towers[id]
	if !ok {
		return fmt.Errorf("%w: #%d", ErrNoTower, id)
	}
	tower.Priority = priority
	return nil
}

// TowerAt ищет башню под точкой (x, y).
func (g *Game) TowerAt(x, y float64) (types.EntityID, bool) {
	here := component.Position{X: x, Y: y}
	for _, id := range g.ECS.TowerIDs() {
		if pos, ok := g.ECS.Positions[id]; ok && pos.DistanceTo(here) <= config.TowerFootprint/2 {
			return id, true
		}
	}
	return 0, false
}
