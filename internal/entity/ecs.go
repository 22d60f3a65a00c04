// internal/entity/ecs.go
package entity

import (
	"sort"

	"tutti-frutti-td/internal/component"
	"tutti-frutti-td/internal/types"
)

// ECS - контекст симуляции: владеет всеми сущностями и их компонентами.
// Системы получают его явно, глобального состояния нет.
type ECS struct {
	GameTime         float64
	NextID           types.EntityID
	Positions        map[types.EntityID]*component.Position
	PathFollowers    map[types.EntityID]*component.PathFollower
	Bloons           map[types.EntityID]*component.Bloon
	Towers           map[types.EntityID]*component.Tower
	Projectiles      map[types.EntityID]*component.Projectile
	Explosions       map[types.EntityID]*component.Explosion
	Renderables      map[types.EntityID]*component.Renderable
	DamageFlashes    map[types.EntityID]*component.DamageFlash
	SlowEffects      map[types.EntityID]*component.SlowEffect
	FreezeEffects    map[types.EntityID]*component.FreezeEffect
	KnockbackEffects map[types.EntityID]*component.KnockbackEffect
	Wave             *component.Wave
	GameState        *component.GameState
}

func NewECS() *ECS {
	return &ECS{
		NextID:           1,
		Positions:        make(map[types.EntityID]*component.Position),
		PathFollowers:    make(map[types.EntityID]*component.PathFollower),
		Bloons:           make(map[types.EntityID]*component.Bloon),
		Towers:           make(map[types.EntityID]*component.Tower),
		Projectiles:      make(map[types.EntityID]*component.Projectile),
		Explosions:       make(map[types.EntityID]*component.Explosion),
		Renderables:      make(map[types.EntityID]*component.Renderable),
		DamageFlashes:    make(map[types.EntityID]*component.DamageFlash),
		SlowEffects:      make(map[types.EntityID]*component.SlowEffect),
		FreezeEffects:    make(map[types.EntityID]*component.FreezeEffect),
		KnockbackEffects: make(map[types.EntityID]*component.KnockbackEffect),
		Wave:             nil,
		GameState:        &component.GameState{Phase: component.BuyingPhase},
	}
}

func (ecs *ECS) NewEntity() types.EntityID {
	id := ecs.NextID
	ecs.NextID++
	return id
}

// RemoveEntity удаляет все компоненты сущности.
func (ecs *ECS) RemoveEntity(id types.EntityID) {
	delete(ecs.Positions, id)
	delete(ecs.PathFollowers, id)
	delete(ecs.Bloons, id)
	delete(ecs.Towers, id)
	delete(ecs.Projectiles, id)
	delete(ecs.Explosions, id)
	delete(ecs.Renderables, id)
	delete(ecs.DamageFlashes, id)
	delete(ecs.SlowEffects, id)
	delete(ecs.FreezeEffects, id)
	delete(ecs.KnockbackEffects, id)
}

// ClearBloons удаляет всех фруктов.
func (ecs *ECS) ClearBloons() {
	for id := range ecs.Bloons {
		ecs.RemoveEntity(id)
	}
}

// ClearProjectiles удаляет все снаряды и следы взрывов.
func (ecs *ECS) ClearProjectiles() {
	for id := range ecs.Projectiles {
		ecs.RemoveEntity(id)
	}
	for id := range ecs.Explosions {
		ecs.RemoveEntity(id)
	}
}

// ClearTowers удаляет все башни и ловушки.
func (ecs *ECS) ClearTowers() {
	for id := range ecs.Towers {
		ecs.RemoveEntity(id)
	}
}

// RemainingBloons - фрукты, из-за которых волна ещё не закончена:
// активные и те, чья анимация уничтожения ещё не доиграла.
func (ecs *ECS) RemainingBloons() int {
	n := 0
	for _, b := range ecs.Bloons {
		if b.IsActive || (b.Dying && !b.ChildrenSpawned) {
			n++
		}
	}
	return n
}

// Обход карт Go недетерминирован; системы перебирают сущности по
// возрастанию ID, чтобы повтор симуляции давал тот же результат.

func (ecs *ECS) BloonIDs() []types.EntityID {
	ids := make([]types.EntityID, 0, len(ecs.Bloons))
	for id := range ecs.Bloons {
		ids = append(ids, id)
	}
	return sortIDs(ids)
}

func (ecs *ECS) TowerIDs() []types.EntityID {
	ids := make([]types.EntityID, 0, len(ecs.Towers))
	for id := range ecs.Towers {
		ids = append(ids, id)
	}
	return sortIDs(ids)
}

func (ecs *ECS) ProjectileIDs() []types.EntityID {
	ids := make([]types.EntityID, 0, len(ecs.Projectiles))
	for id := range ecs.Projectiles {
		ids = append(ids, id)
	}
	return sortIDs(ids)
}

func sortIDs(ids []types.EntityID) []types.EntityID {
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
