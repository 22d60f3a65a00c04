// internal/system/utils.go
package system

import (
	"log"
	"math"

	"tutti-frutti-td/internal/component"
	"tutti-frutti-td/internal/config"
	"tutti-frutti-td/internal/entity"
	"tutti-frutti-td/internal/event"
	"tutti-frutti-td/internal/interfaces"
	"tutti-frutti-td/internal/types"
)

// DamageResolver наносит урон фруктам и обрабатывает их гибель.
// Им пользуются все атакующие системы.
type DamageResolver struct {
	ecs             *entity.ECS
	game            interfaces.GameContext
	eventDispatcher *event.Dispatcher
}

func NewDamageResolver(ecs *entity.ECS, game interfaces.GameContext, eventDispatcher *event.Dispatcher) *DamageResolver {
	return &DamageResolver{ecs: ecs, game: game, eventDispatcher: eventDispatcher}
}

// ApplyDamage наносит попадание фрукту. Возвращает true, если фрукт погиб.
// Захваченные и уже погибшие фрукты урона не получают. Опустошение
// уничтожает не-боссов с одного удара, а боссы получают обычный урон.
func (r *DamageResolver) ApplyDamage(id types.EntityID, hit component.Hit) bool {
	bloon, ok := r.ecs.Bloons[id]
	if !ok || !bloon.Vulnerable() {
		return false
	}

	damage := hit.Damage
	if hit.Devastation {
		damage = config.DevastationDamage
	}
	if bloon.Boss && damage >= config.OverkillThreshold {
		damage = hit.Damage
	}
	if damage <= 0 {
		return false
	}

	bloon.Health -= damage
	r.ecs.DamageFlashes[id] = &component.DamageFlash{
		Timer:    config.DamageFlashDuration,
		Duration: config.DamageFlashDuration,
	}
	if bloon.Health > 0 {
		return false
	}
	bloon.Health = 0
	r.Kill(id)
	return true
}

// Kill уничтожает фрукт: он перестаёт быть целью, награда начисляется
// ровно один раз, дочерние фрукты появятся после анимации.
func (r *DamageResolver) Kill(id types.EntityID) {
	bloon, ok := r.ecs.Bloons[id]
	if !ok || bloon.Dying {
		return
	}
	bloon.IsActive = false
	bloon.Dying = true
	if bloon.Abducted {
		// захваченный фрукт исчезает сразу, без анимации на тропе
		bloon.DeathTimer = 0
	}
	if bloon.Rewarded {
		return
	}
	bloon.Rewarded = true
	r.game.CreditReward(bloon.Reward)
	r.eventDispatcher.Dispatch(event.Event{
		Type: event.BloonPopped,
		Data: event.BloonData{ID: id, Kind: bloon.Kind, Reward: bloon.Reward, Damage: bloon.Damage},
	})
}

// ApplySlow вешает замедление. Замедления не складываются: остаётся
// самое сильное, таймер берётся наибольший.
func ApplySlow(ecs *entity.ECS, id types.EntityID, factor, duration float64) {
	if duration <= 0 || factor <= 0 || factor >= 1 {
		return
	}
	if slow, ok := ecs.SlowEffects[id]; ok {
		slow.SlowFactor = math.Min(slow.SlowFactor, factor)
		slow.Timer = math.Max(slow.Timer, duration)
		return
	}
	ecs.SlowEffects[id] = &component.SlowEffect{Timer: duration, SlowFactor: factor}
}

// SpeedMultiplier - множитель скорости фрукта от замедлений.
func SpeedMultiplier(ecs *entity.ECS, id types.EntityID) float64 {
	if slow, ok := ecs.SlowEffects[id]; ok && slow.Timer > 0 {
		return slow.SlowFactor
	}
	return 1
}

// cooldownReady уменьшает перезарядку башни и сообщает, может ли она атаковать.
func cooldownReady(tower *component.Tower, deltaTime float64) bool {
	if tower.Cooldown > 0 {
		tower.Cooldown -= deltaTime
	}
	return tower.Cooldown <= 0
}

func resetCooldown(tower *component.Tower) {
	if tower.FireRate <= 0 {
		tower.Cooldown = math.Inf(1)
		log.Printf("[Combat] tower %s has no fire rate", tower.Kind)
		return
	}
	tower.Cooldown = 1 / tower.FireRate
}

func calculateDirection(from, to *component.Position) float64 {
	return math.Atan2(to.Y-from.Y, to.X-from.X)
}
