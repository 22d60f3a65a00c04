package system

import (
	"testing"

	"github.com/stretchr/testify/require"

	"tutti-frutti-td/internal/component"
	"tutti-frutti-td/internal/defs"
	"tutti-frutti-td/internal/entity"
	"tutti-frutti-td/internal/event"
	"tutti-frutti-td/internal/timer"
	"tutti-frutti-td/internal/types"
	"tutti-frutti-td/pkg/geom"
	"tutti-frutti-td/pkg/spline"
)

type fakeGame struct {
	money     int
	livesLost int
	scale     float64
}

func (g *fakeGame) CreditReward(amount int) { g.money += amount }
func (g *fakeGame) LoseLives(n int)         { g.livesLost += n }
func (g *fakeGame) DisplayScale() float64 {
	if g.scale == 0 {
		return 1
	}
	return g.scale
}

type fixture struct {
	t           *testing.T
	ecs         *entity.ECS
	clock       *timer.Clock
	lib         *defs.Library
	path        *spline.ArcLengthTable
	bounds      geom.Rect
	game        *fakeGame
	dispatcher  *event.Dispatcher
	events      []event.Event
	waves       *WaveSystem
	damage      *DamageResolver
	targeting   *TargetingSystem
	movement    *MovementSystem
	effects     *StatusEffectSystem
	combat      *CombatSystem
	area        *AreaAttackSystem
	abduction   *AbductionSystem
	traps       *TrapSystem
	projectiles *ProjectileSystem
	cleanup     *CleanupSystem
	visuals     *VisualEffectSystem
	state       *StateSystem
}

func testLibrary(t *testing.T) *defs.Library {
	t.Helper()
	bloons := []defs.BloonDefinition{
		{Kind: defs.BloonCherry, Health: 1, Speed: 100, Damage: 1, Reward: 1},
		{Kind: defs.BloonBanana, Health: 2, Speed: 100, Damage: 2, Reward: 2, NextTypes: []defs.BloonKind{defs.BloonCherry, defs.BloonCherry}},
		{Kind: defs.BloonApple, Health: 3, Speed: 100, Damage: 3, Reward: 3, NextTypes: []defs.BloonKind{defs.BloonBanana}, DeathFrames: 10},
		{Kind: defs.BloonCoconut, Health: 50, Speed: 50, Damage: 50, Reward: 100, Boss: true},
	}
	towers := []defs.TowerDefinition{
		{Kind: defs.TowerDart, Cost: 200, Range: 150, FireRate: 2, Damage: 1, MaxHits: 2, ProjectileSpeed: 600, HitRadius: 15},
		{Kind: defs.TowerGlue, Cost: 250, Range: 150, FireRate: 1, Damage: 0, MaxHits: 1, ProjectileSpeed: 600, HitRadius: 15, Homing: true,
			Effect: defs.EffectParams{SlowFactor: 0.5, SlowDuration: 2}},
		{Kind: defs.TowerCannon, Cost: 400, Range: 150, FireRate: 1, Damage: 2, MaxHits: 1, ProjectileSpeed: 600, HitRadius: 15,
			Effect: defs.EffectParams{BlastRadius: 50, Fuse: 0.1}},
		{Kind: defs.TowerJuicer, Cost: 500, Range: 100, FireRate: 1, Damage: 1, MaxTargets: 3},
		{Kind: defs.TowerFreezer, Cost: 350, Range: 100, FireRate: 1, MaxTargets: 5, Effect: defs.EffectParams{FreezeDuration: 1}},
		{Kind: defs.TowerFan, Cost: 300, Range: 100, FireRate: 1, MaxTargets: 4, Effect: defs.EffectParams{KnockbackDuration: 0.5}},
		{Kind: defs.TowerUFO, Cost: 800, Range: 150, FireRate: 1, Effect: defs.EffectParams{PullSpeed: 200}},
		{Kind: defs.TowerSpikes, Cost: 100, Range: 20, FireRate: 1, Damage: 1, MaxHits: 3},
	}
	points := make([]spline.Point, 0, 11)
	for x := 100.0; x <= 1100; x += 100 {
		points = append(points, spline.Point{X: x, Y: 450})
	}
	maps := []defs.MapDefinition{{Name: "line", Width: 1200, Height: 900, ControlPoints: points}}
	lib, err := defs.NewLibrary(bloons, towers, maps, []string{"3xcherry | delay=1", "2xbanana"})
	require.NoError(t, err)
	return lib
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	lib := testLibrary(t)
	m, err := lib.Map("")
	require.NoError(t, err)
	path, err := m.Path()
	require.NoError(t, err)

	f := &fixture{
		t:          t,
		ecs:        entity.NewECS(),
		clock:      timer.NewClock(),
		lib:        lib,
		path:       path,
		bounds:     m.Bounds(),
		game:       &fakeGame{},
		dispatcher: event.NewDispatcher(),
	}
	f.dispatcher.SubscribeAll(event.ListenerFunc(func(e event.Event) { f.events = append(f.events, e) }))
	f.waves = NewWaveSystem(f.ecs, f.clock, lib, path, f.dispatcher)
	f.damage = NewDamageResolver(f.ecs, f.game, f.dispatcher)
	f.targeting = NewTargetingSystem(f.ecs, f.game)
	f.movement = NewMovementSystem(f.ecs, f.game, f.bounds, f.dispatcher)
	f.effects = NewStatusEffectSystem(f.ecs)
	f.combat = NewCombatSystem(f.ecs, f.targeting)
	f.area = NewAreaAttackSystem(f.ecs, f.game, f.targeting, f.damage)
	f.abduction = NewAbductionSystem(f.ecs, f.targeting, f.damage)
	f.traps = NewTrapSystem(f.ecs, f.game, f.damage, f.dispatcher)
	f.projectiles = NewProjectileSystem(f.ecs, f.clock, f.damage, f.bounds)
	f.cleanup = NewCleanupSystem(f.ecs, f.waves)
	f.visuals = NewVisualEffectSystem(f.ecs)
	f.state = NewStateSystem(f.ecs, f.dispatcher)
	return f
}

// step прогоняет один кадр в том же порядке, что и игра.
func (f *fixture) step(dt float64) {
	f.clock.Advance(dt)
	f.ecs.GameTime = f.clock.Now()
	f.effects.Update(dt)
	f.movement.Update(dt)
	f.targeting.Update(dt)
	f.combat.Update(dt)
	f.area.Update(dt)
	f.abduction.Update(dt)
	f.traps.Update(dt)
	f.projectiles.Update(dt)
	f.projectiles.ResolveCollisions()
	f.cleanup.Update(dt)
	f.visuals.Update(dt)
	f.waves.CheckWaveEnd()
}

func (f *fixture) run(seconds, dt float64) {
	for elapsed := 0.0; elapsed < seconds-1e-9; elapsed += dt {
		f.step(dt)
	}
}

func (f *fixture) spawn(key string, distance float64) types.EntityID {
	f.t.Helper()
	id, err := f.waves.SpawnBloon(key, distance, 1)
	require.NoError(f.t, err)
	return id
}

func (f *fixture) placeTower(kind defs.TowerKind, x, y float64) types.EntityID {
	f.t.Helper()
	def, err := f.lib.Tower(kind)
	require.NoError(f.t, err)
	id := f.ecs.NewEntity()
	f.ecs.Positions[id] = &component.Position{X: x, Y: y}
	f.ecs.Towers[id] = component.NewTower(def)
	return id
}

func (f *fixture) countEvents(typ event.EventType) int {
	n := 0
	for _, e := range f.events {
		if e.Type == typ {
			n++
		}
	}
	return n
}

func (f *fixture) activeBloons() int {
	n := 0
	for _, b := range f.ecs.Bloons {
		if b.IsActive {
			n++
		}
	}
	return n
}

// pointAt - точка пути на расстоянии d от начала.
func (f *fixture) pointAt(d float64) spline.Point {
	return f.path.PointAtDistance(d)
}
