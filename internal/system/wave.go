// internal/system/wave.go
package system

import (
	"fmt"
	"log"
	"math"

	"tutti-frutti-td/internal/component"
	"tutti-frutti-td/internal/config"
	"tutti-frutti-td/internal/defs"
	"tutti-frutti-td/internal/entity"
	"tutti-frutti-td/internal/event"
	"tutti-frutti-td/internal/timer"
	"tutti-frutti-td/internal/types"
	"tutti-frutti-td/pkg/spline"
)

// WaveSystem превращает инструкции волны в вызовы на виртуальных часах
// и создаёт фруктов.
type WaveSystem struct {
	ecs             *entity.ECS
	clock           *timer.Clock
	library         *defs.Library
	path            *spline.ArcLengthTable
	eventDispatcher *event.Dispatcher
	handles         []timer.Handle
}

func NewWaveSystem(ecs *entity.ECS, clock *timer.Clock, library *defs.Library, path *spline.ArcLengthTable, eventDispatcher *event.Dispatcher) *WaveSystem {
	return &WaveSystem{
		ecs:             ecs,
		clock:           clock,
		library:         library,
		path:            path,
		eventDispatcher: eventDispatcher,
	}
}

// SelectWave выбирает волну number (с единицы). После последней волны
// повторяются последние EndlessRepeatWindow волн, и каждый круг добавляет
// здоровья фруктам.
func SelectWave(waves []defs.WaveDefinition, number int) (defs.WaveDefinition, float64, error) {
	if len(waves) == 0 {
		return defs.WaveDefinition{}, 0, fmt.Errorf("no waves defined")
	}
	if number < 1 {
		return defs.WaveDefinition{}, 0, fmt.Errorf("wave number %d out of range", number)
	}
	if number <= len(waves) {
		return waves[number-1], 1, nil
	}

	window := config.EndlessRepeatWindow
	if window > len(waves) {
		window = len(waves)
	}
	over := number - len(waves) - 1
	cycle := over/window + 1
	index := len(waves) - window + over%window
	return waves[index], 1 + config.EndlessHealthGrowth*float64(cycle), nil
}

// StartWave запускает волну number из списка волн карты.
func (s *WaveSystem) StartWave(number int) (*component.Wave, error) {
	def, multiplier, err := SelectWave(s.library.Waves, number)
	if err != nil {
		return nil, err
	}
	if multiplier > 1 {
		log.Printf("[WaveSystem] Wave %d repeats %q with health x%.2f", number, def.Source, multiplier)
	}
	return s.SpawnWave(number, def.Instructions, multiplier), nil
}

// SpawnWave планирует появление фруктов волны. Ещё не сработавшие вызовы
// предыдущей волны отменяются.
//
// Курсор spawnTime идёт от текущего момента: пауза сдвигает его на свою
// задержку, одиночный спаун происходит в курсоре и сдвигает его на свою
// задержку. Параллельная инструкция группирует записи по (тип, задержка):
// i-й фрукт группы появляется в spawnTime + i*delay, а курсор сдвигается
// на самую длинную группу плюс наименьшую задержку.
func (s *WaveSystem) SpawnWave(number int, instructions []defs.WaveInstruction, healthMultiplier float64) *component.Wave {
	s.Cancel()

	if healthMultiplier <= 0 {
		healthMultiplier = 1
	}
	wave := &component.Wave{Number: number, HealthMultiplier: healthMultiplier}
	s.ecs.Wave = wave

	spawnTime := 0.0
	for _, ins := range instructions {
		switch ins.Kind {
		case defs.InstructionPause:
			spawnTime += ins.Delay
		case defs.InstructionSpawn:
			s.scheduleSpawn(spawnTime, wave, ins.Type)
			spawnTime += ins.Delay
		case defs.InstructionParallel:
			spawnTime += s.scheduleParallel(spawnTime, wave, ins.Entries)
		default:
			log.Printf("[WaveSystem] Unknown instruction kind %v skipped", ins.Kind)
		}
	}

	s.schedule(spawnTime, func() {
		wave.SpawningComplete = true
	})
	log.Printf("[WaveSystem] Wave %d scheduled: %d bloons over %.2fs", number, wave.TotalScheduled, spawnTime)
	s.eventDispatcher.Dispatch(event.Event{Type: event.WaveStarted, Data: event.WaveData{Number: number}})
	return wave
}

type spawnGroup struct {
	typ   string
	delay float64
	count int
}

// scheduleParallel планирует группы параллельной инструкции и возвращает,
// на сколько сдвинуть курсор.
func (s *WaveSystem) scheduleParallel(spawnTime float64, wave *component.Wave, entries []defs.WaveInstruction) float64 {
	var groups []*spawnGroup
	index := make(map[spawnGroup]*spawnGroup)
	for _, e := range entries {
		key := spawnGroup{typ: e.Type, delay: e.Delay}
		g, ok := index[key]
		if !ok {
			g = &spawnGroup{typ: e.Type, delay: e.Delay}
			index[key] = g
			groups = append(groups, g)
		}
		g.count++
	}
	if len(groups) == 0 {
		return 0
	}

	maxDuration := 0.0
	minDelay := math.Inf(1)
	for _, g := range groups {
		for i := 0; i < g.count; i++ {
			s.scheduleSpawn(spawnTime+float64(i)*g.delay, wave, g.typ)
		}
		maxDuration = math.Max(maxDuration, float64(g.count-1)*g.delay)
		minDelay = math.Min(minDelay, g.delay)
	}
	return maxDuration + minDelay
}

func (s *WaveSystem) scheduleSpawn(at float64, wave *component.Wave, typ string) {
	wave.TotalScheduled++
	s.schedule(at, func() {
		if _, err := s.SpawnBloon(typ, 0, wave.HealthMultiplier); err != nil {
			wave.Failed++
			log.Printf("[WaveSystem] Spawn of %q skipped: %v", typ, err)
			s.eventDispatcher.Dispatch(event.Event{Type: event.SpawnFailed, Data: event.SpawnFailedData{Type: typ, Err: err}})
			return
		}
		wave.Spawned++
	})
}

func (s *WaveSystem) schedule(at float64, fn func()) {
	s.handles = append(s.handles, s.clock.After(at, fn))
}

// Cancel отменяет все ещё не сработавшие вызовы волны.
func (s *WaveSystem) Cancel() {
	for _, h := range s.handles {
		s.clock.Cancel(h)
	}
	s.handles = s.handles[:0]
}

// SpawnBloon создаёт фрукт типа key на расстоянии distance от начала пути.
func (s *WaveSystem) SpawnBloon(key string, distance float64, healthMultiplier float64) (types.EntityID, error) {
	def, err := s.library.Bloon(key)
	if err != nil {
		return 0, err
	}
	if healthMultiplier <= 0 {
		healthMultiplier = 1
	}
	health := int(math.Ceil(float64(def.Health) * healthMultiplier))

	follower := &component.PathFollower{
		Path:             s.path,
		Speed:            def.Speed,
		DistanceTraveled: distance,
	}
	follower.Sync()
	pos := component.PositionAt(follower.Point())

	id := s.ecs.NewEntity()
	s.ecs.Positions[id] = &pos
	s.ecs.PathFollowers[id] = follower
	s.ecs.Bloons[id] = &component.Bloon{
		Kind:       def.Kind,
		Health:     health,
		MaxHealth:  health,
		Damage:     def.Damage,
		Reward:     def.Reward,
		Boss:       def.Boss,
		NextTypes:  def.NextTypes,
		SpawnedAt:  s.clock.Now(),
		IsActive:   true,
		DeathTimer: def.DeathDuration(),
	}
	s.ecs.Renderables[id] = &component.Renderable{
		Color:     def.Visuals.Color,
		Radius:    float32(def.Visuals.Radius),
		HasStroke: def.Boss,
		Layer:     component.LayerBloon,
	}
	s.eventDispatcher.Dispatch(event.Event{
		Type: event.BloonSpawned,
		Data: event.BloonData{ID: id, Kind: def.Kind, Reward: def.Reward, Damage: def.Damage},
	})
	return id, nil
}

// CheckWaveEnd отправляет WaveEnded, когда волна заспавнена целиком
// и на поле не осталось фруктов. Событие уходит один раз.
func (s *WaveSystem) CheckWaveEnd() bool {
	wave := s.ecs.Wave
	if wave == nil || wave.Ended {
		return false
	}
	if !wave.Finished(s.ecs.RemainingBloons()) {
		return false
	}
	wave.Ended = true
	log.Printf("[WaveSystem] Wave %d ended: %d spawned, %d failed", wave.Number, wave.Spawned, wave.Failed)
	s.eventDispatcher.Dispatch(event.Event{Type: event.WaveEnded, Data: event.WaveData{Number: wave.Number}})
	return true
}

// spawnChildren создаёт дочерние фрукты погибшего родителя, отступая
// каждый следующий назад по пути.
func (s *WaveSystem) spawnChildren(parent *component.Bloon, distance float64) []types.EntityID {
	multiplier := 1.0
	if s.ecs.Wave != nil {
		multiplier = s.ecs.Wave.HealthMultiplier
	}
	kinds := append([]defs.BloonKind(nil), parent.NextTypes...)
	ids := make([]types.EntityID, 0, len(kinds))
	for i, kind := range kinds {
		d := math.Max(0, distance-float64(i)*config.ChildSpacing)
		id, err := s.SpawnBloon(string(kind), d, multiplier)
		if err != nil {
			log.Printf("[WaveSystem] Child %q of %s skipped: %v", kind, parent.Kind, err)
			continue
		}
		ids = append(ids, id)
	}
	return ids
}
