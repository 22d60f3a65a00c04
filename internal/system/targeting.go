// internal/system/targeting.go
package system

import (
	"sort"

	"tutti-frutti-td/internal/component"
	"tutti-frutti-td/internal/entity"
	"tutti-frutti-td/internal/interfaces"
	"tutti-frutti-td/internal/types"
)

// Candidate - фрукт в радиусе башни и всё, что нужно для сортировки.
type Candidate struct {
	ID       types.EntityID
	Progress float64
	Entered  float64 // когда вошёл в радиус
	Damage   int
	Boss     bool
}

// SortCandidates упорядочивает цели по приоритету башни:
//   - First: больше пройдено
//   - Last: позже вошёл в радиус, при равенстве меньше пройдено
//   - Strong: больше Damage, при равенстве больше пройдено
//
// Окончательная ничья решается по ID.
func SortCandidates(cands []Candidate, priority component.TargetingPriority) {
	sort.SliceStable(cands, func(i, j int) bool {
		a, b := cands[i], cands[j]
		switch priority {
		case component.TargetLast:
			if a.Entered != b.Entered {
				return a.Entered > b.Entered
			}
			if a.Progress != b.Progress {
				return a.Progress < b.Progress
			}
		case component.TargetStrong:
			if a.Damage != b.Damage {
				return a.Damage > b.Damage
			}
			if a.Progress != b.Progress {
				return a.Progress > b.Progress
			}
		default:
			if a.Progress != b.Progress {
				return a.Progress > b.Progress
			}
		}
		return a.ID < b.ID
	})
}

// TargetingSystem отслеживает, кто в радиусе каких башен, и выбирает цели.
type TargetingSystem struct {
	ecs  *entity.ECS
	game interfaces.GameContext
}

func NewTargetingSystem(ecs *entity.ECS, game interfaces.GameContext) *TargetingSystem {
	return &TargetingSystem{ecs: ecs, game: game}
}

// Update запоминает время входа фруктов в радиус каждой башни и забывает
// тех, кто из него вышел.
func (s *TargetingSystem) Update(deltaTime float64) {
	bloonIDs := s.ecs.BloonIDs()
	for _, towerID := range s.ecs.TowerIDs() {
		tower := s.ecs.Towers[towerID]
		towerPos, ok := s.ecs.Positions[towerID]
		if !ok {
			continue
		}
		if tower.RangeEntries == nil {
			tower.RangeEntries = make(map[types.EntityID]float64)
		}
		seen := make(map[types.EntityID]bool)
		for _, id := range bloonIDs {
			if !s.targetable(id) || !s.inRange(tower, towerPos, id) {
				continue
			}
			seen[id] = true
			if _, known := tower.RangeEntries[id]; !known {
				tower.RangeEntries[id] = s.ecs.GameTime
			}
		}
		for id := range tower.RangeEntries {
			if !seen[id] {
				delete(tower.RangeEntries, id)
			}
		}
	}
}

// Acquire возвращает до limit целей башни в порядке её приоритета.
// limit <= 0 снимает ограничение. accept дополнительно фильтрует фрукты.
func (s *TargetingSystem) Acquire(towerID types.EntityID, limit int, accept func(*component.Bloon) bool) []types.EntityID {
	tower, ok := s.ecs.Towers[towerID]
	if !ok {
		return nil
	}
	towerPos, ok := s.ecs.Positions[towerID]
	if !ok {
		return nil
	}

	var cands []Candidate
	for _, id := range s.ecs.BloonIDs() {
		if !s.targetable(id) || !s.inRange(tower, towerPos, id) {
			continue
		}
		bloon := s.ecs.Bloons[id]
		if accept != nil && !accept(bloon) {
			continue
		}
		entered, known := tower.RangeEntries[id]
		if !known {
			entered = s.ecs.GameTime
		}
		cands = append(cands, Candidate{
			ID:       id,
			Progress: s.ecs.PathFollowers[id].Progress,
			Entered:  entered,
			Damage:   bloon.Damage,
			Boss:     bloon.Boss,
		})
	}
	SortCandidates(cands, tower.Priority)

	if limit > 0 && len(cands) > limit {
		cands = cands[:limit]
	}
	ids := make([]types.EntityID, len(cands))
	for i, c := range cands {
		ids[i] = c.ID
	}
	return ids
}

// targetable - активный, не захваченный фрукт на пути.
func (s *TargetingSystem) targetable(id types.EntityID) bool {
	bloon, ok := s.ecs.Bloons[id]
	if !ok || !bloon.IsActive || bloon.Abducted {
		return false
	}
	_, hasPath := s.ecs.PathFollowers[id]
	return hasPath
}

func (s *TargetingSystem) inRange(tower *component.Tower, towerPos *component.Position, id types.EntityID) bool {
	pos, ok := s.ecs.Positions[id]
	if !ok {
		return false
	}
	return towerPos.DistanceTo(*pos) <= tower.Range*s.game.DisplayScale()
}
