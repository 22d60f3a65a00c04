// internal/system/cleanup.go
package system

import (
	"tutti-frutti-td/internal/entity"
)

// CleanupSystem доигрывает гибель фруктов и убирает отработавшие сущности.
type CleanupSystem struct {
	ecs   *entity.ECS
	waves *WaveSystem
}

func NewCleanupSystem(ecs *entity.ECS, waves *WaveSystem) *CleanupSystem {
	return &CleanupSystem{ecs: ecs, waves: waves}
}

// Update: после анимации гибели появляются дочерние фрукты (ровно один
// раз) и родитель удаляется. Прорвавшиеся и вылетевшие за поле фрукты
// и погасшие снаряды удаляются сразу.
func (s *CleanupSystem) Update(deltaTime float64) {
	for _, id := range s.ecs.BloonIDs() {
		bloon := s.ecs.Bloons[id]
		switch {
		case bloon.Dying && !bloon.ChildrenSpawned:
			bloon.DeathTimer -= deltaTime
			if bloon.DeathTimer > 0 {
				continue
			}
			bloon.ChildrenSpawned = true
			distance := 0.0
			if follower, ok := s.ecs.PathFollowers[id]; ok {
				distance = follower.DistanceTraveled
			}
			s.waves.spawnChildren(bloon, distance)
			s.ecs.RemoveEntity(id)
		case !bloon.IsActive:
			s.ecs.RemoveEntity(id)
		}
	}

	for _, id := range s.ecs.ProjectileIDs() {
		if !s.ecs.Projectiles[id].IsActive {
			s.ecs.RemoveEntity(id)
		}
	}
}
