// internal/component/enemy.go
package component

import (
	"tutti-frutti-td/internal/defs"
	"tutti-frutti-td/internal/types"
)

// Bloon - фрукт-враг.
type Bloon struct {
	Kind      defs.BloonKind
	Health    int
	MaxHealth int
	Damage    int // сколько жизней теряет игрок при прорыве
	Reward    int
	Boss      bool
	NextTypes []defs.BloonKind
	SpawnedAt float64

	IsActive bool
	Escaped  bool // дошёл до конца пути
	Rewarded bool // награда уже начислена

	// Анимация уничтожения: фрукт продолжает двигаться, пока таймер не истечёт,
	// затем появляются дочерние фрукты.
	Dying           bool
	DeathTimer      float64
	ChildrenSpawned bool

	Abducted   bool
	AbductedBy types.EntityID
}

// Vulnerable - можно ли нанести фрукту урон.
func (b *Bloon) Vulnerable() bool {
	return b.IsActive && !b.Abducted && b.Health > 0
}
