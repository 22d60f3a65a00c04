// internal/component/tower.go
package component

import (
	"fmt"
	"strings"

	"tutti-frutti-td/internal/defs"
	"tutti-frutti-td/internal/types"
)

// TargetingPriority - правило выбора цели башней.
type TargetingPriority int

const (
	TargetFirst  TargetingPriority = iota // дальше всех по пути
	TargetLast                            // позже всех вошёл в радиус
	TargetStrong                          // самый опасный при прорыве
)

func (p TargetingPriority) String() string {
	switch p {
	case TargetFirst:
		return "First"
	case TargetLast:
		return "Last"
	case TargetStrong:
		return "Strong"
	default:
		return "Unknown"
	}
}

// ParseTargetingPriority разбирает имя приоритета без учёта регистра.
func ParseTargetingPriority(s string) (TargetingPriority, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "first":
		return TargetFirst, nil
	case "last":
		return TargetLast, nil
	case "strong":
		return TargetStrong, nil
	}
	return TargetFirst, fmt.Errorf("unknown targeting priority %q", s)
}

// Next - следующий приоритет по кругу (для переключения в интерфейсе).
func (p TargetingPriority) Next() TargetingPriority {
	return (p + 1) % 3
}

// Tower - башня или ловушка. Боевые параметры копируются из определения
// и меняются улучшениями.
type Tower struct {
	Kind            defs.TowerKind
	Range           float64
	FireRate        float64
	Damage          int
	MaxTargets      int
	MaxHits         int
	ProjectileSpeed float64
	HitRadius       float64
	Homing          bool
	Effect          defs.EffectParams
	Devastation     bool
	Priority        TargetingPriority
	Upgrades        []string
	Spent           int // стоимость башни и всех улучшений

	Cooldown float64 // оставшееся время до следующей атаки
	Angle    float64 // направление последнего выстрела, радианы

	// RangeEntries - время входа каждого врага в радиус (для приоритета Last).
	RangeEntries map[types.EntityID]float64

	DevastationHits int // сколько фруктов уничтожено опустошением

	AbductTarget types.EntityID // захваченный фрукт

	TrapHitsLeft int
	TrapTouched  map[types.EntityID]bool // кого ловушка уже задела
}

// HasUpgrade - применено ли улучшение.
func (t *Tower) HasUpgrade(key string) bool {
	for _, u := range t.Upgrades {
		if u == key {
			return true
		}
	}
	return false
}

// NewTower создаёт башню с боевыми параметрами из определения.
func NewTower(def defs.TowerDefinition) *Tower {
	return &Tower{
		Kind:            def.Kind,
		Range:           def.Range,
		FireRate:        def.FireRate,
		Damage:          def.Damage,
		MaxTargets:      def.MaxTargets,
		MaxHits:         def.MaxHits,
		ProjectileSpeed: def.ProjectileSpeed,
		HitRadius:       def.HitRadius,
		Homing:          def.Homing,
		Effect:          def.Effect,
		Spent:           def.Cost,
		RangeEntries:    make(map[types.EntityID]float64),
		TrapHitsLeft:    def.MaxHits,
		TrapTouched:     make(map[types.EntityID]bool),
	}
}

// ApplyUpgrade добавляет прибавки улучшения к параметрам башни.
// Duration продлевает тот эффект, который у башни есть.
func (t *Tower) ApplyUpgrade(u defs.UpgradeDefinition) {
	t.Damage += u.Damage
	t.Range += u.Range
	if u.FireRate > 0 {
		t.FireRate *= u.FireRate
	}
	t.MaxTargets += u.MaxTargets
	t.MaxHits += u.MaxHits
	if t.Kind.IsTrap() {
		t.TrapHitsLeft += u.MaxHits
	}
	if u.Duration > 0 {
		switch {
		case t.Effect.SlowDuration > 0:
			t.Effect.SlowDuration += u.Duration
		case t.Effect.FreezeDuration > 0:
			t.Effect.FreezeDuration += u.Duration
		case t.Effect.KnockbackDuration > 0:
			t.Effect.KnockbackDuration += u.Duration
		}
	}
	t.Effect.BlastRadius += u.BlastRadius
	if u.Devastation {
		t.Devastation = true
	}
	t.Upgrades = append(t.Upgrades, u.Key)
	t.Spent += u.Cost
}
