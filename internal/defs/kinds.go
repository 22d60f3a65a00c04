// internal/defs/kinds.go
package defs

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrUnknownBloon - тип фрукта не найден в реестре.
	ErrUnknownBloon = errors.New("unknown bloon type")
	// ErrUnknownTower - вид башни не найден в реестре.
	ErrUnknownTower = errors.New("unknown tower type")
)

// BloonKind - тип фрукта.
type BloonKind string

const (
	BloonCherry     BloonKind = "cherry"
	BloonBanana     BloonKind = "banana"
	BloonApple      BloonKind = "apple"
	BloonGrape      BloonKind = "grape"
	BloonOrange     BloonKind = "orange"
	BloonPineapple  BloonKind = "pineapple"
	BloonWatermelon BloonKind = "watermelon"
	BloonCoconut    BloonKind = "coconut"
	BloonDurian     BloonKind = "durian"
)

var bloonKinds = map[BloonKind]struct{}{
	BloonCherry:     {},
	BloonBanana:     {},
	BloonApple:      {},
	BloonGrape:      {},
	BloonOrange:     {},
	BloonPineapple:  {},
	BloonWatermelon: {},
	BloonCoconut:    {},
	BloonDurian:     {},
}

// ParseBloonKind нормализует s и сверяет с известными типами.
func ParseBloonKind(s string) (BloonKind, error) {
	k := BloonKind(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := bloonKinds[k]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownBloon, s)
	}
	return k, nil
}

// TowerKind - вид башни.
type TowerKind string

const (
	TowerDart    TowerKind = "dart"
	TowerGlue    TowerKind = "glue"
	TowerCannon  TowerKind = "cannon"
	TowerJuicer  TowerKind = "juicer"
	TowerFreezer TowerKind = "freezer"
	TowerFan     TowerKind = "fan"
	TowerUFO     TowerKind = "ufo"
	TowerSpikes  TowerKind = "spikes"
)

// AttackModel - способ атаки вида башни.
type AttackModel string

const (
	AttackProjectile AttackModel = "projectile"
	AttackAOE        AttackModel = "aoe"
	AttackFreeze     AttackModel = "freeze"
	AttackKnockback  AttackModel = "knockback"
	AttackAbduct     AttackModel = "abduct"
	AttackTrap       AttackModel = "trap"
)

// towerAttackModels связывает каждый вид башни со способом атаки.
var towerAttackModels = map[TowerKind]AttackModel{
	TowerDart:    AttackProjectile,
	TowerGlue:    AttackProjectile,
	TowerCannon:  AttackProjectile,
	TowerJuicer:  AttackAOE,
	TowerFreezer: AttackFreeze,
	TowerFan:     AttackKnockback,
	TowerUFO:     AttackAbduct,
	TowerSpikes:  AttackTrap,
}

// ParseTowerKind нормализует s и сверяет с известными видами.
func ParseTowerKind(s string) (TowerKind, error) {
	k := TowerKind(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := towerAttackModels[k]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownTower, s)
	}
	return k, nil
}

// AttackModel возвращает способ атаки вида.
func (k TowerKind) AttackModel() AttackModel {
	return towerAttackModels[k]
}

// IsTrap - ставится ли башня на путь, а не рядом.
func (k TowerKind) IsTrap() bool {
	return towerAttackModels[k] == AttackTrap
}

// TowerKinds возвращает все виды башен в постоянном порядке.
func TowerKinds() []TowerKind {
	return []TowerKind{TowerDart, TowerGlue, TowerCannon, TowerJuicer, TowerFreezer, TowerFan, TowerUFO, TowerSpikes}
}
