// internal/defs/towers.go
package defs

// EffectParams - параметры побочного эффекта башни. Лишние поля нулевые.
type EffectParams struct {
	SlowFactor        float64 `json:"slowFactor,omitempty"`   // множитель скорости под замедлением, например 0.5
	SlowDuration      float64 `json:"slowDuration,omitempty"` // секунд
	FreezeDuration    float64 `json:"freezeDuration,omitempty"`
	KnockbackDuration float64 `json:"knockbackDuration,omitempty"`
	BlastRadius       float64 `json:"blastRadius,omitempty"` // пикселей
	Fuse              float64 `json:"fuse,omitempty"`        // секунд от попадания до взрыва
	PullSpeed         float64 `json:"pullSpeed,omitempty"`   // пикселей в секунду при захвате
}

// UpgradeDefinition - покупаемое улучшение башни. Числовые поля прибавляются
// к характеристикам, FireRate при ненулевом значении - множитель.
type UpgradeDefinition struct {
	Key         string  `json:"key"`
	Name        string  `json:"name"`
	Cost        int     `json:"cost"`
	Requires    string  `json:"requires,omitempty"`
	Damage      int     `json:"damage,omitempty"`
	Range       float64 `json:"range,omitempty"`
	FireRate    float64 `json:"fireRate,omitempty"`
	MaxTargets  int     `json:"maxBloonsPerAttack,omitempty"`
	MaxHits     int     `json:"maxHits,omitempty"`
	Duration    float64 `json:"duration,omitempty"`
	BlastRadius float64 `json:"blastRadius,omitempty"`
	Devastation bool    `json:"devastation,omitempty"`
}

// TowerDefinition - статические данные вида башни.
type TowerDefinition struct {
	Kind            TowerKind           `json:"type"`
	Name            string              `json:"name"`
	Cost            int                 `json:"cost"`
	Range           float64             `json:"range"`    // пикселей, до масштаба отображения
	FireRate        float64             `json:"fireRate"` // атак в секунду
	Damage          int                 `json:"damage"`
	MaxTargets      int                 `json:"maxBloonsPerAttack,omitempty"`
	MaxHits         int                 `json:"maxHits,omitempty"`
	ProjectileSpeed float64             `json:"projectileSpeed,omitempty"`
	HitRadius       float64             `json:"hitRadius,omitempty"`
	Homing          bool                `json:"homing,omitempty"`
	Effect          EffectParams        `json:"effect"`
	Upgrades        []UpgradeDefinition `json:"upgrades,omitempty"`
	Visuals         Visuals             `json:"visuals"`
}

// Upgrade ищет улучшение по ключу.
func (d *TowerDefinition) Upgrade(key string) (UpgradeDefinition, bool) {
	for _, u := range d.Upgrades {
		if u.Key == key {
			return u, true
		}
	}
	return UpgradeDefinition{}, false
}
