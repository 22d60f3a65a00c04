// internal/app/snapshot.go
package app

// Snapshot - состояние симуляции в виде простых структур для отрисовки,
// отладочного эндпоинта и пакетного симулятора.
type Snapshot struct {
	SessionID        string           `json:"sessionId"`
	Map              string           `json:"map"`
	Time             float64          `json:"time"`
	Phase            string           `json:"phase"`
	Wave             int              `json:"wave"`
	SpawningComplete bool             `json:"spawningComplete"`
	PendingTimers    int              `json:"pendingTimers"`
	Money            int              `json:"money"`
	Lives            int              `json:"lives"`
	GameOver         bool             `json:"gameOver"`
	Enemies          []EnemyView      `json:"enemies"`
	Towers           []TowerView      `json:"towers"`
	Projectiles      []ProjectileView `json:"projectiles"`
}

type EnemyView struct {
	ID        uint64  `json:"id"`
	Type      string  `json:"type"`
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	Health    int     `json:"health"`
	MaxHealth int     `json:"maxHealth"`
	Progress  float64 `json:"progress"`
	Boss      bool    `json:"boss,omitempty"`
	Frozen    bool    `json:"frozen,omitempty"`
	Slowed    bool    `json:"slowed,omitempty"`
	Abducted  bool    `json:"abducted,omitempty"`
	Dying     bool    `json:"dying,omitempty"`
}

type TowerView struct {
	ID              uint64   `json:"id"`
	Type            string   `json:"type"`
	X               float64  `json:"x"`
	Y               float64  `json:"y"`
	Range           float64  `json:"range"`
	Priority        string   `json:"priority"`
	Upgrades        []string `json:"upgrades,omitempty"`
	DevastationHits int      `json:"devastationHits,omitempty"`
	TrapHitsLeft    int      `json:"trapHitsLeft,omitempty"`
}

type ProjectileView struct {
	ID        uint64  `json:"id"`
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	Direction float64 `json:"direction"`
}

// Snapshot собирает текущее состояние. Сущности идут по возрастанию ID.
func (g *Game) Snapshot() Snapshot {
	s := Snapshot{
		SessionID:     g.SessionID,
		Map:           g.Map.Name,
		Time:          g.Clock.Now(),
		Phase:         g.ECS.GameState.Phase.String(),
		Wave:          g.WaveNumber,
		PendingTimers: g.Clock.Pending(),
		Money:         g.Money,
		Lives:         g.Lives,
		GameOver:      g.ECS.GameState.GameOver,
		Enemies:       []EnemyView{},
		Towers:        []TowerView{},
		Projectiles:   []ProjectileView{},
	}
	if g.ECS.Wave != nil {
		s.SpawningComplete = g.ECS.Wave.SpawningComplete
	}

	for _, id := range g.ECS.BloonIDs() {
		b := g.ECS.Bloons[id]
		if !b.IsActive && !b.Dying {
			continue
		}
		pos := g.ECS.Positions[id]
		_, frozen := g.ECS.FreezeEffects[id]
		_, slowed := g.ECS.SlowEffects[id]
		view := EnemyView{
			ID:        uint64(id),
			Type:      string(b.Kind),
			X:         pos.X,
			Y:         pos.Y,
			Health:    b.Health,
			MaxHealth: b.MaxHealth,
			Boss:      b.Boss,
			Frozen:    frozen,
			Slowed:    slowed,
			Abducted:  b.Abducted,
			Dying:     b.Dying,
		}
		if f, ok := g.ECS.PathFollowers[id]; ok {
			view.Progress = f.Progress
		}
		s.Enemies = append(s.Enemies, view)
	}

	for _, id := range g.ECS.TowerIDs() {
		t := g.ECS.Towers[id]
		pos := g.ECS.Positions[id]
		view := TowerView{
			ID:              uint64(id),
			Type:            string(t.Kind),
			X:               pos.X,
			Y:               pos.Y,
			Range:           t.Range * g.DisplayScale(),
			Priority:        t.Priority.String(),
			Upgrades:        append([]string(nil), t.Upgrades...),
			DevastationHits: t.DevastationHits,
		}
		if t.Kind.IsTrap() {
			view.TrapHitsLeft = t.TrapHitsLeft
		}
		s.Towers = append(s.Towers, view)
	}

	for _, id := range g.ECS.ProjectileIDs() {
		p := g.ECS.Projectiles[id]
		if !p.IsActive {
			continue
		}
		pos := g.ECS.Positions[id]
		s.Projectiles = append(s.Projectiles, ProjectileView{ID: uint64(id), X: pos.X, Y: pos.Y, Direction: p.Direction})
	}
	return s
}
