// internal/event/types.go
package event

import (
	"tutti-frutti-td/internal/component"
	"tutti-frutti-td/internal/defs"
	"tutti-frutti-td/internal/types"
)

const (
	BloonSpawned  EventType = "BloonSpawned"  // Фрукт появился на тропе
	BloonPopped   EventType = "BloonPopped"   // Фрукт уничтожен, награда начислена
	BloonEscaped  EventType = "BloonEscaped"  // Фрукт дошёл до конца тропы
	SpawnFailed   EventType = "SpawnFailed"   // Неизвестный тип в волне
	WaveStarted   EventType = "WaveStarted"   // Волна запущена
	WaveEnded     EventType = "WaveEnded"     // Волна закончилась
	TowerPlaced   EventType = "TowerPlaced"   // Башня построена
	TowerSold     EventType = "TowerSold"     // Башня продана
	TowerUpgraded EventType = "TowerUpgraded" // Куплено улучшение
	TrapSpent     EventType = "TrapSpent"     // Ловушка израсходована
	PhaseChanged  EventType = "PhaseChanged"
	GameOver      EventType = "GameOver"
)

type BloonData struct {
	ID     types.EntityID
	Kind   defs.BloonKind
	Reward int
	Damage int
}

type SpawnFailedData struct {
	Type string
	Err  error
}

type WaveData struct {
	Number int
}

type TowerData struct {
	ID      types.EntityID
	Kind    defs.TowerKind
	Upgrade string
	Money   int
}

type PhaseData struct {
	From, To component.GamePhase
}

type GameOverData struct {
	Wave int
}
