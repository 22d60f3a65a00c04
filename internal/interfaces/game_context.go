// internal/interfaces/game_context.go
package interfaces

// GameContext - то, что системам нужно от игры. Интерфейс разрывает
// цикл зависимостей между system и app.
type GameContext interface {
	CreditReward(amount int)
	LoseLives(n int)
	DisplayScale() float64
}
