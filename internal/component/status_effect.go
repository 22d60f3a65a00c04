// internal/component/status_effect.go
package component

// SlowEffect - сущность замедлена.
type SlowEffect struct {
	Timer      float64 // Сколько времени эффекту осталось
	SlowFactor float64 // Множитель скорости (0.5 - замедление вдвое)
}

// FreezeEffect останавливает сущность, пока не истечёт таймер.
type FreezeEffect struct {
	Timer float64
}

// KnockbackEffect отбрасывает сущность назад по пути.
type KnockbackEffect struct {
	Timer float64
}
