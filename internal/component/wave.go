// internal/component/wave.go
package component

// Wave - состояние текущей волны.
type Wave struct {
	Number           int
	TotalScheduled   int
	Spawned          int
	Failed           int
	SpawningComplete bool
	Ended            bool // событие WaveEnded уже отправлено
	HealthMultiplier float64
}

// Finished - волна закончилась: всё заспавнено, врагов не осталось,
// и в волне вообще что-то было.
func (w *Wave) Finished(remaining int) bool {
	return w.SpawningComplete && remaining == 0 && w.TotalScheduled > 0
}
