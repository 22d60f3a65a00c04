// internal/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"tutti-frutti-td/internal/event"
)

const namespace = "tutti_frutti"

// Collector переводит события симуляции в метрики Prometheus.
// Подписывается на диспетчер через SubscribeAll.
type Collector struct {
	events       *prometheus.CounterVec
	popped       *prometheus.CounterVec
	escaped      *prometheus.CounterVec
	livesLost    prometheus.Counter
	rewards      prometheus.Counter
	wavesEnded   prometheus.Counter
	towersPlaced *prometheus.CounterVec
	upgrades     *prometheus.CounterVec
	spawnErrors  prometheus.Counter

	money   prometheus.Gauge
	lives   prometheus.Gauge
	wave    prometheus.Gauge
	enemies prometheus.Gauge
}

// NewCollector создаёт метрики и регистрирует их в reg.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		events: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "events_total",
			Help:      "Событий симуляции по типам.",
		}, []string{"type"}),
		popped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "bloons_popped_total",
			Help:      "Уничтоженных фруктов по видам.",
		}, []string{"kind"}),
		escaped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "bloons_escaped_total",
			Help:      "Прорвавшихся фруктов по видам.",
		}, []string{"kind"}),
		livesLost: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "lives_lost_total",
			Help:      "Потерянных жизней.",
		}),
		rewards: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rewards_total",
			Help:      "Денег начислено за уничтоженные фрукты.",
		}),
		wavesEnded: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "waves_completed_total",
			Help:      "Пройденных волн.",
		}),
		towersPlaced: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "towers_placed_total",
			Help:      "Построенных башен по видам.",
		}, []string{"kind"}),
		upgrades: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "tower_upgrades_total",
			Help:      "Купленных улучшений.",
		}, []string{"kind", "upgrade"}),
		spawnErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "spawn_failures_total",
			Help:      "Инструкций волны с неизвестным типом фрукта.",
		}),
		money: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "money",
			Help:      "Текущие деньги игрока.",
		}),
		lives: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "lives",
			Help:      "Оставшиеся жизни.",
		}),
		wave: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "wave",
			Help:      "Номер последней запущенной волны.",
		}),
		enemies: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "enemies_on_field",
			Help:      "Фруктов на поле.",
		}),
	}
	reg.MustRegister(
		c.events, c.popped, c.escaped, c.livesLost, c.rewards, c.wavesEnded,
		c.towersPlaced, c.upgrades, c.spawnErrors,
		c.money, c.lives, c.wave, c.enemies,
	)
	return c
}

func (c *Collector) OnEvent(e event.Event) {
	c.events.WithLabelValues(string(e.Type)).Inc()

	switch data := e.Data.(type) {
	case event.BloonData:
		switch e.Type {
		case event.BloonPopped:
			c.popped.WithLabelValues(string(data.Kind)).Inc()
			c.rewards.Add(float64(data.Reward))
		case event.BloonEscaped:
			c.escaped.WithLabelValues(string(data.Kind)).Inc()
			c.livesLost.Add(float64(data.Damage))
		}
	case event.TowerData:
		switch e.Type {
		case event.TowerPlaced:
			c.towersPlaced.WithLabelValues(string(data.Kind)).Inc()
		case event.TowerUpgraded:
			c.upgrades.WithLabelValues(string(data.Kind), data.Upgrade).Inc()
		}
	case event.WaveData:
		if e.Type == event.WaveEnded {
			c.wavesEnded.Inc()
		}
	case event.SpawnFailedData:
		c.spawnErrors.Inc()
	}
}

// SetState обновляет gauges по текущему состоянию игры.
func (c *Collector) SetState(money, lives, wave, enemies int) {
	c.money.Set(float64(money))
	c.lives.Set(float64(lives))
	c.wave.Set(float64(wave))
	c.enemies.Set(float64(enemies))
}
