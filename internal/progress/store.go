// internal/progress/store.go
package progress

import (
	"fmt"
	"log"
	"sort"

	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"

	"tutti-frutti-td/internal/event"
)

const (
	recordsObject   = "progress"
	recordsProperty = "records"
)

// MapRecord - лучший результат на карте.
type MapRecord struct {
	BestWave    int `yaml:"bestWave"`
	GamesPlayed int `yaml:"gamesPlayed"`
	Pops        int `yaml:"pops"`
}

// Records - все сохранённые результаты по именам карт.
type Records struct {
	Maps map[string]MapRecord `yaml:"maps"`
}

// Store хранит рекорды между запусками. Без gdata-менеджера работает
// только в памяти.
type Store struct {
	manager *gdata.Manager // может быть nil
	records Records
}

// Open открывает хранилище приложения appName. Если платформенное
// хранилище недоступно, возвращается хранилище в памяти.
func Open(appName string) *Store {
	manager, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		log.Printf("[Progress] Warning: storage unavailable: %v (records kept in memory)", err)
		manager = nil
	}
	s := NewStore(manager)
	if err := s.Load(); err != nil {
		log.Printf("[Progress] Warning: %v (starting fresh)", err)
	}
	return s
}

// NewStore создаёт хранилище поверх manager. manager может быть nil.
func NewStore(manager *gdata.Manager) *Store {
	return &Store{manager: manager, records: Records{Maps: map[string]MapRecord{}}}
}

// Load читает рекорды. Отсутствие сохранения не ошибка.
func (s *Store) Load() error {
	if s.manager == nil || !s.manager.ObjectPropExists(recordsObject, recordsProperty) {
		return nil
	}
	data, err := s.manager.LoadObjectProp(recordsObject, recordsProperty)
	if err != nil {
		return fmt.Errorf("failed to load records: %w", err)
	}
	var loaded Records
	if err := yaml.Unmarshal(data, &loaded); err != nil {
		return fmt.Errorf("failed to unmarshal records: %w", err)
	}
	if loaded.Maps == nil {
		loaded.Maps = map[string]MapRecord{}
	}
	s.records = loaded
	return nil
}

// Save записывает рекорды. Без менеджера ничего не делает.
func (s *Store) Save() error {
	if s.manager == nil {
		return nil
	}
	data, err := yaml.Marshal(s.records)
	if err != nil {
		return fmt.Errorf("failed to marshal records: %w", err)
	}
	if err := s.manager.SaveObjectProp(recordsObject, recordsProperty, data); err != nil {
		return fmt.Errorf("failed to save records: %w", err)
	}
	return nil
}

// Record возвращает результат карты.
func (s *Store) Record(mapName string) MapRecord {
	return s.records.Maps[mapName]
}

// MapNames - карты с сохранёнными результатами, по алфавиту.
func (s *Store) MapNames() []string {
	names := make([]string, 0, len(s.records.Maps))
	for name := range s.records.Maps {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// RecordWave отмечает пройденную волну. Возвращает true при новом рекорде.
func (s *Store) RecordWave(mapName string, wave int) bool {
	r := s.records.Maps[mapName]
	if wave <= r.BestWave {
		return false
	}
	r.BestWave = wave
	s.records.Maps[mapName] = r
	return true
}

// Tracker возвращает подписчика, который ведёт рекорды карты mapName
// и сохраняет их по окончании игры.
func (s *Store) Tracker(mapName string) event.Listener {
	return event.ListenerFunc(func(e event.Event) {
		r := s.records.Maps[mapName]
		switch e.Type {
		case event.BloonPopped:
			r.Pops++
			s.records.Maps[mapName] = r
		case event.WaveEnded:
			data, _ := e.Data.(event.WaveData)
			if s.RecordWave(mapName, data.Number) {
				log.Printf("[Progress] New best on %s: wave %d", mapName, data.Number)
			}
		case event.GameOver:
			r.GamesPlayed++
			s.records.Maps[mapName] = r
			if err := s.Save(); err != nil {
				log.Printf("[Progress] Error: %v", err)
			}
		}
	})
}
