// internal/defs/loader.go
package defs

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
)

// Имена файлов в каталоге данных.
const (
	BloonsFile = "bloons.json"
	TowersFile = "tower.json"
	MapsFile   = "maps.json"
	WavesFile  = "waves.json"
)

// Размер поля для карт, где он не указан.
const (
	DefaultMapWidth  = 1200
	DefaultMapHeight = 900
)

// ErrInvalidDefinition оборачивает любую ошибку проверки файлов данных.
var ErrInvalidDefinition = errors.New("invalid definition")

// Library - реестр всех статических данных игры.
type Library struct {
	Bloons map[BloonKind]BloonDefinition
	Towers map[TowerKind]TowerDefinition
	Maps   []MapDefinition
	Waves  []WaveDefinition
}

// LoadLibrary читает четыре файла данных из dir и проверяет их.
func LoadLibrary(dir string) (*Library, error) {
	var (
		bloons []BloonDefinition
		towers []TowerDefinition
		maps   []MapDefinition
		waves  []string
	)
	if err := readJSON(filepath.Join(dir, BloonsFile), &bloons); err != nil {
		return nil, err
	}
	if err := readJSON(filepath.Join(dir, TowersFile), &towers); err != nil {
		return nil, err
	}
	if err := readJSON(filepath.Join(dir, MapsFile), &maps); err != nil {
		return nil, err
	}
	if err := readJSON(filepath.Join(dir, WavesFile), &waves); err != nil {
		return nil, err
	}

	lib, err := NewLibrary(bloons, towers, maps, waves)
	if err != nil {
		return nil, err
	}
	log.Printf("[defs] Loaded %d bloons, %d towers, %d maps, %d waves from %s",
		len(lib.Bloons), len(lib.Towers), len(lib.Maps), len(lib.Waves), dir)
	return lib, nil
}

func readJSON(path string, out interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to unmarshal %s: %w", path, err)
	}
	return nil
}

// NewLibrary собирает и проверяет библиотеку из уже разобранных данных.
func NewLibrary(bloons []BloonDefinition, towers []TowerDefinition, maps []MapDefinition, waves []string) (*Library, error) {
	lib := &Library{
		Bloons: make(map[BloonKind]BloonDefinition, len(bloons)),
		Towers: make(map[TowerKind]TowerDefinition, len(towers)),
	}

	for _, b := range bloons {
		kind, err := ParseBloonKind(string(b.Kind))
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidDefinition, err)
		}
		b.Kind = kind
		if b.Health <= 0 || b.Speed <= 0 || b.Damage <= 0 || b.Reward < 0 {
			return nil, fmt.Errorf("%w: bloon %q has non-positive stats", ErrInvalidDefinition, kind)
		}
		if _, dup := lib.Bloons[kind]; dup {
			return nil, fmt.Errorf("%w: duplicate bloon %q", ErrInvalidDefinition, kind)
		}
		lib.Bloons[kind] = b
	}
	for kind, b := range lib.Bloons {
		for _, child := range b.NextTypes {
			if _, ok := lib.Bloons[child]; !ok {
				return nil, fmt.Errorf("%w: bloon %q spawns undefined child %q", ErrInvalidDefinition, kind, child)
			}
		}
	}

	for _, t := range towers {
		kind, err := ParseTowerKind(string(t.Kind))
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidDefinition, err)
		}
		t.Kind = kind
		if err := validateTower(&t); err != nil {
			return nil, err
		}
		if _, dup := lib.Towers[kind]; dup {
			return nil, fmt.Errorf("%w: duplicate tower %q", ErrInvalidDefinition, kind)
		}
		lib.Towers[kind] = t
	}

	for _, m := range maps {
		if m.Name == "" {
			return nil, fmt.Errorf("%w: map without a name", ErrInvalidDefinition)
		}
		if len(m.ControlPoints) < 2 {
			return nil, fmt.Errorf("%w: map %q needs at least two control points", ErrInvalidDefinition, m.Name)
		}
		if m.Width <= 0 {
			m.Width = DefaultMapWidth
		}
		if m.Height <= 0 {
			m.Height = DefaultMapHeight
		}
		lib.Maps = append(lib.Maps, m)
	}

	for i, src := range waves {
		instructions, err := ParseWave(src)
		if err != nil {
			return nil, fmt.Errorf("%w: wave %d: %w", ErrInvalidDefinition, i+1, err)
		}
		if err := lib.checkWaveTypes(instructions); err != nil {
			return nil, fmt.Errorf("%w: wave %d: %w", ErrInvalidDefinition, i+1, err)
		}
		wave := WaveDefinition{Source: src, Instructions: instructions}
		if wave.SpawnCount() == 0 {
			return nil, fmt.Errorf("%w: wave %d spawns nothing", ErrInvalidDefinition, i+1)
		}
		lib.Waves = append(lib.Waves, wave)
	}

	return lib, nil
}

func validateTower(t *TowerDefinition) error {
	if t.Cost < 0 || t.FireRate <= 0 || t.Range <= 0 {
		return fmt.Errorf("%w: tower %q has non-positive stats", ErrInvalidDefinition, t.Kind)
	}
	if t.Kind.AttackModel() == AttackProjectile && t.ProjectileSpeed <= 0 {
		return fmt.Errorf("%w: tower %q needs a projectile speed", ErrInvalidDefinition, t.Kind)
	}
	seen := make(map[string]bool, len(t.Upgrades))
	for _, u := range t.Upgrades {
		if u.Key == "" || seen[u.Key] {
			return fmt.Errorf("%w: tower %q has an empty or duplicate upgrade key %q", ErrInvalidDefinition, t.Kind, u.Key)
		}
		seen[u.Key] = true
	}
	for _, u := range t.Upgrades {
		if u.Requires != "" && !seen[u.Requires] {
			return fmt.Errorf("%w: upgrade %q of %q requires unknown %q", ErrInvalidDefinition, u.Key, t.Kind, u.Requires)
		}
	}
	return nil
}

func (l *Library) checkWaveTypes(instructions []WaveInstruction) error {
	for _, ins := range instructions {
		switch ins.Kind {
		case InstructionSpawn:
			if _, err := l.Bloon(ins.Type); err != nil {
				return err
			}
		case InstructionParallel:
			if err := l.checkWaveTypes(ins.Entries); err != nil {
				return err
			}
		}
	}
	return nil
}

// Bloon ищет определение фрукта по ключу типа.
func (l *Library) Bloon(key string) (BloonDefinition, error) {
	kind, err := ParseBloonKind(key)
	if err != nil {
		return BloonDefinition{}, err
	}
	def, ok := l.Bloons[kind]
	if !ok {
		return BloonDefinition{}, fmt.Errorf("%w: %q has no definition", ErrUnknownBloon, key)
	}
	return def, nil
}

// Tower ищет определение башни по виду.
func (l *Library) Tower(kind TowerKind) (TowerDefinition, error) {
	def, ok := l.Towers[kind]
	if !ok {
		return TowerDefinition{}, fmt.Errorf("%w: %q has no definition", ErrUnknownTower, kind)
	}
	return def, nil
}

// Map ищет карту по имени. Пустое имя - первая карта.
func (l *Library) Map(name string) (*MapDefinition, error) {
	if len(l.Maps) == 0 {
		return nil, fmt.Errorf("%w: no maps loaded", ErrInvalidDefinition)
	}
	if name == "" {
		return &l.Maps[0], nil
	}
	for i := range l.Maps {
		if l.Maps[i].Name == name {
			return &l.Maps[i], nil
		}
	}
	return nil, fmt.Errorf("map %q not found", name)
}
