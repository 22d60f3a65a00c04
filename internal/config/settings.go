// internal/config/settings.go
package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ErrInvalidSettings - файл настроек не прошёл проверку.
var ErrInvalidSettings = errors.New("invalid settings")

// Settings - настройки запуска, читаемые из config/game.yaml.
type Settings struct {
	DataDir      string           `yaml:"dataDir"`
	Map          string           `yaml:"map"`
	StartMoney   int              `yaml:"startMoney"`
	StartLives   int              `yaml:"startLives"`
	DisplayScale float64          `yaml:"displayScale"`
	TickRate     int              `yaml:"tickRate"`
	Server       ServerSettings   `yaml:"server"`
	Progress     ProgressSettings `yaml:"progress"`
}

// ServerSettings - параметры HTTP-сервера.
type ServerSettings struct {
	Addr    string `yaml:"addr"`
	WebRoot string `yaml:"webRoot"`
}

// ProgressSettings - параметры сохранения прогресса.
type ProgressSettings struct {
	Enabled bool   `yaml:"enabled"`
	AppName string `yaml:"appName"`
}

// DefaultSettings возвращает настройки по умолчанию.
func DefaultSettings() *Settings {
	s := &Settings{}
	applyDefaults(s)
	return s
}

// LoadSettings читает YAML-файл настроек, подставляет значения по умолчанию
// и проверяет результат.
func LoadSettings(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read settings file %s: %w", path, err)
	}

	var s Settings
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to parse settings YAML from %s: %w", path, err)
	}

	applyDefaults(&s)
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("settings in %s: %w", path, err)
	}
	return &s, nil
}

func applyDefaults(s *Settings) {
	if s.DataDir == "" {
		s.DataDir = "assets/data"
	}
	if s.StartMoney == 0 {
		s.StartMoney = DefaultStartMoney
	}
	if s.StartLives == 0 {
		s.StartLives = DefaultStartLives
	}
	if s.DisplayScale == 0 {
		s.DisplayScale = DefaultDisplayScale
	}
	if s.TickRate == 0 {
		s.TickRate = DefaultTickRate
	}
	if s.Server.Addr == "" {
		s.Server.Addr = ":8080"
	}
	if s.Server.WebRoot == "" {
		s.Server.WebRoot = "web"
	}
	if s.Progress.AppName == "" {
		s.Progress.AppName = "tutti_frutti_td"
	}
}

// Validate проверяет значения, которые нельзя исправить подстановкой.
func (s *Settings) Validate() error {
	if s.StartMoney < 0 {
		return fmt.Errorf("%w: startMoney must not be negative", ErrInvalidSettings)
	}
	if s.StartLives < 0 {
		return fmt.Errorf("%w: startLives must not be negative", ErrInvalidSettings)
	}
	if s.DisplayScale < 0 {
		return fmt.Errorf("%w: displayScale must be positive", ErrInvalidSettings)
	}
	if s.TickRate < 0 {
		return fmt.Errorf("%w: tickRate must be positive", ErrInvalidSettings)
	}
	return nil
}

// TickDuration - длительность фиксированного шага симуляции в секундах.
func (s *Settings) TickDuration() float64 {
	return 1.0 / float64(s.TickRate)
}
