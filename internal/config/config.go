// internal/config/config.go
package config

import "image/color"

const (
	ScreenWidth  = 1200
	ScreenHeight = 900
	MaxDeltaTime = 0.06

	// Симуляция
	EscapeProgress           = 0.93  // прогресс, после которого фрукт считается прорвавшимся
	BoundsMargin             = 40.0  // допуск за краем поля, пикселей
	DevastationDamage        = 99999 // гарантированное уничтожение не-боссов
	OverkillThreshold        = 9999
	KnockbackSpeedMultiplier = 3.0
	ChildSpacing             = 12.0 // расстояние между дочерними фруктами вдоль пути
	BossFreezeFactor         = 0.5  // боссы замораживаются вдвое короче
	AbductionCaptureRadius   = 8.0
	ProjectileLifetime       = 3.0 // секунд до самоуничтожения снаряда
	ProjectileRadius         = 4.0
	DamageFlashDuration      = 0.12
	ExplosionDuration        = 0.25

	// Экономика
	DefaultStartMoney   = 650
	DefaultStartLives   = 100
	DefaultDisplayScale = 1.0
	DefaultTickRate     = 60
	SellRefundRatio     = 0.7
	WaveBonusBase       = 100

	// Бесконечный режим: после последней волны повторяем последние пять,
	// каждый круг прибавляет 25% здоровья.
	EndlessRepeatWindow = 5
	EndlessHealthGrowth = 0.25

	// Размещение
	TowerFootprint    = 24.0 // минимальное расстояние между башнями
	PathClearance     = 22.0 // башни не ставятся ближе к пути
	TrapPathTolerance = 15.0 // ловушки ставятся не дальше от пути

	// Отрисовка
	HUDOffsetX     = 12
	HUDOffsetY     = 18
	HUDLineHeight  = 16
	PathWidth      = 28.0
	RangeRingWidth = 1.0
)

var (
	BackgroundColor = color.RGBA{34, 52, 30, 255}
	PathColor       = color.RGBA{170, 140, 90, 255}
	NoBuildColor    = color.RGBA{60, 90, 150, 160}
	TextLightColor  = color.RGBA{240, 240, 240, 255}
	RangeColor      = color.RGBA{255, 255, 255, 70}
	FrozenTint      = color.RGBA{170, 230, 255, 255}
	SlowTint        = color.RGBA{230, 200, 120, 255}
	ProjectileColor = color.RGBA{250, 250, 210, 255}
	ExplosionColor  = color.RGBA{255, 170, 40, 120}
	BuyingColor     = color.RGBA{70, 130, 180, 220}
	SpawningColor   = color.RGBA{220, 60, 60, 220}
	StrokeColor     = color.RGBA{20, 20, 20, 255}
	StrokeWidth     = 2.0
)
