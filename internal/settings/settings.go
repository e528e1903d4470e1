// Package settings holds the game configuration: fixed values read once at
// startup and the dynamic subset that is reset for every new game.
package settings

import (
	"math"
	"time"
)

// Settings stores all settings for Alien Invasion.
//
// Fields tagged with yaml keys are static for the lifetime of the process.
// The dynamic fields at the bottom are derived from them and change only
// through InitializeDynamicSettings, IncreaseSpeed and ChangeFleetDirection.
type Settings struct {
	// Screen
	ScreenWidth  float64 `yaml:"screen_width"`
	ScreenHeight float64 `yaml:"screen_height"`
	BgColor      Color   `yaml:"bg_color"`

	// Ship
	ShipWidth     float64 `yaml:"ship_width"`
	ShipHeight    float64 `yaml:"ship_height"`
	ShipBaseSpeed float64 `yaml:"ship_speed"` // logical units per tick
	ShipLimit     int     `yaml:"ship_limit"`
	ShipColor     Color   `yaml:"ship_color"`

	// Bullets
	BulletBaseSpeed float64 `yaml:"bullet_speed"`
	BulletWidth     float64 `yaml:"bullet_width"`
	BulletHeight    float64 `yaml:"bullet_height"`
	BulletColor     Color   `yaml:"bullet_color"`
	BulletsAllowed  int     `yaml:"bullets_allowed"`

	// Aliens
	AlienWidth      float64 `yaml:"alien_width"`
	AlienHeight     float64 `yaml:"alien_height"`
	AlienBaseSpeed  float64 `yaml:"alien_speed"`
	AlienBasePoints int     `yaml:"alien_points"`
	FleetDropSpeed  float64 `yaml:"fleet_drop_speed"`
	AlienColor      Color   `yaml:"alien_color"`

	// Difficulty
	SpeedupScale float64 `yaml:"speedup_scale"`
	ScoreScale   float64 `yaml:"score_scale"`

	// Flow
	HitPause    time.Duration `yaml:"hit_pause"`
	StartActive bool          `yaml:"start_active"`

	// Interface
	ButtonColor     Color `yaml:"button_color"`
	ButtonTextColor Color `yaml:"button_text_color"`
	TextColor       Color `yaml:"text_color"`

	// Dynamic settings, reset at the start of every game.
	ShipSpeed      float64 `yaml:"-"`
	BulletSpeed    float64 `yaml:"-"`
	AlienSpeed     float64 `yaml:"-"`
	AlienPoints    int     `yaml:"-"`
	FleetDirection int     `yaml:"-"` // 1 moves right, -1 moves left
}

// Default returns the stock game settings with dynamic values initialized.
func Default() *Settings {
	s := &Settings{
		ScreenWidth:  1200,
		ScreenHeight: 800,
		BgColor:      Color{R: 230, G: 230, B: 230},

		ShipWidth:     60,
		ShipHeight:    48,
		ShipBaseSpeed: 6.0,
		ShipLimit:     3,
		ShipColor:     Color{R: 40, G: 90, B: 200},

		BulletBaseSpeed: 10.0,
		BulletWidth:     3,
		BulletHeight:    15,
		BulletColor:     Color{R: 60, G: 60, B: 60},
		BulletsAllowed:  3,

		AlienWidth:      60,
		AlienHeight:     58,
		AlienBaseSpeed:  2.0,
		AlienBasePoints: 50,
		FleetDropSpeed:  10,
		AlienColor:      Color{R: 40, G: 160, B: 60},

		SpeedupScale: 1.1,
		ScoreScale:   1.5,

		HitPause:    500 * time.Millisecond,
		StartActive: true,

		ButtonColor:     Color{R: 0, G: 255, B: 0},
		ButtonTextColor: Color{R: 255, G: 255, B: 255},
		TextColor:       Color{R: 30, G: 30, B: 30},
	}
	s.InitializeDynamicSettings()
	return s
}

// InitializeDynamicSettings resets the settings that change throughout the game.
func (s *Settings) InitializeDynamicSettings() {
	s.ShipSpeed = s.ShipBaseSpeed
	s.BulletSpeed = s.BulletBaseSpeed
	s.AlienSpeed = s.AlienBaseSpeed
	s.AlienPoints = s.AlienBasePoints
	s.FleetDirection = 1
}

// IncreaseSpeed scales up speeds and alien point values after a fleet is
// cleared. Point values saturate at math.MaxInt.
func (s *Settings) IncreaseSpeed() {
	s.ShipSpeed *= s.SpeedupScale
	s.BulletSpeed *= s.SpeedupScale
	s.AlienSpeed *= s.SpeedupScale
	s.AlienPoints = saturateInt(float64(s.AlienPoints) * s.ScoreScale)
}

// saturateInt truncates f to an int, clamping values outside the int range.
func saturateInt(f float64) int {
	switch {
	case f >= math.MaxInt:
		return math.MaxInt
	case f <= math.MinInt:
		return math.MinInt
	}
	return int(f)
}

// ChangeFleetDirection reverses the horizontal direction of the fleet.
func (s *Settings) ChangeFleetDirection() {
	if s.FleetDirection >= 0 {
		s.FleetDirection = -1
	} else {
		s.FleetDirection = 1
	}
}
