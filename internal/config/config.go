// Package config provides YAML-based tuning for the simulation and the
// difficulty presets applied on top of it.
package config

import (
	"errors"
	"fmt"
)

// ErrInvalidTuning is wrapped by Validate for out-of-range tuning values.
var ErrInvalidTuning = errors.New("invalid tuning")

// Tuning contains every physics and sizing constant the simulation reads.
type Tuning struct {
	Physics Physics `yaml:"physics"`
	Player  Player  `yaml:"player"`
	Items   Items   `yaml:"items"`
	Display Display `yaml:"display"`
	Hazards Hazards `yaml:"hazards"`
}

// Physics defines per-frame movement parameters.
type Physics struct {
	MoveSpeed    float64 `yaml:"move_speed"`
	JumpImpulse  float64 `yaml:"jump_impulse"` // negative = up
	Gravity      float64 `yaml:"gravity"`
	MaxFallSpeed float64 `yaml:"max_fall_speed"`
	ClimbSpeed   float64 `yaml:"climb_speed"`
	SlideSpeed   float64 `yaml:"slide_speed"` // downward drift while climbing without input
}

// Player defines the player hitbox.
type Player struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// Items defines sizes for pickups and spawned geometry.
type Items struct {
	SeedSize    float64 `yaml:"seed_size"`
	TrunkWidth  float64 `yaml:"trunk_width"`
	TrunkHeight float64 `yaml:"trunk_height"`
	ChopReach   float64 `yaml:"chop_reach"` // horizontal inflation of a trunk for chopping
	AxeWidth    float64 `yaml:"axe_width"`
	AxeHeight   float64 `yaml:"axe_height"`
	StarSize    float64 `yaml:"star_size"`
}

// Display defines the camera viewport in world units.
type Display struct {
	ViewportWidth  float64 `yaml:"viewport_width"`
	ViewportHeight float64 `yaml:"viewport_height"`
}

// Hazards scales laser phase durations from the level file.
type Hazards struct {
	OnScale      float64 `yaml:"on_scale"`
	WarningScale float64 `yaml:"warning_scale"`
}

// Validate checks the tuning for values the simulation cannot run with.
func (t Tuning) Validate() error {
	checks := []struct {
		name string
		ok   bool
	}{
		{"physics.move_speed", t.Physics.MoveSpeed >= 0},
		{"physics.gravity", t.Physics.Gravity >= 0},
		{"physics.max_fall_speed", t.Physics.MaxFallSpeed > 0},
		{"physics.climb_speed", t.Physics.ClimbSpeed >= 0},
		{"player.width", t.Player.Width > 0},
		{"player.height", t.Player.Height > 0},
		{"items.seed_size", t.Items.SeedSize > 0},
		{"items.trunk_width", t.Items.TrunkWidth > 0},
		{"items.trunk_height", t.Items.TrunkHeight > 0},
		{"items.chop_reach", t.Items.ChopReach >= 0},
		{"display.viewport_width", t.Display.ViewportWidth > 0},
		{"display.viewport_height", t.Display.ViewportHeight > 0},
		{"hazards.on_scale", t.Hazards.OnScale > 0},
		{"hazards.warning_scale", t.Hazards.WarningScale >= 0},
	}
	for _, c := range checks {
		if !c.ok {
			return fmt.Errorf("config: %s out of range: %w", c.name, ErrInvalidTuning)
		}
	}
	return nil
}
