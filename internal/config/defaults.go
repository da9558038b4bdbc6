package config

import (
	_ "embed"
)

//go:embed defaults/clockedin.yaml
var defaultTuningYAML []byte

// DefaultTuning returns the hardcoded tuning used when no YAML is available.
// The values are tuned for 60 FPS.
func DefaultTuning() Tuning {
	return Tuning{
		Physics: Physics{
			MoveSpeed:    4,
			JumpImpulse:  -10,
			Gravity:      0.5,
			MaxFallSpeed: 10,
			ClimbSpeed:   3,
			SlideSpeed:   1.5,
		},
		Player: Player{
			Width:  32,
			Height: 48,
		},
		Items: Items{
			SeedSize:    32,
			TrunkWidth:  40,
			TrunkHeight: 250,
			ChopReach:   50,
			AxeWidth:    40,
			AxeHeight:   50,
			StarSize:    40,
		},
		Display: Display{
			ViewportWidth:  800,
			ViewportHeight: 600,
		},
		Hazards: Hazards{
			OnScale:      1.0,
			WarningScale: 1.0,
		},
	}
}

// DefaultYAML returns the embedded default tuning file.
func DefaultYAML() []byte {
	return defaultTuningYAML
}
