package config

import "fmt"

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed" // keep the hazard scales from the tuning file
)

// ParsePreset validates a preset name. An empty name maps to DifficultyFixed.
func ParsePreset(name string) (DifficultyPreset, error) {
	switch DifficultyPreset(name) {
	case "":
		return DifficultyFixed, nil
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return DifficultyPreset(name), nil
	default:
		return "", fmt.Errorf("config: unknown difficulty %q (want easy, normal, hard or fixed)", name)
	}
}

// ApplyPreset modifies the hazard scales based on a difficulty preset.
// Easy lasers stay lethal for less time and warn for longer; hard lasers
// do the opposite.
func ApplyPreset(t *Tuning, preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		t.Hazards.OnScale = 0.6
		t.Hazards.WarningScale = 1.5
	case DifficultyNormal:
		t.Hazards.OnScale = 1.0
		t.Hazards.WarningScale = 1.0
	case DifficultyHard:
		t.Hazards.OnScale = 1.3
		t.Hazards.WarningScale = 0.6
	}
}

// ScaleDurations applies the hazard scales to a laser's warning and on
// durations (milliseconds). The off duration is never scaled so the cycle
// rhythm between neighbouring lasers is kept.
func (h Hazards) ScaleDurations(warning, on int64) (int64, int64) {
	return int64(float64(warning) * h.WarningScale), int64(float64(on) * h.OnScale)
}
