package config

import (
	"fmt"
	"strings"
)

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed" // Keep the weights from the config file
)

// ParseDifficulty converts a flag value into a preset. Empty means fixed.
func ParseDifficulty(s string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(strings.ToLower(strings.TrimSpace(s))); p {
	case "":
		return DifficultyFixed, nil
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, nil
	default:
		return "", fmt.Errorf("config: unknown difficulty %q (valid: easy, normal, hard, fixed)", s)
	}
}

// SpawnWeightsForPreset returns the spawn weights for a difficulty preset,
// or nil for DifficultyFixed. Harder presets spawn larger values, which
// fill the board with tiles that are slower to pair up.
func SpawnWeightsForPreset(preset DifficultyPreset) map[int]float64 {
	switch preset {
	case DifficultyEasy:
		return map[int]float64{2: 0.95, 4: 0.05}
	case DifficultyNormal:
		return map[int]float64{2: 0.8, 4: 0.2}
	case DifficultyHard:
		return map[int]float64{2: 0.6, 4: 0.3, 8: 0.1}
	default:
		return nil
	}
}

// ApplyT2048Preset modifies the config based on a difficulty preset.
func ApplyT2048Preset(cfg *T2048Config, preset DifficultyPreset) {
	if w := SpawnWeightsForPreset(preset); w != nil {
		cfg.Spawn.Weights = w
	}
}

// IsFixedPreset returns true if the preset leaves the file's weights alone.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}
