package config

import (
	_ "embed"

	"github.com/vovakirdan/tile-merge/internal/games/t2048"
)

//go:embed defaults/t2048.yaml
var defaultT2048YAML []byte

// DefaultT2048Config returns the classic 4x4 rules.
func DefaultT2048Config() T2048Config {
	return T2048Config{
		Board: BoardConfig{
			Width:    4,
			Height:   4,
			WinValue: 2048,
		},
		Spawn: SpawnConfig{
			Weights: map[int]float64{2: 0.8, 4: 0.2},
			Initial: 2,
			PerTurn: 1,
		},
		Rules: RulesConfig{
			LossRule: string(t2048.LossReference),
		},
		Presentation: PresentationConfig{
			Animate: true,
		},
	}
}
