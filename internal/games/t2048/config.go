package t2048

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrInvalidConfiguration is returned by NewSession for unusable rules.
	ErrInvalidConfiguration = errors.New("invalid configuration")

	// ErrNoSpaceToSpawn is returned by the spawner when fewer cells are free than requested.
	ErrNoSpaceToSpawn = errors.New("no space to spawn")
)

// LossRule selects how the session decides the game is lost.
type LossRule string

const (
	// LossReference ends the game when the spawn step starts with exactly one
	// free cell, even though that board may still have legal moves.
	LossReference LossRule = "reference"

	// LossNoMoves ends the game once the board is full and no merge is possible.
	LossNoMoves LossRule = "no_moves"
)

// Config holds the rules for a session. It is fixed once the session starts.
type Config struct {
	Width         int
	Height        int
	WinValue      int
	SpawnWeights  map[int]float64 // Tile value -> relative weight
	InitialSpawns int             // Tiles placed on the first spawn step
	TurnSpawns    int             // Tiles placed after every turn
	LossRule      LossRule
	Endless       bool // Never enter Won
	SkipIdleSpawn bool // Drop inputs that would not move or merge anything
}

// DefaultConfig returns the classic 4x4 rules.
func DefaultConfig() Config {
	return Config{
		Width:         BoardSize,
		Height:        BoardSize,
		WinValue:      2048,
		SpawnWeights:  map[int]float64{2: 0.8, 4: 0.2},
		InitialSpawns: 2,
		TurnSpawns:    1,
		LossRule:      LossReference,
	}
}

// BoardSize is the default board dimension.
const BoardSize = 4

// Validate reports the first problem with the rules, wrapped in ErrInvalidConfiguration.
func (c Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("%w: board must be at least 1x1, got %dx%d", ErrInvalidConfiguration, c.Width, c.Height)
	}
	if !c.Endless && !isPowerOfTwo(c.WinValue) {
		return fmt.Errorf("%w: win value %d is not reachable by doubling from 2", ErrInvalidConfiguration, c.WinValue)
	}
	if c.InitialSpawns < 1 || c.TurnSpawns < 1 {
		return fmt.Errorf("%w: spawn counts must be positive, got initial=%d turn=%d",
			ErrInvalidConfiguration, c.InitialSpawns, c.TurnSpawns)
	}
	switch c.LossRule {
	case LossReference, LossNoMoves:
	default:
		return fmt.Errorf("%w: unknown loss rule %q", ErrInvalidConfiguration, c.LossRule)
	}
	return validateWeights(c.SpawnWeights)
}

func validateWeights(weights map[int]float64) error {
	if len(weights) == 0 {
		return fmt.Errorf("%w: no spawn weights", ErrInvalidConfiguration)
	}
	total := 0.0
	for v, w := range weights {
		if !isPowerOfTwo(v) {
			return fmt.Errorf("%w: spawn value %d is not a power of two >= 2", ErrInvalidConfiguration, v)
		}
		if math.IsNaN(w) || math.IsInf(w, 0) {
			return fmt.Errorf("%w: spawn weight for %d is not finite", ErrInvalidConfiguration, v)
		}
		if w < 0 {
			return fmt.Errorf("%w: spawn weight for %d is negative", ErrInvalidConfiguration, v)
		}
		total += w
	}
	if math.IsInf(total, 0) {
		return fmt.Errorf("%w: spawn weights overflow", ErrInvalidConfiguration)
	}
	if total <= 0 {
		return fmt.Errorf("%w: spawn weights sum to zero", ErrInvalidConfiguration)
	}
	return nil
}

// isPowerOfTwo reports whether v is 2, 4, 8, ...
func isPowerOfTwo(v int) bool {
	return v >= 2 && v&(v-1) == 0
}
