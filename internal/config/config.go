// Package config provides YAML-based rule loading and difficulty presets
// for the tile-merge platform.
package config

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/tile-merge/internal/games/t2048"
	"gopkg.in/yaml.v3"
)

// T2048Config contains all configuration for the tile merge game.
type T2048Config struct {
	Board        BoardConfig        `yaml:"board"`
	Spawn        SpawnConfig        `yaml:"spawn"`
	Rules        RulesConfig        `yaml:"rules"`
	Presentation PresentationConfig `yaml:"presentation"`
}

// BoardConfig defines the grid shape and the win tile.
type BoardConfig struct {
	Width    int `yaml:"width"`
	Height   int `yaml:"height"`
	WinValue int `yaml:"win_value"`
}

// SpawnConfig defines what the spawner places and how many per step.
type SpawnConfig struct {
	Weights map[int]float64 `yaml:"weights"`
	Initial int             `yaml:"initial"`  // Tiles placed on the first spawn step
	PerTurn int             `yaml:"per_turn"` // Tiles placed after every turn
}

// UnmarshalYAML replaces the weight table instead of merging into the defaults,
// so a file listing only some values drops the others.
func (s *SpawnConfig) UnmarshalYAML(node *yaml.Node) error {
	type plain SpawnConfig
	out := plain(*s)
	out.Weights = nil
	if err := node.Decode(&out); err != nil {
		return err
	}
	if out.Weights == nil {
		out.Weights = s.Weights
	}
	*s = SpawnConfig(out)
	return nil
}

// RulesConfig defines terminal conditions and idle move handling.
type RulesConfig struct {
	LossRule      string `yaml:"loss_rule"`
	Endless       bool   `yaml:"endless"`
	SkipIdleSpawn bool   `yaml:"skip_idle_spawn"`
}

// PresentationConfig defines how turns are shown.
type PresentationConfig struct {
	Animate bool `yaml:"animate"`
}

// SessionRules converts the file layout into session rules.
// The result is not validated; NewSession does that.
func (c T2048Config) SessionRules() t2048.Config {
	weights := make(map[int]float64, len(c.Spawn.Weights))
	for v, w := range c.Spawn.Weights {
		weights[v] = w
	}
	return t2048.Config{
		Width:         c.Board.Width,
		Height:        c.Board.Height,
		WinValue:      c.Board.WinValue,
		SpawnWeights:  weights,
		InitialSpawns: c.Spawn.Initial,
		TurnSpawns:    c.Spawn.PerTurn,
		LossRule:      t2048.LossRule(c.Rules.LossRule),
		Endless:       c.Rules.Endless,
		SkipIdleSpawn: c.Rules.SkipIdleSpawn,
	}
}

// Options builds the game options used by registered presets.
func (c T2048Config) Options() t2048.Options {
	return t2048.Options{
		Rules:   c.SessionRules(),
		Animate: c.Presentation.Animate,
	}
}

// Validate reports whether the loaded rules can start a session.
func (c T2048Config) Validate() error {
	if err := c.SessionRules().Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

// boardPresets maps CLI board names to registered game IDs.
var boardPresets = map[string]string{
	"classic": "2048",
	"mini":    "2048_mini",
	"large":   "2048_large",
	"endless": "2048_endless",
	"custom":  "2048_custom",
}

// BoardPresetID resolves a board preset name such as "classic" to its game ID.
// Registered IDs are accepted as they are.
func BoardPresetID(name string) (string, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if id, ok := boardPresets[name]; ok {
		return id, nil
	}
	for _, id := range boardPresets {
		if id == name {
			return id, nil
		}
	}
	return "", fmt.Errorf("config: unknown board preset %q (valid: classic, mini, large, endless, custom)", name)
}
