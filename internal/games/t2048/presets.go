// Package t2048 implements the sliding-tile merge puzzle: the grid, the merge
// engine, the spawner and the turn state machine, plus a registry.Game adapter
// that animates turns for the terminal platform.
package t2048

// Preset is a named board shape registered as its own game.
// A zero Width keeps the board from the configured rules.
type Preset struct {
	ID       string
	Name     string
	Width    int
	Height   int
	WinValue int
	Endless  bool
}

// Presets lists the boards offered in the menu, classic first.
var Presets = []Preset{
	{ID: "2048", Name: "Classic", Width: 4, Height: 4, WinValue: 2048},
	{ID: "2048_mini", Name: "Mini", Width: 3, Height: 3, WinValue: 256},
	{ID: "2048_large", Name: "Large", Width: 5, Height: 5, WinValue: 4096},
	{ID: "2048_endless", Name: "Endless", Width: 4, Height: 4, Endless: true},
	{ID: "2048_custom", Name: "Custom"},
}

// GetPreset returns the preset with the given ID, or nil.
func GetPreset(id string) *Preset {
	for i := range Presets {
		if Presets[i].ID == id {
			return &Presets[i]
		}
	}
	return nil
}

// Custom reports whether the preset uses the configured board as is.
func (p Preset) Custom() bool {
	return p.Width == 0
}

// Apply overlays the preset's board shape onto cfg.
func (p Preset) Apply(cfg Config) Config {
	if p.Custom() {
		return cfg
	}
	cfg.Width = p.Width
	cfg.Height = p.Height
	cfg.Endless = p.Endless
	if !p.Endless {
		cfg.WinValue = p.WinValue
	}
	return cfg
}
