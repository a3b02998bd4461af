package t2048

import (
	"strings"
	"testing"

	"github.com/vovakirdan/tile-merge/internal/core"
	"github.com/vovakirdan/tile-merge/internal/registry"
)

func withOptions(t *testing.T, o Options) {
	t.Helper()
	prev := CurrentOptions()
	Configure(o)
	t.Cleanup(func() { Configure(prev) })
}

func newTestGame(t *testing.T, animate bool, seed int64) *Game {
	t.Helper()
	o := DefaultOptions()
	o.Animate = animate
	withOptions(t, o)

	g := New(*GetPreset("2048"))
	g.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: seed})
	if g.Err() != nil {
		t.Fatalf("Reset: %v", g.Err())
	}
	return g
}

func frame(actions ...core.Action) core.InputFrame {
	in := core.NewInputFrame()
	for _, a := range actions {
		in.Set(a)
	}
	return in
}

var dirActions = map[Direction]core.Action{
	DirUp:    core.ActionUp,
	DirDown:  core.ActionDown,
	DirLeft:  core.ActionLeft,
	DirRight: core.ActionRight,
}

// movingDirection returns a direction that slides a tile on the current board.
func movingDirection(t *testing.T, s *Session) Direction {
	t.Helper()
	for _, d := range Directions {
		if Resolve(s.Grid(), s.Tiles(), d).Moved() {
			return d
		}
	}
	t.Fatal("no direction moves the board")
	return 0
}

func TestPresetsRegistered(t *testing.T) {
	for _, p := range Presets {
		if !registry.Exists(p.ID) {
			t.Errorf("preset %q not registered", p.ID)
		}
		g, err := registry.Create(p.ID)
		if err != nil {
			t.Fatalf("Create(%q): %v", p.ID, err)
		}
		if g.ID() != p.ID {
			t.Errorf("ID = %q, want %q", g.ID(), p.ID)
		}
	}
	if GetPreset("missing") != nil {
		t.Error("unknown preset should be nil")
	}
}

func TestPresetApply(t *testing.T) {
	cfg := GetPreset("2048_mini").Apply(DefaultConfig())
	if cfg.Width != 3 || cfg.Height != 3 || cfg.WinValue != 256 {
		t.Errorf("mini rules = %dx%d win %d", cfg.Width, cfg.Height, cfg.WinValue)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("mini rules invalid: %v", err)
	}

	endless := GetPreset("2048_endless").Apply(DefaultConfig())
	if !endless.Endless || endless.WinValue != 2048 {
		t.Errorf("endless rules = %+v", endless)
	}

	rules := DefaultConfig()
	rules.Width, rules.Height, rules.WinValue = 6, 2, 64
	custom := GetPreset("2048_custom").Apply(rules)
	if custom.Width != 6 || custom.Height != 2 || custom.WinValue != 64 {
		t.Errorf("custom rules = %dx%d win %d, want 6x2 win 64", custom.Width, custom.Height, custom.WinValue)
	}
}

func TestGameMoveWithoutAnimation(t *testing.T) {
	g := newTestGame(t, false, 99)
	s := g.Session()
	if s.Phase() != PhaseAwaitingInput {
		t.Fatalf("phase = %s, want awaiting_input", s.Phase())
	}

	dir := movingDirection(t, s)
	g.Step(frame(dirActions[dir]))

	if s.Turns() != 1 {
		t.Errorf("turns = %d, want 1", s.Turns())
	}
	if len(s.Tiles()) < 2 {
		t.Errorf("tiles = %d, want at least 2", len(s.Tiles()))
	}
	if g.LastTurn().Direction != dir {
		t.Errorf("last turn direction = %s, want %s", g.LastTurn().Direction, dir)
	}
}

func TestGameAnimationGatesTurn(t *testing.T) {
	g := newTestGame(t, true, 7)
	s := g.Session()

	// Let the opening pop finish.
	for range popAnimationDuration {
		g.Step(frame())
	}
	if g.animating {
		t.Fatal("opening animation should be finished")
	}

	dir := movingDirection(t, s)
	g.Step(frame(dirActions[dir]))
	if s.Phase() != PhaseResolvingMove {
		t.Fatalf("phase = %s, want resolving_move", s.Phase())
	}

	for i := 1; i < slideAnimationDuration; i++ {
		g.Step(frame(core.ActionUp))
		if s.Phase() != PhaseResolvingMove {
			t.Fatalf("tick %d: phase = %s before slide finished", i, s.Phase())
		}
	}
	g.Step(frame())
	if s.Turns() != 1 {
		t.Errorf("turns = %d after slide, want 1", s.Turns())
	}
	if !g.animating || g.animPhase != AnimPop {
		t.Error("spawned tile should pop after the slide")
	}
}

func TestGamePause(t *testing.T) {
	g := newTestGame(t, false, 3)
	g.Step(frame(core.ActionPause))
	if !g.State().Paused {
		t.Fatal("game should be paused")
	}

	g.Step(frame(core.ActionLeft))
	g.Step(frame(core.ActionRight))
	if g.Session().Turns() != 0 {
		t.Error("moves while paused should be ignored")
	}

	g.Step(frame(core.ActionPause))
	if g.State().Paused {
		t.Error("game should resume")
	}
}

func TestGameInvalidRules(t *testing.T) {
	o := DefaultOptions()
	o.Rules.WinValue = 1000
	withOptions(t, o)

	g := New(*GetPreset("2048_endless"))
	g.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 24, Seed: 1})
	if g.Err() != nil {
		t.Errorf("endless preset ignores the win value, got %v", g.Err())
	}

	g = New(Preset{ID: "custom", Name: "Custom", Width: 4, Height: 4, WinValue: 1000})
	g.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 24, Seed: 1})
	if g.Err() == nil {
		t.Fatal("win value 1000 should be rejected")
	}
	if !g.State().Paused {
		t.Error("invalid game should report paused")
	}
	g.Step(frame(core.ActionLeft))

	screen := core.NewScreen(80, 24)
	g.Render(screen)
	if !strings.Contains(screen.String(), "INVALID RULES") {
		t.Error("invalid rules should be shown")
	}
}

func TestGameRender(t *testing.T) {
	g := newTestGame(t, false, 11)
	screen := core.NewScreen(80, 24)
	g.Render(screen)

	out := screen.String()
	for _, want := range []string{"2048", "Score: 0", "Turn 0", "┌"} {
		if !strings.Contains(out, want) {
			t.Errorf("render missing %q", want)
		}
	}
}

func TestGameTooSmall(t *testing.T) {
	withOptions(t, DefaultOptions())
	g := New(*GetPreset("2048_large"))
	g.Reset(core.RuntimeConfig{ScreenW: 20, ScreenH: 10, Seed: 1})

	if !g.State().Paused {
		t.Error("small window should pause the game")
	}
	if snap := g.Snapshot(); snap.State != StatePausedSmall {
		t.Errorf("snapshot state = %s, want %s", snap.State, StatePausedSmall)
	}
}

func TestSnapshotDeterminism(t *testing.T) {
	run := func() Snapshot {
		g := newTestGame(t, false, 2024)
		for i := range 50 {
			g.Step(frame(dirActions[Directions[i%len(Directions)]]))
		}
		return g.Snapshot()
	}

	a, b := run(), run()
	if a.Score != b.Score || a.Turn != b.Turn || a.MaxTile != b.MaxTile || a.Phase != b.Phase {
		t.Errorf("snapshots differ: %+v vs %+v", a, b)
	}
	for y := range a.Board {
		for x := range a.Board[y] {
			if a.Board[y][x] != b.Board[y][x] {
				t.Fatalf("boards differ at (%d,%d)", x, y)
			}
		}
	}
}

func TestTileColor(t *testing.T) {
	if tileColor(2) == tileColor(2048) {
		t.Error("2 and 2048 should use different colors")
	}
	if tileColor(8192) != core.ColorBrightBlue {
		t.Errorf("large tiles should share the top color")
	}
}
