package t2048

import (
	"errors"
	"slices"
	"testing"
)

func TestNewSessionInvalidConfig(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero width", func(c *Config) { c.Width = 0 }},
		{"negative height", func(c *Config) { c.Height = -2 }},
		{"win value not a power of two", func(c *Config) { c.WinValue = 100 }},
		{"win value one", func(c *Config) { c.WinValue = 1 }},
		{"no initial spawns", func(c *Config) { c.InitialSpawns = 0 }},
		{"unknown loss rule", func(c *Config) { c.LossRule = "never" }},
		{"bad weights", func(c *Config) { c.SpawnWeights = map[int]float64{5: 1} }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			if _, err := NewSession(cfg, seeded(1)); !errors.Is(err, ErrInvalidConfiguration) {
				t.Errorf("err = %v, want ErrInvalidConfiguration", err)
			}
		})
	}

	cfg := DefaultConfig()
	cfg.Endless = true
	cfg.WinValue = 0
	if _, err := NewSession(cfg, seeded(1)); err != nil {
		t.Errorf("endless rules ignore the win value, got %v", err)
	}
}

func TestSessionStart(t *testing.T) {
	s, err := NewSession(DefaultConfig(), seeded(1))
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}
	if s.Phase() != PhaseGeneratingLevel {
		t.Fatalf("phase = %s, want generating_level", s.Phase())
	}

	result, ok := s.Start()
	if !ok {
		t.Fatal("Start should be accepted")
	}
	if len(result.Spawned) != 2 || len(s.Tiles()) != 2 {
		t.Errorf("opening spawn = %d tiles, want 2", len(result.Spawned))
	}
	if result.Phase != PhaseAwaitingInput || s.Phase() != PhaseAwaitingInput {
		t.Errorf("phase = %s, want awaiting_input", s.Phase())
	}
	if _, ok := s.Start(); ok {
		t.Error("second Start should be ignored")
	}
}

func TestSessionPairMergeTurn(t *testing.T) {
	s := sessionWithBoard(t, DefaultConfig(), &scriptedSource{}, row(0, 2, 2))

	plan, ok := s.Input(DirLeft)
	if !ok {
		t.Fatal("input should be accepted while awaiting input")
	}
	if s.Phase() != PhaseResolvingMove {
		t.Fatalf("phase = %s, want resolving_move", s.Phase())
	}
	if plan.Merges() != 1 {
		t.Errorf("merges = %d, want 1", plan.Merges())
	}

	// Nothing changes until the presentation acknowledges the move.
	if got := boardValues(s.grid)[0]; !slices.Equal(got, []int{2, 2, 0, 0}) {
		t.Errorf("board before acknowledge = %v", got)
	}

	result, ok := s.Acknowledge()
	if !ok {
		t.Fatal("Acknowledge should be accepted")
	}
	if result.Turn != 1 || result.Direction != DirLeft {
		t.Errorf("result = turn %d %s, want turn 1 left", result.Turn, result.Direction)
	}
	if len(result.Merged) != 1 || result.Merged[0].Cell != (Coord{0, 0}) || result.Merged[0].Value != 4 {
		t.Errorf("merged = %+v, want one 4 at (0,0)", result.Merged)
	}
	if result.ScoreGained != 4 || s.Score() != 4 {
		t.Errorf("score = %d (gained %d), want 4", s.Score(), result.ScoreGained)
	}

	// The scripted source spawns a 2 on the first free cell, (0,1).
	if len(result.Spawned) != 1 || result.Spawned[0].Cell != (Coord{0, 1}) {
		t.Errorf("spawned = %+v, want one tile at (0,1)", result.Spawned)
	}
	if s.grid.CellAt(Coord{1, 0}).Occupant() != nil {
		t.Error("(1,0) should be empty after the merge")
	}
	if got := s.grid.CellAt(Coord{0, 0}).Occupant(); got == nil || got.Value != 4 {
		t.Errorf("(0,0) = %v, want a 4", got)
	}
	if result.Phase != PhaseAwaitingInput {
		t.Errorf("phase = %s, want awaiting_input", result.Phase)
	}
}

func TestSessionTileIDsAreFresh(t *testing.T) {
	s := sessionWithBoard(t, DefaultConfig(), seeded(2), row(0, 2, 2))
	old := map[TileID]bool{}
	for _, tile := range s.Tiles() {
		old[tile.ID] = true
	}

	s.Input(DirLeft)
	result, _ := s.Acknowledge()

	merged := result.Merged[0]
	if old[merged.TileID] {
		t.Errorf("merged tile reused id %d", merged.TileID)
	}
	if !old[merged.Sources[0]] || !old[merged.Sources[1]] {
		t.Errorf("sources %v should be the original tiles", merged.Sources)
	}
}

func TestSessionIgnoresInputOutsideAwaitingInput(t *testing.T) {
	s, _ := NewSession(DefaultConfig(), seeded(1))
	if _, ok := s.Input(DirLeft); ok {
		t.Error("input before Start should be ignored")
	}

	s.Start()
	moved := false
	for _, dir := range Directions {
		if _, ok := s.Input(dir); ok {
			moved = true
			break
		}
	}
	if !moved {
		t.Fatal("some direction should be accepted after Start")
	}

	if _, ok := s.Input(DirUp); ok {
		t.Error("input while resolving should be ignored")
	}
	if _, ok := s.Pending(); !ok {
		t.Error("plan should be pending until acknowledged")
	}

	turns := s.Turns()
	if _, ok := s.Acknowledge(); !ok {
		t.Fatal("first acknowledge should be accepted")
	}
	if _, ok := s.Acknowledge(); ok {
		t.Error("second acknowledge should be ignored")
	}
	if s.Turns() != turns+1 {
		t.Errorf("turns = %d, want %d", s.Turns(), turns+1)
	}
	if _, ok := s.Input(Direction(99)); ok {
		t.Error("invalid direction should be ignored")
	}
}

func TestSessionLossWithOneFreeCell(t *testing.T) {
	// A checkerboard never slides or merges, so the move changes nothing
	// and the spawn step starts with exactly one free cell.
	s := sessionWithBoard(t, DefaultConfig(), seeded(1), checkerboard(4, 4, Coord{3, 3}))

	if _, ok := s.Input(DirLeft); !ok {
		t.Fatal("input should be accepted")
	}
	result, _ := s.Acknowledge()

	if result.Phase != PhaseLost || s.Phase() != PhaseLost {
		t.Errorf("phase = %s, want lost", s.Phase())
	}
	if len(result.Spawned) != 1 {
		t.Errorf("spawned %d tiles, want 1", len(result.Spawned))
	}
	if _, ok := s.Input(DirRight); ok {
		t.Error("input after loss should be ignored")
	}
}

func TestSessionNoMovesLossRule(t *testing.T) {
	tests := []struct {
		name  string
		float float64 // 0 draws a 2, 0.9 draws a 4
		want  Phase
	}{
		{"spawned tile blocks the board", 0, PhaseLost},
		{"spawned tile can merge", 0.9, PhaseAwaitingInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.LossRule = LossNoMoves
			rng := &scriptedSource{floats: []float64{tt.float}}
			s := sessionWithBoard(t, cfg, rng, checkerboard(4, 4, Coord{3, 3}))

			s.Input(DirLeft)
			result, _ := s.Acknowledge()
			if result.Phase != tt.want {
				t.Errorf("phase = %s, want %s", result.Phase, tt.want)
			}
		})
	}
}

// fullBoardColumnPair is a full 4x4 board whose only equal neighbours are
// (0,0) and (0,1), so horizontal moves change nothing.
func fullBoardColumnPair() []placed {
	rows := [][]int{
		{2, 4, 2, 4},
		{2, 8, 4, 2},
		{4, 2, 8, 4},
		{8, 4, 2, 8},
	}
	var out []placed
	for y, r := range rows {
		out = append(out, row(y, r...)...)
	}
	return out
}

func TestSessionFullBoardIdleMove(t *testing.T) {
	tests := []struct {
		rule LossRule
		want Phase
	}{
		{LossNoMoves, PhaseAwaitingInput},
		{LossReference, PhaseLost},
	}

	for _, tt := range tests {
		t.Run(string(tt.rule), func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.LossRule = tt.rule
			s := sessionWithBoard(t, cfg, seeded(1), fullBoardColumnPair())
			if !CanMove(s.Grid()) {
				t.Fatal("fixture board should still have a merge")
			}

			plan, ok := s.Input(DirLeft)
			if !ok {
				t.Fatal("idle input should be accepted when SkipIdleSpawn is off")
			}
			if plan.Moved() {
				t.Fatal("left should not move anything on the fixture board")
			}

			result, _ := s.Acknowledge()
			if result.Phase != tt.want {
				t.Errorf("phase = %s, want %s", result.Phase, tt.want)
			}
			if len(result.Spawned) != 0 {
				t.Errorf("spawned %d tiles on a full board", len(result.Spawned))
			}
			if tt.want.Terminal() {
				return
			}

			if _, ok := s.Input(DirDown); !ok {
				t.Fatal("session should accept the next input")
			}
			result, _ = s.Acknowledge()
			if result.ScoreGained != 4 {
				t.Errorf("score gained = %d, want 4 from the column pair", result.ScoreGained)
			}
		})
	}
}

func TestSessionNoSpaceToSpawnIsLoss(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Width, cfg.Height = 2, 2
	cfg.InitialSpawns = 5

	s, err := NewSession(cfg, seeded(1))
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}
	result, _ := s.Start()
	if result.Phase != PhaseLost {
		t.Errorf("phase = %s, want lost", result.Phase)
	}
	if len(s.Tiles()) != 0 {
		t.Errorf("failed spawn placed %d tiles", len(s.Tiles()))
	}
}

func TestSessionWin(t *testing.T) {
	layout := row(0, 1024, 1024)

	s := sessionWithBoard(t, DefaultConfig(), seeded(1), layout)
	s.Input(DirLeft)
	result, _ := s.Acknowledge()
	if result.Phase != PhaseWon {
		t.Errorf("phase = %s, want won", result.Phase)
	}
	if s.MaxTile() != 2048 {
		t.Errorf("max tile = %d, want 2048", s.MaxTile())
	}
	if _, ok := s.Input(DirUp); ok {
		t.Error("input after win should be ignored")
	}

	cfg := DefaultConfig()
	cfg.Endless = true
	endless := sessionWithBoard(t, cfg, seeded(1), layout)
	endless.Input(DirLeft)
	if result, _ := endless.Acknowledge(); result.Phase != PhaseAwaitingInput {
		t.Errorf("endless phase = %s, want awaiting_input", result.Phase)
	}
}

func TestSessionSkipIdleSpawn(t *testing.T) {
	cfg := DefaultConfig()
	cfg.SkipIdleSpawn = true
	s := sessionWithBoard(t, cfg, seeded(1), row(0, 2, 4))

	if _, ok := s.Input(DirLeft); ok {
		t.Error("idle move should be dropped")
	}
	if s.Phase() != PhaseAwaitingInput {
		t.Errorf("phase = %s, want awaiting_input", s.Phase())
	}
	if _, ok := s.Input(DirRight); !ok {
		t.Error("moving input should be accepted")
	}
}

func TestSessionDeterministic(t *testing.T) {
	play := func() ([][]int, int) {
		s, _ := NewSession(DefaultConfig(), seeded(12345))
		s.Start()
		for i := range 200 {
			if s.Phase().Terminal() {
				break
			}
			if _, ok := s.Input(Directions[i%len(Directions)]); ok {
				s.Acknowledge()
			}
		}
		return s.Board(), s.Score()
	}

	board1, score1 := play()
	board2, score2 := play()
	if score1 != score2 {
		t.Errorf("scores differ: %d vs %d", score1, score2)
	}
	if !slices.EqualFunc(board1, board2, slices.Equal) {
		t.Errorf("boards differ:\n%v\n%v", board1, board2)
	}
}

func TestPhaseString(t *testing.T) {
	if PhaseAwaitingInput.String() != "awaiting_input" {
		t.Errorf("String = %q", PhaseAwaitingInput.String())
	}
	for _, p := range []Phase{PhaseWon, PhaseLost} {
		if !p.Terminal() {
			t.Errorf("%s should be terminal", p)
		}
	}
	if PhaseSpawningTiles.Terminal() {
		t.Error("spawning_tiles is not terminal")
	}
}
