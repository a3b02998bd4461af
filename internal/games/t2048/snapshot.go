package t2048

// GameStateType represents the current game state.
type GameStateType string

const (
	StatePlaying     GameStateType = "playing"
	StateAnimating   GameStateType = "animating"
	StateWin         GameStateType = "win"
	StateGameOver    GameStateType = "game_over"
	StatePausedSmall GameStateType = "paused_small_window"
	StateInvalid     GameStateType = "invalid_config"
)

// Snapshot captures the complete game state for determinism testing and replay.
type Snapshot struct {
	Tick    uint64
	Preset  string
	Turn    int
	Score   int
	Board   [][]int // Indexed [y][x], y = 0 is the bottom row
	MaxTile int
	Phase   Phase
	State   GameStateType
}

// Snapshot returns the current game snapshot for determinism verification.
func (g *Game) Snapshot() Snapshot {
	snap := Snapshot{
		Tick:   g.tick,
		Preset: g.preset.ID,
		State:  StatePlaying,
	}
	if g.session == nil {
		snap.State = StateInvalid
		return snap
	}

	snap.Turn = g.session.Turns()
	snap.Score = g.session.Score()
	snap.Board = g.session.Board()
	snap.MaxTile = g.session.MaxTile()
	snap.Phase = g.session.Phase()

	switch {
	case g.tooSmall:
		snap.State = StatePausedSmall
	case snap.Phase == PhaseWon:
		snap.State = StateWin
	case snap.Phase == PhaseLost:
		snap.State = StateGameOver
	case g.animating:
		snap.State = StateAnimating
	}
	return snap
}
