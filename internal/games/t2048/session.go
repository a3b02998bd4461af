package t2048

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"
)

// Phase is the session's current step in the turn cycle.
type Phase int

const (
	PhaseGeneratingLevel Phase = iota
	PhaseSpawningTiles
	PhaseAwaitingInput
	PhaseResolvingMove
	PhaseWon
	PhaseLost
)

func (p Phase) String() string {
	switch p {
	case PhaseGeneratingLevel:
		return "generating_level"
	case PhaseSpawningTiles:
		return "spawning_tiles"
	case PhaseAwaitingInput:
		return "awaiting_input"
	case PhaseResolvingMove:
		return "resolving_move"
	case PhaseWon:
		return "won"
	case PhaseLost:
		return "lost"
	default:
		return "unknown"
	}
}

// Terminal reports whether no further transitions can happen.
func (p Phase) Terminal() bool {
	return p == PhaseWon || p == PhaseLost
}

// TurnResult describes everything that changed in one turn.
// Start returns one for the opening spawn with no moves.
type TurnResult struct {
	Turn        int
	Direction   Direction
	Moves       []TileMove
	Merged      []MergedTile
	Spawned     []SpawnedTile
	ScoreGained int
	Phase       Phase // Phase after the turn; Won or Lost when it ended the game
}

// Session runs one playthrough: it owns the grid, the live tiles and the phase.
// A Session is not safe for concurrent use.
type Session struct {
	cfg     Config
	spawner *Spawner
	grid    *Grid
	tiles   []*Tile
	phase   Phase
	round   int
	nextID  TileID
	pending *TurnPlan
	score   int
	turns   int
	logger  *log.Logger
}

// NewSession validates the rules and returns a session in PhaseGeneratingLevel.
func NewSession(cfg Config, rng Source) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("t2048: %w", err)
	}
	spawner, err := NewSpawner(rng, cfg.SpawnWeights)
	if err != nil {
		return nil, fmt.Errorf("t2048: %w", err)
	}

	return &Session{
		cfg:     cfg,
		spawner: spawner,
		phase:   PhaseGeneratingLevel,
		logger:  log.New(io.Discard),
	}, nil
}

// SetLogger routes phase transitions and spawn failures to l.
func (s *Session) SetLogger(l *log.Logger) {
	if l == nil {
		l = log.New(io.Discard)
	}
	s.logger = l
}

// Start builds the grid and performs the opening spawn.
// It is ignored (ok == false) outside PhaseGeneratingLevel.
func (s *Session) Start() (result TurnResult, ok bool) {
	if s.phase != PhaseGeneratingLevel {
		return TurnResult{}, false
	}

	s.grid = NewGrid(s.cfg.Width, s.cfg.Height)
	s.tiles = nil
	s.round = 0
	s.logger.Debug("level generated", "width", s.cfg.Width, "height", s.cfg.Height)

	result.Spawned = s.spawnStep()
	result.Phase = s.phase
	return result, true
}

// Input accepts a direction while awaiting input and returns the resolved plan
// for the presentation to animate. The plan is applied by Acknowledge.
// Inputs in any other phase are ignored.
func (s *Session) Input(dir Direction) (plan TurnPlan, ok bool) {
	if s.phase != PhaseAwaitingInput || !dir.Valid() {
		return TurnPlan{}, false
	}

	plan = Resolve(s.grid, s.tiles, dir)
	if s.cfg.SkipIdleSpawn && !plan.Moved() {
		s.logger.Debug("idle input dropped", "direction", dir)
		return TurnPlan{}, false
	}

	s.pending = &plan
	s.setPhase(PhaseResolvingMove)
	return plan, true
}

// Acknowledge signals that the presentation finished showing the pending move.
// It applies the plan, spawns, and evaluates the terminal conditions.
// Only the first acknowledgement per turn has an effect.
func (s *Session) Acknowledge() (result TurnResult, ok bool) {
	if s.phase != PhaseResolvingMove || s.pending == nil {
		return TurnResult{}, false
	}

	plan := *s.pending
	s.pending = nil
	s.turns++

	result.Turn = s.turns
	result.Direction = plan.Direction
	result.Moves = plan.Moves()
	result.Merged, result.ScoreGained = s.apply(plan)
	s.score += result.ScoreGained

	result.Spawned = s.spawnStep()
	result.Phase = s.phase
	return result, true
}

// apply moves survivors to their final cells and replaces each merging pair
// with one tile of double value at the target's cell.
func (s *Session) apply(plan TurnPlan) ([]MergedTile, int) {
	final := make(map[*Tile]*Cell, len(plan.Steps))
	consumed := make(map[*Tile]bool)
	for _, st := range plan.Steps {
		final[st.Tile] = st.Final
		if st.MergeInto != nil {
			consumed[st.Tile] = true
			consumed[st.MergeInto] = true
		}
	}

	for _, t := range s.tiles {
		s.grid.release(t)
	}

	var (
		survivors []*Tile
		merged    []MergedTile
		created   []*Tile
		gained    int
	)
	for _, t := range s.tiles {
		if consumed[t] {
			continue
		}
		s.grid.place(t, final[t])
		survivors = append(survivors, t)
	}

	for _, st := range plan.Steps {
		if st.MergeInto == nil {
			continue
		}
		nt := s.newTile(st.MergeInto.Value*2, final[st.MergeInto])
		created = append(created, nt)
		gained += nt.Value
		merged = append(merged, MergedTile{
			TileID:  nt.ID,
			Cell:    nt.Pos(),
			Value:   nt.Value,
			Sources: [2]TileID{st.MergeInto.ID, st.Tile.ID},
		})
	}

	s.tiles = append(survivors, created...)
	return merged, gained
}

// spawnStep runs PhaseSpawningTiles and moves to the next phase.
func (s *Session) spawnStep() []SpawnedTile {
	s.setPhase(PhaseSpawningTiles)

	k := s.cfg.TurnSpawns
	if s.round == 0 {
		k = s.cfg.InitialSpawns
	}
	s.round++

	free := s.grid.FreeCells()
	placements, err := s.spawner.Spawn(free, k)
	if err != nil {
		s.logger.Debug("spawn failed", "error", err)
		// Under no_moves a full board only ends the game once nothing can merge.
		if s.cfg.LossRule == LossNoMoves && CanMove(s.grid) {
			s.setPhase(PhaseAwaitingInput)
			return nil
		}
		s.setPhase(PhaseLost)
		return nil
	}

	spawned := make([]SpawnedTile, 0, len(placements))
	for _, p := range placements {
		t := s.newTile(p.Value, p.Cell)
		s.tiles = append(s.tiles, t)
		spawned = append(spawned, SpawnedTile{TileID: t.ID, Cell: t.Pos(), Value: t.Value})
	}

	switch {
	case s.lost(len(free)):
		s.setPhase(PhaseLost)
	case !s.cfg.Endless && s.hasWinTile():
		s.setPhase(PhaseWon)
	default:
		s.setPhase(PhaseAwaitingInput)
	}
	return spawned
}

// lost applies the configured loss rule. freeBefore is the free cell count
// at the start of the spawn step.
func (s *Session) lost(freeBefore int) bool {
	if s.cfg.LossRule == LossNoMoves {
		return !CanMove(s.grid)
	}
	return freeBefore == 1
}

func (s *Session) hasWinTile() bool {
	for _, t := range s.tiles {
		if t.Value == s.cfg.WinValue {
			return true
		}
	}
	return false
}

func (s *Session) newTile(value int, c *Cell) *Tile {
	s.nextID++
	t := &Tile{ID: s.nextID, Value: value}
	s.grid.place(t, c)
	return t
}

func (s *Session) setPhase(p Phase) {
	if p != s.phase {
		s.logger.Debug("phase", "from", s.phase, "to", p, "turn", s.turns)
	}
	s.phase = p
}

// Phase returns the current phase.
func (s *Session) Phase() Phase {
	return s.phase
}

// Config returns the session rules.
func (s *Session) Config() Config {
	return s.cfg
}

// Grid returns the board, or nil before Start.
func (s *Session) Grid() *Grid {
	return s.grid
}

// Tiles returns a copy of the live tile list.
func (s *Session) Tiles() []*Tile {
	out := make([]*Tile, len(s.tiles))
	copy(out, s.tiles)
	return out
}

// Pending returns the plan awaiting acknowledgement, if any.
func (s *Session) Pending() (TurnPlan, bool) {
	if s.pending == nil {
		return TurnPlan{}, false
	}
	return *s.pending, true
}

// Score returns the sum of all tile values created by merges.
func (s *Session) Score() int {
	return s.score
}

// Turns returns the number of applied turns.
func (s *Session) Turns() int {
	return s.turns
}

// MaxTile returns the highest tile value on the board.
func (s *Session) MaxTile() int {
	return MaxTile(s.tiles)
}

// Board returns tile values indexed [y][x]; empty cells are 0.
func (s *Session) Board() [][]int {
	if s.grid == nil {
		return nil
	}
	board := make([][]int, s.grid.Height())
	for y := range board {
		board[y] = make([]int, s.grid.Width())
	}
	for _, t := range s.tiles {
		p := t.Pos()
		board[p.Y][p.X] = t.Value
	}
	return board
}
