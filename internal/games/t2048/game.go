package t2048

import (
	"io"
	"math/rand"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/vovakirdan/tile-merge/internal/core"
	"github.com/vovakirdan/tile-merge/internal/registry"
)

// Options configures every Game created by the registry.
type Options struct {
	Rules   Config
	Animate bool // Play slide and pop animations; false acknowledges immediately
	Logger  *log.Logger
}

// DefaultOptions returns the classic rules with animations on.
func DefaultOptions() Options {
	return Options{
		Rules:   DefaultConfig(),
		Animate: true,
	}
}

var (
	optsMu sync.RWMutex
	opts   = DefaultOptions()
)

// Configure sets the options used by games reset after this call.
func Configure(o Options) {
	optsMu.Lock()
	defer optsMu.Unlock()
	opts = o
}

// CurrentOptions returns the options games are created with.
func CurrentOptions() Options {
	optsMu.RLock()
	defer optsMu.RUnlock()
	return opts
}

// Game adapts a Session to the platform tick loop. It turns directional input
// into turns and animates each resolved move before acknowledging it.
type Game struct {
	preset  Preset
	session *Session
	logger  *log.Logger
	err     error // Configuration error from the last Reset
	animate bool
	tick    uint64

	screenW int
	screenH int

	paused   bool
	tooSmall bool

	animating  bool
	animPhase  AnimationPhase
	animTicks  int
	animations []TileAnimation
	lastTurn   TurnResult
}

// New creates a game for the given preset.
func New(p Preset) *Game {
	return &Game{preset: p}
}

func init() {
	for _, p := range Presets {
		registry.Register(p.ID, func() registry.Game {
			return New(p)
		})
	}
}

// ID returns the preset identifier.
func (g *Game) ID() string {
	return g.preset.ID
}

// Title returns the display name.
func (g *Game) Title() string {
	if g.preset.Name == "Classic" {
		return "2048"
	}
	return "2048 (" + g.preset.Name + ")"
}

// Reset starts a new session with a fresh seed.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	o := CurrentOptions()
	g.logger = o.Logger
	if g.logger == nil {
		g.logger = log.New(io.Discard)
	}
	g.animate = o.Animate
	g.tick = 0
	g.screenW = cfg.ScreenW
	g.screenH = cfg.ScreenH
	g.paused = false
	g.lastTurn = TurnResult{}
	g.stopAnimation()

	rules := g.preset.Apply(o.Rules)
	session, err := NewSession(rules, rand.New(rand.NewSource(cfg.Seed)))
	if err != nil {
		g.logger.Error("cannot start session", "game", g.ID(), "error", err)
		g.session = nil
		g.err = err
		return
	}
	g.err = nil
	g.session = session
	g.session.SetLogger(g.logger.WithPrefix(g.ID()))

	result, _ := g.session.Start()
	g.lastTurn = result
	if g.animate {
		g.startPopAnimation(nil, result.Spawned)
	}

	g.checkScreenSize()
}

// checkScreenSize checks if the screen can hold the board and HUD.
func (g *Game) checkScreenSize() {
	boardW, boardH := g.boardSize()
	g.tooSmall = g.screenW < boardW+2 || g.screenH < boardH+hudHeight+2
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.tick++

	if g.session == nil || g.tooSmall {
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionPause) && !g.session.Phase().Terminal() {
		g.paused = !g.paused
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}

	if g.animating {
		if !g.updateAnimation() {
			g.finishAnimation()
		}
		return core.StepResult{State: g.State()}
	}

	if g.session.Phase() != PhaseAwaitingInput {
		return core.StepResult{State: g.State()}
	}

	if dir, ok := directionFor(in); ok {
		g.move(dir)
	}

	return core.StepResult{State: g.State()}
}

// move submits one direction to the session.
func (g *Game) move(dir Direction) {
	plan, ok := g.session.Input(dir)
	if !ok {
		return
	}
	if !g.animate {
		result, _ := g.session.Acknowledge()
		g.lastTurn = result
		return
	}
	g.startSlideAnimation(plan.Moves())
}

// directionFor maps the first directional action in the frame.
func directionFor(in core.InputFrame) (Direction, bool) {
	switch {
	case in.Has(core.ActionUp):
		return DirUp, true
	case in.Has(core.ActionDown):
		return DirDown, true
	case in.Has(core.ActionLeft):
		return DirLeft, true
	case in.Has(core.ActionRight):
		return DirRight, true
	}
	return 0, false
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	if g.session == nil {
		return core.GameState{Paused: true}
	}
	phase := g.session.Phase()
	return core.GameState{
		Score:    g.session.Score(),
		MaxTile:  g.session.MaxTile(),
		Turns:    g.session.Turns(),
		Won:      phase == PhaseWon,
		GameOver: phase.Terminal() && !g.animating,
		Paused:   g.paused || g.tooSmall,
	}
}

// Session exposes the running session, nil if the rules were invalid.
func (g *Game) Session() *Session {
	return g.session
}

// Err returns the configuration error from the last Reset.
func (g *Game) Err() error {
	return g.err
}

// LastTurn returns the most recently applied turn.
func (g *Game) LastTurn() TurnResult {
	return g.lastTurn
}

// Resize adapts the layout to a new screen size, keeping the session.
func (g *Game) Resize(width, height int) {
	g.screenW = width
	g.screenH = height
	if g.session != nil {
		g.checkScreenSize()
	}
}
