package main

import (
	"fmt"
	"math/rand"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/tile-merge/internal/games/t2048"
	"github.com/vovakirdan/tile-merge/internal/storage"
)

var (
	simFlags    boardOverrides
	simTurns    int
	simStrategy string
	simMoves    string
	simOutput   string
	simVerbose  bool
	simRecord   bool
)

var simCmd = &cobra.Command{
	Use:   "sim [board]",
	Short: "Play a game headlessly and print the result",
	Long: `Run a session without the terminal UI. Moves come from a strategy or an
explicit script, and the final board and score are printed.

Strategies:
  cycle   - up, right, down, left in turn (default)
  random  - uniformly random directions
  greedy  - the direction that scores most this turn

A script (--moves) is a string of U, D, L, R and overrides the strategy.

Examples:
  tilemerge sim
  tilemerge sim mini --seed 7 --strategy greedy
  tilemerge sim --moves LLURDD --output yaml
  tilemerge sim classic --turns 500 --record`,
	Args: cobra.MaximumNArgs(1),
	Run:  runSim,
}

func init() {
	simCmd.Flags().StringVar(&simFlags.difficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	simCmd.Flags().IntVar(&simFlags.width, "width", 0, "Board width for the custom board")
	simCmd.Flags().IntVar(&simFlags.height, "height", 0, "Board height for the custom board")
	simCmd.Flags().IntVar(&simFlags.win, "win", 0, "Goal tile for the custom board")
	simCmd.Flags().IntVar(&simTurns, "turns", 1000, "Stop after this many turns")
	simCmd.Flags().StringVar(&simStrategy, "strategy", "cycle", "Move strategy: cycle, random, greedy")
	simCmd.Flags().StringVar(&simMoves, "moves", "", "Scripted moves, e.g. ULDR")
	simCmd.Flags().StringVar(&simOutput, "output", "text", "Output format: text, yaml")
	simCmd.Flags().BoolVarP(&simVerbose, "verbose", "v", false, "Log every turn")
	simCmd.Flags().BoolVar(&simRecord, "record", false, "Save the result to the scores database")
}

// simResult is the outcome of one headless run.
type simResult struct {
	Board    string  `yaml:"board"`
	Seed     int64   `yaml:"seed"`
	Strategy string  `yaml:"strategy"`
	Turns    int     `yaml:"turns"`
	Score    int     `yaml:"score"`
	MaxTile  int     `yaml:"max_tile"`
	Phase    string  `yaml:"phase"`
	Stopped  string  `yaml:"stopped"` // Why the run ended
	Grid     [][]int `yaml:"grid"`    // Top row first
}

// mover picks the next direction. ok is false when it has nothing left to play.
type mover interface {
	next(s *t2048.Session) (dir t2048.Direction, ok bool)
}

func runSim(cmd *cobra.Command, args []string) {
	board := "classic"
	if len(args) > 0 {
		board = args[0]
	}
	if err := checkOutput(simOutput); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	gameID, err := resolveBoard(board)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	cfg, err := loadRules(simFlags)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	rules := t2048.GetPreset(gameID).Apply(cfg.SessionRules())

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "sim",
	})
	if simVerbose {
		logger.SetLevel(log.DebugLevel)
	}

	strategy, m, err := newMover(seed)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	session, err := t2048.NewSession(rules, rand.New(rand.NewSource(seed)))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	session.SetLogger(logger.WithPrefix("sim/" + gameID))

	result := simulate(session, m, simTurns, logger)
	result.Board = gameID
	result.Seed = seed
	result.Strategy = strategy

	if simRecord {
		recordSim(result, logger)
	}

	if err := printSim(result); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// simulate plays until the session ends, the mover runs dry or maxTurns is reached.
func simulate(s *t2048.Session, m mover, maxTurns int, logger *log.Logger) simResult {
	s.Start()

	var res simResult
	for !s.Phase().Terminal() {
		if s.Turns() >= maxTurns {
			res.Stopped = "turn limit"
			break
		}
		dir, ok := m.next(s)
		if !ok {
			res.Stopped = "no moves left to play"
			break
		}
		if _, ok := s.Input(dir); !ok {
			res.Stopped = "board stuck"
			break
		}
		turn, _ := s.Acknowledge()
		logger.Debug("turn",
			"n", turn.Turn,
			"dir", turn.Direction,
			"merges", len(turn.Merged),
			"gained", turn.ScoreGained,
			"phase", turn.Phase,
		)
	}
	if res.Stopped == "" {
		res.Stopped = s.Phase().String()
	}

	res.Turns = s.Turns()
	res.Score = s.Score()
	res.MaxTile = s.MaxTile()
	res.Phase = s.Phase().String()

	rows := s.Board()
	for y := len(rows) - 1; y >= 0; y-- {
		res.Grid = append(res.Grid, rows[y])
	}

	logger.Info("simulation finished",
		"turns", res.Turns,
		"score", res.Score,
		"max_tile", res.MaxTile,
		"phase", res.Phase,
	)
	return res
}

func newMover(seed int64) (string, mover, error) {
	if simMoves != "" {
		dirs, err := parseMoves(simMoves)
		if err != nil {
			return "", nil, err
		}
		return "script", &scriptMover{dirs: dirs}, nil
	}

	switch strings.ToLower(simStrategy) {
	case "cycle", "":
		return "cycle", &cycleMover{}, nil
	case "random":
		return "random", &randomMover{rng: rand.New(rand.NewSource(seed ^ 0x5eed))}, nil
	case "greedy":
		return "greedy", greedyMover{}, nil
	default:
		return "", nil, fmt.Errorf("unknown strategy %q (valid: cycle, random, greedy)", simStrategy)
	}
}

// parseMoves reads a U/D/L/R script; whitespace and commas are ignored.
func parseMoves(script string) ([]t2048.Direction, error) {
	var dirs []t2048.Direction
	for i, r := range strings.ToUpper(script) {
		switch r {
		case 'U':
			dirs = append(dirs, t2048.DirUp)
		case 'D':
			dirs = append(dirs, t2048.DirDown)
		case 'L':
			dirs = append(dirs, t2048.DirLeft)
		case 'R':
			dirs = append(dirs, t2048.DirRight)
		case ' ', ',', '\t':
		default:
			return nil, fmt.Errorf("invalid move %q at position %d", r, i)
		}
	}
	if len(dirs) == 0 {
		return nil, fmt.Errorf("move script %q has no moves", script)
	}
	return dirs, nil
}

type scriptMover struct {
	dirs []t2048.Direction
	pos  int
}

func (m *scriptMover) next(*t2048.Session) (t2048.Direction, bool) {
	if m.pos >= len(m.dirs) {
		return 0, false
	}
	d := m.dirs[m.pos]
	m.pos++
	return d, true
}

// cycleMover rotates clockwise, skipping directions that would not change the board.
type cycleMover struct {
	i int
}

var clockwise = []t2048.Direction{t2048.DirUp, t2048.DirRight, t2048.DirDown, t2048.DirLeft}

func (m *cycleMover) next(s *t2048.Session) (t2048.Direction, bool) {
	for range clockwise {
		d := clockwise[m.i%len(clockwise)]
		m.i++
		if t2048.Resolve(s.Grid(), s.Tiles(), d).Moved() {
			return d, true
		}
	}
	return clockwise[m.i%len(clockwise)], true
}

type randomMover struct {
	rng *rand.Rand
}

func (m *randomMover) next(*t2048.Session) (t2048.Direction, bool) {
	return t2048.Directions[m.rng.Intn(len(t2048.Directions))], true
}

// greedyMover picks the direction with the largest immediate merge gain.
// Ties go to the first direction in t2048.Directions that moves anything.
type greedyMover struct{}

func (greedyMover) next(s *t2048.Session) (t2048.Direction, bool) {
	best, bestGain := t2048.DirUp, -1
	for _, d := range t2048.Directions {
		plan := t2048.Resolve(s.Grid(), s.Tiles(), d)
		if !plan.Moved() {
			continue
		}
		gain := 0
		for _, st := range plan.Steps {
			if st.MergeInto != nil {
				gain += st.MergeInto.Value * 2
			}
		}
		if gain > bestGain {
			best, bestGain = d, gain
		}
	}
	return best, true
}

func recordSim(res simResult, logger *log.Logger) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open scores database", "error", err)
		return
	}
	defer store.Close()

	outcome := storage.OutcomeQuit
	switch res.Phase {
	case t2048.PhaseWon.String():
		outcome = storage.OutcomeWon
	case t2048.PhaseLost.String():
		outcome = storage.OutcomeLost
	}

	id, err := store.SaveResult(storage.GameResult{
		SessionID: uuid.New(),
		GameID:    res.Board,
		Player:    "sim:" + res.Strategy,
		Score:     res.Score,
		MaxTile:   res.MaxTile,
		Turns:     res.Turns,
		Outcome:   outcome,
	})
	if err != nil {
		logger.Warn("could not save result", "error", err)
		return
	}
	logger.Info("result recorded", "id", id)
}

// checkOutput rejects unknown --output formats before anything runs or is recorded.
func checkOutput(format string) error {
	switch format {
	case "text", "yaml":
		return nil
	default:
		return fmt.Errorf("unknown output format %q (valid: text, yaml)", format)
	}
}

func printSim(res simResult) error {
	if simOutput == "yaml" {
		out, err := yaml.Marshal(res)
		if err != nil {
			return fmt.Errorf("encode result: %w", err)
		}
		_, err = os.Stdout.Write(out)
		return err
	}
	if err := checkOutput(simOutput); err != nil {
		return err
	}

	width := 1
	for _, row := range res.Grid {
		for _, v := range row {
			width = max(width, len(strconv.Itoa(v)))
		}
	}
	for _, row := range res.Grid {
		cells := make([]string, len(row))
		for i, v := range row {
			if v == 0 {
				cells[i] = fmt.Sprintf("%*s", width, ".")
				continue
			}
			cells[i] = fmt.Sprintf("%*d", width, v)
		}
		fmt.Println(strings.Join(cells, " "))
	}
	fmt.Println()
	fmt.Printf("Board: %s  Seed: %d  Strategy: %s\n", res.Board, res.Seed, res.Strategy)
	fmt.Printf("Turns: %d  Score: %d  Max tile: %d  Ended: %s\n", res.Turns, res.Score, res.MaxTile, res.Stopped)
	return nil
}
