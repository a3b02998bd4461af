package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tile-merge/internal/core"
	"github.com/vovakirdan/tile-merge/internal/platform/tui"
	"github.com/vovakirdan/tile-merge/internal/registry"
	"github.com/vovakirdan/tile-merge/internal/storage"
)

var playFlags boardOverrides

var playCmd = &cobra.Command{
	Use:   "play <board>",
	Short: "Play a board",
	Long: `Start playing the given board preset.

Controls:
  Arrows/WASD/HJKL - Slide tiles
  P                - Pause
  R                - Restart (when paused or over)
  B/Esc            - Back (when paused or over)
  Ctrl+S           - Save a screenshot
  Q/Ctrl+C         - Quit

Difficulty options:
  easy   - Almost only 2s spawn
  normal - 2 (80%) and 4 (20%)
  hard   - 8s join the spawn table
  fixed  - Keep the weights from the config file

Examples:
  tilemerge play classic
  tilemerge play mini --difficulty hard
  tilemerge play custom --width 6 --height 4 --win 1024
  tilemerge play classic --config ./my-rules.yaml`,
	Args: cobra.ExactArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&playFlags.difficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	playCmd.Flags().IntVar(&playFlags.width, "width", 0, "Board width for the custom board")
	playCmd.Flags().IntVar(&playFlags.height, "height", 0, "Board height for the custom board")
	playCmd.Flags().IntVar(&playFlags.win, "win", 0, "Goal tile for the custom board")
}

func runPlay(cmd *cobra.Command, args []string) {
	gameID, err := resolveBoard(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	rules, err := loadRules(playFlags)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	logger, closeLog := openLogFile()
	defer closeLog()
	configureGames(rules, logger)

	// Get terminal size
	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	cfg := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}

	game, err := registry.Create(gameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}

	// Open score storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		// Continue without storage - game still works
		store = nil
	}

	_, runErr := tui.Run(game, store, cfg, tui.WithLogger(logger), tui.WithPlayer(currentUser()))

	// Close store before potential exit
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}

// currentUser names local results after the login user.
func currentUser() string {
	if u := os.Getenv("USER"); u != "" {
		return u
	}
	return os.Getenv("USERNAME")
}
