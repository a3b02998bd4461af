// tilemerge is a terminal sliding-tile merge puzzle.
//
// Usage:
//
//	tilemerge list              - List available boards
//	tilemerge play <board>      - Play a board
//	tilemerge menu              - Pick boards and rules interactively
//	tilemerge serve             - Start SSH server for remote play
//	tilemerge scores <board>    - Show high scores for a board
//	tilemerge sim [board]       - Run a headless game and print the result
//
// Global flags:
//
//	--fps <rate>       - Set tick rate (default: 60)
//	--seed <value>     - Set RNG seed for reproducible games
//	--db <path>        - Set database path (default: ~/.tilemerge/scores.db)
//	--config <path>    - Rules YAML (default: search ~/.tilemerge/configs, ./configs)
//	--log-file <path>  - Write debug logs while the TUI runs
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	// Import games to register them
	_ "github.com/vovakirdan/tile-merge/internal/games/t2048"
)

var (
	// Global flags
	flagFPS     int
	flagSeed    int64
	flagDBPath  string
	flagConfig  string
	flagLogFile string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "tilemerge",
	Short: "Tile Merge - slide and merge numbered tiles in your terminal",
	Long: `Tile Merge is a terminal sliding-tile puzzle. Every move slides all
tiles to one side; equal neighbours merge into their sum. Reach the goal
tile before the board fills up.

Available commands:
  list     - Show all board presets
  play     - Play a board directly
  menu     - Interactive board and rules picker
  serve    - Start SSH server for remote play
  scores   - View high scores
  sim      - Run a game without a terminal UI

Examples:
  tilemerge list
  tilemerge play classic
  tilemerge play custom --width 6 --height 3 --win 512
  tilemerge menu
  tilemerge serve --ssh :2222
  tilemerge sim mini --seed 7 --turns 200`,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.tilemerge/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom rules YAML")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write debug logs to this file")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(simCmd)
}
