package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tile-merge/internal/registry"
	"github.com/vovakirdan/tile-merge/internal/storage"
)

var (
	flagScoresClear   bool
	flagScoresRecent  int
	flagScoresSession string
)

var scoresCmd = &cobra.Command{
	Use:   "scores [board]",
	Short: "Show high scores",
	Long: `Display the top 10 results for a board, or a summary of every board
when no board is given.

Examples:
  tilemerge scores
  tilemerge scores classic
  tilemerge scores --recent 20
  tilemerge scores --session 6f1c...   # Look up one game by its session ID
  tilemerge scores mini --clear`,
	Args: cobra.MaximumNArgs(1),
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagScoresClear, "clear", false, "Delete all results for the board")
	scoresCmd.Flags().IntVar(&flagScoresRecent, "recent", 0, "Show the N most recent results across all boards")
	scoresCmd.Flags().StringVar(&flagScoresSession, "session", "", "Show the result recorded for a session ID")
}

func runScores(cmd *cobra.Command, args []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening scores database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	switch {
	case flagScoresSession != "":
		err = showSession(store, flagScoresSession)
	case flagScoresRecent > 0:
		err = showRecent(store, flagScoresRecent)
	case len(args) == 0:
		err = showSummary(store)
	default:
		err = showBoard(store, args[0])
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		store.Close()
		os.Exit(1)
	}
}

func showBoard(store *storage.Store, name string) error {
	gameID, err := resolveBoard(name)
	if err != nil {
		return err
	}
	game, err := registry.Create(gameID)
	if err != nil {
		return err
	}

	if flagScoresClear {
		if err := store.ClearScores(gameID); err != nil {
			return err
		}
		fmt.Printf("Cleared results for %s.\n", game.Title())
		return nil
	}

	scores, err := store.TopScores(gameID, 10)
	if err != nil {
		return err
	}

	fmt.Printf("High Scores - %s\n", game.Title())
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'tilemerge play %s' to set the first high score!\n", gameID)
		return nil
	}

	printResults(scores, true)

	if stats, err := store.GetGameStats(gameID); err == nil {
		fmt.Println()
		fmt.Printf("Best: %d  Best tile: %d  Games: %d  Wins: %d  Avg: %.0f\n",
			stats.HighScore, stats.BestTile, stats.GamesCount, stats.Wins, stats.AvgScore)
	}
	return nil
}

func showSummary(store *storage.Store) error {
	all, err := store.GetAllGamesStats()
	if err != nil {
		return err
	}
	if len(all) == 0 {
		fmt.Println("No scores recorded yet.")
		return nil
	}

	ids := make([]string, 0, len(all))
	for id := range all {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	fmt.Printf("  %-14s  %-6s  %-5s  %-8s  %-6s  %s\n", "Board", "Games", "Wins", "Best", "Tile", "Last played")
	fmt.Printf("  %-14s  %-6s  %-5s  %-8s  %-6s  %s\n", "-----", "-----", "----", "----", "----", "-----------")
	for _, id := range ids {
		s := all[id]
		fmt.Printf("  %-14s  %-6d  %-5d  %-8d  %-6d  %s\n",
			id, s.GamesCount, s.Wins, s.HighScore, s.BestTile, s.LastPlayed.Format("2006-01-02 15:04"))
	}
	return nil
}

func showRecent(store *storage.Store, limit int) error {
	results, err := store.RecentResults(limit)
	if err != nil {
		return err
	}
	if len(results) == 0 {
		fmt.Println("No scores recorded yet.")
		return nil
	}
	printResults(results, false)
	return nil
}

func showSession(store *storage.Store, raw string) error {
	id, err := uuid.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid session ID %q: %w", raw, err)
	}
	r, err := store.ResultBySession(id)
	if err != nil {
		return err
	}
	if r == nil {
		fmt.Printf("No result recorded for session %s.\n", id)
		return nil
	}
	printResults([]storage.GameResult{*r}, false)
	return nil
}

// printResults prints a result table; ranked tables number rows, others show the board.
func printResults(results []storage.GameResult, ranked bool) {
	first := "Board"
	if ranked {
		first = "Rank"
	}
	fmt.Printf("  %-14s  %-8s  %-6s  %-5s  %-6s  %-10s  %s\n", first, "Score", "Tile", "Turns", "Result", "Player", "Date")
	fmt.Printf("  %-14s  %-8s  %-6s  %-5s  %-6s  %-10s  %s\n", "----", "-----", "----", "-----", "------", "------", "----")

	for i, r := range results {
		lead := r.GameID
		if ranked {
			lead = fmt.Sprintf("%d", i+1)
		}
		player := r.Player
		if player == "" {
			player = "-"
		}
		fmt.Printf("  %-14s  %-8d  %-6d  %-5d  %-6s  %-10s  %s\n",
			lead, r.Score, r.MaxTile, r.Turns, r.Outcome, player, r.CreatedAt.Format("2006-01-02 15:04"))
	}
}
