package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tile-merge/internal/games/t2048"
	"github.com/vovakirdan/tile-merge/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all available boards",
	Long:  `Shows every registered board preset with its size and goal.`,
	Run:   runList,
}

func runList(cmd *cobra.Command, args []string) {
	games := registry.List()

	if len(games) == 0 {
		fmt.Println("No boards available.")
		return
	}

	fmt.Println("Available boards:")
	fmt.Println()

	// Calculate column widths
	maxIDLen, maxTitleLen := 2, 5 // "ID", "Title" headers
	for _, g := range games {
		maxIDLen = max(maxIDLen, len(g.ID))
		maxTitleLen = max(maxTitleLen, len(g.Title))
	}

	// Print header
	fmt.Printf("  %-*s  %-*s  %s\n", maxIDLen, "ID", maxTitleLen, "Title", "Board")
	fmt.Printf("  %-*s  %-*s  %s\n", maxIDLen, "--", maxTitleLen, "-----", "-----")

	// Print games
	for _, g := range games {
		fmt.Printf("  %-*s  %-*s  %s\n", maxIDLen, g.ID, maxTitleLen, g.Title, boardSummary(g.ID))
	}

	fmt.Println()
	fmt.Println("Run 'tilemerge play <id>' to play a board.")
}

func boardSummary(id string) string {
	p := t2048.GetPreset(id)
	switch {
	case p == nil:
		return ""
	case p.Custom():
		return "from config"
	case p.Endless:
		return fmt.Sprintf("%dx%d, endless", p.Width, p.Height)
	default:
		return fmt.Sprintf("%dx%d, goal %d", p.Width, p.Height, p.WinValue)
	}
}
