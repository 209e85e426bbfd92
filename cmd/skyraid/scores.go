package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/skyraid/internal/platform/tui"
	"github.com/vovakirdan/skyraid/internal/registry"
	"github.com/vovakirdan/skyraid/internal/storage"
)

var flagClearScores bool

var scoresCmd = &cobra.Command{
	Use:   "scores [mode]",
	Short: "Show the best runs for a mode",
	Long: `Display the top 10 runs for the specified mode, with bosses
defeated, enemies destroyed and run time. Without a mode, show the
totals of every mode.

Examples:
  skyraid scores
  skyraid scores skyraid
  skyraid scores skyraid_stream --clear`,
	Args: cobra.MaximumNArgs(1),
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagClearScores, "clear", false, "Delete every recorded run of the mode")
}

func runScores(cmd *cobra.Command, args []string) {
	// Open score storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening scores database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if len(args) == 0 {
		if flagClearScores {
			fmt.Fprintln(os.Stderr, "Error: --clear needs a mode")
			os.Exit(1)
		}
		printTotals(store)
		return
	}

	gameID := args[0]

	// Check if game exists
	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown mode %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'skyraid list' to see available modes.")
		os.Exit(1)
	}

	if flagClearScores {
		if err := store.ClearScores(gameID); err != nil {
			fmt.Fprintf(os.Stderr, "Error clearing scores: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Cleared all runs of %s.\n", gameID)
		return
	}

	// Get game title
	game, err := registry.Create(gameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}
	title := game.Title()

	runs, err := store.TopRuns(gameID, 10)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving scores: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Best Runs - %s\n", title)
	fmt.Println()

	if len(runs) == 0 {
		// Modes without run statistics only leave a score behind
		if printPlainScores(store, gameID) {
			return
		}
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'skyraid play %s' to set the first high score!\n", gameID)
		return
	}

	fmt.Printf("  %-4s  %-10s  %-6s  %-6s  %-6s  %-4s  %s\n", "Rank", "Score", "Bosses", "Kills", "Time", "Fire", "Date")
	fmt.Printf("  %-4s  %-10s  %-6s  %-6s  %-6s  %-4s  %s\n", "----", "-----", "------", "-----", "----", "----", "----")

	for i, r := range runs {
		dateStr := r.CreatedAt.Format("2006-01-02 15:04")
		fmt.Printf("  %-4d  %-10d  %-6d  %-6d  %-6s  %-4d  %s\n",
			i+1, r.Score, r.BossesDefeated, r.EnemiesDestroyed,
			tui.FormatRunTime(r.Frames, flagFPS), r.PeakFirePower, dateStr)
	}

	fmt.Println()
	highScore, err := store.HighScore(gameID)
	if err == nil {
		fmt.Printf("Best: %d\n", highScore)
	}
}

// printPlainScores lists bare scores and reports whether there were any.
func printPlainScores(store *storage.Store, gameID string) bool {
	scores, err := store.TopScores(gameID, 10)
	if err != nil || len(scores) == 0 {
		return false
	}

	fmt.Printf("  %-4s  %-10s  %s\n", "Rank", "Score", "Date")
	fmt.Printf("  %-4s  %-10s  %s\n", "----", "-----", "----")
	for i, entry := range scores {
		fmt.Printf("  %-4d  %-10d  %s\n", i+1, entry.Score, entry.CreatedAt.Format("2006-01-02 15:04"))
	}
	return true
}

// printTotals shows the run totals of every registered mode.
func printTotals(store *storage.Store) {
	all, err := store.GetAllGamesStats()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving stats: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Totals")
	fmt.Println()
	fmt.Printf("  %-16s  %-6s  %-10s  %-10s  %s\n", "Mode", "Runs", "Best", "Average", "Last")
	fmt.Printf("  %-16s  %-6s  %-10s  %-10s  %s\n", "----", "----", "----", "-------", "----")

	for _, g := range registry.List() {
		s, ok := all[g.ID]
		if !ok {
			fmt.Printf("  %-16s  %-6d  %-10s  %-10s  %s\n", g.ID, 0, "-", "-", "never")
			continue
		}
		fmt.Printf("  %-16s  %-6d  %-10d  %-10.0f  %s\n",
			g.ID, s.GamesCount, s.HighScore, s.AvgScore, s.LastPlayed.Format("2006-01-02 15:04"))
	}
}
