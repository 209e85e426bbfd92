// skyraid is a vertical-scrolling shooter that runs in the terminal and can be
// driven by live stream gifts.
//
// Usage:
//
//	skyraid list              - List available modes
//	skyraid play <mode>       - Play a mode
//	skyraid menu              - Start menu to pick a mode interactively
//	skyraid serve             - Start SSH server for remote play
//	skyraid scores <mode>     - Show the best runs for a mode
//	skyraid sim               - Run a headless simulation
//
// Global flags:
//
//	--fps <rate>    - Set tick rate (default: 48)
//	--seed <value>  - Set RNG seed for reproducible gameplay
//	--db <path>     - Set database path (default: ~/.skyraid/scores.db)
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	// Import games to register them
	_ "github.com/vovakirdan/skyraid/internal/games/skyraid"
)

var (
	// Global flags
	flagFPS    int
	flagSeed   int64
	flagDBPath string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "skyraid",
	Short: "Skyraid - a vertical shooter in your terminal",
	Long: `Skyraid is a vertical-scrolling shooter for the terminal. Steer the
fleet, fly through gates, shoot barrels for equipment and take down bosses.
A stream bridge lets live viewers send enemies and bosses with gifts.

Available commands:
  list     - Show all available modes
  play     - Play a mode directly
  menu     - Interactive mode picker menu
  serve    - Start SSH server for remote play
  scores   - View the best runs
  sim      - Run a headless simulation

Examples:
  skyraid list
  skyraid play skyraid
  skyraid play skyraid_stream --bridge ws://localhost:21213 --sound
  skyraid menu
  skyraid serve --ssh :2222
  skyraid scores skyraid`,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 48, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.skyraid/scores.db", "Path to scores database")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(simCmd)
}
