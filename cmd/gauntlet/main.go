// gauntlet is a timed session of terminal mini-games: N rounds back to back,
// each scored and normalized, with a single session grade at the end.
//
// Usage:
//
//	gauntlet list              - List available games
//	gauntlet run               - Play a full session
//	gauntlet results           - Browse past session results
//	gauntlet serve             - Start SSH server for remote play
//
// Global flags:
//
//	--fps <rate>    - Set tick rate (default: 30)
//	--seed <value>  - Set RNG seed for reproducible sessions
//	--db <path>     - Set database path (default: ~/.gauntlet/results.db)
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	// Import games to register them
	_ "github.com/minutegames/gauntlet/internal/games/memory"
	_ "github.com/minutegames/gauntlet/internal/games/quickmath"
	_ "github.com/minutegames/gauntlet/internal/games/reflex"
	_ "github.com/minutegames/gauntlet/internal/games/sorter"
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
	Use:   "gauntlet",
	Short: "Gauntlet - a timed run of mini-games in your terminal",
	Long: `Gauntlet chains a handful of small terminal games into one timed,
scored session. Every round has a clock; every score is normalized so the
games compete on equal footing; the session ends with a single grade.

Available commands:
  list     - Show all available games
  run      - Play a full session
  results  - Browse past session results
  serve    - Start SSH server for remote play

Examples:
  gauntlet list
  gauntlet run
  gauntlet run --rounds 3 --seed 42
  gauntlet serve --ssh :2222
  gauntlet results`,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 30, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.gauntlet/results.db", "Path to results database")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(resultsCmd)
	rootCmd.AddCommand(serveCmd)
}
