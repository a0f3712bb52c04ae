package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/minutegames/gauntlet/internal/platform/tui"
	"github.com/minutegames/gauntlet/internal/storage"
)

var flagPlain bool

var resultsCmd = &cobra.Command{
	Use:   "results",
	Short: "Browse past session results",
	Long: `Show past sessions: date, rounds played, average score, and grade.
Select a session to see its per-round breakdown.

Examples:
  gauntlet results
  gauntlet results --plain`,
	Run: runResults,
}

func init() {
	resultsCmd.Flags().BoolVar(&flagPlain, "plain", false, "Print a plain table instead of the interactive browser")
}

func runResults(cmd *cobra.Command, args []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening results database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if flagPlain {
		printPlainResults(store)
		return
	}

	width, height := 80, 24
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	if err := tui.RunResults(store, width, height); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printPlainResults(store *storage.Store) {
	sessions, err := store.RecentSessions(20)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving sessions: %v\n", err)
		os.Exit(1)
	}

	if len(sessions) == 0 {
		fmt.Println("No sessions recorded yet.")
		fmt.Println()
		fmt.Println("Play 'gauntlet run' to get on the board!")
		return
	}

	fmt.Printf("  %-18s  %-8s  %-8s  %-6s  %s\n", "Date", "Rounds", "Average", "Grade", "Status")
	fmt.Printf("  %-18s  %-8s  %-8s  %-6s  %s\n", "----", "------", "-------", "-----", "------")

	for _, s := range sessions {
		status := "complete"
		if s.Abandoned {
			status = "abandoned"
		}
		fmt.Printf("  %-18s  %d/%-6d  %-8.2f  %-6s  %s\n",
			s.CreatedAt.Format("2006-01-02 15:04"),
			s.RoundsPlayed, s.RoundsTotal, s.Average, s.Grade, status)
	}
}
