package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/minutegames/gauntlet/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all available games",
	Long:  `Shows every game that can appear in a session, with its default round length.`,
	Run:   runList,
}

func runList(cmd *cobra.Command, args []string) {
	games := registry.List()

	if len(games) == 0 {
		fmt.Println("No games available.")
		return
	}

	fmt.Println("Available games:")
	fmt.Println()

	maxIDLen := 2 // "ID" header
	for _, g := range games {
		if len(g.ID) > maxIDLen {
			maxIDLen = len(g.ID)
		}
	}

	fmt.Printf("  %-*s  %-16s  %s\n", maxIDLen, "ID", "Title", "Round length")
	fmt.Printf("  %-*s  %-16s  %s\n", maxIDLen, "--", "-----", "------------")

	for _, g := range games {
		fmt.Printf("  %-*s  %-16s  %ds\n", maxIDLen, g.ID, g.Title, g.DefaultDuration)
	}

	fmt.Println()
	fmt.Println("Run 'gauntlet run' to play a full session.")
}
