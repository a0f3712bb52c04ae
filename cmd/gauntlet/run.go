package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/minutegames/gauntlet/internal/analytics"
	"github.com/minutegames/gauntlet/internal/config"
	"github.com/minutegames/gauntlet/internal/core"
	"github.com/minutegames/gauntlet/internal/platform/tui"
	"github.com/minutegames/gauntlet/internal/storage"
)

var (
	flagConfig   string
	flagRounds   int
	flagSequence []string
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Play a full gauntlet session",
	Long: `Start a session: a fixed number of rounds played back to back, each
with its own clock, ending in a graded summary.

Controls:
  Arrows/WASD  - Move / sort
  Enter/Space  - Confirm (skips the countdown too)
  1/2/3        - Pick an answer
  N            - Skip the current question
  Tab          - Give up on the current round
  Q/Ctrl+C     - Quit (partial result is kept)

Examples:
  gauntlet run
  gauntlet run --rounds 3
  gauntlet run --sequence memory,reflex,quickmath
  gauntlet run --config ./my-gauntlet.yaml --seed 42`,
	Run: runRun,
}

func init() {
	runCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom config YAML")
	runCmd.Flags().IntVar(&flagRounds, "rounds", 0, "Number of rounds (overrides config)")
	runCmd.Flags().StringSliceVar(&flagSequence, "sequence", nil, "Comma-separated game IDs to play in order")
}

func runRun(cmd *cobra.Command, args []string) {
	appCfg, err := config.Load(flagConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	if flagRounds > 0 {
		appCfg.Session.Rounds = flagRounds
	}
	if len(flagSequence) > 0 {
		appCfg.Session.Sequence = flagSequence
		if flagRounds == 0 {
			appCfg.Session.Rounds = len(flagSequence)
		}
	}

	// Terminal size, minus the HUD rows the platform keeps for itself
	width, height := 80, 24
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	// Use a time-based seed unless one was pinned for a reproducible run
	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	rt := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  max(height-2, 4),
		TickRate: flagFPS,
		Seed:     seed,
	}

	controller, err := tui.BuildController(appCfg, rt, analytics.NopSink{})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		fmt.Fprintln(os.Stderr, "Run 'gauntlet list' to see available games.")
		os.Exit(1)
	}

	if err := controller.Start(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error starting session: %v\n", err)
		os.Exit(1)
	}

	// Open results storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open results database: %v\n", err)
		// Continue without storage - the session still works
		store = nil
	}

	runErr := tui.RunSession(controller, store, rt)

	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running session: %v\n", runErr)
		os.Exit(1)
	}
}
