// Package session implements the round and session orchestration core: it
// turns a set of independently authored mini-games into a uniform, time-boxed,
// scored sequence. The package is single-threaded and tick-driven; the
// platform layer delivers wall-clock seconds and simulation frames as calls,
// and the core never spawns goroutines of its own.
package session

import (
	"fmt"

	"github.com/minutegames/gauntlet/internal/content"
	"github.com/minutegames/gauntlet/internal/core"
)

// ScoreReport is the asymmetric scoring contract every module speaks:
// the cumulative score so far and the maximum achievable this round.
// Scales differ wildly between games (counts, 0-100, 0-1000); the
// normalizer maps them all onto [0,1].
type ScoreReport struct {
	Score int
	Max   int
}

// StartConfig is passed to a module when its round goes active.
type StartConfig struct {
	Runtime         core.RuntimeConfig
	DurationSeconds int
	Pack            content.Pack
}

// Module is the contract every pluggable mini-game must implement.
// It is deliberately minimal: games contain pure logic, the platform owns
// input mapping, timing, and display.
type Module interface {
	// ID returns the unique identifier (e.g. "memory", "reflex").
	ID() string

	// Title returns a human-readable name for display.
	Title() string

	// Start initializes the module for one round. Called once, after the
	// countdown, before any Step.
	Start(cfg StartConfig)

	// Step advances the simulation by one frame with the input gathered
	// during that frame.
	Step(in core.InputFrame)

	// Render draws the current state into the screen buffer.
	Render(dst *core.Screen)

	// Score returns the current score report. Callable at any time,
	// including before the round would naturally end.
	Score() ScoreReport
}

// Optional capabilities, discovered by type assertion. A module advertises a
// capability by implementing the interface; absence is never an error.

// Finisher is implemented by modules that need to freeze state when the
// round terminates. RoundEnd is invoked exactly once per round.
type Finisher interface {
	RoundEnd()
}

// Skipper is implemented by modules that can jump to their next internal
// question or puzzle without ending the round.
type Skipper interface {
	SkipQuestion()
}

// BusyReporter is implemented by modules that want the round timer paused
// while they play feedback the player should not be penalized for.
type BusyReporter interface {
	Busy() bool
}

// Completer is implemented by modules that can run out of things to do
// before the timer expires.
type Completer interface {
	Completed() bool
}

// Descriptor is the static metadata for one pluggable game: identity,
// display name, default round length, and a factory. Descriptors are fixed
// at session configuration time.
type Descriptor struct {
	ID              string
	Title           string
	DefaultDuration int // seconds
	New             func() Module
}

// Validate reports whether the descriptor is usable in a sequence.
func (d Descriptor) Validate() error {
	if d.ID == "" {
		return fmt.Errorf("session: descriptor has empty id")
	}
	if d.New == nil {
		return fmt.Errorf("session: descriptor %q has no factory", d.ID)
	}
	if d.DefaultDuration <= 0 {
		return fmt.Errorf("session: descriptor %q has non-positive duration", d.ID)
	}
	return nil
}
