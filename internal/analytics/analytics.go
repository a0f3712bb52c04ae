// Package analytics defines the fire-and-forget event sink the session core
// notifies at round and session boundaries. The core calls these hooks at
// well-defined transition points and never depends on their outcome.
package analytics

import "github.com/charmbracelet/log"

// Sink receives session lifecycle notifications.
// Implementations must not block; the session continues regardless of what
// a sink does with the events.
type Sink interface {
	// RoundStarted is called when a round leaves its countdown and the
	// module is mounted.
	RoundStarted(moduleID string, round int)

	// RoundResolved is called exactly once per round with its terminal score.
	RoundResolved(moduleID string, round int, rawScore, maxScore int, normalized float64)

	// SessionFinished is called once when the session completes or is
	// abandoned. roundsPlayed may be smaller than the configured total on
	// early exit.
	SessionFinished(roundsPlayed int, score float64, grade string, abandoned bool)
}

// NopSink discards all events. Used when no analytics are wired.
type NopSink struct{}

func (NopSink) RoundStarted(string, int)                     {}
func (NopSink) RoundResolved(string, int, int, int, float64) {}
func (NopSink) SessionFinished(int, float64, string, bool)   {}

var _ Sink = NopSink{}

// LogSink writes events to a structured logger. It is the default sink for
// the SSH server, where session activity is server-side diagnostics.
type LogSink struct {
	logger *log.Logger
}

// NewLogSink creates a sink backed by the given logger.
func NewLogSink(logger *log.Logger) *LogSink {
	return &LogSink{logger: logger}
}

func (s *LogSink) RoundStarted(moduleID string, round int) {
	s.logger.Debug("round started", "module", moduleID, "round", round)
}

func (s *LogSink) RoundResolved(moduleID string, round int, rawScore, maxScore int, normalized float64) {
	s.logger.Info("round resolved",
		"module", moduleID,
		"round", round,
		"score", rawScore,
		"max", maxScore,
		"normalized", normalized,
	)
}

func (s *LogSink) SessionFinished(roundsPlayed int, score float64, grade string, abandoned bool) {
	s.logger.Info("session finished",
		"rounds", roundsPlayed,
		"score", score,
		"grade", grade,
		"abandoned", abandoned,
	)
}

var _ Sink = (*LogSink)(nil)
