package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/minutegames/gauntlet/internal/analytics"
	"github.com/minutegames/gauntlet/internal/content"
	"github.com/minutegames/gauntlet/internal/core"
)

// State is the session controller's position in its lifecycle.
type State int

const (
	StateIdle State = iota
	StateRunning
	StateComplete
	StateAbandoned
)

// String returns a human-readable name for the state.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StateComplete:
		return "complete"
	case StateAbandoned:
		return "abandoned"
	default:
		return "unknown"
	}
}

// ErrEmptySequence is returned by Start when no modules are configured.
var ErrEmptySequence = errors.New("session: module sequence is empty")

// Config fixes the session's shape at construction time. There is no
// process-global session state: everything the controller needs travels in
// here, and persistence of results is a collaborator's job.
type Config struct {
	// CountdownSeconds is the pre-round countdown length. Zero disables
	// the countdown entirely.
	CountdownSeconds int

	// DurationOverride, when positive, replaces every module's default
	// round duration.
	DurationOverride int

	// Aggregation selects the session scoring policy.
	Aggregation Aggregation

	// Grades maps normalized scores to grade labels.
	Grades GradeScale

	// Runtime is handed to modules at mount time.
	Runtime core.RuntimeConfig
}

// DefaultConfig returns the stock session shape: five rounds is the
// sequence's business, three-second countdown, summed normalized scores.
func DefaultConfig() Config {
	return Config{
		CountdownSeconds: 3,
		Aggregation:      AggregateSumNormalized,
		Grades:           DefaultGradeScale(),
		Runtime:          core.DefaultRuntimeConfig(),
	}
}

// Controller sequences N rounds over an ordered descriptor list and
// produces a Result. It is the single writer of the accumulator: rounds
// communicate only through the resolution callback, never by direct
// mutation, which is what keeps the exactly-once invariant tractable
// without locks.
type Controller struct {
	cfg      Config
	sequence []Descriptor
	provider content.Provider
	sink     analytics.Sink

	ctx      context.Context
	state    State
	round    *Round
	result   *Result
	quitting bool
}

// NewController creates a session over the given module sequence.
// provider and sink may be nil; a nil provider serves empty packs.
func NewController(sequence []Descriptor, cfg Config, provider content.Provider, sink analytics.Sink) *Controller {
	if sink == nil {
		sink = analytics.NopSink{}
	}
	if provider == nil {
		provider = &content.StaticProvider{}
	}
	if cfg.Aggregation == "" {
		cfg.Aggregation = AggregateSumNormalized
	}
	if len(cfg.Grades) == 0 {
		cfg.Grades = DefaultGradeScale()
	}

	return &Controller{
		cfg:      cfg,
		sequence: sequence,
		provider: provider,
		sink:     sink,
		state:    StateIdle,
	}
}

// Start validates the sequence and activates round zero. Configuration
// errors (empty sequence, malformed descriptor) are fatal and reported
// here, before anything runs; the session never begins.
func (c *Controller) Start(ctx context.Context) error {
	if c.state != StateIdle {
		return fmt.Errorf("session: already started (state %s)", c.state)
	}
	if len(c.sequence) == 0 {
		return ErrEmptySequence
	}
	for i, desc := range c.sequence {
		if err := desc.Validate(); err != nil {
			return fmt.Errorf("session: round %d: %w", i, err)
		}
	}
	if ctx == nil {
		ctx = context.Background()
	}

	c.ctx = ctx
	c.state = StateRunning
	c.result = &Result{
		RoundsPlanned: len(c.sequence),
		StartedAt:     time.Now(),
	}

	c.activateRound(0)
	return nil
}

// activateRound builds a fresh round controller for the given index.
// Module construction and content fetching failures degrade to a nil
// module, which the round resolves as a zero score: module failures are
// never session failures.
func (c *Controller) activateRound(index int) {
	desc := c.sequence[index]

	module := c.buildModule(desc)

	var pack content.Pack
	if module != nil {
		var err error
		pack, err = c.provider.Fetch(c.ctx, desc.ID, index)
		if err != nil {
			// Content-load failure counts against this round only.
			module = nil
		}
	}

	duration := desc.DefaultDuration
	if c.cfg.DurationOverride > 0 {
		duration = c.cfg.DurationOverride
	}

	r := NewRound(desc, module, RoundConfig{
		Index:            index,
		DurationSeconds:  duration,
		CountdownSeconds: c.cfg.CountdownSeconds,
		Runtime:          c.roundRuntime(index),
		Pack:             pack,
	}, c.sink, c.onRoundResolved)

	c.round = r
	r.Begin()
}

func (c *Controller) buildModule(desc Descriptor) (m Module) {
	defer func() {
		if recover() != nil {
			m = nil
		}
	}()
	return desc.New()
}

// roundRuntime derives a per-round seed so replays of a session seed stay
// deterministic but rounds do not share RNG streams.
func (c *Controller) roundRuntime(index int) core.RuntimeConfig {
	rt := c.cfg.Runtime
	if rt.Seed != 0 {
		rt.Seed = rt.Seed + int64(index)*7919
	}
	return rt
}

// onRoundResolved is the single upward channel from round to session.
// It normalizes the terminal score, appends the record, and either
// advances to the next round or finalizes the session.
func (c *Controller) onRoundResolved(report ScoreReport) {
	if c.state != StateRunning || c.result == nil {
		return
	}

	index := len(c.result.Records)
	if index >= len(c.sequence) {
		return
	}

	normalized := Normalize(report.Score, report.Max)
	c.result.Records = append(c.result.Records, RoundRecord{
		Index:      index,
		ModuleID:   c.sequence[index].ID,
		RawScore:   report.Score,
		MaxScore:   report.Max,
		Normalized: normalized,
		Grade:      c.cfg.Grades.Grade(normalized),
	})

	if c.quitting {
		// Quit is finalized by Quit itself, after the forced resolution
		// lands here.
		return
	}

	if len(c.result.Records) == len(c.sequence) {
		c.finalize(false)
		return
	}

	c.activateRound(len(c.result.Records))
}

// Quit abandons the session mid-round. The active round is forced through
// the normal resolution path first (its RoundEnd runs, its score is
// recorded), then the session transitions to the terminal abandoned state.
// The partial result is retained, never discarded.
func (c *Controller) Quit() {
	if c.state != StateRunning {
		return
	}

	c.quitting = true
	if c.round != nil {
		c.round.ForceAdvance()
	}
	c.finalize(true)
}

func (c *Controller) finalize(abandoned bool) {
	c.state = StateComplete
	if abandoned {
		c.state = StateAbandoned
	}

	c.result.Complete = !abandoned
	c.result.Abandoned = abandoned
	c.result.FinishedAt = time.Now()

	c.sink.SessionFinished(
		c.result.RoundsPlayed(),
		c.result.Total(c.cfg.Aggregation),
		c.Grade(),
		abandoned,
	)
}

// TickSecond forwards one wall-clock second to the active round.
func (c *Controller) TickSecond() {
	if c.state == StateRunning && c.round != nil {
		c.round.TickSecond()
	}
}

// Step forwards one simulation frame to the active round.
func (c *Controller) Step(in core.InputFrame) {
	if c.state == StateRunning && c.round != nil {
		c.round.Step(in)
	}
}

// SkipCountdown forwards the player's "start now" command.
func (c *Controller) SkipCountdown() {
	if c.state == StateRunning && c.round != nil {
		c.round.SkipCountdown()
	}
}

// SkipQuestion forwards the player's skip-current-question command.
func (c *Controller) SkipQuestion() {
	if c.state == StateRunning && c.round != nil {
		c.round.SkipQuestion()
	}
}

// ForceAdvance resolves the current round early and moves on.
func (c *Controller) ForceAdvance() {
	if c.state == StateRunning && c.round != nil {
		c.round.ForceAdvance()
	}
}

// State returns the session lifecycle state.
func (c *Controller) State() State {
	return c.state
}

// Round returns the active round controller, or nil before Start.
func (c *Controller) Round() *Round {
	return c.round
}

// Result returns the accumulated result. Nil before Start; partial while
// running or after abandonment.
func (c *Controller) Result() *Result {
	return c.result
}

// RoundCount returns the configured total number of rounds.
func (c *Controller) RoundCount() int {
	return len(c.sequence)
}

// Aggregation returns the session's scoring policy.
func (c *Controller) Aggregation() Aggregation {
	return c.cfg.Aggregation
}

// Grade returns the session grade for the current accumulated score.
func (c *Controller) Grade() string {
	if c.result == nil {
		return c.cfg.Grades.Grade(0)
	}
	return c.cfg.Grades.Grade(c.result.Average(c.cfg.Aggregation))
}
