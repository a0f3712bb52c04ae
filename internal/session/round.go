package session

import (
	"github.com/minutegames/gauntlet/internal/analytics"
	"github.com/minutegames/gauntlet/internal/content"
	"github.com/minutegames/gauntlet/internal/core"
)

// RoundPhase is the round controller's position in its lifecycle.
type RoundPhase int

const (
	PhaseCountdown RoundPhase = iota
	PhaseActive
	PhasePaused
	PhaseResolving
	PhaseResolved
)

// String returns a human-readable name for the phase.
func (p RoundPhase) String() string {
	switch p {
	case PhaseCountdown:
		return "countdown"
	case PhaseActive:
		return "active"
	case PhasePaused:
		return "paused"
	case PhaseResolving:
		return "resolving"
	case PhaseResolved:
		return "resolved"
	default:
		return "unknown"
	}
}

// ResolveTrigger identifies what ended a round. Whichever trigger arrives
// first wins; later triggers for the same round are no-ops.
type ResolveTrigger int

const (
	TriggerTimeout ResolveTrigger = iota
	TriggerCompleted
	TriggerForced
)

// String returns a human-readable name for the trigger.
func (t ResolveTrigger) String() string {
	switch t {
	case TriggerTimeout:
		return "timeout"
	case TriggerCompleted:
		return "completed"
	case TriggerForced:
		return "forced"
	default:
		return "unknown"
	}
}

// RoundConfig carries everything a round needs at construction.
type RoundConfig struct {
	Index            int
	DurationSeconds  int
	CountdownSeconds int
	Runtime          core.RuntimeConfig
	Pack             content.Pack
}

// Round owns the lifecycle of exactly one mounted module instance and
// reduces its behavior to a single terminal event: the onResolved callback
// with the round's final score report.
//
// Lifecycle: countdown → active ⇄ paused → resolving → resolved. The
// resolved guard makes resolution idempotent no matter which of the racing
// event sources (timer expiry, module self-completion, force-advance)
// fires first; the score is read and RoundEnd invoked exactly once.
//
// A Round is not reused: the session controller creates a fresh one per
// round.
type Round struct {
	index  int
	desc   Descriptor
	module Module // may be nil on load failure
	cfg    RoundConfig

	timer     *RoundTimer
	countdown *Countdown

	phase    RoundPhase
	resolved bool
	trigger  ResolveTrigger

	onResolved func(ScoreReport)
	sink       analytics.Sink
}

// NewRound creates a round for one entry in the session sequence.
// module may be nil when construction or content loading failed; such a
// round resolves to a zero score as soon as it would go active, and the
// session carries on.
func NewRound(desc Descriptor, module Module, cfg RoundConfig, sink analytics.Sink, onResolved func(ScoreReport)) *Round {
	if sink == nil {
		sink = analytics.NopSink{}
	}

	r := &Round{
		index:      cfg.Index,
		desc:       desc,
		module:     module,
		cfg:        cfg,
		phase:      PhaseCountdown,
		onResolved: onResolved,
		sink:       sink,
	}

	r.timer = NewRoundTimer(nil, func() {
		r.resolve(TriggerTimeout)
	})
	r.countdown = NewCountdown(cfg.CountdownSeconds, r.activate)

	return r
}

// Begin arms the round. With no countdown configured it activates
// immediately; otherwise the countdown's ticks drive activation. Kept out
// of the constructor so the caller holds a reference before any resolution
// can cascade.
func (r *Round) Begin() {
	if r.cfg.CountdownSeconds <= 0 {
		r.countdown.SkipToStart()
	}
}

// activate moves the round from countdown to active: the timer starts with
// the configured duration and the module is mounted. Countdown completion
// and the explicit skip both land here, so the entry logic cannot diverge.
func (r *Round) activate() {
	if r.phase != PhaseCountdown || r.resolved {
		return
	}

	if r.module == nil {
		// Configuration or content failure: the round still terminates
		// through the normal path, scored zero.
		r.resolve(TriggerForced)
		return
	}

	r.phase = PhaseActive
	r.timer.Start(r.cfg.DurationSeconds)

	r.startModule()
	r.sink.RoundStarted(r.desc.ID, r.index)
}

func (r *Round) startModule() {
	defer func() {
		if recover() != nil {
			r.module = nil
			r.resolve(TriggerForced)
		}
	}()
	r.module.Start(StartConfig{
		Runtime:         r.cfg.Runtime,
		DurationSeconds: r.cfg.DurationSeconds,
		Pack:            r.cfg.Pack,
	})
}

// TickSecond consumes one wall-clock second: it advances the countdown
// before activation and the round timer after. While the module reports
// busy the timer is paused, so the second is absorbed without decrementing.
func (r *Round) TickSecond() {
	switch r.phase {
	case PhaseCountdown:
		r.countdown.Tick()
	case PhaseActive, PhasePaused:
		r.timer.Tick()
	}
}

// Step advances the module by one simulation frame and re-evaluates the
// busy and completion probes. The module keeps stepping while paused (it
// is running its own feedback animation); only the timer is held.
func (r *Round) Step(in core.InputFrame) {
	if r.resolved || r.module == nil {
		return
	}
	if r.phase != PhaseActive && r.phase != PhasePaused {
		return
	}

	r.stepModule(in)
	if r.resolved {
		return
	}

	if br, ok := r.module.(BusyReporter); ok {
		if br.Busy() {
			r.timer.Pause()
			r.phase = PhasePaused
		} else {
			r.timer.Resume()
			r.phase = PhaseActive
		}
	}

	if c, ok := r.module.(Completer); ok && c.Completed() {
		r.resolve(TriggerCompleted)
	}
}

func (r *Round) stepModule(in core.InputFrame) {
	defer func() {
		if recover() != nil {
			// A crashing module ends its round with whatever score it had.
			r.resolve(TriggerForced)
		}
	}()
	r.module.Step(in)
}

// SkipCountdown is the player's "start now" command. A no-op outside the
// countdown phase.
func (r *Round) SkipCountdown() {
	if r.phase == PhaseCountdown {
		r.countdown.SkipToStart()
	}
}

// SkipQuestion forwards the player's skip to the module without touching
// the round's own state: the round keeps running, only the module's
// internal position moves. Silently ignored for modules that do not
// support skipping.
func (r *Round) SkipQuestion() {
	if r.phase != PhaseActive && r.phase != PhasePaused {
		return
	}
	if s, ok := r.module.(Skipper); ok {
		s.SkipQuestion()
	}
}

// ForceAdvance resolves the round immediately with the module's current
// score. This is the external early-exit path, used both for the player's
// manual round skip and for session abandonment.
func (r *Round) ForceAdvance() {
	r.resolve(TriggerForced)
}

// resolve computes and reports the terminal score. The resolved guard is
// checked before anything else: whichever trigger gets here first wins and
// every later call is a no-op, which is the invariant that keeps the
// session total from being corrupted by double-reporting.
func (r *Round) resolve(trigger ResolveTrigger) {
	if r.resolved {
		return
	}
	r.resolved = true
	r.trigger = trigger
	r.phase = PhaseResolving

	// No trailing tick may fire after resolution.
	r.timer.Stop()

	report := r.readScore()
	r.finishModule()

	r.phase = PhaseResolved
	r.sink.RoundResolved(r.desc.ID, r.index, report.Score, report.Max, Normalize(report.Score, report.Max))

	if r.onResolved != nil {
		r.onResolved(report)
	}
}

// readScore queries the module once and sanitizes the result. A missing
// module or a panicking/malformed Score substitutes the zero report {0,1}
// instead of propagating the failure.
func (r *Round) readScore() (report ScoreReport) {
	report = ScoreReport{Score: 0, Max: 1}
	if r.module == nil {
		return report
	}

	defer func() {
		if recover() != nil {
			report = ScoreReport{Score: 0, Max: 1}
		}
	}()

	got := r.module.Score()
	if got.Max <= 0 {
		return ScoreReport{Score: 0, Max: 1}
	}
	if got.Score < 0 {
		got.Score = 0
	}
	return got
}

// finishModule gives the module its one chance to freeze state.
func (r *Round) finishModule() {
	f, ok := r.module.(Finisher)
	if !ok {
		return
	}
	defer func() {
		_ = recover() // a crashing RoundEnd must not block resolution
	}()
	f.RoundEnd()
}

// Render draws the mounted module into the screen buffer. Safe to call in
// any phase; before activation or after a module failure it draws nothing.
func (r *Round) Render(dst *core.Screen) {
	if r.module == nil || r.phase == PhaseCountdown {
		return
	}
	defer func() {
		_ = recover()
	}()
	r.module.Render(dst)
}

// LiveScore returns the module's current report for display purposes.
// This is the read-any-time side of the scoring contract; the terminal
// read in resolve is separate and happens exactly once.
func (r *Round) LiveScore() (report ScoreReport) {
	report = ScoreReport{Score: 0, Max: 1}
	if r.module == nil {
		return report
	}
	defer func() {
		if recover() != nil {
			report = ScoreReport{Score: 0, Max: 1}
		}
	}()
	return r.module.Score()
}

// Index returns the round's position in the session sequence.
func (r *Round) Index() int {
	return r.index
}

// Descriptor returns the static metadata of the mounted game.
func (r *Round) Descriptor() Descriptor {
	return r.desc
}

// Phase returns the round's current lifecycle phase.
func (r *Round) Phase() RoundPhase {
	return r.phase
}

// Trigger returns what resolved the round. Meaningful once resolved.
func (r *Round) Trigger() ResolveTrigger {
	return r.trigger
}

// Remaining returns the seconds left on the round clock.
func (r *Round) Remaining() int {
	return r.timer.Remaining()
}

// CountdownDisplay returns the countdown text for rendering.
func (r *Round) CountdownDisplay() string {
	return r.countdown.Display()
}
