package session

// TimerState is the round timer's position in its lifecycle.
type TimerState int

const (
	TimerIdle TimerState = iota
	TimerRunning
	TimerPaused
	TimerExpired
)

// String returns a human-readable name for the timer state.
func (s TimerState) String() string {
	switch s {
	case TimerIdle:
		return "idle"
	case TimerRunning:
		return "running"
	case TimerPaused:
		return "paused"
	case TimerExpired:
		return "expired"
	default:
		return "unknown"
	}
}

// RoundTimer is a countdown clock ticked at one-second resolution by the
// platform. It does not keep real time itself: whoever owns the event loop
// calls Tick once per wall-clock second, which is what makes pausing a
// matter of simply not decrementing.
//
// Expiry fires exactly once per Start: Tick only decrements in the running
// state and the zero transition moves the timer to expired, so a second
// expiry would require a second Start.
type RoundTimer struct {
	state     TimerState
	remaining int
	onTick    func(remaining int)
	onExpire  func()
}

// NewRoundTimer creates an idle timer. Either callback may be nil.
func NewRoundTimer(onTick func(remaining int), onExpire func()) *RoundTimer {
	return &RoundTimer{
		state:    TimerIdle,
		onTick:   onTick,
		onExpire: onExpire,
	}
}

// Start arms the timer with the given duration. Any previous run is torn
// down first, so two overlapping countdowns can never race to expire.
// A non-positive duration expires immediately.
func (t *RoundTimer) Start(seconds int) {
	t.state = TimerRunning
	t.remaining = seconds

	if seconds <= 0 {
		t.expire()
	}
}

// Stop tears the timer down without firing expiry. Used when the round
// resolves early: no trailing tick may fire afterwards.
func (t *RoundTimer) Stop() {
	t.state = TimerIdle
	t.remaining = 0
}

// Pause suspends ticking. Idempotent; a no-op unless running.
func (t *RoundTimer) Pause() {
	if t.state == TimerRunning {
		t.state = TimerPaused
	}
}

// Resume continues ticking from the exact remaining value at which the
// timer paused. Idempotent; a no-op unless paused.
func (t *RoundTimer) Resume() {
	if t.state == TimerPaused {
		t.state = TimerRunning
	}
}

// Tick consumes one second of wall-clock time. Only a running timer
// decrements; paused, idle, and expired timers ignore the call.
func (t *RoundTimer) Tick() {
	if t.state != TimerRunning {
		return
	}

	t.remaining--
	if t.onTick != nil {
		t.onTick(t.remaining)
	}

	if t.remaining <= 0 {
		t.expire()
	}
}

func (t *RoundTimer) expire() {
	t.state = TimerExpired
	t.remaining = 0
	if t.onExpire != nil {
		t.onExpire()
	}
}

// Remaining returns the seconds left on the clock.
func (t *RoundTimer) Remaining() int {
	return t.remaining
}

// State returns the timer's current state.
func (t *RoundTimer) State() TimerState {
	return t.state
}
