package session

import "strconv"

// Countdown is the pre-round "3…2…1…GO" gate. Its only externally visible
// effect is the completion callback, and its only contract obligation is to
// fire it exactly once, whether reached by natural ticking or by the
// player's "start now" shortcut. The fired flag is checked before the
// callback ever runs, which removes the double-fire class of bug rather
// than patching around it.
type Countdown struct {
	remaining  int
	fired      bool
	onComplete func()
}

// NewCountdown creates a countdown of the given length in seconds.
// A non-positive length completes on the first tick.
func NewCountdown(seconds int, onComplete func()) *Countdown {
	if seconds < 0 {
		seconds = 0
	}
	return &Countdown{
		remaining:  seconds,
		onComplete: onComplete,
	}
}

// Tick consumes one second. When the count reaches zero the completion
// callback fires.
func (c *Countdown) Tick() {
	if c.fired {
		return
	}
	if c.remaining > 0 {
		c.remaining--
	}
	if c.remaining == 0 {
		c.complete()
	}
}

// SkipToStart short-circuits the remaining ticks and completes immediately.
func (c *Countdown) SkipToStart() {
	c.remaining = 0
	c.complete()
}

func (c *Countdown) complete() {
	if c.fired {
		return
	}
	c.fired = true
	if c.onComplete != nil {
		c.onComplete()
	}
}

// Done reports whether the countdown has completed.
func (c *Countdown) Done() bool {
	return c.fired
}

// Display returns the text for the current count: the number while
// counting, "GO" once complete.
func (c *Countdown) Display() string {
	if c.fired || c.remaining == 0 {
		return "GO"
	}
	return strconv.Itoa(c.remaining)
}
