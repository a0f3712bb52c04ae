package session

import "testing"

func TestTimerCountsDownAndExpiresOnce(t *testing.T) {
	var ticks []int
	expires := 0

	tm := NewRoundTimer(func(remaining int) {
		ticks = append(ticks, remaining)
	}, func() {
		expires++
	})

	tm.Start(3)
	if tm.State() != TimerRunning {
		t.Fatalf("state after Start = %s, want running", tm.State())
	}

	for i := 0; i < 10; i++ {
		tm.Tick()
	}

	if expires != 1 {
		t.Errorf("expire fired %d times, want exactly 1", expires)
	}
	if tm.State() != TimerExpired {
		t.Errorf("state = %s, want expired", tm.State())
	}
	if len(ticks) != 3 {
		t.Errorf("got %d ticks, want 3 (extra ticks after expiry must be ignored)", len(ticks))
	}
	if ticks[0] != 2 || ticks[1] != 1 || ticks[2] != 0 {
		t.Errorf("tick values = %v, want [2 1 0]", ticks)
	}
}

func TestTimerPauseHoldsRemaining(t *testing.T) {
	tm := NewRoundTimer(nil, nil)
	tm.Start(30)

	// Run down to remaining=18
	for i := 0; i < 12; i++ {
		tm.Tick()
	}
	if tm.Remaining() != 18 {
		t.Fatalf("remaining = %d, want 18", tm.Remaining())
	}

	// Five seconds of real time pass while paused
	tm.Pause()
	for i := 0; i < 5; i++ {
		tm.Tick()
	}
	if tm.Remaining() != 18 {
		t.Errorf("remaining after paused ticks = %d, want 18 (pause must never decrease the clock)", tm.Remaining())
	}

	// Resume: expiry exactly 18 simulated seconds later, not 13
	tm.Resume()
	expired := false
	for i := 0; i < 18; i++ {
		if tm.State() == TimerExpired {
			expired = true
			break
		}
		tm.Tick()
	}
	if expired {
		t.Error("timer expired early after resume")
	}
	if tm.State() != TimerExpired {
		t.Errorf("state after 18 resumed ticks = %s, want expired", tm.State())
	}
}

func TestTimerPauseResumeIdempotent(t *testing.T) {
	tm := NewRoundTimer(nil, nil)
	tm.Start(10)

	tm.Pause()
	tm.Pause()
	if tm.State() != TimerPaused {
		t.Errorf("state after double pause = %s, want paused", tm.State())
	}

	tm.Resume()
	tm.Resume()
	if tm.State() != TimerRunning {
		t.Errorf("state after double resume = %s, want running", tm.State())
	}
	if tm.Remaining() != 10 {
		t.Errorf("remaining = %d, want 10", tm.Remaining())
	}

	// Pause on an idle timer is a no-op
	idle := NewRoundTimer(nil, nil)
	idle.Pause()
	if idle.State() != TimerIdle {
		t.Errorf("pause on idle timer changed state to %s", idle.State())
	}
}

func TestTimerRestartTearsDownPreviousRun(t *testing.T) {
	expires := 0
	tm := NewRoundTimer(nil, func() { expires++ })

	tm.Start(2)
	tm.Tick()

	// Restart while running: the previous countdown must not survive to
	// race the new one.
	tm.Start(5)
	if tm.Remaining() != 5 {
		t.Errorf("remaining after restart = %d, want 5", tm.Remaining())
	}

	for i := 0; i < 5; i++ {
		tm.Tick()
	}
	if expires != 1 {
		t.Errorf("expire fired %d times across restart, want exactly 1", expires)
	}
}

func TestTimerZeroDurationExpiresImmediately(t *testing.T) {
	expires := 0
	tm := NewRoundTimer(nil, func() { expires++ })

	tm.Start(0)
	if tm.State() != TimerExpired {
		t.Errorf("state = %s, want expired", tm.State())
	}
	if expires != 1 {
		t.Errorf("expire fired %d times, want 1", expires)
	}
}

func TestTimerStopPreventsTrailingTicks(t *testing.T) {
	expires := 0
	tm := NewRoundTimer(nil, func() { expires++ })

	tm.Start(1)
	tm.Stop()
	tm.Tick()

	if expires != 0 {
		t.Errorf("expire fired after Stop")
	}
	if tm.State() != TimerIdle {
		t.Errorf("state after Stop = %s, want idle", tm.State())
	}
}
