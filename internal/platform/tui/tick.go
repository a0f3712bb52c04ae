// Package tui provides the Bubble Tea integration for the gauntlet platform.
// It owns the terminal loop, the keymap, and the two clocks the session core
// is driven by: simulation frames and wall-clock seconds.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// FrameMsg is sent once per simulation frame.
type FrameMsg time.Time

// SecondMsg is sent once per wall-clock second and drives the round clock.
type SecondMsg time.Time

// frameCmd returns a Bubble Tea command that sends frame messages at the
// specified rate.
func frameCmd(tickRate int) tea.Cmd {
	if tickRate <= 0 {
		tickRate = 30
	}
	interval := time.Second / time.Duration(tickRate)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return FrameMsg(t)
	})
}

// secondCmd returns a Bubble Tea command that sends one message per second.
func secondCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return SecondMsg(t)
	})
}
