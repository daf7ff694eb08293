// Package tui runs 2048 modes in the terminal with Bubble Tea, both
// locally and for SSH sessions.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// defaultTickRate drives animations when the runtime config leaves the
// rate unset.
const defaultTickRate = 60

// TickMsg advances the game by one simulation step.
type TickMsg time.Time

// tickInterval is the time between ticks at rate ticks per second.
func tickInterval(rate int) time.Duration {
	if rate <= 0 {
		rate = defaultTickRate
	}
	return time.Second / time.Duration(rate)
}

// tickCmd schedules the next TickMsg.
func tickCmd(rate int) tea.Cmd {
	return tea.Tick(tickInterval(rate), func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}
