// Package tui provides the Bubble Tea integration for the game.
// It handles the terminal UI, input mapping and the shift -> settle ->
// spawn turn sequence, plus the Wish SSH server for remote play.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// settledMsg is sent when the settle pause after a shift has elapsed
// and the pending tile should spawn.
type settledMsg time.Time

// settleCmd returns a Bubble Tea command that waits out the settle
// delay before the spawn step, so merges read as movement before the
// new tile appears.
func settleCmd(delay time.Duration) tea.Cmd {
	return tea.Tick(delay, func(t time.Time) tea.Msg {
		return settledMsg(t)
	})
}
