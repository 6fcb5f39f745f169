// Package tui provides the Bubble Tea front end for the game: the terminal
// loop, input mapping, the scoreboard and the SSH server.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg is sent to trigger a simulation tick. Gen identifies the tick chain
// that scheduled it; ticks from a stopped chain are dropped.
type TickMsg struct {
	Gen uint64
	At  time.Time
}

// tickCmd returns a Bubble Tea command that sends one tick message for chain gen.
func tickCmd(gen uint64, tickRate int) tea.Cmd {
	if tickRate <= 0 {
		tickRate = 60
	}
	interval := time.Second / time.Duration(tickRate)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg{Gen: gen, At: t}
	})
}
