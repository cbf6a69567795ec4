// Package tui provides the Bubble Tea integration for the wander
// platform. It handles the terminal UI loop, input mapping, and quest
// orchestration.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg carries the wall-clock time of a render frame. The model
// feeds the elapsed time into the fixed-timestep scheduler, which
// decides how many simulation ticks to run.
type TickMsg time.Time

// tickCmd returns a Bubble Tea command that sends tick messages at the
// specified rate.
func tickCmd(tickRate int) tea.Cmd {
	interval := time.Second / time.Duration(tickRate)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}
