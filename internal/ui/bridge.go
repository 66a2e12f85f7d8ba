package ui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rileyhilliard/pbar/internal/indicator"
)

// Bridge forwards engine events to a Bubble Tea program. It is an
// indicator.Observer.
//
// Sends are asynchronous: the engine may report an event from inside the
// program's own Update (when the model notifies a transition end), and a
// synchronous Send there would never be received.
type Bridge struct {
	program *tea.Program
}

// NewBridge creates a bridge for program.
func NewBridge(program *tea.Program) *Bridge {
	return &Bridge{program: program}
}

// OnEvent implements indicator.Observer.
func (b *Bridge) OnEvent(ev indicator.Event) {
	go b.program.Send(EventMsg{Event: ev})
}
