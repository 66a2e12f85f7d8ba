package ui

import (
	"time"

	"github.com/rileyhilliard/pbar/internal/indicator"
)

// EventMsg carries an engine event into a Bubble Tea program.
type EventMsg struct {
	Event indicator.Event
}

// frameMsg signals a periodic poll of the engine state.
type frameMsg time.Time

// fadeDoneMsg reports that the wrapper fade-out with the given id finished.
type fadeDoneMsg struct {
	id int
}
