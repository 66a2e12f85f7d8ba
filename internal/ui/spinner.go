package ui

import (
	"time"

	"github.com/charmbracelet/bubbles/spinner"
)

// spinnerFrames animate the inline renderer's indeterminate badge.
var spinnerFrames = []string{"⣾", "⣽", "⣻", "⢿", "⡿", "⣟", "⣯", "⣷"}

// SpinnerFrames is the same animation for Bubble Tea programs.
var SpinnerFrames = spinner.Spinner{
	Frames: spinnerFrames,
	FPS:    time.Second / 10,
}

func newSpinner() spinner.Model {
	sp := spinner.New()
	sp.Spinner = SpinnerFrames
	sp.Style = InfoStyle()
	return sp
}
