package ui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Neon palette used by the indicator gradient and spinner.
const (
	ColorNeonPink   lipgloss.Color = "#FF2E97"
	ColorNeonCyan   lipgloss.Color = "#00F0FF"
	ColorNeonPurple lipgloss.Color = "#B967FF"
	ColorNeonGreen  lipgloss.Color = "#39FF14"
)

// Semantic colors for status indication
const (
	ColorSuccess lipgloss.Color = "#39FF14"
	ColorError   lipgloss.Color = "#FF3B5C"
	ColorWarning lipgloss.Color = "#FFB000"
	ColorInfo    lipgloss.Color = "#00F0FF"
)

// Text colors for content hierarchy
const (
	ColorPrimary   lipgloss.Color = "#E6E6F0"
	ColorSecondary lipgloss.Color = "#B967FF"
	ColorMuted     lipgloss.Color = "#6C6C80"
)

// GradientColors is the pink -> purple -> cyan -> green sweep the spinner
// cycles through. The first and last entries also bound the bar gradient.
var GradientColors = []lipgloss.Color{
	ColorNeonPink,
	ColorNeonPurple,
	ColorNeonCyan,
	ColorNeonGreen,
}

// Color modes accepted by ApplyColorMode.
const (
	ColorModeAuto   = "auto"
	ColorModeAlways = "always"
	ColorModeNever  = "never"
)

// SuccessStyle renders text in the success color.
func SuccessStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(ColorSuccess)
}

// ErrorStyle renders text in the error color.
func ErrorStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(ColorError)
}

// WarningStyle renders text in the warning color.
func WarningStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(ColorWarning)
}

// InfoStyle renders text in the info color.
func InfoStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(ColorInfo)
}

// MutedStyle renders secondary text.
func MutedStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(ColorMuted)
}

// DisableColors switches all rendering to plain text (for --no-color).
func DisableColors() {
	lipgloss.SetColorProfile(termenv.Ascii)
}

// ApplyColorMode sets the color profile for "auto", "always" or "never".
// Auto keeps whatever lipgloss detected from the terminal.
func ApplyColorMode(mode string) {
	switch mode {
	case ColorModeNever:
		DisableColors()
	case ColorModeAlways:
		lipgloss.SetColorProfile(termenv.TrueColor)
	}
}

