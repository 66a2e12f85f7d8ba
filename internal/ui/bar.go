package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Bar block characters.
const (
	BarFilled = '█'
	BarEmpty  = '░'
)

// BarColorFunc picks the fill color for a percentage.
type BarColorFunc func(percent float64) lipgloss.Color

// GradientColor walks GradientColors as the bar fills: pink at the start,
// green once it is nearly full.
func GradientColor(percent float64) lipgloss.Color {
	idx := int(ClampPercent(percent) / 100 * float64(len(GradientColors)))
	if idx >= len(GradientColors) {
		idx = len(GradientColors) - 1
	}
	return GradientColors[idx]
}

// SolidColor always returns ColorSecondary.
func SolidColor(float64) lipgloss.Color {
	return ColorSecondary
}

// BarConfig configures bar rendering.
type BarConfig struct {
	Width       int          // Width of the bar in characters
	Brackets    bool         // Whether to wrap bar in [ ]
	ColorFunc   BarColorFunc // Fill color; nil renders unstyled
	ShowPercent bool         // Whether to append the percentage
	Faded       bool         // Render muted, for the fade-out
}

// DefaultBarConfig returns the config the inline renderer uses.
func DefaultBarConfig(width int) BarConfig {
	return BarConfig{
		Width:       width,
		Brackets:    true,
		ColorFunc:   GradientColor,
		ShowPercent: true,
	}
}

// ClampPercent clamps a percentage to the 0-100 range.
func ClampPercent(percent float64) float64 {
	if percent < 0 {
		return 0
	}
	if percent > 100 {
		return 100
	}
	return percent
}

// BuildBarString builds the raw bar string (without styling) from filled/empty counts.
// If brackets is true, wraps in [ ].
func BuildBarString(filledCount, emptyCount int, brackets bool) string {
	var sb strings.Builder
	capacity := filledCount + emptyCount
	if brackets {
		capacity += 2
	}
	sb.Grow(capacity)

	if brackets {
		sb.WriteRune('[')
	}
	for i := 0; i < filledCount; i++ {
		sb.WriteRune(BarFilled)
	}
	for i := 0; i < emptyCount; i++ {
		sb.WriteRune(BarEmpty)
	}
	if brackets {
		sb.WriteRune(']')
	}

	return sb.String()
}

// CalculateBarCounts returns the number of filled and empty characters for a bar.
// Percent should be 0-100, width is the total bar width.
func CalculateBarCounts(percent float64, width int) (filled, empty int) {
	filled = int((ClampPercent(percent) / 100.0) * float64(width))
	empty = width - filled
	return
}

// RenderBar renders a bar for a 0-100 percentage.
func RenderBar(percent float64, config BarConfig) string {
	if config.Width <= 0 {
		return ""
	}

	percent = ClampPercent(percent)
	filled, empty := CalculateBarCounts(percent, config.Width)

	var bar string
	switch {
	case config.Faded:
		bar = MutedStyle().Faint(true).Render(BuildBarString(filled, empty, config.Brackets))
	case config.ColorFunc != nil:
		fill := lipgloss.NewStyle().Foreground(config.ColorFunc(percent))
		rest := lipgloss.NewStyle().Foreground(ColorMuted)
		bar = fill.Render(strings.Repeat(string(BarFilled), filled)) + rest.Render(strings.Repeat(string(BarEmpty), empty))
		if config.Brackets {
			bar = "[" + bar + "]"
		}
	default:
		bar = BuildBarString(filled, empty, config.Brackets)
	}

	if config.ShowPercent {
		bar += fmt.Sprintf(" %3.0f%%", percent)
	}
	return bar
}
