package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Sparkline block characters representing 8 vertical levels (lowest to highest).
const sparklineBlocks = "▁▂▃▄▅▆▇█"

// sparklineBlockRunes provides indexed access to block characters.
var sparklineBlockRunes = []rune(sparklineBlocks)

// DefaultTraceWidth is how many samples the model's trace shows.
const DefaultTraceWidth = 24

// RenderTrace draws the most recent width percentage samples as a
// sparkline. Levels are absolute (0% is the lowest block, 100% the highest)
// so the shape of the growth curve stays comparable between cycles. The
// trace turns green once the last sample reaches 100%.
func RenderTrace(samples []float64, width int) string {
	if len(samples) == 0 || width <= 0 {
		return ""
	}

	if len(samples) > width {
		samples = samples[len(samples)-width:]
	}

	var sb strings.Builder
	sb.Grow(len(samples) * 3)
	for _, v := range samples {
		sb.WriteRune(sparklineBlockRunes[traceLevel(v)])
	}

	return lipgloss.NewStyle().Foreground(traceColor(samples[len(samples)-1])).Render(sb.String())
}

// traceLevel maps a percentage to a block index.
func traceLevel(percent float64) int {
	numLevels := len(sparklineBlockRunes)
	level := int(ClampPercent(percent) / 100 * float64(numLevels-1))
	if level >= numLevels {
		level = numLevels - 1
	}
	return level
}

func traceColor(percent float64) lipgloss.Color {
	if percent >= 100 {
		return ColorSuccess
	}
	return ColorSecondary
}

// traceBuffer keeps the last n samples.
type traceBuffer struct {
	samples []float64
	limit   int
}

func (b traceBuffer) push(v float64) traceBuffer {
	samples := append(b.samples, v)
	if len(samples) > b.limit {
		samples = append([]float64(nil), samples[len(samples)-b.limit:]...)
	}
	return traceBuffer{samples: samples, limit: b.limit}
}
