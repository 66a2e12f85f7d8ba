package ui

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderTrace_Empty(t *testing.T) {
	assert.Empty(t, RenderTrace(nil, 10))
	assert.Empty(t, RenderTrace([]float64{}, 10))
	assert.Empty(t, RenderTrace([]float64{50}, 0))
	assert.Empty(t, RenderTrace([]float64{50}, -1))
}

func TestRenderTrace_AbsoluteLevels(t *testing.T) {
	out := stripAnsi(RenderTrace([]float64{0, 50, 100}, 10))
	assert.Equal(t, "▁▄█", out)

	flat := stripAnsi(RenderTrace([]float64{100, 100}, 10))
	assert.Equal(t, "██", flat, "equal samples keep their absolute level")
}

func TestRenderTrace_Width(t *testing.T) {
	samples := []float64{0, 10, 20, 30, 40, 50, 60, 70, 80, 90}
	out := stripAnsi(RenderTrace(samples, 4))
	assert.Equal(t, 4, len([]rune(out)))
	assert.True(t, strings.HasSuffix(out, "▇"), "the newest samples are kept")
}

func TestRenderTrace_ClampsOutOfRange(t *testing.T) {
	out := stripAnsi(RenderTrace([]float64{-20, 250}, 10))
	assert.Equal(t, "▁█", out)
}

func TestTraceLevel(t *testing.T) {
	assert.Equal(t, 0, traceLevel(0))
	assert.Equal(t, 0, traceLevel(10))
	assert.Equal(t, 3, traceLevel(50))
	assert.Equal(t, 7, traceLevel(100))
}

func TestTraceColor(t *testing.T) {
	assert.Equal(t, ColorSecondary, traceColor(99.9))
	assert.Equal(t, ColorSuccess, traceColor(100))
}

func TestTraceBuffer(t *testing.T) {
	b := traceBuffer{limit: 3}
	for _, v := range []float64{1, 2, 3, 4, 5} {
		b = b.push(v)
	}
	assert.Equal(t, []float64{3, 4, 5}, b.samples)
}
