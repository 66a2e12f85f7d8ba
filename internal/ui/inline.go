package ui

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/rileyhilliard/pbar/internal/indicator"
)

// DefaultInlineInterval is the redraw period of InlineIndicator.
const DefaultInlineInterval = 100 * time.Millisecond

// StateSource is anything that can report indicator state, normally an
// *indicator.Engine.
type StateSource interface {
	State() indicator.State
}

// InlineIndicator draws an indicator on a single line outside Bubble Tea.
// It redraws on a goroutine ticker and draws the final state immediately, so
// it pairs with indicator.TimedTransitions.
//
// In plain mode (non-TTY output) it writes one unstyled line per phase change
// or 10% step instead of redrawing in place.
type InlineIndicator struct {
	mu           sync.Mutex
	source       StateSource
	label        string
	output       io.Writer
	width        int
	interval     time.Duration
	plain        bool
	startTime    time.Time
	stopChan     chan struct{}
	doneChan     chan struct{}
	running      bool
	frame        int
	lastRendered string
	lastPlain    string
}

// NewInlineIndicator creates an inline renderer for source.
func NewInlineIndicator(source StateSource, label string, output io.Writer) *InlineIndicator {
	return &InlineIndicator{
		source:   source,
		label:    label,
		output:   output,
		width:    30,
		interval: DefaultInlineInterval,
	}
}

// SetWidth sets the bar width.
func (p *InlineIndicator) SetWidth(w int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if w > 0 {
		p.width = w
	}
}

// SetInterval sets the redraw period.
func (p *InlineIndicator) SetInterval(d time.Duration) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if d > 0 {
		p.interval = d
	}
}

// SetPlain switches to line-per-step output without ANSI styling.
func (p *InlineIndicator) SetPlain(plain bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.plain = plain
}

// Start begins redrawing.
func (p *InlineIndicator) Start() {
	p.mu.Lock()
	if p.running {
		p.mu.Unlock()
		return
	}
	p.running = true
	p.startTime = time.Now()
	p.stopChan = make(chan struct{})
	p.doneChan = make(chan struct{})
	interval := p.interval
	p.mu.Unlock()

	p.render()

	go p.animate(interval)
}

// Stop halts redrawing and clears the line.
func (p *InlineIndicator) Stop() {
	p.mu.Lock()
	if !p.running {
		p.mu.Unlock()
		return
	}
	p.running = false
	close(p.stopChan)
	p.mu.Unlock()

	<-p.doneChan

	p.mu.Lock()
	p.clearLocked()
	p.mu.Unlock()
}

// Success stops and prints the success line.
func (p *InlineIndicator) Success() {
	p.Stop()
	p.renderFinal(SymbolSuccess, SuccessStyle())
}

// Fail stops and prints the failure line.
func (p *InlineIndicator) Fail() {
	p.Stop()
	p.renderFinal(SymbolFail, ErrorStyle())
}

// Interrupt stops and prints a warning line for a cycle the user cut short.
func (p *InlineIndicator) Interrupt() {
	p.Stop()
	p.renderFinal(SymbolWarning, WarningStyle())
}

func (p *InlineIndicator) animate(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	defer close(p.doneChan)

	for {
		select {
		case <-p.stopChan:
			return
		case <-ticker.C:
			p.render()
		}
	}
}

func (p *InlineIndicator) render() {
	s := p.source.State()

	p.mu.Lock()
	defer p.mu.Unlock()
	p.frame++

	if p.plain {
		p.renderPlainLocked(s)
		return
	}

	line := p.lineLocked(s)
	p.clearLocked()
	if line == "" {
		return
	}
	fmt.Fprint(p.output, "\r"+line)
	p.lastRendered = line
}

// lineLocked renders the styled line for s, or "" once the indicator is
// hidden.
func (p *InlineIndicator) lineLocked(s indicator.State) string {
	if !s.Visible {
		return ""
	}

	var symbol string
	var symbolColor lipgloss.Color
	switch s.Phase {
	case indicator.PhaseIndeterminate:
		symbol = spinnerFrames[p.frame%len(spinnerFrames)]
		symbolColor = GradientColors[(p.frame/2)%len(GradientColors)]
	case indicator.PhaseDeterminate:
		symbol = SymbolProgress
		symbolColor = ColorSecondary
	default:
		symbol = SymbolComplete
		symbolColor = ColorSuccess
	}

	cfg := DefaultBarConfig(p.width)
	cfg.Faded = s.Fading
	return fmt.Sprintf("%s %s %s",
		lipgloss.NewStyle().Foreground(symbolColor).Render(symbol),
		p.label,
		RenderBar(s.Percentage, cfg),
	)
}

func (p *InlineIndicator) renderPlainLocked(s indicator.State) {
	if !s.Visible {
		return
	}
	step := int(ClampPercent(s.Percentage) / 10)
	key := fmt.Sprintf("%s/%d", s.Phase, step)
	if key == p.lastPlain {
		return
	}
	p.lastPlain = key
	fmt.Fprintf(p.output, "%s %s %3.0f%%\n", p.label, s.Phase, s.Percentage)
}

func (p *InlineIndicator) clearLocked() {
	if p.lastRendered == "" {
		return
	}
	clearLen := len([]rune(stripAnsi(p.lastRendered)))
	fmt.Fprintf(p.output, "\r%s\r", strings.Repeat(" ", clearLen+1))
	p.lastRendered = ""
}

func (p *InlineIndicator) renderFinal(symbol string, style lipgloss.Style) {
	p.mu.Lock()
	defer p.mu.Unlock()

	timing := formatDuration(time.Since(p.startTime))

	if p.plain {
		fmt.Fprintf(p.output, "%s %s %s\n", symbol, p.label, timing)
		return
	}
	fmt.Fprintf(p.output, "%s %s %s\n",
		style.Render(symbol),
		p.label,
		MutedStyle().Render(timing),
	)
}
