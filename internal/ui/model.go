package ui

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rileyhilliard/pbar/internal/indicator"
)

// Notifier reports the end of a visual transition, normally an
// *indicator.Transitions hub shared with the engine.
type Notifier interface {
	Notify(el indicator.Element) int
}

// ModelOptions configures IndicatorModel.
type ModelOptions struct {
	// Label is drawn next to the bar.
	Label string
	// Width of the bar in cells. Default: 40
	Width int
	// Gradient fills the bar with the neon gradient instead of a solid color.
	Gradient bool
	// Interval between engine polls. Default: indicator.DefaultFrameInterval
	Interval time.Duration
	// Fade is how long the wrapper fade-out lasts. Default: indicator.DefaultTransitionDuration
	Fade time.Duration
	// Trace draws a sparkline of recent percentages after the bar.
	Trace bool
	// Cancel is called when the user quits with q or ctrl+c.
	Cancel context.CancelFunc
}

const (
	defaultBarWidth = 40
	minBarWidth     = 10
	maxBarWidth     = 80
)

// IndicatorModel renders an engine with the Bubble Tea progress bar. The
// bar's spring animation is the indicator transition and the timed fade
// is the wrapper transition; the model reports both ends to the Notifier.
// It quits once a started cycle has returned to idle.
type IndicatorModel struct {
	source   StateSource
	notifier Notifier
	opts     ModelOptions

	bar     progress.Model
	spinner spinner.Model
	trace   traceBuffer

	state             indicator.State
	target            float64
	started           bool
	indicatorNotified bool
	fading            bool
	fadeID            int
	done              bool
	quitting          bool
}

// NewIndicatorModel creates a model polling source.
func NewIndicatorModel(source StateSource, notifier Notifier, opts ModelOptions) IndicatorModel {
	if opts.Width <= 0 {
		opts.Width = defaultBarWidth
	}
	if opts.Interval <= 0 {
		opts.Interval = indicator.DefaultFrameInterval
	}
	if opts.Fade <= 0 {
		opts.Fade = indicator.DefaultTransitionDuration
	}

	fill := progress.WithSolidFill(string(ColorSecondary))
	if opts.Gradient {
		fill = progress.WithGradient(string(ColorNeonPink), string(ColorNeonCyan))
	}

	return IndicatorModel{
		source:   source,
		notifier: notifier,
		opts:     opts,
		bar:      progress.New(fill, progress.WithWidth(opts.Width)),
		spinner:  newSpinner(),
		trace:    traceBuffer{limit: DefaultTraceWidth},
	}
}

// Init returns the initial commands for the model.
func (m IndicatorModel) Init() tea.Cmd {
	return tea.Batch(
		m.spinner.Tick,
		frameCmd(m.opts.Interval),
	)
}

// Update handles messages and updates the model state.
func (m IndicatorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		w := msg.Width - len([]rune(m.opts.Label)) - 4
		if w > m.opts.Width {
			w = m.opts.Width
		}
		if w > maxBarWidth {
			w = maxBarWidth
		}
		if w < minBarWidth {
			w = minBarWidth
		}
		m.bar.Width = w
		return m, nil

	case frameMsg:
		var cmd tea.Cmd
		m, cmd = m.refresh()
		if m.opts.Trace && m.state.Visible {
			m.trace = m.trace.push(m.state.Percentage)
		}
		if m.done {
			return m, cmd
		}
		return m, tea.Batch(cmd, frameCmd(m.opts.Interval))

	case EventMsg:
		return m.refresh()

	case fadeDoneMsg:
		if m.fading && msg.id == m.fadeID {
			m.fading = false
			m.notifier.Notify(indicator.ElementWrapper)
		}
		return m.refresh()

	case progress.FrameMsg:
		pm, cmd := m.bar.Update(msg)
		m.bar = pm.(progress.Model)
		return m, cmd

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

// refresh pulls the engine state and drives both transitions from it.
func (m IndicatorModel) refresh() (IndicatorModel, tea.Cmd) {
	if m.done {
		return m, nil
	}

	s := m.source.State()
	m.state = s
	if s.Visible {
		m.started = true
	}

	var cmds []tea.Cmd

	if target := s.Fraction(); target != m.target {
		m.target = target
		cmds = append(cmds, m.bar.SetPercent(target))
	}

	if !s.AwaitingIndicator {
		m.indicatorNotified = false
	} else if !m.indicatorNotified && m.target >= 1 && !m.bar.IsAnimating() {
		m.indicatorNotified = true
		m.notifier.Notify(indicator.ElementIndicator)
	}

	switch {
	case s.Fading && !m.fading:
		m.fading = true
		m.fadeID++
		cmds = append(cmds, fadeCmd(m.opts.Fade, m.fadeID))
	case !s.Fading:
		m.fading = false
	}

	if m.started && s.Phase == indicator.PhaseIdle {
		m.done = true
		cmds = append(cmds, tea.Quit)
	}

	return m, tea.Batch(cmds...)
}

// handleKey processes keyboard input.
func (m IndicatorModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		if m.opts.Cancel != nil {
			m.opts.Cancel()
		}
		m.quitting = true
		return m, tea.Quit
	}
	return m, nil
}

// State returns the last polled engine state.
func (m IndicatorModel) State() indicator.State {
	return m.state
}

// View renders the indicator line.
func (m IndicatorModel) View() string {
	if m.quitting || m.done || !m.state.Visible {
		return ""
	}

	var symbol string
	switch m.state.Phase {
	case indicator.PhaseIndeterminate:
		symbol = m.spinner.View()
	case indicator.PhaseDeterminate:
		symbol = InfoStyle().Render(SymbolProgress)
	default:
		symbol = SuccessStyle().Render(SymbolComplete)
	}

	bar := m.bar.View()
	if m.state.Fading {
		bar = MutedStyle().Faint(true).Render(stripAnsi(bar))
	}

	var sb strings.Builder
	sb.WriteString(symbol)
	sb.WriteString(" ")
	if m.opts.Label != "" {
		sb.WriteString(m.opts.Label)
		sb.WriteString(" ")
	}
	sb.WriteString(bar)
	if m.opts.Trace {
		sb.WriteString(" ")
		sb.WriteString(RenderTrace(m.trace.samples, DefaultTraceWidth))
	}
	sb.WriteString("\n")
	return sb.String()
}

// frameCmd returns a command that polls the engine after interval.
func frameCmd(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return frameMsg(t)
	})
}

func fadeCmd(d time.Duration, id int) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return fadeDoneMsg{id: id}
	})
}
