package ui

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rileyhilliard/pbar/internal/indicator"
	itesting "github.com/rileyhilliard/pbar/internal/indicator/testing"
)

type modelHarness struct {
	engine *indicator.Engine
	hub    *indicator.Transitions
	model  IndicatorModel
}

func newModelHarness(t *testing.T) *modelHarness {
	t.Helper()
	hub := indicator.NewTransitions()
	e := indicator.New(indicator.Options{Frames: itesting.NewFakeFrames(), Transitions: hub})
	t.Cleanup(e.Dispose)

	return &modelHarness{
		engine: e,
		hub:    hub,
		model:  NewIndicatorModel(e, hub, ModelOptions{Label: "Working", Fade: time.Millisecond}),
	}
}

func (h *modelHarness) send(msg tea.Msg) tea.Cmd {
	next, cmd := h.model.Update(msg)
	h.model = next.(IndicatorModel)
	return cmd
}

func (h *modelHarness) poll() tea.Cmd {
	return h.send(frameMsg(time.Now()))
}

// settleBar runs the bar's spring animation to equilibrium.
func (h *modelHarness) settleBar(t *testing.T) {
	t.Helper()
	cmd := h.model.bar.SetPercent(h.model.target)
	for i := 0; i < 600 && cmd != nil; i++ {
		msg, ok := cmd().(progress.FrameMsg)
		if !ok {
			break
		}
		cmd = h.send(msg)
	}
	require.False(t, h.model.bar.IsAnimating(), "bar did not settle")
}

func fraction(v float64) *float64 {
	return &v
}

func TestNewIndicatorModel_Defaults(t *testing.T) {
	m := NewIndicatorModel(&fakeSource{}, indicator.NewTransitions(), ModelOptions{})

	assert.Equal(t, defaultBarWidth, m.opts.Width)
	assert.Equal(t, indicator.DefaultFrameInterval, m.opts.Interval)
	assert.Equal(t, indicator.DefaultTransitionDuration, m.opts.Fade)
	assert.NotNil(t, m.Init())
	assert.Empty(t, m.View(), "nothing to draw before the first poll")
}

func TestIndicatorModel_DrawsVisibleState(t *testing.T) {
	h := newModelHarness(t)
	h.engine.Start()

	h.poll()

	assert.True(t, h.model.started)
	assert.Equal(t, indicator.PhaseIndeterminate, h.model.State().Phase)
	assert.Contains(t, h.model.View(), "Working")
}

func TestIndicatorModel_Trace(t *testing.T) {
	h := newModelHarness(t)
	h.model = NewIndicatorModel(h.engine, h.hub, ModelOptions{Trace: true})
	h.engine.SetProgress(fraction(50))

	h.poll()
	h.poll()
	assert.Equal(t, []float64{50, 50}, h.model.trace.samples)
	assert.Contains(t, stripAnsi(h.model.View()), "▄▄")

	h.send(EventMsg{})
	assert.Len(t, h.model.trace.samples, 2, "only frame ticks sample the trace")
}

func TestIndicatorModel_FullCycle(t *testing.T) {
	h := newModelHarness(t)
	h.engine.SetProgressFraction(fraction(0.5))
	h.poll()
	assert.Equal(t, 0.5, h.model.target)

	h.engine.Complete()
	h.poll()
	require.True(t, h.model.State().AwaitingIndicator)
	assert.Equal(t, 1.0, h.model.target)
	assert.Equal(t, 1, h.hub.Pending(indicator.ElementIndicator), "no notification while the bar is still moving")

	h.settleBar(t)
	h.poll()
	assert.Zero(t, h.hub.Pending(indicator.ElementIndicator))
	require.True(t, h.engine.State().Fading)

	h.poll()
	require.True(t, h.model.fading)
	h.send(fadeDoneMsg{id: h.model.fadeID + 1})
	assert.Equal(t, 1, h.hub.Pending(indicator.ElementWrapper), "stale fade is ignored")

	h.send(fadeDoneMsg{id: h.model.fadeID})

	assert.Equal(t, indicator.PhaseIdle, h.engine.State().Phase)
	assert.True(t, h.model.done)
	assert.Empty(t, h.model.View())
	assert.Nil(t, h.poll(), "no more polling after quitting")
}

func TestIndicatorModel_FadeCancelledByRestart(t *testing.T) {
	h := newModelHarness(t)
	h.engine.SetProgressFraction(fraction(1))
	h.poll()
	require.True(t, h.model.fading)
	id := h.model.fadeID

	h.engine.Start()
	h.poll()
	assert.False(t, h.model.fading)

	h.send(fadeDoneMsg{id: id})
	assert.True(t, h.engine.State().Active)
	assert.False(t, h.model.done)
}

func TestIndicatorModel_EventMsgRefreshes(t *testing.T) {
	h := newModelHarness(t)
	h.engine.SetProgressFraction(fraction(0.25))

	h.send(EventMsg{Event: indicator.Event{Kind: indicator.EventStarted}})

	assert.Equal(t, 0.25, h.model.target)
	assert.Contains(t, h.model.View(), SymbolProgress)
}

func TestIndicatorModel_WindowSize(t *testing.T) {
	h := newModelHarness(t)

	h.send(tea.WindowSizeMsg{Width: 200, Height: 40})
	assert.Equal(t, defaultBarWidth, h.model.bar.Width)

	h.send(tea.WindowSizeMsg{Width: 20, Height: 40})
	assert.Equal(t, minBarWidth, h.model.bar.Width)
}

func TestIndicatorModel_QuitKey(t *testing.T) {
	cancelled := false
	m := NewIndicatorModel(&fakeSource{}, indicator.NewTransitions(), ModelOptions{
		Cancel: func() { cancelled = true },
	})

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	m = next.(IndicatorModel)

	assert.True(t, cancelled)
	assert.True(t, m.quitting)
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

type recordModel struct {
	got chan indicator.Event
}

func (r recordModel) Init() tea.Cmd { return nil }

func (r recordModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if ev, ok := msg.(EventMsg); ok {
		r.got <- ev.Event
		return r, tea.Quit
	}
	return r, nil
}

func (r recordModel) View() string { return "" }

func TestBridge_ForwardsEvents(t *testing.T) {
	got := make(chan indicator.Event, 1)
	p := tea.NewProgram(recordModel{got: got},
		tea.WithInput(nil),
		tea.WithOutput(io.Discard),
		tea.WithoutRenderer(),
		tea.WithoutSignalHandler(),
	)
	done := make(chan struct{})
	go func() {
		defer close(done)
		_, _ = p.Run()
	}()

	NewBridge(p).OnEvent(indicator.Event{Kind: indicator.EventProgress})

	select {
	case ev := <-got:
		assert.Equal(t, indicator.EventProgress, ev.Kind)
	case <-time.After(2 * time.Second):
		t.Fatal("event never reached the program")
	}
	<-done
}

func TestRun_EndsWhenCycleIsIdle(t *testing.T) {
	hub := indicator.NewTransitions()
	e := indicator.New(indicator.Options{
		Frames:      indicator.NewTickerScheduler(time.Millisecond),
		Transitions: hub,
		Speed:       20 * time.Millisecond,
	})
	defer e.Dispose()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	e.Start()
	go func() {
		time.Sleep(30 * time.Millisecond)
		e.Complete()
	}()

	err := Run(ctx, e, hub, RunOptions{
		ModelOptions: ModelOptions{Label: "test", Interval: 2 * time.Millisecond, Fade: 5 * time.Millisecond},
		Output:       io.Discard,
	})

	require.NoError(t, err)
	assert.Equal(t, indicator.PhaseIdle, e.State().Phase)
}

func TestRun_ContextCancelled(t *testing.T) {
	hub := indicator.NewTransitions()
	e := indicator.New(indicator.Options{Frames: itesting.NewFakeFrames(), Transitions: hub})
	defer e.Dispose()
	e.Start()

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()

	err := Run(ctx, e, hub, RunOptions{Output: io.Discard})

	assert.ErrorIs(t, err, context.Canceled)
}
