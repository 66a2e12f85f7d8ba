package cli

import (
	"context"
	"io"
	"os"
	"sync"

	"golang.org/x/term"

	"github.com/rileyhilliard/pbar/internal/config"
	"github.com/rileyhilliard/pbar/internal/indicator"
	"github.com/rileyhilliard/pbar/internal/logger"
	"github.com/rileyhilliard/pbar/internal/metrics"
	"github.com/rileyhilliard/pbar/internal/ui"
)

// renderMode selects how a session draws the indicator.
type renderMode int

const (
	// renderTUI uses the Bubble Tea model with the animated bar.
	renderTUI renderMode = iota
	// renderInline redraws a single line in place.
	renderInline
	// renderPlain writes one line per step, for pipes and CI logs.
	renderPlain
)

func (m renderMode) interactive() bool {
	return m != renderPlain
}

// pickRenderMode chooses a renderer for out.
func pickRenderMode(out io.Writer, plain bool) renderMode {
	f, ok := out.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return renderPlain
	}
	if plain {
		return renderInline
	}
	return renderTUI
}

// session wires one engine to a renderer, a logger and optional metrics.
type session struct {
	cfg     *config.Config
	out     io.Writer
	mode    renderMode
	log     logger.Logger
	metrics *metrics.Recorder
	// trace shows a sparkline of the percentage next to the TUI bar.
	trace bool
}

func newSession(cfg *config.Config, out io.Writer, mode renderMode) *session {
	s := &session{
		cfg:  cfg,
		out:  out,
		mode: mode,
		log:  logger.Default(),
	}
	if cfg.Metrics.Enabled {
		s.metrics = metrics.NewRecorder()
	}
	return s
}

// outcome is what the bound source reported when it settled.
type outcome struct {
	mu  sync.Mutex
	err error
}

func (o *outcome) OnEvent(ev indicator.Event) {
	if ev.Kind != indicator.EventSettled {
		return
	}
	o.mu.Lock()
	defer o.mu.Unlock()
	o.err = ev.Err
}

func (o *outcome) Err() error {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.err
}

// run creates an engine, hands it to begin and renders it until the cycle
// begin started has faded out, or ctx is cancelled. It returns the error the
// bound source settled with, if any.
func (s *session) run(ctx context.Context, label string, begin func(*indicator.Engine)) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var hub *indicator.Transitions
	var notifier indicator.TransitionNotifier
	if s.mode == renderTUI {
		hub = indicator.NewTransitions()
		notifier = hub
	} else {
		notifier = indicator.NewTimedTransitions(s.cfg.Display.Transition)
	}

	engine := indicator.New(indicator.Options{
		Frames:      indicator.NewTickerScheduler(s.cfg.Indicator.FrameInterval),
		Transitions: notifier,
		Speed:       s.cfg.Indicator.SpeedDuration(),
		Logger:      s.log,
	})
	defer engine.Dispose()

	if s.metrics != nil {
		defer engine.Subscribe(s.metrics)()
	}

	result := &outcome{}
	defer engine.Subscribe(result)()

	idle := make(chan struct{})
	var once sync.Once
	defer engine.Subscribe(indicator.ObserverFunc(func(ev indicator.Event) {
		if ev.Kind == indicator.EventIdle {
			once.Do(func() { close(idle) })
		}
	}))()

	if s.mode == renderTUI {
		begin(engine)
		err := ui.Run(ctx, engine, hub, ui.RunOptions{
			ModelOptions: ui.ModelOptions{
				Label:    label,
				Width:    s.cfg.Display.Width,
				Gradient: s.cfg.Display.Gradient,
				Interval: s.cfg.Indicator.FrameInterval,
				Fade:     s.cfg.Display.Fade,
				Trace:    s.trace,
				Cancel:   cancel,
			},
			Output: s.out,
		})
		if err != nil {
			return err
		}
		return result.Err()
	}

	inline := ui.NewInlineIndicator(engine, label, s.out)
	inline.SetWidth(s.cfg.Display.Width)
	inline.SetPlain(s.mode == renderPlain)
	inline.Start()
	begin(engine)

	select {
	case <-idle:
	case <-ctx.Done():
	}

	if err := ctx.Err(); err != nil {
		inline.Interrupt()
		return err
	}
	if err := result.Err(); err != nil {
		inline.Fail()
		return err
	}
	inline.Success()
	return nil
}

// dumpMetrics prints the collected metrics, if enabled.
func (s *session) dumpMetrics(w io.Writer) {
	if s.metrics == nil {
		return
	}
	if err := s.metrics.WriteText(w); err != nil {
		s.log.Warn("failed to write metrics: %v", err)
	}
}
