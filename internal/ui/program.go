package ui

import (
	"context"
	"errors"
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/rileyhilliard/pbar/internal/indicator"
)

// RunOptions configures Run.
type RunOptions struct {
	ModelOptions

	// Output receives the rendered indicator. Default: stdout
	Output io.Writer
	// Input enables q/ctrl+c handling. Nil leaves stdin to the bound source.
	Input io.Reader
}

// Run renders engine with IndicatorModel until the current cycle returns to
// idle or ctx is cancelled. hub must be the engine's TransitionNotifier.
func Run(ctx context.Context, engine *indicator.Engine, hub *indicator.Transitions, opts RunOptions) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if opts.Cancel == nil {
		opts.Cancel = cancel
	}
	model := NewIndicatorModel(engine, hub, opts.ModelOptions)

	programOpts := []tea.ProgramOption{
		tea.WithContext(ctx),
		tea.WithoutSignalHandler(),
		tea.WithInput(opts.Input),
	}
	if opts.Output != nil {
		programOpts = append(programOpts, tea.WithOutput(opts.Output))
	}
	program := tea.NewProgram(model, programOpts...)

	unsubscribe := engine.Subscribe(NewBridge(program))
	defer unsubscribe()

	_, err := program.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return ctx.Err()
	}
	return err
}
