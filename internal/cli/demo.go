package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sort"
	"syscall"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/rileyhilliard/pbar/internal/errors"
	"github.com/rileyhilliard/pbar/internal/indicator"
	"github.com/rileyhilliard/pbar/internal/util"
)

// demoStep is the pause between scripted demo actions.
var demoStep = 800 * time.Millisecond

// DemoScenario is a scripted way of driving an engine.
type DemoScenario struct {
	Name        string
	Description string
	// Begin starts the script. It must not block; later steps run on their
	// own goroutine and stop when ctx is cancelled.
	Begin func(ctx context.Context, e *indicator.Engine)
}

var demoScenarios = map[string]DemoScenario{
	"manual": {
		Name:        "manual",
		Description: "Start, report 40%, hand back to the simulated curve, complete",
		Begin: func(ctx context.Context, e *indicator.Engine) {
			e.Start()
			go script(ctx,
				func() { e.SetProgress(ptr(40)) },
				func() { e.SetProgress(nil) },
				func() {},
				func() { e.Complete() },
			)
		},
	},
	"future": {
		Name:        "future",
		Description: "Bind a task of unknown length and finish when it settles",
		Begin: func(ctx context.Context, e *indicator.Engine) {
			e.StartWith(indicator.FromFuture(indicator.FutureFunc(func(ctx context.Context) error {
				select {
				case <-time.After(4 * demoStep):
					return nil
				case <-ctx.Done():
					return ctx.Err()
				}
			})))
		},
	},
	"stream": {
		Name:        "stream",
		Description: "Bind a stream reporting 0.1 through 1.0",
		Begin: func(ctx context.Context, e *indicator.Engine) {
			ch := make(chan float64)
			e.StartWith(indicator.FromStream(indicator.FromChannel(ch)))
			go func() {
				defer close(ch)
				for i := 1; i <= 10; i++ {
					select {
					case <-time.After(demoStep / 2):
					case <-ctx.Done():
						return
					}
					select {
					case ch <- float64(i) / 10:
					case <-ctx.Done():
						return
					}
				}
			}()
		},
	},
}

// DemoScenarioNames returns the known scenario names, sorted.
func DemoScenarioNames() []string {
	names := make([]string, 0, len(demoScenarios))
	for name := range demoScenarios {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// LookupDemoScenario finds a scenario by name.
func LookupDemoScenario(name string) (DemoScenario, error) {
	if sc, ok := demoScenarios[name]; ok {
		return sc, nil
	}

	suggestion := "Available scenarios: " + util.JoinOrNone(DemoScenarioNames())
	if similar := scenarioSuggestions(name); len(similar) > 0 {
		suggestion = "Did you mean: " + util.JoinOrNone(similar) + "?"
	}
	return DemoScenario{}, errors.New(errors.ErrConfig,
		fmt.Sprintf("Unknown demo scenario '%s'", name),
		suggestion)
}

// scenarioSuggestions matches name against the scenarios the same way cobra
// matches mistyped subcommands.
func scenarioSuggestions(name string) []string {
	finder := &cobra.Command{Use: "scenarios", SuggestionsMinimumDistance: 2}
	for _, n := range DemoScenarioNames() {
		finder.AddCommand(&cobra.Command{Use: n, Run: func(*cobra.Command, []string) {}})
	}
	return finder.SuggestionsFor(name)
}

// script runs steps one demoStep apart until ctx is cancelled.
func script(ctx context.Context, steps ...func()) {
	for _, step := range steps {
		select {
		case <-time.After(demoStep):
		case <-ctx.Done():
			return
		}
		step()
	}
}

func ptr(v float64) *float64 {
	return &v
}

var demoScenarioFlag string

// demoCmd plays scripted scenarios
var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Show the indicator with a scripted scenario",
	Long: `Play a scripted scenario to see how the indicator behaves.

Scenarios:
  manual   Start, report 40%, hand back to the simulated curve, complete
  future   Bind a task of unknown length and finish when it settles
  stream   Bind a stream reporting 0.1 through 1.0

Without --scenario you get to pick one (or 'stream' when stdin isn't a
terminal).

Examples:
  pbar demo
  pbar demo --scenario manual
  pbar demo --scenario future --speed 1s`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		name := demoScenarioFlag
		if name == "" {
			var err error
			name, err = pickScenario()
			if err != nil {
				return err
			}
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		return Demo(ctx, name, os.Stderr)
	},
}

// pickScenario asks which scenario to play, defaulting to "stream" when
// there is nobody to ask.
func pickScenario() (string, error) {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return "stream", nil
	}

	var options []huh.Option[string]
	for _, name := range DemoScenarioNames() {
		options = append(options, huh.NewOption(name+" - "+demoScenarios[name].Description, name))
	}

	choice := "stream"
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Which scenario?").
				Options(options...).
				Value(&choice),
		),
	)
	if err := form.Run(); err != nil {
		return "", errors.WrapWithCode(err, errors.ErrConfig,
			"Failed to get user input",
			"Pass --scenario to skip the prompt")
	}
	return choice, nil
}

// Demo plays the named scenario on display.
func Demo(ctx context.Context, name string, display io.Writer) error {
	sc, err := LookupDemoScenario(name)
	if err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	s := newSession(cfg, display, pickRenderMode(display, plainFlag))
	s.trace = true
	defer s.dumpMetrics(display)

	err = s.run(ctx, "demo: "+sc.Name, func(e *indicator.Engine) {
		sc.Begin(ctx, e)
	})
	if ctx.Err() != nil {
		return &errors.ExitCodeError{Code: interruptedExitCode}
	}
	return err
}

func init() {
	demoCmd.Flags().StringVarP(&demoScenarioFlag, "scenario", "s", "", "scenario to play: "+util.JoinOrNone(DemoScenarioNames()))
	_ = demoCmd.RegisterFlagCompletionFunc("scenario", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return DemoScenarioNames(), cobra.ShellCompDirectiveNoFileComp
	})
	rootCmd.AddCommand(demoCmd)
}
