package cli

import (
	stderrors "errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rileyhilliard/pbar/internal/config"
	"github.com/rileyhilliard/pbar/internal/errors"
	"github.com/rileyhilliard/pbar/internal/indicator"
	"github.com/rileyhilliard/pbar/internal/logger"
	"github.com/rileyhilliard/pbar/internal/ui"
	"github.com/rileyhilliard/pbar/internal/util"
)

// Global flags
var (
	cfgFile     string
	speedFlag   string
	plainFlag   bool
	noColorFlag bool
	verboseFlag bool
	metricsFlag bool
)

// rootCmd is the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "pbar",
	Short: "Progress indicators for anything that takes a while",
	Long: `pbar draws an animated progress indicator for a command, a stream of
progress values, or a scripted demo.

Commands with unknown duration get a bar that keeps slowing down but never
completes on its own. Streams that report progress (0.3, 30%, 3/10) drive
the bar directly. Either way the bar finishes smoothly once the work is done.

Examples:
  pbar run -- make test
  long-job | pbar watch
  pbar demo --scenario stream`,
	SilenceUsage:  true,
	SilenceErrors: true,
	// formatError renders suggestions itself.
	DisableSuggestions:         true,
	SuggestionsMinimumDistance: 2,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		setupLogging()
		if noColorFlag {
			ui.DisableColors()
		}
		return nil
	},
}

// Config returns the --config flag value.
func Config() string {
	return cfgFile
}

// Execute runs the root command and exits with the resulting code.
func Execute() {
	err := rootCmd.Execute()
	if err == nil {
		return
	}

	var exitErr *errors.ExitCodeError
	if !stderrors.As(err, &exitErr) {
		fmt.Fprint(os.Stderr, formatError(err))
	}
	os.Exit(errors.ExitCodeOf(err))
}

// formatError renders err for the terminal, suggesting close command names
// for typos.
func formatError(err error) string {
	if isUnknownCommandError(err) {
		msg := err.Error()
		if name := extractUnknownCommand(err); name != "" {
			if similar := rootCmd.SuggestionsFor(name); len(similar) > 0 {
				return errors.New(errors.ErrConfig, msg,
					"Did you mean: "+util.JoinOrNone(similar)+"?").Error()
			}
		}
		return errors.New(errors.ErrConfig, msg, "Run 'pbar --help' to see available commands.").Error()
	}

	var pbErr *errors.Error
	if stderrors.As(err, &pbErr) {
		return err.Error()
	}
	return errors.Wrap(err, "Command failed").Error()
}

// isUnknownCommandError reports whether cobra rejected the command line.
func isUnknownCommandError(err error) bool {
	msg := err.Error()
	return strings.HasPrefix(msg, "unknown command") || strings.HasPrefix(msg, "unknown flag")
}

// extractUnknownCommand pulls the command name out of cobra's
// `unknown command "foo" for "pbar"` message.
func extractUnknownCommand(err error) string {
	msg := err.Error()
	start := strings.Index(msg, `"`)
	if start < 0 {
		return ""
	}
	end := strings.Index(msg[start+1:], `"`)
	if end < 0 {
		return ""
	}
	return msg[start+1 : start+1+end]
}

// setupLogging installs the default logger. --verbose behaves like PBAR_DEBUG.
func setupLogging() {
	debug := verboseFlag || os.Getenv(logger.DebugEnv) != ""
	logger.SetDefault(logger.NewWriterLogger(os.Stderr, "", debug))
}

// loadConfig finds and validates the config, then applies flag overrides.
func loadConfig() (*config.Config, error) {
	cfg, _, err := resolveConfig()
	return cfg, err
}

// resolveConfig is loadConfig that also returns the path the config came
// from, or "" for defaults.
func resolveConfig() (*config.Config, string, error) {
	cfg, path, err := config.LoadOrDefault(cfgFile)
	if err != nil {
		return nil, "", err
	}
	if path != "" {
		logger.Default().Debug("using config %s", path)
	}

	if speedFlag != "" {
		if _, ok := indicator.ParseSpeed(speedFlag); !ok {
			return nil, "", errors.New(errors.ErrConfig,
				fmt.Sprintf("'%s' doesn't look like a valid speed", speedFlag),
				"Try something like 500ms, 1s, or a bare number of milliseconds.")
		}
		cfg.Indicator.Speed = speedFlag
	}
	if noColorFlag {
		cfg.Display.Color = ui.ColorModeNever
	}
	if metricsFlag {
		cfg.Metrics.Enabled = true
	}

	if err := config.Validate(cfg); err != nil {
		return nil, "", err
	}

	ui.ApplyColorMode(cfg.Display.Color)
	return cfg, path, nil
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: .pbar.yaml, searched upwards)")
	rootCmd.PersistentFlags().StringVar(&speedFlag, "speed", "", "time for an indeterminate bar to reach 50% (e.g., 500ms, 1s)")
	rootCmd.PersistentFlags().BoolVar(&plainFlag, "plain", false, "draw a simple inline bar instead of the interactive one")
	rootCmd.PersistentFlags().BoolVar(&noColorFlag, "no-color", false, "disable colored output")
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "log engine transitions to stderr")
	rootCmd.PersistentFlags().BoolVar(&metricsFlag, "metrics", false, "print Prometheus metrics to stderr on exit")
}
