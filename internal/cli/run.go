package cli

import (
	"bytes"
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/rileyhilliard/pbar/internal/errors"
	"github.com/rileyhilliard/pbar/internal/indicator"
	"github.com/rileyhilliard/pbar/internal/source"
	"github.com/rileyhilliard/pbar/internal/util"
)

// interruptedExitCode is what shells report for a command killed by SIGINT.
const interruptedExitCode = 130

const maxLabelLen = 32

// RunOptions holds options for the run command.
type RunOptions struct {
	Command string
	Label   string
	WorkDir string

	// Display receives the indicator. Its terminal-ness picks the renderer.
	Display io.Writer
	Stdin   io.Reader
	Stdout  io.Writer
	Stderr  io.Writer
}

var (
	runLabelFlag   string
	runWorkDirFlag string
)

// runCmd wraps a command with an indicator
var runCmd = &cobra.Command{
	Use:   "run [flags] -- <command> [args...]",
	Short: "Run a command behind a progress indicator",
	Long: `Run a command with an indeterminate progress indicator and exit with the
command's exit code.

A single argument is passed to your shell as-is, so pipes and && work.
Multiple arguments are quoted and joined.

While the interactive indicator is on screen the command's output is held
back and printed once it finishes. With --plain or when stderr isn't a
terminal, output streams through as usual.

Examples:
  pbar run -- make test
  pbar run "go build ./... && go test ./..."
  pbar run --label deps -- npm ci`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		return Run(ctx, RunOptions{
			Command: commandLine(args),
			Label:   runLabelFlag,
			WorkDir: runWorkDirFlag,
			Display: os.Stderr,
			Stdin:   os.Stdin,
			Stdout:  os.Stdout,
			Stderr:  os.Stderr,
		})
	},
}

// Run executes opts.Command under an indicator. A non-zero exit is returned
// as an errors.ExitCodeError carrying the command's code.
func Run(ctx context.Context, opts RunOptions) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	s := newSession(cfg, opts.Display, pickRenderMode(opts.Display, plainFlag))
	defer s.dumpMetrics(opts.Stderr)

	stdout, stderr := opts.Stdout, opts.Stderr
	var held bytes.Buffer
	if s.mode.interactive() {
		stdout, stderr = &held, &held
	}

	command := source.NewCommand(opts.Command,
		source.WithWorkDir(opts.WorkDir),
		source.WithStdin(opts.Stdin),
		source.WithOutput(stdout, stderr),
	)

	label := opts.Label
	if label == "" {
		label = truncateLabel(command.String())
	}

	runErr := s.run(ctx, label, func(e *indicator.Engine) {
		e.StartWith(indicator.FromFuture(command))
	})

	// The engine may return before the killed child has been reaped.
	<-command.Done()

	if held.Len() > 0 && opts.Stdout != nil {
		_, _ = io.Copy(opts.Stdout, &held)
	}

	if ctx.Err() != nil {
		return &errors.ExitCodeError{Code: interruptedExitCode}
	}
	if err := command.Err(); err != nil {
		return err
	}
	return runErr
}

// commandLine turns run's arguments into a shell command line.
func commandLine(args []string) string {
	if len(args) == 1 {
		return args[0]
	}
	return util.ShellJoin(args)
}

func truncateLabel(s string) string {
	r := []rune(s)
	if len(r) <= maxLabelLen {
		return s
	}
	return string(r[:maxLabelLen-1]) + "…"
}

func init() {
	runCmd.Flags().StringVarP(&runLabelFlag, "label", "l", "", "text shown next to the bar (default: the command)")
	runCmd.Flags().StringVar(&runWorkDirFlag, "dir", "", "working directory for the command")
	rootCmd.AddCommand(runCmd)
}
