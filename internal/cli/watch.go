package cli

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/rileyhilliard/pbar/internal/errors"
	"github.com/rileyhilliard/pbar/internal/indicator"
	"github.com/rileyhilliard/pbar/internal/logger"
	"github.com/rileyhilliard/pbar/internal/source"
)

// WatchOptions holds options for the watch command.
type WatchOptions struct {
	Label string
	// Echo copies every input line to Stdout.
	Echo bool

	Input   io.Reader
	Display io.Writer
	Stdout  io.Writer
	Stderr  io.Writer
}

var (
	watchLabelFlag string
	watchEchoFlag  bool
)

// watchCmd turns progress lines on stdin into a bar
var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Draw progress reported on stdin",
	Long: `Read lines from stdin and drive the bar with the progress they report.

Recognized forms, anywhere in a line:
  42%     percentage
  3/10    ratio
  0.42    a bare fraction (numbers above 1 are percentages)

Lines without progress are skipped. The bar finishes when stdin closes or a
line reports 100%.

Examples:
  ./migrate.sh | pbar watch
  seq 0 10 100 | sed 's/$/%/' | pbar watch --label import
  long-job 2>&1 | pbar watch --echo`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		return Watch(ctx, WatchOptions{
			Label:   watchLabelFlag,
			Echo:    watchEchoFlag,
			Input:   os.Stdin,
			Display: os.Stderr,
			Stdout:  os.Stdout,
			Stderr:  os.Stderr,
		})
	},
}

// Watch binds a LineStream over opts.Input and renders it.
func Watch(ctx context.Context, opts WatchOptions) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	s := newSession(cfg, opts.Display, pickRenderMode(opts.Display, plainFlag))
	defer s.dumpMetrics(opts.Stderr)

	streamOpts := []source.LineStreamOption{source.WithLogger(logger.Default())}
	if opts.Echo && opts.Stdout != nil {
		streamOpts = append(streamOpts, source.WithEcho(opts.Stdout))
	}
	stream := source.NewLineStream(opts.Input, streamOpts...)
	defer stream.Close()

	label := opts.Label
	if label == "" {
		label = "progress"
	}

	err = s.run(ctx, label, func(e *indicator.Engine) {
		e.StartWith(indicator.FromStream(stream))
	})
	if ctx.Err() != nil {
		return &errors.ExitCodeError{Code: interruptedExitCode}
	}
	return err
}

func init() {
	watchCmd.Flags().StringVarP(&watchLabelFlag, "label", "l", "", "text shown next to the bar")
	watchCmd.Flags().BoolVar(&watchEchoFlag, "echo", false, "copy input lines to stdout")
	rootCmd.AddCommand(watchCmd)
}
