package cli

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rileyhilliard/pbar/internal/errors"
)

func runOpts(command string, display, stdout, stderr *bytes.Buffer) RunOptions {
	return RunOptions{
		Command: command,
		Display: display,
		Stdout:  stdout,
		Stderr:  stderr,
	}
}

func TestRun_Success(t *testing.T) {
	useConfig(t, "")
	var display, stdout, stderr bytes.Buffer

	err := Run(context.Background(), runOpts("echo hello", &display, &stdout, &stderr))
	require.NoError(t, err)

	assert.Equal(t, "hello\n", stdout.String(), "plain output streams straight through")
	assert.Contains(t, display.String(), "✓ echo hello")
	assert.NotContains(t, display.String(), "\x1b[", "no ANSI codes when the display isn't a terminal")
}

func TestRun_ExitCode(t *testing.T) {
	useConfig(t, "")
	var display, stdout, stderr bytes.Buffer

	err := Run(context.Background(), runOpts("echo oops >&2; exit 3", &display, &stdout, &stderr))
	require.Error(t, err)

	assert.Equal(t, 3, errors.ExitCodeOf(err))
	assert.Contains(t, stderr.String(), "oops")
	assert.Contains(t, display.String(), "✗")
}

func TestRun_Interrupted(t *testing.T) {
	useConfig(t, "")
	var display, stdout, stderr bytes.Buffer

	ctx, cancel := context.WithCancel(context.Background())
	time.AfterFunc(50*time.Millisecond, cancel)

	start := time.Now()
	err := Run(ctx, runOpts("sleep 10", &display, &stdout, &stderr))

	assert.Equal(t, interruptedExitCode, errors.ExitCodeOf(err))
	assert.Less(t, time.Since(start), 5*time.Second, "the command is killed")
}

func TestRun_Label(t *testing.T) {
	useConfig(t, "")
	var display, stdout, stderr bytes.Buffer

	opts := runOpts("true", &display, &stdout, &stderr)
	opts.Label = "build"
	require.NoError(t, Run(context.Background(), opts))
	assert.Contains(t, display.String(), "✓ build")
}

func TestRun_Metrics(t *testing.T) {
	useConfig(t, "metrics:\n  enabled: true\n")
	var display, stdout, stderr bytes.Buffer

	require.NoError(t, Run(context.Background(), runOpts("true", &display, &stdout, &stderr)))

	out := stderr.String()
	assert.Contains(t, out, "pbar_cycles_started_total 1")
	assert.Contains(t, out, "pbar_cycles_finished_total 1")
	assert.Contains(t, out, `pbar_bindings_total{kind="future"} 1`)
}

func TestRun_BadSpeedFlag(t *testing.T) {
	useConfig(t, "")
	speedFlag = "fast"
	var display, stdout, stderr bytes.Buffer

	err := Run(context.Background(), runOpts("true", &display, &stdout, &stderr))
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrConfig))
	assert.Empty(t, display.String(), "nothing is drawn for a bad config")
}

func TestCommandLine(t *testing.T) {
	assert.Equal(t, "make test && echo ok", commandLine([]string{"make test && echo ok"}))
	assert.Equal(t, "go test ./...", commandLine([]string{"go", "test", "./..."}))
	assert.Equal(t, "echo 'a b'", commandLine([]string{"echo", "a b"}))
}

func TestTruncateLabel(t *testing.T) {
	assert.Equal(t, "short", truncateLabel("short"))

	long := truncateLabel("go test -race -count=1 ./internal/... ./cmd/...")
	assert.Len(t, []rune(long), maxLabelLen)
	assert.Equal(t, "…", string([]rune(long)[maxLabelLen-1:]))
}

func TestPickRenderMode(t *testing.T) {
	var buf bytes.Buffer
	assert.Equal(t, renderPlain, pickRenderMode(&buf, false))
	assert.Equal(t, renderPlain, pickRenderMode(&buf, true))
	assert.False(t, renderPlain.interactive())
	assert.True(t, renderInline.interactive())
}
