package source

import (
	"context"
	stderrors "errors"
	"io"
	"os"
	"os/exec"
	"sync"
	"time"

	"github.com/rileyhilliard/pbar/internal/errors"
)

// waitDelay bounds how long a killed command's output is drained.
const waitDelay = 500 * time.Millisecond

// Command is an indicator.Future that runs a shell command. The command starts
// on the first Await and the future settles when it exits.
type Command struct {
	cmd     string
	workDir string
	stdin   io.Reader
	stdout  io.Writer
	stderr  io.Writer

	once     sync.Once
	done     chan struct{}
	mu       sync.Mutex
	exitCode int
	err      error
}

// CommandOption configures a Command.
type CommandOption func(*Command)

// WithWorkDir sets the working directory.
func WithWorkDir(dir string) CommandOption {
	return func(c *Command) { c.workDir = dir }
}

// WithStdin connects the command's standard input.
func WithStdin(r io.Reader) CommandOption {
	return func(c *Command) { c.stdin = r }
}

// WithOutput connects the command's standard output and error.
func WithOutput(stdout, stderr io.Writer) CommandOption {
	return func(c *Command) {
		c.stdout = stdout
		c.stderr = stderr
	}
}

// NewCommand creates a future for cmd, interpreted by the user's shell so
// pipes and redirects work.
func NewCommand(cmd string, opts ...CommandOption) *Command {
	c := &Command{
		cmd:      cmd,
		done:     make(chan struct{}),
		exitCode: -1,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Shell returns the shell used to interpret commands.
func Shell() string {
	if shell := os.Getenv("SHELL"); shell != "" {
		return shell
	}
	return "/bin/sh"
}

// Await implements indicator.Future. A non-zero exit settles the future with
// an errors.ExitCodeError; a command that cannot be started settles it with
// an EXEC error. Cancelling ctx kills the command.
func (c *Command) Await(ctx context.Context) error {
	c.once.Do(func() {
		go c.run(ctx)
	})

	select {
	case <-c.done:
		return c.Err()
	case <-ctx.Done():
		<-c.done
		return c.Err()
	}
}

func (c *Command) run(ctx context.Context) {
	defer close(c.done)

	command := exec.CommandContext(ctx, Shell(), "-c", c.cmd)
	if c.workDir != "" {
		command.Dir = c.workDir
	}
	command.Stdin = c.stdin
	command.Stdout = c.stdout
	command.Stderr = c.stderr
	// Grandchildren may keep the output pipes open after the shell is killed.
	command.WaitDelay = waitDelay

	runErr := command.Run()

	c.mu.Lock()
	defer c.mu.Unlock()

	if runErr == nil {
		c.exitCode = 0
		return
	}

	var exitErr *exec.ExitError
	isExit := stderrors.As(runErr, &exitErr)
	if isExit {
		c.exitCode = exitErr.ExitCode()
	}

	switch {
	case ctx.Err() != nil:
		c.err = ctx.Err()
		return
	case isExit:
		c.err = &errors.ExitCodeError{Code: c.exitCode}
		return
	}

	c.err = errors.WrapWithCode(runErr, errors.ErrExec,
		"Couldn't run the command",
		"Make sure the command exists and is executable.")
}

// Done is closed once the command has exited.
func (c *Command) Done() <-chan struct{} {
	return c.done
}

// ExitCode returns the command's exit code, or -1 while it is running, when
// it was killed, or when it never started.
func (c *Command) ExitCode() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.exitCode
}

// Err returns the settlement error, nil while running or on success.
func (c *Command) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.err
}

// String returns the command line.
func (c *Command) String() string {
	return c.cmd
}
