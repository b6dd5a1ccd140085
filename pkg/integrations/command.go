package integrations

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"

	"github.com/kballard/go-shellquote"
	"github.com/kerbaras/ucfprep/pkg/utils"
	"go.uber.org/zap"
)

// Command describes one subprocess invocation.
type Command struct {
	Name string
	Args []string
	// Dir is the working directory; empty means the current one.
	Dir string
	// Stdout and Stderr default to the runner's writers.
	Stdout io.Writer
	Stderr io.Writer
}

// String renders the command line, quoted so it can be pasted into a shell.
func (c *Command) String() string {
	return shellquote.Join(append([]string{c.Name}, c.Args...)...)
}

// ExitError reports a command that ran but exited with a non-zero status.
type ExitError struct {
	Command string
	Code    int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("%s: exit status %d", e.Command, e.Code)
}

// IsExitError reports whether err comes from a command that started and
// then failed, as opposed to one that could not be started at all.
func IsExitError(err error) bool {
	var exitErr *ExitError
	return errors.As(err, &exitErr)
}

// ExecRunner runs commands with os/exec. The tool output goes straight to
// the terminal so that wget and unrar can draw their own progress.
type ExecRunner struct {
	Stdout io.Writer
	Stderr io.Writer
	Logger *zap.Logger
}

// NewExecRunner returns a runner attached to the process stdout/stderr.
func NewExecRunner() *ExecRunner {
	return &ExecRunner{Stdout: os.Stdout, Stderr: os.Stderr}
}

func (r *ExecRunner) Run(ctx context.Context, command *Command) error {
	utils.OrNop(r.Logger).Debug("running", zap.String("command", command.String()))

	cmd := exec.CommandContext(ctx, command.Name, command.Args...)
	cmd.Dir = command.Dir
	cmd.Stdout = firstWriter(command.Stdout, r.Stdout)
	cmd.Stderr = firstWriter(command.Stderr, r.Stderr)

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to start %s: %w", command.Name, err)
	}
	if err := cmd.Wait(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && ctx.Err() == nil {
			return &ExitError{Command: command.String(), Code: exitErr.ExitCode()}
		}
		if ctx.Err() != nil {
			return fmt.Errorf("%s: %w", command.Name, ctx.Err())
		}
		return fmt.Errorf("%s: %w", command.Name, err)
	}
	return nil
}

func firstWriter(writers ...io.Writer) io.Writer {
	for _, w := range writers {
		if w != nil {
			return w
		}
	}
	return io.Discard
}
