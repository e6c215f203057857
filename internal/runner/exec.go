package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strings"
)

// stderrTailLines bounds how much of the command's stderr is kept in Result.
const stderrTailLines = 20

// Options configure how the runner executes the test command.
type Options struct {
	Root    string
	Stderr  io.Writer
	Verbose bool
}

// Result is the captured outcome of a test command.
type Result struct {
	Stdout   []byte
	Stderr   string
	ExitCode int
}

// Runner executes a test command and captures its machine-readable output.
type Runner struct {
	opts Options
}

// New creates a runner with the supplied options.
func New(opts Options) *Runner {
	if opts.Stderr == nil {
		opts.Stderr = io.Discard
	}
	return &Runner{opts: opts}
}

// Run executes args in the runner's root. A non-zero exit is reported through
// Result.ExitCode, not as an error; failing tests still produce output worth
// recording. Errors are returned only when the command could not run.
func (r *Runner) Run(ctx context.Context, args []string) (Result, error) {
	if len(args) == 0 {
		return Result{}, errors.New("no command given")
	}

	cmd := exec.CommandContext(ctx, args[0], args[1:]...)
	cmd.Dir = r.opts.Root

	var stdoutBuf, stderrBuf strings.Builder
	cmd.Stdout = &stdoutBuf
	if r.opts.Verbose {
		cmd.Stderr = io.MultiWriter(r.opts.Stderr, &stderrBuf)
	} else {
		cmd.Stderr = &stderrBuf
	}

	err := cmd.Run()
	result := Result{
		Stdout:   []byte(stdoutBuf.String()),
		Stderr:   tailLines(stderrBuf.String(), stderrTailLines),
		ExitCode: exitCode(err),
	}

	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && ctx.Err() == nil {
			return result, nil
		}
		return result, fmt.Errorf("run %q: %w", strings.Join(args, " "), err)
	}
	return result, nil
}

func exitCode(err error) int {
	if err == nil {
		return 0
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		if status, ok := exitErr.Sys().(interface{ ExitStatus() int }); ok {
			return status.ExitStatus()
		}
		return exitErr.ExitCode()
	}
	return 1
}

func tailLines(input string, maxLines int) string {
	if input == "" {
		return ""
	}
	lines := strings.Split(strings.TrimRight(input, "\n"), "\n")
	if len(lines) <= maxLines {
		return strings.Join(lines, "\n")
	}
	return strings.Join(lines[len(lines)-maxLines:], "\n")
}
