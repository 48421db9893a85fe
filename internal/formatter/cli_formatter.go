package formatter

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os/exec"
	"strings"
	"time"
)

// lookPath is a variable for exec.LookPath to allow mocking in tests.
var lookPath = exec.LookPath

// CLIFormatter is the concrete implementation of Formatter that runs an
// external program.
type CLIFormatter struct {
	program string
	args    []string
	dir     string
	stdout  io.Writer
}

// NewCLIFormatter creates a CLIFormatter that runs program with args in dir.
// The formatter's stdout is streamed to stdout; its stderr is captured.
func NewCLIFormatter(program string, args []string, dir string, stdout io.Writer) *CLIFormatter {
	if stdout == nil {
		stdout = io.Discard
	}
	return &CLIFormatter{
		program: program,
		args:    append([]string(nil), args...),
		dir:     dir,
		stdout:  stdout,
	}
}

func (f *CLIFormatter) commandLine() []string {
	return append([]string{f.program}, f.args...)
}

func (f *CLIFormatter) String() string {
	return strings.Join(f.commandLine(), " ")
}

// Format runs the formatter and waits for it to exit.
func (f *CLIFormatter) Format(ctx context.Context) (*Result, error) {
	path, err := lookPath(f.program)
	if err != nil {
		return nil, &NotFoundError{Program: f.program, Wrapped: err}
	}

	//nolint:gosec // the formatter command line comes from the user's own config
	cmd := exec.CommandContext(ctx, path, f.args...)
	cmd.Dir = f.dir
	var stderr bytes.Buffer
	cmd.Stdout = f.stdout
	cmd.Stderr = &stderr

	start := time.Now()
	if err = cmd.Run(); err != nil {
		exitCode := -1
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			exitCode = exitErr.ExitCode()
		}
		return nil, &FailedError{
			CommandLine: f.commandLine(),
			ExitCode:    exitCode,
			Output:      stderr.String(),
			Wrapped:     err,
		}
	}

	return &Result{
		CommandLine: f.commandLine(),
		Duration:    time.Since(start),
		Stderr:      stderr.String(),
	}, nil
}
