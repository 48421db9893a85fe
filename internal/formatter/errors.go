package formatter

import (
	"fmt"
	"strings"
)

// NotFoundError is returned when the formatter program is not on PATH.
type NotFoundError struct {
	Program string
	Wrapped error
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("formatter %q not found: %v", e.Program, e.Wrapped)
}

func (e *NotFoundError) Unwrap() error { return e.Wrapped }

// FailedError is returned when the formatter exits non-zero or cannot be started.
// Output holds whatever the formatter wrote to stderr.
type FailedError struct {
	CommandLine []string
	ExitCode    int
	Output      string
	Wrapped     error
}

func (e *FailedError) Error() string {
	msg := fmt.Sprintf("formatting failed: %s: %v", strings.Join(e.CommandLine, " "), e.Wrapped)
	if out := strings.TrimSpace(e.Output); out != "" {
		msg += "\n" + out
	}
	return msg
}

func (e *FailedError) Unwrap() error { return e.Wrapped }
