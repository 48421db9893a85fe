// Package formatter runs an external code formatter over the working tree.
package formatter

import (
	"context"
	"time"
)

// Formatter rewrites source files in place to a canonical style.
type Formatter interface {
	// Format runs the formatter once. A non-nil error means the working tree
	// must not be committed.
	Format(ctx context.Context) (*Result, error)

	// String returns the command line, for logs and reports.
	String() string
}

// Result describes a successful formatter run.
type Result struct {
	CommandLine []string
	Duration    time.Duration
	Stderr      string // diagnostics the formatter printed despite succeeding.
}
