// Package report renders the outcome of a fmtcommit run.
package report

import (
	"fmt"
	"io"
	"time"
)

const (
	FormatText = "text"
	FormatJSON = "json"
)

// Result is the outcome of one run.
type Result struct {
	Message        string
	Formatter      string
	FormatDuration time.Duration
	Committed      bool
	Revision       string
	Note           string // why no commit was made, when Committed is false.
	StartTime      time.Time
	EndTime        time.Time
}

// Reporter writes a Result in some output format.
type Reporter interface {
	Write(w io.Writer, r *Result) error
}

// NewReporter returns the Reporter for format, which must be FormatText or FormatJSON.
func NewReporter(format string, useColour bool) (Reporter, error) {
	switch format {
	case FormatText, "":
		return &TextReporter{UseColour: useColour}, nil
	case FormatJSON:
		return &JSONReporter{}, nil
	default:
		return nil, fmt.Errorf("unknown report format %q", format)
	}
}
