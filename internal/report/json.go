package report

import (
	"encoding/json"
	"io"
	"time"
)

// JSONReporter implements Reporter for JSON output.
type JSONReporter struct{}

type jsonFormat struct {
	Command  string `json:"command"`
	Duration string `json:"duration"`
}

type jsonCommit struct {
	Committed bool   `json:"committed"`
	Revision  string `json:"revision,omitempty"`
	Message   string `json:"message"`
	Note      string `json:"note,omitempty"`
}

type jsonOutput struct {
	StartTime string     `json:"startTime"`
	EndTime   string     `json:"endTime"`
	Duration  string     `json:"duration"`
	Format    jsonFormat `json:"format"`
	Commit    jsonCommit `json:"commit"`
}

func (jr *JSONReporter) Write(w io.Writer, r *Result) error {
	out := jsonOutput{
		StartTime: r.StartTime.Format(time.RFC3339),
		EndTime:   r.EndTime.Format(time.RFC3339),
		Duration:  r.EndTime.Sub(r.StartTime).String(),
		Format: jsonFormat{
			Command:  r.Formatter,
			Duration: r.FormatDuration.String(),
		},
		Commit: jsonCommit{
			Committed: r.Committed,
			Revision:  r.Revision,
			Message:   r.Message,
			Note:      r.Note,
		},
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
