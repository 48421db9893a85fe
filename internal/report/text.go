package report

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/fatih/color"
)

// TextReporter implements Reporter for plain text output.
type TextReporter struct {
	UseColour bool
}

// cs returns a colour-aware sprint function for the given attributes.
// Colour is forced on or off so output does not depend on whether w is a terminal.
func (tr *TextReporter) cs(attrs ...color.Attribute) func(a ...any) string {
	c := color.New(attrs...)
	if tr.UseColour {
		c.EnableColor()
	} else {
		c.DisableColor()
	}
	return c.SprintFunc()
}

func (tr *TextReporter) Write(w io.Writer, r *Result) error {
	grey := tr.cs(color.FgHiBlack)
	white := tr.cs(color.FgWhite)
	green := tr.cs(color.FgGreen)
	yellow := tr.cs(color.FgYellow)
	boldWhite := tr.cs(color.Bold, color.FgWhite)

	divider := strings.Repeat("-", 40)

	if _, err := fmt.Fprintf(w, "%s\n", divider); err != nil {
		return err
	}
	fmt.Fprint(w, boldWhite("FMTCOMMIT REPORT\n\n"))
	fmt.Fprintf(w, "%s %s %s\n", grey("Formatter:"), white(r.Formatter),
		grey("("+r.FormatDuration.Round(time.Millisecond).String()+")"))

	if r.Committed {
		fmt.Fprintf(w, "%s    %s %s\n", grey("Commit:"), green(r.Revision), white(firstLine(r.Message)))
	} else {
		fmt.Fprintf(w, "%s    %s\n", grey("Commit:"), yellow("none ("+r.Note+")"))
	}

	_, err := fmt.Fprintf(w, "%s\n", divider)
	return err
}

// firstLine returns the subject line of a commit message.
func firstLine(msg string) string {
	subject, _, _ := strings.Cut(msg, "\n")
	return subject
}
