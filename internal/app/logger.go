package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/andyballingall/fmtcommit/internal/fs"
)

const (
	LogFile   = "fmtcommit.log"
	LogEnvVar = "FMTCOMMIT_LOG_FILE"
)

// logFilePath picks where the JSON log goes: FMTCOMMIT_LOG_FILE if set,
// otherwise inside the git directory so the commit step never stages it.
// An empty result means no log file.
func logFilePath(env fs.EnvProvider, gitDir string) string {
	if env != nil {
		if p := env.Get(LogEnvVar); p != "" {
			return p
		}
	}
	if gitDir == "" {
		return ""
	}
	return filepath.Join(gitDir, LogFile)
}

// setupLogger configures a logger that writes structured logs to logPath
// and clean, human-readable logs to the console. If the file cannot be opened
// the returned logger is still usable and logs to the console only.
func setupLogger(stderr io.Writer, logLevel *slog.LevelVar, logPath string) (*slog.Logger, io.Closer, error) {
	consoleHandler := &consoleHandler{
		w:     stderr,
		level: logLevel,
	}
	if logPath == "" {
		return slog.New(consoleHandler), nil, nil
	}

	f, err := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return slog.New(consoleHandler), nil, err
	}

	fileHandler := slog.NewJSONHandler(f, &slog.HandlerOptions{
		Level: slog.LevelDebug, // File always gets full debug info
	})

	multi := &multiHandler{
		handlers: []slog.Handler{fileHandler, consoleHandler},
	}

	return slog.New(multi), f, nil
}

// multiHandler fans each record out to every handler that accepts its level.
type multiHandler struct {
	handlers []slog.Handler
}

func (m *multiHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, h := range m.handlers {
		if h.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

//nolint:gocritic // slog.Record is passed by value in the interface
func (m *multiHandler) Handle(ctx context.Context, record slog.Record) error {
	var errs []error
	for _, h := range m.handlers {
		if !h.Enabled(ctx, record.Level) {
			continue
		}
		if err := h.Handle(ctx, record.Clone()); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (m *multiHandler) each(fn func(slog.Handler) slog.Handler) *multiHandler {
	next := make([]slog.Handler, len(m.handlers))
	for i, h := range m.handlers {
		next[i] = fn(h)
	}
	return &multiHandler{handlers: next}
}

func (m *multiHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return m.each(func(h slog.Handler) slog.Handler { return h.WithAttrs(attrs) })
}

func (m *multiHandler) WithGroup(name string) slog.Handler {
	return m.each(func(h slog.Handler) slog.Handler { return h.WithGroup(name) })
}

// OutputKey marks an attribute holding captured tool output. The console
// handler prints it indented below the message at every level.
const OutputKey = "output"

// consoleHandler prints the message alone, so progress lines stay readable.
// Other attributes only appear at debug level.
type consoleHandler struct {
	w     io.Writer
	level *slog.LevelVar
	attrs []slog.Attr
}

func (c *consoleHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= c.level.Level()
}

//nolint:gocritic // slog.Record is passed by value in the interface
func (c *consoleHandler) Handle(_ context.Context, record slog.Record) error {
	var b strings.Builder
	switch {
	case record.Level >= slog.LevelError:
		b.WriteString("Error: ")
	case record.Level >= slog.LevelWarn:
		b.WriteString("Warning: ")
	}
	b.WriteString(record.Message)

	var output []string
	add := func(a slog.Attr) bool {
		switch {
		case a.Key == OutputKey:
			if out := strings.TrimRight(a.Value.String(), "\n"); out != "" {
				output = append(output, out)
			}
		case a.Key == "error" || a.Key == "err":
			fmt.Fprintf(&b, ": %v", a.Value)
		case c.level.Level() <= slog.LevelDebug:
			fmt.Fprintf(&b, " %s=%v", a.Key, a.Value)
		}
		return true
	}
	for _, a := range c.attrs {
		add(a)
	}
	record.Attrs(add)
	b.WriteString("\n")

	for _, out := range output {
		for _, line := range strings.Split(out, "\n") {
			b.WriteString("  " + line + "\n")
		}
	}

	_, err := io.WriteString(c.w, b.String())
	return err
}

func (c *consoleHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &consoleHandler{
		w:     c.w,
		level: c.level,
		attrs: append(slices.Clip(c.attrs), attrs...),
	}
}

func (c *consoleHandler) WithGroup(_ string) slog.Handler {
	// Groups only matter to the JSON file handler.
	return c
}
