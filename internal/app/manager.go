package app

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"time"

	"github.com/andyballingall/fmtcommit/internal/formatter"
	"github.com/andyballingall/fmtcommit/internal/repo"
	"github.com/andyballingall/fmtcommit/internal/report"
)

// NoCommitNote explains a missing commit when --no-commit was given.
const NoCommitNote = "skipped with --no-commit"

// NothingToCommitNote explains a missing commit when the tree was already clean.
const NothingToCommitNote = "nothing to commit"

// RunOptions carries the per-invocation flags of a run.
type RunOptions struct {
	NoCommit  bool
	Format    string
	UseColour bool
}

// Manager formats the working tree and commits it.
type Manager interface {
	// FormatAndCommit runs the formatter and, only if it succeeds, commits
	// every change under message. The outcome is written as a report.
	FormatAndCommit(ctx context.Context, message string, opts RunOptions) error
}

// Ensure the interface is satisfied.
var _ Manager = (*LazyManager)(nil)

// LazyManager acts as a placeholder for a real Manager implementation, allowing
// for deferred initialization of dependencies.
type LazyManager struct {
	inner  Manager
	closer io.Closer
}

func (l *LazyManager) SetInner(m Manager) {
	l.inner = m
}

// HasInner returns true if the inner manager has been set.
// This is used by PersistentPreRunE to skip initialization if already configured (e.g., in tests).
func (l *LazyManager) HasInner() bool {
	return l.inner != nil
}

// SetCloser registers a resource (the log file) to release in Close.
func (l *LazyManager) SetCloser(c io.Closer) {
	l.closer = c
}

// Close releases whatever SetCloser registered. It is safe to call when nothing was.
func (l *LazyManager) Close() error {
	if l.closer == nil {
		return nil
	}
	err := l.closer.Close()
	l.closer = nil
	return err
}

func (l *LazyManager) check() Manager {
	if l.inner == nil {
		panic("LazyManager accessed before initialization; check command wiring.")
	}
	return l.inner
}

func (l *LazyManager) FormatAndCommit(ctx context.Context, message string, opts RunOptions) error {
	return l.check().FormatAndCommit(ctx, message, opts)
}

// Ensure the interface is satisfied.
var _ Manager = (*CLIManager)(nil)

// CLIManager is the concrete implementation of the Manager interface.
type CLIManager struct {
	logger         *slog.Logger
	formatter      formatter.Formatter
	gitter         repo.Gitter
	reporterWriter io.Writer
}

func NewCLIManager(l *slog.Logger, f formatter.Formatter, g repo.Gitter, w io.Writer) *CLIManager {
	return &CLIManager{
		logger:         l,
		formatter:      f,
		gitter:         g,
		reporterWriter: w,
	}
}

func (m *CLIManager) FormatAndCommit(ctx context.Context, message string, opts RunOptions) error {
	m.logger.Debug("starting run", "formatter", m.formatter.String(), "noCommit", opts.NoCommit,
		"format", opts.Format)

	reporter, err := report.NewReporter(opts.Format, opts.UseColour)
	if err != nil {
		return err
	}

	res := &report.Result{
		Message:   message,
		Formatter: m.formatter.String(),
		StartTime: time.Now(),
	}

	// 1. Format. A failure here ends the run before anything is committed.
	m.logger.Info("Formatting with " + m.formatter.String() + "...")
	fr, err := m.formatter.Format(ctx)
	if err != nil {
		return err
	}
	res.FormatDuration = fr.Duration
	if fr.Stderr != "" {
		m.logger.Debug("formatter diagnostics", OutputKey, fr.Stderr)
	}

	// 2. Commit
	if opts.NoCommit {
		res.Note = NoCommitNote
	} else if err = m.commit(ctx, message, res); err != nil {
		return err
	}

	res.EndTime = time.Now()
	return reporter.Write(m.reporterWriter, res)
}

// commit records the formatted tree and fills in the commit fields of res.
// A clean tree is not an error.
func (m *CLIManager) commit(ctx context.Context, message string, res *report.Result) error {
	m.logger.Info("Committing...")
	rev, err := m.gitter.Commit(ctx, message)
	switch {
	case errors.Is(err, repo.ErrNothingToCommit):
		m.logger.Info("Nothing to commit, working tree clean")
		res.Note = NothingToCommitNote
		return nil
	case err != nil:
		return err
	}

	m.logger.Debug("committed", "revision", rev)
	res.Committed = true
	res.Revision = rev.String()
	return nil
}
