package app

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"github.com/andyballingall/fmtcommit/internal/formatter"
	"github.com/andyballingall/fmtcommit/internal/repo"
)

func newTestManager(f formatter.Formatter, g repo.Gitter, out io.Writer, logOut io.Writer) *CLIManager {
	ll := &slog.LevelVar{}
	logger := slog.New(&consoleHandler{w: logOut, level: ll})
	return NewCLIManager(logger, f, g, out)
}

func TestLazyManager(t *testing.T) {
	t.Parallel()

	t.Run("panics before initialisation", func(t *testing.T) {
		t.Parallel()
		lazy := &LazyManager{}
		assert.False(t, lazy.HasInner())
		assert.Panics(t, func() {
			_ = lazy.FormatAndCommit(context.Background(), "msg", RunOptions{})
		})
	})

	t.Run("delegates to inner", func(t *testing.T) {
		t.Parallel()
		m := &MockManager{}
		m.On("FormatAndCommit", mock.Anything, "msg", RunOptions{NoCommit: true}).Return(nil).Once()
		lazy := &LazyManager{}
		lazy.SetInner(m)

		assert.True(t, lazy.HasInner())
		require.NoError(t, lazy.FormatAndCommit(context.Background(), "msg", RunOptions{NoCommit: true}))
		m.AssertExpectations(t)
	})

	t.Run("close", func(t *testing.T) {
		t.Parallel()
		lazy := &LazyManager{}
		require.NoError(t, lazy.Close())

		c := &countingCloser{}
		lazy.SetCloser(c)
		require.NoError(t, lazy.Close())
		require.NoError(t, lazy.Close())
		assert.Equal(t, 1, c.n)
	})
}

type countingCloser struct{ n int }

func (c *countingCloser) Close() error {
	c.n++
	return nil
}

func TestCLIManager_FormatAndCommit(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("formats then commits once with the exact message", func(t *testing.T) {
		t.Parallel()
		f := &MockFormatter{}
		g := &MockGitter{}
		msg := "Tune PID gains\n\n  keep   spacing  "
		f.On("Format", mock.Anything).Return(okFormat(), nil).Once()
		g.On("Commit", mock.Anything, msg).Return(repo.Revision("3f2a9c1"), nil).Once()

		var out, logs bytes.Buffer
		m := newTestManager(f, g, &out, &logs)
		require.NoError(t, m.FormatAndCommit(ctx, msg, RunOptions{Format: "text"}))

		f.AssertExpectations(t)
		g.AssertExpectations(t)
		g.AssertNumberOfCalls(t, "Commit", 1)
		assert.Contains(t, out.String(), "Commit:    3f2a9c1 Tune PID gains")
		assert.Contains(t, logs.String(), "Formatting with cargo fmt...")
		assert.Contains(t, logs.String(), "Committing...")
	})

	t.Run("formatter failure never commits", func(t *testing.T) {
		t.Parallel()
		f := &MockFormatter{}
		g := &MockGitter{}
		fmtErr := &formatter.FailedError{
			CommandLine: []string{"cargo", "fmt"},
			ExitCode:    1,
			Output:      "error: expected `;`, found `}`",
			Wrapped:     errors.New("exit status 1"),
		}
		f.On("Format", mock.Anything).Return(nil, fmtErr).Once()

		var out bytes.Buffer
		m := newTestManager(f, g, &out, io.Discard)
		err := m.FormatAndCommit(ctx, "msg", RunOptions{})

		require.ErrorIs(t, err, fmtErr)
		assert.Contains(t, err.Error(), "error: expected `;`, found `}`")
		g.AssertNotCalled(t, "Commit", mock.Anything, mock.Anything)
		assert.Empty(t, out.String())
	})

	t.Run("no-commit skips the committer", func(t *testing.T) {
		t.Parallel()
		f := &MockFormatter{}
		g := &MockGitter{}
		f.On("Format", mock.Anything).Return(okFormat(), nil).Once()

		var out bytes.Buffer
		m := newTestManager(f, g, &out, io.Discard)
		require.NoError(t, m.FormatAndCommit(ctx, "msg", RunOptions{NoCommit: true, Format: "json"}))

		g.AssertNotCalled(t, "Commit", mock.Anything, mock.Anything)
		assert.False(t, gjson.Get(out.String(), "commit.committed").Bool())
		assert.Equal(t, NoCommitNote, gjson.Get(out.String(), "commit.note").String())
		assert.Equal(t, "40ms", gjson.Get(out.String(), "format.duration").String())
	})

	t.Run("nothing to commit is not an error", func(t *testing.T) {
		t.Parallel()
		f := &MockFormatter{}
		g := &MockGitter{}
		f.On("Format", mock.Anything).Return(okFormat(), nil).Once()
		g.On("Commit", mock.Anything, "msg").Return(repo.Revision(""), repo.ErrNothingToCommit).Once()

		var out, logs bytes.Buffer
		m := newTestManager(f, g, &out, &logs)
		require.NoError(t, m.FormatAndCommit(ctx, "msg", RunOptions{Format: "json"}))

		assert.False(t, gjson.Get(out.String(), "commit.committed").Bool())
		assert.Equal(t, NothingToCommitNote, gjson.Get(out.String(), "commit.note").String())
		assert.Contains(t, logs.String(), "Nothing to commit")
	})

	t.Run("commit failure is returned", func(t *testing.T) {
		t.Parallel()
		f := &MockFormatter{}
		g := &MockGitter{}
		commitErr := &repo.CommitError{Output: "fatal: unable to auto-detect email address", Wrapped: errors.New("exit status 128")}
		f.On("Format", mock.Anything).Return(okFormat(), nil).Once()
		g.On("Commit", mock.Anything, "msg").Return(repo.Revision(""), commitErr).Once()

		var out bytes.Buffer
		m := newTestManager(f, g, &out, io.Discard)
		err := m.FormatAndCommit(ctx, "msg", RunOptions{})

		var target *repo.CommitError
		require.ErrorAs(t, err, &target)
		assert.Contains(t, err.Error(), "unable to auto-detect email address")
		assert.Empty(t, out.String())
	})

	t.Run("formatter diagnostics are logged at debug", func(t *testing.T) {
		t.Parallel()
		f := &MockFormatter{}
		g := &MockGitter{}
		res := okFormat()
		res.Stderr = "Warning: unstable feature\n"
		f.On("Format", mock.Anything).Return(res, nil).Once()
		g.On("Commit", mock.Anything, "msg").Return(repo.Revision("abc1234"), nil).Once()

		ll := &slog.LevelVar{}
		ll.Set(slog.LevelDebug)
		var logs bytes.Buffer
		logger := slog.New(&consoleHandler{w: &logs, level: ll})
		m := NewCLIManager(logger, f, g, io.Discard)

		require.NoError(t, m.FormatAndCommit(ctx, "msg", RunOptions{}))
		assert.Contains(t, logs.String(), "formatter diagnostics\n  Warning: unstable feature\n")
	})

	t.Run("unknown report format fails before formatting", func(t *testing.T) {
		t.Parallel()
		f := &MockFormatter{}
		g := &MockGitter{}

		m := newTestManager(f, g, io.Discard, io.Discard)
		err := m.FormatAndCommit(ctx, "msg", RunOptions{Format: "xml"})
		require.Error(t, err)
		f.AssertNotCalled(t, "Format", mock.Anything)
		g.AssertNotCalled(t, "Commit", mock.Anything, mock.Anything)
	})
}
