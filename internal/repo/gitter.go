package repo

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// Revision represents a specific git point-in-time (tag or hash).
type Revision string

func (r Revision) String() string { return string(r) }

// ErrNothingToCommit is returned by Commit when the working tree has no changes to record.
var ErrNothingToCommit = errors.New("nothing to commit, working tree clean")

// CommitOptions controls how changes are recorded.
type CommitOptions struct {
	StageAll bool // stage every change, including untracked files, before committing.
	Signoff  bool
	NoVerify bool
}

// CommitError is returned when the version-control client fails to commit.
// Output holds the client's combined output.
type CommitError struct {
	Output  string
	Wrapped error
}

func (e *CommitError) Error() string {
	msg := fmt.Sprintf("commit failed: %v", e.Wrapped)
	if out := strings.TrimSpace(e.Output); out != "" {
		msg += "\n" + out
	}
	return msg
}

func (e *CommitError) Unwrap() error { return e.Wrapped }

// Gitter defines the interface for git repository operations.
type Gitter interface {
	// Root returns the top-level directory of the working tree.
	Root(ctx context.Context) (string, error)

	// GitDir returns the absolute path of the repository's .git directory.
	GitDir(ctx context.Context) (string, error)

	// Commit stages changes and records them under message, returning the new revision.
	// It returns ErrNothingToCommit if there was nothing to record.
	Commit(ctx context.Context, message string) (Revision, error)
}
