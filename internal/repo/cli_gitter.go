package repo

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"
)

// absPath is a variable for filepath.Abs to allow mocking in tests.
var absPath = filepath.Abs

// CLIGitter is the concrete implementation of Gitter using the git CLI.
type CLIGitter struct {
	program string
	dir     string
	opts    CommitOptions
}

// NewCLIGitter creates a new CLIGitter that runs program (usually "git") in dir.
// An empty dir means the current working directory.
func NewCLIGitter(program, dir string, opts CommitOptions) *CLIGitter {
	return &CLIGitter{program: program, dir: dir, opts: opts}
}

func (g *CLIGitter) command(ctx context.Context, args ...string) *exec.Cmd {
	//nolint:gosec // the git program comes from the user's own config
	cmd := exec.CommandContext(ctx, g.program, args...)
	cmd.Dir = g.dir
	return cmd
}

// output runs a git subcommand and returns its trimmed stdout.
func (g *CLIGitter) output(ctx context.Context, args ...string) (string, error) {
	out, err := g.command(ctx, args...).Output()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(out)), nil
}

// Root finds the top-level directory of the git repository.
func (g *CLIGitter) Root(ctx context.Context) (string, error) {
	root, err := g.output(ctx, "rev-parse", "--show-toplevel")
	if err != nil {
		return "", fmt.Errorf("failed to find git root: %w", err)
	}
	return root, nil
}

// GitDir finds the .git directory. git prints it relative to dir, so it is
// resolved to an absolute path.
func (g *CLIGitter) GitDir(ctx context.Context) (string, error) {
	gitDir, err := g.output(ctx, "rev-parse", "--git-dir")
	if err != nil {
		return "", fmt.Errorf("failed to find git directory: %w", err)
	}
	if !filepath.IsAbs(gitDir) {
		gitDir = filepath.Join(g.dir, gitDir)
	}
	return absPath(gitDir)
}

// Commit records every change in the working tree under message.
func (g *CLIGitter) Commit(ctx context.Context, message string) (Revision, error) {
	if g.opts.StageAll {
		// 1. Stage everything, including deletions and untracked files
		if out, err := g.command(ctx, "add", "--all").CombinedOutput(); err != nil {
			return "", &CommitError{Output: string(out), Wrapped: fmt.Errorf("git add failed: %w", err)}
		}
	}

	// 2. Commit with the message exactly as given
	args := []string{"commit", "-m", message}
	if g.opts.Signoff {
		args = append(args, "--signoff")
	}
	if g.opts.NoVerify {
		args = append(args, "--no-verify")
	}

	var out bytes.Buffer
	cmd := g.command(ctx, args...)
	cmd.Stdout = &out
	cmd.Stderr = &out
	if err := cmd.Run(); err != nil {
		if clean, sErr := g.isClean(ctx); sErr == nil && clean {
			return "", ErrNothingToCommit
		}
		return "", &CommitError{Output: out.String(), Wrapped: err}
	}

	// 3. Report the revision that was created
	rev, err := g.output(ctx, "rev-parse", "--short", "HEAD")
	if err != nil {
		return "", fmt.Errorf("commit succeeded but HEAD could not be read: %w", err)
	}
	return Revision(rev), nil
}

// isClean reports whether git status shows no changes at all.
func (g *CLIGitter) isClean(ctx context.Context) (bool, error) {
	status, err := g.output(ctx, "status", "--porcelain")
	if err != nil {
		return false, err
	}
	return status == "", nil
}
