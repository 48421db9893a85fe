package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/andyballingall/fmtcommit/internal/fs"
)

// Run executes fmtcommit with the given process arguments. Any returned error
// has already been printed to stderr; the caller only needs to set the exit status.
func Run(ctx context.Context, args []string, stdout, stderr io.Writer, envProvider fs.EnvProvider) error {
	logLevel := &slog.LevelVar{}
	logLevel.Set(slog.LevelInfo)

	// Local lazy instance ensures t.Parallel() safety
	lazy := &LazyManager{}
	defer func() { _ = lazy.Close() }()

	if envProvider == nil {
		envProvider = fs.NewEnvProvider()
	}

	rootCmd := NewRootCmd(lazy, logLevel, stdout, stderr, envProvider)
	rootCmd.SetArgs(args[1:]) // Skip the program name

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		// Print error to stderr for script tests and CLI users (SilenceErrors is set)
		fmt.Fprintf(stderr, "Error: %v\n", err)
		if isUsageError(err) {
			fmt.Fprintf(stderr, "\n%s", rootCmd.UsageString())
		}
		return err
	}

	return nil
}
