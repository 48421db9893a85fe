package app

import (
	"context"
	"io"
	"log/slog"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/andyballingall/fmtcommit/internal/config"
	"github.com/andyballingall/fmtcommit/internal/formatter"
	"github.com/andyballingall/fmtcommit/internal/fs"
	"github.com/andyballingall/fmtcommit/internal/repo"
)

// Version is the current version of fmtcommit, set at build time.
var Version = "dev"

var LongDescription = `
fmtcommit formats the working tree with your formatter (cargo fmt by default)
and, only if formatting succeeds, stages every change and commits it with the
given message. If the formatter fails its error output is printed and nothing
is committed.

The formatter and version-control client can be changed in a ` + config.ConfigFile + `
file at the repository root, or a file named by --config or ` + config.ConfigEnvVar + `.
`

// NewRootCmd creates the root command and wires up dependencies.
func NewRootCmd(lazy *LazyManager, ll *slog.LevelVar, stdout, stderr io.Writer, env fs.EnvProvider) *cobra.Command {
	var debug bool
	var noColour bool
	var noCommit bool
	configPath := pathValue("")
	workDir := pathValue("")
	output := formatValue("text")

	rootCmd := &cobra.Command{
		Use:           "fmtcommit <message>",
		Short:         "Format the working tree, then commit it",
		Version:       Version,
		SilenceErrors: true,
		SilenceUsage:  true,
		Long:          LongDescription,
		Args:          requireMessage,
		Example: `
  fmtcommit "Add PID controller"
  fmtcommit --no-commit "unused"
  fmtcommit -C ../wpilib -o json "Tune feed forward gains"`,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if debug {
				ll.Set(slog.LevelDebug)
			}
			// Skip if already initialised (e.g., in tests)
			if lazy.HasInner() {
				return nil
			}

			mgr, closer, err := buildManager(cmd.Context(), ll, stdout, stderr, env, string(configPath), string(workDir))
			if err != nil {
				return err
			}
			lazy.SetInner(mgr)
			lazy.SetCloser(closer)
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return lazy.FormatAndCommit(cmd.Context(), args[0], RunOptions{
				NoCommit:  noCommit,
				Format:    output.String(),
				UseColour: !noColour && !color.NoColor,
			})
		},
	}

	rootCmd.Flags().VarP(&configPath, "config", "c", "config file (overrides "+config.ConfigEnvVar+" and "+
		config.ConfigFile+")")
	rootCmd.Flags().VarP(&workDir, "directory", "C", "run as if started in this directory")
	rootCmd.Flags().VarP(&output, "output", "o", "Report format (text, json)")
	rootCmd.Flags().BoolVarP(&noCommit, "no-commit", "n", false, "Format only; do not commit")
	rootCmd.Flags().BoolVarP(&debug, "debug", "d", false, "Enable debug logging")

	rootCmd.Flags().BoolVar(&noColour, "nocolour", false, "Disable colour in output")
	// Support alternate spellings
	rootCmd.Flags().BoolVar(&noColour, "nocolor", false, "")
	_ = rootCmd.Flags().MarkHidden("nocolor")

	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	return rootCmd
}

// requireMessage checks for exactly one non-blank commit message.
func requireMessage(_ *cobra.Command, args []string) error {
	switch {
	case len(args) == 0 || strings.TrimSpace(args[0]) == "":
		return &MissingMessageError{}
	case len(args) > 1:
		return &TooManyArgumentsError{Count: len(args)}
	}
	return nil
}

// buildManager resolves the repository, config and logger for a real run.
func buildManager(ctx context.Context, ll *slog.LevelVar, stdout, stderr io.Writer, env fs.EnvProvider,
	configPath, workDir string,
) (*CLIManager, io.Closer, error) {
	// 1. Find the repository root. Outside a repository the formatter still
	// runs in workDir and the commit step reports git's error.
	root := workDir
	if r, err := repo.NewCLIGitter(config.DefaultVCSCommand, workDir, repo.CommitOptions{}).Root(ctx); err == nil {
		root = r
	}

	// 2. Load config
	cfg, err := config.Resolve(configPath, env, root)
	if err != nil {
		return nil, nil, err
	}

	gitter := repo.NewCLIGitter(cfg.VCS.Command, root, repo.CommitOptions{
		StageAll: cfg.ShouldStageAll(),
		Signoff:  cfg.Commit.Signoff,
		NoVerify: cfg.Commit.NoVerify,
	})

	// 3. Setup Logging
	gitDir, _ := gitter.GitDir(ctx)
	logger, closer, err := setupLogger(stderr, ll, logFilePath(env, gitDir))
	if err != nil {
		logger.Warn("logging to file disabled", "error", err)
	}
	logger.Debug("resolved run", "root", root, "config", cfg.Path, "formatter", cfg.FormatterCommandLine(),
		"vcs", cfg.VCS.Command)

	// Formatter stdout goes to stderr with the other progress output, so
	// stdout carries only the report.
	f := formatter.NewCLIFormatter(cfg.Formatter.Command, cfg.Formatter.Args, root, stderr)

	return NewCLIManager(logger, f, gitter, stdout), closer, nil
}
