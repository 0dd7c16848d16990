// Package cmd provides the CLI commands for git-review.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/timguo/git-review/internal/domain"
	"github.com/timguo/git-review/internal/options"
)

// Logger defines the logging interface used by the command.
type Logger interface {
	Info(ctx context.Context, msg string, fields map[string]interface{})
	Debug(ctx context.Context, msg string, fields map[string]interface{})
	Warn(ctx context.Context, msg string, fields map[string]interface{})
	Error(ctx context.Context, msg string, err error, fields map[string]interface{})
}

// Resolver turns parsed options into the commit range under review.
type Resolver interface {
	Resolve(ctx context.Context, opts *options.Options) (domain.Range, error)
}

// Dependencies holds all injectable dependencies for the command.
// This enables testing by allowing mock implementations to be injected.
type Dependencies struct {
	// LoggerFactory creates a logger instance.
	LoggerFactory func() Logger

	// ConfigLoader loads application configuration.
	ConfigLoader func() (*AppConfig, error)

	// ResolverFactory creates the commit range resolver.
	ResolverFactory func(log Logger) Resolver

	// RepositoryFactory opens the repository described by the directory
	// overrides. Empty strings mean discovery from the current directory.
	RepositoryFactory func(gitDir, workTree string, log Logger) (domain.Repository, error)

	// ReviewerFactory creates the interactive reviewer for a computed diff.
	ReviewerFactory func(repo domain.Repository, diff *domain.Diff, cfg *AppConfig, log Logger) domain.Reviewer

	// ReporterFactory creates the user-facing message reporter.
	ReporterFactory func(prog string, out, errW io.Writer) domain.Reporter

	// Stdout is the writer for standard output (notices, rendered diffs).
	Stdout io.Writer

	// Stderr is the writer for standard error (warnings/errors).
	Stderr io.Writer
}

// AppConfig holds application configuration loaded by ConfigLoader.
type AppConfig struct {
	// DiffProgram is the external diff program, empty for inline rendering.
	DiffProgram string

	// ViewProgram is the program used to open newly added files.
	ViewProgram string

	// LogLevel is the log level setting.
	LogLevel string

	// Color enables syntax highlighting of inline diffs.
	Color bool
}

// Exit codes returned by Execute.
const (
	// ExitSuccess is returned for completed reviews and for help output.
	ExitSuccess = 0

	// ExitArgsError is returned when flags or positional arguments are
	// invalid.
	ExitArgsError = 1

	// ExitRuntimeError is returned for failures after argument handling,
	// such as repository or viewer errors.
	ExitRuntimeError = 2
)

// exitCodeError carries a specific process exit code out of the run
// function, such as a failed viewer program's own status.
type exitCodeError struct {
	code int
	err  error
}

func (e *exitCodeError) Error() string {
	if e.err != nil {
		return e.err.Error()
	}
	return fmt.Sprintf("exit status %d", e.code)
}

func (e *exitCodeError) Unwrap() error {
	return e.err
}

// defaultDeps holds the production dependencies.
// This is set by the production wiring in main or via SetDefaultDependencies.
var defaultDeps *Dependencies

// SetDefaultDependencies sets the default dependencies for production use.
// This should be called from main() before Execute().
func SetDefaultDependencies(deps *Dependencies) {
	defaultDeps = deps
}

// NewRootCmd creates the root command for git-review.
func NewRootCmd() *cobra.Command {
	return NewRootCmdWithDeps(defaultDeps)
}

// NewRootCmdWithDeps creates the root command with explicit dependencies.
// This is the primary constructor that enables testing via dependency injection.
func NewRootCmdWithDeps(deps *Dependencies) *cobra.Command {
	var opts *options.Options

	rootCmd := &cobra.Command{
		Use:   "git-review [<commit> [<commit>]]",
		Short: "Interactively review changes between two states of a git repository",
		Long: `git-review walks the files that differ between two commits, the index,
or the working tree, presenting each change in turn for review.

With no arguments it reviews unstaged changes: the index against the
working tree. Positional commits and the --commit/--cached flags select
other ranges.

Changed files render as unified diffs, or through the program named by
GIT_REVIEW_DIFF when set. Newly added files open in the program resolved
from GIT_REVIEW_VIEW, GIT_EDITOR, VISUAL, or EDITOR.

Examples:
  # Review unstaged changes
  git-review

  # Review staged changes
  git-review --cached

  # Review everything introduced by one commit
  git-review -c 1a2b3c4

  # Review the range between two commits
  git-review v1.0.0 v1.1.0`,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReview(cmd, args, opts, deps)
		},
	}

	// Binding registers the help flag with the '?' shorthand before cobra
	// would install its own.
	opts = options.Bind(rootCmd.Flags())

	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		if errors.Is(err, pflag.ErrHelp) {
			return err
		}
		return options.NewParseError(err)
	})

	if deps != nil {
		if deps.Stdout != nil {
			rootCmd.SetOut(deps.Stdout)
		}
		if deps.Stderr != nil {
			rootCmd.SetErr(deps.Stderr)
		}
	}

	return rootCmd
}

// runReview executes the review pipeline with injected dependencies:
// resolve the commit range, open the repository, compute the diff, and
// hand it to the interactive reviewer.
func runReview(cmd *cobra.Command, args []string, opts *options.Options, deps *Dependencies) error {
	if deps == nil {
		return errors.New("dependencies not configured")
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	opts.Args = args

	log := deps.LoggerFactory()

	log.Info(ctx, "starting git-review", map[string]interface{}{
		"commit":    opts.Commit,
		"cached":    opts.Cached,
		"git_dir":   opts.GitDir,
		"work_tree": opts.WorkTree,
		"args":      opts.Args,
	})

	cfg, err := deps.ConfigLoader()
	if err != nil {
		log.Error(ctx, "failed to load configuration", err, nil)
		return fmt.Errorf("configuration error: %w", err)
	}

	resolver := deps.ResolverFactory(log)
	rng, err := resolver.Resolve(ctx, opts)
	if err != nil {
		log.Error(ctx, "failed to resolve commit range", err, nil)
		return err
	}

	repo, err := deps.RepositoryFactory(opts.GitDir, opts.WorkTree, log)
	if err != nil {
		log.Error(ctx, "failed to open git repository", err, map[string]interface{}{
			"git_dir":   opts.GitDir,
			"work_tree": opts.WorkTree,
		})
		return err
	}
	defer func() {
		if closeErr := repo.Close(); closeErr != nil {
			log.Warn(ctx, "failed to close git repository", map[string]interface{}{
				"error": closeErr.Error(),
			})
		}
	}()

	diff, err := repo.GetDiff(ctx, rng.Parent, rng.Child)
	if err != nil {
		if errors.Is(err, domain.ErrNoChanges) {
			log.Info(ctx, "nothing to review", map[string]interface{}{
				"range": rng.String(),
			})
			notice := fmt.Sprintf("no changes between %s and %s", rng.Parent, rng.Child)
			if writeErr := reporterFor(cmd, deps).Notice(notice); writeErr != nil {
				return fmt.Errorf("output error: %w", writeErr)
			}
			return nil
		}
		log.Error(ctx, "failed to compute diff", err, map[string]interface{}{
			"range": rng.String(),
		})
		return err
	}

	reviewer := deps.ReviewerFactory(repo, diff, cfg, log)
	code, err := reviewer.Run(ctx)
	if err != nil {
		log.Error(ctx, "review session failed", err, nil)
		return &exitCodeError{code: code, err: err}
	}
	if code != ExitSuccess {
		return &exitCodeError{code: code}
	}

	log.Info(ctx, "review complete", map[string]interface{}{
		"range": rng.String(),
		"files": len(diff.Files),
	})

	return nil
}

// Execute runs the root command and returns the process exit code.
func Execute() int {
	return executeCommand(NewRootCmd(), defaultDeps)
}

// executeCommand runs the command and maps the error taxonomy onto exit
// codes: argument problems exit 1, everything else that fails exits 2,
// and viewer exit codes pass through unchanged.
func executeCommand(cmd *cobra.Command, deps *Dependencies) int {
	err := cmd.Execute()
	if err == nil {
		return ExitSuccess
	}

	if deps == nil {
		// Best-effort: no reporter can be built without dependencies.
		fmt.Fprintf(cmd.ErrOrStderr(), "%s: error: %s\n", cmd.Name(), err)
		return ExitRuntimeError
	}

	reporter := reporterFor(cmd, deps)

	var exitErr *exitCodeError
	if errors.As(err, &exitErr) {
		if exitErr.err != nil {
			_ = reporter.Error(exitErr.err.Error())
		}
		return exitErr.code
	}

	var parseErr *options.ParseError
	var validationErr *options.ValidationError
	if errors.As(err, &parseErr) || errors.As(err, &validationErr) {
		_ = reporter.Usage(cmd.UsageString())
		_ = reporter.Error(err.Error())
		return ExitArgsError
	}

	_ = reporter.Error(err.Error())
	return ExitRuntimeError
}

// reporterFor builds the user-facing reporter bound to the command's streams.
func reporterFor(cmd *cobra.Command, deps *Dependencies) domain.Reporter {
	out := deps.Stdout
	if out == nil {
		out = os.Stdout
	}
	errW := deps.Stderr
	if errW == nil {
		errW = os.Stderr
	}
	return deps.ReporterFactory(cmd.Name(), out, errW)
}
