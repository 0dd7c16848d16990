// Package main is the entry point for the git-review CLI application.
// git-review resolves a commit range from its arguments and walks the
// files that changed, presenting each one for interactive review.
package main

import (
	"io"
	"os"

	"github.com/mattn/go-isatty"

	"github.com/timguo/git-review/cmd"
	"github.com/timguo/git-review/internal/adapters/git"
	logadapter "github.com/timguo/git-review/internal/adapters/logger"
	"github.com/timguo/git-review/internal/adapters/output"
	"github.com/timguo/git-review/internal/adapters/review"
	"github.com/timguo/git-review/internal/domain"
	"github.com/timguo/git-review/internal/infrastructure/config"
	"github.com/timguo/git-review/internal/usecases"
)

func main() {
	os.Exit(run())
}

func run() int {
	// Create a single shared logger instance for the application.
	zapLog := logadapter.NewZapLogger(os.Getenv(config.EnvLogLevel))
	adapter := logadapter.NewZapAdapter(zapLog)

	// Wire up production dependencies
	deps := &cmd.Dependencies{
		LoggerFactory: func() cmd.Logger {
			return adapter
		},

		ConfigLoader: func() (*cmd.AppConfig, error) {
			cfg := config.Load()
			return &cmd.AppConfig{
				DiffProgram: cfg.DiffProgram,
				ViewProgram: cfg.ViewProgram,
				LogLevel:    cfg.LogLevel,
				Color:       colorEnabled(cfg, os.Stdout),
			}, nil
		},

		ResolverFactory: func(_ cmd.Logger) cmd.Resolver {
			return usecases.NewRangeResolver(adapter)
		},

		RepositoryFactory: func(gitDir, workTree string, _ cmd.Logger) (domain.Repository, error) {
			return git.NewGoGitRepository(gitDir, workTree, adapter)
		},

		ReviewerFactory: func(
			repo domain.Repository,
			diff *domain.Diff,
			cfg *cmd.AppConfig,
			_ cmd.Logger,
		) domain.Reviewer {
			return review.NewInteractiveReviewer(repo, diff, review.Config{
				DiffProgram: cfg.DiffProgram,
				ViewProgram: cfg.ViewProgram,
				Color:       cfg.Color,
			}, adapter)
		},

		ReporterFactory: func(prog string, out, errW io.Writer) domain.Reporter {
			return output.NewReporterWithStreams(prog, out, errW)
		},

		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}

	cmd.SetDefaultDependencies(deps)
	return cmd.Execute()
}

// colorEnabled reports whether inline diffs should be highlighted: only
// when writing to a terminal, and never when NO_COLOR is set.
func colorEnabled(cfg *config.Config, f *os.File) bool {
	if cfg.NoColor {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
