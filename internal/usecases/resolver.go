// Package usecases contains the application business logic.
// This package orchestrates domain entities and interfaces to fulfill use cases.
package usecases

import (
	"context"
	"strings"

	"github.com/timguo/git-review/internal/domain"
	"github.com/timguo/git-review/internal/options"
)

// Logger defines the logging interface required by the resolver.
// This abstracts the logger dependency to avoid coupling to a specific implementation.
type Logger interface {
	Info(ctx context.Context, msg string, fields map[string]interface{})
	Debug(ctx context.Context, msg string, fields map[string]interface{})
	Warn(ctx context.Context, msg string, fields map[string]interface{})
	Error(ctx context.Context, msg string, err error, fields map[string]interface{})
}

// RangeResolver converts parsed options into the (parent, child) commit pair
// the repository will diff. Exactly one resolution path applies per invocation;
// contradictory flag and argument combinations fail with a ValidationError.
type RangeResolver struct {
	logger Logger
}

// NewRangeResolver creates a new RangeResolver with the given logger.
func NewRangeResolver(log Logger) *RangeResolver {
	return &RangeResolver{logger: log}
}

// Resolve computes the commit range selected by opts.
//
// An explicit -c/--commit reference is a complete range specification (the
// commit against its first parent) and rejects any other range input. Without
// it, --cached selects staged-against-HEAD, the bare default is
// working-tree-against-index, and up to two positional references override
// the default pair one side at a time.
func (r *RangeResolver) Resolve(ctx context.Context, opts *options.Options) (domain.Range, error) {
	r.logger.Debug(ctx, "resolving commit range", map[string]interface{}{
		"commit":      opts.Commit,
		"cached":      opts.Cached,
		"positionals": len(opts.Args),
	})

	// The explicit-commit path is terminal: no later rule may reinterpret it.
	if opts.Commit != "" {
		if opts.Cached {
			return domain.Range{}, options.NewValidationError("--commit and --cached are mutually exclusive")
		}
		if len(opts.Args) > 0 {
			return domain.Range{}, options.NewValidationError("additional commit arguments may not be specified with --commit")
		}

		child := domain.Rev(opts.Commit)
		rng := domain.Range{Parent: child.Parent(), Child: child}
		r.logger.Debug(ctx, "resolved range from explicit commit", map[string]interface{}{
			"range": rng.String(),
		})
		return rng, nil
	}

	// Defaults: staged changes against HEAD with --cached, otherwise the
	// working tree against the index.
	rng := domain.Range{Parent: domain.Index(), Child: domain.Worktree()}
	if opts.Cached {
		rng = domain.Range{Parent: domain.Head(), Child: domain.Index()}
	}

	// Positional references override the defaults one side at a time.
	switch len(opts.Args) {
	case 0:
		// Keep the defaults.
	case 1:
		rng.Parent = domain.Rev(opts.Args[0])
	case 2:
		if opts.Cached {
			return domain.Range{}, options.NewValidationError("cannot specify --cached with two commits")
		}
		rng = domain.Range{Parent: domain.Rev(opts.Args[0]), Child: domain.Rev(opts.Args[1])}
	default:
		return domain.Range{}, options.NewValidationError(
			"trailing arguments: " + strings.Join(opts.Args[2:], " "),
		)
	}

	r.logger.Debug(ctx, "resolved range", map[string]interface{}{
		"range": rng.String(),
	})
	return rng, nil
}
