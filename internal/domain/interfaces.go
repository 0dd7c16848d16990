// Package domain defines the core business entities and interfaces for git-review.
// This package contains no external dependencies and represents the innermost layer
// of the CLEAN architecture.
package domain

import (
	"context"
	"errors"
)

// Domain errors for repository access and diff computation.
var (
	// ErrRepositoryNotFound indicates no Git repository exists at the resolved location.
	ErrRepositoryNotFound = errors.New("git repository not found")

	// ErrBadRevision indicates a revision string could not be resolved in the repository.
	ErrBadRevision = errors.New("bad revision")

	// ErrNoChanges indicates the resolved range contains no changed files.
	ErrNoChanges = errors.New("no changes in the resolved range")
)

// Repository resolves commit references and computes diffs from a local
// Git repository.
type Repository interface {
	// GetDiff computes the file changes between the parent and child sides.
	// Returns ErrBadRevision (wrapped with the offending ref) when a side
	// cannot be resolved, and ErrNoChanges when the two sides are identical.
	GetDiff(ctx context.Context, parent, child Commit) (*Diff, error)

	// Close releases any resources held by the repository.
	Close() error
}

// Reviewer drives the interactive per-file walk of a computed diff.
type Reviewer interface {
	// Run walks the diff and returns the process exit code to propagate.
	// A nonzero status from an external viewer program is returned verbatim
	// together with the error that produced it.
	Run(ctx context.Context) (int, error)
}

// Reporter formats user-facing diagnostics for the invoking shell. Errors
// and warnings carry the program basename prefix and go to standard error;
// notices go to standard output.
type Reporter interface {
	// Error writes "<prog>: error: <msg>" to standard error.
	Error(msg string) error

	// Warning writes "<prog>: warning: <msg>" to standard error.
	Warning(msg string) error

	// Notice writes "<prog>: <msg>" to standard output.
	Notice(msg string) error

	// Usage writes rendered usage text to standard error.
	Usage(usage string) error
}
