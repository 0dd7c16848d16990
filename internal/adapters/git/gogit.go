// Package git provides adapters for interacting with local Git repositories.
// This package implements the domain.Repository interface using go-git/v5.
package git

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"
	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/cache"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/storage/filesystem"

	"github.com/timguo/git-review/internal/domain"
)

// Logger defines the logging interface for the git adapter.
// This interface enables dependency injection and testability.
type Logger interface {
	Debug(ctx context.Context, msg string, fields map[string]interface{})
	Warn(ctx context.Context, msg string, fields map[string]interface{})
}

// GoGitRepository implements domain.Repository using go-git/v5.
// It resolves the pseudo-commits HEAD, INDEX, and WD as well as arbitrary
// revision strings, and computes per-file changes between any two of them.
type GoGitRepository struct {
	repo   *gogit.Repository
	wt     *gogit.Worktree
	wtfs   billy.Filesystem
	logger Logger
}

// NewGoGitRepository opens the repository selected by the optional gitDir and
// workTree overrides. With both empty the repository is discovered by walking
// up from the current directory, like plain git. With either set, the object
// store and the working tree are composed explicitly; a missing work tree
// defaults to the current directory and a missing git dir is discovered from
// the current directory.
//
// Returns domain.ErrRepositoryNotFound (wrapped with the searched location)
// when no repository can be opened.
func NewGoGitRepository(gitDir, workTree string, log Logger) (*GoGitRepository, error) {
	repo, err := openRepository(gitDir, workTree)
	if err != nil {
		return nil, err
	}

	r := &GoGitRepository{
		repo:   repo,
		logger: log,
	}

	// Bare repositories have no working tree; INDEX and WD sides will be
	// rejected when requested rather than at open time.
	if wt, err := repo.Worktree(); err == nil {
		r.wt = wt
		r.wtfs = wt.Filesystem
	}

	return r, nil
}

// openRepository opens the object store and working tree for the given
// overrides.
func openRepository(gitDir, workTree string) (*gogit.Repository, error) {
	if gitDir == "" && workTree == "" {
		repo, err := gogit.PlainOpenWithOptions(".", &gogit.PlainOpenOptions{DetectDotGit: true})
		if err != nil {
			cwd, _ := os.Getwd()
			return nil, fmt.Errorf("%w: searched from %s", domain.ErrRepositoryNotFound, cwd)
		}
		return repo, nil
	}

	if gitDir == "" {
		var err error
		gitDir, err = discoverGitDir(".")
		if err != nil {
			return nil, err
		}
	}
	if workTree == "" {
		workTree = "."
	}

	storage := filesystem.NewStorage(osfs.New(gitDir), cache.NewObjectLRUDefault())
	repo, err := gogit.Open(storage, osfs.New(workTree))
	if err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrRepositoryNotFound, gitDir)
	}
	return repo, nil
}

// discoverGitDir walks up from start looking for a .git directory, following
// a .git file indirection (linked worktrees) when present.
func discoverGitDir(start string) (string, error) {
	dir, err := filepath.Abs(start)
	if err != nil {
		return "", fmt.Errorf("%w: %s", domain.ErrRepositoryNotFound, start)
	}

	for {
		candidate := filepath.Join(dir, gogit.GitDirName)
		if info, statErr := os.Stat(candidate); statErr == nil {
			if info.IsDir() {
				return candidate, nil
			}
			return readGitdirFile(dir, candidate)
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("%w: searched from %s", domain.ErrRepositoryNotFound, start)
		}
		dir = parent
	}
}

// readGitdirFile resolves a "gitdir: <path>" indirection file relative to the
// directory that contains it.
func readGitdirFile(dir, path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("%w: %s", domain.ErrRepositoryNotFound, path)
	}

	target := strings.TrimSpace(strings.TrimPrefix(string(data), "gitdir:"))
	if target == "" {
		return "", fmt.Errorf("%w: %s has no gitdir entry", domain.ErrRepositoryNotFound, path)
	}
	if !filepath.IsAbs(target) {
		target = filepath.Join(dir, target)
	}
	return target, nil
}

// revTree resolves a revision string to the tree of the commit it names.
// Annotated tags are peeled to their target commit.
func (r *GoGitRepository) revTree(rev string) (*object.Tree, error) {
	hash, err := r.repo.ResolveRevision(plumbing.Revision(rev))
	if err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrBadRevision, rev)
	}

	commit, err := r.repo.CommitObject(*hash)
	if err != nil {
		tag, tagErr := r.repo.TagObject(*hash)
		if tagErr != nil {
			return nil, fmt.Errorf("%w: %s does not name a commit", domain.ErrBadRevision, rev)
		}
		commit, err = tag.Commit()
		if err != nil {
			return nil, fmt.Errorf("%w: %s does not name a commit", domain.ErrBadRevision, rev)
		}
	}

	tree, err := commit.Tree()
	if err != nil {
		return nil, fmt.Errorf("failed to load tree for %s: %w", rev, err)
	}
	return tree, nil
}

// Close releases any resources held by the repository.
// For go-git, this is a no-op as the repository doesn't hold persistent resources.
func (r *GoGitRepository) Close() error {
	return nil
}
