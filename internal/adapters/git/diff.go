package git

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"sort"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/filemode"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/pmezard/go-difflib/difflib"

	"github.com/timguo/git-review/internal/domain"
)

// sideFile is one side's version of a path: the blob hash used for change
// detection plus a loader that materializes the file on demand.
type sideFile struct {
	hash plumbing.Hash
	load func() (*object.File, error)
}

// fileSet maps repository-relative paths to one side's version of each file.
type fileSet map[string]*sideFile

// GetDiff computes the file changes between the parent and child sides.
// Returns domain.ErrBadRevision when a side cannot be resolved and
// domain.ErrNoChanges when the two sides are identical.
func (r *GoGitRepository) GetDiff(ctx context.Context, parent, child domain.Commit) (*domain.Diff, error) {
	r.logger.Debug(ctx, "computing diff", map[string]interface{}{
		"parent": parent.String(),
		"child":  child.String(),
	})

	parentSet, err := r.fileSetFor(parent)
	if err != nil {
		return nil, err
	}
	childSet, err := r.fileSetFor(child)
	if err != nil {
		return nil, err
	}

	// Union of both sides, ordered by path.
	paths := make([]string, 0, len(parentSet)+len(childSet))
	for path := range parentSet {
		paths = append(paths, path)
	}
	for path := range childSet {
		if _, ok := parentSet[path]; !ok {
			paths = append(paths, path)
		}
	}
	sort.Strings(paths)

	var files []domain.FileChange
	for _, path := range paths {
		// Check context for cancellation
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		from := parentSet[path]
		to := childSet[path]
		if from != nil && to != nil && from.hash == to.hash {
			continue
		}

		change, err := buildChange(path, from, to)
		if err != nil {
			return nil, err
		}
		files = append(files, change)
	}

	if len(files) == 0 {
		return nil, domain.ErrNoChanges
	}

	r.logger.Debug(ctx, "diff computed", map[string]interface{}{
		"parent":        parent.String(),
		"child":         child.String(),
		"changed_files": len(files),
	})

	return &domain.Diff{Parent: parent, Child: child, Files: files}, nil
}

// fileSetFor builds the file listing for one side of the comparison.
func (r *GoGitRepository) fileSetFor(c domain.Commit) (fileSet, error) {
	switch c.Kind() {
	case domain.KindHead:
		return r.treeSet("HEAD")
	case domain.KindRevision:
		return r.treeSet(c.Ref())
	case domain.KindIndex:
		return r.indexSet()
	case domain.KindWorktree:
		return r.worktreeSet()
	default:
		return nil, fmt.Errorf("unsupported commit reference: %s", c)
	}
}

// treeSet lists the files of the tree named by a revision string.
func (r *GoGitRepository) treeSet(rev string) (fileSet, error) {
	tree, err := r.revTree(rev)
	if err != nil {
		return nil, err
	}

	set := fileSet{}
	err = tree.Files().ForEach(func(f *object.File) error {
		set[f.Name] = &sideFile{
			hash: f.Hash,
			load: func() (*object.File, error) { return f, nil },
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk tree for %s: %w", rev, err)
	}
	return set, nil
}

// indexSet lists the staged files recorded in the index.
func (r *GoGitRepository) indexSet() (fileSet, error) {
	idx, err := r.repo.Storer.Index()
	if err != nil {
		return nil, fmt.Errorf("failed to read index: %w", err)
	}

	set := fileSet{}
	for _, entry := range idx.Entries {
		if entry.Mode == filemode.Submodule {
			continue
		}
		set[entry.Name] = &sideFile{
			hash: entry.Hash,
			load: r.blobLoader(entry.Name, entry.Mode, entry.Hash),
		}
	}
	return set, nil
}

// worktreeSet lists the tracked files as they exist on disk. Files clean in
// the worktree reuse the index blob (identical content, hash already known);
// dirty files are read from disk. Untracked files are excluded, matching
// git diff semantics.
func (r *GoGitRepository) worktreeSet() (fileSet, error) {
	if r.wt == nil {
		return nil, fmt.Errorf("bare repository has no working tree")
	}

	idx, err := r.repo.Storer.Index()
	if err != nil {
		return nil, fmt.Errorf("failed to read index: %w", err)
	}
	status, err := r.wt.Status()
	if err != nil {
		return nil, fmt.Errorf("failed to compute worktree status: %w", err)
	}

	set := fileSet{}
	modes := make(map[string]filemode.FileMode, len(idx.Entries))
	for _, entry := range idx.Entries {
		modes[entry.Name] = entry.Mode
		if entry.Mode == filemode.Submodule {
			continue
		}
		if st, ok := status[entry.Name]; ok && st.Worktree != gogit.Unmodified {
			continue
		}
		set[entry.Name] = &sideFile{
			hash: entry.Hash,
			load: r.blobLoader(entry.Name, entry.Mode, entry.Hash),
		}
	}

	for path, st := range status {
		switch st.Worktree {
		case gogit.Unmodified, gogit.Untracked, gogit.Deleted:
			continue
		}
		// Status reports a submodule whenever its checked-out HEAD drifts
		// from the recorded gitlink, but the path is a directory on disk,
		// not a readable blob.
		if modes[path] == filemode.Submodule {
			continue
		}
		f, err := r.fileFromDisk(path)
		if err != nil {
			return nil, err
		}
		if f == nil {
			continue
		}
		set[path] = &sideFile{
			hash: f.Hash,
			load: func() (*object.File, error) { return f, nil },
		}
	}
	return set, nil
}

// blobLoader defers loading a blob from the object store until the file is
// known to have changed.
func (r *GoGitRepository) blobLoader(name string, mode filemode.FileMode, hash plumbing.Hash) func() (*object.File, error) {
	return func() (*object.File, error) {
		blob, err := object.GetBlob(r.repo.Storer, hash)
		if err != nil {
			return nil, fmt.Errorf("failed to load blob for %s: %w", name, err)
		}
		return object.NewFile(name, mode, blob), nil
	}
}

// fileFromDisk reads a working-tree file into an in-memory blob so it carries
// the same content hash a committed version would. Returns (nil, nil) when
// the file does not exist.
func (r *GoGitRepository) fileFromDisk(path string) (*object.File, error) {
	file, err := r.wtfs.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	mem := &plumbing.MemoryObject{}
	mem.SetType(plumbing.BlobObject)
	if _, err := mem.Write(data); err != nil {
		return nil, err
	}
	blob, err := object.DecodeBlob(mem)
	if err != nil {
		return nil, err
	}

	mode := filemode.Regular
	if info, err := r.wtfs.Stat(path); err == nil {
		if m, err := filemode.NewFromOSFileMode(info.Mode()); err == nil {
			mode = m
		}
	}
	return object.NewFile(path, mode, blob), nil
}

// buildChange materializes both sides of a changed path and renders its patch.
func buildChange(path string, from, to *sideFile) (domain.FileChange, error) {
	old, err := materialize(path, from)
	if err != nil {
		return domain.FileChange{}, err
	}
	current, err := materialize(path, to)
	if err != nil {
		return domain.FileChange{}, err
	}

	change := domain.FileChange{Path: path, Old: old, New: current}
	switch {
	case old == nil:
		change.Status = domain.StatusAdded
	case current == nil:
		change.Status = domain.StatusDeleted
	default:
		change.Status = domain.StatusModified
	}

	if binaryVersion(old) || binaryVersion(current) {
		change.Binary = true
		return change, nil
	}

	patch, err := renderPatch(path, old, current)
	if err != nil {
		return domain.FileChange{}, err
	}
	change.Patch = patch
	return change, nil
}

// materialize loads one side's content into a FileVersion. Returns nil for
// an absent side.
func materialize(path string, side *sideFile) (*domain.FileVersion, error) {
	if side == nil {
		return nil, nil
	}
	f, err := side.load()
	if err != nil {
		return nil, err
	}
	content, err := f.Contents()
	if err != nil {
		return nil, fmt.Errorf("failed to read content for %s: %w", path, err)
	}
	return &domain.FileVersion{Path: path, Content: []byte(content)}, nil
}

// renderPatch builds the unified diff text for one file, using /dev/null for
// an absent side the way git does.
func renderPatch(path string, from, to *domain.FileVersion) (string, error) {
	fromLines, fromName := []string{}, "/dev/null"
	if from != nil {
		fromLines = difflib.SplitLines(string(from.Content))
		fromName = "a/" + path
	}
	toLines, toName := []string{}, "/dev/null"
	if to != nil {
		toLines = difflib.SplitLines(string(to.Content))
		toName = "b/" + path
	}

	ud := difflib.UnifiedDiff{
		A:        fromLines,
		B:        toLines,
		FromFile: fromName,
		ToFile:   toName,
		Context:  3,
	}
	text, err := difflib.GetUnifiedDiffString(ud)
	if err != nil {
		return "", fmt.Errorf("failed to render patch for %s: %w", path, err)
	}
	return fmt.Sprintf("diff --git a/%s b/%s\n", path, path) + text, nil
}

// sniffLen matches git's own binary detection window.
const sniffLen = 8000

// isBinaryContent reports whether data looks binary, using git's heuristic of
// a NUL byte within the first 8000 bytes.
func isBinaryContent(data []byte) bool {
	if len(data) > sniffLen {
		data = data[:sniffLen]
	}
	return bytes.IndexByte(data, 0) >= 0
}

func binaryVersion(v *domain.FileVersion) bool {
	return v != nil && isBinaryContent(v.Content)
}
