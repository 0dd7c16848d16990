// Package domain defines the core business entities and interfaces for git-review.
package domain

// Range is the resolved (parent, child) commit pair handed to the repository.
// Both fields are always set before the range reaches a collaborator; exactly
// one of the mutually exclusive resolution paths produced them.
type Range struct {
	// Parent is the older side of the comparison.
	Parent Commit

	// Child is the newer side of the comparison.
	Child Commit
}

// String renders the range as "parent..child" for logging and messages.
func (r Range) String() string {
	return r.Parent.String() + ".." + r.Child.String()
}

// ChangeStatus classifies how a file differs between the two sides of a range.
type ChangeStatus int

const (
	// StatusModified indicates the file exists on both sides with different content.
	StatusModified ChangeStatus = iota

	// StatusAdded indicates the file exists only on the child side.
	StatusAdded

	// StatusDeleted indicates the file exists only on the parent side.
	StatusDeleted
)

// String returns the single-word status name used in review headers.
func (s ChangeStatus) String() string {
	switch s {
	case StatusAdded:
		return "added"
	case StatusDeleted:
		return "deleted"
	default:
		return "modified"
	}
}

// FileVersion is one side's content for a single path.
type FileVersion struct {
	// Path is the repository-relative file path.
	Path string

	// Content is the fully materialized file content.
	Content []byte
}

// FileChange describes how a single path differs between the two sides
// of a resolved range.
type FileChange struct {
	// Path is the repository-relative file path.
	Path string

	// Status classifies the change.
	Status ChangeStatus

	// Old is the parent-side version. Nil when the file was added.
	Old *FileVersion

	// New is the child-side version. Nil when the file was deleted.
	New *FileVersion

	// Binary marks content that cannot be rendered as a text patch.
	Binary bool

	// Patch is the unified diff text for the file, starting with a
	// "diff --git" header line. Empty when Binary is true.
	Patch string
}

// Diff is the set of file changes between the two sides of a resolved range.
type Diff struct {
	// Parent is the older compared side.
	Parent Commit

	// Child is the newer compared side.
	Child Commit

	// Files holds one entry per changed path, sorted by path.
	Files []FileChange
}

// Empty reports whether the diff contains no file changes.
func (d *Diff) Empty() bool {
	return len(d.Files) == 0
}
