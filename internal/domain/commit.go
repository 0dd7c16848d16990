// Package domain defines the core business entities and interfaces for git-review.
package domain

// CommitKind discriminates the supported commit reference forms.
type CommitKind int

const (
	// KindRevision is an arbitrary revision string (branch, tag, SHA, "ref^" spec).
	KindRevision CommitKind = iota

	// KindHead is the most recent recorded commit.
	KindHead

	// KindIndex is the staged-but-not-committed state.
	KindIndex

	// KindWorktree is the current working-tree state.
	KindWorktree
)

// Commit identifies one side of a diff range: a pseudo-commit (HEAD, INDEX, WD)
// or an arbitrary revision string. Immutable once constructed; comparable with ==.
type Commit struct {
	kind CommitKind
	ref  string
}

// Head returns the pseudo-commit for the most recent recorded commit.
func Head() Commit { return Commit{kind: KindHead} }

// Index returns the pseudo-commit for the staged state.
func Index() Commit { return Commit{kind: KindIndex} }

// Worktree returns the pseudo-commit for the working-tree state.
func Worktree() Commit { return Commit{kind: KindWorktree} }

// Rev returns a commit reference for an arbitrary revision string.
func Rev(ref string) Commit { return Commit{kind: KindRevision, ref: ref} }

// Kind reports which reference form this commit is.
func (c Commit) Kind() CommitKind { return c.kind }

// Ref returns the revision string for KindRevision commits and the empty
// string for pseudo-commits.
func (c Commit) Ref() string { return c.ref }

// Parent returns the first-parent selector for this commit, formed by
// appending the "^" revision suffix. It is meaningful for revision and HEAD
// references; INDEX and WD are returned unchanged.
func (c Commit) Parent() Commit {
	switch c.kind {
	case KindHead:
		return Rev("HEAD^")
	case KindRevision:
		return Rev(c.ref + "^")
	default:
		return c
	}
}

// String renders pseudo-commits as HEAD, INDEX, or WD and revision
// references verbatim.
func (c Commit) String() string {
	switch c.kind {
	case KindHead:
		return "HEAD"
	case KindIndex:
		return "INDEX"
	case KindWorktree:
		return "WD"
	default:
		return c.ref
	}
}
