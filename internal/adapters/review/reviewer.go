// Package review implements the interactive per-file review loop over a
// computed diff. Each changed file is shown either through an external diff
// or viewer program or rendered inline, with a prompt between files.
package review

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/timguo/git-review/internal/domain"
)

// Logger defines the logging interface for the review adapter.
type Logger interface {
	Debug(ctx context.Context, msg string, fields map[string]interface{})
	Warn(ctx context.Context, msg string, fields map[string]interface{})
}

// Config selects how changes are presented.
type Config struct {
	// DiffProgram is the external diff viewer invoked with the two side
	// paths. Empty selects the inline patch rendering.
	DiffProgram string

	// ViewProgram is the program used to view newly added files. Never
	// empty; the configuration layer falls back to a default editor.
	ViewProgram string

	// Color enables syntax-highlighted inline rendering.
	Color bool
}

// commandRunner launches an external program and waits for it to exit.
type commandRunner func(ctx context.Context, name string, args ...string) error

// runAttached runs a program connected to the caller's terminal.
func runAttached(ctx context.Context, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}

// InteractiveReviewer implements domain.Reviewer over a computed diff.
type InteractiveReviewer struct {
	repo    domain.Repository
	diff    *domain.Diff
	cfg     Config
	logger  Logger
	in      io.Reader
	out     io.Writer
	run     commandRunner
	tempDir string
}

// NewInteractiveReviewer creates a reviewer attached to the process streams.
func NewInteractiveReviewer(repo domain.Repository, diff *domain.Diff, cfg Config, log Logger) *InteractiveReviewer {
	return &InteractiveReviewer{
		repo:   repo,
		diff:   diff,
		cfg:    cfg,
		logger: log,
		in:     os.Stdin,
		out:    os.Stdout,
		run:    runAttached,
	}
}

// NewInteractiveReviewerWithStreams creates a reviewer with explicit input
// and output streams. This constructor enables testing with scripted input.
func NewInteractiveReviewerWithStreams(
	repo domain.Repository,
	diff *domain.Diff,
	cfg Config,
	log Logger,
	in io.Reader,
	out io.Writer,
) *InteractiveReviewer {
	r := NewInteractiveReviewer(repo, diff, cfg, log)
	r.in = in
	r.out = out
	return r
}

// Run walks the diff one file at a time. It returns 0 when the user reviews
// or skips every file, the viewer's own status when an external program exits
// nonzero, and 2 when a program cannot be launched.
func (r *InteractiveReviewer) Run(ctx context.Context) (int, error) {
	if r.diff == nil || r.diff.Empty() {
		fmt.Fprintln(r.out, "no changes to review")
		return 0, nil
	}

	defer r.cleanup(ctx)

	total := len(r.diff.Files)
	fmt.Fprintf(r.out, "reviewing %d file(s): %s..%s\n", total, r.diff.Parent, r.diff.Child)

	reader := bufio.NewReader(r.in)
	for i, fc := range r.diff.Files {
		if err := ctx.Err(); err != nil {
			return 2, err
		}

		fmt.Fprintf(r.out, "\n[%d/%d] %s %s\n", i+1, total, fc.Status, fc.Path)

		if err := r.showChange(ctx, fc); err != nil {
			return exitStatus(err), err
		}

		// No prompt after the last file; EOF or a negative answer ends
		// the review cleanly.
		if i == total-1 {
			break
		}
		cont, err := promptContinue(reader, r.out)
		if err != nil || !cont {
			return 0, nil
		}
	}
	return 0, nil
}

// showChange presents a single file change. Added files open in the view
// program, other text changes go through the external diff program when one
// is configured and are rendered inline otherwise.
func (r *InteractiveReviewer) showChange(ctx context.Context, fc domain.FileChange) error {
	if fc.Binary {
		fmt.Fprintln(r.out, "(binary files differ)")
		return nil
	}

	if fc.Status == domain.StatusAdded {
		return r.viewNewFile(ctx, fc)
	}

	if r.cfg.DiffProgram != "" {
		return r.externalDiff(ctx, fc)
	}

	return r.writePatch(fc.Patch)
}

// viewNewFile opens the added file's content in the configured view program.
func (r *InteractiveReviewer) viewNewFile(ctx context.Context, fc domain.FileChange) error {
	path, err := r.materialize("new", fc.New)
	if err != nil {
		return err
	}
	return r.launch(ctx, r.cfg.ViewProgram, path)
}

// externalDiff hands both sides of the change to the external diff program.
// An absent side is passed as the null device, the way git difftool does.
func (r *InteractiveReviewer) externalDiff(ctx context.Context, fc domain.FileChange) error {
	oldPath, err := r.materialize("old", fc.Old)
	if err != nil {
		return err
	}
	newPath, err := r.materialize("new", fc.New)
	if err != nil {
		return err
	}
	return r.launch(ctx, r.cfg.DiffProgram, oldPath, newPath)
}

// launch splits a configured program string on whitespace and runs it with
// the extra arguments appended. No shell interpretation is applied.
func (r *InteractiveReviewer) launch(ctx context.Context, program string, extra ...string) error {
	argv := strings.Fields(program)
	if len(argv) == 0 {
		return fmt.Errorf("no viewer program configured")
	}
	args := append(argv[1:], extra...)

	r.logger.Debug(ctx, "launching viewer", map[string]interface{}{
		"program": argv[0],
		"args":    args,
	})

	if err := r.run(ctx, argv[0], args...); err != nil {
		return fmt.Errorf("%s: %w", argv[0], err)
	}
	return nil
}

// materialize writes one side's content into the reviewer's temp directory,
// preserving the repository-relative path so viewer titles stay meaningful.
// An absent side maps to the null device.
func (r *InteractiveReviewer) materialize(side string, v *domain.FileVersion) (string, error) {
	if v == nil {
		return os.DevNull, nil
	}

	if r.tempDir == "" {
		dir, err := os.MkdirTemp("", "git-review-")
		if err != nil {
			return "", fmt.Errorf("failed to create temp directory: %w", err)
		}
		r.tempDir = dir
	}

	full := filepath.Join(r.tempDir, side, filepath.FromSlash(v.Path))
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return "", fmt.Errorf("failed to prepare temp directory for %s: %w", v.Path, err)
	}
	if err := os.WriteFile(full, v.Content, 0o600); err != nil {
		return "", fmt.Errorf("failed to write temp copy of %s: %w", v.Path, err)
	}
	return full, nil
}

// cleanup removes the materialized side copies.
func (r *InteractiveReviewer) cleanup(ctx context.Context) {
	if r.tempDir == "" {
		return
	}
	if err := os.RemoveAll(r.tempDir); err != nil {
		r.logger.Warn(ctx, "failed to remove temp directory", map[string]interface{}{
			"dir":   r.tempDir,
			"error": err.Error(),
		})
	}
	r.tempDir = ""
}

// promptContinue asks whether to move on to the next file. An empty answer
// continues; EOF ends the review.
func promptContinue(reader *bufio.Reader, out io.Writer) (bool, error) {
	fmt.Fprint(out, "continue? [Y/n]: ")

	answer, err := reader.ReadString('\n')
	if err != nil {
		return false, err
	}

	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "" || answer == "y" || answer == "yes", nil
}

// exitStatus maps a viewer failure to the process exit code to propagate.
// A program that ran and exited nonzero propagates its own status; one that
// could not be launched is a runtime failure.
func exitStatus(err error) int {
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		if code := exitErr.ExitCode(); code > 0 {
			return code
		}
	}
	return 2
}
