package git

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/timguo/git-review/internal/domain"
)

func TestIsBinaryContent(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want bool
	}{
		{
			name: "empty content",
			data: nil,
			want: false,
		},
		{
			name: "plain text",
			data: []byte("package main\n\nfunc main() {}\n"),
			want: false,
		},
		{
			name: "utf-8 text",
			data: []byte("héllo wörld\n"),
			want: false,
		},
		{
			name: "NUL at start",
			data: []byte{0x00, 0x01, 0x02},
			want: true,
		},
		{
			name: "NUL inside the sniff window",
			data: append([]byte("some text"), 0x00),
			want: true,
		},
		{
			name: "NUL beyond the sniff window",
			data: append(textOfLen(sniffLen), 0x00),
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isBinaryContent(tt.data))
		})
	}
}

// textOfLen builds n bytes of printable filler.
func textOfLen(n int) []byte {
	data := make([]byte, n)
	for i := range data {
		data[i] = 'a'
	}
	return data
}

func TestBinaryVersion(t *testing.T) {
	assert.False(t, binaryVersion(nil))
	assert.False(t, binaryVersion(&domain.FileVersion{Path: "a.txt", Content: []byte("text")}))
	assert.True(t, binaryVersion(&domain.FileVersion{Path: "a.bin", Content: []byte{0x00}}))
}

func TestRenderPatch_Modified(t *testing.T) {
	from := &domain.FileVersion{Path: "main.go", Content: []byte("old line\n")}
	to := &domain.FileVersion{Path: "main.go", Content: []byte("new line\n")}

	patch, err := renderPatch("main.go", from, to)

	require.NoError(t, err)
	assert.Contains(t, patch, "diff --git a/main.go b/main.go\n")
	assert.Contains(t, patch, "--- a/main.go")
	assert.Contains(t, patch, "+++ b/main.go")
	assert.Contains(t, patch, "-old line")
	assert.Contains(t, patch, "+new line")
}

func TestRenderPatch_Added(t *testing.T) {
	to := &domain.FileVersion{Path: "new.txt", Content: []byte("content\n")}

	patch, err := renderPatch("new.txt", nil, to)

	require.NoError(t, err)
	assert.Contains(t, patch, "--- /dev/null")
	assert.Contains(t, patch, "+++ b/new.txt")
	assert.Contains(t, patch, "+content")
}

func TestRenderPatch_Deleted(t *testing.T) {
	from := &domain.FileVersion{Path: "gone.txt", Content: []byte("content\n")}

	patch, err := renderPatch("gone.txt", from, nil)

	require.NoError(t, err)
	assert.Contains(t, patch, "--- a/gone.txt")
	assert.Contains(t, patch, "+++ /dev/null")
	assert.Contains(t, patch, "-content")
}

func TestRenderPatch_UnchangedContext(t *testing.T) {
	from := &domain.FileVersion{Path: "f", Content: []byte("one\ntwo\nthree\n")}
	to := &domain.FileVersion{Path: "f", Content: []byte("one\nTWO\nthree\n")}

	patch, err := renderPatch("f", from, to)

	require.NoError(t, err)
	assert.Contains(t, patch, " one")
	assert.Contains(t, patch, "-two")
	assert.Contains(t, patch, "+TWO")
	assert.Contains(t, patch, " three")
}

func TestDiscoverGitDir(t *testing.T) {
	root := t.TempDir()
	gitDir := filepath.Join(root, ".git")
	require.NoError(t, os.Mkdir(gitDir, 0o755))
	nested := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	found, err := discoverGitDir(nested)

	require.NoError(t, err)
	assert.Equal(t, gitDir, found)
}

func TestDiscoverGitDir_NotFound(t *testing.T) {
	root := t.TempDir()

	_, err := discoverGitDir(root)

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrRepositoryNotFound)
}

func TestReadGitdirFile(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    func(dir string) string
		wantErr bool
	}{
		{
			name:    "relative target resolves against the containing directory",
			content: "gitdir: ../main/.git/worktrees/fix\n",
			want: func(dir string) string {
				return filepath.Join(dir, "..", "main", ".git", "worktrees", "fix")
			},
		},
		{
			name:    "absolute target kept as is",
			content: "gitdir: /srv/repos/main/.git\n",
			want:    func(string) string { return "/srv/repos/main/.git" },
		},
		{
			name:    "missing gitdir entry",
			content: "\n",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			path := filepath.Join(dir, ".git")
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0o644))

			target, err := readGitdirFile(dir, path)

			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, domain.ErrRepositoryNotFound)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, filepath.Clean(tt.want(dir)), filepath.Clean(target))
		})
	}
}

func TestReadGitdirFile_Missing(t *testing.T) {
	dir := t.TempDir()

	_, err := readGitdirFile(dir, filepath.Join(dir, ".git"))

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrRepositoryNotFound)
}
