package output

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReporterMessageKinds(t *testing.T) {
	tests := []struct {
		name       string
		report     func(r *Reporter) error
		wantStdout string
		wantStderr string
	}{
		{
			name:       "error goes to stderr with prefix",
			report:     func(r *Reporter) error { return r.Error("--commit and --cached are mutually exclusive") },
			wantStderr: "git-review: error: --commit and --cached are mutually exclusive\n",
		},
		{
			name:       "warning goes to stderr with prefix",
			report:     func(r *Reporter) error { return r.Warning("could not close repository") },
			wantStderr: "git-review: warning: could not close repository\n",
		},
		{
			name:       "notice goes to stdout with prefix",
			report:     func(r *Reporter) error { return r.Notice("no changes between INDEX and WD") },
			wantStdout: "git-review: no changes between INDEX and WD\n",
		},
		{
			name:       "usage goes to stderr verbatim",
			report:     func(r *Reporter) error { return r.Usage("Usage:\n  git-review [flags]\n") },
			wantStderr: "Usage:\n  git-review [flags]\n",
		},
		{
			name:       "empty error message keeps the prefix",
			report:     func(r *Reporter) error { return r.Error("") },
			wantStderr: "git-review: error: \n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stdout, stderr bytes.Buffer
			reporter := NewReporterWithStreams("git-review", &stdout, &stderr)

			err := tt.report(reporter)

			require.NoError(t, err)
			assert.Equal(t, tt.wantStdout, stdout.String())
			assert.Equal(t, tt.wantStderr, stderr.String())
		})
	}
}

func TestNewReporterUsesProcessStreams(t *testing.T) {
	reporter := NewReporter("git-review")
	assert.NotNil(t, reporter)
	assert.NotNil(t, reporter.out)
	assert.NotNil(t, reporter.err)
}
