package options

import (
	"errors"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFlagSet(t *testing.T) (*pflag.FlagSet, *Options) {
	t.Helper()
	fs := pflag.NewFlagSet("git-review", pflag.ContinueOnError)
	opts := Bind(fs)
	return fs, opts
}

func TestBindParsesFlags(t *testing.T) {
	tests := []struct {
		name     string
		argv     []string
		want     Options
		wantArgs []string
	}{
		{
			name: "no arguments",
			argv: []string{},
			want: Options{},
		},
		{
			name: "short commit flag",
			argv: []string{"-c", "abc123"},
			want: Options{Commit: "abc123"},
		},
		{
			name: "long commit flag",
			argv: []string{"--commit", "abc123"},
			want: Options{Commit: "abc123"},
		},
		{
			name: "long commit flag with equals",
			argv: []string{"--commit=abc123"},
			want: Options{Commit: "abc123"},
		},
		{
			name: "cached flag",
			argv: []string{"--cached"},
			want: Options{Cached: true},
		},
		{
			name: "directory overrides",
			argv: []string{"--git-dir", "/repo/.git", "--work-tree", "/repo"},
			want: Options{GitDir: "/repo/.git", WorkTree: "/repo"},
		},
		{
			name: "help long flag",
			argv: []string{"--help"},
			want: Options{Help: true},
		},
		{
			name: "help question-mark shorthand",
			argv: []string{"-?"},
			want: Options{Help: true},
		},
		{
			name:     "positional tokens",
			argv:     []string{"foo", "bar"},
			want:     Options{},
			wantArgs: []string{"foo", "bar"},
		},
		{
			name:     "flags interspersed with positionals",
			argv:     []string{"foo", "--cached", "bar"},
			want:     Options{Cached: true},
			wantArgs: []string{"foo", "bar"},
		},
		{
			name:     "double dash stops flag parsing",
			argv:     []string{"--", "--cached"},
			want:     Options{},
			wantArgs: []string{"--cached"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs, opts := newFlagSet(t)

			err := fs.Parse(tt.argv)
			require.NoError(t, err)

			got := *opts
			got.Args = nil
			assert.Equal(t, tt.want, got)
			if tt.wantArgs == nil {
				assert.Empty(t, fs.Args())
			} else {
				assert.Equal(t, tt.wantArgs, fs.Args())
			}
		})
	}
}

func TestBindParseFailures(t *testing.T) {
	tests := []struct {
		name    string
		argv    []string
		wantMsg string
	}{
		{
			name:    "unknown long flag",
			argv:    []string{"--bogus"},
			wantMsg: "unknown flag: --bogus",
		},
		{
			name:    "unknown shorthand",
			argv:    []string{"-x"},
			wantMsg: "unknown shorthand flag: 'x' in -x",
		},
		{
			name:    "missing commit value",
			argv:    []string{"--commit"},
			wantMsg: "flag needs an argument: --commit",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs, _ := newFlagSet(t)

			err := fs.Parse(tt.argv)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestParseErrorWrapsParserFailure(t *testing.T) {
	underlying := errors.New("unknown flag: --bogus")
	err := NewParseError(underlying)

	assert.Equal(t, "unknown flag: --bogus", err.Error())
	assert.ErrorIs(t, err, underlying)

	var parseErr *ParseError
	assert.ErrorAs(t, err, &parseErr)
}

func TestValidationErrorMessage(t *testing.T) {
	err := NewValidationError("cannot specify --cached with two commits")
	assert.Equal(t, "cannot specify --cached with two commits", err.Error())

	var valErr *ValidationError
	assert.ErrorAs(t, err, &valErr)

	var parseErr *ParseError
	assert.False(t, errors.As(err, &parseErr))
}
