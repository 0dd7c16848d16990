// Package options defines the statically typed command-line option model for
// git-review and the error kinds produced while interpreting it. The struct is
// populated directly by the flag parser; there is no dynamic forwarding to a
// parser-owned value.
package options

import (
	"github.com/spf13/pflag"
)

// Options holds the flag values and positional tokens captured from argv.
// It is built once per invocation, never mutated after parsing, and consumed
// by the range resolver.
type Options struct {
	// Commit is the explicit commit reference supplied with -c/--commit.
	// Empty when the flag was not given.
	Commit string

	// Cached selects the staged-against-HEAD comparison (--cached).
	Cached bool

	// GitDir is the repository directory override (--git-dir).
	GitDir string

	// WorkTree is the working-tree directory override (--work-tree).
	WorkTree string

	// Help records an explicit help request (-?/--help).
	Help bool

	// Args are the positional tokens remaining after flag parsing.
	Args []string
}

// Bind registers the recognized flag set on fs and returns the Options value
// the parsed flags will land in. The help flag is registered here with the
// "?" shorthand so the command framework adopts it instead of installing its
// own default.
func Bind(fs *pflag.FlagSet) *Options {
	opts := &Options{}
	fs.StringVarP(&opts.Commit, "commit", "c", "", "review the change introduced by `REF`, i.e. REF^ against REF")
	fs.BoolVar(&opts.Cached, "cached", false, "review changes staged in the index against HEAD")
	fs.StringVar(&opts.GitDir, "git-dir", "", "path to the repository's .git `DIR`")
	fs.StringVar(&opts.WorkTree, "work-tree", "", "path to the working tree `DIR`")
	fs.BoolVarP(&opts.Help, "help", "?", false, "show this help and exit")
	return opts
}
