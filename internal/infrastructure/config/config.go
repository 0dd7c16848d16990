// Package config provides configuration loading for the git-review
// application. All settings come from environment variables; flags cover the
// per-invocation knobs and are handled by the command layer.
package config

import "os"

// Environment variable names.
const (
	// EnvDiffProgram is an external program used to display changed files.
	// When unset, diffs render inline.
	EnvDiffProgram = "GIT_REVIEW_DIFF"

	// EnvViewProgram is the program used to display newly added files.
	EnvViewProgram = "GIT_REVIEW_VIEW"

	// EnvGitEditor is git's editor override, the first fallback for the
	// view program.
	EnvGitEditor = "GIT_EDITOR"

	// EnvVisual is the conventional visual editor variable.
	EnvVisual = "VISUAL"

	// EnvEditor is the conventional editor variable.
	EnvEditor = "EDITOR"

	// EnvLogLevel is the log level (debug, info, warn, error).
	EnvLogLevel = "LOG_LEVEL"

	// EnvNoColor disables colored output when set to a non-empty value,
	// per no-color.org.
	EnvNoColor = "NO_COLOR"
)

// Default values.
const (
	DefaultLogLevel    = "warn"
	DefaultViewProgram = "vi"
)

// Config holds all application configuration.
type Config struct {
	// DiffProgram is the external diff program, empty for inline rendering.
	DiffProgram string

	// ViewProgram is the program used to open added files, already resolved
	// through the editor fallback chain.
	ViewProgram string

	// LogLevel is the logging level (debug, info, warn, error).
	LogLevel string

	// NoColor reports whether the user asked for colorless output.
	NoColor bool
}

// Load loads the application configuration from environment variables.
//
// The view program resolves through the chain GIT_REVIEW_VIEW, GIT_EDITOR,
// VISUAL, EDITOR, with "vi" as the final fallback. The diff program has no
// fallback chain; unset means inline rendering.
func Load() *Config {
	logLevel := os.Getenv(EnvLogLevel)
	if logLevel == "" {
		logLevel = DefaultLogLevel
	}

	return &Config{
		DiffProgram: os.Getenv(EnvDiffProgram),
		ViewProgram: firstEnv(EnvViewProgram, EnvGitEditor, EnvVisual, EnvEditor),
		LogLevel:    logLevel,
		NoColor:     os.Getenv(EnvNoColor) != "",
	}
}

// firstEnv returns the value of the first non-empty variable in the chain,
// or the default view program when none is set.
func firstEnv(names ...string) string {
	for _, name := range names {
		if v := os.Getenv(name); v != "" {
			return v
		}
	}
	return DefaultViewProgram
}
