package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/timguo/git-review/internal/infrastructure/config"
)

func TestColorEnabled_NoColorWins(t *testing.T) {
	cfg := &config.Config{NoColor: true}

	assert.False(t, colorEnabled(cfg, os.Stdout))
}

func TestColorEnabled_NonTerminal(t *testing.T) {
	f, err := os.Create(filepath.Join(t.TempDir(), "out"))
	require.NoError(t, err)
	defer f.Close()

	cfg := &config.Config{}

	assert.False(t, colorEnabled(cfg, f), "plain files never get color")
}
