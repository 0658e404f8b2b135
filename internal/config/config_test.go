package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 30, cfg.TickRate)
	assert.Equal(t, 800.0, cfg.WorldWidth)
	assert.Equal(t, 600.0, cfg.WorldHeight)
	assert.Equal(t, 2.0, cfg.CastInterval)
	assert.Equal(t, 3, cfg.CastRepeats)
	assert.Equal(t, ":8087", cfg.FeedAddr)
	assert.Equal(t, "info", cfg.LogSeverity)
}

func TestLoadYAMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	doc := []byte("tick_rate: 60\nworld_width: 1024\ncast_repeats: 5\nlog_severity: debug\n")
	require.NoError(t, os.WriteFile(path, doc, 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 60, cfg.TickRate)
	assert.Equal(t, 1024.0, cfg.WorldWidth)
	assert.Equal(t, 5, cfg.CastRepeats)
	assert.Equal(t, "debug", cfg.LogSeverity)
	// Untouched fields keep their defaults.
	assert.Equal(t, 600.0, cfg.WorldHeight)
}

func TestEnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("tick_rate: 60\n"), 0o644))
	t.Setenv("RUNECAST_TICK_RATE", "120")
	t.Setenv("RUNECAST_FEED_ADDR", ":9000")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 120, cfg.TickRate)
	assert.Equal(t, ":9000", cfg.FeedAddr)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("tick_rate: -1\n"), 0o644))

	_, err := Load(path)
	require.Error(t, err)
}

func TestLoadMissingFileFails(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
}
