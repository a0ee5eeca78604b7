package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("", t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "tokyo-night", cfg.TUI.Theme)
	assert.Equal(t, 150, cfg.TUI.PillDelayMS)
	assert.Equal(t, 8, cfg.TUI.FlashTicks)
	assert.Equal(t, "**/*.session.json", cfg.Sessions.Pattern)
	assert.Equal(t, 150*time.Millisecond, cfg.PillDelay())
}

func TestLoad_FromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(`
tui:
  theme: gruvbox
  pill_delay_ms: 300
sessions:
  pattern: "*.json"
devinfo:
  url: http://localhost:8080/devinfo
`), 0o644))

	cfg, err := Load(path, dir)
	require.NoError(t, err)

	assert.Equal(t, "gruvbox", cfg.TUI.Theme)
	assert.Equal(t, 300, cfg.TUI.PillDelayMS)
	assert.Equal(t, "*.json", cfg.Sessions.Pattern)
	assert.Equal(t, "http://localhost:8080/devinfo", cfg.DevInfo.URL)
	assert.Equal(t, dir, cfg.DataDir, "data dir comes from caller, not file")
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	dir := t.TempDir()
	cfg, err := Load(filepath.Join(dir, "nope.yml"), dir)
	require.NoError(t, err)
	assert.Equal(t, "tokyo-night", cfg.TUI.Theme)
}

func TestLoad_InvalidYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yml")
	require.NoError(t, os.WriteFile(path, []byte("tui: ["), 0o644))

	_, err := Load(path, dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse config file")
}

func TestConfigPaths(t *testing.T) {
	cfg := DefaultConfig()
	cfg.DataDir = "/data"

	assert.Equal(t, filepath.Join("/data", "sessions"), cfg.SessionsDir())
	assert.Equal(t, filepath.Join("/data", "annotations.json"), cfg.AnnotationsFile())
}
