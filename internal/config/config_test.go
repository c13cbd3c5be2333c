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
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Chdir(t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "dark", cfg.Theme)
	assert.Equal(t, time.Second, cfg.RefreshInterval)
	assert.Equal(t, 500*time.Millisecond, cfg.CacheTTL)
	assert.True(t, cfg.Watch)
	assert.True(t, cfg.MouseWheel)
	assert.Equal(t, 4, cfg.TabWidth)
	assert.Equal(t, []string{"up"}, cfg.Keys.ScrollUp)
	assert.Equal(t, []string{"down"}, cfg.Keys.ScrollDown)
}

func TestLoad_FileOverrides(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Chdir(t.TempDir())

	cfgDir := filepath.Join(dir, "diffpane")
	require.NoError(t, os.MkdirAll(cfgDir, 0o755))
	yaml := "theme: light\nrefresh_interval: 250ms\nmouse_wheel: false\nkeys:\n  scroll_down: [down, j]\n"
	require.NoError(t, os.WriteFile(filepath.Join(cfgDir, "config.yaml"), []byte(yaml), 0o644))

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "light", cfg.Theme)
	assert.Equal(t, 250*time.Millisecond, cfg.RefreshInterval)
	assert.False(t, cfg.MouseWheel)
	assert.Equal(t, []string{"down", "j"}, cfg.Keys.ScrollDown)
	assert.Equal(t, []string{"up"}, cfg.Keys.ScrollUp)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Chdir(t.TempDir())
	t.Setenv("DIFFPANE_THEME", "light")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "light", cfg.Theme)
}

func TestLoad_ExplicitFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte("tab_width: 8\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 8, cfg.TabWidth)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoad_UnknownTheme(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("theme: neon\n"), 0o644))

	_, err := Load(path)
	assert.ErrorContains(t, err, "unknown theme")
}
