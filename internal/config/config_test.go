package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PORTFOLIO_CONFIG", filepath.Join(t.TempDir(), "missing.toml"))

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "saai151", cfg.GitHub.Username)
	require.Equal(t, "GITHUB_TOKEN", cfg.GitHub.TokenEnv)
	require.Equal(t, 15*time.Second, cfg.GitHub.Timeout)
	require.Equal(t, 400*time.Millisecond, cfg.Wrapped.StepDelay)
	require.Equal(t, 300*time.Millisecond, cfg.Wrapped.JumpDelay)
	require.Equal(t, 1500*time.Millisecond, cfg.Wrapped.CounterDuration)
	require.Equal(t, 2*time.Second, cfg.Wrapped.NotificationDelay)
	require.Equal(t, 5, cfg.Wrapped.TopN)
	require.Equal(t, 30, cfg.Wrapped.CommitAdjustment)
	require.Equal(t, 10, cfg.Wrapped.PRAdjustment)
	require.Equal(t, "shopify/checkout", cfg.Wrapped.AdjustmentRepo)
	require.False(t, cfg.Wrapped.LiveLanguages)
	require.Equal(t, ThemePlayer, cfg.UI.Theme)
}

func TestLoadFileAndEnvOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[github]
username = "octo"

[wrapped]
top_n = 3
step_delay = "1s"
live_languages = true
commit_adjustment = 0

[ui]
theme = "editor"
`), 0o600))
	t.Setenv("PORTFOLIO_CONFIG", path)
	t.Setenv("PORTFOLIO_WRAPPED_PR_ADJUSTMENT", "4")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "octo", cfg.GitHub.Username)
	require.Equal(t, 3, cfg.Wrapped.TopN)
	require.Equal(t, time.Second, cfg.Wrapped.StepDelay)
	require.True(t, cfg.Wrapped.LiveLanguages)
	require.Equal(t, 4, cfg.Wrapped.PRAdjustment)
	require.Zero(t, cfg.Wrapped.CommitAdjustment, "an explicit zero turns the adjustment off")
	require.Equal(t, ThemeEditor, cfg.UI.Theme)
}

func TestLoadRejectsUnknownTheme(t *testing.T) {
	t.Setenv("PORTFOLIO_CONFIG", filepath.Join(t.TempDir(), "missing.toml"))
	t.Setenv("PORTFOLIO_UI_THEME", "vaporwave")

	_, err := Load()
	require.ErrorContains(t, err, "vaporwave")
}

func TestLoadRejectsBrokenFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[github\nusername = "), 0o600))
	t.Setenv("PORTFOLIO_CONFIG", path)

	_, err := Load()
	require.Error(t, err)
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	t.Setenv("PORTFOLIO_CONFIG", path)

	cfg, err := Load()
	require.NoError(t, err)
	cfg.GitHub.Username = "someone"
	cfg.Wrapped.JumpDelay = 250 * time.Millisecond
	cfg.UI.Theme = ThemeEditor
	require.NoError(t, Save(cfg))
	require.FileExists(t, path)

	got, err := Load()
	require.NoError(t, err)
	require.Equal(t, cfg, got)
}
