package secrets

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// isolate points the user config dir at a temp dir.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Setenv("AppData", dir)
	cfgDir, err := os.UserConfigDir()
	require.NoError(t, err)
	return filepath.Join(cfgDir, appDir, fileName)
}

func TestTokenRoundTrip(t *testing.T) {
	path := isolate(t)

	_, err := FetchToken("github")
	require.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, StoreToken(" GitHub ", "ghp_secret123\n"))
	got, err := FetchToken("github")
	require.NoError(t, err)
	require.Equal(t, "ghp_secret123", got)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	require.False(t, strings.Contains(string(raw), "ghp_secret123"), "token must not be stored in plain text")

	info, err := os.Stat(path)
	require.NoError(t, err)
	require.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	require.NoError(t, DeleteToken("github"))
	_, err = FetchToken("github")
	require.ErrorIs(t, err, ErrNotFound)
	require.ErrorIs(t, DeleteToken("github"), ErrNotFound)
}

func TestStoreValidation(t *testing.T) {
	isolate(t)

	require.Error(t, StoreToken("", "x"))
	require.Error(t, StoreToken("github", "   "))
	_, err := FetchToken(" ")
	require.Error(t, err)
}

func TestFetchRejectsTamperedFile(t *testing.T) {
	path := isolate(t)
	require.NoError(t, StoreToken("github", "abc"))
	require.NoError(t, os.WriteFile(path, []byte(`{"tokens":{"github":"AAAA"}}`), 0o600))

	_, err := FetchToken("github")
	require.Error(t, err)
}
