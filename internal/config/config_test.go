package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundTrip(t *testing.T) {
	cfg := Default()
	cfg.Data.AccountsFile = "/var/lib/strongroom/accounts.csv"
	cfg.Shell.ClearScreen = false
	cfg.Log.File = "strongroom.log"

	path := filepath.Join(t.TempDir(), "strongroom.yaml")
	require.NoError(t, Save(path, cfg))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, got)
}

func TestDefaults(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "accounts.csv", cfg.Data.AccountsFile)
	assert.Equal(t, "admin", cfg.Admin.DefaultPassword)
	assert.True(t, cfg.Shell.ClearScreen)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Empty(t, cfg.Log.File)
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "strongroom.yaml")
	require.NoError(t, os.WriteFile(path, []byte("log:\n  level: debug\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "accounts.csv", cfg.Data.AccountsFile)
	assert.True(t, cfg.Shell.ClearScreen)
}

func TestLoadNotFound(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nonexistent.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "strongroom.yaml")
	require.NoError(t, os.WriteFile(path, []byte("data: [unclosed\n"), 0o644))

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing config")
}

func TestResolve_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Resolve(filepath.Join(t.TempDir(), "nonexistent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "accounts.csv", cfg.Data.AccountsFile)
}

func TestResolve_EnvOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "strongroom.yaml")
	cfg := Default()
	cfg.Data.AccountsFile = "from-file.csv"
	cfg.Log.Level = "info"
	require.NoError(t, Save(path, cfg))

	t.Setenv("STRONGROOM_ACCOUNTS_FILE", "from-env.csv")
	t.Setenv("STRONGROOM_CLEAR_SCREEN", "false")
	t.Setenv("STRONGROOM_ADMIN_PASSWORD", "s3cret")

	got, err := Resolve(path)
	require.NoError(t, err)
	assert.Equal(t, "from-env.csv", got.Data.AccountsFile)
	assert.False(t, got.Shell.ClearScreen)
	assert.Equal(t, "s3cret", got.Admin.DefaultPassword)
	assert.Equal(t, "info", got.Log.Level, "unset variables keep file values")
}

func TestResolve_BadEnvValue(t *testing.T) {
	t.Setenv("STRONGROOM_CLEAR_SCREEN", "sometimes")

	_, err := Resolve(filepath.Join(t.TempDir(), "nonexistent.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing environment")
}

func TestYAMLFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "strongroom.yaml")
	require.NoError(t, Save(path, Default()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	contents := string(data)

	assert.Contains(t, contents, "accounts_file: accounts.csv")
	assert.Contains(t, contents, "default_password: admin")
	assert.Contains(t, contents, "clear_screen: true")
	assert.Contains(t, contents, "level: warn")
}
