package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/BurntSushi/toml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func isolate(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(root, "config"))
	t.Setenv("XDG_DATA_HOME", filepath.Join(root, "data"))
	t.Setenv("XDG_CACHE_HOME", filepath.Join(root, "cache"))
	t.Setenv(EnvDatabase, "")
	t.Setenv(EnvDeck, "")
	t.Setenv(EnvLogLevel, "")
	return root
}

func TestPathsFollowXDG(t *testing.T) {
	root := isolate(t)

	assert.Equal(t, filepath.Join(root, "config", "solevolog", "config.toml"), GetConfigFilePath())
	assert.Equal(t, filepath.Join(root, "data", "solevolog", "decks"), GetDeckLibraryPath())
	assert.Equal(t, filepath.Join(root, "data", "solevolog", "solevolog.db"), GetDatabasePath())
	assert.Equal(t, filepath.Join(root, "cache", "solevolog"), GetCacheDir())
}

func TestLoadConfigCreatesDefault(t *testing.T) {
	isolate(t)

	c, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, Default(), c)
	assert.FileExists(t, GetConfigFilePath())

	var onDisk Config
	_, err = toml.DecodeFile(GetConfigFilePath(), &onDisk)
	require.NoError(t, err)
	assert.Equal(t, DefaultDeck, onDisk.DefaultDeck)
	assert.Equal(t, "3-card", onDisk.DefaultSpread)
}

func TestLoadConfigKeepsDefaultsForMissingKeys(t *testing.T) {
	isolate(t)
	require.NoError(t, os.MkdirAll(filepath.Dir(GetConfigFilePath()), 0755))
	require.NoError(t, os.WriteFile(GetConfigFilePath(), []byte(`default_spread = "celtic-cross"`), 0644))

	c, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "celtic-cross", c.DefaultSpread)
	assert.Equal(t, DefaultDeck, c.DefaultDeck)
	assert.Equal(t, "info", c.LogLevel)
}

func TestLoadConfigBadFile(t *testing.T) {
	isolate(t)
	require.NoError(t, os.MkdirAll(filepath.Dir(GetConfigFilePath()), 0755))
	require.NoError(t, os.WriteFile(GetConfigFilePath(), []byte("default_deck = "), 0644))

	_, err := LoadConfig()
	assert.ErrorContains(t, err, "error decoding config file")
}

func TestEnvironmentOverrides(t *testing.T) {
	isolate(t)
	t.Setenv(EnvDatabase, "/tmp/other.db")
	t.Setenv(EnvDeck, "thoth")
	t.Setenv(EnvLogLevel, "debug")

	c, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/other.db", c.Database)
	assert.Equal(t, "thoth", c.DefaultDeck)
	assert.Equal(t, "debug", c.LogLevel)

	// Overrides are not persisted by SetDefaultDeck.
	require.NoError(t, SetDefaultDeck("marseille"))
	var onDisk Config
	_, err = toml.DecodeFile(GetConfigFilePath(), &onDisk)
	require.NoError(t, err)
	assert.Equal(t, "marseille", onDisk.DefaultDeck)
	assert.Equal(t, "info", onDisk.LogLevel)
}

func TestSetDefaultDeck(t *testing.T) {
	isolate(t)

	require.NoError(t, SetDefaultDeck("thoth"))
	c, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "thoth", c.DefaultDeck)
}

func TestGetDeckPath(t *testing.T) {
	isolate(t)
	libDeck := filepath.Join(GetDeckLibraryPath(), "thoth")
	require.NoError(t, os.MkdirAll(libDeck, 0755))

	p, err := GetDeckPath("thoth")
	require.NoError(t, err)
	assert.Equal(t, libDeck, p)

	local := t.TempDir()
	p, err = GetDeckPath(local)
	require.NoError(t, err)
	assert.Equal(t, local, p)

	p, err = GetDeckPath(DefaultDeck)
	require.NoError(t, err)
	assert.Empty(t, p)

	_, err = GetDeckPath("missing")
	assert.ErrorIs(t, err, ErrDeckNotFound)
}
