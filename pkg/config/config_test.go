package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/matt-steen/tasks-cli/pkg/config"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadSettingsMissingFile(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	settings, err := config.LoadSettings(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.NoError(err)
	assert.Equal(config.DefaultSettings(), settings)
}

func TestLoadSettingsMergesDefaults(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)
	path := filepath.Join(t.TempDir(), "settings.yaml")

	content := "database_name: mine.db\nui:\n  colors:\n    red: \"#AA0000\"\n  icons:\n    notes: \"+\"\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	settings, err := config.LoadSettings(path)
	assert.NoError(err)

	want := config.DefaultSettings()
	want.DatabaseName = "mine.db"
	want.UI.Colors.Red = "#AA0000"
	want.UI.Icons.Notes = "+"

	assert.Equal(want, settings)
}

func TestLoadSettingsBadYAML(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)
	path := filepath.Join(t.TempDir(), "settings.yaml")

	require.NoError(t, os.WriteFile(path, []byte("ui: [not, a, map"), 0o600))

	_, err := config.LoadSettings(path)
	assert.ErrorContains(err, "parse "+path)
}

func TestLoadDefaults(t *testing.T) {
	assert := assert.New(t)
	dir := t.TempDir()

	t.Setenv("TASKS_DB_PATH", "")
	t.Setenv("TASKS_LOG_PATH", "")
	t.Setenv("TASKS_LOG_LEVEL", "")
	t.Setenv("TASKS_SETTINGS_PATH", "")

	cfg, err := config.Load(dir, config.Env{})
	assert.NoError(err)
	assert.Equal(filepath.Join(dir, "tasks-cli.db"), cfg.DBPath)
	assert.Equal(filepath.Join(dir, "debug.log"), cfg.LogPath)
	assert.Equal(filepath.Join(dir, "settings.yaml"), cfg.SettingsPath)
	assert.Equal(zerolog.InfoLevel, cfg.ZerologLevel())
	assert.NoError(cfg.EnsureDirs())
}

func TestLoadEnvAndOverrides(t *testing.T) {
	assert := assert.New(t)
	dir := t.TempDir()

	t.Setenv("TASKS_DB_PATH", filepath.Join(dir, "env.db"))
	t.Setenv("TASKS_LOG_PATH", filepath.Join(dir, "env.log"))
	t.Setenv("TASKS_LOG_LEVEL", "debug")
	t.Setenv("TASKS_SETTINGS_PATH", "")

	cfg, err := config.Load(dir, config.Env{LogPath: filepath.Join(dir, "logs", "flag.log")})
	assert.NoError(err)
	assert.Equal(filepath.Join(dir, "env.db"), cfg.DBPath)
	assert.Equal(filepath.Join(dir, "logs", "flag.log"), cfg.LogPath)
	assert.Equal(zerolog.DebugLevel, cfg.ZerologLevel())

	assert.NoError(cfg.EnsureDirs())
	assert.DirExists(filepath.Join(dir, "logs"))
}

func TestLoadUsesSettingsDatabaseName(t *testing.T) {
	assert := assert.New(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.yaml")

	require.NoError(t, os.WriteFile(path, []byte("database_name: other.db\n"), 0o600))

	t.Setenv("TASKS_DB_PATH", "")
	t.Setenv("TASKS_SETTINGS_PATH", path)

	cfg, err := config.Load(dir, config.Env{})
	assert.NoError(err)
	assert.Equal(filepath.Join(dir, "other.db"), cfg.DBPath)
	assert.Equal("other.db", cfg.Settings.DatabaseName)
}

func TestZerologLevelFallback(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	var env *config.Env
	assert.Equal(zerolog.InfoLevel, env.ZerologLevel())
	assert.Equal(zerolog.InfoLevel, (&config.Env{LogLevel: "loud"}).ZerologLevel())
	assert.Equal(zerolog.WarnLevel, (&config.Env{LogLevel: "warn"}).ZerologLevel())
}
