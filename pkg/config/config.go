// Package config resolves file locations, log level and UI settings from the
// environment, an optional YAML settings file and command-line overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

const (
	appName   = "tasks-cli"
	namespace = "TASKS"

	settingsFile = "settings.yaml"
	logFile      = "debug.log"
)

// Env holds the settings read from TASKS_* environment variables. Empty paths
// are filled in by Load.
type Env struct {
	DBPath       string `envconfig:"DB_PATH"`
	LogPath      string `envconfig:"LOG_PATH"`
	LogLevel     string `envconfig:"LOG_LEVEL" default:"info"`
	SettingsPath string `envconfig:"SETTINGS_PATH"`
}

// LoadEnv reads the TASKS_* environment variables.
func LoadEnv() (*Env, error) {
	var env Env
	if err := envconfig.Process(namespace, &env); err != nil {
		return nil, fmt.Errorf("failed to load env: %w", err)
	}

	return &env, nil
}

// ZerologLevel parses LogLevel, falling back to info.
func (e *Env) ZerologLevel() zerolog.Level {
	if e == nil {
		return zerolog.InfoLevel
	}

	level, err := zerolog.ParseLevel(e.LogLevel)
	if err != nil || level == zerolog.NoLevel {
		return zerolog.InfoLevel
	}

	return level
}

// Colors are hex colors used to highlight statuses and priorities.
type Colors struct {
	Red    string `yaml:"red"`
	Blue   string `yaml:"blue"`
	Green  string `yaml:"green"`
	Orange string `yaml:"orange"`
}

// Icons are the glyphs shown next to statuses, priorities and notes.
type Icons struct {
	Pending    string `yaml:"pending"`
	InProgress string `yaml:"in_progress"`
	Completed  string `yaml:"completed"`
	Low        string `yaml:"low"`
	Medium     string `yaml:"medium"`
	High       string `yaml:"high"`
	Notes      string `yaml:"notes"`
}

// UI groups the display settings.
type UI struct {
	Colors Colors `yaml:"colors"`
	Icons  Icons  `yaml:"icons"`
}

// Settings is the content of the YAML settings file.
type Settings struct {
	DatabaseName string `yaml:"database_name"`
	UI           UI     `yaml:"ui"`
}

// DefaultSettings returns the settings used when no file is present.
func DefaultSettings() Settings {
	return Settings{
		DatabaseName: "tasks-cli.db",
		UI: UI{
			Colors: Colors{
				Red:    "#FF7A93",
				Blue:   "#7AA2F7",
				Green:  "#B9F27C",
				Orange: "#FF9E64",
			},
			Icons: Icons{
				Pending:    "○",
				InProgress: "◐",
				Completed:  "●",
				Low:        "↓",
				Medium:     "→",
				High:       "↑",
				Notes:      "✎",
			},
		},
	}
}

// LoadSettings reads the YAML file at path over the defaults. A missing file is
// not an error.
func LoadSettings(path string) (Settings, error) {
	settings := DefaultSettings()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return settings, nil
		}

		return settings, fmt.Errorf("read %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &settings); err != nil {
		return settings, fmt.Errorf("parse %s: %w", path, err)
	}

	if settings.DatabaseName == "" {
		settings.DatabaseName = DefaultSettings().DatabaseName
	}

	return settings, nil
}

// DataDir is the per-user directory holding the database, log and settings.
func DataDir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("locate user config dir: %w", err)
	}

	return filepath.Join(base, appName), nil
}

// Config is the fully resolved configuration.
type Config struct {
	Env
	Settings Settings
}

// Load merges the environment with overrides (non-empty fields win), fills in
// default paths under dir and loads the settings file. An empty dir means DataDir.
func Load(dir string, overrides Env) (*Config, error) {
	env, err := LoadEnv()
	if err != nil {
		return nil, err
	}

	merge(env, overrides)

	if dir == "" {
		if dir, err = DataDir(); err != nil {
			return nil, err
		}
	}

	if env.SettingsPath == "" {
		env.SettingsPath = filepath.Join(dir, settingsFile)
	}

	settings, err := LoadSettings(env.SettingsPath)
	if err != nil {
		return nil, err
	}

	if env.DBPath == "" {
		env.DBPath = filepath.Join(dir, settings.DatabaseName)
	}

	if env.LogPath == "" {
		env.LogPath = filepath.Join(dir, logFile)
	}

	return &Config{Env: *env, Settings: settings}, nil
}

// EnsureDirs creates the parent directories of the database and log files.
func (c *Config) EnsureDirs() error {
	dirPerms := 0o755

	for _, path := range []string{c.DBPath, c.LogPath} {
		if err := os.MkdirAll(filepath.Dir(path), os.FileMode(dirPerms)); err != nil {
			return fmt.Errorf("create directory for %s: %w", path, err)
		}
	}

	return nil
}

func merge(env *Env, overrides Env) {
	if overrides.DBPath != "" {
		env.DBPath = overrides.DBPath
	}

	if overrides.LogPath != "" {
		env.LogPath = overrides.LogPath
	}

	if overrides.LogLevel != "" {
		env.LogLevel = overrides.LogLevel
	}

	if overrides.SettingsPath != "" {
		env.SettingsPath = overrides.SettingsPath
	}
}
