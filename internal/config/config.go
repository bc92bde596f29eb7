// Package config loads saastrack configuration and the tunable metric heuristics.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config holds all saastrack configuration.
type Config struct {
	General    GeneralConfig      `toml:"general"`
	Appearance AppearanceConfig   `toml:"appearance"`
	TUI        TUIConfig          `toml:"tui"`
	Daemon     DaemonConfig       `toml:"daemon"`
	Log        LogConfig          `toml:"log"`
	Overrides  HeuristicOverrides `toml:"heuristics"`
}

// GeneralConfig holds general preferences.
type GeneralConfig struct {
	DBPath         string `toml:"db_path,omitempty"`
	ForecastMonths int    `toml:"forecast_months,omitempty"`
}

// AppearanceConfig holds theme settings.
type AppearanceConfig struct {
	Theme string `toml:"theme"`
}

// TUIConfig holds dashboard refresh settings.
type TUIConfig struct {
	AutoRefresh        bool `toml:"auto_refresh"`
	RefreshIntervalSec int  `toml:"refresh_interval_sec"`
}

// DaemonConfig holds the local status service settings.
type DaemonConfig struct {
	Addr         string `toml:"addr,omitempty"`
	IntervalSec  int    `toml:"interval_sec,omitempty"`
	EventsBuffer int    `toml:"events_buffer,omitempty"`
}

// LogConfig holds diagnostic logging settings.
type LogConfig struct {
	Level  string `toml:"level,omitempty"`
	Format string `toml:"format,omitempty"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		Appearance: AppearanceConfig{
			Theme: "flexoki-dark",
		},
		TUI: TUIConfig{
			AutoRefresh:        true,
			RefreshIntervalSec: 15,
		},
		Daemon: DaemonConfig{
			Addr:         "127.0.0.1:8788",
			IntervalSec:  5,
			EventsBuffer: 200,
		},
		Log: LogConfig{
			Level:  "warn",
			Format: "console",
		},
	}
}

// Dir returns the XDG-compliant config directory.
func Dir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "saastrack")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "saastrack")
}

// Path returns the full path to the config file.
func Path() string {
	return filepath.Join(Dir(), "config.toml")
}

// DataDir returns the XDG-compliant data directory holding the workspace.
func DataDir() string {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, "saastrack")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "share", "saastrack")
}

// DBPath returns the workspace database path, honoring the db_path override.
func (c Config) DBPath() string {
	if c.General.DBPath != "" {
		return c.General.DBPath
	}
	return filepath.Join(DataDir(), "workspace.db")
}

// Load reads the config file, returning defaults if it doesn't exist.
func Load() (Config, error) {
	return LoadFrom(Path())
}

// LoadFrom reads the config file at path on top of the defaults.
func LoadFrom(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path) //nolint:gosec // path is the user's own config file
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}

	return cfg, nil
}

// Save writes the config to disk.
func Save(cfg Config) error {
	return SaveTo(Path(), cfg)
}

// SaveTo writes the config to path, creating parent directories.
func SaveTo(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600) //nolint:gosec // see LoadFrom
	if err != nil {
		return fmt.Errorf("creating config file: %w", err)
	}
	defer f.Close()

	enc := toml.NewEncoder(f)
	return enc.Encode(cfg)
}

// Exists returns true if a config file exists on disk.
func Exists() bool {
	_, err := os.Stat(Path())
	return err == nil
}
