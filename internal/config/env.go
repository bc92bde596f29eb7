package config

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// EnvPrefix is the prefix of every environment override.
const EnvPrefix = "SAASTRACK"

// EnvOverrides are settings that may be supplied through the environment.
// Empty values leave the file configuration untouched.
type EnvOverrides struct {
	LogLevel   string `envconfig:"LOG_LEVEL"`
	LogFormat  string `envconfig:"LOG_FORMAT"`
	DBPath     string `envconfig:"DB_PATH"`
	DaemonAddr string `envconfig:"DAEMON_ADDR"`
	Theme      string `envconfig:"THEME"`
}

// LoadDotEnv loads a .env file from the working directory if one exists.
func LoadDotEnv() {
	_ = godotenv.Load()
}

// ApplyEnv overlays SAASTRACK_* environment variables onto cfg.
func ApplyEnv(cfg Config) (Config, error) {
	var env EnvOverrides
	if err := envconfig.Process(EnvPrefix, &env); err != nil {
		return cfg, fmt.Errorf("parsing environment: %w", err)
	}

	if env.LogLevel != "" {
		cfg.Log.Level = env.LogLevel
	}
	if env.LogFormat != "" {
		cfg.Log.Format = env.LogFormat
	}
	if env.DBPath != "" {
		cfg.General.DBPath = env.DBPath
	}
	if env.DaemonAddr != "" {
		cfg.Daemon.Addr = env.DaemonAddr
	}
	if env.Theme != "" {
		cfg.Appearance.Theme = env.Theme
	}
	return cfg, nil
}

// LoadEffective loads the config file and applies environment overrides.
func LoadEffective() (Config, error) {
	cfg, err := Load()
	if err != nil {
		return cfg, err
	}
	return ApplyEnv(cfg)
}
