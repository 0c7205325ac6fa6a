package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
)

// Config is the process configuration, read from the environment.
type Config struct {
	// DataDir holds the database and log file. Empty means the XDG
	// data directory (or ~/.local/share) plus "daydash".
	DataDir string `env:"DAYDASH_DATA_DIR"`

	// LogLevel is a zap level name.
	LogLevel string `env:"DAYDASH_LOG_LEVEL" envDefault:"warn"`

	// Ephemeral switches to an in-memory backend: nothing is read from
	// or written to disk.
	Ephemeral bool `env:"DAYDASH_EPHEMERAL"`
}

// Parse reads the environment and resolves the data directory,
// creating it if needed.
func Parse() (Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return Config{}, fmt.Errorf("parse environment: %w", err)
	}

	if cfg.DataDir == "" {
		dir, err := defaultDataDir()
		if err != nil {
			return Config{}, err
		}
		cfg.DataDir = dir
	}

	if !cfg.Ephemeral {
		if err := os.MkdirAll(cfg.DataDir, 0755); err != nil {
			return Config{}, fmt.Errorf("create data dir: %w", err)
		}
	}

	return cfg, nil
}

// DBPath returns the sqlite file path.
func (c Config) DBPath() string {
	return filepath.Join(c.DataDir, "daydash.db")
}

// LogPath returns the diagnostic log path. The TUI owns stdout, so
// logs always go to a file.
func (c Config) LogPath() string {
	return filepath.Join(c.DataDir, "daydash.log")
}

func defaultDataDir() (string, error) {
	dataDir := os.Getenv("XDG_DATA_HOME")
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		dataDir = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataDir, "daydash"), nil
}
