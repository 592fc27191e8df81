// Package config loads bhasha settings from YAML with environment overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/abhisek/bhasha/internal/store"
)

// Config holds every user-tunable setting.
type Config struct {
	DataDir     string        `yaml:"data_dir"`
	DBPath      string        `yaml:"db_path"`
	ContentPath string        `yaml:"content_path"`
	Log         LogConfig     `yaml:"log"`
	Session     SessionConfig `yaml:"session"`
	Store       StoreConfig   `yaml:"store"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // "json" or "text"
}

// SessionConfig controls how lessons are assembled.
type SessionConfig struct {
	MaxExercises int  `yaml:"max_exercises"`
	Shuffle      bool `yaml:"shuffle"`
	ReviewFirst  bool `yaml:"review_first"`
}

// StoreConfig holds persistence settings.
type StoreConfig struct {
	SnapshotKeep int           `yaml:"snapshot_keep"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
}

// Default returns the built-in configuration. Paths are left empty and
// resolved by Resolve.
func Default() *Config {
	return &Config{
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
		Session: SessionConfig{
			MaxExercises: 10,
			Shuffle:      true,
			ReviewFirst:  true,
		},
		Store: StoreConfig{
			SnapshotKeep: 20,
			WriteTimeout: 2 * time.Second,
		},
	}
}

// DefaultPath returns $XDG_CONFIG_HOME/bhasha/config.yaml, falling back to
// ~/.config/bhasha/config.yaml.
func DefaultPath() (string, error) {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "bhasha", "config.yaml"), nil
}

// Load reads path over the defaults. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// ApplyEnv applies BHASHA_DB, BHASHA_CONTENT and BHASHA_LOG_LEVEL.
func (c *Config) ApplyEnv() {
	if v := os.Getenv("BHASHA_DB"); v != "" {
		c.DBPath = v
	}
	if v := os.Getenv("BHASHA_CONTENT"); v != "" {
		c.ContentPath = v
	}
	if v := os.Getenv("BHASHA_LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
}

// Resolve fills in the data directory and database path and clamps
// numeric settings.
func (c *Config) Resolve() error {
	if c.DataDir == "" {
		dir, err := store.DataDir()
		if err != nil {
			return err
		}
		c.DataDir = dir
	}
	if c.DBPath == "" {
		c.DBPath = filepath.Join(c.DataDir, "bhasha.db")
	}
	c.Session.MaxExercises = max(c.Session.MaxExercises, 0)
	if c.Store.SnapshotKeep < 1 {
		c.Store.SnapshotKeep = 1
	}
	if c.Store.WriteTimeout <= 0 {
		c.Store.WriteTimeout = Default().Store.WriteTimeout
	}
	return nil
}
