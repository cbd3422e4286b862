package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Workspace WorkspaceConfig `yaml:"workspace"`
	Catalog   CatalogConfig   `yaml:"catalog"`
	Store     StoreConfig     `yaml:"store"`
	Log       LogConfig       `yaml:"log"`
}

type WorkspaceConfig struct {
	Root string `yaml:"root"`
}

type CatalogConfig struct {
	// Path points at an optional YAML overlay that extends or replaces the
	// built-in agent and preset definitions.
	Path string `yaml:"path"`
}

type StoreConfig struct {
	Path string `yaml:"path"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

func defaults() Config {
	return Config{
		Workspace: WorkspaceConfig{
			Root: ".",
		},
		Store: StoreConfig{
			Path: "memory-store/flow.db",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

func Load() (*Config, error) {
	cfg := defaults()

	path := os.Getenv("FLOWCTL_CONFIG")
	if path == "" {
		path = "flowctl.yaml"
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("read config: %w", err)
		}
		// Config file not found, use defaults + env
	} else {
		// Expand environment variables in YAML
		expanded := os.ExpandEnv(string(data))
		if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	applyEnv(&cfg)

	return &cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("FLOWCTL_ROOT"); v != "" {
		cfg.Workspace.Root = v
	}
	if v := os.Getenv("FLOWCTL_CATALOG"); v != "" {
		cfg.Catalog.Path = v
	}
	if v := os.Getenv("FLOWCTL_STORE_PATH"); v != "" {
		cfg.Store.Path = v
	}
	if v := os.Getenv("FLOWCTL_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
}

// StorePath resolves the store path against the workspace root when it is
// relative.
func (c *Config) StorePath() string {
	if filepath.IsAbs(c.Store.Path) {
		return c.Store.Path
	}
	return filepath.Join(c.Workspace.Root, c.Store.Path)
}
