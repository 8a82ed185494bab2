// Package config loads the optional .minver.yaml configuration file.
package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-yaml"
)

// Default values applied when the config file (or a field) is absent.
const (
	DefaultManifestPath = "Cargo.toml"
	DefaultBackupSuffix = ".bak"
)

// ConfigFileName is the configuration file looked up in the working
// directory.
const ConfigFileName = ".minver.yaml"

// Config is the main configuration structure for minver.
type Config struct {
	// Path is the manifest file to operate on.
	Path string `yaml:"path"`

	// Backup controls whether a backup copy is written before the
	// manifest is rewritten. Defaults to true.
	Backup *bool `yaml:"backup,omitempty"`

	// BackupSuffix is appended to the manifest path to form the backup
	// file name.
	BackupSuffix string `yaml:"backup-suffix,omitempty"`
}

// BackupEnabled reports whether backups are on, applying the default.
func (c *Config) BackupEnabled() bool {
	return c.Backup == nil || *c.Backup
}

// LoadConfigFn is a function variable for loading configuration.
// It defaults to loadConfig but can be overridden in tests.
var LoadConfigFn = loadConfig

func loadConfig() (*Config, error) {
	// Highest priority: ENV variable
	if envPath := os.Getenv("MINVER_PATH"); envPath != "" {
		cleanPath := filepath.Clean(envPath)
		// Reject relative paths with traversal (use absolute paths instead)
		if strings.Contains(cleanPath, "..") {
			return nil, fmt.Errorf("invalid MINVER_PATH: path traversal not allowed, use absolute path instead")
		}
		return applyDefaults(&Config{Path: cleanPath}), nil
	}

	// Second priority: YAML file
	data, err := os.ReadFile(ConfigFileName)
	if err != nil {
		if os.IsNotExist(err) {
			return applyDefaults(&Config{}), nil
		}
		return nil, err
	}

	var cfg Config
	decoder := yaml.NewDecoder(bytes.NewReader(data), yaml.Strict())
	if err := decoder.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", ConfigFileName, err)
	}

	return applyDefaults(&cfg), nil
}

func applyDefaults(cfg *Config) *Config {
	if cfg.Path == "" {
		cfg.Path = DefaultManifestPath
	}
	if cfg.BackupSuffix == "" {
		cfg.BackupSuffix = DefaultBackupSuffix
	}
	return cfg
}
