// Package config loads the kryon.json project configuration.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Config represents the kryon.json configuration.
type Config struct {
	// SourceDir is where .kry sources live.
	SourceDir string `json:"sourceDir,omitempty"`

	// OutDir receives compiled IR documents. Empty means next to the source.
	OutDir string `json:"outDir,omitempty"`

	// GenPackage is the package name for generated Go code.
	GenPackage string `json:"genPackage,omitempty"`

	// Variables declares the reactive signals generated code binds against
	// and their Go-facing types; untyped signals fall back to any.
	Variables []Variable `json:"variables,omitempty"`

	// Dev holds preview server configuration.
	Dev *DevConfig `json:"dev,omitempty"`
}

// Variable types one reactive signal ("int", "float", "string", "bool").
type Variable struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

// DevConfig contains preview server configuration.
type DevConfig struct {
	Port int    `json:"port,omitempty"`
	Host string `json:"host,omitempty"`
}

// Load loads configuration from kryon.json in projectPath, falling back to
// defaults when the file does not exist.
func Load(projectPath string) (*Config, error) {
	configPath := filepath.Join(projectPath, "kryon.json")

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return DefaultConfig(), nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, err
	}

	var config Config
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("invalid kryon.json: %w", err)
	}

	applyDefaults(&config)
	return &config, nil
}

// Save writes configuration to kryon.json in projectPath.
func Save(config *Config, projectPath string) error {
	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(projectPath, "kryon.json"), data, 0644)
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		SourceDir:  "ui",
		GenPackage: "ui",
		Dev: &DevConfig{
			Port: 5173,
			Host: "localhost",
		},
	}
}

func applyDefaults(config *Config) {
	defaults := DefaultConfig()

	if config.SourceDir == "" {
		config.SourceDir = defaults.SourceDir
	}
	if config.GenPackage == "" {
		config.GenPackage = defaults.GenPackage
	}
	if config.Dev == nil {
		config.Dev = defaults.Dev
	} else {
		if config.Dev.Port == 0 {
			config.Dev.Port = defaults.Dev.Port
		}
		if config.Dev.Host == "" {
			config.Dev.Host = defaults.Dev.Host
		}
	}
}
