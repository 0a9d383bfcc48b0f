// Package config provides configuration loading and validation for the CLI.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// DefaultFileName is the per-user config looked up when no --config path is
// given.
const DefaultFileName = ".scout.yaml"

// EnvAPIKey is the environment variable holding the search API key.
const EnvAPIKey = "SCOUT_API_KEY"

// Config holds file-sourced defaults. All fields are optional; CLI flags
// win over everything here.
type Config struct {
	APIKey      string `yaml:"api_key"`
	Company     string `yaml:"company"`
	Domain      string `yaml:"domain"`
	Pages       int    `yaml:"pages" validate:"gte=0,lte=100"`
	Delay       int    `yaml:"delay" validate:"gte=0"`
	EmailFormat int    `yaml:"email_format" validate:"gte=0,lte=10"`
	OutputDir   string `yaml:"output_dir"`
	DownloadDir string `yaml:"download_dir"`
	Proxy       string `yaml:"proxy" validate:"omitempty,url"`
	Bypass      string `yaml:"bypass" validate:"omitempty,url"`
	Source      string `yaml:"source" validate:"omitempty,oneof=auto api browser"`
}

var validate = validator.New()

// Load reads configuration. An explicit path must exist and parse; with no
// path, the per-user default file is used if present, and a missing default
// yields an empty config.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		home, err := os.UserHomeDir()
		if err != nil {
			return &Config{}, nil
		}
		path = filepath.Join(home, DefaultFileName)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && os.IsNotExist(err) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	if err := validate.Struct(&cfg); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", path, err)
	}
	return &cfg, nil
}

// ResolveAPIKey applies the credential precedence chain:
// flag > environment > config file.
func ResolveAPIKey(flagValue string, cfg *Config) string {
	if flagValue != "" {
		return flagValue
	}
	if env := os.Getenv(EnvAPIKey); env != "" {
		return env
	}
	return cfg.APIKey
}

// StringOr returns value unless it is empty, then fallback.
func StringOr(value, fallback string) string {
	if value != "" {
		return value
	}
	return fallback
}

// IntOr returns value unless it is zero, then fallback.
func IntOr(value, fallback int) int {
	if value != 0 {
		return value
	}
	return fallback
}
