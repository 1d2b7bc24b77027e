// Package yaml reads the installer's YAML settings file.
package yaml

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultSettingsFile is looked up in the working directory
const DefaultSettingsFile = ".acf-pro-installer.yml"

// yamlSettings represents the raw YAML structure
type yamlSettings struct {
	EnvVar           string            `yaml:"env_var"`
	ConfigKey        string            `yaml:"config_key"`
	EnvFile          string            `yaml:"env_file"`
	PluginAPIVersion string            `yaml:"plugin_api_version"`
	LogLevel         string            `yaml:"log_level"`
	Timeout          string            `yaml:"timeout"`
	Insecure         *bool             `yaml:"insecure"`
	Transport        yamlTransport     `yaml:"transport"`
	HostConfig       map[string]string `yaml:"host_config"`
}

type yamlTransport struct {
	UserAgent string            `yaml:"user_agent"`
	Headers   map[string]string `yaml:"headers"`
}

// Settings holds the values found in a settings file. Zero values mean "not set".
type Settings struct {
	EnvVar           string
	ConfigKey        string
	EnvFile          string
	PluginAPIVersion string
	LogLevel         string
	Timeout          time.Duration
	Insecure         *bool
	UserAgent        string
	Headers          map[string]string
	HostConfig       map[string]string
}

// SettingsParser parses YAML settings files
type SettingsParser struct{}

// NewSettingsParser creates a new YAML parser
func NewSettingsParser() *SettingsParser {
	return &SettingsParser{}
}

// ParseFile parses a settings file. A missing file yields empty settings.
func (p *SettingsParser) ParseFile(filePath string) (*Settings, error) {
	//nolint:gosec // G304: filePath is the user's settings file
	data, err := os.ReadFile(filePath)
	if errors.Is(err, fs.ErrNotExist) {
		return &Settings{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filePath, err)
	}

	return p.Parse(data)
}

// Parse parses YAML bytes into Settings
func (p *SettingsParser) Parse(data []byte) (*Settings, error) {
	var raw yamlSettings
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	var timeout time.Duration
	if raw.Timeout != "" {
		d, err := time.ParseDuration(raw.Timeout)
		if err != nil {
			return nil, fmt.Errorf("invalid timeout %q: %w", raw.Timeout, err)
		}
		if d < 0 {
			return nil, fmt.Errorf("timeout must not be negative, got %s", raw.Timeout)
		}
		timeout = d
	}

	return &Settings{
		EnvVar:           raw.EnvVar,
		ConfigKey:        raw.ConfigKey,
		EnvFile:          raw.EnvFile,
		PluginAPIVersion: raw.PluginAPIVersion,
		LogLevel:         raw.LogLevel,
		Timeout:          timeout,
		Insecure:         raw.Insecure,
		UserAgent:        raw.Transport.UserAgent,
		Headers:          raw.Transport.Headers,
		HostConfig:       raw.HostConfig,
	}, nil
}
