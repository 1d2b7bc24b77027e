// Package config assembles the installer's settings from defaults, the YAML
// settings file and ACF_PRO_INSTALLER_* environment variables.
package config

import (
	"fmt"
	"path/filepath"
	"strconv"
	"time"

	"github.com/pivvenit/acf-pro-installer/internal/domain/entities"
	"github.com/pivvenit/acf-pro-installer/internal/domain/interfaces"
	"github.com/pivvenit/acf-pro-installer/internal/external-adapters/dotenv"
	"github.com/pivvenit/acf-pro-installer/internal/external-adapters/host"
	"github.com/pivvenit/acf-pro-installer/internal/external-adapters/yaml"
)

// Config holds application configuration.
type Config struct {
	// License key lookup
	EnvVar    string
	ConfigKey string
	EnvFile   string
	WorkDir   string

	// Host
	PluginAPIVersion string
	HostConfig       map[string]string

	// Transport
	Timeout   time.Duration
	Insecure  bool
	UserAgent string
	Headers   map[string]string

	LogLevel string
}

// Default returns the built-in configuration for workDir
func Default(workDir string) *Config {
	return &Config{
		EnvVar:           entities.DefaultKeyEnvVar,
		ConfigKey:        entities.DefaultHostConfigKey,
		EnvFile:          dotenv.DefaultFilename,
		WorkDir:          workDir,
		PluginAPIVersion: host.PluginAPIVersion,
		Timeout:          5 * time.Minute,
		LogLevel:         "info",
	}
}

// Load builds the configuration for workDir. settingsFile may be empty to
// use .acf-pro-installer.yml in workDir; a missing file is fine.
func Load(env interfaces.Environment, workDir, settingsFile string) (*Config, error) {
	cfg := Default(workDir)

	if settingsFile == "" {
		settingsFile = filepath.Join(workDir, yaml.DefaultSettingsFile)
	}
	settings, err := yaml.NewSettingsParser().ParseFile(settingsFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}
	cfg.apply(settings)

	cfg.EnvVar = getEnv(env, "ACF_PRO_INSTALLER_ENV_VAR", cfg.EnvVar)
	cfg.ConfigKey = getEnv(env, "ACF_PRO_INSTALLER_CONFIG_KEY", cfg.ConfigKey)
	cfg.EnvFile = getEnv(env, "ACF_PRO_INSTALLER_ENV_FILE", cfg.EnvFile)
	cfg.PluginAPIVersion = getEnv(env, "ACF_PRO_INSTALLER_PLUGIN_API_VERSION", cfg.PluginAPIVersion)
	cfg.LogLevel = getEnv(env, "ACF_PRO_INSTALLER_LOG_LEVEL", cfg.LogLevel)
	if cfg.Timeout, err = getDurationEnv(env, "ACF_PRO_INSTALLER_TIMEOUT", cfg.Timeout); err != nil {
		return nil, err
	}
	if cfg.Insecure, err = getBoolEnv(env, "ACF_PRO_INSTALLER_INSECURE", cfg.Insecure); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that required settings are present
func (c *Config) Validate() error {
	if c.EnvVar == "" {
		return fmt.Errorf("env var name must not be empty")
	}
	if c.ConfigKey == "" {
		return fmt.Errorf("config key must not be empty")
	}
	if c.PluginAPIVersion == "" {
		return fmt.Errorf("plugin API version must not be empty")
	}
	if c.Timeout < 0 {
		return fmt.Errorf("timeout must not be negative")
	}
	return nil
}

// TransportOptions returns the options for the download transport
func (c *Config) TransportOptions() entities.TransportOptions {
	return entities.TransportOptions{
		Headers:   c.Headers,
		UserAgent: c.UserAgent,
		Timeout:   c.Timeout,
	}
}

func (c *Config) apply(s *yaml.Settings) {
	if s.EnvVar != "" {
		c.EnvVar = s.EnvVar
	}
	if s.ConfigKey != "" {
		c.ConfigKey = s.ConfigKey
	}
	if s.EnvFile != "" {
		c.EnvFile = s.EnvFile
	}
	if s.PluginAPIVersion != "" {
		c.PluginAPIVersion = s.PluginAPIVersion
	}
	if s.LogLevel != "" {
		c.LogLevel = s.LogLevel
	}
	if s.Timeout != 0 {
		c.Timeout = s.Timeout
	}
	if s.Insecure != nil {
		c.Insecure = *s.Insecure
	}
	if s.UserAgent != "" {
		c.UserAgent = s.UserAgent
	}
	if len(s.Headers) > 0 {
		c.Headers = s.Headers
	}
	if len(s.HostConfig) > 0 {
		c.HostConfig = s.HostConfig
	}
}

func getEnv(env interfaces.Environment, key, defaultValue string) string {
	if value, ok := env.Lookup(key); ok && value != "" {
		return value
	}
	return defaultValue
}

func getDurationEnv(env interfaces.Environment, key string, defaultValue time.Duration) (time.Duration, error) {
	value, ok := env.Lookup(key)
	if !ok || value == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, value, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("%s must not be negative, got %s", key, value)
	}
	return d, nil
}

func getBoolEnv(env interfaces.Environment, key string, defaultValue bool) (bool, error) {
	value, ok := env.Lookup(key)
	if !ok || value == "" {
		return defaultValue, nil
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return false, fmt.Errorf("invalid %s %q: %w", key, value, err)
	}
	return b, nil
}
