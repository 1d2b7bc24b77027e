// Package services implements domain business logic and use cases.
package services

import (
	"github.com/pivvenit/acf-pro-installer/internal/domain/entities"
	"github.com/pivvenit/acf-pro-installer/internal/domain/interfaces"
	"github.com/pivvenit/acf-pro-installer/internal/domain/interfaces/repositories"
	"github.com/pivvenit/acf-pro-installer/internal/domain/interfaces/services"
)

// EnvironmentProvider reads the license key from an environment variable
type EnvironmentProvider struct {
	env  interfaces.Environment
	name string
}

// NewEnvironmentProvider creates a provider for the variable name
func NewEnvironmentProvider(env interfaces.Environment, name string) *EnvironmentProvider {
	return &EnvironmentProvider{env: env, name: name}
}

// Provide returns the variable's value; unset and empty are both absent
func (p *EnvironmentProvider) Provide() (string, bool) {
	value, ok := p.env.Lookup(p.name)
	if !ok || value == "" {
		return "", false
	}
	return value, true
}

// KeyFileProvider loads a key file into the environment before reading the variable.
// The load never overwrites, so an exported variable beats the file's entry.
type KeyFileProvider struct {
	*EnvironmentProvider
	loader interfaces.KeyFileLoader
	dir    string
	logger interfaces.Logger
}

// NewKeyFileProvider creates a provider that loads the key file found in dir
func NewKeyFileProvider(env interfaces.Environment, name string, loader interfaces.KeyFileLoader, dir string, logger interfaces.Logger) *KeyFileProvider {
	return &KeyFileProvider{
		EnvironmentProvider: NewEnvironmentProvider(env, name),
		loader:              loader,
		dir:                 dir,
		logger:              logger,
	}
}

// Provide loads the key file and then looks the variable up
func (p *KeyFileProvider) Provide() (string, bool) {
	if err := p.loader.Load(p.dir); err != nil {
		p.logger.Warn("Failed to load key file",
			interfaces.F("dir", p.dir),
			interfaces.F("error", err.Error()),
		)
		return "", false
	}
	return p.EnvironmentProvider.Provide()
}

// HostConfigProvider reads the license key from the host's configuration
type HostConfigProvider struct {
	config repositories.HostConfig
	key    string
	logger interfaces.Logger
}

// NewHostConfigProvider creates a provider for the configuration entry key
func NewHostConfigProvider(config repositories.HostConfig, key string, logger interfaces.Logger) *HostConfigProvider {
	return &HostConfigProvider{config: config, key: key, logger: logger}
}

// Provide returns the configured value; read failures count as absent
func (p *HostConfigProvider) Provide() (string, bool) {
	value, ok, err := p.config.Get(p.key)
	if err != nil {
		p.logger.Warn("Failed to read host configuration",
			interfaces.F("key", p.key),
			interfaces.F("error", err.Error()),
		)
		return "", false
	}
	if !ok || value == "" {
		return "", false
	}
	return value, true
}

// chainLink pairs a provider with the source it reports
type chainLink struct {
	provider services.LicenseKeyProvider
	source   entities.LicenseKeySource
}

// ProviderChain tries providers in order until one supplies a key
type ProviderChain struct {
	links []chainLink
}

// NewProviderChain creates an empty chain
func NewProviderChain() *ProviderChain {
	return &ProviderChain{}
}

// Add appends a provider with the lowest precedence so far
func (c *ProviderChain) Add(source entities.LicenseKeySource, provider services.LicenseKeyProvider) *ProviderChain {
	c.links = append(c.links, chainLink{provider: provider, source: source})
	return c
}

// Len returns the number of providers in the chain
func (c *ProviderChain) Len() int {
	return len(c.links)
}

// Sources lists the provider sources in precedence order
func (c *ProviderChain) Sources() []entities.LicenseKeySource {
	sources := make([]entities.LicenseKeySource, 0, len(c.links))
	for _, l := range c.links {
		sources = append(sources, l.source)
	}
	return sources
}

// Provide returns the first non-empty key
func (c *ProviderChain) Provide() (string, bool) {
	key, _, ok := c.Resolve()
	return key, ok
}

// Resolve returns the first non-empty key and the source that supplied it.
// Later providers are not consulted once one succeeds.
func (c *ProviderChain) Resolve() (string, entities.LicenseKeySource, bool) {
	for _, l := range c.links {
		if key, ok := l.provider.Provide(); ok && key != "" {
			return key, l.source, true
		}
	}
	return "", entities.SourceNone, false
}

// ProviderChainConfig holds the collaborators of the default chain
type ProviderChainConfig struct {
	Env        interfaces.Environment
	EnvVar     string
	KeyFile    interfaces.KeyFileLoader // nil leaves the key-file provider out
	KeyFileDir string
	HostConfig repositories.HostConfig // nil leaves the host-config provider out
	ConfigKey  string
	Logger     interfaces.Logger
}

// NewDefaultProviderChain builds the chain environment, key file, host configuration
func NewDefaultProviderChain(cfg ProviderChainConfig) *ProviderChain {
	envVar := cfg.EnvVar
	if envVar == "" {
		envVar = entities.DefaultKeyEnvVar
	}
	configKey := cfg.ConfigKey
	if configKey == "" {
		configKey = entities.DefaultHostConfigKey
	}
	logger := cfg.Logger
	if logger == nil {
		logger = &interfaces.NoOpLogger{}
	}

	chain := NewProviderChain().
		Add(entities.SourceEnvironment, NewEnvironmentProvider(cfg.Env, envVar))
	if cfg.KeyFile != nil {
		chain.Add(entities.SourceKeyFile, NewKeyFileProvider(cfg.Env, envVar, cfg.KeyFile, cfg.KeyFileDir, logger))
	}
	if cfg.HostConfig != nil {
		chain.Add(entities.SourceHostConfig, NewHostConfigProvider(cfg.HostConfig, configKey, logger))
	}
	return chain
}
