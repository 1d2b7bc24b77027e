package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/pivvenit/acf-pro-installer/internal/config"
	adapters "github.com/pivvenit/acf-pro-installer/internal/domain-adapters/gateways"
	orchestrators "github.com/pivvenit/acf-pro-installer/internal/domain-orchestrators"
	"github.com/pivvenit/acf-pro-installer/internal/domain/entities"
	"github.com/pivvenit/acf-pro-installer/internal/domain/interfaces"
	domainGateways "github.com/pivvenit/acf-pro-installer/internal/domain/interfaces/gateways"
	"github.com/pivvenit/acf-pro-installer/internal/domain/services"
	"github.com/pivvenit/acf-pro-installer/internal/external-adapters/composer"
	"github.com/pivvenit/acf-pro-installer/internal/external-adapters/dotenv"
	"github.com/pivvenit/acf-pro-installer/internal/external-adapters/host"
	"github.com/pivvenit/acf-pro-installer/internal/external-adapters/yaml"
	"github.com/pivvenit/acf-pro-installer/internal/external-adapters/zaplog"
)

// app is the wired plugin together with the host that drives it
type app struct {
	cfg        *config.Config
	logger     *zaplog.Logger
	keys       *services.ProviderChain
	dispatcher *host.Dispatcher
	progress   io.Writer
}

// newApp loads configuration and wires the plugin into a host. Transports
// created for downloads report progress to progress when it is not nil.
func newApp(cmd *cobra.Command, opts *globalOptions, env interfaces.Environment, progress io.Writer) (*app, error) {
	workDir := opts.workDir
	if workDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to determine working directory: %w", err)
		}
		workDir = wd
	}

	cfg, err := config.Load(env, workDir, opts.settingsFile)
	if err != nil {
		return nil, err
	}
	opts.override(cmd, cfg)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	logger, err := zaplog.New(cfg.LogLevel, cmd.ErrOrStderr())
	if err != nil {
		return nil, err
	}

	hostConfig := adapters.NewCompositeHostConfig(
		composer.NewDefaultConfig(env, workDir),
		yaml.NewHostConfig(cfg.HostConfig),
	)
	keys := services.NewDefaultProviderChain(services.ProviderChainConfig{
		Env:        env,
		EnvVar:     cfg.EnvVar,
		KeyFile:    dotenv.NewLoader(env, cfg.EnvFile),
		KeyFileDir: workDir,
		HostConfig: hostConfig,
		ConfigKey:  cfg.ConfigKey,
		Logger:     logger,
	})

	a := &app{cfg: cfg, logger: logger, keys: keys, progress: progress}

	interceptor, err := adapters.NewDownloadInterceptor(cfg.PluginAPIVersion, a.newTransport)
	if err != nil {
		return nil, err
	}
	orchestrator := orchestrators.NewDownloadOrchestrator(
		services.NewDownloadMatcher(entities.ACFPro),
		keys,
		services.NewURLAppender(),
		interceptor,
		orchestrators.DownloadOrchestratorConfig{
			Target: entities.ACFPro,
			EnvVar: cfg.EnvVar,
			Logger: logger,
		},
	)

	dispatcher, err := host.NewDispatcher(cfg.PluginAPIVersion, logger)
	if err != nil {
		return nil, err
	}
	dispatcher.Subscribe(orchestrator)
	a.dispatcher = dispatcher

	logger.Debug("Plugin activated",
		interfaces.F("api_version", dispatcher.APIVersion()),
		interfaces.F("key_sources", keys.Sources()),
		interfaces.F("workdir", workDir),
	)
	return a, nil
}

// newTransport builds the host's download transport
func (a *app) newTransport(options entities.TransportOptions, tlsDisabled bool) domainGateways.Transport {
	if a.progress == nil {
		return adapters.NewHTTPTransport(options, tlsDisabled)
	}
	return adapters.NewHTTPTransport(options, tlsDisabled, adapters.WithProgress(a.progress))
}

// transport returns the transport the host starts every download with
func (a *app) transport() domainGateways.Transport {
	return a.newTransport(a.cfg.TransportOptions(), a.cfg.Insecure)
}

func (a *app) close() {
	//nolint:errcheck // syncing stderr fails on some terminals
	a.logger.Sync()
}
