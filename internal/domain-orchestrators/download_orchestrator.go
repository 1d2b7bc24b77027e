// Package orchestrators coordinates the domain services that handle a download event.
package orchestrators

import (
	"context"
	"fmt"

	"github.com/pivvenit/acf-pro-installer/internal/domain/entities"
	"github.com/pivvenit/acf-pro-installer/internal/domain/interfaces"
	"github.com/pivvenit/acf-pro-installer/internal/domain/interfaces/gateways"
	"github.com/pivvenit/acf-pro-installer/internal/domain/interfaces/services"
)

// DownloadOrchestrator adds the license key to downloads of the target package.
// It is the plugin's pre-download event handler.
type DownloadOrchestrator struct {
	target      entities.TargetPackage
	matcher     services.DownloadMatcher
	keys        services.LicenseKeyResolver
	appender    services.URLAppender
	interceptor gateways.DownloadInterceptor
	envVar      string
	logger      interfaces.Logger
}

// DownloadOrchestratorConfig holds settings for the orchestrator
type DownloadOrchestratorConfig struct {
	Target entities.TargetPackage
	EnvVar string // named in the missing-key error
	Logger interfaces.Logger
}

// NewDownloadOrchestrator creates a new download orchestrator
func NewDownloadOrchestrator(
	matcher services.DownloadMatcher,
	keys services.LicenseKeyResolver,
	appender services.URLAppender,
	interceptor gateways.DownloadInterceptor,
	config DownloadOrchestratorConfig,
) *DownloadOrchestrator {
	logger := config.Logger
	if logger == nil {
		logger = &interfaces.NoOpLogger{}
	}
	target := config.Target
	if target.Name == "" {
		target = entities.ACFPro
	}
	envVar := config.EnvVar
	if envVar == "" {
		envVar = entities.DefaultKeyEnvVar
	}

	return &DownloadOrchestrator{
		target:      target,
		matcher:     matcher,
		keys:        keys,
		appender:    appender,
		interceptor: interceptor,
		envVar:      envVar,
		logger:      logger.With(interfaces.F("package", target.Name)),
	}
}

// OnPreFileDownload rewrites the event when it targets the package download.
// Other downloads pass through untouched and no provider is consulted.
func (o *DownloadOrchestrator) OnPreFileDownload(ctx context.Context, event gateways.PreDownloadEvent) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	url := event.ProcessedURL()
	if !o.matcher.Matches(url) {
		o.logger.Debug("Download does not match, passing through")
		return nil
	}

	key, source, ok := o.keys.Resolve()
	if !ok {
		o.logger.Error("No license key available")
		return &entities.MissingKeyError{EnvVar: o.envVar}
	}
	o.logger.Info("License key resolved",
		interfaces.F("source", string(source)),
		interfaces.F("key", entities.MaskKey(key)),
	)

	newURL, err := o.appender.Append(url, key)
	if err != nil {
		return err
	}

	if err := o.interceptor.Intercept(event, newURL); err != nil {
		return fmt.Errorf("failed to install rewritten download: %w", err)
	}
	o.logger.Debug("Download rewritten", interfaces.F("interceptor", fmt.Sprintf("%T", o.interceptor)))
	return nil
}
