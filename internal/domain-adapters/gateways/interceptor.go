// Package gateways provides implementations of domain gateway interfaces.
package gateways

import (
	"errors"
	"fmt"

	"github.com/Masterminds/semver/v3"

	"github.com/pivvenit/acf-pro-installer/internal/domain/entities"
	"github.com/pivvenit/acf-pro-installer/internal/domain/interfaces/gateways"
)

// ErrUnsupportedEvent is returned when an event lacks the shape an interceptor needs
var ErrUnsupportedEvent = errors.New("unsupported pre-download event")

// urlMutableSince is the first host plugin API that lets the URL be replaced in place
var urlMutableSince = semver.MustParse(entities.URLMutableAPIVersion)

// TransportFactory builds a transport from the settings of the one it replaces
type TransportFactory func(options entities.TransportOptions, tlsDisabled bool) gateways.Transport

// DefaultTransportFactory builds plain HTTP transports
func DefaultTransportFactory(options entities.TransportOptions, tlsDisabled bool) gateways.Transport {
	return NewHTTPTransport(options, tlsDisabled)
}

// TransportReplacingInterceptor swaps the event's transport for one that
// fetches the rewritten URL. Hosts before plugin API 2.0 need this.
type TransportReplacingInterceptor struct {
	newTransport TransportFactory
}

// NewTransportReplacingInterceptor creates the legacy interceptor; a nil
// factory uses DefaultTransportFactory
func NewTransportReplacingInterceptor(factory TransportFactory) *TransportReplacingInterceptor {
	if factory == nil {
		factory = DefaultTransportFactory
	}
	return &TransportReplacingInterceptor{newTransport: factory}
}

// Intercept installs a transport bound to url, keeping the current options and TLS setting
func (i *TransportReplacingInterceptor) Intercept(event gateways.PreDownloadEvent, url string) error {
	te, ok := event.(gateways.TransportEvent)
	if !ok {
		return fmt.Errorf("%w: transport cannot be replaced", ErrUnsupportedEvent)
	}

	current := te.Transport()
	if current == nil {
		return fmt.Errorf("%w: event has no transport", ErrUnsupportedEvent)
	}

	base := i.newTransport(current.Options(), current.TLSDisabled())
	te.SetTransport(NewRewriteURLTransport(base, url))
	return nil
}

// URLRewritingInterceptor replaces the event's processed URL
type URLRewritingInterceptor struct{}

// NewURLRewritingInterceptor creates the interceptor for plugin API 2.0 and later
func NewURLRewritingInterceptor() *URLRewritingInterceptor {
	return &URLRewritingInterceptor{}
}

// Intercept sets the processed URL to url
func (i *URLRewritingInterceptor) Intercept(event gateways.PreDownloadEvent, url string) error {
	me, ok := event.(gateways.URLMutableEvent)
	if !ok {
		return fmt.Errorf("%w: processed URL cannot be replaced", ErrUnsupportedEvent)
	}
	me.SetProcessedURL(url)
	return nil
}

// NewDownloadInterceptor picks the interceptor matching the host plugin API version
func NewDownloadInterceptor(apiVersion string, factory TransportFactory) (gateways.DownloadInterceptor, error) {
	v, err := semver.NewVersion(apiVersion)
	if err != nil {
		return nil, fmt.Errorf("invalid plugin API version %q: %w", apiVersion, err)
	}

	if v.LessThan(urlMutableSince) {
		return NewTransportReplacingInterceptor(factory), nil
	}
	return NewURLRewritingInterceptor(), nil
}
