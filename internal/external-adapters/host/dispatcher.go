package host

import (
	"context"
	"fmt"
	"io"

	"github.com/Masterminds/semver/v3"

	"github.com/pivvenit/acf-pro-installer/internal/domain/entities"
	"github.com/pivvenit/acf-pro-installer/internal/domain/interfaces"
	"github.com/pivvenit/acf-pro-installer/internal/domain/interfaces/gateways"
)

// PluginAPIVersion is the newest plugin API this host speaks
const PluginAPIVersion = entities.URLMutableAPIVersion

var urlMutableSince = semver.MustParse(entities.URLMutableAPIVersion)

// Subscriber handles pre-download events
type Subscriber interface {
	OnPreFileDownload(ctx context.Context, event gateways.PreDownloadEvent) error
}

// Prepared is a download after every subscriber has seen it
type Prepared struct {
	// RequestedURL is the URL the host was asked for; it is what a lock file records
	RequestedURL string
	// URL is the URL the transport will actually fetch
	URL       string
	Transport gateways.Transport
}

// urlBound is implemented by transports that ignore the URL they are given
type urlBound interface {
	URL() string
}

// Dispatcher fires pre-download events shaped for one plugin API version
type Dispatcher struct {
	apiVersion  *semver.Version
	subscribers []Subscriber
	logger      interfaces.Logger
}

// NewDispatcher creates a dispatcher speaking the given plugin API version
func NewDispatcher(apiVersion string, logger interfaces.Logger) (*Dispatcher, error) {
	v, err := semver.NewVersion(apiVersion)
	if err != nil {
		return nil, fmt.Errorf("invalid plugin API version %q: %w", apiVersion, err)
	}
	if logger == nil {
		logger = &interfaces.NoOpLogger{}
	}
	return &Dispatcher{apiVersion: v, logger: logger}, nil
}

// APIVersion returns the plugin API version in use
func (d *Dispatcher) APIVersion() string {
	return d.apiVersion.String()
}

// Subscribe registers s for pre-download events
func (d *Dispatcher) Subscribe(s Subscriber) {
	d.subscribers = append(d.subscribers, s)
}

// Prepare fires the pre-download event for url and returns what will be fetched.
// The first subscriber error aborts the download.
func (d *Dispatcher) Prepare(ctx context.Context, url string, transport gateways.Transport) (*Prepared, error) {
	p := &Prepared{RequestedURL: url}

	if d.apiVersion.LessThan(urlMutableSince) {
		e := &legacyEvent{processedURL: url, transport: transport}
		if err := d.dispatch(ctx, e); err != nil {
			return nil, err
		}
		p.URL, p.Transport = e.processedURL, e.transport
	} else {
		e := &event{processedURL: url}
		if err := d.dispatch(ctx, e); err != nil {
			return nil, err
		}
		p.URL, p.Transport = e.processedURL, transport
	}

	if b, ok := p.Transport.(urlBound); ok {
		p.URL = b.URL()
	}
	return p, nil
}

// Download prepares url and streams it into w
func (d *Dispatcher) Download(ctx context.Context, url string, transport gateways.Transport, w io.Writer) (int64, error) {
	p, err := d.Prepare(ctx, url, transport)
	if err != nil {
		return 0, err
	}
	return p.Transport.Fetch(ctx, p.URL, w)
}

func (d *Dispatcher) dispatch(ctx context.Context, e gateways.PreDownloadEvent) error {
	d.logger.Debug("Dispatching pre-download event",
		interfaces.F("api_version", d.apiVersion.String()),
		interfaces.F("subscribers", len(d.subscribers)),
	)
	for _, s := range d.subscribers {
		if err := s.OnPreFileDownload(ctx, e); err != nil {
			return fmt.Errorf("pre-download event: %w", err)
		}
	}
	return nil
}
