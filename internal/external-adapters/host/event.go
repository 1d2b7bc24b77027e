// Package host is a minimal package-manager host: it fires pre-download
// events at subscribed plugins and then downloads through whatever transport
// and URL the plugins left in the event.
package host

import "github.com/pivvenit/acf-pro-installer/internal/domain/interfaces/gateways"

// legacyEvent is the pre-download event of plugin API 1.x
type legacyEvent struct {
	processedURL string
	transport    gateways.Transport
}

func (e *legacyEvent) ProcessedURL() string { return e.processedURL }

func (e *legacyEvent) Transport() gateways.Transport { return e.transport }

func (e *legacyEvent) SetTransport(t gateways.Transport) { e.transport = t }

// event is the pre-download event of plugin API 2.x
type event struct {
	processedURL string
}

func (e *event) ProcessedURL() string { return e.processedURL }

func (e *event) SetProcessedURL(url string) { e.processedURL = url }
