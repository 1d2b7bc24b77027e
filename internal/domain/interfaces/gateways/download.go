// Package gateways defines interfaces for external service adapters.
package gateways

import (
	"context"
	"io"

	"github.com/pivvenit/acf-pro-installer/internal/domain/entities"
)

// Transport fetches the bytes behind a URL on behalf of the host
type Transport interface {
	// Options returns the settings the transport was built with
	Options() entities.TransportOptions

	// TLSDisabled reports whether certificate verification is switched off
	TLSDisabled() bool

	// Fetch streams the body of url into w and returns the number of bytes written
	Fetch(ctx context.Context, url string, w io.Writer) (int64, error)
}

// PreDownloadEvent is the host notification fired before a file transfer starts
type PreDownloadEvent interface {
	// ProcessedURL returns the URL the host is about to download
	ProcessedURL() string
}

// TransportEvent is the legacy event shape: the URL is read-only but the
// transport that will perform the download can be swapped out.
type TransportEvent interface {
	PreDownloadEvent
	Transport() Transport
	SetTransport(t Transport)
}

// URLMutableEvent is the current event shape: the URL is replaced in place
type URLMutableEvent interface {
	PreDownloadEvent
	SetProcessedURL(url string)
}

// DownloadInterceptor installs a rewritten URL into a pre-download event
type DownloadInterceptor interface {
	Intercept(event PreDownloadEvent, url string) error
}
