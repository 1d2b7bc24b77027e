package gateways

import (
	"context"
	"io"

	"github.com/pivvenit/acf-pro-installer/internal/domain/interfaces/gateways"
)

// RewriteURLTransport fetches a fixed URL whatever URL the host asks for.
// It is installed in place of the host transport when the event URL itself
// cannot be changed, so the key never reaches the host's lock file.
type RewriteURLTransport struct {
	gateways.Transport
	url string
}

// NewRewriteURLTransport wraps inner so that every fetch goes to url
func NewRewriteURLTransport(inner gateways.Transport, url string) *RewriteURLTransport {
	return &RewriteURLTransport{Transport: inner, url: url}
}

// URL returns the URL this transport always fetches
func (t *RewriteURLTransport) URL() string {
	return t.url
}

// Fetch ignores the requested URL and downloads the rewritten one
func (t *RewriteURLTransport) Fetch(ctx context.Context, _ string, w io.Writer) (int64, error) {
	return t.Transport.Fetch(ctx, t.url, w)
}
