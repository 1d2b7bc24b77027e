package host

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	adapters "github.com/pivvenit/acf-pro-installer/internal/domain-adapters/gateways"
	orchestrators "github.com/pivvenit/acf-pro-installer/internal/domain-orchestrators"
	"github.com/pivvenit/acf-pro-installer/internal/domain/entities"
	"github.com/pivvenit/acf-pro-installer/internal/domain/interfaces/gateways"
	"github.com/pivvenit/acf-pro-installer/internal/domain/services"
)

type subscriberFunc func(ctx context.Context, e gateways.PreDownloadEvent) error

func (f subscriberFunc) OnPreFileDownload(ctx context.Context, e gateways.PreDownloadEvent) error {
	return f(ctx, e)
}

// newServer serves a package zip and records the query it was asked for
func newServer(t *testing.T) (*httptest.Server, *string) {
	t.Helper()
	var query string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		query = r.URL.RawQuery
		_, _ = w.Write([]byte("PK\x03\x04"))
	}))
	t.Cleanup(srv.Close)
	return srv, &query
}

func newPlugin(t *testing.T, target entities.TargetPackage, apiVersion string, env map[string]string) Subscriber {
	t.Helper()
	interceptor, err := adapters.NewDownloadInterceptor(apiVersion, nil)
	require.NoError(t, err)
	return orchestrators.NewDownloadOrchestrator(
		services.NewDownloadMatcher(target),
		services.NewDefaultProviderChain(services.ProviderChainConfig{Env: adapters.NewMapEnvironment(env)}),
		services.NewURLAppender(),
		interceptor,
		orchestrators.DownloadOrchestratorConfig{Target: target},
	)
}

func TestDispatcher_EventShapeFollowsAPIVersion(t *testing.T) {
	tests := []struct {
		version    string
		wantLegacy bool
	}{
		{version: "1.1.0", wantLegacy: true},
		{version: "2.0.0", wantLegacy: false},
		{version: "2.6", wantLegacy: false},
	}

	for _, tt := range tests {
		t.Run(tt.version, func(t *testing.T) {
			d, err := NewDispatcher(tt.version, nil)
			require.NoError(t, err)

			var legacy, mutable bool
			d.Subscribe(subscriberFunc(func(_ context.Context, e gateways.PreDownloadEvent) error {
				_, legacy = e.(gateways.TransportEvent)
				_, mutable = e.(gateways.URLMutableEvent)
				return nil
			}))

			_, err = d.Prepare(context.Background(), "https://example.com/a.zip", adapters.NewHTTPTransport(entities.TransportOptions{}, false))
			require.NoError(t, err)
			assert.Equal(t, tt.wantLegacy, legacy)
			assert.Equal(t, !tt.wantLegacy, mutable)
		})
	}
}

func TestDispatcher_EventFitsInterceptorAroundThreshold(t *testing.T) {
	for _, version := range []string{"1.99.9", "2.0.0-rc1", entities.URLMutableAPIVersion, "2.1.0"} {
		t.Run(version, func(t *testing.T) {
			d, err := NewDispatcher(version, nil)
			require.NoError(t, err)
			interceptor, err := adapters.NewDownloadInterceptor(version, nil)
			require.NoError(t, err)

			d.Subscribe(subscriberFunc(func(_ context.Context, e gateways.PreDownloadEvent) error {
				return interceptor.Intercept(e, "https://example.com/a.zip?k=KEY")
			}))

			p, err := d.Prepare(context.Background(), "https://example.com/a.zip", adapters.NewHTTPTransport(entities.TransportOptions{}, false))
			require.NoError(t, err)
			assert.Equal(t, "https://example.com/a.zip?k=KEY", p.URL)
		})
	}
}

func TestDispatcher_InvalidVersion(t *testing.T) {
	_, err := NewDispatcher("two", nil)
	assert.Error(t, err)
}

func TestDispatcher_DownloadWithPlugin(t *testing.T) {
	for _, version := range []string{"1.1.0", "2.0.0"} {
		t.Run(version, func(t *testing.T) {
			srv, query := newServer(t)
			target := entities.TargetPackage{Name: "acme/pro", DownloadURL: srv.URL + "/index.php?p=pro&a=download"}

			d, err := NewDispatcher(version, nil)
			require.NoError(t, err)
			d.Subscribe(newPlugin(t, target, version, map[string]string{"ACF_PRO_KEY": "ABC123"}))

			requested := target.DownloadURL + "&t=6.0.0"
			p, err := d.Prepare(context.Background(), requested, adapters.NewHTTPTransport(entities.TransportOptions{}, false))
			require.NoError(t, err)
			assert.Equal(t, requested, p.RequestedURL, "recorded URL must not carry the key")
			assert.Equal(t, requested+"&k=ABC123", p.URL)

			var buf bytes.Buffer
			n, err := d.Download(context.Background(), requested, adapters.NewHTTPTransport(entities.TransportOptions{}, false), &buf)
			require.NoError(t, err)
			assert.Equal(t, int64(4), n)
			assert.Equal(t, "p=pro&a=download&t=6.0.0&k=ABC123", *query)
		})
	}
}

func TestDispatcher_OtherDownloadsUntouched(t *testing.T) {
	srv, query := newServer(t)
	d, err := NewDispatcher(PluginAPIVersion, nil)
	require.NoError(t, err)
	d.Subscribe(newPlugin(t, entities.ACFPro, PluginAPIVersion, nil))

	_, err = d.Download(context.Background(), srv.URL+"/file.zip?v=1", adapters.NewHTTPTransport(entities.TransportOptions{}, false), &bytes.Buffer{})

	require.NoError(t, err)
	assert.Equal(t, "v=1", *query)
}

func TestDispatcher_SubscriberErrorAbortsDownload(t *testing.T) {
	srv, query := newServer(t)
	target := entities.TargetPackage{Name: "acme/pro", DownloadURL: srv.URL + "/index.php?p=pro&a=download"}
	d, err := NewDispatcher(PluginAPIVersion, nil)
	require.NoError(t, err)
	d.Subscribe(newPlugin(t, target, PluginAPIVersion, nil))

	_, err = d.Download(context.Background(), target.DownloadURL, adapters.NewHTTPTransport(entities.TransportOptions{}, false), &bytes.Buffer{})

	require.Error(t, err)
	assert.ErrorIs(t, err, entities.ErrMissingKey)
	assert.Empty(t, *query, "nothing may be downloaded without a key")
}

func TestDispatcher_StopsAtFirstError(t *testing.T) {
	d, err := NewDispatcher(PluginAPIVersion, nil)
	require.NoError(t, err)

	boom := errors.New("boom")
	called := false
	d.Subscribe(subscriberFunc(func(context.Context, gateways.PreDownloadEvent) error { return boom }))
	d.Subscribe(subscriberFunc(func(context.Context, gateways.PreDownloadEvent) error {
		called = true
		return nil
	}))

	_, err = d.Prepare(context.Background(), "https://example.com", nil)

	assert.ErrorIs(t, err, boom)
	assert.False(t, called)
	assert.Equal(t, "2.0.0", d.APIVersion())
}
