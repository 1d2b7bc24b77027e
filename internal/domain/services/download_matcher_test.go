package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pivvenit/acf-pro-installer/internal/domain/entities"
)

func TestDownloadMatcher_Matches(t *testing.T) {
	m := NewDownloadMatcher(entities.ACFPro)

	tests := []struct {
		name string
		url  string
		want bool
	}{
		{name: "exact endpoint", url: entities.ACFPro.DownloadURL, want: true},
		{name: "endpoint with version", url: entities.ACFPro.DownloadURL + "&t=5.8.7", want: true},
		{name: "endpoint with leading redirect", url: "https://proxy.example.com/?to=" + entities.ACFPro.DownloadURL, want: true},
		{name: "endpoint with key already", url: entities.ACFPro.DownloadURL + "&k=OLD&t=6.0.0", want: true},
		{name: "other host", url: "https://other.example.com/file.zip", want: false},
		{name: "same host other action", url: "https://connect.advancedcustomfields.com/index.php?p=pro&a=info", want: false},
		{name: "http scheme", url: "http://connect.advancedcustomfields.com/index.php?p=pro&a=download", want: false},
		{name: "empty", url: "", want: false},
		{name: "malformed", url: "%%%::not a url\x00", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, m.Matches(tt.url))
		})
	}
}

func TestDownloadMatcher_CustomTarget(t *testing.T) {
	target := entities.TargetPackage{Name: "acme/pro", DownloadURL: "https://connect.example.com/index.php?p=pro&a=download"}
	m := NewDownloadMatcher(target)

	assert.True(t, m.Matches("https://connect.example.com/index.php?p=pro&a=download"))
	assert.False(t, m.Matches(entities.ACFPro.DownloadURL))
}

func TestDownloadMatcher_EmptyTargetMatchesNothing(t *testing.T) {
	m := NewDownloadMatcher(entities.TargetPackage{})

	assert.False(t, m.Matches("https://example.com"))
	assert.False(t, m.Matches(""))
}
