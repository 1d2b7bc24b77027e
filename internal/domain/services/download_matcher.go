package services

import (
	"strings"

	"github.com/pivvenit/acf-pro-installer/internal/domain/entities"
	"github.com/pivvenit/acf-pro-installer/internal/domain/interfaces/services"
)

// downloadMatcher implements DownloadMatcher with a substring test
type downloadMatcher struct {
	target entities.TargetPackage
}

// NewDownloadMatcher creates a matcher for the given package
func NewDownloadMatcher(target entities.TargetPackage) services.DownloadMatcher {
	return &downloadMatcher{target: target}
}

// Matches reports whether url contains the target's download endpoint.
// Redirects may add components on either side, so the URL is not parsed.
func (m *downloadMatcher) Matches(url string) bool {
	if m.target.DownloadURL == "" {
		return false
	}
	return strings.Contains(url, m.target.DownloadURL)
}
