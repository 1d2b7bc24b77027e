// Package services defines interfaces for domain service contracts.
package services

import "github.com/pivvenit/acf-pro-installer/internal/domain/entities"

// DownloadMatcher decides whether a URL is the target package's download endpoint
type DownloadMatcher interface {
	Matches(url string) bool
}

// LicenseKeyProvider supplies a license key from a single source.
// An empty value is reported as absent.
type LicenseKeyProvider interface {
	Provide() (string, bool)
}

// LicenseKeyResolver resolves a key through several providers and reports
// which source supplied it
type LicenseKeyResolver interface {
	Resolve() (string, entities.LicenseKeySource, bool)
}

// URLAppender merges a license key into a download URL
type URLAppender interface {
	Append(url, key string) (string, error)
}
