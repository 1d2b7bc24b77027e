// Package entities holds the value types shared by the download interception pipeline.
package entities

import (
	"net/url"
	"strings"
)

// TargetPackage identifies the one package whose downloads get a license key
type TargetPackage struct {
	Name        string
	DownloadURL string // matched as a substring of the processed URL
}

// ACFPro is the Advanced Custom Fields PRO package descriptor
var ACFPro = TargetPackage{
	Name:        "advanced-custom-fields/advanced-custom-fields-pro",
	DownloadURL: "https://connect.advancedcustomfields.com/index.php?p=pro&a=download",
}

const (
	// LicenseKeyParam is the query parameter that carries the license key
	LicenseKeyParam = "k"

	// DefaultKeyEnvVar is the environment variable that holds the license key
	DefaultKeyEnvVar = "ACF_PRO_KEY"

	// DefaultHostConfigKey is the host configuration entry that holds the license key
	DefaultHostConfigKey = "acf-pro-key"

	// URLMutableAPIVersion is the first host plugin API whose pre-download
	// event lets the URL be replaced in place
	URLMutableAPIVersion = "2.0.0"
)

// LicenseKeySource names the provider that supplied a license key
type LicenseKeySource string

const (
	SourceNone        LicenseKeySource = ""
	SourceEnvironment LicenseKeySource = "environment"
	SourceKeyFile     LicenseKeySource = "key-file"
	SourceHostConfig  LicenseKeySource = "host-config"
)

// MaskKey hides all but the first and last two characters of a key.
// Keys of four characters or fewer are fully masked.
func MaskKey(key string) string {
	if len(key) <= 4 {
		return strings.Repeat("*", len(key))
	}
	return key[:2] + strings.Repeat("*", len(key)-4) + key[len(key)-2:]
}

// MaskURLKey masks the value of every license key parameter in rawURL.
// Nothing else in the URL is touched.
func MaskURLKey(rawURL string) string {
	base, fragment, hasFragment := strings.Cut(rawURL, "#")
	base, query, hasQuery := strings.Cut(base, "?")
	if !hasQuery {
		return rawURL
	}

	pairs := strings.Split(query, "&")
	for i, pair := range pairs {
		name, value, ok := strings.Cut(pair, "=")
		if !ok || name != LicenseKeyParam {
			continue
		}
		if key, err := url.QueryUnescape(value); err == nil {
			value = key
		}
		pairs[i] = name + "=" + MaskKey(value)
	}

	masked := base + "?" + strings.Join(pairs, "&")
	if hasFragment {
		masked += "#" + fragment
	}
	return masked
}
