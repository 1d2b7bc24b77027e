// Package repositories defines interfaces for data access layers.
package repositories

// HostConfig reads named values from the host package manager's configuration
type HostConfig interface {
	// Get returns the value stored under key. ok is false when the key is
	// absent; err is only set when the configuration could not be read.
	Get(key string) (value string, ok bool, err error)
}
