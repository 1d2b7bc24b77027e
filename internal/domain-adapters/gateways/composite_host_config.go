package gateways

import (
	"github.com/pivvenit/acf-pro-installer/internal/domain/interfaces/repositories"
)

// compositeHostConfig implements the HostConfig interface by asking each
// source in turn; the first one holding the key wins
type compositeHostConfig struct {
	sources []repositories.HostConfig
}

// NewCompositeHostConfig creates a host configuration over sources, in order.
// Nil sources are skipped.
func NewCompositeHostConfig(sources ...repositories.HostConfig) repositories.HostConfig {
	c := &compositeHostConfig{}
	for _, s := range sources {
		if s != nil {
			c.sources = append(c.sources, s)
		}
	}
	return c
}

// Get returns the first value found for key. A failing source aborts the
// lookup so that a broken file is reported instead of silently skipped.
func (c *compositeHostConfig) Get(key string) (string, bool, error) {
	for _, s := range c.sources {
		value, ok, err := s.Get(key)
		if err != nil {
			return "", false, err
		}
		if ok {
			return value, true, nil
		}
	}
	return "", false, nil
}
