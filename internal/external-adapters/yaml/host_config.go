package yaml

// HostConfig serves the settings file's host_config map as host configuration
type HostConfig struct {
	values map[string]string
}

// NewHostConfig creates a host configuration from values
func NewHostConfig(values map[string]string) *HostConfig {
	return &HostConfig{values: values}
}

// Get returns the value stored under key
func (c *HostConfig) Get(key string) (string, bool, error) {
	v, ok := c.values[key]
	return v, ok, nil
}
