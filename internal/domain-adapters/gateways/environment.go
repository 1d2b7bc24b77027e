package gateways

import (
	"os"
	"sync"

	"github.com/pivvenit/acf-pro-installer/internal/domain/interfaces"
)

// osEnvironment reads and writes the real process environment
type osEnvironment struct{}

// NewOSEnvironment returns the process environment
func NewOSEnvironment() interfaces.Environment {
	return osEnvironment{}
}

func (osEnvironment) Lookup(name string) (string, bool) {
	return os.LookupEnv(name)
}

func (osEnvironment) Setenv(name, value string) error {
	return os.Setenv(name, value)
}

// MapEnvironment is an in-memory environment, isolated from the process
type MapEnvironment struct {
	mu   sync.RWMutex
	vars map[string]string
}

// NewMapEnvironment creates an environment seeded with vars
func NewMapEnvironment(vars map[string]string) *MapEnvironment {
	m := &MapEnvironment{vars: make(map[string]string, len(vars))}
	for k, v := range vars {
		m.vars[k] = v
	}
	return m
}

// Lookup returns the value of name and whether it is set
func (m *MapEnvironment) Lookup(name string) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.vars[name]
	return v, ok
}

// Setenv sets name to value
func (m *MapEnvironment) Setenv(name, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.vars[name] = value
	return nil
}
