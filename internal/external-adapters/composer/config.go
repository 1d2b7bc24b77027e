// Package composer reads host configuration from Composer's JSON files.
package composer

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/tidwall/gjson"

	"github.com/pivvenit/acf-pro-installer/internal/domain/interfaces"
)

// Config implements repositories.HostConfig over the "config" section of
// Composer JSON files. Earlier files take precedence.
type Config struct {
	paths []string
}

// NewConfig creates a reader for the given files, in precedence order
func NewConfig(paths ...string) *Config {
	return &Config{paths: paths}
}

// NewDefaultConfig reads the project's composer.json in workDir, then the
// global config.json in COMPOSER_HOME
func NewDefaultConfig(env interfaces.Environment, workDir string) *Config {
	paths := []string{filepath.Join(workDir, "composer.json")}
	if home := Home(env); home != "" {
		paths = append(paths, filepath.Join(home, "config.json"))
	}
	return NewConfig(paths...)
}

// Home returns Composer's home directory: COMPOSER_HOME when set,
// otherwise the conventional location under the user's home
func Home(env interfaces.Environment) string {
	if home, ok := env.Lookup("COMPOSER_HOME"); ok && home != "" {
		return home
	}
	if xdg, ok := env.Lookup("XDG_CONFIG_HOME"); ok && xdg != "" {
		return filepath.Join(xdg, "composer")
	}
	userHome, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(userHome, ".composer")
}

// Paths returns the files consulted, in precedence order
func (c *Config) Paths() []string {
	return append([]string(nil), c.paths...)
}

// Get returns config.<key> from the first file that defines it
func (c *Config) Get(key string) (string, bool, error) {
	path := "config." + gjson.Escape(key)

	for _, file := range c.paths {
		//nolint:gosec // G304: file is a Composer configuration path
		data, err := os.ReadFile(file)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return "", false, fmt.Errorf("failed to read %s: %w", file, err)
		}
		if !gjson.ValidBytes(data) {
			return "", false, fmt.Errorf("invalid JSON in %s", file)
		}

		result := gjson.GetBytes(data, path)
		if !result.Exists() || result.Type == gjson.Null {
			continue
		}
		return result.String(), true, nil
	}
	return "", false, nil
}
