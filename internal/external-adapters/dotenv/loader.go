// Package dotenv loads .env key files into an environment.
package dotenv

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"

	"github.com/pivvenit/acf-pro-installer/internal/domain/interfaces"
)

// DefaultFilename is the key file looked up in the working directory
const DefaultFilename = ".env"

// Loader implements interfaces.KeyFileLoader on top of godotenv
type Loader struct {
	env      interfaces.Environment
	filename string
}

// NewLoader creates a loader that writes into env. An empty filename means .env;
// an absolute filename ignores the directory passed to Load.
func NewLoader(env interfaces.Environment, filename string) *Loader {
	if filename == "" {
		filename = DefaultFilename
	}
	return &Loader{env: env, filename: filename}
}

// Path returns the key file location for dir
func (l *Loader) Path(dir string) string {
	if filepath.IsAbs(l.filename) {
		return l.filename
	}
	return filepath.Join(dir, l.filename)
}

// Load copies the key file's variables into the environment, skipping any
// that are already set. A missing file is not an error.
func (l *Loader) Load(dir string) error {
	path := l.Path(dir)
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return nil
	}

	vars, err := godotenv.Read(path)
	if err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}

	for name, value := range vars {
		if _, set := l.env.Lookup(name); set {
			continue
		}
		if err := l.env.Setenv(name, value); err != nil {
			return fmt.Errorf("failed to set %s: %w", name, err)
		}
	}
	return nil
}
