package interfaces

// Environment is the process environment as seen by the license key providers.
// Tests swap in an isolated map instead of mutating real process state.
type Environment interface {
	// Lookup returns the value of name and whether it is set at all
	Lookup(name string) (string, bool)

	// Setenv sets name to value
	Setenv(name, value string) error
}

// KeyFileLoader loads KEY=VALUE pairs from a key file in dir into an Environment.
// Variables that are already set are never overwritten, and a missing
// file is not an error.
type KeyFileLoader interface {
	Load(dir string) error
}
