package entities

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingKey matches any *MissingKeyError
	ErrMissingKey = errors.New("license key missing")

	// ErrMalformedURL matches any *MalformedURLError
	ErrMalformedURL = errors.New("malformed URL")
)

// MissingKeyError is returned when no provider could supply a license key.
// The download must not go ahead without one.
type MissingKeyError struct {
	EnvVar string
}

func (e *MissingKeyError) Error() string {
	return "Could not find a key for ACF PRO. " +
		"Please make it available via the environment variable " + e.EnvVar
}

// Is lets errors.Is(err, ErrMissingKey) succeed
func (e *MissingKeyError) Is(target error) bool {
	return target == ErrMissingKey
}

// MalformedURLError is returned when a URL cannot be split into scheme, host and path
type MalformedURLError struct {
	URL    string
	Reason string
	Err    error
}

func (e *MalformedURLError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("malformed URL %q: %s: %v", e.URL, e.Reason, e.Err)
	}
	return fmt.Sprintf("malformed URL %q: %s", e.URL, e.Reason)
}

func (e *MalformedURLError) Unwrap() error {
	return e.Err
}

// Is lets errors.Is(err, ErrMalformedURL) succeed
func (e *MalformedURLError) Is(target error) bool {
	return target == ErrMalformedURL
}
