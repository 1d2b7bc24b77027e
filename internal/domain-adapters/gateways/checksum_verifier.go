package gateways

import (
	"context"
	"crypto/sha1" //nolint:gosec // G505: dist shasums are SHA-1
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"hash"
	"io"
	"os"
	"strings"
)

// ChecksumVerifier checks downloaded files against a dist checksum.
// The algorithm follows the digest length: 40 hex digits is SHA-1 as found
// in package metadata, 64 is SHA-256.
type ChecksumVerifier struct{}

// NewChecksumVerifier creates a new checksum verifier
func NewChecksumVerifier() *ChecksumVerifier {
	return &ChecksumVerifier{}
}

// VerifyChecksum verifies the file at filePath against expectedSum
func (v *ChecksumVerifier) VerifyChecksum(ctx context.Context, filePath, expectedSum string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	expectedSum = strings.ToLower(strings.TrimSpace(expectedSum))
	newHash, err := hashFor(expectedSum)
	if err != nil {
		return err
	}

	actualSum, err := checksumFile(filePath, newHash)
	if err != nil {
		return err
	}
	if actualSum != expectedSum {
		return fmt.Errorf("checksum mismatch: expected %s, got %s", expectedSum, actualSum)
	}
	return nil
}

// CalculateChecksum calculates the SHA-256 checksum of a file
func (v *ChecksumVerifier) CalculateChecksum(filePath string) (string, error) {
	return checksumFile(filePath, sha256.New)
}

func hashFor(digest string) (func() hash.Hash, error) {
	if _, err := hex.DecodeString(digest); err != nil {
		return nil, fmt.Errorf("invalid checksum %q: not hexadecimal", digest)
	}
	switch len(digest) {
	case 2 * sha1.Size:
		return sha1.New, nil
	case 2 * sha256.Size:
		return sha256.New, nil
	default:
		return nil, fmt.Errorf("invalid checksum %q: want 40 (SHA-1) or 64 (SHA-256) hex digits", digest)
	}
}

func checksumFile(filePath string, newHash func() hash.Hash) (string, error) {
	//nolint:gosec // G304: file path is the download target chosen by the user
	f, err := os.Open(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to open file: %w", err)
	}
	//nolint:errcheck // Defer close on read-only file
	defer f.Close()

	h := newHash()
	if _, err := io.Copy(h, f); err != nil {
		return "", fmt.Errorf("failed to hash file: %w", err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
