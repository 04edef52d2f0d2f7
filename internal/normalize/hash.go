package normalize

import (
	"crypto/sha256"
	"fmt"
	"io"
	"os"
)

// FileHash computes the hex-encoded SHA-256 and size of the file at path.
func FileHash(path string) (string, int64, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", 0, fmt.Errorf("open file for hash: %w", err)
	}
	defer f.Close()
	return HashReader(f)
}

// HashReader consumes r and returns its hex-encoded SHA-256 and byte count.
func HashReader(r io.Reader) (string, int64, error) {
	h := sha256.New()
	n, err := io.Copy(h, r)
	if err != nil {
		return "", n, fmt.Errorf("hash input: %w", err)
	}
	return fmt.Sprintf("%x", h.Sum(nil)), n, nil
}
