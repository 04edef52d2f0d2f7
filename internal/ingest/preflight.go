package ingest

import (
	"errors"
	"fmt"

	"github.com/gyeh/tanshu3/internal/model"
	"github.com/gyeh/tanshu3/internal/normalize"
)

// ErrNoFiles is returned when a batch has nothing to evaluate.
var ErrNoFiles = errors.New("no EF files supplied")

// Preflight hashes every source and records its size. It fails fast on the
// first source that cannot be opened.
func Preflight(sources []Source) ([]model.FileStats, error) {
	if len(sources) == 0 {
		return nil, ErrNoFiles
	}
	stats := make([]model.FileStats, len(sources))
	for i, src := range sources {
		sha, size, err := hashSource(src)
		if err != nil {
			return nil, fmt.Errorf("preflight %s: %w", src.Name, err)
		}
		stats[i] = model.FileStats{
			Path:      src.displayPath(),
			SHA256:    sha,
			SizeBytes: size,
		}
	}
	return stats, nil
}

func hashSource(src Source) (string, int64, error) {
	if src.Path != "" {
		return normalize.FileHash(src.Path)
	}
	rc, err := src.Open()
	if err != nil {
		return "", 0, err
	}
	defer rc.Close()
	return normalize.HashReader(rc)
}

func (s Source) displayPath() string {
	if s.Path != "" {
		return s.Path
	}
	return s.Name
}
