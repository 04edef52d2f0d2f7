package ingest

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
)

// Source is one EF input. Sources are processed in the order given, which
// must be the upload order: later files win on confirmed discharge dates.
type Source struct {
	Name string
	Path string // empty for in-memory sources
	Open func() (io.ReadCloser, error)
}

// FileSource reads an EF file from disk.
func FileSource(path string) Source {
	return Source{
		Name: filepath.Base(path),
		Path: path,
		Open: func() (io.ReadCloser, error) { return os.Open(path) },
	}
}

// BytesSource serves an already-uploaded file from memory.
func BytesSource(name string, data []byte) Source {
	return Source{
		Name: name,
		Open: func() (io.ReadCloser, error) { return io.NopCloser(bytes.NewReader(data)), nil },
	}
}

// FileSources maps paths to sources, keeping their order.
func FileSources(paths []string) []Source {
	out := make([]Source, len(paths))
	for i, p := range paths {
		out[i] = FileSource(p)
	}
	return out
}
