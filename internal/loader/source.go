package loader

import (
	"errors"
	"io/fs"
	"os"
)

var (
	// ErrNotFound is returned by MemorySource for unknown paths.
	ErrNotFound = errors.New("file not found")
	// ErrNotUTF8 is returned when a file's contents are not valid UTF-8 text.
	ErrNotUTF8 = errors.New("file is not valid UTF-8")
)

// Source provides file contents by path.
type Source interface {
	ReadFile(path string) ([]byte, error)
}

// OSSource reads from the local filesystem.
type OSSource struct{}

// ReadFile implements Source.
func (OSSource) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

// MemorySource serves file contents from memory. It is read-only after
// construction, so concurrent reads need no locking.
type MemorySource struct {
	files map[string][]byte
}

// NewMemorySource initialises a source with a copy of files.
func NewMemorySource(files map[string]string) *MemorySource {
	s := &MemorySource{files: make(map[string][]byte, len(files))}
	for path, text := range files {
		s.files[path] = []byte(text)
	}
	return s
}

// ReadFile returns a copy of the stored contents.
func (s *MemorySource) ReadFile(path string) ([]byte, error) {
	data, ok := s.files[path]
	if !ok {
		return nil, &fs.PathError{Op: "open", Path: path, Err: ErrNotFound}
	}
	out := make([]byte, len(data))
	copy(out, data)
	return out, nil
}
