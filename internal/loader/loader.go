package loader

import (
	"context"
	"fmt"
	"unicode/utf8"
)

// Loader reads the text of one file. Implementations must be safe for
// concurrent use: every file of a run is loaded from its own goroutine.
type Loader interface {
	Load(ctx context.Context, path string) (string, error)
}

// Option configures a FileLoader.
type Option func(*FileLoader)

// WithRateLimit throttles load starts to ratePerSecond with the given burst.
// A non-positive rate disables throttling.
func WithRateLimit(ratePerSecond float64, burst int) Option {
	return func(l *FileLoader) {
		l.throttle = newTokenBucketThrottle(ratePerSecond, burst)
	}
}

// withThrottle overrides the throttle (tests).
func withThrottle(t throttle) Option {
	return func(l *FileLoader) {
		l.throttle = t
	}
}

// FileLoader loads files from a Source.
type FileLoader struct {
	source   Source
	throttle throttle
}

// New creates a FileLoader reading from source.
func New(source Source, opts ...Option) *FileLoader {
	if source == nil {
		source = OSSource{}
	}
	l := &FileLoader{source: source}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load waits for the throttle, if any, and returns the file's contents.
func (l *FileLoader) Load(ctx context.Context, path string) (string, error) {
	if l.throttle != nil {
		if err := l.throttle.Wait(ctx); err != nil {
			return "", fmt.Errorf("wait to read %s: %w", path, err)
		}
	}

	data, err := l.source.ReadFile(path)
	if err != nil {
		return "", err
	}
	if !utf8.Valid(data) {
		return "", fmt.Errorf("read %s: %w", path, ErrNotUTF8)
	}
	return string(data), nil
}
