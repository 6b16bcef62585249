package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// DefaultFileName is the configuration file looked up when --config is not given.
const DefaultFileName = ".lintrunner.yaml"

// ErrConfigNotFound is returned by Discover when no configuration file exists
// in the directory or any of its parents.
var ErrConfigNotFound = errors.New("configuration file not found")

// Discover locates name in dir or the closest parent directory.
func Discover(dir, name string) (string, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", err
	}

	for {
		candidate := filepath.Join(dir, name)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return "", fmt.Errorf("%w: %s", ErrConfigNotFound, name)
}
