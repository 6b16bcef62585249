package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestDiscoverWalksUp(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	want := filepath.Join(root, DefaultFileName)
	if err := os.WriteFile(want, []byte("glob: true\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	got, err := Discover(nested, DefaultFileName)
	if err != nil {
		t.Fatalf("Discover returned error: %v", err)
	}
	if got != want {
		t.Fatalf("expected %s, got %s", want, got)
	}
}

func TestDiscoverUnknownTarget(t *testing.T) {
	t.Parallel()

	if _, err := Discover(t.TempDir(), "definitely-not-a-real-file.yaml"); !errors.Is(err, ErrConfigNotFound) {
		t.Fatalf("expected ErrConfigNotFound, got %v", err)
	}
}
