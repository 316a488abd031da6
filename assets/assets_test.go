package assets

import (
	"bytes"
	"io/fs"
	"os"
	"path/filepath"
	"testing"
)

func TestBackgroundsMissingDir(t *testing.T) {
	fsys, err := Backgrounds(filepath.Join(t.TempDir(), "nope"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if fsys != nil {
		t.Fatal("expected nil FS for missing directory")
	}

	fsys, err = Backgrounds("")
	if err != nil || fsys != nil {
		t.Fatalf("empty dir: fs=%v err=%v", fsys, err)
	}
}

func TestBackgroundsDir(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "stone.png"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	fsys, err := Backgrounds(dir)
	if err != nil {
		t.Fatal(err)
	}
	matches, err := fs.Glob(fsys, "*.png")
	if err != nil {
		t.Fatal(err)
	}
	if len(matches) != 1 || matches[0] != "stone.png" {
		t.Errorf("matches = %v", matches)
	}
}

func TestBackgroundsNotADir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "file")
	if err := os.WriteFile(path, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Backgrounds(path); err == nil {
		t.Fatal("expected error for a regular file")
	}
}

func TestLoadFont(t *testing.T) {
	b, err := LoadFont("")
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(b, DefaultFont()) {
		t.Error("empty path should return the default font")
	}
	if _, err := LoadFont(filepath.Join(t.TempDir(), "missing.ttf")); err == nil {
		t.Error("expected error for missing font")
	}
}

func TestLegacyBackground(t *testing.T) {
	if got := LegacyBackground("20"); got != "stone" {
		t.Errorf("LegacyBackground(20) = %q", got)
	}
	if got := LegacyBackground("999"); got != "" {
		t.Errorf("LegacyBackground(999) = %q", got)
	}
	if len(LegacyIconMappings) != 39 {
		t.Errorf("mappings = %d, want 39", len(LegacyIconMappings))
	}
}
