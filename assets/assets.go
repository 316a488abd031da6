// Package assets locates the background images and font used to render
// achievements.
package assets

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"golang.org/x/image/font/gofont/goregular"
)

// DefaultFont is the font used when no font file is configured.
func DefaultFont() []byte {
	return goregular.TTF
}

// LoadFont reads a TrueType or OpenType font from path. An empty path
// returns DefaultFont.
func LoadFont(path string) ([]byte, error) {
	if path == "" {
		return DefaultFont(), nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading font: %w", err)
	}
	return b, nil
}

// Backgrounds returns a filesystem rooted at dir. A missing directory is not
// an error: it yields a nil FS and the generator falls back to its built-in
// background.
func Backgrounds(dir string) (fs.FS, error) {
	if dir == "" {
		return nil, nil
	}
	info, err := os.Stat(dir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading backgrounds: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("reading backgrounds: %s is not a directory", dir)
	}
	return os.DirFS(dir), nil
}
