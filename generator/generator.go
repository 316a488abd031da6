// Package generator renders achievement images.
package generator

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"io/fs"
	"path"
	"sort"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/fogleman/gg"
	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"

	"github.com/eringen/mcgen/assets"
)

// Errors returned by Generate.
var (
	ErrUnknownBackground = errors.New("unknown background")
	ErrInvalidScale      = errors.New("invalid scale")
)

const (
	// MaxScale is the largest accepted upscaling factor.
	MaxScale = 8
	fontSize = 16
)

var (
	titleColor = color.RGBA{R: 255, G: 255, B: 0, A: 255}
	textColor  = color.RGBA{R: 255, G: 255, B: 255, A: 255}
)

// Request describes one achievement image.
type Request struct {
	Background string
	Title      string
	Text       string
	Scale      int // 0 means 1
}

// Options configures New.
type Options struct {
	Backgrounds fs.FS  // *.png files, named after the background; may be nil
	Font        []byte // TrueType/OpenType data; nil uses assets.DefaultFont
	Logger      *log.Logger
}

// A Generator holds the decoded backgrounds and font face.
type Generator struct {
	backgrounds map[string]image.Image
	names       []string
	logger      *log.Logger

	mu   sync.Mutex // guards face, which keeps per-glyph scratch state
	face font.Face
}

// New decodes every background and parses the font up front so Generate
// does no I/O.
func New(opts Options) (*Generator, error) {
	logger := opts.Logger
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	g := &Generator{
		backgrounds: map[string]image.Image{PlainBackground: plainBackground()},
		logger:      logger,
	}

	if opts.Backgrounds != nil {
		files, err := fs.Glob(opts.Backgrounds, "*.png")
		if err != nil {
			return nil, fmt.Errorf("reading backgrounds: %w", err)
		}
		for _, file := range files {
			img, err := decodeBackground(opts.Backgrounds, file)
			if err != nil {
				return nil, err
			}
			name := strings.TrimSuffix(path.Base(file), ".png")
			g.backgrounds[name] = img
			logger.Debug("loaded background", "name", name)
		}
	}
	for name := range g.backgrounds {
		g.names = append(g.names, name)
	}
	sort.Strings(g.names)
	logger.Debug("loaded all backgrounds", "count", len(g.names))

	fontData := opts.Font
	if fontData == nil {
		fontData = assets.DefaultFont()
	}
	parsed, err := opentype.Parse(fontData)
	if err != nil {
		return nil, fmt.Errorf("parsing font: %w", err)
	}
	face, err := opentype.NewFace(parsed, &opentype.FaceOptions{
		Size:    fontSize,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("creating font face: %w", err)
	}
	g.face = face
	logger.Debug("loaded font")

	return g, nil
}

func decodeBackground(fsys fs.FS, file string) (image.Image, error) {
	f, err := fsys.Open(file)
	if err != nil {
		return nil, fmt.Errorf("reading background %s: %w", file, err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decoding background %s: %w", file, err)
	}
	return img, nil
}

// Backgrounds returns the available background names in sorted order.
func (g *Generator) Backgrounds() []string {
	return append([]string(nil), g.names...)
}

// Has reports whether name is a known background.
func (g *Generator) Has(name string) bool {
	_, ok := g.backgrounds[name]
	return ok
}

// Generate draws the title and text onto the background and returns the
// PNG bytes.
func (g *Generator) Generate(req Request) ([]byte, error) {
	scale := req.Scale
	if scale == 0 {
		scale = 1
	}
	if scale < 1 || scale > MaxScale {
		return nil, ErrInvalidScale
	}
	template, ok := g.backgrounds[req.Background]
	if !ok {
		return nil, ErrUnknownBackground
	}

	g.mu.Lock()
	dc := gg.NewContextForImage(template)
	dc.SetFontFace(g.face)
	dc.SetColor(titleColor)
	dc.DrawString(req.Title, 60, 28)
	dc.SetColor(textColor)
	dc.DrawString(req.Text, 60, 50)
	g.mu.Unlock()

	img := upscale(dc.Image(), scale)

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encoding image: %w", err)
	}
	return buf.Bytes(), nil
}
