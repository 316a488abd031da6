package generator

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"sync"
	"testing"
	"testing/fstest"
)

func pngBytes(t *testing.T, w, h int, c color.Color) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func newTestGenerator(t *testing.T) *Generator {
	t.Helper()
	fsys := fstest.MapFS{
		"dirt.png":   {Data: pngBytes(t, 320, 64, color.RGBA{R: 120, G: 80, B: 40, A: 255})},
		"stone.png":  {Data: pngBytes(t, 320, 64, color.RGBA{R: 128, G: 128, B: 128, A: 255})},
		"readme.txt": {Data: []byte("ignored")},
	}
	g, err := New(Options{Backgrounds: fsys})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return g
}

func decode(t *testing.T, b []byte) image.Image {
	t.Helper()
	img, err := png.Decode(bytes.NewReader(b))
	if err != nil {
		t.Fatalf("output is not a PNG: %v", err)
	}
	return img
}

func TestBackgrounds(t *testing.T) {
	g := newTestGenerator(t)
	got := g.Backgrounds()
	want := []string{"dirt", "plain", "stone"}
	if len(got) != len(want) {
		t.Fatalf("Backgrounds() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Backgrounds()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
	if !g.Has("dirt") || g.Has("readme") {
		t.Error("Has() reports wrong membership")
	}
}

func TestGenerate(t *testing.T) {
	g := newTestGenerator(t)
	out, err := g.Generate(Request{Background: "dirt", Title: "Achievement get!", Text: "Hello"})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	img := decode(t, out)
	if img.Bounds().Dx() != 320 || img.Bounds().Dy() != 64 {
		t.Errorf("bounds = %v", img.Bounds())
	}

	// The title is drawn in yellow somewhere on the baseline row area.
	found := false
	for y := 14; y < 32 && !found; y++ {
		for x := 60; x < 200; x++ {
			r, gr, b, _ := img.At(x, y).RGBA()
			if r>>8 > 170 && gr>>8 > 150 && b>>8 < 100 {
				found = true
				break
			}
		}
	}
	if !found {
		t.Error("no title pixels found")
	}
}

func TestGenerateEmptyStrings(t *testing.T) {
	g := newTestGenerator(t)
	out, err := g.Generate(Request{Background: "stone"})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	decode(t, out)
}

func TestGenerateUnknownBackground(t *testing.T) {
	g := newTestGenerator(t)
	for _, bg := range []string{"", "nope", "../dirt", "dirt.png"} {
		_, err := g.Generate(Request{Background: bg, Title: "x"})
		if !errors.Is(err, ErrUnknownBackground) {
			t.Errorf("Generate(%q) err = %v, want ErrUnknownBackground", bg, err)
		}
	}
}

func TestGenerateScale(t *testing.T) {
	g := newTestGenerator(t)
	out, err := g.Generate(Request{Background: PlainBackground, Title: "Big", Scale: 3})
	if err != nil {
		t.Fatal(err)
	}
	img := decode(t, out)
	if img.Bounds().Dx() != toastWidth*3 || img.Bounds().Dy() != toastHeight*3 {
		t.Errorf("bounds = %v", img.Bounds())
	}

	for _, scale := range []int{-1, MaxScale + 1} {
		if _, err := g.Generate(Request{Background: PlainBackground, Scale: scale}); !errors.Is(err, ErrInvalidScale) {
			t.Errorf("scale %d: err = %v", scale, err)
		}
	}
}

func TestGenerateConcurrent(t *testing.T) {
	g := newTestGenerator(t)
	var wg sync.WaitGroup
	errs := make(chan error, 16)
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := g.Generate(Request{Background: "dirt", Title: "t", Text: "x"}); err != nil {
				errs <- err
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Error(err)
	}
}

func TestNewRejectsBadInput(t *testing.T) {
	if _, err := New(Options{Backgrounds: fstest.MapFS{"bad.png": {Data: []byte("not a png")}}}); err == nil {
		t.Error("expected error for undecodable background")
	}
	if _, err := New(Options{Font: []byte("not a font")}); err == nil {
		t.Error("expected error for invalid font")
	}
}

func TestNewWithoutBackgrounds(t *testing.T) {
	g, err := New(Options{})
	if err != nil {
		t.Fatal(err)
	}
	if got := g.Backgrounds(); len(got) != 1 || got[0] != PlainBackground {
		t.Errorf("Backgrounds() = %v", got)
	}
}
