package images

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"log/slog"
	"os"
	"strings"
	"testing"
)

// makeTestPNG encodes a small solid-color PNG.
func makeTestPNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := range h {
		for x := range w {
			img.Set(x, y, color.RGBA{R: uint8(x * 7), G: uint8(y * 7), B: 128, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}

func newTestProcessor(t *testing.T) *Processor {
	t.Helper()
	s, err := NewStorage(t.TempDir())
	if err != nil {
		t.Fatalf("NewStorage: %v", err)
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	return NewProcessor(s, logger)
}

func TestProcess(t *testing.T) {
	p := newTestProcessor(t)
	data := makeTestPNG(t, 32, 32)

	result, err := p.Process(data)
	if err != nil {
		t.Fatalf("Process: %v", err)
	}

	if !strings.HasSuffix(result.Name, ".png") {
		t.Errorf("expected sniffed .png extension, got %q", result.Name)
	}
	if result.Size != len(data) {
		t.Errorf("Size: got %d, want %d", result.Size, len(data))
	}
	if result.BlurHash == "" {
		t.Error("expected blurhash computed")
	}
	if !p.storage.Exists(result.Name) {
		t.Error("expected image stored")
	}
}

func TestProcess_RandomNames(t *testing.T) {
	p := newTestProcessor(t)
	data := makeTestPNG(t, 8, 8)

	a, err := p.Process(data)
	if err != nil {
		t.Fatal(err)
	}
	b, err := p.Process(data)
	if err != nil {
		t.Fatal(err)
	}
	if a.Name == b.Name {
		t.Error("expected distinct random names for identical uploads")
	}
}

func TestProcess_RejectsNonImage(t *testing.T) {
	p := newTestProcessor(t)

	if _, err := p.Process([]byte("<html>not an image</html>")); err == nil {
		t.Error("expected rejection of non-image data")
	}
	if _, err := p.Process(nil); err == nil {
		t.Error("expected rejection of empty data")
	}
}

func TestComputeBlurHash_LargeImage(t *testing.T) {
	data := makeTestPNG(t, 300, 200)

	hash, err := ComputeBlurHash(data)
	if err != nil {
		t.Fatalf("ComputeBlurHash: %v", err)
	}
	if len(hash) < 6 {
		t.Errorf("suspiciously short blurhash: %q", hash)
	}
}
