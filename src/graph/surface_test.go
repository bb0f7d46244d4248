package graph

import (
	"bytes"
	"image/color"
	"image/png"
	"testing"
)

func near(a, b uint8) bool {
	d := int(a) - int(b)
	return d >= -2 && d <= 2
}

func TestSurfaceBackgroundAndDensity(t *testing.T) {
	bg := Background()
	s, err := NewSurface(40, 20, 2, &bg)
	if err != nil {
		t.Fatalf("NewSurface: %v", err)
	}
	img, err := s.Image()
	if err != nil {
		t.Fatalf("Image: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 80 || b.Dy() != 40 {
		t.Fatalf("device size %dx%d, want 80x40", b.Dx(), b.Dy())
	}
	c := color.RGBAModel.Convert(img.At(40, 20)).(color.RGBA)
	if !near(c.R, 0xf7) || !near(c.G, 0xf7) || !near(c.B, 0xf7) || c.A != 255 {
		t.Fatalf("background pixel = %+v", c)
	}
}

func TestOverlaySurfaceIsTransparent(t *testing.T) {
	s, err := NewSurface(30, 30, 1, nil)
	if err != nil {
		t.Fatalf("NewSurface: %v", err)
	}
	var buf bytes.Buffer
	if err := s.WritePNG(&buf); err != nil {
		t.Fatalf("WritePNG: %v", err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if _, _, _, a := img.At(15, 15).RGBA(); a != 0 {
		t.Fatalf("overlay should be transparent, alpha=%d", a)
	}
	if s.Stats().Fills != 0 {
		t.Fatalf("overlay must not paint a background")
	}
}

func TestSurfaceRejectsEmptySize(t *testing.T) {
	if _, err := NewSurface(0, 10, 1, nil); err == nil {
		t.Fatalf("expected error for zero width")
	}
}

func TestSurfaceTranslateStack(t *testing.T) {
	s, err := NewSurface(10, 10, 1, nil)
	if err != nil {
		t.Fatalf("NewSurface: %v", err)
	}
	s.Push()
	s.Translate(3, 4)
	s.Push()
	s.Translate(1, 1)
	if s.ox != 4 || s.oy != 5 {
		t.Fatalf("origin = (%v,%v)", s.ox, s.oy)
	}
	s.Pop()
	s.Pop()
	s.Pop() // extra pops are ignored
	if s.ox != 0 || s.oy != 0 {
		t.Fatalf("origin not restored: (%v,%v)", s.ox, s.oy)
	}
	w, h := s.MeasureText("pipeline")
	if w <= 0 || h <= 0 {
		t.Fatalf("text measures %vx%v", w, h)
	}
}
