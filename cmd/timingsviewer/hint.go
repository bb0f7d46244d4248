package main

import (
	"image"
	"image/color"
	"image/draw"
	"math"
	"strings"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

const pipelineHint = "Hint: hover a unit to highlight what unlocked it and what it unlocks."

var (
	hintInk   = color.RGBA{R: 247, G: 247, B: 247, A: 255}
	hintPanel = color.RGBA{R: 48, G: 48, B: 48, A: 210}
)

const (
	hintPadX  = 5
	hintPadY  = 3
	hintInset = 4
)

// hintBanner renders text on its panel at logical size.
func hintBanner(text string) *image.RGBA {
	face := basicfont.Face7x13
	m := face.Metrics()
	w := font.MeasureString(face, text).Ceil() + 2*hintPadX
	h := m.Height.Ceil() + 2*hintPadY
	banner := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(banner, banner.Bounds(), image.NewUniform(hintPanel), image.Point{}, draw.Src)
	d := &font.Drawer{
		Dst:  banner,
		Src:  image.NewUniform(hintInk),
		Face: face,
		Dot:  fixed.P(hintPadX, hintPadY+m.Ascent.Ceil()),
	}
	d.DrawString(text)
	return banner
}

// drawHint returns a copy of img with the hint banner in its bottom-left corner. The
// banner is drawn at logical size and scaled up by the device pixel ratio so it keeps
// its apparent size on dense surfaces.
func drawHint(img image.Image, text string, ratio float64) image.Image {
	if img == nil || strings.TrimSpace(text) == "" {
		return img
	}
	if ratio < 1 || math.IsNaN(ratio) {
		ratio = 1
	}
	banner := hintBanner(text)
	b := img.Bounds()
	out := image.NewRGBA(b)
	draw.Draw(out, b, img, b.Min, draw.Src)

	bw := int(math.Round(float64(banner.Bounds().Dx()) * ratio))
	bh := int(math.Round(float64(banner.Bounds().Dy()) * ratio))
	inset := int(math.Round(hintInset * ratio))
	dst := image.Rect(b.Min.X+inset, b.Max.Y-inset-bh, b.Min.X+inset+bw, b.Max.Y-inset)
	xdraw.NearestNeighbor.Scale(out, dst, banner, banner.Bounds(), xdraw.Over, nil)
	return out
}

// composite lays the transparent overlay over the content layer.
func composite(content, overlay image.Image) image.Image {
	b := content.Bounds()
	rgba := image.NewRGBA(b)
	draw.Draw(rgba, b, content, b.Min, draw.Src)
	if overlay != nil {
		draw.Draw(rgba, b, overlay, overlay.Bounds().Min, draw.Over)
	}
	return rgba
}
