package graph

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"io"
	"math"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// Align is the horizontal anchor of drawn text.
type Align int

const (
	AlignCenter Align = iota
	AlignStart
	AlignEnd
)

const (
	defaultStrokeWidth = 2
	defaultFontSize    = 16
)

// SurfaceStats counts primitive draws, so callers can tell whether a layer was touched.
type SurfaceStats struct {
	Strokes int
	Fills   int
	Texts   int
	Clears  int
}

// Surface is a raster drawing target sized in logical pixels and backed by a go-chart
// renderer allocated at logical size times the device pixel ratio. All coordinates,
// widths, dash lengths and font sizes are logical and scaled on the way down.
type Surface struct {
	r      chart.Renderer
	width  int
	height int
	ratio  float64
	bg     *drawing.Color

	ox, oy float64
	saved  [][2]float64

	stroke     drawing.Color
	strokeW    float64
	dash       []float64
	fill       drawing.Color
	textColor  drawing.Color
	fontSize   float64
	align      Align
	midline    bool
	stats      SurfaceStats
	pathActive bool
}

// NewSurface allocates a surface. A nil background leaves it transparent, which is how
// overlay layers are created.
func NewSurface(width, height int, ratio float64, background *drawing.Color) (*Surface, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("surface size %dx%d must be positive", width, height)
	}
	if ratio <= 0 || math.IsNaN(ratio) {
		ratio = 1
	}
	s := &Surface{width: width, height: height, ratio: ratio, bg: background}
	if err := s.reset(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Surface) reset() error {
	r, err := chart.PNG(s.device(float64(s.width)), s.device(float64(s.height)))
	if err != nil {
		return fmt.Errorf("allocate surface: %w", err)
	}
	// 72 DPI makes a point one logical pixel before ratio scaling.
	r.SetDPI(72)
	f, err := chart.GetDefaultFont()
	if err != nil {
		return fmt.Errorf("load default font: %w", err)
	}
	r.SetFont(f)
	s.r = r
	s.ox, s.oy = 0, 0
	s.saved = s.saved[:0]
	if s.bg != nil {
		s.SetFill(*s.bg)
		s.Rect(0, 0, float64(s.width), float64(s.height))
		s.Fill()
	}
	s.SetStroke(colorAxes, defaultStrokeWidth)
	s.SetDash()
	s.SetTextColor(colorText)
	s.SetFontSize(defaultFontSize)
	s.SetTextAlign(AlignCenter)
	s.SetTextMiddle(false)
	return nil
}

// Clear discards everything drawn and restores the defaults.
func (s *Surface) Clear() error {
	s.stats.Clears++
	return s.reset()
}

func (s *Surface) Width() int          { return s.width }
func (s *Surface) Height() int         { return s.height }
func (s *Surface) Ratio() float64      { return s.ratio }
func (s *Surface) Stats() SurfaceStats { return s.stats }

func (s *Surface) device(v float64) int { return int(math.Round(v * s.ratio)) }

func (s *Surface) dx(x float64) int { return s.device(s.ox + x) }
func (s *Surface) dy(y float64) int { return s.device(s.oy + y) }

// Translate moves the drawing origin.
func (s *Surface) Translate(x, y float64) { s.ox += x; s.oy += y }

// Push saves the origin; Pop restores the last saved one.
func (s *Surface) Push() { s.saved = append(s.saved, [2]float64{s.ox, s.oy}) }

func (s *Surface) Pop() {
	if n := len(s.saved); n > 0 {
		s.ox, s.oy = s.saved[n-1][0], s.saved[n-1][1]
		s.saved = s.saved[:n-1]
	}
}

func (s *Surface) SetStroke(c drawing.Color, width float64) { s.stroke, s.strokeW = c, width }

// SetDash sets the dash pattern in logical pixels; no arguments means solid.
func (s *Surface) SetDash(pattern ...float64) { s.dash = append(s.dash[:0], pattern...) }

func (s *Surface) SetFill(c drawing.Color)      { s.fill = c }
func (s *Surface) SetTextColor(c drawing.Color) { s.textColor = c }
func (s *Surface) SetFontSize(px float64)       { s.fontSize = px }
func (s *Surface) SetTextAlign(a Align)         { s.align = a }

// SetTextMiddle anchors text vertically on its middle instead of the baseline.
func (s *Surface) SetTextMiddle(on bool) { s.midline = on }

func (s *Surface) MoveTo(x, y float64) {
	s.r.MoveTo(s.dx(x), s.dy(y))
	s.pathActive = true
}

func (s *Surface) LineTo(x, y float64) {
	if !s.pathActive {
		s.MoveTo(x, y)
		return
	}
	s.r.LineTo(s.dx(x), s.dy(y))
}

// Rect adds a closed rectangle to the current path.
func (s *Surface) Rect(x, y, w, h float64) {
	s.MoveTo(x, y)
	s.LineTo(x+w, y)
	s.LineTo(x+w, y+h)
	s.LineTo(x, y+h)
	s.r.Close()
}

// RoundedRect adds a rectangle with quadratic corners of radius rad. The radius shrinks
// for blocks narrower than two radii.
func (s *Surface) RoundedRect(x, y, w, h, rad float64) {
	rad = math.Min(rad, math.Min(w/2, h/2))
	if rad <= 0 {
		s.Rect(x, y, w, h)
		return
	}
	s.MoveTo(x+rad, y)
	s.LineTo(x+w-rad, y)
	s.r.QuadCurveTo(s.dx(x+w), s.dy(y), s.dx(x+w), s.dy(y+rad))
	s.LineTo(x+w, y+h-rad)
	s.r.QuadCurveTo(s.dx(x+w), s.dy(y+h), s.dx(x+w-rad), s.dy(y+h))
	s.LineTo(x+rad, y+h)
	s.r.QuadCurveTo(s.dx(x), s.dy(y+h), s.dx(x), s.dy(y+h-rad))
	s.LineTo(x, y+rad)
	s.r.QuadCurveTo(s.dx(x), s.dy(y), s.dx(x+rad), s.dy(y))
	s.r.Close()
}

// Stroke draws the current path with the stroke style and starts a new path.
func (s *Surface) Stroke() {
	s.r.SetStrokeColor(s.stroke)
	s.r.SetStrokeWidth(s.strokeW * s.ratio)
	if len(s.dash) > 0 {
		d := make([]float64, len(s.dash))
		for i, v := range s.dash {
			d[i] = v * s.ratio
		}
		s.r.SetStrokeDashArray(d)
	} else {
		s.r.SetStrokeDashArray(nil)
	}
	s.r.Stroke()
	s.pathActive = false
	s.stats.Strokes++
}

// Fill fills the current path and starts a new path.
func (s *Surface) Fill() {
	s.r.SetFillColor(s.fill)
	s.r.Fill()
	s.pathActive = false
	s.stats.Fills++
}

// Line strokes a single segment.
func (s *Surface) Line(x1, y1, x2, y2 float64) {
	s.MoveTo(x1, y1)
	s.LineTo(x2, y2)
	s.Stroke()
}

// MeasureText returns the logical width and height of body at the current font size.
func (s *Surface) MeasureText(body string) (float64, float64) {
	s.r.SetFontSize(s.fontSize * s.ratio)
	b := s.r.MeasureText(body)
	return float64(b.Width()) / s.ratio, float64(b.Height()) / s.ratio
}

// Text draws body anchored at (x, y) per the current alignment settings.
func (s *Surface) Text(body string, x, y float64) {
	w, h := s.MeasureText(body)
	switch s.align {
	case AlignCenter:
		x -= w / 2
	case AlignEnd:
		x -= w
	}
	if s.midline {
		y += h / 2
	}
	s.r.SetFontColor(s.textColor)
	s.r.Text(body, s.dx(x), s.dy(y))
	s.stats.Texts++
}

// TextRotated draws body starting at (x, y) rotated by radians.
func (s *Surface) TextRotated(body string, x, y, radians float64) {
	s.r.SetFontSize(s.fontSize * s.ratio)
	s.r.SetFontColor(s.textColor)
	s.r.SetTextRotation(radians)
	s.r.Text(body, s.dx(x), s.dy(y))
	s.r.ClearTextRotation()
	s.stats.Texts++
}

// WritePNG encodes the surface at device resolution.
func (s *Surface) WritePNG(w io.Writer) error { return s.r.Save(w) }

// Image returns the decoded device-resolution image.
func (s *Surface) Image() (image.Image, error) {
	var buf bytes.Buffer
	if err := s.r.Save(&buf); err != nil {
		return nil, fmt.Errorf("encode surface: %w", err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		return nil, fmt.Errorf("decode surface: %w", err)
	}
	return img, nil
}
