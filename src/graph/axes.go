package graph

import (
	"math"

	chart "github.com/wcharczuk/go-chart/v2"
)

// Shared geometry of both graphs, logical pixels.
const (
	xLine       = 50 // left gutter holding the Y axis
	yLine       = 35 // bottom band holding the X labels
	margin      = 5
	minTickDist = 50
)

// axes is a surface with both axes, X ticks and grid lines drawn.
type axes struct {
	surface      *Surface
	canvasWidth  int
	canvasHeight int
}

// canvasSize is the logical surface size for a plot of the given scale and height.
func canvasSize(scale TimeScale, graphHeight float64) (int, int) {
	w := math.Max(scale.Width+xLine+30, xLine+250)
	h := graphHeight + margin + yLine
	return int(math.Ceil(w)), int(math.Ceil(h))
}

// planTimeTicks plans the X axis; it runs before any allocation so a planning failure
// leaves nothing half drawn.
func planTimeTicks(scale TimeScale) ([]chart.Tick, error) {
	step, top, err := SplitTicks(scale.Duration, scale.Width/minTickDist)
	if err != nil {
		return nil, err
	}
	ticks := tickMarks(step, top, secondsLabel)
	// Ticks past the end of the build would land outside the plotted band.
	out := ticks[:0]
	for _, t := range ticks {
		if t.Value <= scale.Duration {
			out = append(out, t)
		}
	}
	return out, nil
}

func drawGraphAxes(scale TimeScale, graphHeight, ratio float64) (*axes, error) {
	ticks, err := planTimeTicks(scale)
	if err != nil {
		return nil, err
	}
	w, h := canvasSize(scale, graphHeight)
	bg := colorBackground
	s, err := NewSurface(w, h, ratio, &bg)
	if err != nil {
		return nil, err
	}

	s.SetStroke(colorAxes, defaultStrokeWidth)
	s.MoveTo(xLine, margin)
	s.LineTo(xLine, graphHeight+margin)
	s.LineTo(xLine+scale.Width+20, graphHeight+margin)
	s.Stroke()

	base := float64(h) - yLine
	s.SetTextAlign(AlignCenter)
	for _, t := range ticks {
		x := xLine + scale.X(t.Value)
		s.Line(x, base, x, base+5)
		s.Text(t.Label, x, base+20)
	}

	s.SetStroke(colorGrid, 1)
	s.SetDash(2, 4)
	for _, t := range ticks {
		x := xLine + scale.X(t.Value)
		s.Line(x, margin, x, margin+graphHeight)
	}
	s.SetDash()
	s.SetStroke(colorAxes, defaultStrokeWidth)

	return &axes{surface: s, canvasWidth: w, canvasHeight: h}, nil
}
