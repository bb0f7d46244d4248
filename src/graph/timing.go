package graph

import (
	"math"
	"time"

	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/iafilius/BuildTimings/src/logging"
	"github.com/iafilius/BuildTimings/src/timings"
)

const (
	timingHeight     = 400
	timingAxisHeight = timingHeight - margin - yLine
	timingTopMargin  = 10
	timingPlotHeight = timingAxisHeight - timingTopMargin

	legendWidth  = 150
	legendHeight = 82
	legendInset  = 200
)

// TimingOptions are the control values a timing render depends on.
type TimingOptions struct {
	Scale      float64
	PixelRatio float64
}

type concurrencySeries struct {
	name  string
	color drawing.Color
	value func(timings.ConcurrencySample) int
}

var timingSeries = []concurrencySeries{
	{"Waiting", colorWaiting, func(c timings.ConcurrencySample) int { return c.Waiting }},
	{"Inactive", colorInactive, func(c timings.ConcurrencySample) int { return c.Inactive }},
	{"Active", colorActive, func(c timings.ConcurrencySample) int { return c.Active }},
}

// StepPath returns the vertices of a step line: each value holds until the next
// sample's timestamp, then jumps.
func StepPath(samples []timings.ConcurrencySample, value func(timings.ConcurrencySample) int, ts TimeScale, vs ValueScale) []Point {
	if len(samples) == 0 {
		return nil
	}
	last := Point{ts.X(samples[0].T), vs.Y(float64(value(samples[0])))}
	pts := make([]Point, 0, 2*len(samples)-1)
	pts = append(pts, last)
	for _, c := range samples[1:] {
		p := Point{ts.X(c.T), vs.Y(float64(value(c)))}
		pts = append(pts, Point{p.X, last.Y}, p)
		last = p
	}
	return pts
}

// CPUArea returns the closed outline under the CPU curve, usage rescaled against the
// value scale's maximum so it shares the count axis. Fewer than two samples give nil.
func CPUArea(samples []timings.CPUSample, ts TimeScale, vs ValueScale) []Point {
	if len(samples) < 2 {
		return nil
	}
	pts := make([]Point, 0, len(samples)+2)
	pts = append(pts, Point{ts.X(samples[0].T), vs.Y(0)})
	for _, c := range samples {
		pts = append(pts, Point{ts.X(c.T), vs.Y(c.Usage / 100 * vs.Max)})
	}
	pts = append(pts, Point{ts.X(samples[len(samples)-1].T), vs.Y(0)})
	return pts
}

// RenderTiming draws the concurrency and CPU graph. A trace without concurrency samples
// yields a nil surface and no error.
func RenderTiming(t *timings.Trace, opts TimingOptions) (*Surface, error) {
	if len(t.Concurrency) == 0 {
		return nil, nil
	}
	defer logging.TimeTrack(time.Now(), "timing render")
	scale := NewTimeScale(t.Duration, opts.Scale)

	maxV := float64(t.MaxConcurrency())
	vs, plot := NewValueScale(timingTopMargin, timingPlotHeight, maxV)
	var yStep, yTop float64
	if plot {
		var err error
		yStep, yTop, err = SplitTicks(maxV, float64(timingPlotHeight)/minTickDist)
		if err != nil {
			return nil, err
		}
	}

	ax, err := drawGraphAxes(scale, timingAxisHeight, opts.PixelRatio)
	if err != nil {
		return nil, err
	}
	s := ax.surface

	if plot {
		s.SetTextAlign(AlignEnd)
		s.SetTextMiddle(true)
		for _, tk := range tickMarks(yStep, yTop, formatNumeric) {
			if tk.Value > maxV {
				break
			}
			y := margin + vs.Y(tk.Value)
			s.Line(xLine-5, y, xLine, y)
			s.Text(tk.Label, xLine-10, y)
		}
	}
	s.SetTextMiddle(false)
	s.TextRotated("# Units", 17, margin+timingAxisHeight/2.0+30, -math.Pi/2)

	if plot {
		s.Push()
		s.Translate(xLine, margin)
		if area := CPUArea(t.CPU, scale, vs); area != nil {
			s.SetFill(colorCPU)
			s.MoveTo(area[0].X, area[0].Y)
			for _, p := range area[1:] {
				s.LineTo(p.X, p.Y)
			}
			s.Fill()
		}
		for _, series := range timingSeries {
			pts := StepPath(t.Concurrency, series.value, scale, vs)
			s.SetStroke(series.color, defaultStrokeWidth)
			s.MoveTo(pts[0].X, pts[0].Y)
			for _, p := range pts[1:] {
				s.LineTo(p.X, p.Y)
			}
			s.Stroke()
		}
		s.Pop()
	}

	drawLegend(s, float64(ax.canvasWidth-legendInset), margin)
	logging.Debugf("timing: %d samples, max %v, %d cpu samples", len(t.Concurrency), maxV, len(t.CPU))
	return s, nil
}

func drawLegend(s *Surface, x, y float64) {
	s.Push()
	defer s.Pop()
	s.Translate(x, y)
	s.SetFill(colorLegendBox)
	s.Rect(0, 0, legendWidth, legendHeight)
	s.Fill()
	s.SetStroke(colorText, 1)
	s.Rect(0, 0, legendWidth, legendHeight)
	s.Stroke()

	s.SetFontSize(labelFont)
	s.SetTextAlign(AlignStart)
	s.SetTextMiddle(true)
	for i, series := range timingSeries {
		ly := float64(10 + 20*i)
		s.SetStroke(series.color, 2)
		s.Line(5, ly, 50, ly)
		s.Text(series.name, 54, ly+1)
	}
	s.SetFill(colorCPU)
	s.Rect(5, 60, 45, 10)
	s.Fill()
	s.Text("CPU Usage", 54, 66)
	s.SetTextMiddle(false)
	s.SetFontSize(defaultFontSize)
}
