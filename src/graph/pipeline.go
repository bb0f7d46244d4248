package graph

import (
	"math"
	"strconv"
	"time"

	"github.com/iafilius/BuildTimings/src/logging"
	"github.com/iafilius/BuildTimings/src/timings"
)

const (
	boxHeight = 25
	rowPitch  = boxHeight + 2
	boxRadius = 3
	busOffset = 5
	labelPad  = 5
	labelFont = 14
)

// PipelineOptions are the control values a pipeline render depends on.
type PipelineOptions struct {
	MinDuration float64 // seconds; shorter units get no row
	Scale       float64 // pixels per second before the width cap
	PixelRatio  float64
}

// UnitCoords is a unit's block in plot space (origin at the top-left of the plot area).
type UnitCoords struct {
	Row      int
	X, Y     float64
	Width    float64
	RmetaX   float64
	HasRmeta bool
}

// HitBox is a unit's block in surface space, bounds inclusive.
type HitBox struct {
	X, Y, X2, Y2 float64
	Index        int
}

// Contains reports whether (x, y) lies inside the box or on its edge.
func (b HitBox) Contains(x, y float64) bool {
	return x >= b.X && x <= b.X2 && y >= b.Y && y <= b.Y2
}

// Point is a position in plot space.
type Point struct{ X, Y float64 }

// Edge is an elbowed dependency connector from an exit point on From to the left edge
// of To: out to a bus line beside the exit, along the bus, into the target.
type Edge struct {
	From, To int
	Rmeta    bool
	Path     [4]Point
}

// PipelineLayout is everything a pipeline pass derives from the trace and controls.
type PipelineLayout struct {
	Scale        TimeScale
	Order        []int // unit indices, top row first
	Coords       map[int]UnitCoords
	HitBoxes     []HitBox
	GraphHeight  float64
	CanvasWidth  int
	CanvasHeight int
}

// LayoutPipeline filters the units and places one row per remaining unit in trace order.
func LayoutPipeline(t *timings.Trace, opts PipelineOptions) *PipelineLayout {
	scale := NewTimeScale(t.Duration, opts.Scale)
	l := &PipelineLayout{Scale: scale, Coords: map[int]UnitCoords{}}
	for i := range t.Units {
		u := &t.Units[i]
		if u.Duration < opts.MinDuration {
			continue
		}
		row := len(l.Order)
		c := UnitCoords{
			Row:   row,
			X:     scale.X(u.Start),
			Y:     float64(row * rowPitch),
			Width: math.Max(scale.X(u.Duration), 1),
		}
		if u.RmetaTime != nil {
			c.HasRmeta = true
			c.RmetaX = c.X + scale.X(*u.RmetaTime)
		}
		l.Order = append(l.Order, u.Index)
		l.Coords[u.Index] = c
		l.HitBoxes = append(l.HitBoxes, HitBox{
			X:     xLine + c.X,
			Y:     margin + c.Y,
			X2:    xLine + c.X + c.Width,
			Y2:    margin + c.Y + boxHeight,
			Index: u.Index,
		})
	}
	l.GraphHeight = float64(len(l.Order) * rowPitch)
	l.CanvasWidth, l.CanvasHeight = canvasSize(scale, l.GraphHeight)
	return l
}

// Has reports whether the unit occupies a row in this layout.
func (l *PipelineLayout) Has(index int) bool {
	_, ok := l.Coords[index]
	return ok
}

func (l *PipelineLayout) edge(from, to int, exitX, exitY float64, rmeta bool) (Edge, bool) {
	dst, ok := l.Coords[to]
	if !ok {
		return Edge{}, false
	}
	srcMid := exitY + boxHeight/2.0
	dstMid := dst.Y + boxHeight/2.0
	bus := exitX - busOffset
	return Edge{
		From:  from,
		To:    to,
		Rmeta: rmeta,
		Path:  [4]Point{{exitX, srcMid}, {bus, srcMid}, {bus, dstMid}, {dst.X, dstMid}},
	}, true
}

// OutgoingEdges lists u's completion edges (from its right edge) followed by its
// metadata edges (from rmeta_x). Targets outside the layout are left out.
func (l *PipelineLayout) OutgoingEdges(u *timings.Unit) []Edge {
	src, ok := l.Coords[u.Index]
	if !ok {
		return nil
	}
	var out []Edge
	for _, to := range u.UnlockedUnits {
		if e, ok := l.edge(u.Index, to, src.X+src.Width, src.Y, false); ok {
			out = append(out, e)
		}
	}
	if src.HasRmeta {
		for _, to := range u.UnlockedRmetaUnits {
			if e, ok := l.edge(u.Index, to, src.RmetaX, src.Y, true); ok {
				out = append(out, e)
			}
		}
	}
	return out
}

// IncomingEdges lists the recorded predecessor edges into index: at most one completion
// edge and one metadata edge.
func (l *PipelineLayout) IncomingEdges(rev timings.ReverseDeps, index int) []Edge {
	if !l.Has(index) {
		return nil
	}
	var out []Edge
	if p, ok := rev.Unlock[index]; ok {
		if src, ok := l.Coords[p]; ok {
			if e, ok := l.edge(p, index, src.X+src.Width, src.Y, false); ok {
				out = append(out, e)
			}
		}
	}
	if p, ok := rev.Rmeta[index]; ok {
		if src, ok := l.Coords[p]; ok && src.HasRmeta {
			if e, ok := l.edge(p, index, src.RmetaX, src.Y, true); ok {
				out = append(out, e)
			}
		}
	}
	return out
}

// labelX left-aligns a label inside its block but shifts it left when it would run
// past the drawable width.
func (l *PipelineLayout) labelX(blockX, labelWidth float64) float64 {
	return math.Min(blockX+labelPad, float64(l.CanvasWidth)-labelWidth-xLine)
}

// PipelineGraph is the product of a full pipeline pass: the layout, the static content
// layer and the transient overlay layer used for hover highlights.
type PipelineGraph struct {
	Layout  *PipelineLayout
	Content *Surface
	Overlay *Surface
}

// RenderPipeline lays out and draws the pipeline graph. A trace without units yields a
// nil graph and no error.
func RenderPipeline(t *timings.Trace, opts PipelineOptions) (*PipelineGraph, error) {
	if len(t.Units) == 0 {
		return nil, nil
	}
	defer logging.TimeTrack(time.Now(), "pipeline render")
	l := LayoutPipeline(t, opts)
	ax, err := drawGraphAxes(l.Scale, l.GraphHeight, opts.PixelRatio)
	if err != nil {
		return nil, err
	}
	overlay, err := NewSurface(ax.canvasWidth, ax.canvasHeight, opts.PixelRatio, nil)
	if err != nil {
		return nil, err
	}
	s := ax.surface

	for n := 1; n < len(l.Order); n++ {
		y := float64(margin + rowPitch*n)
		s.Line(xLine, y, xLine-5, y)
	}
	s.SetTextAlign(AlignEnd)
	s.SetTextMiddle(true)
	for n := range l.Order {
		y := float64(margin+rowPitch*n) + rowPitch/2.0
		s.Text(strconv.Itoa(n+1), xLine-4, y)
	}

	s.Push()
	s.Translate(xLine, margin)
	s.SetFontSize(labelFont)
	s.SetTextAlign(AlignStart)
	for _, idx := range l.Order {
		u, _ := t.Unit(idx)
		c := l.Coords[idx]
		s.SetFill(ModeColor(u.Mode))
		s.RoundedRect(c.X, c.Y, c.Width, boxHeight, boxRadius)
		s.Fill()
		if c.HasRmeta {
			s.SetFill(colorCodegen)
			s.RoundedRect(c.RmetaX, c.Y, l.Scale.X(u.CodegenTime()), boxHeight, boxRadius)
			s.Fill()
		}
		label := u.Label()
		w, _ := s.MeasureText(label)
		s.Text(label, l.labelX(c.X, w), c.Y+boxHeight/2.0)
	}
	for _, idx := range l.Order {
		u, _ := t.Unit(idx)
		drawEdges(s, l.OutgoingEdges(u), false)
	}
	s.Pop()

	logging.Debugf("pipeline: %d of %d units drawn, %dx%d px", len(l.Order), len(t.Units), ax.canvasWidth, ax.canvasHeight)
	return &PipelineGraph{Layout: l, Content: s, Overlay: overlay}, nil
}

// drawEdges strokes edges in plot space: muted dashed for the base layer, solid black
// when highlighted.
func drawEdges(s *Surface, edges []Edge, highlighted bool) {
	if highlighted {
		s.SetStroke(colorDepHighlighted, 1.5)
		s.SetDash()
	} else {
		s.SetStroke(colorDepLine, 1)
		s.SetDash(2)
	}
	for _, e := range edges {
		s.MoveTo(e.Path[0].X, e.Path[0].Y)
		for _, p := range e.Path[1:] {
			s.LineTo(p.X, p.Y)
		}
		s.Stroke()
	}
	s.SetDash()
}
