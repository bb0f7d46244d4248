package graph

import (
	"fmt"

	"github.com/iafilius/BuildTimings/src/timings"
)

// HitTest returns the unit under (x, y), first matching box wins.
func HitTest(boxes []HitBox, x, y float64) (int, bool) {
	for _, b := range boxes {
		if b.Contains(x, y) {
			return b.Index, true
		}
	}
	return 0, false
}

// HoverController tracks which unit's edges are highlighted on a pipeline graph's
// overlay. It is either idle or highlighting exactly one unit; pointer positions that
// miss every block leave the current highlight in place.
type HoverController struct {
	trace   *timings.Trace
	reverse timings.ReverseDeps
	graph   *PipelineGraph

	current     int
	highlighted bool
	redraws     int
}

// NewHoverController binds a controller to a rendered graph. g may be nil.
func NewHoverController(t *timings.Trace, rev timings.ReverseDeps, g *PipelineGraph) *HoverController {
	return &HoverController{trace: t, reverse: rev, graph: g}
}

// Reset rebinds to the product of a new full render and returns to idle. The new
// overlay starts out blank, so nothing is highlighted.
func (h *HoverController) Reset(g *PipelineGraph) {
	h.graph = g
	h.highlighted = false
	h.current = 0
}

// Highlighted returns the highlighted unit index, if any.
func (h *HoverController) Highlighted() (int, bool) { return h.current, h.highlighted }

// Redraws counts overlay redraws performed so far.
func (h *HoverController) Redraws() int { return h.redraws }

// Move resolves a pointer position in surface coordinates and redraws the overlay when
// it lands on a unit other than the highlighted one. It reports whether it redrew.
func (h *HoverController) Move(x, y float64) (bool, error) {
	if h.graph == nil {
		return false, nil
	}
	idx, ok := HitTest(h.graph.Layout.HitBoxes, x, y)
	if !ok || (h.highlighted && idx == h.current) {
		return false, nil
	}
	u, ok := h.trace.Unit(idx)
	if !ok {
		return false, fmt.Errorf("hit box refers to unknown unit %d", idx)
	}
	if err := h.paint(u); err != nil {
		return false, err
	}
	h.current, h.highlighted = idx, true
	h.redraws++
	return true, nil
}

// HighlightEdges lists what the overlay shows for a unit: its outgoing edges and the
// recorded incoming ones.
func (h *HoverController) HighlightEdges(u *timings.Unit) []Edge {
	l := h.graph.Layout
	return append(l.OutgoingEdges(u), l.IncomingEdges(h.reverse, u.Index)...)
}

func (h *HoverController) paint(u *timings.Unit) error {
	o := h.graph.Overlay
	if err := o.Clear(); err != nil {
		return fmt.Errorf("clear overlay: %w", err)
	}
	o.Push()
	o.Translate(xLine, margin)
	drawEdges(o, h.HighlightEdges(u), true)
	o.Pop()
	return nil
}
