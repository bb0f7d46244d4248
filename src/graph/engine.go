// Package graph renders build timing traces: the per-unit pipeline graph with its
// dependency edges, the concurrency and CPU graph, and hover highlighting of a unit's
// edges on a separate overlay layer.
//
// Rendering is synchronous. Engine is the event-driven entry point: each trigger runs
// to completion and replaces the cached render products only when it succeeds.
package graph

import (
	"fmt"

	"github.com/iafilius/BuildTimings/src/logging"
	"github.com/iafilius/BuildTimings/src/timings"
)

// Controls are the user-adjustable values polled at render time.
type Controls struct {
	MinDuration float64 // seconds
	Scale       float64 // pixels per second, before the width cap
	PixelRatio  float64
}

// Engine owns a trace and the render products derived from it.
type Engine struct {
	trace    *timings.Trace
	reverse  timings.ReverseDeps
	controls Controls

	pipeline *PipelineGraph
	timing   *Surface
	hover    *HoverController
}

// NewEngine builds the reverse-unlock maps once; nothing is drawn until Load.
func NewEngine(t *timings.Trace, c Controls) *Engine {
	rev := timings.BuildReverseDeps(t.Units)
	return &Engine{
		trace:    t,
		reverse:  rev,
		controls: c,
		hover:    NewHoverController(t, rev, nil),
	}
}

func (e *Engine) Trace() *timings.Trace            { return e.trace }
func (e *Engine) Controls() Controls               { return e.controls }
func (e *Engine) Pipeline() *PipelineGraph         { return e.pipeline }
func (e *Engine) Timing() *Surface                 { return e.timing }
func (e *Engine) Hover() *HoverController          { return e.hover }
func (e *Engine) ReverseDeps() timings.ReverseDeps { return e.reverse }

func (e *Engine) pipelineOptions(c Controls) PipelineOptions {
	return PipelineOptions{MinDuration: c.MinDuration, Scale: c.Scale, PixelRatio: c.PixelRatio}
}

func (e *Engine) timingOptions(c Controls) TimingOptions {
	return TimingOptions{Scale: c.Scale, PixelRatio: c.PixelRatio}
}

// Load renders both graphs for the initial control values.
func (e *Engine) Load() error {
	return e.render(e.controls, true, true)
}

// SetMinDuration re-renders the pipeline graph only.
func (e *Engine) SetMinDuration(v float64) error {
	c := e.controls
	c.MinDuration = v
	return e.render(c, true, false)
}

// SetScale re-renders both graphs.
func (e *Engine) SetScale(v float64) error {
	c := e.controls
	c.Scale = v
	return e.render(c, true, true)
}

// SetPixelRatio re-renders both graphs at a new device density.
func (e *Engine) SetPixelRatio(v float64) error {
	c := e.controls
	c.PixelRatio = v
	return e.render(c, true, true)
}

// PointerMove forwards a pointer position over the pipeline graph to the hover
// controller; at most the overlay is redrawn.
func (e *Engine) PointerMove(x, y float64) (bool, error) {
	return e.hover.Move(x, y)
}

// render computes every requested product before committing any of them, so a
// failure leaves the previous graphs, hit-boxes and controls in place.
func (e *Engine) render(c Controls, pipeline, timing bool) error {
	var (
		pg *PipelineGraph
		ts *Surface
	)
	if pipeline {
		g, err := RenderPipeline(e.trace, e.pipelineOptions(c))
		if err != nil {
			logging.Errorf("pipeline graph: %v", err)
			return fmt.Errorf("pipeline graph: %w", err)
		}
		pg = g
	}
	if timing {
		s, err := RenderTiming(e.trace, e.timingOptions(c))
		if err != nil {
			logging.Errorf("timing graph: %v", err)
			return fmt.Errorf("timing graph: %w", err)
		}
		ts = s
	}
	e.controls = c
	if pipeline {
		e.pipeline = pg
		e.hover.Reset(pg)
	}
	if timing {
		e.timing = ts
	}
	return nil
}
