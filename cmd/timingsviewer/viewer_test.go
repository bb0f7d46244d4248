package main

import (
	"testing"

	fyne "fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/test"
	"fyne.io/fyne/v2/widget"

	"github.com/iafilius/BuildTimings/src/config"
	"github.com/iafilius/BuildTimings/src/graph"
)

// loadedPipelineView builds the pipeline tab for screenshotTrace inside a test window of
// the given size.
func loadedPipelineView(t *testing.T, size fyne.Size) *uiState {
	t.Helper()
	a := test.NewApp()
	t.Cleanup(a.Quit)
	state := &uiState{app: a, cfg: config.Default(), status: widget.NewLabel("")}
	view := buildPipelineView(state)
	state.engine = graph.NewEngine(screenshotTrace(), graph.Controls{Scale: 20, PixelRatio: 1})
	if err := state.engine.Load(); err != nil {
		t.Fatalf("Load: %v", err)
	}
	refreshPipeline(state)
	w := test.NewWindow(view)
	t.Cleanup(w.Close)
	w.Resize(size)
	return state
}

func TestPipelineView_LayersKeepSurfaceSize(t *testing.T) {
	state := loadedPipelineView(t, fyne.NewSize(1280, 700))
	s := state.engine.Pipeline().Content
	want := fyne.NewSize(float32(s.Width()), float32(s.Height()))
	if got := state.hover.Size(); got != want {
		t.Fatalf("hover layer laid out at %v, surface is %v", got, want)
	}
	if got := state.pipelineImg.Size(); got != want {
		t.Fatalf("pipeline image laid out at %v, surface is %v", got, want)
	}
	if got := state.overlayImg.Size(); got != want {
		t.Fatalf("overlay image laid out at %v, surface is %v", got, want)
	}
}

func TestPipelineView_HoverHighlightsUnitUnderPointer(t *testing.T) {
	state := loadedPipelineView(t, fyne.NewSize(1280, 700))
	for _, box := range state.engine.Pipeline().Layout.HitBoxes {
		pos := fyne.NewPos(float32((box.X+box.X2)/2), float32((box.Y+box.Y2)/2))
		state.hover.MouseMoved(&desktop.MouseEvent{PointEvent: fyne.PointEvent{Position: pos}})
		idx, ok := state.engine.Hover().Highlighted()
		if !ok || idx != box.Index {
			t.Fatalf("pointer at %v highlighted %d (ok=%v), want unit %d", pos, idx, ok, box.Index)
		}
	}
}

func TestSurfacePoint_UndoesStretch(t *testing.T) {
	s, err := graph.NewSurface(300, 148, 2, nil)
	if err != nil {
		t.Fatalf("NewSurface: %v", err)
	}
	x, y := surfacePoint(fyne.NewPos(600, 74), fyne.NewSize(600, 296), s)
	if x != 300 || y != 37 {
		t.Fatalf("stretched point mapped to (%v, %v), want (300, 37)", x, y)
	}
	x, y = surfacePoint(fyne.NewPos(12, 30), fyne.NewSize(300, 148), s)
	if x != 12 || y != 30 {
		t.Fatalf("natural-size point changed: (%v, %v)", x, y)
	}
	x, y = surfacePoint(fyne.NewPos(5, 6), fyne.Size{}, s)
	if x != 5 || y != 6 {
		t.Fatalf("unsized view should pass positions through: (%v, %v)", x, y)
	}
}

func TestSliderMax_WidensForLargeScale(t *testing.T) {
	if got := sliderMax(50); got != scaleMax {
		t.Fatalf("sliderMax(50) = %v, want %v", got, scaleMax)
	}
	if got := sliderMax(350.5); got != 351 {
		t.Fatalf("sliderMax(350.5) = %v, want 351", got)
	}
}
