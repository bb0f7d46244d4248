// Build timings viewer.
//
// Two modes:
//  1. Interactive (default): a fyne window with the pipeline graph and the concurrency graph.
//     A numeric entry sets the minimum unit time, a slider sets the horizontal scale, and
//     pointer moves over the pipeline graph highlight the hovered unit's dependency edges.
//  2. Headless (--screenshots DIR): render pipeline.png, pipeline_highlight.png and timing.png and exit.
//
// Settings come from an optional YAML file (--config); explicitly passed flags win.
package main

import (
	"flag"
	"fmt"
	"image"
	"image/color"
	png "image/png"
	"math"
	"os"
	"strconv"
	"strings"

	fyne "fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"
	"github.com/dustin/go-humanize"

	"github.com/iafilius/BuildTimings/src/config"
	"github.com/iafilius/BuildTimings/src/graph"
	"github.com/iafilius/BuildTimings/src/logging"
	"github.com/iafilius/BuildTimings/src/timings"
)

const (
	prefMinTime = "minUnitTime"
	prefScale   = "scale"
	prefHints   = "showHints"
	prefLast    = "lastFile"

	scaleMin = 1
	scaleMax = 200
)

type uiState struct {
	app      fyne.App
	window   fyne.Window
	filePath string
	cfg      *config.Config

	engine    *graph.Engine
	showHints bool

	pipelineImg *canvas.Image
	overlayImg  *canvas.Image
	timingImg   *canvas.Image
	hover       *hoverLayer
	status      *widget.Label
	fileLabel   *widget.Label
	minEntry    *widget.Entry
	scaleSlider *widget.Slider
	scaleLabel  *widget.Label
}

func main() {
	configPath := flag.String("config", "", "Optional YAML settings file")
	file := flag.String("file", "", "Path to the timing trace JSON (overrides config trace)")
	minTime := flag.Float64("min-time", 0, "Hide units shorter than this many seconds")
	scale := flag.Float64("scale", 20, "Horizontal scale in pixels per second (width is capped at 4096px)")
	pixelRatio := flag.Float64("pixel-ratio", 1, "Device pixel ratio used for headless rendering")
	logLevel := flag.String("log-level", "info", "Log level (debug|info|warn|error)")
	screenshots := flag.String("screenshots", "", "Render PNGs into this directory and exit")
	hints := flag.Bool("hints", true, "Stamp a usage hint onto the pipeline graph")
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
		cfg = loaded
	}
	traceGiven := cfg.TraceSet()
	applyFlags(map[string]func(){
		"file":        func() { cfg.Trace, traceGiven = *file, true },
		"min-time":    func() { cfg.Render.MinUnitTime = *minTime },
		"scale":       func() { cfg.Render.Scale = *scale },
		"pixel-ratio": func() { cfg.Render.PixelRatio = *pixelRatio },
		"log-level":   func() { cfg.Logging.Level = *logLevel },
		"screenshots": func() { cfg.Export.ScreenshotsDir = *screenshots },
		"hints":       func() { cfg.Render.ShowHints = *hints },
	})
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(2)
	}
	if err := logging.Configure(cfg.Logging.Level); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(2)
	}
	if logging.Enabled(logging.LevelDebug) {
		cfg.Print()
	}

	if *screenshots != "" {
		written, err := RunScreenshotsMode(cfg.Trace, cfg.Export.ScreenshotsDir, controlsFromConfig(cfg), cfg.Render.ShowHints)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
		for _, p := range written {
			fmt.Println(p)
		}
		return
	}
	runUI(cfg, traceGiven)
}

// applyFlags runs the setter of every flag given on the command line.
func applyFlags(setters map[string]func()) {
	flag.Visit(func(f *flag.Flag) {
		if set, ok := setters[f.Name]; ok {
			set()
		}
	})
}

func controlsFromConfig(cfg *config.Config) graph.Controls {
	return graph.Controls{
		MinDuration: cfg.Render.MinUnitTime,
		Scale:       cfg.Render.Scale,
		PixelRatio:  cfg.Render.PixelRatio,
	}
}

func runUI(cfg *config.Config, traceGiven bool) {
	a := app.NewWithID("com.iafilius.buildtimings")
	w := a.NewWindow("Build Timings")
	state := &uiState{app: a, window: w, cfg: cfg}
	prefs := a.Preferences()
	cfg.Render.MinUnitTime = prefs.FloatWithFallback(prefMinTime, cfg.Render.MinUnitTime)
	cfg.Render.Scale = prefs.FloatWithFallback(prefScale, cfg.Render.Scale)
	state.showHints = prefs.BoolWithFallback(prefHints, cfg.Render.ShowHints)
	state.filePath = cfg.Trace
	if last := prefs.String(prefLast); !traceGiven && last != "" {
		state.filePath = last
	}

	pipelineView := buildPipelineView(state)
	state.timingImg = canvas.NewImageFromImage(blank(400, 120))
	state.timingImg.FillMode = canvas.ImageFillStretch

	state.status = widget.NewLabel("")
	state.fileLabel = widget.NewLabel("")
	state.minEntry = widget.NewEntry()
	state.minEntry.SetText(strconv.FormatFloat(cfg.Render.MinUnitTime, 'f', -1, 64))
	state.minEntry.OnSubmitted = func(s string) { onMinTimeChanged(state, s) }
	state.scaleLabel = widget.NewLabel("")
	state.scaleSlider = widget.NewSlider(scaleMin, sliderMax(cfg.Render.Scale))
	state.scaleSlider.Step = 1
	state.scaleSlider.SetValue(cfg.Render.Scale)
	state.scaleSlider.OnChanged = func(v float64) { state.scaleLabel.SetText(fmt.Sprintf("%.0f px/s", v)) }
	state.scaleSlider.OnChangeEnded = func(v float64) { onScaleChanged(state, v) }
	state.scaleLabel.SetText(fmt.Sprintf("%.0f px/s", state.scaleSlider.Value))
	hintsCheck := widget.NewCheck("Hints", func(on bool) {
		state.showHints = on
		state.app.Preferences().SetBool(prefHints, on)
		refreshPipeline(state)
	})
	hintsCheck.SetChecked(state.showHints)

	controls := container.NewBorder(nil, nil,
		container.NewHBox(widget.NewLabel("Min unit time (s):"), container.NewGridWrap(fyne.NewSize(90, 36), state.minEntry)),
		container.NewHBox(state.scaleLabel, hintsCheck),
		container.NewBorder(nil, nil, widget.NewLabel("Scale:"), nil, state.scaleSlider),
	)
	tabs := container.NewAppTabs(
		container.NewTabItem("Pipeline", pipelineView),
		container.NewTabItem("Concurrency", container.NewScroll(naturalSize(state.timingImg))),
	)
	top := container.NewVBox(state.fileLabel, controls)
	w.SetContent(container.NewBorder(top, state.status, nil, nil, tabs))
	buildMenus(state)
	w.Resize(fyne.NewSize(1280, 820))

	if state.filePath != "" {
		if tr, err := timings.Load(state.filePath); err != nil {
			state.status.SetText(err.Error())
		} else {
			loadTrace(state, tr, state.filePath)
		}
	} else {
		state.status.SetText("Open a timing trace (File > Open).")
	}
	w.ShowAndRun()
}

// naturalSize pins obj to its MinSize inside a scroll container, which would otherwise
// stretch content smaller than the viewport.
func naturalSize(obj fyne.CanvasObject) fyne.CanvasObject {
	return container.NewVBox(container.NewHBox(obj))
}

// buildPipelineView stacks content image, overlay image and hover layer at the
// surface's logical size.
func buildPipelineView(state *uiState) fyne.CanvasObject {
	state.pipelineImg = canvas.NewImageFromImage(blank(400, 120))
	state.pipelineImg.FillMode = canvas.ImageFillStretch
	state.overlayImg = canvas.NewImageFromImage(blank(400, 120))
	state.overlayImg.FillMode = canvas.ImageFillStretch
	state.hover = newHoverLayer(func(p fyne.Position, view fyne.Size) { onPointerMove(state, p, view) })
	layers := container.NewStack(state.pipelineImg, state.overlayImg, state.hover)
	return container.NewScroll(naturalSize(layers))
}

func buildMenus(state *uiState) {
	open := fyne.NewMenuItem("Open…", func() { openFileDialog(state) })
	exportPipeline := fyne.NewMenuItem("Export Pipeline PNG…", func() { exportPNG(state, state.pipelineImg, "pipeline.png") })
	exportTiming := fyne.NewMenuItem("Export Concurrency PNG…", func() { exportPNG(state, state.timingImg, "timing.png") })
	state.window.SetMainMenu(fyne.NewMainMenu(fyne.NewMenu("File", open, fyne.NewMenuItemSeparator(), exportPipeline, exportTiming)))
}

func openFileDialog(state *uiState) {
	d := dialog.NewFileOpen(func(rc fyne.URIReadCloser, err error) {
		if err != nil || rc == nil {
			return
		}
		defer rc.Close()
		tr, err := timings.Decode(rc)
		if err != nil {
			dialog.ShowError(err, state.window)
			return
		}
		loadTrace(state, tr, rc.URI().Path())
	}, state.window)
	d.Show()
}

// loadTrace is the initial-load trigger: both graphs are rendered.
func loadTrace(state *uiState, tr *timings.Trace, path string) {
	state.filePath = path
	state.app.Preferences().SetString(prefLast, path)
	state.fileLabel.SetText(truncatePath(path, 90))
	c := controlsFromConfig(state.cfg)
	if state.window.Canvas() != nil && state.window.Canvas().Scale() > 0 {
		c.PixelRatio = float64(state.window.Canvas().Scale())
	}
	state.engine = graph.NewEngine(tr, c)
	if err := state.engine.Load(); err != nil {
		state.status.SetText(err.Error())
		return
	}
	refreshPipeline(state)
	refreshTiming(state)
}

func onMinTimeChanged(state *uiState, s string) {
	if state.engine == nil {
		return
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || v < 0 {
		state.status.SetText(fmt.Sprintf("invalid min unit time %q", s))
		return
	}
	if err := state.engine.SetMinDuration(v); err != nil {
		state.status.SetText(err.Error())
		return
	}
	state.cfg.Render.MinUnitTime = v
	state.app.Preferences().SetFloat(prefMinTime, v)
	refreshPipeline(state)
}

func onScaleChanged(state *uiState, v float64) {
	if state.engine == nil {
		return
	}
	if err := state.engine.SetScale(v); err != nil {
		state.status.SetText(err.Error())
		return
	}
	state.cfg.Render.Scale = v
	state.app.Preferences().SetFloat(prefScale, v)
	refreshPipeline(state)
	refreshTiming(state)
}

// onPointerMove touches only the overlay image.
func onPointerMove(state *uiState, p fyne.Position, view fyne.Size) {
	if state.engine == nil || state.engine.Pipeline() == nil {
		return
	}
	x, y := surfacePoint(p, view, state.engine.Pipeline().Content)
	redrew, err := state.engine.PointerMove(x, y)
	if err != nil {
		logging.Warnf("hover: %v", err)
		return
	}
	if !redrew {
		return
	}
	g := state.engine.Pipeline()
	img, err := g.Overlay.Image()
	if err != nil {
		logging.Warnf("overlay image: %v", err)
		return
	}
	state.overlayImg.Image = img
	state.overlayImg.Refresh()
	if idx, ok := state.engine.Hover().Highlighted(); ok {
		if u, ok := state.engine.Trace().Unit(idx); ok {
			state.status.SetText(fmt.Sprintf("%s  start %.2fs  unlocks %d (+%d at metadata)",
				u.Label(), u.Start, len(u.UnlockedUnits), len(u.UnlockedRmetaUnits)))
		}
	}
}

func refreshPipeline(state *uiState) {
	if state.engine == nil {
		return
	}
	g := state.engine.Pipeline()
	if g == nil {
		state.pipelineImg.Image = blank(400, 120)
		state.overlayImg.Image = blank(400, 120)
		state.pipelineImg.Refresh()
		state.overlayImg.Refresh()
		state.status.SetText("No units in this trace.")
		return
	}
	content, err := g.Content.Image()
	if err != nil {
		state.status.SetText(err.Error())
		return
	}
	overlay, err := g.Overlay.Image()
	if err != nil {
		state.status.SetText(err.Error())
		return
	}
	if state.showHints {
		content = drawHint(content, pipelineHint, g.Content.Ratio())
	}
	size := fyne.NewSize(float32(g.Content.Width()), float32(g.Content.Height()))
	state.pipelineImg.Image = content
	state.pipelineImg.SetMinSize(size)
	state.overlayImg.Image = overlay
	state.overlayImg.SetMinSize(size)
	state.pipelineImg.Refresh()
	state.overlayImg.Refresh()
	tr := state.engine.Trace()
	state.status.SetText(fmt.Sprintf("%s of %s units shown, build took %ss",
		humanize.Comma(int64(len(g.Layout.Order))), humanize.Comma(int64(len(tr.Units))), humanize.Ftoa(tr.Duration)))
}

func refreshTiming(state *uiState) {
	if state.engine == nil {
		return
	}
	s := state.engine.Timing()
	if s == nil {
		state.timingImg.Image = blank(400, 120)
		state.timingImg.Refresh()
		return
	}
	img, err := s.Image()
	if err != nil {
		state.status.SetText(err.Error())
		return
	}
	state.timingImg.Image = img
	state.timingImg.SetMinSize(fyne.NewSize(float32(s.Width()), float32(s.Height())))
	state.timingImg.Refresh()
}

func exportPNG(state *uiState, img *canvas.Image, defaultName string) {
	if img == nil || img.Image == nil || state.engine == nil {
		dialog.ShowInformation("Export", "No graph to export.", state.window)
		return
	}
	src := img.Image
	if img == state.pipelineImg && state.overlayImg.Image != nil {
		src = composite(src, state.overlayImg.Image)
	}
	fs := dialog.NewFileSave(func(wc fyne.URIWriteCloser, err error) {
		if err != nil || wc == nil {
			return
		}
		defer wc.Close()
		if err := png.Encode(wc, src); err != nil {
			dialog.ShowError(err, state.window)
		}
	}, state.window)
	fs.SetFileName(defaultName)
	fs.Show()
}

// surfacePoint maps a position on the laid-out pipeline layers back to the surface's
// logical coordinates the hit-boxes live in. Layers normally sit at their natural size,
// making this the identity.
func surfacePoint(p fyne.Position, view fyne.Size, s *graph.Surface) (float64, float64) {
	x, y := float64(p.X), float64(p.Y)
	if view.Width > 0 {
		x *= float64(s.Width()) / float64(view.Width)
	}
	if view.Height > 0 {
		y *= float64(s.Height()) / float64(view.Height)
	}
	return x, y
}

// sliderMax widens the scale slider so a configured scale above the usual range stays
// selectable.
func sliderMax(scale float64) float64 {
	if scale > scaleMax {
		logging.Infof("scale %g px/s is above the slider's default range, widening it", scale)
		return math.Ceil(scale)
	}
	return scaleMax
}

func truncatePath(p string, n int) string {
	if len(p) <= n || n < 4 {
		return p
	}
	return "…" + p[len(p)-(n-1):]
}

func blank(w, h int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	bg := graph.Background()
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, color.RGBA{R: bg.R, G: bg.G, B: bg.B, A: 255})
		}
	}
	return img
}

// hoverLayer sits on top of the pipeline images and forwards pointer moves along with
// its current size.
type hoverLayer struct {
	widget.BaseWidget
	onMove func(fyne.Position, fyne.Size)
}

func newHoverLayer(onMove func(fyne.Position, fyne.Size)) *hoverLayer {
	h := &hoverLayer{onMove: onMove}
	h.ExtendBaseWidget(h)
	return h
}

func (h *hoverLayer) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(canvas.NewRectangle(color.Transparent))
}

func (h *hoverLayer) MouseIn(ev *desktop.MouseEvent)    { h.onMove(ev.Position, h.Size()) }
func (h *hoverLayer) MouseMoved(ev *desktop.MouseEvent) { h.onMove(ev.Position, h.Size()) }
func (h *hoverLayer) MouseOut()                         {}

// Assert that hoverLayer implements desktop.Hoverable
var _ desktop.Hoverable = (*hoverLayer)(nil)
